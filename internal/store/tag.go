// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"inkpress/internal/models"
	"inkpress/internal/slug"
)

// TagStore manages tags in the database.
type TagStore struct {
	db *sql.DB
}

// NewTagStore returns a new TagStore.
func NewTagStore(db *sql.DB) *TagStore {
	return &TagStore{db: db}
}

const tagColumns = `id, name, slug, created_at, updated_at`

func scanTag(scanner interface{ Scan(...any) error }) (*models.Tag, error) {
	var t models.Tag
	if err := scanner.Scan(&t.ID, &t.Name, &t.Slug, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

// Create inserts a new tag after checking the trimmed name is unused,
// deriving a unique slug from it. Returns ErrDuplicate on a name conflict.
func (s *TagStore) Create(t *models.Tag) (*models.Tag, error) {
	name := strings.TrimSpace(t.Name)

	var exists bool
	if err := s.db.QueryRow(
		`SELECT EXISTS(SELECT 1 FROM tags WHERE name = $1)`, name,
	).Scan(&exists); err != nil {
		return nil, fmt.Errorf("check tag name: %w", err)
	}
	if exists {
		return nil, ErrDuplicate
	}

	candidate, err := slug.Resolve(slug.Generate(name), s.slugExists)
	if err != nil {
		return nil, fmt.Errorf("resolve tag slug: %w", err)
	}

	for retried := false; ; retried = true {
		row := s.db.QueryRow(`
			INSERT INTO tags (name, slug) VALUES ($1, $2)
			RETURNING `+tagColumns,
			name, candidate,
		)
		result, err := scanTag(row)
		if err == nil {
			return result, nil
		}
		if isUniqueViolation(err) {
			if retried {
				return nil, ErrDuplicate
			}
			candidate = slug.WithSuffix(slug.Generate(name))
			continue
		}
		return nil, fmt.Errorf("create tag: %w", err)
	}
}

func (s *TagStore) slugExists(candidate string) (bool, error) {
	var exists bool
	err := s.db.QueryRow(
		`SELECT EXISTS(SELECT 1 FROM tags WHERE slug = $1)`, candidate,
	).Scan(&exists)
	return exists, err
}

// FindByID retrieves a tag by ID. Returns nil if not found.
func (s *TagStore) FindByID(id uuid.UUID) (*models.Tag, error) {
	row := s.db.QueryRow(`SELECT `+tagColumns+` FROM tags WHERE id = $1`, id)
	t, err := scanTag(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find tag by id: %w", err)
	}
	return t, nil
}

// List returns tags ordered by creation date descending, with pagination.
func (s *TagStore) List(limit, offset int) ([]models.Tag, error) {
	rows, err := s.db.Query(`
		SELECT `+tagColumns+`
		FROM tags
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer rows.Close()

	var items []models.Tag
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		items = append(items, *t)
	}
	return items, rows.Err()
}

// Count returns the total number of tags.
func (s *TagStore) Count() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM tags`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count tags: %w", err)
	}
	return count, nil
}

// Update writes the tag name (caller merges absent fields first). The slug
// is not recomputed on update.
func (s *TagStore) Update(t *models.Tag) (*models.Tag, error) {
	row := s.db.QueryRow(`
		UPDATE tags SET name = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING `+tagColumns,
		strings.TrimSpace(t.Name), t.ID,
	)
	result, err := scanTag(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if isUniqueViolation(err) {
		return nil, ErrDuplicate
	}
	if err != nil {
		return nil, fmt.Errorf("update tag: %w", err)
	}
	return result, nil
}

// Delete removes a tag by ID and returns the removed snapshot.
func (s *TagStore) Delete(id uuid.UUID) (*models.Tag, error) {
	row := s.db.QueryRow(`
		DELETE FROM tags WHERE id = $1
		RETURNING `+tagColumns, id)
	t, err := scanTag(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("delete tag: %w", err)
	}
	return t, nil
}
