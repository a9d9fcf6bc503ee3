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

// PageStore manages standalone pages in the database.
type PageStore struct {
	db *sql.DB
}

// NewPageStore returns a new PageStore.
func NewPageStore(db *sql.DB) *PageStore {
	return &PageStore{db: db}
}

const pageColumns = `id, title, slug, content, meta_description, created_at, updated_at`

func scanPage(scanner interface{ Scan(...any) error }) (*models.Page, error) {
	var p models.Page
	err := scanner.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Content, &p.MetaDescription,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts a new page after checking the trimmed title is unused,
// deriving a unique slug from it. Returns ErrDuplicate on a title conflict.
func (s *PageStore) Create(p *models.Page) (*models.Page, error) {
	title := strings.TrimSpace(p.Title)

	var exists bool
	if err := s.db.QueryRow(
		`SELECT EXISTS(SELECT 1 FROM pages WHERE title = $1)`, title,
	).Scan(&exists); err != nil {
		return nil, fmt.Errorf("check page title: %w", err)
	}
	if exists {
		return nil, ErrDuplicate
	}

	candidate, err := slug.Resolve(slug.Generate(title), s.slugExists)
	if err != nil {
		return nil, fmt.Errorf("resolve page slug: %w", err)
	}

	for retried := false; ; retried = true {
		row := s.db.QueryRow(`
			INSERT INTO pages (title, slug, content, meta_description)
			VALUES ($1, $2, $3, $4)
			RETURNING `+pageColumns,
			title, candidate, p.Content, strings.TrimSpace(p.MetaDescription),
		)
		result, err := scanPage(row)
		if err == nil {
			return result, nil
		}
		if isUniqueViolation(err) {
			if retried {
				return nil, ErrDuplicate
			}
			candidate = slug.WithSuffix(slug.Generate(title))
			continue
		}
		return nil, fmt.Errorf("create page: %w", err)
	}
}

func (s *PageStore) slugExists(candidate string) (bool, error) {
	var exists bool
	err := s.db.QueryRow(
		`SELECT EXISTS(SELECT 1 FROM pages WHERE slug = $1)`, candidate,
	).Scan(&exists)
	return exists, err
}

// FindByID retrieves a page by ID. Returns nil if not found.
func (s *PageStore) FindByID(id uuid.UUID) (*models.Page, error) {
	row := s.db.QueryRow(`SELECT `+pageColumns+` FROM pages WHERE id = $1`, id)
	p, err := scanPage(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find page by id: %w", err)
	}
	return p, nil
}

// List returns pages ordered by creation date descending, with pagination.
func (s *PageStore) List(limit, offset int) ([]models.Page, error) {
	rows, err := s.db.Query(`
		SELECT `+pageColumns+`
		FROM pages
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list pages: %w", err)
	}
	defer rows.Close()

	var items []models.Page
	for rows.Next() {
		p, err := scanPage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan page: %w", err)
		}
		items = append(items, *p)
	}
	return items, rows.Err()
}

// Count returns the total number of pages.
func (s *PageStore) Count() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM pages`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count pages: %w", err)
	}
	return count, nil
}

// Update writes all mutable fields of an existing page (caller merges
// absent fields first). The slug is not recomputed on update.
func (s *PageStore) Update(p *models.Page) (*models.Page, error) {
	row := s.db.QueryRow(`
		UPDATE pages SET
			title = $1, content = $2, meta_description = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING `+pageColumns,
		strings.TrimSpace(p.Title), p.Content, strings.TrimSpace(p.MetaDescription), p.ID,
	)
	result, err := scanPage(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if isUniqueViolation(err) {
		return nil, ErrDuplicate
	}
	if err != nil {
		return nil, fmt.Errorf("update page: %w", err)
	}
	return result, nil
}

// Delete removes a page by ID and returns the removed snapshot.
func (s *PageStore) Delete(id uuid.UUID) (*models.Page, error) {
	row := s.db.QueryRow(`
		DELETE FROM pages WHERE id = $1
		RETURNING `+pageColumns, id)
	p, err := scanPage(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("delete page: %w", err)
	}
	return p, nil
}
