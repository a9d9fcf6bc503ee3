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

// CategoryStore manages categories in the database.
type CategoryStore struct {
	db *sql.DB
}

// NewCategoryStore returns a new CategoryStore.
func NewCategoryStore(db *sql.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

const categoryColumns = `id, name, slug, description, created_at, updated_at`

// scanCategory scans a row into a Category struct.
func scanCategory(scanner interface{ Scan(...any) error }) (*models.Category, error) {
	var c models.Category
	err := scanner.Scan(
		&c.ID, &c.Name, &c.Slug, &c.Description, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts a new category after checking the trimmed name is unused,
// deriving a unique slug from it. Returns ErrDuplicate on a name conflict.
func (s *CategoryStore) Create(c *models.Category) (*models.Category, error) {
	name := strings.TrimSpace(c.Name)

	var exists bool
	if err := s.db.QueryRow(
		`SELECT EXISTS(SELECT 1 FROM categories WHERE name = $1)`, name,
	).Scan(&exists); err != nil {
		return nil, fmt.Errorf("check category name: %w", err)
	}
	if exists {
		return nil, ErrDuplicate
	}

	candidate, err := slug.Resolve(slug.Generate(name), s.slugExists)
	if err != nil {
		return nil, fmt.Errorf("resolve category slug: %w", err)
	}

	// The unique indexes are the backstop for concurrent creates that pass
	// the checks above. One retry with a fresh suffix covers a slug race;
	// a second violation means the name itself raced and is a true conflict.
	for retried := false; ; retried = true {
		row := s.db.QueryRow(`
			INSERT INTO categories (name, slug, description)
			VALUES ($1, $2, $3)
			RETURNING `+categoryColumns,
			name, candidate, strings.TrimSpace(c.Description),
		)
		result, err := scanCategory(row)
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
		return nil, fmt.Errorf("create category: %w", err)
	}
}

// slugExists reports whether any category already uses the given slug.
func (s *CategoryStore) slugExists(candidate string) (bool, error) {
	var exists bool
	err := s.db.QueryRow(
		`SELECT EXISTS(SELECT 1 FROM categories WHERE slug = $1)`, candidate,
	).Scan(&exists)
	return exists, err
}

// FindByID retrieves a category by ID. Returns nil if not found.
func (s *CategoryStore) FindByID(id uuid.UUID) (*models.Category, error) {
	row := s.db.QueryRow(`SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id)
	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category by id: %w", err)
	}
	return c, nil
}

// List returns categories ordered by creation date descending, with pagination.
func (s *CategoryStore) List(limit, offset int) ([]models.Category, error) {
	rows, err := s.db.Query(`
		SELECT `+categoryColumns+`
		FROM categories
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var items []models.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}

// Count returns the total number of categories.
func (s *CategoryStore) Count() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM categories`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count categories: %w", err)
	}
	return count, nil
}

// Update writes all mutable fields of an existing category. The caller
// merges absent fields from the stored record first, so unspecified fields
// are never overwritten. The slug is not recomputed on update.
func (s *CategoryStore) Update(c *models.Category) (*models.Category, error) {
	row := s.db.QueryRow(`
		UPDATE categories SET
			name = $1, description = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING `+categoryColumns,
		strings.TrimSpace(c.Name), strings.TrimSpace(c.Description), c.ID,
	)
	result, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if isUniqueViolation(err) {
		return nil, ErrDuplicate
	}
	if err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	return result, nil
}

// Delete removes a category by ID and returns the removed snapshot.
// Returns nil if the category does not exist.
func (s *CategoryStore) Delete(id uuid.UUID) (*models.Category, error) {
	row := s.db.QueryRow(`
		DELETE FROM categories WHERE id = $1
		RETURNING `+categoryColumns, id)
	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("delete category: %w", err)
	}
	return c, nil
}
