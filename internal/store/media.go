// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"inkpress/internal/models"
	"inkpress/internal/slug"
)

// MediaStore handles all media-related database operations.
type MediaStore struct {
	db *sql.DB
}

// NewMediaStore creates a new MediaStore with the given database connection.
func NewMediaStore(db *sql.DB) *MediaStore {
	return &MediaStore{db: db}
}

const mediaColumns = `id, filename, filepath, mimetype, size_bytes, slug, thumb_path, created_at`

func scanMedia(scanner interface{ Scan(...any) error }) (*models.Media, error) {
	var m models.Media
	err := scanner.Scan(
		&m.ID, &m.Filename, &m.Filepath, &m.Mimetype, &m.SizeBytes,
		&m.Slug, &m.ThumbPath, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Create inserts a new media record, deriving a unique slug from the
// filename.
func (s *MediaStore) Create(m *models.Media) (*models.Media, error) {
	candidate, err := slug.Resolve(slug.Generate(m.Filename), s.slugExists)
	if err != nil {
		return nil, fmt.Errorf("resolve media slug: %w", err)
	}

	for retried := false; ; retried = true {
		row := s.db.QueryRow(`
			INSERT INTO media (filename, filepath, mimetype, size_bytes, slug, thumb_path)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING `+mediaColumns,
			m.Filename, m.Filepath, m.Mimetype, m.SizeBytes, candidate, m.ThumbPath,
		)
		result, err := scanMedia(row)
		if err == nil {
			return result, nil
		}
		if isUniqueViolation(err) {
			if retried {
				return nil, ErrDuplicate
			}
			candidate = slug.WithSuffix(slug.Generate(m.Filename))
			continue
		}
		return nil, fmt.Errorf("create media: %w", err)
	}
}

func (s *MediaStore) slugExists(candidate string) (bool, error) {
	var exists bool
	err := s.db.QueryRow(
		`SELECT EXISTS(SELECT 1 FROM media WHERE slug = $1)`, candidate,
	).Scan(&exists)
	return exists, err
}

// FindByID retrieves a single media record by its UUID. Returns nil if not
// found.
func (s *MediaStore) FindByID(id uuid.UUID) (*models.Media, error) {
	row := s.db.QueryRow(`SELECT `+mediaColumns+` FROM media WHERE id = $1`, id)
	m, err := scanMedia(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find media by id: %w", err)
	}
	return m, nil
}

// List returns media items ordered by creation date descending, with
// pagination.
func (s *MediaStore) List(limit, offset int) ([]models.Media, error) {
	rows, err := s.db.Query(`
		SELECT `+mediaColumns+`
		FROM media
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list media: %w", err)
	}
	defer rows.Close()

	var items []models.Media
	for rows.Next() {
		m, err := scanMedia(rows)
		if err != nil {
			return nil, fmt.Errorf("scan media: %w", err)
		}
		items = append(items, *m)
	}
	return items, rows.Err()
}

// Count returns the total number of media items.
func (s *MediaStore) Count() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM media`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count media: %w", err)
	}
	return count, nil
}

// Update writes the mutable metadata fields of a media record (caller
// merges absent fields first). The slug and file location are fixed at
// upload time.
func (s *MediaStore) Update(m *models.Media) (*models.Media, error) {
	row := s.db.QueryRow(`
		UPDATE media SET filename = $1, mimetype = $2
		WHERE id = $3
		RETURNING `+mediaColumns,
		m.Filename, m.Mimetype, m.ID,
	)
	result, err := scanMedia(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update media: %w", err)
	}
	return result, nil
}

// Delete removes a media record and returns it so the caller can clean up
// the stored file. Returns nil if the record does not exist.
func (s *MediaStore) Delete(id uuid.UUID) (*models.Media, error) {
	row := s.db.QueryRow(`
		DELETE FROM media WHERE id = $1
		RETURNING `+mediaColumns, id)
	m, err := scanMedia(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("delete media: %w", err)
	}
	return m, nil
}
