// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Media represents an uploaded file. Metadata lives in the database; the
// file itself lives on disk or in object storage, addressed by Filepath.
type Media struct {
	ID        uuid.UUID `json:"id"`
	Filename  string    `json:"filename"`
	Filepath  string    `json:"filepath"`
	Mimetype  string    `json:"mimetype"`
	SizeBytes int64     `json:"size"`
	Slug      string    `json:"slug"`
	ThumbPath *string   `json:"thumb_path,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// IsImage returns true if the media item is an image type.
func (m *Media) IsImage() bool {
	return strings.HasPrefix(m.Mimetype, "image/")
}

// HumanSize returns a human-readable file size string.
func (m *Media) HumanSize() string {
	const (
		kb = 1024
		mb = 1024 * kb
	)
	switch {
	case m.SizeBytes >= mb:
		return fmt.Sprintf("%.1f MB", float64(m.SizeBytes)/float64(mb))
	case m.SizeBytes >= kb:
		return fmt.Sprintf("%.0f KB", float64(m.SizeBytes)/float64(kb))
	default:
		return fmt.Sprintf("%d B", m.SizeBytes)
	}
}
