// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// PostStatus represents the publishing state of a blog post.
type PostStatus string

const (
	PostStatusDraft     PostStatus = "draft"
	PostStatusPublished PostStatus = "published"
	PostStatusPrivate   PostStatus = "private"
)

// ValidPostStatus reports whether s is one of the known statuses.
func ValidPostStatus(s PostStatus) bool {
	switch s {
	case PostStatusDraft, PostStatusPublished, PostStatusPrivate:
		return true
	}
	return false
}

// Post represents a blog post.
type Post struct {
	ID              uuid.UUID  `json:"id"`
	Title           string     `json:"title"`
	Slug            string     `json:"slug"`
	Content         string     `json:"content"`
	Excerpt         *string    `json:"excerpt,omitempty"`
	Author          string     `json:"author"`
	CategoryID      *uuid.UUID `json:"category,omitempty"`
	Image           *string    `json:"image,omitempty"`
	Status          PostStatus `json:"status"`
	MetaTitle       *string    `json:"meta_title,omitempty"`
	MetaDescription *string    `json:"meta_description,omitempty"`
	IsFeatured      bool       `json:"is_featured"`
	Likes           int        `json:"likes"`
	Views           int        `json:"views"`
	PublishedAt     time.Time  `json:"published_at"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`

	// Virtual fields populated by store methods.
	Tags     []uuid.UUID `json:"tags"`
	Comments []uuid.UUID `json:"comments,omitempty"`

	// ContentHTML carries the markdown-rendered body on detail reads.
	ContentHTML *string `json:"content_html,omitempty"`
}

// IsPublished returns true if the post is publicly visible.
func (p *Post) IsPublished() bool {
	return p.Status == PostStatusPublished
}
