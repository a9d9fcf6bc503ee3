// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers implements the JSON API endpoints for categories,
// tags, pages, posts, comments, and media.
package handlers

import (
	"inkpress/internal/storage"
	"inkpress/internal/store"
)

// API groups the HTTP handlers and their dependencies.
type API struct {
	categories *store.CategoryStore
	tags       *store.TagStore
	pages      *store.PageStore
	posts      *store.PostStore
	comments   *store.CommentStore
	media      *store.MediaStore
	files      storage.FileStore
}

// New creates the API handler group.
func New(
	categories *store.CategoryStore,
	tags *store.TagStore,
	pages *store.PageStore,
	posts *store.PostStore,
	comments *store.CommentStore,
	media *store.MediaStore,
	files storage.FileStore,
) *API {
	return &API{
		categories: categories,
		tags:       tags,
		pages:      pages,
		posts:      posts,
		comments:   comments,
		media:      media,
		files:      files,
	}
}
