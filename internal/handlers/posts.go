// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"inkpress/internal/api"
	"inkpress/internal/markdown"
	"inkpress/internal/models"
	"inkpress/internal/storage"
	"inkpress/internal/store"
)

// postRequest carries the mutable post fields. Pointers distinguish
// absent fields from blank values on partial updates.
type postRequest struct {
	Title           *string      `json:"title"`
	Content         *string      `json:"content"`
	Excerpt         *string      `json:"excerpt"`
	Author          *string      `json:"author"`
	CategoryID      *uuid.UUID   `json:"category"`
	Tags            *[]uuid.UUID `json:"tags"`
	Image           *string      `json:"image"`
	Status          *string      `json:"status"`
	MetaTitle       *string      `json:"meta_title"`
	MetaDescription *string      `json:"meta_description"`
	IsFeatured      *bool        `json:"is_featured"`
}

func (req *postRequest) empty() bool {
	return req.Title == nil && req.Content == nil && req.Excerpt == nil &&
		req.Author == nil && req.CategoryID == nil && req.Tags == nil &&
		req.Image == nil && req.Status == nil && req.MetaTitle == nil &&
		req.MetaDescription == nil && req.IsFeatured == nil
}

// apply copies the present fields onto the post.
func (req *postRequest) apply(p *models.Post) {
	if req.Title != nil {
		p.Title = *req.Title
	}
	if req.Content != nil {
		p.Content = *req.Content
	}
	if req.Excerpt != nil {
		p.Excerpt = req.Excerpt
	}
	if req.Author != nil {
		p.Author = *req.Author
	}
	if req.CategoryID != nil {
		p.CategoryID = req.CategoryID
	}
	if req.Tags != nil {
		p.Tags = *req.Tags
	}
	if req.Image != nil {
		p.Image = req.Image
	}
	if req.Status != nil {
		p.Status = models.PostStatus(*req.Status)
	}
	if req.MetaTitle != nil {
		p.MetaTitle = req.MetaTitle
	}
	if req.MetaDescription != nil {
		p.MetaDescription = req.MetaDescription
	}
	if req.IsFeatured != nil {
		p.IsFeatured = *req.IsFeatured
	}
}

// ListPosts returns a page of posts with their tag references.
//
//	@Summary  List posts
//	@Tags     posts
//	@Produce  json
//	@Param    page   query  int  false  "Page number"
//	@Param    limit  query  int  false  "Items per page"
//	@Router   /api/posts [get]
func (a *API) ListPosts(w http.ResponseWriter, r *http.Request) {
	page, limit := api.Pagination(r)

	items, err := a.posts.List(limit, api.Offset(page, limit))
	if err != nil {
		api.Internal(w, err)
		return
	}
	total, err := a.posts.Count()
	if err != nil {
		api.Internal(w, err)
		return
	}
	if items == nil {
		items = []models.Post{}
	}
	api.List(w, "posts fetched", items, api.NewMeta(page, limit, total))
}

// GetPost returns a single post with rendered content, bumping the view
// counter.
//
//	@Summary  Get a post
//	@Tags     posts
//	@Produce  json
//	@Param    id  path  string  true  "Post ID"
//	@Router   /api/posts/{id} [get]
func (a *API) GetPost(w http.ResponseWriter, r *http.Request) {
	id, err := api.ParseID(r, "id")
	if err != nil {
		api.BadRequest(w, err.Error())
		return
	}

	post, err := a.posts.FindByID(id)
	if err != nil {
		api.Internal(w, err)
		return
	}
	if post == nil {
		api.NotFound(w, "post not found")
		return
	}

	if err := a.posts.IncrementViews(id); err != nil {
		slog.Warn("view counter bump failed", "post", id, "error", err)
	} else {
		post.Views++
	}

	if html, err := markdown.ToHTML(post.Content); err == nil {
		post.ContentHTML = &html
	} else {
		slog.Warn("markdown render failed", "post", id, "error", err)
	}

	api.OK(w, "post fetched", post)
}

// CreatePost creates a new blog post.
//
//	@Summary  Create a post
//	@Tags     posts
//	@Accept   json
//	@Produce  json
//	@Router   /api/posts [post]
func (a *API) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req postRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.BadRequest(w, "invalid JSON body")
		return
	}

	post := models.Post{}
	req.apply(&post)
	if msg := validatePost(&post); msg != "" {
		api.BadRequest(w, msg)
		return
	}

	created, err := a.posts.Create(&post)
	if errors.Is(err, store.ErrDuplicate) {
		api.Conflict(w, "post title already exists")
		return
	}
	if errors.Is(err, store.ErrInvalidReference) {
		api.BadRequest(w, "unknown category or tag reference")
		return
	}
	if err != nil {
		api.Internal(w, err)
		return
	}
	api.Created(w, "post created", created)
}

// UpdatePost replaces or partially updates a post. Absent fields keep
// their stored values; a partial update with no fields is rejected.
//
//	@Summary  Update a post
//	@Tags     posts
//	@Accept   json
//	@Produce  json
//	@Param    id  path  string  true  "Post ID"
//	@Router   /api/posts/{id} [put]
func (a *API) UpdatePost(w http.ResponseWriter, r *http.Request) {
	id, err := api.ParseID(r, "id")
	if err != nil {
		api.BadRequest(w, err.Error())
		return
	}

	var req postRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.BadRequest(w, "invalid JSON body")
		return
	}
	if r.Method == http.MethodPatch && req.empty() {
		api.BadRequest(w, "no fields to update")
		return
	}

	existing, err := a.posts.FindByID(id)
	if err != nil {
		api.Internal(w, err)
		return
	}
	if existing == nil {
		api.NotFound(w, "post not found")
		return
	}

	req.apply(existing)
	if msg := validatePost(existing); msg != "" {
		api.BadRequest(w, msg)
		return
	}

	updated, err := a.posts.Update(existing)
	if errors.Is(err, store.ErrDuplicate) {
		api.Conflict(w, "post title already exists")
		return
	}
	if errors.Is(err, store.ErrInvalidReference) {
		api.BadRequest(w, "unknown category or tag reference")
		return
	}
	if err != nil {
		api.Internal(w, err)
		return
	}
	if updated == nil {
		api.NotFound(w, "post not found")
		return
	}
	api.OK(w, "post updated", updated)
}

// LikePost increments the post's like counter.
//
//	@Summary  Like a post
//	@Tags     posts
//	@Produce  json
//	@Param    id  path  string  true  "Post ID"
//	@Router   /api/posts/{id}/like [post]
func (a *API) LikePost(w http.ResponseWriter, r *http.Request) {
	id, err := api.ParseID(r, "id")
	if err != nil {
		api.BadRequest(w, err.Error())
		return
	}

	post, err := a.posts.Like(id)
	if err != nil {
		api.Internal(w, err)
		return
	}
	if post == nil {
		api.NotFound(w, "post not found")
		return
	}
	api.OK(w, "post liked", post)
}

// UploadPostImage attaches a cover image to a post. The file arrives as
// the multipart field "image" and is stored under a generated key; the
// post keeps the serving URL.
//
//	@Summary  Upload a post cover image
//	@Tags     posts
//	@Accept   multipart/form-data
//	@Produce  json
//	@Param    id  path  string  true  "Post ID"
//	@Router   /api/posts/{id}/upload-image [post]
func (a *API) UploadPostImage(w http.ResponseWriter, r *http.Request) {
	id, err := api.ParseID(r, "id")
	if err != nil {
		api.BadRequest(w, err.Error())
		return
	}

	existing, err := a.posts.FindByID(id)
	if err != nil {
		api.Internal(w, err)
		return
	}
	if existing == nil {
		api.NotFound(w, "post not found")
		return
	}

	data, contentType, _, ok := a.readUpload(w, r)
	if !ok {
		return
	}
	if !storage.Thumbable(contentType) && contentType != "image/gif" {
		api.BadRequest(w, fmt.Sprintf("file type %q is not an image", contentType))
		return
	}

	now := time.Now()
	key := fmt.Sprintf("posts/%d/%02d/%s%s", now.Year(), now.Month(),
		uuid.New().String(), storage.ExtensionFromType(contentType))

	if err := a.files.Save(r.Context(), key, contentType, bytes.NewReader(data), int64(len(data))); err != nil {
		api.Internal(w, err)
		return
	}

	updated, err := a.posts.SetImage(id, a.files.URL(key))
	if err != nil {
		api.Internal(w, err)
		return
	}
	if updated == nil {
		api.NotFound(w, "post not found")
		return
	}
	api.OK(w, "post image uploaded", updated)
}

// DeletePost removes a post together with its comments and tag
// assignments.
//
//	@Summary  Delete a post
//	@Tags     posts
//	@Produce  json
//	@Param    id  path  string  true  "Post ID"
//	@Router   /api/posts/{id} [delete]
func (a *API) DeletePost(w http.ResponseWriter, r *http.Request) {
	id, err := api.ParseID(r, "id")
	if err != nil {
		api.BadRequest(w, err.Error())
		return
	}

	deleted, err := a.posts.Delete(id)
	if err != nil {
		api.Internal(w, err)
		return
	}
	if deleted == nil {
		api.NotFound(w, "post not found")
		return
	}
	api.OK(w, "post deleted", deleted)
}

// readUpload parses a multipart upload from the "image" field, sniffing
// the content type from the first bytes. Writes the error response and
// returns ok=false on failure.
func (a *API) readUpload(w http.ResponseWriter, r *http.Request) (data []byte, contentType, filename string, ok bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize+1024)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		api.BadRequest(w, "file too large or malformed multipart body")
		return nil, "", "", false
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		api.BadRequest(w, "no image file provided")
		return nil, "", "", false
	}
	defer file.Close()

	if header.Size > maxUploadSize {
		api.BadRequest(w, "file too large")
		return nil, "", "", false
	}

	data, err = io.ReadAll(file)
	if err != nil {
		api.Internal(w, err)
		return nil, "", "", false
	}

	contentType = http.DetectContentType(data)
	return data, contentType, header.Filename, true
}

func validatePost(p *models.Post) string {
	if msg := checkRequired("title", p.Title); msg != "" {
		return msg
	}
	if msg := checkRequired("content", p.Content); msg != "" {
		return msg
	}
	if msg := checkRequired("author", p.Author); msg != "" {
		return msg
	}
	if p.Status != "" && !models.ValidPostStatus(p.Status) {
		return "status must be draft, published, or private"
	}
	return ""
}
