// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"inkpress/internal/api"
	"inkpress/internal/models"
	"inkpress/internal/store"
)

type commentRequest struct {
	Author   string     `json:"author"`
	Content  string     `json:"content"`
	ParentID *uuid.UUID `json:"parent"`
}

// AddComment posts a comment on a post. With a parent reference it
// becomes a reply; the parent must belong to the same post.
//
//	@Summary  Add a comment to a post
//	@Tags     comments
//	@Accept   json
//	@Produce  json
//	@Param    id  path  string  true  "Post ID"
//	@Router   /api/posts/{id}/comments [post]
func (a *API) AddComment(w http.ResponseWriter, r *http.Request) {
	postID, err := api.ParseID(r, "id")
	if err != nil {
		api.BadRequest(w, err.Error())
		return
	}

	var req commentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.BadRequest(w, "invalid JSON body")
		return
	}
	if msg := checkRequired("author", req.Author); msg != "" {
		api.BadRequest(w, msg)
		return
	}
	if msg := checkRequired("content", req.Content); msg != "" {
		api.BadRequest(w, msg)
		return
	}

	created, err := a.comments.Add(&models.Comment{
		PostID:   postID,
		Author:   req.Author,
		Content:  req.Content,
		ParentID: req.ParentID,
	})
	if errors.Is(err, store.ErrPostNotFound) {
		api.NotFound(w, "post not found")
		return
	}
	if errors.Is(err, store.ErrParentNotFound) {
		api.NotFound(w, "parent comment not found")
		return
	}
	if err != nil {
		api.Internal(w, err)
		return
	}
	api.Created(w, "comment added", created)
}

// ListComments returns every comment on a post in creation order, each
// with its direct replies attached.
//
//	@Summary  List comments on a post
//	@Tags     comments
//	@Produce  json
//	@Param    id  path  string  true  "Post ID"
//	@Router   /api/posts/{id}/comments [get]
func (a *API) ListComments(w http.ResponseWriter, r *http.Request) {
	postID, err := api.ParseID(r, "id")
	if err != nil {
		api.BadRequest(w, err.Error())
		return
	}

	items, err := a.comments.ListByPost(postID)
	if errors.Is(err, store.ErrPostNotFound) {
		api.NotFound(w, "post not found")
		return
	}
	if err != nil {
		api.Internal(w, err)
		return
	}
	if items == nil {
		items = []models.Comment{}
	}
	api.OK(w, "comments fetched", items)
}

// GetComment returns a single comment with its direct replies.
//
//	@Summary  Get a comment
//	@Tags     comments
//	@Produce  json
//	@Param    id  path  string  true  "Comment ID"
//	@Router   /api/comments/{id} [get]
func (a *API) GetComment(w http.ResponseWriter, r *http.Request) {
	id, err := api.ParseID(r, "id")
	if err != nil {
		api.BadRequest(w, err.Error())
		return
	}

	comment, err := a.comments.FindByID(id)
	if err != nil {
		api.Internal(w, err)
		return
	}
	if comment == nil {
		api.NotFound(w, "comment not found")
		return
	}
	api.OK(w, "comment fetched", comment)
}

// LikeComment increments the comment's like counter.
//
//	@Summary  Like a comment
//	@Tags     comments
//	@Produce  json
//	@Param    id  path  string  true  "Comment ID"
//	@Router   /api/comments/{id}/like [post]
func (a *API) LikeComment(w http.ResponseWriter, r *http.Request) {
	id, err := api.ParseID(r, "id")
	if err != nil {
		api.BadRequest(w, err.Error())
		return
	}

	comment, err := a.comments.Like(id)
	if err != nil {
		api.Internal(w, err)
		return
	}
	if comment == nil {
		api.NotFound(w, "comment not found")
		return
	}
	api.OK(w, "comment liked", comment)
}

// DeleteComment removes a comment and its replies.
//
//	@Summary  Delete a comment
//	@Tags     comments
//	@Produce  json
//	@Param    id  path  string  true  "Comment ID"
//	@Router   /api/comments/{id} [delete]
func (a *API) DeleteComment(w http.ResponseWriter, r *http.Request) {
	id, err := api.ParseID(r, "id")
	if err != nil {
		api.BadRequest(w, err.Error())
		return
	}

	deleted, err := a.comments.Delete(id)
	if err != nil {
		api.Internal(w, err)
		return
	}
	if deleted == nil {
		api.NotFound(w, "comment not found")
		return
	}
	api.OK(w, "comment deleted", deleted)
}
