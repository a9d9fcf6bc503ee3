// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"inkpress/internal/api"
	"inkpress/internal/models"
	"inkpress/internal/store"
)

type tagRequest struct {
	Name *string `json:"name"`
}

// ListTags returns a page of tags.
//
//	@Summary  List tags
//	@Tags     tags
//	@Produce  json
//	@Router   /api/tags [get]
func (a *API) ListTags(w http.ResponseWriter, r *http.Request) {
	page, limit := api.Pagination(r)

	items, err := a.tags.List(limit, api.Offset(page, limit))
	if err != nil {
		api.Internal(w, err)
		return
	}
	total, err := a.tags.Count()
	if err != nil {
		api.Internal(w, err)
		return
	}
	if items == nil {
		items = []models.Tag{}
	}
	api.List(w, "tags fetched", items, api.NewMeta(page, limit, total))
}

// GetTag returns a single tag by ID.
//
//	@Summary  Get a tag
//	@Tags     tags
//	@Produce  json
//	@Param    id  path  string  true  "Tag ID"
//	@Router   /api/tags/{id} [get]
func (a *API) GetTag(w http.ResponseWriter, r *http.Request) {
	id, err := api.ParseID(r, "id")
	if err != nil {
		api.BadRequest(w, err.Error())
		return
	}

	tag, err := a.tags.FindByID(id)
	if err != nil {
		api.Internal(w, err)
		return
	}
	if tag == nil {
		api.NotFound(w, "tag not found")
		return
	}
	api.OK(w, "tag fetched", tag)
}

// CreateTag creates a new tag.
//
//	@Summary  Create a tag
//	@Tags     tags
//	@Accept   json
//	@Produce  json
//	@Router   /api/tags [post]
func (a *API) CreateTag(w http.ResponseWriter, r *http.Request) {
	var req tagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.BadRequest(w, "invalid JSON body")
		return
	}

	tag := models.Tag{}
	if req.Name != nil {
		tag.Name = *req.Name
	}
	if msg := checkLen("name", tag.Name, nameMinLen, nameMaxLen); msg != "" {
		api.BadRequest(w, msg)
		return
	}

	created, err := a.tags.Create(&tag)
	if errors.Is(err, store.ErrDuplicate) {
		api.Conflict(w, "tag name already exists")
		return
	}
	if err != nil {
		api.Internal(w, err)
		return
	}
	api.Created(w, "tag created", created)
}

// UpdateTag renames a tag. The slug keeps its original value.
//
//	@Summary  Update a tag
//	@Tags     tags
//	@Accept   json
//	@Produce  json
//	@Param    id  path  string  true  "Tag ID"
//	@Router   /api/tags/{id} [put]
func (a *API) UpdateTag(w http.ResponseWriter, r *http.Request) {
	id, err := api.ParseID(r, "id")
	if err != nil {
		api.BadRequest(w, err.Error())
		return
	}

	var req tagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.BadRequest(w, "invalid JSON body")
		return
	}
	if req.Name == nil {
		api.BadRequest(w, "no fields to update")
		return
	}
	if msg := checkLen("name", *req.Name, nameMinLen, nameMaxLen); msg != "" {
		api.BadRequest(w, msg)
		return
	}

	existing, err := a.tags.FindByID(id)
	if err != nil {
		api.Internal(w, err)
		return
	}
	if existing == nil {
		api.NotFound(w, "tag not found")
		return
	}

	existing.Name = *req.Name
	updated, err := a.tags.Update(existing)
	if errors.Is(err, store.ErrDuplicate) {
		api.Conflict(w, "tag name already exists")
		return
	}
	if err != nil {
		api.Internal(w, err)
		return
	}
	if updated == nil {
		api.NotFound(w, "tag not found")
		return
	}
	api.OK(w, "tag updated", updated)
}

// DeleteTag removes a tag and its post assignments.
//
//	@Summary  Delete a tag
//	@Tags     tags
//	@Produce  json
//	@Param    id  path  string  true  "Tag ID"
//	@Router   /api/tags/{id} [delete]
func (a *API) DeleteTag(w http.ResponseWriter, r *http.Request) {
	id, err := api.ParseID(r, "id")
	if err != nil {
		api.BadRequest(w, err.Error())
		return
	}

	deleted, err := a.tags.Delete(id)
	if err != nil {
		api.Internal(w, err)
		return
	}
	if deleted == nil {
		api.NotFound(w, "tag not found")
		return
	}
	api.OK(w, "tag deleted", deleted)
}
