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

// categoryRequest carries the mutable category fields. Pointers
// distinguish absent fields from blank values on partial updates.
type categoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// ListCategories returns a page of categories.
//
//	@Summary  List categories
//	@Tags     categories
//	@Produce  json
//	@Param    page   query  int  false  "Page number"
//	@Param    limit  query  int  false  "Items per page"
//	@Router   /api/categories [get]
func (a *API) ListCategories(w http.ResponseWriter, r *http.Request) {
	page, limit := api.Pagination(r)

	items, err := a.categories.List(limit, api.Offset(page, limit))
	if err != nil {
		api.Internal(w, err)
		return
	}
	total, err := a.categories.Count()
	if err != nil {
		api.Internal(w, err)
		return
	}
	if items == nil {
		items = []models.Category{}
	}
	api.List(w, "categories fetched", items, api.NewMeta(page, limit, total))
}

// GetCategory returns a single category by ID.
//
//	@Summary  Get a category
//	@Tags     categories
//	@Produce  json
//	@Param    id  path  string  true  "Category ID"
//	@Router   /api/categories/{id} [get]
func (a *API) GetCategory(w http.ResponseWriter, r *http.Request) {
	id, err := api.ParseID(r, "id")
	if err != nil {
		api.BadRequest(w, err.Error())
		return
	}

	category, err := a.categories.FindByID(id)
	if err != nil {
		api.Internal(w, err)
		return
	}
	if category == nil {
		api.NotFound(w, "category not found")
		return
	}
	api.OK(w, "category fetched", category)
}

// CreateCategory creates a new category.
//
//	@Summary  Create a category
//	@Tags     categories
//	@Accept   json
//	@Produce  json
//	@Router   /api/categories [post]
func (a *API) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.BadRequest(w, "invalid JSON body")
		return
	}

	category := models.Category{}
	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Description != nil {
		category.Description = *req.Description
	}
	if msg := validateCategory(&category); msg != "" {
		api.BadRequest(w, msg)
		return
	}

	created, err := a.categories.Create(&category)
	if errors.Is(err, store.ErrDuplicate) {
		api.Conflict(w, "category name already exists")
		return
	}
	if err != nil {
		api.Internal(w, err)
		return
	}
	api.Created(w, "category created", created)
}

// UpdateCategory replaces or partially updates a category. Absent fields
// keep their stored values; a partial update with no fields is rejected.
//
//	@Summary  Update a category
//	@Tags     categories
//	@Accept   json
//	@Produce  json
//	@Param    id  path  string  true  "Category ID"
//	@Router   /api/categories/{id} [put]
func (a *API) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := api.ParseID(r, "id")
	if err != nil {
		api.BadRequest(w, err.Error())
		return
	}

	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.BadRequest(w, "invalid JSON body")
		return
	}
	if r.Method == http.MethodPatch && req.Name == nil && req.Description == nil {
		api.BadRequest(w, "no fields to update")
		return
	}

	existing, err := a.categories.FindByID(id)
	if err != nil {
		api.Internal(w, err)
		return
	}
	if existing == nil {
		api.NotFound(w, "category not found")
		return
	}

	if req.Name != nil {
		existing.Name = *req.Name
	}
	if req.Description != nil {
		existing.Description = *req.Description
	}
	if msg := validateCategory(existing); msg != "" {
		api.BadRequest(w, msg)
		return
	}

	updated, err := a.categories.Update(existing)
	if errors.Is(err, store.ErrDuplicate) {
		api.Conflict(w, "category name already exists")
		return
	}
	if err != nil {
		api.Internal(w, err)
		return
	}
	if updated == nil {
		api.NotFound(w, "category not found")
		return
	}
	api.OK(w, "category updated", updated)
}

// DeleteCategory removes a category. Posts keep existing but lose the
// category reference.
//
//	@Summary  Delete a category
//	@Tags     categories
//	@Produce  json
//	@Param    id  path  string  true  "Category ID"
//	@Router   /api/categories/{id} [delete]
func (a *API) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := api.ParseID(r, "id")
	if err != nil {
		api.BadRequest(w, err.Error())
		return
	}

	deleted, err := a.categories.Delete(id)
	if err != nil {
		api.Internal(w, err)
		return
	}
	if deleted == nil {
		api.NotFound(w, "category not found")
		return
	}
	api.OK(w, "category deleted", deleted)
}

func validateCategory(c *models.Category) string {
	if msg := checkLen("name", c.Name, nameMinLen, nameMaxLen); msg != "" {
		return msg
	}
	return checkMaxLen("description", c.Description, descMaxLen)
}
