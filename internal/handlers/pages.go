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

type pageRequest struct {
	Title           *string `json:"title"`
	Content         *string `json:"content"`
	MetaDescription *string `json:"meta_description"`
}

func (req *pageRequest) empty() bool {
	return req.Title == nil && req.Content == nil && req.MetaDescription == nil
}

// ListPages returns a page of pages.
//
//	@Summary  List pages
//	@Tags     pages
//	@Produce  json
//	@Router   /api/pages [get]
func (a *API) ListPages(w http.ResponseWriter, r *http.Request) {
	page, limit := api.Pagination(r)

	items, err := a.pages.List(limit, api.Offset(page, limit))
	if err != nil {
		api.Internal(w, err)
		return
	}
	total, err := a.pages.Count()
	if err != nil {
		api.Internal(w, err)
		return
	}
	if items == nil {
		items = []models.Page{}
	}
	api.List(w, "pages fetched", items, api.NewMeta(page, limit, total))
}

// GetPage returns a single page by ID.
//
//	@Summary  Get a page
//	@Tags     pages
//	@Produce  json
//	@Param    id  path  string  true  "Page ID"
//	@Router   /api/pages/{id} [get]
func (a *API) GetPage(w http.ResponseWriter, r *http.Request) {
	id, err := api.ParseID(r, "id")
	if err != nil {
		api.BadRequest(w, err.Error())
		return
	}

	page, err := a.pages.FindByID(id)
	if err != nil {
		api.Internal(w, err)
		return
	}
	if page == nil {
		api.NotFound(w, "page not found")
		return
	}
	api.OK(w, "page fetched", page)
}

// CreatePage creates a new standalone page.
//
//	@Summary  Create a page
//	@Tags     pages
//	@Accept   json
//	@Produce  json
//	@Router   /api/pages [post]
func (a *API) CreatePage(w http.ResponseWriter, r *http.Request) {
	var req pageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.BadRequest(w, "invalid JSON body")
		return
	}

	page := models.Page{}
	if req.Title != nil {
		page.Title = *req.Title
	}
	if req.Content != nil {
		page.Content = *req.Content
	}
	if req.MetaDescription != nil {
		page.MetaDescription = *req.MetaDescription
	}
	if msg := validatePage(&page); msg != "" {
		api.BadRequest(w, msg)
		return
	}

	created, err := a.pages.Create(&page)
	if errors.Is(err, store.ErrDuplicate) {
		api.Conflict(w, "page title already exists")
		return
	}
	if err != nil {
		api.Internal(w, err)
		return
	}
	api.Created(w, "page created", created)
}

// UpdatePage replaces or partially updates a page. Absent fields keep
// their stored values; a partial update with no fields is rejected.
//
//	@Summary  Update a page
//	@Tags     pages
//	@Accept   json
//	@Produce  json
//	@Param    id  path  string  true  "Page ID"
//	@Router   /api/pages/{id} [put]
func (a *API) UpdatePage(w http.ResponseWriter, r *http.Request) {
	id, err := api.ParseID(r, "id")
	if err != nil {
		api.BadRequest(w, err.Error())
		return
	}

	var req pageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.BadRequest(w, "invalid JSON body")
		return
	}
	if r.Method == http.MethodPatch && req.empty() {
		api.BadRequest(w, "no fields to update")
		return
	}

	existing, err := a.pages.FindByID(id)
	if err != nil {
		api.Internal(w, err)
		return
	}
	if existing == nil {
		api.NotFound(w, "page not found")
		return
	}

	if req.Title != nil {
		existing.Title = *req.Title
	}
	if req.Content != nil {
		existing.Content = *req.Content
	}
	if req.MetaDescription != nil {
		existing.MetaDescription = *req.MetaDescription
	}
	if msg := validatePage(existing); msg != "" {
		api.BadRequest(w, msg)
		return
	}

	updated, err := a.pages.Update(existing)
	if errors.Is(err, store.ErrDuplicate) {
		api.Conflict(w, "page title already exists")
		return
	}
	if err != nil {
		api.Internal(w, err)
		return
	}
	if updated == nil {
		api.NotFound(w, "page not found")
		return
	}
	api.OK(w, "page updated", updated)
}

// DeletePage removes a page.
//
//	@Summary  Delete a page
//	@Tags     pages
//	@Produce  json
//	@Param    id  path  string  true  "Page ID"
//	@Router   /api/pages/{id} [delete]
func (a *API) DeletePage(w http.ResponseWriter, r *http.Request) {
	id, err := api.ParseID(r, "id")
	if err != nil {
		api.BadRequest(w, err.Error())
		return
	}

	deleted, err := a.pages.Delete(id)
	if err != nil {
		api.Internal(w, err)
		return
	}
	if deleted == nil {
		api.NotFound(w, "page not found")
		return
	}
	api.OK(w, "page deleted", deleted)
}

func validatePage(p *models.Page) string {
	if msg := checkLen("title", p.Title, nameMinLen, titleMaxLen); msg != "" {
		return msg
	}
	if msg := checkRequired("content", p.Content); msg != "" {
		return msg
	}
	return checkMaxLen("meta_description", p.MetaDescription, metaDescMaxLen)
}
