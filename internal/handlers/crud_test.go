package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"inkpress/internal/models"
)

func TestCategoryLifecycle(t *testing.T) {
	srv, db := newTestEnv(t)
	t.Cleanup(func() {
		db.Exec("DELETE FROM categories WHERE name IN ($1, $2)", "Tech", "Technology")
	})

	// Create yields 201 with the derived slug.
	status, env := doJSON(t, http.MethodPost, srv.URL+"/api/categories",
		map[string]string{"name": "Tech"})
	if status != http.StatusCreated {
		t.Fatalf("create: status %d, message %q", status, env.Message)
	}
	var created models.Category
	if err := json.Unmarshal(env.Data, &created); err != nil {
		t.Fatalf("unmarshal created: %v", err)
	}
	if created.Slug != "tech" {
		t.Errorf("slug = %q, want %q", created.Slug, "tech")
	}

	// Exact duplicate and whitespace-padded duplicate both 409.
	status, _ = doJSON(t, http.MethodPost, srv.URL+"/api/categories",
		map[string]string{"name": "Tech"})
	if status != http.StatusConflict {
		t.Errorf("duplicate: status %d, want 409", status)
	}
	status, _ = doJSON(t, http.MethodPost, srv.URL+"/api/categories",
		map[string]string{"name": "  Tech  "})
	if status != http.StatusConflict {
		t.Errorf("padded duplicate: status %d, want 409", status)
	}

	// Name too short is rejected before any persistence.
	status, env = doJSON(t, http.MethodPost, srv.URL+"/api/categories",
		map[string]string{"name": "ab"})
	if status != http.StatusBadRequest {
		t.Errorf("short name: status %d, want 400", status)
	}
	if env.Success {
		t.Error("validation failure marked success")
	}

	// Patch with no fields is rejected.
	status, _ = doJSON(t, http.MethodPatch, srv.URL+"/api/categories/"+created.ID.String(),
		map[string]string{})
	if status != http.StatusBadRequest {
		t.Errorf("empty patch: status %d, want 400", status)
	}

	// Patch with one field keeps the rest.
	status, env = doJSON(t, http.MethodPatch, srv.URL+"/api/categories/"+created.ID.String(),
		map[string]string{"description": "All about computing"})
	if status != http.StatusOK {
		t.Fatalf("patch: status %d, message %q", status, env.Message)
	}
	var patched models.Category
	if err := json.Unmarshal(env.Data, &patched); err != nil {
		t.Fatalf("unmarshal patched: %v", err)
	}
	if patched.Name != "Tech" || patched.Description != "All about computing" {
		t.Errorf("patched = %+v", patched)
	}
	if patched.Slug != "tech" {
		t.Errorf("slug changed on patch: %q", patched.Slug)
	}

	// Put renames; the slug stays.
	status, env = doJSON(t, http.MethodPut, srv.URL+"/api/categories/"+created.ID.String(),
		map[string]string{"name": "Technology"})
	if status != http.StatusOK {
		t.Fatalf("put: status %d, message %q", status, env.Message)
	}
	var renamed models.Category
	if err := json.Unmarshal(env.Data, &renamed); err != nil {
		t.Fatalf("unmarshal renamed: %v", err)
	}
	if renamed.Name != "Technology" || renamed.Slug != "tech" {
		t.Errorf("renamed = %+v", renamed)
	}

	// Delete returns the removed record; a second read 404s.
	status, _ = doJSON(t, http.MethodDelete, srv.URL+"/api/categories/"+created.ID.String(), nil)
	if status != http.StatusOK {
		t.Errorf("delete: status %d, want 200", status)
	}
	status, _ = doJSON(t, http.MethodGet, srv.URL+"/api/categories/"+created.ID.String(), nil)
	if status != http.StatusNotFound {
		t.Errorf("get after delete: status %d, want 404", status)
	}
}

func TestMalformedAndMissingIDs(t *testing.T) {
	srv, _ := newTestEnv(t)

	status, env := doJSON(t, http.MethodGet, srv.URL+"/api/posts/not-a-uuid", nil)
	if status != http.StatusBadRequest {
		t.Errorf("malformed id: status %d, want 400", status)
	}
	if env.Success {
		t.Error("malformed id marked success")
	}

	status, _ = doJSON(t, http.MethodGet,
		srv.URL+"/api/posts/00000000-0000-0000-0000-000000000001", nil)
	if status != http.StatusNotFound {
		t.Errorf("unknown id: status %d, want 404", status)
	}
}

func TestPostLifecycle(t *testing.T) {
	srv, db := newTestEnv(t)
	t.Cleanup(func() {
		db.Exec("DELETE FROM posts WHERE title = $1", "Shipping v2")
		db.Exec("DELETE FROM tags WHERE name = $1", "Releases")
	})

	// Missing author fails validation.
	status, _ := doJSON(t, http.MethodPost, srv.URL+"/api/posts",
		map[string]any{"title": "Shipping v2", "content": "We shipped."})
	if status != http.StatusBadRequest {
		t.Errorf("missing author: status %d, want 400", status)
	}

	status, env := doJSON(t, http.MethodPost, srv.URL+"/api/tags",
		map[string]string{"name": "Releases"})
	if status != http.StatusCreated {
		t.Fatalf("create tag: status %d", status)
	}
	var tag models.Tag
	if err := json.Unmarshal(env.Data, &tag); err != nil {
		t.Fatalf("unmarshal tag: %v", err)
	}

	status, env = doJSON(t, http.MethodPost, srv.URL+"/api/posts", map[string]any{
		"title":   "Shipping v2",
		"content": "# Release\n\nWe **shipped**.",
		"author":  "jane",
		"tags":    []string{tag.ID.String()},
		"status":  "published",
	})
	if status != http.StatusCreated {
		t.Fatalf("create post: status %d, message %q", status, env.Message)
	}
	var post models.Post
	if err := json.Unmarshal(env.Data, &post); err != nil {
		t.Fatalf("unmarshal post: %v", err)
	}
	if post.Slug != "shipping-v2" {
		t.Errorf("slug = %q", post.Slug)
	}
	if len(post.Tags) != 1 {
		t.Errorf("tags = %v", post.Tags)
	}

	// Invalid status value is rejected.
	status, _ = doJSON(t, http.MethodPatch, srv.URL+"/api/posts/"+post.ID.String(),
		map[string]string{"status": "archived"})
	if status != http.StatusBadRequest {
		t.Errorf("bad status: status %d, want 400", status)
	}

	// Detail read renders markdown and bumps the view counter.
	status, env = doJSON(t, http.MethodGet, srv.URL+"/api/posts/"+post.ID.String(), nil)
	if status != http.StatusOK {
		t.Fatalf("get post: status %d", status)
	}
	var detail models.Post
	if err := json.Unmarshal(env.Data, &detail); err != nil {
		t.Fatalf("unmarshal detail: %v", err)
	}
	if detail.Views != 1 {
		t.Errorf("views = %d, want 1", detail.Views)
	}
	if detail.ContentHTML == nil || *detail.ContentHTML == "" {
		t.Error("expected rendered content")
	}

	// Likes increment atomically through the endpoint.
	doJSON(t, http.MethodPost, srv.URL+"/api/posts/"+post.ID.String()+"/like", nil)
	status, env = doJSON(t, http.MethodPost, srv.URL+"/api/posts/"+post.ID.String()+"/like", nil)
	if status != http.StatusOK {
		t.Fatalf("like: status %d", status)
	}
	var liked models.Post
	if err := json.Unmarshal(env.Data, &liked); err != nil {
		t.Fatalf("unmarshal liked: %v", err)
	}
	if liked.Likes != 2 {
		t.Errorf("likes = %d, want 2", liked.Likes)
	}
}

func TestListPagination(t *testing.T) {
	srv, db := newTestEnv(t)
	t.Cleanup(func() {
		db.Exec("DELETE FROM tags WHERE name LIKE 'Paging Tag %'")
	})

	names := []string{"Paging Tag One", "Paging Tag Two", "Paging Tag Three"}
	for _, name := range names {
		status, _ := doJSON(t, http.MethodPost, srv.URL+"/api/tags",
			map[string]string{"name": name})
		if status != http.StatusCreated {
			t.Fatalf("create tag %q: status %d", name, status)
		}
	}

	status, env := doJSON(t, http.MethodGet, srv.URL+"/api/tags?page=1&limit=2", nil)
	if status != http.StatusOK {
		t.Fatalf("list: status %d", status)
	}
	if env.Meta == nil {
		t.Fatal("expected pagination meta")
	}
	if env.Meta.Page != 1 || env.Meta.Limit != 2 {
		t.Errorf("meta = %+v", env.Meta)
	}
	if env.Meta.Total < 3 {
		t.Errorf("total = %d, want >= 3", env.Meta.Total)
	}

	var items []models.Tag
	if err := json.Unmarshal(env.Data, &items); err != nil {
		t.Fatalf("unmarshal items: %v", err)
	}
	if len(items) != 2 {
		t.Errorf("page size = %d, want 2", len(items))
	}
}
