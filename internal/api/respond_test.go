package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var env Envelope
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return env
}

func TestOK(t *testing.T) {
	rec := httptest.NewRecorder()
	OK(rec, "fetched", map[string]string{"k": "v"})

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected JSON content type, got %q", ct)
	}
	env := decode(t, rec)
	if !env.Success || env.Message != "fetched" {
		t.Errorf("unexpected envelope %+v", env)
	}
	if env.Data == nil {
		t.Error("expected data to be present")
	}
}

func TestErrorEnvelopes(t *testing.T) {
	tests := []struct {
		name   string
		fn     func(w http.ResponseWriter)
		status int
	}{
		{"bad request", func(w http.ResponseWriter) { BadRequest(w, "nope") }, http.StatusBadRequest},
		{"not found", func(w http.ResponseWriter) { NotFound(w, "missing") }, http.StatusNotFound},
		{"conflict", func(w http.ResponseWriter) { Conflict(w, "taken") }, http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tt.fn(rec)
			if rec.Code != tt.status {
				t.Errorf("expected %d, got %d", tt.status, rec.Code)
			}
			env := decode(t, rec)
			if env.Success {
				t.Error("error envelope marked success")
			}
			if env.Message == "" {
				t.Error("expected a message")
			}
		})
	}
}

func TestListMeta(t *testing.T) {
	rec := httptest.NewRecorder()
	List(rec, "listed", []int{1, 2, 3}, NewMeta(2, 10, 25))

	env := decode(t, rec)
	if env.Meta == nil {
		t.Fatal("expected meta on list response")
	}
	if env.Meta.Page != 2 || env.Meta.Limit != 10 || env.Meta.Total != 25 {
		t.Errorf("unexpected meta %+v", env.Meta)
	}
	if env.Meta.TotalPages != 3 {
		t.Errorf("expected 3 total pages, got %d", env.Meta.TotalPages)
	}
}

func TestNewMeta(t *testing.T) {
	tests := []struct {
		total, limit, pages int
	}{
		{0, 10, 0},
		{10, 10, 1},
		{11, 10, 2},
		{100, 10, 10},
	}
	for _, tt := range tests {
		if got := NewMeta(1, tt.limit, tt.total).TotalPages; got != tt.pages {
			t.Errorf("NewMeta(1, %d, %d).TotalPages = %d, want %d",
				tt.limit, tt.total, got, tt.pages)
		}
	}
}

func TestPagination(t *testing.T) {
	tests := []struct {
		query string
		page  int
		limit int
	}{
		{"", 1, 10},
		{"?page=3&limit=20", 3, 20},
		{"?page=0&limit=-5", 1, 10},
		{"?page=abc&limit=xyz", 1, 10},
		{"?limit=500", 1, 100},
	}

	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, "/posts"+tt.query, nil)
		page, limit := Pagination(r)
		if page != tt.page || limit != tt.limit {
			t.Errorf("Pagination(%q) = (%d, %d), want (%d, %d)",
				tt.query, page, limit, tt.page, tt.limit)
		}
	}
}
