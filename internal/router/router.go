// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router wires the HTTP routes to the API handlers.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"inkpress/internal/api"
	"inkpress/internal/handlers"
	"inkpress/internal/middleware"
	"inkpress/internal/storage"
)

// New builds the chi router with middleware, API routes, and, when files
// are stored locally, a static file server for uploads.
func New(h *handlers.API, files storage.FileStore, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		api.NotFound(w, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		api.Fail(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		api.OK(w, "ok", nil)
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/categories", func(r chi.Router) {
			r.Get("/", h.ListCategories)
			r.Post("/", h.CreateCategory)
			r.Get("/{id}", h.GetCategory)
			r.Put("/{id}", h.UpdateCategory)
			r.Patch("/{id}", h.UpdateCategory)
			r.Delete("/{id}", h.DeleteCategory)
		})

		r.Route("/tags", func(r chi.Router) {
			r.Get("/", h.ListTags)
			r.Post("/", h.CreateTag)
			r.Get("/{id}", h.GetTag)
			r.Put("/{id}", h.UpdateTag)
			r.Patch("/{id}", h.UpdateTag)
			r.Delete("/{id}", h.DeleteTag)
		})

		r.Route("/pages", func(r chi.Router) {
			r.Get("/", h.ListPages)
			r.Post("/", h.CreatePage)
			r.Get("/{id}", h.GetPage)
			r.Put("/{id}", h.UpdatePage)
			r.Patch("/{id}", h.UpdatePage)
			r.Delete("/{id}", h.DeletePage)
		})

		r.Route("/posts", func(r chi.Router) {
			r.Get("/", h.ListPosts)
			r.Post("/", h.CreatePost)
			r.Get("/{id}", h.GetPost)
			r.Put("/{id}", h.UpdatePost)
			r.Patch("/{id}", h.UpdatePost)
			r.Delete("/{id}", h.DeletePost)
			r.Post("/{id}/like", h.LikePost)
			r.Post("/{id}/upload-image", h.UploadPostImage)
			r.Get("/{id}/comments", h.ListComments)
			r.Post("/{id}/comments", h.AddComment)
		})

		r.Route("/comments", func(r chi.Router) {
			r.Get("/{id}", h.GetComment)
			r.Post("/{id}/like", h.LikeComment)
			r.Delete("/{id}", h.DeleteComment)
		})

		r.Route("/media", func(r chi.Router) {
			r.Get("/", h.ListMedia)
			r.Post("/upload", h.UploadMedia)
			r.Get("/{id}", h.GetMedia)
			r.Put("/{id}", h.UpdateMedia)
			r.Delete("/{id}", h.DeleteMedia)
		})
	})

	// Serve uploaded files directly when stored on local disk. S3-backed
	// files are served from the bucket URL instead.
	if local, ok := files.(*storage.LocalStore); ok {
		fs := http.StripPrefix("/uploads/", http.FileServer(http.Dir(local.Dir())))
		r.Get("/uploads/*", fs.ServeHTTP)
	}

	return r
}
