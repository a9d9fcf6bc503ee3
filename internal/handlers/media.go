// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"inkpress/internal/api"
	"inkpress/internal/models"
	"inkpress/internal/storage"
)

// maxUploadSize is the maximum allowed file upload size (50 MB).
const maxUploadSize = 50 << 20

// allowedMediaTypes defines MIME types accepted for upload.
var allowedMediaTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/gif":       true,
	"image/webp":      true,
	"image/svg+xml":   true,
	"application/pdf": true,
}

// ListMedia returns a page of media records.
//
//	@Summary  List media
//	@Tags     media
//	@Produce  json
//	@Router   /api/media [get]
func (a *API) ListMedia(w http.ResponseWriter, r *http.Request) {
	page, limit := api.Pagination(r)

	items, err := a.media.List(limit, api.Offset(page, limit))
	if err != nil {
		api.Internal(w, err)
		return
	}
	total, err := a.media.Count()
	if err != nil {
		api.Internal(w, err)
		return
	}
	if items == nil {
		items = []models.Media{}
	}
	api.List(w, "media fetched", items, api.NewMeta(page, limit, total))
}

// GetMedia returns a single media record.
//
//	@Summary  Get a media record
//	@Tags     media
//	@Produce  json
//	@Param    id  path  string  true  "Media ID"
//	@Router   /api/media/{id} [get]
func (a *API) GetMedia(w http.ResponseWriter, r *http.Request) {
	id, err := api.ParseID(r, "id")
	if err != nil {
		api.BadRequest(w, err.Error())
		return
	}

	media, err := a.media.FindByID(id)
	if err != nil {
		api.Internal(w, err)
		return
	}
	if media == nil {
		api.NotFound(w, "media not found")
		return
	}
	api.OK(w, "media fetched", media)
}

// UploadMedia stores an uploaded file and its metadata. Images larger
// than the thumbnail width also get a JPEG thumbnail.
//
//	@Summary  Upload a media file
//	@Tags     media
//	@Accept   multipart/form-data
//	@Produce  json
//	@Router   /api/media/upload [post]
func (a *API) UploadMedia(w http.ResponseWriter, r *http.Request) {
	data, contentType, filename, ok := a.readUpload(w, r)
	if !ok {
		return
	}

	// DetectContentType reports SVGs as XML or plain text.
	if strings.HasSuffix(strings.ToLower(filename), ".svg") &&
		(strings.Contains(contentType, "xml") || strings.Contains(contentType, "text/plain")) {
		contentType = "image/svg+xml"
	}
	if !allowedMediaTypes[contentType] {
		api.BadRequest(w, fmt.Sprintf("file type %q is not allowed", contentType))
		return
	}

	now := time.Now()
	ext := filepath.Ext(filename)
	if ext == "" {
		ext = storage.ExtensionFromType(contentType)
	}
	fileID := uuid.New().String()
	key := fmt.Sprintf("media/%d/%02d/%s%s", now.Year(), now.Month(), fileID, ext)

	ctx := r.Context()
	if err := a.files.Save(ctx, key, contentType, bytes.NewReader(data), int64(len(data))); err != nil {
		api.Internal(w, err)
		return
	}

	// Thumbnail failures are logged, not fatal; the original is already
	// stored.
	var thumbPath *string
	if storage.Thumbable(contentType) {
		thumb, err := storage.GenerateThumbnail(bytes.NewReader(data), storage.ThumbMaxWidth)
		if err != nil {
			slog.Warn("thumbnail generation failed", "error", err, "key", key)
		} else if thumb != nil {
			tk := fmt.Sprintf("media/%d/%02d/%s_thumb.jpg", now.Year(), now.Month(), fileID)
			if err := a.files.Save(ctx, tk, "image/jpeg", bytes.NewReader(thumb), int64(len(thumb))); err != nil {
				slog.Warn("thumbnail upload failed", "error", err, "key", tk)
			} else {
				thumbPath = &tk
			}
		}
	}

	created, err := a.media.Create(&models.Media{
		Filename:  filename,
		Filepath:  key,
		Mimetype:  contentType,
		SizeBytes: int64(len(data)),
		ThumbPath: thumbPath,
	})
	if err != nil {
		// Metadata insert failed; remove the orphaned files.
		if rmErr := a.files.Remove(ctx, key); rmErr != nil {
			slog.Warn("orphan cleanup failed", "error", rmErr, "key", key)
		}
		if thumbPath != nil {
			a.files.Remove(ctx, *thumbPath)
		}
		api.Internal(w, err)
		return
	}
	api.Created(w, "media uploaded", created)
}

// UpdateMedia renames a media record. The stored file keeps its key.
//
//	@Summary  Update media metadata
//	@Tags     media
//	@Accept   json
//	@Produce  json
//	@Param    id  path  string  true  "Media ID"
//	@Router   /api/media/{id} [put]
func (a *API) UpdateMedia(w http.ResponseWriter, r *http.Request) {
	id, err := api.ParseID(r, "id")
	if err != nil {
		api.BadRequest(w, err.Error())
		return
	}

	var req struct {
		Filename *string `json:"filename"`
		Mimetype *string `json:"mimetype"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.BadRequest(w, "invalid JSON body")
		return
	}
	if req.Filename == nil && req.Mimetype == nil {
		api.BadRequest(w, "no fields to update")
		return
	}

	existing, err := a.media.FindByID(id)
	if err != nil {
		api.Internal(w, err)
		return
	}
	if existing == nil {
		api.NotFound(w, "media not found")
		return
	}

	if req.Filename != nil {
		existing.Filename = *req.Filename
	}
	if req.Mimetype != nil {
		existing.Mimetype = *req.Mimetype
	}
	if msg := checkRequired("filename", existing.Filename); msg != "" {
		api.BadRequest(w, msg)
		return
	}

	updated, err := a.media.Update(existing)
	if err != nil {
		api.Internal(w, err)
		return
	}
	if updated == nil {
		api.NotFound(w, "media not found")
		return
	}
	api.OK(w, "media updated", updated)
}

// DeleteMedia removes a media record and its stored files.
//
//	@Summary  Delete a media file
//	@Tags     media
//	@Produce  json
//	@Param    id  path  string  true  "Media ID"
//	@Router   /api/media/{id} [delete]
func (a *API) DeleteMedia(w http.ResponseWriter, r *http.Request) {
	id, err := api.ParseID(r, "id")
	if err != nil {
		api.BadRequest(w, err.Error())
		return
	}

	deleted, err := a.media.Delete(id)
	if err != nil {
		api.Internal(w, err)
		return
	}
	if deleted == nil {
		api.NotFound(w, "media not found")
		return
	}

	// File cleanup is best-effort; the metadata row is already gone.
	ctx := r.Context()
	if err := a.files.Remove(ctx, deleted.Filepath); err != nil {
		slog.Warn("file delete failed", "error", err, "key", deleted.Filepath)
	}
	if deleted.ThumbPath != nil {
		if err := a.files.Remove(ctx, *deleted.ThumbPath); err != nil {
			slog.Warn("thumbnail delete failed", "error", err, "key", *deleted.ThumbPath)
		}
	}
	api.OK(w, "media deleted", deleted)
}
