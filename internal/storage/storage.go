// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package storage abstracts where uploaded files live. The default
// backend writes to a local uploads directory; an S3-compatible backend
// can be enabled through configuration.
package storage

import (
	"context"
	"io"
)

// FileStore stores and removes uploaded files addressed by key. Keys are
// relative paths like "media/2026/08/abc.jpg".
type FileStore interface {
	// Save writes the file under key, overwriting any existing object.
	Save(ctx context.Context, key, contentType string, body io.Reader, size int64) error

	// Remove deletes the file under key. Removing a missing key is not
	// an error.
	Remove(ctx context.Context, key string) error

	// URL returns the public URL for a stored key.
	URL(key string) string
}
