// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug provides URL-friendly slug generation from arbitrary strings,
// plus the collision-resolution policy applied when a generated slug is
// already taken by another record.
package slug

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	// nonAlphanumeric matches anything that isn't a letter, digit, or space.
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9\s-]`)
	// multipleHyphens collapses consecutive hyphens into one.
	multipleHyphens = regexp.MustCompile(`-{2,}`)
)

// Generate creates a URL-friendly slug from the given string.
// Example: "Hello, World! 2026" → "hello-world-2026"
// Inputs that reduce to nothing (all punctuation) fall back to "untitled"
// so every record ends up with a routable slug.
func Generate(s string) string {
	result := strings.ToLower(strings.TrimSpace(s))
	result = nonAlphanumeric.ReplaceAllString(result, "")
	result = strings.ReplaceAll(result, " ", "-")
	result = multipleHyphens.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")
	if result == "" {
		return "untitled"
	}
	return result
}

// Resolve decides the slug to store for a new record. If exists reports the
// candidate as free it is returned unchanged; otherwise a millisecond
// timestamp suffix is appended. The suffixed value is not re-checked; the
// database's unique index is the backstop for same-millisecond collisions.
func Resolve(candidate string, exists func(string) (bool, error)) (string, error) {
	taken, err := exists(candidate)
	if err != nil {
		return "", err
	}
	if !taken {
		return candidate, nil
	}
	return WithSuffix(candidate), nil
}

// WithSuffix appends a millisecond-timestamp disambiguation suffix.
func WithSuffix(candidate string) string {
	return candidate + "-" + strconv.FormatInt(time.Now().UnixMilli(), 10)
}
