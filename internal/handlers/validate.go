// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Field length limits, shared between create and update validation.
const (
	nameMinLen     = 3
	nameMaxLen     = 50
	titleMaxLen    = 100
	metaDescMaxLen = 250
	descMaxLen     = 250
)

// checkRequired returns an error message if the trimmed value is blank.
func checkRequired(field, value string) string {
	if strings.TrimSpace(value) == "" {
		return field + " is required"
	}
	return ""
}

// checkLen returns an error message if the trimmed value falls outside
// [min, max] runes. A blank value is reported as missing.
func checkLen(field, value string, min, max int) string {
	v := strings.TrimSpace(value)
	if v == "" {
		return field + " is required"
	}
	n := utf8.RuneCountInString(v)
	if n < min || n > max {
		return fmt.Sprintf("%s must be between %d and %d characters", field, min, max)
	}
	return ""
}

// checkMaxLen returns an error message if the trimmed value exceeds max
// runes. Blank values pass; use checkRequired for mandatory fields.
func checkMaxLen(field, value string, max int) string {
	if utf8.RuneCountInString(strings.TrimSpace(value)) > max {
		return fmt.Sprintf("%s must be at most %d characters", field, max)
	}
	return ""
}
