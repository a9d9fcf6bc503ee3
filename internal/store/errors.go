// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store contains the persistence gateways, one per entity type.
// Store methods return (nil, nil) when a record does not exist; duplicate
// name/title/slug conflicts surface as ErrDuplicate.
package store

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrDuplicate is returned when a uniqueness constraint (name, title, or
// slug) would be violated.
var ErrDuplicate = errors.New("duplicate record")

// ErrInvalidReference is returned when a supplied category, tag, post, or
// parent-comment identifier does not resolve to an existing record.
var ErrInvalidReference = errors.New("referenced record does not exist")

// Postgres error codes checked when mapping constraint violations.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation
}
