// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package api defines the JSON response envelope and request parameter
// helpers shared by all HTTP handlers. Every response, success or failure,
// carries the same shape so clients parse one format.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Envelope is the uniform JSON body of every API response.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
	Meta    *Meta  `json:"meta,omitempty"`
}

// Meta carries pagination details on list responses.
type Meta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewMeta builds pagination metadata from the page requested and the total
// row count.
func NewMeta(page, limit, total int) *Meta {
	pages := total / limit
	if total%limit != 0 {
		pages++
	}
	return &Meta{Page: page, Limit: limit, Total: total, TotalPages: pages}
}

func write(w http.ResponseWriter, status int, body Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("encode response", "error", err)
	}
}

// OK writes a 200 success envelope.
func OK(w http.ResponseWriter, message string, data any) {
	write(w, http.StatusOK, Envelope{Success: true, Message: message, Data: data})
}

// Created writes a 201 success envelope.
func Created(w http.ResponseWriter, message string, data any) {
	write(w, http.StatusCreated, Envelope{Success: true, Message: message, Data: data})
}

// List writes a 200 success envelope with pagination metadata.
func List(w http.ResponseWriter, message string, data any, meta *Meta) {
	write(w, http.StatusOK, Envelope{Success: true, Message: message, Data: data, Meta: meta})
}

// BadRequest writes a 400 failure envelope.
func BadRequest(w http.ResponseWriter, message string) {
	write(w, http.StatusBadRequest, Envelope{Message: message})
}

// NotFound writes a 404 failure envelope.
func NotFound(w http.ResponseWriter, message string) {
	write(w, http.StatusNotFound, Envelope{Message: message})
}

// Conflict writes a 409 failure envelope.
func Conflict(w http.ResponseWriter, message string) {
	write(w, http.StatusConflict, Envelope{Message: message})
}

// Fail writes a failure envelope with an arbitrary status code.
func Fail(w http.ResponseWriter, status int, message string) {
	write(w, status, Envelope{Message: message})
}

// Internal logs the underlying error and writes a generic 500 failure
// envelope. The error detail never reaches the client.
func Internal(w http.ResponseWriter, err error) {
	slog.Error("internal error", "error", err)
	write(w, http.StatusInternalServerError, Envelope{Message: "internal server error"})
}
