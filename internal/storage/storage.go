// Warelay - WhatsApp Ingestion Relay and Live Dashboard
// Copyright 2026 Warelay Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/warelay/warelay

// Package storage persists inbound media and resolves retrievable URLs.
//
// Two backends exist: an S3-compatible object store (active when a bucket is
// configured) and a flat local directory (the zero-dependency fallback for
// development and offline use). The Router wraps whichever backend is active
// and enforces the size ceiling before any write is attempted.
//
// Neither backend ever overwrites prior media: S3 keys are random, and the
// local store disambiguates repeated filenames with numeric suffixes.
package storage

import (
	"context"
	"errors"
)

// ErrTooLarge is returned when a payload exceeds the configured size
// ceiling. The check runs before the backend is touched, so a rejected
// payload causes zero storage calls.
var ErrTooLarge = errors.New("media exceeds maximum size")

// Location describes where a stored blob ended up.
type Location struct {
	// Name is the server-resolved object name (collision-free basename in
	// local mode, full object key in S3 mode).
	Name string

	// URL is how the blob is retrieved: a /media/ path in local mode, a
	// public URL or bare key in S3 mode.
	URL string

	// Remote is true when the blob went to object storage.
	Remote bool
}

// Store is the capability of persisting bytes under a content type and
// returning a retrievable location. Implementations must never overwrite
// an existing object.
type Store interface {
	Put(ctx context.Context, data []byte, mimeType, suggestedName string) (Location, error)
}

// Router fronts the active backend with the size ceiling.
// maxSize <= 0 means unlimited.
type Router struct {
	backend Store
	maxSize int64
}

// NewRouter wraps backend with a byte-size ceiling.
func NewRouter(backend Store, maxSize int64) *Router {
	return &Router{backend: backend, maxSize: maxSize}
}

// Put enforces the ceiling, then delegates to the backend.
func (r *Router) Put(ctx context.Context, data []byte, mimeType, suggestedName string) (Location, error) {
	if r.maxSize > 0 && int64(len(data)) > r.maxSize {
		return Location{}, ErrTooLarge
	}
	return r.backend.Put(ctx, data, mimeType, suggestedName)
}
