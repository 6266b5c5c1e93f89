// Warelay - WhatsApp Ingestion Relay and Live Dashboard
// Copyright 2026 Warelay Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/warelay/warelay

// Package api provides HTTP handlers for the relay.
//
// Handler methods are split across multiple files:
//   - handlers.go: Handler struct and constructor (this file)
//   - handlers_ingest.go: Webhook ingestion endpoint
//   - handlers_read.go: Health, recent messages, media listing, QR slot
//   - dashboard.go: Embedded live dashboard
//   - router.go: Chi route wiring
package api

import (
	"github.com/warelay/warelay/internal/auth"
	"github.com/warelay/warelay/internal/buffer"
	"github.com/warelay/warelay/internal/config"
	"github.com/warelay/warelay/internal/ocr"
	"github.com/warelay/warelay/internal/qr"
	"github.com/warelay/warelay/internal/storage"
)

// Handler contains dependencies for API handlers
type Handler struct {
	config   *config.Config
	gate     *auth.Gate
	buffer   *buffer.Buffer
	qr       *qr.Slot
	store    *storage.Router
	ocr      ocr.Extractor
	localDir string
}

// NewHandler creates a new API handler with all required dependencies.
//
// Dependencies:
//   - cfg: Application configuration
//   - gate: HMAC signature gate for write endpoints
//   - buf: Recent events buffer
//   - slot: QR pairing-code slot
//   - store: Media storage router (size ceiling + backend)
//   - extractor: OCR extractor, may be ocr.Disabled
//   - localDir: Directory served under /media and listed by /media/list
func NewHandler(cfg *config.Config, gate *auth.Gate, buf *buffer.Buffer, slot *qr.Slot, store *storage.Router, extractor ocr.Extractor, localDir string) *Handler {
	return &Handler{
		config:   cfg,
		gate:     gate,
		buffer:   buf,
		qr:       slot,
		store:    store,
		ocr:      extractor,
		localDir: localDir,
	}
}
