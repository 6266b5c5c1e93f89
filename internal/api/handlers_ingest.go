// Warelay - WhatsApp Ingestion Relay and Live Dashboard
// Copyright 2026 Warelay Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/warelay/warelay

package api

import (
	"encoding/base64"
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"slices"

	"github.com/goccy/go-json"

	"github.com/warelay/warelay/internal/auth"
	"github.com/warelay/warelay/internal/logging"
	"github.com/warelay/warelay/internal/metrics"
	"github.com/warelay/warelay/internal/models"
	"github.com/warelay/warelay/internal/storage"
)

// textIngestResponse acknowledges a buffered text message.
type textIngestResponse struct {
	Status string `json:"status"`
	Kind   string `json:"kind"`
	Echo   string `json:"echo"`
}

// mediaIngestResponse acknowledges a stored media message. Exactly one
// of S3URL and Stored is set, depending on the active backend.
type mediaIngestResponse struct {
	Status  string `json:"status"`
	Kind    string `json:"kind"`
	S3URL   string `json:"s3_url,omitempty"`
	Stored  string `json:"stored,omitempty"`
	OCRText string `json:"ocr_text,omitempty"`
}

// skippedIngestResponse reports a group message filtered by the whitelist.
type skippedIngestResponse struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
	Group  string `json:"group"`
}

// Ingest handles POST /ingesta, the webhook endpoint fed by the bridge.
//
// Processing order: HMAC verification over the raw body, payload
// validation, group whitelist filter, then the kind-specific path.
// Text messages are buffered and echoed back; media messages are
// decoded, size-checked, stored, optionally OCR'd, then buffered.
func (h *Handler) Ingest(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, "Bad payload")
		return
	}

	if err := h.gate.Verify(raw, r.Header.Get(auth.SignatureHeader)); err != nil {
		metrics.IngestRejectedTotal.WithLabelValues("auth").Inc()
		respondError(w, r, http.StatusUnauthorized, ErrCodeUnauthorized, authErrorMessage(err))
		return
	}

	var msg models.Message
	if err := json.Unmarshal(raw, &msg); err != nil {
		metrics.IngestRejectedTotal.WithLabelValues("payload").Inc()
		respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, "Bad payload")
		return
	}
	if err := msg.Validate(); err != nil {
		metrics.IngestRejectedTotal.WithLabelValues("payload").Inc()
		respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, "Bad payload")
		return
	}

	// Group whitelist filter. Non-group messages always pass.
	wl := h.config.Ingest.GroupWhitelist
	if msg.IsGroup && len(wl) > 0 && !slices.Contains(wl, msg.GroupName) {
		metrics.IngestRequestsTotal.WithLabelValues(msg.Type, "skipped").Inc()
		respondJSON(w, http.StatusOK, skippedIngestResponse{
			Status: "skipped",
			Reason: "group not whitelisted",
			Group:  msg.GroupName,
		})
		return
	}

	switch msg.Type {
	case models.KindText:
		h.ingestText(w, r, &msg)
	case models.KindMedia:
		h.ingestMedia(w, r, &msg)
	}
}

func (h *Handler) ingestText(w http.ResponseWriter, r *http.Request, msg *models.Message) {
	h.buffer.Append(models.NewTextEvent(msg))
	metrics.BufferEvents.Set(float64(h.buffer.Len()))
	metrics.IngestRequestsTotal.WithLabelValues(models.KindText, "ok").Inc()

	logging.Ctx(r.Context()).Debug().
		Str("from", msg.From).
		Bool("is_group", msg.IsGroup).
		Msg("Text message buffered")

	respondJSON(w, http.StatusOK, textIngestResponse{
		Status: "ok",
		Kind:   models.KindText,
		Echo:   msg.Text,
	})
}

func (h *Handler) ingestMedia(w http.ResponseWriter, r *http.Request, msg *models.Message) {
	data, err := base64.StdEncoding.DecodeString(msg.DataBase64)
	if err != nil {
		metrics.IngestRejectedTotal.WithLabelValues("payload").Inc()
		respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, "Bad payload")
		return
	}

	loc, err := h.store.Put(r.Context(), data, msg.Mimetype, msg.Filename)
	if err != nil {
		if errors.Is(err, storage.ErrTooLarge) {
			metrics.IngestRejectedTotal.WithLabelValues("too_large").Inc()
			respondError(w, r, http.StatusRequestEntityTooLarge, ErrCodePayloadTooLarge, "Media too large")
			return
		}
		metrics.IngestRequestsTotal.WithLabelValues(models.KindMedia, "error").Inc()
		logging.Ctx(r.Context()).Error().Err(err).Msg("Media storage failed")
		respondError(w, r, http.StatusBadGateway, ErrCodeStorageFailed, "Media storage failed")
		return
	}

	backend := "local"
	if loc.Remote {
		backend = "s3"
	}
	metrics.RecordMediaStored(backend, len(data))

	// Best effort: empty text means disabled, failed, or nothing found.
	ocrText := h.ocr.Extract(r.Context(), data, msg.Mimetype)

	resp := mediaIngestResponse{Status: "ok", Kind: models.KindMedia, OCRText: ocrText}
	filename := msg.Filename
	if loc.Remote {
		resp.S3URL = loc.URL
	} else {
		resp.Stored = filepath.Join(h.localDir, loc.Name)
		filename = loc.Name
	}

	h.buffer.Append(models.NewMediaEvent(msg, filename, loc.URL, ocrText))
	metrics.BufferEvents.Set(float64(h.buffer.Len()))
	metrics.IngestRequestsTotal.WithLabelValues(models.KindMedia, "ok").Inc()

	logging.Ctx(r.Context()).Info().
		Str("backend", backend).
		Str("mimetype", msg.Mimetype).
		Int("size", len(data)).
		Msg("Media stored")

	respondJSON(w, http.StatusOK, resp)
}

// authErrorMessage maps gate errors to the stable client-facing wording.
func authErrorMessage(err error) string {
	if errors.Is(err, auth.ErrMissingSignature) {
		return "Missing signature"
	}
	return "Invalid signature"
}
