// Warelay - WhatsApp Ingestion Relay and Live Dashboard
// Copyright 2026 Warelay Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/warelay/warelay

package api

import (
	"io"
	"net/http"
	"os"
	"sort"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/warelay/warelay/internal/auth"
	"github.com/warelay/warelay/internal/logging"
	"github.com/warelay/warelay/internal/models"
)

const (
	defaultRecentLimit = 100
	maxRecentLimit     = 1000
)

// healthResponse is the GET /health body.
type healthResponse struct {
	OK bool `json:"ok"`
}

// recentResponse is the GET /messages/recent body, most recent first.
type recentResponse struct {
	Items []models.Event `json:"items"`
}

// mediaEntry is one file in the GET /media/list body.
type mediaEntry struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Size int64  `json:"size"`
}

type mediaListResponse struct {
	Items []mediaEntry `json:"items"`
}

// qrResponse is the GET /qr body. Both fields are null until a pairing
// code is posted, and revert to null once the slot is cleared.
type qrResponse struct {
	QR *string  `json:"qr"`
	TS *float64 `json:"ts"`
}

// qrUpdate is the POST /qr payload. An absent or empty qr clears the slot.
type qrUpdate struct {
	QR string `json:"qr"`
}

type okResponse struct {
	OK bool `json:"ok"`
}

// Health handles GET /health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, healthResponse{OK: true})
}

// RecentMessages handles GET /messages/recent. The limit parameter
// defaults to 100 and is clamped to [1, 1000]; a non-numeric value is
// rejected rather than silently defaulted.
func (h *Handler) RecentMessages(w http.ResponseWriter, r *http.Request) {
	limit := defaultRecentLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, "limit must be an integer")
			return
		}
		limit = n
	}
	if limit < 1 {
		limit = 1
	}
	if limit > maxRecentLimit {
		limit = maxRecentLimit
	}

	respondJSON(w, http.StatusOK, recentResponse{Items: h.buffer.Recent(limit)})
}

// MediaList handles GET /media/list, returning the locally stored files
// sorted by name descending. Files that disappear between the directory
// read and the stat are skipped.
func (h *Handler) MediaList(w http.ResponseWriter, r *http.Request) {
	items := []mediaEntry{}

	entries, err := os.ReadDir(h.localDir)
	if err != nil {
		// Missing directory means nothing stored yet.
		respondJSON(w, http.StatusOK, mediaListResponse{Items: items})
		return
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() > entries[j].Name()
	})
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		items = append(items, mediaEntry{
			Name: entry.Name(),
			URL:  "/media/" + entry.Name(),
			Size: info.Size(),
		})
	}

	respondJSON(w, http.StatusOK, mediaListResponse{Items: items})
}

// QRGet handles GET /qr.
func (h *Handler) QRGet(w http.ResponseWriter, r *http.Request) {
	var resp qrResponse
	if code, setAt, ok := h.qr.Get(); ok {
		ts := float64(setAt.UnixMilli()) / 1000
		resp.QR = &code
		resp.TS = &ts
	}
	respondJSON(w, http.StatusOK, resp)
}

// QRSet handles POST /qr. The body is HMAC-verified like ingestion;
// posting an empty or absent code clears the slot.
func (h *Handler) QRSet(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, "Bad payload")
		return
	}

	if err := h.gate.Verify(raw, r.Header.Get(auth.SignatureHeader)); err != nil {
		respondError(w, r, http.StatusUnauthorized, ErrCodeUnauthorized, authErrorMessage(err))
		return
	}

	var upd qrUpdate
	if err := json.Unmarshal(raw, &upd); err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, "Bad payload")
		return
	}

	h.qr.Set(upd.QR)
	logging.Ctx(r.Context()).Debug().
		Bool("cleared", upd.QR == "").
		Msg("QR slot updated")

	respondJSON(w, http.StatusOK, okResponse{OK: true})
}
