// Warelay - WhatsApp Ingestion Relay and Live Dashboard
// Copyright 2026 Warelay Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/warelay/warelay

package api

import (
	_ "embed"
	"net/http"
)

// dashboardHTML is the single-page live dashboard. It polls
// /messages/recent and /qr every five seconds and renders the pairing
// QR code client-side.
//
//go:embed dashboard.html
var dashboardHTML []byte

// Dashboard handles GET /dashboard.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(dashboardHTML)
}
