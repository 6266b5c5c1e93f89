// Warelay - WhatsApp Ingestion Relay and Live Dashboard
// Copyright 2026 Warelay Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/warelay/warelay

// Package auth implements the shared-secret request gate.
//
// Write endpoints (POST /ingesta, POST /qr) carry an x-signature header with
// the hex-encoded HMAC-SHA256 of the exact raw request body. When no secret
// is configured the gate is a no-op: the relay runs as an open system, which
// is the documented posture for isolated deployments.
package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
)

// SignatureHeader is the HTTP header carrying the request signature.
const SignatureHeader = "x-signature"

var (
	// ErrMissingSignature is returned when a secret is configured but the
	// request carries no signature.
	ErrMissingSignature = errors.New("missing signature")

	// ErrInvalidSignature is returned when the provided signature does not
	// match the request body.
	ErrInvalidSignature = errors.New("invalid signature")
)

// Gate verifies HMAC-SHA256 signatures over raw request bodies.
// The zero value (no secret) accepts every request.
type Gate struct {
	secret []byte
}

// NewGate creates a gate for the given shared secret.
// An empty secret disables verification entirely.
func NewGate(secret string) *Gate {
	return &Gate{secret: []byte(secret)}
}

// Enabled reports whether a shared secret is configured.
func (g *Gate) Enabled() bool {
	return len(g.secret) > 0
}

// Verify checks the signature against the raw request body.
// Returns nil when no secret is configured. The comparison is constant-time
// to avoid leaking the expected digest through timing.
func (g *Gate) Verify(rawBody []byte, signature string) error {
	if !g.Enabled() {
		return nil
	}
	if signature == "" {
		return ErrMissingSignature
	}

	mac := hmac.New(sha256.New, g.secret)
	mac.Write(rawBody)
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(signature), []byte(expected)) {
		return ErrInvalidSignature
	}
	return nil
}

// Sign computes the hex-encoded HMAC-SHA256 of body with the gate's secret.
// Used by tests and by clients that embed this package.
func (g *Gate) Sign(body []byte) string {
	mac := hmac.New(sha256.New, g.secret)
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}
