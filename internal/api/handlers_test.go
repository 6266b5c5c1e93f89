// Warelay - WhatsApp Ingestion Relay and Live Dashboard
// Copyright 2026 Warelay Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/warelay/warelay

package api

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/warelay/warelay/internal/auth"
	"github.com/warelay/warelay/internal/buffer"
	"github.com/warelay/warelay/internal/config"
	"github.com/warelay/warelay/internal/ocr"
	"github.com/warelay/warelay/internal/qr"
	"github.com/warelay/warelay/internal/storage"
)

// testConfig returns a config suitable for handler tests: local media
// in a temp dir, no HMAC secret, rate limiting off.
func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Server: config.ServerConfig{
			Host:    "127.0.0.1",
			Port:    8787,
			Timeout: 30 * time.Second,
		},
		Security: config.SecurityConfig{
			RateLimitDisabled: true,
			CORSOrigins:       []string{"*"},
		},
		Buffer:  config.BufferConfig{Capacity: 50},
		Media:   config.MediaConfig{Dir: t.TempDir(), MaxSize: 1 << 20},
		OCR:     config.OCRConfig{},
		Logging: config.LoggingConfig{Level: "info", Format: "json"},
	}
}

// newTestHandler builds a handler over a local store in cfg.Media.Dir.
// A nil backend uses the real local store.
func newTestHandler(t *testing.T, cfg *config.Config, backend storage.Store, extractor ocr.Extractor) *Handler {
	t.Helper()
	if cfg == nil {
		cfg = testConfig(t)
	}
	if backend == nil {
		local, err := storage.NewLocalStore(cfg.Media.Dir)
		if err != nil {
			t.Fatalf("NewLocalStore: %v", err)
		}
		backend = local
	}
	if extractor == nil {
		extractor = ocr.Disabled{}
	}
	return NewHandler(
		cfg,
		auth.NewGate(cfg.Security.HMACSecret),
		buffer.New(cfg.Buffer.Capacity),
		qr.NewSlot(),
		storage.NewRouter(backend, cfg.Media.MaxSize),
		extractor,
		cfg.Media.Dir,
	)
}

// fakeExtractor returns fixed OCR text for every image.
type fakeExtractor struct {
	text string
}

func (f fakeExtractor) Extract(context.Context, []byte, string) string { return f.text }

// fakeRemoteStore pretends to be an S3 backend.
type fakeRemoteStore struct {
	url   string
	calls int
	fail  error
}

func (f *fakeRemoteStore) Put(context.Context, []byte, string, string) (storage.Location, error) {
	f.calls++
	if f.fail != nil {
		return storage.Location{}, f.fail
	}
	return storage.Location{Name: "remote-object", URL: f.url, Remote: true}, nil
}

// decodeBody unmarshals a recorder body into a generic map.
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON body %q: %v", rec.Body.String(), err)
	}
	return out
}
