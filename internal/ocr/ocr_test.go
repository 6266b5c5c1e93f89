// Warelay - WhatsApp Ingestion Relay and Live Dashboard
// Copyright 2026 Warelay Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/warelay/warelay

package ocr

import (
	"context"
	"testing"
)

func TestDisabledReturnsEmpty(t *testing.T) {
	var e Disabled
	if got := e.Extract(context.Background(), []byte("anything"), "image/png"); got != "" {
		t.Errorf("expected empty text, got %q", got)
	}
}

func TestTesseractSkipsNonImages(t *testing.T) {
	// Point at a binary that would fail loudly if invoked; the mime
	// gate must keep it from ever running.
	e := NewTesseract("/nonexistent/tesseract", "")
	if got := e.Extract(context.Background(), []byte("%PDF-1.4"), "application/pdf"); got != "" {
		t.Errorf("expected empty text for non-image, got %q", got)
	}
}

func TestTesseractMissingBinaryIsBestEffort(t *testing.T) {
	e := NewTesseract("/nonexistent/tesseract", "spa+eng")
	if got := e.Extract(context.Background(), []byte{0xFF, 0xD8}, "image/jpeg"); got != "" {
		t.Errorf("expected empty text when binary is missing, got %q", got)
	}
}

func TestNewTesseractDefaultBinary(t *testing.T) {
	e := NewTesseract("", "")
	if e.Binary != "tesseract" {
		t.Errorf("expected default binary tesseract, got %q", e.Binary)
	}
}

func TestTesseractEchoTrimsOutput(t *testing.T) {
	// /bin/echo ignores stdin and the tesseract-style args, printing
	// them back; good enough to exercise the stdout/trim path.
	e := NewTesseract("/bin/echo", "")
	got := e.Extract(context.Background(), []byte{0x89, 0x50}, "image/png")
	if got != "stdin stdout" {
		t.Errorf("expected trimmed stdout, got %q", got)
	}
}
