// Warelay - WhatsApp Ingestion Relay and Live Dashboard
// Copyright 2026 Warelay Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/warelay/warelay

// Package ocr extracts text from inbound images on a best-effort
// basis. Extraction failures never fail an ingestion: a broken or
// missing tesseract binary simply yields empty text.
package ocr

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"time"

	"github.com/warelay/warelay/internal/logging"
	"github.com/warelay/warelay/internal/metrics"
)

// extractTimeout bounds a single tesseract invocation so a hung
// process cannot stall an ingestion indefinitely.
const extractTimeout = 15 * time.Second

// Extractor pulls text out of image bytes. Implementations must be
// best-effort: return "" rather than an error when extraction is not
// possible.
type Extractor interface {
	Extract(ctx context.Context, data []byte, mimeType string) string
}

// Disabled is the no-op extractor used when OCR is turned off.
type Disabled struct{}

// Extract always returns empty text.
func (Disabled) Extract(context.Context, []byte, string) string { return "" }

// Tesseract shells out to the tesseract binary, feeding the image on
// stdin and reading the recognized text from stdout.
type Tesseract struct {
	// Binary is the tesseract executable path, "tesseract" by default.
	Binary string
	// Languages is the value passed to -l, e.g. "spa+eng".
	Languages string
}

// NewTesseract returns an extractor invoking the given binary. An
// empty binary falls back to "tesseract" resolved from PATH.
func NewTesseract(binary, languages string) *Tesseract {
	if binary == "" {
		binary = "tesseract"
	}
	return &Tesseract{Binary: binary, Languages: languages}
}

// Extract runs tesseract over the image bytes. Non-image payloads are
// skipped without invoking the binary.
func (t *Tesseract) Extract(ctx context.Context, data []byte, mimeType string) string {
	if !strings.HasPrefix(mimeType, "image/") {
		return ""
	}

	ctx, cancel := context.WithTimeout(ctx, extractTimeout)
	defer cancel()

	args := []string{"stdin", "stdout"}
	if t.Languages != "" {
		args = append(args, "-l", t.Languages)
	}

	cmd := exec.CommandContext(ctx, t.Binary, args...)
	cmd.Stdin = bytes.NewReader(data)

	out, err := cmd.Output()
	if err != nil {
		metrics.OCRExtractionsTotal.WithLabelValues("error").Inc()
		logging.Ctx(ctx).Warn().
			Err(err).
			Str("binary", t.Binary).
			Msg("OCR extraction failed")
		return ""
	}

	text := strings.TrimSpace(string(out))
	if text == "" {
		metrics.OCRExtractionsTotal.WithLabelValues("empty").Inc()
		return ""
	}
	metrics.OCRExtractionsTotal.WithLabelValues("ok").Inc()
	return text
}
