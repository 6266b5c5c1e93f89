// Warelay - WhatsApp Ingestion Relay and Live Dashboard
// Copyright 2026 Warelay Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/warelay/warelay

package models

import (
	"errors"
	"testing"

	"github.com/goccy/go-json"
)

func TestMessageValidate(t *testing.T) {
	tests := []struct {
		name    string
		msg     Message
		wantErr error
	}{
		{
			name: "text message",
			msg:  Message{Type: KindText, Text: "hello"},
		},
		{
			name: "text message with empty body is still valid",
			msg:  Message{Type: KindText},
		},
		{
			name: "media with payload and mimetype",
			msg:  Message{Type: KindMedia, DataBase64: "aGVsbG8=", Mimetype: "image/png"},
		},
		{
			name:    "media missing base64",
			msg:     Message{Type: KindMedia, Mimetype: "image/png"},
			wantErr: ErrMissingMedia,
		},
		{
			name:    "media missing mimetype",
			msg:     Message{Type: KindMedia, DataBase64: "aGVsbG8="},
			wantErr: ErrMissingMedia,
		},
		{
			name:    "unknown type",
			msg:     Message{Type: "sticker"},
			wantErr: ErrUnknownKind,
		},
		{
			name:    "empty type",
			msg:     Message{},
			wantErr: ErrUnknownKind,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.msg.Validate()
			if tt.wantErr == nil && err != nil {
				t.Errorf("expected valid, got %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestTextEventOmitsMediaFields(t *testing.T) {
	ts := int64(1700000000)
	ev := NewTextEvent(&Message{
		Type:      KindText,
		Text:      "hello",
		From:      "5551234",
		Timestamp: &ts,
	})

	data, err := json.Marshal(ev)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"mimetype", "filename", "media_url", "ocr_text"} {
		if _, present := raw[key]; present {
			t.Errorf("text event should omit %q, got %s", key, data)
		}
	}
	if raw["text"] != "hello" {
		t.Errorf("expected text field, got %s", data)
	}
}

func TestMediaEventOmitsTextField(t *testing.T) {
	ev := NewMediaEvent(
		&Message{Type: KindMedia, Mimetype: "image/jpeg"},
		"photo_1.jpg", "/media/photo_1.jpg", "",
	)

	data, err := json.Marshal(ev)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, present := raw["text"]; present {
		t.Errorf("media event should omit text, got %s", data)
	}
	if _, present := raw["ocr_text"]; present {
		t.Errorf("media event without OCR should omit ocr_text, got %s", data)
	}
	if raw["filename"] != "photo_1.jpg" {
		t.Errorf("expected server-resolved filename, got %s", data)
	}
}
