// Warelay - WhatsApp Ingestion Relay and Live Dashboard
// Copyright 2026 Warelay Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/warelay/warelay

// Package models defines the wire types for inbound messages and the
// normalized events held in the recent-events buffer.
package models

import (
	"errors"
	"fmt"
)

// Message kinds recognized on POST /ingesta.
const (
	KindText  = "text"
	KindMedia = "media"
)

// Validation errors for inbound messages. All of them map to a 400 at the
// HTTP boundary.
var (
	ErrUnknownKind   = errors.New("unknown message type")
	ErrMissingMedia  = errors.New("media message requires data_base64 and mimetype")
	ErrInvalidBase64 = errors.New("invalid base64 payload")
)

// Message is the inbound payload for POST /ingesta as sent by the bridge.
// It is a tagged union keyed by Type: text messages carry Text, media
// messages carry DataBase64 and Mimetype (Filename is an optional hint).
// Timestamp is sender-supplied and deliberately unvalidated; the buffer
// orders by arrival, never by this value.
type Message struct {
	From       string `json:"from,omitempty"`
	Author     string `json:"author,omitempty"`
	Timestamp  *int64 `json:"timestamp,omitempty"`
	IsGroup    bool   `json:"isGroup,omitempty"`
	GroupName  string `json:"groupName,omitempty"`
	Type       string `json:"type"`
	Text       string `json:"text,omitempty"`
	Mimetype   string `json:"mimetype,omitempty"`
	Filename   string `json:"filename,omitempty"`
	DataBase64 string `json:"data_base64,omitempty"`
}

// Validate checks the per-kind required field sets.
// Rejection happens here, at the deserialization boundary, so the ingestion
// handler never sees a half-formed message.
func (m *Message) Validate() error {
	switch m.Type {
	case KindText:
		return nil
	case KindMedia:
		if m.DataBase64 == "" || m.Mimetype == "" {
			return ErrMissingMedia
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKind, m.Type)
	}
}
