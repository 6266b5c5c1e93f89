// Warelay - WhatsApp Ingestion Relay and Live Dashboard
// Copyright 2026 Warelay Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/warelay/warelay

package models

// Event is one normalized ingested message as served by /messages/recent.
// Every event belongs to exactly one kind; the other kind's fields are
// omitted from the JSON encoding entirely rather than rendered as nulls,
// which keeps the read contract unambiguous for consumers.
type Event struct {
	Type      string `json:"type"`
	Timestamp *int64 `json:"timestamp,omitempty"`
	From      string `json:"from,omitempty"`
	Author    string `json:"author,omitempty"`
	IsGroup   bool   `json:"isGroup"`
	GroupName string `json:"groupName,omitempty"`

	// Text kind only.
	Text string `json:"text,omitempty"`

	// Media kind only.
	Mimetype string `json:"mimetype,omitempty"`
	Filename string `json:"filename,omitempty"`
	MediaURL string `json:"media_url,omitempty"`
	OCRText  string `json:"ocr_text,omitempty"`
}

// NewTextEvent builds the buffer record for a text message.
func NewTextEvent(m *Message) Event {
	return Event{
		Type:      KindText,
		Timestamp: m.Timestamp,
		From:      m.From,
		Author:    m.Author,
		IsGroup:   m.IsGroup,
		GroupName: m.GroupName,
		Text:      m.Text,
	}
}

// NewMediaEvent builds the buffer record for a stored media message.
// filename and mediaURL are the server-resolved values from the store,
// not the sender's suggestion. ocrText is empty when extraction was
// disabled or yielded nothing.
func NewMediaEvent(m *Message, filename, mediaURL, ocrText string) Event {
	return Event{
		Type:      KindMedia,
		Timestamp: m.Timestamp,
		From:      m.From,
		Author:    m.Author,
		IsGroup:   m.IsGroup,
		GroupName: m.GroupName,
		Mimetype:  m.Mimetype,
		Filename:  filename,
		MediaURL:  mediaURL,
		OCRText:   ocrText,
	}
}
