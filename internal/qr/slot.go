// Warelay - WhatsApp Ingestion Relay and Live Dashboard
// Copyright 2026 Warelay Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/warelay/warelay

// Package qr holds the single current pairing code.
//
// The bridge posts a fresh QR whenever the session needs re-linking and posts
// an empty value once the session is connected. There is exactly one slot per
// process; value and timestamp always change together so readers never see a
// code without its set-time or vice versa.
package qr

import (
	"sync"
	"time"
)

// Slot is a single-value cache for the latest pairing code.
// The zero value is an empty slot ready for use.
type Slot struct {
	mu    sync.RWMutex
	code  string
	setAt time.Time
	now   func() time.Time // test seam
}

// NewSlot creates an empty slot.
func NewSlot() *Slot {
	return &Slot{now: time.Now}
}

// Set stores a new pairing code, stamping the current time.
// An empty code clears both the value and the timestamp.
func (s *Slot) Set(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if code == "" {
		s.code = ""
		s.setAt = time.Time{}
		return
	}
	s.code = code
	s.setAt = s.nowFunc()()
}

// Get returns the current code and its set-time.
// ok is false when the slot is empty; code and setAt are then zero values.
func (s *Slot) Get() (code string, setAt time.Time, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.code, s.setAt, s.code != ""
}

func (s *Slot) nowFunc() func() time.Time {
	if s.now != nil {
		return s.now
	}
	return time.Now
}
