// Warelay - WhatsApp Ingestion Relay and Live Dashboard
// Copyright 2026 Warelay Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/warelay/warelay

// Package buffer implements the bounded in-memory event buffer.
//
// The buffer is the relay's only message store: fixed capacity, insertion
// ordered, evicting the oldest entry on overflow. It is volatile by design;
// durability is a non-goal and restarts empty it.
package buffer

import (
	"sync"

	"github.com/warelay/warelay/internal/models"
)

// DefaultCapacity is used when the configured capacity is not positive.
const DefaultCapacity = 500

// Buffer is a fixed-capacity ring of events with FIFO eviction.
// All methods are safe for concurrent use. Appends and reads hold the lock
// only for the copy itself; callers must finish slow work (storage, OCR)
// before appending.
type Buffer struct {
	mu    sync.RWMutex
	ring  []models.Event
	head  int // index of the oldest entry when full, next write slot otherwise
	count int
}

// New creates a buffer holding at most capacity events.
func New(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Buffer{ring: make([]models.Event, capacity)}
}

// Append adds an event, evicting the oldest entry when at capacity.
// Amortized O(1).
func (b *Buffer) Append(ev models.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.ring[b.head] = ev
	b.head = (b.head + 1) % len(b.ring)
	if b.count < len(b.ring) {
		b.count++
	}
}

// Recent returns up to limit events, most recent first.
// A non-positive limit returns an empty slice. The result is a copy; the
// caller may retain it freely.
func (b *Buffer) Recent(limit int) []models.Event {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if limit <= 0 {
		return []models.Event{}
	}
	if limit > b.count {
		limit = b.count
	}

	out := make([]models.Event, 0, limit)
	// head-1 is the newest entry; walk backwards through the ring.
	for i := 0; i < limit; i++ {
		idx := (b.head - 1 - i + len(b.ring)) % len(b.ring)
		out = append(out, b.ring[idx])
	}
	return out
}

// Len returns the number of events currently held.
func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.count
}

// Capacity returns the fixed capacity.
func (b *Buffer) Capacity() int {
	return len(b.ring)
}
