// Warelay - WhatsApp Ingestion Relay and Live Dashboard
// Copyright 2026 Warelay Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/warelay/warelay

package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// DefaultFilename is used when the sender supplies no filename hint.
const DefaultFilename = "file.bin"

// LocalStore writes media into a single flat directory and serves it back
// through the /media/ static route.
type LocalStore struct {
	dir string

	// mu serializes the probe-then-create sequence so two concurrent
	// uploads with the same suggested name cannot race into one path.
	mu sync.Mutex
}

// NewLocalStore creates the store, creating dir if needed.
// Directory creation is idempotent startup work; requests never mkdir.
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create media dir %s: %w", dir, err)
	}
	return &LocalStore{dir: dir}, nil
}

// Dir returns the media directory path.
func (s *LocalStore) Dir() string {
	return s.dir
}

// Put writes data under a collision-free variant of suggestedName and
// returns a /media/ URL for it. When suggestedName already exists on disk,
// a numeric suffix is inserted before the extension and incremented until a
// free path is found (photo.jpg, photo_1.jpg, photo_2.jpg, ...).
func (s *LocalStore) Put(_ context.Context, data []byte, _ string, suggestedName string) (Location, error) {
	name := sanitizeFilename(suggestedName)

	s.mu.Lock()
	defer s.mu.Unlock()

	path, name, err := s.freePath(name)
	if err != nil {
		return Location{}, err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return Location{}, fmt.Errorf("write media file: %w", err)
	}

	return Location{
		Name: name,
		URL:  "/media/" + name,
	}, nil
}

// freePath resolves the first non-existing path for name inside the
// media directory. Must be called with mu held.
func (s *LocalStore) freePath(name string) (string, string, error) {
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)

	candidate := name
	for i := 0; ; i++ {
		if i > 0 {
			candidate = fmt.Sprintf("%s_%d%s", base, i, ext)
		}
		path := filepath.Join(s.dir, candidate)
		_, err := os.Stat(path)
		if os.IsNotExist(err) {
			return path, candidate, nil
		}
		if err != nil {
			return "", "", fmt.Errorf("probe media path %s: %w", path, err)
		}
	}
}

// sanitizeFilename reduces a sender-supplied name to a safe basename.
// Path separators and traversal components must not reach the filesystem.
func sanitizeFilename(name string) string {
	name = filepath.Base(strings.TrimSpace(name))
	if name == "" || name == "." || name == ".." || name == string(filepath.Separator) {
		return DefaultFilename
	}
	return name
}
