// Warelay - WhatsApp Ingestion Relay and Live Dashboard
// Copyright 2026 Warelay Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/warelay/warelay

// Package config defines the relay's runtime configuration and its
// layered loading: struct defaults, optional YAML file, environment
// variables (highest priority).
package config

import (
	"fmt"
	"time"
)

// Config is the root configuration for the relay.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Security SecurityConfig `koanf:"security"`
	Buffer   BufferConfig   `koanf:"buffer"`
	Ingest   IngestConfig   `koanf:"ingest"`
	Media    MediaConfig    `koanf:"media"`
	S3       S3Config       `koanf:"s3"`
	OCR      OCRConfig      `koanf:"ocr"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Host    string        `koanf:"host"`
	Port    int           `koanf:"port"`
	Timeout time.Duration `koanf:"timeout"`
}

// SecurityConfig holds authentication and abuse-protection settings.
type SecurityConfig struct {
	// HMACSecret signs inbound webhook bodies. Empty disables
	// signature verification entirely.
	HMACSecret        string        `koanf:"hmac_secret"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// BufferConfig sizes the in-memory recent-events buffer.
type BufferConfig struct {
	Capacity int `koanf:"capacity"`
}

// IngestConfig controls which inbound messages are accepted.
type IngestConfig struct {
	// GroupWhitelist restricts group messages to the named groups.
	// Empty means all groups are accepted.
	GroupWhitelist []string `koanf:"group_whitelist"`
}

// MediaConfig controls local media storage and size limits.
type MediaConfig struct {
	Dir string `koanf:"dir"`
	// MaxSize is the inbound media ceiling in bytes after base64
	// decoding. Zero disables the limit.
	MaxSize int64 `koanf:"max_size"`
}

// S3Config enables remote media storage when Bucket is set.
type S3Config struct {
	Bucket        string `koanf:"bucket"`
	Region        string `koanf:"region"`
	Endpoint      string `koanf:"endpoint"`
	KeyPrefix     string `koanf:"key_prefix"`
	PublicBaseURL string `koanf:"public_base_url"`
}

// OCRConfig controls best-effort text extraction from images.
type OCRConfig struct {
	Enabled       bool   `koanf:"enabled"`
	TesseractPath string `koanf:"tesseract_path"`
	Languages     string `koanf:"languages"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// S3Enabled reports whether media should be routed to S3.
func (c *Config) S3Enabled() bool {
	return c.S3.Bucket != ""
}

// Validate checks the configuration for values that cannot work.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server.timeout must be positive, got %s", c.Server.Timeout)
	}
	if c.Buffer.Capacity < 0 {
		return fmt.Errorf("buffer.capacity must not be negative, got %d", c.Buffer.Capacity)
	}
	if c.Media.MaxSize < 0 {
		return fmt.Errorf("media.max_size must not be negative, got %d", c.Media.MaxSize)
	}
	if c.Media.Dir == "" {
		return fmt.Errorf("media.dir must not be empty")
	}
	if !c.Security.RateLimitDisabled {
		if c.Security.RateLimitReqs <= 0 {
			return fmt.Errorf("security.rate_limit_reqs must be positive, got %d", c.Security.RateLimitReqs)
		}
		if c.Security.RateLimitWindow <= 0 {
			return fmt.Errorf("security.rate_limit_window must be positive, got %s", c.Security.RateLimitWindow)
		}
	}
	if c.S3Enabled() && c.S3.Region == "" && c.S3.Endpoint == "" {
		return fmt.Errorf("s3.region or s3.endpoint required when s3.bucket is set")
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}
	return nil
}
