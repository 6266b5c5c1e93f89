// Warelay - WhatsApp Ingestion Relay and Live Dashboard
// Copyright 2026 Warelay Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/warelay/warelay

package config

import (
	"os"
	"testing"
	"time"
)

func TestDefaultsValidate(t *testing.T) {
	cfg := defaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default configuration must validate: %v", err)
	}
	if cfg.Server.Port != 8787 {
		t.Errorf("expected default port 8787, got %d", cfg.Server.Port)
	}
	if cfg.Buffer.Capacity != 500 {
		t.Errorf("expected default buffer capacity 500, got %d", cfg.Buffer.Capacity)
	}
	if cfg.Media.MaxSize != 0 {
		t.Errorf("expected no media size ceiling by default, got %d", cfg.Media.MaxSize)
	}
	if cfg.OCR.Languages != "eng" {
		t.Errorf("expected default OCR languages eng, got %q", cfg.OCR.Languages)
	}
	if cfg.S3Enabled() {
		t.Error("S3 must be disabled by default")
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"port zero", func(c *Config) { c.Server.Port = 0 }},
		{"port too high", func(c *Config) { c.Server.Port = 70000 }},
		{"negative timeout", func(c *Config) { c.Server.Timeout = -time.Second }},
		{"negative buffer", func(c *Config) { c.Buffer.Capacity = -1 }},
		{"negative max size", func(c *Config) { c.Media.MaxSize = -1 }},
		{"empty media dir", func(c *Config) { c.Media.Dir = "" }},
		{"rate limit zero reqs", func(c *Config) { c.Security.RateLimitReqs = 0 }},
		{"s3 without region or endpoint", func(c *Config) { c.S3.Bucket = "media"; c.S3.Region = ""; c.S3.Endpoint = "" }},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestValidateAllowsS3WithEndpointOnly(t *testing.T) {
	cfg := defaultConfig()
	cfg.S3.Bucket = "media"
	cfg.S3.Endpoint = "http://minio:9000"
	if err := cfg.Validate(); err != nil {
		t.Errorf("endpoint without region must validate: %v", err)
	}
}

func TestEnvTransform(t *testing.T) {
	tests := []struct {
		env  string
		want string
	}{
		{"HMAC_SECRET", "security.hmac_secret"},
		{"RECENT_BUFFER_SIZE", "buffer.capacity"},
		{"MAX_MEDIA_SIZE", "media.max_size"},
		{"GROUP_WHITELIST", "ingest.group_whitelist"},
		{"S3_BUCKET", "s3.bucket"},
		{"S3_PUBLIC_BASE_URL", "s3.public_base_url"},
		{"OCR_ENABLED", "ocr.enabled"},
		{"HTTP_PORT", "server.port"},
		{"LOG_LEVEL", "logging.level"},
		{"PATH", ""},     // unmapped vars must be skipped
		{"HOSTNAME", ""}, // unmapped vars must be skipped
	}

	for _, tt := range tests {
		if got := envTransformFunc(tt.env); got != tt.want {
			t.Errorf("envTransformFunc(%q) = %q, want %q", tt.env, got, tt.want)
		}
	}
}

func TestLoadAppliesEnvOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9999")
	t.Setenv("HMAC_SECRET", "topsecret")
	t.Setenv("GROUP_WHITELIST", "Family, Work ,")
	t.Setenv("RECENT_BUFFER_SIZE", "42")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 9999 {
		t.Errorf("expected port 9999, got %d", cfg.Server.Port)
	}
	if cfg.Security.HMACSecret != "topsecret" {
		t.Errorf("expected secret from env, got %q", cfg.Security.HMACSecret)
	}
	if cfg.Buffer.Capacity != 42 {
		t.Errorf("expected buffer capacity 42, got %d", cfg.Buffer.Capacity)
	}
	want := []string{"Family", "Work"}
	if len(cfg.Ingest.GroupWhitelist) != len(want) {
		t.Fatalf("expected whitelist %v, got %v", want, cfg.Ingest.GroupWhitelist)
	}
	for i := range want {
		if cfg.Ingest.GroupWhitelist[i] != want[i] {
			t.Errorf("whitelist[%d] = %q, want %q", i, cfg.Ingest.GroupWhitelist[i], want[i])
		}
	}
}

func TestLoadReadsConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/config.yaml"
	body := []byte("server:\n  port: 4040\nmedia:\n  dir: /tmp/wamedia\n")
	if err := os.WriteFile(path, body, 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 4040 {
		t.Errorf("expected port 4040 from file, got %d", cfg.Server.Port)
	}
	if cfg.Media.Dir != "/tmp/wamedia" {
		t.Errorf("expected media dir from file, got %q", cfg.Media.Dir)
	}
}

func TestEnvBeatsConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/config.yaml"
	if err := os.WriteFile(path, []byte("server:\n  port: 4040\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("HTTP_PORT", "5050")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 5050 {
		t.Errorf("expected env to win over file, got port %d", cfg.Server.Port)
	}
}
