// Warelay - WhatsApp Ingestion Relay and Live Dashboard
// Copyright 2026 Warelay Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/warelay/warelay

// Command server runs the Warelay ingestion relay: an HMAC-guarded
// webhook receiver for WhatsApp bridge events with media storage,
// best-effort OCR, a recent-events API and a live dashboard.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/warelay/warelay/internal/api"
	"github.com/warelay/warelay/internal/auth"
	"github.com/warelay/warelay/internal/buffer"
	"github.com/warelay/warelay/internal/config"
	"github.com/warelay/warelay/internal/logging"
	"github.com/warelay/warelay/internal/ocr"
	"github.com/warelay/warelay/internal/qr"
	"github.com/warelay/warelay/internal/storage"
	"github.com/warelay/warelay/internal/supervisor"
	"github.com/warelay/warelay/internal/supervisor/services"
)

const version = "1.2.0"

func main() {
	if err := run(); err != nil {
		logging.Fatal().Err(err).Msg("Server exited with error")
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("version", version).
		Int("port", cfg.Server.Port).
		Bool("hmac_enabled", cfg.Security.HMACSecret != "").
		Bool("s3_enabled", cfg.S3Enabled()).
		Bool("ocr_enabled", cfg.OCR.Enabled).
		Msg("Starting warelay")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Local store is always created: it backs /media and /media/list
	// even when uploads go to S3.
	local, err := storage.NewLocalStore(cfg.Media.Dir)
	if err != nil {
		return fmt.Errorf("creating media directory: %w", err)
	}

	var backend storage.Store = local
	if cfg.S3Enabled() {
		s3store, err := storage.NewS3Store(ctx, storage.S3Options{
			Bucket:        cfg.S3.Bucket,
			Region:        cfg.S3.Region,
			Endpoint:      cfg.S3.Endpoint,
			KeyPrefix:     cfg.S3.KeyPrefix,
			PublicBaseURL: cfg.S3.PublicBaseURL,
		})
		if err != nil {
			return fmt.Errorf("configuring S3 storage: %w", err)
		}
		backend = s3store
		logging.Info().Str("bucket", cfg.S3.Bucket).Msg("Media routed to S3")
	} else {
		logging.Info().Str("dir", local.Dir()).Msg("Media stored on local disk")
	}

	var extractor ocr.Extractor = ocr.Disabled{}
	if cfg.OCR.Enabled {
		extractor = ocr.NewTesseract(cfg.OCR.TesseractPath, cfg.OCR.Languages)
	}

	handler := api.NewHandler(
		cfg,
		auth.NewGate(cfg.Security.HMACSecret),
		buffer.New(cfg.Buffer.Capacity),
		qr.NewSlot(),
		storage.NewRouter(backend, cfg.Media.MaxSize),
		extractor,
		local.Dir(),
	)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      handler.Routes(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  2 * cfg.Server.Timeout,
	}

	tree, err := supervisor.NewTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
		return fmt.Errorf("building supervisor tree: %w", err)
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.Timeout))

	logging.Info().Str("addr", server.Addr).Msg("Listening")

	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	if report, err := tree.UnstoppedServiceReport(); err == nil && len(report) > 0 {
		for _, svc := range report {
			logging.Warn().Str("service", svc.Name).Msg("Service did not stop in time")
		}
	}

	logging.Info().Msg("Shutdown complete")
	return nil
}
