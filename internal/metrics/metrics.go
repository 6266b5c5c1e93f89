// Warelay - WhatsApp Ingestion Relay and Live Dashboard
// Copyright 2026 Warelay Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/warelay/warelay

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus Metrics Integration for Production Observability
// This package provides instrumentation for:
// - Ingestion throughput and rejections
// - Media storage by backend
// - OCR extraction outcomes
// - API endpoint latency and throughput

var (
	// Ingestion Metrics
	IngestRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ingest_requests_total",
			Help: "Total number of ingestion requests by message kind and outcome",
		},
		[]string{"kind", "status"}, // kind: "text", "media"; status: "ok", "skipped", "error"
	)

	IngestRejectedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ingest_rejected_total",
			Help: "Total number of ingestion requests rejected before processing",
		},
		[]string{"reason"}, // "auth", "payload", "too_large"
	)

	// Media Storage Metrics
	MediaStoredTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_stored_total",
			Help: "Total number of media files stored by backend",
		},
		[]string{"backend"}, // "s3", "local"
	)

	MediaStoredBytes = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "media_stored_bytes_total",
			Help: "Total bytes of media stored across all backends",
		},
	)

	// OCR Metrics
	OCRExtractionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ocr_extractions_total",
			Help: "Total number of OCR extraction attempts by result",
		},
		[]string{"result"}, // "ok", "empty", "error"
	)

	// Event Buffer Metrics
	BufferEvents = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "buffer_events",
			Help: "Current number of events held in the recent-events buffer",
		},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordMediaStored records one stored media file and its size
func RecordMediaStored(backend string, size int) {
	MediaStoredTotal.WithLabelValues(backend).Inc()
	MediaStoredBytes.Add(float64(size))
}
