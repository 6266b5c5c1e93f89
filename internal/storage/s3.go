// Warelay - WhatsApp Ingestion Relay and Live Dashboard
// Copyright 2026 Warelay Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/warelay/warelay

package storage

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// S3Options configures the object-storage backend.
type S3Options struct {
	Bucket string
	Region string

	// Endpoint enables S3-compatible stores (MinIO and similar); non-empty
	// values switch the client to path-style addressing.
	Endpoint string

	// KeyPrefix is prepended to every generated object key.
	KeyPrefix string

	// PublicBaseURL, when set, is joined with the object key to form the
	// URL returned to callers. When empty the bare key is returned and the
	// consumer resolves it out of band.
	PublicBaseURL string
}

// s3API is the slice of the S3 client this store uses, for test fakes.
type s3API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Store uploads media to an S3-compatible bucket under opaque unique keys.
type S3Store struct {
	client s3API
	opts   S3Options
}

// NewS3Store builds the store from the default AWS credential chain.
func NewS3Store(ctx context.Context, opts S3Options) (*S3Store, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(opts.Region))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	var s3opts []func(*s3.Options)
	if opts.Endpoint != "" {
		s3opts = append(s3opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		})
	}

	return &S3Store{
		client: s3.NewFromConfig(cfg, s3opts...),
		opts:   opts,
	}, nil
}

// Put uploads data under <prefix>/<uuid><ext> with the given content type.
// Upload failures propagate to the caller untouched; the sender owns the
// retry of the whole message.
func (s *S3Store) Put(ctx context.Context, data []byte, mimeType, suggestedName string) (Location, error) {
	key := s.objectKey(mimeType, suggestedName)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.opts.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(mimeType),
	})
	if err != nil {
		return Location{}, fmt.Errorf("s3 put object: %w", err)
	}

	url := key
	if s.opts.PublicBaseURL != "" {
		url = strings.TrimSuffix(s.opts.PublicBaseURL, "/") + "/" + key
	}

	return Location{Name: key, URL: url, Remote: true}, nil
}

// objectKey generates an opaque unique key, preserving a recognizable
// extension from the suggested name or the MIME type.
func (s *S3Store) objectKey(mimeType, suggestedName string) string {
	ext := path.Ext(suggestedName)
	if ext == "" {
		if exts, err := mime.ExtensionsByType(mimeType); err == nil && len(exts) > 0 {
			ext = exts[0]
		}
	}

	prefix := strings.Trim(s.opts.KeyPrefix, "/")
	if prefix == "" {
		return uuid.New().String() + ext
	}
	return prefix + "/" + uuid.New().String() + ext
}
