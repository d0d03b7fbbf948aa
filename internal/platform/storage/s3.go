// Package storage holds the object-lake client. Documents arrive base64 in
// the submission body and are persisted in Postgres, so there is no
// browser-direct upload path here; the lake only ever sees server-side
// writes.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/seeg/recruiting-platform/internal/config"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// newS3Client builds an s3.Client against an S3-compatible endpoint with
// static credentials and path-style addressing.
func newS3Client(cfg config.S3Config) (*s3.Client, error) {
	if cfg.Endpoint == "" || cfg.Bucket == "" || cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("S3 configuration is incomplete")
	}

	customResolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		if service == s3.ServiceID {
			return aws.Endpoint{
				URL:               cfg.Endpoint,
				SigningRegion:     cfg.Region,
				HostnameImmutable: true,
			}, nil
		}
		return aws.Endpoint{}, fmt.Errorf("unknown endpoint requested")
	})

	awsConfig := aws.Config{
		Region:                      cfg.Region,
		Credentials:                 credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		EndpointResolverWithOptions: customResolver,
	}

	return s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		o.UsePathStyle = true // required for S3-compatible storage
	}), nil
}

// LakeWriter performs direct server-side writes into the object-store data
// lake. The projection path already holds the document bytes and the
// dimension/fact JSON in memory after reading them from Postgres, so it
// writes them itself via PutObject rather than handing out upload URLs.
type LakeWriter struct {
	client    *s3.Client
	bucket    string
	container string
}

// NewLakeWriter builds a LakeWriter. container is the logical root prefix
// inside the bucket (object_store_container in config).
func NewLakeWriter(cfg config.S3Config) (*LakeWriter, error) {
	client, err := newS3Client(cfg)
	if err != nil {
		return nil, err
	}
	return &LakeWriter{client: client, bucket: cfg.Bucket, container: cfg.Container}, nil
}

// PutJSON writes body under container/key with content-type application/json.
func (w *LakeWriter) PutJSON(ctx context.Context, key string, body []byte) error {
	return w.putObject(ctx, key, body, "application/json", nil)
}

// PutPDF writes body under container/key with content-type application/pdf
// and the given object metadata (application_id, candidate_id,
// document_type, ready_for_ocr).
func (w *LakeWriter) PutPDF(ctx context.Context, key string, body []byte, metadata map[string]string) error {
	return w.putObject(ctx, key, body, "application/pdf", metadata)
}

func (w *LakeWriter) putObject(ctx context.Context, key string, body []byte, contentType string, metadata map[string]string) error {
	fullKey := w.container + "/" + key
	_, err := w.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(w.bucket),
		Key:         aws.String(fullKey),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
		Metadata:    metadata,
	})
	if err != nil {
		return fmt.Errorf("put object %s: %w", fullKey, err)
	}
	return nil
}

// PresignedDownloadURL returns a time-limited GET URL for a lake object, for
// operators pulling a projected blob without lake credentials.
func (w *LakeWriter) PresignedDownloadURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	presignClient := s3.NewPresignClient(w.client)

	request, err := presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(w.bucket),
		Key:    aws.String(w.container + "/" + key),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = expiry
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned download URL: %w", err)
	}

	return request.URL, nil
}
