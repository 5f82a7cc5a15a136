// package storage persists the snapshot blob in S3
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/markaronin/likedsync/internal/shared"
)

const (
	snapshotBucket = "markaronin-liked-songs"
	snapshotKey    = "liked-songs.txt"

	fallbackRegion = "us-east-1"
)

// Store defines the two operations against the fixed snapshot object.
type Store interface {
	// Download fetches the snapshot body and decodes it as UTF-8 text.
	Download(ctx context.Context) (string, error)

	// Upload writes text as the snapshot body, replacing any existing content.
	// No conditional write is performed; concurrent runs can clobber each other.
	Upload(ctx context.Context, text string) error
}

// ObjectClient is the subset of the S3 API the store uses.
type ObjectClient interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// SnapshotStore implements [Store] against S3.
type SnapshotStore struct {
	client ObjectClient
}

// NewSnapshotStore creates a store using the default AWS credential and
// region chain, falling back to us-east-1 when no region is configured.
func NewSnapshotStore(ctx context.Context) (*SnapshotStore, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithDefaultRegion(fallbackRegion))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}
	return &SnapshotStore{client: s3.NewFromConfig(cfg)}, nil
}

// NewSnapshotStoreWithClient creates a store backed by the provided client.
func NewSnapshotStoreWithClient(client ObjectClient) *SnapshotStore {
	return &SnapshotStore{client: client}
}

// Download fetches the snapshot object and returns its body as UTF-8 text.
func (s *SnapshotStore) Download(ctx context.Context) (string, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(snapshotBucket),
		Key:    aws.String(snapshotKey),
	})
	if err != nil {
		if isNotFound(err) {
			return "", fmt.Errorf("%w: s3://%s/%s", shared.ErrSnapshotMissing, snapshotBucket, snapshotKey)
		}
		return "", fmt.Errorf("failed to download snapshot: %w", err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read snapshot body: %w", err)
	}

	if !utf8.Valid(data) {
		return "", fmt.Errorf("%w: body is not valid UTF-8", shared.ErrInvalidSnapshot)
	}

	return string(data), nil
}

// Upload replaces the snapshot object with the given text.
func (s *SnapshotStore) Upload(ctx context.Context, text string) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(snapshotBucket),
		Key:         aws.String(snapshotKey),
		Body:        bytes.NewReader([]byte(text)),
		ContentType: aws.String("text/plain; charset=utf-8"),
	})
	if err != nil {
		return fmt.Errorf("failed to upload snapshot: %w", err)
	}
	return nil
}

// isNotFound reports whether err is the S3 missing-object error.
func isNotFound(err error) bool {
	var noSuchKey *types.NoSuchKey
	return errors.As(err, &noSuchKey)
}

// Location returns the fixed object location for diagnostics.
func Location() string {
	return fmt.Sprintf("s3://%s/%s", snapshotBucket, snapshotKey)
}
