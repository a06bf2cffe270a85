// Package storage keeps signature artifacts in object storage.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"sync"

	"fieldservice_billing/internal/domain/signature"
	"fieldservice_billing/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"
)

// ObjectKey is where the artifact of quoteID is stored. The digest makes
// re-uploads of the same drawing land on the same key.
func ObjectKey(prefix, quoteID string, a signature.Artifact) string {
	return path.Join(strings.Trim(prefix, "/"), quoteID, a.Digest+".png")
}

// S3API is the subset of *s3.Client the store uses.
type S3API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3SignatureStore uploads signatures to a bucket and returns s3:// references.
type S3SignatureStore struct {
	client S3API
	bucket string
	prefix string
	logger *zap.Logger
}

var _ interfaces.ISignatureStore = (*S3SignatureStore)(nil)

func NewS3SignatureStore(client S3API, bucket, prefix string, logger *zap.Logger) (*S3SignatureStore, error) {
	if bucket == "" {
		return nil, errors.New("signature bucket is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &S3SignatureStore{client: client, bucket: bucket, prefix: prefix, logger: logger}, nil
}

func (s *S3SignatureStore) Put(ctx context.Context, quoteID string, a signature.Artifact) (string, error) {
	key := ObjectKey(s.prefix, quoteID, a)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(a.Bytes),
		ContentType:   aws.String(a.ContentType),
		ContentLength: aws.Int64(int64(len(a.Bytes))),
		Metadata: map[string]string{
			"quote-id": quoteID,
			"sha256":   a.Digest,
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload signature for quote %s: %w", quoteID, err)
	}
	s.logger.Debug("Signature stored",
		zap.String("quote_id", quoteID),
		zap.String("bucket", s.bucket),
		zap.String("key", key),
		zap.Int("size", len(a.Bytes)))
	return "s3://" + s.bucket + "/" + key, nil
}

// MemorySignatureStore keeps artifacts in process. Used by tests and the
// memory driver.
type MemorySignatureStore struct {
	mu      sync.RWMutex
	objects map[string]signature.Artifact
}

var _ interfaces.ISignatureStore = (*MemorySignatureStore)(nil)

func NewMemorySignatureStore() *MemorySignatureStore {
	return &MemorySignatureStore{objects: make(map[string]signature.Artifact)}
}

func (m *MemorySignatureStore) Put(_ context.Context, quoteID string, a signature.Artifact) (string, error) {
	ref := "mem://" + ObjectKey("signatures", quoteID, a)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[ref] = a
	return ref, nil
}

// Get returns the artifact stored under ref.
func (m *MemorySignatureStore) Get(ref string) (signature.Artifact, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.objects[ref]
	return a, ok
}

// Len is the number of stored artifacts.
func (m *MemorySignatureStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.objects)
}
