package blobstore

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"golang.org/x/crypto/blake2b"
)

// MinioConfig holds connection settings for an S3-compatible endpoint.
type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	UseSSL    bool
}

// MinioStore stores blobs in an S3-compatible bucket via minio-go.
type MinioStore struct {
	client *minio.Client
	bucket string
}

// NewMinioStore connects to the endpoint and creates the bucket if missing.
func NewMinioStore(ctx context.Context, cfg MinioConfig) (*MinioStore, error) {
	if strings.TrimSpace(cfg.Endpoint) == "" {
		return nil, fmt.Errorf("s3 endpoint is required")
	}
	if strings.TrimSpace(cfg.Bucket) == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("init s3 client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %q: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
			return nil, fmt.Errorf("create bucket %q: %w", cfg.Bucket, err)
		}
	}

	return &MinioStore{client: client, bucket: cfg.Bucket}, nil
}

// Put uploads one object, hashing the payload on the way through.
func (m *MinioStore) Put(ctx context.Context, key string, r io.Reader, size int64, opts PutOptions) (PutResult, error) {
	var zero PutResult
	if m == nil {
		return zero, fmt.Errorf("blob store is not configured")
	}
	if r == nil {
		return zero, fmt.Errorf("reader is required")
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return zero, fmt.Errorf("blob key is required")
	}

	h, err := blake2b.New256(nil)
	if err != nil {
		return zero, err
	}

	info, err := m.client.PutObject(ctx, m.bucket, key, io.TeeReader(r, h), size, minio.PutObjectOptions{
		ContentType:  opts.ContentType,
		CacheControl: opts.CacheControl,
	})
	if err != nil {
		return zero, fmt.Errorf("put object %q: %w", key, err)
	}

	return PutResult{
		Key:       key,
		SizeBytes: info.Size,
		Digest:    hex.EncodeToString(h.Sum(nil)),
	}, nil
}

// Open stats the object for metadata and returns a streaming reader.
func (m *MinioStore) Open(ctx context.Context, key string) (io.ReadCloser, BlobInfo, error) {
	var info BlobInfo
	if m == nil {
		return nil, info, fmt.Errorf("blob store is not configured")
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, info, fmt.Errorf("blob key is required")
	}

	stat, err := m.client.StatObject(ctx, m.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		if isMinioNotFound(err) {
			return nil, info, ErrBlobNotFound
		}
		return nil, info, fmt.Errorf("stat object %q: %w", key, err)
	}

	object, err := m.client.GetObject(ctx, m.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, info, fmt.Errorf("get object %q: %w", key, err)
	}

	info = BlobInfo{
		ContentType:  stat.ContentType,
		CacheControl: stat.Metadata.Get("Cache-Control"),
		SizeBytes:    stat.Size,
		Digest:       strings.Trim(stat.ETag, `"`),
	}
	return object, info, nil
}

// Delete removes one object. Missing objects are not an error.
func (m *MinioStore) Delete(ctx context.Context, key string) error {
	if m == nil {
		return fmt.Errorf("blob store is not configured")
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("blob key is required")
	}
	err := m.client.RemoveObject(ctx, m.bucket, key, minio.RemoveObjectOptions{})
	if err != nil && !isMinioNotFound(err) {
		return fmt.Errorf("remove object %q: %w", key, err)
	}
	return nil
}

func isMinioNotFound(err error) bool {
	resp := minio.ToErrorResponse(err)
	return resp.Code == "NoSuchKey" || resp.Code == "NoSuchBucket"
}

var _ BlobStore = (*MinioStore)(nil)
