package blobstore

import (
	"context"
	"errors"
	"io"
)

// ErrBlobNotFound is returned by Open when no object exists for a key.
var ErrBlobNotFound = errors.New("blob not found")

// PutOptions carries metadata stored alongside blob bytes.
type PutOptions struct {
	ContentType  string
	CacheControl string
}

// PutResult describes one persisted blob payload.
type PutResult struct {
	Key       string
	SizeBytes int64
	// Digest is the hex BLAKE2b-256 of the payload, usable as an ETag.
	Digest string
}

// BlobInfo is the metadata returned when opening a blob.
type BlobInfo struct {
	ContentType  string
	CacheControl string
	SizeBytes    int64
	Digest       string
}

// BlobStore is the byte-storage abstraction used by BinService. Keys are
// opaque strings chosen by the caller; writing an existing key replaces
// its content.
type BlobStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, opts PutOptions) (PutResult, error)
	Open(ctx context.Context, key string) (io.ReadCloser, BlobInfo, error)
	Delete(ctx context.Context, key string) error
}
