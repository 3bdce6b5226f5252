package blobstore

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/crypto/blake2b"
)

const metaSuffix = ".meta.json"

// localMeta is the sidecar metadata record written next to each object.
type localMeta struct {
	ContentType  string `json:"content_type,omitempty"`
	CacheControl string `json:"cache_control,omitempty"`
	SizeBytes    int64  `json:"size_bytes"`
	Digest       string `json:"digest,omitempty"`
}

// LocalDir stores blob bytes as plain files under a root directory, with a
// JSON sidecar per object for content-type metadata.
type LocalDir struct {
	root string
}

// NewLocalDir creates a local blob store rooted at root.
func NewLocalDir(root string) (*LocalDir, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		return nil, fmt.Errorf("local blob root is required")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Join(abs, "tmp"), 0o755); err != nil {
		return nil, err
	}
	return &LocalDir{root: abs}, nil
}

// Put streams bytes to a temp file, computes the digest, and moves the file
// into place under the caller's key. An existing object is replaced.
func (l *LocalDir) Put(ctx context.Context, key string, r io.Reader, size int64, opts PutOptions) (PutResult, error) {
	var zero PutResult
	if l == nil {
		return zero, fmt.Errorf("blob store is not configured")
	}
	if r == nil {
		return zero, fmt.Errorf("reader is required")
	}
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	dst, err := l.pathFromKey(key)
	if err != nil {
		return zero, err
	}

	tmp, err := os.CreateTemp(filepath.Join(l.root, "tmp"), "put-*")
	if err != nil {
		return zero, err
	}
	tmpPath := tmp.Name()
	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}

	h, err := blake2b.New256(nil)
	if err != nil {
		cleanup()
		return zero, err
	}
	n, err := io.Copy(io.MultiWriter(tmp, h), r)
	if err != nil {
		cleanup()
		return zero, err
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return zero, err
	}

	digest := hex.EncodeToString(h.Sum(nil))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		cleanup()
		return zero, err
	}
	if err := writeLocalMeta(dst+metaSuffix, localMeta{
		ContentType:  opts.ContentType,
		CacheControl: opts.CacheControl,
		SizeBytes:    n,
		Digest:       digest,
	}); err != nil {
		cleanup()
		return zero, err
	}
	if err := os.Rename(tmpPath, dst); err != nil {
		cleanup()
		return zero, err
	}

	return PutResult{Key: key, SizeBytes: n, Digest: digest}, nil
}

// Open returns a reader and stored metadata for one object.
func (l *LocalDir) Open(ctx context.Context, key string) (io.ReadCloser, BlobInfo, error) {
	var info BlobInfo
	if l == nil {
		return nil, info, fmt.Errorf("blob store is not configured")
	}
	if err := ctx.Err(); err != nil {
		return nil, info, err
	}
	path, err := l.pathFromKey(key)
	if err != nil {
		return nil, info, err
	}

	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, info, ErrBlobNotFound
	}
	if err != nil {
		return nil, info, err
	}

	meta, err := readLocalMeta(path + metaSuffix)
	if err != nil {
		_ = f.Close()
		return nil, info, err
	}
	info = BlobInfo{
		ContentType:  meta.ContentType,
		CacheControl: meta.CacheControl,
		SizeBytes:    meta.SizeBytes,
		Digest:       meta.Digest,
	}
	if info.SizeBytes == 0 {
		if stat, statErr := f.Stat(); statErr == nil {
			info.SizeBytes = stat.Size()
		}
	}
	return f, info, nil
}

// Delete removes one object and its sidecar. Missing files are ignored.
func (l *LocalDir) Delete(ctx context.Context, key string) error {
	if l == nil {
		return fmt.Errorf("blob store is not configured")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := l.pathFromKey(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	if err := os.Remove(path + metaSuffix); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func (l *LocalDir) pathFromKey(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", fmt.Errorf("blob key is required")
	}
	if strings.HasPrefix(key, "/") {
		return "", fmt.Errorf("blob key must be relative")
	}
	clean := filepath.Clean(filepath.FromSlash(key))
	if clean == "." || strings.HasPrefix(clean, "..") || strings.Contains(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid blob key")
	}
	return filepath.Join(l.root, clean), nil
}

func writeLocalMeta(path string, meta localMeta) error {
	data, err := json.Marshal(meta)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func readLocalMeta(path string) (localMeta, error) {
	var meta localMeta
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		// Sidecar may be missing for objects written out of band.
		return meta, nil
	}
	if err != nil {
		return meta, err
	}
	if err := json.Unmarshal(data, &meta); err != nil {
		return meta, err
	}
	return meta, nil
}

var _ BlobStore = (*LocalDir)(nil)
