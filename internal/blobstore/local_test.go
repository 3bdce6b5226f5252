package blobstore

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
)

func testLocalDir(t *testing.T) *LocalDir {
	t.Helper()
	l, err := NewLocalDir(t.TempDir())
	if err != nil {
		t.Fatalf("new local dir: %v", err)
	}
	return l
}

func TestLocalDirPutOpenDelete(t *testing.T) {
	l := testLocalDir(t)
	ctx := context.Background()
	payload := []byte("photo bytes")

	result, err := l.Put(ctx, "bins/A-001/100", bytes.NewReader(payload), int64(len(payload)), PutOptions{
		ContentType:  "image/jpeg",
		CacheControl: "max-age=60",
	})
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if result.SizeBytes != int64(len(payload)) {
		t.Fatalf("expected size %d, got %d", len(payload), result.SizeBytes)
	}
	if result.Digest == "" {
		t.Fatal("expected non-empty digest")
	}

	rc, info, err := l.Open(ctx, "bins/A-001/100")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer rc.Close()

	got, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("payload did not round-trip: %q", got)
	}
	if info.ContentType != "image/jpeg" {
		t.Fatalf("expected content type image/jpeg, got %q", info.ContentType)
	}
	if info.CacheControl != "max-age=60" {
		t.Fatalf("expected cache control, got %q", info.CacheControl)
	}
	if info.Digest != result.Digest {
		t.Fatalf("digest mismatch: %q vs %q", info.Digest, result.Digest)
	}
	if info.SizeBytes != int64(len(payload)) {
		t.Fatalf("expected size %d, got %d", len(payload), info.SizeBytes)
	}

	if err := l.Delete(ctx, "bins/A-001/100"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, _, err := l.Open(ctx, "bins/A-001/100"); !errors.Is(err, ErrBlobNotFound) {
		t.Fatalf("expected ErrBlobNotFound after delete, got %v", err)
	}
}

func TestLocalDirOpenMissing(t *testing.T) {
	l := testLocalDir(t)

	_, _, err := l.Open(context.Background(), "bins/missing/1")
	if !errors.Is(err, ErrBlobNotFound) {
		t.Fatalf("expected ErrBlobNotFound, got %v", err)
	}
}

func TestLocalDirPutReplacesExisting(t *testing.T) {
	l := testLocalDir(t)
	ctx := context.Background()

	if _, err := l.Put(ctx, "k", strings.NewReader("first"), 5, PutOptions{ContentType: "text/plain"}); err != nil {
		t.Fatalf("first put: %v", err)
	}
	if _, err := l.Put(ctx, "k", strings.NewReader("second"), 6, PutOptions{ContentType: "text/html"}); err != nil {
		t.Fatalf("second put: %v", err)
	}

	rc, info, err := l.Open(ctx, "k")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer rc.Close()
	got, _ := io.ReadAll(rc)
	if string(got) != "second" {
		t.Fatalf("expected replacement content, got %q", got)
	}
	if info.ContentType != "text/html" {
		t.Fatalf("expected replaced content type, got %q", info.ContentType)
	}
}

func TestLocalDirRejectsBadKeys(t *testing.T) {
	l := testLocalDir(t)
	ctx := context.Background()

	for _, key := range []string{"", "/abs/path", "../escape", "a/../../b"} {
		if _, err := l.Put(ctx, key, strings.NewReader("x"), 1, PutOptions{}); err == nil {
			t.Fatalf("expected error for key %q", key)
		}
	}
}

func TestLocalDirDeleteMissingIsNoop(t *testing.T) {
	l := testLocalDir(t)

	if err := l.Delete(context.Background(), "never/written"); err != nil {
		t.Fatalf("delete missing: %v", err)
	}
}
