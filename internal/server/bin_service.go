package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"bintrack/internal/api"
	"bintrack/internal/blobstore"
	"bintrack/internal/models"
	"bintrack/internal/store"
)

var (
	// ErrBinNotFound is returned when a bin row does not exist.
	ErrBinNotFound = errors.New("bin not found")
	// ErrNoPhoto is returned when a bin exists but references no photo.
	ErrNoPhoto = errors.New("bin has no photo")
)

// BinService reconciles partial updates against stored bin records and
// orchestrates photo storage.
type BinService struct {
	store store.BinStore
	blobs blobstore.BlobStore
}

// NewBinService constructs a BinService.
func NewBinService(binStore store.BinStore, blobs blobstore.BlobStore) *BinService {
	return &BinService{store: binStore, blobs: blobs}
}

// Upsert merges a partial update into the stored record for binID, creating
// the record on first write. Provided fields win, omitted fields keep their
// stored value, and updated_at is always recomputed.
//
// The read-resolve-write sequence is not serialized against concurrent
// writers to the same bin id; the last write wins.
func (s *BinService) Upsert(ctx context.Context, binID string, update api.BinUpdate) (*models.Bin, error) {
	return s.apply(ctx, binID, update, nil)
}

// AttachPhoto stores raw photo bytes under a fresh timestamped key and then
// upserts the record's photo reference. Earlier photos stay in the blob
// store; only the latest key is referenced. A failed row write after a
// successful blob write leaves the blob orphaned.
func (s *BinService) AttachPhoto(ctx context.Context, binID string, r io.Reader, size int64, contentType, cacheControl string) (*models.Bin, string, error) {
	if s.blobs == nil {
		return nil, "", fmt.Errorf("blob store is not configured")
	}
	contentType = strings.TrimSpace(contentType)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key := photoKey(binID, time.Now().UTC())
	if _, err := s.blobs.Put(ctx, key, r, size, blobstore.PutOptions{
		ContentType:  contentType,
		CacheControl: cacheControl,
	}); err != nil {
		return nil, "", fmt.Errorf("store photo: %w", err)
	}

	bin, err := s.apply(ctx, binID, api.BinUpdate{PhotoKey: &key}, &contentType)
	if err != nil {
		return nil, "", err
	}
	return bin, key, nil
}

// OpenPhoto resolves the bin's photo reference and opens the blob. Missing
// bin, missing reference, and missing blob all surface as not-found.
func (s *BinService) OpenPhoto(ctx context.Context, binID string) (io.ReadCloser, blobstore.BlobInfo, error) {
	var info blobstore.BlobInfo

	bin, err := s.store.GetBin(ctx, binID)
	if err != nil {
		return nil, info, storeFailure(err)
	}
	if bin == nil {
		return nil, info, ErrBinNotFound
	}
	if !bin.HasPhoto() {
		return nil, info, ErrNoPhoto
	}
	if s.blobs == nil {
		return nil, info, fmt.Errorf("blob store is not configured")
	}

	rc, info, err := s.blobs.Open(ctx, *bin.PhotoKey)
	if err != nil {
		return nil, info, err
	}
	if info.ContentType == "" && bin.PhotoContentType != nil {
		info.ContentType = *bin.PhotoContentType
	}
	return rc, info, nil
}

// apply is the field-merge core: fetch, resolve each provided field over the
// existing value, stamp updated_at, then insert or update.
func (s *BinService) apply(ctx context.Context, binID string, update api.BinUpdate, photoContentType *string) (*models.Bin, error) {
	existing, err := s.store.GetBin(ctx, binID)
	if err != nil {
		return nil, storeFailure(err)
	}

	resolved := &models.Bin{BinID: binID}
	if existing != nil {
		*resolved = *existing
	}

	if update.CaseCode != nil {
		resolved.CaseCode = update.CaseCode
	}
	if update.BinType != nil {
		resolved.BinType = update.BinType
	}
	if update.Notes != nil {
		resolved.Notes = update.Notes
	}
	if update.PhotoKey != nil {
		resolved.PhotoKey = update.PhotoKey
	}
	if photoContentType != nil {
		resolved.PhotoContentType = photoContentType
	}
	resolved.UpdatedAt = time.Now().UnixMilli()

	if existing == nil {
		err = s.store.InsertBin(ctx, resolved)
	} else {
		err = s.store.UpdateBin(ctx, resolved)
	}
	if err != nil {
		return nil, storeFailure(err)
	}

	return resolved, nil
}

func photoKey(binID string, uploadedAt time.Time) string {
	return fmt.Sprintf("bins/%s/%d", binID, uploadedAt.UnixMilli())
}
