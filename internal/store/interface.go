package store

import (
	"context"

	"bintrack/internal/models"
)

// BinStore abstracts bin row storage backends.
type BinStore interface {
	GetBin(ctx context.Context, binID string) (*models.Bin, error)
	InsertBin(ctx context.Context, bin *models.Bin) error
	UpdateBin(ctx context.Context, bin *models.Bin) error
	ListBins(ctx context.Context, limit, offset int) ([]models.Bin, error)
	CountBins(ctx context.Context) (int, error)
}

var _ BinStore = (*Store)(nil)
