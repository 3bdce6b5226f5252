package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"bintrack/internal/models"
)

const binColumns = "bin_id, case_code, bin_type, notes, photo_key, photo_content_type, updated_at"

// GetBin returns one bin row, or nil when absent.
func (s *Store) GetBin(ctx context.Context, binID string) (*models.Bin, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+binColumns+` FROM bins WHERE bin_id = ?`, binID)
	bin, err := scanBin(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return bin, err
}

// InsertBin inserts a new bin row.
func (s *Store) InsertBin(ctx context.Context, bin *models.Bin) error {
	if bin == nil || bin.BinID == "" {
		return fmt.Errorf("bin id is required")
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO bins (`+binColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		bin.BinID,
		nullableText(bin.CaseCode),
		nullableText(bin.BinType),
		nullableText(bin.Notes),
		nullableText(bin.PhotoKey),
		nullableText(bin.PhotoContentType),
		bin.UpdatedAt,
	)
	return err
}

// UpdateBin rewrites all mutable columns of an existing bin row.
func (s *Store) UpdateBin(ctx context.Context, bin *models.Bin) error {
	if bin == nil || bin.BinID == "" {
		return fmt.Errorf("bin id is required")
	}
	_, err := s.db.ExecContext(ctx,
		`UPDATE bins SET case_code = ?, bin_type = ?, notes = ?, photo_key = ?, photo_content_type = ?, updated_at = ? WHERE bin_id = ?`,
		nullableText(bin.CaseCode),
		nullableText(bin.BinType),
		nullableText(bin.Notes),
		nullableText(bin.PhotoKey),
		nullableText(bin.PhotoContentType),
		bin.UpdatedAt,
		bin.BinID,
	)
	return err
}

// ListBins lists bins ordered by most recently updated first.
func (s *Store) ListBins(ctx context.Context, limit, offset int) ([]models.Bin, error) {
	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+binColumns+` FROM bins ORDER BY updated_at DESC, bin_id ASC LIMIT ? OFFSET ?`,
		limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bins := []models.Bin{}
	for rows.Next() {
		bin, err := scanBin(rows)
		if err != nil {
			return nil, err
		}
		bins = append(bins, *bin)
	}
	return bins, rows.Err()
}

// CountBins returns the total number of bin rows.
func (s *Store) CountBins(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM bins").Scan(&count)
	return count, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBin(row rowScanner) (*models.Bin, error) {
	var bin models.Bin
	var caseCode, binType, notes, photoKey, photoContentType sql.NullString

	err := row.Scan(&bin.BinID, &caseCode, &binType, &notes, &photoKey, &photoContentType, &bin.UpdatedAt)
	if err != nil {
		return nil, err
	}

	bin.CaseCode = textOrNil(caseCode)
	bin.BinType = textOrNil(binType)
	bin.Notes = textOrNil(notes)
	bin.PhotoKey = textOrNil(photoKey)
	bin.PhotoContentType = textOrNil(photoContentType)
	return &bin, nil
}

func nullableText(value *string) any {
	if value == nil {
		return nil
	}
	return *value
}

func textOrNil(value sql.NullString) *string {
	if !value.Valid {
		return nil
	}
	s := value.String
	return &s
}
