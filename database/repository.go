package database

import (
	"barcode-scanner/models"
	"database/sql"
	"time"
)

// DefaultPageSize is the number of rows a Pager returns per page.
const DefaultPageSize = 20

// Repository is the only reader and writer of the codes and params tables.
// Operations are split by file:
// - barcodes.go: codes table queries and writes
// - pager.go: paged streams over codes
// - params.go: params table
// - tokens.go: token counter and dedup insert built on the above
type Repository struct {
	db       *DB
	pageSize int
}

func NewRepository(db *DB) *Repository {
	return &Repository{db: db, pageSize: DefaultPageSize}
}

// WithPageSize returns a copy of r whose pagers use size rows per page.
func (r *Repository) WithPageSize(size int) *Repository {
	if size < 1 {
		size = DefaultPageSize
	}
	return &Repository{db: r.db, pageSize: size}
}

func (r *Repository) PageSize() int {
	return r.pageSize
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

const barcodeColumns = `id, format, schema, text, date, token, isFavorite`

func scanBarcode(s rowScanner) (models.Barcode, error) {
	var b models.Barcode
	var dateMillis int64
	if err := s.Scan(
		&b.ID, &b.Format, &b.Schema, &b.Text,
		&dateMillis, &b.Token, &b.IsFavorite,
	); err != nil {
		return models.Barcode{}, err
	}
	b.Date = time.UnixMilli(dateMillis)
	return b, nil
}

func collectBarcodes(rows *sql.Rows) ([]models.Barcode, error) {
	defer rows.Close()

	// Initialize with empty slice to avoid returning nil
	barcodes := make([]models.Barcode, 0)
	for rows.Next() {
		b, err := scanBarcode(rows)
		if err != nil {
			return nil, err
		}
		barcodes = append(barcodes, b)
	}
	return barcodes, rows.Err()
}
