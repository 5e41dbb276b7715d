package database

import (
	"barcode-scanner/async"
	"barcode-scanner/models"
	"context"
	"database/sql"
	"fmt"
	"time"
)

// ==================== BARCODE OPERATIONS ====================

// isToday matches rows whose date falls on the current UTC calendar day.
const isToday = `strftime('%Y%m%d', 'now') = strftime('%Y%m%d', date / 1000, 'unixepoch')`

// GetAll pages through every barcode, newest first.
func (r *Repository) GetAll() *Pager {
	return r.newPager(`ORDER BY date DESC, token DESC`, ``)
}

// GetTodayReport pages through barcodes scanned today, newest first.
func (r *Repository) GetTodayReport() *Pager {
	return r.newPager(`ORDER BY date DESC, token DESC`, `WHERE `+isToday)
}

// GetFavorites pages through favorite barcodes, newest first.
func (r *Repository) GetFavorites() *Pager {
	return r.newPager(`ORDER BY date DESC`, `WHERE isFavorite = 1`)
}

// GetAllForExport loads the export projection of every barcode.
func (r *Repository) GetAllForExport() async.Single[[]models.ExportBarcode] {
	return async.New(func(ctx context.Context) ([]models.ExportBarcode, error) {
		rows, err := r.db.QueryContext(ctx, `
			SELECT date, format, text, id, token
			FROM codes
			ORDER BY date DESC
		`)
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		exports := make([]models.ExportBarcode, 0)
		for rows.Next() {
			var e models.ExportBarcode
			var dateMillis int64
			if err := rows.Scan(&dateMillis, &e.Format, &e.Text, &e.ID, &e.Token); err != nil {
				return nil, err
			}
			e.Date = time.UnixMilli(dateMillis)
			exports = append(exports, e)
		}
		return exports, rows.Err()
	})
}

// Find looks up a barcode by format and text. The result holds at most one
// element and is empty, not an error, when nothing matches.
func (r *Repository) Find(format models.BarcodeFormat, text string) async.Single[[]models.Barcode] {
	return async.New(func(ctx context.Context) ([]models.Barcode, error) {
		rows, err := r.db.QueryContext(ctx, `
			SELECT `+barcodeColumns+`
			FROM codes
			WHERE format = ? AND text = ?
			LIMIT 1
		`, format, text)
		if err != nil {
			return nil, err
		}
		return collectBarcodes(rows)
	})
}

// GetBarcode retrieves a barcode by ID. Returns nil when absent.
func (r *Repository) GetBarcode(ctx context.Context, id int64) (*models.Barcode, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+barcodeColumns+`
		FROM codes
		WHERE id = ?
	`, id)

	b, err := scanBarcode(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Save inserts b, replacing any row that already has b.ID. A zero ID lets
// the database assign one. Resolves to the row ID.
func (r *Repository) Save(b models.Barcode) async.Single[int64] {
	return async.New(func(ctx context.Context) (int64, error) {
		id := sql.NullInt64{Int64: b.ID, Valid: b.ID != 0}

		res, err := r.db.ExecContext(ctx, `
			INSERT OR REPLACE INTO codes (`+barcodeColumns+`)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`,
			id, b.Format, b.Schema, b.Text,
			b.Date.UnixMilli(), b.Token, b.IsFavorite,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to save barcode: %w", err)
		}
		return res.LastInsertId()
	})
}

// SetFavorite flags or unflags a barcode. Unknown IDs are ignored.
func (r *Repository) SetFavorite(id int64, favorite bool) async.Completable {
	return async.Complete(func(ctx context.Context) error {
		_, err := r.db.ExecContext(ctx, `UPDATE codes SET isFavorite = ? WHERE id = ?`, favorite, id)
		return err
	})
}

// Delete removes one barcode. Deleting an unknown ID is not an error.
func (r *Repository) Delete(id int64) async.Completable {
	return async.Complete(func(ctx context.Context) error {
		_, err := r.db.ExecContext(ctx, `DELETE FROM codes WHERE id = ?`, id)
		return err
	})
}

// DeleteAll removes every barcode.
func (r *Repository) DeleteAll() async.Completable {
	return async.Complete(func(ctx context.Context) error {
		_, err := r.db.ExecContext(ctx, `DELETE FROM codes`)
		return err
	})
}

// GetTodayTokenCount counts the barcodes scanned today.
func (r *Repository) GetTodayTokenCount(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM codes WHERE `+isToday).Scan(&count)
	return count, err
}
