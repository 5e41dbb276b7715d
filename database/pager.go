package database

import (
	"barcode-scanner/models"
	"context"
	"iter"
)

// Pager is a lazy, restartable paged view over a barcode query. Every call
// re-runs the query, so pages reflect the table at the time of the call.
type Pager struct {
	db       *DB
	where    string
	orderBy  string
	pageSize int
}

func (r *Repository) newPager(orderBy, where string) *Pager {
	return &Pager{
		db:       r.db,
		where:    where,
		orderBy:  orderBy,
		pageSize: r.pageSize,
	}
}

func (p *Pager) PageSize() int {
	return p.pageSize
}

// Page returns the rows of the zero-based page n. Past the end it returns an
// empty slice.
func (p *Pager) Page(ctx context.Context, n int) ([]models.Barcode, error) {
	if n < 0 {
		n = 0
	}

	rows, err := p.db.QueryContext(ctx, `
		SELECT `+barcodeColumns+`
		FROM codes
		`+p.where+`
		`+p.orderBy+`
		LIMIT ? OFFSET ?
	`, p.pageSize, n*p.pageSize)
	if err != nil {
		return nil, err
	}
	return collectBarcodes(rows)
}

// Count returns the number of rows the query currently matches.
func (p *Pager) Count(ctx context.Context) (int, error) {
	var count int
	err := p.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM codes `+p.where).Scan(&count)
	return count, err
}

// All walks every row page by page, fetching the next page only when the
// caller has consumed the previous one. Iteration stops at the first error.
func (p *Pager) All(ctx context.Context) iter.Seq2[models.Barcode, error] {
	return func(yield func(models.Barcode, error) bool) {
		for n := 0; ; n++ {
			page, err := p.Page(ctx, n)
			if err != nil {
				yield(models.Barcode{}, err)
				return
			}
			for _, b := range page {
				if !yield(b, nil) {
					return
				}
			}
			if len(page) < p.pageSize {
				return
			}
		}
	}
}
