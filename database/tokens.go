package database

import (
	"barcode-scanner/async"
	"barcode-scanner/models"
	"context"
	"fmt"
)

const (
	// TokenParam is the params code holding the next token to assign.
	TokenParam = "TOKEN"
	// InitialToken is the first token handed out on an empty database.
	InitialToken = 100
)

const ensureTokenSQL = `INSERT INTO params (code, value) VALUES (?, ?) ON CONFLICT(code) DO NOTHING`

// GetToken issues the next token: it returns the current counter value and
// leaves the counter one higher. The increment is a single UPDATE inside a
// write transaction, so concurrent callers always get distinct tokens.
func (r *Repository) GetToken(ctx context.Context) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin token transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, ensureTokenSQL, TokenParam, InitialToken); err != nil {
		return 0, fmt.Errorf("failed to initialize token: %w", err)
	}

	var token int
	err = tx.QueryRowContext(ctx, `
		UPDATE params SET value = value + 1
		WHERE code = ?
		RETURNING value - 1
	`, TokenParam).Scan(&token)
	if err != nil {
		return 0, fmt.Errorf("failed to increment token: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit token: %w", err)
	}
	return token, nil
}

// GetTokenForDisplay returns the next token without consuming it.
func (r *Repository) GetTokenForDisplay(ctx context.Context) (int, error) {
	if _, err := r.db.ExecContext(ctx, ensureTokenSQL, TokenParam, InitialToken); err != nil {
		return 0, fmt.Errorf("failed to initialize token: %w", err)
	}

	param, err := r.FindParam(ctx, TokenParam)
	if err != nil {
		return 0, err
	}
	if param == nil {
		return 0, fmt.Errorf("token parameter missing after initialization")
	}
	return param.Value, nil
}

// UpdateToken overwrites the token counter. Returns 0 if it was never
// initialized.
func (r *Repository) UpdateToken(ctx context.Context, value int) (int64, error) {
	return r.UpdateParam(ctx, TokenParam, value)
}

// SaveIfNotPresent saves b unless a barcode with the same format and text
// exists, in which case it resolves to the existing ID without writing.
func (r *Repository) SaveIfNotPresent(b models.Barcode) async.Single[int64] {
	return async.FlatMap(r.Find(b.Format, b.Text), func(found []models.Barcode) async.Single[int64] {
		if len(found) == 0 {
			return r.Save(b)
		}
		return async.Just(found[0].ID)
	})
}

// SaveBarcode saves b, skipping duplicates when doNotSaveDuplicates is set.
func (r *Repository) SaveBarcode(b models.Barcode, doNotSaveDuplicates bool) async.Single[int64] {
	if doNotSaveDuplicates {
		return r.SaveIfNotPresent(b)
	}
	return r.Save(b)
}
