package database

import (
	"barcode-scanner/models"
	"context"
	"database/sql"
)

// ==================== PARAMETER OPERATIONS ====================

// FindParam retrieves a parameter by code. Returns nil when absent.
func (r *Repository) FindParam(ctx context.Context, code string) (*models.Parameter, error) {
	var p models.Parameter
	err := r.db.QueryRowContext(ctx, `
		SELECT code, value FROM params WHERE code = ?
	`, code).Scan(&p.Code, &p.Value)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// SaveParam inserts a new parameter and returns its row ID. Fails if code
// already exists.
func (r *Repository) SaveParam(ctx context.Context, code string, value int) (int64, error) {
	res, err := r.db.ExecContext(ctx, `INSERT INTO params (code, value) VALUES (?, ?)`, code, value)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// UpdateParam sets the value of an existing parameter and returns the number
// of rows changed, which is 0 when code does not exist.
func (r *Repository) UpdateParam(ctx context.Context, code string, value int) (int64, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE params SET value = ? WHERE code = ?`, value, code)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
