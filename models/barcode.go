package models

import "time"

// Barcode is one scanned code as stored in the codes table.
type Barcode struct {
	ID         int64         `json:"id"`
	Format     BarcodeFormat `json:"format"`
	Schema     BarcodeSchema `json:"schema"`
	Text       string        `json:"text"`
	Date       time.Time     `json:"date"`
	Token      int           `json:"token"`
	IsFavorite bool          `json:"is_favorite"`
}

// ExportBarcode is the projection returned for export.
type ExportBarcode struct {
	Date   time.Time     `json:"date"`
	Format BarcodeFormat `json:"format"`
	Text   string        `json:"text"`
	ID     int64         `json:"id"`
	Token  int           `json:"token"`
}

// Parameter is a named integer setting kept in the params table.
type Parameter struct {
	Code  string `json:"code"`
	Value int    `json:"value"`
}

type RecordBarcodeRequest struct {
	Format   string `json:"format" validate:"required,barcodeformat"`
	Schema   string `json:"schema" validate:"omitempty,barcodeschema"`
	Text     string `json:"text" validate:"required,max=7089"`
	Favorite bool   `json:"favorite"`
}

type SetFavoriteRequest struct {
	Favorite bool `json:"favorite"`
}
