package services

import (
	"barcode-scanner/async"
	"barcode-scanner/database"
	"barcode-scanner/models"
	"context"
)

// BarcodeRepository defines the data access the barcode service needs.
// Production uses *database.Repository.
type BarcodeRepository interface {
	GetAll() *database.Pager
	GetTodayReport() *database.Pager
	GetFavorites() *database.Pager
	GetAllForExport() async.Single[[]models.ExportBarcode]
	Find(format models.BarcodeFormat, text string) async.Single[[]models.Barcode]
	GetBarcode(ctx context.Context, id int64) (*models.Barcode, error)
	SaveBarcode(b models.Barcode, doNotSaveDuplicates bool) async.Single[int64]
	SetFavorite(id int64, favorite bool) async.Completable
	Delete(id int64) async.Completable
	DeleteAll() async.Completable
	GetTodayTokenCount(ctx context.Context) (int, error)
	GetToken(ctx context.Context) (int, error)
	GetTokenForDisplay(ctx context.Context) (int, error)
}

var _ BarcodeRepository = (*database.Repository)(nil)

// Validator checks request structs before they reach the store
type Validator interface {
	Validate(i interface{}) error
}
