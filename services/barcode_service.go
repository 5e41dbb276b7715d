package services

import (
	"barcode-scanner/database"
	"barcode-scanner/metrics"
	"barcode-scanner/models"
	"context"
	"fmt"
	"time"
)

// ListKind selects one of the paged barcode listings.
type ListKind string

const (
	ListAll       ListKind = "all"
	ListToday     ListKind = "today"
	ListFavorites ListKind = "favorites"
)

// RecordResult is the outcome of recording a scan. Duplicate is set when the
// scan matched a stored barcode and nothing was written.
type RecordResult struct {
	Barcode   models.Barcode `json:"barcode"`
	Duplicate bool           `json:"duplicate"`
}

// BarcodePage is one page of a listing.
type BarcodePage struct {
	Barcodes []models.Barcode `json:"barcodes"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
	Total    int              `json:"total"`
}

// BarcodeService handles business logic for scanned barcodes
type BarcodeService struct {
	repo                BarcodeRepository
	validator           Validator
	metrics             *metrics.Metrics
	doNotSaveDuplicates bool
	now                 func() time.Time
}

// NewBarcodeService creates a new barcode service
func NewBarcodeService(repo BarcodeRepository, validator Validator, m *metrics.Metrics, doNotSaveDuplicates bool) *BarcodeService {
	return &BarcodeService{
		repo:                repo,
		validator:           validator,
		metrics:             m,
		doNotSaveDuplicates: doNotSaveDuplicates,
		now:                 time.Now,
	}
}

// Record stores a freshly scanned barcode under the next token. When
// duplicates are not saved and the (format, text) pair is already stored,
// the stored barcode is returned and no token is consumed.
func (bs *BarcodeService) Record(ctx context.Context, req models.RecordBarcodeRequest) (*RecordResult, error) {
	if err := bs.validator.Validate(req); err != nil {
		return nil, err
	}

	format, err := models.ParseBarcodeFormat(req.Format)
	if err != nil {
		return nil, err
	}
	schema := models.SchemaOther
	if req.Schema != "" {
		if schema, err = models.ParseBarcodeSchema(req.Schema); err != nil {
			return nil, err
		}
	}

	if bs.doNotSaveDuplicates {
		found, err := bs.repo.Find(format, req.Text).Await(ctx)
		if err != nil {
			return nil, err
		}
		if len(found) > 0 {
			bs.metrics.BarcodeDuplicate()
			return &RecordResult{Barcode: found[0], Duplicate: true}, nil
		}
	}

	token, err := bs.repo.GetToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	bs.metrics.TokenIssued()

	b := models.Barcode{
		Format:     format,
		Schema:     schema,
		Text:       req.Text,
		Date:       bs.now().Truncate(time.Millisecond),
		Token:      token,
		IsFavorite: req.Favorite,
	}

	// The repository re-checks for duplicates, closing the gap between the
	// lookup above and this write.
	id, err := bs.repo.SaveBarcode(b, bs.doNotSaveDuplicates).Await(ctx)
	if err != nil {
		return nil, err
	}
	b.ID = id
	bs.metrics.BarcodeSaved()

	return &RecordResult{Barcode: b}, nil
}

// List returns page n of the selected listing
func (bs *BarcodeService) List(ctx context.Context, kind ListKind, page int) (*BarcodePage, error) {
	var pager *database.Pager
	switch kind {
	case ListAll:
		pager = bs.repo.GetAll()
	case ListToday:
		pager = bs.repo.GetTodayReport()
	case ListFavorites:
		pager = bs.repo.GetFavorites()
	default:
		return nil, ErrInvalidListKind
	}

	if page < 0 {
		page = 0
	}

	barcodes, err := pager.Page(ctx, page)
	if err != nil {
		return nil, err
	}
	total, err := pager.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &BarcodePage{
		Barcodes: barcodes,
		Page:     page,
		PageSize: pager.PageSize(),
		Total:    total,
	}, nil
}

// Get retrieves a single barcode
func (bs *BarcodeService) Get(ctx context.Context, id int64) (*models.Barcode, error) {
	b, err := bs.repo.GetBarcode(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrBarcodeNotFound
	}
	return b, nil
}

// Export returns the export projection of every barcode
func (bs *BarcodeService) Export(ctx context.Context) ([]models.ExportBarcode, error) {
	return bs.repo.GetAllForExport().Await(ctx)
}

// SetFavorite flags or unflags a stored barcode
func (bs *BarcodeService) SetFavorite(ctx context.Context, id int64, favorite bool) (*models.Barcode, error) {
	b, err := bs.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if _, err := bs.repo.SetFavorite(id, favorite).Await(ctx); err != nil {
		return nil, err
	}
	b.IsFavorite = favorite
	return b, nil
}

// Delete removes a barcode. Unknown IDs are not an error.
func (bs *BarcodeService) Delete(ctx context.Context, id int64) error {
	if _, err := bs.repo.Delete(id).Await(ctx); err != nil {
		return err
	}
	bs.metrics.BarcodeDeleted()
	return nil
}

// DeleteAll removes every barcode
func (bs *BarcodeService) DeleteAll(ctx context.Context) error {
	if _, err := bs.repo.DeleteAll().Await(ctx); err != nil {
		return err
	}
	bs.metrics.BarcodeDeleted()
	return nil
}

// NextToken consumes and returns the next token
func (bs *BarcodeService) NextToken(ctx context.Context) (int, error) {
	token, err := bs.repo.GetToken(ctx)
	if err != nil {
		return 0, err
	}
	bs.metrics.TokenIssued()
	return token, nil
}

// CurrentToken returns the next token without consuming it
func (bs *BarcodeService) CurrentToken(ctx context.Context) (int, error) {
	return bs.repo.GetTokenForDisplay(ctx)
}

// TodayCount returns the number of barcodes scanned today
func (bs *BarcodeService) TodayCount(ctx context.Context) (int, error) {
	return bs.repo.GetTodayTokenCount(ctx)
}
