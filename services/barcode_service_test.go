package services

import (
	"barcode-scanner/async"
	"barcode-scanner/database"
	"barcode-scanner/metrics"
	"barcode-scanner/models"
	"barcode-scanner/validator"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// ==================== MOCKS ====================

// MockRepository is a mock implementation of BarcodeRepository interface
type MockRepository struct {
	mock.Mock
}

// Ensure MockRepository implements BarcodeRepository interface
var _ BarcodeRepository = (*MockRepository)(nil)

func (m *MockRepository) GetAll() *database.Pager {
	args := m.Called()
	return args.Get(0).(*database.Pager)
}

func (m *MockRepository) GetTodayReport() *database.Pager {
	args := m.Called()
	return args.Get(0).(*database.Pager)
}

func (m *MockRepository) GetFavorites() *database.Pager {
	args := m.Called()
	return args.Get(0).(*database.Pager)
}

func (m *MockRepository) GetAllForExport() async.Single[[]models.ExportBarcode] {
	args := m.Called()
	if args.Get(0) == nil {
		return async.Fail[[]models.ExportBarcode](args.Error(1))
	}
	return async.Just(args.Get(0).([]models.ExportBarcode))
}

func (m *MockRepository) Find(format models.BarcodeFormat, text string) async.Single[[]models.Barcode] {
	args := m.Called(format, text)
	if args.Get(0) == nil {
		return async.Fail[[]models.Barcode](args.Error(1))
	}
	return async.Just(args.Get(0).([]models.Barcode))
}

func (m *MockRepository) GetBarcode(ctx context.Context, id int64) (*models.Barcode, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Barcode), args.Error(1)
}

func (m *MockRepository) SaveBarcode(b models.Barcode, doNotSaveDuplicates bool) async.Single[int64] {
	args := m.Called(b, doNotSaveDuplicates)
	if err := args.Error(1); err != nil {
		return async.Fail[int64](err)
	}
	return async.Just(args.Get(0).(int64))
}

func (m *MockRepository) SetFavorite(id int64, favorite bool) async.Completable {
	return completable(m.Called(id, favorite).Error(0))
}

func (m *MockRepository) Delete(id int64) async.Completable {
	return completable(m.Called(id).Error(0))
}

func (m *MockRepository) DeleteAll() async.Completable {
	return completable(m.Called().Error(0))
}

func (m *MockRepository) GetTodayTokenCount(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) GetToken(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) GetTokenForDisplay(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func completable(err error) async.Completable {
	if err != nil {
		return async.Fail[struct{}](err)
	}
	return async.Just(struct{}{})
}

// ==================== HELPERS ====================

func newTestService(repo BarcodeRepository, dedup bool) (*BarcodeService, *prometheus.Registry) {
	registry := prometheus.NewRegistry()
	m := metrics.New()
	m.Register(registry)

	svc := NewBarcodeService(repo, validator.New(), m, dedup)
	svc.now = func() time.Time {
		return time.Date(2026, 3, 14, 9, 26, 53, 589793238, time.UTC)
	}
	return svc, registry
}

// counterValue reads a counter from g, or 0 when it has not been created.
func counterValue(t *testing.T, g prometheus.Gatherer, name string) float64 {
	t.Helper()
	families, err := g.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() == name && len(mf.GetMetric()) > 0 {
			return mf.GetMetric()[0].GetCounter().GetValue()
		}
	}
	return 0
}

// ==================== TESTS ====================

func TestBarcodeService_Record(t *testing.T) {
	ctx := context.Background()

	t.Run("Stores scan under a fresh token", func(t *testing.T) {
		repo := new(MockRepository)
		svc, registry := newTestService(repo, false)

		repo.On("GetToken", ctx).Return(100, nil).Once()
		repo.On("SaveBarcode", mock.MatchedBy(func(b models.Barcode) bool {
			return b.Format == models.FormatQRCode &&
				b.Schema == models.SchemaURL &&
				b.Text == "https://example.com" &&
				b.Token == 100 &&
				b.Date.Nanosecond() == 589000000 &&
				b.ID == 0
		}), false).Return(int64(7), nil).Once()

		res, err := svc.Record(ctx, models.RecordBarcodeRequest{
			Format: "QR_CODE",
			Schema: "URL",
			Text:   "https://example.com",
		})

		require.NoError(t, err)
		assert.False(t, res.Duplicate)
		assert.Equal(t, int64(7), res.Barcode.ID)
		assert.Equal(t, 100, res.Barcode.Token)
		assert.Equal(t, 1.0, counterValue(t, registry, "barcode_scanner_barcodes_saved_total"))
		assert.Equal(t, 1.0, counterValue(t, registry, "barcode_scanner_tokens_issued_total"))
		repo.AssertExpectations(t)
	})

	t.Run("Schema defaults to OTHER", func(t *testing.T) {
		repo := new(MockRepository)
		svc, _ := newTestService(repo, false)

		repo.On("GetToken", ctx).Return(101, nil).Once()
		repo.On("SaveBarcode", mock.MatchedBy(func(b models.Barcode) bool {
			return b.Schema == models.SchemaOther
		}), false).Return(int64(1), nil).Once()

		res, err := svc.Record(ctx, models.RecordBarcodeRequest{Format: "EAN_13", Text: "4006381333931"})

		require.NoError(t, err)
		assert.Equal(t, models.SchemaOther, res.Barcode.Schema)
		repo.AssertExpectations(t)
	})

	t.Run("Duplicate returns stored barcode without a token", func(t *testing.T) {
		repo := new(MockRepository)
		svc, registry := newTestService(repo, true)

		stored := models.Barcode{ID: 3, Format: models.FormatQRCode, Schema: models.SchemaOther, Text: "X", Token: 100}
		repo.On("Find", models.FormatQRCode, "X").Return([]models.Barcode{stored}, nil).Once()

		res, err := svc.Record(ctx, models.RecordBarcodeRequest{Format: "QR_CODE", Text: "X"})

		require.NoError(t, err)
		assert.True(t, res.Duplicate)
		assert.Equal(t, stored, res.Barcode)
		assert.Equal(t, 1.0, counterValue(t, registry, "barcode_scanner_barcodes_duplicate_total"))
		repo.AssertNotCalled(t, "GetToken", mock.Anything)
		repo.AssertNotCalled(t, "SaveBarcode", mock.Anything, mock.Anything)
	})

	t.Run("New scan with dedup on saves through dedup path", func(t *testing.T) {
		repo := new(MockRepository)
		svc, _ := newTestService(repo, true)

		repo.On("Find", models.FormatCode128, "ABC").Return([]models.Barcode{}, nil).Once()
		repo.On("GetToken", ctx).Return(105, nil).Once()
		repo.On("SaveBarcode", mock.Anything, true).Return(int64(9), nil).Once()

		res, err := svc.Record(ctx, models.RecordBarcodeRequest{Format: "CODE_128", Text: "ABC"})

		require.NoError(t, err)
		assert.False(t, res.Duplicate)
		assert.Equal(t, int64(9), res.Barcode.ID)
		repo.AssertExpectations(t)
	})

	t.Run("Validation failure touches nothing", func(t *testing.T) {
		repo := new(MockRepository)
		svc, _ := newTestService(repo, false)

		_, err := svc.Record(ctx, models.RecordBarcodeRequest{Format: "QR", Text: "X"})

		var verrs validator.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		repo.AssertNotCalled(t, "GetToken", mock.Anything)
	})

	t.Run("Token failure is wrapped", func(t *testing.T) {
		repo := new(MockRepository)
		svc, _ := newTestService(repo, false)

		boom := errors.New("database is locked")
		repo.On("GetToken", ctx).Return(0, boom).Once()

		_, err := svc.Record(ctx, models.RecordBarcodeRequest{Format: "QR_CODE", Text: "X"})

		assert.ErrorIs(t, err, boom)
		repo.AssertNotCalled(t, "SaveBarcode", mock.Anything, mock.Anything)
	})

	t.Run("Save failure is returned", func(t *testing.T) {
		repo := new(MockRepository)
		svc, registry := newTestService(repo, false)

		boom := errors.New("disk full")
		repo.On("GetToken", ctx).Return(100, nil).Once()
		repo.On("SaveBarcode", mock.Anything, false).Return(int64(0), boom).Once()

		_, err := svc.Record(ctx, models.RecordBarcodeRequest{Format: "QR_CODE", Text: "X"})

		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 0.0, counterValue(t, registry, "barcode_scanner_barcodes_saved_total"))
	})
}

func TestBarcodeService_SetFavorite(t *testing.T) {
	ctx := context.Background()

	t.Run("Missing barcode", func(t *testing.T) {
		repo := new(MockRepository)
		svc, _ := newTestService(repo, false)

		repo.On("GetBarcode", ctx, int64(42)).Return(nil, nil).Once()

		_, err := svc.SetFavorite(ctx, 42, true)

		assert.ErrorIs(t, err, ErrBarcodeNotFound)
		repo.AssertNotCalled(t, "SetFavorite", mock.Anything, mock.Anything)
	})

	t.Run("Flags stored barcode", func(t *testing.T) {
		repo := new(MockRepository)
		svc, _ := newTestService(repo, false)

		repo.On("GetBarcode", ctx, int64(1)).Return(&models.Barcode{ID: 1, Text: "X"}, nil).Once()
		repo.On("SetFavorite", int64(1), true).Return(nil).Once()

		b, err := svc.SetFavorite(ctx, 1, true)

		require.NoError(t, err)
		assert.True(t, b.IsFavorite)
		repo.AssertExpectations(t)
	})
}

func TestBarcodeService_Delete(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	svc, registry := newTestService(repo, false)

	repo.On("Delete", int64(5)).Return(nil).Once()
	repo.On("DeleteAll").Return(errors.New("locked")).Once()

	require.NoError(t, svc.Delete(ctx, 5))
	assert.Error(t, svc.DeleteAll(ctx))
	assert.Equal(t, 1.0, counterValue(t, registry, "barcode_scanner_barcode_deletes_total"))
	repo.AssertExpectations(t)
}

func TestBarcodeService_Tokens(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	svc, registry := newTestService(repo, false)

	repo.On("GetTokenForDisplay", ctx).Return(100, nil).Once()
	repo.On("GetToken", ctx).Return(100, nil).Once()
	repo.On("GetTodayTokenCount", ctx).Return(4, nil).Once()

	current, err := svc.CurrentToken(ctx)
	require.NoError(t, err)
	next, err := svc.NextToken(ctx)
	require.NoError(t, err)
	count, err := svc.TodayCount(ctx)
	require.NoError(t, err)

	assert.Equal(t, 100, current)
	assert.Equal(t, 100, next)
	assert.Equal(t, 4, count)
	assert.Equal(t, 1.0, counterValue(t, registry, "barcode_scanner_tokens_issued_total"))
}

func TestBarcodeService_Export(t *testing.T) {
	repo := new(MockRepository)
	svc, _ := newTestService(repo, false)

	rows := []models.ExportBarcode{{ID: 1, Text: "X", Token: 100}}
	repo.On("GetAllForExport").Return(rows, nil).Once()

	got, err := svc.Export(context.Background())

	require.NoError(t, err)
	assert.Equal(t, rows, got)
}

func TestBarcodeService_List(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "barcode-scanner-service-*")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	db, err := database.New(filepath.Join(tmpDir, "test.db"))
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, db.Migrate())

	repo := database.NewRepository(db).WithPageSize(2)
	svc, _ := newTestService(repo, false)
	svc.now = time.Now
	ctx := context.Background()

	for _, text := range []string{"a", "b", "c"} {
		_, err := svc.Record(ctx, models.RecordBarcodeRequest{Format: "QR_CODE", Text: text, Favorite: text == "b"})
		require.NoError(t, err)
	}

	page, err := svc.List(ctx, ListAll, 0)
	require.NoError(t, err)
	assert.Len(t, page.Barcodes, 2)
	assert.Equal(t, 3, page.Total)
	assert.Equal(t, 2, page.PageSize)

	page, err = svc.List(ctx, ListAll, 1)
	require.NoError(t, err)
	assert.Len(t, page.Barcodes, 1)

	page, err = svc.List(ctx, ListFavorites, -3)
	require.NoError(t, err)
	assert.Equal(t, 0, page.Page)
	require.Len(t, page.Barcodes, 1)
	assert.Equal(t, "b", page.Barcodes[0].Text)

	page, err = svc.List(ctx, ListToday, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, page.Total)

	_, err = svc.List(ctx, ListKind("yesterday"), 0)
	assert.ErrorIs(t, err, ErrInvalidListKind)
}
