package app

import (
	"barcode-scanner/database"
	"barcode-scanner/metrics"
	"barcode-scanner/services"
	"barcode-scanner/validator"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

// App holds all application dependencies
// This struct is the central point for dependency injection
type App struct {
	Repo      *database.Repository
	Barcodes  *services.BarcodeService
	Validator *validator.Validator
	Metrics   *metrics.Metrics
	Registry  *prometheus.Registry
	Logger    *slog.Logger
}

// New creates a new App instance with all dependencies.
// doNotSaveDuplicates is the scanner's dedup preference.
func New(repo *database.Repository, registry *prometheus.Registry, doNotSaveDuplicates bool, logger *slog.Logger) *App {
	v := validator.New()

	m := metrics.New()
	m.Register(registry)

	return &App{
		Repo:      repo,
		Barcodes:  services.NewBarcodeService(repo, v, m, doNotSaveDuplicates),
		Validator: v,
		Metrics:   m,
		Registry:  registry,
		Logger:    logger,
	}
}
