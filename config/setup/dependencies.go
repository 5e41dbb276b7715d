package setup

import (
	"barcode-scanner/app"
	"barcode-scanner/config"
	"barcode-scanner/database"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// InitDatabase initializes the SQLite database and runs migrations
func InitDatabase(dbPath string, logger *slog.Logger) (*database.DB, error) {
	db, err := database.New(dbPath)
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, err
	}

	version, _, err := db.MigrateVersion()
	if err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("database initialized", "path", dbPath, "schema_version", version)
	return db, nil
}

// NewRegistry returns a registry carrying the Go runtime and process
// collectors alongside the application counters.
func NewRegistry() *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return registry
}

// InitApp initializes the application with all dependencies
func InitApp(db *database.DB, cfg *config.Config, logger *slog.Logger) *app.App {
	repo := database.NewRepository(db).WithPageSize(cfg.PageSize)

	application := app.New(repo, NewRegistry(), cfg.DoNotSaveDuplicates, logger)
	logger.Info("application initialized",
		"page_size", repo.PageSize(),
		"do_not_save_duplicates", cfg.DoNotSaveDuplicates,
	)

	return application
}

// Shutdown performs graceful shutdown of all services
func Shutdown(db *database.DB, logger *slog.Logger) {
	logger.Info("shutting down services...")

	if db != nil {
		db.Close()
		logger.Info("database closed")
	}
}
