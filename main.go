package main

import (
	"barcode-scanner/config"
	"barcode-scanner/config/setup"
	"barcode-scanner/database"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

const programName = "barcode-scanner"

var (
	globalFlags = struct {
		debug bool
	}{}
	cfg *config.Config
)

func main() {
	rootCmd := &cobra.Command{
		Use:          programName,
		Short:        "Barcode history and token store",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serveRun(cmd.Context())
		},
	}

	rootCmd.PersistentFlags().
		BoolVarP(&globalFlags.debug, "debug", "D", false, "enable debug logging")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded

		slog.SetDefault(setupLogger())
		return nil
	}

	rootCmd.AddCommand(serveCommand())
	rootCmd.AddCommand(migrateCommand())
	rootCmd.AddCommand(tokenCommand())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// openDatabase opens and migrates the configured database for one-shot
// commands.
func openDatabase() (*database.DB, error) {
	return setup.InitDatabase(cfg.DBPath, slog.Default())
}

func setupLogger() *slog.Logger {
	var handler slog.Handler

	opts := &slog.HandlerOptions{
		Level:     getLogLevel(),
		AddSource: globalFlags.debug || cfg.Env == "development",
	}

	if cfg.IsProduction() {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler).With("component", programName)
}

func getLogLevel() slog.Level {
	if globalFlags.debug {
		return slog.LevelDebug
	}
	switch cfg.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
