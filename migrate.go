package main

import (
	"barcode-scanner/database"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func migrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	cmd.AddCommand(
		migrateSubcommand("up", "Apply all pending migrations", cobra.NoArgs,
			func(db *database.DB, _ []string) error { return db.MigrateUp() }),
		migrateSubcommand("down", "Roll back the most recent migration", cobra.NoArgs,
			func(db *database.DB, _ []string) error { return db.MigrateDown() }),
		migrateSubcommand("version", "Print the current schema version", cobra.NoArgs,
			func(db *database.DB, _ []string) error { return nil }),
		migrateSubcommand("goto N", "Migrate up or down to version N", cobra.ExactArgs(1),
			func(db *database.DB, args []string) error {
				version, err := strconv.ParseUint(args[0], 10, 32)
				if err != nil {
					return fmt.Errorf("invalid version %q: %w", args[0], err)
				}
				return db.MigrateTo(uint(version))
			}),
		migrateSubcommand("force N", "Mark version N as applied and clear the dirty flag", cobra.ExactArgs(1),
			func(db *database.DB, args []string) error {
				version, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid version %q: %w", args[0], err)
				}
				return db.MigrateForce(version)
			}),
	)

	return cmd
}

// migrateSubcommand opens the database without migrating it, runs fn, then
// reports the resulting schema version.
func migrateSubcommand(use, short string, args cobra.PositionalArgs, fn func(*database.DB, []string) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, argv []string) error {
			db, err := database.New(cfg.DBPath)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := fn(db, argv); err != nil {
				return err
			}

			version, dirty, err := db.MigrateVersion()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "schema version %d (latest %d, dirty=%t)\n", version, database.SchemaVersion, dirty)
			return nil
		},
	}
}
