package main

import (
	"barcode-scanner/database"
	"fmt"

	"github.com/spf13/cobra"
)

func tokenCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Inspect or consume scan tokens",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the token the next scan will receive",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRepository(func(repo *database.Repository) error {
				token, err := repo.GetTokenForDisplay(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), token)
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "next",
		Short: "Consume and print the next token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRepository(func(repo *database.Repository) error {
				token, err := repo.GetToken(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), token)
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "today",
		Short: "Print how many barcodes were scanned today (UTC)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRepository(func(repo *database.Repository) error {
				count, err := repo.GetTodayTokenCount(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), count)
				return nil
			})
		},
	})

	return cmd
}

func withRepository(fn func(*database.Repository) error) error {
	db, err := openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	return fn(database.NewRepository(db).WithPageSize(cfg.PageSize))
}
