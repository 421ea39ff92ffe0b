package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	platformdb "stockboard_backend/internal/platform/db"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update all tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}
			if sqlDB, err := db.DB(); err == nil {
				defer func() { _ = sqlDB.Close() }()
			}
			if err := platformdb.Migrate(db); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}
}
