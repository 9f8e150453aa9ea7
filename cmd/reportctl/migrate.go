package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"report-system/pkg/database/migrate"
)

// NewMigrateCmd creates the migrate command.
func NewMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Применить миграции к выбранной базе",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := cmdLogger(cmd)
			ctx := cmd.Context()

			src, err := openSource(ctx, cmd, logger)
			if err != nil {
				return err
			}
			defer src.close()

			if err := migrate.Up(ctx, src.db, src.dialect, logger); err != nil {
				return err
			}
			version, err := migrate.Version(ctx, src.db, src.dialect, logger)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Версия схемы: %d\n", version)
			return nil
		},
	}
}
