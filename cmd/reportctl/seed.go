package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"report-system/pkg/database/migrate"
	"report-system/seeders"
)

// NewSeedCmd creates the seed command.
func NewSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Наполнить базу демонстрационными отделами и контактами",
		Long:  "Перед наполнением применяет миграции. Повторный запуск не создаёт дубликатов.",
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
			res, err := seeders.Seed(ctx, src.db, src.placeholder, logger)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Добавлено отделов: %d, контактов: %d\n", res.Departments, res.Contacts)
			return nil
		},
	}
}
