package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"report-system/internal/repositories"
	"report-system/pkg/config"
	"report-system/pkg/database/migrate"
	"report-system/pkg/database/postgresql"
	"report-system/pkg/database/sqlite"
	applogger "report-system/pkg/logger"
)

const (
	dbSQLite   = "sqlite"
	dbPostgres = "postgres"
)

// NewRootCmd creates the root command for reportctl.
func NewRootCmd() *cobra.Command {
	cfg := config.New()

	cmd := &cobra.Command{
		Use:   "reportctl",
		Short: "Выгрузка декларативных отчётов в CSV, XLSX и Markdown",
		Long: `reportctl строит отчёты по моделям из PostgreSQL или локального файла SQLite.

Встроенные отчёты дополняются описаниями из YAML-файла (--reports).`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().String("db", dbSQLite, "Источник данных: sqlite или postgres")
	cmd.PersistentFlags().String("sqlite-path", cfg.SQLite.Path, "Путь к файлу SQLite")
	cmd.PersistentFlags().String("dsn", cfg.Postgres.DSN, "DSN PostgreSQL")
	cmd.PersistentFlags().String("reports", cfg.Export.DefinitionsFile, "YAML с описаниями отчётов")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Подробный лог в stderr")

	cmd.AddCommand(NewListCmd())
	cmd.AddCommand(NewExportCmd(cfg))
	cmd.AddCommand(NewMigrateCmd())
	cmd.AddCommand(NewSeedCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func cmdLogger(cmd *cobra.Command) *zap.Logger {
	verbose, _ := cmd.Flags().GetBool("verbose")
	return applogger.NewCLILogger(verbose)
}

// source - открытая база и всё, что нужно командам для работы с ней.
type source struct {
	db          *sql.DB
	dialect     migrate.Dialect
	placeholder sq.PlaceholderFormat
	modelRepo   repositories.ModelRepositoryInterface
	close       func()
}

func openSource(ctx context.Context, cmd *cobra.Command, logger *zap.Logger) (*source, error) {
	kind, _ := cmd.Flags().GetString("db")
	switch kind {
	case dbSQLite:
		path, _ := cmd.Flags().GetString("sqlite-path")
		db, err := sqlite.Open(ctx, path)
		if err != nil {
			return nil, err
		}
		return &source{
			db:          db,
			dialect:     migrate.SQLite,
			placeholder: sq.Question,
			modelRepo:   repositories.NewSQLModelRepository(db, logger),
			close:       func() { db.Close() },
		}, nil
	case dbPostgres:
		dsn, _ := cmd.Flags().GetString("dsn")
		pool, err := postgresql.ConnectDB(ctx, dsn)
		if err != nil {
			return nil, err
		}
		db := stdlib.OpenDBFromPool(pool)
		return &source{
			db:          db,
			dialect:     migrate.Postgres,
			placeholder: sq.Dollar,
			modelRepo:   repositories.NewPgModelRepository(pool, logger),
			close: func() {
				db.Close()
				pool.Close()
			},
		}, nil
	}
	return nil, fmt.Errorf("неизвестный источник --db=%q, ожидается sqlite или postgres", kind)
}
