package repositories

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"go.uber.org/zap"

	"report-system/pkg/reporter"
	"report-system/pkg/types"
)

// SQLModelRepository - выборки через database/sql (SQLite в reportctl).
type SQLModelRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewSQLModelRepository(db *sql.DB, logger *zap.Logger) ModelRepositoryInterface {
	return &SQLModelRepository{db: db, logger: logger}
}

func (r *SQLModelRepository) QuerySet(meta *reporter.ModelMeta, filter types.Filter) reporter.QuerySet {
	return reporter.QuerySetFunc(func(ctx context.Context, fn func(instance any) error) error {
		sqlQuery, args, err := buildSelect(meta, filter, sq.Question).ToSql()
		if err != nil {
			return fmt.Errorf("ToSql для %s: %w", meta.Table, err)
		}
		r.logger.Debug("Выборка для отчёта", zap.String("sql", sqlQuery), zap.Any("args", args))

		rows, err := r.db.QueryContext(ctx, sqlQuery, args...)
		if err != nil {
			return fmt.Errorf("db.Query для %s: %w", meta.Table, err)
		}
		defer rows.Close()

		columns, err := rows.Columns()
		if err != nil {
			return err
		}

		for rows.Next() {
			ptr := meta.New()
			dest, err := meta.ScanDest(ptr, columns)
			if err != nil {
				return err
			}
			if err := rows.Scan(dest...); err != nil {
				return fmt.Errorf("rows.Scan для %s: %w", meta.Table, err)
			}
			if err := fn(ptr.Interface()); err != nil {
				return err
			}
		}
		return rows.Err()
	})
}
