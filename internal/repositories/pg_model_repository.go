package repositories

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"go.uber.org/zap"

	"report-system/pkg/reporter"
	"report-system/pkg/types"
)

// PgModelRepository - выборки из PostgreSQL через пул pgx.
type PgModelRepository struct {
	db     querier
	logger *zap.Logger
}

func NewPgModelRepository(db querier, logger *zap.Logger) ModelRepositoryInterface {
	return &PgModelRepository{db: db, logger: logger}
}

func (r *PgModelRepository) QuerySet(meta *reporter.ModelMeta, filter types.Filter) reporter.QuerySet {
	return reporter.QuerySetFunc(func(ctx context.Context, fn func(instance any) error) error {
		sqlQuery, args, err := buildSelect(meta, filter, sq.Dollar).ToSql()
		if err != nil {
			return fmt.Errorf("ToSql для %s: %w", meta.Table, err)
		}
		r.logger.Debug("Выборка для отчёта", zap.String("sql", sqlQuery), zap.Any("args", args))

		rows, err := r.db.Query(ctx, sqlQuery, args...)
		if err != nil {
			return fmt.Errorf("db.Query для %s: %w", meta.Table, err)
		}
		defer rows.Close()

		fields := rows.FieldDescriptions()
		columns := make([]string, len(fields))
		for i, fd := range fields {
			columns[i] = fd.Name
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
