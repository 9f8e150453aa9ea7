package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// querier - то, что нужно выборкам от *pgxpool.Pool, *pgx.Conn или pgx.Tx.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}
