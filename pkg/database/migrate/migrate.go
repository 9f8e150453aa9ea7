package migrate

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"

	"report-system/migrations"
)

type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite3"
)

// Каталог миграций внутри migrations.FS для каждого диалекта.
var dirs = map[Dialect]string{
	Postgres: "postgres",
	SQLite:   "sqlite",
}

// goose хранит настройки глобально
var gooseMu sync.Mutex

// zapLogger подключает логгер приложения к goose.
type zapLogger struct{ l *zap.SugaredLogger }

func (z zapLogger) Printf(format string, v ...interface{}) { z.l.Infof(format, v...) }
func (z zapLogger) Fatalf(format string, v ...interface{}) { z.l.Fatalf(format, v...) }

func configure(dialect Dialect, logger *zap.Logger) (string, error) {
	dir, ok := dirs[dialect]
	if !ok {
		return "", fmt.Errorf("неизвестный диалект миграций: %q", dialect)
	}
	goose.SetBaseFS(migrations.FS)
	goose.SetLogger(zapLogger{l: logger.Sugar()})
	if err := goose.SetDialect(string(dialect)); err != nil {
		return "", fmt.Errorf("goose.SetDialect: %w", err)
	}
	return dir, nil
}

// Up накатывает все миграции диалекта.
func Up(ctx context.Context, db *sql.DB, dialect Dialect, logger *zap.Logger) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	dir, err := configure(dialect, logger)
	if err != nil {
		return err
	}
	if err := goose.UpContext(ctx, db, dir); err != nil {
		return fmt.Errorf("ошибка применения миграций: %w", err)
	}
	return nil
}

// Version возвращает номер последней применённой миграции.
func Version(ctx context.Context, db *sql.DB, dialect Dialect, logger *zap.Logger) (int64, error) {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	if _, err := configure(dialect, logger); err != nil {
		return 0, err
	}
	return goose.GetDBVersionContext(ctx, db)
}

// UpPool - Up для пула pgx: goose работает через database/sql.
func UpPool(ctx context.Context, pool *pgxpool.Pool, logger *zap.Logger) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()
	return Up(ctx, db, Postgres, logger)
}
