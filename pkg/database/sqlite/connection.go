package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // драйвер "sqlite"
)

// Open открывает файл SQLite для локальной (скриптовой) работы с отчётами.
// Путь ":memory:" - база в памяти, удобно для тестов.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	dsn := ":memory:"
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			return nil, fmt.Errorf("не удалось создать каталог базы: %w", err)
		}
		dsn = path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть SQLite %s: %w", path, err)
	}
	// SQLite пишет в один поток; для :memory: это ещё и единственная база
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("не удалось пинговать SQLite: %w", err)
	}
	return db, nil
}
