package migrate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"report-system/pkg/database/sqlite"
)

func TestUp_SQLite(t *testing.T) {
	ctx := context.Background()
	db, err := sqlite.Open(ctx, ":memory:")
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, Up(ctx, db, SQLite, zap.NewNop()))
	// повторный запуск ничего не ломает
	require.NoError(t, Up(ctx, db, SQLite, zap.NewNop()))

	version, err := Version(ctx, db, SQLite, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, int64(2), version)

	_, err = db.ExecContext(ctx, `INSERT INTO departments (name) VALUES ('Бухгалтерия')`)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx,
		`INSERT INTO contacts (first_name, last_name, email, department_id) VALUES (?, ?, ?, ?)`,
		"Angelica", "Edlund", "angelicaedlund@engadget.com", 1)
	require.NoError(t, err)

	var count int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM contacts`).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestUp_UnknownDialect(t *testing.T) {
	ctx := context.Background()
	db, err := sqlite.Open(ctx, ":memory:")
	require.NoError(t, err)
	defer db.Close()

	err = Up(ctx, db, Dialect("oracle"), zap.NewNop())
	assert.Error(t, err)
}
