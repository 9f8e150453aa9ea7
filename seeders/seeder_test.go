package seeders

import (
	"context"
	"testing"

	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"report-system/pkg/database/migrate"
	"report-system/pkg/database/sqlite"
)

func TestSeed(t *testing.T) {
	ctx := context.Background()
	db, err := sqlite.Open(ctx, ":memory:")
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, migrate.Up(ctx, db, migrate.SQLite, zap.NewNop()))

	res, err := Seed(ctx, db, sq.Question, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, Result{Departments: len(departmentsData), Contacts: len(contactsData)}, res)

	var department string
	require.NoError(t, db.QueryRowContext(ctx, `
		SELECT d.name FROM contacts c JOIN departments d ON d.id = c.department_id
		WHERE c.email = 'angelicaedlund@engadget.com'`).Scan(&department))
	assert.Equal(t, "Sales", department)

	// повторный запуск ничего не дублирует
	res, err = Seed(ctx, db, sq.Question, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, Result{}, res)

	var count int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM contacts`).Scan(&count))
	assert.Equal(t, len(contactsData), count)
}
