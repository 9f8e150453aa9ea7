package repositories

import (
	"context"
	"database/sql"
	"log"
	"os"
	"testing"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/aarondl/null/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"report-system/pkg/database/migrate"
	"report-system/pkg/database/sqlite"
	"report-system/pkg/reporter"
	"report-system/pkg/types"
)

// contactRow - контакт без временных меток, их разбор зависит от драйвера.
type contactRow struct {
	ID           int64       `db:"id"`
	FirstName    string      `db:"first_name"`
	LastName     string      `db:"last_name"`
	Email        string      `db:"email"`
	Phone        null.String `db:"phone" label:"phone number"`
	DepartmentID null.Int64  `db:"department_id"`
	DeletedAt    *time.Time  `db:"deleted_at"`
}

func (contactRow) TableName() string { return "contacts" }

var testDB *sql.DB

// TestMain поднимает SQLite в памяти и накатывает миграции.
func TestMain(m *testing.M) {
	ctx := context.Background()
	var err error
	testDB, err = sqlite.Open(ctx, ":memory:")
	if err != nil {
		log.Fatalf("Не удалось открыть тестовую БД: %v", err)
	}
	if err := migrate.Up(ctx, testDB, migrate.SQLite, zap.NewNop()); err != nil {
		log.Fatalf("Не удалось применить миграции: %v", err)
	}
	seedContacts(testDB)

	code := m.Run()
	testDB.Close()
	os.Exit(code)
}

func seedContacts(db *sql.DB) {
	stmts := []string{
		`INSERT INTO departments (name) VALUES ('Sales'), ('Support')`,
		`INSERT INTO contacts (first_name, last_name, email, phone, department_id)
		 VALUES ('Angelica', 'Edlund', 'angelicaedlund@engadget.com', '+1 555 0100', 1)`,
		`INSERT INTO contacts (first_name, last_name, email, department_id)
		 VALUES ('Boris', 'Axelsson', 'boris@example.com', 2)`,
		`INSERT INTO contacts (first_name, last_name, email, department_id, deleted_at)
		 VALUES ('Carl', 'Deleted', 'carl@example.com', 1, CURRENT_TIMESTAMP)`,
		`INSERT INTO contacts (first_name, last_name, email)
		 VALUES ('Dana', 'Zimmer', 'dana@example.com')`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			log.Fatalf("Не удалось заполнить тестовые данные: %v", err)
		}
	}
}

func contactMeta(t *testing.T) *reporter.ModelMeta {
	t.Helper()
	meta, err := reporter.Meta(contactRow{})
	require.NoError(t, err)
	return meta
}

func collect(t *testing.T, qs reporter.QuerySet) []*contactRow {
	t.Helper()
	var out []*contactRow
	err := qs.Iterate(context.Background(), func(instance any) error {
		out = append(out, instance.(*contactRow))
		return nil
	})
	require.NoError(t, err)
	return out
}

func lastNames(rows []*contactRow) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.LastName)
	}
	return out
}

func TestBuildSelect(t *testing.T) {
	meta := contactMeta(t)
	filter := types.Filter{
		Filter: map[string]interface{}{"email": "x@y.z", "password": "secret"},
		Search: "ed",
		Sort:   []string{"-last_name", "unknown"},
		Limit:  10,
		Offset: 5,
	}

	sqlQuery, args, err := buildSelect(meta, filter, sq.Question).ToSql()
	require.NoError(t, err)

	assert.Equal(t,
		"SELECT id, first_name, last_name, email, phone, department_id, deleted_at FROM contacts"+
			" WHERE deleted_at IS NULL AND email = ?"+
			" AND (LOWER(first_name) LIKE LOWER(?) OR LOWER(last_name) LIKE LOWER(?)"+
			" OR LOWER(email) LIKE LOWER(?) OR LOWER(phone) LIKE LOWER(?))"+
			" ORDER BY last_name DESC, id ASC LIMIT 10 OFFSET 5",
		sqlQuery)
	assert.Equal(t, []interface{}{"x@y.z", "%ed%", "%ed%", "%ed%", "%ed%"}, args)
}

func TestBuildSelect_DollarPlaceholders(t *testing.T) {
	meta := contactMeta(t)
	sqlQuery, _, err := buildSelect(meta, types.Filter{Search: "a"}, sq.Dollar).ToSql()
	require.NoError(t, err)
	assert.Contains(t, sqlQuery, "LOWER(first_name) LIKE LOWER($1)")
	assert.Contains(t, sqlQuery, "LOWER(phone) LIKE LOWER($4)")
}

func TestSQLModelRepository_Iterate(t *testing.T) {
	repo := NewSQLModelRepository(testDB, zap.NewNop())
	meta := contactMeta(t)

	rows := collect(t, repo.QuerySet(meta, types.Filter{}))
	assert.Equal(t, []string{"Edlund", "Axelsson", "Zimmer"}, lastNames(rows))

	angelica := rows[0]
	assert.Equal(t, "Angelica", angelica.FirstName)
	assert.Equal(t, null.StringFrom("+1 555 0100"), angelica.Phone)
	assert.Equal(t, null.Int64From(1), angelica.DepartmentID)
	assert.False(t, rows[1].Phone.Valid)
	assert.False(t, rows[2].DepartmentID.Valid)
}

func TestSQLModelRepository_Filtering(t *testing.T) {
	repo := NewSQLModelRepository(testDB, zap.NewNop())
	meta := contactMeta(t)

	tests := []struct {
		name   string
		filter types.Filter
		want   []string
	}{
		{"поиск без учёта регистра", types.Filter{Search: "EDL"}, []string{"Edlund"}},
		{"фильтр по отделу", types.Filter{Filter: map[string]interface{}{"department_id": "1"}}, []string{"Edlund"}},
		{"фильтр списком", types.Filter{Filter: map[string]interface{}{"department_id": []string{"1", "2"}}}, []string{"Edlund", "Axelsson"}},
		{"неизвестный фильтр игнорируется", types.Filter{Filter: map[string]interface{}{"salary": "1"}}, []string{"Edlund", "Axelsson", "Zimmer"}},
		{"сортировка по убыванию", types.Filter{Sort: []string{"-last_name"}}, []string{"Zimmer", "Edlund", "Axelsson"}},
		{"лимит и смещение", types.Filter{Limit: 1, Offset: 1}, []string{"Axelsson"}},
		{"смещение без лимита", types.Filter{Offset: 2}, []string{"Zimmer"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, lastNames(collect(t, repo.QuerySet(meta, tt.filter))))
		})
	}
}

func TestSQLModelRepository_IsLazy(t *testing.T) {
	ctx := context.Background()
	db, err := sqlite.Open(ctx, ":memory:")
	require.NoError(t, err)

	// таблиц нет, но построение выборки ещё не обращается к базе
	qs := NewSQLModelRepository(db, zap.NewNop()).QuerySet(contactMeta(t), types.Filter{})
	require.NoError(t, migrate.Up(ctx, db, migrate.SQLite, zap.NewNop()))
	_, err = db.Exec(`INSERT INTO contacts (first_name, last_name, email) VALUES ('Eva', 'Late', 'eva@example.com')`)
	require.NoError(t, err)

	assert.Equal(t, []string{"Late"}, lastNames(collect(t, qs)))

	require.NoError(t, db.Close())
	err = qs.Iterate(ctx, func(any) error { return nil })
	assert.Error(t, err)
}

func TestSQLModelRepository_WithReporter(t *testing.T) {
	repo := NewSQLModelRepository(testDB, zap.NewNop())
	r, err := reporter.New(reporter.Definition{
		Model:   contactRow{},
		Fields:  []string{"first_name", "last_name", "phone"},
		Headers: map[string]string{"first_name": "Different header"},
	})
	require.NoError(t, err)

	var rows [][]string
	err = r.Each(context.Background(), repo.QuerySet(r.Model(), types.Filter{Search: "edlund"}), func(row []string) error {
		rows = append(rows, row)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Different header", "Last name", "Phone number"}, r.Header())
	assert.Equal(t, [][]string{{"Angelica", "Edlund", "+1 555 0100"}}, rows)
}
