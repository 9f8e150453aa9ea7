package seeders

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"go.uber.org/zap"
)

// Result - сколько строк добавлено. Уже существующие записи пропускаются.
type Result struct {
	Departments int
	Contacts    int
}

// Seed наполняет отделы и контакты демонстрационными данными в одной транзакции.
// placeholder: sq.Dollar для PostgreSQL, sq.Question для SQLite.
func Seed(ctx context.Context, db *sql.DB, placeholder sq.PlaceholderFormat, logger *zap.Logger) (res Result, err error) {
	logger.Info("Запуск наполнения отделов и контактов")

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return res, fmt.Errorf("не удалось начать транзакцию: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
			return
		}
		if err = tx.Commit(); err != nil {
			err = fmt.Errorf("ошибка при коммите транзакции: %w", err)
		}
	}()

	builder := sq.StatementBuilder.PlaceholderFormat(placeholder).RunWith(tx)

	departmentIDs := make(map[string]int64, len(departmentsData))
	for _, d := range departmentsData {
		id, created, err := ensureDepartment(ctx, builder, d.Name)
		if err != nil {
			return res, fmt.Errorf("отдел %q: %w", d.Name, err)
		}
		departmentIDs[d.Name] = id
		if created {
			res.Departments++
		}
	}

	for _, c := range contactsData {
		var exists int
		err := builder.Select("COUNT(*)").From("contacts").
			Where(sq.Eq{"email": c.Email}).
			QueryRowContext(ctx).Scan(&exists)
		if err != nil {
			return res, fmt.Errorf("контакт %q: %w", c.Email, err)
		}
		if exists > 0 {
			continue
		}

		var phone, department any
		if c.Phone != "" {
			phone = c.Phone
		}
		if id, ok := departmentIDs[c.Department]; ok {
			department = id
		}
		_, err = builder.Insert("contacts").
			Columns("first_name", "last_name", "email", "phone", "department_id").
			Values(c.FirstName, c.LastName, c.Email, phone, department).
			ExecContext(ctx)
		if err != nil {
			return res, fmt.Errorf("контакт %q: %w", c.Email, err)
		}
		res.Contacts++
	}

	logger.Info("Наполнение завершено",
		zap.Int("departments", res.Departments),
		zap.Int("contacts", res.Contacts),
	)
	return res, nil
}

func ensureDepartment(ctx context.Context, builder sq.StatementBuilderType, name string) (int64, bool, error) {
	var id int64
	err := builder.Select("id").From("departments").
		Where(sq.Eq{"name": name}).
		QueryRowContext(ctx).Scan(&id)
	if err == nil {
		return id, false, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, false, err
	}

	if _, err := builder.Insert("departments").Columns("name").Values(name).ExecContext(ctx); err != nil {
		return 0, false, err
	}
	if err := builder.Select("id").From("departments").
		Where(sq.Eq{"name": name}).
		QueryRowContext(ctx).Scan(&id); err != nil {
		return 0, false, err
	}
	return id, true, nil
}
