package repositories

import (
	"fmt"
	"math"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"report-system/pkg/reporter"
	"report-system/pkg/types"
)

const softDeleteColumn = "deleted_at"

// ModelRepositoryInterface отдаёт ленивую выборку экземпляров модели.
// Запрос уходит в базу только при Iterate.
type ModelRepositoryInterface interface {
	QuerySet(meta *reporter.ModelMeta, filter types.Filter) reporter.QuerySet
}

func contains(list []string, item string) bool {
	for _, val := range list {
		if strings.EqualFold(val, item) {
			return true
		}
	}
	return false
}

// buildSelect собирает SELECT по колонкам модели. Фильтровать и сортировать
// можно только по колонкам модели, остальные ключи молча отбрасываются.
func buildSelect(meta *reporter.ModelMeta, filter types.Filter, placeholder sq.PlaceholderFormat) sq.SelectBuilder {
	columns := meta.Columns()
	builder := sq.Select(columns...).From(meta.Table).PlaceholderFormat(placeholder)

	if contains(columns, softDeleteColumn) {
		builder = builder.Where(sq.Eq{softDeleteColumn: nil})
	}

	for key, val := range filter.Filter {
		if contains(columns, key) {
			builder = builder.Where(sq.Eq{key: val})
		}
	}

	searchable := meta.StringColumns()
	if filter.Search != "" && len(searchable) > 0 {
		pattern := "%" + filter.Search + "%"
		var conditions sq.Or
		for _, col := range searchable {
			conditions = append(conditions, sq.Expr(fmt.Sprintf("LOWER(%s) LIKE LOWER(?)", col), pattern))
		}
		builder = builder.Where(conditions)
	}

	sortedByPK := false
	for _, item := range filter.Sort {
		col, dir := item, "ASC"
		if strings.HasPrefix(item, "-") {
			col, dir = item[1:], "DESC"
		}
		if !contains(columns, col) {
			continue
		}
		if col == meta.PrimaryKey {
			sortedByPK = true
		}
		builder = builder.OrderBy(col + " " + dir)
	}
	if !sortedByPK {
		builder = builder.OrderBy(meta.PrimaryKey + " ASC")
	}

	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		if filter.Limit <= 0 {
			// SQLite не принимает OFFSET без LIMIT
			builder = builder.Limit(math.MaxInt64)
		}
		builder = builder.Offset(uint64(filter.Offset))
	}
	return builder
}
