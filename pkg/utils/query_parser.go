package utils

import (
	"net/url"
	"strconv"
	"strings"

	"report-system/pkg/types"
)

// ParseFilter разбирает параметры выборки: filter[col]=v, search, sort, limit, offset.
// Лимит по умолчанию не ставится: выгрузка отдаёт всё, что подходит под фильтр.
func ParseFilter(query url.Values) types.Filter {
	f := types.Filter{Filter: make(map[string]interface{})}

	for key, values := range query {
		if strings.HasPrefix(key, "filter[") && strings.HasSuffix(key, "]") && len(values) > 0 {
			filterKey := key[7 : len(key)-1]
			if filterKey == "" {
				continue
			}
			items := SplitList(values[0])
			switch len(items) {
			case 0:
			case 1:
				f.Filter[filterKey] = items[0]
			default:
				f.Filter[filterKey] = items
			}
		}
	}

	if limitStr := query.Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			f.Limit = l
		}
	}
	if offsetStr := query.Get("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o > 0 {
			f.Offset = o
		}
	}

	f.Search = strings.TrimSpace(query.Get("search"))
	f.Sort = SplitList(query.Get("sort"))
	return f
}

// SplitList режет "a, b,,c" в [a b c].
func SplitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
