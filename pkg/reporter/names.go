package reporter

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Аббревиатуры, которые в Go-именах пишутся целиком заглавными: user_id -> UserID.
var commonInitialisms = map[string]bool{
	"api":  true,
	"csv":  true,
	"html": true,
	"http": true,
	"id":   true,
	"ip":   true,
	"json": true,
	"sla":  true,
	"sql":  true,
	"uid":  true,
	"url":  true,
	"uuid": true,
}

// CamelCase переводит имя поля в экспортируемое Go-имя.
// "first_name" -> "FirstName", "user_id" -> "UserID".
func CamelCase(name string) string {
	var sb strings.Builder
	for _, part := range strings.FieldsFunc(name, func(r rune) bool { return r == '_' || r == '-' || r == ' ' }) {
		lower := strings.ToLower(part)
		if commonInitialisms[lower] {
			sb.WriteString(strings.ToUpper(lower))
			continue
		}
		r, size := utf8.DecodeRuneInString(part)
		sb.WriteRune(unicode.ToUpper(r))
		sb.WriteString(part[size:])
	}
	return sb.String()
}

// snakeCase: "ContactGroup" -> "contact_group", "HTTPLog" -> "http_log".
func snakeCase(name string) string {
	runes := []rune(name)
	var sb strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 {
				prev := runes[i-1]
				nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
				if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
					sb.WriteRune('_')
				}
			}
			sb.WriteRune(unicode.ToLower(r))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// Capitalize поднимает регистр только первой буквы: "last name" -> "Last name".
func Capitalize(s string) string {
	if s == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

// DefaultLabel - заголовок по умолчанию для поля без метаданных.
func DefaultLabel(name string) string {
	words := strings.FieldsFunc(name, func(r rune) bool { return r == '_' || r == '-' })
	return Capitalize(strings.ToLower(strings.Join(words, " ")))
}
