package validation

import (
	"regexp"

	"github.com/go-playground/validator/v10"

	"report-system/pkg/reporter"
)

var (
	fieldNameRe = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)
	sortFieldRe = regexp.MustCompile(`^-?[a-z][a-z0-9_]*$`)
)

// registerRules регистрирует теги, которые мы используем в struct tags
func registerRules(v *validator.Validate) error {
	if err := v.RegisterValidation("field_name", isFieldName); err != nil {
		return err
	}
	if err := v.RegisterValidation("sort_field", isSortField); err != nil {
		return err
	}
	if err := v.RegisterValidation("report_format", isReportFormat); err != nil {
		return err
	}
	return nil
}

// isFieldName - имя поля отчёта: first_name, full_name
func isFieldName(fl validator.FieldLevel) bool {
	return fieldNameRe.MatchString(fl.Field().String())
}

// isSortField - колонка сортировки, "-" в начале означает убывание
func isSortField(fl validator.FieldLevel) bool {
	return sortFieldRe.MatchString(fl.Field().String())
}

func isReportFormat(fl validator.FieldLevel) bool {
	_, err := reporter.ParseFormat(fl.Field().String())
	return err == nil
}
