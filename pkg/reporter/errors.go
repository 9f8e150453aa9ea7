package reporter

import (
	"errors"
	"fmt"
)

var (
	ErrUndefinedField   = errors.New("поле не определено")
	ErrFieldNotDeclared = errors.New("поле не объявлено в отчёте")
	ErrDuplicateField   = errors.New("поле указано повторно")
	ErrInvalidOverride  = errors.New("неверная сигнатура метода колонки")
	ErrNoFields         = errors.New("в отчёте нет полей")
	ErrUnknownReport    = errors.New("отчёт не найден")
	ErrUnknownFormat    = errors.New("неизвестный формат выгрузки")
	ErrInvalidModel     = errors.New("модель должна быть структурой")
)

// UndefinedFieldError возвращается при построении строки, если поле не
// разрешилось ни через метод Get<Field>Column, ни через атрибут экземпляра.
type UndefinedFieldError struct {
	Field string
	Model string
}

func (e *UndefinedFieldError) Error() string {
	if e.Model == "" {
		return fmt.Sprintf("%s: %q", ErrUndefinedField, e.Field)
	}
	return fmt.Sprintf("%s: %q (модель %s)", ErrUndefinedField, e.Field, e.Model)
}

func (e *UndefinedFieldError) Is(target error) bool { return target == ErrUndefinedField }
