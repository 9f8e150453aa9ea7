package validation

import (
	"database/sql/driver"
	"reflect"

	"github.com/aarondl/null/v8"
	"github.com/go-playground/validator/v10"
)

// registerNullTypes учит валидатор смотреть внутрь null-типов: невалидное
// значение превращается в nil, и срабатывает omitempty.
func registerNullTypes(v *validator.Validate) {
	v.RegisterCustomTypeFunc(nullValue,
		null.String{}, null.Int{}, null.Int64{}, null.Bool{}, null.Float64{}, null.Time{},
	)
}

func nullValue(field reflect.Value) interface{} {
	valuer, ok := field.Interface().(driver.Valuer)
	if !ok {
		return nil
	}
	val, err := valuer.Value()
	if err != nil {
		return nil
	}
	return val
}
