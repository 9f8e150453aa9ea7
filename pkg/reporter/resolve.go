package reporter

import (
	"fmt"
	"reflect"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// override - привязанный метод отчёта Get<Field>Column.
type override struct {
	name    string
	method  reflect.Value
	argType reflect.Type
	withErr bool
}

// MethodName - имя метода колонки для поля: "email" -> "GetEmailColumn".
func MethodName(field string) string {
	return "Get" + CamelCase(field) + "Column"
}

// addressable копирует значение в новый указатель, чтобы были видны и
// методы с получателем-указателем.
func addressable(v reflect.Value) reflect.Value {
	if !v.IsValid() || v.Kind() == reflect.Pointer {
		return v
	}
	p := reflect.New(v.Type())
	p.Elem().Set(v)
	return p
}

func findOverride(receiver reflect.Value, field string) (*override, error) {
	if !receiver.IsValid() {
		return nil, nil
	}
	name := MethodName(field)
	m := receiver.MethodByName(name)
	if !m.IsValid() {
		return nil, nil
	}

	mt := m.Type()
	validOut := mt.NumOut() == 1 || (mt.NumOut() == 2 && mt.Out(1) == errorType)
	if mt.NumIn() != 1 || mt.IsVariadic() || !validOut {
		return nil, fmt.Errorf("%w: %s должен иметь вид func(instance) V или func(instance) (V, error)", ErrInvalidOverride, name)
	}
	return &override{
		name:    name,
		method:  m,
		argType: mt.In(0),
		withErr: mt.NumOut() == 2,
	}, nil
}

func (o *override) call(instance any) (any, error) {
	arg, err := adaptArg(reflect.ValueOf(instance), o.argType)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", o.name, err)
	}
	out := o.method.Call([]reflect.Value{arg})
	if o.withErr && !out[1].IsNil() {
		return nil, out[1].Interface().(error)
	}
	return out[0].Interface(), nil
}

// adaptArg приводит экземпляр к типу параметра метода: T, *T или интерфейс.
func adaptArg(v reflect.Value, want reflect.Type) (reflect.Value, error) {
	if !v.IsValid() {
		switch want.Kind() {
		case reflect.Pointer, reflect.Interface, reflect.Map:
			return reflect.Zero(want), nil
		}
		return reflect.Value{}, fmt.Errorf("нельзя передать nil как %s", want)
	}
	if v.Type().AssignableTo(want) {
		return v, nil
	}
	if v.Kind() == reflect.Pointer && !v.IsNil() && v.Elem().Type().AssignableTo(want) {
		return v.Elem(), nil
	}
	if want.Kind() == reflect.Pointer && v.Type().AssignableTo(want.Elem()) {
		return addressable(v), nil
	}
	return reflect.Value{}, fmt.Errorf("ожидался %s, получен %s", want, v.Type())
}

// lookupAttribute ищет значение поля у экземпляра: ключ map, поле с тегом db,
// экспортируемое поле или метод без аргументов с Go-именем поля.
func lookupAttribute(instance any, name string) (any, bool, error) {
	if m, ok := instance.(map[string]any); ok {
		v, found := m[name]
		return v, found, nil
	}

	v := reflect.ValueOf(instance)
	if !v.IsValid() {
		return nil, false, nil
	}

	if v.Kind() == reflect.Map && v.Type().Key().Kind() == reflect.String {
		mv := v.MapIndex(reflect.ValueOf(name).Convert(v.Type().Key()))
		if !mv.IsValid() {
			return nil, false, nil
		}
		return mv.Interface(), true, nil
	}

	receiver := addressable(v)
	elem := receiver
	for elem.Kind() == reflect.Pointer {
		if elem.IsNil() {
			return nil, false, nil
		}
		elem = elem.Elem()
	}

	goName := CamelCase(name)
	if elem.Kind() == reflect.Struct {
		if meta, err := Meta(elem.Type()); err == nil {
			if f, ok := meta.Field(name); ok {
				return elem.FieldByIndex(f.Index).Interface(), true, nil
			}
		}
		if sf, ok := elem.Type().FieldByName(goName); ok && sf.IsExported() {
			fv, err := elem.FieldByIndexErr(sf.Index)
			if err != nil {
				return nil, false, nil
			}
			return fv.Interface(), true, nil
		}
	}

	method := receiver.MethodByName(goName)
	if !method.IsValid() {
		return nil, false, nil
	}
	mt := method.Type()
	if mt.NumIn() != 0 {
		return nil, false, nil
	}
	switch {
	case mt.NumOut() == 1:
		return method.Call(nil)[0].Interface(), true, nil
	case mt.NumOut() == 2 && mt.Out(1) == errorType:
		out := method.Call(nil)
		if !out[1].IsNil() {
			return nil, true, out[1].Interface().(error)
		}
		return out[0].Interface(), true, nil
	}
	return nil, false, nil
}
