package reporter

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// Tabler позволяет модели задать имя таблицы явно.
type Tabler interface {
	TableName() string
}

// FieldMeta описывает одно поле модели, объявленное тегом `db`.
type FieldMeta struct {
	Name   string
	GoName string
	Label  string
	Index  []int
	Type   reflect.Type
}

// ModelMeta - метаданные модели, собранные по тегам структуры.
type ModelMeta struct {
	Name       string
	Table      string
	PrimaryKey string
	Type       reflect.Type

	fields []FieldMeta
	byName map[string]int
}

var metaCache sync.Map // reflect.Type -> *ModelMeta

// Meta возвращает метаданные модели. Принимает значение, указатель или reflect.Type.
func Meta(model any) (*ModelMeta, error) {
	var t reflect.Type
	switch v := model.(type) {
	case nil:
		return nil, ErrInvalidModel
	case reflect.Type:
		t = v
	default:
		t = reflect.TypeOf(model)
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %s", ErrInvalidModel, t)
	}

	if cached, ok := metaCache.Load(t); ok {
		return cached.(*ModelMeta), nil
	}

	m := &ModelMeta{
		Name:   t.Name(),
		Type:   t,
		byName: make(map[string]int),
	}
	m.collect(t, nil)
	if len(m.fields) == 0 {
		return nil, fmt.Errorf("%w: у %s нет полей с тегом db", ErrInvalidModel, t)
	}

	m.Table = snakeCase(t.Name()) + "s"
	if tabler, ok := reflect.New(t).Interface().(Tabler); ok {
		m.Table = tabler.TableName()
	}

	m.PrimaryKey = m.fields[0].Name
	if _, ok := m.byName["id"]; ok {
		m.PrimaryKey = "id"
	}

	actual, _ := metaCache.LoadOrStore(t, m)
	return actual.(*ModelMeta), nil
}

func (m *ModelMeta) collect(t reflect.Type, parent []int) {
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		index := append(append([]int{}, parent...), i)

		// Встроенные структуры (types.BaseEntity и т.п.) раскрываем
		if sf.Anonymous && sf.Type.Kind() == reflect.Struct {
			if _, tagged := sf.Tag.Lookup("db"); !tagged {
				m.collect(sf.Type, index)
				continue
			}
		}
		if !sf.IsExported() {
			continue
		}

		column, _, _ := strings.Cut(sf.Tag.Get("db"), ",")
		if column == "" || column == "-" {
			continue
		}
		if _, dup := m.byName[column]; dup {
			continue
		}

		label := sf.Tag.Get("label")
		if label == "" {
			label = strings.ReplaceAll(column, "_", " ")
		}

		m.byName[column] = len(m.fields)
		m.fields = append(m.fields, FieldMeta{
			Name:   column,
			GoName: sf.Name,
			Label:  label,
			Index:  index,
			Type:   sf.Type,
		})
	}
}

func (m *ModelMeta) Fields() []FieldMeta {
	out := make([]FieldMeta, len(m.fields))
	copy(out, m.fields)
	return out
}

func (m *ModelMeta) Columns() []string {
	cols := make([]string, len(m.fields))
	for i, f := range m.fields {
		cols[i] = f.Name
	}
	return cols
}

func (m *ModelMeta) Field(name string) (FieldMeta, bool) {
	i, ok := m.byName[name]
	if !ok {
		return FieldMeta{}, false
	}
	return m.fields[i], true
}

// Label - человекочитаемое название поля из метаданных модели.
func (m *ModelMeta) Label(name string) (string, bool) {
	f, ok := m.Field(name)
	if !ok {
		return "", false
	}
	return f.Label, true
}

// StringColumns - колонки строкового типа, по ним работает поиск.
func (m *ModelMeta) StringColumns() []string {
	var cols []string
	for _, f := range m.fields {
		t := f.Type
		if t.Kind() == reflect.Pointer {
			t = t.Elem()
		}
		if t.Kind() == reflect.String || t.String() == "null.String" || t.String() == "sql.NullString" {
			cols = append(cols, f.Name)
		}
	}
	return cols
}

// New создаёт пустой экземпляр модели и возвращает указатель на него.
func (m *ModelMeta) New() reflect.Value {
	return reflect.New(m.Type)
}

// ScanDest возвращает адреса полей экземпляра в порядке колонок результата запроса.
func (m *ModelMeta) ScanDest(ptr reflect.Value, columns []string) ([]any, error) {
	if ptr.Kind() != reflect.Pointer || ptr.Elem().Type() != m.Type {
		return nil, fmt.Errorf("ScanDest: ожидался *%s, получен %s", m.Type, ptr.Type())
	}
	elem := ptr.Elem()
	dest := make([]any, len(columns))
	for i, col := range columns {
		f, ok := m.Field(col)
		if !ok {
			return nil, fmt.Errorf("ScanDest: колонка %q отсутствует в модели %s", col, m.Name)
		}
		dest[i] = elem.FieldByIndex(f.Index).Addr().Interface()
	}
	return dest, nil
}
