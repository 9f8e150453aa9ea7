// Package reporter строит табличные отчёты (CSV, XLSX, Markdown) по моделям
// с тегами `db`: какие поля выводить, какие у них заголовки и чем подменить
// значение колонки через методы Get<Field>Column.
package reporter

import (
	"context"
	"fmt"
	"reflect"
)

// Definition - статическое описание отчёта: модель, порядок полей и
// переопределённые заголовки.
type Definition struct {
	Model   any
	Fields  []string
	Headers map[string]string
}

// Definition позволяет использовать описание как готовый отчёт без методов-колонок.
func (d Definition) Definition() Definition { return d }

// Declarer реализуется любым типом отчёта. Помимо Definition тип может
// объявить методы Get<Field>Column, которые подменяют значение колонки.
type Declarer interface {
	Definition() Definition
}

type column struct {
	name     string
	header   string
	override *override
}

// Reporter строит заголовок и строки по объявленным полям модели.
type Reporter struct {
	meta     *ModelMeta
	declared []string
	columns  []column
}

// New собирает отчёт. Если visible не пуст, в отчёт попадают ровно эти
// поля в указанном порядке, и каждое из них должно быть объявлено.
func New(d Declarer, visible ...string) (*Reporter, error) {
	def := d.Definition()
	meta, err := Meta(def.Model)
	if err != nil {
		return nil, err
	}
	if len(def.Fields) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoFields, meta.Name)
	}

	declared := make(map[string]bool, len(def.Fields))
	for _, f := range def.Fields {
		if declared[f] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateField, f)
		}
		declared[f] = true
	}

	names := def.Fields
	if len(visible) > 0 {
		seen := make(map[string]bool, len(visible))
		for _, f := range visible {
			if !declared[f] {
				return nil, fmt.Errorf("%w: %q", ErrFieldNotDeclared, f)
			}
			if seen[f] {
				return nil, fmt.Errorf("%w: %q", ErrDuplicateField, f)
			}
			seen[f] = true
		}
		names = visible
	}

	receiver := addressable(reflect.ValueOf(d))
	r := &Reporter{
		meta:     meta,
		declared: append([]string(nil), def.Fields...),
		columns:  make([]column, 0, len(names)),
	}
	for _, name := range names {
		ov, err := findOverride(receiver, name)
		if err != nil {
			return nil, err
		}
		r.columns = append(r.columns, column{
			name:     name,
			header:   resolveHeader(name, def.Headers, meta),
			override: ov,
		})
	}
	return r, nil
}

// MustNew - как New, но паникует. Для объявлений на уровне пакета.
func MustNew(d Declarer, visible ...string) *Reporter {
	r, err := New(d, visible...)
	if err != nil {
		panic(err)
	}
	return r
}

func resolveHeader(name string, custom map[string]string, meta *ModelMeta) string {
	if h, ok := custom[name]; ok {
		return h
	}
	if label, ok := meta.Label(name); ok {
		return Capitalize(label)
	}
	return DefaultLabel(name)
}

func (r *Reporter) Model() *ModelMeta { return r.meta }

// Declared - все объявленные поля, независимо от видимых.
func (r *Reporter) Declared() []string {
	return append([]string(nil), r.declared...)
}

// Fields - видимые поля в порядке вывода.
func (r *Reporter) Fields() []string {
	out := make([]string, len(r.columns))
	for i, c := range r.columns {
		out[i] = c.name
	}
	return out
}

func (r *Reporter) Header() []string {
	out := make([]string, len(r.columns))
	for i, c := range r.columns {
		out[i] = c.header
	}
	return out
}

// Row возвращает значения видимых полей для одного экземпляра.
// Порядок разрешения поля всегда один: метод колонки, затем атрибут, затем ошибка.
func (r *Reporter) Row(instance any) ([]any, error) {
	row := make([]any, len(r.columns))
	for i, c := range r.columns {
		if c.override != nil {
			v, err := c.override.call(instance)
			if err != nil {
				return nil, fmt.Errorf("колонка %q: %w", c.name, err)
			}
			row[i] = v
			continue
		}
		v, ok, err := lookupAttribute(instance, c.name)
		if err != nil {
			return nil, fmt.Errorf("колонка %q: %w", c.name, err)
		}
		if !ok {
			return nil, &UndefinedFieldError{Field: c.name, Model: r.meta.Name}
		}
		row[i] = v
	}
	return row, nil
}

// StringRow - то же, что Row, но значения уже отформатированы для вывода.
func (r *Reporter) StringRow(instance any) ([]string, error) {
	row, err := r.Row(instance)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(row))
	for i, v := range row {
		out[i] = FormatValue(v)
	}
	return out, nil
}

// Each проходит по выборке и отдаёт строки в fn.
func (r *Reporter) Each(ctx context.Context, qs QuerySet, fn func(row []string) error) error {
	return qs.Iterate(ctx, func(instance any) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		row, err := r.StringRow(instance)
		if err != nil {
			return err
		}
		return fn(row)
	})
}
