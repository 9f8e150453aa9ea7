package reporter

import (
	"context"
	"reflect"
)

// QuerySet - ленивая выборка экземпляров модели. Запрос выполняется только в Iterate.
type QuerySet interface {
	Iterate(ctx context.Context, fn func(instance any) error) error
}

// QuerySetFunc позволяет использовать функцию как QuerySet.
type QuerySetFunc func(ctx context.Context, fn func(instance any) error) error

func (f QuerySetFunc) Iterate(ctx context.Context, fn func(instance any) error) error {
	return f(ctx, fn)
}

// SliceQuerySet оборачивает уже загруженный срез ([]T, []*T или []any).
type SliceQuerySet struct {
	items reflect.Value
}

func NewSliceQuerySet(items any) *SliceQuerySet {
	v := reflect.ValueOf(items)
	if !v.IsValid() {
		return &SliceQuerySet{items: reflect.ValueOf([]any{})}
	}
	if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
		v = reflect.ValueOf([]any{items})
	}
	return &SliceQuerySet{items: v}
}

func (s *SliceQuerySet) Len() int { return s.items.Len() }

func (s *SliceQuerySet) Iterate(ctx context.Context, fn func(instance any) error) error {
	for i := 0; i < s.items.Len(); i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(s.items.Index(i).Interface()); err != nil {
			return err
		}
	}
	return nil
}
