package reporter

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/aarondl/null/v8"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type person struct {
	ID        int64       `db:"id"`
	FirstName string      `db:"first_name"`
	LastName  string      `db:"last_name"`
	Email     string      `db:"email"`
	Phone     null.String `db:"phone" label:"phone number"`
	Nickname  string
}

func (person) TableName() string { return "people" }

func (p person) FullName() string { return p.FirstName + " " + p.LastName }

type personReporter struct{}

func (personReporter) Definition() Definition {
	return Definition{
		Model:   person{},
		Fields:  []string{"first_name", "last_name", "email"},
		Headers: map[string]string{"first_name": "Different header"},
	}
}

type emailOverrideReporter struct{ personReporter }

func (emailOverrideReporter) GetEmailColumn(p *person) string {
	return strings.ToUpper(p.Email)
}

// Переопределение возвращает nil - атрибут всё равно не должен подставляться.
type nilOverrideReporter struct{ personReporter }

func (nilOverrideReporter) GetEmailColumn(p person) any { return nil }

type failingOverrideReporter struct{ personReporter }

func (failingOverrideReporter) GetEmailColumn(p *person) (string, error) {
	return "", errors.New("почта недоступна")
}

type badSignatureReporter struct{ personReporter }

func (badSignatureReporter) GetEmailColumn(a, b *person) string { return "" }

type wideReporter struct{}

func (wideReporter) Definition() Definition {
	return Definition{
		Model:  person{},
		Fields: []string{"id", "first_name", "phone", "full_name", "nickname", "initials"},
	}
}

func (wideReporter) GetInitialsColumn(p *person) string {
	return p.FirstName[:1] + p.LastName[:1]
}

type undefinedReporter struct{}

func (undefinedReporter) Definition() Definition {
	return Definition{Model: person{}, Fields: []string{"first_name", "favourite_color"}}
}

func angelica() *person {
	return &person{
		ID:        1,
		FirstName: "Angelica",
		LastName:  "Edlund",
		Email:     "angelicaedlund@engadget.com",
		Phone:     null.StringFrom("+992900000001"),
		Nickname:  "angie",
	}
}

func TestReporter_EndToEnd(t *testing.T) {
	r, err := New(personReporter{})
	require.NoError(t, err)

	assert.Equal(t, []string{"Different header", "Last name", "Email"}, r.Header())

	row, err := r.Row(angelica())
	require.NoError(t, err)
	if diff := cmp.Diff([]any{"Angelica", "Edlund", "angelicaedlund@engadget.com"}, row); diff != "" {
		t.Errorf("строка отличается (-want +got):\n%s", diff)
	}

	t.Run("with email override", func(t *testing.T) {
		r, err := New(emailOverrideReporter{})
		require.NoError(t, err)
		row, err := r.StringRow(angelica())
		require.NoError(t, err)
		assert.Equal(t, []string{"Angelica", "Edlund", "ANGELICAEDLUND@ENGADGET.COM"}, row)
	})
}

func TestReporter_HeaderResolution(t *testing.T) {
	r, err := New(wideReporter{})
	require.NoError(t, err)

	// id и first_name - метаданные модели, phone - тег label,
	// full_name/nickname/initials - не поля модели, заголовок по имени.
	assert.Equal(t, []string{"Id", "First name", "Phone number", "Full name", "Nickname", "Initials"}, r.Header())

	custom := Definition{
		Model:   person{},
		Fields:  []string{"phone", "email"},
		Headers: map[string]string{"phone": "Телефон"},
	}
	r, err = New(custom)
	require.NoError(t, err)
	assert.Equal(t, []string{"Телефон", "Email"}, r.Header(), "заданный заголовок важнее метки модели")
}

func TestReporter_VisibleFields(t *testing.T) {
	tests := []struct {
		name    string
		visible []string
		want    []string
		wantErr error
	}{
		{name: "all declared by default", visible: nil, want: []string{"first_name", "last_name", "email"}},
		{name: "subset keeps given order", visible: []string{"email", "first_name"}, want: []string{"email", "first_name"}},
		{name: "single field", visible: []string{"last_name"}, want: []string{"last_name"}},
		{name: "field not declared", visible: []string{"phone"}, wantErr: ErrFieldNotDeclared},
		{name: "duplicate field", visible: []string{"email", "email"}, wantErr: ErrDuplicateField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := New(personReporter{}, tt.visible...)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, r.Fields())
			assert.Len(t, r.Header(), len(tt.want))
			assert.Equal(t, []string{"first_name", "last_name", "email"}, r.Declared())

			row, err := r.Row(angelica())
			require.NoError(t, err)
			assert.Len(t, row, len(r.Header()))
		})
	}
}

func TestReporter_OverrideWins(t *testing.T) {
	r, err := New(nilOverrideReporter{})
	require.NoError(t, err)

	row, err := r.Row(angelica())
	require.NoError(t, err)
	assert.Nil(t, row[2], "при наличии метода колонки атрибут не читается")

	// Метод принимает person по значению, а выборка отдаёт указатели и значения
	_, err = r.Row(*angelica())
	require.NoError(t, err)
}

func TestReporter_OverrideError(t *testing.T) {
	r, err := New(failingOverrideReporter{})
	require.NoError(t, err)

	_, err = r.Row(angelica())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "почта недоступна")
	assert.Contains(t, err.Error(), "email")
}

func TestReporter_InvalidOverride(t *testing.T) {
	_, err := New(badSignatureReporter{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidOverride)
	assert.Contains(t, err.Error(), "GetEmailColumn")
}

func TestReporter_UndefinedField(t *testing.T) {
	r, err := New(undefinedReporter{})
	require.NoError(t, err, "неизвестное поле не мешает созданию отчёта")

	_, err = r.Row(angelica())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUndefinedField)

	var undefined *UndefinedFieldError
	require.True(t, errors.As(err, &undefined))
	assert.Equal(t, "favourite_color", undefined.Field)
	assert.Equal(t, "person", undefined.Model)
	assert.Contains(t, err.Error(), "favourite_color")
}

func TestReporter_AttributeSources(t *testing.T) {
	r, err := New(wideReporter{})
	require.NoError(t, err)

	row, err := r.StringRow(angelica())
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "Angelica", "+992900000001", "Angelica Edlund", "angie", "AE"}, row)

	t.Run("map instance", func(t *testing.T) {
		r, err := New(personReporter{})
		require.NoError(t, err)
		row, err := r.StringRow(map[string]any{
			"first_name": "Leland",
			"last_name":  "Rydell",
			"email":      "lrydell@example.org",
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"Leland", "Rydell", "lrydell@example.org"}, row)

		_, err = r.Row(map[string]any{"first_name": "Leland"})
		assert.ErrorIs(t, err, ErrUndefinedField)
	})

	t.Run("null phone renders empty", func(t *testing.T) {
		p := angelica()
		p.Phone = null.String{}
		row, err := r.StringRow(p)
		require.NoError(t, err)
		assert.Equal(t, "", row[2])
	})
}

func TestReporter_Definition(t *testing.T) {
	_, err := New(Definition{Model: person{}})
	assert.ErrorIs(t, err, ErrNoFields)

	_, err = New(Definition{Model: person{}, Fields: []string{"email", "email"}})
	assert.ErrorIs(t, err, ErrDuplicateField)

	_, err = New(Definition{Model: 42, Fields: []string{"email"}})
	assert.ErrorIs(t, err, ErrInvalidModel)
}

func TestReporter_HeaderAndRowLengthMatch(t *testing.T) {
	people := make([]*person, 0, 25)
	for i := 0; i < 25; i++ {
		p := angelica()
		p.ID = int64(i + 1)
		p.Email = fmt.Sprintf("user%d@example.com", i)
		people = append(people, p)
	}

	for _, d := range []Declarer{personReporter{}, emailOverrideReporter{}, wideReporter{}} {
		r, err := New(d)
		require.NoError(t, err)
		header := r.Header()

		count := 0
		err = r.Each(context.Background(), NewSliceQuerySet(people), func(row []string) error {
			count++
			assert.Len(t, row, len(header))
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, len(people), count)
	}
}

func TestReporter_EachStopsOnCancel(t *testing.T) {
	r, err := New(personReporter{})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = r.Each(ctx, NewSliceQuerySet([]*person{angelica()}), func([]string) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}
