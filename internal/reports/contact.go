package reports

import (
	"strings"

	"report-system/internal/entities"
	"report-system/pkg/reporter"
)

// ContactReporter - выгрузка адресной книги.
type ContactReporter struct{}

func (ContactReporter) Definition() reporter.Definition {
	return reporter.Definition{
		Model:  entities.Contact{},
		Fields: []string{"first_name", "last_name", "email", "phone", "full_name"},
		Headers: map[string]string{
			"first_name": "Different header",
		},
	}
}

// GetEmailColumn - адреса в выгрузке всегда в нижнем регистре.
func (ContactReporter) GetEmailColumn(c *entities.Contact) string {
	return strings.ToLower(c.Email)
}

func (ContactReporter) GetFullNameColumn(c *entities.Contact) string {
	return c.FullName()
}

// DepartmentReporter - справочник отделов.
type DepartmentReporter struct{}

func (DepartmentReporter) Definition() reporter.Definition {
	return reporter.Definition{
		Model:  entities.Department{},
		Fields: []string{"id", "name", "created_at"},
	}
}
