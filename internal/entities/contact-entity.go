package entities

import (
	"strings"

	"github.com/aarondl/null/v8"

	"report-system/pkg/types"
)

// Contact - контакт из адресной книги, основная модель отчётов.
type Contact struct {
	ID           int64       `json:"id" db:"id" label:"ID"`
	FirstName    string      `json:"first_name" db:"first_name"`
	LastName     string      `json:"last_name" db:"last_name"`
	Email        string      `json:"email" db:"email" label:"email"`
	Phone        null.String `json:"phone" db:"phone" label:"phone number"`
	DepartmentID null.Int64  `json:"department_id" db:"department_id" label:"department"`

	types.BaseEntity
	types.SoftDelete
}

func (Contact) TableName() string { return "contacts" }

func (c Contact) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}
