package reporter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNames(t *testing.T) {
	tests := []struct {
		field  string
		camel  string
		method string
		label  string
	}{
		{field: "email", camel: "Email", method: "GetEmailColumn", label: "Email"},
		{field: "first_name", camel: "FirstName", method: "GetFirstNameColumn", label: "First name"},
		{field: "user_id", camel: "UserID", method: "GetUserIDColumn", label: "User id"},
		{field: "avatar_url", camel: "AvatarURL", method: "GetAvatarURLColumn", label: "Avatar url"},
		{field: "SLA_status", camel: "SLAStatus", method: "GetSLAStatusColumn", label: "Sla status"},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			assert.Equal(t, tt.camel, CamelCase(tt.field))
			assert.Equal(t, tt.method, MethodName(tt.field))
			assert.Equal(t, tt.label, DefaultLabel(tt.field))
		})
	}
}

func TestSnakeCase(t *testing.T) {
	assert.Equal(t, "contact", snakeCase("Contact"))
	assert.Equal(t, "contact_group", snakeCase("ContactGroup"))
	assert.Equal(t, "http_log", snakeCase("HTTPLog"))
	assert.Equal(t, "report2_row", snakeCase("Report2Row"))
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "", Capitalize(""))
	assert.Equal(t, "Last name", Capitalize("last name"))
	assert.Equal(t, "Фамилия", Capitalize("фамилия"))
}
