// Package migrations хранит SQL-миграции goose для обеих поддерживаемых баз.
package migrations

import "embed"

//go:embed postgres/*.sql sqlite/*.sql
var FS embed.FS
