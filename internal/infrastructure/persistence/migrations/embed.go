// Package migrations embeds the SQL migration scripts so the binary can
// migrate schemas without shipping loose files.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
