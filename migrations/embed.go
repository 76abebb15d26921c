// Package migrations embeds the SQL schema migrations for each supported driver
package migrations

import "embed"

// FS holds migrations under mysql/ and sqlite/
//
//go:embed mysql/*.sql sqlite/*.sql
var FS embed.FS
