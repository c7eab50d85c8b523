// Package migrations embeds the SQL migrations for the plan archive so the
// server and integration tests can apply them through goose.
package migrations

import "embed"

// FS holds all *.sql migration files.
//
//go:embed *.sql
var FS embed.FS
