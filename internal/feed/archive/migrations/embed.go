package migrations

import "embed"

// FS contains the archive schema migrations.
//
//go:embed *.sql
var FS embed.FS
