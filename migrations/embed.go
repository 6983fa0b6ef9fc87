// Package migrations embeds the planner schema migrations. The API applies
// them on boot and the repo tests apply them once per package.
package migrations

import "embed"

// FS holds every *.sql migration. Hand it to goose.NewProvider.
//
//go:embed *.sql
var FS embed.FS
