// Package loyalty carries embedded assets for the loyalty backend.
package loyalty

import "embed"

// MigrationsFS holds the SQL schema migrations.
//
//go:embed migrations/*.sql
var MigrationsFS embed.FS
