// Package migrations embeds the schema migrations for each supported driver.
package migrations

import "embed"

// Sqlite holds migrations for the sqlite3 driver.
//
//go:embed sqlite/*.sql
var Sqlite embed.FS

// Postgres holds migrations for the postgres driver.
//
//go:embed postgres/*.sql
var Postgres embed.FS
