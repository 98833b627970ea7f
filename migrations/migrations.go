package migrations

import "embed"

// Postgres holds the schema migrations applied by cmd/migrate and AUTO_MIGRATE.
//
//go:embed postgres/*.sql
var Postgres embed.FS

const PostgresDir = "postgres"
