package database

import "embed"

// MigrationsFS - SQL-миграции общей схемы, применяются через shared/migration.
//
//go:embed migrations/*.sql
var MigrationsFS embed.FS

// MigrationsDir - путь к миграциям внутри MigrationsFS.
const MigrationsDir = "migrations"
