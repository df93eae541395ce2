// Package migration applies versioned schema changes to the ledger database.
//
// Migrations are read from an fs.FS, normally the SQL files embedded in the
// sqlite package, and must be named {version}_{description}.sql. Applied
// versions and their checksums are tracked in the schema_migrations table so
// a migration runs at most once and an edited migration is detected.
//
// Example usage:
//
//	manager := NewManager(NewSQLiteExecutor(db), migrations, "migrations", logger)
//	if _, err := manager.Run(ctx); err != nil {
//		return err
//	}
package migration
