package sqlite

import (
	"context"
	"embed"
	"fmt"
	"log/slog"

	"github.com/example/teetime-engine/internal/persistence/sqlite/migration"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Storage bundles the SQLite-backed repositories over one connection pool.
type Storage struct {
	pool      *ConnectionPool
	ledger    *LedgerRepository
	summaries *SummaryRepository
	logger    *slog.Logger
}

// Open connects to the database described by config. Call Migrate before
// using the repositories on a fresh database.
func Open(config migration.SQLiteConfig, logger *slog.Logger) (*Storage, error) {
	if logger == nil {
		logger = slog.Default()
	}
	pool, err := NewConnectionPool(config, logger)
	if err != nil {
		return nil, err
	}
	return &Storage{
		pool:      pool,
		ledger:    NewLedgerRepository(pool),
		summaries: NewSummaryRepository(pool),
		logger:    logger,
	}, nil
}

// Migrate applies the embedded schema migrations.
func (s *Storage) Migrate(ctx context.Context) error {
	manager := migration.NewManager(migration.NewSQLiteExecutor(s.pool.DB()), migrationFiles, "migrations", s.logger)
	if _, err := manager.Run(ctx); err != nil {
		return fmt.Errorf("sqlite: migrate: %w", err)
	}
	return nil
}

// Ledger returns the booking ledger repository.
func (s *Storage) Ledger() *LedgerRepository {
	return s.ledger
}

// Summaries returns the daily summary repository.
func (s *Storage) Summaries() *SummaryRepository {
	return s.summaries
}

// Ping tests the database connection.
func (s *Storage) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close releases the connection pool.
func (s *Storage) Close() error {
	return s.pool.Close()
}
