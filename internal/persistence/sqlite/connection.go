package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/example/teetime-engine/internal/persistence"
	"github.com/example/teetime-engine/internal/persistence/sqlite/migration"
	moderncsqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// ConnectionPool owns the database handle shared by the repositories.
// Writes go through exec or inTx, which retry while the file is locked and
// translate driver errors into persistence sentinels.
type ConnectionPool struct {
	db     *sql.DB
	retry  RetryConfig
	logger *slog.Logger
}

// NewConnectionPool opens a pool configured by config.
func NewConnectionPool(config migration.SQLiteConfig, logger *slog.Logger) (*ConnectionPool, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := migration.Open(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	return &ConnectionPool{db: db, retry: DefaultRetryConfig(), logger: logger}, nil
}

// DB returns the underlying database handle.
func (cp *ConnectionPool) DB() *sql.DB {
	return cp.db
}

// SetRetryConfig replaces the busy retry policy.
func (cp *ConnectionPool) SetRetryConfig(config RetryConfig) {
	cp.retry = config
}

// Close closes the pool.
func (cp *ConnectionPool) Close() error {
	if cp.db != nil {
		return cp.db.Close()
	}
	return nil
}

// Ping tests the database connection.
func (cp *ConnectionPool) Ping(ctx context.Context) error {
	return cp.db.PingContext(ctx)
}

func (cp *ConnectionPool) exec(ctx context.Context, operation, query string, args ...any) error {
	return cp.write(ctx, operation, func() error {
		_, err := cp.db.ExecContext(ctx, query, args...)
		return err
	})
}

// inTx runs fn in one transaction; a failed attempt is rolled back as a
// whole before it is retried.
func (cp *ConnectionPool) inTx(ctx context.Context, operation string, fn func(tx *sql.Tx) error) error {
	return cp.write(ctx, operation, func() error {
		tx, err := cp.db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		defer func() {
			if p := recover(); p != nil {
				_ = tx.Rollback()
				panic(p)
			}
		}()

		if err := fn(tx); err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				return fmt.Errorf("%w (rollback: %v)", err, rbErr)
			}
			return err
		}
		return tx.Commit()
	})
}

func (cp *ConnectionPool) write(ctx context.Context, operation string, fn func() error) error {
	delay := cp.retry.InitialDelay
	var lastErr error

	for attempt := 0; attempt <= cp.retry.MaxRetries; attempt++ {
		if attempt > 0 {
			cp.logger.DebugContext(ctx, "sqlite busy, retrying",
				"operation", operation,
				"attempt", attempt,
				"delay", delay,
			)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
			delay = min(time.Duration(float64(delay)*cp.retry.BackoffFactor), cp.retry.MaxDelay)
		}

		lastErr = mapError(fn())
		if lastErr == nil || !errors.Is(lastErr, persistence.ErrBusy) {
			return lastErr
		}
	}

	cp.logger.WarnContext(ctx, "sqlite stayed busy", "operation", operation, "retries", cp.retry.MaxRetries)
	return fmt.Errorf("%s: gave up after %d retries: %w", operation, cp.retry.MaxRetries, lastErr)
}

// mapError wraps err with the persistence sentinel matching its SQLite
// result code. Errors without a known code are matched on their message.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return persistence.ErrNotFound
	}

	msg := err.Error()
	var sqliteErr *moderncsqlite.Error
	if errors.As(err, &sqliteErr) {
		switch code := sqliteErr.Code(); {
		case code == sqlite3.SQLITE_CONSTRAINT_UNIQUE, code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return fmt.Errorf("%w: %v", persistence.ErrDuplicate, err)
		case code&0xff == sqlite3.SQLITE_CONSTRAINT && !strings.Contains(msg, "UNIQUE constraint failed"):
			return fmt.Errorf("%w: %v", persistence.ErrConstraintViolation, err)
		case code&0xff == sqlite3.SQLITE_BUSY, code&0xff == sqlite3.SQLITE_LOCKED:
			return fmt.Errorf("%w: %v", persistence.ErrBusy, err)
		}
	}

	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return fmt.Errorf("%w: %v", persistence.ErrDuplicate, err)
	case strings.Contains(msg, "constraint failed"):
		return fmt.Errorf("%w: %v", persistence.ErrConstraintViolation, err)
	case strings.Contains(msg, "database is locked"), strings.Contains(msg, "database table is locked"):
		return fmt.Errorf("%w: %v", persistence.ErrBusy, err)
	}
	return err
}

// RetryConfig bounds how long a write waits for a locked database.
type RetryConfig struct {
	MaxRetries    int
	InitialDelay  time.Duration
	MaxDelay      time.Duration
	BackoffFactor float64
}

// DefaultRetryConfig suits one simulation process sharing the file with
// occasional readers.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:    4,
		InitialDelay:  25 * time.Millisecond,
		MaxDelay:      500 * time.Millisecond,
		BackoffFactor: 2.0,
	}
}
