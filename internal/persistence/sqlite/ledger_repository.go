package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/teetime-engine/internal/persistence"
)

// Fixed-width UTC timestamps sort correctly as text.
const timestampLayout = "2006-01-02T15:04:05.000000000Z"

const insertLedgerEntrySQL = `
	INSERT INTO booking_ledger (
		id, run_id, tee_time_id, day, action, from_status, to_status,
		group_size, revenue, penalty, recorded_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

// LedgerRepository implements persistence.LedgerRepository using SQLite.
type LedgerRepository struct {
	pool *ConnectionPool
}

// NewLedgerRepository creates a ledger repository on pool.
func NewLedgerRepository(pool *ConnectionPool) *LedgerRepository {
	return &LedgerRepository{pool: pool}
}

// RecordEntry appends one entry to the ledger.
func (r *LedgerRepository) RecordEntry(ctx context.Context, entry persistence.LedgerEntry) error {
	if entry.ID == "" || entry.TeeTimeID == "" {
		return persistence.ErrConstraintViolation
	}
	return r.pool.exec(ctx, "record ledger entry", insertLedgerEntrySQL, ledgerArgs(entry)...)
}

// RecordEntries appends entries in a single transaction. Either every entry
// is stored or none is.
func (r *LedgerRepository) RecordEntries(ctx context.Context, entries []persistence.LedgerEntry) error {
	if len(entries) == 0 {
		return nil
	}
	for _, entry := range entries {
		if entry.ID == "" || entry.TeeTimeID == "" {
			return persistence.ErrConstraintViolation
		}
	}

	return r.pool.inTx(ctx, "record ledger batch", func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, insertLedgerEntrySQL)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, entry := range entries {
			if _, err := stmt.ExecContext(ctx, ledgerArgs(entry)...); err != nil {
				return err
			}
		}
		return nil
	})
}

// ListEntriesForDay returns the entries of day in recording order.
func (r *LedgerRepository) ListEntriesForDay(ctx context.Context, day int) ([]persistence.LedgerEntry, error) {
	const query = `
		SELECT id, run_id, tee_time_id, day, action, from_status, to_status,
		       group_size, revenue, penalty, recorded_at
		FROM booking_ledger
		WHERE day = ?
		ORDER BY recorded_at ASC, id ASC
	`
	rows, err := r.pool.DB().QueryContext(ctx, query, day)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var entries []persistence.LedgerEntry
	for rows.Next() {
		var (
			entry       persistence.LedgerEntry
			action      string
			recordedStr string
		)
		err := rows.Scan(
			&entry.ID,
			&entry.RunID,
			&entry.TeeTimeID,
			&entry.Day,
			&action,
			&entry.FromStatus,
			&entry.ToStatus,
			&entry.GroupSize,
			&entry.Revenue,
			&entry.Penalty,
			&recordedStr,
		)
		if err != nil {
			return nil, mapError(err)
		}
		entry.Action = persistence.LedgerAction(action)
		if entry.RecordedAt, err = time.Parse(timestampLayout, recordedStr); err != nil {
			return nil, fmt.Errorf("failed to parse recorded_at: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	return entries, nil
}

func ledgerArgs(entry persistence.LedgerEntry) []any {
	return []any{
		entry.ID,
		entry.RunID,
		entry.TeeTimeID,
		entry.Day,
		string(entry.Action),
		entry.FromStatus,
		entry.ToStatus,
		entry.GroupSize,
		entry.Revenue.String(),
		entry.Penalty.String(),
		entry.RecordedAt.UTC().Format(timestampLayout),
	}
}
