package persistence

import "context"

// LedgerRepository stores the booking ledger.
type LedgerRepository interface {
	RecordEntry(ctx context.Context, entry LedgerEntry) error
	RecordEntries(ctx context.Context, entries []LedgerEntry) error
	ListEntriesForDay(ctx context.Context, day int) ([]LedgerEntry, error)
}

// SummaryRepository stores one summary per simulated day and run.
type SummaryRepository interface {
	SaveDailySummary(ctx context.Context, summary DailySummary) error
	GetDailySummary(ctx context.Context, runID string, day int) (DailySummary, error)
	ListDailySummaries(ctx context.Context, runID string) ([]DailySummary, error)
}
