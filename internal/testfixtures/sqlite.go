package testfixtures

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/example/teetime-engine/internal/persistence"
	"github.com/example/teetime-engine/internal/persistence/sqlite"
	"github.com/example/teetime-engine/internal/persistence/sqlite/migration"
)

// SQLiteHarness is a migrated ledger database in a temporary directory.
type SQLiteHarness struct {
	Ledger    persistence.LedgerRepository
	Summaries persistence.SummaryRepository
	Storage   *sqlite.Storage

	tb      testing.TB
	cleanup func()
}

// SeedLedger records entries one by one, failing the test on any error.
func (h *SQLiteHarness) SeedLedger(entries ...persistence.LedgerEntry) {
	h.tb.Helper()
	for _, entry := range entries {
		if err := h.Ledger.RecordEntry(context.Background(), entry); err != nil {
			h.tb.Fatalf("failed to seed ledger entry %s: %v", entry.ID, err)
		}
	}
}

// SeedSummaries stores summaries, failing the test on any error.
func (h *SQLiteHarness) SeedSummaries(summaries ...persistence.DailySummary) {
	h.tb.Helper()
	for _, summary := range summaries {
		if err := h.Summaries.SaveDailySummary(context.Background(), summary); err != nil {
			h.tb.Fatalf("failed to seed summary for day %d: %v", summary.Day, err)
		}
	}
}

// Close releases resources associated with the harness.
func (h *SQLiteHarness) Close() {
	if h != nil && h.cleanup != nil {
		h.cleanup()
		h.cleanup = nil
	}
}

// NewSQLiteHarness opens and migrates a database in a temporary directory.
// Callers may invoke Close; a cleanup is also registered with tb.
func NewSQLiteHarness(tb testing.TB) *SQLiteHarness {
	tb.Helper()

	path := filepath.Join(tb.TempDir(), "teetime.db")
	storage, err := sqlite.Open(migration.TempFileTestSQLiteConfig(path), slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		tb.Fatalf("failed to open storage: %v", err)
	}

	if err := storage.Migrate(context.Background()); err != nil {
		_ = storage.Close()
		tb.Fatalf("failed to migrate storage: %v", err)
	}

	harness := &SQLiteHarness{
		Ledger:    storage.Ledger(),
		Summaries: storage.Summaries(),
		Storage:   storage,
		tb:        tb,
		cleanup: func() {
			_ = storage.Close()
		},
	}

	tb.Cleanup(harness.Close)
	return harness
}
