package application

import (
	"context"
	"errors"
	"testing"

	"github.com/example/teetime-engine/internal/persistence"
	"github.com/example/teetime-engine/internal/teetime"
	"github.com/shopspring/decimal"
)

func TestBookingServiceAdvanceDay(t *testing.T) {
	t.Parallel()

	t.Run("books, summarizes and moves on", func(t *testing.T) {
		t.Parallel()
		h := newHarness(constRandom(0))
		ctx := context.Background()
		book(t, h.svc, "tt-0-0700")

		report, err := h.svc.AdvanceDay(ctx, DefaultEconomicInputs())
		if err != nil {
			t.Fatalf("AdvanceDay returned error: %v", err)
		}

		// Winter day zero runs 07:00 to 14:00, one slot every ten minutes.
		if report.Day != 0 || report.NewBookings != 42 {
			t.Fatalf("expected 42 simulated bookings on day 0, got %d on day %d", report.NewBookings, report.Day)
		}
		if !report.NewRevenue.Equal(decimal.NewFromInt(42 * 70)) {
			t.Fatalf("unexpected new revenue %s", report.NewRevenue)
		}
		if report.Stats.TotalSlots != 43 || report.Stats.BookedSlots != 43 || report.Stats.BookingRate != 1 {
			t.Fatalf("unexpected stats %+v", report.Stats)
		}
		if report.Metrics.TotalBookingsToday != 43 {
			t.Fatalf("expected 43 bookings today, got %d", report.Metrics.TotalBookingsToday)
		}
		if len(report.Pace.BackupLocations) != 5 {
			t.Fatalf("expected every candidate hole to back up, got %v", report.Pace.BackupLocations)
		}

		state := h.svc.State()
		if state.CurrentDay != 1 {
			t.Fatalf("expected day 1, got %d", state.CurrentDay)
		}
		if state.Metrics != (teetime.BookingMetrics{}) {
			t.Fatalf("expected metrics reset, got %+v", state.Metrics)
		}
		if got := state.DailyStats(0).BookedSlots; got != 43 {
			t.Fatalf("expected day 0 to keep its bookings, got %d", got)
		}

		simulated := 0
		for _, entry := range h.ledger.entries {
			if entry.Action == persistence.LedgerActionSimulated {
				simulated++
				if entry.FromStatus != "available" || entry.ToStatus != "reserved" || entry.RunID != "run-test" {
					t.Fatalf("unexpected simulated entry %+v", entry)
				}
			}
		}
		if simulated != 42 || h.ledger.batches != 1 {
			t.Fatalf("expected one batch of 42 entries, got %d entries in %d batches", simulated, h.ledger.batches)
		}

		if len(h.summaries.saved) != 1 {
			t.Fatalf("expected one summary, got %d", len(h.summaries.saved))
		}
		summary := h.summaries.saved[0]
		if summary.RunID != "run-test" || summary.Day != 0 || summary.NewBookings != 42 || summary.BookedSlots != 43 {
			t.Fatalf("unexpected summary %+v", summary)
		}
		if !summary.TotalRevenue.Equal(decimal.NewFromInt(43 * 70)) {
			t.Fatalf("unexpected total revenue %s", summary.TotalRevenue)
		}
		if summary.PaceRating != string(report.Pace.Rating) || len(summary.BackupHoles) != 5 {
			t.Fatalf("summary does not mirror pace %+v", summary)
		}
		if !summary.CreatedAt.Equal(fixedNow) {
			t.Fatalf("unexpected created_at %v", summary.CreatedAt)
		}
	})

	t.Run("quiet day records no bookings", func(t *testing.T) {
		t.Parallel()
		h := newHarness(constRandom(0.99))

		report, err := h.svc.AdvanceDay(context.Background(), DefaultEconomicInputs())
		if err != nil {
			t.Fatalf("AdvanceDay returned error: %v", err)
		}
		if report.NewBookings != 0 || !report.NewRevenue.IsZero() || report.Stats.BookingRate != 0 {
			t.Fatalf("unexpected report %+v", report)
		}
		if h.ledger.batches != 0 {
			t.Fatalf("expected no ledger batch for a quiet day")
		}
		if len(h.summaries.saved) != 1 {
			t.Fatalf("expected the summary to be stored anyway")
		}
	})

	t.Run("summary failure keeps the day open", func(t *testing.T) {
		t.Parallel()
		h := newHarness(constRandom(0))
		h.summaries.err = persistence.ErrDuplicate
		before := h.svc.State()

		_, err := h.svc.AdvanceDay(context.Background(), DefaultEconomicInputs())
		if !errors.Is(err, persistence.ErrDuplicate) {
			t.Fatalf("expected ErrDuplicate, got %v", err)
		}
		if h.svc.State() != before || before.CurrentDay != 0 {
			t.Fatalf("expected state to be unchanged")
		}
		if got := before.DailyStats(0).BookedSlots; got != 0 {
			t.Fatalf("expected no bookings to be applied, got %d", got)
		}
	})

	t.Run("consecutive days", func(t *testing.T) {
		t.Parallel()
		h := newHarness(constRandom(0.99))
		for want := 0; want < 3; want++ {
			report, err := h.svc.AdvanceDay(context.Background(), DefaultEconomicInputs())
			if err != nil {
				t.Fatalf("AdvanceDay returned error: %v", err)
			}
			if report.Day != want {
				t.Fatalf("expected day %d, got %d", want, report.Day)
			}
		}
		if h.svc.State().CurrentDay != 3 || len(h.summaries.saved) != 3 {
			t.Fatalf("expected three advanced days")
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()
		h := newHarness(constRandom(0))
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if _, err := h.svc.AdvanceDay(ctx, DefaultEconomicInputs()); !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	})
}
