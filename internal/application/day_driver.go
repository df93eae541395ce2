package application

import (
	"context"
	"fmt"

	"github.com/example/teetime-engine/internal/persistence"
	"github.com/example/teetime-engine/internal/teetime"
	"github.com/shopspring/decimal"
)

// AdvanceDay closes the current game day: organic bookings are simulated
// and applied, the tee sheet is aggregated, pace of play is modelled at the
// resulting occupancy, and a summary is stored. Daily metrics are then reset
// and the day pointer moves forward. When persistence fails the state is
// left as it was.
func (s *BookingService) AdvanceDay(ctx context.Context, inputs EconomicInputs) (report DayReport, err error) {
	if s == nil {
		err = fmt.Errorf("BookingService is nil")
		return
	}
	if err = ctx.Err(); err != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	day := s.state.CurrentDay
	logger := s.loggerWith(ctx, "AdvanceDay", "day", day, "run_id", s.runID)
	defer func() {
		if err != nil {
			logFailure(ctx, logger, "failed to advance day", err)
			return
		}
		logger.With(
			"new_bookings", report.NewBookings,
			"booking_rate", report.Stats.BookingRate,
			"pace_rating", report.Pace.Rating,
		).InfoContext(ctx, "day advanced")
	}()

	state := s.state
	state.TeeTimes(day)
	result := teetime.SimulateDailyBookings(state, day, day, inputs.Factors, inputs.GreenFee, inputs.CartFee, s.random)
	next := state.ApplyBookingSimulation(result)

	stats := next.DailyStats(day)
	pace := teetime.CalculatePaceOfPlay(next.Spacing, stats.BookingRate, inputs.CourseConditions, inputs.Skills, s.random)
	report = DayReport{
		RunID:       s.runID,
		Day:         day,
		NewBookings: len(result.NewBookings),
		NewRevenue:  result.NewRevenue,
		Stats:       stats,
		Pace:        pace,
		Metrics:     next.Metrics,
	}

	if err = s.persistDay(ctx, result, report); err != nil {
		report = DayReport{}
		return
	}

	s.state = next.ResetDailyMetrics().AdvanceDay()
	return
}

func (s *BookingService) persistDay(ctx context.Context, result teetime.SimulationResult, report DayReport) error {
	if s.ledger != nil && len(result.NewBookings) > 0 {
		entries := make([]persistence.LedgerEntry, 0, len(result.NewBookings))
		for _, booked := range result.NewBookings {
			entries = append(entries, s.ledgerEntry(persistence.LedgerActionSimulated, teetime.StatusAvailable, booked, decimal.Zero))
		}
		if err := s.ledger.RecordEntries(ctx, entries); err != nil {
			return fmt.Errorf("record simulated bookings for day %d: %w", report.Day, err)
		}
	}

	if s.summaries == nil {
		return nil
	}
	if err := s.summaries.SaveDailySummary(ctx, s.dailySummary(report)); err != nil {
		return fmt.Errorf("save summary for day %d: %w", report.Day, err)
	}
	return nil
}

func (s *BookingService) dailySummary(report DayReport) persistence.DailySummary {
	stats := report.Stats
	return persistence.DailySummary{
		RunID:             report.RunID,
		Day:               report.Day,
		TotalSlots:        stats.TotalSlots,
		BookedSlots:       stats.BookedSlots,
		CheckedIn:         stats.CheckedIn,
		InProgress:        stats.InProgress,
		Completed:         stats.Completed,
		NoShows:           stats.NoShows,
		Cancelled:         stats.Cancelled,
		TotalGolfers:      stats.TotalGolfers,
		NewBookings:       report.NewBookings,
		Cancellations:     report.Metrics.CancellationsToday,
		LateCancellations: report.Metrics.LateCancellationsToday,
		TotalRevenue:      stats.TotalRevenue,
		NewRevenue:        report.NewRevenue,
		BookingRate:       stats.BookingRate,
		PaceRating:        string(report.Pace.Rating),
		RoundTimeHours:    report.Pace.EstimatedRoundTime,
		WaitTimeMinutes:   report.Pace.WaitTimeMinutes,
		BackupHoles:       append([]int{}, report.Pace.BackupLocations...),
		CreatedAt:         s.now(),
	}
}
