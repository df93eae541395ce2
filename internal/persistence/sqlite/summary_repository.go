package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/example/teetime-engine/internal/persistence"
)

const selectSummarySQL = `
	SELECT run_id, day, total_slots, booked_slots, checked_in, in_progress, completed,
	       no_shows, cancelled, total_golfers, new_bookings, cancellations, late_cancellations,
	       total_revenue, new_revenue, booking_rate, pace_rating, round_time_hours,
	       wait_time_minutes, backup_holes, created_at
	FROM daily_summaries
`

// SummaryRepository implements persistence.SummaryRepository using SQLite.
type SummaryRepository struct {
	pool *ConnectionPool
}

// NewSummaryRepository creates a summary repository on pool.
func NewSummaryRepository(pool *ConnectionPool) *SummaryRepository {
	return &SummaryRepository{pool: pool}
}

// SaveDailySummary stores summary. A second summary for the same run and day
// fails with persistence.ErrDuplicate.
func (r *SummaryRepository) SaveDailySummary(ctx context.Context, summary persistence.DailySummary) error {
	if summary.RunID == "" {
		return persistence.ErrConstraintViolation
	}

	const query = `
		INSERT INTO daily_summaries (
			run_id, day, total_slots, booked_slots, checked_in, in_progress, completed,
			no_shows, cancelled, total_golfers, new_bookings, cancellations, late_cancellations,
			total_revenue, new_revenue, booking_rate, pace_rating, round_time_hours,
			wait_time_minutes, backup_holes, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	return r.pool.exec(ctx, "save daily summary", query,
		summary.RunID,
		summary.Day,
		summary.TotalSlots,
		summary.BookedSlots,
		summary.CheckedIn,
		summary.InProgress,
		summary.Completed,
		summary.NoShows,
		summary.Cancelled,
		summary.TotalGolfers,
		summary.NewBookings,
		summary.Cancellations,
		summary.LateCancellations,
		summary.TotalRevenue.String(),
		summary.NewRevenue.String(),
		summary.BookingRate,
		summary.PaceRating,
		summary.RoundTimeHours,
		summary.WaitTimeMinutes,
		encodeHoles(summary.BackupHoles),
		summary.CreatedAt.UTC().Format(timestampLayout),
	)
}

// GetDailySummary returns the summary of day in run.
func (r *SummaryRepository) GetDailySummary(ctx context.Context, runID string, day int) (persistence.DailySummary, error) {
	row := r.pool.DB().QueryRowContext(ctx, selectSummarySQL+" WHERE run_id = ? AND day = ?", runID, day)
	summary, err := scanSummary(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return persistence.DailySummary{}, persistence.ErrNotFound
		}
		return persistence.DailySummary{}, mapError(err)
	}
	return summary, nil
}

// ListDailySummaries returns the summaries of run ordered by day.
func (r *SummaryRepository) ListDailySummaries(ctx context.Context, runID string) ([]persistence.DailySummary, error) {
	rows, err := r.pool.DB().QueryContext(ctx, selectSummarySQL+" WHERE run_id = ? ORDER BY day ASC", runID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var summaries []persistence.DailySummary
	for rows.Next() {
		summary, err := scanSummary(rows)
		if err != nil {
			return nil, mapError(err)
		}
		summaries = append(summaries, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	return summaries, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSummary(row rowScanner) (persistence.DailySummary, error) {
	var (
		summary    persistence.DailySummary
		holes      string
		createdStr string
	)
	err := row.Scan(
		&summary.RunID,
		&summary.Day,
		&summary.TotalSlots,
		&summary.BookedSlots,
		&summary.CheckedIn,
		&summary.InProgress,
		&summary.Completed,
		&summary.NoShows,
		&summary.Cancelled,
		&summary.TotalGolfers,
		&summary.NewBookings,
		&summary.Cancellations,
		&summary.LateCancellations,
		&summary.TotalRevenue,
		&summary.NewRevenue,
		&summary.BookingRate,
		&summary.PaceRating,
		&summary.RoundTimeHours,
		&summary.WaitTimeMinutes,
		&holes,
		&createdStr,
	)
	if err != nil {
		return persistence.DailySummary{}, err
	}
	if summary.BackupHoles, err = decodeHoles(holes); err != nil {
		return persistence.DailySummary{}, err
	}
	if summary.CreatedAt, err = time.Parse(timestampLayout, createdStr); err != nil {
		return persistence.DailySummary{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	return summary, nil
}

func encodeHoles(holes []int) string {
	parts := make([]string, len(holes))
	for i, hole := range holes {
		parts[i] = strconv.Itoa(hole)
	}
	return strings.Join(parts, ",")
}

func decodeHoles(value string) ([]int, error) {
	holes := []int{}
	if value == "" {
		return holes, nil
	}
	for _, part := range strings.Split(value, ",") {
		hole, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("failed to parse backup hole %q: %w", part, err)
		}
		holes = append(holes, hole)
	}
	return holes, nil
}
