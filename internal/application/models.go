package application

import (
	"github.com/example/teetime-engine/internal/teetime"
	"github.com/shopspring/decimal"
)

// BookParams describes a booking request for one tee time.
type BookParams struct {
	TeeTimeID   string
	Golfers     []teetime.GolferBooking
	BookingType teetime.BookingType
}

// CancelParams describes a cancellation request. RequestedAt defaults to the
// start of the current game day.
type CancelParams struct {
	TeeTimeID   string
	RequestedAt *teetime.GameTime
}

// TransitionResult is the tee time after an accepted transition together
// with any penalty it incurred.
type TransitionResult struct {
	TeeTime *teetime.TeeTime
	Penalty decimal.Decimal
	Late    bool
}

// EconomicInputs are the per-day inputs of the day-advance driver.
type EconomicInputs struct {
	Factors          teetime.DemandFactors
	GreenFee         decimal.Decimal
	CartFee          decimal.Decimal
	CourseConditions float64
	Skills           teetime.SkillDistribution
}

// DefaultEconomicInputs returns neutral demand at a 55 + 15 rack rate on a
// course in fair condition.
func DefaultEconomicInputs() EconomicInputs {
	return EconomicInputs{
		Factors:          teetime.DefaultDemandFactors(),
		GreenFee:         decimal.NewFromInt(55),
		CartFee:          decimal.NewFromInt(15),
		CourseConditions: 75,
		Skills:           teetime.DefaultSkillDistribution(),
	}
}

// DayReport summarizes one advanced day.
type DayReport struct {
	RunID       string
	Day         int
	NewBookings int
	NewRevenue  decimal.Decimal
	Stats       teetime.DailyStats
	Pace        teetime.PaceOfPlayResult
	Metrics     teetime.BookingMetrics
}
