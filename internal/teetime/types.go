package teetime

import "github.com/shopspring/decimal"

const (
	minutesPerDay = 24 * 60
	daysPerWeek   = 7
	daysPerYear   = 365
)

// GameTime is a discrete simulated timestamp. It carries no timezone and no
// calendar beyond day-of-week and day-of-year.
type GameTime struct {
	Day    int
	Hour   int
	Minute int
}

// Minutes returns the absolute number of minutes since day zero.
func (t GameTime) Minutes() int {
	return t.Day*minutesPerDay + t.Hour*60 + t.Minute
}

// DayOfWeek returns 0 for Sunday through 6 for Saturday.
func (t GameTime) DayOfWeek() int {
	return dayOfWeek(t.Day)
}

func dayOfWeek(day int) int {
	return ((day % daysPerWeek) + daysPerWeek) % daysPerWeek
}

func dayOfYear(day int) int {
	return ((day % daysPerYear) + daysPerYear) % daysPerYear
}

// Status is the lifecycle state of a tee time.
type Status string

const (
	StatusAvailable  Status = "available"
	StatusReserved   Status = "reserved"
	StatusCheckedIn  Status = "checked_in"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
	StatusNoShow     Status = "no_show"
)

// IsBooked reports whether the status belongs to the reserved family, the
// statuses whose golfers and revenue count towards daily totals.
func (s Status) IsBooked() bool {
	switch s {
	case StatusReserved, StatusCheckedIn, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// BookingType describes how a tee time was booked.
type BookingType string

const (
	BookingTypeIndividual BookingType = "individual"
	BookingTypeGroup      BookingType = "group"
	BookingTypeCorporate  BookingType = "corporate"
	BookingTypeTournament BookingType = "tournament"
	BookingTypeMember     BookingType = "member"
)

// MembershipType classifies a golfer for booking-window purposes.
type MembershipType string

const (
	MembershipPublic MembershipType = "public"
	MembershipMember MembershipType = "member"
	MembershipGuest  MembershipType = "guest"
)

// AddOn is an optional purchase attached to a golfer booking.
type AddOn struct {
	ID    string
	Name  string
	Price decimal.Decimal
}

// GolferBooking is one golfer within a tee time group.
type GolferBooking struct {
	GolferID       string
	Name           string
	MembershipType MembershipType
	GreenFee       decimal.Decimal
	CartFee        decimal.Decimal
	AddOns         []AddOn
}

// Total returns green fee plus cart fee plus every add-on price.
func (g GolferBooking) Total() decimal.Decimal {
	total := g.GreenFee.Add(g.CartFee)
	for _, addOn := range g.AddOns {
		total = total.Add(addOn.Price)
	}
	return total
}

// TeeTime is a single bookable slot. Values reachable from a State are
// shared between state versions and must be treated as read-only.
type TeeTime struct {
	ID              string
	Time            GameTime
	Status          Status
	BookingType     BookingType
	Golfers         []GolferBooking
	PricePerGolfer  decimal.Decimal
	TotalRevenue    decimal.Decimal
	BookedAt        *GameTime
	ActualStartTime *GameTime
	CompletionTime  *GameTime
	CheckedIn       bool
	RoundCompleted  bool
	GroupSize       int
}

// BookingWindowConfig bounds how far ahead golfers may book and what
// cancellations and no-shows cost.
type BookingWindowConfig struct {
	MaxAdvanceDaysPublic  int
	MaxAdvanceDaysMembers int
	FreeCancellationHours int
	LateCancelPenalty     float64
	NoShowPenalty         float64
}

// DefaultBookingWindowConfig returns the booking window used by new states.
func DefaultBookingWindowConfig() BookingWindowConfig {
	return BookingWindowConfig{
		MaxAdvanceDaysPublic:  7,
		MaxAdvanceDaysMembers: 14,
		FreeCancellationHours: 24,
		LateCancelPenalty:     0.5,
		NoShowPenalty:         1.0,
	}
}

// BookingMetrics counts booking activity for the current day.
type BookingMetrics struct {
	TotalBookingsToday     int
	CancellationsToday     int
	NoShowsToday           int
	LateCancellationsToday int
}
