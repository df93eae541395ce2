package persistence

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerAction names the booking operation a ledger entry records.
type LedgerAction string

const (
	LedgerActionBook          LedgerAction = "book"
	LedgerActionSimulated     LedgerAction = "simulated_booking"
	LedgerActionCheckIn       LedgerAction = "check_in"
	LedgerActionStartRound    LedgerAction = "start_round"
	LedgerActionCompleteRound LedgerAction = "complete_round"
	LedgerActionCancel        LedgerAction = "cancel"
	LedgerActionNoShow        LedgerAction = "no_show"
)

// LedgerEntry is an append-only record of one accepted tee-time transition.
type LedgerEntry struct {
	ID         string
	RunID      string
	TeeTimeID  string
	Day        int
	Action     LedgerAction
	FromStatus string
	ToStatus   string
	GroupSize  int
	Revenue    decimal.Decimal
	Penalty    decimal.Decimal
	RecordedAt time.Time
}

// DailySummary is the persisted outcome of one simulated day.
type DailySummary struct {
	RunID             string
	Day               int
	TotalSlots        int
	BookedSlots       int
	CheckedIn         int
	InProgress        int
	Completed         int
	NoShows           int
	Cancelled         int
	TotalGolfers      int
	NewBookings       int
	Cancellations     int
	LateCancellations int
	TotalRevenue      decimal.Decimal
	NewRevenue        decimal.Decimal
	BookingRate       float64
	PaceRating        string
	RoundTimeHours    float64
	WaitTimeMinutes   float64
	BackupHoles       []int
	CreatedAt         time.Time
}
