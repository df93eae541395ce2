package testfixtures

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/example/teetime-engine/internal/persistence"
	"github.com/example/teetime-engine/internal/teetime"
	"github.com/shopspring/decimal"
)

var (
	golferCounter uint64
	entryCounter  uint64
)

// ----------------------------- Golfer fixtures -----------------------------

// GolferOption configures a generated golfer.
type GolferOption func(*teetime.GolferBooking)

// NewGolfer returns a public golfer paying 55 + 15 with optional overrides.
func NewGolfer(opts ...GolferOption) teetime.GolferBooking {
	idx := atomic.AddUint64(&golferCounter, 1)
	golfer := teetime.GolferBooking{
		GolferID:       fmt.Sprintf("golfer-%03d", idx),
		Name:           fmt.Sprintf("Golfer %03d", idx),
		MembershipType: teetime.MembershipPublic,
		GreenFee:       decimal.NewFromInt(55),
		CartFee:        decimal.NewFromInt(15),
	}
	for _, opt := range opts {
		opt(&golfer)
	}
	return golfer
}

// NewGroup returns size golfers built with the same options.
func NewGroup(size int, opts ...GolferOption) []teetime.GolferBooking {
	group := make([]teetime.GolferBooking, size)
	for i := range group {
		group[i] = NewGolfer(opts...)
	}
	return group
}

// WithGolferID overrides the generated golfer id.
func WithGolferID(id string) GolferOption {
	return func(g *teetime.GolferBooking) {
		g.GolferID = id
	}
}

// WithMembership overrides the membership type.
func WithMembership(membership teetime.MembershipType) GolferOption {
	return func(g *teetime.GolferBooking) {
		g.MembershipType = membership
	}
}

// WithFees overrides the green and cart fees.
func WithFees(greenFee, cartFee string) GolferOption {
	return func(g *teetime.GolferBooking) {
		g.GreenFee = decimal.RequireFromString(greenFee)
		g.CartFee = decimal.RequireFromString(cartFee)
	}
}

// WithAddOn appends a purchase to the golfer.
func WithAddOn(name, price string) GolferOption {
	return func(g *teetime.GolferBooking) {
		g.AddOns = append(g.AddOns, teetime.AddOn{
			ID:    fmt.Sprintf("addon-%s-%d", g.GolferID, len(g.AddOns)+1),
			Name:  name,
			Price: decimal.RequireFromString(price),
		})
	}
}

// ------------------------------ Ledger fixtures ------------------------------

// LedgerEntryOption configures a generated ledger entry.
type LedgerEntryOption func(*persistence.LedgerEntry)

// NewLedgerEntry returns a booking entry for the 08:00 slot of day 0.
func NewLedgerEntry(opts ...LedgerEntryOption) persistence.LedgerEntry {
	idx := atomic.AddUint64(&entryCounter, 1)
	entry := persistence.LedgerEntry{
		ID:         fmt.Sprintf("entry-%03d", idx),
		RunID:      "run-fixture",
		TeeTimeID:  "tt-0-0800",
		Day:        0,
		Action:     persistence.LedgerActionBook,
		FromStatus: string(teetime.StatusAvailable),
		ToStatus:   string(teetime.StatusReserved),
		GroupSize:  4,
		Revenue:    decimal.NewFromInt(280),
		Penalty:    decimal.Zero,
		RecordedAt: referenceTime.Add(time.Duration(idx) * time.Second),
	}
	for _, opt := range opts {
		opt(&entry)
	}
	return entry
}

// WithEntryID overrides the generated entry id.
func WithEntryID(id string) LedgerEntryOption {
	return func(e *persistence.LedgerEntry) {
		e.ID = id
	}
}

// WithEntrySlot moves the entry to the slot of day at hour:minute.
func WithEntrySlot(day, hour, minute int) LedgerEntryOption {
	return func(e *persistence.LedgerEntry) {
		e.Day = day
		e.TeeTimeID = teetime.TeeTimeID(teetime.GameTime{Day: day, Hour: hour, Minute: minute})
	}
}

// WithEntryAction overrides the action and status pair.
func WithEntryAction(action persistence.LedgerAction, from, to teetime.Status) LedgerEntryOption {
	return func(e *persistence.LedgerEntry) {
		e.Action = action
		e.FromStatus = string(from)
		e.ToStatus = string(to)
	}
}

// WithEntryRecordedAt overrides the recording time.
func WithEntryRecordedAt(at time.Time) LedgerEntryOption {
	return func(e *persistence.LedgerEntry) {
		e.RecordedAt = at
	}
}

// WithEntryMoney overrides revenue and penalty.
func WithEntryMoney(revenue, penalty string) LedgerEntryOption {
	return func(e *persistence.LedgerEntry) {
		e.Revenue = decimal.RequireFromString(revenue)
		e.Penalty = decimal.RequireFromString(penalty)
	}
}

// ----------------------------- Summary fixtures -----------------------------

// SummaryOption configures a generated daily summary.
type SummaryOption func(*persistence.DailySummary)

// NewDailySummary returns a half-booked standard day.
func NewDailySummary(opts ...SummaryOption) persistence.DailySummary {
	summary := persistence.DailySummary{
		RunID:           "run-fixture",
		Day:             0,
		TotalSlots:      61,
		BookedSlots:     30,
		TotalGolfers:    100,
		NewBookings:     30,
		TotalRevenue:    decimal.NewFromInt(7000),
		NewRevenue:      decimal.NewFromInt(7000),
		BookingRate:     30.0 / 61.0,
		PaceRating:      string(teetime.PaceGood),
		RoundTimeHours:  4.1,
		WaitTimeMinutes: 0.3,
		BackupHoles:     []int{},
		CreatedAt:       referenceTime,
	}
	for _, opt := range opts {
		opt(&summary)
	}
	return summary
}

// WithSummaryRun overrides the run id.
func WithSummaryRun(runID string) SummaryOption {
	return func(s *persistence.DailySummary) {
		s.RunID = runID
	}
}

// WithSummaryDay overrides the day.
func WithSummaryDay(day int) SummaryOption {
	return func(s *persistence.DailySummary) {
		s.Day = day
	}
}

// WithSummaryBackups overrides the backed-up holes.
func WithSummaryBackups(holes ...int) SummaryOption {
	return func(s *persistence.DailySummary) {
		s.BackupHoles = holes
	}
}
