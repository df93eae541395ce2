package application

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/example/teetime-engine/internal/persistence"
	"github.com/example/teetime-engine/internal/teetime"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BookingService is the command surface over the tee-time state. It owns
// the latest *teetime.State and replaces it after every accepted command.
// The ledger and summary repositories are optional.
type BookingService struct {
	mu          sync.RWMutex
	state       *teetime.State
	ledger      persistence.LedgerRepository
	summaries   persistence.SummaryRepository
	idGenerator func() string
	now         func() time.Time
	random      func() float64
	runID       string
	previews    *previewCache
	logger      *slog.Logger
}

// NewBookingService constructs a booking service with the provided dependencies.
func NewBookingService(state *teetime.State, ledger persistence.LedgerRepository, summaries persistence.SummaryRepository, idGenerator func() string, now func() time.Time, random func() float64) *BookingService {
	return NewBookingServiceWithLogger(state, ledger, summaries, idGenerator, now, random, nil)
}

// NewBookingServiceWithLogger constructs a booking service with a specified logger.
// A nil state starts a standard-spacing course on day zero; a nil random
// source falls back to math/rand/v2 inside the core.
func NewBookingServiceWithLogger(state *teetime.State, ledger persistence.LedgerRepository, summaries persistence.SummaryRepository, idGenerator func() string, now func() time.Time, random func() float64, logger *slog.Logger) *BookingService {
	if state == nil {
		state = teetime.NewState(teetime.SpacingStandard)
	}
	if idGenerator == nil {
		idGenerator = uuid.NewString
	}
	if now == nil {
		now = time.Now
	}
	return &BookingService{
		state:       state,
		ledger:      ledger,
		summaries:   summaries,
		idGenerator: idGenerator,
		now:         now,
		random:      random,
		runID:       uuid.NewString(),
		previews:    newPreviewCache(defaultPreviewCacheSize, defaultPreviewCacheTTL),
		logger:      defaultLogger(logger),
	}
}

// SetRunID overrides the identifier stamped on ledger entries and summaries.
func (s *BookingService) SetRunID(runID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if runID != "" {
		s.runID = runID
	}
}

// SetPreviewCache replaces the spacing preview cache.
func (s *BookingService) SetPreviewCache(size int, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.previews = newPreviewCache(size, ttl)
}

// RunID returns the identifier stamped on persisted records.
func (s *BookingService) RunID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.runID
}

func (s *BookingService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return operationLogger(ctx, s.logger, operation, attrs...)
}

// State returns the current state. The value must be treated as read-only.
func (s *BookingService) State() *teetime.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// TeeSheet returns the slots of day, generating them on first access.
func (s *BookingService) TeeSheet(day int) []*teetime.TeeTime {
	return s.State().TeeTimes(day)
}

// DailyStats aggregates the slots of day.
func (s *BookingService) DailyStats(day int) teetime.DailyStats {
	return s.State().DailyStats(day)
}

// Book reserves an available tee time for a group of golfers.
func (s *BookingService) Book(ctx context.Context, params BookParams) (teeTime *teetime.TeeTime, err error) {
	if s == nil {
		err = fmt.Errorf("BookingService is nil")
		return
	}

	logger := s.loggerWith(ctx, "Book",
		"tee_time_id", params.TeeTimeID,
		"group_size", len(params.Golfers),
	)
	defer func() {
		if err != nil {
			logFailure(ctx, logger, "failed to book tee time", err)
			return
		}
		logger.With(teeTimeAttrs(teeTime)...).
			InfoContext(ctx, "tee time booked", "revenue", teeTime.TotalRevenue.StringFixed(2))
	}()

	vErr := validateBookParams(params)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var current *teetime.TeeTime
	current, err = s.lookupLocked(params.TeeTimeID)
	if err != nil {
		return
	}

	cfg := s.state.BookingConfig
	if !teetime.CanBookAhead(cfg, current.Time.Day, s.state.CurrentDay, hasMember(params.Golfers)) {
		vErr.add("day", fmt.Sprintf("day %d is outside the booking window from day %d", current.Time.Day, s.state.CurrentDay))
		err = vErr
		return
	}
	if current.Status != teetime.StatusAvailable {
		err = fmt.Errorf("%w: %s is %s", ErrSlotUnavailable, current.ID, current.Status)
		return
	}

	bookingType := params.BookingType
	if bookingType == "" {
		bookingType = defaultBookingType(len(params.Golfers))
	}

	next := s.state.Book(current.ID, params.Golfers, bookingType, s.state.Now())
	if next == s.state {
		err = fmt.Errorf("%w: %s", ErrSlotUnavailable, current.ID)
		return
	}
	teeTime, _ = next.TeeTimeByID(current.ID)

	if err = s.record(ctx, persistence.LedgerActionBook, current, teeTime, decimal.Zero); err != nil {
		return
	}
	s.state = next
	return
}

// CheckIn marks a reserved group as arrived.
func (s *BookingService) CheckIn(ctx context.Context, teeTimeID string) (TransitionResult, error) {
	return s.transition(ctx, "CheckIn", teeTimeID, persistence.LedgerActionCheckIn,
		func(state *teetime.State, slot *teetime.TeeTime) (*teetime.State, decimal.Decimal, bool) {
			return state.CheckIn(slot.ID), decimal.Zero, false
		})
}

// StartRound sends a checked-in group off the first tee at the given time.
func (s *BookingService) StartRound(ctx context.Context, teeTimeID string, at teetime.GameTime) (TransitionResult, error) {
	return s.transition(ctx, "StartRound", teeTimeID, persistence.LedgerActionStartRound,
		func(state *teetime.State, slot *teetime.TeeTime) (*teetime.State, decimal.Decimal, bool) {
			return state.StartRound(slot.ID, at), decimal.Zero, false
		})
}

// CompleteRound finishes a round in progress at the given time.
func (s *BookingService) CompleteRound(ctx context.Context, teeTimeID string, at teetime.GameTime) (TransitionResult, error) {
	return s.transition(ctx, "CompleteRound", teeTimeID, persistence.LedgerActionCompleteRound,
		func(state *teetime.State, slot *teetime.TeeTime) (*teetime.State, decimal.Decimal, bool) {
			return state.CompleteRound(slot.ID, at), decimal.Zero, false
		})
}

// MarkNoShow records a group that never arrived and charges the no-show penalty.
func (s *BookingService) MarkNoShow(ctx context.Context, teeTimeID string) (TransitionResult, error) {
	return s.transition(ctx, "MarkNoShow", teeTimeID, persistence.LedgerActionNoShow,
		func(state *teetime.State, slot *teetime.TeeTime) (*teetime.State, decimal.Decimal, bool) {
			return state.MarkNoShow(slot.ID), teetime.CalculateNoShowPenalty(slot.TotalRevenue, state.BookingConfig), false
		})
}

// Cancel releases a reservation. Cancelling inside the free-cancellation
// horizon is late: it is counted and charged the late-cancellation penalty.
func (s *BookingService) Cancel(ctx context.Context, params CancelParams) (TransitionResult, error) {
	return s.transition(ctx, "Cancel", params.TeeTimeID, persistence.LedgerActionCancel,
		func(state *teetime.State, slot *teetime.TeeTime) (*teetime.State, decimal.Decimal, bool) {
			requestedAt := state.Now()
			if params.RequestedAt != nil {
				requestedAt = *params.RequestedAt
			}
			next := state.Cancel(slot.ID)
			if next == state {
				return state, decimal.Zero, false
			}
			cfg := state.BookingConfig
			if !teetime.IsLateCancellation(slot.Time, requestedAt, cfg) {
				return next, decimal.Zero, false
			}
			penalty := teetime.CalculateCancellationPenalty(slot.TotalRevenue, slot.Time, requestedAt, cfg)
			return next.RecordLateCancellation(), penalty, true
		})
}

type transitionFunc func(state *teetime.State, slot *teetime.TeeTime) (next *teetime.State, penalty decimal.Decimal, late bool)

func (s *BookingService) transition(ctx context.Context, operation, teeTimeID string, action persistence.LedgerAction, apply transitionFunc) (result TransitionResult, err error) {
	if s == nil {
		err = fmt.Errorf("BookingService is nil")
		return
	}

	logger := s.loggerWith(ctx, operation, "tee_time_id", teeTimeID)
	defer func() {
		if err != nil {
			logFailure(ctx, logger, "tee time transition rejected", err)
			return
		}
		logger.With(teeTimeAttrs(result.TeeTime)...).InfoContext(ctx, "tee time transitioned",
			"penalty", result.Penalty.StringFixed(2),
			"late", result.Late,
		)
	}()

	s.mu.Lock()
	defer s.mu.Unlock()

	var current *teetime.TeeTime
	current, err = s.lookupLocked(teeTimeID)
	if err != nil {
		return
	}

	next, penalty, late := apply(s.state, current)
	if next == s.state {
		err = fmt.Errorf("%w: %s is %s", ErrInvalidTransition, current.ID, current.Status)
		return
	}
	updated, _ := next.TeeTimeByID(current.ID)

	if err = s.record(ctx, action, current, updated, penalty); err != nil {
		return
	}
	s.state = next
	result = TransitionResult{TeeTime: updated, Penalty: penalty, Late: late}
	return
}

// lookupLocked finds a tee time by id, generating its day when the id names
// one that has not been read yet.
func (s *BookingService) lookupLocked(id string) (*teetime.TeeTime, error) {
	if at, ok := teetime.ParseTeeTimeID(id); ok && at.Day >= 0 {
		s.state.TeeTimes(at.Day)
	}
	slot, ok := s.state.TeeTimeByID(id)
	if !ok {
		return nil, fmt.Errorf("%w: tee time %q", ErrNotFound, id)
	}
	return slot, nil
}

func (s *BookingService) record(ctx context.Context, action persistence.LedgerAction, before, after *teetime.TeeTime, penalty decimal.Decimal) error {
	if s.ledger == nil {
		return nil
	}
	entry := s.ledgerEntry(action, before.Status, after, penalty)
	if err := s.ledger.RecordEntry(ctx, entry); err != nil {
		return fmt.Errorf("record %s for %s: %w", action, after.ID, err)
	}
	return nil
}

func (s *BookingService) ledgerEntry(action persistence.LedgerAction, from teetime.Status, after *teetime.TeeTime, penalty decimal.Decimal) persistence.LedgerEntry {
	return persistence.LedgerEntry{
		ID:         s.idGenerator(),
		RunID:      s.runID,
		TeeTimeID:  after.ID,
		Day:        after.Time.Day,
		Action:     action,
		FromStatus: string(from),
		ToStatus:   string(after.Status),
		GroupSize:  after.GroupSize,
		Revenue:    after.TotalRevenue,
		Penalty:    penalty,
		RecordedAt: s.now(),
	}
}

func hasMember(golfers []teetime.GolferBooking) bool {
	for _, golfer := range golfers {
		if golfer.MembershipType == teetime.MembershipMember {
			return true
		}
	}
	return false
}

func defaultBookingType(groupSize int) teetime.BookingType {
	if groupSize == 1 {
		return teetime.BookingTypeIndividual
	}
	return teetime.BookingTypeGroup
}
