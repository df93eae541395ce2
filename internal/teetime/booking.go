package teetime

import "github.com/shopspring/decimal"

// transition applies update to the slot with id when its status equals from.
// Unknown ids and status mismatches return the receiver unchanged.
func (s *State) transition(id string, from Status, update func(*TeeTime)) *State {
	day, pos, ok := s.cache.locate(id)
	if !ok {
		return s
	}
	slots, _ := s.cache.Get(day)
	current := slots[pos]
	if current.Status != from {
		return s
	}

	updated := *current
	update(&updated)
	return s.replaceSlot(day, pos, &updated)
}

// Book reserves an available slot for golfers. An empty golfer list, an
// unknown id or a slot that is not available leaves the state unchanged.
func (s *State) Book(id string, golfers []GolferBooking, bookingType BookingType, bookedAt GameTime) *State {
	if len(golfers) == 0 {
		return s
	}

	group := cloneGolfers(golfers)
	total := decimal.Zero
	for _, golfer := range group {
		total = total.Add(golfer.Total())
	}

	next := s.transition(id, StatusAvailable, func(t *TeeTime) {
		t.Status = StatusReserved
		t.BookingType = bookingType
		t.Golfers = group
		t.GroupSize = len(group)
		t.TotalRevenue = total
		t.PricePerGolfer = total.Div(decimal.NewFromInt(int64(len(group))))
		t.BookedAt = timePtr(bookedAt)
	})
	if next != s {
		next.Metrics.TotalBookingsToday++
	}
	return next
}

// CheckIn marks a reserved group as arrived.
func (s *State) CheckIn(id string) *State {
	return s.transition(id, StatusReserved, func(t *TeeTime) {
		t.Status = StatusCheckedIn
		t.CheckedIn = true
	})
}

// StartRound sends a checked-in group off the first tee.
func (s *State) StartRound(id string, actualStart GameTime) *State {
	return s.transition(id, StatusCheckedIn, func(t *TeeTime) {
		t.Status = StatusInProgress
		t.ActualStartTime = timePtr(actualStart)
	})
}

// CompleteRound finishes a round in progress.
func (s *State) CompleteRound(id string, completedAt GameTime) *State {
	return s.transition(id, StatusInProgress, func(t *TeeTime) {
		t.Status = StatusCompleted
		t.RoundCompleted = true
		t.CompletionTime = timePtr(completedAt)
	})
}

// Cancel releases a reservation. Golfers and revenue are discarded.
func (s *State) Cancel(id string) *State {
	next := s.transition(id, StatusReserved, func(t *TeeTime) {
		t.Status = StatusCancelled
		t.Golfers = nil
		t.GroupSize = 0
		t.TotalRevenue = decimal.Zero
		t.PricePerGolfer = decimal.Zero
	})
	if next != s {
		next.Metrics.CancellationsToday++
	}
	return next
}

// MarkNoShow records that a reserved group never arrived. Golfers and
// revenue are kept for the no-show penalty.
func (s *State) MarkNoShow(id string) *State {
	next := s.transition(id, StatusReserved, func(t *TeeTime) {
		t.Status = StatusNoShow
	})
	if next != s {
		next.Metrics.NoShowsToday++
	}
	return next
}

func cloneGolfers(golfers []GolferBooking) []GolferBooking {
	out := make([]GolferBooking, len(golfers))
	for i, golfer := range golfers {
		out[i] = golfer
		if len(golfer.AddOns) > 0 {
			out[i].AddOns = append([]AddOn(nil), golfer.AddOns...)
		}
	}
	return out
}

func timePtr(t GameTime) *GameTime {
	return &t
}
