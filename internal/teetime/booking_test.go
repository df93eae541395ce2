package teetime

import (
	"testing"

	"github.com/shopspring/decimal"
)

func golfer(greenFee, cartFee int64, addOns ...int64) GolferBooking {
	g := GolferBooking{
		GolferID:       "golfer",
		Name:           "Test Golfer",
		MembershipType: MembershipPublic,
		GreenFee:       decimal.NewFromInt(greenFee),
		CartFee:        decimal.NewFromInt(cartFee),
	}
	for i, price := range addOns {
		g.AddOns = append(g.AddOns, AddOn{ID: string(rune('a' + i)), Name: "add-on", Price: decimal.NewFromInt(price)})
	}
	return g
}

func bookedState(t *testing.T) (*State, string) {
	t.Helper()
	state := NewState(SpacingStandard)
	state.TeeTimes(75)
	id := "tt-75-0600"
	next := state.Book(id, []GolferBooking{golfer(50, 20)}, BookingTypeIndividual, GameTime{Day: 74, Hour: 9})
	if next == state {
		t.Fatalf("expected booking to succeed")
	}
	return next, id
}

func TestStateBook(t *testing.T) {
	t.Parallel()

	t.Run("books a single golfer", func(t *testing.T) {
		t.Parallel()
		state, id := bookedState(t)
		slot, _ := state.TeeTimeByID(id)
		if slot.Status != StatusReserved {
			t.Fatalf("expected reserved, got %s", slot.Status)
		}
		if slot.GroupSize != 1 {
			t.Fatalf("expected group size 1, got %d", slot.GroupSize)
		}
		if !slot.TotalRevenue.Equal(decimal.NewFromInt(70)) {
			t.Fatalf("expected revenue 70, got %s", slot.TotalRevenue)
		}
		if slot.BookedAt == nil || *slot.BookedAt != (GameTime{Day: 74, Hour: 9}) {
			t.Fatalf("expected booked-at timestamp, got %v", slot.BookedAt)
		}
		if state.Metrics.TotalBookingsToday != 1 {
			t.Fatalf("expected one booking counted, got %d", state.Metrics.TotalBookingsToday)
		}
	})

	t.Run("books a foursome", func(t *testing.T) {
		t.Parallel()
		state := NewState(SpacingStandard)
		state.TeeTimes(75)
		golfers := []GolferBooking{golfer(50, 20), golfer(50, 20), golfer(50, 20), golfer(50, 20)}
		next := state.Book("tt-75-0700", golfers, BookingTypeGroup, GameTime{Day: 70})
		slot, _ := next.TeeTimeByID("tt-75-0700")
		if !slot.TotalRevenue.Equal(decimal.NewFromInt(280)) {
			t.Fatalf("expected revenue 280, got %s", slot.TotalRevenue)
		}
		if !slot.PricePerGolfer.Equal(decimal.NewFromInt(70)) {
			t.Fatalf("expected price per golfer 70, got %s", slot.PricePerGolfer)
		}
		if slot.BookingType != BookingTypeGroup || slot.GroupSize != len(slot.Golfers) {
			t.Fatalf("unexpected booking %+v", slot)
		}
	})

	t.Run("revenue includes add-ons", func(t *testing.T) {
		t.Parallel()
		state := NewState(SpacingStandard)
		state.TeeTimes(75)
		golfers := []GolferBooking{golfer(60, 20, 15, 5), golfer(60, 0)}
		next := state.Book("tt-75-0800", golfers, BookingTypeGroup, GameTime{Day: 70})
		slot, _ := next.TeeTimeByID("tt-75-0800")

		want := decimal.Zero
		for _, g := range slot.Golfers {
			want = want.Add(g.GreenFee).Add(g.CartFee)
			for _, addOn := range g.AddOns {
				want = want.Add(addOn.Price)
			}
		}
		if !slot.TotalRevenue.Equal(want) || !want.Equal(decimal.NewFromInt(160)) {
			t.Fatalf("expected revenue %s, got %s", want, slot.TotalRevenue)
		}
		if !slot.PricePerGolfer.Equal(decimal.NewFromInt(80)) {
			t.Fatalf("expected price per golfer 80, got %s", slot.PricePerGolfer)
		}
	})

	t.Run("keeps the identity of untouched slots and days", func(t *testing.T) {
		t.Parallel()
		state := NewState(SpacingStandard)
		before75 := state.TeeTimes(75)
		before76 := state.TeeTimes(76)

		next := state.Book("tt-75-0610", []GolferBooking{golfer(50, 20)}, BookingTypeIndividual, GameTime{Day: 74})
		after75 := next.TeeTimes(75)
		if sameSlice(before75, after75) {
			t.Fatalf("expected the booked day to be replaced")
		}
		if !sameSlice(before76, next.TeeTimes(76)) {
			t.Fatalf("expected other days to keep their identity")
		}
		for i := range before75 {
			if i == 1 {
				if before75[i] == after75[i] {
					t.Fatalf("expected booked slot to be a new value")
				}
				continue
			}
			if before75[i] != after75[i] {
				t.Fatalf("expected slot %d to keep its identity", i)
			}
		}
		if before75[1].Status != StatusAvailable {
			t.Fatalf("expected the original slot to stay available")
		}
	})

	t.Run("does not alias the caller's golfer slice", func(t *testing.T) {
		t.Parallel()
		state := NewState(SpacingStandard)
		state.TeeTimes(75)
		golfers := []GolferBooking{golfer(50, 20, 10)}
		next := state.Book("tt-75-0600", golfers, BookingTypeIndividual, GameTime{Day: 74})
		golfers[0].Name = "changed"
		golfers[0].AddOns[0].Price = decimal.NewFromInt(999)

		slot, _ := next.TeeTimeByID("tt-75-0600")
		if slot.Golfers[0].Name == "changed" || !slot.Golfers[0].AddOns[0].Price.Equal(decimal.NewFromInt(10)) {
			t.Fatalf("expected booking to hold its own copy of the golfers")
		}
	})
}

func TestStateLifecycle(t *testing.T) {
	t.Parallel()

	t.Run("walks a slot through to completion", func(t *testing.T) {
		t.Parallel()
		state, id := bookedState(t)

		state = state.CheckIn(id)
		slot, _ := state.TeeTimeByID(id)
		if slot.Status != StatusCheckedIn || !slot.CheckedIn {
			t.Fatalf("expected checked in, got %+v", slot)
		}

		start := GameTime{Day: 75, Hour: 6, Minute: 3}
		state = state.StartRound(id, start)
		slot, _ = state.TeeTimeByID(id)
		if slot.Status != StatusInProgress || slot.ActualStartTime == nil || *slot.ActualStartTime != start {
			t.Fatalf("expected in progress with start time, got %+v", slot)
		}

		done := GameTime{Day: 75, Hour: 10, Minute: 15}
		state = state.CompleteRound(id, done)
		slot, _ = state.TeeTimeByID(id)
		if slot.Status != StatusCompleted || !slot.RoundCompleted || *slot.CompletionTime != done {
			t.Fatalf("expected completed, got %+v", slot)
		}
		if !slot.TotalRevenue.Equal(decimal.NewFromInt(70)) || slot.GroupSize != 1 {
			t.Fatalf("expected booking data to survive the lifecycle, got %+v", slot)
		}
	})

	t.Run("cancel clears golfers and revenue", func(t *testing.T) {
		t.Parallel()
		state, id := bookedState(t)
		next := state.Cancel(id)
		slot, _ := next.TeeTimeByID(id)
		if slot.Status != StatusCancelled {
			t.Fatalf("expected cancelled, got %s", slot.Status)
		}
		if len(slot.Golfers) != 0 || slot.GroupSize != 0 || !slot.TotalRevenue.IsZero() || !slot.PricePerGolfer.IsZero() {
			t.Fatalf("expected booking data to be cleared, got %+v", slot)
		}
		if next.Metrics.CancellationsToday != 1 {
			t.Fatalf("expected one cancellation counted, got %d", next.Metrics.CancellationsToday)
		}
		original, _ := state.TeeTimeByID(id)
		if original.Status != StatusReserved || original.GroupSize != 1 {
			t.Fatalf("expected previous state to keep the reservation")
		}
	})

	t.Run("no-show keeps golfers and revenue", func(t *testing.T) {
		t.Parallel()
		state, id := bookedState(t)
		next := state.MarkNoShow(id)
		slot, _ := next.TeeTimeByID(id)
		if slot.Status != StatusNoShow {
			t.Fatalf("expected no_show, got %s", slot.Status)
		}
		if len(slot.Golfers) != 1 || slot.GroupSize != 1 || !slot.TotalRevenue.Equal(decimal.NewFromInt(70)) {
			t.Fatalf("expected booking data to be retained, got %+v", slot)
		}
		if next.Metrics.NoShowsToday != 1 {
			t.Fatalf("expected one no-show counted, got %d", next.Metrics.NoShowsToday)
		}
	})
}

func TestStateIllegalTransitionsAreNoOps(t *testing.T) {
	t.Parallel()

	available := NewState(SpacingStandard)
	available.TeeTimes(75)
	reserved, id := bookedState(t)
	completed := reserved.CheckIn(id).StartRound(id, GameTime{Day: 75, Hour: 6}).CompleteRound(id, GameTime{Day: 75, Hour: 10})
	cancelled := reserved.Cancel(id)
	noShow := reserved.MarkNoShow(id)

	g := []GolferBooking{golfer(50, 20)}
	at := GameTime{Day: 75}

	cases := []struct {
		name  string
		state *State
		op    func(*State) *State
	}{
		{"book with no golfers", available, func(s *State) *State { return s.Book("tt-75-0600", nil, BookingTypeIndividual, at) }},
		{"book unknown id", available, func(s *State) *State { return s.Book("tt-99-0600", g, BookingTypeIndividual, at) }},
		{"book reserved slot", reserved, func(s *State) *State { return s.Book(id, g, BookingTypeIndividual, at) }},
		{"check in available slot", available, func(s *State) *State { return s.CheckIn("tt-75-0600") }},
		{"start reserved round", reserved, func(s *State) *State { return s.StartRound(id, at) }},
		{"complete reserved round", reserved, func(s *State) *State { return s.CompleteRound(id, at) }},
		{"cancel available slot", available, func(s *State) *State { return s.Cancel("tt-75-0600") }},
		{"no-show available slot", available, func(s *State) *State { return s.MarkNoShow("tt-75-0600") }},
		{"cancel completed round", completed, func(s *State) *State { return s.Cancel(id) }},
		{"check in completed round", completed, func(s *State) *State { return s.CheckIn(id) }},
		{"book cancelled slot", cancelled, func(s *State) *State { return s.Book(id, g, BookingTypeIndividual, at) }},
		{"check in cancelled slot", cancelled, func(s *State) *State { return s.CheckIn(id) }},
		{"cancel no-show", noShow, func(s *State) *State { return s.Cancel(id) }},
		{"check in no-show", noShow, func(s *State) *State { return s.CheckIn(id) }},
		{"unknown id", reserved, func(s *State) *State { return s.CheckIn("missing") }},
	}
	for _, tc := range cases {
		if got := tc.op(tc.state); got != tc.state {
			t.Fatalf("%s: expected the input state to be returned unchanged", tc.name)
		}
	}
}
