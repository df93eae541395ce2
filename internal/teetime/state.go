package teetime

// State is the tee-time system state. Operations never modify a State that
// has been handed out; mutators return a new *State that shares untouched
// days and slots with the receiver, or the receiver itself when nothing
// changed. The per-day slot cache is the one exception: the first read of a
// day installs its generated slots into the receiver's cache.
type State struct {
	Spacing       SpacingConfiguration
	Hours         OperatingHours
	BookingConfig BookingWindowConfig
	CurrentDay    int
	Metrics       BookingMetrics

	cache *SlotCache
}

// NewState creates the initial state for preset. Unknown presets fall back
// to standard spacing.
func NewState(preset SpacingPreset) *State {
	spacing, ok := SpacingConfig(preset)
	if !ok {
		spacing = spacingConfigs[SpacingStandard]
	}
	return &State{
		Spacing:       spacing,
		Hours:         DefaultOperatingHours(),
		BookingConfig: DefaultBookingWindowConfig(),
		cache:         NewSlotCache(),
	}
}

func (s *State) derive() *State {
	next := *s
	next.cache = s.cache.fork()
	return &next
}

// Cache exposes the slot cache backing the state.
func (s *State) Cache() *SlotCache {
	return s.cache
}

// TeeTimes returns the slots of day, generating and caching them on first
// access. Repeated calls on the same state return the identical slice; the
// slice and its slots must not be modified.
func (s *State) TeeTimes(day int) []*TeeTime {
	return s.cache.GetOrGenerate(day, func() []*TeeTime {
		return GenerateDailySlots(day, s.Spacing, s.Hours)
	})
}

// TeeTimeByID returns the slot with id from any cached day.
func (s *State) TeeTimeByID(id string) (*TeeTime, bool) {
	day, pos, ok := s.cache.locate(id)
	if !ok {
		return nil, false
	}
	slots, _ := s.cache.Get(day)
	return slots[pos], true
}

// AvailableSlots returns the slots of day that can still be booked.
func (s *State) AvailableSlots(day int) []*TeeTime {
	return s.filter(day, func(t *TeeTime) bool { return t.Status == StatusAvailable })
}

// BookedSlots returns the slots of day in the reserved family.
func (s *State) BookedSlots(day int) []*TeeTime {
	return s.filter(day, func(t *TeeTime) bool { return t.Status.IsBooked() })
}

func (s *State) filter(day int, keep func(*TeeTime) bool) []*TeeTime {
	slots := s.TeeTimes(day)
	out := make([]*TeeTime, 0, len(slots))
	for _, slot := range slots {
		if keep(slot) {
			out = append(out, slot)
		}
	}
	return out
}

// UpdateSpacing switches to preset. Days already cached keep their slots.
func (s *State) UpdateSpacing(preset SpacingPreset) *State {
	spacing, ok := SpacingConfig(preset)
	if !ok {
		return s
	}
	next := s.derive()
	next.Spacing = spacing
	return next
}

// UpdateOperatingHours replaces the operating hours used for days generated
// from now on.
func (s *State) UpdateOperatingHours(hours OperatingHours) *State {
	next := s.derive()
	next.Hours = hours
	return next
}

// UpdateBookingConfig replaces the booking window configuration.
func (s *State) UpdateBookingConfig(cfg BookingWindowConfig) *State {
	next := s.derive()
	next.BookingConfig = cfg
	return next
}

// ResetDailyMetrics zeroes the daily booking counters.
func (s *State) ResetDailyMetrics() *State {
	next := s.derive()
	next.Metrics = BookingMetrics{}
	return next
}

// RecordLateCancellation counts one late cancellation for today.
func (s *State) RecordLateCancellation() *State {
	next := s.derive()
	next.Metrics.LateCancellationsToday++
	return next
}

// AdvanceDay moves the current day pointer forward by one.
func (s *State) AdvanceDay() *State {
	next := s.derive()
	next.CurrentDay++
	return next
}

// Now returns the start of the current day as a game time.
func (s *State) Now() GameTime {
	return GameTime{Day: s.CurrentDay}
}

// replaceSlot returns a new state whose day holds slot at pos. Every other
// slot and day keeps its identity.
func (s *State) replaceSlot(day, pos int, slot *TeeTime) *State {
	current, _ := s.cache.Get(day)
	slots := make([]*TeeTime, len(current))
	copy(slots, current)
	slots[pos] = slot

	next := *s
	next.cache = s.cache.withDay(day, slots)
	return &next
}
