package teetime

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// TeeTimeID builds the externally visible slot identifier tt-<day>-<HH><MM>.
func TeeTimeID(t GameTime) string {
	return fmt.Sprintf("tt-%d-%02d%02d", t.Day, t.Hour, t.Minute)
}

// ParseTeeTimeID splits a slot identifier back into its game time.
func ParseTeeTimeID(id string) (GameTime, bool) {
	rest, ok := strings.CutPrefix(id, "tt-")
	if !ok {
		return GameTime{}, false
	}
	sep := strings.LastIndexByte(rest, '-')
	if sep <= 0 || len(rest)-sep-1 != 4 {
		return GameTime{}, false
	}
	day, err := strconv.Atoi(rest[:sep])
	if err != nil {
		return GameTime{}, false
	}
	hour, err := strconv.Atoi(rest[sep+1 : sep+3])
	if err != nil {
		return GameTime{}, false
	}
	minute, err := strconv.Atoi(rest[sep+3:])
	if err != nil {
		return GameTime{}, false
	}
	return GameTime{Day: day, Hour: hour, Minute: minute}, true
}

// GenerateDailySlots returns the ordered available slots of day, one every
// spacing.MinutesBetween minutes from opening to the last tee time inclusive.
func GenerateDailySlots(day int, spacing SpacingConfiguration, hours OperatingHours) []*TeeTime {
	window := hours.WindowForDay(day)
	if spacing.MinutesBetween <= 0 || window.LastTeeTime < window.Open {
		return []*TeeTime{}
	}

	start := window.Open * 60
	end := window.LastTeeTime * 60
	slots := make([]*TeeTime, 0, (end-start)/spacing.MinutesBetween+1)
	for minute := start; minute <= end; minute += spacing.MinutesBetween {
		t := GameTime{Day: day, Hour: minute / 60, Minute: minute % 60}
		slots = append(slots, &TeeTime{
			ID:          TeeTimeID(t),
			Time:        t,
			Status:      StatusAvailable,
			BookingType: BookingTypeIndividual,
		})
	}
	return slots
}

// CalculateMaxDailySlots derives the number of slots GenerateDailySlots
// would produce for the same inputs without generating them.
func CalculateMaxDailySlots(spacing SpacingConfiguration, hours OperatingHours, day int) int {
	return slotsInWindow(spacing, hours.WindowForDay(day))
}

func slotsInWindow(spacing SpacingConfiguration, window HoursWindow) int {
	if spacing.MinutesBetween <= 0 || window.LastTeeTime < window.Open {
		return 0
	}
	operatingMinutes := (window.LastTeeTime - window.Open) * 60
	return operatingMinutes/spacing.MinutesBetween + 1
}

// SlotCache holds the generated slots of each day. A day is written at most
// once per cache; later reads return the identical slice. Replacing a day
// produces a new cache through withDay and never touches the receiver.
type SlotCache struct {
	mu   sync.RWMutex
	days map[int]*daySheet
}

// daySheet is immutable once installed in a cache.
type daySheet struct {
	slots []*TeeTime
	index map[string]int
}

func newDaySheet(slots []*TeeTime) *daySheet {
	index := make(map[string]int, len(slots))
	for i, slot := range slots {
		index[slot.ID] = i
	}
	return &daySheet{slots: slots, index: index}
}

// NewSlotCache returns an empty cache.
func NewSlotCache() *SlotCache {
	return &SlotCache{days: make(map[int]*daySheet)}
}

// Get returns the cached slots of day without generating them.
func (c *SlotCache) Get(day int) ([]*TeeTime, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	sheet, ok := c.days[day]
	if !ok {
		return nil, false
	}
	return sheet.slots, true
}

// GetOrGenerate returns the cached slots of day, generating and installing
// them first when the day has not been seen.
func (c *SlotCache) GetOrGenerate(day int, generate func() []*TeeTime) []*TeeTime {
	if slots, ok := c.Get(day); ok {
		return slots
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if sheet, ok := c.days[day]; ok {
		return sheet.slots
	}
	sheet := newDaySheet(generate())
	c.days[day] = sheet
	return sheet.slots
}

// Days returns the cached day numbers in ascending order.
func (c *SlotCache) Days() []int {
	c.mu.RLock()
	days := make([]int, 0, len(c.days))
	for day := range c.days {
		days = append(days, day)
	}
	c.mu.RUnlock()
	sort.Ints(days)
	return days
}

// Len reports how many days are cached.
func (c *SlotCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.days)
}

// locate finds a slot by id. The day encoded in the id is tried first; the
// remaining days are scanned when the id does not follow the usual format.
func (c *SlotCache) locate(id string) (day, pos int, ok bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if t, parsed := ParseTeeTimeID(id); parsed {
		if sheet, found := c.days[t.Day]; found {
			if i, hit := sheet.index[id]; hit {
				return t.Day, i, true
			}
		}
	}
	for d, sheet := range c.days {
		if i, hit := sheet.index[id]; hit {
			return d, i, true
		}
	}
	return 0, 0, false
}

// fork returns a cache sharing every installed day with the receiver.
func (c *SlotCache) fork() *SlotCache {
	c.mu.RLock()
	defer c.mu.RUnlock()
	days := make(map[int]*daySheet, len(c.days)+1)
	for day, sheet := range c.days {
		days[day] = sheet
	}
	return &SlotCache{days: days}
}

// withDay returns a fork whose entry for day is replaced by slots. The id
// index of the previous sheet is reused when the ids line up.
func (c *SlotCache) withDay(day int, slots []*TeeTime) *SlotCache {
	next := c.fork()
	if prev, ok := next.days[day]; ok && sameIDs(prev.slots, slots) {
		next.days[day] = &daySheet{slots: slots, index: prev.index}
		return next
	}
	next.days[day] = newDaySheet(slots)
	return next
}

func sameIDs(a, b []*TeeTime) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ID != b[i].ID {
			return false
		}
	}
	return true
}
