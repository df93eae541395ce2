package teetime

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/shopspring/decimal"
)

// DefaultBaseDemand is the demand level before any multiplier applies.
const DefaultBaseDemand = 0.5

// Indexed by day of week, 0 = Sunday.
var dayOfWeekDemand = [daysPerWeek]float64{1.3, 0.6, 0.7, 0.8, 0.9, 1.2, 1.4}

// WeatherCondition is the forecast supplied by the weather subsystem.
type WeatherCondition string

const (
	WeatherPerfect WeatherCondition = "perfect"
	WeatherGood    WeatherCondition = "good"
	WeatherFair    WeatherCondition = "fair"
	WeatherPoor    WeatherCondition = "poor"
	WeatherBad     WeatherCondition = "bad"
)

var weatherDemand = map[WeatherCondition]float64{
	WeatherPerfect: 1.3,
	WeatherGood:    1.1,
	WeatherFair:    0.9,
	WeatherPoor:    0.6,
	WeatherBad:     0.3,
}

// ParseWeather resolves a weather condition by name.
func ParseWeather(value string) (WeatherCondition, bool) {
	condition := WeatherCondition(value)
	_, ok := weatherDemand[condition]
	return condition, ok
}

// DemandFactors are the contextual inputs of the demand model.
type DemandFactors struct {
	BaseDemand     float64
	Weather        WeatherCondition
	PrestigeScore  float64
	PricingRatio   float64
	MarketingBonus float64
}

// DefaultDemandFactors returns neutral factors: fair pricing, no marketing,
// middling prestige and good weather.
func DefaultDemandFactors() DemandFactors {
	return DemandFactors{
		BaseDemand:    DefaultBaseDemand,
		Weather:       WeatherGood,
		PrestigeScore: 500,
		PricingRatio:  1.0,
	}
}

// ReservationDemand breaks a slot's booking probability into its factors.
type ReservationDemand struct {
	TeeTimeID           string
	BaseDemand          float64
	DayOfWeekMultiplier float64
	TimeOfDayMultiplier float64
	SeasonMultiplier    float64
	WeatherMultiplier   float64
	PrestigeMultiplier  float64
	PricingMultiplier   float64
	MarketingBonus      float64
	FinalDemand         float64
	BookingProbability  float64
}

// CalculateSlotDemand computes the booking probability of slot on day.
func CalculateSlotDemand(slot *TeeTime, day int, factors DemandFactors) ReservationDemand {
	base := factors.BaseDemand
	if base <= 0 {
		base = DefaultBaseDemand
	}

	demand := ReservationDemand{
		TeeTimeID:           slot.ID,
		BaseDemand:          base,
		DayOfWeekMultiplier: dayOfWeekDemand[dayOfWeek(day)],
		TimeOfDayMultiplier: timeOfDayMultiplier(slot.Time.Hour),
		SeasonMultiplier:    seasonMultiplier(day),
		WeatherMultiplier:   weatherMultiplier(factors.Weather),
		PrestigeMultiplier:  0.5 + factors.PrestigeScore/1000,
		PricingMultiplier:   pricingMultiplier(factors.PricingRatio),
		MarketingBonus:      factors.MarketingBonus,
	}
	demand.FinalDemand = base *
		demand.DayOfWeekMultiplier *
		demand.TimeOfDayMultiplier *
		demand.SeasonMultiplier *
		demand.WeatherMultiplier *
		demand.PrestigeMultiplier *
		demand.PricingMultiplier *
		(1.0 + factors.MarketingBonus)
	demand.BookingProbability = clamp(demand.FinalDemand, 0, 1)
	return demand
}

func timeOfDayMultiplier(hour int) float64 {
	switch {
	case hour < 7:
		return 0.6
	case hour < 11:
		return 1.4
	case hour < 13:
		return 1.1
	case hour < 15:
		return 0.9
	case hour < 17:
		return 0.7
	}
	return 0.5
}

func seasonMultiplier(day int) float64 {
	switch SeasonForDay(day) {
	case SeasonSummer:
		return 1.2
	case SeasonWinter:
		return 0.6
	}
	return 1.0
}

func weatherMultiplier(condition WeatherCondition) float64 {
	if m, ok := weatherDemand[condition]; ok {
		return m
	}
	return 1.0
}

func pricingMultiplier(ratio float64) float64 {
	if ratio <= 1 {
		return 1.0
	}
	return math.Max(0.3, 1.5-ratio*0.5)
}

// SelectGroupSize maps a uniform draw in [0,1) to a group size: 5% singles,
// 10% pairs, 15% threesomes, 70% foursomes.
func SelectGroupSize(r float64) int {
	switch {
	case r < 0.05:
		return 1
	case r < 0.15:
		return 2
	case r < 0.30:
		return 3
	}
	return 4
}

// SimulationResult is the outcome of one simulated day of organic bookings.
// It is not part of any state until ApplyBookingSimulation folds it in.
type SimulationResult struct {
	TargetDay   int
	NewBookings []*TeeTime
	NewRevenue  decimal.Decimal
}

// SimulateDailyBookings draws one value per available slot of targetDay and
// books the slot when the draw falls below its booking probability. A second
// draw picks the group size. The state is not modified; random defaults to
// math/rand/v2 when nil.
func SimulateDailyBookings(state *State, targetDay, currentDay int, factors DemandFactors, greenFee, cartFee decimal.Decimal, random func() float64) SimulationResult {
	if random == nil {
		random = rand.Float64
	}

	slots, ok := state.cache.Get(targetDay)
	if !ok {
		slots = GenerateDailySlots(targetDay, state.Spacing, state.Hours)
	}

	result := SimulationResult{TargetDay: targetDay, NewRevenue: decimal.Zero}
	bookedAt := GameTime{Day: currentDay}
	for _, slot := range slots {
		if slot.Status != StatusAvailable {
			continue
		}
		demand := CalculateSlotDemand(slot, targetDay, factors)
		if random() >= demand.BookingProbability {
			continue
		}

		size := SelectGroupSize(random())
		golfers := make([]GolferBooking, size)
		for i := range golfers {
			golfers[i] = GolferBooking{
				GolferID:       fmt.Sprintf("sim-%s-%d", slot.ID, i+1),
				Name:           fmt.Sprintf("Guest %d", i+1),
				MembershipType: MembershipPublic,
				GreenFee:       greenFee,
				CartFee:        cartFee,
			}
		}
		bookingType := BookingTypeGroup
		if size == 1 {
			bookingType = BookingTypeIndividual
		}

		total := greenFee.Add(cartFee).Mul(decimal.NewFromInt(int64(size)))
		booked := *slot
		booked.Status = StatusReserved
		booked.BookingType = bookingType
		booked.Golfers = golfers
		booked.GroupSize = size
		booked.TotalRevenue = total
		booked.PricePerGolfer = total.Div(decimal.NewFromInt(int64(size)))
		booked.BookedAt = timePtr(bookedAt)

		result.NewBookings = append(result.NewBookings, &booked)
		result.NewRevenue = result.NewRevenue.Add(total)
	}
	return result
}

// ApplyBookingSimulation folds a simulation result into a new state. Only
// slots that are still available are replaced; the daily booking counter
// grows by the number applied. When nothing applies the receiver is returned.
func (s *State) ApplyBookingSimulation(result SimulationResult) *State {
	if len(result.NewBookings) == 0 {
		return s
	}

	current := s.TeeTimes(result.TargetDay)
	positions := make(map[string]int, len(current))
	for i, slot := range current {
		positions[slot.ID] = i
	}

	var slots []*TeeTime
	applied := 0
	for _, booked := range result.NewBookings {
		pos, ok := positions[booked.ID]
		if !ok || current[pos].Status != StatusAvailable {
			continue
		}
		if slots == nil {
			slots = make([]*TeeTime, len(current))
			copy(slots, current)
		}
		slots[pos] = booked
		applied++
	}
	if applied == 0 {
		return s
	}

	next := *s
	next.cache = s.cache.withDay(result.TargetDay, slots)
	next.Metrics.TotalBookingsToday += applied
	return &next
}

// CanBookAhead reports whether a golfer may book targetDay on currentDay
// under the booking window.
func CanBookAhead(cfg BookingWindowConfig, targetDay, currentDay int, member bool) bool {
	ahead := targetDay - currentDay
	if ahead < 0 {
		return false
	}
	if member {
		return ahead <= cfg.MaxAdvanceDaysMembers
	}
	return ahead <= cfg.MaxAdvanceDaysPublic
}

// IsLateCancellation reports whether cancelling at current falls inside the
// free-cancellation horizon before teeTime.
func IsLateCancellation(teeTime, current GameTime, cfg BookingWindowConfig) bool {
	minutesUntil := teeTime.Minutes() - current.Minutes()
	return minutesUntil < cfg.FreeCancellationHours*60
}

// CalculateCancellationPenalty returns the revenue forfeited by a late
// cancellation, or zero when the cancellation is free.
func CalculateCancellationPenalty(revenue decimal.Decimal, teeTime, current GameTime, cfg BookingWindowConfig) decimal.Decimal {
	if !IsLateCancellation(teeTime, current, cfg) {
		return decimal.Zero
	}
	return revenue.Mul(decimal.NewFromFloat(cfg.LateCancelPenalty))
}

// CalculateNoShowPenalty returns the revenue charged for a no-show.
func CalculateNoShowPenalty(revenue decimal.Decimal, cfg BookingWindowConfig) decimal.Decimal {
	return revenue.Mul(decimal.NewFromFloat(cfg.NoShowPenalty))
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}
