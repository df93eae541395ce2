package application

import (
	"fmt"
	"strings"

	"github.com/example/teetime-engine/internal/teetime"
)

const maxGroupSize = 4

var bookingTypes = map[teetime.BookingType]struct{}{
	teetime.BookingTypeIndividual: {},
	teetime.BookingTypeGroup:      {},
	teetime.BookingTypeCorporate:  {},
	teetime.BookingTypeTournament: {},
	teetime.BookingTypeMember:     {},
}

var membershipTypes = map[teetime.MembershipType]struct{}{
	teetime.MembershipPublic: {},
	teetime.MembershipMember: {},
	teetime.MembershipGuest:  {},
}

func validateBookParams(params BookParams) *ValidationError {
	vErr := &ValidationError{}
	if strings.TrimSpace(params.TeeTimeID) == "" {
		vErr.add("tee_time_id", "tee time id is required")
	}
	if params.BookingType != "" {
		if _, ok := bookingTypes[params.BookingType]; !ok {
			vErr.add("booking_type", fmt.Sprintf("unknown booking type %q", params.BookingType))
		}
	}
	if n := len(params.Golfers); n == 0 || n > maxGroupSize {
		vErr.add("golfers", fmt.Sprintf("a group has 1 to %d golfers", maxGroupSize))
		return vErr
	}

	seen := make(map[string]struct{}, len(params.Golfers))
	for i, golfer := range params.Golfers {
		vErr.merge(validateGolfer(i, golfer, seen))
	}
	return vErr
}

func validateGolfer(index int, golfer teetime.GolferBooking, seen map[string]struct{}) *ValidationError {
	vErr := &ValidationError{}
	field := func(name string) string { return fmt.Sprintf("golfers[%d].%s", index, name) }

	id := strings.TrimSpace(golfer.GolferID)
	switch {
	case id == "":
		vErr.add(field("golfer_id"), "golfer id is required")
	default:
		if _, dup := seen[id]; dup {
			vErr.add(field("golfer_id"), "golfer is already in the group")
		}
		seen[id] = struct{}{}
	}

	if golfer.MembershipType != "" {
		if _, ok := membershipTypes[golfer.MembershipType]; !ok {
			vErr.add(field("membership_type"), fmt.Sprintf("unknown membership type %q", golfer.MembershipType))
		}
	}
	if golfer.GreenFee.IsNegative() {
		vErr.add(field("green_fee"), "must not be negative")
	}
	if golfer.CartFee.IsNegative() {
		vErr.add(field("cart_fee"), "must not be negative")
	}
	for j, addOn := range golfer.AddOns {
		if addOn.Price.IsNegative() {
			vErr.add(field(fmt.Sprintf("add_ons[%d].price", j)), "must not be negative")
		}
	}
	return vErr
}

func validateOperatingHours(hours teetime.OperatingHours) *ValidationError {
	vErr := &ValidationError{}
	windows := []struct {
		name   string
		window teetime.HoursWindow
	}{
		{"hours", teetime.HoursWindow{Open: hours.Open, Close: hours.Close, LastTeeTime: hours.LastTeeTime}},
		{"summer", hours.Summer},
		{"winter", hours.Winter},
	}
	for _, w := range windows {
		if w.window.Open < 0 || w.window.Close > 24 {
			vErr.add(w.name, "hours must fall within 0 and 24")
			continue
		}
		if w.window.Open > w.window.LastTeeTime || w.window.LastTeeTime > w.window.Close {
			vErr.add(w.name, "open <= last tee time <= close must hold")
		}
	}
	if hours.TwilightStart < 0 || hours.TwilightStart > 24 {
		vErr.add("twilight_start", "must fall within 0 and 24")
	}
	return vErr
}

func validateBookingConfig(cfg teetime.BookingWindowConfig) *ValidationError {
	vErr := &ValidationError{}
	if cfg.MaxAdvanceDaysPublic < 0 {
		vErr.add("max_advance_days_public", "must not be negative")
	}
	if cfg.MaxAdvanceDaysMembers < cfg.MaxAdvanceDaysPublic {
		vErr.add("max_advance_days_members", "must be at least the public window")
	}
	if cfg.FreeCancellationHours < 0 {
		vErr.add("free_cancellation_hours", "must not be negative")
	}
	if cfg.LateCancelPenalty < 0 || cfg.LateCancelPenalty > 1 {
		vErr.add("late_cancel_penalty", "must be a fraction between 0 and 1")
	}
	if cfg.NoShowPenalty < 0 || cfg.NoShowPenalty > 1 {
		vErr.add("no_show_penalty", "must be a fraction between 0 and 1")
	}
	return vErr
}
