// Package teetime implements the tee-time scheduling and booking engine.
//
// The package is organized around a copy-on-write State value:
//   - slot generation from spacing presets and seasonal operating hours,
//     memoized per day in a SlotCache;
//   - the booking lifecycle (available, reserved, checked in, in progress,
//     completed, with cancelled and no-show side branches);
//   - a reservation demand model and a simulate/apply pair for organic
//     bookings;
//   - pace-of-play modeling derived from the active spacing;
//   - daily statistics and display formatting.
//
// Lifecycle mutators never fail. An unknown id or an illegal transition
// returns the input *State itself, so callers detect a rejected command by
// comparing pointers. Randomness is injected as a func() float64 returning
// values in [0,1).
package teetime
