package testfixtures

import (
	"sync"
	"time"

	"github.com/example/teetime-engine/internal/teetime"
)

var referenceTime = time.Date(2024, time.March, 15, 6, 0, 0, 0, time.UTC)

// ReferenceTime returns the canonical wall-clock instant used by fixtures.
func ReferenceTime() time.Time {
	return referenceTime
}

// Clock provides a controllable wall-clock source for ledger timestamps.
type Clock struct {
	mu      sync.Mutex
	current time.Time
}

// NewClock returns a clock at start, or at ReferenceTime when start is zero.
func NewClock(start time.Time) *Clock {
	if start.IsZero() {
		start = ReferenceTime()
	}
	return &Clock{current: start}
}

// Now returns the current instant tracked by the clock.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// NowFunc exposes Now as a function suitable for dependency injection.
func (c *Clock) NowFunc() func() time.Time {
	if c == nil {
		return time.Now
	}
	return c.Now
}

// Advance moves the clock forward by d and returns the updated time.
func (c *Clock) Advance(d time.Duration) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = c.current.Add(d)
	return c.current
}

// GameClock steps through simulated game time for round transitions.
type GameClock struct {
	mu      sync.Mutex
	current teetime.GameTime
}

// NewGameClock returns a game clock at start.
func NewGameClock(start teetime.GameTime) *GameClock {
	return &GameClock{current: start}
}

// Now returns the current game time.
func (c *GameClock) Now() teetime.GameTime {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// AdvanceMinutes moves the clock forward, rolling over into following days.
func (c *GameClock) AdvanceMinutes(minutes int) teetime.GameTime {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := c.current.Minutes() + minutes
	c.current = teetime.GameTime{Day: total / (24 * 60), Hour: total % (24 * 60) / 60, Minute: total % 60}
	return c.current
}
