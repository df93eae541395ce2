package testfixtures

import "sync"

// SequenceRandom replays a fixed list of draws, cycling when it runs out.
// It stands in for the uniform random source the simulation consumes.
type SequenceRandom struct {
	mu     sync.Mutex
	values []float64
	pos    int
	drawn  int
}

// NewSequenceRandom returns a source that yields values in order. With no
// values every draw is zero.
func NewSequenceRandom(values ...float64) *SequenceRandom {
	if len(values) == 0 {
		values = []float64{0}
	}
	return &SequenceRandom{values: append([]float64(nil), values...)}
}

// Float64 returns the next draw.
func (r *SequenceRandom) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	v := r.values[r.pos]
	r.pos = (r.pos + 1) % len(r.values)
	r.drawn++
	return v
}

// Func exposes Float64 for dependency injection.
func (r *SequenceRandom) Func() func() float64 {
	return r.Float64
}

// Drawn reports how many values have been consumed.
func (r *SequenceRandom) Drawn() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.drawn
}
