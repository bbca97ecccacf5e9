// Package chance wraps the random source used by the simulation so tests
// can substitute deterministic values.
package chance

import "math/rand"

// Source yields uniformly distributed values in [0,1).
type Source interface {
	Float64() float64
}

// New returns a seeded source. *rand.Rand satisfies Source.
func New(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// Roll reports whether an event with probability p happens.
func Roll(src Source, p float64) bool {
	return src.Float64() < p
}

// Jitter returns a value in [0, max).
func Jitter(src Source, max float64) float64 {
	return src.Float64() * max
}

// Between returns a value in [lo, hi).
func Between(src Source, lo, hi float64) float64 {
	return lo + src.Float64()*(hi-lo)
}

// Intn returns an int in [0, n). n must be positive.
func Intn(src Source, n int) int {
	i := int(src.Float64() * float64(n))
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}

// Pick returns a uniformly chosen element of items. It returns the zero
// value when items is empty.
func Pick[T any](src Source, items []T) T {
	var zero T
	if len(items) == 0 {
		return zero
	}
	return items[Intn(src, len(items))]
}

// Fixed always returns the same value. Fixed(0.99) makes every roll fail,
// Fixed(0) makes every roll succeed.
type Fixed float64

func (f Fixed) Float64() float64 { return float64(f) }

// Sequence replays values in order and then repeats the last one.
type Sequence struct {
	Values []float64
	pos    int
}

func NewSequence(values ...float64) *Sequence {
	return &Sequence{Values: values}
}

func (s *Sequence) Float64() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	if s.pos >= len(s.Values) {
		return s.Values[len(s.Values)-1]
	}
	v := s.Values[s.pos]
	s.pos++
	return v
}
