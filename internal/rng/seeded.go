// Package rng provides the deterministic generator levels are built from.
package rng

const (
	multiplier = 9301
	increment  = 49297
	modulus    = 233280
)

// Seeded is a small linear-congruential generator. The same seed always
// yields the same sequence, which is what makes level N reproducible.
// A Seeded value is not safe for concurrent use; give each caller its own.
type Seeded struct {
	state int64
}

// New returns a generator positioned at seed.
func New(seed int64) *Seeded {
	return &Seeded{state: seed}
}

// Next returns a float in [0,1).
func (r *Seeded) Next() float64 {
	r.state = (r.state*multiplier + increment) % modulus
	if r.state < 0 {
		r.state += modulus
	}
	return float64(r.state) / modulus
}

// NextInt returns an int in [0,max). It returns 0 when max <= 0.
func (r *Seeded) NextInt(max int) int {
	if max <= 0 {
		return 0
	}
	return int(r.Next() * float64(max))
}

// Shuffle returns a Fisher-Yates shuffled copy of in; in is left untouched.
func Shuffle[T any](r *Seeded, in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	for i := len(out) - 1; i > 0; i-- {
		j := r.NextInt(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
