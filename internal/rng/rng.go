package rng

import (
	"errors"
	"math/rand"
)

// ErrInvalidWeight indicates a negative weight or an all-zero weight list.
// This is a data or logic defect, not a condition worth retrying.
var ErrInvalidWeight = errors.New("weights must be non-negative and not all zero")

// Source is a seeded random stream. Every generation call owns exactly one
// Source and all components draw through it, so identical seeds replay
// identical draw sequences. Not safe for concurrent use.
type Source struct {
	seed int64
	r    *rand.Rand
}

func New(seed int64) *Source {
	return &Source{seed: seed, r: rand.New(rand.NewSource(seed))}
}

// Seed returns the seed this source was constructed with.
func (s *Source) Seed() int64 {
	return s.seed
}

// Float returns a uniform draw in [0, 1).
func (s *Source) Float() float64 {
	return s.r.Float64()
}

// IntBetween returns a uniform draw in [lo, hi], inclusive on both ends.
func (s *Source) IntBetween(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + s.r.Intn(hi-lo+1)
}

// WeightedIndex picks an index with probability weight/total using a single
// uniform draw and a cumulative scan in the order the weights are given.
// The input order is the draw order; callers must never feed it from an
// unordered structure.
func (s *Source) WeightedIndex(weights []float64) (int, error) {
	total := 0.0
	for _, w := range weights {
		if w < 0 {
			return 0, ErrInvalidWeight
		}
		total += w
	}
	if len(weights) == 0 || total <= 0 {
		return 0, ErrInvalidWeight
	}

	target := s.Float() * total
	acc := 0.0
	for i, w := range weights {
		acc += w
		if target < acc {
			return i, nil
		}
	}
	// target can land on the upper edge from float error; last positive wins
	for i := len(weights) - 1; i >= 0; i-- {
		if weights[i] > 0 {
			return i, nil
		}
	}
	return len(weights) - 1, nil
}
