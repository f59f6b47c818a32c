package pick

import (
	"errors"

	"github.com/FyefoxxM/loot-generator-and-dungeon-creator/internal/rng"
)

// ErrNoEligibleCandidates means the filter left nothing to draw from.
// Callers are expected to fall back (e.g. to an empty encounter) rather
// than treat this as fatal.
var ErrNoEligibleCandidates = errors.New("no eligible candidates")

// One filters items with keep (nil keeps everything), preserving input
// order, then draws one by weight. Returns ErrNoEligibleCandidates when the
// filtered pool is empty.
func One[T any](r *rng.Source, items []T, keep func(T) bool, weight func(T) float64) (T, error) {
	var zero T

	kept := make([]T, 0, len(items))
	for _, it := range items {
		if keep == nil || keep(it) {
			kept = append(kept, it)
		}
	}
	if len(kept) == 0 {
		return zero, ErrNoEligibleCandidates
	}

	weights := make([]float64, len(kept))
	for i, it := range kept {
		weights[i] = weight(it)
	}
	idx, err := r.WeightedIndex(weights)
	if err != nil {
		return zero, err
	}
	return kept[idx], nil
}

// Many performs up to n weighted draws. Without replacement (the default for
// loot fills) each chosen item is removed from a local working copy and the
// remaining weights renormalize implicitly on the next draw. The working
// copy never outlives the call. Stops early when the pool runs dry; a
// residue of zero-weight items counts as a dry pool, since nothing left can
// ever be drawn.
func Many[T any](r *rng.Source, items []T, weight func(T) float64, n int, withReplacement bool) ([]T, error) {
	if n <= 0 || len(items) == 0 {
		return nil, nil
	}

	pool := make([]T, len(items))
	copy(pool, items)

	out := make([]T, 0, n)
	for len(out) < n && len(pool) > 0 {
		weights := make([]float64, len(pool))
		drawable := false
		for i, it := range pool {
			w := weight(it)
			if w < 0 {
				return out, rng.ErrInvalidWeight
			}
			weights[i] = w
			if w > 0 {
				drawable = true
			}
		}
		if !drawable {
			break
		}
		idx, err := r.WeightedIndex(weights)
		if err != nil {
			return out, err
		}
		out = append(out, pool[idx])
		if !withReplacement {
			pool = append(pool[:idx], pool[idx+1:]...)
		}
	}
	return out, nil
}
