package stepper

import (
	"fmt"
	"math/rand"
	"slices"
	"sort"
)

// Pattern selects how a fresh sequence is arranged.
type Pattern string

const (
	PatternRandom    Pattern = "random"
	PatternReversed  Pattern = "reversed"
	PatternSorted    Pattern = "sorted"
	PatternFewUnique Pattern = "few-unique"
)

const (
	// barMargin keeps every bar at least this far from the panel edges.
	barMargin = 20

	fewUniqueLevels = 4
)

var patterns = []Pattern{PatternRandom, PatternReversed, PatternSorted, PatternFewUnique}

// Patterns lists the registered pattern names.
func Patterns() []Pattern { return slices.Clone(patterns) }

// ParsePattern resolves a pattern name; the empty string means random.
func ParsePattern(name string) (Pattern, error) {
	if name == "" {
		return PatternRandom, nil
	}
	for _, p := range patterns {
		if string(p) == name {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPattern, name)
}

// ValueRange returns the half-open range [lo, hi) of bar heights for a panel.
func ValueRange(height int) (lo, hi int) {
	lo, hi = barMargin, height-barMargin
	if hi <= lo {
		hi = lo + 1
	}
	return lo, hi
}

// Generate draws n values uniformly from ValueRange(height) and arranges them
// according to p. An unknown pattern falls back to random.
func Generate(rng *rand.Rand, p Pattern, n, height int) Sequence {
	if n < 0 {
		n = 0
	}
	lo, hi := ValueRange(height)
	span := hi - lo
	seq := make(Sequence, n)

	switch p {
	case PatternFewUnique:
		levels := make([]int, fewUniqueLevels)
		for i := range levels {
			levels[i] = lo + rng.Intn(span)
		}
		for i := range seq {
			seq[i] = levels[rng.Intn(len(levels))]
		}
		return seq
	default:
		for i := range seq {
			seq[i] = lo + rng.Intn(span)
		}
	}

	switch p {
	case PatternSorted:
		sort.Ints(seq)
	case PatternReversed:
		sort.Sort(sort.Reverse(sort.IntSlice(seq)))
	}
	return seq
}
