package experiment

import (
	"context"
	"fmt"

	"github.com/san-kum/sortviz/internal/stepper"
	"github.com/sirupsen/logrus"
)

var DefaultSizes = []int{10, 50, 100, 200}

// Bench runs an ensemble of runs sorts for every pattern and size, in that
// order, and returns one summary per combination. base supplies the panel
// height and the first seed; its size, pattern and values are ignored. It
// stops at the first failure.
func Bench(ctx context.Context, base Config, sizes []int, patterns []stepper.Pattern, runs int, logger logrus.FieldLogger) ([]Summary, error) {
	if len(sizes) == 0 {
		sizes = DefaultSizes
	}
	if len(patterns) == 0 {
		patterns = stepper.Patterns()
	}

	summaries := make([]Summary, 0, len(sizes)*len(patterns))
	for _, p := range patterns {
		for _, n := range sizes {
			if n < 1 {
				return summaries, fmt.Errorf("bench size must be positive, got %d", n)
			}
			cfg := Config{
				Size:    n,
				Height:  base.Height,
				Pattern: p,
			}
			results, err := NewEnsemble(cfg, runs, base.Seed, logger).Run(ctx)
			if err != nil {
				return summaries, fmt.Errorf("bench %s/%d: %w", p, n, err)
			}
			summaries = append(summaries, Summarize(results))
		}
	}
	return summaries, nil
}
