package experiment

import (
	"context"
	"sync"
	"time"

	"github.com/san-kum/sortviz/internal/stepper"
	"github.com/sirupsen/logrus"
)

// Ensemble sorts numRuns sequences of the same shape concurrently, run i
// seeded with seedStart+i.
type Ensemble struct {
	cfg       Config
	numRuns   int
	seedStart int64
	log       logrus.FieldLogger
}

// NewEnsemble copies cfg. A zero seedStart picks one from the clock.
func NewEnsemble(cfg Config, numRuns int, seedStart int64, logger logrus.FieldLogger) *Ensemble {
	if numRuns < 1 {
		numRuns = 1
	}
	if seedStart == 0 {
		seedStart = time.Now().UnixNano()
	}
	return &Ensemble{cfg: cfg, numRuns: numRuns, seedStart: seedStart, log: logger}
}

func (e *Ensemble) Run(ctx context.Context) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			cfgCopy := e.cfg
			cfgCopy.Seed = e.seedStart + int64(idx)
			results[idx], errs[idx] = RunOnce(ctx, cfgCopy, e.log)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}

// Summary aggregates the results of an ensemble.
type Summary struct {
	Pattern         stepper.Pattern
	Size            int
	Height          int
	Runs            int
	MeanComparisons float64
	MeanSwaps       float64
	MinComparisons  int
	MaxComparisons  int
	Elapsed         time.Duration
	// OK holds when every run produced a sorted permutation.
	OK bool
}

func Summarize(results []*Result) Summary {
	if len(results) == 0 {
		return Summary{}
	}

	s := Summary{
		Pattern:        results[0].Pattern,
		Size:           results[0].Size,
		Height:         results[0].Height,
		Runs:           len(results),
		MinComparisons: results[0].Stats.Comparisons,
		MaxComparisons: results[0].Stats.Comparisons,
		OK:             true,
	}
	var cmp, swp int
	for _, r := range results {
		cmp += r.Stats.Comparisons
		swp += r.Stats.Swaps
		s.MinComparisons = min(s.MinComparisons, r.Stats.Comparisons)
		s.MaxComparisons = max(s.MaxComparisons, r.Stats.Comparisons)
		s.Elapsed += r.Elapsed
		s.OK = s.OK && r.OK()
	}
	s.MeanComparisons = float64(cmp) / float64(len(results))
	s.MeanSwaps = float64(swp) / float64(len(results))
	return s
}
