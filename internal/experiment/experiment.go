package experiment

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/san-kum/sortviz/internal/logging"
	"github.com/san-kum/sortviz/internal/stepper"
	"github.com/sirupsen/logrus"
)

// Config describes one headless sort. Values, when set, replace the
// generated sequence and Size, Seed and Pattern are ignored.
type Config struct {
	Size    int
	Height  int
	Seed    int64
	Pattern stepper.Pattern
	Values  []int
}

// Result summarizes a finished headless sort.
type Result struct {
	Size    int
	Height  int
	Pattern stepper.Pattern
	Seed    int64
	Before  stepper.Sequence
	After   stepper.Sequence
	Stats   stepper.Stats
	Frames  int64
	Elapsed time.Duration
	// Sorted reports ascending order; Permutation that After holds the
	// same multiset of values as Before.
	Sorted      bool
	Permutation bool
}

// OK is true when the run produced a sorted permutation of its input.
func (r *Result) OK() bool { return r.Sorted && r.Permutation }

type Experiment struct {
	cfg    Config
	st     *stepper.Stepper
	frames atomic.Int64
	log    logrus.FieldLogger
}

func New(cfg Config, logger logrus.FieldLogger) *Experiment {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Experiment{cfg: cfg, log: logger}
}

// Setup builds a stepper that never waits between steps and subscribes the
// given observers to it.
func (e *Experiment) Setup(observers ...stepper.Observer) error {
	if e.cfg.Pattern == "" {
		e.cfg.Pattern = stepper.PatternRandom
	}
	if _, err := stepper.ParsePattern(string(e.cfg.Pattern)); err != nil {
		return err
	}

	e.st = stepper.New(stepper.Options{
		Size:    e.cfg.Size,
		Height:  e.cfg.Height,
		Seed:    e.cfg.Seed,
		Pattern: e.cfg.Pattern,
		Speed:   stepper.MaxSpeed,
		Clock:   stepper.ImmediateClock(),
		Logger:  e.log,
	})
	if e.cfg.Values != nil {
		e.st.ResetWith(e.cfg.Values)
	}

	e.st.Subscribe(stepper.ObserverFunc(func(stepper.Frame) { e.frames.Add(1) }))
	for _, o := range observers {
		e.st.Subscribe(o)
	}
	return nil
}

// Run sorts the prepared sequence and blocks until it completes or ctx is
// done. On cancellation the worker is stopped before Run returns.
func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	if e.st == nil {
		return nil, fmt.Errorf("experiment not setup")
	}

	before := e.st.Snapshot().Seq
	e.frames.Store(0)
	start := time.Now()

	e.st.Start()
	if err := e.st.Wait(ctx); err != nil {
		e.st.Reset()
		return nil, fmt.Errorf("sort interrupted: %w", err)
	}
	elapsed := time.Since(start)

	f := e.st.Snapshot()
	res := &Result{
		Size:        len(before),
		Height:      f.Height,
		Pattern:     e.cfg.Pattern,
		Seed:        e.st.Seed(),
		Before:      before,
		After:       f.Seq,
		Stats:       f.Stats,
		Frames:      e.frames.Load(),
		Elapsed:     elapsed,
		Sorted:      f.Seq.IsSorted(),
		Permutation: f.Seq.SameElements(before),
	}
	if e.cfg.Values != nil {
		res.Pattern = "values"
	}

	e.log.WithFields(logrus.Fields{
		"size":        res.Size,
		"comparisons": res.Stats.Comparisons,
		"swaps":       res.Stats.Swaps,
		"elapsed":     res.Elapsed,
	}).Info("headless run finished")
	return res, nil
}

// Stepper returns the underlying stepper, nil before Setup.
func (e *Experiment) Stepper() *stepper.Stepper {
	return e.st
}

// RunOnce is New, Setup and Run in one call.
func RunOnce(ctx context.Context, cfg Config, logger logrus.FieldLogger) (*Result, error) {
	e := New(cfg, logger)
	if err := e.Setup(); err != nil {
		return nil, err
	}
	return e.Run(ctx)
}
