package stepper

import (
	"context"

	"github.com/sirupsen/logrus"
)

// run is the worker body. done is closed last so Reset observes a fully
// exited worker.
func (s *Stepper) run(ctx context.Context, cancel context.CancelFunc, done chan struct{}, n int) {
	defer close(done)
	defer cancel()

	s.quicksort(ctx, 0, n-1)

	frame, ok := s.apply(ctx, func() {
		for i := range s.states {
			s.states[i] = Sorted
		}
		s.control = Completed
	})
	if !ok {
		s.log.Info("sort cancelled")
		return
	}
	s.log.WithFields(logrus.Fields{
		"comparisons": frame.Stats.Comparisons,
		"swaps":       frame.Stats.Swaps,
		"steps":       frame.Stats.Steps,
	}).Info("sort completed")
	s.notify(frame)
}

// quicksort sorts seq[lo..hi] in place, pivoting on the last element.
func (s *Stepper) quicksort(ctx context.Context, lo, hi int) {
	if ctx.Err() != nil {
		return
	}
	if lo < hi {
		p := s.partition(ctx, lo, hi)
		s.quicksort(ctx, lo, p-1)
		s.quicksort(ctx, p+1, hi)
	}
}

// partition is the Lomuto scheme: everything strictly below the pivot value
// ends up left of the returned index.
func (s *Stepper) partition(ctx context.Context, lo, hi int) int {
	var pivot int
	if !s.mark(ctx, func() {
		pivot = s.seq[hi]
		s.states[hi] = Pivot
	}) {
		return lo
	}

	i := lo - 1
	for j := lo; j < hi; j++ {
		if !s.step(ctx, func() {
			s.states[j] = Compared
			s.stats.Comparisons++
		}) {
			return i + 1
		}
		// seq is written only by this goroutine, so reading it unlocked is safe.
		if s.seq[j] < pivot {
			i++
			if !s.swap(ctx, i, j) {
				return i
			}
		}
		if !s.mark(ctx, func() { s.states[j] = Normal }) {
			return i + 1
		}
	}

	if !s.swap(ctx, i+1, hi) {
		return i + 1
	}
	s.mark(ctx, func() { s.states[hi] = Normal })
	return i + 1
}

func (s *Stepper) swap(ctx context.Context, i, j int) bool {
	return s.step(ctx, func() {
		s.seq[i], s.seq[j] = s.seq[j], s.seq[i]
		s.stats.Swaps++
	})
}

// step applies one visible mutation, notifies observers and waits for the
// current delay. It reports false once the run has been cancelled.
func (s *Stepper) step(ctx context.Context, fn func()) bool {
	frame, ok := s.apply(ctx, func() {
		fn()
		s.stats.Steps++
	})
	if !ok {
		return false
	}
	s.notify(frame)

	select {
	case <-ctx.Done():
		return false
	case <-s.clock.After(s.Delay()):
		return true
	}
}

// mark applies a tag change and redraws without waiting.
func (s *Stepper) mark(ctx context.Context, fn func()) bool {
	frame, ok := s.apply(ctx, fn)
	if ok {
		s.notify(frame)
	}
	return ok
}

// apply is the checkpoint in front of every mutation: it blocks while the
// animation is paused and runs fn under the lock unless the run was cancelled.
func (s *Stepper) apply(ctx context.Context, fn func()) (Frame, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for s.control == Paused && ctx.Err() == nil {
		s.resumed.Wait()
	}
	if ctx.Err() != nil {
		return Frame{}, false
	}
	fn()
	return s.frameLocked(), true
}
