package stepper

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/san-kum/sortviz/internal/logging"
	"github.com/sirupsen/logrus"
)

const (
	DefaultSize   = 50
	DefaultHeight = 400
	DefaultSpeed  = 30
	DefaultUnit   = time.Millisecond
)

// Options configure a Stepper. Zero fields take the defaults.
type Options struct {
	Size    int
	Height  int
	Speed   int
	Seed    int64 // 0 seeds from the current time
	Pattern Pattern
	Unit    time.Duration
	Clock   Clock
	Logger  logrus.FieldLogger
}

func DefaultOptions() Options {
	return Options{
		Size:    DefaultSize,
		Height:  DefaultHeight,
		Speed:   DefaultSpeed,
		Pattern: PatternRandom,
		Unit:    DefaultUnit,
	}
}

// Stepper drives one step-wise Quicksort animation.
type Stepper struct {
	size    int
	height  int
	pattern Pattern
	unit    time.Duration
	clock   Clock
	log     logrus.FieldLogger

	speed atomic.Int32

	// cmdMu serializes Start and Reset so a worker is never launched while
	// another command is tearing the previous one down.
	cmdMu sync.Mutex

	mu      sync.Mutex
	resumed *sync.Cond
	rng     *rand.Rand
	seed    int64
	seq     Sequence
	states  []ElementState
	control ControlState
	stats   Stats
	cancel  context.CancelFunc
	done    chan struct{}

	obsMu     sync.RWMutex
	observers []Observer
}

// New builds a Stepper and generates its first sequence.
func New(opts Options) *Stepper {
	def := DefaultOptions()
	if opts.Size <= 0 {
		opts.Size = def.Size
	}
	if opts.Height <= 0 {
		opts.Height = def.Height
	}
	if opts.Speed == 0 {
		opts.Speed = def.Speed
	}
	if opts.Pattern == "" {
		opts.Pattern = def.Pattern
	}
	if opts.Unit <= 0 {
		opts.Unit = def.Unit
	}
	if opts.Clock == nil {
		opts.Clock = RealClock()
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}

	s := &Stepper{
		size:    opts.Size,
		height:  opts.Height,
		pattern: opts.Pattern,
		unit:    opts.Unit,
		clock:   opts.Clock,
		log:     opts.Logger.WithField("component", "stepper"),
	}
	s.resumed = sync.NewCond(&s.mu)
	s.speed.Store(int32(ClampSpeed(opts.Speed)))
	s.Reset(opts.Seed)
	return s
}

// Subscribe registers o for redraw notifications.
func (s *Stepper) Subscribe(o Observer) {
	s.obsMu.Lock()
	s.observers = append(s.observers, o)
	s.obsMu.Unlock()
}

func (s *Stepper) notify(f Frame) {
	s.obsMu.RLock()
	obs := s.observers
	s.obsMu.RUnlock()
	for _, o := range obs {
		o.OnRedraw(f)
	}
}

// Reset cancels any running sort, waits for the worker to exit and installs
// a freshly generated sequence. A non-zero seed reseeds the generator; with
// no seed the generator continues, so consecutive resets differ.
func (s *Stepper) Reset(seed ...int64) {
	s.cmdMu.Lock()
	defer s.cmdMu.Unlock()

	s.stop()

	s.mu.Lock()
	if len(seed) > 0 && seed[0] != 0 || s.rng == nil {
		sd := int64(0)
		if len(seed) > 0 {
			sd = seed[0]
		}
		if sd == 0 {
			sd = time.Now().UnixNano()
		}
		s.seed = sd
		s.rng = rand.New(rand.NewSource(sd))
	}
	seq := Generate(s.rng, s.pattern, s.size, s.height)
	frame := s.installLocked(seq)
	s.mu.Unlock()

	s.log.WithFields(logrus.Fields{"size": len(seq), "seed": s.seed, "pattern": s.pattern}).Debug("reset")
	s.notify(frame)
}

// ResetWith behaves like Reset but installs a copy of values.
func (s *Stepper) ResetWith(values []int) {
	s.cmdMu.Lock()
	defer s.cmdMu.Unlock()

	s.stop()

	s.mu.Lock()
	frame := s.installLocked(Sequence(values).Clone())
	s.mu.Unlock()

	s.log.WithField("size", len(values)).Debug("reset with values")
	s.notify(frame)
}

func (s *Stepper) installLocked(seq Sequence) Frame {
	s.seq = seq
	s.states = make([]ElementState, len(seq))
	s.control = Idle
	s.stats = Stats{}
	s.cancel, s.done = nil, nil
	return s.frameLocked()
}

// stop cancels the active worker, if any, and blocks until it has exited.
func (s *Stepper) stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	if cancel != nil {
		cancel()
	}
	// A paused worker sleeps on the condition; wake it to see the cancellation.
	s.resumed.Broadcast()
	s.mu.Unlock()

	if done != nil {
		<-done
		s.log.Debug("worker stopped")
	}
}

// Start launches the sort. It is a no-op while a sort is Running or Paused.
// Starting from Completed sorts the current array again.
func (s *Stepper) Start() {
	s.cmdMu.Lock()
	defer s.cmdMu.Unlock()

	s.mu.Lock()
	if s.control == Running || s.control == Paused {
		s.mu.Unlock()
		return
	}
	prev := s.done
	s.mu.Unlock()

	// A completed worker may still be delivering its final frame.
	if prev != nil {
		<-prev
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	s.mu.Lock()
	s.cancel, s.done = cancel, done
	s.control = Running
	s.stats = Stats{}
	for i := range s.states {
		s.states[i] = Normal
	}
	frame := s.frameLocked()
	n := len(s.seq)
	s.mu.Unlock()

	s.log.WithFields(logrus.Fields{"size": n, "speed": s.Speed()}).Info("sort started")
	s.notify(frame)

	go s.run(ctx, cancel, done, n)
}

// TogglePause flips Running and Paused; in any other state it does nothing.
func (s *Stepper) TogglePause() {
	s.mu.Lock()
	switch s.control {
	case Running:
		s.control = Paused
	case Paused:
		s.control = Running
		s.resumed.Broadcast()
	default:
		s.mu.Unlock()
		return
	}
	state := s.control
	frame := s.frameLocked()
	s.mu.Unlock()

	s.log.WithField("state", state).Debug("pause toggled")
	s.notify(frame)
}

// SetSpeed changes the speed setting, clamped to [MinSpeed, MaxSpeed]. A
// delay already in progress is not shortened.
func (s *Stepper) SetSpeed(v int) {
	s.speed.Store(int32(ClampSpeed(v)))
}

func (s *Stepper) Speed() int { return int(s.speed.Load()) }

// Delay is the wait applied after the next visible step.
func (s *Stepper) Delay() time.Duration { return DelayFor(s.Speed(), s.unit) }

func (s *Stepper) State() ControlState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.control
}

// Seed returns the seed of the current generator.
func (s *Stepper) Seed() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seed
}

// Snapshot returns a copy of the current state.
func (s *Stepper) Snapshot() Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frameLocked()
}

// Wait blocks until the current worker exits or ctx is done.
func (s *Stepper) Wait(ctx context.Context) error {
	s.mu.Lock()
	done := s.done
	s.mu.Unlock()
	if done == nil {
		return nil
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Stepper) frameLocked() Frame {
	s.checkLocked()
	states := make([]ElementState, len(s.states))
	copy(states, s.states)
	return Frame{
		Seq:     s.seq.Clone(),
		States:  states,
		Control: s.control,
		Speed:   s.Speed(),
		Height:  s.height,
		Stats:   s.stats,
	}
}

func (s *Stepper) checkLocked() {
	if len(s.states) != len(s.seq) {
		panic(fmt.Errorf("%w: %d states for %d elements", ErrStateMismatch, len(s.states), len(s.seq)))
	}
}
