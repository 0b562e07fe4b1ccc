package stepper

import (
	"context"
	"math/rand"
	"sync"
	"testing"
	"time"
)

type recordingClock struct {
	mu     sync.Mutex
	delays []time.Duration
}

func (c *recordingClock) After(d time.Duration) <-chan time.Time {
	c.mu.Lock()
	c.delays = append(c.delays, d)
	c.mu.Unlock()
	ch := make(chan time.Time, 1)
	ch <- time.Time{}
	return ch
}

type frameLog struct {
	mu     sync.Mutex
	frames []Frame
}

func (l *frameLog) OnRedraw(f Frame) {
	l.mu.Lock()
	l.frames = append(l.frames, f)
	l.mu.Unlock()
}

func (l *frameLog) all() []Frame {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Frame(nil), l.frames...)
}

func runToCompletion(t *testing.T, s *Stepper) {
	t.Helper()
	s.Start()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Wait(ctx); err != nil {
		t.Fatalf("wait failed: %v", err)
	}
}

func TestClampSpeed(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{-5, 1},
		{0, 1},
		{1, 1},
		{30, 30},
		{100, 100},
		{250, 100},
	}
	for _, tt := range tests {
		if got := ClampSpeed(tt.in); got != tt.want {
			t.Errorf("ClampSpeed(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestDelayFor(t *testing.T) {
	tests := []struct {
		speed int
		want  time.Duration
	}{
		{1, 109 * time.Millisecond},
		{30, 80 * time.Millisecond},
		{100, 10 * time.Millisecond},
		{0, 109 * time.Millisecond},
		{101, 10 * time.Millisecond},
	}
	for _, tt := range tests {
		if got := DelayFor(tt.speed, time.Millisecond); got != tt.want {
			t.Errorf("DelayFor(%d) = %v, want %v", tt.speed, got, tt.want)
		}
	}
}

func TestSequence_IsSorted(t *testing.T) {
	tests := []struct {
		name string
		seq  Sequence
		want bool
	}{
		{"empty", Sequence{}, true},
		{"single", Sequence{4}, true},
		{"ascending", Sequence{1, 2, 2, 7}, true},
		{"unsorted", Sequence{3, 1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.seq.IsSorted(); got != tt.want {
				t.Errorf("IsSorted() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSequence_SameElements(t *testing.T) {
	a := Sequence{5, 3, 3, 9}
	if !a.SameElements(Sequence{3, 9, 5, 3}) {
		t.Error("expected permutation to match")
	}
	if a.SameElements(Sequence{3, 9, 5, 5}) {
		t.Error("different multiset should not match")
	}
	if a.SameElements(Sequence{3, 9, 5}) {
		t.Error("different length should not match")
	}
}

func TestGenerate_Range(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for _, p := range Patterns() {
		seq := Generate(rng, p, 200, 400)
		if len(seq) != 200 {
			t.Fatalf("%s: expected 200 values, got %d", p, len(seq))
		}
		for i, v := range seq {
			if v < 20 || v >= 380 {
				t.Fatalf("%s: value %d at %d outside [20,380)", p, v, i)
			}
		}
	}
}

func TestGenerate_Patterns(t *testing.T) {
	rng := rand.New(rand.NewSource(11))

	if seq := Generate(rng, PatternSorted, 30, 400); !seq.IsSorted() {
		t.Errorf("sorted pattern not ascending: %v", seq)
	}

	rev := Generate(rng, PatternReversed, 30, 400)
	for i := 1; i < len(rev); i++ {
		if rev[i-1] < rev[i] {
			t.Fatalf("reversed pattern not descending at %d: %v", i, rev)
		}
	}

	few := Generate(rng, PatternFewUnique, 100, 400)
	distinct := map[int]bool{}
	for _, v := range few {
		distinct[v] = true
	}
	if len(distinct) > fewUniqueLevels {
		t.Errorf("expected at most %d distinct values, got %d", fewUniqueLevels, len(distinct))
	}
}

func TestParsePattern(t *testing.T) {
	if p, err := ParsePattern(""); err != nil || p != PatternRandom {
		t.Errorf("empty name: got %q, %v", p, err)
	}
	if p, err := ParsePattern("reversed"); err != nil || p != PatternReversed {
		t.Errorf("reversed: got %q, %v", p, err)
	}
	if _, err := ParsePattern("bogo"); err == nil {
		t.Error("expected error for unknown pattern")
	}
}

func TestNew_InitialState(t *testing.T) {
	s := New(Options{Size: 50, Height: 400, Seed: 3})
	f := s.Snapshot()

	if f.Control != Idle {
		t.Errorf("expected idle, got %s", f.Control)
	}
	if len(f.Seq) != 50 || len(f.States) != 50 {
		t.Fatalf("expected 50 elements, got %d values and %d states", len(f.Seq), len(f.States))
	}
	if f.Count(Normal) != 50 {
		t.Errorf("expected all normal, got %d", f.Count(Normal))
	}
	if f.Speed != DefaultSpeed {
		t.Errorf("expected default speed %d, got %d", DefaultSpeed, f.Speed)
	}
}

func TestNew_SeedIsReproducible(t *testing.T) {
	a := New(Options{Size: 20, Seed: 99}).Snapshot().Seq
	b := New(Options{Size: 20, Seed: 99}).Snapshot().Seq
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("sequences differ at %d: %v vs %v", i, a, b)
		}
	}
}

func TestSort_KnownSequence(t *testing.T) {
	s := New(Options{Clock: ImmediateClock()})
	log := &frameLog{}
	s.ResetWith([]int{5, 3, 8, 1, 9, 2})
	s.Subscribe(log)

	runToCompletion(t, s)

	f := s.Snapshot()
	want := Sequence{1, 2, 3, 5, 8, 9}
	for i := range want {
		if f.Seq[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, f.Seq)
		}
	}
	if f.Control != Completed {
		t.Errorf("expected completed, got %s", f.Control)
	}
	if f.Count(Sorted) != len(want) {
		t.Errorf("expected every element sorted, got %d", f.Count(Sorted))
	}

	frames := log.all()
	first := -1
	for i := range frames {
		if frames[i].Count(Pivot) > 0 {
			first = i
			break
		}
	}
	if first < 0 || first+1 >= len(frames) {
		t.Fatal("no frame showed a pivot")
	}
	pf := frames[first]
	if pf.States[5] != Pivot || pf.Seq[5] != 2 {
		t.Errorf("first pivot should be index 5 (value 2), got states %v seq %v", pf.States, pf.Seq)
	}
	if pf.Count(Compared) != 0 {
		t.Errorf("pivot frame should precede any comparison, got %v", pf.States)
	}
	if frames[first+1].States[0] != Compared {
		t.Errorf("first comparison should be index 0, got %v", frames[first+1].States)
	}
}

func TestSort_EveryTagChangeRedraws(t *testing.T) {
	s := New(Options{Clock: ImmediateClock()})
	log := &frameLog{}
	s.ResetWith([]int{5, 3, 8, 1, 9, 2})
	s.Subscribe(log)

	runToCompletion(t, s)

	frames := log.all()
	st := s.Snapshot().Stats
	// start + completion, one per step, one per cleared comparison, and a
	// pivot set and clear for each of the 3 partitions
	if want := 2 + st.Steps + st.Comparisons + 2*3; len(frames) != want {
		t.Errorf("expected %d frames, got %d", want, len(frames))
	}

	last := frames[len(frames)-2]
	if last.Count(Pivot) != 0 || last.Count(Compared) != 0 {
		t.Errorf("frame before completion still shows tags: %v", last.States)
	}
	if frames[len(frames)-1].Control != Completed {
		t.Errorf("last frame should be completed, got %s", frames[len(frames)-1].Control)
	}

	for i := 1; i < len(frames); i++ {
		prev, cur := frames[i-1], frames[i]
		if cur.Stats == prev.Stats && cur.Control == prev.Control && equalStates(cur.States, prev.States) {
			t.Errorf("frame %d repeats frame %d", i, i-1)
		}
	}
}

func equalStates(a, b []ElementState) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestSort_StepCounts(t *testing.T) {
	s := New(Options{Clock: ImmediateClock()})
	s.ResetWith([]int{5, 3, 8, 1, 9, 2})
	runToCompletion(t, s)

	// [0..5] pivot 2: 5 compares, 2 swaps. [2..5] pivot 3: 3 compares,
	// 1 swap. [3..5] pivot 8: 2 compares, 2 swaps (one is a self-swap).
	st := s.Snapshot().Stats
	if st.Comparisons != 10 {
		t.Errorf("expected 10 comparisons, got %d", st.Comparisons)
	}
	if st.Swaps != 5 {
		t.Errorf("expected 5 swaps, got %d", st.Swaps)
	}
	if st.Steps != st.Comparisons+st.Swaps {
		t.Errorf("steps %d should equal comparisons+swaps %d", st.Steps, st.Comparisons+st.Swaps)
	}
}

func TestSort_DelayFollowsSpeed(t *testing.T) {
	tests := []struct {
		speed int
		want  time.Duration
	}{
		{1, 109 * time.Millisecond},
		{100, 10 * time.Millisecond},
		{60, 50 * time.Millisecond},
	}
	for _, tt := range tests {
		clock := &recordingClock{}
		s := New(Options{Clock: clock, Speed: tt.speed})
		s.ResetWith([]int{4, 2, 3, 1})
		runToCompletion(t, s)

		if len(clock.delays) == 0 {
			t.Fatalf("speed %d: no delays recorded", tt.speed)
		}
		for _, d := range clock.delays {
			if d != tt.want {
				t.Errorf("speed %d: delay %v, want %v", tt.speed, d, tt.want)
			}
		}
		if len(clock.delays) != s.Snapshot().Stats.Steps {
			t.Errorf("speed %d: %d delays for %d steps", tt.speed, len(clock.delays), s.Snapshot().Stats.Steps)
		}
	}
}

func TestSort_WorstCaseIsQuadratic(t *testing.T) {
	s := New(Options{Clock: ImmediateClock()})
	desc := make([]int, 20)
	for i := range desc {
		desc[i] = 100 - i
	}
	s.ResetWith(desc)
	runToCompletion(t, s)

	// Last-element pivot on descending input compares every pair once.
	if got, want := s.Snapshot().Stats.Comparisons, 20*19/2; got != want {
		t.Errorf("expected %d comparisons, got %d", want, got)
	}
}

func TestTogglePause_NoopWhenIdle(t *testing.T) {
	s := New(Options{Size: 5})
	s.TogglePause()
	if got := s.State(); got != Idle {
		t.Errorf("expected idle, got %s", got)
	}
}

func TestSetSpeed_Clamps(t *testing.T) {
	s := New(Options{Size: 1})
	s.SetSpeed(500)
	if s.Speed() != MaxSpeed {
		t.Errorf("expected %d, got %d", MaxSpeed, s.Speed())
	}
	s.SetSpeed(-1)
	if s.Speed() != MinSpeed {
		t.Errorf("expected %d, got %d", MinSpeed, s.Speed())
	}
	if s.Delay() != 109*time.Millisecond {
		t.Errorf("expected 109ms delay, got %v", s.Delay())
	}
}

func TestFrameLocked_PanicsOnMismatch(t *testing.T) {
	s := New(Options{Size: 3})
	defer func() {
		if recover() == nil {
			t.Error("expected panic on state/sequence mismatch")
		}
	}()
	s.mu.Lock()
	s.states = s.states[:1]
	s.mu.Unlock()
	s.Snapshot()
}
