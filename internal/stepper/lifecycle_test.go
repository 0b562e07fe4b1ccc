package stepper_test

import (
	"context"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/sortviz/internal/stepper"
)

type controlLog struct {
	mu     sync.Mutex
	states []stepper.ControlState
}

func (l *controlLog) OnRedraw(f stepper.Frame) {
	l.mu.Lock()
	l.states = append(l.states, f.Control)
	l.mu.Unlock()
}

func (l *controlLog) len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.states)
}

func waitDone(st *stepper.Stepper) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	Expect(st.Wait(ctx)).To(Succeed())
}

var _ = Describe("Stepper", func() {
	Describe("completed sort", func() {
		DescribeTable("leaves an ascending permutation of the input",
			func(values []int) {
				st := stepper.New(stepper.Options{Clock: stepper.ImmediateClock()})
				st.ResetWith(values)
				before := st.Snapshot().Seq

				st.Start()
				waitDone(st)

				f := st.Snapshot()
				Expect(f.Control).To(Equal(stepper.Completed))
				Expect(f.Seq.IsSorted()).To(BeTrue())
				Expect(f.Seq.SameElements(before)).To(BeTrue())
				Expect(f.Count(stepper.Sorted)).To(Equal(len(values)))
			},
			Entry("empty", []int{}),
			Entry("single", []int{42}),
			Entry("pair", []int{9, 3}),
			Entry("duplicates", []int{7, 7, 3, 7, 1, 3}),
			Entry("already sorted", []int{1, 2, 3, 4, 5}),
			Entry("descending", []int{9, 8, 7, 6, 5, 4, 3, 2, 1}),
		)

		It("sorts generated sequences of every pattern", func() {
			for _, p := range stepper.Patterns() {
				st := stepper.New(stepper.Options{Size: 60, Pattern: p, Seed: 5, Clock: stepper.ImmediateClock()})
				before := st.Snapshot().Seq
				st.Start()
				waitDone(st)
				after := st.Snapshot().Seq
				Expect(after.IsSorted()).To(BeTrue(), "pattern %s", p)
				Expect(after.SameElements(before)).To(BeTrue(), "pattern %s", p)
			}
		})

		It("can be started again from completed", func() {
			st := stepper.New(stepper.Options{Size: 10, Clock: stepper.ImmediateClock()})
			st.Start()
			waitDone(st)
			Expect(st.State()).To(Equal(stepper.Completed))

			st.Start()
			waitDone(st)
			f := st.Snapshot()
			Expect(f.Control).To(Equal(stepper.Completed))
			Expect(f.Seq.IsSorted()).To(BeTrue())
		})
	})

	Describe("Reset", func() {
		It("returns to idle with every element normal", func() {
			st := stepper.New(stepper.Options{Size: 30, Clock: stepper.ImmediateClock()})
			st.Start()
			waitDone(st)

			st.Reset()
			f := st.Snapshot()
			Expect(f.Control).To(Equal(stepper.Idle))
			Expect(f.Count(stepper.Normal)).To(Equal(30))
			Expect(f.Stats).To(Equal(stepper.Stats{}))
		})

		It("cancels a running sort and joins the worker before returning", func() {
			st := stepper.New(stepper.Options{Size: 50, Speed: 1, Seed: 21})
			log := &controlLog{}
			st.Subscribe(log)
			before := st.Snapshot().Seq

			st.Start()
			st.Reset()

			f := st.Snapshot()
			Expect(f.Control).To(Equal(stepper.Idle))
			Expect(f.Count(stepper.Normal)).To(Equal(50))
			Expect(f.Seq).NotTo(Equal(before))

			// No worker is left to emit frames.
			n := log.len()
			Consistently(log.len, 150*time.Millisecond, 10*time.Millisecond).Should(Equal(n))
			Expect(st.Snapshot()).To(Equal(f))
		})

		It("interrupts a long delay instead of waiting it out", func() {
			st := stepper.New(stepper.Options{Size: 50, Speed: 1, Unit: time.Second})
			st.Start()
			Eventually(func() int { return st.Snapshot().Stats.Steps }).Should(BeNumerically(">=", 1))

			began := time.Now()
			st.Reset()
			Expect(time.Since(began)).To(BeNumerically("<", time.Second))
			Expect(st.State()).To(Equal(stepper.Idle))
		})

		It("wakes and cancels a paused sort", func() {
			st := stepper.New(stepper.Options{Size: 50, Unit: time.Microsecond})
			st.Start()
			st.TogglePause()
			Expect(st.State()).To(Equal(stepper.Paused))

			st.Reset()
			Expect(st.State()).To(Equal(stepper.Idle))
		})

		It("reproduces a sequence from an explicit seed", func() {
			st := stepper.New(stepper.Options{Size: 25})
			st.Reset(1234)
			first := st.Snapshot().Seq
			st.Reset()
			Expect(st.Snapshot().Seq).NotTo(Equal(first))
			st.Reset(1234)
			Expect(st.Snapshot().Seq).To(Equal(first))
			Expect(st.Seed()).To(Equal(int64(1234)))
		})
	})

	Describe("Start", func() {
		It("is a no-op while running", func() {
			values := []int{12, 4, 19, 3, 8, 15, 1, 7}

			ref := stepper.New(stepper.Options{Clock: stepper.ImmediateClock()})
			ref.ResetWith(values)
			ref.Start()
			waitDone(ref)
			want := ref.Snapshot().Stats

			st := stepper.New(stepper.Options{Speed: 100, Unit: 100 * time.Microsecond})
			st.ResetWith(values)
			st.Start()
			st.Start()
			st.Start()
			waitDone(st)

			Expect(st.Snapshot().Stats).To(Equal(want))
		})
	})

	Describe("TogglePause", func() {
		It("does nothing when idle or completed", func() {
			st := stepper.New(stepper.Options{Size: 5, Clock: stepper.ImmediateClock()})
			st.TogglePause()
			Expect(st.State()).To(Equal(stepper.Idle))

			st.Start()
			waitDone(st)
			st.TogglePause()
			Expect(st.State()).To(Equal(stepper.Completed))
		})

		It("freezes the array until resumed", func() {
			st := stepper.New(stepper.Options{Size: 50, Speed: 100, Unit: 200 * time.Microsecond})
			st.Start()
			Eventually(func() int { return st.Snapshot().Stats.Steps }).Should(BeNumerically(">=", 3))

			st.TogglePause()
			Expect(st.State()).To(Equal(stepper.Paused))
			frozen := st.Snapshot()

			Consistently(st.Snapshot, 200*time.Millisecond, 10*time.Millisecond).Should(Equal(frozen))

			st.TogglePause()
			Expect(st.State()).To(Equal(stepper.Running))
			Eventually(st.State, 10*time.Second).Should(Equal(stepper.Completed))
			Expect(st.Snapshot().Seq.IsSorted()).To(BeTrue())
		})
	})

	Describe("SetSpeed", func() {
		It("applies to the next step of a running sort", func() {
			st := stepper.New(stepper.Options{Size: 50, Speed: 1, Unit: time.Second})
			st.Start()
			Eventually(func() int { return st.Snapshot().Stats.Steps }).Should(BeNumerically(">=", 1))

			st.SetSpeed(100)
			Expect(st.Delay()).To(Equal(10 * time.Second))
			st.Reset()
		})
	})
})
