package anim

import (
	"sync"
	"testing"
	"time"
)

type manualClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type manualTask struct {
	fn      func()
	stopped bool
}

func (t *manualTask) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

type manualScheduler struct {
	mu      sync.Mutex
	pending []*manualTask
}

func (s *manualScheduler) AfterFunc(_ time.Duration, fn func()) Task {
	t := &manualTask{fn: fn}
	s.mu.Lock()
	s.pending = append(s.pending, t)
	s.mu.Unlock()
	return t
}

// fire runs the oldest live task and reports whether one ran.
func (s *manualScheduler) fire() bool {
	s.mu.Lock()
	for len(s.pending) > 0 {
		t := s.pending[0]
		s.pending = s.pending[1:]
		if t.stopped {
			continue
		}
		s.mu.Unlock()
		t.fn()
		return true
	}
	s.mu.Unlock()
	return false
}

func (s *manualScheduler) live() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.pending {
		if !t.stopped {
			n++
		}
	}
	return n
}

func newTestNumber(initial float64) (*Number, *manualClock, *manualScheduler) {
	clock := &manualClock{now: time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)}
	sched := &manualScheduler{}
	n := NewNumber(initial, Options{
		Duration:  time.Second,
		Frame:     100 * time.Millisecond,
		Clock:     clock,
		Scheduler: sched,
	})
	return n, clock, sched
}

func TestEaseCurve(t *testing.T) {
	if Ease(0) != 0 || Ease(1) != 1 {
		t.Fatalf("expected ease endpoints 0 and 1")
	}
	if got := Ease(0.5); got != 0.875 {
		t.Fatalf("expected ease(0.5)=0.875, got %v", got)
	}
	if Ease(-1) != 0 || Ease(2) != 1 {
		t.Fatalf("expected ease to clamp t")
	}
}

func TestNumberConvergesExactlyWithoutOvershoot(t *testing.T) {
	n, clock, sched := newTestNumber(2)
	n.Set(7.3)

	prev := n.Value()
	for i := 0; i < 20; i++ {
		clock.Advance(100 * time.Millisecond)
		if !sched.fire() {
			break
		}
		v := n.Value()
		if v < 2 || v > 7.3 {
			t.Fatalf("sample %v outside [2, 7.3]", v)
		}
		if v < prev {
			t.Fatalf("sample %v went backwards from %v", v, prev)
		}
		prev = v
	}
	if got := n.Value(); got != 7.3 {
		t.Fatalf("expected exact target 7.3, got %v", got)
	}
	if n.Running() {
		t.Fatalf("expected animation to terminate")
	}
	if sched.live() != 0 {
		t.Fatalf("expected no frames scheduled after completion")
	}
}

func TestNumberDescendingTargetStaysInRange(t *testing.T) {
	n, clock, sched := newTestNumber(10)
	n.Set(-4)
	for i := 0; i < 15 && sched.live() > 0; i++ {
		clock.Advance(100 * time.Millisecond)
		sched.fire()
		if v := n.Value(); v > 10 || v < -4 {
			t.Fatalf("sample %v outside [-4, 10]", v)
		}
	}
	if n.Value() != -4 {
		t.Fatalf("expected exact target -4, got %v", n.Value())
	}
}

func TestNumberRestartUsesCurrentDisplayedValue(t *testing.T) {
	n, clock, sched := newTestNumber(0)
	n.Set(10)
	clock.Advance(500 * time.Millisecond)
	sched.fire()
	mid := n.Value()
	if mid != 8.75 {
		t.Fatalf("expected 8.75 at half time, got %v", mid)
	}

	sched.mu.Lock()
	stale := sched.pending[len(sched.pending)-1]
	sched.mu.Unlock()

	n.Set(0)
	if !stale.stopped {
		t.Fatalf("expected superseded frame to be cancelled")
	}
	// A frame that already fired before cancellation must not touch the value.
	stale.fn()
	if n.Value() != mid {
		t.Fatalf("stale frame changed value to %v", n.Value())
	}
	if sched.live() != 1 {
		t.Fatalf("expected exactly one live animation, got %d", sched.live())
	}

	clock.Advance(500 * time.Millisecond)
	sched.fire()
	want := mid + (0-mid)*Ease(0.5)
	if got := n.Value(); got != want {
		t.Fatalf("expected restart from %v to reach %v, got %v", mid, want, got)
	}
}

func TestNumberZeroDurationJumps(t *testing.T) {
	calls := 0
	n := NewNumber(1, Options{OnFrame: func(float64) { calls++ }})
	n.Set(4.5)
	if n.Value() != 4.5 || n.Running() {
		t.Fatalf("expected immediate jump, got %v running=%v", n.Value(), n.Running())
	}
	if calls != 1 {
		t.Fatalf("expected one frame callback, got %d", calls)
	}
}

func TestNumberStopFreezesValue(t *testing.T) {
	n, clock, sched := newTestNumber(0)
	n.Set(1)
	clock.Advance(500 * time.Millisecond)
	sched.fire()
	v := n.Value()
	n.Stop()
	clock.Advance(time.Second)
	if sched.fire() {
		t.Fatalf("expected no live frames after stop")
	}
	if n.Value() != v {
		t.Fatalf("expected frozen value %v, got %v", v, n.Value())
	}
}

func TestNumberDisplayRoundsToTwoDecimals(t *testing.T) {
	n := NewNumber(0, Options{})
	n.Set(4.56789)
	if got := n.Display(); got != 4.57 {
		t.Fatalf("expected 4.57, got %v", got)
	}
}

func TestNumberRunsOnRealTimers(t *testing.T) {
	done := make(chan float64, 64)
	n := NewNumber(0, Options{
		Duration: 40 * time.Millisecond,
		Frame:    5 * time.Millisecond,
		OnFrame:  func(v float64) { done <- v },
	})
	n.Set(3)
	deadline := time.After(2 * time.Second)
	for {
		select {
		case v := <-done:
			if v == 3 {
				if n.Running() {
					t.Fatalf("expected animation finished")
				}
				return
			}
		case <-deadline:
			t.Fatalf("animation did not finish, value %v", n.Value())
		}
	}
}
