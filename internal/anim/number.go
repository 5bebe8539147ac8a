package anim

import (
	"math"
	"sync"
	"time"
)

const (
	DefaultDuration = time.Second
	DefaultFrame    = time.Second / 60
)

type Clock interface {
	Now() time.Time
}

// Task is a scheduled frame that can be cancelled. *time.Timer satisfies it.
type Task interface {
	Stop() bool
}

type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Task
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

type timerScheduler struct{}

func (timerScheduler) AfterFunc(d time.Duration, fn func()) Task { return time.AfterFunc(d, fn) }

// Ease is the cubic ease-out curve 1-(1-t)^3 with t clamped to [0, 1].
func Ease(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	return 1 - math.Pow(1-t, 3)
}

type Options struct {
	Duration  time.Duration
	Frame     time.Duration
	Clock     Clock
	Scheduler Scheduler
	// OnFrame runs after every computed frame, outside the lock.
	OnFrame func(value float64)
}

// Number is a displayed value that eases toward its latest target on a
// background frame schedule. All methods are safe for concurrent use.
type Number struct {
	mu       sync.Mutex
	duration time.Duration
	frame    time.Duration
	clock    Clock
	sched    Scheduler
	onFrame  func(float64)

	from    float64
	target  float64
	value   float64
	started time.Time
	task    Task
	gen     uint64
	running bool
}

func NewNumber(initial float64, opts Options) *Number {
	if opts.Frame <= 0 {
		opts.Frame = DefaultFrame
	}
	if opts.Clock == nil {
		opts.Clock = systemClock{}
	}
	if opts.Scheduler == nil {
		opts.Scheduler = timerScheduler{}
	}
	return &Number{
		duration: opts.Duration,
		frame:    opts.Frame,
		clock:    opts.Clock,
		sched:    opts.Scheduler,
		onFrame:  opts.OnFrame,
		from:     initial,
		target:   initial,
		value:    initial,
	}
}

// Set starts a new animation from the current displayed value. Any animation
// already in flight is superseded and its pending frame cancelled.
func (n *Number) Set(target float64) {
	n.mu.Lock()
	n.cancelLocked()
	n.from = n.value
	n.target = target
	n.started = n.clock.Now()
	if n.duration <= 0 || n.from == target {
		n.value = target
		cb := n.onFrame
		n.mu.Unlock()
		if cb != nil {
			cb(target)
		}
		return
	}
	n.running = true
	gen := n.gen
	n.task = n.sched.AfterFunc(n.frame, func() { n.step(gen) })
	n.mu.Unlock()
}

func (n *Number) step(gen uint64) {
	n.mu.Lock()
	if gen != n.gen || !n.running {
		n.mu.Unlock()
		return
	}
	t := float64(n.clock.Now().Sub(n.started)) / float64(n.duration)
	if t >= 1 {
		n.value = n.target
		n.running = false
		n.task = nil
	} else {
		n.value = n.from + (n.target-n.from)*Ease(t)
		n.task = n.sched.AfterFunc(n.frame, func() { n.step(gen) })
	}
	v := n.value
	cb := n.onFrame
	n.mu.Unlock()
	if cb != nil {
		cb(v)
	}
}

// Stop cancels the in-flight animation and freezes the current value.
func (n *Number) Stop() {
	n.mu.Lock()
	n.cancelLocked()
	n.mu.Unlock()
}

func (n *Number) cancelLocked() {
	if n.task != nil {
		n.task.Stop()
		n.task = nil
	}
	n.gen++
	n.running = false
}

func (n *Number) Value() float64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.value
}

// Display is the current value rounded to two decimals.
func (n *Number) Display() float64 {
	return math.Round(n.Value()*100) / 100
}

func (n *Number) Target() float64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.target
}

func (n *Number) Running() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.running
}
