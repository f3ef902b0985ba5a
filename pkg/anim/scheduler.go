package anim

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// Default cadence.
const (
	DefaultPeriod             = 5000 * time.Millisecond
	DefaultTransition         = 1000 * time.Millisecond
	DefaultTimelineTransition = 800 * time.Millisecond
	DefaultTick               = 16 * time.Millisecond
)

// State is the scheduler's lifecycle state.
type State int

const (
	Idle State = iota
	Scheduled
	Transitioning
)

func (s State) String() string {
	switch s {
	case Scheduled:
		return "scheduled"
	case Transitioning:
		return "transitioning"
	}
	return "idle"
}

// Step is one progress report of a transition.
type Step struct {
	Task uuid.UUID
	// From is the last settled frame index, To the target.
	From, To int
	// T is eased progress in [0, 1].
	T float64
	// Start marks the first step of a transition. Hosts snapshot their
	// drawn state here and interpolate from it.
	Start bool
	// Done marks the last step. T is exactly 1.
	Done bool
}

// StepFunc receives transition progress. Timer-driven steps never overlap.
// A StepFunc may call Stop, Once, Cycle or Task.Cancel on its scheduler;
// while a step function runs, those calls do not wait for it to return.
type StepFunc func(Step)

// Option configures a [Scheduler].
type Option func(*Scheduler)

// WithPeriod sets the cycle period.
func WithPeriod(d time.Duration) Option {
	return func(s *Scheduler) {
		if d > 0 {
			s.period = d
		}
	}
}

// WithTransition sets the transition duration.
func WithTransition(d time.Duration) Option {
	return func(s *Scheduler) {
		if d > 0 {
			s.transition = d
		}
	}
}

// WithTick sets the interval between progress steps.
func WithTick(d time.Duration) Option {
	return func(s *Scheduler) {
		if d > 0 {
			s.tick = d
		}
	}
}

// WithEasing replaces [Ease].
func WithEasing(f func(float64) float64) Option {
	return func(s *Scheduler) {
		if f != nil {
			s.ease = f
		}
	}
}

// WithLogger sets the logger for task lifecycle messages.
func WithLogger(l *log.Logger) Option {
	return func(s *Scheduler) {
		if l != nil {
			s.logger = l
		}
	}
}

// Scheduler drives transitions between frames. The zero value is not
// usable; call [New].
type Scheduler struct {
	clock      Clock
	period     time.Duration
	transition time.Duration
	tick       time.Duration
	ease       func(float64) float64
	logger     *log.Logger

	mu   sync.Mutex
	idle *sync.Cond
	// busy is held by one caller at a time; step functions only run while
	// it is held. firing is set while the holder is inside a step function.
	busy   bool
	firing bool

	state   State
	gen     uint64
	task    *Task
	fn      StepFunc
	frames  int
	current int
	periodT Timer
	tickT   Timer
	trans   *transition
}

type transition struct {
	seq      uint64
	from, to int
	start    time.Time
}

// New returns an idle scheduler. A nil clock uses [SystemClock].
func New(clock Clock, opts ...Option) *Scheduler {
	if clock == nil {
		clock = SystemClock
	}
	s := &Scheduler{
		clock:      clock,
		period:     DefaultPeriod,
		transition: DefaultTransition,
		tick:       DefaultTick,
		ease:       Ease,
		logger:     log.NewWithOptions(io.Discard, log.Options{}),
	}
	s.idle = sync.NewCond(&s.mu)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current lifecycle state.
func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Current returns the last settled frame index.
func (s *Scheduler) Current() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Task returns the live task, or nil when idle.
func (s *Scheduler) Task() *Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.task
}

// Cycle advances through frames 0..frames-1 every period, wrapping around,
// starting from frame 0. A transition still in flight is retargeted to
// frame 0 immediately. Frames below 1 stop the scheduler.
func (s *Scheduler) Cycle(frames int, fn StepFunc) *Task {
	owner := s.enter()
	defer s.leave(owner)

	s.mu.Lock()
	inFlight := s.trans != nil
	task := s.openLocked(fn)
	if frames < 1 || fn == nil {
		s.closeLocked()
		s.mu.Unlock()
		return task
	}
	s.frames = frames
	s.state = Scheduled
	gen := s.gen
	s.periodT = s.clock.AfterFunc(s.period, func() { s.onPeriod(gen) })

	var first *Step
	if inFlight {
		st := s.startLocked(0)
		first = &st
	} else {
		s.current = 0
	}
	s.mu.Unlock()

	s.logger.Debug("cycle started", "task", task.ID, "frames", frames, "period", s.period)
	if first != nil {
		s.deliver(owner, fn, *first)
	}
	return task
}

// Once plays a single transition from the current frame to frame to, then
// goes idle. A transition still in flight is retargeted.
func (s *Scheduler) Once(to int, fn StepFunc) *Task {
	owner := s.enter()
	defer s.leave(owner)

	s.mu.Lock()
	task := s.openLocked(fn)
	if fn == nil {
		s.closeLocked()
		s.mu.Unlock()
		return task
	}
	s.frames = 0
	first := s.startLocked(to)
	s.mu.Unlock()

	s.logger.Debug("transition started", "task", task.ID, "to", to)
	s.deliver(owner, fn, first)
	return task
}

// Stop tears down the live task: timers are cancelled and no step function
// starts after Stop returns.
func (s *Scheduler) Stop() {
	owner := s.enter()
	defer s.leave(owner)
	s.mu.Lock()
	task := s.task
	s.closeLocked()
	s.mu.Unlock()
	if task != nil {
		s.logger.Debug("task stopped", "task", task.ID)
	}
}

// enter waits for the running call to finish and takes over, unless a step
// function is running. In that case the caller is the step function itself
// (or races with it) and proceeds without ownership.
func (s *Scheduler) enter() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for s.busy && !s.firing {
		s.idle.Wait()
	}
	if s.busy {
		return false
	}
	s.busy = true
	return true
}

// acquire is enter for timer callbacks, which always wait their turn.
func (s *Scheduler) acquire() {
	s.mu.Lock()
	for s.busy {
		s.idle.Wait()
	}
	s.busy = true
	s.mu.Unlock()
}

func (s *Scheduler) leave(owner bool) {
	if !owner {
		return
	}
	s.mu.Lock()
	s.busy = false
	s.idle.Broadcast()
	s.mu.Unlock()
}

// deliver runs fn without holding mu. The owner marks the scheduler as
// firing so fn may call back into it.
func (s *Scheduler) deliver(owner bool, fn StepFunc, st Step) {
	if owner {
		s.setFiring(true)
		defer s.setFiring(false)
	}
	fn(st)
}

func (s *Scheduler) setFiring(v bool) {
	s.mu.Lock()
	s.firing = v
	s.idle.Broadcast()
	s.mu.Unlock()
}

// openLocked closes the previous generation and starts a new one.
func (s *Scheduler) openLocked(fn StepFunc) *Task {
	s.closeLocked()
	s.task = &Task{ID: uuid.New(), gen: s.gen, s: s}
	s.fn = fn
	return s.task
}

// closeLocked stops timers and invalidates the generation. The settled
// frame index survives so a following Once starts from it.
func (s *Scheduler) closeLocked() {
	if s.periodT != nil {
		s.periodT.Stop()
		s.periodT = nil
	}
	if s.tickT != nil {
		s.tickT.Stop()
		s.tickT = nil
	}
	s.gen++
	s.trans = nil
	s.task = nil
	s.fn = nil
	s.state = Idle
}

// startLocked begins a transition toward to and arms the first tick.
func (s *Scheduler) startLocked(to int) Step {
	if s.tickT != nil {
		s.tickT.Stop()
	}
	var seq uint64 = 1
	if s.trans != nil {
		seq = s.trans.seq + 1
	}
	s.trans = &transition{seq: seq, from: s.current, to: to, start: s.clock.Now()}
	s.state = Transitioning
	s.armTickLocked()
	return Step{Task: s.task.ID, From: s.current, To: to, T: 0, Start: true}
}

func (s *Scheduler) armTickLocked() {
	gen, seq := s.gen, s.trans.seq
	s.tickT = s.clock.AfterFunc(s.tick, func() { s.onTick(gen, seq) })
}

func (s *Scheduler) onPeriod(gen uint64) {
	s.acquire()
	defer s.leave(true)

	s.mu.Lock()
	if gen != s.gen || s.frames < 1 {
		s.mu.Unlock()
		return
	}
	next := (s.current + 1) % s.frames
	if s.trans != nil {
		next = (s.trans.to + 1) % s.frames
	}
	st := s.startLocked(next)
	s.periodT = s.clock.AfterFunc(s.period, func() { s.onPeriod(gen) })
	fn := s.fn
	s.mu.Unlock()

	s.deliver(true, fn, st)
}

func (s *Scheduler) onTick(gen, seq uint64) {
	s.acquire()
	defer s.leave(true)

	s.mu.Lock()
	if gen != s.gen || s.trans == nil || s.trans.seq != seq {
		s.mu.Unlock()
		return
	}
	tr, fn := s.trans, s.fn
	raw := float64(s.clock.Now().Sub(tr.start)) / float64(s.transition)
	st := Step{Task: s.task.ID, From: tr.from, To: tr.to}
	if raw >= 1 {
		st.T, st.Done = 1, true
		s.current = tr.to
		s.trans = nil
		s.tickT = nil
		if s.frames > 0 {
			s.state = Scheduled
		} else {
			s.closeLocked()
		}
	} else {
		st.T = s.ease(raw)
		s.armTickLocked()
	}
	s.mu.Unlock()

	s.deliver(true, fn, st)
}

// Task is the handle of one scheduler generation.
type Task struct {
	ID  uuid.UUID
	gen uint64
	s   *Scheduler
}

// Cancel stops the scheduler if this task is still live. Cancelling a
// replaced or finished task does nothing.
func (t *Task) Cancel() {
	if t == nil || t.s == nil {
		return
	}
	owner := t.s.enter()
	defer t.s.leave(owner)
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if t.s.gen == t.gen && t.s.task == t {
		t.s.closeLocked()
	}
}

// Live reports whether the task still owns the scheduler.
func (t *Task) Live() bool {
	if t == nil || t.s == nil {
		return false
	}
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	return t.s.gen == t.gen && t.s.task == t
}
