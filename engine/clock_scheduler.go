package engine

import (
	"sort"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/arsenal/parameter"
	"github.com/lixenwraith/arsenal/status"
)

// Phase selects which tick drives a task
type Phase int

const (
	// PhaseFixed runs once per accumulated fixed step (physics, linear flight)
	PhaseFixed Phase = iota
	// PhaseVariable runs once per frame with the raw frame delta (ramps, polls, timers)
	PhaseVariable
	phaseCount
)

func (p Phase) String() string {
	switch p {
	case PhaseFixed:
		return "fixed"
	case PhaseVariable:
		return "variable"
	default:
		return "unknown"
	}
}

// Step is a task's verdict after each tick
type Step int

const (
	Continue Step = iota
	Stop
)

// TaskFunc is invoked with the tick delta of its phase
type TaskFunc func(dt time.Duration) Step

type task struct {
	phase    Phase
	priority int
	seq      uint64
	fn       TaskFunc
	dead     bool
}

// ClockScheduler drives cooperative per-tick tasks on a fixed and a variable phase
// Single-threaded: every method must be called from the owning loop
// Tasks added during a pass start on the next pass of their phase
type ClockScheduler struct {
	fixedStep   time.Duration
	accumulator time.Duration
	elapsed     time.Duration

	tasks   [phaseCount][]*task
	pending [phaseCount][]*task
	running [phaseCount]bool
	seq     uint64

	frame      int64
	fixedTicks int64

	// Cached metric pointers
	statTicks  *atomic.Int64
	statFrames *atomic.Int64
	statTasks  *atomic.Int64
}

// NewClockScheduler creates a scheduler with the given fixed step; reg may be nil
func NewClockScheduler(fixedStep time.Duration, reg *status.Registry) *ClockScheduler {
	if fixedStep <= 0 {
		fixedStep = parameter.FixedTick
	}
	if reg == nil {
		reg = status.NewRegistry()
	}
	return &ClockScheduler{
		fixedStep:  fixedStep,
		statTicks:  reg.Ints.Get("engine.ticks"),
		statFrames: reg.Ints.Get("engine.frames"),
		statTasks:  reg.Ints.Get("engine.tasks"),
	}
}

// FixedStep returns the fixed tick length
func (cs *ClockScheduler) FixedStep() time.Duration {
	return cs.fixedStep
}

// Frame returns the number of Advance calls so far
func (cs *ClockScheduler) Frame() int64 {
	return cs.frame
}

// FixedTicks returns the number of fixed steps run so far
func (cs *ClockScheduler) FixedTicks() int64 {
	return cs.fixedTicks
}

// Elapsed returns total advanced time
func (cs *ClockScheduler) Elapsed() time.Duration {
	return cs.elapsed
}

// Every registers fn on the given phase until it returns Stop or is disposed
func (cs *ClockScheduler) Every(phase Phase, priority int, fn TaskFunc) Subscription {
	if fn == nil || phase < 0 || phase >= phaseCount {
		return NopSubscription
	}
	cs.seq++
	t := &task{phase: phase, priority: priority, seq: cs.seq, fn: fn}
	if cs.running[phase] {
		cs.pending[phase] = append(cs.pending[phase], t)
	} else {
		cs.insert(t)
	}
	cs.statTasks.Add(1)
	return NewSubscription(func() { cs.kill(t) })
}

// EveryFixed is Every on the fixed phase
func (cs *ClockScheduler) EveryFixed(priority int, fn TaskFunc) Subscription {
	return cs.Every(PhaseFixed, priority, fn)
}

// EveryFrame is Every on the variable phase
func (cs *ClockScheduler) EveryFrame(priority int, fn TaskFunc) Subscription {
	return cs.Every(PhaseVariable, priority, fn)
}

// After calls fn once when delay of variable-phase time has accumulated
// A zero delay fires on the next variable tick
func (cs *ClockScheduler) After(delay time.Duration, fn func()) Subscription {
	var waited time.Duration
	return cs.Every(PhaseVariable, parameter.PriorityTimer, func(dt time.Duration) Step {
		waited += dt
		if waited < delay {
			return Continue
		}
		fn()
		return Stop
	})
}

// Advance runs all fixed steps covered by frameDt, then the variable phase once
func (cs *ClockScheduler) Advance(frameDt time.Duration) {
	if frameDt < 0 {
		frameDt = 0
	}
	cs.frame++
	cs.elapsed += frameDt
	cs.statFrames.Store(cs.frame)

	cs.accumulator += frameDt
	steps := 0
	for cs.accumulator >= cs.fixedStep {
		if steps >= parameter.MaxFixedStepsPerFrame {
			// Drop backlog rather than spiral
			cs.accumulator %= cs.fixedStep
			break
		}
		cs.StepFixed()
		cs.accumulator -= cs.fixedStep
		steps++
	}

	cs.run(PhaseVariable, frameDt)
}

// StepFixed runs exactly one fixed tick without touching the accumulator
func (cs *ClockScheduler) StepFixed() {
	cs.fixedTicks++
	cs.statTicks.Store(cs.fixedTicks)
	cs.run(PhaseFixed, cs.fixedStep)
}

// Len returns live task count for a phase
func (cs *ClockScheduler) Len(phase Phase) int {
	n := 0
	for _, t := range cs.tasks[phase] {
		if !t.dead {
			n++
		}
	}
	for _, t := range cs.pending[phase] {
		if !t.dead {
			n++
		}
	}
	return n
}

// Clear kills every task on both phases
func (cs *ClockScheduler) Clear() {
	for p := range cs.tasks {
		for _, t := range cs.tasks[p] {
			cs.kill(t)
		}
		for _, t := range cs.pending[p] {
			cs.kill(t)
		}
	}
}

func (cs *ClockScheduler) run(phase Phase, dt time.Duration) {
	if cs.running[phase] {
		return
	}
	cs.running[phase] = true
	list := cs.tasks[phase]
	for _, t := range list {
		if t.dead {
			continue
		}
		if t.fn(dt) == Stop {
			cs.kill(t)
		}
	}
	cs.running[phase] = false

	cs.compact(phase)
	if len(cs.pending[phase]) > 0 {
		pending := cs.pending[phase]
		cs.pending[phase] = nil
		for _, t := range pending {
			if !t.dead {
				cs.insert(t)
			}
		}
	}
}

func (cs *ClockScheduler) kill(t *task) {
	if t.dead {
		return
	}
	t.dead = true
	cs.statTasks.Add(-1)
}

func (cs *ClockScheduler) insert(t *task) {
	list := cs.tasks[t.phase]
	i := sort.Search(len(list), func(i int) bool {
		if list[i].priority != t.priority {
			return list[i].priority > t.priority
		}
		return list[i].seq > t.seq
	})
	list = append(list, nil)
	copy(list[i+1:], list[i:])
	list[i] = t
	cs.tasks[t.phase] = list
}

func (cs *ClockScheduler) compact(phase Phase) {
	list := cs.tasks[phase]
	w := 0
	for _, t := range list {
		if !t.dead {
			list[w] = t
			w++
		}
	}
	for i := w; i < len(list); i++ {
		list[i] = nil
	}
	cs.tasks[phase] = list[:w]
}
