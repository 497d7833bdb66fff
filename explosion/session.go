package explosion

import (
	"sync/atomic"
	"time"

	"github.com/lixenwraith/arsenal/engine"
	"github.com/lixenwraith/arsenal/parameter"
	"github.com/lixenwraith/arsenal/physics"
	"github.com/lixenwraith/arsenal/status"
)

// State is the lifecycle position of a session
type State int

const (
	StateArmed State = iota
	StateWaitingToSettle
	StateArmedInstant
	StateDetonated
	StateDisposed
)

func (s State) String() string {
	switch s {
	case StateArmed:
		return "armed"
	case StateWaitingToSettle:
		return "waiting_to_settle"
	case StateArmedInstant:
		return "armed_instant"
	case StateDetonated:
		return "detonated"
	case StateDisposed:
		return "disposed"
	default:
		return "unknown"
	}
}

// Ticker schedules per-frame polls
type Ticker interface {
	EveryFrame(priority int, fn engine.TaskFunc) engine.Subscription
}

// Session gates one projectile's blast: it waits for the body to settle, or
// detonates on request when instant, and reports completion exactly once
type Session struct {
	body    *physics.Body
	process Process
	ticker  Ticker
	instant bool
	settle  float64

	state      State
	poll       engine.Subscription
	exploded   engine.Subscription
	onComplete func()
	onDetonate func()
	completed  bool

	statDetonations *atomic.Int64
}

// Options tunes a session; zero values fall back to parameter defaults
type Options struct {
	SettleSpeed float64
	Registry    *status.Registry
}

// NewSession binds process to body; nothing runs until Arm
func NewSession(body *physics.Body, process Process, ticker Ticker, instant bool, opts Options) *Session {
	settle := opts.SettleSpeed
	if settle <= 0 {
		settle = parameter.SettleSpeedThreshold
	}
	reg := opts.Registry
	if reg == nil {
		reg = status.NewRegistry()
	}
	return &Session{
		body:            body,
		process:         process,
		ticker:          ticker,
		instant:         instant,
		settle:          settle,
		statDetonations: reg.Ints.Get("explosion.detonations"),
	}
}

// State returns the current lifecycle position
func (s *Session) State() State {
	return s.state
}

// Instant reports whether the session skips the settle wait
func (s *Session) Instant() bool {
	return s.instant
}

// Arm registers onComplete and starts waiting
// Instant sessions detonate immediately; others poll body speed every frame
// Arm is effective once; later calls are ignored
func (s *Session) Arm(onComplete func()) {
	if s.state != StateArmed {
		return
	}
	s.onComplete = onComplete
	s.exploded = s.process.OnExploded(s.complete)

	if s.instant {
		s.state = StateArmedInstant
		s.detonate()
		return
	}

	s.state = StateWaitingToSettle
	s.poll = s.ticker.EveryFrame(parameter.PrioritySettlePoll, s.pollSettle)
}

// OnDetonate sets a hook that runs right before the process is asked to explode
func (s *Session) OnDetonate(fn func()) {
	s.onDetonate = fn
}

// Detonate forces an armed session to explode now
func (s *Session) Detonate() {
	switch s.state {
	case StateWaitingToSettle, StateArmedInstant:
		s.detonate()
	}
}

func (s *Session) pollSettle(time.Duration) engine.Step {
	if s.state != StateWaitingToSettle {
		return engine.Stop
	}
	if s.body == nil || s.body.Destroyed() {
		s.poll = nil
		return engine.Stop
	}
	if s.body.Speed() >= s.settle {
		return engine.Continue
	}
	s.poll = nil
	s.detonate()
	return engine.Stop
}

func (s *Session) detonate() {
	engine.DisposeAndNil(&s.poll)
	s.state = StateDetonated
	s.statDetonations.Add(1)
	if s.onDetonate != nil {
		s.onDetonate()
	}
	s.process.Explode()
}

func (s *Session) complete() {
	if s.completed || s.state == StateDisposed {
		return
	}
	s.completed = true
	engine.DisposeAndNil(&s.exploded)
	if s.onComplete != nil {
		s.onComplete()
	}
}

// Completed reports whether the completion signal has fired
func (s *Session) Completed() bool {
	return s.completed
}

// Dispose cancels the poll, drops the completion handler and disposes the process
func (s *Session) Dispose() {
	if s.state == StateDisposed {
		return
	}
	s.state = StateDisposed
	engine.DisposeAndNil(&s.poll)
	engine.DisposeAndNil(&s.exploded)
	s.onComplete = nil
	s.onDetonate = nil
	if s.process != nil {
		s.process.Dispose()
	}
}
