package weapon

import (
	"time"

	"github.com/lixenwraith/arsenal/engine"
	"github.com/lixenwraith/arsenal/parameter"
)

// Ramp moves a progress value 0 → 1 over a duration on the variable tick
// The completion callback fires exactly once per run, when the value reaches 1
type Ramp struct {
	clock    Clock
	value    float64
	duration time.Duration
	elapsed  time.Duration
	sub      engine.Subscription
	onDone   func()
}

func newRamp(clock Clock) *Ramp {
	return &Ramp{clock: clock, value: parameter.RampCompleteValue}
}

// Start restarts the ramp from 0; a non-positive duration completes immediately
func (r *Ramp) Start(d time.Duration, onDone func()) {
	r.Cancel()
	r.duration = d
	r.elapsed = 0
	r.value = 0
	r.onDone = onDone
	if d <= 0 {
		r.complete()
		return
	}
	r.sub = r.clock.EveryFrame(parameter.PriorityWeaponRamp, r.tick)
}

func (r *Ramp) tick(dt time.Duration) engine.Step {
	r.elapsed += dt
	if r.elapsed < r.duration {
		r.value = r.elapsed.Seconds() / r.duration.Seconds()
		return engine.Continue
	}
	r.sub = nil
	r.complete()
	return engine.Stop
}

func (r *Ramp) complete() {
	r.value = parameter.RampCompleteValue
	fn := r.onDone
	r.onDone = nil
	if fn != nil {
		fn()
	}
}

// Cancel stops a running ramp where it is, without the callback
func (r *Ramp) Cancel() {
	engine.DisposeAndNil(&r.sub)
	r.onDone = nil
}

// Reset cancels and snaps the value to complete
func (r *Ramp) Reset() {
	r.Cancel()
	r.value = parameter.RampCompleteValue
}

// Value returns progress in [0,1]
func (r *Ramp) Value() float64 {
	return r.value
}

// Done reports a value of 1
func (r *Ramp) Done() bool {
	return r.value >= parameter.RampCompleteValue
}

// Running reports an active ramp
func (r *Ramp) Running() bool {
	return r.sub != nil
}

// Duration returns the length of the last run
func (r *Ramp) Duration() time.Duration {
	return r.duration
}
