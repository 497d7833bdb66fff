package arena

import (
	"time"

	"github.com/lixenwraith/arsenal/combat"
	"github.com/lixenwraith/arsenal/core"
	"github.com/lixenwraith/arsenal/engine"
	"github.com/lixenwraith/arsenal/parameter"
	"github.com/lixenwraith/arsenal/vmath"
)

// Effect is one visible effect instance
type Effect struct {
	Type  core.EffectType
	At    vmath.Vec3F
	Yaw   float64
	Scale float64
	Age   time.Duration
}

type attached struct {
	kind   core.EffectType
	anchor combat.Anchor
	scale  float64
	dead   bool
}

// Effects records spawned effects for the renderer and ages them on the variable tick
// One-shot effects expire after EffectLifetime; attached ones follow their anchor until disposed
type Effects struct {
	live     []Effect
	attached []*attached
	counts   [core.EffectTypeCount]int
	tick     engine.Subscription
}

// NewEffects creates an effect log driven by clock
func NewEffects(clock interface {
	EveryFrame(priority int, fn engine.TaskFunc) engine.Subscription
}) *Effects {
	e := &Effects{}
	e.tick = clock.EveryFrame(parameter.PriorityDiagnostics, func(dt time.Duration) engine.Step {
		e.age(dt)
		return engine.Continue
	})
	return e
}

// Spawn implements service.EffectSpawner
func (e *Effects) Spawn(kind core.EffectType, at vmath.Vec3F, yaw, scale float64) {
	if kind <= core.EffectNone || kind >= core.EffectTypeCount {
		return
	}
	if len(e.live) >= parameter.EffectCapacity {
		e.live = append(e.live[:0], e.live[1:]...)
	}
	e.live = append(e.live, Effect{Type: kind, At: at, Yaw: yaw, Scale: scale})
	e.counts[kind]++
}

// Attach implements service.EffectSpawner
func (e *Effects) Attach(kind core.EffectType, anchor combat.Anchor, scale float64) engine.Subscription {
	if anchor == nil || kind <= core.EffectNone || kind >= core.EffectTypeCount {
		return engine.NopSubscription
	}
	at := &attached{kind: kind, anchor: anchor, scale: scale}
	e.attached = append(e.attached, at)
	e.counts[kind]++
	return engine.NewSubscription(func() {
		at.dead = true
		out := e.attached[:0]
		for _, x := range e.attached {
			if !x.dead {
				out = append(out, x)
			}
		}
		clear(e.attached[len(out):])
		e.attached = out
	})
}

func (e *Effects) age(dt time.Duration) {
	keep := e.live[:0]
	for _, fx := range e.live {
		fx.Age += dt
		if fx.Age < parameter.EffectLifetime {
			keep = append(keep, fx)
		}
	}
	e.live = keep
}

// Each visits live one-shot effects, then attached effects at their anchor's current position
func (e *Effects) Each(fn func(fx Effect)) {
	for _, fx := range e.live {
		fn(fx)
	}
	for _, at := range e.attached {
		fn(Effect{Type: at.kind, At: at.anchor.Position(), Scale: at.scale})
	}
}

// Count returns how many effects of kind were ever spawned or attached
func (e *Effects) Count(kind core.EffectType) int {
	if kind < 0 || kind >= core.EffectTypeCount {
		return 0
	}
	return e.counts[kind]
}

// Live is the number of visible one-shot effects
func (e *Effects) Live() int { return len(e.live) }

// Attached is the number of effects following an anchor
func (e *Effects) Attached() int { return len(e.attached) }

// Close stops ageing
func (e *Effects) Close() {
	engine.DisposeAndNil(&e.tick)
}
