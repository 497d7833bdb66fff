package projectile

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/arsenal/combat"
	"github.com/lixenwraith/arsenal/core"
	"github.com/lixenwraith/arsenal/engine"
	"github.com/lixenwraith/arsenal/event"
	"github.com/lixenwraith/arsenal/explosion"
	"github.com/lixenwraith/arsenal/physics"
	"github.com/lixenwraith/arsenal/service"
	"github.com/lixenwraith/arsenal/status"
	"github.com/lixenwraith/arsenal/vmath"
)

// Clock schedules flight tasks; *engine.ClockScheduler satisfies it
type Clock interface {
	EveryFixed(priority int, fn engine.TaskFunc) engine.Subscription
	EveryFrame(priority int, fn engine.TaskFunc) engine.Subscription
	FixedStep() time.Duration
}

// Env bundles the collaborators every flight shares
// Scene and Clock are required; the rest fall back to no-op or fresh instances
type Env struct {
	Clock      Clock
	Scene      *physics.Scene
	Bus        *event.Bus
	Caps       *combat.Capabilities
	Sound      service.SoundPlayer
	Effects    service.EffectSpawner
	Explosions explosion.Factory
	Entities   *core.EntityAllocator
	Rand       *vmath.FastRand
	Registry   *status.Registry
	Logger     zerolog.Logger

	// SettleSpeed overrides the settle threshold of explosive flights; zero keeps the default
	SettleSpeed float64
}

func (e *Env) withDefaults() {
	if e.Bus == nil {
		e.Bus = event.NewBus()
	}
	if e.Caps == nil {
		e.Caps = combat.NewCapabilities()
	}
	if e.Sound == nil {
		e.Sound = service.NopSound{}
	}
	if e.Effects == nil {
		e.Effects = service.NopEffects{}
	}
	if e.Explosions == nil {
		e.Explosions = explosion.ImmediateFactory
	}
	if e.Entities == nil {
		e.Entities = &core.EntityAllocator{}
	}
	if e.Rand == nil {
		e.Rand = vmath.NewFastRand(uint64(time.Now().UnixNano()))
	}
	if e.Registry == nil {
		e.Registry = status.NewRegistry()
	}
}
