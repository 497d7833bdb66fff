package projectile

import (
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/arsenal/combat"
	"github.com/lixenwraith/arsenal/engine"
	"github.com/lixenwraith/arsenal/event"
	"github.com/lixenwraith/arsenal/parameter"
	"github.com/lixenwraith/arsenal/tag"
	"github.com/lixenwraith/arsenal/vmath"
)

// Launch describes one projectile to fire
type Launch struct {
	Carrier       combat.Carrier
	Stats         *combat.WeaponStats
	Origin        combat.Anchor
	Destination   vmath.Vec3F
	TargetTags    tag.Set
	RicochetMask  tag.Mask
	PreNormalized bool
	// OnAchieved runs once when the flight ends, after the slot returned to the pool
	OnAchieved func()
}

// Launcher owns the projectile pool and interrupts every flight on level clear
type Launcher struct {
	env    Env
	pool   *engine.Pool[*Projectile]
	level  engine.Subscription
	logger zerolog.Logger

	statActive    *atomic.Int64
	statSpawned   *atomic.Int64
	statRicochets *atomic.Int64
}

// NewLauncher creates a launcher; env.Scene and env.Clock are required
func NewLauncher(env Env) *Launcher {
	env.withDefaults()
	l := &Launcher{
		env:           env,
		logger:        env.Logger.With().Str("component", "projectile").Logger(),
		statActive:    env.Registry.Ints.Get("projectile.active"),
		statSpawned:   env.Registry.Ints.Get("projectile.spawned"),
		statRicochets: env.Registry.Ints.Get("projectile.ricochets"),
	}
	l.pool = engine.NewPool(func() *Projectile { return newProjectile(l) }, parameter.ProjectilePoolCapacity)
	l.level = l.env.Bus.Subscribe(event.EventLevelCleared, func(event.GameEvent) { l.Clear() })
	return l
}

// Bus returns the bus flights publish on
func (l *Launcher) Bus() *event.Bus {
	return l.env.Bus
}

// Fire spawns a projectile of kind and starts its flight
// Returns false without spawning when the launch has no origin, stats or kind
func (l *Launcher) Fire(kind combat.ProjectileKind, shot Launch) (*Projectile, bool) {
	if shot.Origin == nil || shot.Stats == nil || kind == combat.ProjectileNone {
		return nil, false
	}
	h, p := l.pool.Spawn()
	p.handle = h
	p.kind = kind
	p.id = uuid.New()
	p.ricochet.mask = shot.RicochetMask

	cb := shot.OnAchieved
	p.Initialize(shot.Carrier, shot.Stats, shot.Origin, shot.Destination, shot.TargetTags, func() {
		l.release(p)
		if cb != nil {
			cb()
		}
	}, shot.PreNormalized)

	l.statSpawned.Add(1)
	l.statActive.Store(int64(l.pool.Active()))
	return p, true
}

// Active returns the number of live flights
func (l *Launcher) Active() int {
	return l.pool.Active()
}

// Each visits live flights
func (l *Launcher) Each(fn func(p *Projectile)) {
	l.pool.Each(func(_ engine.Handle, p *Projectile) { fn(p) })
}

// Clear interrupts every live flight and returns it to the pool without callbacks
func (l *Launcher) Clear() {
	n := 0
	l.pool.Each(func(_ engine.Handle, p *Projectile) {
		p.interrupt()
		l.release(p)
		n++
	})
	if n > 0 {
		l.logger.Debug().Int("flights", n).Msg("flights interrupted")
	}
}

// Close interrupts live flights and stops listening for level clears
func (l *Launcher) Close() {
	engine.DisposeAndNil(&l.level)
	l.Clear()
}

func (l *Launcher) release(p *Projectile) {
	if !l.pool.Despawn(p.handle) {
		return
	}
	p.detach()
	l.statActive.Store(int64(l.pool.Active()))
}
