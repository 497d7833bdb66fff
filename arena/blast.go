package arena

import (
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/arsenal/combat"
	"github.com/lixenwraith/arsenal/core"
	"github.com/lixenwraith/arsenal/engine"
	"github.com/lixenwraith/arsenal/event"
	"github.com/lixenwraith/arsenal/explosion"
	"github.com/lixenwraith/arsenal/parameter"
	"github.com/lixenwraith/arsenal/physics"
	"github.com/lixenwraith/arsenal/projectile"
	"github.com/lixenwraith/arsenal/service"
	"github.com/lixenwraith/arsenal/vmath"
)

// Blast resolves an area explosion around a projectile body
// Damage falls off linearly with distance down to ExplosionFalloffMin at the edge;
// every victim is pushed away from the center
type Blast struct {
	arena   *Arena
	body    *physics.Body
	profile combat.ExplosionStats
	sender  combat.DamageSender
	sound   service.SoundPlayer
	effects service.EffectSpawner
	logger  zerolog.Logger

	fuse     engine.Subscription
	handlers []func()
	exploded bool
	resolved bool
	disposed bool
	victims  int
}

func (a *Arena) blastFactory(sound service.SoundPlayer, fx service.EffectSpawner) explosion.Factory {
	logger := a.logger.With().Str("component", "blast").Logger()
	return explosion.FactoryFunc(func(body *physics.Body, profile combat.ExplosionStats) explosion.Process {
		b := &Blast{
			arena:   a,
			body:    body,
			profile: profile,
			sender:  combat.SenderEnemy,
			sound:   sound,
			effects: fx,
			logger:  logger,
		}
		if p, ok := body.Data.(*projectile.Projectile); ok {
			b.sender = combat.SenderOf(p.Carrier())
		}
		return b
	})
}

// Explode starts the fuse, or resolves now when the fuse is zero
func (b *Blast) Explode() {
	if b.exploded || b.disposed {
		return
	}
	b.exploded = true
	if b.profile.FuseDelay <= 0 {
		b.resolve()
		return
	}
	var waited time.Duration
	b.fuse = b.arena.clock.EveryFrame(parameter.PriorityFuse, func(dt time.Duration) engine.Step {
		if b.disposed {
			return engine.Stop
		}
		waited += dt
		if waited < b.profile.FuseDelay {
			return engine.Continue
		}
		b.fuse = nil
		b.resolve()
		return engine.Stop
	})
}

func (b *Blast) resolve() {
	if b.resolved {
		return
	}
	b.resolved = true
	center := b.body.Position

	seen := make(map[core.Entity]struct{})
	if b.profile.Radius > 0 && len(b.profile.TriggerTags) > 0 {
		for _, hit := range b.arena.scene.OverlapSphere(center, b.profile.Radius, b.profile.TriggerTags.Mask(), 0) {
			owner := hit.Owner()
			if _, dup := seen[owner]; dup || hit == b.body {
				continue
			}
			r, ok := b.arena.caps.Receiver(hit.Entity)
			if !ok {
				r, ok = b.arena.caps.Receiver(owner)
			}
			if !ok || !r.IsAlive() {
				continue
			}
			seen[owner] = struct{}{}

			d := vmath.V3FDist(center, hit.Position)
			f := falloff(d, b.profile.Radius)
			dmg := int64(math.Floor(float64(b.profile.Damage) * parameter.ExplosionDamageScale * f))
			r.MakeDamage(dmg, b.sender, 0, true)
			if b.profile.Force > 0 {
				r.Push(combat.PushAlong(vmath.V3FSub(hit.Position, center), b.profile.Force*f), false)
			}
		}
	}
	b.victims = len(seen)

	b.sound.Play(core.SoundExplosion, center)
	b.effects.Spawn(core.EffectExplosion, center, 0, b.profile.Radius)
	b.arena.bus.Publish(event.EventExploded, &event.ExplodedPayload{
		Position: center,
		Radius:   b.profile.Radius,
		Victims:  b.victims,
	})
	b.logger.Debug().Float64("radius", b.profile.Radius).Int("victims", b.victims).Msg("blast resolved")

	handlers := b.handlers
	b.handlers = nil
	for _, fn := range handlers {
		if fn != nil && !b.disposed {
			fn()
		}
	}
}

// falloff scales damage from 1 at the center to ExplosionFalloffMin at the radius
func falloff(d, radius float64) float64 {
	if radius <= 0 {
		return 1
	}
	f := 1 - d/radius
	return max(parameter.ExplosionFalloffMin, min(1, f))
}

// OnExploded registers fn to run once the blast resolves
func (b *Blast) OnExploded(fn func()) engine.Subscription {
	if fn == nil || b.disposed || b.resolved {
		return engine.NopSubscription
	}
	b.handlers = append(b.handlers, fn)
	i := len(b.handlers) - 1
	return engine.NewSubscription(func() {
		if i < len(b.handlers) {
			b.handlers[i] = nil
		}
	})
}

// Dispose cancels a burning fuse and drops handlers
func (b *Blast) Dispose() {
	if b.disposed {
		return
	}
	b.disposed = true
	engine.DisposeAndNil(&b.fuse)
	b.handlers = nil
}

// Victims is the number of receivers damaged by the resolved blast
func (b *Blast) Victims() int { return b.victims }
