package projectile

import (
	"github.com/google/uuid"

	"github.com/lixenwraith/arsenal/combat"
	"github.com/lixenwraith/arsenal/core"
	"github.com/lixenwraith/arsenal/engine"
	"github.com/lixenwraith/arsenal/event"
	"github.com/lixenwraith/arsenal/parameter"
	"github.com/lixenwraith/arsenal/physics"
	"github.com/lixenwraith/arsenal/tag"
	"github.com/lixenwraith/arsenal/vmath"
)

// motion is one flight model; exactly one drives a projectile per pooled use
type motion interface {
	launch(p *Projectile)
	contact(p *Projectile, c physics.Contact)
	// end releases model resources; runs on finish and on interruption
	end(p *Projectile)
}

// Projectile is a pooled flight: a body, a motion model and a completion callback
type Projectile struct {
	launcher *Launcher
	env      *Env
	handle   engine.Handle
	kind     combat.ProjectileKind
	id       uuid.UUID
	body     *physics.Body

	stats      *combat.WeaponStats
	carrier    combat.Carrier
	targetTags tag.Set
	start      vmath.Vec3F
	target     vmath.Vec3F
	step       vmath.Vec3F
	onAchieved func()

	initialized     bool
	deactivated     bool
	flightCompleted bool

	moveSub    engine.Subscription
	spinSub    engine.Subscription
	contactSub engine.Subscription
	motion     motion

	bullet   bulletMotion
	ricochet ricochetMotion
	throw    throwMotion
}

func newProjectile(l *Launcher) *Projectile {
	p := &Projectile{launcher: l, env: &l.env}
	half := vmath.Vec3F{X: parameter.ProjectileHalfExtent, Y: parameter.ProjectileHalfExtent, Z: parameter.ProjectileHalfExtent}
	p.body = physics.NewBody(l.env.Entities.Next(), tag.Projectile, half)
	p.body.Data = p
	return p
}

// Reset clears per-flight state before the slot is reused
func (p *Projectile) Reset() {
	p.kind = combat.ProjectileNone
	p.id = uuid.Nil
	p.stats = nil
	p.carrier = nil
	p.targetTags = nil
	p.start, p.target, p.step = vmath.Vec3F{}, vmath.Vec3F{}, vmath.Vec3F{}
	p.onAchieved = nil
	p.initialized = false
	p.deactivated = false
	p.flightCompleted = false
	p.motion = nil
	p.bullet = bulletMotion{}
	p.ricochet.reset()
	p.throw = throwMotion{}

	p.body.Velocity = vmath.Vec3F{}
	p.body.AngularVelocity = vmath.Vec3F{}
	p.body.Yaw = 0
	p.body.Grounded = false
}

// Initialize starts the flight from origin toward destination
// With preNormalized the destination is a unit direction instead of a point
// A nil origin is a no-op; a second call on the same pooled use is ignored
func (p *Projectile) Initialize(carrier combat.Carrier, stats *combat.WeaponStats, origin combat.Anchor,
	destination vmath.Vec3F, targetTags tag.Set, onAchieved func(), preNormalized bool) *Projectile {
	if origin == nil || stats == nil || p.initialized {
		return p
	}
	p.initialized = true
	p.flightCompleted = false
	p.deactivated = false

	p.carrier = carrier
	p.stats = stats
	p.targetTags = targetTags
	p.onAchieved = onAchieved

	pos := origin.Position()
	p.start = pos
	p.body.Teleport(pos)

	perTick := p.env.Clock.FixedStep().Seconds() * stats.ProjectileSpeed
	if preNormalized {
		dir := vmath.V3FWithY(destination, 0)
		p.target = vmath.V3FAdd(pos, dir)
		p.step = vmath.V3FScale(dir, perTick)
	} else {
		p.target = vmath.V3FWithY(destination, pos.Y)
		p.step = vmath.V3FScale(vmath.V3FNormalize(vmath.V3FSub(p.target, pos)), perTick)
	}
	p.body.LookAt(p.target)

	p.env.Scene.Add(p.body)
	p.contactSub = p.body.OnContact(p.onContact)

	switch p.kind {
	case combat.ProjectileRicochet:
		p.motion = &p.ricochet
	case combat.ProjectileGrenade:
		p.throw.grenade = true
		p.motion = &p.throw
	case combat.ProjectileRocket:
		p.motion = &p.throw
	default:
		p.motion = &p.bullet
	}
	p.motion.launch(p)

	p.env.Bus.Publish(event.EventProjectileSpawned, p.payload())
	return p
}

// Deactivate ends the flight without damage; cleanup and the callback still run once
func (p *Projectile) Deactivate() {
	if !p.initialized || p.flightCompleted {
		return
	}
	p.deactivated = true
	p.finish()
}

func (p *Projectile) onContact(c physics.Contact) {
	if p.flightCompleted || p.motion == nil {
		return
	}
	p.motion.contact(p, c)
}

// finish ends the flight: stops motion, plays impact feedback and invokes the callback once
func (p *Projectile) finish() {
	if p.flightCompleted {
		return
	}
	p.flightCompleted = true
	p.stopMotion()
	p.deactivated = false
	if p.motion != nil {
		p.motion.end(p)
	}
	p.playImpact()
	p.env.Bus.Publish(event.EventProjectileFinished, p.payload())

	cb := p.onAchieved
	p.onAchieved = nil
	if cb != nil {
		cb()
	}
}

// interrupt cancels the flight silently; the callback is dropped
func (p *Projectile) interrupt() {
	if !p.initialized {
		return
	}
	p.flightCompleted = true
	p.onAchieved = nil
	p.stopMotion()
	if p.motion != nil {
		p.motion.end(p)
	}
}

// detach removes the body and every subscription; runs when the slot returns to the pool
func (p *Projectile) detach() {
	p.stopMotion()
	engine.DisposeAndNil(&p.contactSub)
	if p.motion != nil {
		p.motion.end(p)
	}
	p.env.Scene.Remove(p.body)
}

func (p *Projectile) stopMotion() {
	engine.DisposeAndNil(&p.moveSub)
	engine.DisposeAndNil(&p.spinSub)
}

// aim points the flight at dest from the current position
func (p *Projectile) aim(dest vmath.Vec3F) {
	p.start = p.body.Position
	p.target = dest
	perTick := p.env.Clock.FixedStep().Seconds() * p.stats.ProjectileSpeed
	p.step = vmath.V3FScale(vmath.V3FNormalize(vmath.V3FSub(dest, p.start)), perTick)
	p.body.LookAt(dest)
}

// damage applies scaled damage and push to the receiver behind other
func (p *Projectile) damage(other *physics.Body) bool {
	r, ok := p.receiverOf(other)
	if !ok {
		return false
	}
	amount := combat.ScaledDamage(p.stats.Damage, p.stats.DamageScaler)
	r.MakeDamage(amount, combat.SenderOf(p.carrier), 0, true)
	r.Push(combat.PushAlong(vmath.V3FSub(other.Position, p.start), p.stats.PushForce), true)
	return true
}

func (p *Projectile) receiverOf(b *physics.Body) (combat.DamageReceiver, bool) {
	if r, ok := p.env.Caps.Receiver(b.Entity); ok {
		return r, true
	}
	if owner := b.Owner(); owner != b.Entity {
		return p.env.Caps.Receiver(owner)
	}
	return nil, false
}

func (p *Projectile) playImpact() {
	pos := p.body.Position
	if p.stats.ImpactSound != core.SoundNone {
		p.env.Sound.Play(p.stats.ImpactSound, pos)
	}
	if p.stats.ImpactEffect != core.EffectNone {
		at := pos
		if p.stats.EffectOnTargetCenter {
			at = p.target
		}
		p.env.Effects.Spawn(p.stats.ImpactEffect, at, p.body.Yaw, 0)
	}
}

func (p *Projectile) payload() *event.FlightPayload {
	pl := &event.FlightPayload{
		FlightID: p.id,
		Kind:     p.kind.String(),
		Position: p.body.Position,
	}
	if p.carrier != nil {
		pl.Carrier = p.carrier.Entity()
	}
	if p.stats != nil {
		pl.Weapon = p.stats.Name
	}
	return pl
}

// isObstacle reports static level geometry
func isObstacle(b *physics.Body) bool {
	return b.Layer == tag.StaticObstacle || (b.Tags != nil && b.Tags.Has(tag.StaticObstacle))
}

// ID returns the flight id of the current use
func (p *Projectile) ID() uuid.UUID { return p.id }

// Carrier returns the actor that fired the current flight
func (p *Projectile) Carrier() combat.Carrier { return p.carrier }

// Kind returns the motion model of the current use
func (p *Projectile) Kind() combat.ProjectileKind { return p.kind }

// Body returns the collider
func (p *Projectile) Body() *physics.Body { return p.body }

// Position implements combat.Anchor
func (p *Projectile) Position() vmath.Vec3F { return p.body.Position }

// Target returns the current aim point
func (p *Projectile) Target() vmath.Vec3F { return p.target }

// Step returns the per fixed tick displacement of linear flights
func (p *Projectile) Step() vmath.Vec3F { return p.step }

// FlightCompleted reports whether the flight has ended
func (p *Projectile) FlightCompleted() bool { return p.flightCompleted }

// Active reports a launched flight that has not ended
func (p *Projectile) Active() bool { return p.initialized && !p.flightCompleted }

// Handle returns the pool handle of the current use
func (p *Projectile) Handle() engine.Handle { return p.handle }
