package arena

import (
	"time"

	"github.com/lixenwraith/arsenal/combat"
	"github.com/lixenwraith/arsenal/core"
	"github.com/lixenwraith/arsenal/event"
	"github.com/lixenwraith/arsenal/parameter"
	"github.com/lixenwraith/arsenal/physics"
	"github.com/lixenwraith/arsenal/tag"
	"github.com/lixenwraith/arsenal/vmath"
	"github.com/lixenwraith/arsenal/weapon"
)

// ActorSpec describes an actor to spawn
type ActorSpec struct {
	Name     string
	Player   bool
	Position vmath.Vec3F // Ground point; the body is lifted to stand on it
	Health   int64
	Weapon   string // Catalog entry installed on spawn; empty leaves the actor unarmed
}

// Actor is a combatant: it carries a weapon, can be targeted, damaged and pushed
type Actor struct {
	arena  *Arena
	id     core.Entity
	name   string
	player bool

	body   *physics.Body
	shield *physics.Body
	facing float64

	health    int64
	maxHealth int64
	alive     bool
	alerted   bool
	radius    float64
	knock     vmath.Vec3F

	installer *weapon.Installer
}

// muzzle is the live spawn anchor of an actor
type muzzle struct{ a *Actor }

func (m muzzle) Position() vmath.Vec3F {
	fwd := vmath.V3FRotateY(vmath.Vec3F{Z: 1}, m.a.facing)
	p := vmath.V3FAdd(m.a.body.Position, vmath.V3FScale(fwd, parameter.MuzzleForward))
	p.Y += parameter.MuzzleHeight
	return p
}

func (a *Actor) Entity() core.Entity { return a.id }

func (a *Actor) Position() vmath.Vec3F { return a.body.Position }

func (a *Actor) IsPlayer() bool { return a.player }

// EnemyTags lists what this actor's weapons may hit
func (a *Actor) EnemyTags() tag.Set {
	if a.player {
		return tag.Of(tag.Enemy, tag.EnemyHitBox, tag.Destructible)
	}
	return tag.Of(tag.Player, tag.PlayerHitBox, tag.Ally)
}

// Muzzle is nil once the actor is dead
func (a *Actor) Muzzle() combat.Anchor {
	if !a.alive {
		return nil
	}
	return muzzle{a}
}

func (a *Actor) IsAlive() bool { return a.alive }

// MakeDamage subtracts health now, or after delay on the variable clock
// checkNoise alerts a non-player actor
func (a *Actor) MakeDamage(amount int64, sender combat.DamageSender, delay time.Duration, checkNoise bool) {
	if delay > 0 {
		a.arena.clock.After(delay, func() { a.MakeDamage(amount, sender, 0, checkNoise) })
		return
	}
	if !a.alive || amount <= 0 {
		return
	}
	if checkNoise && !a.player {
		a.alerted = true
	}
	a.health -= amount
	if a.health <= 0 {
		a.health = 0
		a.alive = false
	}
	a.arena.bus.Publish(event.EventDamageDealt, &event.DamagePayload{
		Target: a.id,
		Amount: amount,
		Sender: sender.String(),
		Alive:  a.alive,
	})
	if !a.alive {
		a.arena.kill(a, sender)
	}
}

// Push adds knockback velocity that decays on the fixed tick
func (a *Actor) Push(force vmath.Vec3F, zeroY bool) {
	if !a.alive {
		return
	}
	if zeroY {
		force.Y = 0
	}
	a.knock = vmath.V3FAdd(a.knock, force)
}

// ChangeRadius implements weapon.RadiusSensor
func (a *Actor) ChangeRadius(r float64) { a.radius = r }

// SetShield raises or drops a blocker collider in front of the actor
func (a *Actor) SetShield(active bool) {
	if !active {
		if a.shield != nil {
			a.arena.caps.Forget(a.shield.Entity)
			a.arena.scene.Destroy(a.shield)
			a.shield = nil
		}
		return
	}
	if a.shield != nil || !a.alive {
		return
	}
	id := a.arena.entities.Next()
	s := physics.NewBody(id, tag.Shield, vmath.Vec3F{
		X: parameter.ShieldHalfWidth, Y: parameter.ShieldHalfHeight, Z: parameter.ShieldHalfDepth,
	})
	s.Tags = s.Tags.WithParent(a.id)
	s.Motion = physics.MotionKinematic
	s.Trigger = true
	a.shield = s
	a.placeShield()
	a.arena.scene.Add(s)
	a.arena.caps.SetBlocker(id, true)
}

func (a *Actor) placeShield() {
	if a.shield == nil {
		return
	}
	fwd := vmath.V3FRotateY(vmath.Vec3F{Z: 1}, a.facing)
	a.shield.Yaw = a.facing
	a.shield.MovePosition(vmath.V3FAdd(a.body.Position, vmath.V3FScale(fwd, parameter.ShieldForward)), 0)
}

// Face turns the actor toward a point on the ground plane
func (a *Actor) Face(at vmath.Vec3F) {
	dir := vmath.V3FFlatten(vmath.V3FSub(at, a.body.Position))
	if vmath.V3FMagSq(dir) == 0 {
		return
	}
	a.facing = vmath.V3FYaw(dir)
	a.body.Yaw = a.facing
	a.placeShield()
}

// MoveTo places the actor at a ground point
func (a *Actor) MoveTo(ground vmath.Vec3F) {
	ground.Y = parameter.ActorHalfHeight
	a.body.MovePosition(ground, 0)
	a.placeShield()
}

// slide applies decaying knockback over dt
func (a *Actor) slide(dt time.Duration) {
	if vmath.V3FMag(a.knock) < parameter.KnockbackRest {
		a.knock = vmath.Vec3F{}
		return
	}
	sec := dt.Seconds()
	a.body.Translate(vmath.V3FScale(a.knock, sec))
	a.placeShield()
	a.knock = vmath.V3FScale(a.knock, max(0, 1-parameter.KnockbackDamping*sec))
}

func (a *Actor) Name() string { return a.name }

func (a *Actor) Health() int64 { return a.health }

func (a *Actor) MaxHealth() int64 { return a.maxHealth }

func (a *Actor) Alerted() bool { return a.alerted }

func (a *Actor) Radius() float64 { return a.radius }

func (a *Actor) Facing() float64 { return a.facing }

func (a *Actor) Knockback() vmath.Vec3F { return a.knock }

func (a *Actor) Body() *physics.Body { return a.body }

// Shielded reports whether a shield collider is up
func (a *Actor) Shielded() bool { return a.shield != nil }

// Weapon returns the installed weapon or nil
func (a *Actor) Weapon() *weapon.Weapon {
	if a.installer == nil {
		return nil
	}
	return a.installer.Weapon()
}

// Installer returns the weapon installer bound to this actor
func (a *Actor) Installer() *weapon.Installer { return a.installer }
