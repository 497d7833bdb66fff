package projectile

import (
	"time"

	"github.com/lixenwraith/arsenal/combat"
	"github.com/lixenwraith/arsenal/core"
	"github.com/lixenwraith/arsenal/engine"
	"github.com/lixenwraith/arsenal/explosion"
	"github.com/lixenwraith/arsenal/parameter"
	"github.com/lixenwraith/arsenal/physics"
	"github.com/lixenwraith/arsenal/vmath"
)

// throwMotion lerps the body to its landing point on the variable tick, then hands it
// to the physics scene and waits on an explosion session
// Grenades scatter the landing point, cover the journey in one second and may spin;
// rockets fly at projectile speed and ignore their carrier
type throwMotion struct {
	grenade  bool
	from, to vmath.Vec3F
	journey  float64
	speed    float64
	elapsed  time.Duration
	finished bool

	profile combat.ExplosionStats
	session *explosion.Session
	zone    engine.Subscription
}

func (m *throwMotion) launch(p *Projectile) {
	m.finished = false
	m.elapsed = 0

	p.body.Motion = physics.MotionKinematic
	p.body.Trigger = false
	p.body.UseGravity = false

	m.profile = p.stats.ExplosionProfile(p.targetTags)
	proc := p.env.Explosions.New(p.body, m.profile)
	m.session = explosion.NewSession(p.body, proc, p.env.Clock, m.profile.Instant, explosion.Options{
		SettleSpeed: p.env.SettleSpeed,
		Registry:    p.env.Registry,
	})

	m.from = p.body.Position
	m.to = p.target
	if m.grenade {
		x, z := p.env.Rand.InsideUnitCircle()
		m.to.X += x
		m.to.Z += z
	}
	m.journey = vmath.V3FDist(m.from, m.to)
	if m.grenade {
		m.speed = m.journey
	} else {
		m.speed = p.stats.ProjectileSpeed
	}

	p.moveSub = p.env.Clock.EveryFrame(parameter.PriorityThrowMotion, func(dt time.Duration) engine.Step {
		return m.step(p, dt)
	})
	if m.grenade && p.stats.HasRotation {
		torque := vmath.Vec3F{X: p.stats.RotationSpeed, Y: -p.stats.RotationSpeed}
		p.spinSub = p.env.Clock.EveryFrame(parameter.PriorityThrowMotion, func(dt time.Duration) engine.Step {
			if p.body.Destroyed() {
				return engine.Stop
			}
			p.body.AddTorque(torque, dt)
			return engine.Continue
		})
	}
}

func (m *throwMotion) step(p *Projectile, dt time.Duration) engine.Step {
	if p.body.Destroyed() {
		p.moveSub = nil
		return engine.Stop
	}
	m.elapsed += dt

	f := 1.0
	if m.journey > 0 && m.speed > 0 {
		f = m.elapsed.Seconds() * m.speed / m.journey
	}
	if f < 1 {
		pos := vmath.V3FLerp(m.from, m.to, f)
		if p.stats.YAxisMultiplier {
			pos.Y += vmath.Parabola(p.stats.ThrowHeight, f)
		}
		if m.grenade && !p.stats.HasRotation {
			p.body.LookAt(pos)
		}
		p.body.MovePosition(pos, dt)
		return engine.Continue
	}

	m.flightFinish(p)
	return engine.Stop
}

// flightFinish releases the body to the physics scene and arms the explosion once
func (m *throwMotion) flightFinish(p *Projectile) {
	if m.finished {
		return
	}
	m.finished = true
	p.stopMotion()

	p.body.Motion = physics.MotionDynamic
	p.body.UseGravity = true

	if m.grenade {
		scale := m.profile.Radius * parameter.ExplosionZoneScale
		m.session.OnDetonate(func() {
			m.zone = p.env.Effects.Attach(core.EffectExplosionZone, p, scale)
		})
	}
	m.session.Arm(func() {
		engine.DisposeAndNil(&m.zone)
		p.finish()
	})
}

func (m *throwMotion) contact(p *Projectile, c physics.Contact) {
	if m.finished || c.Kind != physics.ContactCollision {
		return
	}
	other := c.Other
	if !m.grenade && p.carrier != nil && other.Owner() == p.carrier.Entity() {
		return
	}
	if isObstacle(other) || (m.profile.Instant && other.Tags != nil && other.Tags.HasAny(p.targetTags)) {
		m.flightFinish(p)
	}
}

func (m *throwMotion) end(*Projectile) {
	engine.DisposeAndNil(&m.zone)
	if m.session != nil {
		m.session.Dispose()
		m.session = nil
	}
}

// ExplosionState reports the session state of an explosive flight
func (p *Projectile) ExplosionState() (explosion.State, bool) {
	if p.throw.session == nil {
		return 0, false
	}
	return p.throw.session.State(), true
}
