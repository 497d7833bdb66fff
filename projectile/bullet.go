package projectile

import (
	"time"

	"github.com/lixenwraith/arsenal/engine"
	"github.com/lixenwraith/arsenal/parameter"
	"github.com/lixenwraith/arsenal/physics"
)

// bulletMotion flies a constant step per fixed tick and ends on the first relevant overlap
type bulletMotion struct {
	lifetime time.Duration
}

func (m *bulletMotion) launch(p *Projectile) {
	m.lifetime = 0
	p.body.Motion = physics.MotionKinematic
	p.body.Trigger = true
	p.body.UseGravity = false
	p.moveSub = p.env.Clock.EveryFixed(parameter.PriorityProjectileMove, func(dt time.Duration) engine.Step {
		return linearStep(p, &m.lifetime, dt)
	})
}

// linearStep advances a linear flight one fixed tick
func linearStep(p *Projectile, lifetime *time.Duration, dt time.Duration) engine.Step {
	if p.body.Destroyed() {
		p.moveSub = nil
		return engine.Stop
	}
	p.body.Translate(p.step)
	*lifetime += dt
	if *lifetime >= parameter.BulletMaxLifetime {
		p.finish()
		return engine.Stop
	}
	return engine.Continue
}

func (m *bulletMotion) contact(p *Projectile, c physics.Contact) {
	other := c.Other
	if p.deactivated || isObstacle(other) {
		p.finish()
		return
	}
	if other.Tags == nil || !other.Tags.HasAny(p.targetTags) {
		return
	}
	p.damage(other)
	p.finish()
}

func (m *bulletMotion) end(*Projectile) {}
