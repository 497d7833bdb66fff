package projectile

import (
	"sort"
	"time"

	"github.com/lixenwraith/arsenal/core"
	"github.com/lixenwraith/arsenal/engine"
	"github.com/lixenwraith/arsenal/event"
	"github.com/lixenwraith/arsenal/parameter"
	"github.com/lixenwraith/arsenal/physics"
	"github.com/lixenwraith/arsenal/tag"
	"github.com/lixenwraith/arsenal/vmath"
)

// ricochetMotion is a linear flight that redirects to a nearby eligible body after a damaging hit
type ricochetMotion struct {
	initial   int
	remaining int
	mask      tag.Mask
	marked    map[core.Entity]struct{}
	trail     engine.Subscription
	lifetime  time.Duration
}

func (m *ricochetMotion) reset() {
	m.initial, m.remaining = 0, 0
	m.mask = 0
	clear(m.marked)
	m.trail = nil
	m.lifetime = 0
}

func (m *ricochetMotion) launch(p *Projectile) {
	if m.marked == nil {
		m.marked = make(map[core.Entity]struct{})
	}
	m.initial = p.stats.RicochetCount
	m.remaining = m.initial
	m.lifetime = 0

	p.body.Motion = physics.MotionKinematic
	p.body.Trigger = true
	p.body.UseGravity = false
	p.aim(p.target)

	p.moveSub = p.env.Clock.EveryFixed(parameter.PriorityProjectileMove, func(dt time.Duration) engine.Step {
		return linearStep(p, &m.lifetime, dt)
	})
	if p.stats.HasRotation {
		p.spinSub = p.env.Clock.EveryFixed(parameter.PriorityProjectileSpin, func(time.Duration) engine.Step {
			if p.body.Destroyed() {
				return engine.Stop
			}
			p.body.Yaw -= p.stats.RotationSpeed
			return engine.Continue
		})
	}
	if p.stats.ConstantTrail {
		m.trail = p.env.Effects.Attach(core.EffectTrail, p, 0)
	}
}

func (m *ricochetMotion) contact(p *Projectile, c physics.Contact) {
	if p.deactivated {
		p.finish()
		return
	}
	other := c.Other
	if other.Tags == nil {
		return
	}
	bounced := m.remaining < m.initial
	if !other.Tags.HasAny(p.targetTags) && !(bounced && other.Tags.HasAny(p.stats.RicochetTags)) {
		return
	}
	if !p.damage(other) {
		p.finish()
		return
	}
	if !m.tryRicochet(p, other) {
		p.finish()
	}
}

func (m *ricochetMotion) end(*Projectile) {
	engine.DisposeAndNil(&m.trail)
}

// tryRicochet retargets the flight at the best visible candidate around the projectile
func (m *ricochetMotion) tryRicochet(p *Projectile, hit *physics.Body) bool {
	if m.remaining <= 0 {
		return false
	}
	m.marked[hit.Entity] = struct{}{}

	self := p.body.Position
	found := p.env.Scene.OverlapSphere(self, p.stats.RicochetRadius, m.mask, parameter.RicochetOverlapCap)
	ranked := RankCandidates(found, p.stats.RicochetTags, self, hit, p.body)

	for _, cand := range ranked {
		if _, seen := m.marked[cand.Entity]; seen {
			continue
		}
		if !cand.Tags.HasAny(p.stats.RicochetTags) {
			continue
		}
		if !ClearLine(p.env.Scene, self, cand) {
			continue
		}

		m.remaining--
		m.marked[cand.Entity] = struct{}{}
		p.aim(cand.Bounds().Center())
		p.launcher.statRicochets.Add(1)
		p.env.Bus.Publish(event.EventRicochet, &event.RicochetPayload{
			FlightID:  p.id,
			From:      hit.Entity,
			To:        cand.Entity,
			Remaining: m.remaining,
		})
		return true
	}
	return false
}

// RankCandidates orders bodies by the first priority tag they carry, unmatched last,
// then by distance from origin; ties keep input order
// Bodies listed in exclude and bodies without tags are dropped
func RankCandidates(bodies []*physics.Body, priority tag.Set, origin vmath.Vec3F, exclude ...*physics.Body) []*physics.Body {
	type ranked struct {
		body *physics.Body
		prio int
		dist float64
	}
	list := make([]ranked, 0, len(bodies))
outer:
	for _, b := range bodies {
		if b == nil || b.Tags == nil {
			continue
		}
		for _, x := range exclude {
			if b == x {
				continue outer
			}
		}
		prio := b.Tags.FirstIndex(priority)
		if prio < 0 {
			prio = len(priority)
		}
		list = append(list, ranked{body: b, prio: prio, dist: vmath.V3FDist(b.Position, origin)})
	}
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].prio != list[j].prio {
			return list[i].prio < list[j].prio
		}
		return list[i].dist < list[j].dist
	})
	out := make([]*physics.Body, len(list))
	for i, r := range list {
		out[i] = r.body
	}
	return out
}

// ClearLine reports whether no static obstacle sits between from and the target pivot
// Only the nearest hits up to the line-of-sight cap are inspected
func ClearLine(scene *physics.Scene, from vmath.Vec3F, target *physics.Body) bool {
	hits := scene.Linecast(from, target.Position, tag.MaskAll)
	if len(hits) > parameter.LineOfSightHitCap {
		hits = hits[:parameter.LineOfSightHitCap]
	}
	for _, h := range hits {
		if isObstacle(h.Body) {
			return false
		}
	}
	return true
}

// SetRicochetMask selects the layers searched for redirect candidates
func (p *Projectile) SetRicochetMask(mask tag.Mask) {
	p.ricochet.mask = mask
}

// RicochetsLeft returns the remaining redirect budget of a ricochet flight
func (p *Projectile) RicochetsLeft() int {
	return p.ricochet.remaining
}
