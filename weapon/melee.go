package weapon

import (
	"github.com/lixenwraith/arsenal/combat"
	"github.com/lixenwraith/arsenal/core"
	"github.com/lixenwraith/arsenal/parameter"
	"github.com/lixenwraith/arsenal/tag"
	"github.com/lixenwraith/arsenal/vmath"
)

// meleeShooter strikes the target directly; a blocker on the line nullifies the hit
type meleeShooter struct{}

func (meleeShooter) shot(w *Weapon, target combat.Target) bool {
	if w.carrier == nil {
		return false
	}
	w.enterShoot()

	from := w.carrier.Position()
	to := target.Position()

	fx := vmath.V3FLerp(from, to, parameter.MeleeEffectLerp)
	fx.Y += parameter.MeleeEffectHeight
	aim := to
	aim.Y += parameter.MeleeEffectHeight
	w.env.Effects.Spawn(core.EffectSlash, fx, vmath.V3FYaw(vmath.V3FFlatten(vmath.V3FSub(aim, fx))), 0)

	if r, ok := w.env.Caps.Receiver(target.Entity()); ok && !w.blocked(from, to) {
		w.playShot(from)
		r.MakeDamage(combat.ScaledDamage(w.stats.Damage, w.stats.DamageScaler), combat.SenderOf(w.carrier), 0, true)
		r.Push(combat.PushAlong(vmath.V3FSub(to, from), w.stats.PushForce), true)
	}

	w.finishShoot()
	return true
}

// blocked reports a blocker among the nearest hits between carrier and target
// The carrier's own colliders never block
func (w *Weapon) blocked(from, to vmath.Vec3F) bool {
	if w.env.Scene == nil {
		return false
	}
	hits := w.env.Scene.Linecast(from, to, tag.MaskAll)
	if len(hits) > parameter.LineOfSightHitCap {
		hits = hits[:parameter.LineOfSightHitCap]
	}
	self := w.carrier.Entity()
	for _, h := range hits {
		if h.Body.Owner() == self {
			continue
		}
		if w.env.Caps.IsBlocker(h.Body.Entity) {
			return true
		}
	}
	return false
}
