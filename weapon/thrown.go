package weapon

import (
	"github.com/lixenwraith/arsenal/combat"
	"github.com/lixenwraith/arsenal/tag"
)

// thrownShooter releases one projectile per discharge and hides the held item
// until the next recharge or reload completes
type thrownShooter struct{}

func (thrownShooter) shot(w *Weapon, target combat.Target) bool {
	origin := w.muzzle()
	if origin == nil {
		return false
	}
	var mask tag.Mask
	if w.stats.RicochetCount > 0 {
		mask = w.stats.RicochetTags.Mask()
	}

	w.enterShoot()
	w.playShot(origin.Position())
	w.fire(origin, target.Position(), false, mask)
	w.heldVisible = false
	w.consume(1)
	w.finishShoot()
	return true
}
