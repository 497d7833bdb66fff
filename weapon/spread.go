package weapon

import (
	"github.com/lixenwraith/arsenal/combat"
	"github.com/lixenwraith/arsenal/vmath"
)

// spreadShooter fans every pellet of one discharge evenly over ShotAngle
type spreadShooter struct{}

func (spreadShooter) shot(w *Weapon, target combat.Target) bool {
	origin := w.muzzle()
	if origin == nil {
		return false
	}
	from := origin.Position()
	aim := target.Position()
	dir := vmath.V3FNormalize(vmath.V3FFlatten(vmath.V3FSub(aim, from)))

	w.playShot(from)
	w.enterShoot()
	for _, angle := range SpreadAngles(w.stats.ProjectilesByShot, w.stats.ShotAngle) {
		w.fire(origin, vmath.V3FRotateY(dir, angle), true, 0)
	}
	w.spawnShotEffects(origin, aim)
	w.finishShoot()
	w.consume(1)
	return true
}

// SpreadAngles returns n yaw offsets in degrees spanning total, centered on zero
// A single pellet flies straight
func SpreadAngles(n int, total float64) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{0}
	}
	start := -total / 2
	seg := total / float64(n-1)
	out := make([]float64, n)
	for i := range out {
		out[i] = start + seg*float64(i)
	}
	return out
}
