package weapon

import (
	"time"

	"github.com/lixenwraith/arsenal/combat"
	"github.com/lixenwraith/arsenal/engine"
	"github.com/lixenwraith/arsenal/parameter"
	"github.com/lixenwraith/arsenal/vmath"
)

// burstShooter fires ShotCountLevel bursts of ProjectilesByShot projectiles at the
// target position captured when the shot began
type burstShooter struct{}

func (burstShooter) shot(w *Weapon, target combat.Target) bool {
	origin := w.muzzle()
	if origin == nil {
		return false
	}
	w.enterShoot()
	run := &burstRun{
		w:       w,
		origin:  origin,
		aim:     target.Position(),
		bursts:  w.stats.ShotCountLevel,
		pellets: w.stats.ProjectilesByShot,
	}
	if run.bursts < 1 {
		run.bursts = 1
	}
	w.burst = run
	if run.advance() == engine.Continue {
		run.sub = w.env.Clock.EveryFrame(parameter.PriorityBurst, run.tick)
	}
	return true
}

// burstRun is the cooperative state of one burst sequence
type burstRun struct {
	w      *Weapon
	origin combat.Anchor
	aim    vmath.Vec3F

	bursts  int
	pellets int
	burst   int
	pellet  int
	fired   int
	wait    time.Duration

	sub  engine.Subscription
	done bool
}

func (r *burstRun) tick(dt time.Duration) engine.Step {
	if r.done {
		return engine.Stop
	}
	r.wait -= dt
	step := r.advance()
	if step == engine.Stop {
		r.sub = nil
	}
	return step
}

// advance fires every projectile whose delay has elapsed
func (r *burstRun) advance() engine.Step {
	for r.wait <= 0 {
		if !r.w.shooting {
			r.cancel()
			return engine.Stop
		}
		if r.burst >= r.bursts {
			r.complete()
			return engine.Stop
		}

		r.w.playShot(r.origin.Position())
		if r.w.fire(r.origin, r.aim, false, 0) {
			r.fired++
		}
		r.w.spawnShotEffects(r.origin, r.aim)

		r.pellet++
		if r.pellets > 1 {
			r.wait += r.w.stats.ShotDelay
		}
		if r.pellet >= r.pellets {
			r.pellet = 0
			r.burst++
			r.wait += parameter.BurstInterval
		}
	}
	return engine.Continue
}

func (r *burstRun) units() int {
	if r.w.stats.AmmoPolicy == combat.AmmoPerProjectile {
		return r.fired
	}
	return 1
}

// complete runs ammo bookkeeping and closes the shot
func (r *burstRun) complete() {
	if r.done {
		return
	}
	r.stop()
	r.w.consume(r.units())
	r.w.finishShoot()
}

// cancel ends a truncated run; ammo is spent only when something was fired
func (r *burstRun) cancel() {
	if r.done {
		return
	}
	r.stop()
	if r.fired > 0 {
		r.w.consume(r.units())
	}
}

// stop detaches the run without bookkeeping
func (r *burstRun) stop() {
	r.done = true
	engine.DisposeAndNil(&r.sub)
	if r.w.burst == r {
		r.w.burst = nil
	}
}
