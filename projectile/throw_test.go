package projectile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/arsenal/combat"
	"github.com/lixenwraith/arsenal/explosion"
	"github.com/lixenwraith/arsenal/tag"
	"github.com/lixenwraith/arsenal/vmath"
)

func grenadeStats() *combat.WeaponStats {
	return &combat.WeaponStats{
		Name:              "frag",
		Type:              combat.WeaponThrowing,
		Projectile:        combat.ProjectileGrenade,
		Damage:            40,
		DamageScaler:      1,
		ProjectileSpeed:   8,
		ProjectilesByShot: 1,
		AmmoCapacity:      1,
		ThrowHeight:       2,
		YAxisMultiplier:   true,
		ExplosionRadius:   3,
	}
}

func rocketStats() *combat.WeaponStats {
	return &combat.WeaponStats{
		Name:              "launcher",
		Type:              combat.WeaponPistol,
		Projectile:        combat.ProjectileRocket,
		Damage:            60,
		DamageScaler:      1,
		ProjectileSpeed:   5,
		ProjectilesByShot: 1,
		AmmoCapacity:      1,
		InstantExplosion:  true,
		ExplosionRadius:   2,
	}
}

func TestGrenadeDetonatesOnceAfterSettling(t *testing.T) {
	r := newRig(t)
	done := 0
	p, ok := r.launcher.Fire(combat.ProjectileGrenade, Launch{
		Stats:       grenadeStats(),
		Origin:      combat.Point{Pos: vmath.Vec3F{Y: 1}},
		Destination: vmath.Vec3F{Z: 6},
		TargetTags:  tag.Of(tag.Enemy, tag.StaticObstacle),
		OnAchieved:  func() { done++ },
	})
	require.True(t, ok)

	r.frames(20)
	state, ok := p.ExplosionState()
	require.True(t, ok)
	assert.Equal(t, explosion.StateArmed, state, "still in flight")
	assert.Greater(t, p.Position().Y, 1.0, "arc lifts the body")

	for i := 0; i < 600 && done == 0; i++ {
		r.frames(1)
	}
	assert.Equal(t, 1, done)
	assert.True(t, p.FlightCompleted())
	assert.Equal(t, int64(1), r.reg.Ints.Get("explosion.detonations").Load())
	assert.Equal(t, 0, r.launcher.Active())

	r.frames(100)
	assert.Equal(t, 1, done)
}

func TestGrenadeDeactivateDisposesWithoutExploding(t *testing.T) {
	r := newRig(t)
	done := 0
	p, _ := r.launcher.Fire(combat.ProjectileGrenade, Launch{
		Stats:       grenadeStats(),
		Origin:      combat.Point{Pos: vmath.Vec3F{Y: 1}},
		Destination: vmath.Vec3F{Z: 6},
		TargetTags:  tag.Of(tag.Enemy),
		OnAchieved:  func() { done++ },
	})
	r.frames(5)

	p.Deactivate()
	assert.Equal(t, 1, done)
	_, ok := p.ExplosionState()
	assert.False(t, ok)

	r.frames(600)
	assert.Equal(t, 1, done)
	assert.Equal(t, int64(0), r.reg.Ints.Get("explosion.detonations").Load())
}

func TestRocketIgnoresCarrierAndDetonatesOnTarget(t *testing.T) {
	r := newRig(t)

	// Carrier shares the target tag, so only the owner check keeps the rocket alive at launch
	carrierBody := r.addBody(vmath.Vec3F{}, 0.5, nil, tag.Enemy)
	carrier := &testCarrier{id: carrierBody.Entity}
	r.addBody(vmath.Vec3F{Z: 5}, 0.5, nil, tag.Enemy)

	done := 0
	_, ok := r.launcher.Fire(combat.ProjectileRocket, Launch{
		Carrier:     carrier,
		Stats:       rocketStats(),
		Origin:      combat.Point{},
		Destination: vmath.Vec3F{Z: 10},
		TargetTags:  tag.Of(tag.Enemy),
		OnAchieved:  func() { done++ },
	})
	require.True(t, ok)

	r.frames(10)
	assert.Equal(t, 0, done, "carrier overlap ignored")

	// Full flight would take two seconds; the target sits halfway
	for i := 0; i < 70 && done == 0; i++ {
		r.frames(1)
	}
	assert.Equal(t, 1, done)
	assert.Equal(t, int64(1), r.reg.Ints.Get("explosion.detonations").Load())
}

func TestLevelClearDisposesExplosiveFlight(t *testing.T) {
	r := newRig(t)
	done := 0
	r.launcher.Fire(combat.ProjectileGrenade, Launch{
		Stats:       grenadeStats(),
		Origin:      combat.Point{Pos: vmath.Vec3F{Y: 1}},
		Destination: vmath.Vec3F{Z: 6},
		TargetTags:  tag.Of(tag.Enemy),
		OnAchieved:  func() { done++ },
	})
	r.frames(5)

	r.launcher.Clear()
	r.frames(600)
	assert.Equal(t, 0, done)
	assert.Equal(t, int64(0), r.reg.Ints.Get("explosion.detonations").Load())
}
