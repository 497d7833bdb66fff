package arena

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/arsenal/combat"
	"github.com/lixenwraith/arsenal/core"
	"github.com/lixenwraith/arsenal/event"
	"github.com/lixenwraith/arsenal/vmath"
)

const frame = 20 * time.Millisecond

func newArena(t *testing.T) *Arena {
	t.Helper()
	a, err := New(Options{Seed: 7, Logger: zerolog.Nop()})
	require.NoError(t, err)
	t.Cleanup(a.Close)
	return a
}

func run(a *Arena, n int) {
	for range n {
		a.Advance(frame)
	}
}

func spawn(t *testing.T, a *Arena, spec ActorSpec) *Actor {
	t.Helper()
	act, err := a.Spawn(spec)
	require.NoError(t, err)
	return act
}

func at(x, z float64) vmath.Vec3F { return vmath.Vec3F{X: x, Z: z} }

func collectDamage(a *Arena) *[]*event.DamagePayload {
	var out []*event.DamagePayload
	a.Bus().Subscribe(event.EventDamageDealt, func(ev event.GameEvent) {
		out = append(out, ev.Payload.(*event.DamagePayload))
	})
	return &out
}

func TestPistolKillsAfterRecharge(t *testing.T) {
	a := newArena(t)
	player := spawn(t, a, ActorSpec{Name: "hero", Player: true, Weapon: "pistol"})
	enemy := spawn(t, a, ActorSpec{Position: at(0, 10), Health: 24})
	hits := collectDamage(a)

	require.True(t, a.Attack(player, enemy))
	assert.False(t, a.Attack(player, enemy), "recharging")
	run(a, 20)

	require.Len(t, *hits, 1)
	assert.Equal(t, int64(12), enemy.Health())
	assert.Equal(t, "player", (*hits)[0].Sender)
	assert.True(t, enemy.Alerted())
	assert.True(t, enemy.IsAlive())

	require.True(t, a.Attack(player, enemy))
	run(a, 20)

	assert.False(t, enemy.IsAlive())
	assert.Equal(t, int64(0), enemy.Health())
	assert.Nil(t, enemy.Weapon())
	assert.Nil(t, enemy.Muzzle())
	assert.True(t, enemy.Body().Destroyed())
	assert.Equal(t, int64(1), a.Registry().Ints.Get("arena.kills").Load())
	assert.Equal(t, int64(1), a.Registry().Ints.Get("arena.actors").Load())

	_, found := a.NearestEnemy(player)
	assert.False(t, found)
	assert.Len(t, a.Actors(), 2, "dead stay listed until the level clears")
}

func TestSpawnUnknownWeapon(t *testing.T) {
	a := newArena(t)
	_, err := a.Spawn(ActorSpec{Weapon: "trebuchet"})
	require.Error(t, err)
	assert.Empty(t, a.Actors())
	assert.Zero(t, a.Scene().Len())
}

func TestSpawnNamesAndRadius(t *testing.T) {
	a := newArena(t)
	p := spawn(t, a, ActorSpec{Player: true, Weapon: "pistol"})
	assert.NotEmpty(t, p.Name())
	assert.Equal(t, 14.0, p.Radius())
	assert.Equal(t, int64(100), p.MaxHealth())
	assert.Equal(t, 1.0, p.Position().Y)

	e := spawn(t, a, ActorSpec{Name: "grunt", Position: at(0, 5)})
	got, ok := a.Actor(e.Entity())
	require.True(t, ok)
	assert.Same(t, e, got)
	assert.Equal(t, "grunt", e.Name())
}

func TestNearestEnemyHonoursRadius(t *testing.T) {
	a := newArena(t)
	p := spawn(t, a, ActorSpec{Player: true, Weapon: "pistol"})
	far := spawn(t, a, ActorSpec{Position: at(0, 13)})
	spawn(t, a, ActorSpec{Position: at(0, 30)})
	spawn(t, a, ActorSpec{Player: true, Position: at(0, 2)})

	got, ok := a.NearestEnemy(p)
	require.True(t, ok)
	assert.Same(t, far, got)

	p.ChangeRadius(10)
	_, ok = a.NearestEnemy(p)
	assert.False(t, ok)

	p.ChangeRadius(0)
	got, ok = a.NearestEnemy(p)
	require.True(t, ok)
	assert.Same(t, far, got)
}

func TestRocketBlastFallsOffWithDistance(t *testing.T) {
	a := newArena(t)
	player := spawn(t, a, ActorSpec{Player: true, Weapon: "rocket_launcher"})
	struck := spawn(t, a, ActorSpec{Position: at(0, 10)})
	side := spawn(t, a, ActorSpec{Position: at(1.5, 10)})
	far := spawn(t, a, ActorSpec{Position: at(0, 20)})
	hits := collectDamage(a)

	var blasts []*event.ExplodedPayload
	a.Bus().Subscribe(event.EventExploded, func(ev event.GameEvent) {
		blasts = append(blasts, ev.Payload.(*event.ExplodedPayload))
	})

	require.True(t, a.Attack(player, struck))
	run(a, 60)

	require.Len(t, blasts, 1)
	assert.Equal(t, 2, blasts[0].Victims)
	assert.Equal(t, 3.0, blasts[0].Radius)
	assert.Len(t, *hits, 2)

	assert.Less(t, struck.Health(), int64(100))
	assert.Less(t, side.Health(), int64(100))
	assert.Less(t, struck.Health(), side.Health(), "closer victim takes more")
	assert.Equal(t, int64(100), far.Health())

	assert.Equal(t, 1, a.Effects().Count(core.EffectExplosion))
	assert.Zero(t, a.Launcher().Active())
}

func TestMeleeBlockedByFacingShield(t *testing.T) {
	a := newArena(t)
	player := spawn(t, a, ActorSpec{Player: true, Weapon: "sword"})
	guard := spawn(t, a, ActorSpec{Position: at(0, 1.5), Weapon: "sword_and_shield"})
	require.True(t, guard.Shielded())

	guard.Face(player.Position())
	require.True(t, a.Attack(player, guard))
	assert.Equal(t, int64(100), guard.Health())
	assert.Equal(t, 1, a.Effects().Count(core.EffectSlash))

	guard.Face(at(0, 10))
	require.True(t, a.Attack(player, guard))
	assert.Equal(t, int64(82), guard.Health())
	assert.Greater(t, guard.Knockback().Z, 0.0)
}

func TestShieldFollowsOwnerAndDropsOnDeath(t *testing.T) {
	a := newArena(t)
	guard := spawn(t, a, ActorSpec{Position: at(0, 4), Weapon: "sword_and_shield", Health: 10})
	shield := guard.shield
	require.NotNil(t, shield)
	assert.Equal(t, guard.Entity(), shield.Owner())
	assert.True(t, a.caps.IsBlocker(shield.Entity))

	guard.MoveTo(at(3, 4))
	assert.InDelta(t, 3.0, shield.Position.X, 1e-9)
	assert.InDelta(t, 4.7, shield.Position.Z, 1e-9)

	guard.MakeDamage(50, combat.SenderPlayer, 0, true)
	assert.False(t, guard.Shielded())
	assert.True(t, shield.Destroyed())
	assert.False(t, a.caps.IsBlocker(shield.Entity))
}

func TestDelayedDamageLandsLater(t *testing.T) {
	a := newArena(t)
	e := spawn(t, a, ActorSpec{Position: at(0, 5)})

	e.MakeDamage(30, combat.SenderInteractiveObjects, 100*time.Millisecond, false)
	run(a, 4)
	assert.Equal(t, int64(100), e.Health())
	run(a, 2)
	assert.Equal(t, int64(70), e.Health())
	assert.False(t, e.Alerted(), "silent damage")
}

func TestKnockbackDecays(t *testing.T) {
	a := newArena(t)
	e := spawn(t, a, ActorSpec{Position: at(0, 5)})

	e.Push(vmath.Vec3F{X: 2, Y: 3}, true)
	assert.Equal(t, 0.0, e.Knockback().Y)
	run(a, 100)

	assert.Equal(t, vmath.Vec3F{}, e.Knockback())
	assert.Greater(t, e.Position().X, 0.1)
	assert.Less(t, e.Position().X, 0.5)
	assert.Equal(t, 1.0, e.Position().Y)
}

func TestClearLevelPrunesDeadAndInterruptsFlights(t *testing.T) {
	a := newArena(t)
	player := spawn(t, a, ActorSpec{Player: true, Weapon: "pistol"})
	dead := spawn(t, a, ActorSpec{Position: at(0, 3)})
	target := spawn(t, a, ActorSpec{Position: at(0, 40)})
	dead.MakeDamage(1000, combat.SenderPlayer, 0, false)

	require.True(t, a.Attack(player, target))
	run(a, 2)
	require.Equal(t, 1, a.Launcher().Active())

	a.ClearLevel()
	assert.Zero(t, a.Launcher().Active())
	assert.Equal(t, 1, a.Level())
	assert.Len(t, a.Actors(), 2)
	_, ok := a.Actor(dead.Entity())
	assert.False(t, ok)
	assert.True(t, player.Weapon().Available(), "ramps reset")

	run(a, 60)
	assert.Equal(t, int64(100), target.Health())
}

func TestImproveRecordsProgress(t *testing.T) {
	a := newArena(t)
	p := spawn(t, a, ActorSpec{Player: true, Weapon: "chakram"})
	improved := 0
	a.Bus().Subscribe(event.EventWeaponImproved, func(event.GameEvent) { improved++ })

	require.NoError(t, a.Improve(p, combat.ImproveRicochetUpgrade))
	assert.Equal(t, 4, p.Weapon().Stats().RicochetCount)
	assert.Equal(t, []combat.ImproveType{combat.ImproveRicochetUpgrade}, a.Progress().Improvements("chakram"))
	assert.Equal(t, 1, improved)

	assert.Error(t, a.Improve(p, combat.ImproveNone))
	bare := spawn(t, a, ActorSpec{Position: at(0, 5)})
	assert.Error(t, a.Improve(bare, combat.ImproveShotUpgrade))
}

func TestChakramChainsBetweenEnemies(t *testing.T) {
	a := newArena(t)
	player := spawn(t, a, ActorSpec{Player: true, Weapon: "chakram"})
	first := spawn(t, a, ActorSpec{Position: at(0, 8)})
	second := spawn(t, a, ActorSpec{Position: at(3, 9)})
	hits := collectDamage(a)
	redirects := 0
	a.Bus().Subscribe(event.EventRicochet, func(event.GameEvent) { redirects++ })

	require.True(t, a.Attack(player, first))
	assert.False(t, player.Weapon().HeldVisible())
	assert.Equal(t, 1, a.Effects().Attached(), "trail follows the flight")
	run(a, 100)

	assert.Less(t, first.Health(), int64(100))
	assert.Less(t, second.Health(), int64(100))
	assert.Len(t, *hits, 2)
	assert.Equal(t, 1, redirects)
	assert.Zero(t, a.Effects().Attached())
}

func TestBlastFalloffFloor(t *testing.T) {
	assert.Equal(t, 1.0, falloff(0, 3))
	assert.InDelta(t, 0.5, falloff(1.5, 3), 1e-9)
	assert.InDelta(t, 0.25, falloff(2.9, 3), 1e-9)
}

func TestEffectsAgeAndAttach(t *testing.T) {
	a := newArena(t)
	fx := a.Effects()
	fx.Spawn(core.EffectImpact, at(1, 1), 0, 1)
	fx.Spawn(core.EffectNone, at(0, 0), 0, 1)
	assert.Equal(t, 1, fx.Live())

	e := spawn(t, a, ActorSpec{Position: at(2, 2)})
	sub := fx.Attach(core.EffectTrail, e.Muzzle(), 1)
	var seen []core.EffectType
	fx.Each(func(f Effect) { seen = append(seen, f.Type) })
	assert.Equal(t, []core.EffectType{core.EffectImpact, core.EffectTrail}, seen)

	run(a, 25)
	assert.Zero(t, fx.Live())
	assert.Equal(t, 1, fx.Attached())
	assert.Equal(t, 1, fx.Count(core.EffectImpact))

	sub.Dispose()
	assert.Zero(t, fx.Attached())
}

func TestKillNoticeArrivesOnFlush(t *testing.T) {
	a := newArena(t)
	spawn(t, a, ActorSpec{Player: true})
	e := spawn(t, a, ActorSpec{Position: at(0, 5)})
	require.Equal(t, 1, a.Hostiles())

	var killed []*event.KilledPayload
	a.Bus().Subscribe(event.EventActorKilled, func(ev event.GameEvent) {
		killed = append(killed, ev.Payload.(*event.KilledPayload))
	})

	e.MakeDamage(500, combat.SenderPlayer, 0, true)
	assert.Empty(t, killed, "posted, not published")
	assert.Zero(t, a.Hostiles())

	a.Advance(frame)
	require.Len(t, killed, 1)
	assert.Equal(t, e.Entity(), killed[0].Actor)
	assert.False(t, killed[0].Player)
	assert.Equal(t, "player", killed[0].Sender)
}
