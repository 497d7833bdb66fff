package projectile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/lixenwraith/arsenal/combat"
	"github.com/lixenwraith/arsenal/combat/mocks"
	"github.com/lixenwraith/arsenal/core"
	"github.com/lixenwraith/arsenal/engine"
	"github.com/lixenwraith/arsenal/event"
	"github.com/lixenwraith/arsenal/parameter"
	"github.com/lixenwraith/arsenal/physics"
	"github.com/lixenwraith/arsenal/status"
	"github.com/lixenwraith/arsenal/tag"
	"github.com/lixenwraith/arsenal/vmath"
)

const (
	tick  = 20 * time.Millisecond
	frame = 16 * time.Millisecond
)

type rig struct {
	clock    *engine.ClockScheduler
	scene    *physics.Scene
	bus      *event.Bus
	caps     *combat.Capabilities
	reg      *status.Registry
	ents     *core.EntityAllocator
	launcher *Launcher
}

func newRig(t *testing.T) *rig {
	t.Helper()
	reg := status.NewRegistry()
	r := &rig{
		clock: engine.NewClockScheduler(tick, reg),
		scene: physics.NewDefaultScene(reg),
		bus:   event.NewBus(),
		caps:  combat.NewCapabilities(),
		reg:   reg,
		ents:  &core.EntityAllocator{},
	}
	r.clock.EveryFixed(parameter.PriorityPhysicsStep, func(dt time.Duration) engine.Step {
		r.scene.Step(dt)
		return engine.Continue
	})
	r.launcher = NewLauncher(Env{
		Clock:    r.clock,
		Scene:    r.scene,
		Bus:      r.bus,
		Caps:     r.caps,
		Entities: r.ents,
		Rand:     vmath.NewFastRand(7),
		Registry: reg,
	})
	t.Cleanup(r.launcher.Close)
	return r
}

// addBody places a static box; a non-nil receiver is registered for it
func (r *rig) addBody(pos vmath.Vec3F, half float64, recv combat.DamageReceiver, tags ...tag.Tag) *physics.Body {
	b := physics.NewBody(r.ents.Next(), tags[0], vmath.Vec3F{X: half, Y: half, Z: half}, tags...)
	b.Motion = physics.MotionStatic
	b.Position = pos
	r.scene.Add(b)
	if recv != nil {
		r.caps.SetReceiver(b.Entity, recv)
	}
	return b
}

func (r *rig) steps(n int) {
	for i := 0; i < n; i++ {
		r.clock.StepFixed()
	}
}

func (r *rig) frames(n int) {
	for i := 0; i < n; i++ {
		r.clock.Advance(frame)
	}
}

type testCarrier struct {
	id     core.Entity
	pos    vmath.Vec3F
	player bool
}

func (c *testCarrier) Entity() core.Entity   { return c.id }
func (c *testCarrier) Position() vmath.Vec3F { return c.pos }
func (c *testCarrier) IsPlayer() bool        { return c.player }
func (c *testCarrier) EnemyTags() tag.Set    { return tag.Of(tag.Enemy) }
func (c *testCarrier) Muzzle() combat.Anchor { return combat.Point{Pos: c.pos} }

type hitLog struct {
	hits   []int64
	pushes []vmath.Vec3F
}

func (h *hitLog) IsAlive() bool { return true }

func (h *hitLog) MakeDamage(amount int64, _ combat.DamageSender, _ time.Duration, _ bool) {
	h.hits = append(h.hits, amount)
}

func (h *hitLog) Push(force vmath.Vec3F, _ bool) {
	h.pushes = append(h.pushes, force)
}

func bulletStats() *combat.WeaponStats {
	return &combat.WeaponStats{
		Name:              "pistol",
		Type:              combat.WeaponPistol,
		Projectile:        combat.ProjectileBullet,
		Damage:            10,
		DamageScaler:      1.5,
		PushForce:         2,
		ProjectileSpeed:   20,
		ProjectilesByShot: 1,
		AmmoCapacity:      1,
	}
}

func TestBulletHitsOnExpectedTick(t *testing.T) {
	r := newRig(t)
	ctrl := gomock.NewController(t)
	recv := mocks.NewMockDamageReceiver(ctrl)

	r.addBody(vmath.Vec3F{Z: 40.5}, 0.5, recv, tag.Enemy)

	var pushed vmath.Vec3F
	recv.EXPECT().MakeDamage(int64(15), combat.SenderPlayer, time.Duration(0), true).Times(1)
	recv.EXPECT().Push(gomock.Any(), true).Do(func(f vmath.Vec3F, _ bool) { pushed = f }).Times(1)

	done := 0
	p, ok := r.launcher.Fire(combat.ProjectileBullet, Launch{
		Carrier:     &testCarrier{id: 100, player: true},
		Stats:       bulletStats(),
		Origin:      combat.Point{},
		Destination: vmath.Vec3F{Z: 40},
		TargetTags:  tag.Of(tag.Enemy, tag.StaticObstacle),
		OnAchieved:  func() { done++ },
	})
	require.True(t, ok)
	assert.True(t, vmath.V3FApproxEqual(vmath.Vec3F{Z: 0.4}, p.Step(), 1e-9))

	r.steps(99)
	assert.Equal(t, 0, done)
	assert.True(t, p.Active())

	r.steps(1)
	assert.Equal(t, 1, done)
	assert.True(t, p.FlightCompleted())
	assert.Equal(t, 0, r.launcher.Active())
	assert.True(t, vmath.V3FApproxEqual(vmath.Vec3F{Z: 2}, pushed, 1e-9))

	// Released body no longer produces contacts
	r.steps(50)
	assert.Equal(t, 1, done)
}

func TestBulletStopsOnObstacleWithoutDamage(t *testing.T) {
	r := newRig(t)
	victim := &hitLog{}
	r.addBody(vmath.Vec3F{Z: 5}, 0.5, nil, tag.StaticObstacle)
	r.addBody(vmath.Vec3F{Z: 10}, 0.5, victim, tag.Enemy)

	done := 0
	_, ok := r.launcher.Fire(combat.ProjectileBullet, Launch{
		Stats:       bulletStats(),
		Origin:      combat.Point{},
		Destination: vmath.Vec3F{Z: 10},
		TargetTags:  tag.Of(tag.Enemy, tag.StaticObstacle),
		OnAchieved:  func() { done++ },
	})
	require.True(t, ok)

	r.steps(60)
	assert.Equal(t, 1, done)
	assert.Empty(t, victim.hits)
}

func TestBulletIgnoresNonTargets(t *testing.T) {
	r := newRig(t)
	ally := &hitLog{}
	enemy := &hitLog{}
	r.addBody(vmath.Vec3F{Z: 5}, 0.5, ally, tag.Ally)
	r.addBody(vmath.Vec3F{Z: 10}, 0.5, enemy, tag.Enemy)

	done := 0
	r.launcher.Fire(combat.ProjectileBullet, Launch{
		Stats:       bulletStats(),
		Origin:      combat.Point{},
		Destination: vmath.Vec3F{Z: 10},
		TargetTags:  tag.Of(tag.Enemy, tag.StaticObstacle),
		OnAchieved:  func() { done++ },
	})

	r.steps(60)
	assert.Empty(t, ally.hits)
	assert.Equal(t, []int64{15}, enemy.hits)
	assert.Equal(t, 1, done)
}

func TestBulletLifetimeExpires(t *testing.T) {
	r := newRig(t)
	finished := 0
	r.bus.Subscribe(event.EventProjectileFinished, func(event.GameEvent) { finished++ })

	done := 0
	r.launcher.Fire(combat.ProjectileBullet, Launch{
		Stats:       bulletStats(),
		Origin:      combat.Point{},
		Destination: vmath.Vec3F{X: 1},
		TargetTags:  tag.Of(tag.Enemy),
		OnAchieved:  func() { done++ },
	})

	ticks := int(parameter.BulletMaxLifetime / tick)
	r.steps(ticks - 1)
	assert.Equal(t, 0, done)
	r.steps(1)
	assert.Equal(t, 1, done)
	assert.Equal(t, 1, finished)
}

func TestDeactivateSkipsDamageAndCallsBackOnce(t *testing.T) {
	r := newRig(t)
	victim := &hitLog{}
	r.addBody(vmath.Vec3F{Z: 2}, 0.5, victim, tag.Enemy)

	done := 0
	p, ok := r.launcher.Fire(combat.ProjectileBullet, Launch{
		Stats:       bulletStats(),
		Origin:      combat.Point{},
		Destination: vmath.Vec3F{Z: 2},
		TargetTags:  tag.Of(tag.Enemy),
		OnAchieved:  func() { done++ },
	})
	require.True(t, ok)

	p.Deactivate()
	assert.Equal(t, 1, done)
	assert.Equal(t, 0, r.launcher.Active())

	p.Deactivate()
	r.steps(20)
	assert.Equal(t, 1, done)
	assert.Empty(t, victim.hits)
}

func TestFireRejectsIncompleteLaunch(t *testing.T) {
	r := newRig(t)

	_, ok := r.launcher.Fire(combat.ProjectileBullet, Launch{Stats: bulletStats()})
	assert.False(t, ok, "no origin")

	_, ok = r.launcher.Fire(combat.ProjectileBullet, Launch{Origin: combat.Point{}})
	assert.False(t, ok, "no stats")

	_, ok = r.launcher.Fire(combat.ProjectileNone, Launch{Stats: bulletStats(), Origin: combat.Point{}})
	assert.False(t, ok, "no kind")

	assert.Equal(t, 0, r.launcher.Active())
}

func TestInitializeIgnoresSecondCall(t *testing.T) {
	r := newRig(t)
	p, ok := r.launcher.Fire(combat.ProjectileBullet, Launch{
		Stats:       bulletStats(),
		Origin:      combat.Point{},
		Destination: vmath.Vec3F{Z: 10},
		TargetTags:  tag.Of(tag.Enemy),
	})
	require.True(t, ok)

	p.Initialize(nil, bulletStats(), combat.Point{Pos: vmath.Vec3F{X: 50}}, vmath.Vec3F{X: 60}, nil, nil, false)
	assert.Equal(t, vmath.Vec3F{Z: 10}, p.Target())
	assert.Equal(t, vmath.Vec3F{}, p.Position())
}

func TestPreNormalizedDirection(t *testing.T) {
	r := newRig(t)
	p, ok := r.launcher.Fire(combat.ProjectileBullet, Launch{
		Stats:         bulletStats(),
		Origin:        combat.Point{Pos: vmath.Vec3F{X: 1, Y: 1, Z: 1}},
		Destination:   vmath.Vec3F{X: 1, Y: 5},
		TargetTags:    tag.Of(tag.Enemy),
		PreNormalized: true,
	})
	require.True(t, ok)

	assert.Equal(t, vmath.Vec3F{X: 2, Y: 1, Z: 1}, p.Target())
	assert.True(t, vmath.V3FApproxEqual(vmath.Vec3F{X: 0.4}, p.Step(), 1e-9))
}

func TestLevelClearInterruptsWithoutCallbacks(t *testing.T) {
	r := newRig(t)
	done := 0
	for i := 0; i < 3; i++ {
		r.launcher.Fire(combat.ProjectileBullet, Launch{
			Stats:       bulletStats(),
			Origin:      combat.Point{Pos: vmath.Vec3F{X: float64(i)}},
			Destination: vmath.Vec3F{X: float64(i), Z: 30},
			TargetTags:  tag.Of(tag.Enemy),
			OnAchieved:  func() { done++ },
		})
	}
	require.Equal(t, 3, r.launcher.Active())

	r.bus.Publish(event.EventLevelCleared, &event.LevelClearedPayload{Level: 1})

	assert.Equal(t, 0, r.launcher.Active())
	assert.Equal(t, 0, done)
	// Only the physics step remains on the fixed phase
	assert.Equal(t, 1, r.clock.Len(engine.PhaseFixed))
	assert.Equal(t, int64(0), r.reg.Ints.Get("projectile.active").Load())

	r.steps(100)
	assert.Equal(t, 0, done)
}

func TestPoolReusesReleasedSlot(t *testing.T) {
	r := newRig(t)
	first, _ := r.launcher.Fire(combat.ProjectileBullet, Launch{
		Stats:       bulletStats(),
		Origin:      combat.Point{},
		Destination: vmath.Vec3F{Z: 5},
		TargetTags:  tag.Of(tag.Enemy),
	})
	firstHandle := first.Handle()
	firstID := first.ID()
	first.Deactivate()

	second, ok := r.launcher.Fire(combat.ProjectileBullet, Launch{
		Stats:       bulletStats(),
		Origin:      combat.Point{},
		Destination: vmath.Vec3F{Z: 5},
		TargetTags:  tag.Of(tag.Enemy),
	})
	require.True(t, ok)
	assert.Same(t, first, second)
	assert.Equal(t, firstHandle.Index, second.Handle().Index)
	assert.NotEqual(t, firstHandle.Generation, second.Handle().Generation)
	assert.NotEqual(t, firstID, second.ID())
	assert.True(t, second.Active())
	assert.Equal(t, int64(2), r.reg.Ints.Get("projectile.spawned").Load())
}
