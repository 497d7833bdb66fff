// Package arena wires scene, scheduler, projectiles and weapons into a playable combat sandbox
package arena

import (
	"fmt"
	"math"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/arsenal/combat"
	"github.com/lixenwraith/arsenal/config"
	"github.com/lixenwraith/arsenal/core"
	"github.com/lixenwraith/arsenal/engine"
	"github.com/lixenwraith/arsenal/event"
	"github.com/lixenwraith/arsenal/parameter"
	"github.com/lixenwraith/arsenal/physics"
	"github.com/lixenwraith/arsenal/projectile"
	"github.com/lixenwraith/arsenal/service"
	"github.com/lixenwraith/arsenal/status"
	"github.com/lixenwraith/arsenal/tag"
	"github.com/lixenwraith/arsenal/vmath"
	"github.com/lixenwraith/arsenal/weapon"
)

// Options configures a new arena; zero values fall back to defaults
type Options struct {
	Catalog  *config.Catalog
	Sound    service.SoundPlayer
	Effects  service.EffectSpawner // Nil installs the arena's own effect log
	Registry *status.Registry
	Logger   zerolog.Logger
	Seed     uint64
}

// Arena owns one combat level
type Arena struct {
	clock    *engine.ClockScheduler
	scene    *physics.Scene
	bus      *event.Bus
	caps     *combat.Capabilities
	entities *core.EntityAllocator
	launcher *projectile.Launcher
	catalog  *config.Catalog
	weapons  weapon.Env
	effects  *Effects
	passives *service.PassiveTable
	progress *service.ProgressLog
	registry *status.Registry
	logger   zerolog.Logger

	actors    map[core.Entity]*Actor
	order     []*Actor
	obstacles []*physics.Body
	level     int

	tasks engine.Composite

	statActors *atomic.Int64
	statKills  *atomic.Int64
	statLevel  *atomic.Int64
}

// New builds an arena; a nil catalog loads the embedded default
func New(opts Options) (*Arena, error) {
	cat := opts.Catalog
	if cat == nil {
		var err error
		if cat, err = config.LoadDefault(); err != nil {
			return nil, fmt.Errorf("load catalog: %w", err)
		}
	}
	reg := opts.Registry
	if reg == nil {
		reg = status.NewRegistry()
	}
	seed := opts.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	a := &Arena{
		clock:      engine.NewClockScheduler(cat.Engine.FixedTick, reg),
		scene:      physics.NewDefaultScene(reg),
		bus:        event.NewBus(),
		caps:       combat.NewCapabilities(),
		entities:   &core.EntityAllocator{},
		catalog:    cat,
		passives:   service.NewPassiveTable(),
		progress:   service.NewProgressLog(),
		registry:   reg,
		logger:     opts.Logger.With().Str("component", "arena").Logger(),
		actors:     make(map[core.Entity]*Actor),
		statActors: reg.Ints.Get("arena.actors"),
		statKills:  reg.Ints.Get("arena.kills"),
		statLevel:  reg.Ints.Get("arena.level"),
	}
	a.effects = NewEffects(a.clock)
	var fx service.EffectSpawner = a.effects
	if opts.Effects != nil {
		fx = opts.Effects
	}
	sound := opts.Sound
	if sound == nil {
		sound = service.NopSound{}
	}

	a.launcher = projectile.NewLauncher(projectile.Env{
		Clock:       a.clock,
		Scene:       a.scene,
		Bus:         a.bus,
		Caps:        a.caps,
		Sound:       sound,
		Effects:     fx,
		Explosions:  a.blastFactory(sound, fx),
		Entities:    a.entities,
		Rand:        vmath.NewFastRand(seed),
		Registry:    reg,
		Logger:      opts.Logger,
		SettleSpeed: cat.Engine.SettleSpeed,
	})
	a.weapons = weapon.Env{
		Clock:        a.clock,
		Launcher:     a.launcher,
		Scene:        a.scene,
		Bus:          a.bus,
		Caps:         a.caps,
		Sound:        sound,
		Effects:      fx,
		Passives:     a.passives,
		Progress:     a.progress,
		Improvements: cat.Improvements,
		Registry:     reg,
		Logger:       opts.Logger,
	}

	a.tasks.Add(
		a.clock.EveryFixed(parameter.PriorityPhysicsStep, func(dt time.Duration) engine.Step {
			a.scene.Step(dt)
			return engine.Continue
		}),
		a.clock.EveryFixed(parameter.PriorityFixedTimer, func(dt time.Duration) engine.Step {
			for _, act := range a.order {
				if act.alive {
					act.slide(dt)
				}
			}
			return engine.Continue
		}),
	)
	a.statLevel.Store(int64(a.level))
	return a, nil
}

// Spawn creates an actor standing on spec.Position and installs its weapon
func (a *Arena) Spawn(spec ActorSpec) (*Actor, error) {
	hp := spec.Health
	if hp <= 0 {
		hp = parameter.DefaultActorHealth
	}
	layer, hitbox := tag.Enemy, tag.EnemyHitBox
	if spec.Player {
		layer, hitbox = tag.Player, tag.PlayerHitBox
	}

	id := a.entities.Next()
	body := physics.NewBody(id, layer, vmath.Vec3F{
		X: parameter.ActorHalfWidth, Y: parameter.ActorHalfHeight, Z: parameter.ActorHalfWidth,
	}, layer, hitbox)
	body.Motion = physics.MotionKinematic
	body.Position = vmath.V3FWithY(spec.Position, parameter.ActorHalfHeight)

	act := &Actor{
		arena:     a,
		id:        id,
		name:      spec.Name,
		player:    spec.Player,
		body:      body,
		health:    hp,
		maxHealth: hp,
		alive:     true,
	}
	if act.name == "" {
		act.name = fmt.Sprintf("%s-%d", layer, id)
	}
	body.Data = act
	a.scene.Add(body)
	a.caps.SetReceiver(id, act)

	in, err := weapon.NewInstaller(a.weapons, a.catalog, act)
	if err != nil {
		return nil, err
	}
	act.installer = in
	if spec.Weapon != "" {
		if _, err := in.Install(spec.Weapon); err != nil {
			a.despawn(act)
			return nil, err
		}
	}

	a.actors[id] = act
	a.order = append(a.order, act)
	a.statActors.Store(int64(a.liveCount()))
	a.logger.Debug().Str("actor", act.name).Bool("player", act.player).Str("weapon", spec.Weapon).Msg("actor spawned")
	return act, nil
}

// AddObstacle places a static wall that stops projectiles and blocks melee
func (a *Arena) AddObstacle(center, half vmath.Vec3F) *physics.Body {
	b := physics.NewBody(a.entities.Next(), tag.StaticObstacle, half)
	b.Motion = physics.MotionStatic
	b.Position = center
	a.scene.Add(b)
	a.caps.SetBlocker(b.Entity, true)
	a.obstacles = append(a.obstacles, b)
	return b
}

// Attack aims the attacker at target and asks its weapon to shoot
func (a *Arena) Attack(attacker *Actor, target combat.Target) bool {
	if attacker == nil || target == nil || !attacker.alive {
		return false
	}
	w := attacker.Weapon()
	if w == nil {
		return false
	}
	attacker.Face(target.Position())
	return w.Shot(target)
}

// NearestEnemy returns the closest live hostile within the actor's detection radius
// A zero radius means unlimited range
func (a *Arena) NearestEnemy(from *Actor) (*Actor, bool) {
	var best *Actor
	bestDist := math.Inf(1)
	tags := from.EnemyTags()
	for _, o := range a.order {
		if o == from || !o.alive || !o.body.Tags.HasAny(tags) {
			continue
		}
		d := vmath.V3FDist(from.Position(), o.Position())
		if from.radius > 0 && d > from.radius {
			continue
		}
		if d < bestDist {
			best, bestDist = o, d
		}
	}
	return best, best != nil
}

// Improve upgrades the actor's installed weapon
func (a *Arena) Improve(act *Actor, kind combat.ImproveType) error {
	w := act.Weapon()
	if w == nil {
		return fmt.Errorf("%s: %w", act.name, weapon.ErrUnknownWeapon)
	}
	return w.Improve(kind)
}

// Advance runs one frame: fixed steps, variable tasks, then deferred events
func (a *Arena) Advance(frameDt time.Duration) {
	a.bus.SetFrame(a.clock.Frame())
	a.clock.Advance(frameDt)
	a.bus.Flush()
}

// ClearLevel interrupts every flight, resets weapon ramps and drops the dead
func (a *Arena) ClearLevel() {
	a.bus.Publish(event.EventLevelCleared, &event.LevelClearedPayload{Level: a.level})

	live := a.order[:0]
	for _, act := range a.order {
		if act.alive {
			live = append(live, act)
			continue
		}
		delete(a.actors, act.id)
	}
	clear(a.order[len(live):])
	a.order = live

	a.level++
	a.statLevel.Store(int64(a.level))
	a.logger.Debug().Int("level", a.level).Int("actors", len(a.order)).Msg("level cleared")
}

// kill removes a dead actor from the scene; it stays listed until ClearLevel
// The death notice is posted so listeners see it after the frame's hits resolve
func (a *Arena) kill(act *Actor, sender combat.DamageSender) {
	a.despawn(act)
	a.statKills.Add(1)
	a.statActors.Store(int64(a.liveCount()))
	a.bus.Post(event.EventActorKilled, &event.KilledPayload{
		Actor:  act.id,
		Player: act.player,
		Sender: sender.String(),
	})
	a.logger.Debug().Str("actor", act.name).Msg("actor killed")
}

func (a *Arena) despawn(act *Actor) {
	act.SetShield(false)
	if act.installer != nil {
		act.installer.Clear()
	}
	act.knock = vmath.Vec3F{}
	a.caps.Forget(act.id)
	a.scene.Destroy(act.body)
}

// Hostiles counts live actors opposing the player
func (a *Arena) Hostiles() int {
	n := 0
	for _, act := range a.order {
		if act.alive && !act.player {
			n++
		}
	}
	return n
}

func (a *Arena) liveCount() int {
	n := 0
	for _, act := range a.order {
		if act.alive {
			n++
		}
	}
	return n
}

// Close stops every task and releases pooled flights
func (a *Arena) Close() {
	for _, act := range a.order {
		if act.installer != nil {
			act.installer.Clear()
		}
	}
	a.launcher.Close()
	a.tasks.Dispose()
	a.effects.Close()
}

func (a *Arena) Actor(id core.Entity) (*Actor, bool) {
	act, ok := a.actors[id]
	return act, ok
}

// Actors lists actors in spawn order, dead ones included until ClearLevel
func (a *Arena) Actors() []*Actor {
	out := make([]*Actor, len(a.order))
	copy(out, a.order)
	return out
}

func (a *Arena) Obstacles() []*physics.Body { return a.obstacles }

func (a *Arena) Level() int { return a.level }

func (a *Arena) Clock() *engine.ClockScheduler { return a.clock }

func (a *Arena) Scene() *physics.Scene { return a.scene }

func (a *Arena) Bus() *event.Bus { return a.bus }

func (a *Arena) Launcher() *projectile.Launcher { return a.launcher }

func (a *Arena) Catalog() *config.Catalog { return a.catalog }

func (a *Arena) Effects() *Effects { return a.effects }

func (a *Arena) Passives() *service.PassiveTable { return a.passives }

func (a *Arena) Progress() *service.ProgressLog { return a.progress }

func (a *Arena) Registry() *status.Registry { return a.registry }
