package weapon

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/arsenal/combat"
	"github.com/lixenwraith/arsenal/core"
	"github.com/lixenwraith/arsenal/engine"
	"github.com/lixenwraith/arsenal/event"
	"github.com/lixenwraith/arsenal/projectile"
	"github.com/lixenwraith/arsenal/service"
	"github.com/lixenwraith/arsenal/tag"
	"github.com/lixenwraith/arsenal/vmath"
)

// shooter is the firing behaviour of one weapon family
type shooter interface {
	shot(w *Weapon, target combat.Target) bool
}

// Weapon is an installed weapon: stats copy, ammo and the recharge / reload ramps
// Lifecycle events go to the weapon's own bus; improvements go to the shared bus
type Weapon struct {
	env    Env
	stats  *combat.WeaponStats
	logger zerolog.Logger

	carrier    combat.Carrier
	targetTags tag.Set
	kind       combat.WeaponType
	shooter    shooter

	ammo     int
	recharge *Ramp
	reload   *Ramp
	shooting bool
	burst    *burstRun

	initialized bool
	destroyed   bool
	improved    bool
	heldVisible bool

	events *event.Bus
	level  engine.Subscription

	statShots       *atomic.Int64
	statProjectiles *atomic.Int64
}

// New creates a weapon owning a copy of stats; it fires only after Initialize
func New(env Env, stats *combat.WeaponStats) *Weapon {
	env.withDefaults()
	w := &Weapon{
		env:             env,
		stats:           stats.Clone(),
		recharge:        newRamp(env.Clock),
		reload:          newRamp(env.Clock),
		heldVisible:     true,
		events:          event.NewBus(),
		statShots:       env.Registry.Ints.Get("weapon.shots"),
		statProjectiles: env.Registry.Ints.Get("weapon.projectiles"),
	}
	w.logger = env.Logger.With().Str("component", "weapon").Str("weapon", w.stats.Name).Logger()
	return w
}

// Initialize binds the weapon to its carrier; later calls are ignored
// The static obstacle tag is appended so flights stop on level geometry
func (w *Weapon) Initialize(carrier combat.Carrier, targetTags tag.Set) *Weapon {
	if w.initialized || w.destroyed {
		return w
	}
	w.initialized = true
	w.carrier = carrier
	w.targetTags = targetTags.With(tag.StaticObstacle)
	w.kind = w.stats.Type
	w.ammo = w.stats.AmmoCapacity

	switch w.kind {
	case combat.WeaponShotgun:
		w.shooter = spreadShooter{}
	case combat.WeaponThrowing:
		w.shooter = thrownShooter{}
	case combat.WeaponMelee:
		w.shooter = meleeShooter{}
	default:
		w.shooter = burstShooter{}
	}

	w.level = w.env.Bus.Subscribe(event.EventLevelCleared, func(event.GameEvent) { w.resetForLevel() })
	return w
}

// Shot fires at target and reports whether a discharge started
// Nil target, an unavailable weapon or a missing spawn point fire nothing
func (w *Weapon) Shot(target combat.Target) bool {
	if target == nil || !w.initialized || w.destroyed || !w.Available() {
		return false
	}
	if !w.shooter.shot(w, target) {
		return false
	}
	w.statShots.Add(1)
	return true
}

// Available reports recharge and reload complete and no shot in progress
func (w *Weapon) Available() bool {
	return w.recharge.Done() && w.reload.Done() && !w.shooting
}

// ExitShootExecution ends the current shot; a running burst stops before its next projectile
func (w *Weapon) ExitShootExecution() {
	run := w.burst
	w.finishShoot()
	if run != nil {
		run.cancel()
	}
}

// ApplyExternalDamageScaler replaces the damage multiplier, live flights included
func (w *Weapon) ApplyExternalDamageScaler(scale float64) {
	w.stats.DamageScaler = scale
}

// Improve raises the upgrade counter selected by kind
func (w *Weapon) Improve(kind combat.ImproveType) error {
	v, err := w.env.Improvements.Apply(kind, w.stats)
	if err != nil {
		return fmt.Errorf("improve %s: %w", w.stats.Name, err)
	}
	w.improved = true
	w.env.Progress.RecordImprovedWeapon(w.stats.Name, kind)
	w.env.Bus.Publish(event.EventWeaponImproved, &event.ImprovementPayload{
		Carrier: w.carrierEntity(),
		Weapon:  w.stats.Name,
		Kind:    kind.String(),
		Value:   v,
	})
	w.logger.Debug().Str("kind", kind.String()).Int("value", v).Msg("weapon improved")
	return nil
}

// Destroy cancels ramps, bursts and subscriptions; the weapon never fires again
func (w *Weapon) Destroy() {
	if w.destroyed {
		return
	}
	w.destroyed = true
	w.cancelBurst()
	w.shooting = false
	w.recharge.Cancel()
	w.reload.Cancel()
	engine.DisposeAndNil(&w.level)
}

func (w *Weapon) enterShoot() {
	w.shooting = true
	w.events.Publish(event.EventShootStarted, w.payload())
}

func (w *Weapon) finishShoot() {
	w.shooting = false
	w.events.Publish(event.EventShootFinished, w.payload())
}

// consume spends ammo units, then starts a reload when empty or a recharge otherwise
func (w *Weapon) consume(units int) {
	w.ammo -= units
	if w.ammo < 0 {
		w.ammo = 0
	}
	if w.ammo <= 0 {
		w.startReload()
		return
	}
	w.startRecharge()
}

func (w *Weapon) startRecharge() {
	d := w.stats.Recharge
	if w.carrier != nil && w.carrier.IsPlayer() {
		d = w.env.Passives.Modify(service.SkillAttackSpeedBooster, d)
	}
	w.events.Publish(event.EventRechargeStarted, w.rampPayload(d))
	w.recharge.Start(d, w.onRechargeComplete)
}

func (w *Weapon) startReload() {
	w.events.Publish(event.EventReloadStarted, w.rampPayload(w.stats.Reload))
	w.reload.Start(w.stats.Reload, w.onReloadComplete)
}

func (w *Weapon) onRechargeComplete() {
	w.heldVisible = true
	w.events.Publish(event.EventRechargeFinished, w.payload())
}

func (w *Weapon) onReloadComplete() {
	w.ammo = w.stats.AmmoCapacity
	w.heldVisible = true
	w.events.Publish(event.EventReloadFinished, w.payload())
	w.logger.Debug().Int("ammo", w.ammo).Msg("reloaded")
}

func (w *Weapon) resetForLevel() {
	w.cancelBurst()
	w.shooting = false
	w.recharge.Reset()
	w.reload.Reset()
	w.ammo = w.stats.AmmoCapacity
	w.heldVisible = true
}

func (w *Weapon) cancelBurst() {
	if w.burst != nil {
		w.burst.stop()
	}
}

// fire spawns one projectile from the carrier muzzle
func (w *Weapon) fire(origin combat.Anchor, dest vmath.Vec3F, preNormalized bool, mask tag.Mask) bool {
	_, ok := w.env.Launcher.Fire(w.stats.Projectile, projectile.Launch{
		Carrier:       w.carrier,
		Stats:         w.stats,
		Origin:        origin,
		Destination:   dest,
		TargetTags:    w.targetTags,
		RicochetMask:  mask,
		PreNormalized: preNormalized,
	})
	if ok {
		w.statProjectiles.Add(1)
	}
	return ok
}

// muzzle returns the spawn anchor or nil when the carrier has none
func (w *Weapon) muzzle() combat.Anchor {
	if w.carrier == nil {
		return nil
	}
	return w.carrier.Muzzle()
}

func (w *Weapon) playShot(at vmath.Vec3F) {
	if w.stats.ShotSound != core.SoundNone {
		w.env.Sound.Play(w.stats.ShotSound, at)
	}
}

// spawnShotEffects places the muzzle flash facing back along the shot and the ejected shell
func (w *Weapon) spawnShotEffects(origin combat.Anchor, toward vmath.Vec3F) {
	pos := origin.Position()
	yaw := vmath.V3FYaw(vmath.V3FFlatten(vmath.V3FSub(toward, pos)))
	w.env.Effects.Spawn(core.EffectMuzzle, pos, yaw+180, 0)
	if w.stats.ShellEffect {
		w.env.Effects.Spawn(core.EffectShell, pos, yaw+90, 0)
	}
}

func (w *Weapon) carrierEntity() core.Entity {
	if w.carrier == nil {
		return 0
	}
	return w.carrier.Entity()
}

func (w *Weapon) payload() *event.WeaponPayload {
	return &event.WeaponPayload{Carrier: w.carrierEntity(), Weapon: w.stats.Name}
}

func (w *Weapon) rampPayload(d time.Duration) *event.RampPayload {
	return &event.RampPayload{Carrier: w.carrierEntity(), Weapon: w.stats.Name, Duration: d}
}

// Stats returns the weapon's own stats copy
func (w *Weapon) Stats() *combat.WeaponStats { return w.stats }

// Type returns the firing family resolved at Initialize
func (w *Weapon) Type() combat.WeaponType { return w.kind }

// Name returns the catalog name
func (w *Weapon) Name() string { return w.stats.Name }

// Carrier returns the holder bound at Initialize
func (w *Weapon) Carrier() combat.Carrier { return w.carrier }

// TargetTags returns the resolved target set, static obstacle included
func (w *Weapon) TargetTags() tag.Set { return w.targetTags }

// Ammo returns the units left before a reload
func (w *Weapon) Ammo() int { return w.ammo }

// RechargeProgress returns recharge progress in [0,1]
func (w *Weapon) RechargeProgress() float64 { return w.recharge.Value() }

// ReloadProgress returns reload progress in [0,1]
func (w *Weapon) ReloadProgress() float64 { return w.reload.Value() }

// Recharging reports a running recharge ramp
func (w *Weapon) Recharging() bool { return w.recharge.Running() }

// Shooting reports a shot in progress
func (w *Weapon) Shooting() bool { return w.shooting }

// Improved reports whether any improvement was applied
func (w *Weapon) Improved() bool { return w.improved }

// HeldVisible reports whether a thrown weapon's held item is shown
func (w *Weapon) HeldVisible() bool { return w.heldVisible }

// Events returns the bus carrying this weapon's lifecycle events
func (w *Weapon) Events() *event.Bus { return w.events }
