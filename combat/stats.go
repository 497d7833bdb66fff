package combat

import (
	"fmt"
	"strings"
	"time"

	"github.com/lixenwraith/arsenal/core"
	"github.com/lixenwraith/arsenal/tag"
)

// WeaponType is the firing behaviour family
type WeaponType int

const (
	WeaponPistol WeaponType = iota
	WeaponAutomaticRifle
	WeaponShotgun
	WeaponThrowing
	WeaponMelee
	weaponTypeCount
)

var weaponTypeNames = [weaponTypeCount]string{
	WeaponPistol:         "pistol",
	WeaponAutomaticRifle: "automatic_rifle",
	WeaponShotgun:        "shotgun",
	WeaponThrowing:       "throwing",
	WeaponMelee:          "melee",
}

func (t WeaponType) String() string {
	if t < 0 || t >= weaponTypeCount {
		return "unknown"
	}
	return weaponTypeNames[t]
}

// ParseWeaponType maps a catalog name to its WeaponType
func ParseWeaponType(name string) (WeaponType, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range weaponTypeNames {
		if n == name {
			return WeaponType(i), true
		}
	}
	return 0, false
}

// ProjectileKind is the motion model of a flight
type ProjectileKind int

const (
	ProjectileNone ProjectileKind = iota
	ProjectileBullet
	ProjectileRicochet
	ProjectileGrenade
	ProjectileRocket
	projectileKindCount
)

var projectileKindNames = [projectileKindCount]string{
	ProjectileNone:     "none",
	ProjectileBullet:   "bullet",
	ProjectileRicochet: "ricochet",
	ProjectileGrenade:  "grenade",
	ProjectileRocket:   "rocket",
}

func (k ProjectileKind) String() string {
	if k < 0 || k >= projectileKindCount {
		return "unknown"
	}
	return projectileKindNames[k]
}

// ParseProjectileKind maps a catalog name to its ProjectileKind
func ParseProjectileKind(name string) (ProjectileKind, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return ProjectileNone, true
	}
	for i, n := range projectileKindNames {
		if n == name {
			return ProjectileKind(i), true
		}
	}
	return ProjectileNone, false
}

// Explosive reports whether flights of this kind end through an explosion session
func (k ProjectileKind) Explosive() bool {
	return k == ProjectileGrenade || k == ProjectileRocket
}

// AmmoPolicy decides how many ammo units a discharge consumes
type AmmoPolicy int

const (
	// AmmoPerDischarge consumes one unit per Shot regardless of projectile count
	AmmoPerDischarge AmmoPolicy = iota
	// AmmoPerProjectile consumes one unit per projectile actually fired
	AmmoPerProjectile
)

func (p AmmoPolicy) String() string {
	if p == AmmoPerProjectile {
		return "per_projectile"
	}
	return "per_discharge"
}

// ParseAmmoPolicy maps a catalog name to its AmmoPolicy; empty means per discharge
func ParseAmmoPolicy(name string) (AmmoPolicy, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "per_discharge":
		return AmmoPerDischarge, true
	case "per_projectile":
		return AmmoPerProjectile, true
	default:
		return AmmoPerDischarge, false
	}
}

// WeaponStats is the authored description of one weapon
// Every installed weapon owns its own copy; upgrade counters mutate that copy only
type WeaponStats struct {
	Name       string
	Type       WeaponType
	Projectile ProjectileKind

	Damage       int64
	DamageScaler float64
	PushForce    float64

	ProjectileSpeed   float64
	ProjectilesByShot int
	ShotDelay         time.Duration // Between projectiles inside one burst
	ShotAngle         float64       // Total spread in degrees
	ShotCountLevel    int           // Bursts per shot; raised by ShotUpgrade

	Recharge     time.Duration
	Reload       time.Duration
	AmmoCapacity int
	AmmoPolicy   AmmoPolicy

	RicochetTags   tag.Set // Ordered by priority
	RicochetCount  int     // Raised by RicochetUpgrade
	RicochetRadius float64

	ThrowHeight     float64
	YAxisMultiplier bool
	HasRotation     bool
	RotationSpeed   float64

	InstantExplosion bool
	ExplosionRadius  float64
	ExplosionForce   float64
	FuseDelay        time.Duration

	TriggerRadius    float64
	ContainsShield   bool
	LinkRechargeView bool

	ShotSound            core.SoundType
	ImpactSound          core.SoundType
	ImpactEffect         core.EffectType
	EffectOnTargetCenter bool
	ConstantTrail        bool
	ShellEffect          bool
}

// Clone returns an independent copy
func (s *WeaponStats) Clone() *WeaponStats {
	c := *s
	c.RicochetTags = s.RicochetTags.Clone()
	return &c
}

// Validate checks authored values
func (s *WeaponStats) Validate() error {
	switch {
	case s.Name == "":
		return fmt.Errorf("%w: empty name", ErrInvalidStats)
	case s.Type < 0 || s.Type >= weaponTypeCount:
		return fmt.Errorf("%w: %s: unknown type %d", ErrInvalidStats, s.Name, s.Type)
	case s.Type != WeaponMelee && s.Projectile == ProjectileNone:
		return fmt.Errorf("%w: %s: ranged weapon without projectile", ErrInvalidStats, s.Name)
	case s.Type != WeaponMelee && s.ProjectileSpeed <= 0:
		return fmt.Errorf("%w: %s: projectile speed must be positive", ErrInvalidStats, s.Name)
	case s.Type != WeaponMelee && s.ProjectilesByShot < 1:
		return fmt.Errorf("%w: %s: projectiles by shot must be at least 1", ErrInvalidStats, s.Name)
	case s.Type != WeaponMelee && s.AmmoCapacity < 1:
		return fmt.Errorf("%w: %s: ammo capacity must be at least 1", ErrInvalidStats, s.Name)
	case s.Recharge < 0 || s.Reload < 0 || s.ShotDelay < 0:
		return fmt.Errorf("%w: %s: negative duration", ErrInvalidStats, s.Name)
	case s.DamageScaler < 0:
		return fmt.Errorf("%w: %s: negative damage scaler", ErrInvalidStats, s.Name)
	case s.RicochetCount < 0:
		return fmt.Errorf("%w: %s: negative ricochet count", ErrInvalidStats, s.Name)
	}
	return nil
}

// ExplosionStats is the area-damage profile handed to an explosion process
type ExplosionStats struct {
	Radius      float64
	TriggerTags tag.Set
	Damage      int64
	Instant     bool
	Force       float64
	FuseDelay   time.Duration
}

// ExplosionProfile derives the blast profile of a weapon
// Blast victims are chosen by the ricochet tags; fallback is the supplied target set
func (s *WeaponStats) ExplosionProfile(fallback tag.Set) ExplosionStats {
	triggers := s.RicochetTags.Clone()
	if len(triggers) == 0 {
		for _, t := range fallback {
			if t != tag.StaticObstacle {
				triggers = append(triggers, t)
			}
		}
	}
	fuse := s.FuseDelay
	if s.InstantExplosion {
		fuse = 0
	}
	return ExplosionStats{
		Radius:      s.ExplosionRadius,
		TriggerTags: triggers,
		Damage:      ScaledDamage(s.Damage, s.DamageScaler),
		Instant:     s.InstantExplosion,
		Force:       s.ExplosionForce,
		FuseDelay:   fuse,
	}
}
