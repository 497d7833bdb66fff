package parameter

import (
	"time"
)

// Weapon timing
const (
	// BurstInterval is the pause between consecutive bursts of a burst weapon
	BurstInterval = 100 * time.Millisecond

	// RampCompleteValue is the progress value at which recharge and reload are done
	RampCompleteValue = 1.0
)

// Melee
const (
	// MeleeEffectLerp places the slash effect between carrier and target
	MeleeEffectLerp = 0.3

	// MeleeEffectHeight lifts the slash effect and aim point off the ground
	MeleeEffectHeight = 0.5
)

// Projectile flight
const (
	// BulletMaxLifetime ends a linear flight that never hit anything
	BulletMaxLifetime = 10 * time.Second

	// RicochetOverlapCap bounds candidates gathered per ricochet search
	RicochetOverlapCap = 30

	// SettleSpeedThreshold is the speed under which a thrown body counts as settled
	SettleSpeedThreshold = 0.2

	// ExplosionZoneScale converts blast radius into indicator size
	ExplosionZoneScale = 13.6

	// ProjectileHalfExtent is the half size of a projectile collider on every axis
	ProjectileHalfExtent = 0.1

	// LineOfSightHitCap bounds the hits inspected on a ricochet visibility ray
	LineOfSightHitCap = 5
)

// Explosion
const (
	// ExplosionDamageScale multiplies weapon damage for blast victims
	ExplosionDamageScale = 1.0

	// ExplosionFalloffMin is the damage fraction at the blast edge
	ExplosionFalloffMin = 0.25
)

// Improvement defaults used when no table is configured
const (
	DefaultShotUpgrade     = 1
	DefaultRicochetUpgrade = 1
)
