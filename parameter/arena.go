package parameter

import "time"

// Actor geometry
const (
	// ActorHalfWidth is the hit box half size on X and Z
	ActorHalfWidth = 0.4

	// ActorHalfHeight is the hit box half height; actors stand with their center at this height
	ActorHalfHeight = 1.0

	// MuzzleForward places the spawn anchor ahead of the actor along its facing
	MuzzleForward = 0.6

	// MuzzleHeight lifts the spawn anchor above the actor center
	MuzzleHeight = 0.5

	// DefaultActorHealth is used when a spawn request names none
	DefaultActorHealth = 100
)

// Shield geometry
const (
	// ShieldForward places the shield collider ahead of its bearer
	ShieldForward = 0.7

	ShieldHalfWidth  = 0.5
	ShieldHalfHeight = 0.9
	ShieldHalfDepth  = 0.1
)

// Knockback
const (
	// KnockbackDamping is the per-second decay rate of push velocity
	KnockbackDamping = 8.0

	// KnockbackRest is the push speed below which an actor stops sliding
	KnockbackRest = 0.01
)

// Effects
const (
	// EffectLifetime is how long a one-shot effect stays visible
	EffectLifetime = 400 * time.Millisecond

	// EffectCapacity bounds live one-shot effects; the oldest are dropped first
	EffectCapacity = 256
)
