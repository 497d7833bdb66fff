package event

// EventType represents the type of combat event
type EventType int

const (
	// EventNone is the zero value and is never dispatched
	EventNone EventType = iota

	// === Level Event ===

	// EventLevelCleared interrupts every live flight and resets weapon ramps
	// Trigger: Arena level teardown | Consumer: Projectiles, Weapons | Payload: *LevelClearedPayload
	EventLevelCleared

	// === Weapon Event ===

	// EventShootStarted brackets the start of a shot action
	// Trigger: Weapon.Shot | Consumer: Installer relay, animation | Payload: *WeaponPayload
	EventShootStarted

	// EventShootFinished brackets the end of a shot action or a cancelled burst
	// Trigger: Weapon.Shot, Weapon.ExitShootExecution | Consumer: Installer relay | Payload: *WeaponPayload
	EventShootFinished

	// EventRechargeStarted signals the cooldown ramp began
	// Trigger: Weapon ammo bookkeeping | Consumer: Recharge view | Payload: *RampPayload
	EventRechargeStarted

	// EventRechargeFinished signals the cooldown ramp reached 1
	// Trigger: Weapon ramp task | Consumer: Recharge view | Payload: *WeaponPayload
	EventRechargeFinished

	// EventReloadStarted signals the reload ramp began
	// Trigger: Weapon ammo bookkeeping | Consumer: HUD | Payload: *RampPayload
	EventReloadStarted

	// EventReloadFinished signals ammo was refilled
	// Trigger: Weapon ramp task | Consumer: HUD | Payload: *WeaponPayload
	EventReloadFinished

	// EventWeaponChanged signals a new weapon was installed on a carrier
	// Trigger: Installer.Install | Consumer: HUD | Payload: *WeaponPayload
	EventWeaponChanged

	// EventWeaponImproved signals an upgrade counter was raised
	// Trigger: Weapon.Improve | Consumer: Progress tracking | Payload: *ImprovementPayload
	EventWeaponImproved

	// === Projectile Event ===

	// EventProjectileSpawned signals a flight began
	// Trigger: Weapon spawn path | Consumer: Diagnostics | Payload: *FlightPayload
	EventProjectileSpawned

	// EventProjectileFinished signals a flight ended and its callback ran
	// Trigger: Projectile termination | Consumer: Diagnostics | Payload: *FlightPayload
	EventProjectileFinished

	// EventRicochet signals a flight was redirected to a new target
	// Trigger: Ricochet resolver | Consumer: Diagnostics | Payload: *RicochetPayload
	EventRicochet

	// === Explosion Event ===

	// EventExploded signals an area blast was resolved
	// Trigger: Explosion process | Consumer: Camera shake, diagnostics | Payload: *ExplodedPayload
	EventExploded

	// === Damage Event ===

	// EventDamageDealt signals a receiver accepted damage
	// Trigger: Arena actors | Consumer: HUD | Payload: *DamagePayload
	EventDamageDealt

	// EventActorKilled signals an actor died; posted, so it arrives on the next flush
	// Trigger: Arena actors | Consumer: Wave tracking | Payload: *KilledPayload
	EventActorKilled

	eventTypeCount
)

// GameEvent is a single dispatched event
type GameEvent struct {
	Type    EventType
	Payload any
	Frame   int64
}
