package event

import (
	"time"

	"github.com/google/uuid"

	"github.com/lixenwraith/arsenal/core"
	"github.com/lixenwraith/arsenal/vmath"
)

// LevelClearedPayload identifies the level being torn down
type LevelClearedPayload struct {
	Level int
}

// WeaponPayload identifies a weapon by carrier and catalog name
type WeaponPayload struct {
	Carrier core.Entity
	Weapon  string
}

// RampPayload carries the effective duration of a recharge or reload ramp
type RampPayload struct {
	Carrier  core.Entity
	Weapon   string
	Duration time.Duration
}

// ImprovementPayload records an applied upgrade
type ImprovementPayload struct {
	Carrier core.Entity
	Weapon  string
	Kind    string
	Value   int
}

// FlightPayload describes one projectile flight
type FlightPayload struct {
	FlightID uuid.UUID
	Carrier  core.Entity
	Weapon   string
	Kind     string
	Position vmath.Vec3F
}

// RicochetPayload describes one redirect
type RicochetPayload struct {
	FlightID  uuid.UUID
	From      core.Entity
	To        core.Entity
	Remaining int
}

// ExplodedPayload summarizes a resolved blast
type ExplodedPayload struct {
	Position vmath.Vec3F
	Radius   float64
	Victims  int
}

// DamagePayload records damage accepted by a receiver
type DamagePayload struct {
	Target core.Entity
	Amount int64
	Sender string
	Alive  bool
}

// KilledPayload reports an actor whose health reached zero
type KilledPayload struct {
	Actor  core.Entity
	Player bool
	Sender string
}
