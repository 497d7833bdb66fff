package combat

import (
	"math"
	"time"

	"github.com/lixenwraith/arsenal/core"
	"github.com/lixenwraith/arsenal/tag"
	"github.com/lixenwraith/arsenal/vmath"
)

// DamageSender categorizes who dealt damage
type DamageSender int

const (
	SenderInteractiveObjects DamageSender = iota
	SenderPlayer
	SenderEnemy
)

func (s DamageSender) String() string {
	switch s {
	case SenderInteractiveObjects:
		return "interactive_objects"
	case SenderPlayer:
		return "player"
	case SenderEnemy:
		return "enemy"
	default:
		return "unknown"
	}
}

//go:generate go run go.uber.org/mock/mockgen -destination=./mocks/damage_receiver_mock.go -package=mocks . DamageReceiver

// DamageReceiver is the capability of anything that can be hurt or shoved
type DamageReceiver interface {
	IsAlive() bool
	MakeDamage(amount int64, sender DamageSender, delay time.Duration, checkNoise bool)
	Push(force vmath.Vec3F, zeroY bool)
}

// Anchor is a scene point that may vanish, such as a muzzle or a hand
type Anchor interface {
	Position() vmath.Vec3F
}

// Target is what a weapon is aimed at
type Target interface {
	Entity() core.Entity
	Position() vmath.Vec3F
}

// Carrier is the actor holding a weapon
type Carrier interface {
	Entity() core.Entity
	Position() vmath.Vec3F
	IsPlayer() bool
	// EnemyTags lists the tags this carrier may hit, in priority order
	EnemyTags() tag.Set
	// Muzzle is the projectile spawn anchor; nil when the weapon has no spawn point
	Muzzle() Anchor
}

// SenderOf derives the damage category from the carrier's identity
func SenderOf(c Carrier) DamageSender {
	if c != nil && c.IsPlayer() {
		return SenderPlayer
	}
	return SenderEnemy
}

// ScaledDamage returns floor(base × scaler)
func ScaledDamage(base int64, scaler float64) int64 {
	return int64(math.Floor(float64(base) * scaler))
}

// PushAlong returns dir normalized and scaled by force
func PushAlong(dir vmath.Vec3F, force float64) vmath.Vec3F {
	return vmath.V3FScale(vmath.V3FNormalize(dir), force)
}

// Point is a fixed Target or Anchor with no backing actor
type Point struct {
	ID  core.Entity
	Pos vmath.Vec3F
}

func (p Point) Entity() core.Entity   { return p.ID }
func (p Point) Position() vmath.Vec3F { return p.Pos }
