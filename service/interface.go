package service

import (
	"time"

	"github.com/lixenwraith/arsenal/combat"
	"github.com/lixenwraith/arsenal/core"
	"github.com/lixenwraith/arsenal/engine"
	"github.com/lixenwraith/arsenal/vmath"
)

// Service defines the lifecycle interface for infrastructure subsystems
// Services manage long-lived resources: audio backends, metric exporters
//
// Lifecycle:
//  1. Construction (via factory)
//  2. Init(args...) - implicit configuration (e.g. from parsed flags/env)
//  3. Start() - launch background goroutines
//  4. [runtime operation]
//  5. Stop() - halt goroutines, release resources
type Service interface {
	// Name returns the unique identifier for this service
	Name() string

	// Dependencies returns names of services that must Init before this one
	Dependencies() []string

	// Init configures the service from optional args
	Init(args ...any) error

	// Start begins service operation (launches goroutines if any)
	Start() error

	// Stop halts service operation and releases resources
	// Must be idempotent - safe to call multiple times
	Stop() error
}

// SoundPlayer plays one-shot sounds; fire and forget
type SoundPlayer interface {
	Play(sound core.SoundType, at vmath.Vec3F)
}

// EffectSpawner places visual effects; fire and forget
type EffectSpawner interface {
	// Spawn places a one-shot effect facing yaw degrees; scale 0 means default size
	Spawn(effect core.EffectType, at vmath.Vec3F, yaw, scale float64)
	// Attach keeps an effect following anchor until the subscription is disposed
	Attach(effect core.EffectType, anchor combat.Anchor, scale float64) engine.Subscription
}

// PassiveSkill identifies a carrier ability that modifies weapon timing
type PassiveSkill int

const (
	SkillNone PassiveSkill = iota
	SkillAttackSpeedBooster
)

func (s PassiveSkill) String() string {
	switch s {
	case SkillAttackSpeedBooster:
		return "attack_speed_booster"
	default:
		return "none"
	}
}

// PassiveSkills resolves the effective value of a duration under a skill
type PassiveSkills interface {
	Modify(skill PassiveSkill, base time.Duration) time.Duration
}

// ProgressRecorder persists mission progress facts
type ProgressRecorder interface {
	RecordImprovedWeapon(weapon string, kind combat.ImproveType)
}
