package service

import (
	"time"

	"github.com/lixenwraith/arsenal/combat"
	"github.com/lixenwraith/arsenal/core"
	"github.com/lixenwraith/arsenal/engine"
	"github.com/lixenwraith/arsenal/vmath"
)

// NopSound discards every sound
type NopSound struct{}

func (NopSound) Play(core.SoundType, vmath.Vec3F) {}

// NopEffects discards every effect
type NopEffects struct{}

func (NopEffects) Spawn(core.EffectType, vmath.Vec3F, float64, float64) {}

func (NopEffects) Attach(core.EffectType, combat.Anchor, float64) engine.Subscription {
	return engine.NopSubscription
}

// NopPassives leaves durations untouched
type NopPassives struct{}

func (NopPassives) Modify(_ PassiveSkill, base time.Duration) time.Duration { return base }

// NopProgress discards progress facts
type NopProgress struct{}

func (NopProgress) RecordImprovedWeapon(string, combat.ImproveType) {}
