package weapon

import (
	"github.com/rs/zerolog"

	"github.com/lixenwraith/arsenal/combat"
	"github.com/lixenwraith/arsenal/engine"
	"github.com/lixenwraith/arsenal/event"
	"github.com/lixenwraith/arsenal/parameter"
	"github.com/lixenwraith/arsenal/physics"
	"github.com/lixenwraith/arsenal/projectile"
	"github.com/lixenwraith/arsenal/service"
	"github.com/lixenwraith/arsenal/status"
)

// Clock schedules ramp and burst tasks; *engine.ClockScheduler satisfies it
type Clock interface {
	EveryFrame(priority int, fn engine.TaskFunc) engine.Subscription
}

// Env bundles what every weapon shares
// Clock and Launcher are required; Scene is required for melee
type Env struct {
	Clock        Clock
	Launcher     *projectile.Launcher
	Scene        *physics.Scene
	Bus          *event.Bus
	Caps         *combat.Capabilities
	Sound        service.SoundPlayer
	Effects      service.EffectSpawner
	Passives     service.PassiveSkills
	Progress     service.ProgressRecorder
	Improvements *combat.ImprovementTable
	Registry     *status.Registry
	Logger       zerolog.Logger
}

func (e *Env) withDefaults() {
	if e.Bus == nil {
		if e.Launcher != nil {
			e.Bus = e.Launcher.Bus()
		} else {
			e.Bus = event.NewBus()
		}
	}
	if e.Caps == nil {
		e.Caps = combat.NewCapabilities()
	}
	if e.Sound == nil {
		e.Sound = service.NopSound{}
	}
	if e.Effects == nil {
		e.Effects = service.NopEffects{}
	}
	if e.Passives == nil {
		e.Passives = service.NopPassives{}
	}
	if e.Progress == nil {
		e.Progress = service.NopProgress{}
	}
	if e.Improvements == nil {
		e.Improvements = combat.NewImprovementTable(map[combat.ImproveType]int{
			combat.ImproveShotUpgrade:     parameter.DefaultShotUpgrade,
			combat.ImproveRicochetUpgrade: parameter.DefaultRicochetUpgrade,
		})
	}
	if e.Registry == nil {
		e.Registry = status.NewRegistry()
	}
}
