package audio

import (
	"github.com/lixenwraith/arsenal/core"
	"github.com/lixenwraith/arsenal/parameter"
)

// Config holds playback settings
type Config struct {
	Enabled      bool
	Headless     bool // Mix without opening a device; the host pulls samples via Stream
	MasterVolume float64
	SampleRate   int
	MaxDistance  float64

	EffectVolumes map[core.SoundType]float64
}

// DefaultConfig returns audio settings with audio enabled at moderate volume
func DefaultConfig() *Config {
	return &Config{
		Enabled:      true,
		MasterVolume: 0.5,
		SampleRate:   parameter.AudioSampleRate,
		MaxDistance:  parameter.AudioMaxDistance,
		EffectVolumes: map[core.SoundType]float64{
			core.SoundShot:      0.6,
			core.SoundThrow:     0.4,
			core.SoundImpact:    0.5,
			core.SoundExplosion: 0.9,
			core.SoundSlash:     0.5,
			core.SoundReload:    0.4,
		},
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
