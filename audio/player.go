package audio

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/arsenal/core"
	"github.com/lixenwraith/arsenal/parameter"
	"github.com/lixenwraith/arsenal/status"
	"github.com/lixenwraith/arsenal/vmath"
)

// Player synthesizes positional weapon sounds into one beep mixer
// Without a device it degrades to silence; Play never blocks or fails
type Player struct {
	mu       sync.Mutex
	cfg      *Config
	rate     beep.SampleRate
	mixer    *beep.Mixer
	listener vmath.Vec3F
	last     [core.SoundTypeCount]time.Time
	now      func() time.Time
	logger   zerolog.Logger

	running   atomic.Bool
	muted     atomic.Bool
	onSpeaker bool

	statPlayed  *atomic.Int64
	statDropped *atomic.Int64
}

// NewPlayer creates a stopped player; a nil cfg uses DefaultConfig
func NewPlayer(cfg *Config, reg *status.Registry, logger zerolog.Logger) *Player {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if reg == nil {
		reg = status.NewRegistry()
	}
	p := &Player{
		mixer:       &beep.Mixer{},
		now:         time.Now,
		logger:      logger.With().Str("component", "audio").Logger(),
		statPlayed:  reg.Ints.Get("audio.played"),
		statDropped: reg.Ints.Get("audio.dropped"),
	}
	p.setConfig(cfg)
	return p
}

func (p *Player) setConfig(cfg *Config) {
	p.cfg = cfg
	p.rate = beep.SampleRate(cfg.SampleRate)
	if p.rate <= 0 {
		p.rate = parameter.AudioSampleRate
	}
	p.muted.Store(!cfg.Enabled)
}

// Name implements service.Service
func (p *Player) Name() string {
	return "audio"
}

// Dependencies implements service.Service
func (p *Player) Dependencies() []string {
	return nil
}

// Init implements service.Service
// Accepts a *Config replacing the current one and a bool mute flag, in any order
func (p *Player) Init(args ...any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, a := range args {
		switch v := a.(type) {
		case *Config:
			if v != nil {
				p.setConfig(v)
			}
		case bool:
			p.muted.Store(v)
		}
	}
	return nil
}

// Start implements service.Service
// A speaker failure leaves the player running in silent mode
func (p *Player) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.running.Load() {
		return nil
	}
	if !p.cfg.Headless {
		if err := speaker.Init(p.rate, p.rate.N(parameter.AudioBufferDuration)); err != nil {
			p.logger.Warn().Err(err).Msg("speaker unavailable, audio silent")
			p.muted.Store(true)
		} else {
			speaker.Play(p.mixer)
			p.onSpeaker = true
		}
	}
	p.running.Store(true)
	p.logger.Debug().Bool("speaker", p.onSpeaker).Int("rate", int(p.rate)).Msg("audio started")
	return nil
}

// Stop implements service.Service; idempotent
func (p *Player) Stop() error {
	if !p.running.CompareAndSwap(true, false) {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.onSpeaker {
		speaker.Clear()
		speaker.Close()
		p.onSpeaker = false
	}
	p.mixer.Clear()
	return nil
}

// Play implements service.SoundPlayer
func (p *Player) Play(sound core.SoundType, at vmath.Vec3F) {
	if sound <= core.SoundNone || sound >= core.SoundTypeCount {
		return
	}
	if !p.running.Load() || p.muted.Load() {
		p.statDropped.Add(1)
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	vol := p.volume(sound, at)
	now := p.now()
	if vol <= 0 || now.Sub(p.last[sound]) < parameter.AudioMinSoundGap {
		p.statDropped.Add(1)
		return
	}
	s := Synthesize(sound, vol, p.rate)
	if s == nil {
		p.statDropped.Add(1)
		return
	}
	p.last[sound] = now

	if p.onSpeaker {
		speaker.Lock()
		p.mixer.Add(s)
		speaker.Unlock()
	} else {
		p.mixer.Add(s)
	}
	p.statPlayed.Add(1)
}

// volume is master * effect * linear distance falloff; caller holds mu
func (p *Player) volume(sound core.SoundType, at vmath.Vec3F) float64 {
	vol := p.cfg.MasterVolume
	if ev, ok := p.cfg.EffectVolumes[sound]; ok {
		vol *= ev
	}
	if p.cfg.MaxDistance > 0 {
		d := vmath.V3FDist(p.listener, at)
		vol *= 1 - d/p.cfg.MaxDistance
	}
	return clamp01(vol)
}

// Volume reports the gain a sound at the given position would play with
func (p *Player) Volume(sound core.SoundType, at vmath.Vec3F) float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.volume(sound, at)
}

// SetListener moves the attenuation origin
func (p *Player) SetListener(pos vmath.Vec3F) {
	p.mu.Lock()
	p.listener = pos
	p.mu.Unlock()
}

// SetVolume updates master volume (0.0-1.0)
func (p *Player) SetVolume(vol float64) {
	p.mu.Lock()
	p.cfg.MasterVolume = clamp01(vol)
	p.mu.Unlock()
}

// ToggleMute toggles mute state, returns true if now audible
func (p *Player) ToggleMute() bool {
	m := !p.muted.Load()
	p.muted.Store(m)
	return !m
}

// Muted reports the mute state
func (p *Player) Muted() bool {
	return p.muted.Load()
}

// Running reports whether Start succeeded and Stop has not run
func (p *Player) Running() bool {
	return p.running.Load()
}

// Active is the number of sounds still mixing
func (p *Player) Active() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.mixer.Len()
}

// Stream pulls mixed samples in headless mode; it fills silence when a speaker owns the mixer
func (p *Player) Stream(samples [][2]float64) (int, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.onSpeaker {
		for i := range samples {
			samples[i] = [2]float64{}
		}
		return len(samples), true
	}
	return p.mixer.Stream(samples)
}

// Err implements beep.Streamer
func (p *Player) Err() error {
	return nil
}
