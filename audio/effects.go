// Package audio synthesizes weapon sounds with beep and plays them through the speaker
package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/arsenal/core"
	"github.com/lixenwraith/arsenal/parameter"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates raw audio waves
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a new oscillator for wave generation
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	samples := rate.N(duration)
	return &oscillator{
		freq:     freq,
		phase:    0,
		duration: samples,
		position: 0,
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, false
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		// Advance phase
		o.phase += o.freq / float64(o.rate)
		o.phase = o.phase - math.Floor(o.phase) // Keep in [0, 1)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

// NewEnvelope shapes s with a linear attack and release over duration
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	sus := total - att - rel
	if sus < 0 {
		sus = 0
	}

	return &envelope{
		streamer:       s,
		position:       0,
		attackSamples:  att,
		releaseSamples: rel,
		sustainSamples: sus,
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, false
		}

		var vol float64 = 1.0

		// Attack phase
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		// Release phase
		releaseStart := e.attackSamples + e.sustainSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			remaining := e.totalSamples - e.position
			vol = float64(remaining) / float64(e.releaseSamples)
			if vol < 0 {
				vol = 0
			}
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// Helper to create a volume effect safely
// math.Log2(0) is -Inf, so we handle 0 volume by making it silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// Weapon sound generators, each returned at unity gain before vol is applied

func createShotSound(vol float64, rate beep.SampleRate) beep.Streamer {
	d := parameter.ShotSoundDuration
	crack := NewEnvelope(NewOscillator(0, d, WaveNoise, rate), d, parameter.ShotSoundAttack, parameter.ShotSoundRelease, rate)
	body := NewEnvelope(NewOscillator(110.0, d, WaveSquare, rate), d, parameter.ShotSoundAttack, parameter.ShotSoundRelease, rate)
	return newVolume(beep.Mix(newVolume(crack, 0.6), newVolume(body, 0.4)), vol)
}

func createThrowSound(vol float64, rate beep.SampleRate) beep.Streamer {
	d := parameter.ThrowSoundDuration
	shaped := NewEnvelope(NewOscillator(0, d, WaveNoise, rate), d, parameter.ThrowSoundAttack, parameter.ThrowSoundRelease, rate)
	return newVolume(shaped, vol*0.5)
}

func createImpactSound(vol float64, rate beep.SampleRate) beep.Streamer {
	d := parameter.ImpactSoundDuration
	shaped := NewEnvelope(NewOscillator(660.0, d, WaveSquare, rate), d, parameter.ImpactSoundAttack, parameter.ImpactSoundRelease, rate)
	return newVolume(shaped, vol*0.5)
}

func createExplosionSound(vol float64, rate beep.SampleRate) beep.Streamer {
	d := parameter.ExplosionSoundDuration
	noise := NewEnvelope(NewOscillator(0, d, WaveNoise, rate), d, parameter.ExplosionSoundAttack, parameter.ExplosionSoundRelease, rate)
	rumble := NewEnvelope(NewOscillator(55.0, d, WaveSine, rate), d, parameter.ExplosionSoundAttack, parameter.ExplosionSoundRelease, rate)
	return newVolume(beep.Mix(newVolume(noise, 0.5), newVolume(rumble, 0.5)), vol)
}

func createSlashSound(vol float64, rate beep.SampleRate) beep.Streamer {
	d := parameter.SlashSoundDuration
	shaped := NewEnvelope(NewOscillator(320.0, d, WaveSaw, rate), d, parameter.SlashSoundAttack, parameter.SlashSoundRelease, rate)
	return newVolume(shaped, vol*0.6)
}

func createReloadSound(vol float64, rate beep.SampleRate) beep.Streamer {
	d1, d2 := parameter.ReloadSoundNote1Duration, parameter.ReloadSoundNote2Duration
	n1 := NewEnvelope(NewOscillator(1200.0, d1, WaveSquare, rate), d1, parameter.ReloadSoundAttack, parameter.ReloadSoundRelease, rate)
	n2 := NewEnvelope(NewOscillator(900.0, d2, WaveSquare, rate), d2, parameter.ReloadSoundAttack, parameter.ReloadSoundRelease, rate)
	return newVolume(beep.Seq(n1, n2), vol*0.4)
}

// Synthesize returns a streamer for the sound at the given linear volume, nil for SoundNone or unknown types
func Synthesize(st core.SoundType, vol float64, rate beep.SampleRate) beep.Streamer {
	switch st {
	case core.SoundShot:
		return createShotSound(vol, rate)
	case core.SoundThrow:
		return createThrowSound(vol, rate)
	case core.SoundImpact:
		return createImpactSound(vol, rate)
	case core.SoundExplosion:
		return createExplosionSound(vol, rate)
	case core.SoundSlash:
		return createSlashSound(vol, rate)
	case core.SoundReload:
		return createReloadSound(vol, rate)
	default:
		return nil
	}
}
