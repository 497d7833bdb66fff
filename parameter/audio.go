package parameter

import "time"

// Audio output
const (
	AudioSampleRate = 44100

	// AudioBufferDuration is the speaker buffer length
	AudioBufferDuration = 50 * time.Millisecond

	// AudioMaxDistance is the listener distance at which positional sounds fade out
	AudioMaxDistance = 40.0

	// AudioMinSoundGap drops repeats of one sound type closer than this
	AudioMinSoundGap = 30 * time.Millisecond
)

// Shot
const (
	ShotSoundDuration = 90 * time.Millisecond
	ShotSoundAttack   = 2 * time.Millisecond
	ShotSoundRelease  = 70 * time.Millisecond
)

// Throw
const (
	ThrowSoundDuration = 220 * time.Millisecond
	ThrowSoundAttack   = 90 * time.Millisecond
	ThrowSoundRelease  = 120 * time.Millisecond
)

// Impact
const (
	ImpactSoundDuration = 60 * time.Millisecond
	ImpactSoundAttack   = 2 * time.Millisecond
	ImpactSoundRelease  = 40 * time.Millisecond
)

// Explosion
const (
	ExplosionSoundDuration = 700 * time.Millisecond
	ExplosionSoundAttack   = 5 * time.Millisecond
	ExplosionSoundRelease  = 600 * time.Millisecond
)

// Slash
const (
	SlashSoundDuration = 160 * time.Millisecond
	SlashSoundAttack   = 20 * time.Millisecond
	SlashSoundRelease  = 120 * time.Millisecond
)

// Reload
const (
	ReloadSoundNote1Duration = 60 * time.Millisecond
	ReloadSoundNote2Duration = 90 * time.Millisecond
	ReloadSoundAttack        = 2 * time.Millisecond
	ReloadSoundRelease       = 40 * time.Millisecond
)
