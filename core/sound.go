package core

// SoundType represents different sound effects
type SoundType int

const (
	SoundNone      SoundType = iota // Silent weapon or projectile
	SoundShot                       // Firearm discharge
	SoundThrow                      // Thrown item release
	SoundImpact                     // Projectile hit
	SoundExplosion                  // Area detonation
	SoundSlash                      // Melee swing
	SoundReload                     // Magazine refilled
	SoundTypeCount
)

var soundNames = [SoundTypeCount]string{
	SoundNone:      "none",
	SoundShot:      "shot",
	SoundThrow:     "throw",
	SoundImpact:    "impact",
	SoundExplosion: "explosion",
	SoundSlash:     "slash",
	SoundReload:    "reload",
}

func (s SoundType) String() string {
	if s < 0 || s >= SoundTypeCount {
		return "unknown"
	}
	return soundNames[s]
}

// ParseSoundType maps a catalog name to its SoundType
func ParseSoundType(name string) (SoundType, bool) {
	for i, n := range soundNames {
		if n == name {
			return SoundType(i), true
		}
	}
	return SoundNone, false
}
