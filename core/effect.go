package core

// EffectType identifies a fire-and-forget visual effect
type EffectType int

const (
	EffectNone          EffectType = iota
	EffectMuzzle                   // Flash at the projectile spawn point
	EffectShell                    // Ejected casing
	EffectImpact                   // Projectile hit spark
	EffectExplosion                // Detonation burst
	EffectExplosionZone            // Ground ring sized to blast radius
	EffectSlash                    // Melee arc
	EffectTrail                    // Constant trail attached to a projectile
	EffectTypeCount
)

var effectNames = [EffectTypeCount]string{
	EffectNone:          "none",
	EffectMuzzle:        "muzzle",
	EffectShell:         "shell",
	EffectImpact:        "impact",
	EffectExplosion:     "explosion",
	EffectExplosionZone: "explosion_zone",
	EffectSlash:         "slash",
	EffectTrail:         "trail",
}

func (e EffectType) String() string {
	if e < 0 || e >= EffectTypeCount {
		return "unknown"
	}
	return effectNames[e]
}

// ParseEffectType maps a catalog name to its EffectType
func ParseEffectType(name string) (EffectType, bool) {
	for i, n := range effectNames {
		if n == name {
			return EffectType(i), true
		}
	}
	return EffectNone, false
}
