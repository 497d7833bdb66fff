package combat

import (
	"fmt"
	"strings"
)

// ImproveType selects which upgrade counter an improvement raises
type ImproveType int

const (
	ImproveNone ImproveType = iota
	ImproveShotUpgrade
	ImproveRicochetUpgrade
	improveTypeCount
)

var improveTypeNames = [improveTypeCount]string{
	ImproveNone:            "none",
	ImproveShotUpgrade:     "shot_upgrade",
	ImproveRicochetUpgrade: "ricochet_upgrade",
}

func (t ImproveType) String() string {
	if t < 0 || t >= improveTypeCount {
		return "unknown"
	}
	return improveTypeNames[t]
}

// ParseImproveType maps a catalog name to its ImproveType
func ParseImproveType(name string) (ImproveType, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range improveTypeNames {
		if n == name {
			return ImproveType(i), true
		}
	}
	return ImproveNone, false
}

// ImprovementTable holds upgrade increments per kind, optionally overridden per weapon
type ImprovementTable struct {
	Default   map[ImproveType]int
	PerWeapon map[string]map[ImproveType]int
}

// NewImprovementTable creates a table with the given defaults
func NewImprovementTable(defaults map[ImproveType]int) *ImprovementTable {
	t := &ImprovementTable{
		Default:   make(map[ImproveType]int, len(defaults)),
		PerWeapon: make(map[string]map[ImproveType]int),
	}
	for k, v := range defaults {
		t.Default[k] = v
	}
	return t
}

// Override sets a weapon-specific increment
func (t *ImprovementTable) Override(weapon string, kind ImproveType, value int) {
	m, ok := t.PerWeapon[weapon]
	if !ok {
		m = make(map[ImproveType]int)
		t.PerWeapon[weapon] = m
	}
	m[kind] = value
}

// Value looks up the increment for kind on the given weapon
func (t *ImprovementTable) Value(kind ImproveType, stats *WeaponStats) (int, error) {
	if kind <= ImproveNone || kind >= improveTypeCount {
		return 0, fmt.Errorf("%w: %s", ErrInvalidImprovement, kind)
	}
	if stats != nil {
		if m, ok := t.PerWeapon[stats.Name]; ok {
			if v, ok := m[kind]; ok {
				return v, nil
			}
		}
	}
	v, ok := t.Default[kind]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrMissingImprovement, kind)
	}
	return v, nil
}

// Apply raises the counter selected by kind and returns the applied increment
func (t *ImprovementTable) Apply(kind ImproveType, stats *WeaponStats) (int, error) {
	v, err := t.Value(kind, stats)
	if err != nil {
		return 0, err
	}
	switch kind {
	case ImproveShotUpgrade:
		stats.ShotCountLevel += v
	case ImproveRicochetUpgrade:
		stats.RicochetCount += v
	}
	return v, nil
}
