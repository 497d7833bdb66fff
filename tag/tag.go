package tag

import "strings"

// Tag classifies scene objects for targeting, ricochet and obstacle checks
type Tag int

const (
	Untagged Tag = iota
	Player
	PlayerHitBox
	Enemy
	EnemyHitBox
	Ally
	StaticObstacle
	Destructible
	InteractiveObject
	Shield
	Projectile
	Ground
	TagCount
)

var names = [TagCount]string{
	Untagged:          "untagged",
	Player:            "player",
	PlayerHitBox:      "player_hitbox",
	Enemy:             "enemy",
	EnemyHitBox:       "enemy_hitbox",
	Ally:              "ally",
	StaticObstacle:    "static_obstacle",
	Destructible:      "destructible",
	InteractiveObject: "interactive_object",
	Shield:            "shield",
	Projectile:        "projectile",
	Ground:            "ground",
}

func (t Tag) String() string {
	if t < 0 || t >= TagCount {
		return "unknown"
	}
	return names[t]
}

// Parse maps a catalog name to its Tag, case-insensitive
func Parse(name string) (Tag, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range names {
		if n == name {
			return Tag(i), true
		}
	}
	return Untagged, false
}

// Set is an ordered tag list; order carries priority where callers need it
type Set []Tag

// Of builds a Set from the given tags, dropping duplicates and keeping first occurrence
func Of(tags ...Tag) Set {
	s := make(Set, 0, len(tags))
	for _, t := range tags {
		if !s.Contains(t) {
			s = append(s, t)
		}
	}
	return s
}

// Contains reports whether t is in the set
func (s Set) Contains(t Tag) bool {
	return s.IndexOf(t) >= 0
}

// IndexOf returns the position of t or -1
func (s Set) IndexOf(t Tag) int {
	for i, v := range s {
		if v == t {
			return i
		}
	}
	return -1
}

// With returns a copy of s with t appended when absent
func (s Set) With(t Tag) Set {
	out := make(Set, len(s), len(s)+1)
	copy(out, s)
	if !out.Contains(t) {
		out = append(out, t)
	}
	return out
}

// Clone returns an independent copy
func (s Set) Clone() Set {
	if s == nil {
		return nil
	}
	out := make(Set, len(s))
	copy(out, s)
	return out
}

// Mask collapses the set into a layer bitmask
func (s Set) Mask() Mask {
	return MaskOf(s...)
}

func (s Set) String() string {
	parts := make([]string, len(s))
	for i, t := range s {
		parts[i] = t.String()
	}
	return "[" + strings.Join(parts, ",") + "]"
}

// ParseSet converts catalog names into an ordered Set, reporting the first unknown name
func ParseSet(names []string) (Set, string, bool) {
	s := make(Set, 0, len(names))
	for _, n := range names {
		t, ok := Parse(n)
		if !ok {
			return nil, n, false
		}
		if !s.Contains(t) {
			s = append(s, t)
		}
	}
	return s, "", true
}
