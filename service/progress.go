package service

import (
	"sort"
	"sync"

	"github.com/lixenwraith/arsenal/combat"
)

// ProgressLog records improved weapons in memory
type ProgressLog struct {
	mu       sync.Mutex
	improved map[string][]combat.ImproveType
}

// NewProgressLog creates an empty log
func NewProgressLog() *ProgressLog {
	return &ProgressLog{improved: make(map[string][]combat.ImproveType)}
}

// RecordImprovedWeapon implements ProgressRecorder
func (p *ProgressLog) RecordImprovedWeapon(weapon string, kind combat.ImproveType) {
	p.mu.Lock()
	p.improved[weapon] = append(p.improved[weapon], kind)
	p.mu.Unlock()
}

// Improvements returns the kinds applied to weapon in order
func (p *ProgressLog) Improvements(weapon string) []combat.ImproveType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]combat.ImproveType, len(p.improved[weapon]))
	copy(out, p.improved[weapon])
	return out
}

// Weapons returns improved weapon names, sorted
func (p *ProgressLog) Weapons() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	names := make([]string, 0, len(p.improved))
	for n := range p.improved {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
