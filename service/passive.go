package service

import (
	"sync"
	"time"
)

// PassiveTable scales durations by a per-skill multiplier
// Multipliers below zero are treated as zero; missing skills leave the value unchanged
type PassiveTable struct {
	mu    sync.RWMutex
	mults map[PassiveSkill]float64
}

// NewPassiveTable creates an empty table
func NewPassiveTable() *PassiveTable {
	return &PassiveTable{mults: make(map[PassiveSkill]float64)}
}

// Set stores the multiplier for skill
func (p *PassiveTable) Set(skill PassiveSkill, mult float64) {
	if mult < 0 {
		mult = 0
	}
	p.mu.Lock()
	p.mults[skill] = mult
	p.mu.Unlock()
}

// Clear drops the multiplier for skill
func (p *PassiveTable) Clear(skill PassiveSkill) {
	p.mu.Lock()
	delete(p.mults, skill)
	p.mu.Unlock()
}

// Modify implements PassiveSkills
func (p *PassiveTable) Modify(skill PassiveSkill, base time.Duration) time.Duration {
	p.mu.RLock()
	m, ok := p.mults[skill]
	p.mu.RUnlock()
	if !ok {
		return base
	}
	return time.Duration(float64(base) * m)
}
