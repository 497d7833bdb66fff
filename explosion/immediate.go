package explosion

import (
	"github.com/lixenwraith/arsenal/combat"
	"github.com/lixenwraith/arsenal/engine"
	"github.com/lixenwraith/arsenal/physics"
)

type handlerEntry struct {
	fn   func()
	dead bool
}

// Immediate completes synchronously on the first Explode and deals no damage
// Used where no blast resolution is wired
type Immediate struct {
	handlers []*handlerEntry
	exploded bool
	disposed bool
}

// NewImmediate creates an unexploded process
func NewImmediate() *Immediate {
	return &Immediate{}
}

// ImmediateFactory builds Immediate processes
var ImmediateFactory = FactoryFunc(func(*physics.Body, combat.ExplosionStats) Process {
	return NewImmediate()
})

func (p *Immediate) Explode() {
	if p.exploded || p.disposed {
		return
	}
	p.exploded = true
	for _, h := range p.handlers {
		if !h.dead {
			h.fn()
		}
	}
}

func (p *Immediate) OnExploded(fn func()) engine.Subscription {
	if fn == nil || p.disposed {
		return engine.NopSubscription
	}
	e := &handlerEntry{fn: fn}
	p.handlers = append(p.handlers, e)
	return engine.NewSubscription(func() { e.dead = true })
}

func (p *Immediate) Dispose() {
	p.disposed = true
	p.handlers = nil
}

// Exploded reports whether Explode ran
func (p *Immediate) Exploded() bool {
	return p.exploded
}
