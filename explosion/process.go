package explosion

import (
	"github.com/lixenwraith/arsenal/combat"
	"github.com/lixenwraith/arsenal/engine"
	"github.com/lixenwraith/arsenal/physics"
)

//go:generate go run go.uber.org/mock/mockgen -destination=./mocks/process_mock.go -package=mocks . Process

// Process resolves the area effect of one blast
// Radius damage and force live behind this contract
type Process interface {
	// Explode requests detonation; a process with a fuse may complete later
	Explode()
	// OnExploded registers a completion handler
	OnExploded(fn func()) engine.Subscription
	// Dispose cancels pending work and drops handlers; safe to call repeatedly
	Dispose()
}

// Factory builds a process bound to a projectile body
type Factory interface {
	New(body *physics.Body, profile combat.ExplosionStats) Process
}

// FactoryFunc adapts a function to Factory
type FactoryFunc func(body *physics.Body, profile combat.ExplosionStats) Process

func (f FactoryFunc) New(body *physics.Body, profile combat.ExplosionStats) Process {
	return f(body, profile)
}
