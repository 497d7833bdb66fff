package parameter

import "time"

// Tick timing
const (
	// FixedTick is the physics step length
	FixedTick = 20 * time.Millisecond

	// FrameUpdateInterval is the sandbox render interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// MaxFixedStepsPerFrame caps catch-up steps after a long frame
	MaxFixedStepsPerFrame = 250

	// MaxFrameDelta clamps a stalled frame before it reaches the scheduler
	MaxFrameDelta = 100 * time.Millisecond
)

// Event queue limits
const (
	// EventQueueSize is the fixed capacity of the deferred event ring buffer
	EventQueueSize = 2048

	// EventBufferMask is the bitmask for fast modulo operations (2048 - 1)
	EventBufferMask = 2047
)

// Pool sizing
const (
	// ProjectilePoolCapacity is the initial slot count of a projectile pool
	ProjectilePoolCapacity = 64
)

// Physics scene defaults
const (
	// SceneWidth is the broadphase extent along X in world units
	SceneWidth = 256

	// SceneDepth is the broadphase extent along Z in world units
	SceneDepth = 256

	// SceneCellSize is the broadphase cell edge in world units
	SceneCellSize = 4
)
