package parameter

// Fixed tick task priorities (lower runs first)
// Movement must precede the physics step so contacts observe this tick's positions
const (
	PriorityProjectileMove = 10
	PriorityProjectileSpin = 15
	PriorityPhysicsStep    = 20 // Integration, then trigger and collision dispatch
	PriorityFixedTimer     = 30
)

// Variable tick task priorities (lower runs first)
const (
	PriorityWeaponRamp  = 10
	PriorityBurst       = 20
	PriorityThrowMotion = 30
	PrioritySettlePoll  = 40 // After throw motion so a just-finished flight is polled next frame
	PriorityFuse        = 50
	PriorityTimer       = 60
	PriorityDiagnostics = 1000
)
