package parameter

// Rigid body integration
const (
	// Gravity is the downward acceleration in units/s²
	Gravity = 9.81

	// GroundLevel is the Y of the arena floor
	GroundLevel = 0.0

	// GroundRestitution is the fraction of vertical speed kept on bounce
	GroundRestitution = 0.3

	// GroundFriction is the horizontal speed loss per second while grounded
	GroundFriction = 6.0

	// AirDrag is the fractional speed loss per second in flight
	AirDrag = 0.1

	// SleepSpeed is the speed under which a grounded body is zeroed
	SleepSpeed = 0.05

	// TorqueDamping is the angular speed loss per second
	TorqueDamping = 2.0

	// RayEpsilon guards slab tests against parallel rays
	RayEpsilon = 1e-9
)
