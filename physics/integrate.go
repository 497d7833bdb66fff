package physics

import (
	"math"
	"time"

	"github.com/lixenwraith/arsenal/parameter"
	"github.com/lixenwraith/arsenal/vmath"
)

// integrate advances one dynamic body by dt: gravity, drag, ground, static push-out
func (s *Scene) integrate(b *Body, dt time.Duration) {
	sec := dt.Seconds()
	if sec <= 0 {
		return
	}

	if b.UseGravity && !b.Grounded {
		b.Velocity.Y -= parameter.Gravity * sec
	}

	drag := 1 - parameter.AirDrag*sec
	if drag < 0 {
		drag = 0
	}
	b.Velocity = vmath.V3FScale(b.Velocity, drag)

	b.Position = vmath.V3FAdd(b.Position, vmath.V3FScale(b.Velocity, sec))

	// Spin
	b.Yaw = math.Mod(b.Yaw+b.AngularVelocity.Y*sec, 360)
	spinDamp := 1 - parameter.TorqueDamping*sec
	if spinDamp < 0 {
		spinDamp = 0
	}
	b.AngularVelocity = vmath.V3FScale(b.AngularVelocity, spinDamp)

	s.resolveGround(b, sec)
	b.sync()
	s.resolveStatics(b)
}

func (s *Scene) resolveGround(b *Body, sec float64) {
	if !b.UseGravity {
		return
	}
	bottom := b.Position.Y + b.Offset.Y - b.HalfExtents.Y
	if bottom > parameter.GroundLevel {
		b.Grounded = false
		return
	}

	b.Position.Y += parameter.GroundLevel - bottom
	if b.Velocity.Y < 0 {
		b.Velocity.Y = -b.Velocity.Y * parameter.GroundRestitution
	}
	// Small hops end in contact
	if b.Velocity.Y < parameter.Gravity*sec {
		b.Velocity.Y = 0
		b.Grounded = true
	}

	if b.Grounded {
		horiz := vmath.V3FFlatten(b.Velocity)
		speed := vmath.V3FMag(horiz)
		slowed := speed - parameter.GroundFriction*sec
		if slowed <= 0 {
			b.Velocity.X, b.Velocity.Z = 0, 0
		} else {
			scaled := vmath.V3FScale(horiz, slowed/speed)
			b.Velocity.X, b.Velocity.Z = scaled.X, scaled.Z
		}
		if b.Speed() < parameter.SleepSpeed {
			b.Velocity = vmath.Vec3F{}
		}
	}
}

// resolveStatics pushes a solid dynamic body out of static solids and kills the normal velocity
func (s *Scene) resolveStatics(b *Body) {
	if b.Trigger {
		return
	}
	box := b.Bounds()
	for _, o := range s.candidates(box) {
		if o == b || o.Motion != MotionStatic || o.Trigger {
			continue
		}
		ob := o.Bounds()
		if !box.Intersects(ob) {
			continue
		}
		push := box.penetration(ob)
		b.Position = vmath.V3FAdd(b.Position, push)
		switch {
		case push.X != 0:
			b.Velocity.X = 0
		case push.Y != 0:
			b.Velocity.Y = 0
			if push.Y > 0 {
				b.Grounded = true
			}
		case push.Z != 0:
			b.Velocity.Z = 0
		}
		box = b.Bounds()
	}
	b.sync()
}
