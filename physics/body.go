package physics

import (
	"time"

	"github.com/solarlune/resolv"

	"github.com/lixenwraith/arsenal/core"
	"github.com/lixenwraith/arsenal/engine"
	"github.com/lixenwraith/arsenal/tag"
	"github.com/lixenwraith/arsenal/vmath"
)

// Motion selects how the scene moves a body
type Motion uint8

const (
	// MotionStatic never moves: walls, obstacles
	MotionStatic Motion = iota
	// MotionKinematic is moved by code; the scene only tracks it for contacts
	MotionKinematic
	// MotionDynamic is integrated by the scene: gravity, drag, ground, obstacle response
	MotionDynamic
)

// ContactKind distinguishes trigger overlaps from solid collisions
type ContactKind uint8

const (
	ContactTrigger ContactKind = iota
	ContactCollision
)

func (k ContactKind) String() string {
	if k == ContactTrigger {
		return "trigger"
	}
	return "collision"
}

// Contact is delivered once when two bodies begin overlapping
type Contact struct {
	Self  *Body
	Other *Body
	Kind  ContactKind
}

// ContactHandler receives contact-enter notifications
type ContactHandler func(c Contact)

// Body is a box collider with optional rigid-body motion
// Position is the pivot; bounds are centered at Position + Offset
type Body struct {
	Entity core.Entity
	Tags   *tag.Holder
	Layer  tag.Tag

	Position        vmath.Vec3F
	Velocity        vmath.Vec3F
	AngularVelocity vmath.Vec3F
	Yaw             float64 // Degrees around the up axis

	Offset      vmath.Vec3F
	HalfExtents vmath.Vec3F

	Motion     Motion
	Trigger    bool // Reports overlaps, never resolved as solid
	UseGravity bool
	Grounded   bool

	// Data is opaque owner state
	Data any

	seq       uint64
	scene     *Scene
	obj       *resolv.Object
	destroyed bool
	handlers  []*contactEntry
}

type contactEntry struct {
	fn   ContactHandler
	dead bool
}

// NewBody creates a body; it joins a scene through Scene.Add
func NewBody(e core.Entity, layer tag.Tag, half vmath.Vec3F, tags ...tag.Tag) *Body {
	if len(tags) == 0 {
		tags = []tag.Tag{layer}
	}
	return &Body{
		Entity:      e,
		Tags:        tag.NewHolder(tags...),
		Layer:       layer,
		HalfExtents: half,
	}
}

// Bounds returns the world-space box
func (b *Body) Bounds() AABB {
	return NewAABB(vmath.V3FAdd(b.Position, b.Offset), b.HalfExtents)
}

// Speed returns linear velocity magnitude
func (b *Body) Speed() float64 {
	return vmath.V3FMag(b.Velocity)
}

// Destroyed reports whether the body was permanently removed
func (b *Body) Destroyed() bool {
	return b.destroyed
}

// InScene reports whether the body is currently registered with a scene
func (b *Body) InScene() bool {
	return b.scene != nil
}

// Owner resolves the entity that owns this collider (hit boxes defer to their parent)
func (b *Body) Owner() core.Entity {
	if b.Tags == nil {
		return b.Entity
	}
	return b.Tags.Parent(b.Entity)
}

// MovePosition moves a kinematic body and derives its velocity from the step
// dt of zero teleports without touching velocity
func (b *Body) MovePosition(p vmath.Vec3F, dt time.Duration) {
	if dt > 0 {
		b.Velocity = vmath.V3FScale(vmath.V3FSub(p, b.Position), 1/dt.Seconds())
	}
	b.Position = p
	b.sync()
}

// Translate offsets the position without changing velocity
func (b *Body) Translate(delta vmath.Vec3F) {
	b.Position = vmath.V3FAdd(b.Position, delta)
	b.sync()
}

// Teleport places the body and clears all motion
func (b *Body) Teleport(p vmath.Vec3F) {
	b.Position = p
	b.Velocity = vmath.Vec3F{}
	b.AngularVelocity = vmath.Vec3F{}
	b.Grounded = false
	b.sync()
}

// AddImpulse changes velocity instantly
func (b *Body) AddImpulse(impulse vmath.Vec3F) {
	b.Velocity = vmath.V3FAdd(b.Velocity, impulse)
}

// AddTorque accelerates spin over dt
func (b *Body) AddTorque(torque vmath.Vec3F, dt time.Duration) {
	b.AngularVelocity = vmath.V3FAdd(b.AngularVelocity, vmath.V3FScale(torque, dt.Seconds()))
}

// LookAt yaws the body toward target on the ground plane
func (b *Body) LookAt(target vmath.Vec3F) {
	dir := vmath.V3FFlatten(vmath.V3FSub(target, b.Position))
	if vmath.V3FMagSq(dir) == 0 {
		return
	}
	b.Yaw = vmath.V3FYaw(dir)
}

// OnContact registers a contact-enter handler
func (b *Body) OnContact(fn ContactHandler) engine.Subscription {
	if fn == nil {
		return engine.NopSubscription
	}
	e := &contactEntry{fn: fn}
	b.handlers = append(b.handlers, e)
	return engine.NewSubscription(func() {
		e.dead = true
		out := b.handlers[:0:0]
		for _, h := range b.handlers {
			if h != e {
				out = append(out, h)
			}
		}
		b.handlers = out
	})
}

func (b *Body) listening() bool {
	return len(b.handlers) > 0
}

func (b *Body) dispatch(c Contact) {
	for _, h := range b.handlers {
		if h.dead || b.destroyed {
			continue
		}
		h.fn(c)
	}
}

// sync mirrors the XZ footprint into the broadphase
func (b *Body) sync() {
	if b.obj == nil || b.scene == nil {
		return
	}
	box := b.Bounds()
	b.obj.X, b.obj.Y = b.scene.toSpace(box.Min.X, box.Min.Z)
	b.obj.W = box.Max.X - box.Min.X
	b.obj.H = box.Max.Z - box.Min.Z
	b.obj.Update()
}
