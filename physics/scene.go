package physics

import (
	"math"
	"sort"
	"sync/atomic"
	"time"

	"github.com/solarlune/resolv"

	"github.com/lixenwraith/arsenal/core"
	"github.com/lixenwraith/arsenal/parameter"
	"github.com/lixenwraith/arsenal/status"
	"github.com/lixenwraith/arsenal/tag"
	"github.com/lixenwraith/arsenal/vmath"
)

const probeTag = "probe"

type pairKey struct {
	self, other core.Entity
}

// RayHit is one body crossed by a raycast
type RayHit struct {
	Body     *Body
	Distance float64
	Point    vmath.Vec3F
}

// Scene owns bodies, broadphase and contact bookkeeping
// The broadphase is a resolv grid over the XZ plane; narrowphase is 3D box math
type Scene struct {
	space  *resolv.Space
	probe  *resolv.Object
	halfW  float64
	halfD  float64
	seq    uint64
	bodies map[core.Entity]*Body
	order  []*Body

	pairs    map[pairKey]struct{}
	nextPair map[pairKey]struct{}
	scratch  []*Body

	statBodies   *atomic.Int64
	statContacts *atomic.Int64
	statRays     *atomic.Int64
}

// NewScene creates a scene spanning width × depth world units centered on the origin
func NewScene(width, depth float64, cellSize int, reg *status.Registry) *Scene {
	if cellSize <= 0 {
		cellSize = parameter.SceneCellSize
	}
	if reg == nil {
		reg = status.NewRegistry()
	}
	w := int(math.Ceil(width))
	d := int(math.Ceil(depth))
	s := &Scene{
		space:        resolv.NewSpace(w, d, cellSize, cellSize),
		probe:        resolv.NewObject(0, 0, 1, 1, probeTag),
		halfW:        width / 2,
		halfD:        depth / 2,
		bodies:       make(map[core.Entity]*Body),
		pairs:        make(map[pairKey]struct{}),
		nextPair:     make(map[pairKey]struct{}),
		statBodies:   reg.Ints.Get("physics.bodies"),
		statContacts: reg.Ints.Get("physics.contacts"),
		statRays:     reg.Ints.Get("physics.raycasts"),
	}
	return s
}

// NewDefaultScene uses the parameter extents
func NewDefaultScene(reg *status.Registry) *Scene {
	return NewScene(parameter.SceneWidth, parameter.SceneDepth, parameter.SceneCellSize, reg)
}

func (s *Scene) toSpace(x, z float64) (float64, float64) {
	return x + s.halfW, z + s.halfD
}

// Add registers a body; re-adding a live body is a no-op
func (s *Scene) Add(b *Body) *Body {
	if b == nil || b.scene == s {
		return b
	}
	b.destroyed = false
	b.scene = s
	s.seq++
	b.seq = s.seq

	box := b.Bounds()
	x, y := s.toSpace(box.Min.X, box.Min.Z)
	w := box.Max.X - box.Min.X
	h := box.Max.Z - box.Min.Z
	b.obj = resolv.NewObject(x, y, w, h, b.Layer.String())
	b.obj.SetShape(resolv.NewRectangle(0, 0, w, h))
	b.obj.Data = b
	s.space.Add(b.obj)

	s.bodies[b.Entity] = b
	s.order = append(s.order, b)
	s.statBodies.Store(int64(len(s.order)))
	return b
}

// Remove unregisters a body; it may be added again later
func (s *Scene) Remove(b *Body) {
	if b == nil || b.scene != s {
		return
	}
	if b.obj != nil {
		s.space.Remove(b.obj)
		b.obj.Data = nil
		b.obj = nil
	}
	b.scene = nil
	delete(s.bodies, b.Entity)
	for i, o := range s.order {
		if o == b {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	for k := range s.pairs {
		if k.self == b.Entity || k.other == b.Entity {
			delete(s.pairs, k)
		}
	}
	s.statBodies.Store(int64(len(s.order)))
}

// Destroy removes the body permanently; holders observe Destroyed() == true
func (s *Scene) Destroy(b *Body) {
	if b == nil {
		return
	}
	s.Remove(b)
	b.destroyed = true
	b.handlers = nil
}

// Body looks up a live body by entity
func (s *Scene) Body(e core.Entity) (*Body, bool) {
	b, ok := s.bodies[e]
	return b, ok
}

// Bodies returns live bodies in registration order
func (s *Scene) Bodies() []*Body {
	out := make([]*Body, len(s.order))
	copy(out, s.order)
	return out
}

// Len returns live body count
func (s *Scene) Len() int {
	return len(s.order)
}

// Step integrates dynamic bodies, then dispatches contact-enter events
func (s *Scene) Step(dt time.Duration) {
	for _, b := range s.Bodies() {
		if b.Motion == MotionDynamic && b.scene == s {
			s.integrate(b, dt)
		}
	}
	s.dispatchContacts()
}

// candidates returns bodies whose broadphase cells touch the box, in registration order
func (s *Scene) candidates(box AABB) []*Body {
	x, y := s.toSpace(box.Min.X, box.Min.Z)
	s.probe.X, s.probe.Y = x, y
	s.probe.W = math.Max(box.Max.X-box.Min.X, 1e-6)
	s.probe.H = math.Max(box.Max.Z-box.Min.Z, 1e-6)
	s.space.Add(s.probe)
	col := s.probe.Check(0, 0)
	s.space.Remove(s.probe)

	s.scratch = s.scratch[:0]
	if col == nil {
		return s.scratch
	}
	for _, o := range col.Objects {
		b, ok := o.Data.(*Body)
		if !ok || b == nil || b.scene != s {
			continue
		}
		s.scratch = append(s.scratch, b)
	}
	sort.Slice(s.scratch, func(i, j int) bool { return s.scratch[i].seq < s.scratch[j].seq })
	return s.scratch
}

func (s *Scene) dispatchContacts() {
	clear(s.nextPair)
	type pending struct {
		self, other *Body
	}
	var fresh []pending

	for _, b := range s.order {
		if !b.listening() {
			continue
		}
		box := b.Bounds()
		for _, o := range s.candidates(box) {
			if o == b || !box.Intersects(o.Bounds()) {
				continue
			}
			k := pairKey{b.Entity, o.Entity}
			s.nextPair[k] = struct{}{}
			if _, seen := s.pairs[k]; !seen {
				fresh = append(fresh, pending{b, o})
			}
		}
	}
	s.pairs, s.nextPair = s.nextPair, s.pairs

	for _, p := range fresh {
		if p.self.destroyed || p.other.destroyed || p.self.scene != s || p.other.scene != s {
			continue
		}
		// An earlier handler may have moved either body this pass
		if !p.self.Bounds().Intersects(p.other.Bounds()) {
			continue
		}
		kind := ContactCollision
		if p.self.Trigger || p.other.Trigger {
			kind = ContactTrigger
		}
		s.statContacts.Add(1)
		p.self.dispatch(Contact{Self: p.self, Other: p.other, Kind: kind})
	}
}

// OverlapSphere returns bodies on mask layers touching the sphere, in registration order
// limit caps the result; zero or less means unbounded
func (s *Scene) OverlapSphere(center vmath.Vec3F, radius float64, mask tag.Mask, limit int) []*Body {
	box := NewAABB(center, vmath.Vec3F{X: radius, Y: radius, Z: radius})
	var out []*Body
	for _, b := range s.candidates(box) {
		if !mask.Has(b.Layer) || !b.Bounds().IntersectsSphere(center, radius) {
			continue
		}
		out = append(out, b)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out
}

// Raycast returns every mask-layer body crossed within maxDist, nearest first
func (s *Scene) Raycast(origin, dir vmath.Vec3F, maxDist float64, mask tag.Mask) []RayHit {
	s.statRays.Add(1)
	dir = vmath.V3FNormalize(dir)
	if vmath.V3FMagSq(dir) == 0 || maxDist <= 0 {
		return nil
	}
	end := vmath.V3FAdd(origin, vmath.V3FScale(dir, maxDist))
	box := AABB{
		Min: vmath.Vec3F{X: math.Min(origin.X, end.X), Y: math.Min(origin.Y, end.Y), Z: math.Min(origin.Z, end.Z)},
		Max: vmath.Vec3F{X: math.Max(origin.X, end.X), Y: math.Max(origin.Y, end.Y), Z: math.Max(origin.Z, end.Z)},
	}

	var hits []RayHit
	for _, b := range s.candidates(box) {
		if !mask.Has(b.Layer) {
			continue
		}
		d, ok := b.Bounds().RayIntersect(origin, dir, maxDist)
		if !ok {
			continue
		}
		hits = append(hits, RayHit{
			Body:     b,
			Distance: d,
			Point:    vmath.V3FAdd(origin, vmath.V3FScale(dir, d)),
		})
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Distance < hits[j].Distance })
	return hits
}

// Linecast is Raycast between two points
func (s *Scene) Linecast(from, to vmath.Vec3F, mask tag.Mask) []RayHit {
	return s.Raycast(from, vmath.V3FSub(to, from), vmath.V3FDist(from, to), mask)
}
