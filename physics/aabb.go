package physics

import (
	"math"

	"github.com/lixenwraith/arsenal/parameter"
	"github.com/lixenwraith/arsenal/vmath"
)

// AABB is an axis-aligned box in world space
type AABB struct {
	Min, Max vmath.Vec3F
}

// NewAABB builds a box from center and half extents
func NewAABB(center, half vmath.Vec3F) AABB {
	return AABB{
		Min: vmath.V3FSub(center, half),
		Max: vmath.V3FAdd(center, half),
	}
}

func (a AABB) Center() vmath.Vec3F {
	return vmath.V3FScale(vmath.V3FAdd(a.Min, a.Max), 0.5)
}

func (a AABB) Size() vmath.Vec3F {
	return vmath.V3FSub(a.Max, a.Min)
}

// Intersects reports overlap; touching faces count
func (a AABB) Intersects(b AABB) bool {
	return a.Min.X <= b.Max.X && a.Max.X >= b.Min.X &&
		a.Min.Y <= b.Max.Y && a.Max.Y >= b.Min.Y &&
		a.Min.Z <= b.Max.Z && a.Max.Z >= b.Min.Z
}

// Contains reports whether p lies inside or on the box
func (a AABB) Contains(p vmath.Vec3F) bool {
	return p.X >= a.Min.X && p.X <= a.Max.X &&
		p.Y >= a.Min.Y && p.Y <= a.Max.Y &&
		p.Z >= a.Min.Z && p.Z <= a.Max.Z
}

// ClosestPoint clamps p onto the box
func (a AABB) ClosestPoint(p vmath.Vec3F) vmath.Vec3F {
	return vmath.Vec3F{
		X: math.Max(a.Min.X, math.Min(p.X, a.Max.X)),
		Y: math.Max(a.Min.Y, math.Min(p.Y, a.Max.Y)),
		Z: math.Max(a.Min.Z, math.Min(p.Z, a.Max.Z)),
	}
}

// IntersectsSphere reports whether the sphere touches the box
func (a AABB) IntersectsSphere(center vmath.Vec3F, radius float64) bool {
	return vmath.V3FMagSq(vmath.V3FSub(a.ClosestPoint(center), center)) <= radius*radius
}

// RayIntersect runs a slab test; dir must be normalized
// Returns entry distance, 0 when origin is inside
func (a AABB) RayIntersect(origin, dir vmath.Vec3F, maxDist float64) (float64, bool) {
	tMin := 0.0
	tMax := maxDist

	o := [3]float64{origin.X, origin.Y, origin.Z}
	d := [3]float64{dir.X, dir.Y, dir.Z}
	lo := [3]float64{a.Min.X, a.Min.Y, a.Min.Z}
	hi := [3]float64{a.Max.X, a.Max.Y, a.Max.Z}

	for i := 0; i < 3; i++ {
		if math.Abs(d[i]) < parameter.RayEpsilon {
			if o[i] < lo[i] || o[i] > hi[i] {
				return 0, false
			}
			continue
		}
		inv := 1.0 / d[i]
		t1 := (lo[i] - o[i]) * inv
		t2 := (hi[i] - o[i]) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tMin {
			tMin = t1
		}
		if t2 < tMax {
			tMax = t2
		}
		if tMin > tMax {
			return 0, false
		}
	}
	return tMin, true
}

// penetration returns the minimum translation moving a out of b along one axis
func (a AABB) penetration(b AABB) vmath.Vec3F {
	dx1 := b.Max.X - a.Min.X
	dx2 := a.Max.X - b.Min.X
	dy1 := b.Max.Y - a.Min.Y
	dy2 := a.Max.Y - b.Min.Y
	dz1 := b.Max.Z - a.Min.Z
	dz2 := a.Max.Z - b.Min.Z

	best := vmath.Vec3F{X: dx1}
	bestMag := dx1
	try := func(v vmath.Vec3F, mag float64) {
		if mag < bestMag {
			best, bestMag = v, mag
		}
	}
	try(vmath.Vec3F{X: -dx2}, dx2)
	try(vmath.Vec3F{Y: dy1}, dy1)
	try(vmath.Vec3F{Y: -dy2}, dy2)
	try(vmath.Vec3F{Z: dz1}, dz1)
	try(vmath.Vec3F{Z: -dz2}, dz2)
	return best
}
