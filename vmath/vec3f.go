package vmath

import (
	"math"
)

// Vec3F is a float64 3D vector in world space
// Y is up; the XZ plane is the ground
type Vec3F struct {
	X, Y, Z float64
}

func V3FAdd(a, b Vec3F) Vec3F {
	return Vec3F{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

func V3FSub(a, b Vec3F) Vec3F {
	return Vec3F{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

func V3FScale(v Vec3F, s float64) Vec3F {
	return Vec3F{v.X * s, v.Y * s, v.Z * s}
}

func V3FMagSq(v Vec3F) float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

func V3FMag(v Vec3F) float64 {
	return math.Sqrt(V3FMagSq(v))
}

// V3FDist returns euclidean distance between two points
func V3FDist(a, b Vec3F) float64 {
	return V3FMag(V3FSub(a, b))
}

func V3FNormalize(v Vec3F) Vec3F {
	mag := V3FMag(v)
	if mag == 0 {
		return Vec3F{}
	}
	inv := 1.0 / mag
	return Vec3F{v.X * inv, v.Y * inv, v.Z * inv}
}

// V3FLerp interpolates a→b without clamping t
func V3FLerp(a, b Vec3F, t float64) Vec3F {
	return Vec3F{
		a.X + (b.X-a.X)*t,
		a.Y + (b.Y-a.Y)*t,
		a.Z + (b.Z-a.Z)*t,
	}
}

// V3FFlatten drops the vertical component
func V3FFlatten(v Vec3F) Vec3F {
	return Vec3F{v.X, 0, v.Z}
}

// V3FWithY returns v with Y replaced
func V3FWithY(v Vec3F, y float64) Vec3F {
	return Vec3F{v.X, y, v.Z}
}

// V3FRotateY rotates v around the up axis by deg degrees
// Positive angles turn +Z toward +X (left-handed yaw)
func V3FRotateY(v Vec3F, deg float64) Vec3F {
	sin, cos := math.Sincos(DegToRad(deg))
	return Vec3F{
		X: v.X*cos + v.Z*sin,
		Y: v.Y,
		Z: -v.X*sin + v.Z*cos,
	}
}

// V3FYaw returns heading of v around the up axis in degrees, 0 = +Z
func V3FYaw(v Vec3F) float64 {
	if v.X == 0 && v.Z == 0 {
		return 0
	}
	return math.Atan2(v.X, v.Z) * 180 / math.Pi
}

// V3FApproxEqual compares component-wise within eps
func V3FApproxEqual(a, b Vec3F, eps float64) bool {
	return math.Abs(a.X-b.X) <= eps && math.Abs(a.Y-b.Y) <= eps && math.Abs(a.Z-b.Z) <= eps
}
