package vmath

import (
	"math"
)

// Lerp interpolates a→b without clamping t
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Parabola returns the 0→1→0 arc height at fraction f, peaking at f = 0.5
func Parabola(height, f float64) float64 {
	return height * 4.0 * (f - f*f)
}

// DegToRad converts degrees to radians
func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// --- Randomness ---

// FastRand is a xorshift64 generator, deterministic per seed
type FastRand struct {
	state uint64
}

func NewFastRand(seed uint64) *FastRand {
	if seed == 0 {
		seed = 1
	}
	return &FastRand{state: seed}
}

func (r *FastRand) Next() uint64 {
	x := r.state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	r.state = x
	return x
}

func (r *FastRand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Next() % uint64(n))
}

// Float64 returns a value in [0, 1)
func (r *FastRand) Float64() float64 {
	return float64(r.Next()>>11) / (1 << 53)
}

// InsideUnitCircle returns a uniformly distributed point in the unit disc
func (r *FastRand) InsideUnitCircle() (x, y float64) {
	angle := r.Float64() * 2 * math.Pi
	radius := math.Sqrt(r.Float64())
	sin, cos := math.Sincos(angle)
	return cos * radius, sin * radius
}
