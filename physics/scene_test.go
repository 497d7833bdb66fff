package physics

import (
	"math"
	"testing"
	"time"

	"github.com/lixenwraith/arsenal/core"
	"github.com/lixenwraith/arsenal/tag"
	"github.com/lixenwraith/arsenal/vmath"
)

const step = 20 * time.Millisecond

var unit = vmath.Vec3F{X: 0.5, Y: 0.5, Z: 0.5}

func newBody(scene *Scene, e core.Entity, layer tag.Tag, at vmath.Vec3F) *Body {
	b := NewBody(e, layer, unit)
	b.Position = at
	return scene.Add(b)
}

func TestAABBRayIntersect(t *testing.T) {
	box := NewAABB(vmath.Vec3F{Z: 5}, vmath.Vec3F{X: 1, Y: 1, Z: 1})

	d, ok := box.RayIntersect(vmath.Vec3F{}, vmath.Vec3F{Z: 1}, 10)
	if !ok || math.Abs(d-4) > 1e-9 {
		t.Errorf("Expected entry at 4, got %v %v", d, ok)
	}
	if _, ok := box.RayIntersect(vmath.Vec3F{}, vmath.Vec3F{Z: 1}, 3); ok {
		t.Error("Expected miss when box lies beyond maxDist")
	}
	if d, ok := box.RayIntersect(vmath.Vec3F{Z: 5}, vmath.Vec3F{X: 1}, 10); !ok || d != 0 {
		t.Errorf("Expected zero distance from inside, got %v %v", d, ok)
	}
	if _, ok := box.RayIntersect(vmath.Vec3F{X: 3}, vmath.Vec3F{Z: 1}, 10); ok {
		t.Error("Expected parallel ray outside the slab to miss")
	}
	if !box.IntersectsSphere(vmath.Vec3F{X: 1.5, Z: 5}, 0.6) || box.IntersectsSphere(vmath.Vec3F{X: 2, Z: 5}, 0.5) {
		t.Error("Unexpected sphere overlap result")
	}
}

func TestSceneContactEnterOnly(t *testing.T) {
	scene := NewDefaultScene(nil)
	a := newBody(scene, 1, tag.Projectile, vmath.Vec3F{})
	b := newBody(scene, 2, tag.Enemy, vmath.Vec3F{Z: 0.5})
	b.Trigger = true

	var got []Contact
	a.OnContact(func(c Contact) { got = append(got, c) })

	scene.Step(step)
	scene.Step(step)
	if len(got) != 1 {
		t.Fatalf("Expected one contact while overlapping, got %d", len(got))
	}
	if got[0].Other != b || got[0].Kind != ContactTrigger {
		t.Errorf("Expected trigger contact with b, got %v with %d", got[0].Kind, got[0].Other.Entity)
	}

	b.Translate(vmath.Vec3F{Z: 5})
	scene.Step(step)
	b.Translate(vmath.Vec3F{Z: -5})
	scene.Step(step)
	if len(got) != 2 {
		t.Errorf("Expected re-entry to report again, got %d contacts", len(got))
	}
	if got[len(got)-1].Kind.String() != "trigger" {
		t.Errorf("Expected trigger kind, got %s", got[len(got)-1].Kind)
	}
}

func TestSceneContactDisposeAndDestroy(t *testing.T) {
	scene := NewDefaultScene(nil)
	a := newBody(scene, 1, tag.Projectile, vmath.Vec3F{})
	b := newBody(scene, 2, tag.StaticObstacle, vmath.Vec3F{X: 0.5})

	calls := 0
	sub := a.OnContact(func(c Contact) {
		calls++
		if c.Kind != ContactCollision {
			t.Errorf("Expected solid contact, got %s", c.Kind)
		}
	})
	scene.Step(step)
	sub.Dispose()
	scene.Remove(b)
	scene.Add(b)
	scene.Step(step)
	if calls != 1 {
		t.Errorf("Expected disposed handler to stay silent, got %d calls", calls)
	}

	scene.Destroy(a)
	if !a.Destroyed() || a.InScene() || scene.Len() != 1 {
		t.Errorf("Expected a destroyed and removed, len=%d", scene.Len())
	}
	if _, ok := scene.Body(1); ok {
		t.Error("Expected destroyed body lookup to fail")
	}
}

func TestSceneRaycastNearestFirst(t *testing.T) {
	scene := NewDefaultScene(nil)
	far := newBody(scene, 1, tag.StaticObstacle, vmath.Vec3F{Z: 6})
	near := newBody(scene, 2, tag.StaticObstacle, vmath.Vec3F{Z: 3})
	newBody(scene, 3, tag.Enemy, vmath.Vec3F{Z: 4})

	hits := scene.Raycast(vmath.Vec3F{}, vmath.Vec3F{Z: 2}, 10, tag.MaskOf(tag.StaticObstacle))
	if len(hits) != 2 {
		t.Fatalf("Expected 2 obstacle hits, got %d", len(hits))
	}
	if hits[0].Body != near || hits[1].Body != far {
		t.Error("Expected hits ordered by distance")
	}
	if math.Abs(hits[0].Distance-2.5) > 1e-9 || math.Abs(hits[0].Point.Z-2.5) > 1e-9 {
		t.Errorf("Expected first hit at 2.5, got %v", hits[0].Distance)
	}

	if hits := scene.Linecast(vmath.Vec3F{}, vmath.Vec3F{Z: 4}, tag.MaskOf(tag.Enemy)); len(hits) != 1 {
		t.Errorf("Expected linecast to find the enemy, got %d", len(hits))
	}
	if hits := scene.Raycast(vmath.Vec3F{}, vmath.Vec3F{}, 10, tag.MaskAll); hits != nil {
		t.Error("Expected zero direction to return nothing")
	}
}

func TestSceneOverlapSphere(t *testing.T) {
	scene := NewDefaultScene(nil)
	for i := range 4 {
		newBody(scene, core.Entity(i+1), tag.Enemy, vmath.Vec3F{X: float64(i)})
	}
	newBody(scene, 9, tag.Player, vmath.Vec3F{})

	all := scene.OverlapSphere(vmath.Vec3F{}, 2, tag.MaskOf(tag.Enemy), 0)
	if len(all) != 3 {
		t.Fatalf("Expected 3 enemies within reach, got %d", len(all))
	}
	for i, b := range all {
		if b.Entity != core.Entity(i+1) {
			t.Errorf("Expected registration order, got entity %d at %d", b.Entity, i)
		}
	}
	if capped := scene.OverlapSphere(vmath.Vec3F{}, 2, tag.MaskOf(tag.Enemy), 2); len(capped) != 2 {
		t.Errorf("Expected limit to cap at 2, got %d", len(capped))
	}
}

func TestIntegrateSettlesOnGround(t *testing.T) {
	scene := NewDefaultScene(nil)
	b := NewBody(1, tag.Projectile, unit)
	b.Position = vmath.Vec3F{Y: 5}
	b.Motion = MotionDynamic
	b.UseGravity = true
	b.Velocity = vmath.Vec3F{X: 2}
	scene.Add(b)

	for range 200 {
		scene.Step(step)
	}
	if !b.Grounded {
		t.Fatal("Expected body to come to rest on the ground")
	}
	if math.Abs(b.Position.Y-0.5) > 1e-9 {
		t.Errorf("Expected resting height 0.5, got %v", b.Position.Y)
	}
	if b.Speed() != 0 {
		t.Errorf("Expected friction to stop the body, speed %v", b.Speed())
	}
}

func TestIntegrateStopsAtStaticSolid(t *testing.T) {
	scene := NewDefaultScene(nil)
	wall := newBody(scene, 1, tag.StaticObstacle, vmath.Vec3F{X: 2})
	wall.Motion = MotionStatic

	b := NewBody(2, tag.Projectile, unit)
	b.Motion = MotionDynamic
	b.Velocity = vmath.Vec3F{X: 5}
	scene.Add(b)

	for range 50 {
		scene.Step(step)
	}
	if b.Position.X > 1+1e-9 || b.Position.X < 0.9 {
		t.Errorf("Expected body pressed against the wall at 1, got %v", b.Position.X)
	}
	if b.Velocity.X != 0 {
		t.Errorf("Expected normal velocity cleared, got %v", b.Velocity.X)
	}
}

func TestBodyKinematicHelpers(t *testing.T) {
	b := NewBody(5, tag.Enemy, unit)
	b.MovePosition(vmath.Vec3F{X: 1}, 500*time.Millisecond)
	if b.Velocity.X != 2 {
		t.Errorf("Expected derived velocity 2, got %v", b.Velocity.X)
	}
	b.Teleport(vmath.Vec3F{Z: 3})
	if b.Speed() != 0 || b.Position.Z != 3 {
		t.Error("Expected teleport to clear motion")
	}

	b.LookAt(vmath.Vec3F{X: 1, Z: 3})
	if math.Abs(b.Yaw-90) > 1e-9 {
		t.Errorf("Expected yaw 90 toward +X, got %v", b.Yaw)
	}

	b.Tags.WithParent(42)
	if b.Owner() != 42 {
		t.Errorf("Expected hit box to resolve to parent, got %d", b.Owner())
	}
}
