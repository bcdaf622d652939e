package physics

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"render3d/internal/engine"
)

func TestRayBoxFromOutside(t *testing.T) {
	r := NewRay(rl.NewVector3(-5, 0, 0), rl.NewVector3(1, 0, 0))
	dist, n, ok := RayBox(r, rl.NewVector3(-1, -1, -1), rl.NewVector3(1, 1, 1))
	require.True(t, ok)
	assert.InDelta(t, 4, dist, 1e-5)
	assert.Equal(t, rl.NewVector3(-1, 0, 0), n)
}

func TestRayBoxFromInside(t *testing.T) {
	r := NewRay(rl.NewVector3(0, 0, 0), rl.NewVector3(0, 0, -1))
	dist, n, ok := RayBox(r, rl.NewVector3(-1, -1, -2), rl.NewVector3(1, 1, 2))
	require.True(t, ok)
	assert.InDelta(t, 2, dist, 1e-5)
	assert.Equal(t, rl.NewVector3(0, 0, -1), n)
}

func TestRayBoxMiss(t *testing.T) {
	r := NewRay(rl.NewVector3(-5, 3, 0), rl.NewVector3(1, 0, 0))
	_, _, ok := RayBox(r, rl.NewVector3(-1, -1, -1), rl.NewVector3(1, 1, 1))
	assert.False(t, ok)

	behind := NewRay(rl.NewVector3(5, 0, 0), rl.NewVector3(1, 0, 0))
	_, _, ok = RayBox(behind, rl.NewVector3(-1, -1, -1), rl.NewVector3(1, 1, 1))
	assert.False(t, ok)
}

func TestRaySphere(t *testing.T) {
	r := NewRay(rl.NewVector3(0, 10, 0), rl.NewVector3(0, -1, 0))
	dist, n, ok := RaySphere(r, rl.NewVector3(0, 0, 0), 2)
	require.True(t, ok)
	assert.InDelta(t, 8, dist, 1e-5)
	assert.InDelta(t, 1, n.Y, 1e-5)

	_, _, ok = RaySphere(NewRay(rl.NewVector3(5, 10, 0), rl.NewVector3(0, -1, 0)), rl.Vector3{}, 2)
	assert.False(t, ok)
}

func TestRayPlaneFrontFaceOnly(t *testing.T) {
	up := rl.NewVector3(0, 1, 0)
	dist, _, ok := RayPlane(NewRay(rl.NewVector3(0, 3, 0), rl.NewVector3(0, -1, 0)), up, 0)
	require.True(t, ok)
	assert.InDelta(t, 3, dist, 1e-5)

	_, _, ok = RayPlane(NewRay(rl.NewVector3(0, -3, 0), rl.NewVector3(0, 1, 0)), up, 0)
	assert.False(t, ok)
}

func TestRaycastLocalHonoursTransform(t *testing.T) {
	// Unit box scaled 2x on X and moved to x=10.
	world := rl.MatrixMultiply(rl.MatrixScale(2, 1, 1), rl.MatrixTranslate(10, 0, 0))
	r := NewRay(rl.NewVector3(0, 0, 0), rl.NewVector3(1, 0, 0))

	hit, ok := RaycastLocal(r, world, 100, func(local Ray) (float32, rl.Vector3, bool) {
		return RayBox(local, rl.NewVector3(-0.5, -0.5, -0.5), rl.NewVector3(0.5, 0.5, 0.5))
	})
	require.True(t, ok)
	assert.InDelta(t, 9, hit.Distance, 1e-4)
	assert.InDelta(t, 9, hit.Point.X, 1e-4)
	assert.InDelta(t, -1, hit.Normal.X, 1e-4)

	_, ok = RaycastLocal(r, world, 5, func(local Ray) (float32, rl.Vector3, bool) {
		return RayBox(local, rl.NewVector3(-0.5, -0.5, -0.5), rl.NewVector3(0.5, 0.5, 0.5))
	})
	assert.False(t, ok, "hit beyond max distance")
}

func TestOBBSeparatingAxis(t *testing.T) {
	a := NewAABBasOBB(rl.NewVector3(0, 0, 0), rl.NewVector3(2, 2, 2))
	b := NewAABBasOBB(rl.NewVector3(2.5, 0, 0), rl.NewVector3(2, 2, 2))
	assert.False(t, a.IntersectsOBB(b))

	// Rotating b by 45 degrees pushes a corner into a.
	rotated := NewOBBFromMatrix(rl.MatrixMultiply(rl.MatrixRotateY(45*rl.Deg2rad), rl.MatrixTranslate(2.3, 0, 0)), rl.Vector3{}, rl.NewVector3(2, 2, 2))
	assert.True(t, a.IntersectsOBB(rotated))
}

func TestOBBFromMatrixScalesExtents(t *testing.T) {
	o := NewOBBFromMatrix(rl.MatrixMultiply(rl.MatrixScale(3, 1, 1), rl.MatrixTranslate(0, 5, 0)), rl.NewVector3(0, 1, 0), rl.NewVector3(2, 2, 2))
	assert.InDelta(t, 3, o.HalfSize.X, 1e-5)
	assert.InDelta(t, 6, o.Center.Y, 1e-5)
	b := o.Bounds()
	assert.InDelta(t, -3, b.Min.X, 1e-5)
}

func TestSphereOverlap(t *testing.T) {
	box := NewAABBasOBB(rl.Vector3{}, rl.NewVector3(2, 2, 2))
	assert.True(t, box.IntersectsSphere(rl.NewVector3(1.5, 0, 0), 0.6))
	assert.False(t, box.IntersectsSphere(rl.NewVector3(3, 0, 0), 0.6))

	aabb := NewAABBFromCenter(rl.Vector3{}, rl.NewVector3(2, 2, 2))
	assert.True(t, aabb.IntersectsSphere(rl.NewVector3(1.5, 0, 0), 0.6))
	assert.True(t, aabb.Contains(rl.Vector3{}))
	assert.True(t, Infinite().Intersects(aabb))
}

// stubCollider is a world-space sphere collider for raycast tests.
type stubCollider struct {
	engine.BaseComponent
	radius float32
}

func (s *stubCollider) Raycast(ray Ray, maxDistance float32) (RaycastHit, bool) {
	return RaycastLocal(ray, s.GetEntity().WorldMatrix(), maxDistance, func(local Ray) (float32, rl.Vector3, bool) {
		return RaySphere(local, rl.Vector3{}, s.radius)
	})
}

func (s *stubCollider) WorldAABB() AABB {
	return NewAABBFromCenter(s.GetEntity().WorldPosition(), rl.NewVector3(2*s.radius, 2*s.radius, 2*s.radius))
}

func (s *stubCollider) WorldSphere() (rl.Vector3, float32) {
	return s.GetEntity().WorldPosition(), s.radius
}

func addSphere(scene *engine.Scene, name string, pos rl.Vector3) (*engine.Entity, *stubCollider) {
	e := scene.CreateRootEntity(name)
	e.Transform.Position = pos
	c := &stubCollider{radius: 1}
	e.AddComponent(c)
	return e, c
}

func TestSceneRaycastReturnsClosest(t *testing.T) {
	scene := engine.New().NewScene("physics")
	addSphere(scene, "far", rl.NewVector3(0, 0, -20))
	near, _ := addSphere(scene, "near", rl.NewVector3(0, 0, -10))

	hit, ok := Raycast(scene, NewRay(rl.Vector3{}, rl.NewVector3(0, 0, -1)), 100, engine.LayerEverything)
	require.True(t, ok)
	assert.Same(t, near, hit.Entity)
	assert.InDelta(t, 9, hit.Distance, 1e-4)
}

func TestSceneRaycastSkipsInactiveAndMasked(t *testing.T) {
	scene := engine.New().NewScene("physics")
	near, _ := addSphere(scene, "near", rl.NewVector3(0, 0, -10))
	masked, _ := addSphere(scene, "masked", rl.NewVector3(0, 0, -15))
	far, _ := addSphere(scene, "far", rl.NewVector3(0, 0, -20))

	near.SetActive(false)
	masked.Layer = engine.LayerUI

	hit, ok := Raycast(scene, NewRay(rl.Vector3{}, rl.NewVector3(0, 0, -1)), 100, engine.LayerDefault)
	require.True(t, ok)
	assert.Same(t, far, hit.Entity)

	_, ok = Raycast(scene, NewRay(rl.Vector3{}, rl.NewVector3(0, 0, 1)), 100, engine.LayerEverything)
	assert.False(t, ok)

	_, ok = Raycast(nil, NewRay(rl.Vector3{}, rl.NewVector3(0, 0, 1)), 100, engine.LayerEverything)
	assert.False(t, ok)
}

func TestOverlapsSpheres(t *testing.T) {
	scene := engine.New().NewScene("physics")
	_, a := addSphere(scene, "a", rl.NewVector3(0, 0, 0))
	_, b := addSphere(scene, "b", rl.NewVector3(1.5, 0, 0))
	_, c := addSphere(scene, "c", rl.NewVector3(1.9, 1.9, 0))

	assert.True(t, Overlaps(a, b))
	assert.False(t, Overlaps(a, c), "AABBs touch but spheres do not")
}
