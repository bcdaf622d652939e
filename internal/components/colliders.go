package components

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"

	"render3d/internal/engine"
	"render3d/internal/physics"
)

func worldMatrix(c engine.Component) rl.Matrix {
	if g := c.GetEntity(); g != nil {
		return g.WorldMatrix()
	}
	return rl.MatrixIdentity()
}

// BoxCollider is an oriented box of Size centered at Offset in entity space.
type BoxCollider struct {
	engine.BaseComponent
	Size   rl.Vector3
	Offset rl.Vector3
}

func NewBoxCollider(size rl.Vector3) *BoxCollider {
	return &BoxCollider{Size: size}
}

func (b *BoxCollider) localBounds() (rl.Vector3, rl.Vector3) {
	half := rl.Vector3Scale(b.Size, 0.5)
	return rl.Vector3Subtract(b.Offset, half), rl.Vector3Add(b.Offset, half)
}

func (b *BoxCollider) Raycast(ray physics.Ray, maxDistance float32) (physics.RaycastHit, bool) {
	lo, hi := b.localBounds()
	return physics.RaycastLocal(ray, worldMatrix(b), maxDistance, func(local physics.Ray) (float32, rl.Vector3, bool) {
		return physics.RayBox(local, lo, hi)
	})
}

func (b *BoxCollider) WorldOBB() physics.OBB {
	return physics.NewOBBFromMatrix(worldMatrix(b), b.Offset, b.Size)
}

func (b *BoxCollider) WorldAABB() physics.AABB {
	return b.WorldOBB().Bounds()
}

// SphereCollider is a sphere of Radius centered at Offset in entity space.
// Under non-uniform scale it raycasts as an ellipsoid but overlaps as the
// bounding sphere.
type SphereCollider struct {
	engine.BaseComponent
	Radius float32
	Offset rl.Vector3
}

func NewSphereCollider(radius float32) *SphereCollider {
	return &SphereCollider{Radius: radius}
}

func (s *SphereCollider) Raycast(ray physics.Ray, maxDistance float32) (physics.RaycastHit, bool) {
	return physics.RaycastLocal(ray, worldMatrix(s), maxDistance, func(local physics.Ray) (float32, rl.Vector3, bool) {
		return physics.RaySphere(local, s.Offset, s.Radius)
	})
}

// WorldSphere returns the world center and radius.
func (s *SphereCollider) WorldSphere() (rl.Vector3, float32) {
	m := worldMatrix(s)
	center := rl.Vector3Transform(s.Offset, m)
	sx := rl.Vector3Length(rl.Vector3{X: m.M0, Y: m.M1, Z: m.M2})
	sy := rl.Vector3Length(rl.Vector3{X: m.M4, Y: m.M5, Z: m.M6})
	sz := rl.Vector3Length(rl.Vector3{X: m.M8, Y: m.M9, Z: m.M10})
	return center, s.Radius * math32.Max(sx, math32.Max(sy, sz))
}

func (s *SphereCollider) WorldAABB() physics.AABB {
	c, r := s.WorldSphere()
	return physics.NewAABBFromCenter(c, rl.Vector3{X: 2 * r, Y: 2 * r, Z: 2 * r})
}

// PlaneCollider is the infinite plane through Offset facing the entity's
// local +Y. Only its front face can be hit.
type PlaneCollider struct {
	engine.BaseComponent
	Offset float32
}

func NewPlaneCollider() *PlaneCollider {
	return &PlaneCollider{}
}

func (p *PlaneCollider) Raycast(ray physics.Ray, maxDistance float32) (physics.RaycastHit, bool) {
	return physics.RaycastLocal(ray, worldMatrix(p), maxDistance, func(local physics.Ray) (float32, rl.Vector3, bool) {
		return physics.RayPlane(local, rl.Vector3{Y: 1}, p.Offset)
	})
}

func (p *PlaneCollider) WorldAABB() physics.AABB {
	return physics.Infinite()
}
