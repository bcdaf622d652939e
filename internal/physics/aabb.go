package physics

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

type AABB struct {
	Min rl.Vector3
	Max rl.Vector3
}

// NewAABBFromCenter creates an AABB from a center point and full size dimensions.
func NewAABBFromCenter(center, size rl.Vector3) AABB {
	half := rl.Vector3{X: math32.Abs(size.X) / 2, Y: math32.Abs(size.Y) / 2, Z: math32.Abs(size.Z) / 2}
	return AABB{
		Min: rl.Vector3Subtract(center, half),
		Max: rl.Vector3Add(center, half),
	}
}

// Infinite returns a box that contains every point.
func Infinite() AABB {
	inf := math32.Inf(1)
	return AABB{
		Min: rl.Vector3{X: -inf, Y: -inf, Z: -inf},
		Max: rl.Vector3{X: inf, Y: inf, Z: inf},
	}
}

func (a AABB) Intersects(b AABB) bool {
	return a.Min.X <= b.Max.X && a.Max.X >= b.Min.X &&
		a.Min.Y <= b.Max.Y && a.Max.Y >= b.Min.Y &&
		a.Min.Z <= b.Max.Z && a.Max.Z >= b.Min.Z
}

func (a AABB) Contains(p rl.Vector3) bool {
	return p.X >= a.Min.X && p.X <= a.Max.X &&
		p.Y >= a.Min.Y && p.Y <= a.Max.Y &&
		p.Z >= a.Min.Z && p.Z <= a.Max.Z
}

func (a AABB) Center() rl.Vector3 {
	return rl.Vector3Scale(rl.Vector3Add(a.Min, a.Max), 0.5)
}

// IntersectsSphere tests the closest point of the box against the sphere.
func (a AABB) IntersectsSphere(center rl.Vector3, radius float32) bool {
	dx := center.X - clampf(center.X, a.Min.X, a.Max.X)
	dy := center.Y - clampf(center.Y, a.Min.Y, a.Max.Y)
	dz := center.Z - clampf(center.Z, a.Min.Z, a.Max.Z)
	return dx*dx+dy*dy+dz*dz <= radius*radius
}

func clampf(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
