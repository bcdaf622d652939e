package physics

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// OBB represents an Oriented Bounding Box
type OBB struct {
	Center   rl.Vector3    // World-space center
	HalfSize rl.Vector3    // Half-extents along local axes
	Axes     [3]rl.Vector3 // Local X, Y, Z axes (rotated)
}

// NewOBBFromMatrix places a local box of the given size and offset with a
// world matrix. Scale is folded into the half extents.
func NewOBBFromMatrix(m rl.Matrix, offset, size rl.Vector3) OBB {
	cols := [3]rl.Vector3{
		{X: m.M0, Y: m.M1, Z: m.M2},
		{X: m.M4, Y: m.M5, Z: m.M6},
		{X: m.M8, Y: m.M9, Z: m.M10},
	}
	half := [3]float32{math32.Abs(size.X) / 2, math32.Abs(size.Y) / 2, math32.Abs(size.Z) / 2}

	var o OBB
	o.Center = rl.Vector3Transform(offset, m)
	var scaled [3]float32
	for i, c := range cols {
		length := rl.Vector3Length(c)
		if length > 0 {
			o.Axes[i] = rl.Vector3Scale(c, 1/length)
		}
		scaled[i] = half[i] * length
	}
	o.HalfSize = rl.Vector3{X: scaled[0], Y: scaled[1], Z: scaled[2]}
	return o
}

// NewAABBasOBB creates an axis-aligned OBB (no rotation)
func NewAABBasOBB(center, size rl.Vector3) OBB {
	return OBB{
		Center:   center,
		HalfSize: rl.Vector3{X: size.X / 2, Y: size.Y / 2, Z: size.Z / 2},
		Axes: [3]rl.Vector3{
			{X: 1, Y: 0, Z: 0},
			{X: 0, Y: 1, Z: 0},
			{X: 0, Y: 0, Z: 1},
		},
	}
}

// IntersectsOBB tests if two OBBs intersect using the Separating Axis Theorem
func (a OBB) IntersectsOBB(b OBB) bool {
	t := rl.Vector3Subtract(b.Center, a.Center)

	// 3 face normals from each box, then the 9 edge cross products.
	for i := 0; i < 3; i++ {
		if !overlapOnAxis(a, b, a.Axes[i], t) {
			return false
		}
	}
	for i := 0; i < 3; i++ {
		if !overlapOnAxis(a, b, b.Axes[i], t) {
			return false
		}
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			axis := rl.Vector3CrossProduct(a.Axes[i], b.Axes[j])
			// Parallel edges give a degenerate axis.
			if rl.Vector3Length(axis) > 0.0001 {
				if !overlapOnAxis(a, b, rl.Vector3Normalize(axis), t) {
					return false
				}
			}
		}
	}
	return true
}

func (o OBB) projectedRadius(axis rl.Vector3) float32 {
	return o.HalfSize.X*math32.Abs(rl.Vector3DotProduct(o.Axes[0], axis)) +
		o.HalfSize.Y*math32.Abs(rl.Vector3DotProduct(o.Axes[1], axis)) +
		o.HalfSize.Z*math32.Abs(rl.Vector3DotProduct(o.Axes[2], axis))
}

// overlapOnAxis checks if two OBBs overlap when projected onto a given axis
func overlapOnAxis(a, b OBB, axis, t rl.Vector3) bool {
	distance := math32.Abs(rl.Vector3DotProduct(t, axis))
	return distance <= a.projectedRadius(axis)+b.projectedRadius(axis)
}

// IntersectsSphere tests if an OBB intersects with a sphere
func (o OBB) IntersectsSphere(center rl.Vector3, radius float32) bool {
	d := rl.Vector3Subtract(o.ClosestPoint(center), center)
	return rl.Vector3DotProduct(d, d) <= radius*radius
}

// ClosestPoint returns the point of the box nearest to p.
func (o OBB) ClosestPoint(p rl.Vector3) rl.Vector3 {
	local := rl.Vector3Subtract(p, o.Center)
	result := o.Center
	half := [3]float32{o.HalfSize.X, o.HalfSize.Y, o.HalfSize.Z}
	for i := 0; i < 3; i++ {
		d := clampf(rl.Vector3DotProduct(local, o.Axes[i]), -half[i], half[i])
		result = rl.Vector3Add(result, rl.Vector3Scale(o.Axes[i], d))
	}
	return result
}

// Bounds returns the world AABB enclosing the box.
func (o OBB) Bounds() AABB {
	ext := rl.Vector3{
		X: o.projectedRadius(rl.Vector3{X: 1}),
		Y: o.projectedRadius(rl.Vector3{Y: 1}),
		Z: o.projectedRadius(rl.Vector3{Z: 1}),
	}
	return AABB{Min: rl.Vector3Subtract(o.Center, ext), Max: rl.Vector3Add(o.Center, ext)}
}
