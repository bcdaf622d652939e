package bounds

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Plane is the set of points p where Normal·p + Distance == 0.
// Points with a positive signed distance lie on the inside.
type Plane struct {
	Normal   rl.Vector3
	Distance float32
}

// NewPlane builds a plane from the coefficients of ax + by + cz + d = 0.
func NewPlane(a, b, c, d float32) Plane {
	return Plane{Normal: rl.Vector3{X: a, Y: b, Z: c}, Distance: d}
}

// DistanceToPoint returns the signed distance of p from the plane. The value
// is only a true distance when the plane is normalized.
func (p Plane) DistanceToPoint(v rl.Vector3) float32 {
	return p.Normal.X*v.X + p.Normal.Y*v.Y + p.Normal.Z*v.Z + p.Distance
}

// Vector4 packs the plane as (a, b, c, d).
func (p Plane) Vector4() rl.Vector4 {
	return rl.Vector4{X: p.Normal.X, Y: p.Normal.Y, Z: p.Normal.Z, W: p.Distance}
}

// Normalize scales the plane so that its normal has unit length.
// A degenerate plane is returned unchanged.
func (p Plane) Normalize() Plane {
	length := math32.Sqrt(p.Normal.X*p.Normal.X + p.Normal.Y*p.Normal.Y + p.Normal.Z*p.Normal.Z)
	if length == 0 {
		return p
	}
	inv := 1 / length
	return Plane{
		Normal:   rl.Vector3Scale(p.Normal, inv),
		Distance: p.Distance * inv,
	}
}
