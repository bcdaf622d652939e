package bounds

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Sphere is a bounding sphere. The world radius is the local radius scaled
// by the largest axis scale of the model matrix.
type Sphere struct {
	Center rl.Vector3
	Radius float32

	worldCenter rl.Vector3
	worldRadius float32
}

func NewSphere(center rl.Vector3, radius float32) *Sphere {
	return &Sphere{Center: center, Radius: radius, worldCenter: center, worldRadius: radius}
}

// NewSphereFromBox returns the sphere circumscribing [min, max].
func NewSphereFromBox(min, max rl.Vector3) *Sphere {
	center := rl.Vector3Scale(rl.Vector3Add(min, max), 0.5)
	return NewSphere(center, rl.Vector3Distance(min, max)*0.5)
}

func (s *Sphere) UpdateByModelMatrix(m rl.Matrix) {
	s.worldCenter = rl.Vector3Transform(s.Center, m)
	sx := math32.Sqrt(m.M0*m.M0 + m.M1*m.M1 + m.M2*m.M2)
	sy := math32.Sqrt(m.M4*m.M4 + m.M5*m.M5 + m.M6*m.M6)
	sz := math32.Sqrt(m.M8*m.M8 + m.M9*m.M9 + m.M10*m.M10)
	s.worldRadius = s.Radius * math32.Max(sx, math32.Max(sy, sz))
}

func (s *Sphere) WorldCenter() rl.Vector3 { return s.worldCenter }
func (s *Sphere) WorldRadius() float32    { return s.worldRadius }

func (s *Sphere) WorldMin() rl.Vector3 {
	r := s.worldRadius
	return rl.Vector3Subtract(s.worldCenter, rl.Vector3{X: r, Y: r, Z: r})
}

func (s *Sphere) WorldMax() rl.Vector3 {
	r := s.worldRadius
	return rl.Vector3Add(s.worldCenter, rl.Vector3{X: r, Y: r, Z: r})
}

func (s *Sphere) IntersectsFrustum(f *Frustum) IntersectInfo {
	result := Include
	for i := range f.Planes {
		d := f.Planes[i].DistanceToPoint(s.worldCenter)
		if d <= -s.worldRadius {
			return Exclude
		}
		if d < s.worldRadius {
			result = Intersect
		}
	}
	return result
}

func (s *Sphere) IsInFrustum(f *Frustum) bool {
	return f.ContainsSphere(s.worldCenter, s.worldRadius)
}
