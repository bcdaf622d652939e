package bounds

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Plane indices inside Frustum.Planes.
const (
	PlaneLeft = iota
	PlaneRight
	PlaneBottom
	PlaneTop
	PlaneNear
	PlaneFar
)

// Frustum is the six world-space planes of a camera view volume.
// Every plane normal points inward.
type Frustum struct {
	Planes [6]Plane
}

// NewFrustumFromMatrix extracts a frustum from a view-projection matrix.
func NewFrustumFromMatrix(vp rl.Matrix) Frustum {
	var f Frustum
	f.Update(vp)
	return f
}

// Update re-extracts the planes from vp using the Gribb/Hartmann method.
// vp is expected in raylib layout, i.e. rl.MatrixMultiply(view, projection),
// so clip row i is (M[i], M[i+4], M[i+8], M[i+12]).
func (f *Frustum) Update(vp rl.Matrix) {
	// row4 + row1
	f.Planes[PlaneLeft] = NewPlane(vp.M3+vp.M0, vp.M7+vp.M4, vp.M11+vp.M8, vp.M15+vp.M12).Normalize()
	// row4 - row1
	f.Planes[PlaneRight] = NewPlane(vp.M3-vp.M0, vp.M7-vp.M4, vp.M11-vp.M8, vp.M15-vp.M12).Normalize()
	// row4 + row2
	f.Planes[PlaneBottom] = NewPlane(vp.M3+vp.M1, vp.M7+vp.M5, vp.M11+vp.M9, vp.M15+vp.M13).Normalize()
	// row4 - row2
	f.Planes[PlaneTop] = NewPlane(vp.M3-vp.M1, vp.M7-vp.M5, vp.M11-vp.M9, vp.M15-vp.M13).Normalize()
	// row4 + row3
	f.Planes[PlaneNear] = NewPlane(vp.M3+vp.M2, vp.M7+vp.M6, vp.M11+vp.M10, vp.M15+vp.M14).Normalize()
	// row4 - row3
	f.Planes[PlaneFar] = NewPlane(vp.M3-vp.M2, vp.M7-vp.M6, vp.M11-vp.M10, vp.M15-vp.M14).Normalize()
}

// ContainsSphere reports whether a sphere reaches strictly inside every
// plane. A radius of zero tests a single point.
func (f *Frustum) ContainsSphere(center rl.Vector3, radius float32) bool {
	for i := range f.Planes {
		if f.Planes[i].DistanceToPoint(center) <= -radius {
			return false
		}
	}
	return true
}
