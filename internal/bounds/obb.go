package bounds

import rl "github.com/gen2brain/raylib-go/raylib"

// OBB is an oriented box: eight local corners carried into world space by
// the owner's model matrix, so rotation and shear are preserved.
type OBB struct {
	Min rl.Vector3
	Max rl.Vector3

	local [8]rl.Vector3
	world [8]rl.Vector3

	worldMin rl.Vector3
	worldMax rl.Vector3
}

// NewOBB builds an OBB from a local axis-aligned box. Until the first
// UpdateByModelMatrix the world corners equal the local ones.
func NewOBB(min, max rl.Vector3) *OBB {
	o := &OBB{Min: min, Max: max}
	boxCorners(min, max, &o.local)
	o.world = o.local
	o.worldMin, o.worldMax = min, max
	return o
}

// UpdateByModelMatrix transforms the local corners by m and refreshes the
// world extent.
func (o *OBB) UpdateByModelMatrix(m rl.Matrix) {
	for i := range o.local {
		o.world[i] = rl.Vector3Transform(o.local[i], m)
	}
	o.worldMin, o.worldMax = minMax(o.world[:])
}

// Corners returns the world-space corners from the last update.
func (o *OBB) Corners() [8]rl.Vector3 { return o.world }

func (o *OBB) WorldMin() rl.Vector3 { return o.worldMin }
func (o *OBB) WorldMax() rl.Vector3 { return o.worldMax }

// IntersectsFrustum classifies the box exactly per plane.
func (o *OBB) IntersectsFrustum(f *Frustum) IntersectInfo {
	return classifyCorners(f, &o.world)
}

// IsInFrustum is the cheap test: true when every plane has a corner in
// front of it. It may report true for a box just outside an edge.
func (o *OBB) IsInFrustum(f *Frustum) bool {
	return anyCornerInside(f, &o.world)
}
