package bounds

import rl "github.com/gen2brain/raylib-go/raylib"

// AABB keeps a world-space axis-aligned box enclosing the transformed local
// box. It is looser than an OBB under rotation but the corners it tests are
// the world box corners.
type AABB struct {
	Min rl.Vector3
	Max rl.Vector3

	local    [8]rl.Vector3
	world    [8]rl.Vector3
	worldMin rl.Vector3
	worldMax rl.Vector3
}

func NewAABB(min, max rl.Vector3) *AABB {
	a := &AABB{Min: min, Max: max}
	boxCorners(min, max, &a.local)
	a.worldMin, a.worldMax = min, max
	a.world = a.local
	return a
}

func (a *AABB) UpdateByModelMatrix(m rl.Matrix) {
	var tmp [8]rl.Vector3
	for i := range a.local {
		tmp[i] = rl.Vector3Transform(a.local[i], m)
	}
	a.worldMin, a.worldMax = minMax(tmp[:])
	boxCorners(a.worldMin, a.worldMax, &a.world)
}

func (a *AABB) WorldMin() rl.Vector3 { return a.worldMin }
func (a *AABB) WorldMax() rl.Vector3 { return a.worldMax }

func (a *AABB) IntersectsFrustum(f *Frustum) IntersectInfo {
	return classifyCorners(f, &a.world)
}

func (a *AABB) IsInFrustum(f *Frustum) bool {
	return anyCornerInside(f, &a.world)
}

// Overlaps reports whether two world boxes intersect, touching included.
func (a *AABB) Overlaps(b *AABB) bool {
	return a.worldMin.X <= b.worldMax.X && a.worldMax.X >= b.worldMin.X &&
		a.worldMin.Y <= b.worldMax.Y && a.worldMax.Y >= b.worldMin.Y &&
		a.worldMin.Z <= b.worldMax.Z && a.worldMax.Z >= b.worldMin.Z
}
