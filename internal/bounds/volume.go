package bounds

import (
	"fmt"
	"strings"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Volume is a bounding volume with a local shape and a cached world-space
// counterpart. UpdateByModelMatrix must be called before the frustum tests
// whenever the owner's world matrix may have changed.
type Volume interface {
	UpdateByModelMatrix(m rl.Matrix)
	IntersectsFrustum(f *Frustum) IntersectInfo
	IsInFrustum(f *Frustum) bool
	WorldMin() rl.Vector3
	WorldMax() rl.Vector3
}

// Kind selects the volume built for a primitive.
type Kind int

const (
	KindOBB Kind = iota
	KindAABB
	KindSphere
)

func (k Kind) String() string {
	switch k {
	case KindOBB:
		return "obb"
	case KindAABB:
		return "aabb"
	case KindSphere:
		return "sphere"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind maps a config value onto a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "obb":
		return KindOBB, nil
	case "aabb":
		return KindAABB, nil
	case "sphere":
		return KindSphere, nil
	}
	return KindOBB, fmt.Errorf("unknown bounding volume %q", s)
}

// New builds a volume of the given kind around a local box.
func New(kind Kind, min, max rl.Vector3) Volume {
	switch kind {
	case KindAABB:
		return NewAABB(min, max)
	case KindSphere:
		return NewSphereFromBox(min, max)
	default:
		return NewOBB(min, max)
	}
}

// boxCorners fills the eight corners of [min, max] in a fixed order.
func boxCorners(min, max rl.Vector3, out *[8]rl.Vector3) {
	out[0] = rl.Vector3{X: min.X, Y: min.Y, Z: min.Z}
	out[1] = rl.Vector3{X: max.X, Y: max.Y, Z: max.Z}
	out[2] = rl.Vector3{X: max.X, Y: min.Y, Z: min.Z}
	out[3] = rl.Vector3{X: min.X, Y: max.Y, Z: min.Z}
	out[4] = rl.Vector3{X: min.X, Y: min.Y, Z: max.Z}
	out[5] = rl.Vector3{X: max.X, Y: max.Y, Z: min.Z}
	out[6] = rl.Vector3{X: min.X, Y: max.Y, Z: max.Z}
	out[7] = rl.Vector3{X: max.X, Y: min.Y, Z: max.Z}
}

func minMax(points []rl.Vector3) (rl.Vector3, rl.Vector3) {
	lo, hi := points[0], points[0]
	for _, p := range points[1:] {
		lo = rl.Vector3{X: math32.Min(lo.X, p.X), Y: math32.Min(lo.Y, p.Y), Z: math32.Min(lo.Z, p.Z)}
		hi = rl.Vector3{X: math32.Max(hi.X, p.X), Y: math32.Max(hi.Y, p.Y), Z: math32.Max(hi.Z, p.Z)}
	}
	return lo, hi
}
