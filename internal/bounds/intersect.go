package bounds

import rl "github.com/gen2brain/raylib-go/raylib"

// IntersectInfo classifies a volume against a frustum.
type IntersectInfo int

const (
	// Exclude means the volume is entirely outside at least one plane.
	Exclude IntersectInfo = iota
	// Intersect means the volume straddles one or more planes.
	Intersect
	// Include means the volume is entirely inside every plane.
	Include
)

func (i IntersectInfo) String() string {
	switch i {
	case Exclude:
		return "exclude"
	case Intersect:
		return "intersect"
	case Include:
		return "include"
	}
	return "unknown"
}

// classifyCorners runs the exact three-way test over a set of world corners.
// A plane with every corner at or behind it excludes immediately. A plane
// with mixed corners downgrades the result to Intersect, but the remaining
// planes are still tested because one of them may exclude.
//
// NaN distances compare false, so NaN corners count as outside.
func classifyCorners(f *Frustum, corners *[8]rl.Vector3) IntersectInfo {
	result := Include
	for p := range f.Planes {
		plane := &f.Planes[p]
		inside := 0
		for i := range corners {
			if plane.DistanceToPoint(corners[i]) > 0 {
				inside++
			}
		}
		switch inside {
		case 0:
			return Exclude
		case len(corners):
		default:
			result = Intersect
		}
	}
	return result
}

// anyCornerInside is the cheap visibility test: every plane must have at
// least one corner in front of it. It never rejects a visible box but may
// accept a box that is outside near a frustum edge or corner.
func anyCornerInside(f *Frustum, corners *[8]rl.Vector3) bool {
	for p := range f.Planes {
		plane := &f.Planes[p]
		found := false
		for i := range corners {
			if plane.DistanceToPoint(corners[i]) > 0 {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
