package bounds

import (
	"testing"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testFrustum is a camera at (0,0,10) looking at the origin, fov 45, aspect 1,
// near 0.1, far 100.
func testFrustum() Frustum {
	view := rl.MatrixLookAt(rl.NewVector3(0, 0, 10), rl.NewVector3(0, 0, 0), rl.NewVector3(0, 1, 0))
	proj := rl.MatrixPerspective(45*rl.Deg2rad, 1, 0.1, 100)
	return NewFrustumFromMatrix(rl.MatrixMultiply(view, proj))
}

func TestFrustumPlanesNormalized(t *testing.T) {
	f := testFrustum()
	for i, p := range f.Planes {
		assert.InDelta(t, 1.0, rl.Vector3Length(p.Normal), 1e-4, "plane %d", i)
	}
}

func TestFrustumContainsSphere(t *testing.T) {
	f := testFrustum()
	assert.True(t, f.ContainsSphere(rl.NewVector3(0, 0, 0), 0))
	assert.False(t, f.ContainsSphere(rl.NewVector3(0, 0, 20), 0), "behind camera")
	assert.False(t, f.ContainsSphere(rl.NewVector3(0, 0, -200), 0), "past far plane")
	assert.False(t, f.ContainsSphere(rl.NewVector3(50, 0, 0), 0), "right of frustum")
	assert.True(t, f.ContainsSphere(rl.NewVector3(5, 0, 0), 2))
	assert.False(t, f.ContainsSphere(rl.NewVector3(0, 0, 30), 5), "behind camera out of reach")
}

func TestSphereIsInFrustumTouchingPlaneIsOutside(t *testing.T) {
	f := testFrustum()
	far := f.Planes[PlaneFar]
	// Centre beyond the far plane with the radius exactly reaching it.
	center := rl.Vector3Subtract(rl.NewVector3(0, 0, -89.9), rl.Vector3Scale(far.Normal, 3))
	d := far.DistanceToPoint(center)
	s := NewSphere(center, -d)
	s.UpdateByModelMatrix(rl.MatrixIdentity())
	assert.False(t, s.IsInFrustum(&f))
	assert.Equal(t, Exclude, s.IntersectsFrustum(&f))
}

func TestNearPlaneDistance(t *testing.T) {
	f := testFrustum()
	near := f.Planes[PlaneNear]
	// The near plane sits 0.1 in front of the camera at z = 9.9.
	assert.InDelta(t, 0, near.DistanceToPoint(rl.NewVector3(0, 0, 9.9)), 1e-3)
	assert.Greater(t, near.DistanceToPoint(rl.NewVector3(0, 0, 0)), float32(0))
}

func TestIntersectsFrustum(t *testing.T) {
	f := testFrustum()
	tests := []struct {
		name     string
		min, max rl.Vector3
		want     IntersectInfo
	}{
		{"unit box at origin", rl.NewVector3(-0.5, -0.5, -0.5), rl.NewVector3(0.5, 0.5, 0.5), Include},
		{"box behind camera", rl.NewVector3(-0.5, -0.5, 1009.5), rl.NewVector3(0.5, 0.5, 1010.5), Exclude},
		{"box past far plane", rl.NewVector3(-1, -1, -300), rl.NewVector3(1, 1, -200), Exclude},
		{"box straddling near plane", rl.NewVector3(-0.01, -0.01, 9.5), rl.NewVector3(0.01, 0.01, 10.5), Intersect},
		{"box crossing right plane", rl.NewVector3(3, -0.5, -0.5), rl.NewVector3(6, 0.5, 0.5), Intersect},
	}
	for _, kind := range []Kind{KindOBB, KindAABB, KindSphere} {
		for _, tt := range tests {
			t.Run(kind.String()+"/"+tt.name, func(t *testing.T) {
				v := New(kind, tt.min, tt.max)
				v.UpdateByModelMatrix(rl.MatrixIdentity())
				assert.Equal(t, tt.want, v.IntersectsFrustum(&f))
				assert.Equal(t, tt.want != Exclude, v.IsInFrustum(&f))
			})
		}
	}
}

func TestIntersectsFrustumUsesModelMatrix(t *testing.T) {
	f := testFrustum()
	o := NewOBB(rl.NewVector3(-0.5, -0.5, -0.5), rl.NewVector3(0.5, 0.5, 0.5))

	o.UpdateByModelMatrix(rl.MatrixTranslate(0, 0, 1010))
	assert.Equal(t, Exclude, o.IntersectsFrustum(&f))

	o.UpdateByModelMatrix(rl.MatrixIdentity())
	assert.Equal(t, Include, o.IntersectsFrustum(&f))
}

func TestIsInFrustumSingleCornerInside(t *testing.T) {
	f := testFrustum()
	o := NewOBB(rl.NewVector3(0, 0, -1005), rl.NewVector3(1000, 1000, -5))
	o.UpdateByModelMatrix(rl.MatrixIdentity())

	inside := 0
	for _, c := range o.Corners() {
		if f.ContainsSphere(c, 0) {
			inside++
			assert.Equal(t, rl.NewVector3(0, 0, -5), c)
		}
	}
	require.Equal(t, 1, inside)
	assert.True(t, o.IsInFrustum(&f))
	assert.Equal(t, Intersect, o.IntersectsFrustum(&f))
}

func TestIsInFrustumOverIncludes(t *testing.T) {
	f := testFrustum()
	// Long thin box left of the frustum: inside the visible depth range the
	// left plane rejects it, but its far end passes the left plane beyond
	// the far plane, so no single plane has every corner outside.
	o := NewOBB(rl.NewVector3(-1000, -1, -4990), rl.NewVector3(-900, 1, 9))
	o.UpdateByModelMatrix(rl.MatrixIdentity())
	for _, c := range o.Corners() {
		assert.False(t, f.ContainsSphere(c, 0))
	}
	assert.True(t, o.IsInFrustum(&f))
}

func TestNaNCornersCountAsOutside(t *testing.T) {
	f := testFrustum()
	nan := math32.NaN()
	o := NewOBB(rl.NewVector3(nan, nan, nan), rl.NewVector3(nan, nan, nan))
	o.UpdateByModelMatrix(rl.MatrixIdentity())
	assert.Equal(t, Exclude, o.IntersectsFrustum(&f))
	assert.False(t, o.IsInFrustum(&f))
}

func TestOBBWorldExtent(t *testing.T) {
	o := NewOBB(rl.NewVector3(-1, -1, -1), rl.NewVector3(1, 1, 1))
	m := rl.MatrixMultiply(rl.MatrixScale(2, 1, 1), rl.MatrixTranslate(10, 0, 0))
	o.UpdateByModelMatrix(m)
	assert.InDelta(t, 8, o.WorldMin().X, 1e-5)
	assert.InDelta(t, 12, o.WorldMax().X, 1e-5)
	assert.InDelta(t, -1, o.WorldMin().Y, 1e-5)
}

func TestAABBGrowsUnderRotation(t *testing.T) {
	a := NewAABB(rl.NewVector3(-1, -1, -1), rl.NewVector3(1, 1, 1))
	a.UpdateByModelMatrix(rl.MatrixRotateY(45 * rl.Deg2rad))
	assert.InDelta(t, math32.Sqrt(2), a.WorldMax().X, 1e-4)
	assert.InDelta(t, 1, a.WorldMax().Y, 1e-4)

	b := NewAABB(rl.NewVector3(1, -1, -1), rl.NewVector3(3, 1, 1))
	b.UpdateByModelMatrix(rl.MatrixIdentity())
	assert.True(t, a.Overlaps(b))
}

func TestSphereScalesWithLargestAxis(t *testing.T) {
	s := NewSphere(rl.NewVector3(0, 0, 0), 1)
	s.UpdateByModelMatrix(rl.MatrixMultiply(rl.MatrixScale(1, 3, 2), rl.MatrixTranslate(0, 5, 0)))
	assert.InDelta(t, 3, s.WorldRadius(), 1e-5)
	assert.InDelta(t, 5, s.WorldCenter().Y, 1e-5)
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("AABB")
	require.NoError(t, err)
	assert.Equal(t, KindAABB, k)

	k, err = ParseKind("")
	require.NoError(t, err)
	assert.Equal(t, KindOBB, k)

	_, err = ParseKind("capsule")
	assert.Error(t, err)
}
