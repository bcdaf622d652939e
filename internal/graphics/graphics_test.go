package graphics

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"render3d/internal/bounds"
)

func TestArenaAssignsIDs(t *testing.T) {
	a := NewArena[*Material]()
	m1 := a.Add(NewMaterial("a", rl.Red))
	m2 := a.Add(NewMaterial("b", rl.Blue))

	assert.Equal(t, uint32(1), m1.ID())
	assert.Equal(t, uint32(2), m2.ID())

	got, ok := a.Get(2)
	require.True(t, ok)
	assert.Same(t, m2, got)

	a.Remove(1)
	_, ok = a.Get(1)
	assert.False(t, ok)
	assert.Equal(t, 1, a.Len())

	m3 := a.Add(NewMaterial("c", rl.Green))
	assert.Equal(t, uint32(3), m3.ID(), "ids are not reused")
}

func TestArenasAreIndependent(t *testing.T) {
	a := NewArena[*Mesh]()
	b := NewArena[*Mesh]()
	assert.Equal(t, uint32(1), a.Add(NewMesh("x")).ID())
	assert.Equal(t, uint32(1), b.Add(NewMesh("y")).ID())
}

func TestShaderKeyFollowsShader(t *testing.T) {
	m := NewMaterial("m", rl.White)
	k1 := m.ShaderKey()
	assert.Equal(t, k1, m.ShaderKey())

	m.Shader = "unlit"
	assert.NotEqual(t, k1, m.ShaderKey())

	other := NewMaterial("other", rl.Black)
	other.Shader = "unlit"
	assert.Equal(t, m.ShaderKey(), other.ShaderKey())
}

func TestIsBlended(t *testing.T) {
	assert.False(t, IsBlended(NewMaterial("opaque", rl.White)))
	assert.True(t, IsBlended(NewTransparentMaterial("glass", rl.White)))
	assert.True(t, IsBlended(NewMaterial("faded", rl.NewColor(255, 255, 255, 128))))
	assert.False(t, IsBlended(nil))
}

func TestPrimitiveBounds(t *testing.T) {
	c := NewCube(rl.NewVector3(2, 4, 6))
	assert.Equal(t, rl.NewVector3(-1, -2, -3), c.Min)
	assert.Equal(t, rl.NewVector3(1, 2, 3), c.Max)

	p := NewPlane(10, 4)
	assert.Equal(t, float32(0), p.Max.Y)
	assert.Equal(t, float32(5), p.Max.X)

	s := NewSphere(1.5)
	assert.Equal(t, float32(-1.5), s.Min.Z)
}

func TestPrimitiveVolumeIsLazy(t *testing.T) {
	c := NewCube(rl.NewVector3(1, 1, 1))
	assert.False(t, c.HasVolume())

	v := c.Volume(bounds.KindOBB)
	assert.True(t, c.HasVolume())
	assert.Same(t, v, c.Volume(bounds.KindOBB))

	s := c.Volume(bounds.KindSphere)
	_, isSphere := s.(*bounds.Sphere)
	assert.True(t, isSphere)
}

func TestMeshBounds(t *testing.T) {
	m := NewMesh("pair", NewCube(rl.NewVector3(2, 2, 2)), NewCustom(rl.NewVector3(0, 0, 0), rl.NewVector3(5, 1, 1)))
	lo, hi := m.Bounds()
	assert.Equal(t, rl.NewVector3(-1, -1, -1), lo)
	assert.Equal(t, rl.NewVector3(5, 1, 1), hi)
}
