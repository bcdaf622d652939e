package components

import (
	"render3d/internal/engine"
	"render3d/internal/graphics"
)

// MeshRenderer submits every primitive of its mesh with one material, or the
// per-primitive material when Materials has an entry for that index.
type MeshRenderer struct {
	engine.BaseComponent
	Mesh      *graphics.Mesh
	Material  *graphics.Material
	Materials []*graphics.Material
}

func NewMeshRenderer(mesh *graphics.Mesh, mat *graphics.Material) *MeshRenderer {
	return &MeshRenderer{Mesh: mesh, Material: mat}
}

func (m *MeshRenderer) materialFor(i int) *graphics.Material {
	if i < len(m.Materials) && m.Materials[i] != nil {
		return m.Materials[i]
	}
	return m.Material
}

// Render implements engine.Renderer.
func (m *MeshRenderer) Render(cam engine.Camera, sink engine.RenderSink) {
	if m.Mesh == nil {
		return
	}
	for i, prim := range m.Mesh.Primitives {
		sink.PushPrimitive(m, prim, m.materialFor(i))
	}
}

// VisibleCount returns how many primitives passed culling in the last frame.
func (m *MeshRenderer) VisibleCount() int {
	if m.Mesh == nil {
		return 0
	}
	n := 0
	for _, p := range m.Mesh.Primitives {
		if p.InFrustum {
			n++
		}
	}
	return n
}
