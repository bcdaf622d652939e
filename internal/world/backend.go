package world

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"render3d/internal/bounds"
	"render3d/internal/components"
	"render3d/internal/engine"
	"render3d/internal/graphics"
	"render3d/internal/render"
)

// RaylibBackend draws render items with raylib's immediate mode. Models
// are generated once per primitive and reused with the item's transform.
// Needs an open window.
type RaylibBackend struct {
	Ambient    float32
	DrawBounds bool // wireframe world boxes around drawn primitives

	models map[*graphics.Primitive]rl.Model
	lights []components.LightData
	camPos rl.Vector3
	in3D   bool
}

func NewRaylibBackend() *RaylibBackend {
	return &RaylibBackend{
		Ambient: 0.25,
		models:  make(map[*graphics.Primitive]rl.Model),
	}
}

func (b *RaylibBackend) BeginPass(cam engine.Camera, pass *render.Pass) {
	if c, ok := cam.(interface{ Camera3D() rl.Camera3D }); ok {
		rl.BeginMode3D(c.Camera3D())
		b.in3D = true
	}
	b.camPos = cam.Position()
	b.lights = components.CollectLights(cam.GetEntity().Scene())
}

func (b *RaylibBackend) Draw(item *render.RenderItem) {
	model := b.model(item.Primitive)
	model.Transform = item.Model

	center := rl.Vector3Transform(rl.Vector3Scale(rl.Vector3Add(item.Primitive.Min, item.Primitive.Max), 0.5), item.Model)
	normal := rl.Vector3Subtract(b.camPos, center)
	color := rl.White
	if item.Material != nil {
		color = components.Shade(item.Material.Color, center, normal, b.Ambient, b.lights)
	}
	rl.DrawModel(model, rl.Vector3Zero(), 1.0, color)

	if b.DrawBounds {
		box := bounds.New(bounds.KindAABB, item.Primitive.Min, item.Primitive.Max)
		box.UpdateByModelMatrix(item.Model)
		rl.DrawBoundingBox(rl.BoundingBox{Min: box.WorldMin(), Max: box.WorldMax()}, rl.Yellow)
	}
}

func (b *RaylibBackend) EndPass() {
	if b.in3D {
		rl.EndMode3D()
		b.in3D = false
	}
}

func (b *RaylibBackend) model(p *graphics.Primitive) rl.Model {
	if m, ok := b.models[p]; ok {
		return m
	}
	var mesh rl.Mesh
	switch p.Shape {
	case graphics.ShapeSphere:
		mesh = rl.GenMeshSphere(p.Size.X, 16, 16)
	case graphics.ShapePlane:
		mesh = rl.GenMeshPlane(p.Size.X, p.Size.Z, 1, 1)
	default:
		size := rl.Vector3Subtract(p.Max, p.Min)
		mesh = rl.GenMeshCube(size.X, size.Y, size.Z)
	}
	m := rl.LoadModelFromMesh(mesh)
	b.models[p] = m
	return m
}

// Unload frees every generated model.
func (b *RaylibBackend) Unload() {
	for p, m := range b.models {
		rl.UnloadModel(m)
		delete(b.models, p)
	}
}
