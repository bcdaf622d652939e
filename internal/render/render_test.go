package render

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"render3d/internal/bounds"
	"render3d/internal/engine"
	"render3d/internal/graphics"
)

type testCamera struct {
	engine.BaseComponent
	pipeline Pipeline
	mask     engine.Layer
}

func (c *testCamera) ViewMatrix() rl.Matrix {
	return rl.MatrixLookAt(c.Position(), rl.NewVector3(0, 0, 0), rl.NewVector3(0, 1, 0))
}

func (c *testCamera) ProjectionMatrix() rl.Matrix {
	return rl.MatrixPerspective(45*rl.Deg2rad, 1, 0.1, 100)
}

func (c *testCamera) ViewProjectionMatrix() rl.Matrix {
	return rl.MatrixMultiply(c.ViewMatrix(), c.ProjectionMatrix())
}

func (c *testCamera) Position() rl.Vector3      { return c.GetEntity().WorldPosition() }
func (c *testCamera) CullingMask() engine.Layer { return c.mask }
func (c *testCamera) Priority() int             { return 0 }
func (c *testCamera) Render()                   { c.pipeline.Render(c) }

type testMesh struct {
	engine.BaseComponent
	prim *graphics.Primitive
	mat  *graphics.Material
}

func (m *testMesh) Render(cam engine.Camera, sink engine.RenderSink) {
	sink.PushPrimitive(m, m.prim, m.mat)
}

type fixture struct {
	eng      *engine.Engine
	scene    *engine.Scene
	backend  *Recorder
	pipeline *CullRenderPipeline
}

func newFixture(opts ...Option) *fixture {
	f := &fixture{eng: engine.New(), backend: &Recorder{}}
	f.scene = f.eng.NewScene("test")
	f.pipeline = NewCullRenderPipeline(f.backend, opts...)
	cam := f.scene.CreateRootEntity("camera")
	cam.Transform.Position = rl.NewVector3(0, 0, 10)
	cam.AddComponent(&testCamera{pipeline: f.pipeline, mask: engine.LayerEverything})
	return f
}

func (f *fixture) addMesh(name string, pos rl.Vector3, mat *graphics.Material) (*engine.Entity, *testMesh) {
	e := f.scene.CreateRootEntity(name)
	e.Transform.Position = pos
	if mat == nil {
		mat = f.eng.Materials.Add(graphics.NewMaterial(name, rl.White))
	}
	m := &testMesh{prim: graphics.NewCube(rl.NewVector3(1, 1, 1)), mat: mat}
	e.AddComponent(m)
	return e, m
}

func drawnNames(r *Recorder) []string {
	names := make([]string, 0, len(r.Calls))
	for _, c := range r.Calls {
		names = append(names, c.Item.Component.GetEntity().Name)
	}
	return names
}

func TestCullDropsPrimitivesOutsideFrustum(t *testing.T) {
	f := newFixture()
	_, visible := f.addMesh("visible", rl.NewVector3(0, 0, 0), nil)
	_, hidden := f.addMesh("behind", rl.NewVector3(0, 0, 1010), nil)

	f.eng.Update(0.016)

	assert.Equal(t, []string{"visible"}, drawnNames(f.backend))
	assert.True(t, visible.prim.InFrustum)
	assert.False(t, hidden.prim.InFrustum)
	assert.Equal(t, Stats{Submitted: 2, Culled: 1, Drawn: 1}, f.pipeline.Stats())
}

func TestCullBuildsVolumeLazilyAndTracksMovement(t *testing.T) {
	f := newFixture()
	e, m := f.addMesh("mover", rl.NewVector3(0, 0, 0), nil)
	require.False(t, m.prim.HasVolume())

	f.eng.Update(0.016)
	require.True(t, m.prim.HasVolume())
	assert.True(t, m.prim.InFrustum)

	e.Transform.Position = rl.NewVector3(0, 0, 1010)
	f.backend.Reset()
	f.eng.Update(0.016)
	assert.False(t, m.prim.InFrustum, "volume must follow the new world matrix")
	assert.Empty(t, f.backend.Calls)
}

func TestCullDisabledDrawsEverything(t *testing.T) {
	f := newFixture(WithCulling(false))
	f.addMesh("visible", rl.NewVector3(0, 0, 0), nil)
	f.addMesh("behind", rl.NewVector3(0, 0, 1010), nil)

	f.eng.Update(0.016)
	assert.Len(t, f.backend.Calls, 2)
	assert.False(t, f.pipeline.Culling())
}

func TestPreciseCullingRecordsIntersectInfo(t *testing.T) {
	f := newFixture(WithPrecise(true), WithVolume(bounds.KindAABB))
	_, inside := f.addMesh("inside", rl.NewVector3(0, 0, 0), nil)
	_, edge := f.addMesh("edge", rl.NewVector3(4.2, 0, 0), nil)
	_, out := f.addMesh("out", rl.NewVector3(0, 0, -500), nil)

	f.eng.Update(0.016)

	assert.Equal(t, bounds.Include, inside.prim.Intersect)
	assert.Equal(t, bounds.Intersect, edge.prim.Intersect)
	assert.Equal(t, bounds.Exclude, out.prim.Intersect)
	assert.ElementsMatch(t, []string{"inside", "edge"}, drawnNames(f.backend))
}

func TestCheapCullingOverwritesPreciseVerdict(t *testing.T) {
	f := newFixture(WithPrecise(true))
	_, inside := f.addMesh("inside", rl.NewVector3(0, 0, 0), nil)
	_, out := f.addMesh("out", rl.NewVector3(0, 0, -500), nil)
	f.eng.Update(0.016)
	require.Equal(t, bounds.Include, inside.prim.Intersect)

	f.pipeline.SetPrecise(false)
	f.eng.Update(0.016)
	assert.Equal(t, bounds.Intersect, inside.prim.Intersect)
	assert.True(t, inside.prim.InFrustum)
	assert.Equal(t, bounds.Exclude, out.prim.Intersect)
	assert.False(t, out.prim.InFrustum)
}

func TestOpaqueSortsByMaterialThenFrontToBack(t *testing.T) {
	f := newFixture(WithCulling(false))
	shared := f.eng.Materials.Add(graphics.NewMaterial("shared", rl.White))
	background := f.eng.Materials.Add(graphics.NewMaterial("sky", rl.Blue))
	background.Queue = graphics.QueueBackground

	f.addMesh("far", rl.NewVector3(0, 0, -20), shared)
	f.addMesh("near", rl.NewVector3(0, 0, 5), shared)
	f.addMesh("sky", rl.NewVector3(0, 0, -50), background)

	f.eng.Update(0.016)
	assert.Equal(t, []string{"sky", "near", "far"}, drawnNames(f.backend))
}

func TestTransparentDrawsAfterOpaqueBackToFront(t *testing.T) {
	f := newFixture(WithCulling(false))
	glass := f.eng.Materials.Add(graphics.NewTransparentMaterial("glass", rl.White))

	f.addMesh("glass-near", rl.NewVector3(0, 0, 5), glass)
	f.addMesh("solid", rl.NewVector3(0, 0, 0), nil)
	f.addMesh("glass-far", rl.NewVector3(0, 0, -10), glass)

	f.eng.Update(0.016)
	assert.Equal(t, []string{"solid", "glass-far", "glass-near"}, drawnNames(f.backend))

	opaque, transparent := f.pipeline.Queues()
	assert.Equal(t, 1, opaque.Len())
	assert.Equal(t, 2, transparent.Len())
}

func TestPassesFilterByLayerInPriorityOrder(t *testing.T) {
	overlay := &Pass{Name: "overlay", Priority: 10, Mask: engine.LayerUI}
	world := &Pass{Name: "world", Priority: 0, Mask: engine.LayerDefault}
	f := newFixture(WithCulling(false), WithPasses(overlay, world))

	f.addMesh("crate", rl.NewVector3(0, 0, 0), nil)
	hud, _ := f.addMesh("hud", rl.NewVector3(0, 0, 1), nil)
	hud.Layer = engine.LayerUI

	f.eng.Update(0.016)

	assert.Equal(t, []string{"world", "overlay"}, f.backend.Passes)
	require.Len(t, f.backend.Calls, 2)
	assert.Equal(t, "world", f.backend.Calls[0].Pass)
	assert.Equal(t, "crate", f.backend.Calls[0].Item.Component.GetEntity().Name)
	assert.Equal(t, "overlay", f.backend.Calls[1].Pass)
	assert.Equal(t, "hud", f.backend.Calls[1].Item.Component.GetEntity().Name)
}

func TestRenderWithoutCameraIsNoop(t *testing.T) {
	backend := &Recorder{}
	p := NewCullRenderPipeline(backend)
	assert.NotPanics(t, func() { p.Render(nil) })
	assert.Empty(t, backend.Calls)
	assert.Empty(t, backend.Passes)
}

func TestBasicPipelineDoesNotCull(t *testing.T) {
	eng := engine.New()
	scene := eng.NewScene("basic")
	backend := &Recorder{}
	p := NewBasicRenderPipeline(backend)

	cam := scene.CreateRootEntity("camera")
	cam.Transform.Position = rl.NewVector3(0, 0, 10)
	cam.AddComponent(&testCamera{pipeline: p, mask: engine.LayerEverything})

	far := scene.CreateRootEntity("behind")
	far.Transform.Position = rl.NewVector3(0, 0, 1010)
	far.AddComponent(&testMesh{prim: graphics.NewCube(rl.NewVector3(1, 1, 1))})

	eng.Update(0.016)
	assert.Len(t, backend.Calls, 1)
}

func TestPipelineLogsStatsAtDebug(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	f := newFixture(WithLogger(zap.New(core)))
	f.addMesh("visible", rl.NewVector3(0, 0, 0), nil)

	f.eng.Update(0.016)

	entries := logs.FilterMessage("camera rendered").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(1), entries[0].ContextMap()["drawn"])
}
