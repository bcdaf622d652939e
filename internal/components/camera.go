package components

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"render3d/internal/engine"
	"render3d/internal/render"
)

// Camera views the scene from its entity. Without a LookAt target it looks
// down the entity's local -Z axis.
type Camera struct {
	engine.BaseComponent
	FOV        float32 // vertical, degrees; full height for orthographic
	Near       float32
	Far        float32
	Aspect     float32 // width / height
	Projection rl.CameraProjection
	Order      int // cameras render in ascending order
	Mask       engine.Layer
	Pipeline   render.Pipeline

	target    rl.Vector3
	hasTarget bool
}

func NewCamera(pipeline render.Pipeline) *Camera {
	return &Camera{
		FOV:        45.0,
		Near:       0.1,
		Far:        1000.0,
		Aspect:     16.0 / 9.0,
		Projection: rl.CameraPerspective,
		Mask:       engine.LayerEverything,
		Pipeline:   pipeline,
	}
}

// LookAt pins the view direction to a world point.
func (c *Camera) LookAt(target rl.Vector3) {
	c.target = target
	c.hasTarget = true
}

// LookAtTarget returns the pinned target, if any.
func (c *Camera) LookAtTarget() (rl.Vector3, bool) {
	return c.target, c.hasTarget
}

// ClearLookAt returns to following the entity's rotation.
func (c *Camera) ClearLookAt() {
	c.hasTarget = false
}

func (c *Camera) Position() rl.Vector3 {
	if g := c.GetEntity(); g != nil {
		return g.WorldPosition()
	}
	return rl.Vector3Zero()
}

// Target is the world point at the center of the view.
func (c *Camera) Target() rl.Vector3 {
	if c.hasTarget {
		return c.target
	}
	if g := c.GetEntity(); g != nil {
		return rl.Vector3Add(g.WorldPosition(), g.Forward())
	}
	return rl.Vector3{Z: -1}
}

func (c *Camera) up() rl.Vector3 {
	if c.hasTarget {
		return rl.Vector3{Y: 1}
	}
	if g := c.GetEntity(); g != nil {
		m := g.WorldMatrix()
		return rl.Vector3Normalize(rl.Vector3{X: m.M4, Y: m.M5, Z: m.M6})
	}
	return rl.Vector3{Y: 1}
}

func (c *Camera) ViewMatrix() rl.Matrix {
	return rl.MatrixLookAt(c.Position(), c.Target(), c.up())
}

func (c *Camera) ProjectionMatrix() rl.Matrix {
	aspect := c.Aspect
	if aspect <= 0 {
		aspect = 1
	}
	if c.Projection == rl.CameraOrthographic {
		halfH := c.FOV / 2
		halfW := halfH * aspect
		return rl.MatrixOrtho(-halfW, halfW, -halfH, halfH, c.Near, c.Far)
	}
	return rl.MatrixPerspective(c.FOV*rl.Deg2rad, aspect, c.Near, c.Far)
}

// ViewProjectionMatrix is view followed by projection.
func (c *Camera) ViewProjectionMatrix() rl.Matrix {
	return rl.MatrixMultiply(c.ViewMatrix(), c.ProjectionMatrix())
}

func (c *Camera) CullingMask() engine.Layer { return c.Mask }

func (c *Camera) Priority() int { return c.Order }

// Render runs the camera's pipeline.
func (c *Camera) Render() {
	if c.Pipeline != nil {
		c.Pipeline.Render(c)
	}
}

// Camera3D converts the camera for raylib's immediate mode.
func (c *Camera) Camera3D() rl.Camera3D {
	return rl.Camera3D{
		Position:   c.Position(),
		Target:     c.Target(),
		Up:         c.up(),
		Fovy:       c.FOV,
		Projection: c.Projection,
	}
}

// ScreenRay returns the world ray through a point in normalized device
// coordinates, x and y in [-1, 1].
func (c *Camera) ScreenRay(ndcX, ndcY float32) (origin, direction rl.Vector3) {
	inv := rl.MatrixInvert(c.ViewProjectionMatrix())
	near := unproject(rl.Vector3{X: ndcX, Y: ndcY, Z: -1}, inv)
	far := unproject(rl.Vector3{X: ndcX, Y: ndcY, Z: 1}, inv)
	return near, rl.Vector3Normalize(rl.Vector3Subtract(far, near))
}

func unproject(ndc rl.Vector3, inv rl.Matrix) rl.Vector3 {
	x, y, z := ndc.X, ndc.Y, ndc.Z
	w := inv.M3*x + inv.M7*y + inv.M11*z + inv.M15
	return rl.Vector3{
		X: (inv.M0*x + inv.M4*y + inv.M8*z + inv.M12) / w,
		Y: (inv.M1*x + inv.M5*y + inv.M9*z + inv.M13) / w,
		Z: (inv.M2*x + inv.M6*y + inv.M10*z + inv.M14) / w,
	}
}
