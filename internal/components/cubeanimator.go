package components

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"

	"render3d/internal/engine"
)

// CubeAnimator moves its entity on a looping orbit around StartPosition and
// spins it about Y. It runs in the animation phase.
type CubeAnimator struct {
	engine.BaseComponent
	StartPosition   rl.Vector3
	RotationSpeed   float32 // degrees per second
	CurrentRotation float32
	MovementRadius  float32
	MovementSpeed   float32
	Phase           float32
	time            float32
	anchored        bool
}

func NewCubeAnimator(startPos rl.Vector3, rotSpeed, moveRadius, moveSpeed, phase float32) *CubeAnimator {
	return &CubeAnimator{
		StartPosition:  startPos,
		RotationSpeed:  rotSpeed,
		MovementRadius: moveRadius,
		MovementSpeed:  moveSpeed,
		Phase:          phase,
	}
}

// UpdateAnimation implements engine.AnimationUpdater.
func (c *CubeAnimator) UpdateAnimation(deltaTime float32) {
	g := c.GetEntity()
	if g == nil {
		return
	}

	// A zero start position means "wherever the entity was placed".
	if !c.anchored {
		if c.StartPosition == (rl.Vector3{}) {
			c.StartPosition = g.Transform.Position
		}
		c.anchored = true
	}

	c.time += deltaTime

	t := c.time*c.MovementSpeed + c.Phase
	offset := rl.Vector3{
		X: math32.Cos(t) * c.MovementRadius,
		Y: math32.Sin(t*2) * 1.5 * min(c.MovementRadius, 1),
		Z: math32.Sin(t) * c.MovementRadius,
	}
	g.Transform.Position = rl.Vector3Add(c.StartPosition, offset)

	c.CurrentRotation = math32.Mod(c.CurrentRotation+c.RotationSpeed*deltaTime, 360)
	g.Transform.Rotation.Y = c.CurrentRotation
}
