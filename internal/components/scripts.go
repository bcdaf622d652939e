package components

import "render3d/internal/engine"

// RegisterScripts adds the built-in scripts to reg.
func RegisterScripts(reg *engine.ScriptRegistry) {
	reg.RegisterWithApplier("CubeAnimator", cubeAnimatorFactory, cubeAnimatorSerializer, cubeAnimatorApplier)
	reg.RegisterWithApplier("Rotator", rotatorFactory, rotatorSerializer, rotatorApplier)
	reg.Register("CollisionDetection", collisionDetectionFactory, collisionDetectionSerializer)
}

func floatProp(props map[string]any, key string, fallback float32) float32 {
	switch v := props[key].(type) {
	case float64:
		return float32(v)
	case float32:
		return v
	case int:
		return float32(v)
	case int64:
		return float32(v)
	}
	return fallback
}

func cubeAnimatorFactory(props map[string]any) engine.Component {
	return &CubeAnimator{
		RotationSpeed:  floatProp(props, "rotationSpeed", 45),
		MovementRadius: floatProp(props, "movementRadius", 0),
		MovementSpeed:  floatProp(props, "movementSpeed", 1),
		Phase:          floatProp(props, "phase", 0),
	}
}

func cubeAnimatorSerializer(c engine.Component) map[string]any {
	ca, ok := c.(*CubeAnimator)
	if !ok {
		return nil
	}
	return map[string]any{
		"rotationSpeed":  ca.RotationSpeed,
		"movementRadius": ca.MovementRadius,
		"movementSpeed":  ca.MovementSpeed,
		"phase":          ca.Phase,
	}
}

func cubeAnimatorApplier(c engine.Component, prop string, value any) bool {
	ca, ok := c.(*CubeAnimator)
	if !ok {
		return false
	}
	v := floatProp(map[string]any{prop: value}, prop, 0)
	switch prop {
	case "rotationSpeed":
		ca.RotationSpeed = v
	case "movementRadius":
		ca.MovementRadius = v
	case "movementSpeed":
		ca.MovementSpeed = v
	case "phase":
		ca.Phase = v
	default:
		return false
	}
	return true
}

// Rotator spins its entity around the Y axis.
type Rotator struct {
	engine.BaseComponent
	Speed float32
}

func (r *Rotator) OnUpdate(deltaTime float32) {
	g := r.GetEntity()
	if g == nil {
		return
	}
	g.Transform.Rotation.Y += r.Speed * deltaTime
	if g.Transform.Rotation.Y > 360 {
		g.Transform.Rotation.Y -= 360
	}
}

func rotatorFactory(props map[string]any) engine.Component {
	return &Rotator{Speed: floatProp(props, "speed", 90)}
}

func rotatorSerializer(c engine.Component) map[string]any {
	r, ok := c.(*Rotator)
	if !ok {
		return nil
	}
	return map[string]any{
		"speed": r.Speed,
	}
}

func rotatorApplier(c engine.Component, prop string, value any) bool {
	r, ok := c.(*Rotator)
	if !ok || prop != "speed" {
		return false
	}
	r.Speed = floatProp(map[string]any{prop: value}, prop, r.Speed)
	return true
}
