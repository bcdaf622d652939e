package components

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"

	"render3d/internal/engine"
)

type LightKind int

const (
	LightDirectional LightKind = iota
	LightPoint
	LightSpot
)

func (k LightKind) String() string {
	switch k {
	case LightDirectional:
		return "directional"
	case LightPoint:
		return "point"
	case LightSpot:
		return "spot"
	}
	return "unknown"
}

// Light is one light of any kind. Direction is used by directional and spot
// lights, Range by point and spot lights, Angle (degrees, half cone) by spot
// lights only.
type Light struct {
	engine.BaseComponent
	Kind      LightKind
	Color     rl.Color
	Intensity float32
	Direction rl.Vector3
	Range     float32
	Angle     float32
}

func NewDirectionalLight(dir rl.Vector3) *Light {
	return &Light{
		Kind:      LightDirectional,
		Color:     rl.White,
		Intensity: 1,
		Direction: rl.Vector3Normalize(dir),
	}
}

func NewPointLight(rng float32) *Light {
	return &Light{
		Kind:      LightPoint,
		Color:     rl.White,
		Intensity: 1,
		Range:     rng,
	}
}

func NewSpotLight(dir rl.Vector3, rng, angle float32) *Light {
	return &Light{
		Kind:      LightSpot,
		Color:     rl.White,
		Intensity: 1,
		Direction: rl.Vector3Normalize(dir),
		Range:     rng,
		Angle:     angle,
	}
}

// LightData is a light resolved to world space, ready for a backend.
type LightData struct {
	Kind      LightKind
	Position  rl.Vector3
	Direction rl.Vector3
	Color     [3]float32 // premultiplied by intensity
	Range     float32
	CosCutoff float32
}

func (l *Light) Data() LightData {
	d := LightData{
		Kind:      l.Kind,
		Direction: l.Direction,
		Range:     l.Range,
		Color: [3]float32{
			float32(l.Color.R) / 255 * l.Intensity,
			float32(l.Color.G) / 255 * l.Intensity,
			float32(l.Color.B) / 255 * l.Intensity,
		},
	}
	if g := l.GetEntity(); g != nil {
		d.Position = g.WorldPosition()
		if l.Kind != LightPoint {
			rot := g.WorldMatrix()
			rot.M12, rot.M13, rot.M14 = 0, 0, 0
			d.Direction = rl.Vector3Normalize(rl.Vector3Transform(l.Direction, rot))
		}
	}
	if l.Kind == LightSpot {
		d.CosCutoff = math32.Cos(l.Angle * rl.Deg2rad)
	}
	return d
}

// CollectLights returns every enabled light active in scene, in traversal
// order.
func CollectLights(scene *engine.Scene) []LightData {
	var out []LightData
	if scene == nil {
		return out
	}
	scene.Traverse(func(e *engine.Entity) bool {
		if !e.IsActiveInHierarchy() {
			return true
		}
		for _, l := range engine.GetComponents[*Light](e) {
			if l.Enabled() {
				out = append(out, l.Data())
			}
		}
		return true
	})
	return out
}

// Attenuation returns how much of the light reaches p, in [0, 1].
func (d LightData) Attenuation(p rl.Vector3) float32 {
	if d.Kind == LightDirectional {
		return 1
	}
	dist := rl.Vector3Distance(d.Position, p)
	if d.Range <= 0 || dist >= d.Range {
		return 0
	}
	att := 1 - dist/d.Range
	att *= att
	if d.Kind == LightSpot && dist > 0 {
		toP := rl.Vector3Scale(rl.Vector3Subtract(p, d.Position), 1/dist)
		if rl.Vector3DotProduct(toP, d.Direction) < d.CosCutoff {
			return 0
		}
	}
	return att
}

// Shade applies Lambert lighting from lights to base at point p with
// surface normal n, plus ambient.
func Shade(base rl.Color, p, n rl.Vector3, ambient float32, lights []LightData) rl.Color {
	n = rl.Vector3Normalize(n)
	r, g, b := ambient, ambient, ambient
	for _, l := range lights {
		var toLight rl.Vector3
		if l.Kind == LightDirectional {
			toLight = rl.Vector3Negate(l.Direction)
		} else {
			toLight = rl.Vector3Normalize(rl.Vector3Subtract(l.Position, p))
		}
		ndl := rl.Vector3DotProduct(n, toLight)
		if ndl <= 0 {
			continue
		}
		k := ndl * l.Attenuation(p)
		r += l.Color[0] * k
		g += l.Color[1] * k
		b += l.Color[2] * k
	}
	return rl.Color{
		R: scaleChannel(base.R, r),
		G: scaleChannel(base.G, g),
		B: scaleChannel(base.B, b),
		A: base.A,
	}
}

func scaleChannel(c uint8, f float32) uint8 {
	return uint8(math32.Min(float32(c)*f, 255))
}
