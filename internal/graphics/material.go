package graphics

import (
	"github.com/cespare/xxhash/v2"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Render queue priorities. Lower values are drawn first.
const (
	QueueBackground  = 1000
	QueueOpaque      = 2000
	QueueAlphaTest   = 2450
	QueueTransparent = 3000
	QueueOverlay     = 4000
)

// DefaultShader is the shader name used when a material does not set one.
const DefaultShader = "lit"

// Material is plain render state. Behaviour lives in free functions so
// backends can interpret the fields however they like.
type Material struct {
	id          uint32
	Name        string
	Shader      string
	Color       rl.Color
	Transparent bool
	Queue       int

	shaderKey  uint64
	keyedFrom  string
	keyIsValid bool
}

func NewMaterial(name string, color rl.Color) *Material {
	return &Material{
		Name:   name,
		Shader: DefaultShader,
		Color:  color,
		Queue:  QueueOpaque,
	}
}

// NewTransparentMaterial returns a blended material in the transparent queue.
func NewTransparentMaterial(name string, color rl.Color) *Material {
	m := NewMaterial(name, color)
	m.Transparent = true
	m.Queue = QueueTransparent
	return m
}

func (m *Material) ID() uint32      { return m.id }
func (m *Material) SetID(id uint32) { m.id = id }

// ShaderKey hashes the shader name so render queues can group draws by
// program without string compares. The hash is recomputed when Shader changes.
func (m *Material) ShaderKey() uint64 {
	if !m.keyIsValid || m.keyedFrom != m.Shader {
		m.shaderKey = xxhash.Sum64String(m.Shader)
		m.keyedFrom = m.Shader
		m.keyIsValid = true
	}
	return m.shaderKey
}

// IsBlended reports whether m must be drawn back-to-front.
func IsBlended(m *Material) bool {
	return m != nil && (m.Transparent || m.Color.A < 255)
}
