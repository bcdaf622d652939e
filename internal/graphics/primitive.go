package graphics

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"render3d/internal/bounds"
)

// Shape tells a backend which geometry to generate for a primitive.
type Shape int

const (
	ShapeCube Shape = iota
	ShapeSphere
	ShapePlane
	ShapeCustom
)

func (s Shape) String() string {
	switch s {
	case ShapeCube:
		return "cube"
	case ShapeSphere:
		return "sphere"
	case ShapePlane:
		return "plane"
	}
	return "custom"
}

// Primitive is one drawable piece of a mesh with its local bounds. The
// culling verdict from the most recent frame is stored on it.
type Primitive struct {
	id    uint32
	Shape Shape
	Size  rl.Vector3

	// Local-space bounds used to build the bounding volume.
	Min rl.Vector3
	Max rl.Vector3

	volume     bounds.Volume
	volumeKind bounds.Kind

	// Verdicts of the last cull. Without the precise test Intersect is only
	// ever Intersect or Exclude, since the cheap test cannot prove Include.
	InFrustum bool
	Intersect bounds.IntersectInfo
}

func (p *Primitive) ID() uint32      { return p.id }
func (p *Primitive) SetID(id uint32) { p.id = id }

// NewCube returns a box centered on the origin.
func NewCube(size rl.Vector3) *Primitive {
	half := rl.Vector3Scale(size, 0.5)
	return &Primitive{
		Shape: ShapeCube,
		Size:  size,
		Min:   rl.Vector3Negate(half),
		Max:   half,
	}
}

// NewSphere returns a sphere centered on the origin. Size holds the radius in X.
func NewSphere(radius float32) *Primitive {
	r := rl.Vector3{X: radius, Y: radius, Z: radius}
	return &Primitive{
		Shape: ShapeSphere,
		Size:  rl.Vector3{X: radius},
		Min:   rl.Vector3Negate(r),
		Max:   r,
	}
}

// NewPlane returns a flat XZ quad facing +Y.
func NewPlane(width, depth float32) *Primitive {
	return &Primitive{
		Shape: ShapePlane,
		Size:  rl.Vector3{X: width, Z: depth},
		Min:   rl.Vector3{X: -width / 2, Z: -depth / 2},
		Max:   rl.Vector3{X: width / 2, Z: depth / 2},
	}
}

// NewCustom wraps externally supplied geometry described only by its bounds.
func NewCustom(min, max rl.Vector3) *Primitive {
	return &Primitive{Shape: ShapeCustom, Min: min, Max: max, Size: rl.Vector3Subtract(max, min)}
}

// Volume returns the bounding volume of kind, building it from Min/Max on
// first use. Asking for a different kind replaces the cached volume.
func (p *Primitive) Volume(kind bounds.Kind) bounds.Volume {
	if p.volume == nil || p.volumeKind != kind {
		p.volume = bounds.New(kind, p.Min, p.Max)
		p.volumeKind = kind
	}
	return p.volume
}

// HasVolume reports whether a bounding volume has been built yet.
func (p *Primitive) HasVolume() bool {
	return p.volume != nil
}

// Mesh groups primitives that share a transform.
type Mesh struct {
	id         uint32
	Name       string
	Primitives []*Primitive
}

func NewMesh(name string, prims ...*Primitive) *Mesh {
	return &Mesh{Name: name, Primitives: prims}
}

func (m *Mesh) ID() uint32      { return m.id }
func (m *Mesh) SetID(id uint32) { m.id = id }

// Bounds returns the union of the primitives' local bounds.
func (m *Mesh) Bounds() (rl.Vector3, rl.Vector3) {
	if len(m.Primitives) == 0 {
		return rl.Vector3{}, rl.Vector3{}
	}
	lo, hi := m.Primitives[0].Min, m.Primitives[0].Max
	for _, p := range m.Primitives[1:] {
		lo = rl.Vector3{X: min(lo.X, p.Min.X), Y: min(lo.Y, p.Min.Y), Z: min(lo.Z, p.Min.Z)}
		hi = rl.Vector3{X: max(hi.X, p.Max.X), Y: max(hi.Y, p.Max.Y), Z: max(hi.Z, p.Max.Z)}
	}
	return lo, hi
}
