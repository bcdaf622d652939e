package engine

import (
	"slices"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type Transform struct {
	Position rl.Vector3
	Rotation rl.Vector3 // Euler angles in degrees
	Scale    rl.Vector3
}

func NewTransform() Transform {
	return Transform{Scale: rl.Vector3{X: 1, Y: 1, Z: 1}}
}

// Matrix returns scale, then rotation about X, Y and Z, then translation.
func (t Transform) Matrix() rl.Matrix {
	scale := rl.MatrixScale(t.Scale.X, t.Scale.Y, t.Scale.Z)
	rot := rl.MatrixMultiply(rl.MatrixMultiply(
		rl.MatrixRotateX(t.Rotation.X*rl.Deg2rad),
		rl.MatrixRotateY(t.Rotation.Y*rl.Deg2rad)),
		rl.MatrixRotateZ(t.Rotation.Z*rl.Deg2rad))
	trans := rl.MatrixTranslate(t.Position.X, t.Position.Y, t.Position.Z)
	return rl.MatrixMultiply(rl.MatrixMultiply(scale, rot), trans)
}

// Entity is a node in a scene tree. It owns its components and children.
// Components only receive callbacks while the entity is active in the
// hierarchy: its own flag and every ancestor's flag are set and the root
// belongs to the engine's active scene.
type Entity struct {
	UID       uint64 // assigned when the entity first joins a scene, 0 before
	Name      string
	Tags      []string
	Layer     Layer
	Transform Transform

	parent     *Entity
	children   []*Entity
	components []Component
	scene      *Scene
	isRoot     bool

	active            bool
	activeInHierarchy bool
	destroyed         bool
}

func NewEntity(name string) *Entity {
	return &Entity{
		Name:       name,
		Layer:      LayerDefault,
		Transform:  NewTransform(),
		active:     true,
		components: make([]Component, 0),
		children:   make([]*Entity, 0),
	}
}

func (e *Entity) Scene() *Scene { return e.scene }

func (e *Entity) Parent() *Entity { return e.parent }

func (e *Entity) Children() []*Entity { return e.children }

func (e *Entity) Components() []Component { return e.components }

func (e *Entity) IsDestroyed() bool { return e.destroyed }

func (e *Entity) HasTag(tag string) bool {
	return slices.Contains(e.Tags, tag)
}

// IsActive returns the entity's own flag, ignoring its ancestors.
func (e *Entity) IsActive() bool { return e.active }

// IsActiveInHierarchy reports whether the entity and all its ancestors are
// active and attached to the active scene.
func (e *Entity) IsActiveInHierarchy() bool { return e.activeInHierarchy }

// SetActive changes the entity's own flag. Components of the entity and its
// descendants are registered or unregistered as their hierarchy state flips.
func (e *Entity) SetActive(active bool) {
	if e.active == active {
		return
	}
	e.active = active
	e.refreshActive()
}

func (e *Entity) computeActive() bool {
	if !e.active || e.destroyed {
		return false
	}
	if e.parent != nil {
		return e.parent.activeInHierarchy
	}
	return e.isRoot && e.scene != nil && e.scene.active
}

func (e *Entity) refreshActive() {
	want := e.computeActive()
	if want != e.activeInHierarchy {
		e.activeInHierarchy = want
		for _, c := range slices.Clone(e.components) {
			if want {
				e.activateComponent(c)
			} else {
				e.deactivateComponent(c)
			}
		}
	}
	for _, child := range slices.Clone(e.children) {
		child.refreshActive()
	}
}

func (e *Entity) manager() *ComponentsManager {
	if e.scene == nil || e.scene.engine == nil {
		return nil
	}
	return e.scene.engine.components
}

func (e *Entity) activateComponent(c Component) {
	if m := e.manager(); m != nil {
		m.Register(c)
	}
	if cam, ok := c.(Camera); ok {
		e.scene.addCamera(cam)
	}
	if c.Enabled() {
		if en, ok := c.(Enabler); ok {
			en.OnEnable()
		}
	}
}

func (e *Entity) deactivateComponent(c Component) {
	if c.Enabled() {
		if dis, ok := c.(Disabler); ok {
			dis.OnDisable()
		}
	}
	if m := e.manager(); m != nil {
		m.Unregister(c)
	}
	if cam, ok := c.(Camera); ok && e.scene != nil {
		e.scene.removeCamera(cam)
	}
}

// AddComponent attaches c and returns it. Attaching a component that
// already belongs to another entity panics.
func (e *Entity) AddComponent(c Component) Component {
	b := c.base()
	if b.entity != nil && b.entity != e {
		panic("engine: component already attached to " + b.entity.Name)
	}
	if b.destroyed {
		panic("engine: component was destroyed")
	}
	c.SetEntity(e)
	b.self = c
	e.components = append(e.components, c)
	if e.activeInHierarchy {
		e.activateComponent(c)
	}
	return c
}

func (e *Entity) removeComponent(c Component) {
	i := slices.Index(e.components, c)
	if i < 0 {
		return
	}
	e.components = slices.Delete(e.components, i, i+1)
	if e.activeInHierarchy {
		e.deactivateComponent(c)
	}
	c.base().destroyed = true
	if m := e.manager(); m != nil {
		m.AddDestroyComponent(c)
	} else if d, ok := c.(Destroyer); ok {
		d.OnDestroy()
	}
}

// GetComponent returns the first component of type T, or the zero value.
func GetComponent[T any](e *Entity) T {
	var zero T
	for _, c := range e.components {
		if typed, ok := c.(T); ok {
			return typed
		}
	}
	return zero
}

// GetComponents returns every component of type T.
func GetComponents[T any](e *Entity) []T {
	var out []T
	for _, c := range e.components {
		if typed, ok := c.(T); ok {
			out = append(out, typed)
		}
	}
	return out
}

// AddChild reparents child under e, detaching it from its previous parent
// or scene root list.
func (e *Entity) AddChild(child *Entity) {
	if child == e || child.parent == e {
		return
	}
	for p := e; p != nil; p = p.parent {
		if p == child {
			panic("engine: cannot parent an entity under its own descendant")
		}
	}
	switch {
	case child.parent != nil:
		child.parent.RemoveChild(child)
	case child.isRoot && child.scene != nil:
		child.scene.RemoveRootEntity(child)
	}
	child.parent = e
	e.children = append(e.children, child)
	child.setScene(e.scene)
	child.refreshActive()
}

// RemoveChild detaches child. The child keeps its own subtree but leaves
// the scene.
func (e *Entity) RemoveChild(child *Entity) {
	i := slices.Index(e.children, child)
	if i < 0 {
		return
	}
	e.children = slices.Delete(e.children, i, i+1)
	child.parent = nil
	child.refreshActive()
	child.setScene(nil)
}

func (e *Entity) setScene(s *Scene) {
	if e.scene != s {
		if e.scene != nil {
			e.scene.unindex(e)
		}
		e.scene = s
		if s != nil {
			s.index(e)
		}
	}
	for _, child := range e.children {
		child.setScene(s)
	}
}

// Destroy destroys the descendants, then the components in the order they
// were attached, then detaches the entity.
func (e *Entity) Destroy() {
	if e.destroyed {
		return
	}
	for len(e.children) > 0 {
		e.children[len(e.children)-1].Destroy()
	}
	for _, c := range slices.Clone(e.components) {
		c.Destroy()
	}
	switch {
	case e.parent != nil:
		e.parent.RemoveChild(e)
	case e.isRoot && e.scene != nil:
		e.scene.RemoveRootEntity(e)
	}
	e.destroyed = true
}

// LocalMatrix is the entity's transform relative to its parent.
func (e *Entity) LocalMatrix() rl.Matrix {
	return e.Transform.Matrix()
}

// WorldMatrix is the local matrix followed by every ancestor's.
func (e *Entity) WorldMatrix() rl.Matrix {
	m := e.Transform.Matrix()
	for p := e.parent; p != nil; p = p.parent {
		m = rl.MatrixMultiply(m, p.Transform.Matrix())
	}
	return m
}

func (e *Entity) InverseWorldMatrix() rl.Matrix {
	return rl.MatrixInvert(e.WorldMatrix())
}

func (e *Entity) WorldPosition() rl.Vector3 {
	m := e.WorldMatrix()
	return rl.Vector3{X: m.M12, Y: m.M13, Z: m.M14}
}

func (e *Entity) WorldScale() rl.Vector3 {
	if e.parent == nil {
		return e.Transform.Scale
	}
	ps := e.parent.WorldScale()
	return rl.Vector3{
		X: ps.X * e.Transform.Scale.X,
		Y: ps.Y * e.Transform.Scale.Y,
		Z: ps.Z * e.Transform.Scale.Z,
	}
}

// Forward is the entity's world -Z axis.
func (e *Entity) Forward() rl.Vector3 {
	m := e.WorldMatrix()
	return rl.Vector3Normalize(rl.Vector3{X: -m.M8, Y: -m.M9, Z: -m.M10})
}
