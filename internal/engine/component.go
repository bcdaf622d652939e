package engine

import rl "github.com/gen2brain/raylib-go/raylib"

// Component is anything that can be attached to an Entity. Embed
// BaseComponent to satisfy it, then implement whichever capability
// interfaces below the component needs.
type Component interface {
	GetEntity() *Entity
	SetEntity(e *Entity)
	Enabled() bool
	SetEnabled(enabled bool)
	IsActive() bool
	Destroy()
	base() *BaseComponent
}

// Starter runs once, right before the component's first update.
type Starter interface {
	OnStart()
}

// Updater runs every frame in the update phase.
type Updater interface {
	OnUpdate(deltaTime float32)
}

// LateUpdater runs after every update, animation and renderer update.
type LateUpdater interface {
	OnLateUpdate()
}

// PreRenderer runs before each camera renders.
type PreRenderer interface {
	OnPreRender()
}

// PostRenderer runs after each camera renders.
type PostRenderer interface {
	OnPostRender()
}

// Destroyer runs at the end of the frame the component was destroyed in.
type Destroyer interface {
	OnDestroy()
}

// Enabler is notified when the component becomes active.
type Enabler interface {
	OnEnable()
}

// Disabler is notified when the component stops being active.
type Disabler interface {
	OnDisable()
}

// AnimationUpdater is driven in the animation phase instead of the script
// update phase.
type AnimationUpdater interface {
	UpdateAnimation(deltaTime float32)
}

// Renderer submits primitives for a camera. Renderers that also implement
// Starter or Updater are driven in the renderer update phase.
type Renderer interface {
	Component
	Render(cam Camera, sink RenderSink)
}

// Camera is what the frame loop needs from a camera component.
type Camera interface {
	Component
	ViewMatrix() rl.Matrix
	ProjectionMatrix() rl.Matrix
	ViewProjectionMatrix() rl.Matrix
	Position() rl.Vector3
	CullingMask() Layer
	Priority() int
	Render()
}

// BaseComponent provides the bookkeeping every component needs. The zero
// value is enabled and unregistered.
type BaseComponent struct {
	entity   *Entity
	self     Component
	disabled bool
	started  bool

	// Registry slots hold index+1 so the zero value means "not registered".
	slots  [categoryCount]int
	stamps [categoryCount]uint64

	destroyed bool
}

func (b *BaseComponent) base() *BaseComponent { return b }

func (b *BaseComponent) GetEntity() *Entity { return b.entity }

func (b *BaseComponent) SetEntity(e *Entity) { b.entity = e }

func (b *BaseComponent) Enabled() bool { return !b.disabled }

// SetEnabled toggles the component. A disabled component stays registered
// but is skipped by every dispatch.
func (b *BaseComponent) SetEnabled(enabled bool) {
	if b.disabled == !enabled {
		return
	}
	b.disabled = !enabled
	if b.self == nil || b.entity == nil || !b.entity.IsActiveInHierarchy() {
		return
	}
	if enabled {
		if en, ok := b.self.(Enabler); ok {
			en.OnEnable()
		}
	} else if dis, ok := b.self.(Disabler); ok {
		dis.OnDisable()
	}
}

// IsActive reports whether the component is enabled and its entity is
// active in the hierarchy.
func (b *BaseComponent) IsActive() bool {
	return !b.disabled && b.entity != nil && b.entity.IsActiveInHierarchy()
}

// Started reports whether OnStart has been dispatched.
func (b *BaseComponent) Started() bool { return b.started }

// IsDestroyed reports whether Destroy has been called.
func (b *BaseComponent) IsDestroyed() bool { return b.destroyed }

// RegistryIndex returns the component's position in the registry of the
// given category, or -1 when it is not registered there.
func (b *BaseComponent) RegistryIndex(c Category) int {
	return b.slots[c] - 1
}

// Destroy detaches the component from its entity. OnDestroy runs at the end
// of the frame, or immediately when the entity is not in a running scene.
func (b *BaseComponent) Destroy() {
	if b.destroyed || b.self == nil {
		return
	}
	if b.entity != nil {
		b.entity.removeComponent(b.self)
	} else {
		b.destroyed = true
	}
}
