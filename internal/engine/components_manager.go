package engine

import (
	"fmt"

	"render3d/internal/graphics"
)

// Category names one of the registries kept by ComponentsManager.
type Category int

const (
	CategoryUpdate Category = iota
	CategoryLateUpdate
	CategoryPreRender
	CategoryPostRender
	CategoryAnimation
	CategoryRenderer
	CategoryRendererUpdate
	categoryCount
)

var categoryNames = [categoryCount]string{
	"update", "late-update", "pre-render", "post-render",
	"animation", "renderer", "renderer-update",
}

func (c Category) String() string {
	if c < 0 || c >= categoryCount {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return categoryNames[c]
}

// RenderSink receives primitives from renderers during a camera pass.
type RenderSink interface {
	PushPrimitive(r Renderer, p *graphics.Primitive, m *graphics.Material)
}

// ComponentsManager keeps one DisorderedArray per callback category and
// drives them in the frame loop. Every dispatch walks its registry from the
// tail to the head, so a component that removes itself or a component
// already visited never causes a skip. Components added during a dispatch
// are first called on the next dispatch of that category.
type ComponentsManager struct {
	lists        [categoryCount]DisorderedArray[Component]
	destroyQueue []Component
	pass         uint64
}

func NewComponentsManager() *ComponentsManager {
	return &ComponentsManager{}
}

func (m *ComponentsManager) add(cat Category, c Component) {
	b := c.base()
	if b.slots[cat] != 0 {
		panic(fmt.Sprintf("engine: %T already registered for %s", c, cat))
	}
	list := &m.lists[cat]
	b.slots[cat] = list.Len() + 1
	b.stamps[cat] = m.pass
	list.Add(c)
}

func (m *ComponentsManager) remove(cat Category, c Component) {
	b := c.base()
	i := b.slots[cat] - 1
	if i < 0 {
		return
	}
	if moved, ok := m.lists[cat].DeleteByIndex(i); ok {
		moved.base().slots[cat] = i + 1
	}
	b.slots[cat] = 0
}

func (m *ComponentsManager) AddOnUpdateScript(c Component)    { m.add(CategoryUpdate, c) }
func (m *ComponentsManager) RemoveOnUpdateScript(c Component) { m.remove(CategoryUpdate, c) }

func (m *ComponentsManager) AddOnLateUpdateScript(c Component)    { m.add(CategoryLateUpdate, c) }
func (m *ComponentsManager) RemoveOnLateUpdateScript(c Component) { m.remove(CategoryLateUpdate, c) }

func (m *ComponentsManager) AddOnPreRenderScript(c Component)    { m.add(CategoryPreRender, c) }
func (m *ComponentsManager) RemoveOnPreRenderScript(c Component) { m.remove(CategoryPreRender, c) }

func (m *ComponentsManager) AddOnPostRenderScript(c Component)    { m.add(CategoryPostRender, c) }
func (m *ComponentsManager) RemoveOnPostRenderScript(c Component) { m.remove(CategoryPostRender, c) }

func (m *ComponentsManager) AddOnUpdateAnimations(c Component)    { m.add(CategoryAnimation, c) }
func (m *ComponentsManager) RemoveOnUpdateAnimations(c Component) { m.remove(CategoryAnimation, c) }

func (m *ComponentsManager) AddRenderer(r Renderer)    { m.add(CategoryRenderer, r) }
func (m *ComponentsManager) RemoveRenderer(r Renderer) { m.remove(CategoryRenderer, r) }

func (m *ComponentsManager) AddOnUpdateRenderers(r Renderer)    { m.add(CategoryRendererUpdate, r) }
func (m *ComponentsManager) RemoveOnUpdateRenderers(r Renderer) { m.remove(CategoryRendererUpdate, r) }

// AddDestroyComponent queues c for OnDestroy at the end of the frame.
func (m *ComponentsManager) AddDestroyComponent(c Component) {
	m.destroyQueue = append(m.destroyQueue, c)
}

// Len returns the number of components registered for cat.
func (m *ComponentsManager) Len(cat Category) int {
	return m.lists[cat].Len()
}

// Registered returns the live registry for cat. Do not keep the slice.
func (m *ComponentsManager) Registered(cat Category) []Component {
	return m.lists[cat].Elements()
}

// PendingDestroy returns the number of queued OnDestroy calls.
func (m *ComponentsManager) PendingDestroy() int {
	return len(m.destroyQueue)
}

// categoriesOf lists the registries c belongs in, derived from the
// capability interfaces it implements.
func categoriesOf(c Component) []Category {
	cats := make([]Category, 0, 4)
	_, starts := c.(Starter)
	_, updates := c.(Updater)
	if _, ok := c.(Renderer); ok {
		cats = append(cats, CategoryRenderer)
		if starts || updates {
			cats = append(cats, CategoryRendererUpdate)
		}
	} else {
		if _, ok := c.(AnimationUpdater); ok {
			cats = append(cats, CategoryAnimation)
		}
		if starts || updates {
			cats = append(cats, CategoryUpdate)
		}
	}
	if _, ok := c.(LateUpdater); ok {
		cats = append(cats, CategoryLateUpdate)
	}
	if _, ok := c.(PreRenderer); ok {
		cats = append(cats, CategoryPreRender)
	}
	if _, ok := c.(PostRenderer); ok {
		cats = append(cats, CategoryPostRender)
	}
	return cats
}

// Register adds c to every registry its capabilities call for.
func (m *ComponentsManager) Register(c Component) {
	for _, cat := range categoriesOf(c) {
		m.add(cat, c)
	}
}

// Unregister removes c from every registry it is in. It is a no-op for a
// component that is not registered.
func (m *ComponentsManager) Unregister(c Component) {
	for cat := Category(0); cat < categoryCount; cat++ {
		m.remove(cat, c)
	}
}

// dispatch calls fn for each enabled component of cat, tail to head.
func (m *ComponentsManager) dispatch(cat Category, fn func(c Component)) {
	m.pass++
	list := &m.lists[cat]
	for i := list.Len() - 1; i >= 0; i-- {
		// Elements above i may have been removed by the previous callback.
		if i >= list.Len() {
			continue
		}
		c := list.Get(i)
		b := c.base()
		// An element moved down from the visited tail is skipped.
		if b.stamps[cat] == m.pass {
			continue
		}
		b.stamps[cat] = m.pass
		if b.disabled {
			continue
		}
		fn(c)
	}
}

func (m *ComponentsManager) startThenUpdate(cat Category, dt float32) {
	m.dispatch(cat, func(c Component) {
		b := c.base()
		if !b.started {
			b.started = true
			if s, ok := c.(Starter); ok {
				s.OnStart()
				if b.slots[cat] == 0 || b.disabled {
					return
				}
			}
		}
		if u, ok := c.(Updater); ok {
			u.OnUpdate(dt)
		}
	})
}

// CallScriptOnUpdate starts components on their first frame and updates them.
func (m *ComponentsManager) CallScriptOnUpdate(dt float32) {
	m.startThenUpdate(CategoryUpdate, dt)
}

func (m *ComponentsManager) CallAnimationUpdate(dt float32) {
	m.dispatch(CategoryAnimation, func(c Component) {
		c.(AnimationUpdater).UpdateAnimation(dt)
	})
}

// CallRendererOnUpdate is CallScriptOnUpdate for renderers.
func (m *ComponentsManager) CallRendererOnUpdate(dt float32) {
	m.startThenUpdate(CategoryRendererUpdate, dt)
}

func (m *ComponentsManager) CallScriptOnLateUpdate() {
	m.dispatch(CategoryLateUpdate, func(c Component) {
		c.(LateUpdater).OnLateUpdate()
	})
}

func (m *ComponentsManager) CallScriptOnPreRender() {
	m.dispatch(CategoryPreRender, func(c Component) {
		c.(PreRenderer).OnPreRender()
	})
}

func (m *ComponentsManager) CallScriptOnPostRender() {
	m.dispatch(CategoryPostRender, func(c Component) {
		c.(PostRenderer).OnPostRender()
	})
}

// CallRender asks every renderer whose entity layer matches the camera's
// culling mask to submit its primitives to sink.
func (m *ComponentsManager) CallRender(cam Camera, sink RenderSink) {
	if cam == nil {
		return
	}
	mask := cam.CullingMask()
	m.dispatch(CategoryRenderer, func(c Component) {
		e := c.GetEntity()
		if e == nil || !e.Layer.Has(mask) {
			return
		}
		c.(Renderer).Render(cam, sink)
	})
}

// CallComponentDestroy runs OnDestroy for queued components, newest first,
// then clears the queue. Components destroyed from inside OnDestroy are
// handled on the next call.
func (m *ComponentsManager) CallComponentDestroy() {
	queue := m.destroyQueue
	m.destroyQueue = nil
	for i := len(queue) - 1; i >= 0; i-- {
		if d, ok := queue[i].(Destroyer); ok {
			d.OnDestroy()
		}
	}
}
