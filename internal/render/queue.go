package render

import (
	"cmp"
	"slices"

	rl "github.com/gen2brain/raylib-go/raylib"

	"render3d/internal/engine"
	"render3d/internal/graphics"
)

// RenderItem is one primitive to draw this frame.
type RenderItem struct {
	Component engine.Renderer
	Primitive *graphics.Primitive
	Material  *graphics.Material
	Model     rl.Matrix // world matrix at submission
	Distance  float32   // camera to primitive center
}

// Layer is the layer of the submitting entity.
func (it *RenderItem) Layer() engine.Layer {
	if it.Component == nil || it.Component.GetEntity() == nil {
		return engine.LayerDefault
	}
	return it.Component.GetEntity().Layer
}

// RenderQueue collects items for one blend mode. Opaque queues sort to
// minimise state changes and then front to back; transparent queues sort
// back to front.
type RenderQueue struct {
	items       []RenderItem
	transparent bool
}

func NewRenderQueue(transparent bool) *RenderQueue {
	return &RenderQueue{transparent: transparent}
}

func (q *RenderQueue) Push(item RenderItem) {
	q.items = append(q.items, item)
}

func (q *RenderQueue) Items() []RenderItem { return q.items }

func (q *RenderQueue) Len() int { return len(q.items) }

func (q *RenderQueue) Clear() {
	clear(q.items)
	q.items = q.items[:0]
}

func (q *RenderQueue) Sort() {
	if q.transparent {
		slices.SortStableFunc(q.items, compareTransparent)
	} else {
		slices.SortStableFunc(q.items, compareOpaque)
	}
}

func materialOf(it *RenderItem) (queue int, key uint64, id uint32) {
	if it.Material == nil {
		return graphics.QueueOpaque, 0, 0
	}
	return it.Material.Queue, it.Material.ShaderKey(), it.Material.ID()
}

func compareOpaque(a, b RenderItem) int {
	qa, ka, ia := materialOf(&a)
	qb, kb, ib := materialOf(&b)
	if c := cmp.Compare(qa, qb); c != 0 {
		return c
	}
	if c := cmp.Compare(ka, kb); c != 0 {
		return c
	}
	if c := cmp.Compare(ia, ib); c != 0 {
		return c
	}
	return cmp.Compare(a.Distance, b.Distance)
}

func compareTransparent(a, b RenderItem) int {
	qa, _, _ := materialOf(&a)
	qb, _, _ := materialOf(&b)
	if c := cmp.Compare(qa, qb); c != 0 {
		return c
	}
	return cmp.Compare(b.Distance, a.Distance)
}
