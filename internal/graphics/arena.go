package graphics

// Identified is implemented by resources that receive an ID from an Arena.
type Identified interface {
	ID() uint32
	SetID(id uint32)
}

// Arena hands out IDs to resources and keeps them addressable by ID.
// Each engine owns its arenas, so IDs are only unique within one engine.
// ID 0 is never assigned.
type Arena[T Identified] struct {
	items map[uint32]T
	next  uint32
}

func NewArena[T Identified]() *Arena[T] {
	return &Arena[T]{items: make(map[uint32]T)}
}

// Add assigns the next ID to item and stores it.
func (a *Arena[T]) Add(item T) T {
	a.next++
	item.SetID(a.next)
	a.items[a.next] = item
	return item
}

func (a *Arena[T]) Get(id uint32) (T, bool) {
	item, ok := a.items[id]
	return item, ok
}

// Remove drops the item. Its ID is not reused.
func (a *Arena[T]) Remove(id uint32) {
	delete(a.items, id)
}

func (a *Arena[T]) Len() int {
	return len(a.items)
}
