package engine

// DisorderedArray is a slice with O(1) removal by index. Removal moves the
// last element into the hole, so element order is not stable. Callers that
// cache indices must update the moved element's index after DeleteByIndex.
type DisorderedArray[T any] struct {
	elements []T
}

func NewDisorderedArray[T any](capacity int) *DisorderedArray[T] {
	return &DisorderedArray[T]{elements: make([]T, 0, capacity)}
}

// Add appends item. Its index is Len()-1 after the call.
func (a *DisorderedArray[T]) Add(item T) {
	a.elements = append(a.elements, item)
}

// DeleteByIndex removes the element at i. When another element was moved
// into slot i it is returned with ok set. Out-of-range indices are ignored.
func (a *DisorderedArray[T]) DeleteByIndex(i int) (moved T, ok bool) {
	var zero T
	last := len(a.elements) - 1
	if i < 0 || i > last {
		return zero, false
	}
	if i != last {
		moved = a.elements[last]
		a.elements[i] = moved
		ok = true
	}
	a.elements[last] = zero
	a.elements = a.elements[:last]
	return moved, ok
}

func (a *DisorderedArray[T]) Len() int { return len(a.elements) }

func (a *DisorderedArray[T]) Get(i int) T { return a.elements[i] }

// Elements returns the live elements. The slice is only valid until the
// next Add or DeleteByIndex.
func (a *DisorderedArray[T]) Elements() []T { return a.elements }

// Reset drops every element but keeps the backing storage.
func (a *DisorderedArray[T]) Reset() {
	clear(a.elements)
	a.elements = a.elements[:0]
}
