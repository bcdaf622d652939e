package engine

import "testing"

func TestEventInvokeOrder(t *testing.T) {
	var ev Event
	var calls []int
	ev.AddListener(func() { calls = append(calls, 1) })
	ev.AddListener(func() { calls = append(calls, 2) })
	ev.AddListener(nil)

	ev.Invoke()

	if len(calls) != 2 || calls[0] != 1 || calls[1] != 2 {
		t.Errorf("Expected [1 2], got %v", calls)
	}
	if ev.ListenerCount() != 2 {
		t.Errorf("nil listener should be ignored, got %d listeners", ev.ListenerCount())
	}
}

func TestEventRemoveListener(t *testing.T) {
	var ev Event
	count := 0
	id := ev.AddListener(func() { count++ })
	ev.AddListener(func() { count += 10 })

	ev.RemoveListener(id)
	ev.Invoke()

	if count != 10 {
		t.Errorf("Expected only the second listener to run, got %d", count)
	}

	ev.RemoveAllListeners()
	ev.Invoke()
	if count != 10 {
		t.Error("no listener should run after RemoveAllListeners")
	}
}

func TestEventWithArg(t *testing.T) {
	var ev EventWithArg[*Entity]
	var got *Entity
	id := ev.AddListener(func(e *Entity) { got = e })

	target := NewEntity("Target")
	ev.Invoke(target)
	if got != target {
		t.Error("listener should receive the argument")
	}

	ev.RemoveListener(id)
	if ev.ListenerCount() != 0 {
		t.Error("listener should be removed")
	}
}

func TestEventListenerAddedDuringInvoke(t *testing.T) {
	var ev Event
	inner := 0
	ev.AddListener(func() {
		ev.AddListener(func() { inner++ })
	})

	ev.Invoke()
	if inner != 0 {
		t.Error("listener added during Invoke should wait for the next call")
	}
	ev.Invoke()
	if inner != 1 {
		t.Errorf("Expected 1 call on the second Invoke, got %d", inner)
	}
}
