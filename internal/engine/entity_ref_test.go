package engine

import "testing"

func TestEntityRefGet(t *testing.T) {
	scene := New().NewScene("Test")
	obj := scene.CreateRootEntity("Target")

	ref := EntityRef{UID: obj.UID}

	found := ref.Get(scene)
	if found != obj {
		t.Errorf("Get() failed: expected %v, got %v", obj, found)
	}
}

func TestEntityRefGetNil(t *testing.T) {
	scene := New().NewScene("Test")
	ref := EntityRef{UID: 0}

	if ref.Get(scene) != nil {
		t.Error("Get() with UID=0 should return nil")
	}

	ref2 := EntityRef{UID: 99999}
	if ref2.Get(scene) != nil {
		t.Error("Get() with non-existent UID should return nil")
	}

	ref3 := EntityRef{UID: 123}
	if ref3.Get(nil) != nil {
		t.Error("Get() with nil scene should return nil")
	}
}

func TestEntityRefSet(t *testing.T) {
	scene := New().NewScene("Test")
	obj := scene.CreateRootEntity("Target")

	var ref EntityRef
	if ref.IsValid() {
		t.Error("zero EntityRef should be invalid")
	}

	ref.Set(obj)
	if !ref.IsValid() || ref.UID != obj.UID {
		t.Errorf("Set() should store UID %d, got %d", obj.UID, ref.UID)
	}

	ref.Set(nil)
	if ref.IsValid() {
		t.Error("Set(nil) should clear the reference")
	}
}

func TestEntityRefAfterDestroy(t *testing.T) {
	scene := New().NewScene("Test")
	obj := scene.CreateRootEntity("Doomed")
	ref := EntityRef{}
	ref.Set(obj)

	obj.Destroy()

	if ref.Get(scene) != nil {
		t.Error("Destroyed entity should not resolve")
	}
	if !ref.IsValid() {
		t.Error("IsValid does not track existence")
	}
}
