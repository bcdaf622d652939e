package engine

import "testing"

func TestSceneAddRootEntity(t *testing.T) {
	scene := New().NewScene("Test")
	obj := NewEntity("Player")

	scene.AddRootEntity(obj)

	if len(scene.RootEntities()) != 1 {
		t.Errorf("Expected 1 root entity, got %d", len(scene.RootEntities()))
	}

	if scene.RootEntities()[0] != obj {
		t.Error("Entity not added to scene")
	}

	if obj.Scene() != scene {
		t.Error("Entity scene not set")
	}

	if !obj.IsActiveInHierarchy() {
		t.Error("root of the active scene should be active in hierarchy")
	}
}

func TestSceneUIDLookup(t *testing.T) {
	scene := New().NewScene("Test")
	obj := scene.CreateRootEntity("Player")

	found := scene.FindByUID(obj.UID)
	if found != obj {
		t.Errorf("FindByUID failed: expected %v, got %v", obj, found)
	}

	notFound := scene.FindByUID(99999)
	if notFound != nil {
		t.Error("FindByUID should return nil for non-existent UID")
	}
}

func TestSceneRemoveRootEntity(t *testing.T) {
	scene := New().NewScene("Test")
	obj1 := scene.CreateRootEntity("Player")
	obj2 := scene.CreateRootEntity("Enemy")

	scene.RemoveRootEntity(obj1)

	if len(scene.RootEntities()) != 1 {
		t.Errorf("Expected 1 root after removal, got %d", len(scene.RootEntities()))
	}

	if scene.RootEntities()[0] != obj2 {
		t.Error("Wrong entity removed")
	}

	if scene.FindByUID(obj1.UID) != nil {
		t.Error("Removed entity still in UID map")
	}

	if scene.FindByUID(obj2.UID) != obj2 {
		t.Error("Remaining entity not in UID map")
	}

	if obj1.Scene() != nil || obj1.IsActiveInHierarchy() {
		t.Error("Removed entity should be detached")
	}
}

func TestSceneFindByName(t *testing.T) {
	scene := New().NewScene("Test")
	root := scene.CreateRootEntity("Root")
	obj := NewEntity("UniquePlayer")
	root.AddChild(obj)

	if scene.FindByName("UniquePlayer") != obj {
		t.Error("FindByName failed to find nested entity")
	}

	if scene.FindByName("DoesNotExist") != nil {
		t.Error("FindByName should return nil for non-existent name")
	}
}

func TestSceneFindByTag(t *testing.T) {
	scene := New().NewScene("Test")
	obj1 := scene.CreateRootEntity("Enemy1")
	obj2 := scene.CreateRootEntity("Enemy2")
	obj3 := scene.CreateRootEntity("Player")

	obj1.Tags = []string{"enemy", "ai"}
	obj2.Tags = []string{"enemy"}
	obj3.Tags = []string{"player"}

	if enemies := scene.FindByTag("enemy"); len(enemies) != 2 {
		t.Errorf("Expected 2 enemies, got %d", len(enemies))
	}

	if players := scene.FindByTag("player"); len(players) != 1 {
		t.Errorf("Expected 1 player, got %d", len(players))
	}

	if notFound := scene.FindByTag("nonexistent"); len(notFound) != 0 {
		t.Error("FindByTag should return empty slice for non-existent tag")
	}
}

func TestSceneRemoveWithChildren(t *testing.T) {
	scene := New().NewScene("Test")
	parent := scene.CreateRootEntity("Parent")
	child := NewEntity("Child")
	parent.AddChild(child)

	scene.RemoveRootEntity(parent)

	if len(scene.RootEntities()) != 0 {
		t.Errorf("Expected 0 roots, got %d", len(scene.RootEntities()))
	}

	if scene.FindByUID(parent.UID) != nil {
		t.Error("Parent still in UID map after removal")
	}
	if scene.FindByUID(child.UID) != nil {
		t.Error("Child still in UID map after removal")
	}
}

func TestSceneMoveRootUnderParent(t *testing.T) {
	scene := New().NewScene("Test")
	a := scene.CreateRootEntity("A")
	b := scene.CreateRootEntity("B")

	a.AddChild(b)

	if len(scene.RootEntities()) != 1 {
		t.Errorf("Expected B to leave the root list, got %d roots", len(scene.RootEntities()))
	}
	if scene.FindByUID(b.UID) != b {
		t.Error("B should still be indexed by the scene")
	}
	if !b.IsActiveInHierarchy() {
		t.Error("B should stay active under an active parent")
	}
}

func TestSceneDestroy(t *testing.T) {
	eng := New()
	scene := eng.NewScene("Test")
	scene.CreateRootEntity("A")
	scene.CreateRootEntity("B")

	scene.Destroy()

	if len(scene.RootEntities()) != 0 {
		t.Error("Destroy should remove every root")
	}
	if eng.ActiveScene() != nil {
		t.Error("destroyed scene should no longer be active")
	}
	if len(eng.Scenes()) != 0 {
		t.Error("destroyed scene should be removed from the engine")
	}
}
