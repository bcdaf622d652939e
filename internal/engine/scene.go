package engine

import (
	"slices"

	"go.uber.org/zap"
)

// Scene owns a set of root entities. Only the engine's active scene
// dispatches component callbacks.
type Scene struct {
	Name string

	engine  *Engine
	roots   []*Entity
	uidMap  map[uint64]*Entity
	cameras []Camera

	active    bool
	destroyed bool
}

func newScene(engine *Engine, name string) *Scene {
	return &Scene{
		Name:   name,
		engine: engine,
		roots:  make([]*Entity, 0),
		uidMap: make(map[uint64]*Entity),
	}
}

func (s *Scene) Engine() *Engine { return s.engine }

func (s *Scene) IsActive() bool { return s.active }

func (s *Scene) RootEntities() []*Entity { return s.roots }

// CreateRootEntity makes a new entity and adds it as a root.
func (s *Scene) CreateRootEntity(name string) *Entity {
	e := NewEntity(name)
	s.AddRootEntity(e)
	return e
}

// AddRootEntity moves e, with its subtree, to the root of s.
func (s *Scene) AddRootEntity(e *Entity) {
	if e.isRoot && e.scene == s {
		return
	}
	switch {
	case e.parent != nil:
		e.parent.RemoveChild(e)
	case e.isRoot && e.scene != nil:
		e.scene.RemoveRootEntity(e)
	}
	e.isRoot = true
	s.roots = append(s.roots, e)
	e.setScene(s)
	e.refreshActive()
}

// RemoveRootEntity detaches e from the scene without destroying it.
func (s *Scene) RemoveRootEntity(e *Entity) {
	i := slices.Index(s.roots, e)
	if i < 0 {
		return
	}
	s.roots = slices.Delete(s.roots, i, i+1)
	e.isRoot = false
	e.refreshActive()
	e.setScene(nil)
}

func (s *Scene) index(e *Entity) {
	if e.UID == 0 {
		e.UID = s.engine.nextUID()
	}
	s.uidMap[e.UID] = e
}

func (s *Scene) unindex(e *Entity) {
	delete(s.uidMap, e.UID)
}

func (s *Scene) FindByUID(uid uint64) *Entity {
	return s.uidMap[uid]
}

// Traverse visits every entity depth first. Returning false from fn stops
// the walk.
func (s *Scene) Traverse(fn func(e *Entity) bool) {
	var walk func(e *Entity) bool
	walk = func(e *Entity) bool {
		if !fn(e) {
			return false
		}
		for _, c := range e.children {
			if !walk(c) {
				return false
			}
		}
		return true
	}
	for _, r := range s.roots {
		if !walk(r) {
			return
		}
	}
}

func (s *Scene) FindByName(name string) *Entity {
	var found *Entity
	s.Traverse(func(e *Entity) bool {
		if e.Name == name {
			found = e
			return false
		}
		return true
	})
	return found
}

func (s *Scene) FindByTag(tag string) []*Entity {
	var result []*Entity
	s.Traverse(func(e *Entity) bool {
		if e.HasTag(tag) {
			result = append(result, e)
		}
		return true
	})
	return result
}

// Cameras returns the active cameras ordered by ascending priority.
func (s *Scene) Cameras() []Camera { return s.cameras }

func (s *Scene) addCamera(c Camera) {
	if slices.Contains(s.cameras, c) {
		return
	}
	s.cameras = append(s.cameras, c)
	s.sortCameras()
}

func (s *Scene) removeCamera(c Camera) {
	if i := slices.Index(s.cameras, c); i >= 0 {
		s.cameras = slices.Delete(s.cameras, i, i+1)
	}
}

func (s *Scene) sortCameras() {
	slices.SortStableFunc(s.cameras, func(a, b Camera) int {
		return a.Priority() - b.Priority()
	})
}

func (s *Scene) setActive(active bool) {
	if s.active == active {
		return
	}
	s.active = active
	for _, r := range slices.Clone(s.roots) {
		r.refreshActive()
	}
}

// Destroy destroys every root entity and removes the scene from its engine.
func (s *Scene) Destroy() {
	if s.destroyed {
		return
	}
	for len(s.roots) > 0 {
		s.roots[len(s.roots)-1].Destroy()
	}
	s.destroyed = true
	s.engine.removeScene(s)
	s.engine.log.Debug("scene destroyed", zap.String("scene", s.Name))
}
