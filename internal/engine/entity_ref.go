package engine

// EntityRef is a weak reference to an Entity by UID. It does not keep the
// entity alive; Get returns nil once the entity leaves the scene.
type EntityRef struct {
	UID uint64 // 0 means none
}

// Get resolves the reference. Returns nil if the reference is empty or the
// entity is not in scene.
func (r EntityRef) Get(scene *Scene) *Entity {
	if r.UID == 0 || scene == nil {
		return nil
	}
	return scene.FindByUID(r.UID)
}

// IsValid reports whether the reference is set. It does not check that the
// entity still exists.
func (r EntityRef) IsValid() bool {
	return r.UID != 0
}

// Set points the reference at e. Passing nil clears it.
func (r *EntityRef) Set(e *Entity) {
	if e == nil {
		r.UID = 0
	} else {
		r.UID = e.UID
	}
}
