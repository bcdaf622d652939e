package components

import (
	"render3d/internal/engine"
	"render3d/internal/physics"
)

// CollisionDetection watches the colliders on its entity and reports
// overlaps with colliders elsewhere in the scene. OnCollision fires every
// frame an overlap persists; begin and end fire on the transitions. Events
// fire in scene traversal order.
type CollisionDetection struct {
	engine.BaseComponent
	Mask   engine.Layer
	Target engine.EntityRef // when set, only that entity's colliders count

	OnCollision    engine.EventWithArg[physics.Collider]
	OnBeginOverlap engine.EventWithArg[physics.Collider]
	OnEndOverlap   engine.EventWithArg[physics.Collider]

	targetName  string
	overlapping map[physics.Collider]struct{}
	order       []physics.Collider
}

func NewCollisionDetection() *CollisionDetection {
	return &CollisionDetection{Mask: engine.LayerEverything}
}

// collisionDetectionFactory reads an optional "target" entity name, resolved
// against the scene on the first update.
func collisionDetectionFactory(props map[string]any) engine.Component {
	d := NewCollisionDetection()
	d.targetName, _ = props["target"].(string)
	return d
}

func collisionDetectionSerializer(c engine.Component) map[string]any {
	d, ok := c.(*CollisionDetection)
	if !ok {
		return nil
	}
	props := map[string]any{}
	if name := d.targetLabel(); name != "" {
		props["target"] = name
	}
	return props
}

func (d *CollisionDetection) targetLabel() string {
	if g := d.GetEntity(); g != nil {
		if t := d.Target.Get(g.Scene()); t != nil {
			return t.Name
		}
	}
	return d.targetName
}

// SetTarget restricts reports to colliders on e. Nil reports every entity.
func (d *CollisionDetection) SetTarget(e *engine.Entity) {
	d.Target.Set(e)
	d.targetName = ""
}

// Overlapping reports whether other was overlapping at the last update.
func (d *CollisionDetection) Overlapping(other physics.Collider) bool {
	_, ok := d.overlapping[other]
	return ok
}

func (d *CollisionDetection) OnUpdate(float32) {
	g := d.GetEntity()
	if g == nil || g.Scene() == nil {
		return
	}
	scene := g.Scene()
	if d.targetName != "" && !d.Target.IsValid() {
		if t := scene.FindByName(d.targetName); t != nil {
			d.Target.Set(t)
		}
	}
	own := engine.GetComponents[physics.Collider](g)
	if len(own) == 0 {
		return
	}

	var target *engine.Entity
	if d.Target.IsValid() {
		if target = d.Target.Get(scene); target == nil {
			d.transition(nil)
			return
		}
	}

	var current []physics.Collider
	scene.Traverse(func(e *engine.Entity) bool {
		if e == g || !e.IsActiveInHierarchy() || !e.Layer.Has(d.Mask) {
			return true
		}
		if target != nil && e != target {
			return true
		}
		for _, other := range engine.GetComponents[physics.Collider](e) {
			if !other.Enabled() {
				continue
			}
			for _, mine := range own {
				if mine.Enabled() && physics.Overlaps(mine, other) {
					current = append(current, other)
					break
				}
			}
		}
		return true
	})
	d.transition(current)
}

func (d *CollisionDetection) transition(current []physics.Collider) {
	next := make(map[physics.Collider]struct{}, len(current))
	for _, c := range current {
		next[c] = struct{}{}
	}
	for _, other := range d.order {
		if _, still := next[other]; !still {
			d.OnEndOverlap.Invoke(other)
		}
	}
	for _, other := range current {
		if _, was := d.overlapping[other]; !was {
			d.OnBeginOverlap.Invoke(other)
		}
		d.OnCollision.Invoke(other)
	}
	d.overlapping = next
	d.order = current
}

// OnDisable ends every tracked overlap.
func (d *CollisionDetection) OnDisable() {
	d.transition(nil)
}
