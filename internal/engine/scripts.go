package engine

import (
	"fmt"
	"maps"
	"slices"
)

// ScriptFactory creates a Component from scene file props.
type ScriptFactory func(props map[string]any) Component

// ScriptSerializer converts a Component back to props for saving. It returns
// nil for components it does not recognise.
type ScriptSerializer func(c Component) map[string]any

// ScriptApplier applies a single property value to a script component.
// Returns true if the property was applied.
type ScriptApplier func(c Component, propName string, value any) bool

type scriptEntry struct {
	factory    ScriptFactory
	serializer ScriptSerializer
	applier    ScriptApplier
}

// ScriptRegistry maps script names used in scene files to constructors.
// Each Engine carries its own registry.
type ScriptRegistry struct {
	entries map[string]scriptEntry
}

func NewScriptRegistry() *ScriptRegistry {
	return &ScriptRegistry{entries: make(map[string]scriptEntry)}
}

// Register adds a named script. Registering a name twice panics.
func (r *ScriptRegistry) Register(name string, factory ScriptFactory, serializer ScriptSerializer) {
	r.RegisterWithApplier(name, factory, serializer, nil)
}

// RegisterWithApplier also installs a property applier for live edits.
func (r *ScriptRegistry) RegisterWithApplier(name string, factory ScriptFactory, serializer ScriptSerializer, applier ScriptApplier) {
	if factory == nil {
		panic(fmt.Sprintf("script %q registered without a factory", name))
	}
	if _, exists := r.entries[name]; exists {
		panic(fmt.Sprintf("script %q already registered", name))
	}
	r.entries[name] = scriptEntry{factory: factory, serializer: serializer, applier: applier}
}

// Create builds the named script, or returns nil when the name is unknown.
func (r *ScriptRegistry) Create(name string, props map[string]any) Component {
	entry, ok := r.entries[name]
	if !ok {
		return nil
	}
	return entry.factory(props)
}

// Serialize finds the script that recognises c.
// Returns (name, props, true) if found, ("", nil, false) otherwise.
func (r *ScriptRegistry) Serialize(c Component) (string, map[string]any, bool) {
	for _, name := range r.Names() {
		entry := r.entries[name]
		if entry.serializer == nil {
			continue
		}
		if props := entry.serializer(c); props != nil {
			return name, props, true
		}
	}
	return "", nil, false
}

// Names returns the registered script names in sorted order.
func (r *ScriptRegistry) Names() []string {
	return slices.Sorted(maps.Keys(r.entries))
}

func (r *ScriptRegistry) Has(name string) bool {
	_, ok := r.entries[name]
	return ok
}

// ApplyProperty applies a property value to a script component.
func (r *ScriptRegistry) ApplyProperty(c Component, propName string, value any) bool {
	for _, entry := range r.entries {
		if entry.applier != nil && entry.applier(c, propName, value) {
			return true
		}
	}
	return false
}
