package world

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"render3d/internal/components"
	"render3d/internal/engine"
	"render3d/internal/graphics"
)

// --- File types ---

type SceneFile struct {
	Name    string      `json:"name,omitempty" yaml:"name,omitempty"`
	Objects []ObjectDef `json:"objects" yaml:"objects"`
}

type ObjectDef struct {
	Name       string         `json:"name" yaml:"name"`
	Tags       []string       `json:"tags,omitempty" yaml:"tags,omitempty"`
	Layer      string         `json:"layer,omitempty" yaml:"layer,omitempty"`
	Active     *bool          `json:"active,omitempty" yaml:"active,omitempty"`
	Position   [3]float32     `json:"position" yaml:"position,flow"`
	Rotation   [3]float32     `json:"rotation" yaml:"rotation,flow"`
	Scale      [3]float32     `json:"scale" yaml:"scale,flow"`
	Components []ComponentDef `json:"components,omitempty" yaml:"components,omitempty"`
	Children   []ObjectDef    `json:"children,omitempty" yaml:"children,omitempty"`
}

// ComponentDef is the union of every component's fields; Type selects
// which ones apply.
type ComponentDef struct {
	Type string `json:"type" yaml:"type"`

	// MeshRenderer
	Mesh        string    `json:"mesh,omitempty" yaml:"mesh,omitempty"`
	MeshSize    []float32 `json:"meshSize,omitempty" yaml:"meshSize,omitempty,flow"`
	Color       string    `json:"color,omitempty" yaml:"color,omitempty"`
	Shader      string    `json:"shader,omitempty" yaml:"shader,omitempty"`
	Transparent bool      `json:"transparent,omitempty" yaml:"transparent,omitempty"`
	Queue       int       `json:"queue,omitempty" yaml:"queue,omitempty"`

	// BoxCollider, SphereCollider, PlaneCollider
	Size   []float32 `json:"size,omitempty" yaml:"size,omitempty,flow"`
	Offset []float32 `json:"offset,omitempty" yaml:"offset,omitempty,flow"`
	Radius float32   `json:"radius,omitempty" yaml:"radius,omitempty"`

	// Light
	Kind      string    `json:"kind,omitempty" yaml:"kind,omitempty"`
	Direction []float32 `json:"direction,omitempty" yaml:"direction,omitempty,flow"`
	Intensity float32   `json:"intensity,omitempty" yaml:"intensity,omitempty"`
	Range     float32   `json:"range,omitempty" yaml:"range,omitempty"`
	Angle     float32   `json:"angle,omitempty" yaml:"angle,omitempty"`

	// Camera
	FOV          float32   `json:"fov,omitempty" yaml:"fov,omitempty"`
	Near         float32   `json:"near,omitempty" yaml:"near,omitempty"`
	Far          float32   `json:"far,omitempty" yaml:"far,omitempty"`
	Order        int       `json:"order,omitempty" yaml:"order,omitempty"`
	Orthographic bool      `json:"orthographic,omitempty" yaml:"orthographic,omitempty"`
	Mask         []string  `json:"mask,omitempty" yaml:"mask,omitempty,flow"`
	LookAt       []float32 `json:"lookAt,omitempty" yaml:"lookAt,omitempty,flow"`

	// Script
	Name  string         `json:"name,omitempty" yaml:"name,omitempty"`
	Props map[string]any `json:"props,omitempty" yaml:"props,omitempty"`
}

func vec3(v []float32, fallback rl.Vector3) rl.Vector3 {
	if len(v) < 3 {
		return fallback
	}
	return rl.Vector3{X: v[0], Y: v[1], Z: v[2]}
}

func arr3(v rl.Vector3) [3]float32 { return [3]float32{v.X, v.Y, v.Z} }

func slice3(v rl.Vector3) []float32 { return []float32{v.X, v.Y, v.Z} }

var layerByName = map[string]engine.Layer{
	"default":    engine.LayerDefault,
	"ui":         engine.LayerUI,
	"background": engine.LayerBackground,
	"everything": engine.LayerEverything,
}

func parseLayer(name string) (engine.Layer, error) {
	if name == "" {
		return engine.LayerDefault, nil
	}
	if l, ok := layerByName[strings.ToLower(name)]; ok {
		return l, nil
	}
	return engine.LayerNone, fmt.Errorf("unknown layer %q", name)
}

func layerName(l engine.Layer) string {
	for name, v := range layerByName {
		if v == l {
			return name
		}
	}
	return ""
}

func parseMask(names []string) (engine.Layer, error) {
	if len(names) == 0 {
		return engine.LayerEverything, nil
	}
	var mask engine.Layer
	for _, n := range names {
		l, err := parseLayer(n)
		if err != nil {
			return engine.LayerNone, err
		}
		mask |= l
	}
	return mask, nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// DecodeScene parses a scene file. YAML is used when path ends in .yaml or
// .yml, JSON otherwise.
func DecodeScene(path string, data []byte) (*SceneFile, error) {
	var sf SceneFile
	var err error
	if isYAML(path) {
		err = yaml.Unmarshal(data, &sf)
	} else {
		err = json.Unmarshal(data, &sf)
	}
	if err != nil {
		return nil, fmt.Errorf("parse scene %s: %w", path, err)
	}
	return &sf, nil
}

// EncodeScene is the inverse of DecodeScene.
func EncodeScene(path string, sf *SceneFile) ([]byte, error) {
	if isYAML(path) {
		return yaml.Marshal(sf)
	}
	return json.MarshalIndent(sf, "", "  ")
}

// --- Loading ---

// LoadScene reads a scene file and adds its objects to the world's scene.
func (w *World) LoadScene(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read scene: %w", err)
	}
	sf, err := DecodeScene(path, data)
	if err != nil {
		return err
	}
	if err := w.Build(sf); err != nil {
		return fmt.Errorf("build scene %s: %w", path, err)
	}
	w.log.Info("scene loaded", zap.String("file", path), zap.Int("objects", len(sf.Objects)))
	return nil
}

// Build instantiates every object of sf as a root of the world's scene. The
// scene is only touched once every object has been built; on error the
// partly built entities are destroyed and the scene is left as it was.
func (w *World) Build(sf *SceneFile) error {
	built := make([]*engine.Entity, 0, len(sf.Objects))
	for i := range sf.Objects {
		e, err := w.buildObject(&sf.Objects[i])
		if err != nil {
			for _, b := range built {
				b.Destroy()
			}
			return err
		}
		built = append(built, e)
	}
	for _, e := range built {
		w.Scene.AddRootEntity(e)
	}
	return nil
}

func (w *World) buildObject(def *ObjectDef) (*engine.Entity, error) {
	e := engine.NewEntity(def.Name)
	e.Tags = def.Tags
	layer, err := parseLayer(def.Layer)
	if err != nil {
		return nil, fmt.Errorf("object %q: %w", def.Name, err)
	}
	e.Layer = layer
	e.Transform.Position = rl.Vector3{X: def.Position[0], Y: def.Position[1], Z: def.Position[2]}
	e.Transform.Rotation = rl.Vector3{X: def.Rotation[0], Y: def.Rotation[1], Z: def.Rotation[2]}

	// Default scale to 1 if zero
	if def.Scale == [3]float32{} {
		e.Transform.Scale = rl.Vector3{X: 1, Y: 1, Z: 1}
	} else {
		e.Transform.Scale = rl.Vector3{X: def.Scale[0], Y: def.Scale[1], Z: def.Scale[2]}
	}
	if def.Active != nil {
		e.SetActive(*def.Active)
	}

	for i := range def.Components {
		c, err := w.buildComponent(&def.Components[i])
		if err != nil {
			e.Destroy()
			return nil, fmt.Errorf("object %q: %w", def.Name, err)
		}
		if c != nil {
			e.AddComponent(c)
		}
	}
	for i := range def.Children {
		child, err := w.buildObject(&def.Children[i])
		if err != nil {
			e.Destroy()
			return nil, err
		}
		e.AddChild(child)
	}
	return e, nil
}

func (w *World) buildComponent(def *ComponentDef) (engine.Component, error) {
	switch def.Type {
	case "MeshRenderer":
		return w.loadMeshRenderer(def)
	case "BoxCollider":
		col := components.NewBoxCollider(vec3(def.Size, rl.Vector3{X: 1, Y: 1, Z: 1}))
		col.Offset = vec3(def.Offset, rl.Vector3{})
		return col, nil
	case "SphereCollider":
		col := components.NewSphereCollider(def.Radius)
		col.Offset = vec3(def.Offset, rl.Vector3{})
		return col, nil
	case "PlaneCollider":
		col := components.NewPlaneCollider()
		if len(def.Offset) > 0 {
			col.Offset = def.Offset[0]
		}
		return col, nil
	case "Light":
		return loadLight(def)
	case "Camera":
		return w.loadCamera(def)
	case "Script":
		c := w.Engine.Scripts().Create(def.Name, def.Props)
		if c == nil {
			w.log.Warn("unknown script", zap.String("name", def.Name))
		}
		return c, nil
	}
	w.log.Warn("unknown component type", zap.String("type", def.Type))
	return nil, nil
}

func (w *World) loadMeshRenderer(def *ComponentDef) (engine.Component, error) {
	var prim *graphics.Primitive
	size := def.MeshSize
	switch def.Mesh {
	case "cube":
		prim = graphics.NewCube(vec3(size, rl.Vector3{X: 1, Y: 1, Z: 1}))
	case "sphere":
		r := float32(0.5)
		if len(size) >= 1 {
			r = size[0]
		}
		prim = graphics.NewSphere(r)
	case "plane":
		wd, dp := float32(1), float32(1)
		if len(size) >= 2 {
			wd, dp = size[0], size[1]
		}
		prim = graphics.NewPlane(wd, dp)
	default:
		return nil, fmt.Errorf("unknown mesh %q", def.Mesh)
	}
	mesh := w.Engine.Meshes.Add(graphics.NewMesh(def.Mesh, w.Engine.Primitives.Add(prim)))

	color := rl.White
	if def.Color != "" {
		c, err := ParseColor(def.Color)
		if err != nil {
			return nil, err
		}
		color = c
	}
	mat := w.material(color, def.Transparent, def.Shader, def.Queue)
	return components.NewMeshRenderer(mesh, mat), nil
}

type materialKey struct {
	color       rl.Color
	transparent bool
	shader      string
	queue       int
}

// material returns a shared material for the given state so identical
// renderers batch together.
func (w *World) material(color rl.Color, transparent bool, shader string, queue int) *graphics.Material {
	key := materialKey{color, transparent, shader, queue}
	if m, ok := w.materials[key]; ok {
		return m
	}
	var m *graphics.Material
	if transparent {
		m = graphics.NewTransparentMaterial(lookupColorName(color), color)
	} else {
		m = graphics.NewMaterial(lookupColorName(color), color)
	}
	if shader != "" {
		m.Shader = shader
	}
	if queue != 0 {
		m.Queue = queue
	}
	w.Engine.Materials.Add(m)
	w.materials[key] = m
	return m
}

func loadLight(def *ComponentDef) (engine.Component, error) {
	dir := vec3(def.Direction, rl.Vector3{X: 0.35, Y: -1, Z: -0.35})
	var l *components.Light
	switch def.Kind {
	case "", "directional":
		l = components.NewDirectionalLight(dir)
	case "point":
		l = components.NewPointLight(def.Range)
	case "spot":
		l = components.NewSpotLight(dir, def.Range, def.Angle)
	default:
		return nil, fmt.Errorf("unknown light kind %q", def.Kind)
	}
	if def.Color != "" {
		c, err := ParseColor(def.Color)
		if err != nil {
			return nil, err
		}
		l.Color = c
	}
	if def.Intensity > 0 {
		l.Intensity = def.Intensity
	}
	return l, nil
}

func (w *World) loadCamera(def *ComponentDef) (engine.Component, error) {
	cam := components.NewCamera(w.Pipeline)
	cam.Aspect = w.aspect
	if def.FOV > 0 {
		cam.FOV = def.FOV
	}
	if def.Near > 0 {
		cam.Near = def.Near
	}
	if def.Far > 0 {
		cam.Far = def.Far
	}
	if def.Orthographic {
		cam.Projection = rl.CameraOrthographic
	}
	cam.Order = def.Order
	mask, err := parseMask(def.Mask)
	if err != nil {
		return nil, err
	}
	cam.Mask = mask
	if len(def.LookAt) >= 3 {
		cam.LookAt(vec3(def.LookAt, rl.Vector3{}))
	}
	return cam, nil
}

// --- Saving ---

// SaveScene writes the world's scene in the format chosen by path's
// extension.
func (w *World) SaveScene(path string) error {
	sf := w.Snapshot()
	data, err := EncodeScene(path, sf)
	if err != nil {
		return fmt.Errorf("marshal scene: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write scene: %w", err)
	}
	return nil
}

// Snapshot converts the world's scene back into file form.
func (w *World) Snapshot() *SceneFile {
	sf := &SceneFile{Name: w.Scene.Name}
	for _, e := range w.Scene.RootEntities() {
		sf.Objects = append(sf.Objects, w.snapshotObject(e))
	}
	return sf
}

func (w *World) snapshotObject(e *engine.Entity) ObjectDef {
	def := ObjectDef{
		Name:     e.Name,
		Tags:     e.Tags,
		Position: arr3(e.Transform.Position),
		Rotation: arr3(e.Transform.Rotation),
		Scale:    arr3(e.Transform.Scale),
	}
	if e.Layer != engine.LayerDefault {
		def.Layer = layerName(e.Layer)
	}
	if !e.IsActive() {
		inactive := false
		def.Active = &inactive
	}
	for _, c := range e.Components() {
		if cd, ok := w.serializeComponent(c); ok {
			def.Components = append(def.Components, cd)
		}
	}
	for _, child := range e.Children() {
		def.Children = append(def.Children, w.snapshotObject(child))
	}
	return def
}

func (w *World) serializeComponent(c engine.Component) (ComponentDef, bool) {
	switch comp := c.(type) {
	case *components.MeshRenderer:
		if comp.Mesh == nil || len(comp.Mesh.Primitives) == 0 {
			return ComponentDef{}, false
		}
		p := comp.Mesh.Primitives[0]
		d := ComponentDef{Type: "MeshRenderer", Mesh: p.Shape.String()}
		switch p.Shape {
		case graphics.ShapeCube:
			d.MeshSize = slice3(p.Size)
		case graphics.ShapeSphere:
			d.MeshSize = []float32{p.Size.X}
		case graphics.ShapePlane:
			d.MeshSize = []float32{p.Size.X, p.Size.Z}
		default:
			return ComponentDef{}, false
		}
		if m := comp.Material; m != nil {
			d.Color = lookupColorName(m.Color)
			d.Transparent = m.Transparent
			if m.Shader != graphics.DefaultShader {
				d.Shader = m.Shader
			}
			if m.Queue != graphics.QueueOpaque && m.Queue != graphics.QueueTransparent {
				d.Queue = m.Queue
			}
		}
		return d, true

	case *components.BoxCollider:
		return ComponentDef{Type: "BoxCollider", Size: slice3(comp.Size), Offset: slice3(comp.Offset)}, true

	case *components.SphereCollider:
		return ComponentDef{Type: "SphereCollider", Radius: comp.Radius, Offset: slice3(comp.Offset)}, true

	case *components.PlaneCollider:
		return ComponentDef{Type: "PlaneCollider", Offset: []float32{comp.Offset}}, true

	case *components.Light:
		return ComponentDef{
			Type:      "Light",
			Kind:      comp.Kind.String(),
			Color:     lookupColorName(comp.Color),
			Direction: slice3(comp.Direction),
			Intensity: comp.Intensity,
			Range:     comp.Range,
			Angle:     comp.Angle,
		}, true

	case *components.Camera:
		d := ComponentDef{
			Type:         "Camera",
			FOV:          comp.FOV,
			Near:         comp.Near,
			Far:          comp.Far,
			Order:        comp.Order,
			Orthographic: comp.Projection == rl.CameraOrthographic,
		}
		if comp.Mask != engine.LayerEverything {
			for name, l := range layerByName {
				if l != engine.LayerEverything && comp.Mask.Has(l) {
					d.Mask = append(d.Mask, name)
				}
			}
			slices.Sort(d.Mask)
		}
		if target, ok := comp.LookAtTarget(); ok {
			d.LookAt = slice3(target)
		}
		return d, true
	}

	if name, props, ok := w.Engine.Scripts().Serialize(c); ok {
		return ComponentDef{Type: "Script", Name: name, Props: props}, true
	}
	return ComponentDef{}, false
}
