package world

import (
	"fmt"
	"math"
	"math/rand"
	"path/filepath"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"

	"render3d/internal/components"
	"render3d/internal/config"
	"render3d/internal/engine"
	"render3d/internal/graphics"
	"render3d/internal/physics"
	"render3d/internal/render"
	"render3d/internal/scripting"
)

const FloorSize = 60.0

// World wires an engine, its main scene, the culling pipeline every camera
// renders through and the Lua VM.
type World struct {
	Engine   *engine.Engine
	Scene    *engine.Scene
	Pipeline *render.CullRenderPipeline
	Scripts  *scripting.VM

	log       *zap.Logger
	aspect    float32
	materials map[materialKey]*graphics.Material
	watcher   *scripting.Watcher
}

func New(cfg *config.Config, backend render.Backend, log *zap.Logger) *World {
	if log == nil {
		log = zap.NewNop()
	}
	eng := engine.New(engine.WithLogger(log))
	w := &World{
		Engine:    eng,
		Scripts:   scripting.NewVM(log.Named("lua")),
		log:       log,
		aspect:    float32(cfg.Window.Width) / float32(cfg.Window.Height),
		materials: make(map[materialKey]*graphics.Material),
	}
	components.RegisterScripts(eng.Scripts())
	w.Scripts.Register(eng.Scripts())

	w.Pipeline = render.NewCullRenderPipeline(backend,
		render.WithLogger(log.Named("render")),
		render.WithCulling(cfg.Render.Culling),
		render.WithPrecise(cfg.Render.Precise),
		render.WithVolume(cfg.VolumeKind()),
	)
	w.Scene = eng.NewScene("main")
	return w
}

// Setup fills the scene from cfg.Scene.Path, or with the demo scene when no
// path is set. When the result uses no Lua scripts, the files in
// cfg.Scene.ScriptsDir are attached to entities of their own. Lua scripts
// are watched if asked to.
func (w *World) Setup(cfg *config.Config) error {
	if cfg.Scene.Path != "" {
		if err := w.LoadScene(cfg.Scene.Path); err != nil {
			return err
		}
	} else {
		w.BuildDemo(15, 1)
	}
	if cfg.Scene.ScriptsDir != "" && !w.hasLuaScripts() {
		if err := w.attachScripts(cfg.Scene.ScriptsDir); err != nil {
			return err
		}
	}

	if cfg.Scene.Watch && cfg.Scene.ScriptsDir != "" {
		watcher, err := scripting.NewWatcher(w.log.Named("watch"), cfg.Scene.ScriptsDir)
		if err != nil {
			return fmt.Errorf("watch scripts: %w", err)
		}
		w.watcher = watcher
	}
	return nil
}

func (w *World) hasLuaScripts() bool {
	found := false
	w.Scene.Traverse(func(e *engine.Entity) bool {
		found = engine.GetComponent[*scripting.LuaScript](e) != nil
		return !found
	})
	return found
}

// attachScripts gives every .lua file in dir its own root entity, named
// after the file.
func (w *World) attachScripts(dir string) error {
	scripts, err := w.Scripts.LoadDir(dir)
	if err != nil {
		return fmt.Errorf("load scripts: %w", err)
	}
	for _, s := range scripts {
		name := strings.TrimSuffix(filepath.Base(s.Path), ".lua")
		w.Scene.CreateRootEntity(name).AddComponent(s)
		w.log.Info("script attached", zap.String("file", s.Path))
	}
	return nil
}

// BuildDemo adds a floor, a light, a camera and n animated cubes on a ring.
func (w *World) BuildDemo(n int, seed int64) {
	rng := rand.New(rand.NewSource(seed))

	floor := w.Scene.CreateRootEntity("Floor")
	floorMesh := w.Engine.Meshes.Add(graphics.NewMesh("floor",
		w.Engine.Primitives.Add(graphics.NewPlane(FloorSize, FloorSize))))
	floor.AddComponent(components.NewMeshRenderer(floorMesh, w.material(rl.LightGray, false, "", 0)))
	floor.AddComponent(components.NewPlaneCollider())

	sun := w.Scene.CreateRootEntity("Sun")
	sun.AddComponent(components.NewDirectionalLight(rl.Vector3{X: 0.35, Y: -1.0, Z: -0.35}))

	camera := w.Scene.CreateRootEntity("MainCamera")
	camera.Transform.Position = rl.Vector3{Y: 12, Z: 28}
	cam := components.NewCamera(w.Pipeline)
	cam.Aspect = w.aspect
	cam.LookAt(rl.Vector3{Y: 2})
	camera.AddComponent(cam)

	colors := []rl.Color{
		rl.Red, rl.Blue, rl.Green, rl.Purple, rl.Orange,
		rl.Yellow, rl.Pink, rl.SkyBlue, rl.Lime, rl.Magenta,
	}
	size := rl.Vector3{X: 1.5, Y: 1.5, Z: 1.5}
	for i := range n {
		angle := float32(i) * (2 * math.Pi / float32(n))
		radius := float32(8 + rng.Float64()*5)

		pos := rl.Vector3{
			X: float32(math.Cos(float64(angle))) * radius,
			Y: float32(2 + rng.Float64()*3),
			Z: float32(math.Sin(float64(angle))) * radius,
		}

		cube := w.Scene.CreateRootEntity(fmt.Sprintf("Cube_%d", i))
		cube.Transform.Position = pos

		mesh := w.Engine.Meshes.Add(graphics.NewMesh("cube", w.Engine.Primitives.Add(graphics.NewCube(size))))
		cube.AddComponent(components.NewMeshRenderer(mesh, w.material(colors[i%len(colors)], false, "", 0)))
		cube.AddComponent(components.NewBoxCollider(size))
		cube.AddComponent(components.NewCubeAnimator(
			pos,
			float32(30+rng.Float64()*60),
			float32(2+rng.Float64()*3),
			float32(0.5+rng.Float64()*1.5),
			float32(rng.Float64()*2*math.Pi),
		))
	}
	w.log.Debug("demo scene built", zap.Int("cubes", n))
}

// MainCamera returns the first camera of the scene in render order.
func (w *World) MainCamera() *components.Camera {
	for _, c := range w.Scene.Cameras() {
		if cam, ok := c.(*components.Camera); ok {
			return cam
		}
	}
	return nil
}

// Update reloads changed Lua scripts and steps the engine one frame.
func (w *World) Update(deltaTime float32) {
	if w.watcher != nil {
		w.Scripts.Drain(w.watcher.Changes())
	}
	w.Engine.Update(deltaTime)
}

// Pick casts a ray from the main camera through a point in normalized
// device coordinates and returns the closest collider hit.
func (w *World) Pick(ndcX, ndcY float32) (physics.RaycastHit, bool) {
	cam := w.MainCamera()
	if cam == nil {
		return physics.RaycastHit{}, false
	}
	origin, dir := cam.ScreenRay(ndcX, ndcY)
	return physics.Raycast(w.Scene, physics.NewRay(origin, dir), cam.Far, cam.Mask)
}

func (w *World) Close() {
	if w.watcher != nil {
		if err := w.watcher.Close(); err != nil {
			w.log.Warn("close script watcher", zap.Error(err))
		}
	}
	w.Engine.Destroy()
	w.Scripts.Close()
}
