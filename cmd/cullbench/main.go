// Command cullbench measures frustum culling cost and effectiveness for each
// bounding volume kind without opening a window.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/pkg/profile"

	"render3d/internal/bounds"
	"render3d/internal/components"
	"render3d/internal/config"
	"render3d/internal/engine"
	"render3d/internal/graphics"
	"render3d/internal/render"
	"render3d/internal/world"
)

type result struct {
	kind     bounds.Kind
	precise  bool
	perFrame time.Duration
	culled   float64
	drawn    float64
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "cullbench: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	counts := flag.String("counts", "100,1000,5000,20000", "comma separated object counts")
	frames := flag.Int("frames", 120, "frames per run")
	prof := flag.String("profile", "", "cpu or mem; writes a profile to the current directory")
	flag.Parse()

	ns, err := parseCounts(*counts)
	if err != nil {
		return err
	}
	if *frames <= 0 {
		return fmt.Errorf("frames must be positive")
	}

	switch *prof {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	default:
		return fmt.Errorf("unknown profile %q", *prof)
	}

	for _, n := range ns {
		for _, kind := range []bounds.Kind{bounds.KindOBB, bounds.KindAABB, bounds.KindSphere} {
			for _, precise := range []bool{false, true} {
				r := bench(n, *frames, kind, precise)
				fmt.Printf("%6d objects  %-6s precise=%-5v  %10v/frame  culled %8.1f  drawn %8.1f\n",
					n, r.kind, r.precise, r.perFrame.Round(time.Microsecond), r.culled, r.drawn)
			}
		}
		fmt.Println()
	}
	return nil
}

// bench fills a world with n randomly placed and rotated cubes around a
// spinning camera and steps it for frames frames.
func bench(n, frames int, kind bounds.Kind, precise bool) result {
	cfg := config.Default()
	cfg.Render.Volume = kind.String()
	cfg.Render.Precise = precise

	w := world.New(cfg, &discard{}, nil)
	defer w.Close()

	rng := rand.New(rand.NewSource(42))
	spawn := float32(50) + float32(n)/100
	mat := w.Engine.Materials.Add(graphics.NewMaterial("bench", rl.White))

	for i := range n {
		e := w.Scene.CreateRootEntity(fmt.Sprintf("Cube_%d", i))
		e.Transform.Position = rl.Vector3{
			X: rng.Float32()*spawn - spawn/2,
			Y: rng.Float32()*spawn - spawn/2,
			Z: rng.Float32()*spawn - spawn/2,
		}
		e.Transform.Rotation = rl.Vector3{X: rng.Float32() * 360, Y: rng.Float32() * 360}
		size := 0.5 + rng.Float32()*1.5
		mesh := w.Engine.Meshes.Add(graphics.NewMesh("cube",
			w.Engine.Primitives.Add(graphics.NewCube(rl.Vector3{X: size, Y: size * 2, Z: size}))))
		e.AddComponent(components.NewMeshRenderer(mesh, mat))
	}

	camera := w.Scene.CreateRootEntity("Camera")
	cam := components.NewCamera(w.Pipeline)
	cam.Far = spawn
	camera.AddComponent(cam)
	camera.AddComponent(&components.Rotator{Speed: 45})

	var culled, drawn int
	start := time.Now()
	for range frames {
		w.Update(1.0 / 60)
		s := w.Pipeline.Stats()
		culled += s.Culled
		drawn += s.Drawn
	}
	elapsed := time.Since(start)

	return result{
		kind:     kind,
		precise:  precise,
		perFrame: elapsed / time.Duration(frames),
		culled:   float64(culled) / float64(frames),
		drawn:    float64(drawn) / float64(frames),
	}
}

// discard is a Backend that draws nothing.
type discard struct{}

func (discard) BeginPass(engine.Camera, *render.Pass) {}
func (discard) Draw(*render.RenderItem)               {}
func (discard) EndPass()                              {}

func parseCounts(s string) ([]int, error) {
	var out []int
	for _, f := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("bad count %q", f)
		}
		out = append(out, n)
	}
	return out, nil
}
