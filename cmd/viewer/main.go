// Command viewer opens a window on a scene file (or the demo scene) and
// renders it through the culling pipeline.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"

	"render3d/internal/config"
	"render3d/internal/logging"
	"render3d/internal/world"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "viewer: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "TOML config file")
	scenePath := flag.String("scene", "", "scene file, overrides [scene] path")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			return err
		}
	}
	if *scenePath != "" {
		cfg.Scene.Path = *scenePath
	}
	clearColor, err := world.ParseColor(cfg.Render.ClearColor)
	if err != nil {
		return fmt.Errorf("render.clear_color: %w", err)
	}

	log, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer log.Sync()

	rl.SetConfigFlags(rl.FlagWindowHighdpi | rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Window.Width), int32(cfg.Window.Height), cfg.Window.Title)
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Window.TargetFPS))

	backend := world.NewRaylibBackend()
	defer backend.Unload()

	w := world.New(cfg, backend, log)
	defer w.Close()
	if err := w.Setup(cfg); err != nil {
		return err
	}

	v := &viewer{world: w, backend: backend, log: log, clear: clearColor}
	for !rl.WindowShouldClose() {
		v.frame()
	}
	return nil
}

type viewer struct {
	world   *world.World
	backend *world.RaylibBackend
	log     *zap.Logger
	clear   rl.Color

	showStats bool
	frameMs   float64
}

func (v *viewer) frame() {
	v.handleInput()

	if cam := v.world.MainCamera(); cam != nil {
		cam.Aspect = float32(rl.GetScreenWidth()) / float32(rl.GetScreenHeight())
	}

	start := time.Now()
	rl.BeginDrawing()
	rl.ClearBackground(v.clear)
	// Cameras render inside the engine frame.
	v.world.Update(rl.GetFrameTime())
	v.frameMs = float64(time.Since(start).Microseconds()) / 1000.0

	v.drawUI()
	rl.EndDrawing()
}

func (v *viewer) handleInput() {
	if rl.IsKeyPressed(rl.KeyF1) {
		v.showStats = !v.showStats
	}
	if rl.IsKeyPressed(rl.KeyB) {
		v.backend.DrawBounds = !v.backend.DrawBounds
	}
	if rl.IsKeyPressed(rl.KeyP) {
		eng := v.world.Engine
		if eng.IsPaused() {
			eng.Resume()
		} else {
			eng.Pause()
		}
	}
	if rl.IsMouseButtonPressed(rl.MouseLeftButton) && rl.GetMouseX() > 220 {
		w, h := float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight())
		ndcX := 2*float32(rl.GetMouseX())/w - 1
		ndcY := 1 - 2*float32(rl.GetMouseY())/h
		if hit, ok := v.world.Pick(ndcX, ndcY); ok {
			v.log.Info("picked",
				zap.String("entity", hit.Entity.Name),
				zap.Float32("distance", hit.Distance),
			)
		}
	}
}

func (v *viewer) drawUI() {
	p := v.world.Pipeline
	p.SetCulling(gui.CheckBox(rl.Rectangle{X: 10, Y: 10, Width: 16, Height: 16}, "Frustum culling", p.Culling()))
	p.SetPrecise(gui.CheckBox(rl.Rectangle{X: 10, Y: 32, Width: 16, Height: 16}, "Precise test", p.Precise()))

	stats := p.Stats()
	rl.DrawText(fmt.Sprintf("submitted %d  culled %d  drawn %d", stats.Submitted, stats.Culled, stats.Drawn), 10, 56, 16, rl.DarkGray)
	rl.DrawText("F1 stats  B bounds  P pause  click to pick", 10, 76, 16, rl.DarkGray)
	rl.DrawFPS(10, 96)

	if v.showStats {
		eng := v.world.Engine
		rl.DrawText(fmt.Sprintf("Frame:  %.2f ms", v.frameMs), 10, 120, 16, rl.Green)
		rl.DrawText(fmt.Sprintf("Frames: %d", eng.FrameCount()), 10, 140, 16, rl.Green)
		if eng.IsPaused() {
			rl.DrawText("PAUSED", 10, 160, 16, rl.Red)
		}
	}
}
