package engine

import (
	"slices"

	"go.uber.org/zap"

	"render3d/internal/graphics"
)

// Engine drives the frame loop for its scenes. Several engines can coexist;
// nothing is shared between them.
type Engine struct {
	log        *zap.Logger
	components *ComponentsManager
	scripts    *ScriptRegistry

	Meshes     *graphics.Arena[*graphics.Mesh]
	Materials  *graphics.Arena[*graphics.Material]
	Primitives *graphics.Arena[*graphics.Primitive]

	scenes []*Scene
	active *Scene

	uid    uint64
	frame  uint64
	time   float64
	paused bool
}

type Option func(*Engine)

// WithLogger sets the logger. The default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

func New(opts ...Option) *Engine {
	e := &Engine{
		log:        zap.NewNop(),
		components: NewComponentsManager(),
		scripts:    NewScriptRegistry(),
		Meshes:     graphics.NewArena[*graphics.Mesh](),
		Materials:  graphics.NewArena[*graphics.Material](),
		Primitives: graphics.NewArena[*graphics.Primitive](),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) Logger() *zap.Logger { return e.log }

func (e *Engine) Components() *ComponentsManager { return e.components }

func (e *Engine) Scripts() *ScriptRegistry { return e.scripts }

func (e *Engine) nextUID() uint64 {
	e.uid++
	return e.uid
}

// NewScene creates a scene. The first scene created becomes active.
func (e *Engine) NewScene(name string) *Scene {
	s := newScene(e, name)
	e.scenes = append(e.scenes, s)
	e.log.Debug("scene created", zap.String("scene", name))
	if e.active == nil {
		e.SetActiveScene(s)
	}
	return s
}

func (e *Engine) Scenes() []*Scene { return e.scenes }

func (e *Engine) ActiveScene() *Scene { return e.active }

// SetActiveScene switches the scene whose components receive callbacks.
// Components of the previous scene are unregistered.
func (e *Engine) SetActiveScene(s *Scene) {
	if s == e.active {
		return
	}
	if s != nil && s.engine != e {
		panic("engine: scene belongs to another engine")
	}
	if e.active != nil {
		e.active.setActive(false)
	}
	e.active = s
	if s != nil {
		s.setActive(true)
		e.log.Info("active scene changed", zap.String("scene", s.Name))
	}
}

func (e *Engine) removeScene(s *Scene) {
	if i := slices.Index(e.scenes, s); i >= 0 {
		e.scenes = slices.Delete(e.scenes, i, i+1)
	}
	if e.active == s {
		s.active = false
		e.active = nil
	}
}

func (e *Engine) Pause()         { e.paused = true }
func (e *Engine) Resume()        { e.paused = false }
func (e *Engine) IsPaused() bool { return e.paused }

// FrameCount is the number of completed Update calls.
func (e *Engine) FrameCount() uint64 { return e.frame }

// Time is the total simulated time in seconds.
func (e *Engine) Time() float64 { return e.time }

// Update advances one frame: scripts, animation, renderers, late scripts,
// then every camera of the active scene renders between the pre-render and
// post-render callbacks, and finally queued OnDestroy calls run. While
// paused only the camera passes and destroy flush run.
func (e *Engine) Update(dt float32) {
	m := e.components
	if !e.paused {
		e.time += float64(dt)
		m.CallScriptOnUpdate(dt)
		m.CallAnimationUpdate(dt)
		m.CallRendererOnUpdate(dt)
		m.CallScriptOnLateUpdate()
	}
	if s := e.active; s != nil {
		s.sortCameras()
		for _, cam := range slices.Clone(s.cameras) {
			if !cam.IsActive() {
				continue
			}
			m.CallScriptOnPreRender()
			cam.Render()
			m.CallScriptOnPostRender()
		}
	}
	m.CallComponentDestroy()
	e.frame++
}

// Destroy tears down every scene and flushes pending OnDestroy calls.
func (e *Engine) Destroy() {
	for len(e.scenes) > 0 {
		e.scenes[len(e.scenes)-1].Destroy()
	}
	e.components.CallComponentDestroy()
	e.log.Info("engine destroyed", zap.Uint64("frames", e.frame))
}
