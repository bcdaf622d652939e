package render

import (
	"slices"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"

	"render3d/internal/bounds"
	"render3d/internal/engine"
	"render3d/internal/graphics"
)

// Pipeline renders the active scene for one camera.
type Pipeline interface {
	Render(cam engine.Camera)
}

// Stats describes the last Render call.
type Stats struct {
	Submitted int
	Culled    int
	Drawn     int
}

type options struct {
	log     *zap.Logger
	passes  []*Pass
	volume  bounds.Kind
	precise bool
	culling bool
}

type Option func(*options)

func WithLogger(log *zap.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

// WithPasses replaces the default single pass.
func WithPasses(passes ...*Pass) Option {
	return func(o *options) { o.passes = passes }
}

// WithVolume picks the bounding volume used for culling.
func WithVolume(kind bounds.Kind) Option {
	return func(o *options) { o.volume = kind }
}

// WithPrecise makes culling use the three-way test instead of the cheap
// per-plane corner test.
func WithPrecise(precise bool) Option {
	return func(o *options) { o.precise = precise }
}

// WithCulling turns culling on or off. It is on by default.
func WithCulling(enabled bool) Option {
	return func(o *options) { o.culling = enabled }
}

func buildOptions(opts []Option) options {
	o := options{log: zap.NewNop(), culling: true}
	for _, opt := range opts {
		opt(&o)
	}
	if len(o.passes) == 0 {
		o.passes = []*Pass{DefaultPass()}
	}
	return o
}

// BasicRenderPipeline collects every submitted primitive, sorts it and hands
// it to the backend once per pass.
type BasicRenderPipeline struct {
	log     *zap.Logger
	backend Backend
	passes  []*Pass

	opaque      *RenderQueue
	transparent *RenderQueue
	camera      engine.Camera
	camPos      rl.Vector3
	stats       Stats

	// sink receives renderer submissions; embedding pipelines point it at
	// themselves to intercept PushPrimitive.
	sink engine.RenderSink
}

func NewBasicRenderPipeline(backend Backend, opts ...Option) *BasicRenderPipeline {
	o := buildOptions(opts)
	p := &BasicRenderPipeline{
		log:         o.log,
		backend:     backend,
		opaque:      NewRenderQueue(false),
		transparent: NewRenderQueue(true),
	}
	p.sink = p
	p.SetPasses(o.passes...)
	return p
}

// SetPasses replaces the passes, ordered by ascending priority.
func (p *BasicRenderPipeline) SetPasses(passes ...*Pass) {
	p.passes = slices.Clone(passes)
	slices.SortStableFunc(p.passes, func(a, b *Pass) int { return a.Priority - b.Priority })
}

func (p *BasicRenderPipeline) Passes() []*Pass { return p.passes }

func (p *BasicRenderPipeline) Stats() Stats { return p.stats }

// Queues exposes the sorted queues of the last frame.
func (p *BasicRenderPipeline) Queues() (opaque, transparent *RenderQueue) {
	return p.opaque, p.transparent
}

// PushPrimitive enqueues a primitive without any visibility test.
func (p *BasicRenderPipeline) PushPrimitive(r engine.Renderer, prim *graphics.Primitive, mat *graphics.Material) {
	p.stats.Submitted++
	prim.InFrustum = true
	p.push(r, prim, mat, r.GetEntity().WorldMatrix())
}

func (p *BasicRenderPipeline) push(r engine.Renderer, prim *graphics.Primitive, mat *graphics.Material, model rl.Matrix) {
	center := rl.Vector3Scale(rl.Vector3Add(prim.Min, prim.Max), 0.5)
	item := RenderItem{
		Component: r,
		Primitive: prim,
		Material:  mat,
		Model:     model,
		Distance:  rl.Vector3Distance(p.camPos, rl.Vector3Transform(center, model)),
	}
	if graphics.IsBlended(mat) {
		p.transparent.Push(item)
	} else {
		p.opaque.Push(item)
	}
}

// Render draws the active scene of cam's engine. A nil camera or a camera
// not in a scene produces nothing.
func (p *BasicRenderPipeline) Render(cam engine.Camera) {
	p.render(cam)
}

func (p *BasicRenderPipeline) render(cam engine.Camera) {
	p.opaque.Clear()
	p.transparent.Clear()
	p.stats = Stats{}
	p.camera = cam
	if cam == nil || cam.GetEntity() == nil || cam.GetEntity().Scene() == nil {
		return
	}
	p.camPos = cam.Position()

	cam.GetEntity().Scene().Engine().Components().CallRender(cam, p.sink)

	p.opaque.Sort()
	p.transparent.Sort()

	for _, pass := range p.passes {
		p.backend.BeginPass(cam, pass)
		p.drawQueue(p.opaque, pass)
		p.drawQueue(p.transparent, pass)
		p.backend.EndPass()
	}

	if ce := p.log.Check(zap.DebugLevel, "camera rendered"); ce != nil {
		ce.Write(
			zap.String("camera", cam.GetEntity().Name),
			zap.Int("submitted", p.stats.Submitted),
			zap.Int("culled", p.stats.Culled),
			zap.Int("drawn", p.stats.Drawn),
		)
	}
}

func (p *BasicRenderPipeline) drawQueue(q *RenderQueue, pass *Pass) {
	items := q.Items()
	for i := range items {
		if !items[i].Layer().Has(pass.Mask) {
			continue
		}
		p.backend.Draw(&items[i])
		p.stats.Drawn++
	}
}
