package render

import (
	"render3d/internal/bounds"
	"render3d/internal/engine"
	"render3d/internal/graphics"
)

// CullRenderPipeline is a BasicRenderPipeline that drops primitives whose
// bounding volume is outside the camera frustum. The frustum is extracted
// once per Render; each submitted primitive gets its volume built on first
// use and refreshed from the entity's world matrix on every submission.
type CullRenderPipeline struct {
	*BasicRenderPipeline

	frustum bounds.Frustum
	volume  bounds.Kind
	precise bool
	culling bool
}

func NewCullRenderPipeline(backend Backend, opts ...Option) *CullRenderPipeline {
	o := buildOptions(opts)
	p := &CullRenderPipeline{
		BasicRenderPipeline: NewBasicRenderPipeline(backend, opts...),
		volume:              o.volume,
		precise:             o.precise,
		culling:             o.culling,
	}
	p.sink = p
	return p
}

func (p *CullRenderPipeline) Frustum() *bounds.Frustum { return &p.frustum }

func (p *CullRenderPipeline) SetCulling(enabled bool) { p.culling = enabled }
func (p *CullRenderPipeline) Culling() bool           { return p.culling }

func (p *CullRenderPipeline) SetPrecise(precise bool) { p.precise = precise }
func (p *CullRenderPipeline) Precise() bool           { return p.precise }

func (p *CullRenderPipeline) SetVolumeKind(kind bounds.Kind) { p.volume = kind }

// Render updates the frustum from cam and renders. A nil camera renders
// nothing.
func (p *CullRenderPipeline) Render(cam engine.Camera) {
	if cam != nil {
		p.frustum.Update(cam.ViewProjectionMatrix())
	}
	p.render(cam)
}

// PushPrimitive tests prim against the frustum and forwards it to the
// queues when visible. The verdict is stored on the primitive.
func (p *CullRenderPipeline) PushPrimitive(r engine.Renderer, prim *graphics.Primitive, mat *graphics.Material) {
	p.stats.Submitted++
	model := r.GetEntity().WorldMatrix()

	if !p.culling {
		prim.InFrustum = true
		prim.Intersect = bounds.Include
		p.push(r, prim, mat, model)
		return
	}

	vol := prim.Volume(p.volume)
	vol.UpdateByModelMatrix(model)
	if p.precise {
		prim.Intersect = vol.IntersectsFrustum(&p.frustum)
		prim.InFrustum = prim.Intersect != bounds.Exclude
	} else {
		prim.InFrustum = vol.IsInFrustum(&p.frustum)
		prim.Intersect = bounds.Exclude
		if prim.InFrustum {
			prim.Intersect = bounds.Intersect
		}
	}

	if !prim.InFrustum {
		p.stats.Culled++
		return
	}
	p.push(r, prim, mat, model)
}
