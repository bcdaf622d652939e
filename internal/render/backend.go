package render

import "render3d/internal/engine"

// Pass is one submission of the sorted queues to the backend. Items are
// drawn only when their entity layer matches Mask.
type Pass struct {
	Name     string
	Priority int
	Mask     engine.Layer
}

// DefaultPass draws every layer.
func DefaultPass() *Pass {
	return &Pass{Name: "forward", Mask: engine.LayerEverything}
}

// Backend turns render items into GPU work.
type Backend interface {
	BeginPass(cam engine.Camera, pass *Pass)
	Draw(item *RenderItem)
	EndPass()
}

// DrawCall is what Recorder keeps for each Draw.
type DrawCall struct {
	Pass string
	Item RenderItem
}

// Recorder is a Backend that keeps draw calls in memory instead of drawing.
type Recorder struct {
	Calls  []DrawCall
	Passes []string

	current string
}

func (r *Recorder) BeginPass(cam engine.Camera, pass *Pass) {
	r.current = pass.Name
	r.Passes = append(r.Passes, pass.Name)
}

func (r *Recorder) Draw(item *RenderItem) {
	r.Calls = append(r.Calls, DrawCall{Pass: r.current, Item: *item})
}

func (r *Recorder) EndPass() { r.current = "" }

// Reset forgets everything recorded so far.
func (r *Recorder) Reset() {
	r.Calls = r.Calls[:0]
	r.Passes = r.Passes[:0]
}
