package engine

// Layer is a bit mask used to match entities against camera and pass masks.
type Layer uint32

const (
	LayerNone       Layer = 0
	LayerDefault    Layer = 1 << 0
	LayerUI         Layer = 1 << 1
	LayerBackground Layer = 1 << 2
	LayerEverything Layer = ^Layer(0)
)

// Has reports whether l shares at least one bit with mask.
func (l Layer) Has(mask Layer) bool { return l&mask != 0 }
