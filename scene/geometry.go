package scene

import "fmt"

// Geometry is an immutable buffer of vertex positions. Positions are stored flat,
// ItemSize components per vertex.
type Geometry struct {
	positions []float32
	itemSize  int
}

// NewGeometry copies positions into a new Geometry.
func NewGeometry(positions []float32, itemSize int) (*Geometry, error) {
	if itemSize <= 0 {
		return nil, fmt.Errorf("invalid item size %d", itemSize)
	}
	if len(positions) == 0 || len(positions)%itemSize != 0 {
		return nil, fmt.Errorf("position count %d is not a multiple of item size %d", len(positions), itemSize)
	}
	p := make([]float32, len(positions))
	copy(p, positions)
	return &Geometry{positions: p, itemSize: itemSize}, nil
}

// Positions returns a copy of the raw position data.
func (g *Geometry) Positions() []float32 {
	p := make([]float32, len(g.positions))
	copy(p, g.positions)
	return p
}

func (g *Geometry) ItemSize() int {
	return g.itemSize
}

func (g *Geometry) VertexCount() int {
	return len(g.positions) / g.itemSize
}
