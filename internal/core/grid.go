package core

// ByteGrid stores a 2D grid of byte-sized cell values in row-major order.
type ByteGrid struct {
	W, H int
	data []uint8
}

// NewByteGrid allocates a grid with the given dimensions.
func NewByteGrid(w, h int) *ByteGrid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &ByteGrid{W: w, H: h, data: make([]uint8, w*h)}
}

// Cells exposes the backing slice so callers can read/write values directly.
func (g *ByteGrid) Cells() []uint8 { return g.data }

// Index returns the linear slice index for coordinates (x, y).
func (g *ByteGrid) Index(x, y int) int { return y*g.W + x }

// InBounds reports whether (x, y) lies inside the grid.
func (g *ByteGrid) InBounds(x, y int) bool {
	return x >= 0 && x < g.W && y >= 0 && y < g.H
}

// At returns the value stored at (x, y).
func (g *ByteGrid) At(x, y int) uint8 { return g.data[y*g.W+x] }

// Set stores v at (x, y).
func (g *ByteGrid) Set(x, y int, v uint8) { g.data[y*g.W+x] = v }

// Count returns how many cells hold v.
func (g *ByteGrid) Count(v uint8) int {
	n := 0
	for _, c := range g.data {
		if c == v {
			n++
		}
	}
	return n
}

// LabelGrid stores integer labels in row-major order. Zero means unlabeled.
type LabelGrid struct {
	W, H int
	data []int
}

// NewLabelGrid allocates a zeroed label grid with the given dimensions.
func NewLabelGrid(w, h int) *LabelGrid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &LabelGrid{W: w, H: h, data: make([]int, w*h)}
}

// Cells exposes the backing slice.
func (g *LabelGrid) Cells() []int { return g.data }

// At returns the label stored at (x, y).
func (g *LabelGrid) At(x, y int) int { return g.data[y*g.W+x] }

// Set stores label at (x, y).
func (g *LabelGrid) Set(x, y, label int) { g.data[y*g.W+x] = label }

// Row returns a view of row y.
func (g *LabelGrid) Row(y int) []int { return g.data[y*g.W : (y+1)*g.W] }
