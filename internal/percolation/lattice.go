// Package percolation implements the per-lattice analyses of site
// percolation on an L×L square grid: random generation, top-to-bottom
// spanning tests, and Hoshen–Kopelman cluster labeling.
//
// Lattices are core.ByteGrid values with 1 for occupied and 0 for empty
// sites. Sites are 4-adjacent; there is no wrapping at the edges.
package percolation

import (
	"fmt"

	icore "percolate/internal/core"
	"percolate/pkg/core"
)

const occupied uint8 = 1

// Generate returns a fresh L×L lattice in which each site is occupied
// independently with probability p, one draw per site.
func Generate(l int, p float64, rng *core.RNG) (*icore.ByteGrid, error) {
	if l <= 0 {
		return nil, fmt.Errorf("generate %d×%d: %w", l, l, ErrInvalidSize)
	}
	if p < 0 || p > 1 {
		return nil, fmt.Errorf("generate p=%g: %w", p, ErrInvalidProbability)
	}
	g := icore.NewByteGrid(l, l)
	core.FillBernoulli(rng.Source(), g.Cells(), p)
	return g, nil
}

// FromRows builds a lattice from literal rows of 0/1 values. rows[y][x]
// addresses column x of row y.
func FromRows(rows [][]int) (*icore.ByteGrid, error) {
	l := len(rows)
	if l == 0 {
		return nil, ErrNotSquare
	}
	for _, row := range rows {
		if len(row) != l {
			return nil, ErrNotSquare
		}
	}
	g := icore.NewByteGrid(l, l)
	for y, row := range rows {
		for x, v := range row {
			switch v {
			case 0:
			case 1:
				g.Set(x, y, occupied)
			default:
				return nil, fmt.Errorf("cell (%d,%d)=%d: %w", x, y, v, ErrNotBinary)
			}
		}
	}
	return g, nil
}
