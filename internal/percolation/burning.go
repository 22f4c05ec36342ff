package percolation

import (
	"percolate/internal/core"
)

// Checker names accepted by core.Checkers.
const (
	CheckerStack    = "stack"
	CheckerFrontier = "frontier"
)

// offsets lists the 4-neighbourhood as (dx, dy) pairs: N, E, S, W.
var offsets = [4][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}

// BurnResult reports the outcome of a frontier burn.
type BurnResult struct {
	// Spans is true when the fire reached the bottom row.
	Spans bool
	// Steps is the time step at which the bottom row first ignited, which is
	// the length of the shortest occupied path from the top row to the bottom
	// row. Zero when the lattice does not span.
	Steps int
}

// Burn ignites every occupied site of row 0 at t=0 and advances the fire one
// 4-neighbour ring per time step. It stops as soon as the bottom row ignites
// or the frontier dies out. Each occupied site burns at most once.
//
// Time: O(occupied sites). Memory: O(L²).
func Burn(g *core.ByteGrid) BurnResult {
	cells := g.Cells()
	burnt := make([]bool, len(cells))
	var frontier []int
	for x := 0; x < g.W; x++ {
		if cells[x] == occupied {
			burnt[x] = true
			frontier = append(frontier, x)
		}
	}
	if len(frontier) > 0 && g.H == 1 {
		return BurnResult{Spans: true}
	}

	last := g.H - 1
	var next []int
	for t := 1; len(frontier) > 0; t++ {
		next = next[:0]
		for _, idx := range frontier {
			x, y := idx%g.W, idx/g.W
			for _, d := range offsets {
				nx, ny := x+d[0], y+d[1]
				if !g.InBounds(nx, ny) {
					continue
				}
				ni := g.Index(nx, ny)
				if cells[ni] != occupied || burnt[ni] {
					continue
				}
				if ny == last {
					return BurnResult{Spans: true, Steps: t}
				}
				burnt[ni] = true
				next = append(next, ni)
			}
		}
		frontier, next = next, frontier
	}
	return BurnResult{}
}

// SpansStack answers the same reachability question as Burn with a
// depth-first stack. It does not measure burn time.
//
// Time: O(occupied sites). Memory: O(L²).
func SpansStack(g *core.ByteGrid) bool {
	cells := g.Cells()
	visited := make([]bool, len(cells))
	stack := make([]int, 0, g.W)
	for x := 0; x < g.W; x++ {
		if cells[x] == occupied {
			visited[x] = true
			stack = append(stack, x)
		}
	}

	last := g.H - 1
	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		x, y := idx%g.W, idx/g.W
		if y == last {
			return true
		}
		for _, d := range offsets {
			nx, ny := x+d[0], y+d[1]
			if !g.InBounds(nx, ny) {
				continue
			}
			ni := g.Index(nx, ny)
			if cells[ni] == occupied && !visited[ni] {
				visited[ni] = true
				stack = append(stack, ni)
			}
		}
	}
	return false
}

type stackChecker struct{}

func (stackChecker) Name() string                { return CheckerStack }
func (stackChecker) Spans(g *core.ByteGrid) bool { return SpansStack(g) }

type frontierChecker struct{}

func (frontierChecker) Name() string                { return CheckerFrontier }
func (frontierChecker) Spans(g *core.ByteGrid) bool { return Burn(g).Spans }

func init() {
	core.Register(CheckerStack, func() core.Checker { return stackChecker{} })
	core.Register(CheckerFrontier, func() core.Checker { return frontierChecker{} })
}
