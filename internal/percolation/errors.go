package percolation

import "errors"

var (
	// ErrInvalidSize indicates a non-positive lattice size.
	ErrInvalidSize = errors.New("percolation: lattice size must be positive")
	// ErrInvalidProbability indicates an occupation probability outside [0, 1].
	ErrInvalidProbability = errors.New("percolation: occupation probability must lie in [0, 1]")
	// ErrNotSquare indicates literal rows that do not form an L×L lattice.
	ErrNotSquare = errors.New("percolation: lattice rows must form a non-empty square")
	// ErrNotBinary indicates a literal cell value other than 0 or 1.
	ErrNotBinary = errors.New("percolation: lattice cells must be 0 or 1")
)
