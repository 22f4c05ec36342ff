package sweep

import (
	"errors"
	"fmt"
	"math"
	"runtime"

	"percolate/internal/core"
	"percolate/internal/percolation"
)

// ErrInvalidConfig indicates sweep parameters that cannot produce a
// well-defined, finite sweep.
var ErrInvalidConfig = errors.New("sweep: invalid configuration")

// ratioTolerance absorbs floating-point noise when counting sweep points so
// that a range like [0, 1) in steps of 0.1 yields exactly ten points.
const ratioTolerance = 1e-9

// maxPoints caps the number of swept probabilities.
const maxPoints = 1_000_000

// MinStep is the finest probability step. Probabilities are rounded to 12
// decimals, so finer steps would repeat values.
const MinStep = 1e-12

// Config controls a Monte Carlo sweep over occupation probabilities.
type Config struct {
	// L is the linear lattice size.
	L int
	// Trials is the number of independent lattices per probability.
	Trials int
	// P0 is the first probability; PK is the exclusive upper bound.
	P0, PK float64
	// DP is the probability step.
	DP float64

	// Seed fixes every random stream of the sweep.
	Seed int64
	// Workers bounds the number of trials evaluated concurrently.
	Workers int
	// Checker names the registered spanning checker.
	Checker string
	// Resolve rewrites label grids to final roots after each labeling pass.
	Resolve bool
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		L:       32,
		Trials:  100,
		P0:      0.1,
		PK:      1.0,
		DP:      0.1,
		Seed:    1337,
		Workers: 1,
		Checker: percolation.CheckerFrontier,
	}
}

// MaxWorkers returns a worker count suited to the host.
func MaxWorkers() int { return runtime.NumCPU() }

// Validate rejects configurations that would loop forever, produce no
// points, or sample probabilities outside [0, 1].
func (c Config) Validate() error {
	switch {
	case c.L <= 0:
		return fmt.Errorf("%w: lattice size L=%d must be positive", ErrInvalidConfig, c.L)
	case c.Trials <= 0:
		return fmt.Errorf("%w: trials T=%d must be positive", ErrInvalidConfig, c.Trials)
	case math.IsNaN(c.DP) || c.DP <= 0:
		return fmt.Errorf("%w: step dp=%g must be positive", ErrInvalidConfig, c.DP)
	case c.DP < MinStep:
		return fmt.Errorf("%w: step dp=%g is finer than %g", ErrInvalidConfig, c.DP, MinStep)
	case math.IsNaN(c.P0) || math.IsNaN(c.PK) || c.P0 >= c.PK:
		return fmt.Errorf("%w: start p0=%g must be below end pk=%g", ErrInvalidConfig, c.P0, c.PK)
	case c.P0 < 0:
		return fmt.Errorf("%w: start p0=%g must not be negative", ErrInvalidConfig, c.P0)
	case c.Workers < 1:
		return fmt.Errorf("%w: workers=%d must be at least 1", ErrInvalidConfig, c.Workers)
	}
	if _, ok := core.Checkers()[c.Checker]; !ok {
		return fmt.Errorf("%w: unknown checker %q (have %v)", ErrInvalidConfig, c.Checker, core.CheckerNames())
	}
	if n := c.Points(); n <= 0 || n > maxPoints {
		return fmt.Errorf("%w: range [%g, %g) in steps of %g gives %d points", ErrInvalidConfig, c.P0, c.PK, c.DP, n)
	}
	ps := c.Probabilities()
	if last := ps[len(ps)-1]; last > 1 {
		return fmt.Errorf("%w: sweep reaches p=%g above 1", ErrInvalidConfig, last)
	}
	return nil
}

// Points returns the number of probabilities in [P0, PK) on the DP grid.
func (c Config) Points() int {
	if c.DP <= 0 || c.P0 >= c.PK {
		return 0
	}
	n := math.Ceil((c.PK-c.P0)/c.DP - ratioTolerance)
	if n > maxPoints {
		return maxPoints + 1
	}
	return int(n)
}

// Probabilities returns P0 + i·DP for every point below PK. Each value is
// computed from its index and rounded to 12 decimals so that steps do not
// accumulate drift.
func (c Config) Probabilities() []float64 {
	n := c.Points()
	ps := make([]float64, n)
	for i := range ps {
		ps[i] = math.Round((c.P0+float64(i)*c.DP)*1e12) / 1e12
	}
	return ps
}

// Parameters captures the configuration for logs and run manifests.
func (c Config) Parameters() core.ParameterSnapshot {
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Lattice",
			Params: []core.Parameter{
				core.IntParam("L", "Linear size", c.L),
			},
		},
		{
			Name: "Sweep",
			Params: []core.Parameter{
				core.IntParam("T", "Trials per probability", c.Trials),
				core.FloatParam("p0", "Start probability", c.P0),
				core.FloatParam("pk", "End probability (exclusive)", c.PK),
				core.FloatParam("dp", "Probability step", c.DP),
				core.IntParam("points", "Probabilities swept", c.Points()),
			},
		},
		{
			Name: "Runtime",
			Params: []core.Parameter{
				core.Int64Param("seed", "Seed", c.Seed),
				core.IntParam("workers", "Workers", c.Workers),
				core.StringParam("checker", "Spanning checker", c.Checker),
				core.BoolParam("resolve_labels", "Resolve label grids", c.Resolve),
			},
		},
	}}
}
