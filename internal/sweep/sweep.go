// Package sweep drives the Monte Carlo estimate of percolation statistics
// over a range of occupation probabilities.
package sweep

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	icore "percolate/internal/core"
	"percolate/internal/percolation"
	"percolate/pkg/core"
)

// ErrSummary marks a failed summary write. Run joins it with any
// cancellation error, so an interrupted run whose summary could not be
// written still reports the write failure.
var ErrSummary = errors.New("sweep: write summary")

// Interrupted reports whether err means the sweep stopped on cancellation
// with all of its output written.
func Interrupted(err error) bool {
	return errors.Is(err, context.Canceled) && !errors.Is(err, ErrSummary)
}

// Result aggregates every trial run at one occupation probability.
type Result struct {
	// P is the occupation probability.
	P float64 `toml:"p"`
	// Spanning is the fraction of trials whose lattice spanned.
	Spanning float64 `toml:"spanning"`
	// MeanLargest is the mean size of the largest cluster per trial.
	MeanLargest float64 `toml:"mean_largest"`

	SpanningStdErr float64 `toml:"spanning_stderr"`
	LargestStdErr  float64 `toml:"largest_stderr"`
	// MeanBurnTime averages the frontier burn time over spanning trials.
	// Zero when no trial spanned or the checker does not measure it.
	MeanBurnTime float64 `toml:"mean_burn_time"`
	Trials       int     `toml:"trials"`
}

// Sink receives sweep output. WriteDistribution is called once per
// probability after its trials complete; WriteSummary once after the sweep.
type Sink interface {
	WriteDistribution(p float64, dist percolation.Distribution) error
	WriteSummary(results []Result) error
}

// Runner executes sweeps against a Sink.
type Runner struct {
	sink   Sink
	logger zerolog.Logger

	// ProgressInterval bounds how often per-trial progress is logged.
	ProgressInterval time.Duration
}

// NewRunner returns a Runner that writes to sink and logs through logger.
func NewRunner(sink Sink, logger zerolog.Logger) *Runner {
	return &Runner{sink: sink, logger: logger, ProgressInterval: time.Second}
}

// trialOutcome is everything a trial contributes to its probability's
// aggregate. The lattice and union-find are gone by the time it exists.
type trialOutcome struct {
	spans   bool
	largest int
	steps   int
	sizes   percolation.Distribution
}

// Run sweeps every probability of cfg. Each probability gets cfg.Trials
// independent lattices; its distribution is written as soon as its trials
// complete and the summary is written once at the end.
//
// Cancellation is honoured between trials. The probability in flight is
// dropped, the summary still covers every completed probability, and Run
// returns those results together with the context error.
func (r *Runner) Run(ctx context.Context, cfg Config) ([]Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	checker := icore.Checkers()[cfg.Checker]()
	ps := cfg.Probabilities()
	results := make([]Result, 0, len(ps))

	r.logger.Info().
		Int("L", cfg.L).
		Int("T", cfg.Trials).
		Int("points", len(ps)).
		Int64("seed", cfg.Seed).
		Int("workers", cfg.Workers).
		Str("checker", checker.Name()).
		Msg("sweep started")

	var runErr error
	for i, p := range ps {
		start := time.Now()
		outcomes, err := r.runTrials(ctx, cfg, checker, i, p)
		if err != nil {
			runErr = err
			break
		}
		res, dist := aggregate(p, outcomes)
		if err := r.sink.WriteDistribution(p, dist); err != nil {
			return results, fmt.Errorf("write distribution p=%g: %w", p, err)
		}
		results = append(results, res)
		r.logger.Info().
			Float64("p", p).
			Float64("spanning", res.Spanning).
			Float64("mean_largest", res.MeanLargest).
			Float64("largest_stderr", res.LargestStdErr).
			Int("sizes", len(dist)).
			Dur("elapsed", time.Since(start)).
			Msgf("probability %d/%d done", i+1, len(ps))
	}

	if err := r.sink.WriteSummary(results); err != nil {
		return results, errors.Join(runErr, fmt.Errorf("%w: %w", ErrSummary, err))
	}
	if runErr != nil {
		r.logger.Warn().Err(runErr).Int("completed", len(results)).Msg("sweep interrupted")
		return results, runErr
	}
	r.logger.Info().Int("completed", len(results)).Msg("sweep finished")
	return results, nil
}

// runTrials evaluates every trial at probability index pi. Outcomes are
// stored by trial index so aggregation never depends on scheduling.
func (r *Runner) runTrials(ctx context.Context, cfg Config, checker icore.Checker, pi int, p float64) ([]trialOutcome, error) {
	outcomes := make([]trialOutcome, cfg.Trials)

	if cfg.Workers <= 1 {
		progress := icore.NewThrottle(r.ProgressInterval)
		for ti := range outcomes {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			o, err := runTrial(cfg, checker, pi, ti, p)
			if err != nil {
				return nil, err
			}
			outcomes[ti] = o
			if progress.Ready() {
				r.logger.Debug().Float64("p", p).Int("trial", ti+1).Int("of", cfg.Trials).Msg("progress")
			}
		}
		return outcomes, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for ti := range outcomes {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			o, err := runTrial(cfg, checker, pi, ti, p)
			if err != nil {
				return err
			}
			outcomes[ti] = o
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	// errgroup cancels gctx only on a trial error; a parent cancellation
	// observed mid-loop leaves some outcomes unset.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

// runTrial generates one lattice on its own random stream and analyses it.
// The stream depends only on the seed and the (probability, trial) indices.
func runTrial(cfg Config, checker icore.Checker, pi, ti int, p float64) (trialOutcome, error) {
	rng := core.NewStream(cfg.Seed, uint64(pi)<<32|uint64(ti))
	g, err := percolation.Generate(cfg.L, p, rng)
	if err != nil {
		return trialOutcome{}, err
	}

	var o trialOutcome
	if checker.Name() == percolation.CheckerFrontier {
		burn := percolation.Burn(g)
		o.spans, o.steps = burn.Spans, burn.Steps
	} else {
		o.spans = checker.Spans(g)
	}
	clusters := percolation.Label(g, percolation.LabelOptions{Resolve: cfg.Resolve})
	o.largest = clusters.Largest
	o.sizes = clusters.Sizes
	return o, nil
}

// aggregate folds per-trial outcomes into a Result and the merged size
// distribution.
func aggregate(p float64, outcomes []trialOutcome) (Result, percolation.Distribution) {
	n := len(outcomes)
	spans := make([]float64, n)
	largest := make([]float64, n)
	var burn []float64
	dist := make(percolation.Distribution)
	for i, o := range outcomes {
		if o.spans {
			spans[i] = 1
			if o.steps > 0 {
				burn = append(burn, float64(o.steps))
			}
		}
		largest[i] = float64(o.largest)
		dist.Merge(o.sizes)
	}

	res := Result{
		P:           p,
		Spanning:    stat.Mean(spans, nil),
		MeanLargest: stat.Mean(largest, nil),
		Trials:      n,
	}
	if n > 1 {
		res.SpanningStdErr = stat.StdErr(stat.StdDev(spans, nil), float64(n))
		res.LargestStdErr = stat.StdErr(stat.StdDev(largest, nil), float64(n))
	}
	if len(burn) > 0 {
		res.MeanBurnTime = stat.Mean(burn, nil)
	}
	if math.IsNaN(res.SpanningStdErr) {
		res.SpanningStdErr = 0
	}
	if math.IsNaN(res.LargestStdErr) {
		res.LargestStdErr = 0
	}
	return res, dist
}
