// Package output writes sweep results as plain-text files.
package output

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"percolate/internal/percolation"
	"percolate/internal/sweep"
)

// defaultPrecision is the number of decimals encoding p in distribution
// filenames.
const defaultPrecision = 2

// FileSink writes one distribution file per probability and one summary
// file per sweep into Dir. Existing files with the same name are replaced.
type FileSink struct {
	Dir       string
	L, Trials int
	// Precision is the number of decimals encoding p in distribution
	// filenames.
	Precision int
}

// NewFileSink returns a FileSink for cfg. The filename precision grows with
// the decimals in cfg.P0 and cfg.DP so that distinct probabilities never
// share a distribution file.
func NewFileSink(dir string, cfg sweep.Config) *FileSink {
	return &FileSink{
		Dir:       dir,
		L:         cfg.L,
		Trials:    cfg.Trials,
		Precision: max(PrecisionFor(cfg.DP), PrecisionFor(cfg.P0)),
	}
}

// PrecisionFor returns the number of decimals needed to write v exactly,
// never fewer than two and never more than twelve.
func PrecisionFor(v float64) int {
	prec := defaultPrecision
	if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return prec
	}
	for prec < 12 {
		scaled := v * math.Pow10(prec)
		if math.Abs(scaled-math.Round(scaled)) < 1e-6*math.Max(1, scaled) {
			break
		}
		prec++
	}
	return prec
}

// DistributionPath returns the file that holds the distribution for p.
func (s *FileSink) DistributionPath(p float64) string {
	prec := s.Precision
	if prec <= 0 {
		prec = defaultPrecision
	}
	name := fmt.Sprintf("Dist-p%.*fL%dT%d.txt", prec, p, s.L, s.Trials)
	return filepath.Join(s.Dir, name)
}

// SummaryPath returns the file that holds the sweep summary.
func (s *FileSink) SummaryPath() string {
	return filepath.Join(s.Dir, fmt.Sprintf("Ave-L%dT%d.txt", s.L, s.Trials))
}

// WriteDistribution writes one "size  count" line per observed cluster size
// in ascending size order. An empty distribution produces an empty file.
func (s *FileSink) WriteDistribution(p float64, dist percolation.Distribution) error {
	return writeAtomic(s.DistributionPath(p), func(w io.Writer) error {
		return FormatDistribution(w, dist)
	})
}

// WriteSummary writes one "p  spanning  meanLargest" line per result.
func (s *FileSink) WriteSummary(results []sweep.Result) error {
	return writeAtomic(s.SummaryPath(), func(w io.Writer) error {
		return FormatSummary(w, results)
	})
}

// FormatDistribution renders dist in the distribution file format.
func FormatDistribution(w io.Writer, dist percolation.Distribution) error {
	for _, size := range dist.Sizes() {
		if _, err := fmt.Fprintf(w, "%d  %d\n", size, dist[size]); err != nil {
			return err
		}
	}
	return nil
}

// FormatSummary renders results in the summary file format. Floats use the
// shortest representation that round-trips.
func FormatSummary(w io.Writer, results []sweep.Result) error {
	for _, r := range results {
		if _, err := fmt.Fprintf(w, "%s  %s  %s\n", formatFloat(r.P), formatFloat(r.Spanning), formatFloat(r.MeanLargest)); err != nil {
			return err
		}
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// writeAtomic renders into a temporary file next to path and renames it into
// place, so readers never observe a half-written file.
func writeAtomic(path string, render func(io.Writer) error) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", path, err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	bw := bufio.NewWriter(tmp)
	if err := render(bw); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename into %s: %w", path, err)
	}
	return nil
}

// MemorySink keeps sweep output in memory.
type MemorySink struct {
	mu            sync.Mutex
	Distributions map[float64]percolation.Distribution
	Order         []float64
	Summaries     [][]sweep.Result
}

// NewMemorySink returns an empty MemorySink.
func NewMemorySink() *MemorySink {
	return &MemorySink{Distributions: make(map[float64]percolation.Distribution)}
}

// WriteDistribution records a copy of dist under p.
func (m *MemorySink) WriteDistribution(p float64, dist percolation.Distribution) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make(percolation.Distribution, len(dist))
	cp.Merge(dist)
	m.Distributions[p] = cp
	m.Order = append(m.Order, p)
	return nil
}

// WriteSummary records a copy of results.
func (m *MemorySink) WriteSummary(results []sweep.Result) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Summaries = append(m.Summaries, append([]sweep.Result(nil), results...))
	return nil
}
