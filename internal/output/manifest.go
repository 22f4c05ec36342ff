package output

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"

	"percolate/internal/core"
	"percolate/internal/sweep"
)

// Manifest records how a sweep ran so that it can be reproduced: the seed
// alone determines every lattice for a given configuration.
type Manifest struct {
	RunID       string                 `toml:"run_id"`
	Seed        int64                  `toml:"seed"`
	Checker     string                 `toml:"checker"`
	Workers     int                    `toml:"workers"`
	Started     time.Time              `toml:"started"`
	Finished    time.Time              `toml:"finished"`
	Interrupted bool                   `toml:"interrupted"`
	Parameters  core.ParameterSnapshot `toml:"parameters"`
	Results     []sweep.Result         `toml:"results"`
}

// NewManifest starts a manifest for cfg with a fresh run id.
func NewManifest(cfg sweep.Config, started time.Time) *Manifest {
	return &Manifest{
		RunID:      uuid.NewString(),
		Seed:       cfg.Seed,
		Checker:    cfg.Checker,
		Workers:    cfg.Workers,
		Started:    started.UTC(),
		Parameters: cfg.Parameters(),
	}
}

// Finish stamps the end of the run and its results.
func (m *Manifest) Finish(results []sweep.Result, finished time.Time, interrupted bool) {
	m.Results = append([]sweep.Result(nil), results...)
	m.Finished = finished.UTC()
	m.Interrupted = interrupted
}

// Encode writes the manifest as TOML.
func (m *Manifest) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(m)
}

// ManifestPath returns the manifest file for the sink's lattice size and
// trial count.
func (s *FileSink) ManifestPath() string {
	return filepath.Join(s.Dir, fmt.Sprintf("Run-L%dT%d.toml", s.L, s.Trials))
}

// WriteManifest writes m next to the sink's other files.
func (s *FileSink) WriteManifest(m *Manifest) error {
	return writeAtomic(s.ManifestPath(), m.Encode)
}

// ReadManifest decodes a manifest previously written by WriteManifest.
func ReadManifest(path string) (*Manifest, error) {
	var m Manifest
	if _, err := toml.DecodeFile(path, &m); err != nil {
		return nil, fmt.Errorf("read manifest %s: %w", path, err)
	}
	return &m, nil
}
