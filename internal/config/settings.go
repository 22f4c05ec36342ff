package config

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"percolate/internal/percolation"
	"percolate/internal/sweep"
)

// Setting keys.
const (
	KeyParams           = "params"
	KeyOutputDir        = "output.dir"
	KeySeed             = "sweep.seed"
	KeyWorkers          = "sweep.workers"
	KeyChecker          = "sweep.checker"
	KeyResolveLabels    = "sweep.resolve_labels"
	KeyLogLevel         = "logging.level"
	KeyProgressInterval = "logging.progress_interval_ms"
)

// EnvPrefix prefixes environment overrides, e.g. PERCOLATE_SWEEP_WORKERS.
const EnvPrefix = "PERCOLATE"

// Settings manages runtime configuration using Viper. Precedence, highest
// first: explicit Set calls (CLI flags), environment, config file, defaults.
type Settings struct {
	v *viper.Viper
}

// NewSettings creates settings with defaults and environment binding.
func NewSettings() *Settings {
	v := viper.New()

	v.SetDefault(KeyParams, DefaultParamsFile)
	v.SetDefault(KeyOutputDir, ".")

	v.SetDefault(KeySeed, 0)
	v.SetDefault(KeyWorkers, 1)
	v.SetDefault(KeyChecker, percolation.CheckerFrontier)
	v.SetDefault(KeyResolveLabels, false)

	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyProgressInterval, 1000)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return &Settings{v: v}
}

// LoadFromFile merges a TOML, YAML or JSON settings file.
func (s *Settings) LoadFromFile(path string) error {
	s.v.SetConfigFile(path)
	return s.v.ReadInConfig()
}

// Set overrides a setting.
func (s *Settings) Set(key string, value any) {
	s.v.Set(key, value)
}

// ParamsFile returns the path of the sweep parameter file.
func (s *Settings) ParamsFile() string { return s.v.GetString(KeyParams) }

// OutputDir returns the directory that receives result files.
func (s *Settings) OutputDir() string { return s.v.GetString(KeyOutputDir) }

// Seed returns the configured seed; zero means derive one from the clock.
func (s *Settings) Seed() int64 { return s.v.GetInt64(KeySeed) }

// Workers returns the configured trial concurrency; zero or less means one
// per CPU.
func (s *Settings) Workers() int { return s.v.GetInt(KeyWorkers) }

// Checker returns the name of the spanning checker.
func (s *Settings) Checker() string { return s.v.GetString(KeyChecker) }

// ResolveLabels reports whether label grids are rewritten to final roots.
func (s *Settings) ResolveLabels() bool { return s.v.GetBool(KeyResolveLabels) }

// LogLevel returns the zerolog level name.
func (s *Settings) LogLevel() string { return s.v.GetString(KeyLogLevel) }

// ProgressIntervalMS returns the progress log interval in milliseconds.
func (s *Settings) ProgressIntervalMS() int { return s.v.GetInt(KeyProgressInterval) }

// ProgressInterval returns the progress log interval.
func (s *Settings) ProgressInterval() time.Duration {
	return time.Duration(s.ProgressIntervalMS()) * time.Millisecond
}

// SweepConfig combines the parameter file values with runtime settings.
// A zero seed is replaced with one derived from the clock; workers of zero
// or less mean one per CPU.
func (s *Settings) SweepConfig(p Params) sweep.Config {
	cfg := sweep.Config{
		L:       p.L,
		Trials:  p.Trials,
		P0:      p.P0,
		PK:      p.PK,
		DP:      p.DP,
		Seed:    s.Seed(),
		Workers: s.Workers(),
		Checker: s.Checker(),
		Resolve: s.ResolveLabels(),
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.Workers <= 0 {
		cfg.Workers = sweep.MaxWorkers()
	}
	return cfg
}

// Logger creates a zerolog console logger at the configured level.
func (s *Settings) Logger(w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(s.LogLevel())
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	return zerolog.New(zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: "15:04:05",
	}).Level(level).With().Timestamp().Str("service", "percolate").Logger()
}
