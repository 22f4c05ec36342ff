package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"percolate/internal/config"
	"percolate/internal/output"
	"percolate/internal/percolation"
	"percolate/internal/sweep"
)

const exitInterrupted = 130

func main() {
	paramsPath := flag.String("params", config.DefaultParamsFile, "parameter file holding L, T, p0, pk and dp")
	configPath := flag.String("config", "", "optional settings file (toml, yaml or json)")
	outDir := flag.String("out", ".", "directory for distribution, summary and manifest files")
	seed := flag.Int64("seed", 0, "RNG seed; 0 derives one from the clock")
	workers := flag.Int("workers", 1, "trials evaluated concurrently; 0 uses every CPU")
	checker := flag.String("checker", percolation.CheckerFrontier, "spanning checker (frontier or stack)")
	resolve := flag.Bool("resolve", false, "rewrite cluster labels to their final roots")
	logLevel := flag.String("log-level", "info", "log level (debug, info, warn, error)")
	reproduce := flag.String("reproduce", "", "manifest of an earlier run whose parameters, seed and checker to reuse")
	flag.Parse()

	os.Exit(run(*configPath, *reproduce, func(s *config.Settings) {
		// Only flags given on the command line override file and
		// environment settings.
		flag.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "params":
				s.Set(config.KeyParams, *paramsPath)
			case "out":
				s.Set(config.KeyOutputDir, *outDir)
			case "seed":
				s.Set(config.KeySeed, *seed)
			case "workers":
				s.Set(config.KeyWorkers, *workers)
			case "checker":
				s.Set(config.KeyChecker, *checker)
			case "resolve":
				s.Set(config.KeyResolveLabels, *resolve)
			case "log-level":
				s.Set(config.KeyLogLevel, *logLevel)
			}
		})
	}))
}

func run(configPath, reproduce string, applyFlags func(*config.Settings)) int {
	settings := config.NewSettings()
	if configPath != "" {
		if err := settings.LoadFromFile(configPath); err != nil {
			zerolog.New(os.Stderr).Error().Err(err).Str("path", configPath).Msg("load settings")
			return 1
		}
	}
	var prev *output.Manifest
	if reproduce != "" {
		var err error
		if prev, err = output.ReadManifest(reproduce); err != nil {
			zerolog.New(os.Stderr).Error().Err(err).Msg("load manifest")
			return 1
		}
		settings.Set(config.KeySeed, prev.Seed)
		settings.Set(config.KeyChecker, prev.Checker)
	}
	applyFlags(settings)

	logger := settings.Logger(os.Stderr)

	params, err := loadParams(settings, prev)
	if err != nil {
		logger.Error().Err(err).Msg("read parameters")
		return 1
	}
	cfg := settings.SweepConfig(params)
	if err := cfg.Validate(); err != nil {
		logger.Error().Err(err).Msg("invalid sweep")
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	manifest := output.NewManifest(cfg, time.Now())
	logger = logger.With().Str("run", manifest.RunID).Logger()

	sink := output.NewFileSink(settings.OutputDir(), cfg)
	runner := sweep.NewRunner(sink, logger)
	runner.ProgressInterval = settings.ProgressInterval()

	results, runErr := runner.Run(ctx, cfg)
	interrupted := sweep.Interrupted(runErr)
	if runErr != nil && !interrupted {
		logger.Error().Err(runErr).Msg("sweep failed")
		return 1
	}

	manifest.Finish(results, time.Now(), interrupted)
	if err := sink.WriteManifest(manifest); err != nil {
		logger.Error().Err(err).Msg("write manifest")
		return 1
	}
	logger.Info().
		Str("summary", sink.SummaryPath()).
		Str("manifest", sink.ManifestPath()).
		Msg("output written")

	if interrupted {
		return exitInterrupted
	}
	return 0
}

// loadParams takes the sweep values from the manifest being reproduced, or
// from the parameter file otherwise.
func loadParams(settings *config.Settings, prev *output.Manifest) (config.Params, error) {
	if prev == nil {
		return config.ReadParams(settings.ParamsFile())
	}
	return config.ParamsFromSnapshot(prev.Parameters)
}
