package refresh

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"dataset-refresh/internal/catalog"
	"dataset-refresh/internal/config"
	"dataset-refresh/internal/ledger"
	"dataset-refresh/internal/logging"
	"dataset-refresh/internal/pool"
)

// Uploader mirrors written artifacts somewhere else after a run. Optional.
type Uploader func(ctx context.Context, paths []string) error

// Summary reports what one run did. The ledger message records attempted
// entries; the true succeeded/failed split lives here and in the logs.
type Summary struct {
	RunID             string
	Origin            catalog.Origin
	Selected          int
	Succeeded         int
	Failed            int
	SkippedTimestamps int
	Uploaded          int
}

// Orchestrator wires source, selector, pipeline, and ledger into one run.
// All collaborators are explicit fields so tests can point them at temp
// directories and httptest servers.
type Orchestrator struct {
	Config config.Config
	Source *catalog.Source
	Ledger *ledger.Ledger
	Pipe   *Pipeline
	Upload Uploader
	Log    *zerolog.Logger
}

// New builds an orchestrator from configuration with the default HTTP
// clients and component loggers.
func New(cfg config.Config) *Orchestrator {
	return &Orchestrator{
		Config: cfg,
		Source: &catalog.Source{
			URL:          cfg.MetadataURL,
			FallbackPath: cfg.FallbackFile,
			Timeout:      cfg.MetadataTimeout,
			Log:          logging.Named("catalog"),
		},
		Ledger: &ledger.Ledger{
			Path: cfg.LedgerFile,
			Log:  logging.Named("ledger"),
		},
		Pipe: &Pipeline{
			OutputDir: cfg.OutputDir,
			Log:       logging.Named("pipeline"),
		},
		Log: logging.Named("refresh"),
	}
}

// Run executes one refresh: derive the cutoff, fetch the catalog, select
// changed entries, process them with bounded parallelism, and append one
// ledger line. Per-entry failures are isolated; only a ledger write failure
// is returned as an error.
func (o *Orchestrator) Run(ctx context.Context, forceRefresh bool) (Summary, error) {
	log := o.log().With().Str("run_id", uuid.NewString()).Logger()
	summary := Summary{}

	var cutoff time.Time
	if forceRefresh {
		log.Info().Msg("force refresh requested, using epoch floor cutoff")
	} else {
		cutoff = o.Ledger.LastRunTime()
	}
	log.Info().Time("cutoff", cutoff).Str("theme", o.Config.Theme).Msg("starting run")

	res := o.Source.Fetch(ctx)
	summary.Origin = res.Origin
	log.Info().Str("origin", res.Origin.String()).Int("entries", len(res.Entries)).Msg("catalog loaded")

	selected, skipped := Select(res.Entries, o.Config.Theme, cutoff)
	summary.Selected = len(selected)
	summary.SkippedTimestamps = len(skipped)
	for _, err := range skipped {
		log.Warn().Err(err).Msg("excluding entry from selection")
	}

	if len(selected) == 0 {
		log.Info().Msg("no new or updated datasets found")
		log.Info().Msg("to force a data refresh, add the --force-refresh argument")
		if err := o.Ledger.Append("Nothing to update"); err != nil {
			return summary, err
		}
		return summary, nil
	}

	log.Info().Int("count", len(selected)).Msg("processing selected datasets")

	paths, errs := pool.Map(ctx, selected, o.Config.Workers, func(ctx context.Context, _ int, e catalog.Entry) (string, error) {
		return o.Pipe.Process(ctx, e)
	})
	summary.Failed = len(errs)

	var written []string
	for _, p := range paths {
		if p != "" {
			written = append(written, p)
		}
	}
	summary.Succeeded = len(written)

	// The ledger note records attempted entries, not confirmed successes.
	if err := o.Ledger.Append(fmt.Sprintf("Downloaded %d file(s)", len(selected))); err != nil {
		return summary, err
	}

	if o.Upload != nil && len(written) > 0 {
		if err := o.Upload(ctx, written); err != nil {
			// Mirroring is supplemental; a failed upload does not fail the run.
			log.Error().Err(err).Msg("sftp mirror failed")
		} else {
			summary.Uploaded = len(written)
			log.Info().Int("count", len(written)).Msg("mirrored artifacts via sftp")
		}
	}

	return summary, nil
}

func (o *Orchestrator) log() *zerolog.Logger {
	if o.Log != nil {
		return o.Log
	}
	nop := zerolog.Nop()
	return &nop
}
