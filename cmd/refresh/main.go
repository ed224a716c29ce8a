package main

import (
	"context"
	"flag"

	"dataset-refresh/internal/config"
	"dataset-refresh/internal/logging"
	"dataset-refresh/internal/refresh"
	"dataset-refresh/internal/sftpclient"
)

func main() {
	var (
		forceRefresh = flag.Bool("force-refresh", false, "download all themed datasets regardless of last run time")
		uploadSFTP   = flag.Bool("sftp", false, "mirror downloaded files to the configured SFTP drop directory")
	)
	flag.Parse()

	logging.Init(logging.FromEnv())
	log := logging.Named("main")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	orch := refresh.New(cfg)

	if *uploadSFTP {
		orch.Upload = func(ctx context.Context, paths []string) error {
			return sftpclient.UploadFiles(ctx, sftpclient.Config{
				Host:                  cfg.SFTPHost,
				Port:                  cfg.SFTPPort,
				User:                  cfg.SFTPUser,
				Pass:                  cfg.SFTPPass,
				RemoteDir:             cfg.SFTPDir,
				InsecureIgnoreHostKey: cfg.SFTPInsecureIgnoreHostKey,
			}, paths)
		}
	}

	log.Info().Msg("begin processing")

	// No overall batch deadline: once dispatched, a run proceeds to
	// completion. The metadata fetch carries its own timeout.
	summary, err := orch.Run(context.Background(), *forceRefresh)
	if err != nil {
		log.Fatal().Err(err).Msg("run failed")
	}

	log.Info().
		Str("origin", summary.Origin.String()).
		Int("selected", summary.Selected).
		Int("succeeded", summary.Succeeded).
		Int("failed", summary.Failed).
		Int("skipped_timestamps", summary.SkippedTimestamps).
		Msg("complete processing")
}
