// Package main provides the entry point for the data ingestion CLI.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/esports-predictor/internal/config"
	"github.com/yourusername/esports-predictor/internal/database"
	"github.com/yourusername/esports-predictor/internal/health"
	"github.com/yourusername/esports-predictor/internal/liquipedia"
	"github.com/yourusername/esports-predictor/internal/logger"
	"github.com/yourusername/esports-predictor/internal/metrics"
	"github.com/yourusername/esports-predictor/internal/pipeline"
	"github.com/yourusername/esports-predictor/internal/repository"
	"github.com/yourusername/esports-predictor/internal/scheduler"
	"github.com/yourusername/esports-predictor/internal/store"
)

func main() {
	var (
		configPath     = flag.String("config", "config/config.yaml", "Path to config file")
		mode           = flag.String("mode", "all", "Ingestion mode: tournaments, matches, all")
		incremental    = flag.Bool("incremental", false, "Only fetch tournaments in the recent window")
		fromDate       = flag.String("from-date", "", "Override incremental cutoff date (YYYY-MM-DD)")
		dedupe         = flag.Bool("dedupe", true, "Write the deduplicated match table after ingestion")
		dedupeStrategy = flag.String("dedupe-strategy", pipeline.DedupeFirst, "Deduplication strategy: first, latest")
		serve          = flag.Bool("serve", false, "Run the scheduled incremental sync instead of a one-shot ingestion")
	)
	flag.Parse()

	cfg, log := bootstrap(*configPath)
	metrics.InitRegistry()

	client := liquipedia.NewClient(cfg.Liquipedia, log)
	defer client.Close()
	csvStore := store.NewCSVStore(log)

	ctx := context.Background()
	archiver, archiveDB := openArchive(ctx, cfg, log)

	tournamentPipe := pipeline.NewTournamentPipeline(client, csvStore, archiver, log)
	matchPipe := pipeline.NewMatchPipeline(client, csvStore, archiver, cfg.Ingestion.IncrementalBufferDays, log)

	runOnce := func(ctx context.Context, opts pipeline.MatchRunOptions) error {
		if *mode == "tournaments" || *mode == "all" {
			if _, err := tournamentPipe.Run(ctx, cfg.Ingestion.StartDate, cfg.Ingestion.EndDate, cfg.Paths.TournamentsCSV); err != nil {
				return fmt.Errorf("tournament pipeline: %w", err)
			}
		}
		if *mode == "matches" || *mode == "all" {
			if _, err := matchPipe.Run(ctx, opts, cfg.Paths.TournamentsCSV, cfg.Paths.MatchesCSV); err != nil {
				return fmt.Errorf("match pipeline: %w", err)
			}
			if *dedupe {
				dedupePipe := pipeline.NewDedupePipeline(csvStore, log)
				if err := dedupePipe.Run(cfg.Paths.MatchesCSV, cfg.Paths.MatchesCleanCSV, *dedupeStrategy); err != nil {
					return fmt.Errorf("dedupe pipeline: %w", err)
				}
			}
		}
		return nil
	}

	if *serve {
		runScheduled(cfg, log, archiveDB, runOnce)
		return
	}

	opts := pipeline.MatchRunOptions{Incremental: *incremental, FromDate: *fromDate}
	if err := runOnce(ctx, opts); err != nil {
		log.Fatalf("Ingestion failed: %v", err)
	}
}

// bootstrap loads configuration, secrets and the logger.
func bootstrap(configPath string) (*config.Config, *logrus.Logger) {
	cfg, err := config.LoadWithDefaults(configPath)
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}
	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			logrus.Fatal("AWS_REGION and AWS_SECRET_NAME must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(cfg, region, secretName); err != nil {
			logrus.Fatalf("Failed to load secrets: %v", err)
		}
	}
	if err := config.Validate(cfg); err != nil {
		logrus.Fatalf("Invalid configuration: %v", err)
	}
	return cfg, logger.NewLogger(cfg.App.LogLevel)
}

// openArchive connects the optional Postgres archive. Returns nils when
// disabled.
func openArchive(ctx context.Context, cfg *config.Config, log *logrus.Logger) (pipeline.Archiver, *database.DB) {
	if !cfg.Database.Enabled {
		return nil, nil
	}
	db, err := database.Initialize(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect match archive: %v", err)
	}
	return repository.NewArchive(db), db
}

// runScheduled blocks running the cron-driven incremental sync, serving
// health probes and metrics on the side.
func runScheduled(cfg *config.Config, log *logrus.Logger, archiveDB *database.DB, runOnce func(context.Context, pipeline.MatchRunOptions) error) {
	sched := scheduler.NewScheduler(log)
	schedule := cfg.Ingestion.SyncSchedule
	if schedule == "" {
		schedule = "0 3 * * *"
	}

	err := sched.ScheduleIncrementalSync(schedule, func(ctx context.Context) error {
		return runOnce(ctx, pipeline.MatchRunOptions{Incremental: true})
	})
	if err != nil {
		log.Fatalf("Failed to schedule sync: %v", err)
	}
	if err := sched.Start(); err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	healthServer := health.NewServer(health.Config{
		ServiceName: cfg.App.Name,
		Port:        fmt.Sprintf("%d", cfg.Metrics.Port),
		Logger:      log,
	})
	if archiveDB != nil {
		healthServer.RegisterCheck("archive", archiveDB.Ping)
	}
	if cfg.Metrics.Enabled {
		healthServer.MountMetrics(cfg.Metrics.Path, metrics.Handler())
	}
	if err := healthServer.Start(ctx); err != nil {
		log.Fatalf("Failed to start health server: %v", err)
	}
	healthServer.SetReady(true)

	log.WithField("next_run", sched.NextRun()).Info("Ingestion scheduler running")
	<-ctx.Done()
	log.Info("Shutting down")
}
