package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"licencewatch/internal/config"
	"licencewatch/internal/discover"
	noopemail "licencewatch/internal/email/noop"
	sesemail "licencewatch/internal/email/ses"
	"licencewatch/internal/extract"
	"licencewatch/internal/handler"
	"licencewatch/internal/port"
	"licencewatch/internal/reconcile"
	"licencewatch/internal/repository/postgres"
	"licencewatch/internal/router"
	"licencewatch/internal/service"
	noopstorage "licencewatch/internal/storage/noop"
	s3storage "licencewatch/internal/storage/s3"
)

func main() {
	serve := flag.Bool("serve", false, "run the admin server and cron scheduler instead of a single harvest")
	flag.Parse()

	if err := run(*serve); err != nil {
		log.Fatal(err)
	}
}

func run(serve bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	store := postgres.NewLicenceStore(db)

	archive, err := newArchive(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize bulletin archive: %w", err)
	}
	notifier, err := newNotifier(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize notifier: %w", err)
	}

	svc := service.NewHarvestService(
		discover.NewHTTPSource(&cfg.Harvest),
		archive,
		extract.NewPDFExtractor(),
		reconcile.NewEngine(store),
		notifier,
	)

	if !serve {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Minute)
		defer cancel()
		return svc.RunAll(ctx)
	}

	sched := service.NewScheduler(svc, cfg.Schedule)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}
	defer sched.Stop()

	healthH := handler.NewHealthHandler(db)
	harvestH := handler.NewHarvestHandler(svc)
	exportH := handler.NewExportHandler(store)

	r := router.Setup(healthH, harvestH, exportH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

func newArchive(cfg *config.Config) (port.BulletinArchive, error) {
	if cfg.Archive.Provider == "s3" {
		return s3storage.NewS3Archiver(&cfg.Archive)
	}
	return noopstorage.NewNoopArchiver(), nil
}

func newNotifier(cfg *config.Config) (port.Notifier, error) {
	if cfg.Email.Provider == "ses" {
		return sesemail.NewSESNotifier(&cfg.Email)
	}
	return noopemail.NewNoopNotifier(), nil
}
