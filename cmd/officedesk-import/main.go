package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/officedesk/officedesk/auth"
	"github.com/officedesk/officedesk/config"
	"github.com/officedesk/officedesk/importer"
	"github.com/officedesk/officedesk/store/postgres"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	dir := flag.String("dir", ".", "directory containing the CSV files")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := postgres.Open(postgres.WithDSN(cfg.DatabaseURL))
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	if err := postgres.Migrate(ctx, db); err != nil {
		return fmt.Errorf("migrating database: %w", err)
	}

	im, err := importer.New(importer.Config{
		Offices:   postgres.NewOfficeRepository(db),
		Managers:  postgres.NewManagerRepository(db),
		Clerks:    postgres.NewClerkRepository(db),
		Documents: postgres.NewDocumentRepository(db),
		Accounts:  postgres.NewAccountRepository(db),
		Hasher:    auth.NewBcryptHasher(),
		Logger:    logger,
	})
	if err != nil {
		return err
	}

	logger.Info("import starting", slog.String("dir", *dir))
	if err := im.Run(ctx, *dir); err != nil {
		return err
	}
	logger.Info("import complete")
	return nil
}
