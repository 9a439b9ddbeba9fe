package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/officedesk/officedesk/api"
	"github.com/officedesk/officedesk/auth"
	"github.com/officedesk/officedesk/cache/redis"
	"github.com/officedesk/officedesk/config"
	"github.com/officedesk/officedesk/directory"
	"github.com/officedesk/officedesk/httpx"
	"github.com/officedesk/officedesk/importer"
	"github.com/officedesk/officedesk/store/postgres"
)

var Version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := newLogger(cfg)
	logger.Info("officedeskd starting",
		slog.String("version", Version),
		slog.String("addr", cfg.ListenAddr),
		slog.Bool("gatekeeper", cfg.GatekeeperEnabled()),
		slog.Bool("revocation", cfg.RevocationEnabled()),
	)

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

	srv, err := buildServer(cfg, importer.Config{
		Offices:   postgres.NewOfficeRepository(db),
		Managers:  postgres.NewManagerRepository(db),
		Clerks:    postgres.NewClerkRepository(db),
		Documents: postgres.NewDocumentRepository(db),
		Accounts:  postgres.NewAccountRepository(db),
		Hasher:    auth.NewBcryptHasher(),
	})
	if err != nil {
		return err
	}

	logger.Info("listening", slog.String("addr", cfg.ListenAddr))
	return srv.Start(ctx)
}

// buildServer assembles the full middleware chain and route table. The
// repository set is shared with the importer, so its Config doubles as the
// wiring struct here.
func buildServer(cfg *config.Config, repos importer.Config) (*httpx.Server, error) {
	codec, err := auth.NewCodec([]byte(cfg.JWTSecret))
	if err != nil {
		return nil, fmt.Errorf("building token codec: %w", err)
	}
	issuer := auth.NewIssuer(codec,
		auth.WithAccessTokenTTL(cfg.AccessTokenTTL),
		auth.WithRefreshTokenTTL(cfg.RefreshTokenTTL),
	)

	authSvc, err := auth.NewService(auth.ServiceConfig{
		Store:  repos.Accounts,
		Hasher: repos.Hasher,
		Codec:  codec,
		Issuer: issuer,
	})
	if err != nil {
		return nil, err
	}

	offices, err := directory.NewOfficeService(repos.Offices)
	if err != nil {
		return nil, err
	}
	staff, err := directory.NewStaffService(repos.Managers, repos.Clerks, repos.Offices)
	if err != nil {
		return nil, err
	}
	documents, err := directory.NewDocumentService(repos.Documents, repos.Offices, repos.Clerks)
	if err != nil {
		return nil, err
	}
	accounts, err := directory.NewAccountService(repos.Accounts, repos.Hasher)
	if err != nil {
		return nil, err
	}

	handlers, err := api.New(api.Config{
		Auth:      authSvc,
		Offices:   offices,
		Staff:     staff,
		Documents: documents,
		Accounts:  accounts,
	})
	if err != nil {
		return nil, err
	}

	var verifierOpts []auth.MiddlewareOption
	if cfg.RevocationEnabled() {
		store := redis.NewStore(redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		verifierOpts = append(verifierOpts, auth.WithDenylist(auth.NewDenylist(store)))
	}
	verifier, err := auth.NewMiddleware(codec, verifierOpts...)
	if err != nil {
		return nil, err
	}
	policy := auth.NewPolicy(api.PolicyRules()...)

	middlewares := []httpx.MiddlewareFunc{
		httpx.RecoverMiddleware(),
		httpx.LoggerMiddleware(),
	}
	if cfg.GatekeeperEnabled() {
		gatekeeper, err := auth.NewGatekeeper(cfg.APIClient, cfg.APISecret)
		if err != nil {
			return nil, err
		}
		middlewares = append(middlewares, httpx.WrapMiddleware(gatekeeper.Handler))
	}
	middlewares = append(middlewares,
		httpx.WrapMiddleware(verifier.Handler),
		httpx.WrapMiddleware(func(next http.Handler) http.Handler {
			return policy.Handler(next)
		}),
	)

	srv := httpx.NewServer(
		httpx.WithAddress(cfg.ListenAddr),
		httpx.WithMiddlewares(middlewares...),
	)
	srv.RegisterRoutes(handlers.Register)
	return srv, nil
}

func newLogger(cfg *config.Config) *slog.Logger {
	var handler slog.Handler
	if cfg.IsProduction() {
		handler = slog.NewJSONHandler(os.Stdout, nil)
	} else {
		handler = slog.NewTextHandler(os.Stdout, nil)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}
