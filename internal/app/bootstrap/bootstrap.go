package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	ballotservice "quorum/contexts/election-core/ballot-service"
	ballotpostgres "quorum/contexts/election-core/ballot-service/adapters/postgres"
	ballotworkers "quorum/contexts/election-core/ballot-service/application/workers"
	eligibilityservice "quorum/contexts/election-core/eligibility-service"
	eligibilitypostgres "quorum/contexts/election-core/eligibility-service/adapters/postgres"
	"quorum/contexts/election-core/eligibility-service/application/queries"
	registryservice "quorum/contexts/voter-access/registry-service"
	registrypostgres "quorum/contexts/voter-access/registry-service/adapters/postgres"
	"quorum/contexts/voter-access/registry-service/adapters/session"
	"quorum/internal/platform/config"
	"quorum/internal/platform/db"
	"quorum/internal/platform/httpserver"
	"quorum/internal/platform/messaging"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

type WorkerApp struct {
	postgres     *db.Postgres
	outboxRelay  ballotworkers.OutboxRelay
	pollInterval time.Duration
	logger       *slog.Logger
}

// ruleGate bridges the ballot transactor to the eligibility evaluator without
// a context-to-context import inside either service.
type ruleGate struct {
	eligibility queries.EligibilityUseCase
}

func (g ruleGate) RuleAllows(ctx context.Context, voterKey string, electionID int64) (bool, error) {
	return g.eligibility.RuleAllows(ctx, voterKey, electionID)
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}
	if cfg.VerifyIdentityPayloads && strings.TrimSpace(cfg.IdentitySharedSecret) == "" {
		return nil, errors.New("IDENTITY_SHARED_SECRET is required when payload verification is on")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	signer, err := session.NewSigner(cfg.SessionSecret)
	if err != nil {
		return nil, err
	}
	registryModule := registryservice.NewModule(registryservice.Dependencies{
		Voters:       registrypostgres.NewRepository(pg.DB, logger),
		Sessions:     signer,
		Clock:        registrypostgres.SystemClock{},
		SharedSecret: cfg.IdentitySharedSecret,
		Logger:       logger,
	})

	eligibilityRepo := eligibilitypostgres.NewRepository(pg.DB, logger)
	eligibilityModule := eligibilityservice.NewModule(eligibilityservice.Dependencies{
		Elections: eligibilityRepo,
		Voters:    eligibilityRepo,
		Ledger:    eligibilityRepo,
		Logger:    logger,
	})

	ballotRepo := ballotpostgres.NewRepository(pg.DB, logger)
	ballotModule := ballotservice.NewModule(ballotservice.Dependencies{
		Ballots: ballotRepo,
		Catalog: ballotpostgres.NewCatalog(pg.DB, logger),
		Gate:    ruleGate{eligibility: eligibilityModule.Eligibility},
		Outbox:  ballotRepo,
		Source:  ballotRepo,
		Clock:   ballotpostgres.SystemClock{},
		IDGen:   ballotpostgres.UUIDGenerator{},
		Logger:  logger,
	})

	server := httpserver.New(
		registryModule,
		eligibilityModule,
		ballotModule,
		cfg.VerifyIdentityPayloads,
		cfg.IdentityRedirectURL,
		logger,
		normalizeAddr(cfg.HTTPPort),
	)
	return &APIApp{
		server:   server,
		postgres: pg,
		logger:   logger,
	}, nil
}

func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "worker")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	kafka, err := messaging.NewKafka(nil, logger)
	if err != nil {
		return nil, err
	}

	repo := ballotpostgres.NewRepository(pg.DB, logger)
	return &WorkerApp{
		postgres: pg,
		outboxRelay: ballotworkers.OutboxRelay{
			Outbox:    repo,
			Publisher: kafka,
			Clock:     ballotpostgres.SystemClock{},
			Topic:     "ballot.accepted",
			BatchSize: 100,
			Logger:    logger,
		},
		pollInterval: 2 * time.Second,
		logger:       logger,
	}, nil
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func (w *WorkerApp) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"poll_interval", w.pollInterval.String(),
	)

	for {
		if err := w.outboxRelay.RunOnce(ctx); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (w *WorkerApp) Close() error {
	if w.postgres != nil {
		return w.postgres.Close()
	}
	return nil
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
