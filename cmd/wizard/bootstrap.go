package main

import (
	"context"
	"fmt"
	"os"

	"options-wizard/internal/api"
	"options-wizard/internal/engine"
	"options-wizard/internal/engine/engineobs"
	"options-wizard/internal/interfaces"
	"options-wizard/internal/journal"
	"options-wizard/internal/logger"
	"options-wizard/internal/pricing"
	"options-wizard/internal/pricing/pricingobs"
	"options-wizard/internal/store"
	"options-wizard/internal/strategy"
	"options-wizard/internal/strategy/strategyobs"
	"options-wizard/internal/trace"

	"github.com/joho/godotenv"
)

// initializeSystem loads .env and initializes logger and tracer
func initializeSystem() error {
	_ = godotenv.Load()

	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := trace.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize tracer: %v\n", err)
	}
	return nil
}

func loadConfig(ctx context.Context, path string) (*store.Config, error) {
	cfg, err := store.LoadConfig(path)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to load config", err, "path", path)
		return nil, err
	}
	logger.Debug(ctx, "Config loaded",
		"path", path,
		"rule_set", cfg.Strategy.RuleSet,
		"default_index", cfg.DefaultIndex,
	)
	return cfg, nil
}

// components holds the observable building blocks shared by CLI and server
type components struct {
	advisor interfaces.Advisor
	pricer  interfaces.Pricer
	engine  interfaces.Engine
	journal *journal.Journal
}

func initializeComponents(ctx context.Context, cfg *store.Config) (*components, error) {
	advisor := strategyobs.Wrap(strategy.NewAdvisor())
	pricer := pricingobs.Wrap(pricing.NewBlackScholes())

	eng, err := engine.New(cfg, advisor, pricer)
	if err != nil {
		return nil, fmt.Errorf("failed to build engine: %w", err)
	}
	comps := &components{
		advisor: advisor,
		pricer:  pricer,
		engine:  engineobs.Wrap(eng),
	}

	if cfg.Journal.Enabled {
		comps.journal = initializeJournal(ctx, cfg)
		comps.engine = journal.Wrap(comps.engine, comps.journal)
	}
	return comps, nil
}

// initializeJournal opens the recommendation journal and compresses stale day files.
func initializeJournal(ctx context.Context, cfg *store.Config) *journal.Journal {
	j := journal.New(cfg.Journal.Dir)

	op := logger.StartOperation(ctx, "journal.CompressOlder",
		"dir", j.Dir(),
		"retention_days", cfg.Journal.RetentionDays,
	)
	if n, err := j.CompressOlder(cfg.Journal.RetentionDays); err != nil {
		op.EndWithError(err)
	} else {
		op.End("compressed", n)
	}

	logger.Debug(ctx, "Journaling recommendations", "dir", j.Dir())
	return j
}

// startCompactor schedules journal compression for the lifetime of a server.
// The returned stop function is safe to call when journaling is off.
func startCompactor(ctx context.Context, cfg *store.Config, j *journal.Journal) (func(), error) {
	if j == nil {
		return func() {}, nil
	}
	c, err := journal.NewCompactor(ctx, j, cfg.Journal.CompressCron, cfg.Journal.RetentionDays)
	if err != nil {
		return nil, err
	}
	c.Start()
	return c.Stop, nil
}

// initializeRemoteEngine returns an engine that evaluates on a remote wizard server
func initializeRemoteEngine(ctx context.Context, baseURL string) interfaces.Engine {
	logger.Info(ctx, "Using remote wizard server", "url", baseURL)
	client := api.NewWizardClient(baseURL, api.WithLogging(logger.IsDebugEnabled()))
	return engineobs.Wrap(client)
}
