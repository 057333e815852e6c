package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/SscSPs/clonewander/internal/adapters/generator"
	"github.com/SscSPs/clonewander/internal/catalog"
	"github.com/SscSPs/clonewander/internal/core/clock"
	"github.com/SscSPs/clonewander/internal/core/guard"
	"github.com/SscSPs/clonewander/internal/core/poller"
	portsrepo "github.com/SscSPs/clonewander/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/clonewander/internal/core/ports/services"
	"github.com/SscSPs/clonewander/internal/core/schedule"
	"github.com/SscSPs/clonewander/internal/core/services"
	"github.com/SscSPs/clonewander/internal/platform/config"
	"github.com/SscSPs/clonewander/internal/repositories/database/pgsql"
	"github.com/SscSPs/clonewander/internal/repositories/memory"
	"github.com/SscSPs/clonewander/internal/utils"
	"github.com/SscSPs/clonewander/pkg/database"
	"github.com/jackc/pgx/v5/pgxpool"
)

// app holds everything the commands share.
type app struct {
	cfg       *config.Config
	logger    *slog.Logger
	clock     clock.Accelerated
	scheduler *schedule.Scheduler
	repos     *portsrepo.RepositoryProvider
	services  *portssvc.ServiceContainer
	posthog   *utils.PosthogClientWrapper
	pool      *pgxpool.Pool
}

func wireApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*app, error) {
	buckets := clock.DefaultBuckets
	buckets.EveningStart = cfg.EveningStartHour
	if err := buckets.Validate(); err != nil {
		return nil, fmt.Errorf("EVENING_START_HOUR: %w", err)
	}
	clk := clock.New(cfg.AccelerationFactor, buckets)

	cat, err := catalog.Default()
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	var policy schedule.UpdatePolicy
	switch cfg.UpdatePolicy {
	case config.PolicyRandomInterval:
		seed := uint64(time.Now().UnixNano())
		policy = schedule.NewRandomInterval(clk, cfg.RandomIntervalMinHours, cfg.RandomIntervalMaxHours, rand.New(rand.NewPCG(seed, seed>>1)))
	default:
		policy = schedule.NewFixedSlot(clk)
	}
	scheduler := schedule.NewScheduler(policy, cfg.DailyEntryCap)

	// The duplicate window is configured in simulated time.
	g := guard.New(clk.ToReal(cfg.DuplicateWindow.Minutes(), time.Minute), scheduler.DedupeByDay())

	a := &app{
		cfg:       cfg,
		logger:    logger,
		clock:     clk,
		scheduler: scheduler,
		posthog:   utils.InitializePosthogClient(cfg.PosthogAPIKey, logger),
	}

	switch cfg.StoreBackend {
	case config.StorePostgres:
		pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("initialize database pool: %w", err)
		}
		a.pool = pool
		a.repos = pgsql.NewRepositoryProvider(pool, g)
	default:
		logger.Warn("Using the in-memory store; clones are lost on restart")
		a.repos = memory.NewRepositoryProvider(memory.NewStore(g))
	}

	a.services = services.NewServiceContainer(*a.repos, cat, clk)
	logger.Info("Application wired",
		slog.String("store", cfg.StoreBackend),
		slog.String("update_policy", cfg.UpdatePolicy),
		slog.Float64("acceleration_factor", clk.Factor),
		slog.Duration("real_day", clk.RealDay()),
		slog.Duration("duplicate_window", g.Window))
	return a, nil
}

// newPoller builds the poller with the configured generator and the offline
// template as fallback.
func (a *app) newPoller(ctx context.Context) (*poller.Poller, error) {
	gen, err := generator.Build(ctx, generator.Options{
		Kind:         a.cfg.Generator,
		OpenAIAPIKey: a.cfg.OpenAIAPIKey,
		OpenAIModel:  a.cfg.OpenAIModel,
		GeminiAPIKey: a.cfg.GeminiAPIKey,
		GeminiModel:  a.cfg.GeminiModel,
	})
	if err != nil {
		return nil, fmt.Errorf("build journal generator: %w", err)
	}

	pollCfg := poller.Config{
		Interval:          a.cfg.PollInterval,
		InitialDelay:      a.cfg.PollInitialDelay,
		GenerationTimeout: a.cfg.GenerationTimeout,
		TransitionGrace:   a.cfg.TransitionGrace,
		MaxConcurrent:     a.cfg.MaxConcurrentGenerations,
	}
	if err := pollCfg.Validate(); err != nil {
		return nil, err
	}

	deps := poller.Deps{
		Repos:     a.repos,
		Scheduler: a.scheduler,
		Clock:     a.clock,
		Generator: gen,
		Fallback:  generator.NewTemplate(nil),
	}
	if a.posthog.IsInitialized() {
		deps.Events = a.posthog
	}
	return poller.New(deps, pollCfg), nil
}

func (a *app) close() {
	a.posthog.Close()
	database.ClosePgxPool(a.pool)
}
