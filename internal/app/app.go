package app

import (
	"context"
	"database/sql"
	"log/slog"
	"math/rand"
	"time"

	"synthgen/internal/config"
	"synthgen/internal/db"
	"synthgen/internal/fixtures"
	"synthgen/internal/mirror"
)

type App struct {
	cfg   config.Config
	log   *slog.Logger
	sqldb *sql.DB
	repo  *db.Repository
	svc   *Service

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) bool
}

func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	sqldb, err := db.Open(ctx, cfg.DSN(), logger.With("module", "db"))
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(sqldb); err != nil {
		_ = sqldb.Close()
		return nil, err
	}
	repo := db.NewRepository(sqldb)

	cat := fixtures.Default()
	if cfg.FixturesPath != "" {
		cat, err = fixtures.Load(cfg.FixturesPath)
		if err != nil {
			_ = sqldb.Close()
			return nil, err
		}
	}

	var m *mirror.Mirror
	if cfg.PushgatewayURL != "" {
		m = mirror.New(cfg.PushgatewayURL)
	}

	seed := time.Now().UnixNano()
	if cfg.SeedSet {
		seed = cfg.RNGSeed
	}
	rng := rand.New(rand.NewSource(seed))

	return &App{
		cfg:   cfg,
		log:   logger,
		sqldb: sqldb,
		repo:  repo,
		svc:   NewService(cat, repo, m, rng, logger.With("module", "generator")),
		now:   time.Now,
		sleep: waitFor,
	}, nil
}

// Run performs one backfill pass and then generates live data until the
// context is cancelled. A failed tick is logged and shortens the next sleep
// to the recovery interval; it never stops the loop.
func (a *App) Run(ctx context.Context) error {
	start := a.now().UTC()
	if a.cfg.BackfillHours > 0 {
		if err := a.svc.Backfill(ctx, a.cfg.BackfillHours, start); err != nil {
			if ctx.Err() != nil {
				return a.close()
			}
			a.log.Error("backfill failed", "err", err)
		} else if a.repo != nil {
			cutoff := start.Add(-time.Duration(a.cfg.BackfillHours) * time.Hour)
			if n, err := a.repo.RowCountSince(ctx, "server_metrics", cutoff); err == nil {
				a.log.Info("backfill complete", "server_metric_rows", n)
			}
		}
	}

	iteration := 0
	for {
		if ctx.Err() != nil {
			return a.close()
		}
		iteration++
		delay := a.cfg.TickInterval
		if err := a.svc.Tick(ctx, a.now().UTC(), true); err != nil {
			a.log.Error("tick failed", "iteration", iteration, "err", err)
			delay = a.cfg.RecoveryInterval
		} else {
			a.log.Info("tick complete", "iteration", iteration)
		}
		if !a.sleep(ctx, delay) {
			return a.close()
		}
	}
}

func (a *App) close() error {
	if a.sqldb == nil {
		return nil
	}
	return a.sqldb.Close()
}

func waitFor(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
