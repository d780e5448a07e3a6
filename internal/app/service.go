package app

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"synthgen/internal/fixtures"
	"synthgen/internal/generate"
	"synthgen/internal/mirror"
	"synthgen/internal/models"
)

// Sink receives the rows produced by one tick. Implemented by
// db.Repository; tests substitute an in-memory recorder.
type Sink interface {
	InsertServerMetrics(ctx context.Context, ms []models.ServerMetric) error
	InsertApplicationMetrics(ctx context.Context, ms []models.ApplicationMetric) error
	InsertBusinessMetrics(ctx context.Context, ms []models.BusinessMetric) error
	InsertHTTPChecks(ctx context.Context, ms []models.HTTPCheckResult) error
	InsertPingChecks(ctx context.Context, ms []models.PingCheckResult) error
	InsertDNSChecks(ctx context.Context, ms []models.DNSCheckResult) error
	InsertTCPChecks(ctx context.Context, ms []models.TCPCheckResult) error
	InsertMonitoringEvents(ctx context.Context, ms []models.MonitoringEvent) error
}

// Service runs the generation pipeline for one timestamp. The same pipeline
// serves backfill (synthetic past timestamps, no mirror) and the live loop.
type Service struct {
	cat    fixtures.Catalog
	sink   Sink
	mirror *mirror.Mirror
	rng    *rand.Rand
	log    *slog.Logger
}

func NewService(cat fixtures.Catalog, sink Sink, m *mirror.Mirror, rng *rand.Rand, logger *slog.Logger) *Service {
	return &Service{cat: cat, sink: sink, mirror: m, rng: rng, log: logger}
}

func (s *Service) Tick(ctx context.Context, ts time.Time, live bool) error {
	servers := generate.ServerMetrics(s.cat, ts, s.rng)
	if err := s.sink.InsertServerMetrics(ctx, servers); err != nil {
		return fmt.Errorf("server metrics: %w", err)
	}

	apps := generate.ApplicationMetrics(s.cat, ts, s.rng)
	if err := s.sink.InsertApplicationMetrics(ctx, apps); err != nil {
		return fmt.Errorf("application metrics: %w", err)
	}

	biz := generate.BusinessMetric(ts, s.rng)
	if err := s.sink.InsertBusinessMetrics(ctx, []models.BusinessMetric{biz}); err != nil {
		return fmt.Errorf("business metrics: %w", err)
	}

	var events []models.MonitoringEvent

	https := generate.HTTPChecks(s.cat, ts, s.rng)
	if err := s.sink.InsertHTTPChecks(ctx, https); err != nil {
		return fmt.Errorf("http checks: %w", err)
	}
	for _, c := range https {
		if ev := generate.DeriveHTTPEvent(c); ev != nil {
			events = append(events, *ev)
		}
	}

	pings := generate.PingChecks(s.cat, ts, s.rng)
	if err := s.sink.InsertPingChecks(ctx, pings); err != nil {
		return fmt.Errorf("ping checks: %w", err)
	}
	for _, c := range pings {
		if ev := generate.DerivePingEvent(c); ev != nil {
			events = append(events, *ev)
		}
	}

	dnss := generate.DNSChecks(s.cat, ts, s.rng)
	if err := s.sink.InsertDNSChecks(ctx, dnss); err != nil {
		return fmt.Errorf("dns checks: %w", err)
	}
	for _, c := range dnss {
		if ev := generate.DeriveDNSEvent(c); ev != nil {
			events = append(events, *ev)
		}
	}

	tcps := generate.TCPChecks(s.cat, ts, s.rng)
	if err := s.sink.InsertTCPChecks(ctx, tcps); err != nil {
		return fmt.Errorf("tcp checks: %w", err)
	}
	for _, c := range tcps {
		if ev := generate.DeriveTCPEvent(c); ev != nil {
			events = append(events, *ev)
		}
	}

	if err := s.sink.InsertMonitoringEvents(ctx, events); err != nil {
		return fmt.Errorf("monitoring events: %w", err)
	}

	if live && s.mirror != nil {
		for _, m := range servers {
			s.mirror.ObserveServer(m)
		}
		for _, m := range apps {
			s.mirror.ObserveApplication(m)
		}
		s.mirror.ObserveBusiness(biz)
		if err := s.mirror.Push(ctx); err != nil {
			s.log.Warn("pushgateway push failed", "err", err)
		}
	}
	return nil
}

// Backfill replays the pipeline over the past window, one sample per minute
// walking backward from until. Mirror pushes are skipped; only the live
// value of a gauge is meaningful.
func (s *Service) Backfill(ctx context.Context, hours int, until time.Time) error {
	s.log.Info("generating historical data", "hours", hours)
	for i := 0; i < hours*60; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		ts := until.Add(-time.Duration(i) * time.Minute)
		if err := s.Tick(ctx, ts, false); err != nil {
			return fmt.Errorf("backfill at %s: %w", ts.Format(time.RFC3339), err)
		}
		if i > 0 && i%60 == 0 {
			s.log.Info("backfill progress", "hours_done", i/60)
		}
	}
	s.log.Info("historical data complete")
	return nil
}
