package db

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"synthgen/internal/models"
)

func TestInsertMonitoringEventsRejectsUnmarshalableDetails(t *testing.T) {
	repo := NewRepository(nil)
	evs := []models.MonitoringEvent{{
		TS:        time.Now().UTC(),
		EventType: "check_failed",
		Severity:  models.SeverityCritical,
		CheckName: "api",
		ProbeName: "us-east-1",
		Message:   "HTTP check failed: Bad Gateway",
		Details:   map[string]any{"bad": make(chan int)},
	}}
	// Marshal happens before any statement is prepared, so the nil handle is
	// never touched.
	if err := repo.InsertMonitoringEvents(context.Background(), evs); err == nil {
		t.Fatal("expected marshal error for unmarshalable details")
	}
}

func TestOpenReturnsCanceledOnShutdown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	_, err := Open(ctx, "host=127.0.0.1 port=1 user=x password=x dbname=x sslmode=disable connect_timeout=1", logger)
	if err == nil {
		t.Fatal("expected error from cancelled open")
	}
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled so shutdown stays graceful", err)
	}
}

// Live round-trip against a real store; skipped unless DATABASE_URL points
// at a disposable Postgres.
func TestRepositoryRoundTrip(t *testing.T) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}
	sqldb, err := sql.Open("postgres", dsn)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = sqldb.Close() })
	if err := sqldb.Ping(); err != nil {
		t.Fatalf("ping: %v", err)
	}
	if err := Migrate(sqldb); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	repo := NewRepository(sqldb)
	ctx := context.Background()
	ts := time.Now().UTC()

	countSince := func(table string) int {
		t.Helper()
		n, err := repo.RowCountSince(ctx, table, ts)
		if err != nil {
			t.Fatalf("count %s: %v", table, err)
		}
		return n
	}
	serversBefore := countSince("server_metrics")
	dnsBefore := countSince("dns_checks")
	eventsBefore := countSince("monitoring_events")

	if err := repo.InsertServerMetrics(ctx, []models.ServerMetric{
		{TS: ts, ServerName: "web-server-01", CPUUsage: 42, MemoryUsage: 55, DiskUsage: 60, NetworkIn: 1200, NetworkOut: 800},
		{TS: ts, ServerName: "web-server-02", CPUUsage: 38, MemoryUsage: 61, DiskUsage: 47, NetworkIn: 900, NetworkOut: 500},
	}); err != nil {
		t.Fatalf("insert server metrics: %v", err)
	}
	rt := 23.5
	if err := repo.InsertDNSChecks(ctx, []models.DNSCheckResult{{
		TS: ts, CheckName: "website-dns", TargetDomain: "example.com", ProbeName: "us-east-1",
		Success: true, ResolutionTimeMS: &rt, ResolvedIPs: []string{"10.1.2.3", "10.4.5.6"},
	}}); err != nil {
		t.Fatalf("insert dns checks: %v", err)
	}
	if err := repo.InsertMonitoringEvents(ctx, []models.MonitoringEvent{{
		TS: ts, EventType: "dns_failed", Severity: models.SeverityCritical,
		CheckName: "website-dns", ProbeName: "us-east-1",
		Message: "DNS resolution failed: NXDOMAIN",
		Details: map[string]any{"domain": "example.com"},
	}}); err != nil {
		t.Fatalf("insert events: %v", err)
	}

	if got := countSince("server_metrics") - serversBefore; got != 2 {
		t.Fatalf("server_metrics delta %d, want 2", got)
	}
	if got := countSince("dns_checks") - dnsBefore; got != 1 {
		t.Fatalf("dns_checks delta %d, want 1", got)
	}
	if got := countSince("monitoring_events") - eventsBefore; got != 1 {
		t.Fatalf("monitoring_events delta %d, want 1", got)
	}

	var ips []byte
	err = sqldb.QueryRowContext(ctx,
		`SELECT array_to_string(resolved_ips,',') FROM dns_checks WHERE time = $1 AND check_name = 'website-dns'`, ts).
		Scan(&ips)
	if err != nil {
		t.Fatalf("read back resolved_ips: %v", err)
	}
	if string(ips) != "10.1.2.3,10.4.5.6" {
		t.Fatalf("resolved_ips round-trip %q", ips)
	}
}
