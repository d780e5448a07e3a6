package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/lib/pq"
)

const (
	connectAttempts = 10
	connectDelay    = 5 * time.Second
)

// Open dials the store and verifies it with a ping, retrying on a fixed
// schedule. The store is usually still booting when this process starts, so
// failed attempts are expected and logged at info level.
func Open(ctx context.Context, dsn string, logger *slog.Logger) (*sql.DB, error) {
	var lastErr error
	for attempt := 1; attempt <= connectAttempts; attempt++ {
		db, err := sql.Open("postgres", dsn)
		if err == nil {
			if err = db.PingContext(ctx); err == nil {
				logger.Info("connected to database", "attempt", attempt)
				return db, nil
			}
			_ = db.Close()
		}
		lastErr = err
		if attempt == connectAttempts {
			break
		}
		logger.Info("waiting for database", "attempt", attempt, "max_attempts", connectAttempts, "err", err)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(connectDelay):
		}
	}
	return nil, fmt.Errorf("store unreachable after %d attempts: %w", connectAttempts, lastErr)
}

// Migrate creates the telemetry tables if they are missing. Retention and
// any further schema management belong to the store's own tooling.
func Migrate(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS server_metrics (
			time TIMESTAMPTZ NOT NULL,
			server_name TEXT NOT NULL,
			cpu_usage DOUBLE PRECISION NOT NULL,
			memory_usage DOUBLE PRECISION NOT NULL,
			disk_usage DOUBLE PRECISION NOT NULL,
			network_in DOUBLE PRECISION NOT NULL,
			network_out DOUBLE PRECISION NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS application_metrics (
			time TIMESTAMPTZ NOT NULL,
			app_name TEXT NOT NULL,
			request_count INTEGER NOT NULL,
			error_count INTEGER NOT NULL,
			response_time DOUBLE PRECISION NOT NULL,
			active_users INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS business_metrics (
			time TIMESTAMPTZ NOT NULL,
			metric_type TEXT NOT NULL,
			revenue DOUBLE PRECISION NOT NULL,
			transactions INTEGER NOT NULL,
			conversion_rate DOUBLE PRECISION NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS http_checks (
			time TIMESTAMPTZ NOT NULL,
			check_name TEXT NOT NULL,
			target_url TEXT NOT NULL,
			probe_name TEXT NOT NULL,
			status_code INTEGER NOT NULL,
			response_time_ms DOUBLE PRECISION,
			success BOOLEAN NOT NULL,
			ssl_expiry_days INTEGER,
			dns_time_ms DOUBLE PRECISION,
			connect_time_ms DOUBLE PRECISION,
			error_message TEXT
		);`,
		`CREATE TABLE IF NOT EXISTS ping_checks (
			time TIMESTAMPTZ NOT NULL,
			check_name TEXT NOT NULL,
			target_host TEXT NOT NULL,
			probe_name TEXT NOT NULL,
			latency_ms DOUBLE PRECISION,
			packet_loss DOUBLE PRECISION NOT NULL,
			success BOOLEAN NOT NULL,
			error_message TEXT
		);`,
		`CREATE TABLE IF NOT EXISTS dns_checks (
			time TIMESTAMPTZ NOT NULL,
			check_name TEXT NOT NULL,
			target_domain TEXT NOT NULL,
			probe_name TEXT NOT NULL,
			resolution_time_ms DOUBLE PRECISION,
			success BOOLEAN NOT NULL,
			resolved_ips TEXT[],
			error_message TEXT
		);`,
		`CREATE TABLE IF NOT EXISTS tcp_checks (
			time TIMESTAMPTZ NOT NULL,
			check_name TEXT NOT NULL,
			target_host TEXT NOT NULL,
			target_port INTEGER NOT NULL,
			probe_name TEXT NOT NULL,
			connect_time_ms DOUBLE PRECISION,
			success BOOLEAN NOT NULL,
			error_message TEXT
		);`,
		`CREATE TABLE IF NOT EXISTS monitoring_events (
			time TIMESTAMPTZ NOT NULL,
			event_type TEXT NOT NULL,
			severity TEXT NOT NULL,
			check_name TEXT NOT NULL,
			probe_name TEXT NOT NULL,
			message TEXT NOT NULL,
			details JSONB,
			resolved BOOLEAN NOT NULL DEFAULT FALSE
		);`,
		`CREATE INDEX IF NOT EXISTS idx_server_metrics_time ON server_metrics(time DESC);`,
		`CREATE INDEX IF NOT EXISTS idx_application_metrics_time ON application_metrics(time DESC);`,
		`CREATE INDEX IF NOT EXISTS idx_http_checks_time ON http_checks(time DESC);`,
		`CREATE INDEX IF NOT EXISTS idx_monitoring_events_time ON monitoring_events(time DESC);`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migrate failed: %w", err)
		}
	}
	return nil
}
