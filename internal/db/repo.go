package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lib/pq"

	"synthgen/internal/models"
)

// Repository batches row inserts. Each Insert* call is one transaction:
// either every row of the batch lands or none do. Rollback is deferred and
// harmless after a successful commit.
type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) DB() *sql.DB { return r.db }

func (r *Repository) insertBatch(ctx context.Context, query string, n int, args func(i int) []any) error {
	if n == 0 {
		return nil
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for i := 0; i < n; i++ {
		if _, err := stmt.ExecContext(ctx, args(i)...); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *Repository) InsertServerMetrics(ctx context.Context, ms []models.ServerMetric) error {
	return r.insertBatch(ctx, `INSERT INTO server_metrics
		(time,server_name,cpu_usage,memory_usage,disk_usage,network_in,network_out)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`, len(ms), func(i int) []any {
		m := ms[i]
		return []any{m.TS.UTC(), m.ServerName, m.CPUUsage, m.MemoryUsage, m.DiskUsage, m.NetworkIn, m.NetworkOut}
	})
}

func (r *Repository) InsertApplicationMetrics(ctx context.Context, ms []models.ApplicationMetric) error {
	return r.insertBatch(ctx, `INSERT INTO application_metrics
		(time,app_name,request_count,error_count,response_time,active_users)
		VALUES ($1,$2,$3,$4,$5,$6)`, len(ms), func(i int) []any {
		m := ms[i]
		return []any{m.TS.UTC(), m.AppName, m.RequestCount, m.ErrorCount, m.ResponseTimeMS, m.ActiveUsers}
	})
}

func (r *Repository) InsertBusinessMetrics(ctx context.Context, ms []models.BusinessMetric) error {
	return r.insertBatch(ctx, `INSERT INTO business_metrics
		(time,metric_type,revenue,transactions,conversion_rate)
		VALUES ($1,$2,$3,$4,$5)`, len(ms), func(i int) []any {
		m := ms[i]
		return []any{m.TS.UTC(), m.MetricType, m.Revenue, m.Transactions, m.ConversionRate}
	})
}

func (r *Repository) InsertHTTPChecks(ctx context.Context, ms []models.HTTPCheckResult) error {
	return r.insertBatch(ctx, `INSERT INTO http_checks
		(time,check_name,target_url,probe_name,status_code,response_time_ms,success,ssl_expiry_days,dns_time_ms,connect_time_ms,error_message)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`, len(ms), func(i int) []any {
		m := ms[i]
		return []any{m.TS.UTC(), m.CheckName, m.TargetURL, m.ProbeName, m.StatusCode,
			m.ResponseTimeMS, m.Success, m.SSLExpiryDays, m.DNSTimeMS, m.ConnectTimeMS, m.ErrorMessage}
	})
}

func (r *Repository) InsertPingChecks(ctx context.Context, ms []models.PingCheckResult) error {
	return r.insertBatch(ctx, `INSERT INTO ping_checks
		(time,check_name,target_host,probe_name,latency_ms,packet_loss,success,error_message)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`, len(ms), func(i int) []any {
		m := ms[i]
		return []any{m.TS.UTC(), m.CheckName, m.TargetHost, m.ProbeName, m.LatencyMS, m.PacketLoss, m.Success, m.ErrorMessage}
	})
}

func (r *Repository) InsertDNSChecks(ctx context.Context, ms []models.DNSCheckResult) error {
	return r.insertBatch(ctx, `INSERT INTO dns_checks
		(time,check_name,target_domain,probe_name,resolution_time_ms,success,resolved_ips,error_message)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`, len(ms), func(i int) []any {
		m := ms[i]
		return []any{m.TS.UTC(), m.CheckName, m.TargetDomain, m.ProbeName, m.ResolutionTimeMS,
			m.Success, pq.Array(m.ResolvedIPs), m.ErrorMessage}
	})
}

func (r *Repository) InsertTCPChecks(ctx context.Context, ms []models.TCPCheckResult) error {
	return r.insertBatch(ctx, `INSERT INTO tcp_checks
		(time,check_name,target_host,target_port,probe_name,connect_time_ms,success,error_message)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`, len(ms), func(i int) []any {
		m := ms[i]
		return []any{m.TS.UTC(), m.CheckName, m.TargetHost, m.TargetPort, m.ProbeName, m.ConnectTimeMS, m.Success, m.ErrorMessage}
	})
}

func (r *Repository) InsertMonitoringEvents(ctx context.Context, ms []models.MonitoringEvent) error {
	details := make([][]byte, len(ms))
	for i, m := range ms {
		b, err := json.Marshal(m.Details)
		if err != nil {
			return fmt.Errorf("marshal event details: %w", err)
		}
		details[i] = b
	}
	return r.insertBatch(ctx, `INSERT INTO monitoring_events
		(time,event_type,severity,check_name,probe_name,message,details,resolved)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`, len(ms), func(i int) []any {
		m := ms[i]
		return []any{m.TS.UTC(), m.EventType, m.Severity, m.CheckName, m.ProbeName, m.Message, details[i], m.Resolved}
	})
}

// RowCountSince reports rows newer than the cutoff in the given table; used
// by operational checks, not the write path.
func (r *Repository) RowCountSince(ctx context.Context, table string, since time.Time) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+pq.QuoteIdentifier(table)+` WHERE time >= $1`, since.UTC()).Scan(&n)
	return n, err
}
