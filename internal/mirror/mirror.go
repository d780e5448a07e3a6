// Package mirror keeps gauge copies of the latest generated values and
// pushes them to a Prometheus pushgateway. Values are last-write-wins; only
// the most recent tick is visible on the gateway.
package mirror

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"

	"synthgen/internal/models"
)

const jobName = "synthetic_data"

type Mirror struct {
	pusher *push.Pusher

	cpu          *prometheus.GaugeVec
	memory       *prometheus.GaugeVec
	disk         *prometheus.GaugeVec
	requests     *prometheus.GaugeVec
	responseTime *prometheus.GaugeVec
	activeUsers  *prometheus.GaugeVec
	revenue      prometheus.Gauge
	transactions prometheus.Gauge
}

func New(gatewayURL string) *Mirror {
	reg := prometheus.NewRegistry()
	m := &Mirror{
		pusher: push.New(gatewayURL, jobName).Gatherer(reg),
		cpu: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "system_cpu_usage", Help: "CPU Usage Percentage",
		}, []string{"server"}),
		memory: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "system_memory_usage", Help: "Memory Usage Percentage",
		}, []string{"server"}),
		disk: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "system_disk_usage", Help: "Disk Usage Percentage",
		}, []string{"server"}),
		requests: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "http_requests_total", Help: "Total HTTP Requests",
		}, []string{"app", "status"}),
		responseTime: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "http_response_time_ms", Help: "HTTP Response Time",
		}, []string{"app"}),
		activeUsers: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "active_users", Help: "Active Users",
		}, []string{"app"}),
		revenue: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "business_revenue", Help: "Revenue",
		}),
		transactions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "business_transactions", Help: "Transactions",
		}),
	}
	reg.MustRegister(m.cpu, m.memory, m.disk, m.requests, m.responseTime, m.activeUsers, m.revenue, m.transactions)
	return m
}

func (m *Mirror) ObserveServer(sm models.ServerMetric) {
	m.cpu.WithLabelValues(sm.ServerName).Set(sm.CPUUsage)
	m.memory.WithLabelValues(sm.ServerName).Set(sm.MemoryUsage)
	m.disk.WithLabelValues(sm.ServerName).Set(sm.DiskUsage)
}

func (m *Mirror) ObserveApplication(am models.ApplicationMetric) {
	m.requests.WithLabelValues(am.AppName, "200").Set(float64(am.RequestCount - am.ErrorCount))
	m.requests.WithLabelValues(am.AppName, "500").Set(float64(am.ErrorCount))
	m.responseTime.WithLabelValues(am.AppName).Set(am.ResponseTimeMS)
	m.activeUsers.WithLabelValues(am.AppName).Set(float64(am.ActiveUsers))
}

func (m *Mirror) ObserveBusiness(bm models.BusinessMetric) {
	m.revenue.Set(bm.Revenue)
	m.transactions.Set(float64(bm.Transactions))
}

// Push replaces the job's metric group on the gateway. The caller logs and
// swallows the error; a dead gateway never blocks store writes.
func (m *Mirror) Push(ctx context.Context) error {
	return m.pusher.PushContext(ctx)
}
