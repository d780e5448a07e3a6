package models

import "time"

type ServerMetric struct {
	TS          time.Time
	ServerName  string
	CPUUsage    float64
	MemoryUsage float64
	DiskUsage   float64
	NetworkIn   float64
	NetworkOut  float64
}

type ApplicationMetric struct {
	TS             time.Time
	AppName        string
	RequestCount   int
	ErrorCount     int
	ResponseTimeMS float64
	ActiveUsers    int
}

type BusinessMetric struct {
	TS             time.Time
	MetricType     string
	Revenue        float64
	Transactions   int
	ConversionRate float64
}

type HTTPCheckResult struct {
	TS             time.Time
	CheckName      string
	TargetURL      string
	ProbeName      string
	StatusCode     int
	ResponseTimeMS *float64
	Success        bool
	SSLExpiryDays  *int
	DNSTimeMS      *float64
	ConnectTimeMS  *float64
	ErrorMessage   *string
}

type PingCheckResult struct {
	TS           time.Time
	CheckName    string
	TargetHost   string
	ProbeName    string
	LatencyMS    *float64
	PacketLoss   float64
	Success      bool
	ErrorMessage *string
}

type DNSCheckResult struct {
	TS               time.Time
	CheckName        string
	TargetDomain     string
	ProbeName        string
	ResolutionTimeMS *float64
	Success          bool
	ResolvedIPs      []string
	ErrorMessage     *string
}

type TCPCheckResult struct {
	TS            time.Time
	CheckName     string
	TargetHost    string
	TargetPort    int
	ProbeName     string
	ConnectTimeMS *float64
	Success       bool
	ErrorMessage  *string
}

const (
	SeverityCritical = "critical"
	SeverityWarning  = "warning"
	SeverityInfo     = "info"
)

// MonitoringEvent is an alert-like row derived from a check result.
type MonitoringEvent struct {
	TS        time.Time
	EventType string
	Severity  string
	CheckName string
	ProbeName string
	Message   string
	Details   map[string]any
	Resolved  bool
}
