package generate

import (
	"fmt"

	"synthgen/internal/models"
)

// Event derivation applies threshold rules to a just-generated check result.
// Rules are ordered; the first match wins and at most one event is emitted
// per result. A nil return means the result is unremarkable.

func DeriveHTTPEvent(res models.HTTPCheckResult) *models.MonitoringEvent {
	switch {
	case !res.Success:
		return &models.MonitoringEvent{
			TS:        res.TS,
			EventType: "check_failed",
			Severity:  models.SeverityCritical,
			CheckName: res.CheckName,
			ProbeName: res.ProbeName,
			Message:   fmt.Sprintf("HTTP check failed: %s", deref(res.ErrorMessage)),
			Details:   map[string]any{"url": res.TargetURL, "status_code": res.StatusCode},
		}
	case res.SSLExpiryDays != nil && *res.SSLExpiryDays < 30:
		return &models.MonitoringEvent{
			TS:        res.TS,
			EventType: "ssl_expiring",
			Severity:  models.SeverityWarning,
			CheckName: res.CheckName,
			ProbeName: res.ProbeName,
			Message:   fmt.Sprintf("SSL certificate expires in %d days", *res.SSLExpiryDays),
			Details:   map[string]any{"url": res.TargetURL, "days_remaining": *res.SSLExpiryDays},
		}
	case res.ResponseTimeMS != nil && *res.ResponseTimeMS > 1000:
		return &models.MonitoringEvent{
			TS:        res.TS,
			EventType: "high_latency",
			Severity:  models.SeverityWarning,
			CheckName: res.CheckName,
			ProbeName: res.ProbeName,
			Message:   fmt.Sprintf("High response time: %.0fms", *res.ResponseTimeMS),
			Details:   map[string]any{"url": res.TargetURL, "response_time": *res.ResponseTimeMS},
		}
	}
	return nil
}

func DerivePingEvent(res models.PingCheckResult) *models.MonitoringEvent {
	if res.Success && res.PacketLoss <= 10 {
		return nil
	}
	severity := models.SeverityWarning
	reason := fmt.Sprintf("%.1f%% packet loss", res.PacketLoss)
	if !res.Success {
		severity = models.SeverityCritical
		reason = deref(res.ErrorMessage)
	}
	return &models.MonitoringEvent{
		TS:        res.TS,
		EventType: "ping_failed",
		Severity:  severity,
		CheckName: res.CheckName,
		ProbeName: res.ProbeName,
		Message:   fmt.Sprintf("Ping check issue: %s", reason),
		Details:   map[string]any{"host": res.TargetHost, "packet_loss": res.PacketLoss},
	}
}

func DeriveDNSEvent(res models.DNSCheckResult) *models.MonitoringEvent {
	if res.Success {
		return nil
	}
	return &models.MonitoringEvent{
		TS:        res.TS,
		EventType: "dns_failed",
		Severity:  models.SeverityCritical,
		CheckName: res.CheckName,
		ProbeName: res.ProbeName,
		Message:   fmt.Sprintf("DNS resolution failed: %s", deref(res.ErrorMessage)),
		Details:   map[string]any{"domain": res.TargetDomain},
	}
}

func DeriveTCPEvent(res models.TCPCheckResult) *models.MonitoringEvent {
	if res.Success {
		return nil
	}
	return &models.MonitoringEvent{
		TS:        res.TS,
		EventType: "tcp_failed",
		Severity:  models.SeverityCritical,
		CheckName: res.CheckName,
		ProbeName: res.ProbeName,
		Message:   fmt.Sprintf("TCP connection failed: %s", deref(res.ErrorMessage)),
		Details:   map[string]any{"host": res.TargetHost, "port": res.TargetPort},
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
