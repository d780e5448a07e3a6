package generate

import (
	"math"
	"math/rand"
	"time"

	"github.com/brianvoe/gofakeit/v7"

	"synthgen/internal/fixtures"
	"synthgen/internal/models"
)

const (
	httpFailureChance = 0.02
	pingFailureChance = 0.01
	dnsFailureChance  = 0.005
	tcpFailureChance  = 0.015
)

// regionLatency is added to successful HTTP response times, ms per probe.
var regionLatency = map[string]float64{
	"us-east-1":      0,
	"us-west-1":      20,
	"eu-west-1":      80,
	"eu-central-1":   90,
	"ap-southeast-1": 150,
	"ap-northeast-1": 160,
}

type httpFailure struct {
	statusCode int
	message    string
}

var httpFailures = []httpFailure{
	{500, "Internal Server Error"},
	{502, "Bad Gateway"},
	{503, "Service Unavailable"},
	{0, "Connection timeout"},
	{0, "DNS resolution failed"},
}

var pingFailures = []string{"Request timeout", "Host unreachable", "Network unreachable"}
var dnsFailures = []string{"NXDOMAIN", "SERVFAIL", "Timeout"}
var tcpFailures = []string{"Connection refused", "Connection timeout", "Network unreachable"}

// packetLossChoices is weighted so that 4 out of 6 healthy pings report
// exactly zero loss.
var packetLossChoices = []float64{0, 0, 0, 0, 0.1, 0.5}

func HTTPCheck(check fixtures.HTTPCheck, probe string, ts time.Time, r *rand.Rand) models.HTTPCheckResult {
	res := models.HTTPCheckResult{
		TS:        ts,
		CheckName: check.Name,
		TargetURL: check.URL,
		ProbeName: probe,
		Success:   r.Float64() > httpFailureChance,
	}
	if res.Success {
		res.StatusCode = check.ExpectedCode
		res.ResponseTimeMS = ptr(math.Max(10, gauss(r, 150, 50)) + regionLatency[probe])
		res.SSLExpiryDays = ptr(30 + r.Intn(336)) // 30..365
		res.DNSTimeMS = ptr(math.Max(5, gauss(r, 20, 10)))
		res.ConnectTimeMS = ptr(math.Max(10, gauss(r, 50, 20)))
		return res
	}
	f := httpFailures[r.Intn(len(httpFailures))]
	res.StatusCode = f.statusCode
	res.ErrorMessage = ptr(f.message)
	if f.statusCode > 0 {
		res.ResponseTimeMS = ptr(uniform(r, 5000, 10000) + regionLatency[probe])
	}
	return res
}

func HTTPChecks(cat fixtures.Catalog, ts time.Time, r *rand.Rand) []models.HTTPCheckResult {
	out := make([]models.HTTPCheckResult, 0, len(cat.HTTPChecks)*len(cat.Probes))
	for _, c := range cat.HTTPChecks {
		for _, p := range cat.Probes {
			out = append(out, HTTPCheck(c, p, ts, r))
		}
	}
	return out
}

func PingCheck(check fixtures.PingCheck, probe string, ts time.Time, r *rand.Rand) models.PingCheckResult {
	res := models.PingCheckResult{
		TS:         ts,
		CheckName:  check.Name,
		TargetHost: check.Host,
		ProbeName:  probe,
		Success:    r.Float64() > pingFailureChance,
	}
	if res.Success {
		res.LatencyMS = ptr(math.Max(1, gauss(r, 30, 15)))
		res.PacketLoss = packetLossChoices[r.Intn(len(packetLossChoices))]
		return res
	}
	res.PacketLoss = uniform(r, 50, 100)
	res.ErrorMessage = ptr(pingFailures[r.Intn(len(pingFailures))])
	return res
}

func PingChecks(cat fixtures.Catalog, ts time.Time, r *rand.Rand) []models.PingCheckResult {
	out := make([]models.PingCheckResult, 0, len(cat.PingChecks)*len(cat.Probes))
	for _, c := range cat.PingChecks {
		for _, p := range cat.Probes {
			out = append(out, PingCheck(c, p, ts, r))
		}
	}
	return out
}

func DNSCheck(check fixtures.DNSCheck, probe string, ts time.Time, r *rand.Rand) models.DNSCheckResult {
	res := models.DNSCheckResult{
		TS:           ts,
		CheckName:    check.Name,
		TargetDomain: check.Domain,
		ProbeName:    probe,
		Success:      r.Float64() > dnsFailureChance,
		ResolvedIPs:  []string{},
	}
	if res.Success {
		res.ResolutionTimeMS = ptr(math.Max(5, gauss(r, 25, 10)))
		faker := gofakeit.New(r.Uint64())
		n := 1 + r.Intn(3)
		for i := 0; i < n; i++ {
			res.ResolvedIPs = append(res.ResolvedIPs, faker.IPv4Address())
		}
		return res
	}
	res.ErrorMessage = ptr(dnsFailures[r.Intn(len(dnsFailures))])
	return res
}

func DNSChecks(cat fixtures.Catalog, ts time.Time, r *rand.Rand) []models.DNSCheckResult {
	out := make([]models.DNSCheckResult, 0, len(cat.DNSChecks)*len(cat.Probes))
	for _, c := range cat.DNSChecks {
		for _, p := range cat.Probes {
			out = append(out, DNSCheck(c, p, ts, r))
		}
	}
	return out
}

func TCPCheck(check fixtures.TCPCheck, probe string, ts time.Time, r *rand.Rand) models.TCPCheckResult {
	res := models.TCPCheckResult{
		TS:         ts,
		CheckName:  check.Name,
		TargetHost: check.Host,
		TargetPort: check.Port,
		ProbeName:  probe,
		Success:    r.Float64() > tcpFailureChance,
	}
	if res.Success {
		res.ConnectTimeMS = ptr(math.Max(5, gauss(r, 40, 20)))
		return res
	}
	res.ErrorMessage = ptr(tcpFailures[r.Intn(len(tcpFailures))])
	return res
}

func TCPChecks(cat fixtures.Catalog, ts time.Time, r *rand.Rand) []models.TCPCheckResult {
	out := make([]models.TCPCheckResult, 0, len(cat.TCPChecks)*len(cat.Probes))
	for _, c := range cat.TCPChecks {
		for _, p := range cat.Probes {
			out = append(out, TCPCheck(c, p, ts, r))
		}
	}
	return out
}
