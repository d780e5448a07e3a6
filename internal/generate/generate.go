// Package generate holds the sample generators. Every function is pure over
// (fixture entry, probe, timestamp, RNG): no clocks, no globals, so a seeded
// rand reproduces a run exactly.
package generate

import (
	"math"
	"math/rand"
	"time"

	"synthgen/internal/fixtures"
	"synthgen/internal/models"
)

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func gauss(r *rand.Rand, mean, sd float64) float64 {
	return r.NormFloat64()*sd + mean
}

func uniform(r *rand.Rand, lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}

func ptr[T any](v T) *T { return &v }

// trafficMultiplier models the day/night traffic split. Business hours are
// 09:00-17:59 inclusive.
func trafficMultiplier(ts time.Time) float64 {
	h := ts.Hour()
	if h >= 9 && h <= 17 {
		return 1.5
	}
	return 0.7
}

func ServerMetric(server string, ts time.Time, r *rand.Rand) models.ServerMetric {
	return models.ServerMetric{
		TS:          ts,
		ServerName:  server,
		CPUUsage:    clamp(uniform(r, 20, 60)+gauss(r, 0, 10), 0, 100),
		MemoryUsage: clamp(uniform(r, 40, 70)+gauss(r, 0, 5), 0, 100),
		DiskUsage:   uniform(r, 30, 85),
		NetworkIn:   uniform(r, 100, 10000),
		NetworkOut:  uniform(r, 50, 5000),
	}
}

func ServerMetrics(cat fixtures.Catalog, ts time.Time, r *rand.Rand) []models.ServerMetric {
	out := make([]models.ServerMetric, 0, len(cat.Servers))
	for _, s := range cat.Servers {
		out = append(out, ServerMetric(s, ts, r))
	}
	return out
}

func ApplicationMetric(app string, ts time.Time, r *rand.Rand) models.ApplicationMetric {
	mult := trafficMultiplier(ts)
	requests := int(uniform(r, 100, 1000) * mult)
	errorRate := uniform(r, 0.01, 0.05)
	return models.ApplicationMetric{
		TS:             ts,
		AppName:        app,
		RequestCount:   requests,
		ErrorCount:     int(float64(requests) * errorRate),
		ResponseTimeMS: math.Max(10, gauss(r, 150, 50)),
		ActiveUsers:    int(uniform(r, 50, 500) * mult),
	}
}

func ApplicationMetrics(cat fixtures.Catalog, ts time.Time, r *rand.Rand) []models.ApplicationMetric {
	out := make([]models.ApplicationMetric, 0, len(cat.Applications))
	for _, a := range cat.Applications {
		out = append(out, ApplicationMetric(a, ts, r))
	}
	return out
}

func BusinessMetric(ts time.Time, r *rand.Rand) models.BusinessMetric {
	return models.BusinessMetric{
		TS:             ts,
		MetricType:     "sales",
		Revenue:        math.Max(0, gauss(r, 5000, 1000)),
		Transactions:   int(uniform(r, 50, 300)),
		ConversionRate: uniform(r, 0.02, 0.08),
	}
}
