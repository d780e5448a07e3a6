package generate

import (
	"math/rand"
	"testing"
	"time"

	"synthgen/internal/fixtures"
)

func testCatalog() fixtures.Catalog {
	c := fixtures.Default()
	c.Servers = []string{"s1", "s2"}
	return c
}

func TestServerMetricsOneRowPerServer(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	ts := time.Date(2026, 2, 21, 12, 0, 0, 0, time.UTC)
	ms := ServerMetrics(testCatalog(), ts, r)
	if len(ms) != 2 {
		t.Fatalf("got %d rows, want 2", len(ms))
	}
	if ms[0].ServerName != "s1" || ms[1].ServerName != "s2" {
		t.Fatalf("unexpected server names: %q %q", ms[0].ServerName, ms[1].ServerName)
	}
	for _, m := range ms {
		if !m.TS.Equal(ts) {
			t.Fatalf("timestamp %v, want %v", m.TS, ts)
		}
	}
}

func TestServerMetricsClampedRanges(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	ts := time.Now().UTC()
	for i := 0; i < 5000; i++ {
		m := ServerMetric("s1", ts, r)
		if m.CPUUsage < 0 || m.CPUUsage > 100 {
			t.Fatalf("cpu %v out of [0,100]", m.CPUUsage)
		}
		if m.MemoryUsage < 0 || m.MemoryUsage > 100 {
			t.Fatalf("memory %v out of [0,100]", m.MemoryUsage)
		}
		if m.DiskUsage < 30 || m.DiskUsage > 85 {
			t.Fatalf("disk %v out of [30,85]", m.DiskUsage)
		}
		if m.NetworkIn < 100 || m.NetworkIn > 10000 {
			t.Fatalf("network_in %v out of [100,10000]", m.NetworkIn)
		}
		if m.NetworkOut < 50 || m.NetworkOut > 5000 {
			t.Fatalf("network_out %v out of [50,5000]", m.NetworkOut)
		}
	}
}

func TestApplicationMetricsErrorsNeverExceedRequests(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	ts := time.Date(2026, 2, 21, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5000; i++ {
		m := ApplicationMetric("frontend", ts, r)
		if m.ErrorCount > m.RequestCount {
			t.Fatalf("error_count %d > request_count %d", m.ErrorCount, m.RequestCount)
		}
		if m.ResponseTimeMS < 10 {
			t.Fatalf("response_time %v below floor", m.ResponseTimeMS)
		}
	}
}

func TestApplicationMetricsBusinessHoursMultiplier(t *testing.T) {
	const samples = 2000
	mean := func(hour int, seed int64) float64 {
		r := rand.New(rand.NewSource(seed))
		ts := time.Date(2026, 2, 21, hour, 30, 0, 0, time.UTC)
		sum := 0.0
		for i := 0; i < samples; i++ {
			sum += float64(ApplicationMetric("frontend", ts, r).RequestCount)
		}
		return sum / samples
	}
	day := mean(12, 3)
	night := mean(3, 3)
	if day <= night {
		t.Fatalf("business-hours mean %v not above off-hours mean %v", day, night)
	}
	// Multiplier ratio is 1.5/0.7; means over many samples should be far apart.
	if day/night < 1.5 {
		t.Fatalf("business-hours ratio %v suspiciously low", day/night)
	}
}

func TestBusinessMetricRanges(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	ts := time.Now().UTC()
	for i := 0; i < 5000; i++ {
		m := BusinessMetric(ts, r)
		if m.Revenue < 0 {
			t.Fatalf("revenue %v below zero", m.Revenue)
		}
		if m.Transactions < 50 || m.Transactions > 300 {
			t.Fatalf("transactions %d out of [50,300]", m.Transactions)
		}
		if m.ConversionRate < 0.02 || m.ConversionRate > 0.08 {
			t.Fatalf("conversion_rate %v out of [0.02,0.08]", m.ConversionRate)
		}
		if m.MetricType != "sales" {
			t.Fatalf("metric_type %q, want sales", m.MetricType)
		}
	}
}

func TestTrafficMultiplierBoundaries(t *testing.T) {
	cases := []struct {
		hour int
		want float64
	}{
		{8, 0.7}, {9, 1.5}, {17, 1.5}, {18, 0.7}, {0, 0.7},
	}
	for _, tc := range cases {
		ts := time.Date(2026, 2, 21, tc.hour, 0, 0, 0, time.UTC)
		if got := trafficMultiplier(ts); got != tc.want {
			t.Fatalf("hour %d: multiplier %v, want %v", tc.hour, got, tc.want)
		}
	}
}
