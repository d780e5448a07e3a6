package app

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"synthgen/internal/config"
	"synthgen/internal/fixtures"
)

func TestRunUsesRecoveryDelayAfterFailedTick(t *testing.T) {
	sink := &memSink{failTicks: 1}
	svc := NewService(fixtures.Default(), sink, nil, rand.New(rand.NewSource(5)), testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	var delays []time.Duration
	a := &App{
		cfg: config.Config{
			TickInterval:     15 * time.Second,
			RecoveryInterval: 5 * time.Second,
			BackfillHours:    0,
		},
		log: testLogger(),
		svc: svc,
		now: func() time.Time { return time.Date(2026, 2, 21, 12, 0, 0, 0, time.UTC) },
		sleep: func(_ context.Context, d time.Duration) bool {
			delays = append(delays, d)
			if len(delays) == 2 {
				cancel()
				return false
			}
			return true
		},
	}

	if err := a.Run(ctx); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(delays) != 2 {
		t.Fatalf("ran %d ticks, want 2", len(delays))
	}
	if delays[0] != 5*time.Second {
		t.Fatalf("delay after failed tick %v, want recovery interval", delays[0])
	}
	if delays[1] != 15*time.Second {
		t.Fatalf("delay after good tick %v, want tick interval", delays[1])
	}
	// The failed first tick must not stop the second from writing rows.
	if len(sink.servers) == 0 {
		t.Fatal("second tick wrote no rows")
	}
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	sink := &memSink{}
	svc := NewService(fixtures.Default(), sink, nil, rand.New(rand.NewSource(5)), testLogger())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	a := &App{
		cfg:   config.Config{TickInterval: time.Second, RecoveryInterval: time.Second},
		log:   testLogger(),
		svc:   svc,
		now:   time.Now,
		sleep: waitFor,
	}
	if err := a.Run(ctx); err != nil {
		t.Fatalf("run after cancel: %v", err)
	}
	if len(sink.servers) != 0 {
		t.Fatalf("cancelled run still wrote %d rows", len(sink.servers))
	}
}

func TestWaitForHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()
	start := time.Now()
	if waitFor(ctx, time.Minute) {
		t.Fatal("waitFor returned true for cancelled context")
	}
	if time.Since(start) > 5*time.Second {
		t.Fatal("waitFor did not return promptly on cancel")
	}
}
