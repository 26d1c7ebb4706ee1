package api

import (
	"testing"
	"time"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newFakeStats(window time.Duration) (*LatencyStats, *fakeClock) {
	clock := &fakeClock{t: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	stats := NewLatencyStats(window)
	stats.now = clock.now
	return stats, clock
}

func TestLatencyStatsSnapshotPercentiles(t *testing.T) {
	stats, _ := newFakeStats(time.Hour)
	for _, ms := range []int64{500, 100, 400, 200, 300} {
		stats.Record(ms)
	}

	snap := stats.Snapshot()
	if snap.Count != 5 {
		t.Fatalf("expected count=5, got %d", snap.Count)
	}
	if snap.MinMs != 100 || snap.MaxMs != 500 {
		t.Fatalf("expected min=100 max=500, got min=%d max=%d", snap.MinMs, snap.MaxMs)
	}
	if snap.AvgMs != 300 {
		t.Fatalf("expected avg=300, got %f", snap.AvgMs)
	}
	if snap.P50Ms != 300 {
		t.Fatalf("expected p50=300, got %f", snap.P50Ms)
	}
	if snap.P95Ms != 480 {
		t.Fatalf("expected p95=480, got %f", snap.P95Ms)
	}
	if snap.P99Ms != 496 {
		t.Fatalf("expected p99=496, got %f", snap.P99Ms)
	}
	if snap.Window != "1h0m0s" {
		t.Fatalf("unexpected window %q", snap.Window)
	}
}

func TestLatencyStatsPrunesExpiredSamples(t *testing.T) {
	stats, clock := newFakeStats(time.Minute)
	stats.Record(100)
	clock.advance(30 * time.Second)
	stats.Record(150)
	clock.advance(45 * time.Second)

	snap := stats.Snapshot()
	if snap.Count != 1 || snap.MinMs != 150 {
		t.Fatalf("expected only the recent sample, got %+v", snap)
	}

	clock.advance(time.Hour)
	stats.Record(200)
	snap = stats.Snapshot()
	if snap.Count != 1 {
		t.Fatalf("expected count=1 for fresh sample, got %d", snap.Count)
	}
	if snap.MinMs != 200 || snap.MaxMs != 200 {
		t.Fatalf("expected min=max=200, got min=%d max=%d", snap.MinMs, snap.MaxMs)
	}
}

func TestLatencyStatsRecordClampsNegativeDuration(t *testing.T) {
	stats, _ := newFakeStats(time.Hour)
	stats.Record(-10)
	snap := stats.Snapshot()
	if snap.Count != 1 {
		t.Fatalf("expected count=1, got %d", snap.Count)
	}
	if snap.MinMs != 0 || snap.MaxMs != 0 {
		t.Fatalf("expected clamped duration=0, got min=%d max=%d", snap.MinMs, snap.MaxMs)
	}
}

func TestLatencyStatsEmpty(t *testing.T) {
	stats := NewLatencyStats(0)
	snap := stats.Snapshot()
	if snap.Count != 0 || snap.Window != "1h0m0s" {
		t.Fatalf("unexpected empty snapshot %+v", snap)
	}
}
