package monitor

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"urlmonitor/internal/probe"
	"urlmonitor/internal/repo/memory"
)

// fakeChecker replays a scripted sequence of outcomes.
type fakeChecker struct {
	outs []probe.Outcome
	i    int
}

func (f *fakeChecker) Check(_ context.Context, _ string) probe.Outcome {
	out := f.outs[f.i%len(f.outs)]
	f.i++
	return out
}

func okOutcome(code int, latency float64) probe.Outcome {
	return probe.Outcome{StatusCode: &code, LatencyMS: &latency}
}

func failOutcome(msg string) probe.Outcome {
	return probe.Outcome{ErrorMessage: &msg}
}

func TestCheckAndSave_PersistsSuccess(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	svc := NewService(&fakeChecker{outs: []probe.Outcome{okOutcome(200, 12.5)}}, store, zap.NewNop())

	rec, err := svc.CheckAndSave(ctx, "https://example.com")
	if err != nil {
		t.Fatalf("CheckAndSave: %v", err)
	}
	if rec.ID == 0 || rec.CreatedAt.IsZero() {
		t.Fatalf("expected system fields assigned, got %+v", rec)
	}
	if !rec.IsHealthy || *rec.StatusCode != 200 || *rec.LatencyMS != 12.5 || rec.ErrorMessage != nil {
		t.Fatalf("unexpected record: %+v", rec)
	}

	got, err := store.GetByID(ctx, rec.ID)
	if err != nil {
		t.Fatalf("GetByID after save: %v", err)
	}
	if got.URL != "https://example.com" {
		t.Fatalf("stored wrong url: %q", got.URL)
	}
}

func TestCheckAndSave_FailedProbeIsStillARecord(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	svc := NewService(&fakeChecker{outs: []probe.Outcome{failOutcome("Request timeout (> 10 seconds)")}}, store, zap.NewNop())

	rec, err := svc.CheckAndSave(ctx, "https://slow.test")
	if err != nil {
		t.Fatalf("CheckAndSave should not fail on a failed probe: %v", err)
	}
	if rec.IsHealthy || rec.StatusCode != nil || rec.LatencyMS != nil {
		t.Fatalf("failed probe should be unhealthy with nil status/latency: %+v", rec)
	}
	if rec.ErrorMessage == nil || *rec.ErrorMessage != "Request timeout (> 10 seconds)" {
		t.Fatalf("error message lost: %+v", rec.ErrorMessage)
	}
	if n, _ := store.CountTotal(ctx); n != 1 {
		t.Fatalf("want exactly one persisted record, got %d", n)
	}
}

func TestStats_ZeroState(t *testing.T) {
	svc := NewService(&fakeChecker{outs: []probe.Outcome{okOutcome(200, 1)}}, memory.New(), zap.NewNop())
	st, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if st.TotalChecks != 0 || st.HealthyCount != 0 || st.UnhealthyCount != 0 {
		t.Fatalf("want zero counts, got %+v", st)
	}
	if st.UptimePercentage != 0.0 {
		t.Fatalf("want uptime 0.0, got %v", st.UptimePercentage)
	}
	if st.AverageLatencyMS != nil || st.FastestLatencyMS != nil ||
		st.SlowestLatencyMS != nil || st.MostMonitoredURL != nil {
		t.Fatalf("optional fields should be absent: %+v", st)
	}
}

func TestStats_MixedScenario(t *testing.T) {
	// 200, 301, 404, timeout -> healthy, healthy, unhealthy, unhealthy.
	ctx := context.Background()
	store := memory.New()
	chk := &fakeChecker{outs: []probe.Outcome{
		okOutcome(200, 10),
		okOutcome(301, 20),
		okOutcome(404, 30),
		failOutcome("Request timeout (> 10 seconds)"),
	}}
	svc := NewService(chk, store, zap.NewNop())

	wantHealthy := []bool{true, true, false, false}
	for i, w := range wantHealthy {
		rec, err := svc.CheckAndSave(ctx, "https://example.com")
		if err != nil {
			t.Fatalf("CheckAndSave #%d: %v", i, err)
		}
		if rec.IsHealthy != w {
			t.Fatalf("check #%d: IsHealthy=%v want %v", i, rec.IsHealthy, w)
		}
	}

	st, err := svc.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if st.TotalChecks != 4 || st.HealthyCount != 2 || st.UnhealthyCount != 2 {
		t.Fatalf("counts wrong: %+v", st)
	}
	if st.HealthyCount+st.UnhealthyCount != st.TotalChecks {
		t.Fatalf("healthy+unhealthy != total: %+v", st)
	}
	if st.UptimePercentage != 50.0 {
		t.Fatalf("want uptime 50.0, got %v", st.UptimePercentage)
	}
	if *st.FastestLatencyMS != 10 || *st.SlowestLatencyMS != 30 || *st.AverageLatencyMS != 20 {
		t.Fatalf("latency stats wrong: %+v", st)
	}
	if st.MostMonitoredURL == nil || *st.MostMonitoredURL != "https://example.com" {
		t.Fatalf("most monitored wrong: %+v", st.MostMonitoredURL)
	}
}

func TestStats_Rounding(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	chk := &fakeChecker{outs: []probe.Outcome{
		okOutcome(200, 10),
		okOutcome(200, 20),
		okOutcome(500, 25),
	}}
	svc := NewService(chk, store, zap.NewNop())
	for i := 0; i < 3; i++ {
		if _, err := svc.CheckAndSave(ctx, "https://example.com"); err != nil {
			t.Fatalf("CheckAndSave: %v", err)
		}
	}

	st, err := svc.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	// 2/3 healthy -> 66.666... -> 66.67 after rounding.
	if st.UptimePercentage != 66.67 {
		t.Fatalf("want uptime 66.67, got %v", st.UptimePercentage)
	}
	// avg of 10, 20, 25 is 18.333... -> 18.33.
	if *st.AverageLatencyMS != 18.33 {
		t.Fatalf("want avg rounded to 18.33, got %v", *st.AverageLatencyMS)
	}
}
