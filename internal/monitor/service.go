package monitor

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"

	"urlmonitor/internal/domain"
	"urlmonitor/internal/probe"
	"urlmonitor/internal/repo"
)

// Service composes the prober, the health rule, and the store into the
// check-and-save operation and the stats rollup. It is the only component
// that touches both the network and storage.
type Service struct {
	Checker probe.Checker
	Store   repo.ResultStore
	Logger  *zap.Logger
}

func NewService(c probe.Checker, s repo.ResultStore, log *zap.Logger) *Service {
	return &Service{Checker: c, Store: s, Logger: log}
}

// CheckAndSave probes url once and persists the outcome. A probe that never
// completed is still a result (the record carries the error message instead
// of a status code), so every invocation inserts exactly one record.
func (s *Service) CheckAndSave(ctx context.Context, url string) (*domain.Record, error) {
	out := s.Checker.Check(ctx, url)
	rec := &domain.Record{
		URL:          url,
		StatusCode:   out.StatusCode,
		LatencyMS:    out.LatencyMS,
		IsHealthy:    IsHealthy(out.StatusCode),
		ErrorMessage: out.ErrorMessage,
	}
	if err := s.Store.Insert(ctx, rec); err != nil {
		return nil, fmt.Errorf("insert record: %w", err)
	}

	fields := []zap.Field{
		zap.Int64("id", rec.ID),
		zap.String("url", url),
		zap.Bool("is_healthy", rec.IsHealthy),
	}
	if rec.StatusCode != nil {
		fields = append(fields, zap.Int("status_code", *rec.StatusCode))
	}
	if rec.LatencyMS != nil {
		fields = append(fields, zap.Float64("latency_ms", *rec.LatencyMS))
	}
	if rec.ErrorMessage != nil {
		fields = append(fields, zap.String("probe_error", *rec.ErrorMessage))
	}
	s.Logger.Info("check_saved", fields...)
	return rec, nil
}

// Stats turns the store's raw aggregate into the reported statistics. An
// empty store is the explicit zero-state: counts 0, uptime 0.0, everything
// optional nil.
func (s *Service) Stats(ctx context.Context) (*domain.Stats, error) {
	agg, err := s.Store.Aggregate(ctx)
	if err != nil {
		return nil, fmt.Errorf("aggregate: %w", err)
	}

	st := &domain.Stats{TotalChecks: agg.TotalChecks}
	if agg.TotalChecks == 0 {
		return st, nil
	}
	st.HealthyCount = agg.HealthyCount
	st.UnhealthyCount = agg.TotalChecks - agg.HealthyCount
	st.UptimePercentage = round2(100 * float64(agg.HealthyCount) / float64(agg.TotalChecks))
	st.AverageLatencyMS = round2p(agg.AverageLatencyMS)
	st.FastestLatencyMS = round2p(agg.FastestLatencyMS)
	st.SlowestLatencyMS = round2p(agg.SlowestLatencyMS)
	st.MostMonitoredURL = agg.MostMonitoredURL
	return st, nil
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func round2p(v *float64) *float64 {
	if v == nil {
		return nil
	}
	r := round2(*v)
	return &r
}
