package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"urlmonitor/internal/domain"
	"urlmonitor/internal/repo"
)

// Store keeps every record in memory. It backs the API when no DATABASE_URL
// is configured and doubles as the test store.
//
// Records live in insertion order, so ascending id. CreatedAt is assigned
// under the same lock as the id, which keeps it non-decreasing with id and
// lets reads walk the slice backwards for newest-first ordering.
type Store struct {
	mu      sync.RWMutex
	nextID  int64
	records []domain.Record
}

func New() *Store {
	return &Store{records: make([]domain.Record, 0, 128)}
}

func (m *Store) Close() error { return nil }

func (m *Store) Insert(ctx context.Context, r *domain.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	r.ID = m.nextID
	r.CreatedAt = time.Now().UTC()
	m.records = append(m.records, *r)
	return nil
}

func (m *Store) GetByID(ctx context.Context, id int64) (*domain.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for i := range m.records {
		if m.records[i].ID == id {
			rec := m.records[i]
			return &rec, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (m *Store) List(ctx context.Context, page, pageSize int) ([]domain.Record, int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	all := m.filtered(func(*domain.Record) bool { return true })
	return paginate(all, page, pageSize), len(all), nil
}

func (m *Store) ListByHealth(ctx context.Context, healthy bool, page, pageSize int) ([]domain.Record, int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	all := m.filtered(func(r *domain.Record) bool { return r.IsHealthy == healthy })
	return paginate(all, page, pageSize), len(all), nil
}

// SearchByURL matches case-sensitively, same as the SQL stores.
func (m *Store) SearchByURL(ctx context.Context, substr string, page, pageSize int) ([]domain.Record, int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	all := m.filtered(func(r *domain.Record) bool { return strings.Contains(r.URL, substr) })
	return paginate(all, page, pageSize), len(all), nil
}

func (m *Store) Delete(ctx context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.records {
		if m.records[i].ID == id {
			m.records = append(m.records[:i], m.records[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (m *Store) CountTotal(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records), nil
}

func (m *Store) Aggregate(ctx context.Context) (repo.AggregateRow, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var agg repo.AggregateRow
	agg.TotalChecks = len(m.records)
	if agg.TotalChecks == 0 {
		return agg, nil
	}

	var sum float64
	var latCount int
	urlCounts := make(map[string]int)
	urlFirst := make(map[string]int) // url -> index of first occurrence
	for i := range m.records {
		r := &m.records[i]
		if r.IsHealthy {
			agg.HealthyCount++
		}
		if r.LatencyMS != nil {
			v := *r.LatencyMS
			sum += v
			latCount++
			if agg.FastestLatencyMS == nil || v < *agg.FastestLatencyMS {
				f := v
				agg.FastestLatencyMS = &f
			}
			if agg.SlowestLatencyMS == nil || v > *agg.SlowestLatencyMS {
				s := v
				agg.SlowestLatencyMS = &s
			}
		}
		if _, seen := urlCounts[r.URL]; !seen {
			urlFirst[r.URL] = i
		}
		urlCounts[r.URL]++
	}
	if latCount > 0 {
		avg := sum / float64(latCount)
		agg.AverageLatencyMS = &avg
	}

	best := ""
	for u, n := range urlCounts {
		if best == "" || n > urlCounts[best] ||
			(n == urlCounts[best] && urlFirst[u] < urlFirst[best]) {
			best = u
		}
	}
	if best != "" {
		b := best
		agg.MostMonitoredURL = &b
	}
	return agg, nil
}

// filtered returns matching records newest first. Walking backwards over the
// insertion-ordered slice gives created_at DESC, id DESC without a sort.
func (m *Store) filtered(match func(*domain.Record) bool) []domain.Record {
	out := make([]domain.Record, 0, len(m.records))
	for i := len(m.records) - 1; i >= 0; i-- {
		if match(&m.records[i]) {
			out = append(out, m.records[i])
		}
	}
	return out
}

// paginate tolerates any non-negative page inputs: an offset past the end
// yields an empty page, never a panic.
func paginate(rows []domain.Record, page, pageSize int) []domain.Record {
	if page < 1 || pageSize < 1 {
		return []domain.Record{}
	}
	off := (page - 1) * pageSize
	if off >= len(rows) {
		return []domain.Record{}
	}
	end := off + pageSize
	if end > len(rows) {
		end = len(rows)
	}
	return rows[off:end]
}
