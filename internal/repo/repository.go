package repo

import (
	"context"
	"errors"

	"urlmonitor/internal/domain"
)

// ErrNotFound indicates the requested record does not exist.
var ErrNotFound = errors.New("repo: record not found")

// AggregateRow is the raw rollup a store computes over every record. Latency
// figures cover only rows that carry a latency; MostMonitoredURL is nil when
// the store is empty. Ties for most-monitored break toward the URL first seen
// (smallest first id).
type AggregateRow struct {
	TotalChecks      int
	HealthyCount     int
	AverageLatencyMS *float64
	FastestLatencyMS *float64
	SlowestLatencyMS *float64
	MostMonitoredURL *string
}

// ResultStore is the port a persistence adapter implements; swap in any DB
// adapter later. List-style calls return one page plus the total match count,
// ordered created_at DESC with id DESC as tiebreak (newest first). A page
// past the end is an empty slice, not an error.
type ResultStore interface {
	// Insert assigns ID and CreatedAt, persists r, and fills them in place.
	Insert(ctx context.Context, r *domain.Record) error
	// GetByID returns ErrNotFound for unknown ids.
	GetByID(ctx context.Context, id int64) (*domain.Record, error)
	List(ctx context.Context, page, pageSize int) ([]domain.Record, int, error)
	ListByHealth(ctx context.Context, healthy bool, page, pageSize int) ([]domain.Record, int, error)
	// SearchByURL matches by case-sensitive substring containment on url.
	SearchByURL(ctx context.Context, substr string, page, pageSize int) ([]domain.Record, int, error)
	// Delete reports whether the record existed; deleting twice is not an
	// error, the second call just reports false.
	Delete(ctx context.Context, id int64) (bool, error)
	CountTotal(ctx context.Context) (int, error)
	Aggregate(ctx context.Context) (AggregateRow, error)
	Close() error
}
