package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"urlmonitor/internal/domain"
	"urlmonitor/internal/repo"
)

var _ repo.ResultStore = (*Store)(nil)

type Store struct {
	pool *pgxpool.Pool
	log  *zap.Logger
}

func New(ctx context.Context, dsn string, log *zap.Logger) (*Store, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.New: %w", err)
	}
	ctxPing, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctxPing); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	s := &Store{pool: pool, log: log}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}

func (s *Store) migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS monitoring_results (
	id            BIGSERIAL PRIMARY KEY,
	url           TEXT NOT NULL,
	status_code   INTEGER,
	latency_ms    DOUBLE PRECISION,
	is_healthy    BOOLEAN NOT NULL DEFAULT FALSE,
	error_message TEXT,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_results_created_at ON monitoring_results (created_at DESC, id DESC);
CREATE INDEX IF NOT EXISTS idx_results_is_healthy ON monitoring_results (is_healthy);
CREATE INDEX IF NOT EXISTS idx_results_url ON monitoring_results (url)`)
	return err
}

func (s *Store) Insert(ctx context.Context, r *domain.Record) error {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO monitoring_results
		   (url, status_code, latency_ms, is_healthy, error_message)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		r.URL, r.StatusCode, r.LatencyMS, r.IsHealthy, r.ErrorMessage,
	).Scan(&r.ID, &r.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert result: %w", err)
	}
	return nil
}

func (s *Store) GetByID(ctx context.Context, id int64) (*domain.Record, error) {
	row := s.pool.QueryRow(ctx,
		selectCols+` FROM monitoring_results WHERE id = $1`, id)
	rec, err := scanRecord(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repo.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get result: %w", err)
	}
	return rec, nil
}

func (s *Store) List(ctx context.Context, page, pageSize int) ([]domain.Record, int, error) {
	return s.listWhere(ctx, "", nil, page, pageSize)
}

func (s *Store) ListByHealth(ctx context.Context, healthy bool, page, pageSize int) ([]domain.Record, int, error) {
	return s.listWhere(ctx, "WHERE is_healthy = $1", []any{healthy}, page, pageSize)
}

// SearchByURL uses strpos so the match is plain case-sensitive containment,
// with no LIKE wildcard surprises.
func (s *Store) SearchByURL(ctx context.Context, substr string, page, pageSize int) ([]domain.Record, int, error) {
	return s.listWhere(ctx, "WHERE strpos(url, $1) > 0", []any{substr}, page, pageSize)
}

func (s *Store) listWhere(ctx context.Context, where string, args []any, page, pageSize int) ([]domain.Record, int, error) {
	var total int
	if err := s.pool.QueryRow(ctx,
		"SELECT COUNT(*) FROM monitoring_results "+where, args...,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count results: %w", err)
	}

	if page < 1 || pageSize < 1 {
		return []domain.Record{}, total, nil
	}
	offset := (page - 1) * pageSize

	n := len(args)
	query := fmt.Sprintf(
		"%s FROM monitoring_results %s ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d",
		selectCols, where, n+1, n+2)
	rows, err := s.pool.Query(ctx, query, append(append([]any{}, args...), pageSize, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list results: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Record, 0, pageSize)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan result: %w", err)
		}
		out = append(out, *rec)
	}
	return out, total, rows.Err()
}

func (s *Store) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM monitoring_results WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete result: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Store) CountTotal(ctx context.Context) (int, error) {
	var total int
	if err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM monitoring_results`).Scan(&total); err != nil {
		return 0, fmt.Errorf("count total: %w", err)
	}
	return total, nil
}

func (s *Store) Aggregate(ctx context.Context) (repo.AggregateRow, error) {
	var agg repo.AggregateRow
	err := s.pool.QueryRow(ctx, `
SELECT COUNT(*),
       COUNT(*) FILTER (WHERE is_healthy),
       AVG(latency_ms),
       MIN(latency_ms),
       MAX(latency_ms)
  FROM monitoring_results`).Scan(
		&agg.TotalChecks, &agg.HealthyCount,
		&agg.AverageLatencyMS, &agg.FastestLatencyMS, &agg.SlowestLatencyMS)
	if err != nil {
		return agg, fmt.Errorf("aggregate: %w", err)
	}

	if agg.TotalChecks > 0 {
		var url string
		err := s.pool.QueryRow(ctx, `
SELECT url
  FROM monitoring_results
 GROUP BY url
 ORDER BY COUNT(*) DESC, MIN(id) ASC
 LIMIT 1`).Scan(&url)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return agg, fmt.Errorf("most monitored url: %w", err)
		}
		if err == nil {
			agg.MostMonitoredURL = &url
		}
	}
	return agg, nil
}

const selectCols = `SELECT id, url, status_code, latency_ms, is_healthy, error_message, created_at`

func scanRecord(row pgx.Row) (*domain.Record, error) {
	var rec domain.Record
	if err := row.Scan(&rec.ID, &rec.URL, &rec.StatusCode, &rec.LatencyMS,
		&rec.IsHealthy, &rec.ErrorMessage, &rec.CreatedAt); err != nil {
		return nil, err
	}
	return &rec, nil
}
