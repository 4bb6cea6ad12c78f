package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"urlmonitor/internal/domain"
	"urlmonitor/internal/repo"
)

var _ repo.ResultStore = (*Store)(nil)

// Store persists results in a local SQLite file via database/sql.
type Store struct {
	db *sql.DB
}

// New opens (or creates) the database file and ensures the schema exists.
func New(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", fmt.Sprintf("%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// A single connection serializes writers, so concurrent inserts queue
	// instead of failing with SQLITE_BUSY.
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) migrate(ctx context.Context) error {
	schema := `
CREATE TABLE IF NOT EXISTS monitoring_results (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	url           TEXT NOT NULL,
	status_code   INTEGER,
	latency_ms    REAL,
	is_healthy    INTEGER NOT NULL DEFAULT 0,
	error_message TEXT,
	created_at    TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_results_created_at ON monitoring_results (created_at DESC, id DESC);
CREATE INDEX IF NOT EXISTS idx_results_is_healthy ON monitoring_results (is_healthy);
CREATE INDEX IF NOT EXISTS idx_results_url ON monitoring_results (url);
`
	_, err := s.db.ExecContext(ctx, schema)
	return err
}

func (s *Store) Insert(ctx context.Context, r *domain.Record) error {
	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO monitoring_results
		   (url, status_code, latency_ms, is_healthy, error_message, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.URL, r.StatusCode, r.LatencyMS, r.IsHealthy, r.ErrorMessage,
		now.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert result: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("last insert id: %w", err)
	}
	r.ID = id
	r.CreatedAt = now
	return nil
}

func (s *Store) GetByID(ctx context.Context, id int64) (*domain.Record, error) {
	row := s.db.QueryRowContext(ctx,
		selectCols+` FROM monitoring_results WHERE id = ?`, id)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
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
	return s.listWhere(ctx, "WHERE is_healthy = ?", []any{healthy}, page, pageSize)
}

// SearchByURL uses instr() rather than LIKE: SQLite's LIKE folds ASCII case,
// and the search contract is case-sensitive containment.
func (s *Store) SearchByURL(ctx context.Context, substr string, page, pageSize int) ([]domain.Record, int, error) {
	return s.listWhere(ctx, "WHERE instr(url, ?) > 0", []any{substr}, page, pageSize)
}

func (s *Store) listWhere(ctx context.Context, where string, args []any, page, pageSize int) ([]domain.Record, int, error) {
	var total int
	if err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM monitoring_results "+where, args...,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count results: %w", err)
	}

	if page < 1 || pageSize < 1 {
		return []domain.Record{}, total, nil
	}
	offset := (page - 1) * pageSize

	query := selectCols + " FROM monitoring_results " + where +
		" ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?"
	rows, err := s.db.QueryContext(ctx, query, append(append([]any{}, args...), pageSize, offset)...)
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
	res, err := s.db.ExecContext(ctx, `DELETE FROM monitoring_results WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete result: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}

func (s *Store) CountTotal(ctx context.Context) (int, error) {
	var total int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM monitoring_results`).Scan(&total); err != nil {
		return 0, fmt.Errorf("count total: %w", err)
	}
	return total, nil
}

func (s *Store) Aggregate(ctx context.Context) (repo.AggregateRow, error) {
	var agg repo.AggregateRow

	var avg, min, max sql.NullFloat64
	err := s.db.QueryRowContext(ctx, `
SELECT COUNT(*),
       COALESCE(SUM(is_healthy), 0),
       AVG(latency_ms),
       MIN(latency_ms),
       MAX(latency_ms)
  FROM monitoring_results`).Scan(&agg.TotalChecks, &agg.HealthyCount, &avg, &min, &max)
	if err != nil {
		return agg, fmt.Errorf("aggregate: %w", err)
	}
	if avg.Valid {
		agg.AverageLatencyMS = &avg.Float64
	}
	if min.Valid {
		agg.FastestLatencyMS = &min.Float64
	}
	if max.Valid {
		agg.SlowestLatencyMS = &max.Float64
	}

	if agg.TotalChecks > 0 {
		var url string
		err := s.db.QueryRowContext(ctx, `
SELECT url
  FROM monitoring_results
 GROUP BY url
 ORDER BY COUNT(*) DESC, MIN(id) ASC
 LIMIT 1`).Scan(&url)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return agg, fmt.Errorf("most monitored url: %w", err)
		}
		if err == nil {
			agg.MostMonitoredURL = &url
		}
	}
	return agg, nil
}

const selectCols = `SELECT id, url, status_code, latency_ms, is_healthy, error_message, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*domain.Record, error) {
	var (
		rec       domain.Record
		status    sql.NullInt64
		latency   sql.NullFloat64
		errMsg    sql.NullString
		createdAt string
	)
	if err := row.Scan(&rec.ID, &rec.URL, &status, &latency, &rec.IsHealthy, &errMsg, &createdAt); err != nil {
		return nil, err
	}
	if status.Valid {
		v := int(status.Int64)
		rec.StatusCode = &v
	}
	if latency.Valid {
		rec.LatencyMS = &latency.Float64
	}
	if errMsg.Valid {
		rec.ErrorMessage = &errMsg.String
	}
	ts, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	rec.CreatedAt = ts
	return &rec, nil
}
