package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresSink persists initialization records to a "mef_init_runs"
// table, creating it on first use.
type PostgresSink struct {
	pool *pgxpool.Pool
}

// NewPostgresSink connects to dsn and ensures the audit table exists.
func NewPostgresSink(ctx context.Context, dsn string) (*PostgresSink, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parsing audit DSN: %w", err)
	}
	cfg.MaxConns = 5
	cfg.MaxConnLifetime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connecting to audit database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("audit database unreachable: %w", err)
	}

	s := &PostgresSink{pool: pool}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("audit migration failed: %w", err)
	}
	return s, nil
}

func (s *PostgresSink) migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS mef_init_runs (
			run_id      TEXT PRIMARY KEY,
			files       JSONB NOT NULL,
			succeeded   BOOLEAN NOT NULL,
			error       TEXT,
			started_at  TIMESTAMPTZ NOT NULL,
			duration_ms BIGINT NOT NULL,
			gate_count  INTEGER NOT NULL,
			top_events  INTEGER NOT NULL,
			fault_trees INTEGER NOT NULL
		)
	`)
	return err
}

// Record inserts one initialization attempt.
func (s *PostgresSink) Record(ctx context.Context, r Record) error {
	filesJSON, err := json.Marshal(r.Files)
	if err != nil {
		return fmt.Errorf("marshaling audit file list: %w", err)
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO mef_init_runs
			(run_id, files, succeeded, error, started_at, duration_ms, gate_count, top_events, fault_trees)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`,
		r.RunID, filesJSON, r.Succeeded, r.Error, r.StartedAt, r.Duration.Milliseconds(),
		r.GateCount, r.TopEvents, r.FaultTrees,
	)
	if err != nil {
		return fmt.Errorf("inserting audit record: %w", err)
	}
	return nil
}

// Close releases the connection pool.
func (s *PostgresSink) Close() error {
	s.pool.Close()
	return nil
}
