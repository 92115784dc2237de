// Package postgres persists metric runs in PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"segscore/app"
	"segscore/domain/core"
	"segscore/domain/dataset"
	"segscore/ports"
)

const schema = `
CREATE TABLE IF NOT EXISTS metric_runs (
	id           TEXT PRIMARY KEY,
	metric       TEXT NOT NULL,
	dataset_hash TEXT NOT NULL,
	mean         DOUBLE PRECISION,
	std_dev      DOUBLE PRECISION,
	variance     DOUBLE PRECISION,
	std_err      DOUBLE PRECISION,
	n            INTEGER,
	micro        DOUBLE PRECISION,
	coefficient  DOUBLE PRECISION,
	created_at   TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS pair_scores (
	run_id     TEXT NOT NULL REFERENCES metric_runs(id) ON DELETE CASCADE,
	item       TEXT NOT NULL,
	hypothesis TEXT NOT NULL,
	reference  TEXT NOT NULL,
	score      DOUBLE PRECISION NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_pair_scores_run_id ON pair_scores(run_id);
`

// resultStore implements the ResultStore interface
type resultStore struct {
	db *sqlx.DB
}

// NewResultStore connects to PostgreSQL and returns a result store
func NewResultStore(url string) (ports.ResultStore, error) {
	db, err := sqlx.Connect("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)
	return &resultStore{db: db}, nil
}

// EnsureSchema creates the result tables if they do not exist
func (s *resultStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create result schema: %w", err)
	}
	return nil
}

// runRow mirrors the metric_runs table
type runRow struct {
	ID          string           `db:"id"`
	Metric      string           `db:"metric"`
	DatasetHash string           `db:"dataset_hash"`
	Mean        sql.NullFloat64  `db:"mean"`
	StdDev      sql.NullFloat64  `db:"std_dev"`
	Variance    sql.NullFloat64  `db:"variance"`
	StdErr      sql.NullFloat64  `db:"std_err"`
	N           sql.NullInt64    `db:"n"`
	Micro       sql.NullFloat64  `db:"micro"`
	Coefficient sql.NullFloat64  `db:"coefficient"`
	CreatedAt   time.Time        `db:"created_at"`
}

// SaveRun persists a run and its per-pair scores in one transaction
func (s *resultStore) SaveRun(ctx context.Context, run *app.RunResult) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	row := toRow(run)
	query := `INSERT INTO metric_runs (
		id, metric, dataset_hash, mean, std_dev, variance, std_err, n, micro, coefficient, created_at
	) VALUES (
		:id, :metric, :dataset_hash, :mean, :std_dev, :variance, :std_err, :n, :micro, :coefficient, :created_at
	)`
	if _, err := tx.NamedExecContext(ctx, query, row); err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	for _, pair := range run.Pairs {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO pair_scores (run_id, item, hypothesis, reference, score) VALUES ($1, $2, $3, $4, $5)`,
			run.RunID.String(), string(pair.Item), string(pair.Hypothesis), string(pair.Reference), pair.Score,
		)
		if err != nil {
			return fmt.Errorf("failed to insert pair score: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run: %w", err)
	}
	return nil
}

// GetRun loads a run and its pair scores by identifier
func (s *resultStore) GetRun(ctx context.Context, id core.RunID) (*app.RunResult, error) {
	var row runRow
	err := s.db.GetContext(ctx, &row, `SELECT * FROM metric_runs WHERE id = $1`, id.String())
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("run not found: %s", id)
		}
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	run := fromRow(row)

	var pairs []struct {
		Item       string  `db:"item"`
		Hypothesis string  `db:"hypothesis"`
		Reference  string  `db:"reference"`
		Score      float64 `db:"score"`
	}
	err = s.db.SelectContext(ctx, &pairs,
		`SELECT item, hypothesis, reference, score FROM pair_scores WHERE run_id = $1 ORDER BY item, hypothesis, reference`,
		id.String())
	if err != nil {
		return nil, fmt.Errorf("failed to get pair scores: %w", err)
	}
	for _, p := range pairs {
		run.Pairs = append(run.Pairs, app.PairScore{
			Item:       dataset.ItemID(p.Item),
			Hypothesis: dataset.Coder(p.Hypothesis),
			Reference:  dataset.Coder(p.Reference),
			Score:      p.Score,
		})
	}
	return run, nil
}

// ListRuns returns the most recent runs without pair scores
func (s *resultStore) ListRuns(ctx context.Context, limit int) ([]*app.RunResult, error) {
	if limit <= 0 {
		limit = 50
	}
	var rows []runRow
	err := s.db.SelectContext(ctx, &rows,
		`SELECT * FROM metric_runs ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	runs := make([]*app.RunResult, 0, len(rows))
	for _, row := range rows {
		runs = append(runs, fromRow(row))
	}
	return runs, nil
}

// Close releases the connection pool
func (s *resultStore) Close() error {
	return s.db.Close()
}

func toRow(run *app.RunResult) runRow {
	row := runRow{
		ID:          run.RunID.String(),
		Metric:      run.Metric,
		DatasetHash: run.DatasetHash.String(),
		CreatedAt:   run.CreatedAt.Time(),
	}
	if run.Summary != nil {
		row.Mean = sql.NullFloat64{Float64: run.Summary.Mean, Valid: true}
		row.StdDev = sql.NullFloat64{Float64: run.Summary.StdDev, Valid: true}
		row.Variance = sql.NullFloat64{Float64: run.Summary.Variance, Valid: true}
		row.StdErr = sql.NullFloat64{Float64: run.Summary.StdErr, Valid: true}
		row.N = sql.NullInt64{Int64: int64(run.Summary.N), Valid: true}
	}
	if run.Micro != nil {
		row.Micro = sql.NullFloat64{Float64: *run.Micro, Valid: true}
	}
	if run.Coefficient != nil {
		row.Coefficient = sql.NullFloat64{Float64: *run.Coefficient, Valid: true}
	}
	return row
}

func fromRow(row runRow) *app.RunResult {
	run := &app.RunResult{
		RunID:       core.RunID(row.ID),
		Metric:      row.Metric,
		DatasetHash: core.Hash(row.DatasetHash),
		CreatedAt:   core.NewTimestamp(row.CreatedAt),
	}
	if row.Mean.Valid {
		run.Summary = &app.Summary{
			Mean:     row.Mean.Float64,
			StdDev:   row.StdDev.Float64,
			Variance: row.Variance.Float64,
			StdErr:   row.StdErr.Float64,
			N:        int(row.N.Int64),
		}
	}
	if row.Micro.Valid {
		v := row.Micro.Float64
		run.Micro = &v
	}
	if row.Coefficient.Valid {
		v := row.Coefficient.Float64
		run.Coefficient = &v
	}
	return run
}
