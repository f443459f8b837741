package postgres

import (
	"context"
	"encoding/json"

	"gwinfer/domain/run"
	"gwinfer/domain/sample"
	"gwinfer/internal/errors"
	"gwinfer/ports"

	"github.com/jmoiron/sqlx"
)

// ResultRepository persists run manifests and weighted samples to Postgres.
type ResultRepository struct {
	db *sqlx.DB
}

var _ ports.ResultSink = (*ResultRepository)(nil)

// NewResultRepository creates a PostgreSQL result repository.
func NewResultRepository(db *sqlx.DB) *ResultRepository {
	return &ResultRepository{db: db}
}

// EnsureSchema creates the result tables if they do not exist.
func (r *ResultRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS inference_runs (
			run_id TEXT PRIMARY KEY,
			event_id TEXT NOT NULL,
			seed BIGINT NOT NULL,
			sample_count INT NOT NULL,
			prior_hash TEXT NOT NULL,
			code_version TEXT NOT NULL,
			fingerprint TEXT NOT NULL,
			log_evidence DOUBLE PRECISION,
			ess DOUBLE PRECISION,
			created_at TIMESTAMPTZ NOT NULL
		);
		CREATE TABLE IF NOT EXISTS inference_samples (
			run_id TEXT NOT NULL REFERENCES inference_runs(run_id),
			ordinal INT NOT NULL,
			params JSONB NOT NULL,
			log_posterior DOUBLE PRECISION NOT NULL,
			weight DOUBLE PRECISION NOT NULL,
			PRIMARY KEY (run_id, ordinal)
		);
	`)
	if err != nil {
		return errors.Wrap(err, "failed to ensure result schema")
	}
	return nil
}

// WriteResult inserts the manifest row and all sample rows in one
// transaction.
func (r *ResultRepository) WriteResult(ctx context.Context, manifest *run.Manifest, result *sample.Result) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "failed to begin result transaction")
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO inference_runs (run_id, event_id, seed, sample_count, prior_hash, code_version, fingerprint, log_evidence, ess, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, manifest.RunID, manifest.EventID, int64(manifest.Seed), manifest.SampleCount,
		manifest.PriorHash, manifest.CodeVersion, manifest.Fingerprint,
		result.LogEvidence, result.ESS, manifest.CreatedAt.Time())
	if err != nil {
		return errors.Wrap(err, "failed to insert run manifest")
	}

	stmt, err := tx.PreparexContext(ctx, `
		INSERT INTO inference_samples (run_id, ordinal, params, log_posterior, weight)
		VALUES ($1, $2, $3, $4, $5)
	`)
	if err != nil {
		return errors.Wrap(err, "failed to prepare sample insert")
	}
	defer stmt.Close()

	for i, s := range result.Samples {
		params, err := json.Marshal(s.Params)
		if err != nil {
			return errors.Wrap(err, "failed to encode sample params")
		}
		if _, err := stmt.ExecContext(ctx, manifest.RunID, i, params, s.LogPosterior, s.Weight); err != nil {
			return errors.Wrapf(err, "failed to insert sample %d", i)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "failed to commit result transaction")
	}
	return nil
}
