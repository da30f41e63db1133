package postgres

import (
	"context"
	"database/sql"

	"github.com/goccy/go-json"
	"github.com/jmoiron/sqlx"

	"framelens/domain/core"
	"framelens/domain/stats"
	"framelens/internal/errors"
	"framelens/ports"
)

// ReportRepositoryImpl implements ports.ReportRepository for PostgreSQL,
// storing each comparison report as a JSONB payload keyed by report ID.
type ReportRepositoryImpl struct {
	db *sqlx.DB
}

// NewReportRepository creates the repository and ensures its schema exists
func NewReportRepository(db *sqlx.DB) (ports.ReportRepository, error) {
	repo := &ReportRepositoryImpl{db: db}
	if err := repo.ensureSchema(); err != nil {
		return nil, errors.DatabaseError("failed to create reports schema", err)
	}
	return repo, nil
}

func (r *ReportRepositoryImpl) ensureSchema() error {
	_, err := r.db.Exec(`
		CREATE TABLE IF NOT EXISTS comparison_reports (
			id         TEXT PRIMARY KEY,
			metric     TEXT NOT NULL,
			payload    JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`)
	return err
}

// Save upserts a comparison report
func (r *ReportRepositoryImpl) Save(ctx context.Context, report *stats.ComparisonReport) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return errors.Wrap(err, "failed to encode comparison report")
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO comparison_reports (id, metric, payload, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			metric  = EXCLUDED.metric,
			payload = EXCLUDED.payload`,
		string(report.ID), string(report.Metric), payload, report.CreatedAt.Time())
	if err != nil {
		return errors.DatabaseError("failed to save comparison report", err)
	}
	return nil
}

// Get retrieves one report by ID
func (r *ReportRepositoryImpl) Get(ctx context.Context, id core.ReportID) (*stats.ComparisonReport, error) {
	var payload []byte
	err := r.db.QueryRowContext(ctx,
		`SELECT payload FROM comparison_reports WHERE id = $1`, string(id)).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("comparison report " + string(id))
	}
	if err != nil {
		return nil, errors.DatabaseError("failed to load comparison report", err)
	}

	var report stats.ComparisonReport
	if err := json.Unmarshal(payload, &report); err != nil {
		return nil, errors.Wrap(err, "failed to decode comparison report")
	}
	return &report, nil
}

// List returns the most recent reports, newest first
func (r *ReportRepositoryImpl) List(ctx context.Context, limit int) ([]*stats.ComparisonReport, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT payload FROM comparison_reports ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, errors.DatabaseError("failed to list comparison reports", err)
	}
	defer rows.Close()

	var reports []*stats.ComparisonReport
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, errors.DatabaseError("failed to scan comparison report", err)
		}
		var report stats.ComparisonReport
		if err := json.Unmarshal(payload, &report); err != nil {
			return nil, errors.Wrap(err, "failed to decode comparison report")
		}
		reports = append(reports, &report)
	}
	return reports, rows.Err()
}
