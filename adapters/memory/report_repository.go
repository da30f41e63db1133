package memory

import (
	"context"
	"sort"
	"sync"

	"framelens/domain/core"
	"framelens/domain/stats"
	"framelens/internal/errors"
	"framelens/ports"
)

// ReportRepository is the in-memory report store used when no database is
// configured.
type ReportRepository struct {
	mu      sync.RWMutex
	reports map[core.ReportID]*stats.ComparisonReport
}

// NewReportRepository creates an empty in-memory store
func NewReportRepository() ports.ReportRepository {
	return &ReportRepository{reports: make(map[core.ReportID]*stats.ComparisonReport)}
}

// Save stores a report
func (r *ReportRepository) Save(ctx context.Context, report *stats.ComparisonReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reports[report.ID] = report
	return nil
}

// Get retrieves one report by ID
func (r *ReportRepository) Get(ctx context.Context, id core.ReportID) (*stats.ComparisonReport, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	report, ok := r.reports[id]
	if !ok {
		return nil, errors.NotFound("comparison report " + string(id))
	}
	return report, nil
}

// List returns the most recent reports, newest first
func (r *ReportRepository) List(ctx context.Context, limit int) ([]*stats.ComparisonReport, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reports := make([]*stats.ComparisonReport, 0, len(r.reports))
	for _, report := range r.reports {
		reports = append(reports, report)
	}
	sort.Slice(reports, func(i, j int) bool {
		return reports[j].CreatedAt.Before(reports[i].CreatedAt)
	})

	if limit > 0 && len(reports) > limit {
		reports = reports[:limit]
	}
	return reports, nil
}
