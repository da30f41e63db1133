package ports

import (
	"context"

	"framelens/domain/core"
	"framelens/domain/stats"
)

// ReportRepository stores comparison reports for later retrieval and export
type ReportRepository interface {
	Save(ctx context.Context, report *stats.ComparisonReport) error
	Get(ctx context.Context, id core.ReportID) (*stats.ComparisonReport, error)
	List(ctx context.Context, limit int) ([]*stats.ComparisonReport, error)
}
