package repository

import (
	"context"

	"ticketsync-service/internal/domain/entity"
)

// RunReportRepository defines the interface for ingestion run reports
type RunReportRepository interface {
	Save(ctx context.Context, report *entity.RunReport) error
	FindRecent(ctx context.Context, limit int) ([]*entity.RunReport, error)
}
