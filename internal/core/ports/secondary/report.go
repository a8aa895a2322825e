package secondary

import (
	"context"

	"github.com/google/uuid"

	"gitlab.com/codeprep-2025.net/internal/domain"
)

// ReportRepository defines the interface for storing and retrieving grading
// reports
type ReportRepository interface {
	// SaveReport saves a grading report
	SaveReport(ctx context.Context, report *domain.GradingReport) error

	// GetReport retrieves a grading report by ID
	GetReport(ctx context.Context, id uuid.UUID) (*domain.GradingReport, error)
}
