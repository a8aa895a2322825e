// package reportrepository contains the PostgreSQL implementation of the
// grading-report repository
package reportrepository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"gitlab.com/codeprep-2025.net/internal/core/ports/primary"
	"gitlab.com/codeprep-2025.net/internal/domain"
)

// ReportRepository implements the ReportRepository interface with PostgreSQL
type ReportRepository struct {
	db     *sqlx.DB
	logger primary.Logger
}

// NewReportRepository creates a new PostgreSQL report repository
func NewReportRepository(db *sqlx.DB, logger primary.Logger) *ReportRepository {
	return &ReportRepository{
		db:     db,
		logger: logger,
	}
}

// SaveReport saves a grading report
func (r *ReportRepository) SaveReport(ctx context.Context, report *domain.GradingReport) error {
	resultsJSON, err := json.Marshal(report.Results)
	if err != nil {
		r.logger.Error("Failed to marshal report results", "error", err)
		return fmt.Errorf("failed to marshal report results: %w", err)
	}

	query := `
		INSERT INTO grading_reports (
			id, question_id, language, passed, total_test_cases, passed_test_cases,
			pass_rate, total_execution_time_ms, results, feedback,
			time_complexity, space_complexity, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err = r.db.ExecContext(
		ctx,
		query,
		report.ID,
		report.QuestionID,
		report.Language,
		report.Passed,
		report.TotalTestCases,
		report.PassedTestCases,
		report.PassRate,
		report.TotalExecutionTimeMs,
		resultsJSON,
		report.Feedback,
		report.TimeComplexity,
		report.SpaceComplexity,
		report.CreatedAt,
	)

	if err != nil {
		r.logger.Error("Failed to save grading report", "reportId", report.ID, "error", err)
		return fmt.Errorf("failed to save grading report: %w", err)
	}

	return nil
}

// GetReport retrieves a grading report by ID
func (r *ReportRepository) GetReport(ctx context.Context, id uuid.UUID) (*domain.GradingReport, error) {
	query := `
		SELECT id, question_id, language, passed, total_test_cases, passed_test_cases,
			pass_rate, total_execution_time_ms, results, feedback,
			time_complexity, space_complexity, created_at
		FROM grading_reports
		WHERE id = $1
	`

	var (
		report      domain.GradingReport
		resultsJSON []byte
	)
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&report.ID,
		&report.QuestionID,
		&report.Language,
		&report.Passed,
		&report.TotalTestCases,
		&report.PassedTestCases,
		&report.PassRate,
		&report.TotalExecutionTimeMs,
		&resultsJSON,
		&report.Feedback,
		&report.TimeComplexity,
		&report.SpaceComplexity,
		&report.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not found
		}
		r.logger.Error("Failed to get grading report", "reportId", id, "error", err)
		return nil, fmt.Errorf("failed to get grading report: %w", err)
	}

	if len(resultsJSON) > 0 {
		if err := json.Unmarshal(resultsJSON, &report.Results); err != nil {
			return nil, fmt.Errorf("failed to unmarshal report results: %w", err)
		}
	}

	return &report, nil
}
