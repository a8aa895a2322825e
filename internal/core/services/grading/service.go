package grading

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"gitlab.com/codeprep-2025.net/internal/core/ports/primary"
	"gitlab.com/codeprep-2025.net/internal/core/ports/secondary"
	"gitlab.com/codeprep-2025.net/internal/domain"
	"gitlab.com/codeprep-2025.net/internal/static/errs"
)

// Option configures one grading call
type Option func(*gradeOptions)

type gradeOptions struct {
	onResult func(index int, result domain.TestCaseResult)
}

// WithProgress registers a callback invoked after each test case completes,
// in input order, for progressive rendering.
func WithProgress(fn func(index int, result domain.TestCaseResult)) Option {
	return func(o *gradeOptions) {
		o.onResult = fn
	}
}

type IGradingService interface {
	// GradeSubmission runs the candidate's code against every test case of a
	// question and returns the aggregate report.
	GradeSubmission(ctx context.Context, questionID int64, code, language string, opts ...Option) (*domain.GradingReport, error)
}

var _ IGradingService = (*Service)(nil)

// Service is the grading orchestrator. It holds no mutable state of its own;
// concurrent calls share only the executor's rate limiter.
type Service struct {
	questions secondary.QuestionRepository
	executor  secondary.CodeExecutor
	reports   secondary.ReportRepository
	logger    primary.Logger
}

// NewService creates a grading service. reports may be nil, in which case
// reports are not persisted.
func NewService(
	questions secondary.QuestionRepository,
	executor secondary.CodeExecutor,
	reports secondary.ReportRepository,
	logger primary.Logger,
) *Service {
	return &Service{
		questions: questions,
		executor:  executor,
		reports:   reports,
		logger:    logger,
	}
}

// GradeSubmission grades one submission. A question that cannot be resolved
// or has no test cases yields a zero-test report, not an error; the judge is
// never called in that case. Infrastructure failures loading the question
// surface as errors.
func (s *Service) GradeSubmission(ctx context.Context, questionID int64, code, language string, opts ...Option) (*domain.GradingReport, error) {
	var options gradeOptions
	for _, opt := range opts {
		opt(&options)
	}

	s.logger.Info("Grading submission", "questionId", questionID, "language", language)

	question, err := s.questions.GetQuestion(ctx, questionID)
	if err != nil {
		if errors.Is(err, errs.QuestionNotFound) {
			return s.emptyReport(questionID, language, fmt.Sprintf("Question %d was not found; nothing to grade.", questionID)), nil
		}
		return nil, fmt.Errorf("%w: %v", errs.FailedToLoadQuestion, err)
	}

	if len(question.TestCases) == 0 {
		return s.emptyReport(questionID, language, fmt.Sprintf("Question %q has no test cases; nothing to grade.", question.Title)), nil
	}

	results, passedCount, totalMs, err := s.runAll(ctx, code, language, question.TestCases, &options)
	if err != nil {
		return nil, err
	}

	total := len(results)
	report := &domain.GradingReport{
		ID:                   uuid.New(),
		QuestionID:           questionID,
		Language:             language,
		Passed:               passedCount == total,
		TotalTestCases:       total,
		PassedTestCases:      passedCount,
		PassRate:             float64(passedCount) / float64(total),
		TotalExecutionTimeMs: totalMs,
		Results:              results,
		Feedback:             feedback(passedCount, total),
		TimeComplexity:       domain.ComplexityUnknown,
		SpaceComplexity:      domain.ComplexityUnknown,
		CreatedAt:            time.Now(),
	}

	s.saveReport(ctx, report)

	s.logger.Info("Grading complete",
		"questionId", questionID,
		"passed", report.PassedTestCases,
		"total", report.TotalTestCases,
		"totalExecutionMs", report.TotalExecutionTimeMs)

	return report, nil
}

// runAll executes every test case sequentially, absorbing per-case execution
// failures into failed results. Results are index-aligned with the input
// test cases. The caller's context is checked between cases only: a
// dispatched judge call always runs to its own timeout.
func (s *Service) runAll(ctx context.Context, code, language string, testCases []domain.TestCase, options *gradeOptions) ([]domain.TestCaseResult, int, int64, error) {
	results := make([]domain.TestCaseResult, 0, len(testCases))
	passedCount := 0
	var totalMs int64

	for i, tc := range testCases {
		if err := ctx.Err(); err != nil {
			return nil, 0, 0, fmt.Errorf("%w: %v", errs.GradingCancelled, err)
		}

		submission := domain.NewSubmission(code, language, tc.Input)
		verdict, err := s.executor.Execute(ctx, submission.Code, submission.Language, submission.Stdin)

		var result domain.TestCaseResult
		if err != nil {
			s.logger.Error("Test case execution failed",
				"submissionId", submission.ID,
				"testCase", i,
				"error", err)
			result = domain.TestCaseResult{
				TestCase:     tc,
				Passed:       false,
				ErrorMessage: err.Error(),
			}
		} else {
			result = classify(tc, verdict)
			if verdict.TimeMs != nil {
				totalMs += *verdict.TimeMs
			}
		}

		if result.Passed {
			passedCount++
		}
		results = append(results, result)

		if options.onResult != nil {
			options.onResult(i, result)
		}
	}

	return results, passedCount, totalMs, nil
}

// classify derives a test-case result from a judge verdict. Only an accepted
// verdict's stdout is compared against the expected output; any other status
// fails with the judge's diagnostics carried in ActualOutput.
func classify(tc domain.TestCase, verdict *domain.ExecutionVerdict) domain.TestCaseResult {
	result := domain.TestCaseResult{TestCase: tc}
	if verdict.TimeMs != nil {
		result.ExecutionTimeMs = *verdict.TimeMs
	}

	if verdict.StatusID.Accepted() {
		result.ActualOutput = deref(verdict.Stdout)
		result.Passed = OutputsMatch(result.ActualOutput, tc.Output)
		return result
	}

	result.ActualOutput = diagnostic(verdict)
	result.ErrorMessage = statusMessage(verdict)
	return result
}

func diagnostic(verdict *domain.ExecutionVerdict) string {
	if s := deref(verdict.Stderr); s != "" {
		return s
	}
	if s := deref(verdict.CompileOutput); s != "" {
		return s
	}
	return deref(verdict.Stdout)
}

func statusMessage(verdict *domain.ExecutionVerdict) string {
	if verdict.StatusDescription != "" {
		return verdict.StatusDescription
	}
	return verdict.StatusID.String()
}

func feedback(passed, total int) string {
	if passed == total {
		return fmt.Sprintf("All %d test cases passed.", total)
	}
	return fmt.Sprintf("Passed %d of %d test cases.", passed, total)
}

func (s *Service) emptyReport(questionID int64, language, feedback string) *domain.GradingReport {
	return &domain.GradingReport{
		ID:              uuid.New(),
		QuestionID:      questionID,
		Language:        language,
		Passed:          false,
		TotalTestCases:  0,
		PassedTestCases: 0,
		PassRate:        0,
		Results:         []domain.TestCaseResult{},
		Feedback:        feedback,
		TimeComplexity:  domain.ComplexityUnknown,
		SpaceComplexity: domain.ComplexityUnknown,
		CreatedAt:       time.Now(),
	}
}

// saveReport persists the report best-effort; a storage failure never fails
// the grading call.
func (s *Service) saveReport(ctx context.Context, report *domain.GradingReport) {
	if s.reports == nil {
		return
	}
	if err := s.reports.SaveReport(ctx, report); err != nil {
		s.logger.Warn("Failed to persist grading report", "reportId", report.ID, "error", err)
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
