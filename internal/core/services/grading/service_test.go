package grading_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/codeprep-2025.net/internal/adapter/inmem"
	"gitlab.com/codeprep-2025.net/internal/core/services/grading"
	"gitlab.com/codeprep-2025.net/internal/domain"
	"gitlab.com/codeprep-2025.net/internal/static/errs"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Warn(string, ...interface{})  {}

// fakeExecutor returns scripted verdicts keyed by stdin, in call order.
type fakeExecutor struct {
	calls    int
	verdicts map[string]*domain.ExecutionVerdict
	failures map[string]error
}

func newFakeExecutor() *fakeExecutor {
	return &fakeExecutor{
		verdicts: make(map[string]*domain.ExecutionVerdict),
		failures: make(map[string]error),
	}
}

func (f *fakeExecutor) Execute(_ context.Context, _ string, _ string, stdin string) (*domain.ExecutionVerdict, error) {
	f.calls++
	if err, ok := f.failures[stdin]; ok {
		return nil, err
	}
	if v, ok := f.verdicts[stdin]; ok {
		return v, nil
	}
	return nil, fmt.Errorf("no scripted verdict for stdin %q", stdin)
}

func (f *fakeExecutor) SupportedLanguages(context.Context) ([]domain.LanguageInfo, error) {
	return nil, nil
}

func (f *fakeExecutor) SubmissionStatus(context.Context, string) (*domain.ExecutionVerdict, error) {
	return nil, nil
}

func accepted(stdout string, timeMs int64) *domain.ExecutionVerdict {
	return &domain.ExecutionVerdict{
		StatusID:          domain.StatusAccepted,
		StatusDescription: "Accepted",
		Stdout:            &stdout,
		TimeMs:            &timeMs,
	}
}

func runtimeError(stderr string) *domain.ExecutionVerdict {
	return &domain.ExecutionVerdict{
		StatusID:          domain.StatusRuntimeError,
		StatusDescription: "Runtime Error",
		Stderr:            &stderr,
	}
}

type capturingReportRepo struct {
	saved   []*domain.GradingReport
	saveErr error
}

func (r *capturingReportRepo) SaveReport(_ context.Context, report *domain.GradingReport) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.saved = append(r.saved, report)
	return nil
}

func (r *capturingReportRepo) GetReport(context.Context, uuid.UUID) (*domain.GradingReport, error) {
	return nil, nil
}

func seedQuestion(t *testing.T, repo *inmem.QuestionRepository, testCases []domain.TestCase) int64 {
	t.Helper()
	q := &domain.Question{
		Title:      "Two Sum",
		Desc:       "Find indices of two numbers that add up to target.",
		Difficulty: "easy",
		TestCases:  testCases,
	}
	require.NoError(t, repo.SaveQuestion(context.Background(), q))
	return q.ID
}

func TestGradeSubmissionAllPass(t *testing.T) {
	repo := inmem.NewQuestionRepository()
	id := seedQuestion(t, repo, []domain.TestCase{
		{Input: "nums=[2,7,11,15], target=9", Output: "[0,1]"},
		{Input: "nums=[3,2,4], target=6", Output: "[1,2]"},
		{Input: "nums=[3,3], target=6", Output: "[0,1]"},
	})

	executor := newFakeExecutor()
	// Spacing differences must not fail the comparison.
	executor.verdicts["nums=[2,7,11,15], target=9"] = accepted("[0, 1]\n", 12)
	executor.verdicts["nums=[3,2,4], target=6"] = accepted("[1,2]", 8)
	executor.verdicts["nums=[3,3], target=6"] = accepted(" [0,1] ", 10)

	svc := grading.NewService(repo, executor, nil, nopLogger{})
	report, err := svc.GradeSubmission(context.Background(), id, "function twoSum() {}", "javascript")
	require.NoError(t, err)

	assert.True(t, report.Passed)
	assert.Equal(t, 3, report.TotalTestCases)
	assert.Equal(t, 3, report.PassedTestCases)
	assert.Equal(t, 1.0, report.PassRate)
	assert.Equal(t, int64(30), report.TotalExecutionTimeMs)
	assert.Equal(t, domain.ComplexityUnknown, report.TimeComplexity)
	assert.Equal(t, domain.ComplexityUnknown, report.SpaceComplexity)
	assert.NotEmpty(t, report.Feedback)
}

func TestGradeSubmissionPartialFailure(t *testing.T) {
	repo := inmem.NewQuestionRepository()
	id := seedQuestion(t, repo, []domain.TestCase{
		{Input: "nums=[2,7,11,15], target=9", Output: "[0,1]"},
		{Input: "nums=[3,3], target=6", Output: "[0,1]"},
	})

	executor := newFakeExecutor()
	executor.verdicts["nums=[2,7,11,15], target=9"] = accepted("[0,1]", 5)
	// A solution that mishandles duplicates returns null on the second case.
	executor.verdicts["nums=[3,3], target=6"] = accepted("null", 4)

	svc := grading.NewService(repo, executor, nil, nopLogger{})
	report, err := svc.GradeSubmission(context.Background(), id, "function twoSum() {}", "javascript")
	require.NoError(t, err)

	assert.False(t, report.Passed)
	assert.Equal(t, 2, report.TotalTestCases)
	assert.Equal(t, 1, report.PassedTestCases)
	assert.Equal(t, 0.5, report.PassRate)

	require.Len(t, report.Results, 2)
	assert.True(t, report.Results[0].Passed)
	assert.False(t, report.Results[1].Passed)
	assert.Equal(t, "null", report.Results[1].ActualOutput)
}

func TestGradeSubmissionResultsAreIndexAligned(t *testing.T) {
	testCases := []domain.TestCase{
		{Input: "a", Output: "1"},
		{Input: "b", Output: "2"},
		{Input: "c", Output: "3"},
		{Input: "d", Output: "4"},
	}
	repo := inmem.NewQuestionRepository()
	id := seedQuestion(t, repo, testCases)

	executor := newFakeExecutor()
	executor.verdicts["a"] = accepted("1", 1)
	executor.verdicts["b"] = accepted("wrong", 1)
	executor.failures["c"] = errors.New("judge unreachable")
	executor.verdicts["d"] = accepted("4", 1)

	svc := grading.NewService(repo, executor, nil, nopLogger{})
	report, err := svc.GradeSubmission(context.Background(), id, "code", "python")
	require.NoError(t, err)

	require.Len(t, report.Results, len(testCases))
	for i, result := range report.Results {
		assert.Equal(t, testCases[i], result.TestCase, "result %d not aligned", i)
	}
	assert.Equal(t, 2, report.PassedTestCases)
}

func TestGradeSubmissionAbsorbsExecutionErrors(t *testing.T) {
	repo := inmem.NewQuestionRepository()
	id := seedQuestion(t, repo, []domain.TestCase{
		{Input: "a", Output: "1"},
		{Input: "b", Output: "2"},
	})

	executor := newFakeExecutor()
	executor.failures["a"] = errors.New("retries exhausted")
	executor.verdicts["b"] = accepted("2", 3)

	svc := grading.NewService(repo, executor, nil, nopLogger{})
	report, err := svc.GradeSubmission(context.Background(), id, "code", "python")
	require.NoError(t, err)

	// A failure on one case must not abort the rest of the run.
	assert.Equal(t, 2, executor.calls)
	require.Len(t, report.Results, 2)
	assert.False(t, report.Results[0].Passed)
	assert.Contains(t, report.Results[0].ErrorMessage, "retries exhausted")
	assert.True(t, report.Results[1].Passed)
}

func TestGradeSubmissionJudgeReportedFailure(t *testing.T) {
	repo := inmem.NewQuestionRepository()
	id := seedQuestion(t, repo, []domain.TestCase{
		{Input: "a", Output: "1"},
	})

	executor := newFakeExecutor()
	executor.verdicts["a"] = runtimeError("TypeError: cannot read property")

	svc := grading.NewService(repo, executor, nil, nopLogger{})
	report, err := svc.GradeSubmission(context.Background(), id, "code", "javascript")
	require.NoError(t, err)

	require.Len(t, report.Results, 1)
	result := report.Results[0]
	assert.False(t, result.Passed)
	// Diagnostics come from stderr, never compared against expected output.
	assert.Equal(t, "TypeError: cannot read property", result.ActualOutput)
	assert.Equal(t, "Runtime Error", result.ErrorMessage)
}

func TestGradeSubmissionZeroTestCases(t *testing.T) {
	repo := inmem.NewQuestionRepository()
	id := seedQuestion(t, repo, nil)

	executor := newFakeExecutor()
	svc := grading.NewService(repo, executor, nil, nopLogger{})

	report, err := svc.GradeSubmission(context.Background(), id, "code", "python")
	require.NoError(t, err)

	assert.Equal(t, 0, executor.calls, "no judge calls expected")
	assert.False(t, report.Passed)
	assert.Equal(t, 0, report.TotalTestCases)
	assert.Equal(t, 0.0, report.PassRate)
	assert.NotEmpty(t, report.Feedback)
}

func TestGradeSubmissionUnknownQuestion(t *testing.T) {
	repo := inmem.NewQuestionRepository()
	executor := newFakeExecutor()
	svc := grading.NewService(repo, executor, nil, nopLogger{})

	report, err := svc.GradeSubmission(context.Background(), 999, "code", "python")
	require.NoError(t, err)

	assert.Equal(t, 0, executor.calls)
	assert.False(t, report.Passed)
	assert.Equal(t, 0, report.TotalTestCases)
	assert.NotEmpty(t, report.Feedback)
}

func TestGradeSubmissionCancellation(t *testing.T) {
	repo := inmem.NewQuestionRepository()
	id := seedQuestion(t, repo, []domain.TestCase{
		{Input: "a", Output: "1"},
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	executor := newFakeExecutor()
	svc := grading.NewService(repo, executor, nil, nopLogger{})

	_, err := svc.GradeSubmission(ctx, id, "code", "python")
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.GradingCancelled)
	assert.Equal(t, 0, executor.calls, "no further judge calls after cancellation")
}

func TestGradeSubmissionProgressCallback(t *testing.T) {
	repo := inmem.NewQuestionRepository()
	id := seedQuestion(t, repo, []domain.TestCase{
		{Input: "a", Output: "1"},
		{Input: "b", Output: "2"},
	})

	executor := newFakeExecutor()
	executor.verdicts["a"] = accepted("1", 1)
	executor.verdicts["b"] = accepted("2", 1)

	svc := grading.NewService(repo, executor, nil, nopLogger{})

	var seen []int
	_, err := svc.GradeSubmission(context.Background(), id, "code", "python",
		grading.WithProgress(func(index int, result domain.TestCaseResult) {
			seen = append(seen, index)
			assert.True(t, result.Passed)
		}))
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, seen)
}

func TestGradeSubmissionPersistsReport(t *testing.T) {
	repo := inmem.NewQuestionRepository()
	id := seedQuestion(t, repo, []domain.TestCase{
		{Input: "a", Output: "1"},
	})

	executor := newFakeExecutor()
	executor.verdicts["a"] = accepted("1", 1)

	reports := &capturingReportRepo{}
	svc := grading.NewService(repo, executor, reports, nopLogger{})

	report, err := svc.GradeSubmission(context.Background(), id, "code", "python")
	require.NoError(t, err)
	require.Len(t, reports.saved, 1)
	assert.Equal(t, report.ID, reports.saved[0].ID)
}

func TestGradeSubmissionReportSaveFailureIsNonFatal(t *testing.T) {
	repo := inmem.NewQuestionRepository()
	id := seedQuestion(t, repo, []domain.TestCase{
		{Input: "a", Output: "1"},
	})

	executor := newFakeExecutor()
	executor.verdicts["a"] = accepted("1", 1)

	reports := &capturingReportRepo{saveErr: errors.New("db down")}
	svc := grading.NewService(repo, executor, reports, nopLogger{})

	report, err := svc.GradeSubmission(context.Background(), id, "code", "python")
	require.NoError(t, err)
	assert.True(t, report.Passed)
}

func TestGradeSubmissionMissingTimesContributeZero(t *testing.T) {
	repo := inmem.NewQuestionRepository()
	id := seedQuestion(t, repo, []domain.TestCase{
		{Input: "a", Output: "1"},
		{Input: "b", Output: "2"},
	})

	noTime := &domain.ExecutionVerdict{
		StatusID:          domain.StatusAccepted,
		StatusDescription: "Accepted",
		Stdout:            strPtr("1"),
	}
	executor := newFakeExecutor()
	executor.verdicts["a"] = noTime
	executor.verdicts["b"] = accepted("2", 7)

	svc := grading.NewService(repo, executor, nil, nopLogger{})
	report, err := svc.GradeSubmission(context.Background(), id, "code", "python")
	require.NoError(t, err)

	assert.Equal(t, int64(7), report.TotalExecutionTimeMs)
	assert.True(t, report.Passed)
}

func strPtr(s string) *string { return &s }
