package domain

import (
	"time"

	"github.com/google/uuid"
)

// ComplexityUnknown is the sentinel carried by the complexity fields when no
// independent analysis is available. Never a guessed value.
const ComplexityUnknown = "unknown"

// TestCaseResult is the outcome of running the candidate's code against a
// single test case.
type TestCaseResult struct {
	TestCase        TestCase `json:"test_case"`
	Passed          bool     `json:"passed"`
	ActualOutput    string   `json:"actual_output"`
	ErrorMessage    string   `json:"error_message,omitempty"`
	ExecutionTimeMs int64    `json:"execution_time"`
}

// GradingReport is the terminal artifact of one grading run: the per-case
// results plus aggregate metrics. Immutable once returned to the caller.
type GradingReport struct {
	ID                   uuid.UUID        `json:"id"`
	QuestionID           int64            `json:"question_id"`
	Language             string           `json:"language"`
	Passed               bool             `json:"passed"`
	TotalTestCases       int              `json:"total_test_cases"`
	PassedTestCases      int              `json:"passed_test_cases"`
	PassRate             float64          `json:"pass_rate"`
	TotalExecutionTimeMs int64            `json:"total_execution_time"`
	Results              []TestCaseResult `json:"results"`
	Feedback             string           `json:"feedback"`
	TimeComplexity       string           `json:"time_complexity,omitempty"`
	SpaceComplexity      string           `json:"space_complexity,omitempty"`
	CreatedAt            time.Time        `json:"created_at"`
}
