package domain

import "time"

// TestCase is one input/expected-output pair owned by a Question. Input and
// Output are opaque strings; the grading pipeline compares them only after
// normalization and never parses their structure.
type TestCase struct {
	Input       string `json:"input"`
	Output      string `json:"output"`
	Explanation string `json:"explanation,omitempty"`
}

// Example is a worked example shown alongside the question statement.
type Example struct {
	Input       string `json:"input"`
	Output      string `json:"output"`
	Explanation string `json:"explanation,omitempty"`
}

// Question is a coding question with its declarative test-case set
type Question struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Desc        string     `json:"desc"`
	Difficulty  string     `json:"difficulty"`
	Example     Example    `json:"example"`
	Constraints []string   `json:"constraints"`
	Topics      []string   `json:"topics"`
	TestCases   []TestCase `json:"test_cases"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}
