package domain

import (
	"time"

	"github.com/google/uuid"
)

// Submission is one source/language/stdin triple sent to the judge. It is
// built per test case from the candidate's code plus that case's input and
// discarded once a verdict is produced.
type Submission struct {
	ID          uuid.UUID
	Code        string
	Language    string
	Stdin       string
	SubmittedAt time.Time
}

// NewSubmission creates a new submission
func NewSubmission(code, language, stdin string) *Submission {
	return &Submission{
		ID:          uuid.New(),
		Code:        code,
		Language:    language,
		Stdin:       stdin,
		SubmittedAt: time.Now(),
	}
}
