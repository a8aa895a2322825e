package errs

import "errors"

var (
	QuestionNotFound     = errors.New("question not found")
	InvalidToken         = errors.New("invalid submission token")
	RetriesExhausted     = errors.New("judge retries exhausted")
	JudgeUnavailable     = errors.New("judge service unavailable")
	GradingCancelled     = errors.New("grading cancelled")
	EmptySourceCode      = errors.New("source code is required")
	FailedToSaveReport   = errors.New("failed to save grading report")
	FailedToLoadQuestion = errors.New("failed to load question")
)
