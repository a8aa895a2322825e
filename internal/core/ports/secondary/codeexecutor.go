package secondary

import (
	"context"

	"gitlab.com/codeprep-2025.net/internal/domain"
)

type CodeExecutor interface {
	// Execute runs one source/language/stdin triple on the remote judge and
	// returns its raw verdict. Implementations own retry and rate limiting.
	Execute(ctx context.Context, code string, language string, stdin string) (*domain.ExecutionVerdict, error)

	// SupportedLanguages lists the judge's supported language descriptors.
	SupportedLanguages(ctx context.Context) ([]domain.LanguageInfo, error)

	// SubmissionStatus polls the verdict of an asynchronous submission token.
	SubmissionStatus(ctx context.Context, token string) (*domain.ExecutionVerdict, error)
}
