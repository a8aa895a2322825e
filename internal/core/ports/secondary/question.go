package secondary

import (
	"context"

	"gitlab.com/codeprep-2025.net/internal/domain"
)

type QuestionRepository interface {
	// GetQuestion retrieves a question by ID
	GetQuestion(ctx context.Context, id int64) (*domain.Question, error)

	// ListQuestions retrieves questions with pagination
	ListQuestions(ctx context.Context, limit, offset int) ([]*domain.Question, error)

	// SaveQuestion saves a question
	SaveQuestion(ctx context.Context, question *domain.Question) error
}
