// package questionrepository contains the PostgreSQL implementation of the
// question repository
package questionrepository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"gitlab.com/codeprep-2025.net/internal/core/ports/primary"
	"gitlab.com/codeprep-2025.net/internal/domain"
	"gitlab.com/codeprep-2025.net/internal/static/errs"
)

// QuestionRepository implements the QuestionRepository interface with PostgreSQL
type QuestionRepository struct {
	db     *sqlx.DB
	logger primary.Logger
}

// NewQuestionRepository creates a new PostgreSQL question repository
func NewQuestionRepository(db *sqlx.DB, logger primary.Logger) *QuestionRepository {
	return &QuestionRepository{
		db:     db,
		logger: logger,
	}
}

// GetQuestion retrieves a question by ID
func (r *QuestionRepository) GetQuestion(ctx context.Context, id int64) (*domain.Question, error) {
	query := `
		SELECT id, title, description, difficulty, example, constraints, topics, test_cases, created_at, updated_at
		FROM questions
		WHERE id = $1
	`

	var (
		q               domain.Question
		exampleJSON     []byte
		constraintsJSON []byte
		topicsJSON      []byte
		testCasesJSON   []byte
	)
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&q.ID,
		&q.Title,
		&q.Desc,
		&q.Difficulty,
		&exampleJSON,
		&constraintsJSON,
		&topicsJSON,
		&testCasesJSON,
		&q.CreatedAt,
		&q.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.QuestionNotFound
		}
		r.logger.Error("Failed to get question", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get question: %w", err)
	}

	if err := scanQuestionJSON(&q, exampleJSON, constraintsJSON, topicsJSON, testCasesJSON); err != nil {
		return nil, err
	}

	return &q, nil
}

// ListQuestions retrieves questions with pagination
func (r *QuestionRepository) ListQuestions(ctx context.Context, limit, offset int) ([]*domain.Question, error) {
	query := `
		SELECT id, title, description, difficulty, example, constraints, topics, test_cases, created_at, updated_at
		FROM questions
		ORDER BY id
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		r.logger.Error("Failed to list questions", "error", err)
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	defer rows.Close()

	var questions []*domain.Question
	for rows.Next() {
		var (
			q               domain.Question
			exampleJSON     []byte
			constraintsJSON []byte
			topicsJSON      []byte
			testCasesJSON   []byte
		)
		if err := rows.Scan(
			&q.ID,
			&q.Title,
			&q.Desc,
			&q.Difficulty,
			&exampleJSON,
			&constraintsJSON,
			&topicsJSON,
			&testCasesJSON,
			&q.CreatedAt,
			&q.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan question row: %w", err)
		}
		if err := scanQuestionJSON(&q, exampleJSON, constraintsJSON, topicsJSON, testCasesJSON); err != nil {
			return nil, err
		}
		questions = append(questions, &q)
	}

	return questions, rows.Err()
}

// SaveQuestion saves a question, assigning an ID on first insert
func (r *QuestionRepository) SaveQuestion(ctx context.Context, question *domain.Question) error {
	exampleJSON, err := json.Marshal(question.Example)
	if err != nil {
		return fmt.Errorf("failed to marshal example: %w", err)
	}
	constraintsJSON, err := json.Marshal(question.Constraints)
	if err != nil {
		return fmt.Errorf("failed to marshal constraints: %w", err)
	}
	topicsJSON, err := json.Marshal(question.Topics)
	if err != nil {
		return fmt.Errorf("failed to marshal topics: %w", err)
	}
	testCasesJSON, err := json.Marshal(question.TestCases)
	if err != nil {
		return fmt.Errorf("failed to marshal test cases: %w", err)
	}

	if question.CreatedAt.IsZero() {
		question.CreatedAt = time.Now()
	}

	if question.ID == 0 {
		query := `
			INSERT INTO questions (title, description, difficulty, example, constraints, topics, test_cases, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id
		`
		err = r.db.QueryRowContext(
			ctx,
			query,
			question.Title,
			question.Desc,
			question.Difficulty,
			exampleJSON,
			constraintsJSON,
			topicsJSON,
			testCasesJSON,
			question.CreatedAt,
		).Scan(&question.ID)
	} else {
		query := `
			INSERT INTO questions (id, title, description, difficulty, example, constraints, topics, test_cases, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
			ON CONFLICT (id) DO UPDATE SET
				title = EXCLUDED.title,
				description = EXCLUDED.description,
				difficulty = EXCLUDED.difficulty,
				example = EXCLUDED.example,
				constraints = EXCLUDED.constraints,
				topics = EXCLUDED.topics,
				test_cases = EXCLUDED.test_cases,
				updated_at = NOW()
		`
		_, err = r.db.ExecContext(
			ctx,
			query,
			question.ID,
			question.Title,
			question.Desc,
			question.Difficulty,
			exampleJSON,
			constraintsJSON,
			topicsJSON,
			testCasesJSON,
			question.CreatedAt,
		)
	}

	if err != nil {
		r.logger.Error("Failed to save question", "error", err)
		return fmt.Errorf("failed to save question: %w", err)
	}

	return nil
}

func scanQuestionJSON(q *domain.Question, exampleJSON, constraintsJSON, topicsJSON, testCasesJSON []byte) error {
	if len(exampleJSON) > 0 {
		if err := json.Unmarshal(exampleJSON, &q.Example); err != nil {
			return fmt.Errorf("failed to unmarshal example: %w", err)
		}
	}
	if len(constraintsJSON) > 0 {
		if err := json.Unmarshal(constraintsJSON, &q.Constraints); err != nil {
			return fmt.Errorf("failed to unmarshal constraints: %w", err)
		}
	}
	if len(topicsJSON) > 0 {
		if err := json.Unmarshal(topicsJSON, &q.Topics); err != nil {
			return fmt.Errorf("failed to unmarshal topics: %w", err)
		}
	}
	if len(testCasesJSON) > 0 {
		if err := json.Unmarshal(testCasesJSON, &q.TestCases); err != nil {
			return fmt.Errorf("failed to unmarshal test cases: %w", err)
		}
	}
	return nil
}
