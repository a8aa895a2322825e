// package inmem provides an in-memory question repository used in debug mode
// and in tests.
package inmem

import (
	"context"
	"sync"
	"time"

	"gitlab.com/codeprep-2025.net/internal/domain"
	"gitlab.com/codeprep-2025.net/internal/static/errs"
)

// QuestionRepository is a mutex-guarded in-memory implementation of the
// question repository port.
type QuestionRepository struct {
	mu        sync.RWMutex
	questions map[int64]*domain.Question
	nextID    int64
}

// NewQuestionRepository creates an empty in-memory question repository
func NewQuestionRepository() *QuestionRepository {
	return &QuestionRepository{
		questions: make(map[int64]*domain.Question),
		nextID:    1,
	}
}

// NewSeededQuestionRepository creates a repository pre-populated with sample
// questions.
func NewSeededQuestionRepository() *QuestionRepository {
	repo := NewQuestionRepository()
	for _, q := range sampleQuestions() {
		_ = repo.SaveQuestion(context.Background(), q)
	}
	return repo
}

// GetQuestion retrieves a question by ID
func (r *QuestionRepository) GetQuestion(_ context.Context, id int64) (*domain.Question, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	q, ok := r.questions[id]
	if !ok {
		return nil, errs.QuestionNotFound
	}
	copied := *q
	return &copied, nil
}

// ListQuestions retrieves questions with pagination
func (r *QuestionRepository) ListQuestions(_ context.Context, limit, offset int) ([]*domain.Question, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var questions []*domain.Question
	for id := int64(1); id < r.nextID; id++ {
		if q, ok := r.questions[id]; ok {
			copied := *q
			questions = append(questions, &copied)
		}
	}

	if offset >= len(questions) {
		return nil, nil
	}
	questions = questions[offset:]
	if limit > 0 && limit < len(questions) {
		questions = questions[:limit]
	}
	return questions, nil
}

// SaveQuestion saves a question, assigning an ID on first insert
func (r *QuestionRepository) SaveQuestion(_ context.Context, question *domain.Question) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if question.ID == 0 {
		question.ID = r.nextID
	}
	if question.ID >= r.nextID {
		r.nextID = question.ID + 1
	}
	if question.CreatedAt.IsZero() {
		question.CreatedAt = time.Now()
	}
	copied := *question
	r.questions[question.ID] = &copied
	return nil
}

func sampleQuestions() []*domain.Question {
	return []*domain.Question{
		{
			Title:      "Two Sum",
			Desc:       "Given an array of integers nums and an integer target, return indices of the two numbers in nums such that they add up to target. You may assume that each input would have exactly one solution, and you may not use the same element twice. You can return the answer in any order.",
			Difficulty: "easy",
			Example: domain.Example{
				Input:       "nums = [2,7,11,15], target = 9",
				Output:      "[0,1]",
				Explanation: "Because nums[0] + nums[1] = 2 + 7 = 9, we return [0, 1].",
			},
			Constraints: []string{
				"2 <= nums.length <= 10^4",
				"-10^9 <= nums[i] <= 10^9",
				"-10^9 <= target <= 10^9",
				"Only one valid answer exists",
				"Expected time complexity: O(n)",
				"Expected space complexity: O(n)",
			},
			Topics: []string{"Array", "Hash Table"},
			TestCases: []domain.TestCase{
				{Input: "nums=[2,7,11,15], target=9", Output: "[0,1]"},
				{Input: "nums=[3,2,4], target=6", Output: "[1,2]"},
				{Input: "nums=[3,3], target=6", Output: "[0,1]"},
			},
		},
		{
			Title:      "Valid Parentheses",
			Desc:       "Given a string s containing just the characters '(', ')', '{', '}', '[' and ']', determine if the input string is valid. An input string is valid if open brackets are closed by the same type of brackets and in the correct order.",
			Difficulty: "easy",
			Example: domain.Example{
				Input:       "s = \"()[]{}\"",
				Output:      "true",
				Explanation: "Every opening bracket is closed by the matching type in order.",
			},
			Constraints: []string{
				"1 <= s.length <= 10^4",
				"s consists of parentheses only '()[]{}'",
			},
			Topics: []string{"String", "Stack"},
			TestCases: []domain.TestCase{
				{Input: "s=\"()\"", Output: "true"},
				{Input: "s=\"()[]{}\"", Output: "true"},
				{Input: "s=\"(]\"", Output: "false"},
			},
		},
		{
			Title:      "Reverse Linked List",
			Desc:       "Given the head of a singly linked list, reverse the list and return the reversed list.",
			Difficulty: "easy",
			Example: domain.Example{
				Input:       "head = [1,2,3,4,5]",
				Output:      "[5,4,3,2,1]",
				Explanation: "The list is traversed once, reversing each next pointer.",
			},
			Constraints: []string{
				"The number of nodes in the list is in the range [0, 5000]",
				"-5000 <= Node.val <= 5000",
			},
			Topics: []string{"Linked List", "Recursion"},
			TestCases: []domain.TestCase{
				{Input: "head=[1,2,3,4,5]", Output: "[5,4,3,2,1]"},
				{Input: "head=[1,2]", Output: "[2,1]"},
				{Input: "head=[]", Output: "[]"},
			},
		},
	}
}
