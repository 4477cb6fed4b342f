package repository

import (
	"math/rand"

	"github.com/raida-labs/diag-raida-api/internal/models"
)

// QuestionRepository holds the question bank in memory. The bank is fixed at
// construction time and never mutated, so all methods are safe for concurrent
// use.
type QuestionRepository interface {
	Sample(n int) []models.Question
	GetByID(id string) (models.Question, bool)
	All() []models.Question
}

type questionRepository struct {
	questions []models.Question
	byID      map[string]models.Question
}

// NewQuestionRepository builds a read-only repository over the given bank.
// Passing nil loads the built-in sample bank.
func NewQuestionRepository(questions []models.Question) QuestionRepository {
	if questions == nil {
		questions = SampleQuestions()
	}

	byID := make(map[string]models.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}

	return &questionRepository{
		questions: questions,
		byID:      byID,
	}
}

// Sample returns n distinct questions drawn uniformly at random. When n
// exceeds the bank size the whole bank is returned (shuffled).
func (r *questionRepository) Sample(n int) []models.Question {
	if n > len(r.questions) {
		n = len(r.questions)
	}
	if n <= 0 {
		return []models.Question{}
	}

	sample := make([]models.Question, 0, n)
	for _, idx := range rand.Perm(len(r.questions))[:n] {
		sample = append(sample, r.questions[idx])
	}

	return sample
}

// GetByID looks up a question by identifier.
func (r *questionRepository) GetByID(id string) (models.Question, bool) {
	question, ok := r.byID[id]
	return question, ok
}

// All returns the full question bank.
func (r *questionRepository) All() []models.Question {
	out := make([]models.Question, len(r.questions))
	copy(out, r.questions)
	return out
}
