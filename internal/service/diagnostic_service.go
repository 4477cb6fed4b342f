package service

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/raida-labs/diag-raida-api/internal/dto"
	"github.com/raida-labs/diag-raida-api/internal/models"
	"github.com/raida-labs/diag-raida-api/internal/repository"
)

const (
	weakTopicThreshold   = 0.5
	strongTopicThreshold = 0.8
)

// Static defaults used when topic analysis produces no signal at all, so the
// recommendation text downstream is never empty. These topic names may not
// match what the student was actually tested on; that imprecision is accepted
// in exchange for always having something to recommend.
var (
	defaultWeakAreas = []string{"solving_equations", "fractions"}
	defaultStrengths = []string{"basic_arithmetic"}
)

// DiagnosticService generates tests and evaluates submissions.
type DiagnosticService interface {
	GenerateTest(numQuestions int) []models.Question
	GetQuestion(id string) (models.Question, bool)
	EvaluateResponses(studentID string, responses []dto.SubmittedResponse) models.DiagnosticResult
}

type diagnosticService struct {
	questions repository.QuestionRepository
	logger    zerolog.Logger
}

// NewDiagnosticService constructs a DiagnosticService instance.
func NewDiagnosticService(questions repository.QuestionRepository, logger zerolog.Logger) DiagnosticService {
	return &diagnosticService{
		questions: questions,
		logger:    logger.With().Str("component", "diagnostic_service").Logger(),
	}
}

// GenerateTest samples numQuestions distinct questions from the bank.
func (s *diagnosticService) GenerateTest(numQuestions int) []models.Question {
	return s.questions.Sample(numQuestions)
}

// GetQuestion looks up a single question by identifier.
func (s *diagnosticService) GetQuestion(id string) (models.Question, bool) {
	return s.questions.GetByID(id)
}

// EvaluateResponses grades a submission and derives the diagnostic summary.
// Responses referencing unknown question identifiers are skipped; this is
// intentional so a stale client cannot fail a whole submission.
func (s *diagnosticService) EvaluateResponses(studentID string, responses []dto.SubmittedResponse) models.DiagnosticResult {
	graded := make([]models.StudentResponse, 0, len(responses))
	correctByTopic := map[string]int{}
	totalByTopic := map[string]int{}
	correctAnswers := 0

	for _, response := range responses {
		question, ok := s.questions.GetByID(response.QuestionID)
		if !ok {
			s.logger.Debug().Str("question_id", response.QuestionID).Msg("skipping unknown question id")
			continue
		}

		isCorrect := normalizeAnswer(response.Answer) == normalizeAnswer(question.CorrectAnswer)
		if isCorrect {
			correctAnswers++
			correctByTopic[question.Topic]++
		}
		totalByTopic[question.Topic]++

		graded = append(graded, models.StudentResponse{
			QuestionID: response.QuestionID,
			Answer:     response.Answer,
			IsCorrect:  isCorrect,
			TimeTaken:  response.TimeTaken,
			Confidence: response.Confidence,
		})
	}

	totalQuestions := len(graded)
	score := 0.0
	if totalQuestions > 0 {
		score = float64(correctAnswers) / float64(totalQuestions)
	}

	weakAreas, strengths := classifyTopics(correctByTopic, totalByTopic)

	if len(weakAreas) == 0 && len(strengths) == 0 {
		if score < weakTopicThreshold {
			weakAreas = append(weakAreas, defaultWeakAreas...)
		}
		if score >= strongTopicThreshold {
			strengths = append(strengths, defaultStrengths...)
		}
	}

	result := models.DiagnosticResult{
		StudentID:       studentID,
		TotalQuestions:  totalQuestions,
		CorrectAnswers:  correctAnswers,
		Score:           score,
		WeakAreas:       weakAreas,
		Strengths:       strengths,
		DifficultyLevel: nextDifficulty(score),
		Recommendations: buildInlineRecommendations(weakAreas, strengths),
	}

	s.logger.Info().
		Str("student_id", studentID).
		Int("total_questions", totalQuestions).
		Int("correct_answers", correctAnswers).
		Float64("score", score).
		Msg("submission evaluated")

	return result
}

// normalizeAnswer applies the comparison rule: trim whitespace and lowercase.
// No numeric or algebraic equivalence is attempted, so "x=2" and "x = 2.0"
// remain different answers.
func normalizeAnswer(answer string) string {
	return strings.ToLower(strings.TrimSpace(answer))
}

// classifyTopics buckets answered topics by per-topic accuracy. Topics scoring
// in [0.5, 0.8) land in neither bucket. Iteration is over sorted topic names
// so repeated evaluations of the same submission yield identical results.
func classifyTopics(correctByTopic, totalByTopic map[string]int) (weakAreas, strengths []string) {
	weakAreas = []string{}
	strengths = []string{}

	topics := make([]string, 0, len(totalByTopic))
	for topic := range totalByTopic {
		topics = append(topics, topic)
	}
	sort.Strings(topics)

	for _, topic := range topics {
		topicScore := float64(correctByTopic[topic]) / float64(totalByTopic[topic])
		switch {
		case topicScore < weakTopicThreshold:
			weakAreas = append(weakAreas, topic)
		case topicScore >= strongTopicThreshold:
			strengths = append(strengths, topic)
		}
	}

	return weakAreas, strengths
}

// nextDifficulty maps the overall score to the difficulty tier to serve next.
// Higher scorers get harder material; the tier is not a weakness indicator.
func nextDifficulty(score float64) models.DifficultyLevel {
	switch {
	case score >= strongTopicThreshold:
		return models.DifficultyHard
	case score >= weakTopicThreshold:
		return models.DifficultyMedium
	default:
		return models.DifficultyEasy
	}
}

func buildInlineRecommendations(weakAreas, strengths []string) []models.Recommendation {
	recommendations := []models.Recommendation{}

	if len(weakAreas) > 0 {
		recommendations = append(recommendations, models.Recommendation{
			Type:     "focus_areas",
			Priority: "high",
			Suggestions: []string{
				fmt.Sprintf("Pratiquez davantage les exercices sur: %s", strings.Join(weakAreas, ", ")),
				"Utilisez des exercices progressifs pour renforcer ces compétences",
			},
		})
	}

	if len(strengths) > 0 {
		recommendations = append(recommendations, models.Recommendation{
			Type:     "strengths",
			Priority: "info",
			Suggestions: []string{
				fmt.Sprintf("Points forts identifiés: %s", strings.Join(strengths, ", ")),
				"Utilisez ces compétences pour renforcer les domaines plus faibles",
			},
		})
	}

	return recommendations
}
