package service

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/raida-labs/diag-raida-api/internal/dto"
	"github.com/raida-labs/diag-raida-api/internal/models"
	"github.com/raida-labs/diag-raida-api/internal/repository"
)

func newDiagnosticService() DiagnosticService {
	return NewDiagnosticService(repository.NewQuestionRepository(nil), zerolog.Nop())
}

func TestEvaluateResponsesPerfectScore(t *testing.T) {
	svc := newDiagnosticService()

	result := svc.EvaluateResponses("student-1", []dto.SubmittedResponse{
		{QuestionID: "q1", Answer: "x = 2"},
	})

	require.Equal(t, "student-1", result.StudentID)
	require.Equal(t, 1, result.TotalQuestions)
	require.Equal(t, 1, result.CorrectAnswers)
	require.InDelta(t, 1.0, result.Score, 1e-9)
	require.Equal(t, models.DifficultyHard, result.DifficultyLevel)
	require.Equal(t, []string{"solving_equations"}, result.Strengths)
	require.Empty(t, result.WeakAreas)
}

func TestEvaluateResponsesAnswerNormalization(t *testing.T) {
	svc := newDiagnosticService()

	cases := []string{"x = 2", "X = 2", "  x = 2  ", "X = 2\t"}
	for _, answer := range cases {
		result := svc.EvaluateResponses("student-1", []dto.SubmittedResponse{
			{QuestionID: "q1", Answer: answer},
		})
		require.Equal(t, 1, result.CorrectAnswers, "answer %q should be accepted", answer)
	}

	// Internal spacing is part of the answer, only edges are trimmed.
	result := svc.EvaluateResponses("student-1", []dto.SubmittedResponse{
		{QuestionID: "q1", Answer: "x=2"},
	})
	require.Equal(t, 0, result.CorrectAnswers)
}

func TestEvaluateResponsesSkipsUnknownQuestions(t *testing.T) {
	svc := newDiagnosticService()

	result := svc.EvaluateResponses("student-1", []dto.SubmittedResponse{
		{QuestionID: "q1", Answer: "x = 2"},
		{QuestionID: "ghost", Answer: "42"},
	})

	require.Equal(t, 1, result.TotalQuestions)
	require.Equal(t, 1, result.CorrectAnswers)
	require.InDelta(t, 1.0, result.Score, 1e-9)
}

func TestEvaluateResponsesEmptySubmission(t *testing.T) {
	svc := newDiagnosticService()

	result := svc.EvaluateResponses("student-1", nil)

	require.Equal(t, 0, result.TotalQuestions)
	require.Equal(t, 0, result.CorrectAnswers)
	require.Zero(t, result.Score)
	require.Equal(t, models.DifficultyEasy, result.DifficultyLevel)
	require.Equal(t, []string{"solving_equations", "fractions"}, result.WeakAreas)
	require.Empty(t, result.Strengths)
}

func TestEvaluateResponsesTopicClassification(t *testing.T) {
	svc := newDiagnosticService()

	// solving_equations answered correctly, fractions answered wrong.
	result := svc.EvaluateResponses("student-1", []dto.SubmittedResponse{
		{QuestionID: "q1", Answer: "x = 2"},
		{QuestionID: "q2", Answer: "1/2"},
	})

	require.Equal(t, 2, result.TotalQuestions)
	require.Equal(t, 1, result.CorrectAnswers)
	require.InDelta(t, 0.5, result.Score, 1e-9)
	require.Equal(t, models.DifficultyMedium, result.DifficultyLevel)
	require.Equal(t, []string{"fractions"}, result.WeakAreas)
	require.Equal(t, []string{"solving_equations"}, result.Strengths)
}

func TestEvaluateResponsesIsDeterministic(t *testing.T) {
	svc := newDiagnosticService()

	responses := []dto.SubmittedResponse{
		{QuestionID: "q1", Answer: "x = 2"},
		{QuestionID: "q2", Answer: "wrong"},
		{QuestionID: "q4", Answer: "50.24 cm²"},
		{QuestionID: "q5", Answer: "10€"},
	}

	first := svc.EvaluateResponses("student-1", responses)
	for i := 0; i < 10; i++ {
		require.Equal(t, first, svc.EvaluateResponses("student-1", responses))
	}
}

func TestEvaluateResponsesInlineRecommendations(t *testing.T) {
	svc := newDiagnosticService()

	result := svc.EvaluateResponses("student-1", []dto.SubmittedResponse{
		{QuestionID: "q1", Answer: "wrong"},
		{QuestionID: "q2", Answer: "2/3"},
	})

	require.Len(t, result.Recommendations, 2)
	require.Equal(t, "focus_areas", result.Recommendations[0].Type)
	require.Equal(t, "high", result.Recommendations[0].Priority)
	require.Contains(t, result.Recommendations[0].Suggestions[0], "solving_equations")
	require.Equal(t, "strengths", result.Recommendations[1].Type)
	require.Contains(t, result.Recommendations[1].Suggestions[0], "fractions")
}

func TestGenerateTestSizes(t *testing.T) {
	svc := newDiagnosticService()

	require.Len(t, svc.GenerateTest(3), 3)
	require.Len(t, svc.GenerateTest(5), 5)
	// Requests beyond the bank size are capped.
	require.Len(t, svc.GenerateTest(50), 5)
	require.Empty(t, svc.GenerateTest(0))
}

func TestGetQuestion(t *testing.T) {
	svc := newDiagnosticService()

	question, ok := svc.GetQuestion("q3")
	require.True(t, ok)
	require.Equal(t, "quadratic_equations", question.Topic)

	_, ok = svc.GetQuestion("nope")
	require.False(t, ok)
}
