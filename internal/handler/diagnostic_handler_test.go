package handler

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/raida-labs/diag-raida-api/internal/dto"
	"github.com/raida-labs/diag-raida-api/internal/repository"
	"github.com/raida-labs/diag-raida-api/internal/service"
	"github.com/raida-labs/diag-raida-api/internal/utils"
)

func newDiagnosticApp(t *testing.T) *fiber.App {
	t.Helper()

	svc := service.NewDiagnosticService(repository.NewQuestionRepository(nil), zerolog.Nop())
	h := NewDiagnosticHandler(svc, validator.New(validator.WithRequiredStructEnabled()), zerolog.Nop())

	app := fiber.New()
	h.Register(app.Group("/api/diagnostic"))
	return app
}

func TestGetTestDefaultsToFiveQuestions(t *testing.T) {
	app := newDiagnosticApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/diagnostic/test", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body dto.TestResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, "success", body.Status)
	require.Len(t, body.Questions, 5)
	require.Equal(t, 5, body.Count)
	require.True(t, strings.HasPrefix(body.TestID, "diag_"))
}

func TestGetTestHonorsRequestedSize(t *testing.T) {
	app := newDiagnosticApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/diagnostic/test?num_questions=3", nil))
	require.NoError(t, err)

	var body dto.TestResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Questions, 3)
}

func TestGetTestClampsOversizedRequests(t *testing.T) {
	app := newDiagnosticApp(t)

	// Oversized requests are clamped to the maximum, then capped at bank size.
	resp, err := app.Test(httptest.NewRequest("GET", "/api/diagnostic/test?num_questions=100", nil))
	require.NoError(t, err)

	var body dto.TestResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Questions, 5)
}

func TestGetTestIgnoresInvalidSize(t *testing.T) {
	app := newDiagnosticApp(t)

	for _, query := range []string{"num_questions=abc", "num_questions=-3", "num_questions=0"} {
		resp, err := app.Test(httptest.NewRequest("GET", "/api/diagnostic/test?"+query, nil))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		var body dto.TestResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		require.Len(t, body.Questions, 5, "query %q", query)
	}
}

func TestGetTestRedactsAnswers(t *testing.T) {
	app := newDiagnosticApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/diagnostic/test", nil))
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NotContains(t, string(raw), "correct_answer")
	require.NotContains(t, string(raw), "is_correct")
}

func TestGetQuestionByID(t *testing.T) {
	app := newDiagnosticApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/diagnostic/question/q2", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body dto.QuestionResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, "q2", body.Question.ID)
	require.Equal(t, "fractions", body.Question.Topic)
}

func TestGetQuestionNotFound(t *testing.T) {
	app := newDiagnosticApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/diagnostic/question/missing", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	var body utils.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, "question not found", body.Error)
}

func TestSubmitEvaluatesResponses(t *testing.T) {
	app := newDiagnosticApp(t)

	payload := `{
		"student_id": "student-1",
		"responses": [
			{"question_id": "q1", "answer": "x = 2", "time_taken": 12.5},
			{"question_id": "q2", "answer": "3/4"}
		]
	}`

	req := httptest.NewRequest("POST", "/api/diagnostic/submit", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body dto.SubmitResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, "success", body.Status)
	require.Equal(t, "student-1", body.Result.StudentID)
	require.Equal(t, 2, body.Result.TotalQuestions)
	require.Equal(t, 1, body.Result.CorrectAnswers)
}

func TestSubmitRejectsMissingFields(t *testing.T) {
	app := newDiagnosticApp(t)

	cases := []string{
		`{}`,
		`{"student_id": "student-1"}`,
		`{"student_id": "student-1", "responses": []}`,
		`{"responses": [{"question_id": "q1", "answer": "x = 2"}]}`,
	}

	for _, payload := range cases {
		req := httptest.NewRequest("POST", "/api/diagnostic/submit", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusBadRequest, resp.StatusCode, "payload %s", payload)

		var body utils.ErrorResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		require.NotEmpty(t, body.Error)
	}
}

func TestSubmitRejectsMalformedJSON(t *testing.T) {
	app := newDiagnosticApp(t)

	req := httptest.NewRequest("POST", "/api/diagnostic/submit", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
