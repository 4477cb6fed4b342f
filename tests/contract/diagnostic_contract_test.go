package contract_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/stretchr/testify/require"

	"github.com/raida-labs/diag-raida-api/internal/handler"
	"github.com/raida-labs/diag-raida-api/internal/repository"
	"github.com/raida-labs/diag-raida-api/internal/service"
)

func compileSchema(t *testing.T, name string) *jsonschema.Schema {
	t.Helper()

	schemaPath, err := filepath.Abs(filepath.Join("..", "contracts", name))
	require.NoError(t, err)

	compiler := jsonschema.NewCompiler()
	schema, err := compiler.Compile("file://" + schemaPath)
	require.NoError(t, err)
	return schema
}

func newDiagnosticApp(t *testing.T) *fiber.App {
	t.Helper()

	svc := service.NewDiagnosticService(repository.NewQuestionRepository(nil), zerolog.Nop())
	h := handler.NewDiagnosticHandler(svc, validator.New(validator.WithRequiredStructEnabled()), zerolog.Nop())

	app := fiber.New()
	h.Register(app.Group("/api/diagnostic"))
	return app
}

func validateResponse(t *testing.T, schema *jsonschema.Schema, resp *http.Response) {
	t.Helper()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()

	var payload interface{}
	require.NoError(t, json.Unmarshal(body, &payload))
	require.NoError(t, schema.Validate(payload))
}

func TestDiagnosticTestContract(t *testing.T) {
	schema := compileSchema(t, "diagnostic_test.schema.json")
	app := newDiagnosticApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/diagnostic/test?num_questions=4", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	validateResponse(t, schema, resp)
}

func TestDiagnosticSubmitContract(t *testing.T) {
	schema := compileSchema(t, "diagnostic_result.schema.json")
	app := newDiagnosticApp(t)

	payload := `{
		"student_id": "student-42",
		"responses": [
			{"question_id": "q1", "answer": "x = 2", "time_taken": 8.2},
			{"question_id": "q2", "answer": "3/4"},
			{"question_id": "q5", "answer": "12.00€", "confidence": 0.9}
		]
	}`

	req := httptest.NewRequest(http.MethodPost, "/api/diagnostic/submit", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	validateResponse(t, schema, resp)
}
