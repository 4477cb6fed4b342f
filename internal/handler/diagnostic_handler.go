package handler

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/raida-labs/diag-raida-api/internal/dto"
	"github.com/raida-labs/diag-raida-api/internal/service"
	"github.com/raida-labs/diag-raida-api/internal/utils"
)

const (
	defaultTestSize = 5
	maxTestSize     = 20
)

// DiagnosticHandler manages the diagnostic test endpoints.
type DiagnosticHandler struct {
	service   service.DiagnosticService
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewDiagnosticHandler builds a diagnostic handler instance.
func NewDiagnosticHandler(service service.DiagnosticService, validator *validator.Validate, logger zerolog.Logger) *DiagnosticHandler {
	return &DiagnosticHandler{
		service:   service,
		validator: validator,
		logger:    logger.With().Str("component", "diagnostic_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *DiagnosticHandler) Register(router fiber.Router) {
	router.Get("/test", h.getTest)
	router.Get("/question/:id", h.getQuestion)
	router.Post("/submit", h.submit)
}

func (h *DiagnosticHandler) getTest(c *fiber.Ctx) error {
	numQuestions := defaultTestSize
	if raw := c.Query("num_questions"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			numQuestions = defaultTestSize
		} else if parsed > maxTestSize {
			numQuestions = maxTestSize
		} else {
			numQuestions = parsed
		}
	}

	questions := h.service.GenerateTest(numQuestions)
	views := dto.NewQuestionViewSlice(questions)

	return c.JSON(dto.TestResponse{
		Status:    "success",
		TestID:    fmt.Sprintf("diag_%d_%s", time.Now().Unix(), uuid.NewString()[:8]),
		Questions: views,
		Count:     len(views),
	})
}

func (h *DiagnosticHandler) getQuestion(c *fiber.Ctx) error {
	id := c.Params("id")
	question, ok := h.service.GetQuestion(id)
	if !ok {
		return utils.SendError(c, fiber.StatusNotFound, "question not found")
	}

	return c.JSON(dto.QuestionResponse{
		Status:   "success",
		Question: dto.NewQuestionView(question),
	})
}

func (h *DiagnosticHandler) submit(c *fiber.Ctx) error {
	var payload dto.SubmitRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.validator.Struct(payload); err != nil {
		return h.handleError(c, err)
	}

	result := h.service.EvaluateResponses(payload.StudentID, payload.Responses)

	return c.JSON(dto.SubmitResponse{
		Status: "success",
		Result: result,
	})
}

func (h *DiagnosticHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, "missing required fields: student_id and responses are required")
	default:
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
