package dto

import "github.com/raida-labs/diag-raida-api/internal/models"

// SubmittedResponse is one answer in a diagnostic submission.
type SubmittedResponse struct {
	QuestionID string   `json:"question_id" validate:"required"`
	Answer     string   `json:"answer"`
	TimeTaken  float64  `json:"time_taken" validate:"omitempty,gte=0"`
	Confidence *float64 `json:"confidence" validate:"omitempty,gte=0,lte=1"`
}

// SubmitRequest is the body of a diagnostic submission.
type SubmitRequest struct {
	StudentID string              `json:"student_id" validate:"required"`
	Responses []SubmittedResponse `json:"responses" validate:"required,min=1,dive"`
}

// SubmitResponse wraps the evaluation result.
type SubmitResponse struct {
	Status string                  `json:"status"`
	Result models.DiagnosticResult `json:"result"`
}

// QuestionOptionView is an answer option with the correctness flag stripped.
type QuestionOptionView struct {
	Text        string `json:"text"`
	Explanation string `json:"explanation"`
}

// QuestionView is a question as exposed to test takers: the correct answer
// and per-option correctness flags are redacted.
type QuestionView struct {
	ID             string                 `json:"id"`
	Text           string                 `json:"text"`
	Topic          string                 `json:"topic"`
	Difficulty     models.DifficultyLevel `json:"difficulty"`
	Options        []QuestionOptionView   `json:"options"`
	MathExpression string                 `json:"math_expression,omitempty"`
	ImageURL       string                 `json:"image_url,omitempty"`
}

// TestResponse is the payload returned when generating a diagnostic test.
type TestResponse struct {
	Status    string         `json:"status"`
	TestID    string         `json:"test_id"`
	Questions []QuestionView `json:"questions"`
	Count     int            `json:"count"`
}

// QuestionResponse wraps a single redacted question.
type QuestionResponse struct {
	Status   string       `json:"status"`
	Question QuestionView `json:"question"`
}

// NewQuestionView redacts a question for client consumption.
func NewQuestionView(question models.Question) QuestionView {
	options := make([]QuestionOptionView, 0, len(question.Options))
	for _, option := range question.Options {
		options = append(options, QuestionOptionView{
			Text:        option.Text,
			Explanation: option.Explanation,
		})
	}

	return QuestionView{
		ID:             question.ID,
		Text:           question.Text,
		Topic:          question.Topic,
		Difficulty:     question.Difficulty,
		Options:        options,
		MathExpression: question.MathExpression,
		ImageURL:       question.ImageURL,
	}
}

// NewQuestionViewSlice redacts a list of questions.
func NewQuestionViewSlice(questions []models.Question) []QuestionView {
	views := make([]QuestionView, 0, len(questions))
	for _, question := range questions {
		views = append(views, NewQuestionView(question))
	}

	return views
}
