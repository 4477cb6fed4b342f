package models

// DifficultyLevel classifies a question and, on results, the next difficulty to serve.
type DifficultyLevel string

const (
	DifficultyEasy   DifficultyLevel = "easy"
	DifficultyMedium DifficultyLevel = "medium"
	DifficultyHard   DifficultyLevel = "hard"
)

// Valid reports whether the level is one of the known tiers.
func (d DifficultyLevel) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// AnswerOption is a single selectable answer with its correction note.
type AnswerOption struct {
	Text        string `json:"text"`
	IsCorrect   bool   `json:"is_correct"`
	Explanation string `json:"explanation"`
}

// Question is a diagnostic question. Questions are loaded once at startup and
// never mutated afterwards, so values can be shared across requests.
type Question struct {
	ID             string          `json:"id"`
	Text           string          `json:"text"`
	Topic          string          `json:"topic"`
	Difficulty     DifficultyLevel `json:"difficulty"`
	Options        []AnswerOption  `json:"options"`
	CorrectAnswer  string          `json:"correct_answer"`
	Explanation    string          `json:"explanation"`
	MathExpression string          `json:"math_expression,omitempty"`
	ImageURL       string          `json:"image_url,omitempty"`
}
