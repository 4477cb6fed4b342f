package models

// StudentResponse is a single graded answer. It is built during evaluation and
// never persisted.
type StudentResponse struct {
	QuestionID string   `json:"question_id"`
	Answer     string   `json:"answer"`
	IsCorrect  bool     `json:"is_correct"`
	TimeTaken  float64  `json:"time_taken"`
	Confidence *float64 `json:"confidence,omitempty"`
}

// Recommendation is one inline recommendation entry attached to a result.
type Recommendation struct {
	Type        string   `json:"type"`
	Priority    string   `json:"priority"`
	Suggestions []string `json:"suggestions"`
}

// DiagnosticResult summarizes one evaluation pass.
//
// DifficultyLevel here is the difficulty to serve next, derived from the
// current score: high scorers are routed to harder material. It does not
// describe the difficulty the student struggled with.
type DiagnosticResult struct {
	StudentID       string           `json:"student_id"`
	TotalQuestions  int              `json:"total_questions"`
	CorrectAnswers  int              `json:"correct_answers"`
	Score           float64          `json:"score"`
	WeakAreas       []string         `json:"weak_areas"`
	Strengths       []string         `json:"strengths"`
	DifficultyLevel DifficultyLevel  `json:"difficulty_level"`
	Recommendations []Recommendation `json:"recommendations"`
}
