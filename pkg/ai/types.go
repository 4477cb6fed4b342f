package ai

import "context"

// AnalysisSummary carries the evaluated-session facts embedded into the
// recommendation prompt.
type AnalysisSummary struct {
	Accuracy        float64
	DifficultyLevel string
	WeakAreas       []string
}

// TokenUsage reports billing metadata from a completed LLM call.
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Output is the outcome of one LLM call. Failures are values rather than
// errors: the caller inspects Success and Fallback to pick the degradation
// path, and nothing here should ever abort a request.
type Output struct {
	Success  bool
	Response string
	Model    string
	Error    string
	Fallback bool
	Usage    TokenUsage
}

// Recommender generates free-text study recommendations from a prompt.
type Recommender interface {
	Recommend(ctx context.Context, prompt string) Output
}
