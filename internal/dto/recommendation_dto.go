package dto

import "github.com/raida-labs/diag-raida-api/pkg/ai"

// RecommendationRequest carries the raw session payloads used to build a
// personalized recommendation. The three maps are deliberately free-form:
// callers merge outputs of different analysis stages, and later stages
// overwrite earlier ones key by key.
type RecommendationRequest struct {
	StudentData       map[string]interface{} `json:"student_data"`
	AnalysisResults   map[string]interface{} `json:"analysis_results"`
	EvaluationResults map[string]interface{} `json:"evaluation_results"`
}

// RecommendationMetadata echoes the inputs that shaped the recommendation.
type RecommendationMetadata struct {
	TokensUsed      *ai.TokenUsage      `json:"tokens_used,omitempty"`
	WeakAreas       []string            `json:"weak_areas"`
	Accuracy        float64             `json:"accuracy"`
	DifficultyLevel string              `json:"difficulty_level"`
	Resources       map[string][]string `json:"resources,omitempty"`
}

// RecommendationResponse is the merged LLM-or-fallback payload.
type RecommendationResponse struct {
	Status          string                  `json:"status"`
	Recommendations string                  `json:"recommendations,omitempty"`
	Source          string                  `json:"source,omitempty"`
	Model           string                  `json:"model,omitempty"`
	Reason          string                  `json:"reason,omitempty"`
	Error           string                  `json:"error,omitempty"`
	Metadata        *RecommendationMetadata `json:"metadata,omitempty"`
}
