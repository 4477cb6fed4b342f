package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/raida-labs/diag-raida-api/internal/dto"
	"github.com/raida-labs/diag-raida-api/pkg/ai"
)

// ErrMissingAnalysis indicates a recommendation request carried neither
// student data nor analysis results.
var ErrMissingAnalysis = errors.New("missing required data (student_data or analysis_results)")

const defaultDifficultyLevel = "medium"

// RecommendationService produces personalized study recommendations, using
// the LLM when available and the rule-based templates otherwise.
type RecommendationService interface {
	Generate(ctx context.Context, request dto.RecommendationRequest) (dto.RecommendationResponse, error)
}

type recommendationService struct {
	recommender     ai.Recommender
	fallbackEnabled bool
	cache           *redis.Client
	cacheTTL        time.Duration
	sanitizer       *bluemonday.Policy
	logger          zerolog.Logger
}

// NewRecommendationService constructs a RecommendationService. The cache
// client is optional; passing nil disables recommendation caching.
func NewRecommendationService(recommender ai.Recommender, fallbackEnabled bool, cache *redis.Client, cacheTTL time.Duration, logger zerolog.Logger) RecommendationService {
	return &recommendationService{
		recommender:     recommender,
		fallbackEnabled: fallbackEnabled,
		cache:           cache,
		cacheTTL:        cacheTTL,
		sanitizer:       bluemonday.StrictPolicy(),
		logger:          logger.With().Str("component", "recommendation_service").Logger(),
	}
}

func (s *recommendationService) Generate(ctx context.Context, request dto.RecommendationRequest) (dto.RecommendationResponse, error) {
	if len(request.StudentData) == 0 && len(request.AnalysisResults) == 0 {
		return dto.RecommendationResponse{}, ErrMissingAnalysis
	}

	// Evaluation results overwrite analysis results key by key.
	merged := make(map[string]interface{}, len(request.AnalysisResults)+len(request.EvaluationResults))
	for key, value := range request.AnalysisResults {
		merged[key] = value
	}
	for key, value := range request.EvaluationResults {
		merged[key] = value
	}

	summary := summarizeAnalysis(merged)
	cacheKey := s.cacheKey(request)

	if cached, ok := s.readCache(ctx, cacheKey); ok {
		return cached, nil
	}

	s.logger.Info().Msg("generating recommendations with llm")
	output := s.recommender.Recommend(ctx, ai.BuildRecommendationPrompt(summary))

	response := s.buildResponse(summary, output)
	if response.Status == "success" {
		s.writeCache(ctx, cacheKey, response)
	}

	return response, nil
}

func (s *recommendationService) buildResponse(summary ai.AnalysisSummary, output ai.Output) dto.RecommendationResponse {
	metadata := &dto.RecommendationMetadata{
		WeakAreas:       summary.WeakAreas,
		Accuracy:        summary.Accuracy,
		DifficultyLevel: summary.DifficultyLevel,
	}

	if output.Success {
		usage := output.Usage
		metadata.TokensUsed = &usage
		return dto.RecommendationResponse{
			Status:          "success",
			Recommendations: s.sanitizer.Sanitize(output.Response),
			Source:          "llm",
			Model:           output.Model,
			Metadata:        metadata,
		}
	}

	if s.fallbackEnabled && output.Fallback {
		s.logger.Info().Str("reason", output.Error).Msg("using fallback recommendations")
		metadata.Resources = resourcesFor(summary.WeakAreas)
		return dto.RecommendationResponse{
			Status:          "success",
			Recommendations: fallbackRecommendations(summary),
			Source:          "fallback",
			Reason:          output.Error,
			Metadata:        metadata,
		}
	}

	return dto.RecommendationResponse{
		Status: "failed",
		Error:  output.Error,
	}
}

// summarizeAnalysis extracts the fields the prompt and fallback tables need
// from the merged free-form payload, applying defaults for anything missing.
func summarizeAnalysis(merged map[string]interface{}) ai.AnalysisSummary {
	summary := ai.AnalysisSummary{
		DifficultyLevel: defaultDifficultyLevel,
		WeakAreas:       []string{},
	}

	if accuracy, ok := toFloat(merged["accuracy"]); ok {
		summary.Accuracy = accuracy
	}

	if level, ok := merged["difficulty_level"].(string); ok && level != "" {
		summary.DifficultyLevel = level
	}

	switch areas := merged["weak_areas"].(type) {
	case []string:
		summary.WeakAreas = areas
	case []interface{}:
		for _, area := range areas {
			if name, ok := area.(string); ok {
				summary.WeakAreas = append(summary.WeakAreas, name)
			}
		}
	}

	return summary
}

func toFloat(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

// cacheKey fingerprints the whole request so distinct sessions never share a
// cached recommendation. Map marshaling is key-sorted, so equal payloads
// produce equal keys.
func (s *recommendationService) cacheKey(request dto.RecommendationRequest) string {
	payload, err := json.Marshal(request)
	if err != nil {
		return ""
	}

	digest := sha256.Sum256(payload)
	return fmt.Sprintf("recommendation:%s", hex.EncodeToString(digest[:]))
}

func (s *recommendationService) readCache(ctx context.Context, key string) (dto.RecommendationResponse, bool) {
	if s.cache == nil || key == "" {
		return dto.RecommendationResponse{}, false
	}

	cached, err := s.cache.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read recommendation cache")
		}
		return dto.RecommendationResponse{}, false
	}

	var response dto.RecommendationResponse
	if err := json.Unmarshal([]byte(cached), &response); err != nil {
		return dto.RecommendationResponse{}, false
	}

	s.logger.Debug().Msg("recommendation cache hit")
	return response, true
}

func (s *recommendationService) writeCache(ctx context.Context, key string, response dto.RecommendationResponse) {
	if s.cache == nil || key == "" {
		return
	}

	payload, err := json.Marshal(response)
	if err != nil {
		return
	}

	if err := s.cache.Set(ctx, key, payload, s.cacheTTL).Err(); err != nil {
		s.logger.Warn().Err(err).Msg("failed to store recommendation cache")
	}
}
