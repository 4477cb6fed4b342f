package service

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/raida-labs/diag-raida-api/internal/dto"
	"github.com/raida-labs/diag-raida-api/pkg/ai"
)

type stubRecommender struct {
	output ai.Output
	calls  int
	prompt string
}

func (s *stubRecommender) Recommend(_ context.Context, prompt string) ai.Output {
	s.calls++
	s.prompt = prompt
	return s.output
}

func TestGenerateRejectsEmptyRequest(t *testing.T) {
	svc := NewRecommendationService(&stubRecommender{}, true, nil, time.Minute, zerolog.Nop())

	_, err := svc.Generate(context.Background(), dto.RecommendationRequest{})
	require.ErrorIs(t, err, ErrMissingAnalysis)
}

func TestGenerateLLMSuccess(t *testing.T) {
	stub := &stubRecommender{output: ai.Output{
		Success:  true,
		Response: "Travaille <script>alert(1)</script>les fractions",
		Model:    "meta-llama/llama-3.3-70b-instruct:free",
		Usage:    ai.TokenUsage{PromptTokens: 120, CompletionTokens: 80, TotalTokens: 200},
	}}
	svc := NewRecommendationService(stub, true, nil, time.Minute, zerolog.Nop())

	response, err := svc.Generate(context.Background(), dto.RecommendationRequest{
		AnalysisResults: map[string]interface{}{
			"accuracy":         0.75,
			"difficulty_level": "medium",
			"weak_areas":       []string{"fractions"},
		},
	})
	require.NoError(t, err)

	require.Equal(t, "success", response.Status)
	require.Equal(t, "llm", response.Source)
	require.Equal(t, "meta-llama/llama-3.3-70b-instruct:free", response.Model)
	require.NotContains(t, response.Recommendations, "<script>")
	require.Contains(t, response.Recommendations, "les fractions")
	require.NotNil(t, response.Metadata)
	require.Equal(t, 200, response.Metadata.TokensUsed.TotalTokens)
	require.InDelta(t, 0.75, response.Metadata.Accuracy, 1e-9)

	// The prompt carries the extracted analysis facts.
	require.Contains(t, stub.prompt, "75.0%")
	require.Contains(t, stub.prompt, "fractions")
}

func TestGenerateFallbackWhenLLMUnavailable(t *testing.T) {
	stub := &stubRecommender{output: ai.Output{
		Success:  false,
		Error:    "LLM API key not configured",
		Fallback: true,
	}}
	svc := NewRecommendationService(stub, true, nil, time.Minute, zerolog.Nop())

	response, err := svc.Generate(context.Background(), dto.RecommendationRequest{
		AnalysisResults: map[string]interface{}{
			"accuracy":   0.9,
			"weak_areas": []string{"algebra"},
		},
	})
	require.NoError(t, err)

	require.Equal(t, "success", response.Status)
	require.Equal(t, "fallback", response.Source)
	require.Equal(t, "LLM API key not configured", response.Reason)
	require.Contains(t, response.Recommendations, "🎉 Excellent travail")
	require.Contains(t, response.Recommendations, "📚 Domaines à travailler:")
	require.Contains(t, response.Recommendations, "algebra")
	require.NotNil(t, response.Metadata)
	require.Contains(t, response.Metadata.Resources, "algebra")
}

func TestGenerateFailsWhenFallbackDisabled(t *testing.T) {
	stub := &stubRecommender{output: ai.Output{
		Success:  false,
		Error:    "Request timeout",
		Fallback: true,
	}}
	svc := NewRecommendationService(stub, false, nil, time.Minute, zerolog.Nop())

	response, err := svc.Generate(context.Background(), dto.RecommendationRequest{
		AnalysisResults: map[string]interface{}{"accuracy": 0.5},
	})
	require.NoError(t, err)

	require.Equal(t, "failed", response.Status)
	require.Equal(t, "Request timeout", response.Error)
	require.Empty(t, response.Recommendations)
}

func TestGenerateMergesEvaluationOverAnalysis(t *testing.T) {
	stub := &stubRecommender{output: ai.Output{
		Success:  false,
		Error:    "LLM API key not configured",
		Fallback: true,
	}}
	svc := NewRecommendationService(stub, true, nil, time.Minute, zerolog.Nop())

	response, err := svc.Generate(context.Background(), dto.RecommendationRequest{
		AnalysisResults: map[string]interface{}{
			"accuracy":         0.9,
			"difficulty_level": "hard",
		},
		EvaluationResults: map[string]interface{}{
			"accuracy": 0.3,
		},
	})
	require.NoError(t, err)

	// Evaluation results win, so the low-accuracy encouragement is served.
	require.Contains(t, response.Recommendations, "🌟 Ne te décourage pas")
	require.InDelta(t, 0.3, response.Metadata.Accuracy, 1e-9)
	require.Equal(t, "hard", response.Metadata.DifficultyLevel)
}

func TestGenerateDefaultsDifficultyLevel(t *testing.T) {
	stub := &stubRecommender{output: ai.Output{Success: true, Response: "ok", Model: "m"}}
	svc := NewRecommendationService(stub, true, nil, time.Minute, zerolog.Nop())

	response, err := svc.Generate(context.Background(), dto.RecommendationRequest{
		AnalysisResults: map[string]interface{}{"accuracy": 0.5},
	})
	require.NoError(t, err)
	require.Equal(t, "medium", response.Metadata.DifficultyLevel)
}

func TestGenerateCachesSuccessfulResponses(t *testing.T) {
	mini, err := miniredis.Run()
	require.NoError(t, err)
	defer mini.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: mini.Addr()})

	stub := &stubRecommender{output: ai.Output{Success: true, Response: "révise les fractions", Model: "m"}}
	svc := NewRecommendationService(stub, true, redisClient, time.Minute, zerolog.Nop())

	request := dto.RecommendationRequest{
		AnalysisResults: map[string]interface{}{"accuracy": 0.6},
	}

	ctx := context.Background()
	first, err := svc.Generate(ctx, request)
	require.NoError(t, err)
	require.Equal(t, 1, stub.calls)

	second, err := svc.Generate(ctx, request)
	require.NoError(t, err)
	require.Equal(t, 1, stub.calls, "second call must be served from cache")
	require.Equal(t, first, second)

	// A different payload misses the cache.
	_, err = svc.Generate(ctx, dto.RecommendationRequest{
		AnalysisResults: map[string]interface{}{"accuracy": 0.2},
	})
	require.NoError(t, err)
	require.Equal(t, 2, stub.calls)
}

func TestGenerateDoesNotCacheFailures(t *testing.T) {
	mini, err := miniredis.Run()
	require.NoError(t, err)
	defer mini.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: mini.Addr()})

	stub := &stubRecommender{output: ai.Output{Success: false, Error: "API returned status 500", Fallback: true}}
	svc := NewRecommendationService(stub, false, redisClient, time.Minute, zerolog.Nop())

	request := dto.RecommendationRequest{
		AnalysisResults: map[string]interface{}{"accuracy": 0.6},
	}

	ctx := context.Background()
	_, err = svc.Generate(ctx, request)
	require.NoError(t, err)
	_, err = svc.Generate(ctx, request)
	require.NoError(t, err)
	require.Equal(t, 2, stub.calls)
}
