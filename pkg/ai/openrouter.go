package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

var (
	llmDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "raida",
		Subsystem: "llm",
		Name:      "request_duration_seconds",
		Help:      "Duration of LLM recommendation requests",
	}, []string{"model"})

	llmFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "raida",
		Subsystem: "llm",
		Name:      "request_failures_total",
		Help:      "Number of failed LLM recommendation requests",
	}, []string{"model"})
)

// OpenRouterConfig defines configuration options for the OpenRouter client.
// SiteURL and AppName feed the attribution headers OpenRouter uses for model
// ranking; both are optional.
type OpenRouterConfig struct {
	APIKey      string
	BaseURL     string
	SiteURL     string
	AppName     string
	Model       string
	MaxTokens   int
	Temperature float32
	Timeout     time.Duration
	Logger      zerolog.Logger
}

// OpenRouterClient implements Recommender against the OpenRouter chat
// completion API. OpenRouter is OpenAI-compatible, so the OpenAI SDK is
// reused with an overridden base URL.
//
// A missing API key is not a construction error: it surfaces as a structured
// failure on the first call so the caller can route to the fallback path.
type OpenRouterClient struct {
	client *openai.Client
	cfg    OpenRouterConfig
	tracer trace.Tracer
	logger zerolog.Logger
}

// NewOpenRouterClient builds a client using the provided configuration.
func NewOpenRouterClient(cfg OpenRouterConfig) *OpenRouterClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultOpenRouterBaseURL
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 500
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	logger := cfg.Logger
	if logger.GetLevel() == zerolog.Disabled {
		logger = zerolog.Nop()
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	clientConfig.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")
	clientConfig.HTTPClient = &http.Client{
		Timeout: cfg.Timeout,
		Transport: attributionTransport{
			base:    http.DefaultTransport,
			siteURL: cfg.SiteURL,
			appName: cfg.AppName,
		},
	}

	return &OpenRouterClient{
		client: openai.NewClientWithConfig(clientConfig),
		cfg:    cfg,
		tracer: otel.Tracer("github.com/raida-labs/diag-raida-api/pkg/ai/openrouter"),
		logger: logger.With().Str("component", "openrouter_client").Logger(),
	}
}

// Recommend issues a single synchronous chat completion. It never retries and
// never returns an error: every failure mode is mapped to an Output with
// Fallback set.
func (c *OpenRouterClient) Recommend(parent context.Context, prompt string) Output {
	if strings.TrimSpace(c.cfg.APIKey) == "" {
		c.logger.Warn().Msg("openrouter api key not configured")
		return Output{
			Success:  false,
			Error:    "LLM API key not configured",
			Fallback: true,
		}
	}

	ctx, span := c.tracer.Start(parent, "openrouter.recommend", trace.WithAttributes(
		attribute.String("model", c.cfg.Model),
	))
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	request := openai.ChatCompletionRequest{
		Model:       c.cfg.Model,
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: c.cfg.Temperature,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
	}

	c.logger.Info().Str("model", c.cfg.Model).Msg("calling llm")

	start := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, request)
	llmDuration.WithLabelValues(c.cfg.Model).Observe(time.Since(start).Seconds())

	if err != nil {
		llmFailures.WithLabelValues(c.cfg.Model).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		message := classifyCallError(err)
		c.logger.Error().Err(err).Str("model", c.cfg.Model).Msg("llm call failed")
		return Output{
			Success:  false,
			Error:    message,
			Fallback: true,
		}
	}

	if len(resp.Choices) == 0 {
		llmFailures.WithLabelValues(c.cfg.Model).Inc()
		span.SetStatus(codes.Error, "no choices returned")
		return Output{
			Success:  false,
			Error:    "Empty response from model",
			Fallback: true,
		}
	}

	model := resp.Model
	if model == "" {
		model = c.cfg.Model
	}

	c.logger.Info().Str("model", model).Msg("llm call successful")

	return Output{
		Success:  true,
		Response: strings.TrimSpace(resp.Choices[0].Message.Content),
		Model:    model,
		Usage: TokenUsage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}
}

func classifyCallError(err error) string {
	var apiErr *openai.APIError
	switch {
	case errors.As(err, &apiErr):
		return fmt.Sprintf("API returned status %d", apiErr.HTTPStatusCode)
	case errors.Is(err, context.DeadlineExceeded) || os.IsTimeout(err):
		return "Request timeout"
	default:
		return fmt.Sprintf("Request failed: %s", err)
	}
}

// attributionTransport injects the OpenRouter attribution headers into every
// outgoing request.
type attributionTransport struct {
	base    http.RoundTripper
	siteURL string
	appName string
}

func (t attributionTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	cloned := req.Clone(req.Context())
	if t.siteURL != "" {
		cloned.Header.Set("HTTP-Referer", t.siteURL)
	}
	if t.appName != "" {
		cloned.Header.Set("X-Title", t.appName)
	}
	return t.base.RoundTrip(cloned)
}
