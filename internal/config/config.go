package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName                string
	AppEnv                 string
	AppPort                string
	SecretKey              string
	OpenRouterAPIKey       string
	OpenRouterBaseURL      string
	OpenRouterSiteURL      string
	OpenRouterAppName      string
	LLMModel               string
	LLMTimeout             time.Duration
	LLMMaxTokens           int
	LLMTemperature         float32
	LLMFallbackEnabled     bool
	RedisURL               string
	RecommendationCacheTTL time.Duration
	QuestionBankPath       string
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("RAIDA")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "Diag-Raida API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("openrouter.base_url", "https://openrouter.ai/api/v1")
	v.SetDefault("llm.model", "meta-llama/llama-3.3-70b-instruct:free")
	v.SetDefault("llm.timeout", "30s")
	v.SetDefault("llm.max_tokens", 500)
	v.SetDefault("llm.temperature", 0.7)
	v.SetDefault("llm.fallback_enabled", true)
	v.SetDefault("recommendation.cache_ttl", "10m")

	timeoutString := v.GetString("llm.timeout")
	timeout, err := time.ParseDuration(timeoutString)
	if err != nil {
		return Config{}, fmt.Errorf("invalid llm timeout: %w", err)
	}

	ttlString := v.GetString("recommendation.cache_ttl")
	ttl, err := time.ParseDuration(ttlString)
	if err != nil {
		return Config{}, fmt.Errorf("invalid recommendation cache ttl: %w", err)
	}

	cfg := Config{
		AppName:                v.GetString("app.name"),
		AppEnv:                 strings.ToLower(v.GetString("app.env")),
		AppPort:                v.GetString("app.port"),
		SecretKey:              v.GetString("secret.key"),
		OpenRouterAPIKey:       v.GetString("openrouter.api_key"),
		OpenRouterBaseURL:      v.GetString("openrouter.base_url"),
		OpenRouterSiteURL:      v.GetString("openrouter.site_url"),
		OpenRouterAppName:      v.GetString("openrouter.app_name"),
		LLMModel:               v.GetString("llm.model"),
		LLMTimeout:             timeout,
		LLMMaxTokens:           v.GetInt("llm.max_tokens"),
		LLMTemperature:         float32(v.GetFloat64("llm.temperature")),
		LLMFallbackEnabled:     v.GetBool("llm.fallback_enabled"),
		RedisURL:               v.GetString("redis.url"),
		RecommendationCacheTTL: ttl,
		QuestionBankPath:       v.GetString("question_bank.path"),
	}

	switch cfg.AppEnv {
	case "development", "production", "testing":
	default:
		return Config{}, fmt.Errorf("unknown app env %q", cfg.AppEnv)
	}

	if cfg.LLMMaxTokens <= 0 {
		cfg.LLMMaxTokens = 500
	}

	return cfg, nil
}
