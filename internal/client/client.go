package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/raida-labs/diag-raida-api/internal/dto"
	"github.com/raida-labs/diag-raida-api/internal/utils"
)

const defaultRequestTimeout = 15 * time.Second

// Client talks to the diagnostic API over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
}

// New builds an API client for the given server base URL.
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{Timeout: defaultRequestTimeout},
	}
}

// FetchTest requests a diagnostic test with the given number of questions.
func (c *Client) FetchTest(ctx context.Context, numQuestions int) (dto.TestResponse, error) {
	endpoint := fmt.Sprintf("%s/api/diagnostic/test?%s", c.baseURL, url.Values{
		"num_questions": []string{strconv.Itoa(numQuestions)},
	}.Encode())

	var response dto.TestResponse
	if err := c.get(ctx, endpoint, &response); err != nil {
		return dto.TestResponse{}, err
	}

	return response, nil
}

// SubmitResponses sends a completed submission for evaluation.
func (c *Client) SubmitResponses(ctx context.Context, request dto.SubmitRequest) (dto.SubmitResponse, error) {
	endpoint := fmt.Sprintf("%s/api/diagnostic/submit", c.baseURL)

	var response dto.SubmitResponse
	if err := c.post(ctx, endpoint, request, &response); err != nil {
		return dto.SubmitResponse{}, err
	}

	return response, nil
}

// FetchRecommendations asks the server for study recommendations based on an
// evaluated result.
func (c *Client) FetchRecommendations(ctx context.Context, request dto.RecommendationRequest) (dto.RecommendationResponse, error) {
	endpoint := fmt.Sprintf("%s/api/recommendation", c.baseURL)

	var response dto.RecommendationResponse
	if err := c.post(ctx, endpoint, request, &response); err != nil {
		return dto.RecommendationResponse{}, err
	}

	return response, nil
}

func (c *Client) get(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, endpoint string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("call server: %w", err)
	}
	defer resp.Body.Close()

	decoder := json.NewDecoder(resp.Body)

	if resp.StatusCode >= http.StatusBadRequest {
		var apiErr utils.ErrorResponse
		if err := decoder.Decode(&apiErr); err == nil && apiErr.Error != "" {
			return fmt.Errorf("server returned %d: %s", resp.StatusCode, apiErr.Error)
		}
		return fmt.Errorf("server returned %d", resp.StatusCode)
	}

	if err := decoder.Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}
