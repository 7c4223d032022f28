package huggingface

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

const (
	DefaultBaseURL = "https://api-inference.huggingface.co/models"
	DefaultModel   = "facebook/bart-large-mnli"
)

// Client is the HuggingFace Inference API client for zero-shot classification.
type Client struct {
	apiToken   string
	baseURL    string
	model      string
	httpClient *http.Client
}

// New creates a new HuggingFace Inference client.
// An empty token is allowed; public models accept unauthenticated requests
// at a lower rate limit.
func New(apiToken string) *Client {
	return &Client{
		apiToken:   apiToken,
		baseURL:    DefaultBaseURL,
		model:      DefaultModel,
		httpClient: &http.Client{},
	}
}

// WithModel sets a custom zero-shot model.
func (c *Client) WithModel(model string) *Client {
	c.model = model
	return c
}

// WithBaseURL overrides the default Inference API base URL.
func (c *Client) WithBaseURL(baseURL string) *Client {
	c.baseURL = baseURL
	return c
}

// Classify runs zero-shot classification of text against the candidate labels.
func (c *Client) Classify(ctx context.Context, text string, candidateLabels []string) (*ClassifyResponse, error) {
	if text == "" {
		return nil, fmt.Errorf("no text provided")
	}
	if len(candidateLabels) == 0 {
		return nil, fmt.Errorf("no candidate labels provided")
	}

	reqBody := ClassifyRequest{
		Inputs: text,
		Parameters: ClassifyParameters{
			CandidateLabels: candidateLabels,
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/%s", c.baseURL, c.model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiToken != "" {
		httpReq.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiToken))
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to call HF Inference API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errResp ErrorResponse
		if jsonErr := json.NewDecoder(resp.Body).Decode(&errResp); jsonErr == nil && errResp.Error != "" {
			return nil, fmt.Errorf("HF Inference API error (%d): %s", resp.StatusCode, errResp.Error)
		}
		return nil, fmt.Errorf("HF Inference API error: %d", resp.StatusCode)
	}

	var result ClassifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(result.Labels) != len(result.Scores) {
		return nil, fmt.Errorf("malformed response: %d labels, %d scores", len(result.Labels), len(result.Scores))
	}

	return &result, nil
}
