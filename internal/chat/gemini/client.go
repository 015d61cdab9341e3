// internal/chat/gemini/client.go
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	cerrors "torqueup-chat/internal/common/errors"
	"torqueup-chat/internal/common/logger"
	"torqueup-chat/internal/common/metrics"
)

// fallbackReply is returned when the upstream answers 200 but produces
// no usable candidate text.
const fallbackReply = "Sorry, I could not generate a response."

// safetyCategories are flagged at the configured threshold on every call.
var safetyCategories = []string{
	"HARM_CATEGORY_HARASSMENT",
	"HARM_CATEGORY_HATE_SPEECH",
	"HARM_CATEGORY_SEXUALLY_EXPLICIT",
	"HARM_CATEGORY_DANGEROUS_CONTENT",
}

// Client talks to the generateContent completion upstream. Calls are not
// retried: a failed completion surfaces as a single structured error.
type Client struct {
	config *Config
	client *http.Client
	logger logger.Logger
}

func NewClient(config *Config, log logger.Logger) (*Client, error) {
	if config.APIKey == "" {
		return nil, cerrors.NewGeminiKeyMissingError()
	}

	return &Client{
		config: config,
		// No transport-level timeout, the per-request context bounds the call.
		client: &http.Client{},
		logger: log.WithFields(map[string]interface{}{"component": "gemini"}),
	}, nil
}

// Generate sends one composed prompt and returns the raw completion text.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if c.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.Timeout)
		defer cancel()
	}

	reqBody := generateRequest{
		Contents: []content{
			{Parts: []part{{Text: prompt}}},
		},
		GenerationConfig: generationConfig{
			Temperature:     c.config.Temperature,
			TopK:            c.config.TopK,
			TopP:            c.config.TopP,
			MaxOutputTokens: c.config.MaxOutputTokens,
		},
		SafetySettings: c.safetySettings(),
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", cerrors.NewExternalServiceError("gemini", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		strings.TrimRight(c.config.BaseURL, "/"), c.config.Model, c.config.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return "", cerrors.NewExternalServiceError("gemini", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.client.Do(req)
	metrics.CompletionDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		if ctx.Err() != nil {
			return "", cerrors.NewCompletionTimeoutError()
		}
		return "", cerrors.NewExternalServiceError("gemini", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		// Status and body are for server-side logs only, never clients.
		c.logger.Error("completion upstream returned error", map[string]interface{}{
			"status": resp.StatusCode,
			"body":   string(respBody),
		})
		return "", cerrors.NewCompletionUpstreamError(resp.StatusCode, string(respBody))
	}

	var apiResponse generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		return "", cerrors.NewExternalServiceError("gemini", fmt.Errorf("decode response: %w", err))
	}

	text := firstCandidateText(apiResponse)
	if strings.TrimSpace(text) == "" {
		c.logger.Warn("completion produced no candidate text", nil)
		return fallbackReply, nil
	}

	return text, nil
}

func (c *Client) safetySettings() []safetySetting {
	settings := make([]safetySetting, 0, len(safetyCategories))
	for _, category := range safetyCategories {
		settings = append(settings, safetySetting{
			Category:  category,
			Threshold: c.config.SafetyThreshold,
		})
	}
	return settings
}

func firstCandidateText(resp generateResponse) string {
	if len(resp.Candidates) == 0 {
		return ""
	}
	parts := resp.Candidates[0].Content.Parts
	if len(parts) == 0 {
		return ""
	}
	return parts[0].Text
}
