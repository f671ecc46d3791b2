package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"daleel-backend/internal/models"
)

// chatCompletionRequest is the minimal request shape for an OpenAI-compatible
// chat completions endpoint.
type chatCompletionRequest struct {
	Model       string               `json:"model"`
	Messages    []models.ChatMessage `json:"messages"`
	Temperature float64              `json:"temperature"`
	MaxTokens   int                  `json:"max_tokens"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Index   int                `json:"index"`
		Message models.ChatMessage `json:"message"`
	} `json:"choices"`
}

// GatewayClient talks to the external chat-completion gateway. Every call
// carries an explicit timeout; 5xx and transport failures are retried with
// backoff, 4xx never are.
type GatewayClient struct {
	baseURL    string
	apiKey     string
	model      string
	maxRetries int
	backoff    time.Duration
	httpClient *http.Client
}

func NewGatewayClient(baseURL, apiKey, model string, maxRetries int) *GatewayClient {
	return &GatewayClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		model:      model,
		maxRetries: maxRetries,
		backoff:    250 * time.Millisecond,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *GatewayClient) completionsURL() string {
	if strings.HasSuffix(c.baseURL, "/v1") {
		return c.baseURL + "/chat/completions"
	}
	return c.baseURL + "/v1/chat/completions"
}

// Complete sends the conversation and returns the first choice's content.
// Failures come back as classified *Error values.
func (c *GatewayClient) Complete(ctx context.Context, messages []models.ChatMessage, temperature float64, maxTokens int) (string, error) {
	body, err := json.Marshal(chatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", errUpstream(fmt.Errorf("marshal gateway request: %w", err))
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", errUpstream(ctx.Err())
			case <-time.After(c.backoff << (attempt - 1)):
			}
		}

		reply, retryable, err := c.complete(ctx, body)
		if err == nil {
			return reply, nil
		}
		lastErr = err
		if !retryable {
			return "", err
		}
	}
	return "", lastErr
}

func (c *GatewayClient) complete(ctx context.Context, body []byte) (reply string, retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.completionsURL(), bytes.NewReader(body))
	if err != nil {
		return "", false, errUpstream(fmt.Errorf("create gateway request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", true, errUpstream(fmt.Errorf("gateway request failed: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		log.Printf("AI gateway error: status=%d body=%s", resp.StatusCode, detail)

		statusErr := fmt.Errorf("gateway returned status %d", resp.StatusCode)
		switch {
		case resp.StatusCode == http.StatusTooManyRequests:
			return "", false, errRateLimited(statusErr)
		case resp.StatusCode == http.StatusPaymentRequired:
			return "", false, errQuotaExceeded(statusErr)
		case resp.StatusCode >= 500:
			return "", true, errUpstream(statusErr)
		default:
			return "", false, errUpstream(statusErr)
		}
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", false, errUpstream(fmt.Errorf("read gateway response: %w", err))
	}

	var payload chatCompletionResponse
	if err := json.Unmarshal(raw, &payload); err != nil {
		return "", false, errUpstream(fmt.Errorf("decode gateway response: %w", err))
	}
	if len(payload.Choices) == 0 || payload.Choices[0].Message.Content == "" {
		return "", false, errUpstream(fmt.Errorf("gateway response carried no choices"))
	}
	return payload.Choices[0].Message.Content, false, nil
}
