package session

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"daleel-backend/internal/models"
)

// StatusError is a relay failure with its HTTP status and the localized
// message the relay returned.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("relay returned status %d: %s", e.Status, e.Message)
}

// Client calls the assistant relay endpoint over HTTP with a bearer token.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: 2 * time.Minute},
	}
}

// Ask posts one message and returns the assistant's reply. Non-2xx responses
// come back as *StatusError carrying the relay's localized message.
func (c *Client) Ask(ctx context.Context, message string) (string, error) {
	body, err := json.Marshal(models.ChatRequest{Message: message})
	if err != nil {
		return "", fmt.Errorf("marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/assistant/chat", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read chat response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp models.ErrorResponse
		json.Unmarshal(raw, &errResp)
		return "", &StatusError{Status: resp.StatusCode, Message: errResp.Error}
	}

	var chatResp models.ChatResponse
	if err := json.Unmarshal(raw, &chatResp); err != nil {
		return "", fmt.Errorf("decode chat response: %w", err)
	}
	if chatResp.Response == "" {
		return "", fmt.Errorf("relay returned an empty response")
	}
	return chatResp.Response, nil
}
