package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"daleel-backend/internal/models"
)

func newTestGateway(t *testing.T, handler http.HandlerFunc) (*GatewayClient, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewGatewayClient(server.URL+"/v1", "test-key", "test-model", 2)
	client.backoff = time.Millisecond
	return client, server
}

func userMessage(content string) []models.ChatMessage {
	return []models.ChatMessage{{Role: models.RoleUser, Content: content}}
}

func TestGatewayComplete_Success(t *testing.T) {
	client, _ := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("Expected path /v1/chat/completions, got %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Expected bearer auth header, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"index":0,"message":{"role":"assistant","content":"X"}}]}`))
	})

	reply, err := client.Complete(context.Background(), userMessage("مرحبا"), 0.7, 1000)
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if reply != "X" {
		t.Errorf("Expected reply %q, got %q", "X", reply)
	}
}

func TestGatewayComplete_StatusClassification(t *testing.T) {
	tests := []struct {
		name         string
		upstream     int
		wantCode     ErrorCode
		wantStatus   int
		wantMessage  string
		wantAttempts int
	}{
		{"rate limited", http.StatusTooManyRequests, CodeRateLimited, 429, models.MsgRateLimited, 1},
		{"quota exceeded", http.StatusPaymentRequired, CodeQuotaExceeded, 402, models.MsgQuotaExceeded, 1},
		{"bad request", http.StatusBadRequest, CodeUpstream, 500, models.MsgUpstreamError, 1},
		{"server error", http.StatusBadGateway, CodeUpstream, 500, models.MsgUpstreamError, 3},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			attempts := 0
			client, _ := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
				attempts++
				w.WriteHeader(tc.upstream)
			})

			_, err := client.Complete(context.Background(), userMessage("سؤال"), 0.7, 1000)
			se, ok := AsError(err)
			if !ok {
				t.Fatalf("Expected classified error, got %v", err)
			}
			if se.Code != tc.wantCode {
				t.Errorf("Expected code %s, got %s", tc.wantCode, se.Code)
			}
			if se.Status != tc.wantStatus {
				t.Errorf("Expected status %d, got %d", tc.wantStatus, se.Status)
			}
			if se.Message != tc.wantMessage {
				t.Errorf("Expected message %q, got %q", tc.wantMessage, se.Message)
			}
			if attempts != tc.wantAttempts {
				t.Errorf("Expected %d attempts, got %d", tc.wantAttempts, attempts)
			}
		})
	}
}

func TestGatewayComplete_RecoversAfterRetry(t *testing.T) {
	attempts := 0
	client, _ := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"choices":[{"index":0,"message":{"role":"assistant","content":"جواب"}}]}`))
	})

	reply, err := client.Complete(context.Background(), userMessage("سؤال"), 0.7, 1000)
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if reply != "جواب" {
		t.Errorf("Expected recovered reply, got %q", reply)
	}
	if attempts != 2 {
		t.Errorf("Expected 2 attempts, got %d", attempts)
	}
}

func TestGatewayComplete_MalformedResponse(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `not json at all`},
		{"no choices", `{"choices":[]}`},
		{"empty content", `{"choices":[{"index":0,"message":{"role":"assistant","content":""}}]}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			client, _ := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tc.body))
			})

			_, err := client.Complete(context.Background(), userMessage("سؤال"), 0.7, 1000)
			se, ok := AsError(err)
			if !ok {
				t.Fatalf("Expected classified error, got %v", err)
			}
			if se.Code != CodeUpstream {
				t.Errorf("Expected UPSTREAM_ERROR, got %s", se.Code)
			}
		})
	}
}
