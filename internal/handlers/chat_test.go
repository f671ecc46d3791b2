package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"daleel-backend/internal/models"
	"daleel-backend/internal/services"
)

type fakeAssistant struct {
	calls  int
	userID uuid.UUID
	asked  string
	reply  string
	err    error
}

func (f *fakeAssistant) Ask(ctx context.Context, userID uuid.UUID, message string) (string, error) {
	f.calls++
	f.userID = userID
	f.asked = message
	return f.reply, f.err
}

func decodeErrorBody(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var body models.ErrorResponse
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode error body: %v", err)
	}
	return body.Error
}

func TestChatAsk_Success(t *testing.T) {
	assistant := &fakeAssistant{reply: "جامعة دمشق تأسست عام 1923"}
	handler := NewChatHandler(assistant)

	req := httptest.NewRequest("POST", "/api/v1/assistant/chat", strings.NewReader(`{"message":"متى تأسست جامعة دمشق؟"}`))
	rr := httptest.NewRecorder()
	handler.Ask(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}

	var resp models.ChatResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Response != assistant.reply {
		t.Errorf("Expected reply %q, got %q", assistant.reply, resp.Response)
	}
	if assistant.asked != "متى تأسست جامعة دمشق؟" {
		t.Errorf("Expected message passed through verbatim, got %q", assistant.asked)
	}
}

func TestChatAsk_MalformedBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"invalid json", `{not json`},
		{"non-string message", `{"message": 42}`},
		{"array message", `{"message": ["a"]}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assistant := &fakeAssistant{}
			handler := NewChatHandler(assistant)

			req := httptest.NewRequest("POST", "/api/v1/assistant/chat", strings.NewReader(tc.body))
			rr := httptest.NewRecorder()
			handler.Ask(rr, req)

			if rr.Code != http.StatusBadRequest {
				t.Errorf("Expected status 400, got %d", rr.Code)
			}
			if got := decodeErrorBody(t, rr); got != models.MsgMessageRequired {
				t.Errorf("Expected %q, got %q", models.MsgMessageRequired, got)
			}
			if assistant.calls != 0 {
				t.Errorf("Expected no assistant calls, got %d", assistant.calls)
			}
		})
	}
}

func TestChatAsk_ClassifiedErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{
			"validation",
			&services.Error{Code: services.CodeInvalidInput, Status: http.StatusBadRequest, Message: models.MsgMessageTooShort},
			http.StatusBadRequest, models.MsgMessageTooShort,
		},
		{
			"rate limited",
			&services.Error{Code: services.CodeRateLimited, Status: http.StatusTooManyRequests, Message: models.MsgRateLimited},
			http.StatusTooManyRequests, models.MsgRateLimited,
		},
		{
			"quota exceeded",
			&services.Error{Code: services.CodeQuotaExceeded, Status: http.StatusPaymentRequired, Message: models.MsgQuotaExceeded},
			http.StatusPaymentRequired, models.MsgQuotaExceeded,
		},
		{
			"upstream",
			&services.Error{Code: services.CodeUpstream, Status: http.StatusInternalServerError, Message: models.MsgUpstreamError},
			http.StatusInternalServerError, models.MsgUpstreamError,
		},
		{
			"unclassified",
			errors.New("pool closed"),
			http.StatusInternalServerError, models.MsgInternal,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			handler := NewChatHandler(&fakeAssistant{err: tc.err})

			req := httptest.NewRequest("POST", "/api/v1/assistant/chat", strings.NewReader(`{"message":"مرحبا"}`))
			rr := httptest.NewRecorder()
			handler.Ask(rr, req)

			if rr.Code != tc.wantStatus {
				t.Errorf("Expected status %d, got %d", tc.wantStatus, rr.Code)
			}
			if got := decodeErrorBody(t, rr); got != tc.wantMsg {
				t.Errorf("Expected error %q, got %q", tc.wantMsg, got)
			}
		})
	}
}
