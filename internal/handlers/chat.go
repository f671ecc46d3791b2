package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/google/uuid"

	"daleel-backend/internal/middleware"
	"daleel-backend/internal/models"
	"daleel-backend/internal/services"
)

type assistantService interface {
	Ask(ctx context.Context, userID uuid.UUID, message string) (string, error)
}

// ChatHandler exposes the AI assistant relay endpoint. Auth runs in the JWT
// middleware; preflight never reaches this handler.
type ChatHandler struct {
	assistant assistantService
}

func NewChatHandler(assistant assistantService) *ChatHandler {
	return &ChatHandler{assistant: assistant}
}

func (h *ChatHandler) Ask(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		// Covers a malformed body and a non-string message alike.
		writeError(w, http.StatusBadRequest, models.MsgMessageRequired)
		return
	}

	reply, err := h.assistant.Ask(r.Context(), middleware.GetUserID(r.Context()), req.Message)
	if err != nil {
		if se, ok := services.AsError(err); ok {
			writeError(w, se.Status, se.Message)
			return
		}
		log.Printf("assistant request failed: %v", err)
		writeError(w, http.StatusInternalServerError, models.MsgInternal)
		return
	}

	writeJSON(w, http.StatusOK, models.ChatResponse{Response: reply})
}

// Shared helpers

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, models.ErrorResponse{Error: message})
}
