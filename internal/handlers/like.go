package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/google/uuid"

	"daleel-backend/internal/middleware"
	"daleel-backend/internal/models"
	"daleel-backend/internal/repository"
)

type LikeHandler struct {
	likeRepo *repository.LikeRepo
}

func NewLikeHandler(likeRepo *repository.LikeRepo) *LikeHandler {
	return &LikeHandler{likeRepo: likeRepo}
}

type likeRequest struct {
	TargetType string    `json:"target_type"`
	TargetID   uuid.UUID `json:"target_id"`
}

func validLikeTarget(t string) bool {
	return t == models.LikeTargetUniversity || t == models.LikeTargetNews
}

func (h *LikeHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	var req likeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || !validLikeTarget(req.TargetType) || req.TargetID == uuid.Nil {
		writeError(w, http.StatusBadRequest, models.MsgInvalidBody)
		return
	}

	userID := middleware.GetUserID(r.Context())
	status, err := h.likeRepo.Toggle(r.Context(), userID, req.TargetType, req.TargetID)
	if err != nil {
		log.Printf("failed to toggle like for %s: %v", userID, err)
		writeError(w, http.StatusInternalServerError, models.MsgInternal)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

func (h *LikeHandler) Status(w http.ResponseWriter, r *http.Request) {
	targetType := r.URL.Query().Get("target_type")
	targetID, err := uuid.Parse(r.URL.Query().Get("target_id"))
	if err != nil || !validLikeTarget(targetType) {
		writeError(w, http.StatusBadRequest, models.MsgInvalidBody)
		return
	}

	userID := middleware.GetUserID(r.Context())
	status, err := h.likeRepo.Status(r.Context(), userID, targetType, targetID)
	if err != nil {
		log.Printf("failed to load like status for %s: %v", userID, err)
		writeError(w, http.StatusInternalServerError, models.MsgInternal)
		return
	}
	writeJSON(w, http.StatusOK, status)
}
