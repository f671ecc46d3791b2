package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/jackc/pgx/v5"

	"daleel-backend/internal/middleware"
	"daleel-backend/internal/models"
	"daleel-backend/internal/repository"
)

type ProfileHandler struct {
	profileRepo *repository.ProfileRepo
}

func NewProfileHandler(profileRepo *repository.ProfileRepo) *ProfileHandler {
	return &ProfileHandler{profileRepo: profileRepo}
}

func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	profile, err := h.profileRepo.GetByUserID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, models.MsgNotFound)
			return
		}
		log.Printf("failed to load profile for %s: %v", userID, err)
		writeError(w, http.StatusInternalServerError, models.MsgInternal)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (h *ProfileHandler) Put(w http.ResponseWriter, r *http.Request) {
	var in models.ProfileInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, models.MsgInvalidBody)
		return
	}

	userID := middleware.GetUserID(r.Context())
	profile, err := h.profileRepo.Upsert(r.Context(), userID, &in)
	if err != nil {
		log.Printf("failed to save profile for %s: %v", userID, err)
		writeError(w, http.StatusInternalServerError, models.MsgInternal)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}
