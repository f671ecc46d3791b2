package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"daleel-backend/internal/models"
	"daleel-backend/internal/repository"
)

type UniversityHandler struct {
	universityRepo *repository.UniversityRepo
}

func NewUniversityHandler(universityRepo *repository.UniversityRepo) *UniversityHandler {
	return &UniversityHandler{universityRepo: universityRepo}
}

func (h *UniversityHandler) List(w http.ResponseWriter, r *http.Request) {
	universities, err := h.universityRepo.List(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		log.Printf("failed to list universities: %v", err)
		writeError(w, http.StatusInternalServerError, models.MsgInternal)
		return
	}
	if universities == nil {
		universities = []*models.University{}
	}
	writeJSON(w, http.StatusOK, universities)
}

func (h *UniversityHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, models.MsgInvalidBody)
		return
	}

	details, err := h.universityRepo.GetDetails(r.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, models.MsgNotFound)
			return
		}
		log.Printf("failed to load university %s: %v", id, err)
		writeError(w, http.StatusInternalServerError, models.MsgInternal)
		return
	}
	writeJSON(w, http.StatusOK, details)
}

func (h *UniversityHandler) Faculties(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, models.MsgInvalidBody)
		return
	}

	faculties, err := h.universityRepo.ListFacultiesByUniversity(r.Context(), id)
	if err != nil {
		log.Printf("failed to list faculties for %s: %v", id, err)
		writeError(w, http.StatusInternalServerError, models.MsgInternal)
		return
	}
	if faculties == nil {
		faculties = []models.Faculty{}
	}
	writeJSON(w, http.StatusOK, faculties)
}

func (h *UniversityHandler) FacultyMajors(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, models.MsgInvalidBody)
		return
	}

	majors, err := h.universityRepo.ListMajorsByFaculty(r.Context(), id)
	if err != nil {
		log.Printf("failed to list majors for faculty %s: %v", id, err)
		writeError(w, http.StatusInternalServerError, models.MsgInternal)
		return
	}
	if majors == nil {
		majors = []models.Major{}
	}
	writeJSON(w, http.StatusOK, majors)
}

func (h *UniversityHandler) Majors(w http.ResponseWriter, r *http.Request) {
	listings, err := h.universityRepo.ListMajors(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		log.Printf("failed to list majors: %v", err)
		writeError(w, http.StatusInternalServerError, models.MsgInternal)
		return
	}
	if listings == nil {
		listings = []models.MajorListing{}
	}
	writeJSON(w, http.StatusOK, listings)
}
