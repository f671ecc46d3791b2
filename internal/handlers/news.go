package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"

	"daleel-backend/internal/middleware"
	"daleel-backend/internal/models"
	"daleel-backend/internal/repository"
)

// NewsChannel is the Redis pub/sub channel the websocket hub listens on.
const NewsChannel = "news_updates"

type NewsHandler struct {
	newsRepo *repository.NewsRepo
	redis    *redis.Client
}

func NewNewsHandler(newsRepo *repository.NewsRepo, redisClient *redis.Client) *NewsHandler {
	return &NewsHandler{newsRepo: newsRepo, redis: redisClient}
}

func (h *NewsHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.newsRepo.List(r.Context(), r.URL.Query().Get("search"), r.URL.Query().Get("category"))
	if err != nil {
		log.Printf("failed to list news: %v", err)
		writeError(w, http.StatusInternalServerError, models.MsgInternal)
		return
	}
	if items == nil {
		items = []*models.News{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *NewsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, models.MsgInvalidBody)
		return
	}

	item, err := h.newsRepo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, models.MsgNotFound)
			return
		}
		log.Printf("failed to load news %s: %v", id, err)
		writeError(w, http.StatusInternalServerError, models.MsgInternal)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *NewsHandler) Create(w http.ResponseWriter, r *http.Request) {
	if middleware.GetRole(r.Context()) != "admin" {
		writeError(w, http.StatusForbidden, models.MsgForbidden)
		return
	}

	in, ok := decodeNewsInput(w, r)
	if !ok {
		return
	}

	item, err := h.newsRepo.Create(r.Context(), in)
	if err != nil {
		log.Printf("failed to create news: %v", err)
		writeError(w, http.StatusInternalServerError, models.MsgInternal)
		return
	}

	h.broadcast(r, "news_published", item)
	writeJSON(w, http.StatusCreated, item)
}

func (h *NewsHandler) Update(w http.ResponseWriter, r *http.Request) {
	if middleware.GetRole(r.Context()) != "admin" {
		writeError(w, http.StatusForbidden, models.MsgForbidden)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, models.MsgInvalidBody)
		return
	}

	in, ok := decodeNewsInput(w, r)
	if !ok {
		return
	}

	item, err := h.newsRepo.Update(r.Context(), id, in)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, models.MsgNotFound)
			return
		}
		log.Printf("failed to update news %s: %v", id, err)
		writeError(w, http.StatusInternalServerError, models.MsgInternal)
		return
	}

	h.broadcast(r, "news_updated", item)
	writeJSON(w, http.StatusOK, item)
}

func (h *NewsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if middleware.GetRole(r.Context()) != "admin" {
		writeError(w, http.StatusForbidden, models.MsgForbidden)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, models.MsgInvalidBody)
		return
	}

	if err := h.newsRepo.Delete(r.Context(), id); err != nil {
		log.Printf("failed to delete news %s: %v", id, err)
		writeError(w, http.StatusInternalServerError, models.MsgInternal)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "تم حذف الخبر"})
}

func decodeNewsInput(w http.ResponseWriter, r *http.Request) (*models.NewsInput, bool) {
	var in models.NewsInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, models.MsgInvalidBody)
		return nil, false
	}

	in.Title = strings.TrimSpace(in.Title)
	in.Summary = strings.TrimSpace(in.Summary)
	in.Source = strings.TrimSpace(in.Source)
	if in.Title == "" || in.Summary == "" || in.Source == "" || !models.ValidNewsCategory(in.Category) {
		writeError(w, http.StatusBadRequest, models.MsgInvalidBody)
		return nil, false
	}
	return &in, true
}

// broadcast publishes a news event for the websocket hub. Publishing is best
// effort; a Redis failure never fails the admin write.
func (h *NewsHandler) broadcast(r *http.Request, event string, item *models.News) {
	if h.redis == nil {
		return
	}
	payload, _ := json.Marshal(map[string]interface{}{"type": event, "news": item})
	if err := h.redis.Publish(r.Context(), NewsChannel, string(payload)).Err(); err != nil {
		log.Printf("failed to publish %s for news %s: %v", event, item.ID, err)
	}
}
