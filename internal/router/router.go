package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"daleel-backend/internal/handlers"
	"daleel-backend/internal/middleware"
	"daleel-backend/internal/websocket"
)

func New(
	jwtAuth *middleware.JWTAuth,
	universityHandler *handlers.UniversityHandler,
	newsHandler *handlers.NewsHandler,
	profileHandler *handlers.ProfileHandler,
	likeHandler *handlers.LikeHandler,
	chatHandler *handlers.ChatHandler,
	wsHub *websocket.Hub,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware. CORS sits first so preflight short-circuits before
	// anything else runs.
	r.Use(middleware.CORS)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)

	// Assistant rate limiter (20 req/min per IP) on top of the per-user
	// daily quota.
	chatLimiter := middleware.NewRateLimiter(20, time.Minute)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {

		// ──── Catalog Routes (public) ────
		r.Route("/universities", func(r chi.Router) {
			r.Get("/", universityHandler.List)
			r.Get("/{id}", universityHandler.Get)
			r.Get("/{id}/faculties", universityHandler.Faculties)
		})
		r.Get("/faculties/{id}/majors", universityHandler.FacultyMajors)
		r.Get("/majors", universityHandler.Majors)

		// ──── News Routes ────
		r.Route("/news", func(r chi.Router) {
			r.Get("/", newsHandler.List)
			r.Get("/{id}", newsHandler.Get)

			// Admin writes
			r.Group(func(r chi.Router) {
				r.Use(jwtAuth.Middleware)
				r.Post("/", newsHandler.Create)
				r.Put("/{id}", newsHandler.Update)
				r.Delete("/{id}", newsHandler.Delete)
			})
		})

		// ──── Profile & Likes Routes ────
		r.Group(func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Get("/profile", profileHandler.Get)
			r.Put("/profile", profileHandler.Put)
			r.Put("/likes", likeHandler.Toggle)
			r.Get("/likes/status", likeHandler.Status)
		})

		// ──── AI Assistant ────
		r.Route("/assistant", func(r chi.Router) {
			r.Use(chatLimiter.Middleware)
			r.Use(jwtAuth.Middleware)
			r.Post("/chat", chatHandler.Ask)
		})

		// ──── WebSocket ────
		r.Get("/ws", wsHub.HandleWebSocket)
	})

	return r
}
