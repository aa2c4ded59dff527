package routes

import (
	"net/http"

	"github.com/studybuddy/studybuddy/internal/app"
	"github.com/studybuddy/studybuddy/internal/handler"
	"github.com/studybuddy/studybuddy/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	health := handler.NewHealthHandler(app.DB)
	streak := handler.NewStreakHandler(app.StreakService)
	focus := handler.NewFocusHandler(app.FocusService)

	mux := http.NewServeMux()

	// ============================================================================
	// PUBLIC ROUTES
	// ============================================================================

	mux.HandleFunc("GET /healthz", health.Health)

	// ============================================================================
	// AUTHENTICATED API (writes are rate limited per user)
	// ============================================================================

	limit := middleware.RateLimitWrites(app.Cfg.RateLimitWrites, app.Cfg.RateLimitWindow)
	auth := middleware.RequireUser

	// Streak
	mux.HandleFunc("GET /api/streak", auth(streak.Current))
	mux.HandleFunc("GET /api/streak/week", auth(streak.Week))
	mux.HandleFunc("POST /api/streak/days", auth(limit(streak.MarkStudied)))
	mux.HandleFunc("POST /api/streak/forgive", auth(limit(streak.Forgive)))

	// Focus sessions
	mux.HandleFunc("GET /api/focus/sessions", auth(focus.List))
	mux.HandleFunc("POST /api/focus/sessions", auth(limit(focus.Start)))
	mux.HandleFunc("POST /api/focus/sessions/{id}/finish", auth(limit(focus.Finish)))
	mux.HandleFunc("GET /api/focus/stats", auth(focus.Stats))

	return middleware.Chain(mux,
		middleware.AuthMiddleware(app.TokenService),
		middleware.RequestLogging,
	)
}
