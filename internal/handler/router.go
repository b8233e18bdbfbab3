package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/uptura/site/backend/internal/config"
	"github.com/uptura/site/backend/internal/handler/chat"
	"github.com/uptura/site/backend/internal/handler/persona"
	middlewarePkg "github.com/uptura/site/backend/internal/middleware"
	aiService "github.com/uptura/site/backend/internal/service/ai"
	"github.com/uptura/site/backend/pkg/utils"
)

// NewRouter wires HTTP routes to the AI service. limiter may be nil.
func NewRouter(aiSvc *aiService.Service, site config.SiteConfig, limiter *middlewarePkg.RateLimiter) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS(site.AllowedOrigin))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	chatHandler := chat.New(aiSvc)
	personaHandler := persona.New(aiSvc.Persona())

	r.Route("/api", func(api chi.Router) {
		api.NotFound(func(w http.ResponseWriter, r *http.Request) {
			utils.RespondError(w, http.StatusNotFound, "not found")
		})

		personaHandler.RegisterRoutes(api)

		api.Group(func(limited chi.Router) {
			if limiter != nil {
				limited.Use(limiter.Middleware)
			}

			chatHandler.RegisterRoutes(limited)

			if site.WebSocketEnabled {
				chat.NewWebSocketHandler(aiSvc, site.AllowedOrigin).RegisterRoutes(limited)
			}
		})
	})

	if site.StaticDir != "" {
		r.Handle("/*", http.FileServer(http.Dir(site.StaticDir)))
	}

	return r
}
