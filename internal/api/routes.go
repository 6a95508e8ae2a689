package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// SetupRoutes configures all API routes.
func SetupRoutes(h *Handlers) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"https://shutterfest.io", "http://localhost:5173"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	// Health and confirmation links sit outside /api: both are hit by
	// browsers and infrastructure, not the site backend.
	r.Get("/health", h.HandleHealth)
	r.Get("/confirm", h.HandleConfirm)

	r.Route("/api", func(r chi.Router) {
		r.Post("/subscribe", h.HandleSubscribe)
		r.Post("/unsubscribe", h.HandleUnsubscribe)
		r.Get("/subscribers/is-subscribed", h.HandleIsSubscribed)
		r.Get("/stats", h.HandleStats)

		r.Post("/notify/new-event", h.HandleNotifyNewEvent)
		r.Post("/notify/event-update", h.HandleNotifyEventUpdate)
		r.Post("/confirmations/send", h.HandleSendConfirmations)
	})

	return r
}
