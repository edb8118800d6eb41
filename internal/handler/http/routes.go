package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/auth/register", h.register)
		r.Post("/auth/login", h.login)
	})

	// routes behind JWT authentication
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/api/collections", h.listCollections)
		r.Post("/api/collections", h.createCollection)
		r.Delete("/api/collections/{id}", h.deleteCollection)
		r.Get("/api/collections/{id}/items", h.listItems)

		r.Get("/api/items", h.listAllItems)
		r.Post("/api/items", h.createItem)
		r.Post("/api/items/batch", h.batchCreateItems)
		r.Patch("/api/items/{id}", h.updateItem)
		r.Post("/api/items/{id}/review", h.reviewItem)

		r.Get("/api/stats", h.dashboardStats)
		r.Get("/api/stats/heatmap", h.heatmap)

		r.Get("/api/profile", h.getProfile)
		r.Patch("/api/profile", h.updateProfile)
	})

	return router
}
