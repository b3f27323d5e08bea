package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all portfolio routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/portfolio", h.HandleGetPortfolio)   // Cached portfolio summary
	r.Get("/update-title", h.HandleUpdateTitle) // Cron-invoked title push
}
