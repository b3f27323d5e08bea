// Package handlers provides HTTP handlers for the portfolio API.
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/spacefolio/internal/modules/portfolio"
	"github.com/aristath/spacefolio/internal/modules/title"
)

// Handler handles portfolio HTTP requests
type Handler struct {
	cache      *portfolio.Cache
	service    *portfolio.Service
	publisher  *title.Publisher
	cronSecret string
	log        zerolog.Logger
}

// NewHandler creates a new portfolio handler. cronSecret may be empty,
// in which case the update-title endpoint is unauthenticated.
func NewHandler(cache *portfolio.Cache, service *portfolio.Service, publisher *title.Publisher, cronSecret string, log zerolog.Logger) *Handler {
	return &Handler{
		cache:      cache,
		service:    service,
		publisher:  publisher,
		cronSecret: cronSecret,
		log:        log.With().Str("handler", "portfolio").Logger(),
	}
}

// HandleGetPortfolio returns the portfolio summary with P&L for all
// exchanges. Served from cache; falls back to a live computation only
// before the first refresh has landed.
func (h *Handler) HandleGetPortfolio(w http.ResponseWriter, r *http.Request) {
	summary, err := h.cache.Read(r.Context())
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, summary)
}

// HandleUpdateTitle recomputes the portfolio and pushes a fresh
// P&L-bearing title to the configured video. Invoked by an external
// cron scheduler; guarded by a shared-secret bearer check when a
// secret is configured. The summary is built fresh rather than read
// from cache so the published number reflects the market at publish
// time.
func (h *Handler) HandleUpdateTitle(w http.ResponseWriter, r *http.Request) {
	if h.cronSecret != "" {
		if r.Header.Get("Authorization") != "Bearer "+h.cronSecret {
			h.log.Warn().Str("remote", r.RemoteAddr).Msg("Rejected update-title call with bad credential")
			h.writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
	}

	summary, err := h.service.BuildSummary(r.Context())
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	newTitle, err := h.publisher.Publish(r.Context(), summary)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":     "success",
		"new_title":  newTitle,
		"portfolio":  summary,
		"updated_at": time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
