package http

import (
	"net/http"

	"github.com/asig/closed-loop/internal/logger"
	"github.com/asig/closed-loop/internal/utils"
)

// dashboardStats handles GET /api/stats.
func (h *Handler) dashboardStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	stats, err := h.services.StatsService.DashboardStats(ctx, userID)
	if err != nil {
		log.Err(err).Str("userId", userID).Msg("computing dashboard stats failed")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	utils.WriteJSON(w, stats, http.StatusOK)
}

// heatmap handles GET /api/stats/heatmap: the trailing 365-day activity
// buckets ending today.
func (h *Handler) heatmap(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	buckets, err := h.services.StatsService.Heatmap(ctx, userID)
	if err != nil {
		log.Err(err).Str("userId", userID).Msg("computing heatmap failed")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	utils.WriteJSON(w, buckets, http.StatusOK)
}
