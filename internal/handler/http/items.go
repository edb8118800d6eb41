package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/asig/closed-loop/internal/logger"
	"github.com/asig/closed-loop/internal/utils"
	"github.com/asig/closed-loop/models"
)

// reviewRequest is the body of POST /api/items/{id}/review.
type reviewRequest struct {
	// Success reports whether the user recalled the item.
	Success bool `json:"success"`
}

// listAllItems handles GET /api/items: every item across all of the user's
// collections.
func (h *Handler) listAllItems(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	items, err := h.services.ItemService.ListAllItems(ctx, userID)
	if err != nil {
		log.Err(err).Str("userId", userID).Msg("listing items failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, items, http.StatusOK)
}

// createItem handles POST /api/items.
func (h *Handler) createItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var fields models.NewItem
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	created, err := h.services.ItemService.CreateItem(ctx, userID, fields)
	if err != nil {
		log.Err(err).Str("userId", userID).Msg("item creation failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, created, http.StatusCreated)
}

// batchCreateItems handles POST /api/items/batch: many items created in a
// single store rewrite.
func (h *Handler) batchCreateItems(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var fields []models.NewItem
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	created, err := h.services.ItemService.BatchCreateItems(ctx, userID, fields)
	if err != nil {
		log.Err(err).Str("userId", userID).Int("count", len(fields)).Msg("batch item creation failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, created, http.StatusCreated)
}

// updateItem handles PATCH /api/items/{id}.
func (h *Handler) updateItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var patch models.ItemUpdate
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	itemID := chi.URLParam(r, "id")
	updated, err := h.services.ItemService.UpdateItem(ctx, userID, itemID, patch)
	if err != nil {
		log.Err(err).Str("itemId", itemID).Msg("item update failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, updated, http.StatusOK)
}

// reviewItem handles POST /api/items/{id}/review: applies one review
// outcome through the scheduler and returns the rescheduled item.
func (h *Handler) reviewItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var req reviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	itemID := chi.URLParam(r, "id")
	reviewed, err := h.services.ItemService.ReviewItem(ctx, userID, itemID, req.Success)
	if err != nil {
		log.Err(err).Str("itemId", itemID).Msg("item review failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, reviewed, http.StatusOK)
}
