package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/asig/closed-loop/internal/logger"
	"github.com/asig/closed-loop/internal/utils"
	"github.com/asig/closed-loop/models"
)

// listCollections handles GET /api/collections.
func (h *Handler) listCollections(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	collections, err := h.services.CollectionService.ListCollections(ctx, userID)
	if err != nil {
		log.Err(err).Str("userId", userID).Msg("listing collections failed")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	utils.WriteJSON(w, collections, http.StatusOK)
}

// createCollection handles POST /api/collections.
func (h *Handler) createCollection(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var collection models.Collection
	if err := json.NewDecoder(r.Body).Decode(&collection); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	created, err := h.services.CollectionService.CreateCollection(ctx, userID, collection)
	if err != nil {
		log.Err(err).Str("userId", userID).Msg("collection creation failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, created, http.StatusCreated)
}

// deleteCollection handles DELETE /api/collections/{id}. Deleting a
// collection cascades to every item it contains.
func (h *Handler) deleteCollection(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	collectionID := chi.URLParam(r, "id")
	if err := h.services.CollectionService.DeleteCollection(ctx, userID, collectionID); err != nil {
		log.Err(err).Str("collectionId", collectionID).Msg("collection deletion failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// listItems handles GET /api/collections/{id}/items.
func (h *Handler) listItems(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	collectionID := chi.URLParam(r, "id")
	items, err := h.services.ItemService.ListItems(ctx, userID, collectionID)
	if err != nil {
		log.Err(err).Str("collectionId", collectionID).Msg("listing items failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, items, http.StatusOK)
}
