package http

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asig/closed-loop/models"
)

func TestItemEndpoints(t *testing.T) {
	srv := newTestServer(t)
	_, token := registerUser(t, srv, "ada@example.com")
	collections := firstCollections(t, srv, token)
	vocab := collections[0]

	t.Run("create initializes scheduling state", func(t *testing.T) {
		var created models.ReviewItem
		resp := doJSON(t, srv, http.MethodPost, "/api/items", token, models.NewItem{
			CollectionID: vocab.ID,
			Title:        "ephemeral",
			Content:      "lasting for a very short time",
		}, &created)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.Equal(t, models.StatusNew, created.Status)
		assert.Zero(t, created.ReviewCount)
		assert.Equal(t, handlerTestInstant.UnixMilli(), created.NextReviewAt)
	})

	t.Run("batch create", func(t *testing.T) {
		var created []models.ReviewItem
		resp := doJSON(t, srv, http.MethodPost, "/api/items/batch", token, []models.NewItem{
			{CollectionID: vocab.ID, Title: "ubiquitous"},
			{CollectionID: vocab.ID, Title: "tenacious"},
		}, &created)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.Len(t, created, 2)
	})

	t.Run("empty batch is rejected", func(t *testing.T) {
		resp := doJSON(t, srv, http.MethodPost, "/api/items/batch", token, []models.NewItem{}, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("patch edits content fields only", func(t *testing.T) {
		var created models.ReviewItem
		resp := doJSON(t, srv, http.MethodPost, "/api/items", token, models.NewItem{
			CollectionID: vocab.ID,
			Title:        "draft",
		}, &created)
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		content := "now with an answer"
		var updated models.ReviewItem
		resp = doJSON(t, srv, http.MethodPatch, "/api/items/"+created.ID, token,
			models.ItemUpdate{Content: &content}, &updated)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, content, updated.Content)
		assert.Equal(t, created.Status, updated.Status)
		assert.Equal(t, created.NextReviewAt, updated.NextReviewAt)
	})

	t.Run("dangling collection reference yields 404", func(t *testing.T) {
		resp := doJSON(t, srv, http.MethodPost, "/api/items", token, models.NewItem{
			CollectionID: "missing",
			Title:        "orphan",
		}, nil)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestReviewEndpoint(t *testing.T) {
	srv := newTestServer(t)
	_, token := registerUser(t, srv, "ada@example.com")
	collections := firstCollections(t, srv, token)

	var item models.ReviewItem
	resp := doJSON(t, srv, http.MethodPost, "/api/items", token, models.NewItem{
		CollectionID: collections[0].ID,
		Title:        "ephemeral",
	}, &item)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	review := func(success bool) models.ReviewItem {
		var reviewed models.ReviewItem
		resp := doJSON(t, srv, http.MethodPost, "/api/items/"+item.ID+"/review", token,
			reviewRequest{Success: success}, &reviewed)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		return reviewed
	}

	day := 24 * time.Hour

	reviewed := review(true)
	assert.Equal(t, 1, reviewed.ReviewCount)
	assert.Equal(t, models.StatusLearning, reviewed.Status)
	assert.Equal(t, handlerTestInstant.Add(1*day).UnixMilli(), reviewed.NextReviewAt)

	reviewed = review(true)
	assert.Equal(t, 2, reviewed.ReviewCount)
	assert.Equal(t, models.StatusLearning, reviewed.Status)
	assert.Equal(t, handlerTestInstant.Add(2*day).UnixMilli(), reviewed.NextReviewAt)

	reviewed = review(true)
	assert.Equal(t, 3, reviewed.ReviewCount)
	assert.Equal(t, models.StatusMastered, reviewed.Status)
	assert.Equal(t, handlerTestInstant.Add(4*day).UnixMilli(), reviewed.NextReviewAt)

	reviewed = review(false)
	assert.Zero(t, reviewed.ReviewCount)
	assert.Equal(t, models.StatusLearning, reviewed.Status)
	assert.Equal(t, handlerTestInstant.UnixMilli(), reviewed.NextReviewAt)

	t.Run("missing item yields 404", func(t *testing.T) {
		resp := doJSON(t, srv, http.MethodPost, "/api/items/missing/review", token,
			reviewRequest{Success: true}, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}
