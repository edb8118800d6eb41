package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthMiddleware(t *testing.T) {
	srv := newTestServer(t)
	_, token := registerUser(t, srv, "ada@example.com")

	get := func(authorization string) *http.Response {
		req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/collections", nil)
		require.NoError(t, err)
		if authorization != "" {
			req.Header.Set("Authorization", authorization)
		}

		resp, err := srv.Client().Do(req)
		require.NoError(t, err)
		t.Cleanup(func() { resp.Body.Close() })

		return resp
	}

	t.Run("missing header", func(t *testing.T) {
		resp := get("")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("header without token", func(t *testing.T) {
		resp := get("Bearer")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("empty token", func(t *testing.T) {
		resp := get("Bearer ")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("garbage token", func(t *testing.T) {
		resp := get("Bearer not.a.token")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("valid token reaches the handler", func(t *testing.T) {
		resp := get("Bearer " + token)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("trace id is echoed back", func(t *testing.T) {
		resp := get("Bearer " + token)
		assert.NotEmpty(t, resp.Header.Get("X-Trace-ID"))
	})
}
