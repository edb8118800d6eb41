package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/asig/closed-loop/internal/config"
	"github.com/asig/closed-loop/internal/logger"
	"github.com/asig/closed-loop/internal/service"
	"github.com/asig/closed-loop/internal/store"
	"github.com/asig/closed-loop/internal/utils"
	"github.com/asig/closed-loop/models"
)

var handlerTestInstant = time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

// newTestServer wires the full stack over an in-memory store: repositories,
// local verifier, services, handler, router.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	log := logger.Nop()

	s, err := store.NewFileStore("", log)
	require.NoError(t, err)

	clock := utils.FixedClock{Time: handlerTestInstant}
	repos := store.NewRepositories(s, utils.NewUUIDGenerator(), clock, log)
	verifier := service.NewLocalVerifier(repos.Users, log)

	services := service.NewServices(repos, verifier, config.App{
		TokenSignKey:  "test-sign-key",
		TokenIssuer:   "closed-loop-test",
		TokenDuration: time.Hour,
	}, clock, log)

	srv := httptest.NewServer(NewHandler(services, log).Init())
	t.Cleanup(srv.Close)

	return srv
}

// doJSON issues a request with an optional JSON body and bearer token and
// decodes the JSON response into out (when out is non-nil).
func doJSON(t *testing.T, srv *httptest.Server, method, path, token string, body, out any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, srv.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}

	return resp
}

// registerUser registers a fresh account and returns its identity together
// with the bearer token issued in the Authorization header.
func registerUser(t *testing.T, srv *httptest.Server, email string) (models.AuthPayload, string) {
	t.Helper()

	var envelope models.AuthResponse
	resp := doJSON(t, srv, http.MethodPost, "/auth/register", "",
		models.Credentials{Email: email, Secret: "s3cret"}, &envelope)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.True(t, envelope.OK())
	require.NotNil(t, envelope.Data)

	token, err := utils.ParseBearerToken(resp.Header.Get("Authorization"))
	require.NoError(t, err)

	return *envelope.Data, token
}

// firstCollections fetches the user's collections, failing the test on error.
func firstCollections(t *testing.T, srv *httptest.Server, token string) []models.Collection {
	t.Helper()

	var collections []models.Collection
	resp := doJSON(t, srv, http.MethodGet, "/api/collections", token, nil, &collections)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	return collections
}
