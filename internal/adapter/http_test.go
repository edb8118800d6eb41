package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asig/closed-loop/internal/config"
	"github.com/asig/closed-loop/internal/logger"
	"github.com/asig/closed-loop/models"
)

func newTestGateway(t *testing.T, handler http.HandlerFunc) AuthGateway {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	gw, err := NewHTTPAuthGateway(config.Adapter{
		BaseURL:        srv.URL,
		RequestTimeout: time.Second,
	}, logger.Nop())
	require.NoError(t, err)

	return gw
}

func TestNewHTTPAuthGateway_BaseURLValidation(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		wantErr bool
	}{
		{name: "full url", baseURL: "http://auth.example.com:8080"},
		{name: "bare host gets a scheme", baseURL: "auth.example.com:8080"},
		{name: "empty address", baseURL: "", wantErr: true},
		{name: "scheme without host", baseURL: "http://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewHTTPAuthGateway(config.Adapter{BaseURL: tt.baseURL}, logger.Nop())
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestHTTPAuthGateway_Register(t *testing.T) {
	gw := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/register", r.URL.Path)

		var creds models.Credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "ada@example.com", creds.Email)
		assert.Equal(t, "s3cret", creds.Secret)

		json.NewEncoder(w).Encode(models.AuthResponse{
			Code: http.StatusOK,
			Data: &models.AuthPayload{ID: "remote-1", Email: creds.Email},
		})
	})

	identity, err := gw.Register(context.Background(), models.Credentials{Email: "ada@example.com", Secret: "s3cret"})
	require.NoError(t, err)
	assert.Equal(t, "remote-1", identity.ID)
	assert.Equal(t, "ada@example.com", identity.Email)
}

func TestHTTPAuthGateway_Login(t *testing.T) {
	gw := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/login", r.URL.Path)

		json.NewEncoder(w).Encode(models.AuthResponse{
			Code: http.StatusOK,
			Data: &models.AuthPayload{ID: "remote-1", Email: "ada@example.com"},
		})
	})

	identity, err := gw.Login(context.Background(), models.Credentials{Email: "ada@example.com", Secret: "s3cret"})
	require.NoError(t, err)
	assert.Equal(t, "remote-1", identity.ID)
}

func TestHTTPAuthGateway_EnvelopeFailures(t *testing.T) {
	tests := []struct {
		name     string
		envelope models.AuthResponse
		wantErr  error
	}{
		{
			name:     "rejected credentials",
			envelope: models.AuthResponse{Code: http.StatusUnauthorized, Message: "invalid credentials"},
			wantErr:  ErrUnauthorized,
		},
		{
			name:     "duplicate email",
			envelope: models.AuthResponse{Code: http.StatusConflict, Message: "email taken"},
			wantErr:  ErrConflict,
		},
		{
			name:     "other application failure",
			envelope: models.AuthResponse{Code: http.StatusInternalServerError, Message: "boom"},
			wantErr:  ErrRemoteFailure,
		},
		{
			name:     "success without identity",
			envelope: models.AuthResponse{Code: http.StatusOK},
			wantErr:  ErrBadResponse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(tt.envelope)
			})

			_, err := gw.Login(context.Background(), models.Credentials{Email: "ada@example.com", Secret: "x"})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestHTTPAuthGateway_UndecodableBody(t *testing.T) {
	gw := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	})

	_, err := gw.Login(context.Background(), models.Credentials{Email: "ada@example.com", Secret: "x"})
	assert.ErrorIs(t, err, ErrBadResponse)
}
