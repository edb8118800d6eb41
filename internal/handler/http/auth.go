package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/asig/closed-loop/internal/logger"
	"github.com/asig/closed-loop/internal/utils"
	"github.com/asig/closed-loop/models"
)

// register handles POST /auth/register. The response follows the auth
// envelope contract: {code, message, data:{id, email}}, with code 200 on
// success and the HTTP status mirroring the code. On success a signed JWT
// is additionally issued in the Authorization header.
func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var creds models.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeAuthEnvelope(w, http.StatusBadRequest, "Invalid JSON was passed", nil)
		return
	}

	user, err := h.services.AuthService.Register(ctx, creds)
	if err != nil {
		status := statusFromError(err)
		log.Err(err).Str("email", creds.Email).Msg("user registration failed")
		writeAuthEnvelope(w, status, registrationMessage(status), nil)
		return
	}

	h.issueToken(w, r, user)
	writeAuthEnvelope(w, http.StatusOK, "registered", &models.AuthPayload{ID: user.ID, Email: user.Email})
}

// login handles POST /auth/login with the same envelope contract as register.
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var creds models.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeAuthEnvelope(w, http.StatusBadRequest, "Invalid JSON was passed", nil)
		return
	}

	user, err := h.services.AuthService.Login(ctx, creds)
	if err != nil {
		status := statusFromError(err)
		log.Err(err).Str("email", creds.Email).Msg("user login failed")
		writeAuthEnvelope(w, status, loginMessage(status), nil)
		return
	}

	log.Debug().Str("id", user.ID).Msg("user successfully logged in")

	h.issueToken(w, r, user)
	writeAuthEnvelope(w, http.StatusOK, "logged in", &models.AuthPayload{ID: user.ID, Email: user.Email})
}

// issueToken signs a JWT for the user and attaches it to the Authorization
// response header. Token creation failure is logged but does not fail the
// request; the envelope already vouches for the identity.
func (h *Handler) issueToken(w http.ResponseWriter, r *http.Request, user models.User) {
	token, err := h.services.AuthService.CreateToken(r.Context(), user)
	if err != nil {
		logger.FromRequest(r).Err(err).Str("id", user.ID).Msg("creation of token failed")
		return
	}

	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", token.SignedString))
}

func writeAuthEnvelope(w http.ResponseWriter, code int, message string, data *models.AuthPayload) {
	utils.WriteJSON(w, models.AuthResponse{Code: code, Message: message, Data: data}, code)
}

func registrationMessage(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "invalid data provided"
	case http.StatusConflict:
		return "email already exists"
	default:
		return http.StatusText(status)
	}
}

func loginMessage(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "invalid data provided"
	case http.StatusUnauthorized:
		return "invalid email/secret"
	default:
		return http.StatusText(status)
	}
}
