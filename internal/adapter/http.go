package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/asig/closed-loop/internal/config"
	"github.com/asig/closed-loop/internal/logger"
	"github.com/asig/closed-loop/internal/utils"
	"github.com/asig/closed-loop/models"
)

type httpAuthGateway struct {
	client *utils.HTTPClient
	logger *logger.Logger
}

// NewHTTPAuthGateway constructs an HTTP/REST implementation of [AuthGateway].
// It normalises and validates the base URL from cfg.BaseURL and configures
// the underlying HTTP client with the resolved base URL and request timeout.
//
// Returns an error if cfg.BaseURL is empty or cannot be parsed as a valid URL.
func NewHTTPAuthGateway(cfg config.Adapter, log *logger.Logger) (AuthGateway, error) {
	baseURL, err := normalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid remote auth base url: %w", err)
	}

	client := utils.NewHTTPClient()
	client.
		SetBaseURL(baseURL).
		SetTimeout(cfg.RequestTimeout)

	return &httpAuthGateway{client: client, logger: log}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// Register implements [AuthGateway]. It POSTs the credentials to
// POST /auth/register and decodes the {code, message, data} envelope.
func (g *httpAuthGateway) Register(ctx context.Context, creds models.Credentials) (models.AuthPayload, error) {
	return g.post(ctx, "/auth/register", creds)
}

// Login implements [AuthGateway]. It POSTs the credentials to
// POST /auth/login and decodes the {code, message, data} envelope.
func (g *httpAuthGateway) Login(ctx context.Context, creds models.Credentials) (models.AuthPayload, error) {
	return g.post(ctx, "/auth/login", creds)
}

func (g *httpAuthGateway) post(ctx context.Context, path string, creds models.Credentials) (models.AuthPayload, error) {
	resp, err := g.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(creds).
		Post(path)
	if err != nil {
		return models.AuthPayload{}, fmt.Errorf("%w: %w", ErrRemoteFailure, err)
	}

	var envelope models.AuthResponse
	if err = json.Unmarshal(resp.Body(), &envelope); err != nil {
		g.logger.Warn().Err(err).Str("path", path).Msg("undecodable remote auth response")
		return models.AuthPayload{}, fmt.Errorf("%w: %w", ErrBadResponse, err)
	}

	if err = mapEnvelope(envelope); err != nil {
		return models.AuthPayload{}, err
	}

	if envelope.Data == nil {
		return models.AuthPayload{}, fmt.Errorf("%w: success envelope without identity", ErrBadResponse)
	}

	return *envelope.Data, nil
}

// mapEnvelope translates the application-level code of the response envelope
// into the package sentinels. Code 200 is success; everything else is a
// failure carrying the remote message.
func mapEnvelope(envelope models.AuthResponse) error {
	if envelope.OK() {
		return nil
	}

	switch envelope.Code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrUnauthorized, envelope.Message)
	case http.StatusConflict:
		return fmt.Errorf("%w: %s", ErrConflict, envelope.Message)
	default:
		return fmt.Errorf("%w: code %d: %s", ErrRemoteFailure, envelope.Code, envelope.Message)
	}
}
