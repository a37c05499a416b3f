package tokenverify

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"regimen-tracker/internal/platform/httpclient"
	"regimen-tracker/internal/ports/auth"
)

var (
	ErrNotConfigured = errors.New("token verifier not configured")
	ErrTokenEmpty    = errors.New("token is empty")
	ErrUnauthorized  = errors.New("token rejected")
	ErrUpstream      = errors.New("token verifier upstream error")
)

const defaultAPIKeyHeader = "X-Api-Key"

// Config del verificador remoto. URL es el endpoint completo (AUTH_VERIFY_URL).
type Config struct {
	URL          string
	APIKey       string
	APIKeyHeader string // default X-Api-Key
	Timeout      time.Duration
}

// Verifier implementa auth.AuthVerifier contra un servicio de identidad por HTTP:
// POST {"token": "..."} => {"user_id", "email", "roles"}.
type Verifier struct {
	url          string
	apiKey       string
	apiKeyHeader string
	client       *httpclient.Client
}

func New(cfg Config, client *httpclient.Client) *Verifier {
	h := strings.TrimSpace(cfg.APIKeyHeader)
	if h == "" {
		h = defaultAPIKeyHeader
	}
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 5 * time.Second
		}
		client = httpclient.New(timeout)
	}
	return &Verifier{
		url:          strings.TrimSpace(cfg.URL),
		apiKey:       strings.TrimSpace(cfg.APIKey),
		apiKeyHeader: h,
		client:       client,
	}
}

func (v *Verifier) IsConfigured() bool {
	return v != nil && v.url != ""
}

type verifyRequest struct {
	Token string `json:"token"`
}

type verifyResponse struct {
	UserID string   `json:"user_id"`
	Email  string   `json:"email"`
	Roles  []string `json:"roles"`
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	if !v.IsConfigured() {
		return auth.Claims{}, ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	headers := map[string]string{"Authorization": "Bearer " + token}
	if v.apiKey != "" {
		headers[v.apiKeyHeader] = v.apiKey
	}

	var out verifyResponse
	err := v.client.DoJSON(ctx, http.MethodPost, v.url, headers, verifyRequest{Token: token}, &out)
	if err != nil {
		switch httpclient.StatusCode(err) {
		case http.StatusUnauthorized, http.StatusForbidden:
			return auth.Claims{}, ErrUnauthorized
		}
		return auth.Claims{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	userID := strings.TrimSpace(out.UserID)
	if userID == "" {
		return auth.Claims{}, fmt.Errorf("%w: response missing user_id", ErrUpstream)
	}
	return auth.Claims{
		UserID: userID,
		Email:  strings.TrimSpace(out.Email),
		Roles:  out.Roles,
	}, nil
}
