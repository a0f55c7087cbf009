package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/feliperosa-dev/storefront-api/models"
)

// AuthGateway talks to the auth microservice. It maps HTTP status codes
// onto the client error taxonomy; everything else surfaces as a wrapped
// transport error.
type AuthGateway struct {
	baseURL    string
	httpClient *http.Client
}

func NewAuthGateway(baseURL string) *AuthGateway {
	return &AuthGateway{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 20 * time.Second,
		},
	}
}

type authResponse struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

// Login exchanges credentials for a user record and a bearer token.
func (g *AuthGateway) Login(ctx context.Context, email, password string) (models.User, string, error) {
	body, _ := json.Marshal(map[string]string{"email": email, "password": password})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/auth/login", bytes.NewReader(body))
	if err != nil {
		return models.User{}, "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return models.User{}, "", fmt.Errorf("auth service unreachable: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized:
		return models.User{}, "", ErrInvalidCredentials
	case http.StatusBadRequest:
		return models.User{}, "", ErrValidation
	default:
		return models.User{}, "", fmt.Errorf("auth service: unexpected status %d", resp.StatusCode)
	}

	var out authResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return models.User{}, "", fmt.Errorf("invalid auth response: %w", err)
	}
	return out.User, out.Token, nil
}

// Register creates a credential. It does not log the new user in.
func (g *AuthGateway) Register(ctx context.Context, name, email, password, role string) (models.User, error) {
	body, _ := json.Marshal(map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
		"role":     role,
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/auth/register", bytes.NewReader(body))
	if err != nil {
		return models.User{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return models.User{}, fmt.Errorf("auth service unreachable: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusCreated:
	case http.StatusConflict:
		return models.User{}, ErrDuplicateEmail
	case http.StatusBadRequest:
		return models.User{}, ErrValidation
	default:
		return models.User{}, fmt.Errorf("auth service: unexpected status %d", resp.StatusCode)
	}

	var out struct {
		Message string      `json:"message"`
		User    models.User `json:"user"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return models.User{}, fmt.Errorf("invalid auth response: %w", err)
	}
	return out.User, nil
}

// Validate asks the auth service who a token belongs to. A rejected or
// garbled token comes back as ErrUnauthorized, never a panic.
func (g *AuthGateway) Validate(ctx context.Context, token string) (models.User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/auth/validate", nil)
	if err != nil {
		return models.User{}, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return models.User{}, fmt.Errorf("auth service unreachable: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized:
		return models.User{}, ErrUnauthorized
	default:
		return models.User{}, fmt.Errorf("auth service: unexpected status %d", resp.StatusCode)
	}

	var out struct {
		User models.User `json:"user"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return models.User{}, fmt.Errorf("invalid auth response: %w", err)
	}
	return out.User, nil
}
