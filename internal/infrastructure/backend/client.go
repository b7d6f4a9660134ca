// Package backend implements the HTTP client for the student-management
// REST API, which remains the authority for credentials, tokens and the
// role catalogue. The gateway never re-implements any of it.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/studentms/portal-gateway/internal/core/domain"
)

const defaultTimeout = 10 * time.Second

// Client talks to the upstream student-management API.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

func NewClient(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

type signInRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Force    bool   `json:"force"`
}

// signInResponse tolerates every shape the backend is known to answer with:
// an MFA challenge, an already-logged-in conflict, or a token under either
// the token or accessToken key with roles in any representation.
type signInResponse struct {
	MFARequired     bool    `json:"mfaRequired"`
	TemporaryToken  string  `json:"temporaryToken"`
	AlreadyLoggedIn bool    `json:"alreadyLoggedIn"`
	Token           string  `json:"token"`
	AccessToken     string  `json:"accessToken"`
	ID              int64   `json:"id"`
	Username        string  `json:"username"`
	Email           string  `json:"email"`
	Roles           any     `json:"roles"`
	Role            any     `json:"role"`
	Avatar          *string `json:"avatar"`
	Message         string  `json:"message"`
}

// SignIn forwards credentials to POST /api/auth/signin.
func (c *Client) SignIn(ctx context.Context, in domain.SignInInput) (*domain.SignInResult, error) {
	payload := signInRequest{Username: in.Username, Password: in.Password, Force: in.Force}

	var body signInResponse
	status, err := c.postJSON(ctx, "/api/auth/signin", "", payload, &body)
	if err != nil {
		return nil, err
	}

	switch {
	case status == http.StatusUnauthorized:
		return nil, domain.ErrInvalidCredentials
	case status == http.StatusForbidden:
		if body.Message != "" {
			return nil, fmt.Errorf("%w: %s", domain.ErrForbidden, body.Message)
		}
		return nil, domain.ErrForbidden
	case status < 200 || status >= 300:
		return nil, fmt.Errorf("signin: unexpected status %d", status)
	}

	if body.MFARequired {
		username := body.Username
		if username == "" {
			username = in.Username
		}
		return &domain.SignInResult{MFARequired: true, TemporaryToken: body.TemporaryToken, Username: username}, nil
	}
	if body.AlreadyLoggedIn {
		return &domain.SignInResult{AlreadyLoggedIn: true}, nil
	}

	token := body.AccessToken
	if token == "" {
		token = body.Token
	}
	if token == "" {
		return nil, fmt.Errorf("signin: no token in response")
	}

	rawRoles := body.Roles
	if rawRoles == nil {
		rawRoles = body.Role
	}
	roles := domain.Normalize(rawRoles)
	if len(roles) == 0 {
		roles = domain.RoleSet{domain.RoleUser}
	}

	return &domain.SignInResult{
		Session: &domain.Session{
			ID:       body.ID,
			Username: body.Username,
			Email:    body.Email,
			Roles:    roles,
			Token:    token,
			Avatar:   body.Avatar,
		},
	}, nil
}

// SignOut notifies POST /api/auth/logout with the bearer token. Callers
// treat failure as non-fatal; the local session is already gone.
func (c *Client) SignOut(ctx context.Context, token string) error {
	status, err := c.postJSON(ctx, "/api/auth/logout", token, struct{}{}, nil)
	if err != nil {
		return err
	}
	if status < 200 || status >= 300 {
		return fmt.Errorf("logout: unexpected status %d", status)
	}
	return nil
}

// Roles lists the role catalogue from GET /api/roles.
func (c *Client) Roles(ctx context.Context) (domain.RoleSet, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/roles", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("roles: unexpected status %d", resp.StatusCode)
	}

	var raw any
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("roles: decode: %w", err)
	}
	return domain.Normalize(raw), nil
}

func (c *Client) postJSON(ctx context.Context, path, token string, payload, out any) (int, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	if out != nil {
		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return resp.StatusCode, fmt.Errorf("read response: %w", err)
		}
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, out); err != nil && resp.StatusCode >= 200 && resp.StatusCode < 300 {
				return resp.StatusCode, fmt.Errorf("decode response: %w", err)
			}
		}
	}
	return resp.StatusCode, nil
}
