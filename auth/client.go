// Package auth talks to the external account service and carries the
// resulting identity through the rest of the system as an explicit
// Session value. Nothing here holds process-wide state.
package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/podiumlabs/arena/logger"
	"github.com/podiumlabs/arena/types"
)

// authTokenHeader carries the bearer token on authenticated calls.
const authTokenHeader = "x-auth-token"

// APIError is a rejection from the account service. Message and
// MessageCN are passed through verbatim so the client can show the
// service's own wording.
type APIError struct {
	StatusCode int    `json:"-"`
	Message    string `json:"message"`
	MessageCN  string `json:"message_cn"`
}

// Error prefers the localized message when present.
func (e *APIError) Error() string {
	if e.MessageCN != "" {
		return e.MessageCN
	}
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("account service returned status %d", e.StatusCode)
}

// RegisterRequest is the payload for account creation.
type RegisterRequest struct {
	DisplayName  string `json:"displayName"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	PasswordConf string `json:"passwordConf"`
	Phone        string `json:"phone,omitempty"`
}

// LoginRequest is the payload for sign-in.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// authResponse is the success body shared by register and login.
type authResponse struct {
	Token string     `json:"token"`
	User  types.User `json:"user"`
}

// Client calls the account service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

// NewClient creates an account service client rooted at baseURL, which
// should include the API path prefix (for example
// "https://accounts.example.com/api").
func NewClient(baseURL string, opts ...ClientOption) *Client {
	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

func (c *Client) post(ctx context.Context, path, token string, payload any) (*authResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(authTokenHeader, token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("account service request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if err := json.NewDecoder(resp.Body).Decode(apiErr); err != nil {
			logger.DebugContext(ctx, "undecodable account service error body",
				"path", path, "status", resp.StatusCode)
		}
		return nil, apiErr
	}

	var out authResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &out, nil
}

// Register creates a new account and returns the authenticated session.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*Session, error) {
	resp, err := c.post(ctx, "/users", "", req)
	if err != nil {
		return nil, err
	}
	return &Session{Token: resp.Token, User: resp.User}, nil
}

// Login signs in an existing account and returns the session.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*Session, error) {
	resp, err := c.post(ctx, "/users/signin", "", req)
	if err != nil {
		return nil, err
	}
	return &Session{Token: resp.Token, User: resp.User}, nil
}

// Logout invalidates the session's token on the service. Failures are
// logged and swallowed; the caller drops the session locally either way.
func (c *Client) Logout(ctx context.Context, sess *Session) {
	if sess == nil || sess.Token == "" {
		return
	}
	if _, err := c.post(ctx, "/users/logout", sess.Token, struct{}{}); err != nil {
		logger.WarnContext(ctx, "logout request failed", "error", err)
	}
}
