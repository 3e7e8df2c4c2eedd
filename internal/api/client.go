// Package api is the client for the remote escrow API that backs the
// storefront. It covers the auth endpoints (login, register, verify,
// sellers) and transaction creation, and normalizes error responses into
// the server-provided message where one exists.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/devGospel/jetstores/internal/models"
)

// ErrNoRedirectURL marks a transaction that succeeded over HTTP but came
// back without a payment redirect. The flow treats this as a failure.
var ErrNoRedirectURL = errors.New("no redirect URL received from server")

// Error surfaces a non-2xx response from the escrow API.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("escrow api error: status=%d", e.StatusCode)
}

// Client is a client for the escrow API.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a new escrow API client.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
}

// AuthResponse is the token pair plus user returned by login and register.
type AuthResponse struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	User         models.User `json:"user"`
}

type verifyResponse struct {
	User models.User `json:"user"`
}

// errorBody is the message shape the escrow API uses for failures.
type errorBody struct {
	Message string `json:"message"`
}

// Login exchanges credentials for a token pair.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", "", loginRequest{Email: email, Password: password}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register creates an account and returns the same shape as Login.
func (c *Client) Register(ctx context.Context, email, password, phone, role string) (*AuthResponse, error) {
	req := registerRequest{Email: email, Password: password, Phone: phone, Role: role}
	var out AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", "", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Verify validates an access token and returns the user it belongs to.
func (c *Client) Verify(ctx context.Context, token string) (*models.User, error) {
	var out verifyResponse
	if err := c.do(ctx, http.MethodGet, "/auth/verify", token, nil, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// GetSellers fetches every seller visible to the authenticated user.
// Filtering to active sellers is the caller's concern.
func (c *Client) GetSellers(ctx context.Context, token string) ([]models.Seller, error) {
	var out []models.Seller
	if err := c.do(ctx, http.MethodGet, "/auth/sellers", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateTransaction submits a checkout request. A 2xx response missing
// redirect_url returns the result alongside ErrNoRedirectURL.
func (c *Client) CreateTransaction(ctx context.Context, token string, req models.TransactionRequest) (*models.TransactionResult, error) {
	var out models.TransactionResult
	if err := c.do(ctx, http.MethodPost, "/transactions/create", token, req, &out); err != nil {
		return nil, err
	}
	if out.RedirectURL == "" {
		return &out, ErrNoRedirectURL
	}
	return &out, nil
}

// do executes a JSON request against the escrow API. A non-empty token is
// sent as a bearer Authorization header.
func (c *Client) do(ctx context.Context, method, path, token string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp errorBody
		// The error body is best-effort; the status code is authoritative.
		_ = json.Unmarshal(bodyBytes, &errResp)
		return &Error{StatusCode: resp.StatusCode, Message: errResp.Message}
	}

	if out != nil {
		if err := json.Unmarshal(bodyBytes, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// ErrorMessage extracts the server-provided message from err, falling back
// to the given default for transport failures and unparsable bodies.
func ErrorMessage(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
