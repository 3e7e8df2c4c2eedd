// Package session owns the per-browser auth state: the current user, the
// token pair, and the seller directory scoped to it. In-memory state is
// the source of truth for a running server; the durable key-value store
// lets a returning browser be re-verified after a restart instead of
// logging in again.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/devGospel/jetstores/internal/api"
	"github.com/devGospel/jetstores/internal/models"
	"github.com/devGospel/jetstores/internal/store"
)

// ErrNotAuthenticated short-circuits operations that need an access token
// before any network call is made.
var ErrNotAuthenticated = errors.New("authentication required to fetch sellers")

// API is the slice of the escrow client the manager depends on.
type API interface {
	Login(ctx context.Context, email, password string) (*api.AuthResponse, error)
	Register(ctx context.Context, email, password, phone, role string) (*api.AuthResponse, error)
	Verify(ctx context.Context, token string) (*models.User, error)
	GetSellers(ctx context.Context, token string) ([]models.Seller, error)
}

// Session is the auth state visible to handlers and templates.
type Session struct {
	User            *models.User
	AccessToken     string
	RefreshToken    string
	IsAuthenticated bool
}

// SellerState carries the seller directory plus its loading/error fields.
// All three are replaced together on every fetch.
type SellerState struct {
	Sellers []models.Seller
	Loading bool
	Err     string
}

type state struct {
	session  Session
	sellers  SellerState
	restored bool
}

// Manager coordinates auth state for every browser session the server has
// seen since it started.
type Manager struct {
	api   API
	store *store.Store

	mu       sync.Mutex
	sessions map[string]*state
}

func NewManager(apiClient API, st *store.Store) *Manager {
	return &Manager{
		api:      apiClient,
		store:    st,
		sessions: make(map[string]*state),
	}
}

func (m *Manager) get(sessionID string) *state {
	st, ok := m.sessions[sessionID]
	if !ok {
		st = &state{}
		m.sessions[sessionID] = st
	}
	return st
}

// Current returns the session for a browser, restoring it from the durable
// store on first sight. Restoration verifies the cached token against the
// API once; any failure clears the durable keys and leaves the session
// unauthenticated.
func (m *Manager) Current(ctx context.Context, sessionID string) Session {
	m.mu.Lock()
	st := m.get(sessionID)
	if st.restored {
		defer m.mu.Unlock()
		return st.session
	}
	st.restored = true
	m.mu.Unlock()

	token, err := m.store.GetSessionValue(sessionID, store.KeyAccessToken)
	if err != nil {
		slog.Error("Failed to read cached access token", "error", err)
		return Session{}
	}
	if token == "" {
		return Session{}
	}

	if tokenExpired(token) {
		slog.Info("Cached access token expired, clearing session", "session_id", sessionID)
		m.clearDurable(sessionID)
		return Session{}
	}

	user, err := m.api.Verify(ctx, token)
	if err != nil {
		slog.Info("Token verification failed, clearing session", "session_id", sessionID, "error", err)
		m.clearDurable(sessionID)
		return Session{}
	}

	// Prefer the cached user snapshot; fall back to the verify response.
	if cached, err := m.store.GetSessionValue(sessionID, store.KeyUser); err == nil && cached != "" {
		var u models.User
		if json.Unmarshal([]byte(cached), &u) == nil {
			user = &u
		}
	}
	refresh, _ := m.store.GetSessionValue(sessionID, store.KeyRefreshToken)

	sess := Session{
		User:            user,
		AccessToken:     token,
		RefreshToken:    refresh,
		IsAuthenticated: true,
	}
	m.mu.Lock()
	m.get(sessionID).session = sess
	m.mu.Unlock()
	return sess
}

// Login exchanges credentials for a session. The returned message is the
// server's error text (or a fallback) when ok is false.
func (m *Manager) Login(ctx context.Context, sessionID, email, password string) (ok bool, message string) {
	resp, err := m.api.Login(ctx, email, password)
	if err != nil {
		return false, api.ErrorMessage(err, "Login failed")
	}
	m.establish(sessionID, resp)
	return true, ""
}

// Register mirrors Login, additionally supplying phone and role.
func (m *Manager) Register(ctx context.Context, sessionID, email, password, phone, role string) (ok bool, message string) {
	if role == "" {
		role = "buyer"
	}
	resp, err := m.api.Register(ctx, email, password, phone, role)
	if err != nil {
		return false, api.ErrorMessage(err, "Registration failed")
	}
	m.establish(sessionID, resp)
	return true, ""
}

func (m *Manager) establish(sessionID string, resp *api.AuthResponse) {
	user := resp.User
	sess := Session{
		User:            &user,
		AccessToken:     resp.AccessToken,
		RefreshToken:    resp.RefreshToken,
		IsAuthenticated: true,
	}

	m.mu.Lock()
	st := m.get(sessionID)
	st.session = sess
	st.sellers = SellerState{}
	st.restored = true
	m.mu.Unlock()

	userJSON, err := json.Marshal(resp.User)
	if err != nil {
		slog.Error("Failed to serialize user for session cache", "error", err)
		userJSON = []byte("{}")
	}
	if err := m.store.SetSessionValues(sessionID, map[string]string{
		store.KeyAccessToken:  resp.AccessToken,
		store.KeyRefreshToken: resp.RefreshToken,
		store.KeyUser:         string(userJSON),
	}); err != nil {
		slog.Error("Failed to persist session", "session_id", sessionID, "error", err)
	}
}

// Logout clears in-memory and durable state. No network call is made.
func (m *Manager) Logout(sessionID string) {
	m.mu.Lock()
	st := m.get(sessionID)
	st.session = Session{}
	st.sellers = SellerState{}
	st.restored = true
	m.mu.Unlock()

	m.clearDurable(sessionID)
}

func (m *Manager) clearDurable(sessionID string) {
	if err := m.store.ClearSession(sessionID); err != nil {
		slog.Error("Failed to clear session storage", "session_id", sessionID, "error", err)
	}
}

// GetAllSellers fetches the active sellers for an authenticated session.
// Starting a fetch clears prior data so a reload never shows stale sellers.
// Without a token it fails locally and no request goes out.
func (m *Manager) GetAllSellers(ctx context.Context, sessionID string) ([]models.Seller, error) {
	sess := m.Current(ctx, sessionID)

	m.mu.Lock()
	st := m.get(sessionID)
	st.sellers = SellerState{Loading: true}
	m.mu.Unlock()

	if sess.AccessToken == "" {
		m.setSellers(sessionID, SellerState{Err: ErrNotAuthenticated.Error()})
		return nil, ErrNotAuthenticated
	}

	sellers, err := m.api.GetSellers(ctx, sess.AccessToken)
	if err != nil {
		msg := api.ErrorMessage(err, "Failed to fetch sellers")
		m.setSellers(sessionID, SellerState{Err: msg})
		return nil, err
	}

	active := make([]models.Seller, 0, len(sellers))
	for _, s := range sellers {
		if s.IsActive {
			active = append(active, s)
		}
	}
	m.setSellers(sessionID, SellerState{Sellers: active})
	return active, nil
}

func (m *Manager) setSellers(sessionID string, s SellerState) {
	m.mu.Lock()
	m.get(sessionID).sellers = s
	m.mu.Unlock()
}

// Sellers returns the last seller fetch outcome for rendering.
func (m *Manager) Sellers(sessionID string) SellerState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.get(sessionID).sellers
}

// tokenExpired reports whether the JWT's exp claim is in the past. The
// signature is not checked here; the API remains the authority and is
// still consulted for non-expired tokens.
func tokenExpired(token string) bool {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return false // not a JWT; let the API decide
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
