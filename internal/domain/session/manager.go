// internal/domain/session/manager.go
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-client/internal/infrastructure/portal"
	"github.com/your-org/storefront-client/internal/infrastructure/storage"
	"github.com/your-org/storefront-client/internal/pkg/apperrors"
)

// State represents the authentication state of a device session
type State string

const (
	StateUnauthenticated State = "unauthenticated"
	StateAuthenticating  State = "authenticating"
	StateAuthenticated   State = "authenticated"
)

// Persistent store key tails, one namespace per device
const (
	keyUserToken     = "userToken"
	keyUserData      = "userData"
	keySavedEmail    = "savedEmail"
	keySavedPassword = "savedPassword"
)

// Authenticator is the slice of the portal client the session manager needs
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*portal.LoginResult, error)
}

// Manager handles credential lifecycle per device: login against the portal,
// token and profile persistence, remember-me credentials.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*sessionState
	store    storage.KeyValue
	auth     Authenticator
	logger   *logrus.Logger
}

type sessionState struct {
	state   State
	token   string
	profile *portal.Profile
}

// NewManager creates a new session manager
func NewManager(store storage.KeyValue, auth Authenticator, logger *logrus.Logger) *Manager {
	return &Manager{
		sessions: make(map[string]*sessionState),
		store:    store,
		auth:     auth,
		logger:   logger,
	}
}

func storeKey(deviceID, tail string) string {
	return fmt.Sprintf("session:%s:%s", deviceID, tail)
}

// Login authenticates the device against the portal. On success the token and
// profile are persisted, and the raw credentials too when remember is set. On
// any failure the prior session state is left untouched.
func (m *Manager) Login(ctx context.Context, deviceID, email, password string, remember bool) (*portal.Profile, error) {
	if email == "" || password == "" {
		return nil, apperrors.Wrap(apperrors.ErrAuthenticationFailed, "email and password are required")
	}

	m.mu.Lock()
	prior := m.sessions[deviceID]
	m.sessions[deviceID] = &sessionState{state: StateAuthenticating}
	m.mu.Unlock()

	restore := func() {
		m.mu.Lock()
		if prior != nil {
			m.sessions[deviceID] = prior
		} else {
			delete(m.sessions, deviceID)
		}
		m.mu.Unlock()
	}

	result, err := m.auth.Login(ctx, email, password)
	if err != nil {
		restore()
		return nil, err
	}

	// Persist the token first; without it the session is useless across restarts
	if err := m.store.Set(ctx, storeKey(deviceID, keyUserToken), result.Token); err != nil {
		restore()
		return nil, apperrors.Wrap(apperrors.ErrServer, "failed to persist session token: %v", err)
	}

	// Profile and remember-me writes are best effort. There is no multi-key
	// transaction here: a crash between writes leaves the store inconsistent
	// and nothing compensates for that.
	if result.Profile != nil {
		data, err := json.Marshal(result.Profile)
		if err == nil {
			err = m.store.Set(ctx, storeKey(deviceID, keyUserData), string(data))
		}
		if err != nil {
			m.logger.WithError(err).Warn("Failed to persist user profile")
		}
	}

	if remember {
		if err := m.store.Set(ctx, storeKey(deviceID, keySavedEmail), email); err != nil {
			m.logger.WithError(err).Warn("Failed to persist saved email")
		}
		if err := m.store.Set(ctx, storeKey(deviceID, keySavedPassword), password); err != nil {
			m.logger.WithError(err).Warn("Failed to persist saved password")
		}
	} else {
		_ = m.store.Remove(ctx, storeKey(deviceID, keySavedEmail))
		_ = m.store.Remove(ctx, storeKey(deviceID, keySavedPassword))
	}

	m.mu.Lock()
	m.sessions[deviceID] = &sessionState{
		state:   StateAuthenticated,
		token:   result.Token,
		profile: result.Profile,
	}
	m.mu.Unlock()

	m.logger.WithField("device_id", deviceID).Info("Device session authenticated")

	return result.Profile, nil
}

// Logout removes the persisted token and profile and transitions the device
// to unauthenticated. Saved remember-me credentials survive logout.
func (m *Manager) Logout(ctx context.Context, deviceID string) error {
	if err := m.store.Remove(ctx, storeKey(deviceID, keyUserToken)); err != nil {
		return fmt.Errorf("failed to remove session token: %w", err)
	}
	if err := m.store.Remove(ctx, storeKey(deviceID, keyUserData)); err != nil {
		m.logger.WithError(err).Warn("Failed to remove persisted profile")
	}

	m.mu.Lock()
	delete(m.sessions, deviceID)
	m.mu.Unlock()

	m.logger.WithField("device_id", deviceID).Info("Device session logged out")
	return nil
}

// Invalidate drops the session after the portal rejected its token. An
// invalid or expired token is simply unauthenticated; there is no separate
// expired state.
func (m *Manager) Invalidate(ctx context.Context, deviceID string) {
	if err := m.Logout(ctx, deviceID); err != nil {
		m.logger.WithError(err).Warn("Failed to invalidate session")
	}
}

// IsAuthenticated reports whether the device holds a non-empty token, in
// memory or loadable from the persistent store
func (m *Manager) IsAuthenticated(ctx context.Context, deviceID string) bool {
	token, err := m.Token(ctx, deviceID)
	return err == nil && token != ""
}

// Token returns the bearer token for the device, restoring it from the
// persistent store when the in-memory session is cold
func (m *Manager) Token(ctx context.Context, deviceID string) (string, error) {
	m.mu.Lock()
	if state, ok := m.sessions[deviceID]; ok && state.token != "" {
		token := state.token
		m.mu.Unlock()
		return token, nil
	}
	m.mu.Unlock()

	token, err := m.store.Get(ctx, storeKey(deviceID, keyUserToken))
	if errors.Is(err, storage.ErrNotFound) || token == "" {
		return "", apperrors.Wrap(apperrors.ErrAuthenticationRequired, "no session for this device")
	}
	if err != nil {
		return "", fmt.Errorf("failed to load session token: %w", err)
	}

	m.mu.Lock()
	m.sessions[deviceID] = &sessionState{
		state: StateAuthenticated,
		token: token,
	}
	m.mu.Unlock()

	return token, nil
}

// Profile returns the cached user profile, loading it from the persistent
// store when needed
func (m *Manager) Profile(ctx context.Context, deviceID string) (*portal.Profile, error) {
	m.mu.Lock()
	if state, ok := m.sessions[deviceID]; ok && state.profile != nil {
		profile := state.profile
		m.mu.Unlock()
		return profile, nil
	}
	m.mu.Unlock()

	data, err := m.store.Get(ctx, storeKey(deviceID, keyUserData))
	if errors.Is(err, storage.ErrNotFound) {
		return nil, apperrors.Wrap(apperrors.ErrAuthenticationRequired, "no profile for this device")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	var profile portal.Profile
	if err := json.Unmarshal([]byte(data), &profile); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrServer, "stored profile is corrupt: %v", err)
	}

	m.mu.Lock()
	if state, ok := m.sessions[deviceID]; ok {
		state.profile = &profile
	} else {
		m.sessions[deviceID] = &sessionState{state: StateAuthenticated, profile: &profile}
	}
	m.mu.Unlock()

	return &profile, nil
}

// SavedCredentials returns the remembered email and password for pre-filling
// a login form. Nothing is submitted on the caller's behalf. Both values are
// empty when the device never opted into remember-me.
func (m *Manager) SavedCredentials(ctx context.Context, deviceID string) (string, string, error) {
	email, err := m.store.Get(ctx, storeKey(deviceID, keySavedEmail))
	if errors.Is(err, storage.ErrNotFound) {
		return "", "", nil
	}
	if err != nil {
		return "", "", fmt.Errorf("failed to load saved email: %w", err)
	}

	password, err := m.store.Get(ctx, storeKey(deviceID, keySavedPassword))
	if errors.Is(err, storage.ErrNotFound) {
		return "", "", nil
	}
	if err != nil {
		return "", "", fmt.Errorf("failed to load saved password: %w", err)
	}

	return email, password, nil
}

// State returns the current authentication state of the device
func (m *Manager) State(deviceID string) State {
	m.mu.Lock()
	defer m.mu.Unlock()

	if state, ok := m.sessions[deviceID]; ok {
		return state.state
	}
	return StateUnauthenticated
}
