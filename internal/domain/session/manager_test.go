package session

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-client/internal/infrastructure/portal"
	"github.com/your-org/storefront-client/internal/infrastructure/storage"
	"github.com/your-org/storefront-client/internal/pkg/apperrors"
)

// mockAuthenticator implements Authenticator for testing
type mockAuthenticator struct {
	result *portal.LoginResult
	err    error
	calls  int
}

func (m *mockAuthenticator) Login(context.Context, string, string) (*portal.LoginResult, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func testProfile() *portal.Profile {
	return &portal.Profile{
		ID:        7,
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Gender:    "Female",
		CountryID: 38,
	}
}

func TestManager_LoginSuccess(t *testing.T) {
	store := storage.NewMemoryStore()
	auth := &mockAuthenticator{result: &portal.LoginResult{Token: "tok-1", Profile: testProfile()}}
	mgr := NewManager(store, auth, testLogger())
	ctx := context.Background()

	profile, err := mgr.Login(ctx, "device-a", "ada@example.com", "secret", false)
	require.NoError(t, err)
	require.NotNil(t, profile)

	assert.Equal(t, StateAuthenticated, mgr.State("device-a"))
	assert.True(t, mgr.IsAuthenticated(ctx, "device-a"))

	token, err := store.Get(ctx, "session:device-a:userToken")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", token)

	_, err = store.Get(ctx, "session:device-a:userData")
	assert.NoError(t, err)
}

func TestManager_LoginRememberPersistsCredentials(t *testing.T) {
	store := storage.NewMemoryStore()
	auth := &mockAuthenticator{result: &portal.LoginResult{Token: "tok-1"}}
	mgr := NewManager(store, auth, testLogger())
	ctx := context.Background()

	_, err := mgr.Login(ctx, "device-a", "ada@example.com", "secret", true)
	require.NoError(t, err)

	email, password, err := mgr.SavedCredentials(ctx, "device-a")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", email)
	assert.Equal(t, "secret", password)
}

func TestManager_LoginWithoutRememberClearsSaved(t *testing.T) {
	store := storage.NewMemoryStore()
	auth := &mockAuthenticator{result: &portal.LoginResult{Token: "tok-1"}}
	mgr := NewManager(store, auth, testLogger())
	ctx := context.Background()

	_, err := mgr.Login(ctx, "device-a", "ada@example.com", "secret", true)
	require.NoError(t, err)

	_, err = mgr.Login(ctx, "device-a", "ada@example.com", "secret", false)
	require.NoError(t, err)

	email, password, err := mgr.SavedCredentials(ctx, "device-a")
	require.NoError(t, err)
	assert.Empty(t, email)
	assert.Empty(t, password)
}

func TestManager_LoginFailureLeavesSessionUntouched(t *testing.T) {
	store := storage.NewMemoryStore()
	auth := &mockAuthenticator{err: apperrors.Wrap(apperrors.ErrAuthenticationFailed, "invalid credentials")}
	mgr := NewManager(store, auth, testLogger())
	ctx := context.Background()

	_, err := mgr.Login(ctx, "device-a", "ada@example.com", "wrong", false)
	assert.ErrorIs(t, err, apperrors.ErrAuthenticationFailed)

	assert.Equal(t, StateUnauthenticated, mgr.State("device-a"))
	assert.False(t, mgr.IsAuthenticated(ctx, "device-a"))

	_, err = store.Get(ctx, "session:device-a:userToken")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestManager_FailedReloginKeepsPriorSession(t *testing.T) {
	store := storage.NewMemoryStore()
	auth := &mockAuthenticator{result: &portal.LoginResult{Token: "tok-1"}}
	mgr := NewManager(store, auth, testLogger())
	ctx := context.Background()

	_, err := mgr.Login(ctx, "device-a", "ada@example.com", "secret", false)
	require.NoError(t, err)

	auth.err = apperrors.Wrap(apperrors.ErrNetwork, "connection refused")
	_, err = mgr.Login(ctx, "device-a", "ada@example.com", "secret", false)
	assert.ErrorIs(t, err, apperrors.ErrNetwork)

	// The earlier session is still intact
	assert.Equal(t, StateAuthenticated, mgr.State("device-a"))
	token, err := mgr.Token(ctx, "device-a")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", token)
}

// blockingAuthenticator parks Login until released so the in-flight state is
// observable
type blockingAuthenticator struct {
	started chan struct{}
	release chan struct{}
	result  *portal.LoginResult
}

func (b *blockingAuthenticator) Login(context.Context, string, string) (*portal.LoginResult, error) {
	close(b.started)
	<-b.release
	return b.result, nil
}

func TestManager_StateIsAuthenticatingDuringLogin(t *testing.T) {
	auth := &blockingAuthenticator{
		started: make(chan struct{}),
		release: make(chan struct{}),
		result:  &portal.LoginResult{Token: "tok-1"},
	}
	mgr := NewManager(storage.NewMemoryStore(), auth, testLogger())
	ctx := context.Background()

	assert.Equal(t, StateUnauthenticated, mgr.State("device-a"))

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, err := mgr.Login(ctx, "device-a", "ada@example.com", "secret", false)
		assert.NoError(t, err)
	}()

	<-auth.started
	assert.Equal(t, StateAuthenticating, mgr.State("device-a"))

	close(auth.release)
	<-done
	assert.Equal(t, StateAuthenticated, mgr.State("device-a"))
}

func TestManager_LoginRequiresCredentials(t *testing.T) {
	mgr := NewManager(storage.NewMemoryStore(), &mockAuthenticator{}, testLogger())

	_, err := mgr.Login(context.Background(), "device-a", "", "", false)
	assert.ErrorIs(t, err, apperrors.ErrAuthenticationFailed)
}

func TestManager_LogoutKeepsSavedCredentials(t *testing.T) {
	store := storage.NewMemoryStore()
	auth := &mockAuthenticator{result: &portal.LoginResult{Token: "tok-1", Profile: testProfile()}}
	mgr := NewManager(store, auth, testLogger())
	ctx := context.Background()

	_, err := mgr.Login(ctx, "device-a", "ada@example.com", "secret", true)
	require.NoError(t, err)

	require.NoError(t, mgr.Logout(ctx, "device-a"))

	assert.False(t, mgr.IsAuthenticated(ctx, "device-a"))
	assert.Equal(t, StateUnauthenticated, mgr.State("device-a"))

	_, err = store.Get(ctx, "session:device-a:userToken")
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = store.Get(ctx, "session:device-a:userData")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	// Remember-me survives logout
	email, password, err := mgr.SavedCredentials(ctx, "device-a")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", email)
	assert.Equal(t, "secret", password)
}

func TestManager_TokenRestoredFromStore(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "session:device-a:userToken", "persisted-token"))

	// Fresh manager, as after a process restart
	mgr := NewManager(store, &mockAuthenticator{}, testLogger())

	assert.True(t, mgr.IsAuthenticated(ctx, "device-a"))
	token, err := mgr.Token(ctx, "device-a")
	require.NoError(t, err)
	assert.Equal(t, "persisted-token", token)
}

func TestManager_ProfileRestoredFromStore(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "session:device-a:userData",
		`{"id":7,"first_name":"Ada","last_name":"Lovelace","email":"ada@example.com"}`))

	mgr := NewManager(store, &mockAuthenticator{}, testLogger())

	profile, err := mgr.Profile(ctx, "device-a")
	require.NoError(t, err)
	assert.Equal(t, "Ada", profile.FirstName)
	assert.Equal(t, "ada@example.com", profile.Email)
}

func TestManager_SavedCredentialsAbsent(t *testing.T) {
	mgr := NewManager(storage.NewMemoryStore(), &mockAuthenticator{}, testLogger())

	email, password, err := mgr.SavedCredentials(context.Background(), "device-a")
	require.NoError(t, err)
	assert.Empty(t, email)
	assert.Empty(t, password)
}

func TestManager_TokenWithoutSession(t *testing.T) {
	mgr := NewManager(storage.NewMemoryStore(), &mockAuthenticator{}, testLogger())

	_, err := mgr.Token(context.Background(), "device-a")
	assert.ErrorIs(t, err, apperrors.ErrAuthenticationRequired)
}
