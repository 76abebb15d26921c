package gateway

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/notespath/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// mockAuthProvider is a mock implementation of AuthProvider
type mockAuthProvider struct {
	session     *models.Session
	err         error
	refreshed   *models.Session
	refreshErr  error
	identity    models.Identity
	expiresAt   time.Time
	validateErr error
	logoutErr   error

	loggedOut     []string
	refreshCalls  int
	validateCalls int
}

func (m *mockAuthProvider) Register(ctx context.Context, email, password string) (*models.Session, error) {
	return m.session, m.err
}

func (m *mockAuthProvider) Login(ctx context.Context, email, password string) (*models.Session, error) {
	return m.session, m.err
}

func (m *mockAuthProvider) Refresh(ctx context.Context, refreshToken string) (*models.Session, error) {
	m.refreshCalls++
	return m.refreshed, m.refreshErr
}

func (m *mockAuthProvider) Logout(ctx context.Context, refreshToken string) error {
	m.loggedOut = append(m.loggedOut, refreshToken)
	return m.logoutErr
}

func (m *mockAuthProvider) Validate(ctx context.Context, accessToken string) (models.Identity, time.Time, error) {
	m.validateCalls++
	return m.identity, m.expiresAt, m.validateErr
}

// failingStore is a SessionStore whose operations fail
type failingStore struct {
	err error
}

func (s *failingStore) Load(ctx context.Context) (*models.Session, error)       { return nil, s.err }
func (s *failingStore) Save(ctx context.Context, session *models.Session) error { return s.err }
func (s *failingStore) Clear(ctx context.Context) error                         { return s.err }

// eventRecorder collects emitted session events
type eventRecorder struct {
	mu     sync.Mutex
	events []models.SessionEvent
}

func (r *eventRecorder) listen(event models.SessionEvent, session *models.Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *eventRecorder) recorded() []models.SessionEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.SessionEvent(nil), r.events...)
}

var now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func testSession() *models.Session {
	return &models.Session{
		AccessToken:  "access",
		RefreshToken: "refresh",
		ExpiresAt:    now.Add(time.Hour),
		User:         models.Identity{ID: "user-1", Email: "a@example.com"},
	}
}

func newTestClient(provider *mockAuthProvider, store SessionStore) (*AuthClient, *eventRecorder) {
	client := NewAuthClient(provider, store, zap.NewNop())
	client.now = func() time.Time { return now }
	recorder := &eventRecorder{}
	client.OnSessionChange(recorder.listen)
	return client, recorder
}

func TestAuthClient_SignIn(t *testing.T) {
	tests := []struct {
		name           string
		provider       *mockAuthProvider
		store          SessionStore
		expectedError  error
		expectedEvents []models.SessionEvent
	}{
		{
			name:           "success",
			provider:       &mockAuthProvider{session: testSession()},
			store:          NewMemoryStore(),
			expectedEvents: []models.SessionEvent{models.SessionEventSignedIn},
		},
		{
			name:          "invalid credentials",
			provider:      &mockAuthProvider{err: models.ErrAuth},
			store:         NewMemoryStore(),
			expectedError: models.ErrAuth,
		},
		{
			name:     "store failure",
			provider: &mockAuthProvider{session: testSession()},
			store:    &failingStore{err: errors.New("disk full")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, recorder := newTestClient(tt.provider, tt.store)

			session, err := client.SignIn(context.Background(), "a@example.com", "secret1")

			switch {
			case tt.expectedError != nil:
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, session)
			case tt.expectedEvents == nil:
				assert.Error(t, err)
				assert.Nil(t, session)
			default:
				require.NoError(t, err)
				assert.Equal(t, "access", session.AccessToken)
				stored, err := tt.store.Load(context.Background())
				require.NoError(t, err)
				assert.Equal(t, session.RefreshToken, stored.RefreshToken)
			}
			assert.Equal(t, tt.expectedEvents, recorder.recorded())
		})
	}
}

func TestAuthClient_SignUp(t *testing.T) {
	store := NewMemoryStore()
	client, recorder := newTestClient(&mockAuthProvider{session: testSession()}, store)

	session, err := client.SignUp(context.Background(), "a@example.com", "secret1")

	require.NoError(t, err)
	assert.Equal(t, "user-1", session.User.ID)
	assert.Equal(t, []models.SessionEvent{models.SessionEventSignedIn}, recorder.recorded())
}

func TestAuthClient_SignOut(t *testing.T) {
	t.Run("revokes and clears", func(t *testing.T) {
		store := NewMemoryStore()
		require.NoError(t, store.Save(context.Background(), testSession()))
		provider := &mockAuthProvider{}
		client, recorder := newTestClient(provider, store)

		err := client.SignOut(context.Background())

		require.NoError(t, err)
		assert.Equal(t, []string{"refresh"}, provider.loggedOut)
		stored, _ := store.Load(context.Background())
		assert.Nil(t, stored)
		assert.Equal(t, []models.SessionEvent{models.SessionEventSignedOut}, recorder.recorded())
	})

	t.Run("no session", func(t *testing.T) {
		provider := &mockAuthProvider{}
		client, recorder := newTestClient(provider, NewMemoryStore())

		err := client.SignOut(context.Background())

		require.NoError(t, err)
		assert.Empty(t, provider.loggedOut)
		assert.Equal(t, []models.SessionEvent{models.SessionEventSignedOut}, recorder.recorded())
	})

	t.Run("revoke failure still clears", func(t *testing.T) {
		store := NewMemoryStore()
		require.NoError(t, store.Save(context.Background(), testSession()))
		client, _ := newTestClient(&mockAuthProvider{logoutErr: errors.New("db down")}, store)

		err := client.SignOut(context.Background())

		assert.Error(t, err)
		stored, _ := store.Load(context.Background())
		assert.Nil(t, stored)
	})
}

func TestAuthClient_GetSession(t *testing.T) {
	expired := testSession()
	expired.ExpiresAt = now.Add(-time.Minute)

	refreshed := testSession()
	refreshed.AccessToken = "access-2"
	refreshed.RefreshToken = "refresh-2"

	tests := []struct {
		name            string
		stored          *models.Session
		provider        *mockAuthProvider
		expectedAccess  string
		expectedEvents  []models.SessionEvent
		expectedCleared bool
		expectError     bool
	}{
		{
			name:     "no stored session",
			provider: &mockAuthProvider{},
		},
		{
			name:   "valid access token",
			stored: testSession(),
			provider: &mockAuthProvider{
				identity:  models.Identity{ID: "user-1", Email: "a@example.com"},
				expiresAt: now.Add(time.Hour),
			},
			expectedAccess: "access",
		},
		{
			name:           "expired access token is refreshed",
			stored:         expired,
			provider:       &mockAuthProvider{refreshed: refreshed},
			expectedAccess: "access-2",
			expectedEvents: []models.SessionEvent{models.SessionEventTokenRefreshed},
		},
		{
			name:           "rejected access token is refreshed",
			stored:         testSession(),
			provider:       &mockAuthProvider{validateErr: models.ErrAuth, refreshed: refreshed},
			expectedAccess: "access-2",
			expectedEvents: []models.SessionEvent{models.SessionEventTokenRefreshed},
		},
		{
			name:            "refresh rejected signs out",
			stored:          expired,
			provider:        &mockAuthProvider{refreshErr: errors.Join(models.ErrAuth, errors.New("revoked"))},
			expectedEvents:  []models.SessionEvent{models.SessionEventSignedOut},
			expectedCleared: true,
		},
		{
			name:        "refresh failure keeps session",
			stored:      expired,
			provider:    &mockAuthProvider{refreshErr: errors.New("connection refused")},
			expectError: true,
		},
		{
			name:            "no refresh token signs out",
			stored:          &models.Session{AccessToken: "access", ExpiresAt: now.Add(-time.Hour)},
			provider:        &mockAuthProvider{},
			expectedEvents:  []models.SessionEvent{models.SessionEventSignedOut},
			expectedCleared: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewMemoryStore()
			if tt.stored != nil {
				require.NoError(t, store.Save(context.Background(), tt.stored))
			}
			client, recorder := newTestClient(tt.provider, store)

			session, err := client.GetSession(context.Background())

			if tt.expectError {
				assert.Error(t, err)
				stored, _ := store.Load(context.Background())
				assert.NotNil(t, stored)
				return
			}
			require.NoError(t, err)
			if tt.expectedAccess == "" {
				assert.Nil(t, session)
			} else {
				require.NotNil(t, session)
				assert.Equal(t, tt.expectedAccess, session.AccessToken)
				assert.Equal(t, "user-1", session.User.ID)
			}
			assert.Equal(t, tt.expectedEvents, recorder.recorded())
			if tt.expectedCleared {
				stored, _ := store.Load(context.Background())
				assert.Nil(t, stored)
			}
		})
	}
}

func TestAuthClient_GetSession_StoresRefreshedSession(t *testing.T) {
	expired := testSession()
	expired.ExpiresAt = now.Add(-time.Minute)
	refreshed := testSession()
	refreshed.RefreshToken = "refresh-2"

	store := NewMemoryStore()
	require.NoError(t, store.Save(context.Background(), expired))
	provider := &mockAuthProvider{refreshed: refreshed}
	client, _ := newTestClient(provider, store)

	_, err := client.GetSession(context.Background())
	require.NoError(t, err)

	stored, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "refresh-2", stored.RefreshToken)
	assert.Equal(t, 0, provider.validateCalls)
	assert.Equal(t, 1, provider.refreshCalls)
}

func TestAuthClient_OnSessionChange_Unsubscribe(t *testing.T) {
	client := NewAuthClient(&mockAuthProvider{session: testSession()}, NewMemoryStore(), zap.NewNop())

	first := &eventRecorder{}
	second := &eventRecorder{}
	unsubscribe := client.OnSessionChange(first.listen)
	client.OnSessionChange(second.listen)

	_, err := client.SignIn(context.Background(), "a@example.com", "secret1")
	require.NoError(t, err)

	unsubscribe()
	unsubscribe()

	require.NoError(t, client.SignOut(context.Background()))

	assert.Equal(t, []models.SessionEvent{models.SessionEventSignedIn}, first.recorded())
	assert.Equal(t, []models.SessionEvent{models.SessionEventSignedIn, models.SessionEventSignedOut}, second.recorded())
}
