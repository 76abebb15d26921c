package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/notespath/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	session, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, session)

	saved := testSession()
	require.NoError(t, store.Save(ctx, saved))
	saved.AccessToken = "mutated"

	session, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "access", session.AccessToken)

	require.NoError(t, store.Clear(ctx))
	session, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, session)
}

func TestFileStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "session.toml")
	store := NewFileStore(path)

	t.Run("missing file", func(t *testing.T) {
		session, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Nil(t, session)
	})

	t.Run("round trip", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, testSession()))

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

		session, err := store.Load(ctx)
		require.NoError(t, err)
		require.NotNil(t, session)
		assert.Equal(t, "access", session.AccessToken)
		assert.Equal(t, "refresh", session.RefreshToken)
		assert.Equal(t, "user-1", session.User.ID)
		assert.True(t, session.ExpiresAt.Equal(now.Add(time.Hour)))
	})

	t.Run("clear", func(t *testing.T) {
		require.NoError(t, store.Clear(ctx))
		require.NoError(t, store.Clear(ctx))

		_, err := os.Stat(path)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("corrupt file", func(t *testing.T) {
		require.NoError(t, os.WriteFile(path, []byte("access_token = "), 0600))

		session, err := store.Load(ctx)
		assert.Error(t, err)
		assert.Nil(t, session)
	})
}

func TestCookieStore_Load(t *testing.T) {
	tests := []struct {
		name            string
		header          string
		cookies         []*http.Cookie
		expectedAccess  string
		expectedRefresh string
		expectNil       bool
	}{
		{
			name:      "no credentials",
			expectNil: true,
		},
		{
			name:            "cookies",
			cookies:         []*http.Cookie{{Name: AccessTokenCookie, Value: "a"}, {Name: RefreshTokenCookie, Value: "r"}},
			expectedAccess:  "a",
			expectedRefresh: "r",
		},
		{
			name:           "bearer header wins",
			header:         "Bearer header-token",
			cookies:        []*http.Cookie{{Name: AccessTokenCookie, Value: "a"}},
			expectedAccess: "header-token",
		},
		{
			name:            "malformed header falls back to cookie",
			header:          "Token abc",
			cookies:         []*http.Cookie{{Name: AccessTokenCookie, Value: "a"}, {Name: RefreshTokenCookie, Value: "r"}},
			expectedAccess:  "a",
			expectedRefresh: "r",
		},
		{
			name:            "refresh only",
			cookies:         []*http.Cookie{{Name: RefreshTokenCookie, Value: "r"}},
			expectedRefresh: "r",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			for _, c := range tt.cookies {
				req.AddCookie(c)
			}
			store := NewCookieStore(httptest.NewRecorder(), req, true, time.Hour)

			session, err := store.Load(context.Background())

			require.NoError(t, err)
			if tt.expectNil {
				assert.Nil(t, session)
				return
			}
			require.NotNil(t, session)
			assert.Equal(t, tt.expectedAccess, session.AccessToken)
			assert.Equal(t, tt.expectedRefresh, session.RefreshToken)
		})
	}
}

func TestCookieStore_SaveAndClear(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	t.Run("save", func(t *testing.T) {
		rec := httptest.NewRecorder()
		store := NewCookieStore(rec, req, true, 7*24*time.Hour)

		session := &models.Session{AccessToken: "a", RefreshToken: "r", ExpiresAt: time.Now().Add(time.Hour)}
		require.NoError(t, store.Save(context.Background(), session))

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 2)
		assert.Equal(t, AccessTokenCookie, cookies[0].Name)
		assert.Equal(t, "a", cookies[0].Value)
		assert.InDelta(t, 3600, cookies[0].MaxAge, 5)
		assert.Equal(t, RefreshTokenCookie, cookies[1].Name)
		assert.Equal(t, 604800, cookies[1].MaxAge)
		for _, c := range cookies {
			assert.True(t, c.HttpOnly)
			assert.True(t, c.Secure)
			assert.Equal(t, "/", c.Path)
			assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
		}
	})

	t.Run("clear", func(t *testing.T) {
		rec := httptest.NewRecorder()
		store := NewCookieStore(rec, req, false, time.Hour)

		require.NoError(t, store.Clear(context.Background()))

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 2)
		for _, c := range cookies {
			assert.Empty(t, c.Value)
			assert.Less(t, c.MaxAge, 0)
			assert.False(t, c.Secure)
		}
	})
}
