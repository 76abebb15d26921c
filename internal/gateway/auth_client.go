// Package gateway exposes authentication to the workflows the way a hosted backend does:
// sign in, sign up, sign out, current session and session change notifications.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/notespath/backend/internal/models"
	"go.uber.org/zap"
)

// AuthProvider issues and validates sessions
type AuthProvider interface {
	// Method Register creates an account and returns its first session.
	Register(ctx context.Context, email, password string) (*models.Session, error)
	// Method Login returns a new session for valid credentials.
	Login(ctx context.Context, email, password string) (*models.Session, error)
	// Method Refresh exchanges a refresh token for a new session.
	//
	// A token that can no longer be used is reported with an error matching models.ErrAuth.
	Refresh(ctx context.Context, refreshToken string) (*models.Session, error)
	// Method Logout revokes the refresh token.
	Logout(ctx context.Context, refreshToken string) error
	// Method Validate checks an access token and returns its identity and expiry.
	Validate(ctx context.Context, accessToken string) (models.Identity, time.Time, error)
}

// SessionStore persists the current session between calls
type SessionStore interface {
	// Method Load returns the stored session, or nil when there is none.
	Load(ctx context.Context) (*models.Session, error)
	// Method Save replaces the stored session.
	Save(ctx context.Context, session *models.Session) error
	// Method Clear removes the stored session.
	Clear(ctx context.Context) error
}

// SessionListener is notified about session changes. session is nil after sign-out.
type SessionListener func(event models.SessionEvent, session *models.Session)

// AuthClient combines an auth provider with a session store
type AuthClient struct {
	provider AuthProvider
	store    SessionStore
	logger   *zap.Logger
	now      func() time.Time

	mu        sync.Mutex
	listeners map[int]SessionListener
	nextID    int
}

// NewAuthClient creates a new auth client
func NewAuthClient(provider AuthProvider, store SessionStore, logger *zap.Logger) *AuthClient {
	return &AuthClient{
		provider:  provider,
		store:     store,
		logger:    logger,
		now:       time.Now,
		listeners: make(map[int]SessionListener),
	}
}

// SignIn authenticates with email and password and stores the new session
func (c *AuthClient) SignIn(ctx context.Context, email, password string) (*models.Session, error) {
	session, err := c.provider.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if err := c.store.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	c.emit(models.SessionEventSignedIn, session)
	return session, nil
}

// SignUp creates an account and stores its session
func (c *AuthClient) SignUp(ctx context.Context, email, password string) (*models.Session, error) {
	session, err := c.provider.Register(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if err := c.store.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	c.emit(models.SessionEventSignedIn, session)
	return session, nil
}

// SignOut revokes the stored session and clears it
func (c *AuthClient) SignOut(ctx context.Context) error {
	session, err := c.store.Load(ctx)
	if err != nil {
		c.logger.Warn("failed to load session for sign out", zap.Error(err))
	}

	var errs []error
	if session != nil && session.RefreshToken != "" {
		if err := c.provider.Logout(ctx, session.RefreshToken); err != nil {
			errs = append(errs, fmt.Errorf("failed to revoke session: %w", err))
		}
	}
	if err := c.store.Clear(ctx); err != nil {
		errs = append(errs, fmt.Errorf("failed to clear session: %w", err))
	}

	c.emit(models.SessionEventSignedOut, nil)
	return errors.Join(errs...)
}

// GetSession returns the current session or nil when signed out.
//
// An expired access token is refreshed through the provider and TOKEN_REFRESHED is emitted.
// A session that can no longer be refreshed is cleared and SIGNED_OUT is emitted.
func (c *AuthClient) GetSession(ctx context.Context) (*models.Session, error) {
	session, err := c.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if session == nil {
		return nil, nil
	}

	if session.AccessToken != "" && (session.ExpiresAt.IsZero() || !session.IsExpired(c.now())) {
		identity, expiresAt, err := c.provider.Validate(ctx, session.AccessToken)
		if err == nil {
			session.User = identity
			session.ExpiresAt = expiresAt
			return session, nil
		}
		c.logger.Debug("stored access token rejected", zap.Error(err))
	}

	if session.RefreshToken == "" {
		c.drop(ctx)
		return nil, nil
	}

	refreshed, err := c.provider.Refresh(ctx, session.RefreshToken)
	if errors.Is(err, models.ErrAuth) {
		c.logger.Info("session expired", zap.Error(err))
		c.drop(ctx)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to refresh session: %w", err)
	}

	if err := c.store.Save(ctx, refreshed); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	c.emit(models.SessionEventTokenRefreshed, refreshed)
	return refreshed, nil
}

// OnSessionChange registers a listener and returns the function that removes it
func (c *AuthClient) OnSessionChange(listener SessionListener) func() {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = listener
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.listeners, id)
			c.mu.Unlock()
		})
	}
}

// drop clears an unusable session
func (c *AuthClient) drop(ctx context.Context) {
	if err := c.store.Clear(ctx); err != nil {
		c.logger.Warn("failed to clear session", zap.Error(err))
	}
	c.emit(models.SessionEventSignedOut, nil)
}

// emit notifies listeners outside the lock so they may subscribe or unsubscribe
func (c *AuthClient) emit(event models.SessionEvent, session *models.Session) {
	c.mu.Lock()
	listeners := make([]SessionListener, 0, len(c.listeners))
	for _, l := range c.listeners {
		listeners = append(listeners, l)
	}
	c.mu.Unlock()

	for _, l := range listeners {
		l(event, session)
	}
}
