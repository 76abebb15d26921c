// Package session holds the identity of the current user for a front-end
// and keeps it in sync with gateway session changes.
package session

import (
	"context"
	"sync"

	"github.com/notespath/backend/internal/gateway"
	"github.com/notespath/backend/internal/models"
	"go.uber.org/zap"
)

// Gateway is the part of the auth client the session context depends on
type Gateway interface {
	// Method GetSession returns the current session or nil when signed out.
	GetSession(ctx context.Context) (*models.Session, error)
	// Method SignOut terminates the current session.
	SignOut(ctx context.Context) error
	// Method OnSessionChange registers a listener and returns the function that removes it.
	OnSessionChange(listener gateway.SessionListener) func()
}

// Listener is notified whenever the held identity changes. identity is nil when signed out.
type Listener func(event models.SessionEvent, identity *models.Identity)

// Context exposes the current identity and a loading flag
type Context struct {
	gateway Gateway
	logger  *zap.Logger

	startOnce sync.Once
	closeOnce sync.Once
	ready     chan struct{}

	mu          sync.RWMutex
	loading     bool
	identity    *models.Identity
	changed     bool
	listeners   map[int]Listener
	nextID      int
	unsubscribe func()
}

// New creates a session context. Call Start to resolve the current session.
func New(gw Gateway, logger *zap.Logger) *Context {
	return &Context{
		gateway:   gw,
		logger:    logger,
		ready:     make(chan struct{}),
		loading:   true,
		listeners: make(map[int]Listener),
	}
}

// Start subscribes to gateway changes and resolves the existing session in the background.
// Calling Start more than once has no effect.
func (c *Context) Start(ctx context.Context) {
	c.startOnce.Do(func() {
		unsubscribe := c.gateway.OnSessionChange(c.handleChange)
		c.mu.Lock()
		c.unsubscribe = unsubscribe
		c.mu.Unlock()

		go c.resolve(ctx)
	})
}

func (c *Context) resolve(ctx context.Context) {
	session, err := c.gateway.GetSession(ctx)
	if err != nil {
		c.logger.Warn("failed to retrieve session", zap.Error(err))
	}

	c.mu.Lock()
	// A change reported while loading is newer than the retrieved session
	if !c.changed && session != nil {
		identity := session.User
		c.identity = &identity
	}
	c.loading = false
	identity := c.copyIdentity()
	c.mu.Unlock()

	close(c.ready)
	c.notify(models.SessionEventInitial, identity)
}

func (c *Context) handleChange(event models.SessionEvent, session *models.Session) {
	c.mu.Lock()
	c.changed = true
	if session == nil {
		c.identity = nil
	} else {
		identity := session.User
		c.identity = &identity
	}
	identity := c.copyIdentity()
	c.mu.Unlock()

	c.notify(event, identity)
}

// Loading reports whether the initial session is still being retrieved
func (c *Context) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading
}

// Ready returns a channel that is closed once the initial session is resolved
func (c *Context) Ready() <-chan struct{} {
	return c.ready
}

// Identity returns the current user, or nil when signed out
func (c *Context) Identity() *models.Identity {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.copyIdentity()
}

// Subscribe registers a listener and returns the function that removes it
func (c *Context) Subscribe(listener Listener) func() {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = listener
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.listeners, id)
		c.mu.Unlock()
	}
}

// SignOut asks the gateway to end the session. The held identity is updated
// by the resulting change notification.
func (c *Context) SignOut(ctx context.Context) error {
	return c.gateway.SignOut(ctx)
}

// Close stops listening to gateway session changes
func (c *Context) Close() {
	c.closeOnce.Do(func() {
		c.mu.Lock()
		unsubscribe := c.unsubscribe
		c.unsubscribe = nil
		c.mu.Unlock()

		if unsubscribe != nil {
			unsubscribe()
		}
	})
}

// copyIdentity must be called with mu held
func (c *Context) copyIdentity() *models.Identity {
	if c.identity == nil {
		return nil
	}
	identity := *c.identity
	return &identity
}

func (c *Context) notify(event models.SessionEvent, identity *models.Identity) {
	c.mu.RLock()
	listeners := make([]Listener, 0, len(c.listeners))
	for _, l := range c.listeners {
		listeners = append(listeners, l)
	}
	c.mu.RUnlock()

	for _, l := range listeners {
		l(event, identity)
	}
}

type contextKey string

const sessionContextKey contextKey = "session_context"

// WithContext stores the session context in ctx
func WithContext(ctx context.Context, sc *Context) context.Context {
	return context.WithValue(ctx, sessionContextKey, sc)
}

// FromContext returns the session context stored in ctx, or nil
func FromContext(ctx context.Context) *Context {
	sc, _ := ctx.Value(sessionContextKey).(*Context)
	return sc
}
