package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/notespath/backend/internal/gateway"
	"github.com/notespath/backend/internal/models"
	"github.com/notespath/backend/internal/session"
	"go.uber.org/zap"
)

// SessionMiddleware resolves the session of each request from its cookies.
// The request context carries the auth client bound to the request cookies and
// a started session context.
func SessionMiddleware(provider gateway.AuthProvider, secureCookies bool, refreshMaxAge time.Duration, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			store := gateway.NewCookieStore(w, r, secureCookies, refreshMaxAge)
			client := gateway.NewAuthClient(provider, store, logger)

			sc := session.New(client, logger)
			defer sc.Close()
			sc.Start(r.Context())

			select {
			case <-sc.Ready():
			case <-r.Context().Done():
				return
			}

			ctx := context.WithValue(r.Context(), authClientKey, client)
			ctx = session.WithContext(ctx, sc)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireSession rejects requests without a signed-in user
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetIdentity(r.Context()) == nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":"authentication required"}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetAuthClient retrieves the request auth client from context
func GetAuthClient(ctx context.Context) *gateway.AuthClient {
	client, _ := ctx.Value(authClientKey).(*gateway.AuthClient)
	return client
}

// GetIdentity returns the signed-in user of the request, or nil
func GetIdentity(ctx context.Context) *models.Identity {
	sc := session.FromContext(ctx)
	if sc == nil {
		return nil
	}
	return sc.Identity()
}
