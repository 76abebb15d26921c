package gateway

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/notespath/backend/internal/models"
)

// Cookie names holding the session tokens
const (
	AccessTokenCookie  = "access_token"
	RefreshTokenCookie = "refresh_token"
)

// CookieStore keeps the session of a single HTTP request in cookies.
// The access token may also be sent as a bearer token.
type CookieStore struct {
	w             http.ResponseWriter
	r             *http.Request
	secure        bool
	refreshMaxAge time.Duration
}

// NewCookieStore creates a store reading the request cookies and writing response cookies
func NewCookieStore(w http.ResponseWriter, r *http.Request, secure bool, refreshMaxAge time.Duration) *CookieStore {
	return &CookieStore{
		w:             w,
		r:             r,
		secure:        secure,
		refreshMaxAge: refreshMaxAge,
	}
}

func (s *CookieStore) Load(ctx context.Context) (*models.Session, error) {
	session := &models.Session{
		AccessToken:  bearerToken(s.r),
		RefreshToken: cookieValue(s.r, RefreshTokenCookie),
	}
	if session.AccessToken == "" {
		session.AccessToken = cookieValue(s.r, AccessTokenCookie)
	}

	if session.AccessToken == "" && session.RefreshToken == "" {
		return nil, nil
	}
	return session, nil
}

func (s *CookieStore) Save(ctx context.Context, session *models.Session) error {
	accessMaxAge := int(time.Until(session.ExpiresAt).Seconds())
	if accessMaxAge <= 0 {
		accessMaxAge = 1
	}

	// Access token cookie lives as long as the token
	http.SetCookie(s.w, s.cookie(AccessTokenCookie, session.AccessToken, accessMaxAge))
	// Refresh token cookie
	http.SetCookie(s.w, s.cookie(RefreshTokenCookie, session.RefreshToken, int(s.refreshMaxAge.Seconds())))
	return nil
}

func (s *CookieStore) Clear(ctx context.Context) error {
	http.SetCookie(s.w, s.cookie(AccessTokenCookie, "", -1))
	http.SetCookie(s.w, s.cookie(RefreshTokenCookie, "", -1))
	return nil
}

func (s *CookieStore) cookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// bearerToken extracts the token of an "Authorization: Bearer <token>" header
func bearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
		return parts[1]
	}
	return ""
}

func cookieValue(r *http.Request, name string) string {
	cookie, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return cookie.Value
}
