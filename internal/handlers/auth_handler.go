package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/notespath/backend/internal/middleware"
	"github.com/notespath/backend/internal/models"
	"github.com/notespath/backend/internal/session"
	"go.uber.org/zap"
)

// AuthHandler handles authentication HTTP requests.
// It relies on the session middleware for the request auth client and session context.
type AuthHandler struct {
	BaseHandler
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: BaseHandler{logger: logger},
	}
}

// RegisterRoutes registers all auth handler routes
func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/signin", h.SignIn)
		r.Post("/signup", h.SignUp)
		r.Post("/signout", h.SignOut)
		r.Get("/session", h.Session)
	})
}

// sessionResponse is the body returned after signing in or up
type sessionResponse struct {
	User      models.Identity `json:"user"`
	ExpiresAt time.Time       `json:"expires_at"`
}

// currentSessionResponse describes the session held for the request
type currentSessionResponse struct {
	User    *models.Identity `json:"user"`
	Loading bool             `json:"loading"`
}

// SignIn handles POST /api/v1/auth/signin
// @Summary Sign in
// @Description Authenticate with email and password. Tokens are returned as HTTP-only cookies.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.Credentials true "Credentials"
// @Success 200 {object} sessionResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /auth/signin [post]
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	h.authenticate(w, r, http.StatusOK, false)
}

// SignUp handles POST /api/v1/auth/signup
// @Summary Sign up
// @Description Create an account with email and password. Tokens are returned as HTTP-only cookies.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.Credentials true "Credentials"
// @Success 201 {object} sessionResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /auth/signup [post]
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	h.authenticate(w, r, http.StatusCreated, true)
}

func (h *AuthHandler) authenticate(w http.ResponseWriter, r *http.Request, status int, register bool) {
	var req models.Credentials
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	client := middleware.GetAuthClient(r.Context())
	if client == nil {
		h.logger.Error("auth client missing from request context")
		h.respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	var (
		s   *models.Session
		err error
	)
	if register {
		s, err = client.SignUp(r.Context(), req.Email, req.Password)
	} else {
		s, err = client.SignIn(r.Context(), req.Email, req.Password)
	}
	if err != nil {
		h.logger.Info("authentication rejected", zap.Bool("register", register), zap.Error(err))
		h.respondServiceError(w, err)
		return
	}

	h.respondJSON(w, status, sessionResponse{User: s.User, ExpiresAt: s.ExpiresAt})
}

// SignOut handles POST /api/v1/auth/signout
// @Summary Sign out
// @Description Revoke the refresh token and clear the session cookies
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /auth/signout [post]
func (h *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	sc := session.FromContext(r.Context())
	if sc == nil {
		h.logger.Error("session context missing from request context")
		h.respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if err := sc.SignOut(r.Context()); err != nil {
		h.logger.Error("failed to sign out", zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "failed to sign out")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]string{"message": "signed out"})
}

// Session handles GET /api/v1/auth/session
// @Summary Current session
// @Description Get the signed-in user, or null when signed out
// @Tags auth
// @Produce json
// @Success 200 {object} currentSessionResponse
// @Router /auth/session [get]
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	resp := currentSessionResponse{}
	if sc := session.FromContext(r.Context()); sc != nil {
		resp.User = sc.Identity()
		resp.Loading = sc.Loading()
	}

	h.respondJSON(w, http.StatusOK, resp)
}
