package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/notespath/backend/internal/auth"
	"github.com/notespath/backend/internal/models"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// minPasswordLength is the shortest password accepted on sign-up
const minPasswordLength = 6

// UserRepository is the interface that wraps methods for User table data access
type UserRepository interface {
	// Method Create inserts a new user into the database.
	//
	// "user" parameter is used to create a new user. Its ID and CreatedAt are assigned on success.
	//
	// If some error occurs during user creation, the error will be returned.
	Create(ctx context.Context, user *models.User) error
	// Method GetByEmail retrieves a user by email.
	//
	// If user with such email does not exist, the error will be returned together with "nil" value.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// Method GetByID retrieves a user by ID.
	//
	// If user with such ID does not exist, the error will be returned together with "nil" value.
	GetByID(ctx context.Context, userID string) (*models.User, error)
	// Method ExistsByEmail checks if a user with such email exists.
	//
	// If some error occurs during check, the error will be returned together with "false" value.
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// UserTokenRepository is the interface that wraps methods for UserToken table data access
type UserTokenRepository interface {
	// Method Create inserts a new user token into the database.
	Create(ctx context.Context, userToken *models.UserToken) error
	// Method GetByToken retrieves a user token by token string.
	//
	// If user token with such token does not exist, the error will be returned together with "nil" value.
	GetByToken(ctx context.Context, token string) (*models.UserToken, error)
	// Method UpdateToken replaces "oldToken" of the user with "newToken".
	//
	// If no such token belongs to the user, the error will be returned.
	UpdateToken(ctx context.Context, oldToken, newToken, userID string) error
	// Method DeleteByToken deletes a user token by token string.
	DeleteByToken(ctx context.Context, token string) error
}

// authService issues sessions for registered users
type authService struct {
	userRepo       UserRepository
	userTokenRepo  UserTokenRepository
	tokenGenerator *auth.TokenGenerator
	logger         *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo UserRepository,
	userTokenRepo UserTokenRepository,
	tokenGenerator *auth.TokenGenerator,
	logger *zap.Logger,
) *authService {
	return &authService{
		userRepo:       userRepo,
		userTokenRepo:  userTokenRepo,
		tokenGenerator: tokenGenerator,
		logger:         logger,
	}
}

// emailRegex validates email format
var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// authError marks a rejection by the auth provider
func authError(message string) error {
	return fmt.Errorf("%w: %s", models.ErrAuth, message)
}

// Register creates a new user account and signs it in
func (s *authService) Register(ctx context.Context, email, password string) (*models.Session, error) {
	normalizedEmail, err := s.checkRegisterCredentials(ctx, email, password)
	if err != nil {
		return nil, err
	}

	// Hash password
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        normalizedEmail,
		PasswordHash: string(passwordHash),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID))

	return s.issueSession(ctx, user)
}

// Login authenticates a user by email and password
func (s *authService) Login(ctx context.Context, email, password string) (*models.Session, error) {
	normalizedEmail := strings.TrimSpace(strings.ToLower(email))
	if normalizedEmail == "" {
		return nil, authError("email cannot be empty")
	}
	if password == "" {
		return nil, authError("password cannot be empty")
	}

	user, err := s.userRepo.GetByEmail(ctx, normalizedEmail)
	if err != nil {
		s.logger.Debug("sign in rejected", zap.Error(err))
		return nil, authError("invalid login credentials")
	}

	// Verify password
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, authError("invalid login credentials")
	}

	return s.issueSession(ctx, user)
}

// Refresh exchanges a refresh token for a new session, rotating the refresh token.
//
// The stored token lookup and the signature check do not depend on each other,
// so they run in parallel.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*models.Session, error) {
	refreshToken = strings.TrimSpace(refreshToken)
	if refreshToken == "" {
		return nil, authError("refresh token is missing")
	}

	errorChan := make(chan error, 2)
	userTokenChan := make(chan *models.UserToken, 1) // Buffered to prevent goroutine leak

	// Check if user token exists in database and return it
	go func() {
		userToken, err := s.userTokenRepo.GetByToken(ctx, refreshToken)
		if err != nil {
			errorChan <- authError(fmt.Sprintf("refresh token not recognized: %v", err))
			userTokenChan <- nil
			return
		}
		userTokenChan <- userToken
		errorChan <- nil
	}()

	// Validate refresh token
	go func() {
		if err := s.tokenGenerator.ValidateRefreshToken(refreshToken); err != nil {
			// Delete token if it exists in database
			if err := s.userTokenRepo.DeleteByToken(ctx, refreshToken); err != nil {
				s.logger.Warn("failed to delete rejected refresh token", zap.Error(err))
			}
			errorChan <- authError("invalid or expired refresh token")
			return
		}
		errorChan <- nil
	}()

	var errs []error
	for range 2 {
		if err := <-errorChan; err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return nil, errs[0]
	}

	userToken := <-userTokenChan
	if userToken == nil {
		return nil, authError("refresh token not recognized")
	}

	user, err := s.userRepo.GetByID(ctx, userToken.UserID)
	if err != nil {
		return nil, authError(fmt.Sprintf("user of refresh token not found: %v", err))
	}

	accessToken, newRefreshToken, expiresAt, err := s.tokenGenerator.GenerateTokens(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	// Replace the old refresh token with the new one
	if err := s.userTokenRepo.UpdateToken(ctx, refreshToken, newRefreshToken, user.ID); err != nil {
		return nil, fmt.Errorf("failed to rotate refresh token: %w", err)
	}

	return newSession(user, accessToken, newRefreshToken, expiresAt), nil
}

// Logout revokes the refresh token
func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	refreshToken = strings.TrimSpace(refreshToken)
	if refreshToken == "" {
		return nil
	}
	return s.userTokenRepo.DeleteByToken(ctx, refreshToken)
}

// Validate checks an access token and returns the identity it was issued to together with its expiry
func (s *authService) Validate(ctx context.Context, accessToken string) (models.Identity, time.Time, error) {
	claims, err := s.tokenGenerator.ValidateAccessToken(accessToken)
	if err != nil {
		return models.Identity{}, time.Time{}, errors.Join(models.ErrAuth, err)
	}
	return models.Identity{ID: claims.UserID, Email: claims.Email}, claims.ExpiresAt, nil
}

// issueSession generates tokens for the user and stores the refresh token
func (s *authService) issueSession(ctx context.Context, user *models.User) (*models.Session, error) {
	accessToken, refreshToken, expiresAt, err := s.tokenGenerator.GenerateTokens(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	userToken := &models.UserToken{
		UserID: user.ID,
		Token:  refreshToken,
	}
	if err := s.userTokenRepo.Create(ctx, userToken); err != nil {
		return nil, fmt.Errorf("failed to save refresh token: %w", err)
	}

	return newSession(user, accessToken, refreshToken, expiresAt), nil
}

func newSession(user *models.User, accessToken, refreshToken string, expiresAt time.Time) *models.Session {
	return &models.Session{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    expiresAt,
		User:         models.Identity{ID: user.ID, Email: user.Email},
	}
}

// checkRegisterCredentials validates the sign-up credentials and returns the normalized email.
//
// The password check does not need the database, so it runs in parallel with the email checks.
func (s *authService) checkRegisterCredentials(ctx context.Context, email, password string) (string, error) {
	validationErrors := make(chan error, 2)
	normalizedEmail := strings.TrimSpace(strings.ToLower(email))

	// Validate password
	go func() {
		if len(password) < minPasswordLength {
			validationErrors <- models.NewValidationError("password",
				fmt.Sprintf("Password should be at least %d characters", minPasswordLength))
			return
		}
		validationErrors <- nil
	}()

	// Validate email and check its uniqueness
	go func() {
		if !emailRegex.MatchString(normalizedEmail) {
			validationErrors <- models.NewValidationError("email", "Invalid email format")
			return
		}
		exists, err := s.userRepo.ExistsByEmail(ctx, normalizedEmail)
		if err != nil {
			validationErrors <- fmt.Errorf("failed to check email: %w", err)
			return
		}
		if exists {
			validationErrors <- authError("user already registered")
			return
		}
		validationErrors <- nil
	}()

	var first error
	for range 2 {
		if err := <-validationErrors; err != nil && first == nil {
			first = err
		}
	}
	if first != nil {
		return "", first
	}

	return normalizedEmail, nil
}
