package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	appauth "github.com/altan/schoolhub/internal/app/auth"
	"github.com/altan/schoolhub/internal/app/models"
	"github.com/altan/schoolhub/internal/app/models/dto"
	"github.com/altan/schoolhub/internal/app/repositories"
	"github.com/altan/schoolhub/internal/pkg/apperrors"
	"github.com/altan/schoolhub/internal/pkg/auth"
	"github.com/altan/schoolhub/internal/pkg/logger"
)

// UserStore is the user persistence surface AuthService depends on.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateLastLogin(ctx context.Context, id int64) error
}

// RefreshTokenStore is the token persistence surface AuthService depends on.
type RefreshTokenStore interface {
	Save(ctx context.Context, userID int64, token string, expiresAt time.Time) error
	Get(ctx context.Context, token string) (*repositories.RefreshToken, error)
	Delete(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context) error
}

// TokenDenylist revokes access tokens until their natural expiry.
type TokenDenylist interface {
	DenyToken(ctx context.Context, tokenID string, ttl time.Duration) error
}

// AuthService implements registration, login and the refresh/logout token
// lifecycle.
type AuthService struct {
	users      UserStore
	tokens     RefreshTokenStore
	jwtService *auth.JWTService
	denylist   TokenDenylist
}

// NewAuthService creates a new AuthService
func NewAuthService(users UserStore, tokens RefreshTokenStore, jwtService *auth.JWTService, denylist TokenDenylist) *AuthService {
	return &AuthService{
		users:      users,
		tokens:     tokens,
		jwtService: jwtService,
		denylist:   denylist,
	}
}

// Register creates a new user account inside the actor's school. The route is
// gated to ADMIN; the account always lands in the admin's own school.
func (s *AuthService) Register(ctx context.Context, actor appauth.Actor, req *dto.RegisterRequest) (*models.User, error) {
	if !models.ValidRole(req.Role) {
		return nil, apperrors.NewBadRequestError("unknown role: " + req.Role)
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:     req.Email,
		Password:  hashed,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      models.RoleType(req.Role),
		SchoolID:  actor.SchoolID,
		IsActive:  true,
	}
	if req.Phone != "" {
		user.Phone = &req.Phone
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	logger.Info().Int64("userId", user.ID).Str("role", req.Role).Msg("User registered")
	return user, nil
}

// Login verifies credentials and mints a token pair. Unknown emails and wrong
// passwords produce the same error.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, *models.User, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, nil, apperrors.ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if !user.IsActive {
		return nil, nil, apperrors.ErrAccountDisabled
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, nil, apperrors.ErrInvalidCredentials
	}

	// Opportunistic cleanup of stale refresh tokens, best effort.
	if err := s.tokens.DeleteExpired(ctx); err != nil {
		logger.Warn().Err(err).Msg("Failed to purge expired refresh tokens")
	}

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	if err := s.users.UpdateLastLogin(ctx, user.ID); err != nil {
		logger.Warn().Err(err).Int64("userId", user.ID).Msg("Failed to record last login")
	}

	return tokens, user, nil
}

// Refresh rotates a refresh token: the presented token is consumed and a new
// pair is minted for its owner.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	stored, err := s.tokens.Get(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrTokenNotFound) {
			return nil, apperrors.ErrTokenInvalid
		}
		return nil, err
	}

	if time.Now().After(stored.ExpiresAt) {
		_ = s.tokens.Delete(ctx, refreshToken)
		return nil, apperrors.ErrTokenExpired
	}

	user, err := s.users.GetByID(ctx, stored.UserID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	if err := s.tokens.Delete(ctx, refreshToken); err != nil && !errors.Is(err, apperrors.ErrTokenNotFound) {
		return nil, err
	}

	return s.issueTokens(ctx, user)
}

// Logout revokes the presented refresh token and denylists the current access
// token until it would have expired anyway.
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims, refreshToken string) error {
	if err := s.tokens.Delete(ctx, refreshToken); err != nil && !errors.Is(err, apperrors.ErrTokenNotFound) {
		return err
	}

	if claims != nil && claims.ID != "" && claims.ExpiresAt != nil {
		ttl := time.Until(claims.ExpiresAt.Time)
		if err := s.denylist.DenyToken(ctx, claims.ID, ttl); err != nil {
			logger.Warn().Err(err).Msg("Failed to denylist access token")
		}
	}

	return nil
}

func (s *AuthService) issueTokens(ctx context.Context, user *models.User) (*dto.TokenResponse, error) {
	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwtService.GenerateTokenPair(auth.TokenSubject{
		UserID:   user.ID,
		Email:    user.Email,
		Role:     string(user.Role),
		SchoolID: user.SchoolID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	if err := s.tokens.Save(ctx, user.ID, refreshToken, s.jwtService.GetRefreshTokenExpiry()); err != nil {
		return nil, fmt.Errorf("failed to persist refresh token: %w", err)
	}

	return &dto.TokenResponse{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		ExpiresIn:        expiresIn,
		RefreshExpiresIn: refreshExpiresIn,
		TokenType:        "Bearer",
	}, nil
}
