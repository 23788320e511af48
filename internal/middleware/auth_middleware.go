package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	appauth "github.com/altan/schoolhub/internal/app/auth"
	"github.com/altan/schoolhub/internal/app/models"
	"github.com/altan/schoolhub/internal/app/models/dto"
	"github.com/altan/schoolhub/internal/pkg/auth"
	"github.com/altan/schoolhub/internal/pkg/logger"
)

// Context keys set by JWTAuth for downstream handlers.
const (
	ContextActor  = "actor"
	ContextClaims = "claims"
)

// DeniedTokenChecker reports whether an access token has been revoked.
type DeniedTokenChecker interface {
	IsTokenDenied(ctx context.Context, tokenID string) (bool, error)
}

// AuthMiddleware validates bearer tokens and enforces role allow-lists.
type AuthMiddleware struct {
	jwtService *auth.JWTService
	denylist   DeniedTokenChecker
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService, denylist DeniedTokenChecker) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		denylist:   denylist,
	}
}

// JWTAuth validates the Authorization header and stores the decoded actor in
// the request context. A missing header and a bad token produce distinct
// error codes.
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeTokenRequired, "Authentication required")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		tokenString, err := auth.ExtractBearerToken(authHeader)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeTokenInvalid, "Invalid authorization header format")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		claims, err := m.jwtService.ValidateAndExtractClaims(tokenString)
		if err != nil {
			code := dto.ErrorCodeTokenInvalid
			message := "Invalid token"
			if errors.Is(err, auth.ErrExpiredToken) {
				code = dto.ErrorCodeTokenExpired
				message = "Token has expired"
			}

			errorDetail := dto.NewErrorDetail(code, message)
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		if m.denylist != nil && claims.ID != "" {
			checkCtx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			denied, err := m.denylist.IsTokenDenied(checkCtx, claims.ID)
			cancel()
			if err != nil {
				// Redis being down must not lock everyone out.
				logger.Warn().Err(err).Msg("Token denylist check failed")
			} else if denied {
				errorDetail := dto.NewErrorDetail(dto.ErrorCodeTokenInvalid, "Token has been revoked")
				c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
				return
			}
		}

		c.Set(ContextActor, appauth.Actor{
			UserID:   claims.UserID,
			Email:    claims.Email,
			Role:     models.RoleType(claims.Role),
			SchoolID: claims.SchoolID,
		})
		c.Set(ContextClaims, claims)

		c.Next()
	}
}

// RoleRequired allows only callers whose role is in the allow-list. Must run
// after JWTAuth.
func (m *AuthMiddleware) RoleRequired(roles ...models.RoleType) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := ActorFromContext(c)
		if !ok {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeTokenRequired, "Authentication required")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		for _, role := range roles {
			if actor.Role == role {
				c.Next()
				return
			}
		}

		errorDetail := dto.NewErrorDetail(dto.ErrorCodeInsufficientPermissions, "Insufficient permissions for this operation")
		c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(errorDetail))
	}
}

// ActorFromContext returns the authenticated actor set by JWTAuth.
func ActorFromContext(c *gin.Context) (appauth.Actor, bool) {
	value, exists := c.Get(ContextActor)
	if !exists {
		return appauth.Actor{}, false
	}
	actor, ok := value.(appauth.Actor)
	return actor, ok
}

// ClaimsFromContext returns the raw token claims set by JWTAuth.
func ClaimsFromContext(c *gin.Context) (*auth.Claims, bool) {
	value, exists := c.Get(ContextClaims)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*auth.Claims)
	return claims, ok
}
