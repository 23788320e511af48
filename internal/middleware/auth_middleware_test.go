package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/altan/schoolhub/internal/app/models"
	"github.com/altan/schoolhub/internal/pkg/auth"
)

type staticDenylist struct {
	denied map[string]bool
}

func (s *staticDenylist) IsTokenDenied(ctx context.Context, tokenID string) (bool, error) {
	return s.denied[tokenID], nil
}

func newTestRouter(t *testing.T, denylist DeniedTokenChecker, roles ...models.RoleType) (*gin.Engine, *auth.JWTService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "test",
	})
	m := NewAuthMiddleware(jwtService, denylist)

	router := gin.New()
	group := router.Group("/protected")
	group.Use(m.JWTAuth())
	if len(roles) > 0 {
		group.Use(m.RoleRequired(roles...))
	}
	group.GET("", func(c *gin.Context) {
		actor, ok := ActorFromContext(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"userId": actor.UserID, "schoolId": actor.SchoolID})
	})

	return router, jwtService
}

func mintToken(t *testing.T, jwtService *auth.JWTService, role string) string {
	t.Helper()
	accessToken, _, _, _, err := jwtService.GenerateTokenPair(auth.TokenSubject{
		UserID: 42, Email: "user@school.edu", Role: role, SchoolID: 7,
	})
	require.NoError(t, err)
	return accessToken
}

func doRequest(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Error.Code
}

func TestJWTAuthMissingHeader(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	w := doRequest(router, "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "TOKEN_REQUIRED", errorCode(t, w))
}

func TestJWTAuthMalformedHeader(t *testing.T) {
	router, jwtService := newTestRouter(t, nil)
	token := mintToken(t, jwtService, "TEACHER")

	// Raw token without the Bearer prefix is rejected.
	w := doRequest(router, token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "TOKEN_INVALID", errorCode(t, w))
}

func TestJWTAuthBadSignature(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	other := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "other-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
	})
	token := mintToken(t, other, "TEACHER")

	w := doRequest(router, "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "TOKEN_INVALID", errorCode(t, w))
}

func TestJWTAuthExpiredToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	expiredService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  -time.Minute,
		RefreshTokenExp: 24 * time.Hour,
	})
	token := mintToken(t, expiredService, "TEACHER")

	router, _ := newTestRouter(t, nil)
	w := doRequest(router, "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "TOKEN_EXPIRED", errorCode(t, w))
}

func TestJWTAuthValidTokenSetsActor(t *testing.T) {
	router, jwtService := newTestRouter(t, nil)
	token := mintToken(t, jwtService, "TEACHER")

	w := doRequest(router, "Bearer "+token)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"userId":42`)
	assert.Contains(t, w.Body.String(), `"schoolId":7`)
}

func TestJWTAuthDeniedToken(t *testing.T) {
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
	})
	token := mintToken(t, jwtService, "TEACHER")

	claims, err := jwtService.ValidateAndExtractClaims(token)
	require.NoError(t, err)

	router, _ := newTestRouter(t, &staticDenylist{denied: map[string]bool{claims.ID: true}})
	w := doRequest(router, "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "TOKEN_INVALID", errorCode(t, w))
}

func TestRoleRequiredAllows(t *testing.T) {
	router, jwtService := newTestRouter(t, nil, models.RoleAdmin, models.RoleTeacher)
	token := mintToken(t, jwtService, "TEACHER")

	w := doRequest(router, "Bearer "+token)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRoleRequiredForbids(t *testing.T) {
	router, jwtService := newTestRouter(t, nil, models.RoleAdmin)
	token := mintToken(t, jwtService, "STUDENT")

	w := doRequest(router, "Bearer "+token)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "INSUFFICIENT_PERMISSIONS", errorCode(t, w))
}
