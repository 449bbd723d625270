package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Scaleupapp-nirpeksh/projectX/internal/infrastructure/auth"
	"github.com/Scaleupapp-nirpeksh/projectX/internal/infrastructure/config"
)

func newMiddlewareJWTService(accessTTL time.Duration) *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "middleware-test-secret-32-characters",
		AccessTokenExpiration:  accessTTL,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "projectx-test",
		MaxRefreshCount:        3,
	})
}

func issueAccessToken(t *testing.T, svc *auth.JWTService, role string) (string, *auth.Claims) {
	t.Helper()

	pair, err := svc.GenerateTokenPair(auth.GenerateTokenInput{
		OrganizationID: uuid.New(),
		UserID:         uuid.New(),
		Email:          "user@example.com",
		Role:           role,
	})
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)
	return pair.AccessToken, claims
}

type capturedIdentity struct {
	claims         *auth.Claims
	userID         string
	organizationID string
	role           string
}

func newAuthRouter(cfg JWTMiddlewareConfig) (*gin.Engine, *capturedIdentity) {
	captured := &capturedIdentity{}
	router := gin.New()
	router.Use(JWTAuthMiddlewareWithConfig(cfg))
	router.GET("/records", func(c *gin.Context) {
		captured.claims = GetJWTClaims(c)
		captured.userID = GetJWTUserID(c)
		captured.organizationID = GetJWTOrganizationID(c)
		captured.role = GetJWTRole(c)
		c.String(http.StatusOK, "ok")
	})
	return router, captured
}

func serveWithToken(router *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set(AuthHeaderKey, BearerPrefix+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestJWTAuthMiddleware_ValidToken(t *testing.T) {
	svc := newMiddlewareJWTService(15 * time.Minute)
	token, claims := issueAccessToken(t, svc, "admin")

	router, captured := newAuthRouter(JWTMiddlewareConfig{JWTService: svc})
	w := serveWithToken(router, "/records", token)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, claims.UserID, captured.userID)
	assert.Equal(t, claims.OrganizationID, captured.organizationID)
	assert.Equal(t, "admin", captured.role)
	require.NotNil(t, captured.claims)
	assert.Equal(t, claims.ID, captured.claims.ID)
}

func TestJWTAuthMiddleware_Rejections(t *testing.T) {
	svc := newMiddlewareJWTService(15 * time.Minute)
	router, _ := newAuthRouter(JWTMiddlewareConfig{JWTService: svc})

	t.Run("missing header", func(t *testing.T) {
		w := serveWithToken(router, "/records", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("wrong scheme", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/records", nil)
		req.Header.Set(AuthHeaderKey, "Basic dXNlcjpwYXNz")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		w := serveWithToken(router, "/records", "not-a-token")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "TOKEN_INVALID")
	})

	t.Run("expired token", func(t *testing.T) {
		expiredSvc := newMiddlewareJWTService(-1 * time.Minute)
		pair, err := expiredSvc.GenerateTokenPair(auth.GenerateTokenInput{
			OrganizationID: uuid.New(),
			UserID:         uuid.New(),
		})
		require.NoError(t, err)

		expiredRouter, _ := newAuthRouter(JWTMiddlewareConfig{JWTService: expiredSvc})
		w := serveWithToken(expiredRouter, "/records", pair.AccessToken)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "TOKEN_EXPIRED")
	})

	t.Run("refresh token rejected on access endpoints", func(t *testing.T) {
		pair, err := svc.GenerateTokenPair(auth.GenerateTokenInput{
			OrganizationID: uuid.New(),
			UserID:         uuid.New(),
		})
		require.NoError(t, err)

		w := serveWithToken(router, "/records", pair.RefreshToken)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestJWTAuthMiddleware_SkipPaths(t *testing.T) {
	svc := newMiddlewareJWTService(15 * time.Minute)

	router := gin.New()
	router.Use(JWTAuthMiddlewareWithConfig(JWTMiddlewareConfig{
		JWTService: svc,
		SkipPaths:  []string{"/health"},
	}))
	router.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestJWTAuthMiddleware_RevokedToken(t *testing.T) {
	svc := newMiddlewareJWTService(15 * time.Minute)
	blacklist := auth.NewInMemoryTokenBlacklist()

	router, _ := newAuthRouter(JWTMiddlewareConfig{
		JWTService:     svc,
		TokenBlacklist: blacklist,
	})

	token, claims := issueAccessToken(t, svc, "member")

	w := serveWithToken(router, "/records", token)
	require.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, blacklist.Revoke(context.Background(), claims.ID, time.Hour))

	w = serveWithToken(router, "/records", token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "TOKEN_REVOKED")
}

func TestJWTAuthMiddleware_UserWideRevocation(t *testing.T) {
	svc := newMiddlewareJWTService(15 * time.Minute)
	blacklist := auth.NewInMemoryTokenBlacklist()

	router, _ := newAuthRouter(JWTMiddlewareConfig{
		JWTService:     svc,
		TokenBlacklist: blacklist,
	})

	token, claims := issueAccessToken(t, svc, "member")

	require.NoError(t, blacklist.RevokeAllForUser(context.Background(), claims.UserID, time.Hour))

	w := serveWithToken(router, "/records", token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "TOKEN_REVOKED")
}

func TestRequireAdmin(t *testing.T) {
	svc := newMiddlewareJWTService(15 * time.Minute)

	router := gin.New()
	router.Use(JWTAuthMiddlewareWithConfig(JWTMiddlewareConfig{JWTService: svc}))
	router.GET("/admin", RequireAdmin(), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	t.Run("admin passes", func(t *testing.T) {
		token, _ := issueAccessToken(t, svc, "admin")
		w := serveWithToken(router, "/admin", token)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("member is forbidden", func(t *testing.T) {
		token, _ := issueAccessToken(t, svc, "member")
		w := serveWithToken(router, "/admin", token)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "FORBIDDEN")
	})

	t.Run("unauthenticated is forbidden", func(t *testing.T) {
		unguarded := gin.New()
		unguarded.GET("/admin", RequireAdmin(), func(c *gin.Context) {
			c.String(http.StatusOK, "ok")
		})

		w := httptest.NewRecorder()
		unguarded.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
