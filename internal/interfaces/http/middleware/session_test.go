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

	"github.com/faithconnect/backend/internal/domain/identity"
	"github.com/faithconnect/backend/internal/infrastructure/auth"
	"github.com/faithconnect/backend/internal/infrastructure/config"
)

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-for-middleware",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "faithconnect-test",
	})
}

func sessionTestRouter(jwtService *auth.JWTService, blacklist auth.TokenBlacklist) *gin.Engine {
	router := gin.New()
	router.Use(Session(jwtService, blacklist, nil))
	router.GET("/whoami", func(c *gin.Context) {
		session := SessionFromContext(c)
		if session == nil {
			c.String(http.StatusOK, "anonymous")
			return
		}
		c.String(http.StatusOK, session.Email)
	})
	return router
}

func TestSession_ValidToken(t *testing.T) {
	jwtService := newTestJWTService()
	router := sessionTestRouter(jwtService, nil)

	pair, err := jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID: uuid.New(),
		Email:  "grace@faithconnect.org",
		Role:   identity.RoleMember,
	})
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "grace@faithconnect.org", w.Body.String())
}

func TestSession_NoToken(t *testing.T) {
	router := sessionTestRouter(newTestJWTService(), nil)

	req := httptest.NewRequest("GET", "/whoami", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "anonymous", w.Body.String())
}

func TestSession_MalformedHeader(t *testing.T) {
	router := sessionTestRouter(newTestJWTService(), nil)

	for _, header := range []string{"Bearer", "Basic dXNlcjpwYXNz", "Bearer  "} {
		req := httptest.NewRequest("GET", "/whoami", nil)
		req.Header.Set("Authorization", header)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, "anonymous", w.Body.String(), "header %q", header)
	}
}

func TestSession_GarbageToken(t *testing.T) {
	router := sessionTestRouter(newTestJWTService(), nil)

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer not.a.jwt")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "anonymous", w.Body.String())
}

func TestSession_RefreshTokenRejected(t *testing.T) {
	jwtService := newTestJWTService()
	router := sessionTestRouter(jwtService, nil)

	pair, err := jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID: uuid.New(),
		Email:  "grace@faithconnect.org",
		Role:   identity.RoleMember,
	})
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+pair.RefreshToken)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "anonymous", w.Body.String())
}

func TestSession_InvalidatedUserTokens(t *testing.T) {
	jwtService := newTestJWTService()
	blacklist := auth.NewInMemoryTokenBlacklist()
	router := sessionTestRouter(jwtService, blacklist)

	userID := uuid.New()
	pair, err := jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID: userID,
		Email:  "grace@faithconnect.org",
		Role:   identity.RoleMember,
	})
	require.NoError(t, err)

	// All tokens issued before the invalidation mark stop working
	time.Sleep(10 * time.Millisecond)
	require.NoError(t, blacklist.AddUserTokensToBlacklist(context.Background(), userID.String(), time.Hour))

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "anonymous", w.Body.String())
}
