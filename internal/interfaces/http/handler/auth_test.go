package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appidentity "github.com/faithconnect/backend/internal/application/identity"
	"github.com/faithconnect/backend/internal/domain/identity"
	"github.com/faithconnect/backend/internal/domain/shared"
	"github.com/faithconnect/backend/internal/infrastructure/auth"
	"github.com/faithconnect/backend/internal/infrastructure/config"
	"github.com/faithconnect/backend/internal/interfaces/http/middleware"
)

type memProfileRepo struct {
	profiles map[uuid.UUID]*identity.Profile
}

func newMemProfileRepo() *memProfileRepo {
	return &memProfileRepo{profiles: map[uuid.UUID]*identity.Profile{}}
}

func (r *memProfileRepo) Create(_ context.Context, p *identity.Profile) error {
	r.profiles[p.ID] = p
	return nil
}

func (r *memProfileRepo) Update(_ context.Context, p *identity.Profile) error {
	r.profiles[p.ID] = p
	return nil
}

func (r *memProfileRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.profiles, id)
	return nil
}

func (r *memProfileRepo) FindByID(_ context.Context, id uuid.UUID) (*identity.Profile, error) {
	if p, ok := r.profiles[id]; ok {
		return p, nil
	}
	return nil, shared.ErrNotFound
}

func (r *memProfileRepo) FindByEmail(_ context.Context, email string) (*identity.Profile, error) {
	for _, p := range r.profiles {
		if strings.EqualFold(p.Email, email) {
			return p, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memProfileRepo) FindAll(_ context.Context, filter identity.ProfileFilter) ([]*identity.Profile, int64, error) {
	all := make([]*identity.Profile, 0, len(r.profiles))
	for _, p := range r.profiles {
		all = append(all, p)
	}
	return all, int64(len(all)), nil
}

func (r *memProfileRepo) FindByBranch(_ context.Context, branchID uuid.UUID) ([]*identity.Profile, error) {
	var out []*identity.Profile
	for _, p := range r.profiles {
		if p.BranchID != nil && *p.BranchID == branchID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memProfileRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, err := r.FindByEmail(context.Background(), email)
	return err == nil, nil
}

func (r *memProfileRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.profiles)), nil
}

type authFixture struct {
	router *gin.Engine
	repo   *memProfileRepo
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	repo := newMemProfileRepo()
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "handler-test-secret",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "faithconnect-test",
	})
	blacklist := auth.NewInMemoryTokenBlacklist()

	authService := appidentity.NewAuthService(repo, jwtService, blacklist, appidentity.DefaultAuthServiceConfig(), nil)
	h := NewAuthHandler(authService)

	router := gin.New()
	api := router.Group("/api/v1")
	h.RegisterRoutes(api)

	authed := api.Group("")
	authed.Use(middleware.Session(jwtService, blacklist, nil))
	h.RegisterSessionRoutes(authed)

	return &authFixture{router: router, repo: repo}
}

func (f *authFixture) seedAccount(t *testing.T, email, password string) *identity.Profile {
	t.Helper()
	profile, err := identity.NewProfile(email, password)
	require.NoError(t, err)
	require.NoError(t, f.repo.Create(context.Background(), profile))
	return profile
}

func (f *authFixture) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_LoginAndLogout(t *testing.T) {
	f := newAuthFixture(t)
	f.seedAccount(t, "ruth@faithconnect.org", "opening-Hymn-22")

	w := f.do("POST", "/api/v1/auth/login", "", gin.H{
		"email":    "ruth@faithconnect.org",
		"password": "opening-Hymn-22",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var login struct {
		Success bool          `json:"success"`
		Data    LoginResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))
	assert.True(t, login.Success)
	assert.NotEmpty(t, login.Data.AccessToken)
	assert.Equal(t, "ruth@faithconnect.org", login.Data.User.Email)

	// The issued token signs the account out
	w = f.do("POST", "/api/v1/auth/logout", login.Data.AccessToken, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	// After logout the token is dead
	w = f.do("POST", "/api/v1/auth/logout", login.Data.AccessToken, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_LoginWrongPassword(t *testing.T) {
	f := newAuthFixture(t)
	f.seedAccount(t, "ruth@faithconnect.org", "opening-Hymn-22")

	w := f.do("POST", "/api/v1/auth/login", "", gin.H{
		"email":    "ruth@faithconnect.org",
		"password": "wrong",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	body := decodeError(t, w)
	assert.Equal(t, "INVALID_CREDENTIALS", body.Error.Code)
}

func TestAuthHandler_LoginValidation(t *testing.T) {
	f := newAuthFixture(t)

	w := f.do("POST", "/api/v1/auth/login", "", gin.H{"email": "not-an-email"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_Refresh(t *testing.T) {
	f := newAuthFixture(t)
	f.seedAccount(t, "ruth@faithconnect.org", "opening-Hymn-22")

	w := f.do("POST", "/api/v1/auth/login", "", gin.H{
		"email":    "ruth@faithconnect.org",
		"password": "opening-Hymn-22",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var login struct {
		Data LoginResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))

	w = f.do("POST", "/api/v1/auth/refresh", "", gin.H{
		"refresh_token": login.Data.RefreshToken,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var refreshed struct {
		Data TokenResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &refreshed))
	assert.NotEmpty(t, refreshed.Data.AccessToken)
}

func TestAuthHandler_ChangePassword(t *testing.T) {
	f := newAuthFixture(t)
	f.seedAccount(t, "ruth@faithconnect.org", "opening-Hymn-22")

	w := f.do("POST", "/api/v1/auth/login", "", gin.H{
		"email":    "ruth@faithconnect.org",
		"password": "opening-Hymn-22",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var login struct {
		Data LoginResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))

	w = f.do("POST", "/api/v1/auth/change-password", login.Data.AccessToken, gin.H{
		"old_password": "opening-Hymn-22",
		"new_password": "closing-Hymn-99",
	})
	assert.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

	// Old password no longer works
	w = f.do("POST", "/api/v1/auth/login", "", gin.H{
		"email":    "ruth@faithconnect.org",
		"password": "opening-Hymn-22",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// New one does
	w = f.do("POST", "/api/v1/auth/login", "", gin.H{
		"email":    "ruth@faithconnect.org",
		"password": "closing-Hymn-99",
	})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthHandler_PasswordResetDoesNotProbeEmails(t *testing.T) {
	f := newAuthFixture(t)
	f.seedAccount(t, "ruth@faithconnect.org", "opening-Hymn-22")

	known := f.do("POST", "/api/v1/auth/password-reset", "", gin.H{"email": "ruth@faithconnect.org"})
	unknown := f.do("POST", "/api/v1/auth/password-reset", "", gin.H{"email": "ghost@faithconnect.org"})

	assert.Equal(t, http.StatusOK, known.Code)
	assert.Equal(t, http.StatusOK, unknown.Code)
	assert.Equal(t, known.Body.String(), unknown.Body.String())
}
