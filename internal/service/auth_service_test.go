package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/geospatial-academy/training-hub-api/internal/models"
	"github.com/geospatial-academy/training-hub-api/internal/repository/memory"
	appErrors "github.com/geospatial-academy/training-hub-api/pkg/errors"
)

func newAuthFixture(t *testing.T) (*AuthService, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	svc := NewAuthService(store.Users(), nil, nil, AuthConfig{
		AccessTokenSecret:  "test-secret",
		AccessTokenExpiry:  time.Hour,
		RefreshTokenExpiry: 24 * time.Hour,
		Issuer:             "training-hub-api",
	})
	return svc, store
}

func seedAdmin(t *testing.T, store *memory.Store, username, password string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, store.Users().Create(context.Background(), &models.User{
		Username: username, PasswordHash: string(hash), Role: models.RoleAdmin,
	}))
}

func TestAuthLoginIssuesValidTokens(t *testing.T) {
	svc, store := newAuthFixture(t)
	seedAdmin(t, store, "admin@geospatialacademy.com", "s3cret")

	resp, err := svc.Login(context.Background(), models.LoginRequest{
		Username: "admin@geospatialacademy.com", Password: "s3cret",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, models.RoleAdmin, resp.User.Role)

	claims, err := svc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "admin@geospatialacademy.com", claims.Username)
	assert.Equal(t, models.RoleAdmin, claims.Role)
}

func TestAuthLoginWrongPassword(t *testing.T) {
	svc, store := newAuthFixture(t)
	seedAdmin(t, store, "admin@geospatialacademy.com", "s3cret")

	_, err := svc.Login(context.Background(), models.LoginRequest{
		Username: "admin@geospatialacademy.com", Password: "wrong",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestAuthLoginUnknownUser(t *testing.T) {
	svc, _ := newAuthFixture(t)
	_, err := svc.Login(context.Background(), models.LoginRequest{
		Username: "nobody@example.com", Password: "whatever",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestAuthRefreshRotatesToken(t *testing.T) {
	svc, store := newAuthFixture(t)
	seedAdmin(t, store, "admin@geospatialacademy.com", "s3cret")
	ctx := context.Background()

	login, err := svc.Login(ctx, models.LoginRequest{
		Username: "admin@geospatialacademy.com", Password: "s3cret",
	})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(ctx, login.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)

	// The consumed token is single-use.
	_, err = svc.Refresh(ctx, login.RefreshToken)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}

func TestAuthLogoutRevokesToken(t *testing.T) {
	svc, store := newAuthFixture(t)
	seedAdmin(t, store, "admin@geospatialacademy.com", "s3cret")
	ctx := context.Background()

	login, err := svc.Login(ctx, models.LoginRequest{
		Username: "admin@geospatialacademy.com", Password: "s3cret",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, login.RefreshToken, login.User.ID))

	_, err = svc.Refresh(ctx, login.RefreshToken)
	require.Error(t, err)
}

func TestAuthValidateTokenRejectsGarbage(t *testing.T) {
	svc, _ := newAuthFixture(t)
	_, err := svc.ValidateToken("not-a-token")
	require.Error(t, err)
}

func TestAuthEnsureAdminIdempotent(t *testing.T) {
	svc, store := newAuthFixture(t)
	ctx := context.Background()

	require.NoError(t, svc.EnsureAdmin(ctx, "admin@geospatialacademy.com", "s3cret"))
	require.NoError(t, svc.EnsureAdmin(ctx, "admin@geospatialacademy.com", "s3cret"))

	total, err := store.Users().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, total)

	_, err = svc.Login(ctx, models.LoginRequest{
		Username: "admin@geospatialacademy.com", Password: "s3cret",
	})
	require.NoError(t, err)
}

func TestAuthEnsureAdminSkippedWithoutPassword(t *testing.T) {
	svc, store := newAuthFixture(t)
	require.NoError(t, svc.EnsureAdmin(context.Background(), "admin@geospatialacademy.com", ""))
	total, err := store.Users().Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, total)
}
