package service

import (
	"context"
	"testing"
	"time"

	"quizroom/internal/config"
	"quizroom/internal/domain"
	"quizroom/internal/repository/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestAuthService(userRepo *MockUserRepository) *authService {
	return NewAuthService(userRepo, config.GoogleOAuthConfig{
		ClientID:    "client-id",
		RedirectURL: "http://localhost:8080/api/auth/google/callback",
	}, config.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 24 * time.Hour,
	}).(*authService)
}

func TestAuthService_GetGoogleLoginURL(t *testing.T) {
	svc := newTestAuthService(new(MockUserRepository))

	url := svc.GetGoogleLoginURL("state123")
	assert.Contains(t, url, "accounts.google.com")
	assert.Contains(t, url, "state=state123")
	assert.Contains(t, url, "client_id=client-id")
}

func TestAuthService_ValidateToken(t *testing.T) {
	svc := newTestAuthService(new(MockUserRepository))
	user := &models.User{ID: "user1", Role: RoleStudent}

	t.Run("RoundTrip", func(t *testing.T) {
		pair, err := svc.issueTokenPair(user)
		require.NoError(t, err)

		claims, err := svc.ValidateToken(pair.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, "user1", claims.UserID)
		assert.Equal(t, RoleStudent, claims.Role)
		assert.Equal(t, tokenTypeAccess, claims.TokenType)
	})

	t.Run("Garbage", func(t *testing.T) {
		_, err := svc.ValidateToken("not.a.jwt")
		var domainErr *domain.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.ErrUnauthorized, domainErr.Code)
	})

	t.Run("WrongSecret", func(t *testing.T) {
		other := newTestAuthService(new(MockUserRepository))
		other.jwtCfg.SecretKey = "different-secret"
		pair, err := other.issueTokenPair(user)
		require.NoError(t, err)

		_, err = svc.ValidateToken(pair.AccessToken)
		var domainErr *domain.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.ErrUnauthorized, domainErr.Code)
	})

	t.Run("Expired", func(t *testing.T) {
		short := newTestAuthService(new(MockUserRepository))
		short.jwtCfg.AccessTokenTTL = -time.Minute
		pair, err := short.issueTokenPair(user)
		require.NoError(t, err)

		_, err = svc.ValidateToken(pair.AccessToken)
		var domainErr *domain.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.ErrUnauthorized, domainErr.Code)
	})
}

func TestAuthService_RefreshTokens(t *testing.T) {
	ctx := context.Background()
	user := &models.User{ID: "user1", Role: RoleStudent}

	t.Run("Success", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := newTestAuthService(userRepo)
		userRepo.On("GetUserByID", mock.Anything, "user1").Return(user, nil)

		pair, err := svc.issueTokenPair(user)
		require.NoError(t, err)

		refreshed, err := svc.RefreshTokens(ctx, pair.RefreshToken)
		require.NoError(t, err)
		assert.NotEmpty(t, refreshed.AccessToken)
		assert.NotEmpty(t, refreshed.RefreshToken)
	})

	t.Run("AccessTokenRejected", func(t *testing.T) {
		svc := newTestAuthService(new(MockUserRepository))
		pair, err := svc.issueTokenPair(user)
		require.NoError(t, err)

		_, err = svc.RefreshTokens(ctx, pair.AccessToken)
		var domainErr *domain.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.ErrUnauthorized, domainErr.Code)
	})

	t.Run("DeletedUser", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := newTestAuthService(userRepo)
		userRepo.On("GetUserByID", mock.Anything, "user1").Return(nil, nil)

		pair, err := svc.issueTokenPair(user)
		require.NoError(t, err)

		_, err = svc.RefreshTokens(ctx, pair.RefreshToken)
		var domainErr *domain.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.ErrUnauthorized, domainErr.Code)
	})
}
