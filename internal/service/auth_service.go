package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"quizroom/internal/config"
	"quizroom/internal/domain"
	"quizroom/internal/dto"
	"quizroom/internal/logger"
	"quizroom/internal/repository"
	"quizroom/internal/repository/models"
	"quizroom/internal/util"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"

	// RoleStudent is the default for new sign-ups; teachers are promoted
	// out of band.
	RoleStudent = "student"
	RoleTeacher = "teacher"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// AuthService handles Google OAuth sign-in and JWT issuance.
type AuthService interface {
	GetGoogleLoginURL(state string) string
	HandleGoogleCallback(ctx context.Context, code string) (*dto.TokenResponse, error)
	RefreshTokens(ctx context.Context, refreshToken string) (*dto.TokenResponse, error)
	ValidateToken(tokenString string) (*dto.AuthClaims, error)
}

type authService struct {
	userRepo repository.UserRepository
	oauthCfg *oauth2.Config
	jwtCfg   config.JWTConfig
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, oauthCfg config.GoogleOAuthConfig, jwtCfg config.JWTConfig) AuthService {
	return &authService{
		userRepo: userRepo,
		oauthCfg: &oauth2.Config{
			ClientID:     oauthCfg.ClientID,
			ClientSecret: oauthCfg.ClientSecret,
			RedirectURL:  oauthCfg.RedirectURL,
			Scopes:       []string{"https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"},
			Endpoint:     google.Endpoint,
		},
		jwtCfg: jwtCfg,
	}
}

// GetGoogleLoginURL builds the Google consent-screen URL for the given state.
func (s *authService) GetGoogleLoginURL(state string) string {
	return s.oauthCfg.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// HandleGoogleCallback exchanges the authorization code, loads the Google
// profile, upserts the user, and issues a token pair.
func (s *authService) HandleGoogleCallback(ctx context.Context, code string) (*dto.TokenResponse, error) {
	token, err := s.oauthCfg.Exchange(ctx, code)
	if err != nil {
		return nil, domain.NewUnauthorizedError("failed to exchange authorization code")
	}

	info, err := s.fetchGoogleUserInfo(ctx, token)
	if err != nil {
		return nil, domain.NewInternalError("failed to fetch Google user info", err)
	}

	user, err := s.findOrCreateUser(ctx, info)
	if err != nil {
		return nil, err
	}

	return s.issueTokenPair(user)
}

// RefreshTokens validates a refresh token and issues a fresh pair.
func (s *authService) RefreshTokens(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	claims, err := s.ValidateToken(refreshToken)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != tokenTypeRefresh {
		return nil, domain.NewUnauthorizedError("not a refresh token")
	}

	user, err := s.userRepo.GetUserByID(ctx, claims.UserID)
	if err != nil {
		return nil, domain.NewInternalError("failed to load user", err)
	}
	if user == nil {
		return nil, domain.NewUnauthorizedError("user no longer exists")
	}

	return s.issueTokenPair(user)
}

// ValidateToken parses and verifies a JWT, returning its claims.
func (s *authService) ValidateToken(tokenString string) (*dto.AuthClaims, error) {
	claims := &dto.AuthClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.jwtCfg.SecretKey), nil
	})
	if err != nil || !token.Valid {
		return nil, domain.NewUnauthorizedError("invalid or expired token")
	}
	return claims, nil
}

func (s *authService) fetchGoogleUserInfo(ctx context.Context, token *oauth2.Token) (*dto.GoogleUserInfo, error) {
	resp, err := s.oauthCfg.Client(ctx, token).Get(googleUserInfoURL)
	if err != nil {
		return nil, fmt.Errorf("userinfo request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("userinfo request returned status %d", resp.StatusCode)
	}

	var info dto.GoogleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("failed to decode userinfo: %w", err)
	}
	if info.ID == "" || info.Email == "" {
		return nil, fmt.Errorf("userinfo response missing id or email")
	}
	return &info, nil
}

func (s *authService) findOrCreateUser(ctx context.Context, info *dto.GoogleUserInfo) (*models.User, error) {
	user, err := s.userRepo.GetUserByGoogleID(ctx, info.ID)
	if err != nil {
		return nil, domain.NewInternalError("failed to look up user", err)
	}

	if user == nil {
		user = &models.User{
			ID:                util.NewULID(),
			GoogleID:          info.ID,
			Email:             info.Email,
			DisplayName:       util.StringToNullString(info.Name),
			ProfilePictureURL: util.StringToNullString(info.Picture),
			Role:              RoleStudent,
		}
		if err := s.userRepo.CreateUser(ctx, user); err != nil {
			return nil, domain.NewInternalError("failed to create user", err)
		}
		logger.Get().Info("New user registered",
			zap.String("userID", user.ID),
			zap.String("email", user.Email))
		return user, nil
	}

	// Keep the profile in sync with Google on every sign-in.
	user.Email = info.Email
	user.ProfilePictureURL = util.StringToNullString(info.Picture)
	if !user.DisplayName.Valid || user.DisplayName.String == "" {
		user.DisplayName = util.StringToNullString(info.Name)
	}
	if err := s.userRepo.UpdateUser(ctx, user); err != nil {
		return nil, domain.NewInternalError("failed to update user", err)
	}
	return user, nil
}

func (s *authService) issueTokenPair(user *models.User) (*dto.TokenResponse, error) {
	access, err := s.signToken(user, tokenTypeAccess, s.jwtCfg.AccessTokenTTL)
	if err != nil {
		return nil, domain.NewInternalError("failed to sign access token", err)
	}
	refresh, err := s.signToken(user, tokenTypeRefresh, s.jwtCfg.RefreshTokenTTL)
	if err != nil {
		return nil, domain.NewInternalError("failed to sign refresh token", err)
	}
	return &dto.TokenResponse{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *authService) signToken(user *models.User, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := dto.AuthClaims{
		UserID:    user.ID,
		Role:      user.Role,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtCfg.SecretKey))
}
