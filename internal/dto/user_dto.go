package dto

import "github.com/golang-jwt/jwt/v5"

// AuthClaims are the JWT claims carried by access and refresh tokens.
type AuthClaims struct {
	UserID    string `json:"uid"`
	Role      string `json:"role"`
	TokenType string `json:"typ"`
	jwt.RegisteredClaims
}

// GoogleUserInfo is the profile payload returned by Google's userinfo endpoint.
type GoogleUserInfo struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// TokenResponse carries a fresh token pair.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// RefreshTokenRequest asks for a new token pair.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// UserProfileResponse is the caller's own profile.
type UserProfileResponse struct {
	ID                string `json:"id"`
	Email             string `json:"email"`
	DisplayName       string `json:"display_name,omitempty"`
	ProfilePictureURL string `json:"profile_picture_url,omitempty"`
	Role              string `json:"role"`
}

// UpdateProfileRequest edits the caller's display name.
type UpdateProfileRequest struct {
	DisplayName string `json:"display_name"`
}
