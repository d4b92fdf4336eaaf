package handler

import (
	"time"

	"github.com/google/uuid"

	appidentity "github.com/faithconnect/backend/internal/application/identity"
)

// LoginRequest is the request body for login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest is the request body for token refresh
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// ChangePasswordRequest is the request body for a password change
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// PasswordResetRequest is the request body for a password reset request
type PasswordResetRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// UpdateProfileRequest is the request body for a profile contact update
type UpdateProfileRequest struct {
	FullName  *string `json:"full_name"`
	Phone     *string `json:"phone"`
	AvatarURL *string `json:"avatar_url"`
}

// UserResponse is the client-facing account shape
type UserResponse struct {
	ID                 uuid.UUID  `json:"id"`
	Email              string     `json:"email"`
	FullName           string     `json:"full_name"`
	Phone              string     `json:"phone,omitempty"`
	AvatarURL          string     `json:"avatar_url,omitempty"`
	Role               string     `json:"role"`
	BranchID           *uuid.UUID `json:"branch_id,omitempty"`
	MustChangePassword bool       `json:"must_change_password"`
}

// TokenResponse carries an issued token pair
type TokenResponse struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
}

// LoginResponse is the response body for a successful login
type LoginResponse struct {
	TokenResponse
	User UserResponse `json:"user"`
}

func userResponseFromInfo(info appidentity.UserInfo) UserResponse {
	return UserResponse{
		ID:                 info.ID,
		Email:              info.Email,
		FullName:           info.FullName,
		Phone:              info.Phone,
		AvatarURL:          info.AvatarURL,
		Role:               info.Role,
		BranchID:           info.BranchID,
		MustChangePassword: info.MustChangePassword,
	}
}

func loginResponseFromResult(result *appidentity.LoginResult) LoginResponse {
	return LoginResponse{
		TokenResponse: TokenResponse{
			AccessToken:           result.AccessToken,
			RefreshToken:          result.RefreshToken,
			AccessTokenExpiresAt:  result.AccessTokenExpiresAt,
			RefreshTokenExpiresAt: result.RefreshTokenExpiresAt,
			TokenType:             result.TokenType,
		},
		User: userResponseFromInfo(result.User),
	}
}

func tokenResponseFromRefresh(result *appidentity.RefreshTokenResult) TokenResponse {
	return TokenResponse{
		AccessToken:           result.AccessToken,
		RefreshToken:          result.RefreshToken,
		AccessTokenExpiresAt:  result.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: result.RefreshTokenExpiresAt,
		TokenType:             result.TokenType,
	}
}
