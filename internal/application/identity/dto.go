package identity

import (
	"time"

	"github.com/google/uuid"

	"github.com/faithconnect/backend/internal/domain/identity"
)

// LoginInput contains the input for login
type LoginInput struct {
	Email    string
	Password string
	IP       string // Client IP for login tracking
}

// LoginResult contains the result of a successful login
type LoginResult struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
	TokenType             string
	User                  UserInfo
}

// UserInfo contains the profile summary returned to the client
type UserInfo struct {
	ID                 uuid.UUID
	Email              string
	FullName           string
	Phone              string
	AvatarURL          string
	Role               string
	BranchID           *uuid.UUID
	MustChangePassword bool
}

// UserInfoFromProfile builds the client-facing summary of a profile
func UserInfoFromProfile(p *identity.Profile) UserInfo {
	return UserInfo{
		ID:                 p.ID,
		Email:              p.Email,
		FullName:           p.FullName,
		Phone:              p.Phone,
		AvatarURL:          p.AvatarURL,
		Role:               p.Role.String(),
		BranchID:           p.BranchID,
		MustChangePassword: p.MustChangePassword,
	}
}

// RefreshTokenInput contains the input for token refresh
type RefreshTokenInput struct {
	RefreshToken string
}

// RefreshTokenResult contains the result of a token refresh
type RefreshTokenResult struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
	TokenType             string
}

// LogoutInput contains the input for logout
type LogoutInput struct {
	UserID   uuid.UUID
	TokenJTI string
	TokenTTL time.Duration // Remaining lifetime of the access token
}

// ChangePasswordInput contains the input for a password change
type ChangePasswordInput struct {
	UserID      uuid.UUID
	OldPassword string
	NewPassword string
}

// UpdateContactInput contains the input for a profile contact update
type UpdateContactInput struct {
	UserID    uuid.UUID
	FullName  *string
	Phone     *string
	AvatarURL *string
}

// CreateManagedUserInput contains the input for an admin-created account
type CreateManagedUserInput struct {
	Email        string
	TempPassword string
	FullName     string
	Role         string
	BranchID     *uuid.UUID
}

// UpdateUserRoleInput contains the input for a role or branch change
type UpdateUserRoleInput struct {
	UserID   uuid.UUID
	Role     string
	BranchID *uuid.UUID
}

// ListUsersInput contains filters for the superadmin users page
type ListUsersInput struct {
	Keyword  string
	Role     string
	BranchID *uuid.UUID
	Page     int
	PageSize int
}

// ListUsersResult contains one page of profiles
type ListUsersResult struct {
	Users    []UserInfo
	Total    int64
	Page     int
	PageSize int
}
