package identity

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/faithconnect/backend/internal/domain/identity"
	"github.com/faithconnect/backend/internal/domain/shared"
	"github.com/faithconnect/backend/internal/infrastructure/auth"
)

// AuthServiceConfig contains configuration for the auth service
type AuthServiceConfig struct {
	MaxLoginAttempts int           // Failed attempts before locking the account
	LockDuration     time.Duration // How long the lock lasts
}

// DefaultAuthServiceConfig returns default configuration
func DefaultAuthServiceConfig() AuthServiceConfig {
	return AuthServiceConfig{
		MaxLoginAttempts: 5,
		LockDuration:     15 * time.Minute,
	}
}

// AuthService handles authentication operations
type AuthService struct {
	profileRepo identity.ProfileRepository
	jwtService  *auth.JWTService
	blacklist   auth.TokenBlacklist
	config      AuthServiceConfig
	logger      *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	profileRepo identity.ProfileRepository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	config AuthServiceConfig,
	logger *zap.Logger,
) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		profileRepo: profileRepo,
		jwtService:  jwtService,
		blacklist:   blacklist,
		config:      config,
		logger:      logger,
	}
}

// Login authenticates an account and returns a token pair
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	s.logger.Info("Login attempt", zap.String("email", input.Email))

	profile, err := s.profileRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		s.logger.Warn("Profile not found during login", zap.String("email", input.Email))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	if !profile.CanLogin() {
		if profile.IsLocked() {
			s.logger.Warn("Login attempt for locked account", zap.String("email", input.Email))
			return nil, shared.NewDomainError("ACCOUNT_LOCKED", "Account is locked. Please try again later or contact support")
		}
		s.logger.Warn("Login attempt for disabled account", zap.String("email", input.Email))
		return nil, shared.NewDomainError("ACCOUNT_DISABLED", "Account has been disabled")
	}

	if !profile.VerifyPassword(input.Password) {
		locked := profile.RecordLoginFailure(s.config.MaxLoginAttempts, s.config.LockDuration)
		if err := s.profileRepo.Update(ctx, profile); err != nil {
			s.logger.Error("Failed to update profile after login failure", zap.Error(err))
		}

		if locked {
			s.logger.Warn("Account locked after too many failed attempts",
				zap.String("email", input.Email),
				zap.Int("attempts", s.config.MaxLoginAttempts))
			return nil, shared.NewDomainError("ACCOUNT_LOCKED", "Too many failed login attempts. Account has been locked")
		}

		s.logger.Warn("Invalid password attempt",
			zap.String("email", input.Email),
			zap.Int("failed_attempts", profile.FailedAttempts))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID:   profile.ID,
		Email:    profile.Email,
		Role:     profile.Role,
		BranchID: profile.BranchID,
	})
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication tokens")
	}

	profile.RecordLoginSuccess(input.IP)
	if err := s.profileRepo.Update(ctx, profile); err != nil {
		// Don't fail the login over bookkeeping
		s.logger.Error("Failed to update profile after successful login", zap.Error(err))
	}

	s.logger.Info("Signed in",
		zap.String("email", profile.Email),
		zap.String("user_id", profile.ID.String()),
		zap.String("role", profile.Role.String()))

	return &LoginResult{
		AccessToken:           tokenPair.AccessToken,
		RefreshToken:          tokenPair.RefreshToken,
		AccessTokenExpiresAt:  tokenPair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: tokenPair.RefreshTokenExpiresAt,
		TokenType:             tokenPair.TokenType,
		User:                  UserInfoFromProfile(profile),
	}, nil
}

// RefreshToken exchanges a valid refresh token for a new pair. Role and
// branch are re-read from the store, so a demoted account cannot refresh
// its way back to elevated claims.
func (s *AuthService) RefreshToken(ctx context.Context, input RefreshTokenInput) (*RefreshTokenResult, error) {
	claims, err := s.jwtService.ValidateRefreshToken(input.RefreshToken)
	if err != nil {
		s.logger.Warn("Refresh token validation failed", zap.Error(err))
		return nil, mapTokenError(err)
	}

	userID, err := claims.GetUserUUID()
	if err != nil {
		return nil, shared.NewDomainError("TOKEN_INVALID", "Invalid user ID in token")
	}

	invalidated, err := s.blacklist.IsUserTokenInvalidated(ctx, claims.UserID, claims.GetIssuedAtTime())
	if err != nil {
		s.logger.Error("Blacklist check failed during refresh", zap.Error(err))
	} else if invalidated {
		return nil, shared.NewDomainError("TOKEN_REVOKED", "Session has been revoked. Please sign in again")
	}

	profile, err := s.profileRepo.FindByID(ctx, userID)
	if err != nil {
		s.logger.Warn("Profile not found during token refresh", zap.String("user_id", userID.String()))
		return nil, shared.NewDomainError("USER_NOT_FOUND", "Account not found")
	}

	if !profile.CanLogin() {
		s.logger.Warn("Token refresh for inactive account", zap.String("user_id", userID.String()))
		return nil, shared.NewDomainError("ACCOUNT_DISABLED", "Account is no longer active")
	}

	tokenPair, err := s.jwtService.RefreshTokenPair(input.RefreshToken, profile.Role, profile.BranchID)
	if err != nil {
		s.logger.Warn("Token refresh failed", zap.Error(err))
		return nil, mapTokenError(err)
	}

	return &RefreshTokenResult{
		AccessToken:           tokenPair.AccessToken,
		RefreshToken:          tokenPair.RefreshToken,
		AccessTokenExpiresAt:  tokenPair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: tokenPair.RefreshTokenExpiresAt,
		TokenType:             tokenPair.TokenType,
	}, nil
}

// Logout blacklists the current access token for its remaining lifetime
func (s *AuthService) Logout(ctx context.Context, input LogoutInput) error {
	if input.TokenJTI != "" && input.TokenTTL > 0 {
		if err := s.blacklist.AddToBlacklist(ctx, input.TokenJTI, input.TokenTTL); err != nil {
			s.logger.Error("Failed to blacklist token on logout",
				zap.String("user_id", input.UserID.String()),
				zap.Error(err))
			return shared.NewDomainError("INTERNAL_ERROR", "Failed to sign out")
		}
	}

	s.logger.Info("Signed out", zap.String("user_id", input.UserID.String()))
	return nil
}

// ForceLogout revokes every outstanding token for an account. Used after
// a role change so stale elevated claims die immediately.
func (s *AuthService) ForceLogout(ctx context.Context, userID string, ttl time.Duration) error {
	if err := s.blacklist.AddUserTokensToBlacklist(ctx, userID, ttl); err != nil {
		s.logger.Error("Failed to invalidate user tokens", zap.String("user_id", userID), zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to revoke sessions")
	}
	return nil
}

// ChangePassword changes an account's password
func (s *AuthService) ChangePassword(ctx context.Context, input ChangePasswordInput) error {
	profile, err := s.profileRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return shared.NewDomainError("USER_NOT_FOUND", "Account not found")
	}

	if err := profile.ChangePassword(input.OldPassword, input.NewPassword); err != nil {
		return err
	}

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		s.logger.Error("Failed to persist password change", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to update password")
	}

	s.logger.Info("Password changed", zap.String("user_id", input.UserID.String()))
	return nil
}

// RequestPasswordReset flags an account for a forced password change.
// Always reports success so the endpoint cannot be used to probe which
// emails exist.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) {
	profile, err := s.profileRepo.FindByEmail(ctx, email)
	if err != nil {
		s.logger.Info("Password reset requested for unknown email", zap.String("email", email))
		return
	}

	profile.ForcePasswordChange()
	if err := s.profileRepo.Update(ctx, profile); err != nil {
		s.logger.Error("Failed to flag password reset", zap.Error(err))
		return
	}

	s.logger.Info("Password reset requested", zap.String("user_id", profile.ID.String()))
}

func mapTokenError(err error) error {
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return shared.NewDomainError("TOKEN_EXPIRED", "Refresh token has expired")
	case errors.Is(err, auth.ErrMaxRefreshExceeded):
		return shared.NewDomainError("TOKEN_MAX_REFRESH", "Maximum token refresh count exceeded. Please sign in again")
	default:
		return shared.NewDomainError("TOKEN_INVALID", "Invalid refresh token")
	}
}
