package identity

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/faithconnect/backend/internal/domain/identity"
	"github.com/faithconnect/backend/internal/domain/shared"
)

// ProfileService resolves and maintains portal profiles
type ProfileService struct {
	profileRepo    identity.ProfileRepository
	resolveTimeout time.Duration
	logger         *zap.Logger
}

// NewProfileService creates a new profile service. resolveTimeout bounds
// how long a guarded request may wait on profile resolution; zero disables
// the bound.
func NewProfileService(profileRepo identity.ProfileRepository, resolveTimeout time.Duration, logger *zap.Logger) *ProfileService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfileService{
		profileRepo:    profileRepo,
		resolveTimeout: resolveTimeout,
		logger:         logger,
	}
}

// ResolveProfile loads the profile backing a session. The resolution is
// total: when the stored row is missing or the read fails, a fallback
// profile synthesized from the session claims is returned instead, so a
// signed-in account is never locked out of the portal by a lookup failure.
func (s *ProfileService) ResolveProfile(ctx context.Context, session *identity.Session) *identity.Profile {
	if session == nil {
		return nil
	}

	if s.resolveTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.resolveTimeout)
		defer cancel()
	}

	profile, err := s.profileRepo.FindByID(ctx, session.UserID)
	if err == nil {
		return profile
	}

	if errors.Is(err, shared.ErrNotFound) {
		s.logger.Warn("No stored profile for session, using fallback",
			zap.String("user_id", session.UserID.String()),
			zap.String("email", session.Email))
	} else {
		s.logger.Warn("Profile lookup failed, using fallback",
			zap.String("user_id", session.UserID.String()),
			zap.Error(err))
	}

	return identity.FallbackProfile(session)
}

// GetProfile loads a stored profile by ID
func (s *ProfileService) GetProfile(ctx context.Context, session *identity.Session) (*identity.Profile, error) {
	if session == nil {
		return nil, shared.NewDomainError("UNAUTHENTICATED", "Sign in required")
	}
	profile, err := s.profileRepo.FindByID(ctx, session.UserID)
	if err != nil {
		return nil, shared.NewDomainError("USER_NOT_FOUND", "Account not found")
	}
	return profile, nil
}

// UpdateContact updates the caller's own contact details
func (s *ProfileService) UpdateContact(ctx context.Context, input UpdateContactInput) (*identity.Profile, error) {
	profile, err := s.profileRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, shared.NewDomainError("USER_NOT_FOUND", "Account not found")
	}

	if input.FullName != nil {
		if err := profile.SetFullName(*input.FullName); err != nil {
			return nil, err
		}
	}
	if input.Phone != nil {
		if err := profile.SetPhone(*input.Phone); err != nil {
			return nil, err
		}
	}
	if input.AvatarURL != nil {
		if err := profile.SetAvatarURL(*input.AvatarURL); err != nil {
			return nil, err
		}
	}

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		s.logger.Error("Failed to update profile contact", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update profile")
	}

	return profile, nil
}
