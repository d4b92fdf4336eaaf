package identity

import (
	"context"

	"go.uber.org/zap"

	appaudit "github.com/faithconnect/backend/internal/application/audit"
	"github.com/faithconnect/backend/internal/domain/audit"
	"github.com/faithconnect/backend/internal/domain/identity"
	"github.com/faithconnect/backend/internal/domain/shared"
)

// UserAdminService backs the superadmin Users page: managed account
// creation, role and branch changes, and the profile listing.
type UserAdminService struct {
	profileRepo identity.ProfileRepository
	recorder    *appaudit.Recorder
	logger      *zap.Logger
}

// NewUserAdminService creates a new user administration service
func NewUserAdminService(profileRepo identity.ProfileRepository, recorder *appaudit.Recorder, logger *zap.Logger) *UserAdminService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserAdminService{
		profileRepo: profileRepo,
		recorder:    recorder,
		logger:      logger,
	}
}

// CreateManagedUser creates an account on behalf of an administrator. The
// new account must change its temporary password on first login.
func (s *UserAdminService) CreateManagedUser(ctx context.Context, session *identity.Session, input CreateManagedUserInput) (*UserInfo, error) {
	role, err := identity.ParseRole(input.Role)
	if err != nil {
		return nil, err
	}

	exists, err := s.profileRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		s.logger.Error("Email existence check failed", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create account")
	}
	if exists {
		return nil, shared.NewDomainError("EMAIL_TAKEN", "An account with this email already exists")
	}

	profile, err := identity.NewManagedProfile(input.Email, input.TempPassword, input.FullName, role, input.BranchID)
	if err != nil {
		return nil, err
	}

	if err := s.profileRepo.Create(ctx, profile); err != nil {
		s.logger.Error("Failed to create managed account", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create account")
	}

	s.recorder.Record(ctx, session.UserID, audit.ActionCreatedUser, map[string]interface{}{
		"user_id": profile.ID.String(),
		"email":   profile.Email,
		"role":    profile.Role.String(),
	})

	s.logger.Info("Managed account created",
		zap.String("user_id", profile.ID.String()),
		zap.String("role", profile.Role.String()),
		zap.String("created_by", session.UserID.String()))

	info := UserInfoFromProfile(profile)
	return &info, nil
}

// UpdateUserRole changes a profile's role and branch assignment
func (s *UserAdminService) UpdateUserRole(ctx context.Context, session *identity.Session, input UpdateUserRoleInput) (*UserInfo, error) {
	role, err := identity.ParseRole(input.Role)
	if err != nil {
		return nil, err
	}

	profile, err := s.profileRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, shared.NewDomainError("USER_NOT_FOUND", "Account not found")
	}

	previousRole := profile.Role
	if err := profile.ChangeRole(role); err != nil {
		return nil, err
	}

	if input.BranchID != nil {
		if err := profile.AssignBranch(*input.BranchID); err != nil {
			return nil, err
		}
	}

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		s.logger.Error("Failed to update role", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update account")
	}

	s.recorder.Record(ctx, session.UserID, audit.ActionUpdatedUserRole, map[string]interface{}{
		"user_id":       profile.ID.String(),
		"previous_role": previousRole.String(),
		"new_role":      profile.Role.String(),
	})

	s.logger.Info("Role updated",
		zap.String("user_id", profile.ID.String()),
		zap.String("previous_role", previousRole.String()),
		zap.String("new_role", profile.Role.String()),
		zap.String("updated_by", session.UserID.String()))

	info := UserInfoFromProfile(profile)
	return &info, nil
}

// ListUsers returns one page of profiles for the superadmin Users page
func (s *UserAdminService) ListUsers(ctx context.Context, input ListUsersInput) (*ListUsersResult, error) {
	filter := identity.NewProfileFilter()
	if input.Keyword != "" {
		filter = filter.WithKeyword(input.Keyword)
	}
	if input.Role != "" {
		role, err := identity.ParseRole(input.Role)
		if err != nil {
			return nil, err
		}
		filter = filter.WithRole(role)
	}
	if input.BranchID != nil {
		filter = filter.WithBranch(*input.BranchID)
	}
	if input.Page > 0 || input.PageSize > 0 {
		filter = filter.WithPagination(input.Page, input.PageSize)
	}

	profiles, total, err := s.profileRepo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list profiles", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list accounts")
	}

	users := make([]UserInfo, 0, len(profiles))
	for _, p := range profiles {
		users = append(users, UserInfoFromProfile(p))
	}

	return &ListUsersResult{
		Users:    users,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.Limit(),
	}, nil
}
