package organization

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	appaudit "github.com/faithconnect/backend/internal/application/audit"
	"github.com/faithconnect/backend/internal/domain/audit"
	"github.com/faithconnect/backend/internal/domain/identity"
	"github.com/faithconnect/backend/internal/domain/organization"
	"github.com/faithconnect/backend/internal/domain/shared"
)

// BranchService handles branch administration. All mutations are reserved
// for super admins; the read side serves every signed-in user.
type BranchService struct {
	branches organization.BranchRepository
	members  organization.MemberRepository
	recorder *appaudit.Recorder
	events   shared.EventPublisher
	logger   *zap.Logger
}

// NewBranchService creates a new BranchService
func NewBranchService(
	branches organization.BranchRepository,
	members organization.MemberRepository,
	recorder *appaudit.Recorder,
	events shared.EventPublisher,
	logger *zap.Logger,
) *BranchService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BranchService{
		branches: branches,
		members:  members,
		recorder: recorder,
		events:   events,
		logger:   logger,
	}
}

// Create opens a new branch. Branch names are unique across the platform.
func (s *BranchService) Create(ctx context.Context, session *identity.Session, input CreateBranchInput) (*BranchView, error) {
	exists, err := s.branches.ExistsByName(ctx, input.Name)
	if err != nil {
		s.logger.Error("Branch name check failed", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create branch")
	}
	if exists {
		return nil, shared.NewDomainError("BRANCH_EXISTS", "A branch with this name already exists")
	}

	branch, err := organization.NewBranch(input.Name, input.Address)
	if err != nil {
		return nil, err
	}
	if input.DistrictID != nil {
		branch.SetDistrict(input.DistrictID)
	}
	if input.PastorName != "" || input.Phone != "" || input.Email != "" {
		if err := branch.SetContact(input.PastorName, input.Phone, input.Email); err != nil {
			return nil, err
		}
	}

	if err := s.branches.Create(ctx, branch); err != nil {
		s.logger.Error("Failed to create branch", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create branch")
	}

	s.publishEvents(ctx, branch)
	s.recorder.Record(ctx, session.UserID, audit.ActionCreatedBranch, map[string]interface{}{
		"branch_id": branch.ID.String(),
		"name":      branch.Name,
	})

	s.logger.Info("Branch created",
		zap.String("branch_id", branch.ID.String()),
		zap.String("name", branch.Name))

	view := BranchViewFromDomain(branch)
	return &view, nil
}

// Update applies partial changes to a branch
func (s *BranchService) Update(ctx context.Context, session *identity.Session, input UpdateBranchInput) (*BranchView, error) {
	branch, err := s.branches.FindByID(ctx, input.BranchID)
	if err != nil {
		return nil, shared.ErrNotFound
	}

	if input.Name != nil && *input.Name != branch.Name {
		exists, err := s.branches.ExistsByName(ctx, *input.Name)
		if err != nil {
			s.logger.Error("Branch name check failed", zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update branch")
		}
		if exists {
			return nil, shared.NewDomainError("BRANCH_EXISTS", "A branch with this name already exists")
		}
		if err := branch.Rename(*input.Name); err != nil {
			return nil, err
		}
	}
	if input.Address != nil {
		if err := branch.SetAddress(*input.Address); err != nil {
			return nil, err
		}
	}
	if input.DistrictID != nil {
		branch.SetDistrict(input.DistrictID)
	}
	if input.PastorName != nil || input.Phone != nil || input.Email != nil {
		pastor, phone, email := branch.PastorName, branch.Phone, branch.Email
		if input.PastorName != nil {
			pastor = *input.PastorName
		}
		if input.Phone != nil {
			phone = *input.Phone
		}
		if input.Email != nil {
			email = *input.Email
		}
		if err := branch.SetContact(pastor, phone, email); err != nil {
			return nil, err
		}
	}

	if err := s.branches.Update(ctx, branch); err != nil {
		s.logger.Error("Failed to update branch", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update branch")
	}

	s.publishEvents(ctx, branch)
	s.recorder.Record(ctx, session.UserID, audit.ActionUpdatedBranch, map[string]interface{}{
		"branch_id": branch.ID.String(),
		"name":      branch.Name,
	})

	view := BranchViewFromDomain(branch)
	return &view, nil
}

// Delete removes a branch. Refused while members remain on its roll.
func (s *BranchService) Delete(ctx context.Context, branchID uuid.UUID) error {
	if _, err := s.branches.FindByID(ctx, branchID); err != nil {
		return shared.ErrNotFound
	}

	count, err := s.members.CountByBranch(ctx, branchID)
	if err != nil {
		s.logger.Error("Branch roll count failed", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete branch")
	}
	if count > 0 {
		return shared.NewDomainError("BRANCH_NOT_EMPTY", "Branch still has members on its roll")
	}

	if err := s.branches.Delete(ctx, branchID); err != nil {
		s.logger.Error("Failed to delete branch", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete branch")
	}

	s.logger.Info("Branch deleted", zap.String("branch_id", branchID.String()))
	return nil
}

// Get returns one branch
func (s *BranchService) Get(ctx context.Context, branchID uuid.UUID) (*BranchView, error) {
	branch, err := s.branches.FindByID(ctx, branchID)
	if err != nil {
		return nil, shared.ErrNotFound
	}
	view := BranchViewFromDomain(branch)
	return &view, nil
}

// List returns all branches
func (s *BranchService) List(ctx context.Context) ([]BranchView, error) {
	branches, err := s.branches.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list branches", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list branches")
	}
	views := make([]BranchView, 0, len(branches))
	for _, b := range branches {
		views = append(views, BranchViewFromDomain(b))
	}
	return views, nil
}

func (s *BranchService) publishEvents(ctx context.Context, branch *organization.Branch) {
	events := branch.GetDomainEvents()
	if len(events) == 0 || s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, events...); err != nil {
		s.logger.Warn("Failed to publish branch events", zap.Error(err))
	}
	branch.ClearDomainEvents()
}
