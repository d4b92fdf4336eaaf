package organization

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/faithconnect/backend/internal/domain/identity"
	"github.com/faithconnect/backend/internal/domain/organization"
	"github.com/faithconnect/backend/internal/domain/shared"
)

// PendingTransferCounter is the slice of the transfer store the dashboard
// needs. Satisfied by the transfer repository.
type PendingTransferCounter interface {
	CountPendingByBranch(ctx context.Context, branchID uuid.UUID) (int64, error)
}

// StatsService aggregates the counters behind the admin dashboard and the
// super admin platform overview
type StatsService struct {
	branches  organization.BranchRepository
	members   organization.MemberRepository
	profiles  identity.ProfileRepository
	transfers PendingTransferCounter
	logger    *zap.Logger
}

// NewStatsService creates a new StatsService
func NewStatsService(
	branches organization.BranchRepository,
	members organization.MemberRepository,
	profiles identity.ProfileRepository,
	transfers PendingTransferCounter,
	logger *zap.Logger,
) *StatsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatsService{
		branches:  branches,
		members:   members,
		profiles:  profiles,
		transfers: transfers,
		logger:    logger,
	}
}

// BranchDashboard returns the admin dashboard counters for one branch
func (s *StatsService) BranchDashboard(ctx context.Context, session *identity.Session, branchID uuid.UUID) (*BranchStats, error) {
	if branchID == uuid.Nil && session.BranchID != nil {
		branchID = *session.BranchID
	}
	if branchID == uuid.Nil {
		return nil, shared.NewDomainError("BRANCH_REQUIRED", "A branch must be specified")
	}
	if err := requireBranchAdmin(session, branchID); err != nil {
		return nil, err
	}

	memberCount, err := s.members.CountByBranch(ctx, branchID)
	if err != nil {
		s.logger.Error("Dashboard member count failed", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load dashboard")
	}
	pending, err := s.transfers.CountPendingByBranch(ctx, branchID)
	if err != nil {
		s.logger.Error("Dashboard transfer count failed", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load dashboard")
	}

	return &BranchStats{
		BranchID:         branchID,
		MemberCount:      memberCount,
		PendingTransfers: pending,
	}, nil
}

// Platform returns the platform-wide counters for super admins
func (s *StatsService) Platform(ctx context.Context) (*PlatformStats, error) {
	branchCount, err := s.branches.Count(ctx)
	if err != nil {
		s.logger.Error("Platform branch count failed", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load platform stats")
	}
	memberCount, err := s.members.Count(ctx)
	if err != nil {
		s.logger.Error("Platform member count failed", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load platform stats")
	}
	userCount, err := s.profiles.Count(ctx)
	if err != nil {
		s.logger.Error("Platform user count failed", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load platform stats")
	}

	return &PlatformStats{
		BranchCount: branchCount,
		MemberCount: memberCount,
		UserCount:   userCount,
	}, nil
}
