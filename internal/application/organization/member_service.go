package organization

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	appaudit "github.com/faithconnect/backend/internal/application/audit"
	"github.com/faithconnect/backend/internal/domain/audit"
	"github.com/faithconnect/backend/internal/domain/identity"
	"github.com/faithconnect/backend/internal/domain/organization"
	"github.com/faithconnect/backend/internal/domain/shared"
)

// MemberService manages branch membership rolls. Admins operate on their
// own branch; super admins on any.
type MemberService struct {
	members  organization.MemberRepository
	branches organization.BranchRepository
	recorder *appaudit.Recorder
	logger   *zap.Logger
}

// NewMemberService creates a new MemberService
func NewMemberService(
	members organization.MemberRepository,
	branches organization.BranchRepository,
	recorder *appaudit.Recorder,
	logger *zap.Logger,
) *MemberService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MemberService{
		members:  members,
		branches: branches,
		recorder: recorder,
		logger:   logger,
	}
}

// Create adds a member to a branch roll
func (s *MemberService) Create(ctx context.Context, session *identity.Session, input CreateMemberInput) (*MemberView, error) {
	branchID, err := effectiveBranch(session, input.BranchID)
	if err != nil {
		return nil, err
	}
	if _, err := s.branches.FindByID(ctx, branchID); err != nil {
		return nil, shared.NewDomainError("BRANCH_NOT_FOUND", "Branch does not exist")
	}

	member, err := organization.NewMember(branchID, input.FirstName, input.LastName)
	if err != nil {
		return nil, err
	}
	if input.Email != "" || input.Phone != "" {
		if err := member.SetContact(input.Email, input.Phone); err != nil {
			return nil, err
		}
	}
	if input.DateOfBirth != nil {
		member.DateOfBirth = input.DateOfBirth
	}
	if input.ProfileID != nil {
		if err := member.LinkProfile(*input.ProfileID); err != nil {
			return nil, err
		}
	}

	if err := s.members.Create(ctx, member); err != nil {
		s.logger.Error("Failed to create member", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create member")
	}

	s.logger.Info("Member added to roll",
		zap.String("member_id", member.ID.String()),
		zap.String("branch_id", branchID.String()))

	view := MemberViewFromDomain(member)
	return &view, nil
}

// Update applies partial changes to a roll record
func (s *MemberService) Update(ctx context.Context, session *identity.Session, input UpdateMemberInput) (*MemberView, error) {
	member, err := s.members.FindByID(ctx, input.MemberID)
	if err != nil {
		return nil, shared.ErrNotFound
	}
	if err := requireBranchAdmin(session, member.BranchID); err != nil {
		return nil, err
	}

	if input.FirstName != nil {
		member.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		member.LastName = *input.LastName
	}
	if member.FirstName == "" && member.LastName == "" {
		return nil, shared.NewDomainError("INVALID_MEMBER_NAME", "Member name cannot be empty")
	}
	if input.Email != nil || input.Phone != nil {
		email, phone := member.Email, member.Phone
		if input.Email != nil {
			email = *input.Email
		}
		if input.Phone != nil {
			phone = *input.Phone
		}
		if err := member.SetContact(email, phone); err != nil {
			return nil, err
		}
	}
	if input.Status != nil {
		if err := member.SetStatus(organization.MemberStatus(*input.Status)); err != nil {
			return nil, err
		}
	}

	if err := s.members.Update(ctx, member); err != nil {
		s.logger.Error("Failed to update member", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update member")
	}

	view := MemberViewFromDomain(member)
	return &view, nil
}

// Delete removes a roll record
func (s *MemberService) Delete(ctx context.Context, session *identity.Session, memberID uuid.UUID) error {
	member, err := s.members.FindByID(ctx, memberID)
	if err != nil {
		return shared.ErrNotFound
	}
	if err := requireBranchAdmin(session, member.BranchID); err != nil {
		return err
	}

	if err := s.members.Delete(ctx, memberID); err != nil {
		s.logger.Error("Failed to delete member", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete member")
	}
	return nil
}

// Get returns one roll record
func (s *MemberService) Get(ctx context.Context, session *identity.Session, memberID uuid.UUID) (*MemberView, error) {
	member, err := s.members.FindByID(ctx, memberID)
	if err != nil {
		return nil, shared.ErrNotFound
	}
	if err := requireBranchAdmin(session, member.BranchID); err != nil {
		return nil, err
	}
	view := MemberViewFromDomain(member)
	return &view, nil
}

// List returns a page of a branch roll. Members may browse their own
// branch directory; admins any record of their branch.
func (s *MemberService) List(ctx context.Context, session *identity.Session, input ListMembersInput) (*ListMembersResult, error) {
	branchID := input.BranchID
	if branchID == uuid.Nil && session.BranchID != nil {
		branchID = *session.BranchID
	}
	if branchID == uuid.Nil {
		return nil, shared.NewDomainError("BRANCH_REQUIRED", "A branch must be specified")
	}
	if !session.Role.IsSuperAdmin() {
		if session.BranchID == nil || *session.BranchID != branchID {
			return nil, shared.NewDomainError("FORBIDDEN", "Not a member of this branch")
		}
	}

	filter := organization.NewMemberFilter()
	filter.Keyword = input.Keyword
	if input.Page > 0 {
		filter.Page = input.Page
	}
	if input.PageSize > 0 {
		filter.PageSize = input.PageSize
	}
	if input.Status != "" {
		status := organization.MemberStatus(input.Status)
		switch status {
		case organization.MemberStatusActive, organization.MemberStatusInactive,
			organization.MemberStatusSuspended, organization.MemberStatusTransferred:
			filter.Status = &status
		default:
			return nil, shared.NewDomainError("INVALID_MEMBER_STATUS", "Unknown member status: "+input.Status)
		}
	}

	members, total, err := s.members.FindByBranch(ctx, branchID, filter)
	if err != nil {
		s.logger.Error("Failed to list members", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list members")
	}

	return &ListMembersResult{
		Members:  MemberViewsFromDomain(members),
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}

// Import bulk-loads roll records. Rows that fail validation are skipped
// and reported; the valid remainder is written in one batch.
func (s *MemberService) Import(ctx context.Context, session *identity.Session, input ImportMembersInput) (*ImportMembersResult, error) {
	branchID, err := effectiveBranch(session, input.BranchID)
	if err != nil {
		return nil, err
	}
	if _, err := s.branches.FindByID(ctx, branchID); err != nil {
		return nil, shared.NewDomainError("BRANCH_NOT_FOUND", "Branch does not exist")
	}
	if len(input.Rows) == 0 {
		return nil, shared.NewDomainError("EMPTY_IMPORT", "Import contains no rows")
	}

	result := &ImportMembersResult{}
	batch := make([]*organization.Member, 0, len(input.Rows))
	for i, row := range input.Rows {
		member, err := organization.NewMember(branchID, row.FirstName, row.LastName)
		if err == nil && (row.Email != "" || row.Phone != "") {
			err = member.SetContact(row.Email, row.Phone)
		}
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %s", i+1, err.Error()))
			continue
		}
		batch = append(batch, member)
	}

	if len(batch) > 0 {
		if err := s.members.CreateBatch(ctx, batch); err != nil {
			s.logger.Error("Member import batch failed", zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to import members")
		}
	}
	result.Imported = len(batch)

	s.recorder.Record(ctx, session.UserID, audit.ActionImportMembers, map[string]interface{}{
		"branch_id": branchID.String(),
		"imported":  result.Imported,
		"skipped":   result.Skipped,
	})

	s.logger.Info("Members imported",
		zap.String("branch_id", branchID.String()),
		zap.Int("imported", result.Imported),
		zap.Int("skipped", result.Skipped))

	return result, nil
}

