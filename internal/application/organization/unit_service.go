package organization

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/faithconnect/backend/internal/domain/identity"
	"github.com/faithconnect/backend/internal/domain/organization"
	"github.com/faithconnect/backend/internal/domain/shared"
)

// UnitService manages a branch's departments and fellowship groups.
// Groups are self-service: any member of the branch may join or leave.
// Department membership is assigned by an admin.
type UnitService struct {
	departments organization.DepartmentRepository
	groups      organization.GroupRepository
	logger      *zap.Logger
}

// NewUnitService creates a new UnitService
func NewUnitService(
	departments organization.DepartmentRepository,
	groups organization.GroupRepository,
	logger *zap.Logger,
) *UnitService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UnitService{
		departments: departments,
		groups:      groups,
		logger:      logger,
	}
}

// CreateDepartment adds a serving department to a branch
func (s *UnitService) CreateDepartment(ctx context.Context, session *identity.Session, input CreateUnitInput) (*DepartmentView, error) {
	branchID, err := effectiveBranch(session, input.BranchID)
	if err != nil {
		return nil, err
	}

	dept, err := organization.NewDepartment(branchID, input.Name)
	if err != nil {
		return nil, err
	}
	if input.Description != "" {
		dept.SetDescription(input.Description)
	}

	if err := s.departments.Create(ctx, dept); err != nil {
		s.logger.Error("Failed to create department", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create department")
	}

	view := DepartmentViewFromDomain(dept)
	return &view, nil
}

// UpdateDepartment applies partial changes to a department
func (s *UnitService) UpdateDepartment(ctx context.Context, session *identity.Session, input UpdateUnitInput) (*DepartmentView, error) {
	dept, err := s.departments.FindByID(ctx, input.UnitID)
	if err != nil {
		return nil, shared.ErrNotFound
	}
	if err := requireBranchAdmin(session, dept.BranchID); err != nil {
		return nil, err
	}

	if input.Name != nil {
		if err := dept.Rename(*input.Name); err != nil {
			return nil, err
		}
	}
	if input.Description != nil {
		dept.SetDescription(*input.Description)
	}
	if input.LeaderID != nil {
		if err := dept.AssignLeader(*input.LeaderID); err != nil {
			return nil, err
		}
	}

	if err := s.departments.Update(ctx, dept); err != nil {
		s.logger.Error("Failed to update department", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update department")
	}

	view := DepartmentViewFromDomain(dept)
	return &view, nil
}

// DeleteDepartment removes a department
func (s *UnitService) DeleteDepartment(ctx context.Context, session *identity.Session, departmentID uuid.UUID) error {
	dept, err := s.departments.FindByID(ctx, departmentID)
	if err != nil {
		return shared.ErrNotFound
	}
	if err := requireBranchAdmin(session, dept.BranchID); err != nil {
		return err
	}
	if err := s.departments.Delete(ctx, departmentID); err != nil {
		s.logger.Error("Failed to delete department", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete department")
	}
	return nil
}

// ListDepartments returns a branch's departments
func (s *UnitService) ListDepartments(ctx context.Context, session *identity.Session, branchID uuid.UUID) ([]DepartmentView, error) {
	branchID, err := readableBranch(session, branchID)
	if err != nil {
		return nil, err
	}
	depts, err := s.departments.FindByBranch(ctx, branchID)
	if err != nil {
		s.logger.Error("Failed to list departments", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list departments")
	}
	views := make([]DepartmentView, 0, len(depts))
	for _, d := range depts {
		views = append(views, DepartmentViewFromDomain(d))
	}
	return views, nil
}

// AssignToDepartment places a profile in a department
func (s *UnitService) AssignToDepartment(ctx context.Context, session *identity.Session, departmentID, profileID uuid.UUID) error {
	dept, err := s.departments.FindByID(ctx, departmentID)
	if err != nil {
		return shared.ErrNotFound
	}
	if err := requireBranchAdmin(session, dept.BranchID); err != nil {
		return err
	}
	if err := s.departments.AddMember(ctx, departmentID, profileID); err != nil {
		s.logger.Error("Failed to assign department member", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to assign member")
	}
	return nil
}

// RemoveFromDepartment takes a profile out of a department
func (s *UnitService) RemoveFromDepartment(ctx context.Context, session *identity.Session, departmentID, profileID uuid.UUID) error {
	dept, err := s.departments.FindByID(ctx, departmentID)
	if err != nil {
		return shared.ErrNotFound
	}
	if err := requireBranchAdmin(session, dept.BranchID); err != nil {
		return err
	}
	if err := s.departments.RemoveMember(ctx, departmentID, profileID); err != nil {
		s.logger.Error("Failed to remove department member", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to remove member")
	}
	return nil
}

// CreateGroup adds a fellowship group to a branch
func (s *UnitService) CreateGroup(ctx context.Context, session *identity.Session, input CreateUnitInput) (*GroupView, error) {
	branchID, err := effectiveBranch(session, input.BranchID)
	if err != nil {
		return nil, err
	}

	group, err := organization.NewGroup(branchID, input.Name)
	if err != nil {
		return nil, err
	}
	if input.Description != "" {
		group.SetDescription(input.Description)
	}
	if input.MeetingDay != "" {
		group.SetMeetingDay(input.MeetingDay)
	}

	if err := s.groups.Create(ctx, group); err != nil {
		s.logger.Error("Failed to create group", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create group")
	}

	view := GroupViewFromDomain(group)
	return &view, nil
}

// UpdateGroup applies partial changes to a group
func (s *UnitService) UpdateGroup(ctx context.Context, session *identity.Session, input UpdateUnitInput) (*GroupView, error) {
	group, err := s.groups.FindByID(ctx, input.UnitID)
	if err != nil {
		return nil, shared.ErrNotFound
	}
	if err := requireBranchAdmin(session, group.BranchID); err != nil {
		return nil, err
	}

	if input.Name != nil {
		if err := group.Rename(*input.Name); err != nil {
			return nil, err
		}
	}
	if input.Description != nil {
		group.SetDescription(*input.Description)
	}
	if input.MeetingDay != nil {
		group.SetMeetingDay(*input.MeetingDay)
	}
	if input.LeaderID != nil {
		if err := group.AssignLeader(*input.LeaderID); err != nil {
			return nil, err
		}
	}

	if err := s.groups.Update(ctx, group); err != nil {
		s.logger.Error("Failed to update group", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update group")
	}

	view := GroupViewFromDomain(group)
	return &view, nil
}

// DeleteGroup removes a group
func (s *UnitService) DeleteGroup(ctx context.Context, session *identity.Session, groupID uuid.UUID) error {
	group, err := s.groups.FindByID(ctx, groupID)
	if err != nil {
		return shared.ErrNotFound
	}
	if err := requireBranchAdmin(session, group.BranchID); err != nil {
		return err
	}
	if err := s.groups.Delete(ctx, groupID); err != nil {
		s.logger.Error("Failed to delete group", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete group")
	}
	return nil
}

// ListGroups returns a branch's fellowship groups
func (s *UnitService) ListGroups(ctx context.Context, session *identity.Session, branchID uuid.UUID) ([]GroupView, error) {
	branchID, err := readableBranch(session, branchID)
	if err != nil {
		return nil, err
	}
	groups, err := s.groups.FindByBranch(ctx, branchID)
	if err != nil {
		s.logger.Error("Failed to list groups", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list groups")
	}
	views := make([]GroupView, 0, len(groups))
	for _, g := range groups {
		views = append(views, GroupViewFromDomain(g))
	}
	return views, nil
}

// JoinGroup signs the current user up for a group in their own branch
func (s *UnitService) JoinGroup(ctx context.Context, session *identity.Session, groupID uuid.UUID) error {
	group, err := s.groups.FindByID(ctx, groupID)
	if err != nil {
		return shared.ErrNotFound
	}
	if session.BranchID == nil || *session.BranchID != group.BranchID {
		return shared.NewDomainError("FORBIDDEN", "Group belongs to a different branch")
	}
	if err := s.groups.AddMember(ctx, groupID, session.UserID); err != nil {
		s.logger.Error("Failed to join group", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to join group")
	}
	s.logger.Info("Group joined",
		zap.String("group_id", groupID.String()),
		zap.String("user_id", session.UserID.String()))
	return nil
}

// LeaveGroup removes the current user from a group
func (s *UnitService) LeaveGroup(ctx context.Context, session *identity.Session, groupID uuid.UUID) error {
	if _, err := s.groups.FindByID(ctx, groupID); err != nil {
		return shared.ErrNotFound
	}
	if err := s.groups.RemoveMember(ctx, groupID, session.UserID); err != nil {
		s.logger.Error("Failed to leave group", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to leave group")
	}
	return nil
}

// MyGroups returns the groups the current user belongs to
func (s *UnitService) MyGroups(ctx context.Context, session *identity.Session) ([]GroupView, error) {
	memberships, err := s.groups.FindMembershipsByProfile(ctx, session.UserID)
	if err != nil {
		s.logger.Error("Failed to list group memberships", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list memberships")
	}
	views := make([]GroupView, 0, len(memberships))
	for _, m := range memberships {
		group, err := s.groups.FindByID(ctx, m.GroupID)
		if err != nil {
			continue
		}
		views = append(views, GroupViewFromDomain(group))
	}
	return views, nil
}

// MyDepartments returns the departments the current user serves in
func (s *UnitService) MyDepartments(ctx context.Context, session *identity.Session) ([]DepartmentView, error) {
	memberships, err := s.departments.FindMembershipsByProfile(ctx, session.UserID)
	if err != nil {
		s.logger.Error("Failed to list department memberships", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list memberships")
	}
	views := make([]DepartmentView, 0, len(memberships))
	for _, m := range memberships {
		dept, err := s.departments.FindByID(ctx, m.DepartmentID)
		if err != nil {
			continue
		}
		views = append(views, DepartmentViewFromDomain(dept))
	}
	return views, nil
}

// effectiveBranch picks the branch for a unit mutation: super admins may
// name any branch, branch admins are pinned to their own.
func effectiveBranch(session *identity.Session, requested uuid.UUID) (uuid.UUID, error) {
	if session.Role.IsSuperAdmin() {
		if requested == uuid.Nil {
			return uuid.Nil, shared.NewDomainError("BRANCH_REQUIRED", "A branch must be specified")
		}
		return requested, nil
	}
	if session.BranchID == nil {
		return uuid.Nil, shared.NewDomainError("BRANCH_REQUIRED", "No branch is assigned to this account")
	}
	if requested != uuid.Nil && requested != *session.BranchID {
		return uuid.Nil, shared.NewDomainError("FORBIDDEN", "Not an administrator of this branch")
	}
	return *session.BranchID, nil
}

// readableBranch picks the branch for a read, defaulting to the caller's own
func readableBranch(session *identity.Session, requested uuid.UUID) (uuid.UUID, error) {
	if requested == uuid.Nil {
		if session.BranchID == nil {
			return uuid.Nil, shared.NewDomainError("BRANCH_REQUIRED", "A branch must be specified")
		}
		return *session.BranchID, nil
	}
	if session.Role.IsSuperAdmin() {
		return requested, nil
	}
	if session.BranchID == nil || *session.BranchID != requested {
		return uuid.Nil, shared.NewDomainError("FORBIDDEN", "Not a member of this branch")
	}
	return requested, nil
}

func requireBranchAdmin(session *identity.Session, branchID uuid.UUID) error {
	if session.Role.IsSuperAdmin() {
		return nil
	}
	if session.BranchID == nil || *session.BranchID != branchID {
		return shared.NewDomainError("FORBIDDEN", "Not an administrator of this branch")
	}
	return nil
}
