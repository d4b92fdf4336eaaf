package organization

import (
	"context"

	"github.com/google/uuid"
)

// BranchRepository defines the interface for branch persistence
type BranchRepository interface {
	Create(ctx context.Context, branch *Branch) error
	Update(ctx context.Context, branch *Branch) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Branch, error)
	FindAll(ctx context.Context) ([]*Branch, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	Count(ctx context.Context) (int64, error)
}

// MemberRepository defines the interface for membership roll persistence
type MemberRepository interface {
	Create(ctx context.Context, member *Member) error

	// CreateBatch inserts many members in one round trip. Used by bulk import.
	CreateBatch(ctx context.Context, members []*Member) error

	Update(ctx context.Context, member *Member) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Member, error)
	FindByProfileID(ctx context.Context, profileID uuid.UUID) (*Member, error)
	FindByBranch(ctx context.Context, branchID uuid.UUID, filter MemberFilter) ([]*Member, int64, error)
	CountByBranch(ctx context.Context, branchID uuid.UUID) (int64, error)
	Count(ctx context.Context) (int64, error)
}

// MemberFilter contains filter options for querying the membership roll
type MemberFilter struct {
	// Search keyword for name, email, or phone
	Keyword string

	// Filter by status
	Status *MemberStatus

	// Pagination
	Page     int
	PageSize int
}

// NewMemberFilter creates a new MemberFilter with default values
func NewMemberFilter() MemberFilter {
	return MemberFilter{
		Page:     1,
		PageSize: 20,
	}
}

// Offset returns the offset for pagination
func (f MemberFilter) Offset() int {
	if f.Page <= 0 {
		return 0
	}
	return (f.Page - 1) * f.PageSize
}

// Limit returns the limit for pagination
func (f MemberFilter) Limit() int {
	if f.PageSize <= 0 {
		return 20
	}
	if f.PageSize > 200 {
		return 200
	}
	return f.PageSize
}

// DepartmentRepository defines the interface for department persistence
type DepartmentRepository interface {
	Create(ctx context.Context, department *Department) error
	Update(ctx context.Context, department *Department) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Department, error)
	FindByBranch(ctx context.Context, branchID uuid.UUID) ([]*Department, error)

	AddMember(ctx context.Context, departmentID, profileID uuid.UUID) error
	RemoveMember(ctx context.Context, departmentID, profileID uuid.UUID) error
	FindMembers(ctx context.Context, departmentID uuid.UUID) ([]DepartmentMember, error)
	FindMembershipsByProfile(ctx context.Context, profileID uuid.UUID) ([]DepartmentMember, error)
}

// GroupRepository defines the interface for group persistence
type GroupRepository interface {
	Create(ctx context.Context, group *Group) error
	Update(ctx context.Context, group *Group) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Group, error)
	FindByBranch(ctx context.Context, branchID uuid.UUID) ([]*Group, error)

	AddMember(ctx context.Context, groupID, profileID uuid.UUID) error
	RemoveMember(ctx context.Context, groupID, profileID uuid.UUID) error
	FindMembers(ctx context.Context, groupID uuid.UUID) ([]GroupMember, error)
	FindMembershipsByProfile(ctx context.Context, profileID uuid.UUID) ([]GroupMember, error)
}
