package organization

import (
	"time"

	"github.com/google/uuid"

	"github.com/faithconnect/backend/internal/domain/organization"
)

// CreateBranchInput carries the fields for opening a new branch
type CreateBranchInput struct {
	Name       string     `json:"name" binding:"required"`
	Address    string     `json:"address"`
	DistrictID *uuid.UUID `json:"district_id"`
	PastorName string     `json:"pastor_name"`
	Phone      string     `json:"phone"`
	Email      string     `json:"email"`
}

// UpdateBranchInput carries partial branch updates. Nil fields are left
// untouched.
type UpdateBranchInput struct {
	BranchID   uuid.UUID
	Name       *string    `json:"name"`
	Address    *string    `json:"address"`
	DistrictID *uuid.UUID `json:"district_id"`
	PastorName *string    `json:"pastor_name"`
	Phone      *string    `json:"phone"`
	Email      *string    `json:"email"`
}

// BranchView is the client-facing branch shape
type BranchView struct {
	ID         uuid.UUID  `json:"id"`
	Name       string     `json:"name"`
	Address    string     `json:"address,omitempty"`
	DistrictID *uuid.UUID `json:"district_id,omitempty"`
	PastorName string     `json:"pastor_name,omitempty"`
	Phone      string     `json:"phone,omitempty"`
	Email      string     `json:"email,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// BranchViewFromDomain maps a domain branch to its client shape
func BranchViewFromDomain(b *organization.Branch) BranchView {
	return BranchView{
		ID:         b.ID,
		Name:       b.Name,
		Address:    b.Address,
		DistrictID: b.DistrictID,
		PastorName: b.PastorName,
		Phone:      b.Phone,
		Email:      b.Email,
		CreatedAt:  b.CreatedAt,
	}
}

// CreateMemberInput carries the fields for adding a member to a branch roll
type CreateMemberInput struct {
	BranchID    uuid.UUID  `json:"branch_id"`
	FirstName   string     `json:"first_name" binding:"required"`
	LastName    string     `json:"last_name"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone"`
	DateOfBirth *time.Time `json:"date_of_birth"`
	ProfileID   *uuid.UUID `json:"profile_id"`
}

// UpdateMemberInput carries partial member updates
type UpdateMemberInput struct {
	MemberID  uuid.UUID
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	Status    *string `json:"status"`
}

// ListMembersInput carries roll query options
type ListMembersInput struct {
	BranchID uuid.UUID
	Keyword  string
	Status   string
	Page     int
	PageSize int
}

// MemberView is the client-facing roll record shape
type MemberView struct {
	ID         uuid.UUID  `json:"id"`
	BranchID   uuid.UUID  `json:"branch_id"`
	ProfileID  *uuid.UUID `json:"profile_id,omitempty"`
	FirstName  string     `json:"first_name"`
	LastName   string     `json:"last_name"`
	FullName   string     `json:"full_name"`
	Email      string     `json:"email,omitempty"`
	Phone      string     `json:"phone,omitempty"`
	Status     string     `json:"status"`
	DateJoined *time.Time `json:"date_joined,omitempty"`
}

// MemberViewFromDomain maps a domain member to its client shape
func MemberViewFromDomain(m *organization.Member) MemberView {
	return MemberView{
		ID:         m.ID,
		BranchID:   m.BranchID,
		ProfileID:  m.ProfileID,
		FirstName:  m.FirstName,
		LastName:   m.LastName,
		FullName:   m.FullName(),
		Email:      m.Email,
		Phone:      m.Phone,
		Status:     string(m.Status),
		DateJoined: m.DateJoined,
	}
}

// MemberViewsFromDomain maps a slice of domain members
func MemberViewsFromDomain(members []*organization.Member) []MemberView {
	views := make([]MemberView, 0, len(members))
	for _, m := range members {
		views = append(views, MemberViewFromDomain(m))
	}
	return views
}

// ListMembersResult pairs a roll page with its total
type ListMembersResult struct {
	Members  []MemberView `json:"members"`
	Total    int64        `json:"total"`
	Page     int          `json:"page"`
	PageSize int          `json:"page_size"`
}

// ImportRow is one line of a bulk member import
type ImportRow struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// ImportMembersInput carries a bulk import request
type ImportMembersInput struct {
	BranchID uuid.UUID   `json:"branch_id"`
	Rows     []ImportRow `json:"rows" binding:"required"`
}

// ImportMembersResult reports what a bulk import did
type ImportMembersResult struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors,omitempty"`
}

// CreateUnitInput carries the fields for a new department or group
type CreateUnitInput struct {
	BranchID    uuid.UUID `json:"branch_id"`
	Name        string    `json:"name" binding:"required"`
	Description string    `json:"description"`
	MeetingDay  string    `json:"meeting_day"`
}

// UpdateUnitInput carries partial department or group updates
type UpdateUnitInput struct {
	UnitID      uuid.UUID
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	MeetingDay  *string    `json:"meeting_day"`
	LeaderID    *uuid.UUID `json:"leader_id"`
}

// DepartmentView is the client-facing department shape
type DepartmentView struct {
	ID          uuid.UUID  `json:"id"`
	BranchID    uuid.UUID  `json:"branch_id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	LeaderID    *uuid.UUID `json:"leader_id,omitempty"`
}

// DepartmentViewFromDomain maps a domain department to its client shape
func DepartmentViewFromDomain(d *organization.Department) DepartmentView {
	return DepartmentView{
		ID:          d.ID,
		BranchID:    d.BranchID,
		Name:        d.Name,
		Description: d.Description,
		LeaderID:    d.LeaderID,
	}
}

// GroupView is the client-facing group shape
type GroupView struct {
	ID          uuid.UUID  `json:"id"`
	BranchID    uuid.UUID  `json:"branch_id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	MeetingDay  string     `json:"meeting_day,omitempty"`
	LeaderID    *uuid.UUID `json:"leader_id,omitempty"`
}

// GroupViewFromDomain maps a domain group to its client shape
func GroupViewFromDomain(g *organization.Group) GroupView {
	return GroupView{
		ID:          g.ID,
		BranchID:    g.BranchID,
		Name:        g.Name,
		Description: g.Description,
		MeetingDay:  g.MeetingDay,
		LeaderID:    g.LeaderID,
	}
}

// BranchStats is the admin dashboard summary for one branch
type BranchStats struct {
	BranchID         uuid.UUID `json:"branch_id"`
	MemberCount      int64     `json:"member_count"`
	PendingTransfers int64     `json:"pending_transfers"`
}

// PlatformStats is the platform-wide summary for super admins
type PlatformStats struct {
	BranchCount int64 `json:"branch_count"`
	MemberCount int64 `json:"member_count"`
	UserCount   int64 `json:"user_count"`
}
