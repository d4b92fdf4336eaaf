package organization

import (
	"strings"
	"time"

	"github.com/faithconnect/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// MemberStatus represents the roll status of a member
type MemberStatus string

const (
	MemberStatusActive      MemberStatus = "active"
	MemberStatusInactive    MemberStatus = "inactive"
	MemberStatusSuspended   MemberStatus = "suspended"
	MemberStatusTransferred MemberStatus = "transferred" // Moved to another branch's roll
)

// Member represents a record on a branch's membership roll. Distinct from a
// Profile: not every roll member has a portal account.
type Member struct {
	shared.BranchAggregateRoot
	ProfileID   *uuid.UUID // Linked portal account, if any
	FirstName   string
	LastName    string
	Email       string
	Phone       string
	Status      MemberStatus
	DateJoined  *time.Time
	DateOfBirth *time.Time
}

// NewMember creates a new member on a branch roll
func NewMember(branchID uuid.UUID, firstName, lastName string) (*Member, error) {
	if branchID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BRANCH_ID", "Branch ID cannot be empty")
	}
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	if firstName == "" && lastName == "" {
		return nil, shared.NewDomainError("INVALID_MEMBER_NAME", "Member name cannot be empty")
	}

	now := time.Now()
	return &Member{
		BranchAggregateRoot: shared.NewBranchAggregateRoot(branchID),
		FirstName:           firstName,
		LastName:            lastName,
		Status:              MemberStatusActive,
		DateJoined:          &now,
	}, nil
}

// FullName returns the member's display name
func (m *Member) FullName() string {
	return strings.TrimSpace(m.FirstName + " " + m.LastName)
}

// SetContact updates the member's contact details
func (m *Member) SetContact(email, phone string) error {
	if len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}
	if len(phone) > 50 {
		return shared.NewDomainError("INVALID_PHONE", "Phone cannot exceed 50 characters")
	}

	m.Email = strings.ToLower(strings.TrimSpace(email))
	m.Phone = strings.TrimSpace(phone)
	m.Touch()
	m.IncrementVersion()

	return nil
}

// LinkProfile attaches a portal account to the roll record
func (m *Member) LinkProfile(profileID uuid.UUID) error {
	if profileID == uuid.Nil {
		return shared.NewDomainError("INVALID_PROFILE_ID", "Profile ID cannot be empty")
	}

	m.ProfileID = &profileID
	m.Touch()
	m.IncrementVersion()

	return nil
}

// SetStatus changes the member's roll status
func (m *Member) SetStatus(status MemberStatus) error {
	switch status {
	case MemberStatusActive, MemberStatusInactive, MemberStatusSuspended, MemberStatusTransferred:
	default:
		return shared.NewDomainError("INVALID_MEMBER_STATUS", "Unknown member status: "+string(status))
	}

	m.Status = status
	m.Touch()
	m.IncrementVersion()

	return nil
}

// MoveToBranch reassigns the member to a different branch. Used when an
// approved transfer migrates the roll record.
func (m *Member) MoveToBranch(branchID uuid.UUID) error {
	if branchID == uuid.Nil {
		return shared.NewDomainError("INVALID_BRANCH_ID", "Branch ID cannot be empty")
	}
	if branchID == m.BranchID {
		return shared.ErrSameBranch
	}

	m.BranchID = branchID
	m.Status = MemberStatusActive
	m.Touch()
	m.IncrementVersion()

	return nil
}
