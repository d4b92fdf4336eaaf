package organization

import (
	"strings"
	"time"

	"github.com/faithconnect/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Department represents a branch-scoped serving unit (choir, ushering, media)
type Department struct {
	shared.BranchAggregateRoot
	Name        string
	Description string
	LeaderID    *uuid.UUID
}

// DepartmentMember is the membership join between a profile and a department
type DepartmentMember struct {
	DepartmentID uuid.UUID
	ProfileID    uuid.UUID
	JoinedAt     time.Time
}

// NewDepartment creates a new department for a branch
func NewDepartment(branchID uuid.UUID, name string) (*Department, error) {
	if branchID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BRANCH_ID", "Branch ID cannot be empty")
	}
	if err := validateUnitName(name); err != nil {
		return nil, err
	}

	return &Department{
		BranchAggregateRoot: shared.NewBranchAggregateRoot(branchID),
		Name:                strings.TrimSpace(name),
	}, nil
}

// Rename changes the department name
func (d *Department) Rename(name string) error {
	if err := validateUnitName(name); err != nil {
		return err
	}

	d.Name = strings.TrimSpace(name)
	d.Touch()
	d.IncrementVersion()

	return nil
}

// SetDescription updates the department description
func (d *Department) SetDescription(description string) {
	d.Description = strings.TrimSpace(description)
	d.Touch()
	d.IncrementVersion()
}

// AssignLeader sets the department leader
func (d *Department) AssignLeader(profileID uuid.UUID) error {
	if profileID == uuid.Nil {
		return shared.NewDomainError("INVALID_PROFILE_ID", "Profile ID cannot be empty")
	}

	d.LeaderID = &profileID
	d.Touch()
	d.IncrementVersion()

	return nil
}

func validateUnitName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Name cannot exceed 200 characters")
	}
	return nil
}
