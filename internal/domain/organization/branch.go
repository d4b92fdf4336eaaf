package organization

import (
	"strings"

	"github.com/faithconnect/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Branch represents a local church branch.
// It is the aggregate root for branch administration.
type Branch struct {
	shared.BaseAggregateRoot
	Name       string
	Address    string
	DistrictID *uuid.UUID // Optional grouping for district oversight
	PastorName string
	Phone      string
	Email      string
}

// NewBranch creates a new branch
func NewBranch(name, address string) (*Branch, error) {
	if err := validateBranchName(name); err != nil {
		return nil, err
	}

	branch := &Branch{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		Address:           strings.TrimSpace(address),
	}

	branch.AddDomainEvent(NewBranchCreatedEvent(branch))

	return branch, nil
}

// Rename changes the branch name
func (b *Branch) Rename(name string) error {
	if err := validateBranchName(name); err != nil {
		return err
	}

	b.Name = strings.TrimSpace(name)
	b.Touch()
	b.IncrementVersion()

	b.AddDomainEvent(NewBranchUpdatedEvent(b))

	return nil
}

// SetAddress updates the branch address
func (b *Branch) SetAddress(address string) error {
	if len(address) > 500 {
		return shared.NewDomainError("INVALID_ADDRESS", "Address cannot exceed 500 characters")
	}

	b.Address = strings.TrimSpace(address)
	b.Touch()
	b.IncrementVersion()

	b.AddDomainEvent(NewBranchUpdatedEvent(b))

	return nil
}

// SetDistrict assigns the branch to a district
func (b *Branch) SetDistrict(districtID *uuid.UUID) {
	b.DistrictID = districtID
	b.Touch()
	b.IncrementVersion()
}

// SetContact updates the branch contact details
func (b *Branch) SetContact(pastorName, phone, email string) error {
	if len(pastorName) > 200 {
		return shared.NewDomainError("INVALID_CONTACT", "Pastor name cannot exceed 200 characters")
	}
	if len(phone) > 50 {
		return shared.NewDomainError("INVALID_CONTACT", "Phone cannot exceed 50 characters")
	}

	b.PastorName = strings.TrimSpace(pastorName)
	b.Phone = strings.TrimSpace(phone)
	b.Email = strings.ToLower(strings.TrimSpace(email))
	b.Touch()
	b.IncrementVersion()

	b.AddDomainEvent(NewBranchUpdatedEvent(b))

	return nil
}

func validateBranchName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_BRANCH_NAME", "Branch name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_BRANCH_NAME", "Branch name cannot exceed 200 characters")
	}
	return nil
}
