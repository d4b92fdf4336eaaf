package identity

import (
	"context"

	"github.com/google/uuid"
)

// ProfileRepository defines the interface for profile persistence
type ProfileRepository interface {
	// Create creates a new profile
	Create(ctx context.Context, profile *Profile) error

	// Update updates an existing profile
	Update(ctx context.Context, profile *Profile) error

	// Delete deletes a profile by ID
	Delete(ctx context.Context, id uuid.UUID) error

	// FindByID finds a profile by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Profile, error)

	// FindByEmail finds a profile by email
	FindByEmail(ctx context.Context, email string) (*Profile, error)

	// FindAll returns profiles matching the filter with pagination
	FindAll(ctx context.Context, filter ProfileFilter) ([]*Profile, int64, error)

	// FindByBranch returns all profiles attached to a branch
	FindByBranch(ctx context.Context, branchID uuid.UUID) ([]*Profile, error)

	// ExistsByEmail checks if an email already exists
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// Count returns the total number of profiles
	Count(ctx context.Context) (int64, error)
}

// ProfileFilter contains filter options for querying profiles
type ProfileFilter struct {
	// Search keyword for email or full name
	Keyword string

	// Filter by role
	Role *Role

	// Filter by branch
	BranchID *uuid.UUID

	// Pagination
	Page     int
	PageSize int

	// Sorting
	SortBy    string
	SortOrder string // "asc" or "desc"
}

// NewProfileFilter creates a new ProfileFilter with default values
func NewProfileFilter() ProfileFilter {
	return ProfileFilter{
		Page:      1,
		PageSize:  20,
		SortBy:    "created_at",
		SortOrder: "desc",
	}
}

// WithKeyword sets the search keyword
func (f ProfileFilter) WithKeyword(keyword string) ProfileFilter {
	f.Keyword = keyword
	return f
}

// WithRole sets the role filter
func (f ProfileFilter) WithRole(role Role) ProfileFilter {
	f.Role = &role
	return f
}

// WithBranch sets the branch filter
func (f ProfileFilter) WithBranch(branchID uuid.UUID) ProfileFilter {
	f.BranchID = &branchID
	return f
}

// WithPagination sets pagination parameters
func (f ProfileFilter) WithPagination(page, pageSize int) ProfileFilter {
	f.Page = page
	f.PageSize = pageSize
	return f
}

// Offset returns the offset for pagination
func (f ProfileFilter) Offset() int {
	if f.Page <= 0 {
		return 0
	}
	return (f.Page - 1) * f.PageSize
}

// Limit returns the limit for pagination
func (f ProfileFilter) Limit() int {
	if f.PageSize <= 0 {
		return 20
	}
	if f.PageSize > 100 {
		return 100
	}
	return f.PageSize
}
