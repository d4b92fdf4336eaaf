package transfer

import (
	"context"

	"github.com/google/uuid"
)

// SortOrder controls chronological ordering of transfer listings
type SortOrder string

const (
	SortNewestFirst SortOrder = "desc"
	SortOldestFirst SortOrder = "asc"
)

// Repository defines the interface for transfer persistence
type Repository interface {
	// Create creates a new transfer request
	Create(ctx context.Context, t *MemberTransfer) error

	// FindByID finds a transfer by ID
	FindByID(ctx context.Context, id uuid.UUID) (*MemberTransfer, error)

	// FindByBranch lists requests whose destination is the branch,
	// newest first, optionally narrowed to one status
	FindByBranch(ctx context.Context, branchID uuid.UUID, status *Status) ([]*MemberTransfer, error)

	// FindByMember lists a member's requests in the given order,
	// optionally narrowed to one status
	FindByMember(ctx context.Context, memberID uuid.UUID, status *Status, order SortOrder) ([]*MemberTransfer, error)

	// CountPendingByBranch counts pending requests destined for a branch
	CountPendingByBranch(ctx context.Context, branchID uuid.UUID) (int64, error)

	// CompleteTransition persists a terminal transition guarded on the row
	// still being pending. Returns shared.ErrInvalidState without touching
	// the row when another processor won the race.
	CompleteTransition(ctx context.Context, t *MemberTransfer) error
}
