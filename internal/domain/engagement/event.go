package engagement

import (
	"strings"
	"time"

	"github.com/faithconnect/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Event represents a branch event members can register for
type Event struct {
	shared.BranchAggregateRoot
	Title       string
	Description string
	Location    string
	StartsAt    time.Time
	EndsAt      *time.Time
	Capacity    int // 0 means unlimited
}

// Registration records a profile's sign-up for an event
type Registration struct {
	EventID      uuid.UUID
	ProfileID    uuid.UUID
	RegisteredAt time.Time
}

// NewEvent creates an event for a branch
func NewEvent(branchID uuid.UUID, title string, startsAt time.Time) (*Event, error) {
	if branchID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BRANCH_ID", "Branch ID cannot be empty")
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Event title cannot be empty")
	}
	if startsAt.IsZero() {
		return nil, shared.NewDomainError("INVALID_START", "Event start time is required")
	}

	return &Event{
		BranchAggregateRoot: shared.NewBranchAggregateRoot(branchID),
		Title:               title,
		StartsAt:            startsAt,
	}, nil
}

// SetCapacity caps registrations; zero removes the cap
func (e *Event) SetCapacity(capacity int) error {
	if capacity < 0 {
		return shared.NewDomainError("INVALID_CAPACITY", "Capacity cannot be negative")
	}
	e.Capacity = capacity
	e.Touch()
	e.IncrementVersion()
	return nil
}

// HasCapacityFor reports whether another registration fits
func (e *Event) HasCapacityFor(registered int64) bool {
	return e.Capacity == 0 || registered < int64(e.Capacity)
}

// IsPast returns true once the event start has passed
func (e *Event) IsPast() bool {
	return time.Now().After(e.StartsAt)
}
