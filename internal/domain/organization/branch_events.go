package organization

import (
	"github.com/faithconnect/backend/internal/domain/shared"
)

// Aggregate type constants
const (
	AggregateTypeBranch = "Branch"
	AggregateTypeMember = "Member"
)

// Organization domain event types
const (
	EventTypeBranchCreated = "BranchCreated"
	EventTypeBranchUpdated = "BranchUpdated"
)

// BranchCreatedEvent is published when a branch is created
type BranchCreatedEvent struct {
	shared.BaseDomainEvent
	Name string `json:"name"`
}

// NewBranchCreatedEvent creates a new BranchCreatedEvent
func NewBranchCreatedEvent(branch *Branch) *BranchCreatedEvent {
	return &BranchCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBranchCreated, AggregateTypeBranch, branch.ID, branch.ID),
		Name:            branch.Name,
	}
}

// BranchUpdatedEvent is published when branch details change
type BranchUpdatedEvent struct {
	shared.BaseDomainEvent
	Name string `json:"name"`
}

// NewBranchUpdatedEvent creates a new BranchUpdatedEvent
func NewBranchUpdatedEvent(branch *Branch) *BranchUpdatedEvent {
	return &BranchUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBranchUpdated, AggregateTypeBranch, branch.ID, branch.ID),
		Name:            branch.Name,
	}
}
