package transfer

import (
	"github.com/faithconnect/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constant for MemberTransfer
const AggregateTypeMemberTransfer = "MemberTransfer"

// Transfer domain event types
const (
	EventTypeTransferRequested = "TransferRequested"
	EventTypeTransferApproved  = "TransferApproved"
	EventTypeTransferRejected  = "TransferRejected"
)

// TransferRequestedEvent is published when a member submits a transfer request
type TransferRequestedEvent struct {
	shared.BaseDomainEvent
	MemberID     uuid.UUID `json:"member_id"`
	FromBranchID uuid.UUID `json:"from_branch_id"`
	ToBranchID   uuid.UUID `json:"to_branch_id"`
	RequestedBy  uuid.UUID `json:"requested_by"`
}

// NewTransferRequestedEvent creates a new TransferRequestedEvent
func NewTransferRequestedEvent(t *MemberTransfer) *TransferRequestedEvent {
	return &TransferRequestedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTransferRequested, AggregateTypeMemberTransfer, t.ID, t.ToBranchID),
		MemberID:        t.MemberID,
		FromBranchID:    t.FromBranchID,
		ToBranchID:      t.ToBranchID,
		RequestedBy:     t.RequestedBy,
	}
}

// TransferApprovedEvent is published when a transfer request is approved
type TransferApprovedEvent struct {
	shared.BaseDomainEvent
	MemberID     uuid.UUID `json:"member_id"`
	FromBranchID uuid.UUID `json:"from_branch_id"`
	ToBranchID   uuid.UUID `json:"to_branch_id"`
	ProcessedBy  uuid.UUID `json:"processed_by"`
}

// NewTransferApprovedEvent creates a new TransferApprovedEvent
func NewTransferApprovedEvent(t *MemberTransfer) *TransferApprovedEvent {
	event := &TransferApprovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTransferApproved, AggregateTypeMemberTransfer, t.ID, t.ToBranchID),
		MemberID:        t.MemberID,
		FromBranchID:    t.FromBranchID,
		ToBranchID:      t.ToBranchID,
	}
	if t.ProcessedBy != nil {
		event.ProcessedBy = *t.ProcessedBy
	}
	return event
}

// TransferRejectedEvent is published when a transfer request is rejected
type TransferRejectedEvent struct {
	shared.BaseDomainEvent
	MemberID       uuid.UUID `json:"member_id"`
	FromBranchID   uuid.UUID `json:"from_branch_id"`
	ToBranchID     uuid.UUID `json:"to_branch_id"`
	ProcessedBy    uuid.UUID `json:"processed_by"`
	RejectionNotes string    `json:"rejection_notes"`
}

// NewTransferRejectedEvent creates a new TransferRejectedEvent
func NewTransferRejectedEvent(t *MemberTransfer) *TransferRejectedEvent {
	event := &TransferRejectedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTransferRejected, AggregateTypeMemberTransfer, t.ID, t.ToBranchID),
		MemberID:        t.MemberID,
		FromBranchID:    t.FromBranchID,
		ToBranchID:      t.ToBranchID,
		RejectionNotes:  t.RejectionNotes,
	}
	if t.ProcessedBy != nil {
		event.ProcessedBy = *t.ProcessedBy
	}
	return event
}
