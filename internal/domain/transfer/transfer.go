package transfer

import (
	"strings"
	"time"

	"github.com/faithconnect/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Status represents the lifecycle state of a transfer request
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// NoReasonProvided is written as the rejection note when the processor
// gives none, so the member never sees an empty explanation.
const NoReasonProvided = "No reason provided"

// MemberTransfer represents a request to move a member between branches.
// It is the aggregate root of the transfer workflow. The only legal
// transitions are pending to approved and pending to rejected; a terminal
// request never changes again.
type MemberTransfer struct {
	shared.BaseAggregateRoot
	MemberID       uuid.UUID
	FromBranchID   uuid.UUID
	ToBranchID     uuid.UUID
	RequestedBy    uuid.UUID
	Status         Status
	Notes          string
	RejectionNotes string
	ProcessedBy    *uuid.UUID
	ProcessedAt    *time.Time
}

// NewMemberTransfer creates a pending transfer request
func NewMemberTransfer(memberID, fromBranchID, toBranchID, requestedBy uuid.UUID, notes string) (*MemberTransfer, error) {
	if memberID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_MEMBER_ID", "Member ID cannot be empty")
	}
	if fromBranchID == uuid.Nil || toBranchID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BRANCH_ID", "Branch ID cannot be empty")
	}
	if fromBranchID == toBranchID {
		return nil, shared.ErrSameBranch
	}
	if requestedBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_REQUESTER", "Requester cannot be empty")
	}
	if len(notes) > 1000 {
		return nil, shared.NewDomainError("INVALID_NOTES", "Notes cannot exceed 1000 characters")
	}

	t := &MemberTransfer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		MemberID:          memberID,
		FromBranchID:      fromBranchID,
		ToBranchID:        toBranchID,
		RequestedBy:       requestedBy,
		Status:            StatusPending,
		Notes:             strings.TrimSpace(notes),
	}

	t.AddDomainEvent(NewTransferRequestedEvent(t))

	return t, nil
}

// IsPending returns true while the request awaits a decision
func (t *MemberTransfer) IsPending() bool {
	return t.Status == StatusPending
}

// IsTerminal returns true once the request has been decided
func (t *MemberTransfer) IsTerminal() bool {
	return t.Status == StatusApproved || t.Status == StatusRejected
}

// Approve moves the request to approved and stamps the processor.
// Fails with ErrInvalidState if the request is no longer pending.
func (t *MemberTransfer) Approve(processedBy uuid.UUID) error {
	if processedBy == uuid.Nil {
		return shared.NewDomainError("INVALID_PROCESSOR", "Processor cannot be empty")
	}
	if t.Status != StatusPending {
		return shared.ErrInvalidState
	}

	now := time.Now()
	t.Status = StatusApproved
	t.ProcessedBy = &processedBy
	t.ProcessedAt = &now
	t.UpdatedAt = now
	t.IncrementVersion()

	t.AddDomainEvent(NewTransferApprovedEvent(t))

	return nil
}

// Reject moves the request to rejected, stamping the processor and reason.
// An empty reason is stored as the NoReasonProvided sentinel. Fails with
// ErrInvalidState if the request is no longer pending.
func (t *MemberTransfer) Reject(processedBy uuid.UUID, reason string) error {
	if processedBy == uuid.Nil {
		return shared.NewDomainError("INVALID_PROCESSOR", "Processor cannot be empty")
	}
	if t.Status != StatusPending {
		return shared.ErrInvalidState
	}

	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = NoReasonProvided
	}

	now := time.Now()
	t.Status = StatusRejected
	t.RejectionNotes = reason
	t.ProcessedBy = &processedBy
	t.ProcessedAt = &now
	t.UpdatedAt = now
	t.IncrementVersion()

	t.AddDomainEvent(NewTransferRejectedEvent(t))

	return nil
}
