package transfer

import (
	"time"

	"github.com/google/uuid"

	"github.com/faithconnect/backend/internal/domain/transfer"
)

// SubmitInput contains the input for a member-submitted transfer request
type SubmitInput struct {
	ToBranchID uuid.UUID `json:"to_branch_id" binding:"required"`
	Notes      string    `json:"notes"`
}

// RejectInput contains the input for rejecting a transfer request
type RejectInput struct {
	TransferID uuid.UUID `json:"-"`
	Reason     string    `json:"reason"`
}

// ListForBranchInput contains filters for the admin transfer queue
type ListForBranchInput struct {
	BranchID uuid.UUID
	Status   string
}

// ListForMemberInput contains filters for a member's own request history
type ListForMemberInput struct {
	Status string
	Order  string // "asc" or "desc", newest first by default
}

// TransferView is the client-facing shape of a transfer request
type TransferView struct {
	ID             uuid.UUID  `json:"id"`
	MemberID       uuid.UUID  `json:"member_id"`
	FromBranchID   uuid.UUID  `json:"from_branch_id"`
	ToBranchID     uuid.UUID  `json:"to_branch_id"`
	RequestedBy    uuid.UUID  `json:"requested_by"`
	Status         string     `json:"status"`
	Notes          string     `json:"notes,omitempty"`
	RejectionNotes string     `json:"rejection_notes,omitempty"`
	ProcessedBy    *uuid.UUID `json:"processed_by,omitempty"`
	ProcessedAt    *time.Time `json:"processed_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// ViewFromDomain builds the client-facing view of a transfer
func ViewFromDomain(t *transfer.MemberTransfer) TransferView {
	return TransferView{
		ID:             t.ID,
		MemberID:       t.MemberID,
		FromBranchID:   t.FromBranchID,
		ToBranchID:     t.ToBranchID,
		RequestedBy:    t.RequestedBy,
		Status:         string(t.Status),
		Notes:          t.Notes,
		RejectionNotes: t.RejectionNotes,
		ProcessedBy:    t.ProcessedBy,
		ProcessedAt:    t.ProcessedAt,
		CreatedAt:      t.CreatedAt,
	}
}

// ViewsFromDomain maps a slice of transfers to views
func ViewsFromDomain(transfers []*transfer.MemberTransfer) []TransferView {
	views := make([]TransferView, 0, len(transfers))
	for _, t := range transfers {
		views = append(views, ViewFromDomain(t))
	}
	return views
}
