package audit

import (
	"time"

	"github.com/faithconnect/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Action is one of the closed set of auditable action tags
type Action string

const (
	ActionImportMembers     Action = "import_members"
	ActionStartStream       Action = "start_stream"
	ActionArchiveStream     Action = "archive_stream"
	ActionUpdatedUserRole   Action = "updated_user_role"
	ActionCreatedBranch     Action = "created_branch"
	ActionUpdatedBranch     Action = "updated_branch"
	ActionCreatedUser       Action = "created_user"
	ActionTransferRequested Action = "transfer_requested"
	ActionTransferApproved  Action = "transfer_approved"
	ActionTransferRejected  Action = "transfer_rejected"
)

// AllActions lists every valid audit action
var AllActions = []Action{
	ActionImportMembers,
	ActionStartStream,
	ActionArchiveStream,
	ActionUpdatedUserRole,
	ActionCreatedBranch,
	ActionUpdatedBranch,
	ActionCreatedUser,
	ActionTransferRequested,
	ActionTransferApproved,
	ActionTransferRejected,
}

// IsValid returns true if the action belongs to the closed vocabulary
func (a Action) IsValid() bool {
	for _, known := range AllActions {
		if a == known {
			return true
		}
	}
	return false
}

// Entry is one immutable audit record. Entries are written once and never
// updated or deleted.
type Entry struct {
	ID        uuid.UUID
	ActorID   uuid.UUID
	Action    Action
	Details   map[string]interface{}
	CreatedAt time.Time
}

// NewEntry creates an audit entry for an actor and action
func NewEntry(actorID uuid.UUID, action Action, details map[string]interface{}) (*Entry, error) {
	if actorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ACTOR", "Actor cannot be empty")
	}
	if !action.IsValid() {
		return nil, shared.NewDomainError("INVALID_AUDIT_ACTION", "Unknown audit action: "+string(action))
	}
	if details == nil {
		details = map[string]interface{}{}
	}

	return &Entry{
		ID:        uuid.New(),
		ActorID:   actorID,
		Action:    action,
		Details:   details,
		CreatedAt: time.Now(),
	}, nil
}
