package identity

import (
	"time"

	"github.com/faithconnect/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constant for Profile
const AggregateTypeProfile = "Profile"

// Profile domain event types
const (
	EventTypeProfileCreated         = "ProfileCreated"
	EventTypeProfileRoleChanged     = "ProfileRoleChanged"
	EventTypeProfilePasswordChanged = "ProfilePasswordChanged"
	EventTypeProfileBranchMoved     = "ProfileBranchMoved"
)

func eventBranchID(p *Profile) uuid.UUID {
	if p.BranchID != nil {
		return *p.BranchID
	}
	return uuid.Nil
}

// ProfileCreatedEvent is published when a profile is created
type ProfileCreatedEvent struct {
	shared.BaseDomainEvent
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// NewProfileCreatedEvent creates a new ProfileCreatedEvent
func NewProfileCreatedEvent(profile *Profile) *ProfileCreatedEvent {
	return &ProfileCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProfileCreated, AggregateTypeProfile, profile.ID, eventBranchID(profile)),
		Email:           profile.Email,
		Role:            profile.Role,
	}
}

// ProfileRoleChangedEvent is published when a profile's role is reassigned
type ProfileRoleChangedEvent struct {
	shared.BaseDomainEvent
	Email   string `json:"email"`
	OldRole Role   `json:"old_role"`
	NewRole Role   `json:"new_role"`
}

// NewProfileRoleChangedEvent creates a new ProfileRoleChangedEvent
func NewProfileRoleChangedEvent(profile *Profile, oldRole, newRole Role) *ProfileRoleChangedEvent {
	return &ProfileRoleChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProfileRoleChanged, AggregateTypeProfile, profile.ID, eventBranchID(profile)),
		Email:           profile.Email,
		OldRole:         oldRole,
		NewRole:         newRole,
	}
}

// ProfilePasswordChangedEvent is published when a profile's password is changed
type ProfilePasswordChangedEvent struct {
	shared.BaseDomainEvent
	Email     string    `json:"email"`
	ChangedAt time.Time `json:"changed_at"`
}

// NewProfilePasswordChangedEvent creates a new ProfilePasswordChangedEvent
func NewProfilePasswordChangedEvent(profile *Profile) *ProfilePasswordChangedEvent {
	changedAt := time.Now()
	if profile.PasswordChangedAt != nil {
		changedAt = *profile.PasswordChangedAt
	}
	return &ProfilePasswordChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProfilePasswordChanged, AggregateTypeProfile, profile.ID, eventBranchID(profile)),
		Email:           profile.Email,
		ChangedAt:       changedAt,
	}
}

// ProfileBranchMovedEvent is published when a profile moves between branches
type ProfileBranchMovedEvent struct {
	shared.BaseDomainEvent
	Email        string     `json:"email"`
	FromBranchID *uuid.UUID `json:"from_branch_id"`
	ToBranchID   uuid.UUID  `json:"to_branch_id"`
}

// NewProfileBranchMovedEvent creates a new ProfileBranchMovedEvent
func NewProfileBranchMovedEvent(profile *Profile, fromBranchID *uuid.UUID, toBranchID uuid.UUID) *ProfileBranchMovedEvent {
	return &ProfileBranchMovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProfileBranchMoved, AggregateTypeProfile, profile.ID, toBranchID),
		Email:           profile.Email,
		FromBranchID:    fromBranchID,
		ToBranchID:      toBranchID,
	}
}
