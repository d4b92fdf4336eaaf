package organization

import (
	"strings"
	"time"

	"github.com/faithconnect/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Group represents a branch-scoped fellowship group (cell, youth, women)
type Group struct {
	shared.BranchAggregateRoot
	Name        string
	Description string
	LeaderID    *uuid.UUID
	MeetingDay  string
}

// GroupMember is the membership join between a profile and a group
type GroupMember struct {
	GroupID   uuid.UUID
	ProfileID uuid.UUID
	JoinedAt  time.Time
}

// NewGroup creates a new group for a branch
func NewGroup(branchID uuid.UUID, name string) (*Group, error) {
	if branchID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BRANCH_ID", "Branch ID cannot be empty")
	}
	if err := validateUnitName(name); err != nil {
		return nil, err
	}

	return &Group{
		BranchAggregateRoot: shared.NewBranchAggregateRoot(branchID),
		Name:                strings.TrimSpace(name),
	}, nil
}

// Rename changes the group name
func (g *Group) Rename(name string) error {
	if err := validateUnitName(name); err != nil {
		return err
	}

	g.Name = strings.TrimSpace(name)
	g.Touch()
	g.IncrementVersion()

	return nil
}

// SetDescription updates the group description
func (g *Group) SetDescription(description string) {
	g.Description = strings.TrimSpace(description)
	g.Touch()
	g.IncrementVersion()
}

// SetMeetingDay records the group's regular meeting day
func (g *Group) SetMeetingDay(day string) {
	g.MeetingDay = strings.TrimSpace(day)
	g.Touch()
	g.IncrementVersion()
}

// AssignLeader sets the group leader
func (g *Group) AssignLeader(profileID uuid.UUID) error {
	if profileID == uuid.Nil {
		return shared.NewDomainError("INVALID_PROFILE_ID", "Profile ID cannot be empty")
	}

	g.LeaderID = &profileID
	g.Touch()
	g.IncrementVersion()

	return nil
}
