package engagement

import (
	"time"

	"github.com/google/uuid"

	"github.com/faithconnect/backend/internal/domain/engagement"
)

// CreateEventInput carries the fields for a new branch event
type CreateEventInput struct {
	BranchID    uuid.UUID  `json:"branch_id"`
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	Location    string     `json:"location"`
	StartsAt    time.Time  `json:"starts_at" binding:"required"`
	EndsAt      *time.Time `json:"ends_at"`
	Capacity    int        `json:"capacity"`
}

// UpdateEventInput carries partial event updates
type UpdateEventInput struct {
	EventID     uuid.UUID
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Location    *string    `json:"location"`
	StartsAt    *time.Time `json:"starts_at"`
	EndsAt      *time.Time `json:"ends_at"`
	Capacity    *int       `json:"capacity"`
}

// EventView is the client-facing event shape
type EventView struct {
	ID          uuid.UUID  `json:"id"`
	BranchID    uuid.UUID  `json:"branch_id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Location    string     `json:"location,omitempty"`
	StartsAt    time.Time  `json:"starts_at"`
	EndsAt      *time.Time `json:"ends_at,omitempty"`
	Capacity    int        `json:"capacity"`
	Registered  int64      `json:"registered"`
}

// EventViewFromDomain maps a domain event with its registration count
func EventViewFromDomain(e *engagement.Event, registered int64) EventView {
	return EventView{
		ID:          e.ID,
		BranchID:    e.BranchID,
		Title:       e.Title,
		Description: e.Description,
		Location:    e.Location,
		StartsAt:    e.StartsAt,
		EndsAt:      e.EndsAt,
		Capacity:    e.Capacity,
		Registered:  registered,
	}
}

// RecordAttendanceInput carries a service head count
type RecordAttendanceInput struct {
	BranchID    uuid.UUID `json:"branch_id"`
	ServiceDate time.Time `json:"service_date" binding:"required"`
	ServiceName string    `json:"service_name"`
	Adults      int       `json:"adults"`
	Children    int       `json:"children"`
	Visitors    int       `json:"visitors"`
}

// AttendanceView is the client-facing head-count shape
type AttendanceView struct {
	ID          uuid.UUID `json:"id"`
	BranchID    uuid.UUID `json:"branch_id"`
	ServiceDate time.Time `json:"service_date"`
	ServiceName string    `json:"service_name,omitempty"`
	Adults      int       `json:"adults"`
	Children    int       `json:"children"`
	Visitors    int       `json:"visitors"`
	Total       int       `json:"total"`
}

// AttendanceViewFromDomain maps a domain head-count record
func AttendanceViewFromDomain(a *engagement.AttendanceRecord) AttendanceView {
	return AttendanceView{
		ID:          a.ID,
		BranchID:    a.BranchID,
		ServiceDate: a.ServiceDate,
		ServiceName: a.ServiceName,
		Adults:      a.Adults,
		Children:    a.Children,
		Visitors:    a.Visitors,
		Total:       a.Total(),
	}
}

// AttendanceRangeInput selects a reporting window
type AttendanceRangeInput struct {
	BranchID uuid.UUID
	From     time.Time
	To       time.Time
}
