package engagement

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// EventRepository defines the interface for event persistence
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	Update(ctx context.Context, event *Event) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Event, error)

	// FindByBranch lists branch events; upcoming only when from is set
	FindByBranch(ctx context.Context, branchID uuid.UUID, from *time.Time) ([]*Event, error)

	Register(ctx context.Context, eventID, profileID uuid.UUID) error
	Unregister(ctx context.Context, eventID, profileID uuid.UUID) error
	CountRegistrations(ctx context.Context, eventID uuid.UUID) (int64, error)
	FindRegistrations(ctx context.Context, eventID uuid.UUID) ([]Registration, error)
}

// AttendanceRepository defines the interface for attendance persistence
type AttendanceRepository interface {
	Create(ctx context.Context, record *AttendanceRecord) error
	Update(ctx context.Context, record *AttendanceRecord) error
	FindByID(ctx context.Context, id uuid.UUID) (*AttendanceRecord, error)
	FindByBranch(ctx context.Context, branchID uuid.UUID, from, to time.Time) ([]*AttendanceRecord, error)
}
