package engagement

import (
	"time"

	"github.com/faithconnect/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// AttendanceRecord captures a head count for one service date at a branch
type AttendanceRecord struct {
	shared.BaseEntity
	BranchID    uuid.UUID
	ServiceDate time.Time
	ServiceName string
	Adults      int
	Children    int
	Visitors    int
	RecordedBy  uuid.UUID
}

// NewAttendanceRecord creates a head-count record
func NewAttendanceRecord(branchID uuid.UUID, serviceDate time.Time, serviceName string, recordedBy uuid.UUID) (*AttendanceRecord, error) {
	if branchID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BRANCH_ID", "Branch ID cannot be empty")
	}
	if serviceDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_SERVICE_DATE", "Service date is required")
	}
	if recordedBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_RECORDER", "Recorder cannot be empty")
	}

	return &AttendanceRecord{
		BaseEntity:  shared.NewBaseEntity(),
		BranchID:    branchID,
		ServiceDate: serviceDate,
		ServiceName: serviceName,
		RecordedBy:  recordedBy,
	}, nil
}

// SetCounts records the head counts
func (a *AttendanceRecord) SetCounts(adults, children, visitors int) error {
	if adults < 0 || children < 0 || visitors < 0 {
		return shared.NewDomainError("INVALID_COUNT", "Counts cannot be negative")
	}
	a.Adults = adults
	a.Children = children
	a.Visitors = visitors
	a.Touch()
	return nil
}

// Total returns the combined head count
func (a *AttendanceRecord) Total() int {
	return a.Adults + a.Children + a.Visitors
}
