package audit

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for audit persistence. Deliberately
// write-once: no update or delete operations exist.
type Repository interface {
	// Create appends an entry to the log
	Create(ctx context.Context, entry *Entry) error

	// Query returns entries matching the filter, newest first
	Query(ctx context.Context, filter Filter) ([]*Entry, int64, error)
}

// Filter contains filter options for browsing the audit log
type Filter struct {
	// Filter by the acting profile
	ActorID *uuid.UUID

	// Filter by action tag
	Action *Action

	// Free-text search over serialized details
	Search string

	// Pagination
	Page     int
	PageSize int
}

// NewFilter creates a new Filter with default values
func NewFilter() Filter {
	return Filter{
		Page:     1,
		PageSize: 50,
	}
}

// Offset returns the offset for pagination
func (f Filter) Offset() int {
	if f.Page <= 0 {
		return 0
	}
	return (f.Page - 1) * f.PageSize
}

// Limit returns the limit for pagination
func (f Filter) Limit() int {
	if f.PageSize <= 0 {
		return 50
	}
	if f.PageSize > 200 {
		return 200
	}
	return f.PageSize
}
