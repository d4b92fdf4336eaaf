package notification

import (
	"context"
	"strings"
	"time"

	"github.com/faithconnect/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Notification is an in-portal message addressed to one account
type Notification struct {
	shared.BaseEntity
	UserID  uuid.UUID
	Title   string
	Message string
	Link    string
	Read    bool
	ReadAt  *time.Time
}

// New creates a notification for a user
func New(userID uuid.UUID, title, message, link string) (*Notification, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER_ID", "User ID cannot be empty")
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Notification title cannot be empty")
	}

	return &Notification{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		Title:      title,
		Message:    strings.TrimSpace(message),
		Link:       link,
	}, nil
}

// MarkRead marks the notification as read. Idempotent.
func (n *Notification) MarkRead() {
	if n.Read {
		return
	}
	now := time.Now()
	n.Read = true
	n.ReadAt = &now
	n.UpdatedAt = now
}

// Repository defines the interface for notification persistence
type Repository interface {
	Create(ctx context.Context, n *Notification) error
	FindByID(ctx context.Context, id uuid.UUID) (*Notification, error)

	// FindByUser lists a user's notifications, newest first
	FindByUser(ctx context.Context, userID uuid.UUID, unreadOnly bool, limit int) ([]*Notification, error)

	CountUnread(ctx context.Context, userID uuid.UUID) (int64, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
}
