package notification

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/faithconnect/backend/internal/domain/identity"
	"github.com/faithconnect/backend/internal/domain/notification"
	"github.com/faithconnect/backend/internal/domain/shared"
)

// DefaultListLimit caps a notification page when the caller gives no limit
const DefaultListLimit = 50

// View is the client-facing notification shape
type View struct {
	ID        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	Message   string     `json:"message,omitempty"`
	Link      string     `json:"link,omitempty"`
	Read      bool       `json:"read"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

func viewFromDomain(n *notification.Notification) View {
	return View{
		ID:        n.ID,
		Title:     n.Title,
		Message:   n.Message,
		Link:      n.Link,
		Read:      n.Read,
		ReadAt:    n.ReadAt,
		CreatedAt: n.CreatedAt,
	}
}

// ListInput carries notification query options
type ListInput struct {
	UnreadOnly bool
	Limit      int
}

// BroadcastInput carries an announcement for every account of a branch
type BroadcastInput struct {
	BranchID uuid.UUID `json:"branch_id"`
	Title    string    `json:"title" binding:"required"`
	Message  string    `json:"message"`
	Link     string    `json:"link"`
}

// BroadcastResult reports how many accounts an announcement reached
type BroadcastResult struct {
	Delivered int `json:"delivered"`
}

// Service handles in-portal notifications
type Service struct {
	notifications notification.Repository
	profiles      identity.ProfileRepository
	logger        *zap.Logger
}

// NewService creates a new notification Service
func NewService(
	notifications notification.Repository,
	profiles identity.ProfileRepository,
	logger *zap.Logger,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		notifications: notifications,
		profiles:      profiles,
		logger:        logger,
	}
}

// List returns the current user's notifications, newest first
func (s *Service) List(ctx context.Context, session *identity.Session, input ListInput) ([]View, error) {
	limit := input.Limit
	if limit <= 0 || limit > DefaultListLimit {
		limit = DefaultListLimit
	}

	notifications, err := s.notifications.FindByUser(ctx, session.UserID, input.UnreadOnly, limit)
	if err != nil {
		s.logger.Error("Failed to list notifications", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list notifications")
	}

	views := make([]View, 0, len(notifications))
	for _, n := range notifications {
		views = append(views, viewFromDomain(n))
	}
	return views, nil
}

// UnreadCount returns the current user's unread total, for the bell badge
func (s *Service) UnreadCount(ctx context.Context, session *identity.Session) (int64, error) {
	count, err := s.notifications.CountUnread(ctx, session.UserID)
	if err != nil {
		s.logger.Error("Failed to count unread notifications", zap.Error(err))
		return 0, shared.NewDomainError("INTERNAL_ERROR", "Failed to count notifications")
	}
	return count, nil
}

// MarkRead marks one of the current user's notifications as read
func (s *Service) MarkRead(ctx context.Context, session *identity.Session, notificationID uuid.UUID) error {
	n, err := s.notifications.FindByID(ctx, notificationID)
	if err != nil {
		return shared.ErrNotFound
	}
	if n.UserID != session.UserID {
		return shared.NewDomainError("FORBIDDEN", "Notification belongs to another account")
	}
	if err := s.notifications.MarkRead(ctx, notificationID); err != nil {
		s.logger.Error("Failed to mark notification read", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to update notification")
	}
	return nil
}

// MarkAllRead clears the current user's unread notifications
func (s *Service) MarkAllRead(ctx context.Context, session *identity.Session) error {
	if err := s.notifications.MarkAllRead(ctx, session.UserID); err != nil {
		s.logger.Error("Failed to mark notifications read", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to update notifications")
	}
	return nil
}

// Notify creates a notification for one account. Used by other services
// for workflow updates.
func (s *Service) Notify(ctx context.Context, userID uuid.UUID, title, message, link string) error {
	n, err := notification.New(userID, title, message, link)
	if err != nil {
		return err
	}
	if err := s.notifications.Create(ctx, n); err != nil {
		s.logger.Error("Failed to create notification", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to create notification")
	}
	return nil
}

// Broadcast sends an announcement to every account of a branch. Admins
// reach their own branch; super admins any.
func (s *Service) Broadcast(ctx context.Context, session *identity.Session, input BroadcastInput) (*BroadcastResult, error) {
	branchID := input.BranchID
	if !session.Role.IsSuperAdmin() {
		if session.BranchID == nil {
			return nil, shared.NewDomainError("BRANCH_REQUIRED", "No branch is assigned to this account")
		}
		if branchID != uuid.Nil && branchID != *session.BranchID {
			return nil, shared.NewDomainError("FORBIDDEN", "Not an administrator of this branch")
		}
		branchID = *session.BranchID
	}
	if branchID == uuid.Nil {
		return nil, shared.NewDomainError("BRANCH_REQUIRED", "A branch must be specified")
	}

	profiles, err := s.profiles.FindByBranch(ctx, branchID)
	if err != nil {
		s.logger.Error("Broadcast recipient lookup failed", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to send announcement")
	}

	delivered := 0
	for _, p := range profiles {
		n, err := notification.New(p.ID, input.Title, input.Message, input.Link)
		if err != nil {
			return nil, err
		}
		if err := s.notifications.Create(ctx, n); err != nil {
			s.logger.Warn("Broadcast delivery failed for one account",
				zap.String("user_id", p.ID.String()), zap.Error(err))
			continue
		}
		delivered++
	}

	s.logger.Info("Announcement broadcast",
		zap.String("branch_id", branchID.String()),
		zap.Int("delivered", delivered))

	return &BroadcastResult{Delivered: delivered}, nil
}
