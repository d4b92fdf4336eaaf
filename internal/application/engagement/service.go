package engagement

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/faithconnect/backend/internal/domain/engagement"
	"github.com/faithconnect/backend/internal/domain/identity"
	"github.com/faithconnect/backend/internal/domain/shared"
)

// Service manages branch events, registrations, and service attendance
type Service struct {
	events     engagement.EventRepository
	attendance engagement.AttendanceRepository
	logger     *zap.Logger
}

// NewService creates a new engagement Service
func NewService(
	events engagement.EventRepository,
	attendance engagement.AttendanceRepository,
	logger *zap.Logger,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		events:     events,
		attendance: attendance,
		logger:     logger,
	}
}

// CreateEvent adds an event to a branch calendar
func (s *Service) CreateEvent(ctx context.Context, session *identity.Session, input CreateEventInput) (*EventView, error) {
	branchID, err := writableBranch(session, input.BranchID)
	if err != nil {
		return nil, err
	}

	event, err := engagement.NewEvent(branchID, input.Title, input.StartsAt)
	if err != nil {
		return nil, err
	}
	event.Description = input.Description
	event.Location = input.Location
	event.EndsAt = input.EndsAt
	if input.Capacity > 0 {
		if err := event.SetCapacity(input.Capacity); err != nil {
			return nil, err
		}
	}

	if err := s.events.Create(ctx, event); err != nil {
		s.logger.Error("Failed to create event", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create event")
	}

	s.logger.Info("Event created",
		zap.String("event_id", event.ID.String()),
		zap.String("branch_id", branchID.String()))

	view := EventViewFromDomain(event, 0)
	return &view, nil
}

// UpdateEvent applies partial changes to an event
func (s *Service) UpdateEvent(ctx context.Context, session *identity.Session, input UpdateEventInput) (*EventView, error) {
	event, err := s.events.FindByID(ctx, input.EventID)
	if err != nil {
		return nil, shared.ErrNotFound
	}
	if err := requireAdminOf(session, event.BranchID); err != nil {
		return nil, err
	}

	if input.Title != nil {
		if *input.Title == "" {
			return nil, shared.NewDomainError("INVALID_TITLE", "Event title cannot be empty")
		}
		event.Title = *input.Title
	}
	if input.Description != nil {
		event.Description = *input.Description
	}
	if input.Location != nil {
		event.Location = *input.Location
	}
	if input.StartsAt != nil {
		event.StartsAt = *input.StartsAt
	}
	if input.EndsAt != nil {
		event.EndsAt = input.EndsAt
	}
	if input.Capacity != nil {
		if err := event.SetCapacity(*input.Capacity); err != nil {
			return nil, err
		}
	}

	if err := s.events.Update(ctx, event); err != nil {
		s.logger.Error("Failed to update event", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update event")
	}

	registered, _ := s.events.CountRegistrations(ctx, event.ID)
	view := EventViewFromDomain(event, registered)
	return &view, nil
}

// DeleteEvent removes an event and its registrations
func (s *Service) DeleteEvent(ctx context.Context, session *identity.Session, eventID uuid.UUID) error {
	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		return shared.ErrNotFound
	}
	if err := requireAdminOf(session, event.BranchID); err != nil {
		return err
	}
	if err := s.events.Delete(ctx, eventID); err != nil {
		s.logger.Error("Failed to delete event", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete event")
	}
	return nil
}

// ListEvents returns a branch's calendar. With upcomingOnly, past events
// are dropped.
func (s *Service) ListEvents(ctx context.Context, session *identity.Session, branchID uuid.UUID, upcomingOnly bool) ([]EventView, error) {
	if branchID == uuid.Nil {
		if session.BranchID == nil {
			return nil, shared.NewDomainError("BRANCH_REQUIRED", "A branch must be specified")
		}
		branchID = *session.BranchID
	}

	var from *time.Time
	if upcomingOnly {
		now := time.Now()
		from = &now
	}

	events, err := s.events.FindByBranch(ctx, branchID, from)
	if err != nil {
		s.logger.Error("Failed to list events", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list events")
	}

	views := make([]EventView, 0, len(events))
	for _, event := range events {
		registered, err := s.events.CountRegistrations(ctx, event.ID)
		if err != nil {
			registered = 0
		}
		views = append(views, EventViewFromDomain(event, registered))
	}
	return views, nil
}

// Register signs the current user up for an event. Past and full events
// are refused.
func (s *Service) Register(ctx context.Context, session *identity.Session, eventID uuid.UUID) (*EventView, error) {
	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		return nil, shared.ErrNotFound
	}
	if session.BranchID == nil || *session.BranchID != event.BranchID {
		return nil, shared.NewDomainError("FORBIDDEN", "Event belongs to a different branch")
	}
	if event.IsPast() {
		return nil, shared.NewDomainError("EVENT_PAST", "Registration closed: the event has started")
	}

	registered, err := s.events.CountRegistrations(ctx, eventID)
	if err != nil {
		s.logger.Error("Registration count failed", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to register")
	}
	if !event.HasCapacityFor(registered) {
		return nil, shared.NewDomainError("EVENT_FULL", "The event is at capacity")
	}

	if err := s.events.Register(ctx, eventID, session.UserID); err != nil {
		s.logger.Error("Failed to register for event", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to register")
	}

	s.logger.Info("Event registration",
		zap.String("event_id", eventID.String()),
		zap.String("user_id", session.UserID.String()))

	view := EventViewFromDomain(event, registered+1)
	return &view, nil
}

// Unregister withdraws the current user from an event
func (s *Service) Unregister(ctx context.Context, session *identity.Session, eventID uuid.UUID) error {
	if _, err := s.events.FindByID(ctx, eventID); err != nil {
		return shared.ErrNotFound
	}
	if err := s.events.Unregister(ctx, eventID, session.UserID); err != nil {
		s.logger.Error("Failed to withdraw registration", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to withdraw registration")
	}
	return nil
}

// Registrations lists an event's sign-ups for the organizing admin
func (s *Service) Registrations(ctx context.Context, session *identity.Session, eventID uuid.UUID) ([]engagement.Registration, error) {
	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		return nil, shared.ErrNotFound
	}
	if err := requireAdminOf(session, event.BranchID); err != nil {
		return nil, err
	}
	registrations, err := s.events.FindRegistrations(ctx, eventID)
	if err != nil {
		s.logger.Error("Failed to list registrations", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list registrations")
	}
	return registrations, nil
}

// RecordAttendance stores a head count for one service date
func (s *Service) RecordAttendance(ctx context.Context, session *identity.Session, input RecordAttendanceInput) (*AttendanceView, error) {
	branchID, err := writableBranch(session, input.BranchID)
	if err != nil {
		return nil, err
	}

	record, err := engagement.NewAttendanceRecord(branchID, input.ServiceDate, input.ServiceName, session.UserID)
	if err != nil {
		return nil, err
	}
	if err := record.SetCounts(input.Adults, input.Children, input.Visitors); err != nil {
		return nil, err
	}

	if err := s.attendance.Create(ctx, record); err != nil {
		s.logger.Error("Failed to record attendance", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to record attendance")
	}

	s.logger.Info("Attendance recorded",
		zap.String("branch_id", branchID.String()),
		zap.Time("service_date", record.ServiceDate),
		zap.Int("total", record.Total()))

	view := AttendanceViewFromDomain(record)
	return &view, nil
}

// AttendanceHistory lists head counts within a window
func (s *Service) AttendanceHistory(ctx context.Context, session *identity.Session, input AttendanceRangeInput) ([]AttendanceView, error) {
	branchID := input.BranchID
	if branchID == uuid.Nil && session.BranchID != nil {
		branchID = *session.BranchID
	}
	if err := requireAdminOf(session, branchID); err != nil {
		return nil, err
	}

	from, to := input.From, input.To
	if to.IsZero() {
		to = time.Now()
	}
	if from.IsZero() {
		from = to.AddDate(0, -3, 0)
	}

	records, err := s.attendance.FindByBranch(ctx, branchID, from, to)
	if err != nil {
		s.logger.Error("Failed to list attendance", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list attendance")
	}

	views := make([]AttendanceView, 0, len(records))
	for _, r := range records {
		views = append(views, AttendanceViewFromDomain(r))
	}
	return views, nil
}

func writableBranch(session *identity.Session, requested uuid.UUID) (uuid.UUID, error) {
	if session.Role.IsSuperAdmin() {
		if requested == uuid.Nil {
			return uuid.Nil, shared.NewDomainError("BRANCH_REQUIRED", "A branch must be specified")
		}
		return requested, nil
	}
	if session.BranchID == nil {
		return uuid.Nil, shared.NewDomainError("BRANCH_REQUIRED", "No branch is assigned to this account")
	}
	if requested != uuid.Nil && requested != *session.BranchID {
		return uuid.Nil, shared.NewDomainError("FORBIDDEN", "Not an administrator of this branch")
	}
	return *session.BranchID, nil
}

func requireAdminOf(session *identity.Session, branchID uuid.UUID) error {
	if session.Role.IsSuperAdmin() {
		return nil
	}
	if branchID == uuid.Nil {
		return shared.NewDomainError("BRANCH_REQUIRED", "A branch must be specified")
	}
	if session.BranchID == nil || *session.BranchID != branchID {
		return shared.NewDomainError("FORBIDDEN", "Not an administrator of this branch")
	}
	return nil
}
