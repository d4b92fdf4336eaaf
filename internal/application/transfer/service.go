package transfer

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	appaudit "github.com/faithconnect/backend/internal/application/audit"
	"github.com/faithconnect/backend/internal/domain/audit"
	"github.com/faithconnect/backend/internal/domain/identity"
	"github.com/faithconnect/backend/internal/domain/notification"
	"github.com/faithconnect/backend/internal/domain/organization"
	"github.com/faithconnect/backend/internal/domain/shared"
	"github.com/faithconnect/backend/internal/domain/transfer"
	"github.com/google/uuid"
)

// Migrator extends the transfer repository with the transactional follow
// through of an approval: the member, profile, and unit memberships all
// move to the destination branch atomically with the status flip.
type Migrator interface {
	transfer.Repository
	MigrateApproved(ctx context.Context, t *transfer.MemberTransfer) error
}

// Service drives the member transfer workflow: member-side submission and
// history, admin-side queue and decisions.
type Service struct {
	transfers     Migrator
	members       organization.MemberRepository
	branches      organization.BranchRepository
	notifications notification.Repository
	recorder      *appaudit.Recorder
	events        shared.EventPublisher
	logger        *zap.Logger
}

// NewService creates a new transfer workflow service
func NewService(
	transfers Migrator,
	members organization.MemberRepository,
	branches organization.BranchRepository,
	notifications notification.Repository,
	recorder *appaudit.Recorder,
	events shared.EventPublisher,
	logger *zap.Logger,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		transfers:     transfers,
		members:       members,
		branches:      branches,
		notifications: notifications,
		recorder:      recorder,
		events:        events,
		logger:        logger,
	}
}

// Submit files a transfer request on behalf of the signed-in member. The
// destination must exist and differ from the member's current branch.
// Multiple simultaneous pending requests are allowed; each is decided on
// its own.
func (s *Service) Submit(ctx context.Context, session *identity.Session, input SubmitInput) (*TransferView, error) {
	member, err := s.members.FindByProfileID(ctx, session.UserID)
	if err != nil {
		s.logger.Warn("Transfer submission without a member record",
			zap.String("user_id", session.UserID.String()))
		return nil, shared.NewDomainError("NO_MEMBER_RECORD", "No membership record is linked to this account")
	}

	if _, err := s.branches.FindByID(ctx, input.ToBranchID); err != nil {
		return nil, shared.NewDomainError("BRANCH_NOT_FOUND", "Destination branch does not exist")
	}

	t, err := transfer.NewMemberTransfer(member.ID, member.BranchID, input.ToBranchID, session.UserID, input.Notes)
	if err != nil {
		return nil, err
	}

	if err := s.transfers.Create(ctx, t); err != nil {
		s.logger.Error("Failed to create transfer request", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to submit transfer request")
	}

	s.publishEvents(ctx, t)
	s.recorder.Record(ctx, session.UserID, audit.ActionTransferRequested, map[string]interface{}{
		"transfer_id": t.ID.String(),
		"member_id":   member.ID.String(),
		"from_branch": t.FromBranchID.String(),
		"to_branch":   t.ToBranchID.String(),
	})

	s.logger.Info("Transfer requested",
		zap.String("transfer_id", t.ID.String()),
		zap.String("member_id", member.ID.String()),
		zap.String("to_branch", t.ToBranchID.String()))

	view := ViewFromDomain(t)
	return &view, nil
}

// Approve finalizes a pending request and migrates the member to the
// destination branch in one transaction. A concurrent second decision
// loses with ErrInvalidState and changes nothing.
func (s *Service) Approve(ctx context.Context, session *identity.Session, transferID uuid.UUID) (*TransferView, error) {
	t, err := s.transfers.FindByID(ctx, transferID)
	if err != nil {
		return nil, shared.ErrNotFound
	}

	if err := s.authorizeDecision(session, t); err != nil {
		return nil, err
	}

	if err := t.Approve(session.UserID); err != nil {
		return nil, err
	}

	if err := s.transfers.MigrateApproved(ctx, t); err != nil {
		if err == shared.ErrInvalidState {
			s.logger.Warn("Approval lost the decision race",
				zap.String("transfer_id", t.ID.String()))
			return nil, shared.ErrInvalidState
		}
		s.logger.Error("Transfer migration failed", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to approve transfer")
	}

	s.publishEvents(ctx, t)
	s.recorder.Record(ctx, session.UserID, audit.ActionTransferApproved, map[string]interface{}{
		"transfer_id": t.ID.String(),
		"member_id":   t.MemberID.String(),
		"to_branch":   t.ToBranchID.String(),
	})
	s.notifyMember(ctx, t, "Transfer approved",
		"Your branch transfer request has been approved. Welcome to your new branch!")

	s.logger.Info("Transfer approved",
		zap.String("transfer_id", t.ID.String()),
		zap.String("processed_by", session.UserID.String()))

	view := ViewFromDomain(t)
	return &view, nil
}

// Reject declines a pending request. An empty reason is stored as the
// "No reason provided" sentinel so the member never sees a blank note.
func (s *Service) Reject(ctx context.Context, session *identity.Session, input RejectInput) (*TransferView, error) {
	t, err := s.transfers.FindByID(ctx, input.TransferID)
	if err != nil {
		return nil, shared.ErrNotFound
	}

	if err := s.authorizeDecision(session, t); err != nil {
		return nil, err
	}

	if err := t.Reject(session.UserID, input.Reason); err != nil {
		return nil, err
	}

	if err := s.transfers.CompleteTransition(ctx, t); err != nil {
		if err == shared.ErrInvalidState {
			s.logger.Warn("Rejection lost the decision race",
				zap.String("transfer_id", t.ID.String()))
			return nil, shared.ErrInvalidState
		}
		s.logger.Error("Failed to persist rejection", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to reject transfer")
	}

	s.publishEvents(ctx, t)
	s.recorder.Record(ctx, session.UserID, audit.ActionTransferRejected, map[string]interface{}{
		"transfer_id": t.ID.String(),
		"member_id":   t.MemberID.String(),
		"reason":      t.RejectionNotes,
	})
	s.notifyMember(ctx, t, "Transfer declined",
		fmt.Sprintf("Your branch transfer request was declined: %s", t.RejectionNotes))

	s.logger.Info("Transfer rejected",
		zap.String("transfer_id", t.ID.String()),
		zap.String("processed_by", session.UserID.String()))

	view := ViewFromDomain(t)
	return &view, nil
}

// ListForBranch returns the request queue destined for a branch, newest
// first
func (s *Service) ListForBranch(ctx context.Context, session *identity.Session, input ListForBranchInput) ([]TransferView, error) {
	branchID := input.BranchID
	if branchID == uuid.Nil && session.BranchID != nil {
		branchID = *session.BranchID
	}
	if branchID == uuid.Nil {
		return nil, shared.NewDomainError("BRANCH_REQUIRED", "A branch must be specified")
	}

	if !session.Role.IsSuperAdmin() {
		if !session.Role.IsAdmin() || session.BranchID == nil || *session.BranchID != branchID {
			return nil, shared.NewDomainError("FORBIDDEN", "Not an administrator of this branch")
		}
	}

	status, err := parseStatus(input.Status)
	if err != nil {
		return nil, err
	}

	transfers, err := s.transfers.FindByBranch(ctx, branchID, status)
	if err != nil {
		s.logger.Error("Failed to list branch transfers", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list transfer requests")
	}
	return ViewsFromDomain(transfers), nil
}

// ListForMember returns the signed-in member's own request history
func (s *Service) ListForMember(ctx context.Context, session *identity.Session, input ListForMemberInput) ([]TransferView, error) {
	member, err := s.members.FindByProfileID(ctx, session.UserID)
	if err != nil {
		// No membership record means no history, not an error
		return []TransferView{}, nil
	}

	status, err := parseStatus(input.Status)
	if err != nil {
		return nil, err
	}

	order := transfer.SortNewestFirst
	if input.Order == "asc" {
		order = transfer.SortOldestFirst
	}

	transfers, err := s.transfers.FindByMember(ctx, member.ID, status, order)
	if err != nil {
		s.logger.Error("Failed to list member transfers", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list transfer requests")
	}
	return ViewsFromDomain(transfers), nil
}

// CountPending returns the number of undecided requests destined for a
// branch, for the admin dashboard badge
func (s *Service) CountPending(ctx context.Context, branchID uuid.UUID) (int64, error) {
	return s.transfers.CountPendingByBranch(ctx, branchID)
}

// authorizeDecision checks the processor holds admin authority over the
// destination branch. Super admins qualify everywhere.
func (s *Service) authorizeDecision(session *identity.Session, t *transfer.MemberTransfer) error {
	if session.Role.IsSuperAdmin() {
		return nil
	}
	if session.Role.IsAdmin() && session.BranchID != nil && *session.BranchID == t.ToBranchID {
		return nil
	}
	s.logger.Warn("Transfer decision denied",
		zap.String("transfer_id", t.ID.String()),
		zap.String("user_id", session.UserID.String()),
		zap.String("role", session.Role.String()))
	return shared.NewDomainError("FORBIDDEN", "Not an administrator of the destination branch")
}

// notifyMember delivers a decision notification to the account behind the
// member record. Fire-and-forget: failures are logged and swallowed.
func (s *Service) notifyMember(ctx context.Context, t *transfer.MemberTransfer, title, message string) {
	member, err := s.members.FindByID(ctx, t.MemberID)
	if err != nil || member.ProfileID == nil {
		return
	}

	n, err := notification.New(*member.ProfileID, title, message, "/portal/transfers")
	if err != nil {
		return
	}
	if err := s.notifications.Create(ctx, n); err != nil {
		s.logger.Warn("Failed to deliver transfer notification",
			zap.String("transfer_id", t.ID.String()),
			zap.Error(err))
	}
}

func (s *Service) publishEvents(ctx context.Context, t *transfer.MemberTransfer) {
	events := t.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	if err := s.events.Publish(ctx, events...); err != nil {
		s.logger.Warn("Failed to publish transfer events", zap.Error(err))
	}
	t.ClearDomainEvents()
}

func parseStatus(raw string) (*transfer.Status, error) {
	if raw == "" {
		return nil, nil
	}
	switch transfer.Status(raw) {
	case transfer.StatusPending, transfer.StatusApproved, transfer.StatusRejected:
		status := transfer.Status(raw)
		return &status, nil
	default:
		return nil, shared.NewDomainError("INVALID_STATUS", "Unknown transfer status: "+raw)
	}
}
