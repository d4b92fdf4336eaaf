package streaming

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	appaudit "github.com/faithconnect/backend/internal/application/audit"
	"github.com/faithconnect/backend/internal/domain/audit"
	"github.com/faithconnect/backend/internal/domain/identity"
	"github.com/faithconnect/backend/internal/domain/shared"
	"github.com/faithconnect/backend/internal/domain/streaming"
)

// PlaybackStorage abstracts the object store holding archived recordings
type PlaybackStorage interface {
	GeneratePlaybackURL(ctx context.Context, playbackPath string, expiresIn time.Duration) (string, time.Time, error)
	ObjectExists(ctx context.Context, playbackPath string) (bool, error)
}

// Service manages the broadcast lifecycle and playback access
type Service struct {
	streams        streaming.Repository
	viewers        streaming.ViewerCounter
	storage        PlaybackStorage
	recorder       *appaudit.Recorder
	playbackExpiry time.Duration
	logger         *zap.Logger
}

// NewService creates a new streaming Service
func NewService(
	streams streaming.Repository,
	viewers streaming.ViewerCounter,
	storage PlaybackStorage,
	recorder *appaudit.Recorder,
	logger *zap.Logger,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		streams:        streams,
		viewers:        viewers,
		storage:        storage,
		recorder:       recorder,
		playbackExpiry: time.Hour,
		logger:         logger,
	}
}

// Schedule creates a new broadcast for a branch. Privacy defaults to
// members only.
func (s *Service) Schedule(ctx context.Context, session *identity.Session, input ScheduleInput) (*StreamView, error) {
	branchID, err := s.effectiveBranch(session, input.BranchID)
	if err != nil {
		return nil, err
	}

	privacy := streaming.PrivacyMembersOnly
	if input.Privacy != "" {
		privacy = streaming.Privacy(input.Privacy)
	}

	stream, err := streaming.NewStream(branchID, input.Title, input.ScheduledStart, privacy)
	if err != nil {
		return nil, err
	}
	stream.Description = input.Description
	stream.Platform = input.Platform

	if err := s.streams.Create(ctx, stream); err != nil {
		s.logger.Error("Failed to schedule stream", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to schedule stream")
	}

	s.logger.Info("Stream scheduled",
		zap.String("stream_id", stream.ID.String()),
		zap.String("branch_id", branchID.String()),
		zap.Time("scheduled_start", stream.ScheduledStart))

	view := ViewFromDomain(stream, true)
	return &view, nil
}

// Start moves a scheduled stream live
func (s *Service) Start(ctx context.Context, session *identity.Session, streamID uuid.UUID) (*StreamView, error) {
	stream, err := s.authorizedStream(ctx, session, streamID)
	if err != nil {
		return nil, err
	}

	if err := stream.Start(); err != nil {
		return nil, err
	}
	if err := s.streams.Update(ctx, stream); err != nil {
		s.logger.Error("Failed to start stream", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to start stream")
	}

	s.recorder.Record(ctx, session.UserID, audit.ActionStartStream, map[string]interface{}{
		"stream_id": stream.ID.String(),
		"title":     stream.Title,
	})
	s.logger.Info("Stream live", zap.String("stream_id", stream.ID.String()))

	view := ViewFromDomain(stream, true)
	return &view, nil
}

// End closes a live stream and clears its viewer count
func (s *Service) End(ctx context.Context, session *identity.Session, streamID uuid.UUID) (*StreamView, error) {
	stream, err := s.authorizedStream(ctx, session, streamID)
	if err != nil {
		return nil, err
	}

	if err := stream.End(); err != nil {
		return nil, err
	}
	if err := s.streams.Update(ctx, stream); err != nil {
		s.logger.Error("Failed to end stream", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to end stream")
	}

	if err := s.viewers.Reset(ctx, stream.ID); err != nil {
		s.logger.Warn("Failed to reset viewer count", zap.Error(err))
	}

	s.logger.Info("Stream ended", zap.String("stream_id", stream.ID.String()))

	view := ViewFromDomain(stream, true)
	return &view, nil
}

// Archive stores the recording location for an ended stream. The
// recording must already exist in storage.
func (s *Service) Archive(ctx context.Context, session *identity.Session, input ArchiveInput) (*StreamView, error) {
	stream, err := s.authorizedStream(ctx, session, input.StreamID)
	if err != nil {
		return nil, err
	}

	exists, err := s.storage.ObjectExists(ctx, input.PlaybackPath)
	if err != nil {
		s.logger.Error("Recording lookup failed", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to archive stream")
	}
	if !exists {
		return nil, shared.NewDomainError("RECORDING_NOT_FOUND", "No recording exists at this path")
	}

	if err := stream.Archive(input.PlaybackPath); err != nil {
		return nil, err
	}
	if err := s.streams.Update(ctx, stream); err != nil {
		s.logger.Error("Failed to archive stream", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to archive stream")
	}

	s.recorder.Record(ctx, session.UserID, audit.ActionArchiveStream, map[string]interface{}{
		"stream_id":     stream.ID.String(),
		"playback_path": stream.PlaybackPath,
	})
	s.logger.Info("Stream archived", zap.String("stream_id", stream.ID.String()))

	view := ViewFromDomain(stream, true)
	return &view, nil
}

// Delete removes a stream record. Live streams must end first.
func (s *Service) Delete(ctx context.Context, session *identity.Session, streamID uuid.UUID) error {
	stream, err := s.authorizedStream(ctx, session, streamID)
	if err != nil {
		return err
	}
	if stream.Status == streaming.StatusLive {
		return shared.ErrInvalidState
	}
	if err := s.streams.Delete(ctx, streamID); err != nil {
		s.logger.Error("Failed to delete stream", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete stream")
	}
	return nil
}

// ListForBranch returns a branch's streams, hiding private ones from
// non-admin viewers
func (s *Service) ListForBranch(ctx context.Context, session *identity.Session, input ListInput) ([]StreamView, error) {
	branchID := input.BranchID
	if branchID == uuid.Nil && session.BranchID != nil {
		branchID = *session.BranchID
	}
	if branchID == uuid.Nil {
		return nil, shared.NewDomainError("BRANCH_REQUIRED", "A branch must be specified")
	}

	var status *streaming.Status
	if input.Status != "" {
		st := streaming.Status(input.Status)
		switch st {
		case streaming.StatusScheduled, streaming.StatusLive, streaming.StatusEnded, streaming.StatusArchived:
			status = &st
		default:
			return nil, shared.NewDomainError("INVALID_STATUS", "Unknown stream status: "+input.Status)
		}
	}

	streams, err := s.streams.FindByBranch(ctx, branchID, status)
	if err != nil {
		s.logger.Error("Failed to list streams", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list streams")
	}

	admin := s.isBranchAdmin(session, branchID)
	views := make([]StreamView, 0, len(streams))
	for _, stream := range streams {
		if stream.Privacy == streaming.PrivacyPrivate && !admin {
			continue
		}
		views = append(views, ViewFromDomain(stream, admin))
	}
	return views, nil
}

// ListLive returns every stream currently broadcasting, for the portal
// home page
func (s *Service) ListLive(ctx context.Context) ([]StreamView, error) {
	streams, err := s.streams.FindLive(ctx)
	if err != nil {
		s.logger.Error("Failed to list live streams", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list live streams")
	}
	views := make([]StreamView, 0, len(streams))
	for _, stream := range streams {
		if stream.Privacy == streaming.PrivacyPrivate {
			continue
		}
		views = append(views, ViewFromDomain(stream, false))
	}
	return views, nil
}

// Playback issues a short-lived signed URL for an archived recording
func (s *Service) Playback(ctx context.Context, session *identity.Session, streamID uuid.UUID) (*PlaybackView, error) {
	stream, err := s.streams.FindByID(ctx, streamID)
	if err != nil {
		return nil, shared.ErrNotFound
	}
	if stream.Status != streaming.StatusArchived {
		return nil, shared.NewDomainError("NOT_ARCHIVED", "Stream has no archived recording")
	}
	if !stream.IsWatchableBy(session != nil) && !s.isBranchAdmin(session, stream.BranchID) {
		return nil, shared.NewDomainError("FORBIDDEN", "This recording is not available to you")
	}

	url, expiresAt, err := s.storage.GeneratePlaybackURL(ctx, stream.PlaybackPath, s.playbackExpiry)
	if err != nil {
		s.logger.Error("Failed to sign playback URL", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate playback link")
	}
	return &PlaybackView{URL: url, ExpiresAt: expiresAt}, nil
}

// JoinViewer counts a viewer into a live stream
func (s *Service) JoinViewer(ctx context.Context, streamID uuid.UUID) (*ViewerCountView, error) {
	stream, err := s.streams.FindByID(ctx, streamID)
	if err != nil {
		return nil, shared.ErrNotFound
	}
	if stream.Status != streaming.StatusLive {
		return nil, shared.ErrInvalidState
	}
	total, err := s.viewers.Join(ctx, streamID)
	if err != nil {
		s.logger.Warn("Viewer join failed", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update viewer count")
	}
	return &ViewerCountView{StreamID: streamID, Viewers: total}, nil
}

// LeaveViewer counts a viewer out of a stream
func (s *Service) LeaveViewer(ctx context.Context, streamID uuid.UUID) (*ViewerCountView, error) {
	total, err := s.viewers.Leave(ctx, streamID)
	if err != nil {
		s.logger.Warn("Viewer leave failed", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update viewer count")
	}
	return &ViewerCountView{StreamID: streamID, Viewers: total}, nil
}

// ViewerCount returns the live viewer total for a stream
func (s *Service) ViewerCount(ctx context.Context, streamID uuid.UUID) (*ViewerCountView, error) {
	total, err := s.viewers.Current(ctx, streamID)
	if err != nil {
		s.logger.Warn("Viewer count lookup failed", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to read viewer count")
	}
	return &ViewerCountView{StreamID: streamID, Viewers: total}, nil
}

func (s *Service) effectiveBranch(session *identity.Session, requested uuid.UUID) (uuid.UUID, error) {
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

func (s *Service) authorizedStream(ctx context.Context, session *identity.Session, streamID uuid.UUID) (*streaming.Stream, error) {
	stream, err := s.streams.FindByID(ctx, streamID)
	if err != nil {
		return nil, shared.ErrNotFound
	}
	if !s.isBranchAdmin(session, stream.BranchID) {
		return nil, shared.NewDomainError("FORBIDDEN", "Not an administrator of this branch")
	}
	return stream, nil
}

func (s *Service) isBranchAdmin(session *identity.Session, branchID uuid.UUID) bool {
	if session == nil {
		return false
	}
	if session.Role.IsSuperAdmin() {
		return true
	}
	return session.Role.IsAdmin() && session.BranchID != nil && *session.BranchID == branchID
}
