package streaming

import (
	"strings"
	"time"

	"github.com/faithconnect/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Privacy controls who may watch a stream
type Privacy string

const (
	PrivacyPublic      Privacy = "public"
	PrivacyMembersOnly Privacy = "members_only"
	PrivacyPrivate     Privacy = "private"
)

// Status represents the lifecycle state of a stream
type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusLive      Status = "live"
	StatusEnded     Status = "ended"
	StatusArchived  Status = "archived"
)

// Stream represents a scheduled or recorded service broadcast.
// Lifecycle: scheduled -> live -> ended -> archived.
type Stream struct {
	shared.BranchAggregateRoot
	Title          string
	Description    string
	Platform       string
	Privacy        Privacy
	Status         Status
	ScheduledStart time.Time
	StartedAt      *time.Time
	EndedAt        *time.Time
	StreamKey      string
	PlaybackPath   string // Object key of the archived recording
}

// NewStream schedules a new stream for a branch
func NewStream(branchID uuid.UUID, title string, scheduledStart time.Time, privacy Privacy) (*Stream, error) {
	if branchID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BRANCH_ID", "Branch ID cannot be empty")
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Stream title cannot be empty")
	}
	if len(title) > 300 {
		return nil, shared.NewDomainError("INVALID_TITLE", "Stream title cannot exceed 300 characters")
	}
	switch privacy {
	case PrivacyPublic, PrivacyMembersOnly, PrivacyPrivate:
	default:
		return nil, shared.NewDomainError("INVALID_PRIVACY", "Unknown privacy setting: "+string(privacy))
	}

	return &Stream{
		BranchAggregateRoot: shared.NewBranchAggregateRoot(branchID),
		Title:               title,
		Privacy:             privacy,
		Status:              StatusScheduled,
		ScheduledStart:      scheduledStart,
		StreamKey:           uuid.NewString(),
	}, nil
}

// Start moves a scheduled stream live
func (s *Stream) Start() error {
	if s.Status != StatusScheduled {
		return shared.ErrInvalidState
	}

	now := time.Now()
	s.Status = StatusLive
	s.StartedAt = &now
	s.UpdatedAt = now
	s.IncrementVersion()

	return nil
}

// End closes a live stream
func (s *Stream) End() error {
	if s.Status != StatusLive {
		return shared.ErrInvalidState
	}

	now := time.Now()
	s.Status = StatusEnded
	s.EndedAt = &now
	s.UpdatedAt = now
	s.IncrementVersion()

	return nil
}

// Archive stores the recording path and marks the stream archived.
// A live stream cannot be archived; it must end first.
func (s *Stream) Archive(playbackPath string) error {
	if s.Status != StatusEnded {
		return shared.ErrInvalidState
	}
	playbackPath = strings.TrimSpace(playbackPath)
	if playbackPath == "" {
		return shared.NewDomainError("INVALID_PLAYBACK_PATH", "Playback path cannot be empty")
	}

	s.Status = StatusArchived
	s.PlaybackPath = playbackPath
	s.Touch()
	s.IncrementVersion()

	return nil
}

// IsWatchableBy reports whether a viewer with the given authentication
// state may watch the stream
func (s *Stream) IsWatchableBy(authenticated bool) bool {
	switch s.Privacy {
	case PrivacyPublic:
		return true
	case PrivacyMembersOnly:
		return authenticated
	default:
		return false
	}
}
