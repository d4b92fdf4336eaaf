package streaming

import (
	"time"

	"github.com/google/uuid"

	"github.com/faithconnect/backend/internal/domain/streaming"
)

// ScheduleInput carries the fields for scheduling a broadcast
type ScheduleInput struct {
	BranchID       uuid.UUID `json:"branch_id"`
	Title          string    `json:"title" binding:"required"`
	Description    string    `json:"description"`
	Platform       string    `json:"platform"`
	Privacy        string    `json:"privacy"`
	ScheduledStart time.Time `json:"scheduled_start" binding:"required"`
}

// ArchiveInput carries the recording location for an ended stream
type ArchiveInput struct {
	StreamID     uuid.UUID
	PlaybackPath string `json:"playback_path" binding:"required"`
}

// ListInput carries stream query options
type ListInput struct {
	BranchID uuid.UUID
	Status   string
}

// StreamView is the client-facing stream shape. The stream key is only
// present for branch admins.
type StreamView struct {
	ID             uuid.UUID  `json:"id"`
	BranchID       uuid.UUID  `json:"branch_id"`
	Title          string     `json:"title"`
	Description    string     `json:"description,omitempty"`
	Platform       string     `json:"platform,omitempty"`
	Privacy        string     `json:"privacy"`
	Status         string     `json:"status"`
	ScheduledStart time.Time  `json:"scheduled_start"`
	StartedAt      *time.Time `json:"started_at,omitempty"`
	EndedAt        *time.Time `json:"ended_at,omitempty"`
	StreamKey      string     `json:"stream_key,omitempty"`
}

// ViewFromDomain maps a domain stream to its client shape. The stream
// key is stripped unless admin is set.
func ViewFromDomain(s *streaming.Stream, admin bool) StreamView {
	view := StreamView{
		ID:             s.ID,
		BranchID:       s.BranchID,
		Title:          s.Title,
		Description:    s.Description,
		Platform:       s.Platform,
		Privacy:        string(s.Privacy),
		Status:         string(s.Status),
		ScheduledStart: s.ScheduledStart,
		StartedAt:      s.StartedAt,
		EndedAt:        s.EndedAt,
	}
	if admin {
		view.StreamKey = s.StreamKey
	}
	return view
}

// PlaybackView is a short-lived signed playback link
type PlaybackView struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ViewerCountView reports the live viewer total for a stream
type ViewerCountView struct {
	StreamID uuid.UUID `json:"stream_id"`
	Viewers  int64     `json:"viewers"`
}
