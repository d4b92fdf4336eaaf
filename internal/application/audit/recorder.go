package audit

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/faithconnect/backend/internal/domain/audit"
)

// Recorder appends entries to the audit log. Recording never fails the
// calling operation: a write error is logged and swallowed, trading a
// possible gap in the trail for keeping the admin action itself alive.
type Recorder struct {
	repo   audit.Repository
	logger *zap.Logger
}

// NewRecorder creates a new audit recorder
func NewRecorder(repo audit.Repository, logger *zap.Logger) *Recorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Recorder{
		repo:   repo,
		logger: logger,
	}
}

// Record appends one entry to the audit log
func (r *Recorder) Record(ctx context.Context, actorID uuid.UUID, action audit.Action, details map[string]interface{}) {
	entry, err := audit.NewEntry(actorID, action, details)
	if err != nil {
		r.logger.Error("Invalid audit entry",
			zap.String("actor_id", actorID.String()),
			zap.String("action", string(action)),
			zap.Error(err))
		return
	}

	if err := r.repo.Create(ctx, entry); err != nil {
		r.logger.Error("Failed to write audit entry",
			zap.String("actor_id", actorID.String()),
			zap.String("action", string(action)),
			zap.Error(err))
	}
}
