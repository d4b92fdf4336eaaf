package streaming

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for stream persistence
type Repository interface {
	Create(ctx context.Context, stream *Stream) error
	Update(ctx context.Context, stream *Stream) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Stream, error)
	FindByBranch(ctx context.Context, branchID uuid.UUID, status *Status) ([]*Stream, error)
	FindLive(ctx context.Context) ([]*Stream, error)
}

// ViewerCounter tracks live viewer counts per stream. Counts are
// ephemeral; losing them on restart is acceptable.
type ViewerCounter interface {
	// Join increments the viewer count and returns the new total
	Join(ctx context.Context, streamID uuid.UUID) (int64, error)

	// Leave decrements the viewer count, flooring at zero,
	// and returns the new total
	Leave(ctx context.Context, streamID uuid.UUID) (int64, error)

	// Current returns the current viewer count
	Current(ctx context.Context, streamID uuid.UUID) (int64, error)

	// Reset clears the count when a stream ends
	Reset(ctx context.Context, streamID uuid.UUID) error
}
