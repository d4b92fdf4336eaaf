package audit

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/faithconnect/backend/internal/domain/audit"
	"github.com/faithconnect/backend/internal/domain/shared"
)

// QueryService serves the superadmin audit log browser
type QueryService struct {
	repo   audit.Repository
	logger *zap.Logger
}

// NewQueryService creates a new audit query service
func NewQueryService(repo audit.Repository, logger *zap.Logger) *QueryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QueryService{
		repo:   repo,
		logger: logger,
	}
}

// QueryInput contains filters for browsing the audit log
type QueryInput struct {
	ActorID  string
	Action   string
	Search   string
	Page     int
	PageSize int
}

// Query returns audit entries matching the filters, newest first
func (s *QueryService) Query(ctx context.Context, input QueryInput) ([]*audit.Entry, int64, error) {
	filter := audit.NewFilter()
	if input.Page > 0 {
		filter.Page = input.Page
	}
	if input.PageSize > 0 {
		filter.PageSize = input.PageSize
	}
	filter.Search = input.Search

	if input.ActorID != "" {
		actorID, err := uuid.Parse(input.ActorID)
		if err != nil {
			return nil, 0, shared.NewDomainError("INVALID_ACTOR_ID", "Actor ID must be a valid UUID")
		}
		filter.ActorID = &actorID
	}

	if input.Action != "" {
		action := audit.Action(input.Action)
		if !action.IsValid() {
			return nil, 0, shared.NewDomainError("INVALID_ACTION", "Unknown audit action")
		}
		filter.Action = &action
	}

	entries, total, err := s.repo.Query(ctx, filter)
	if err != nil {
		s.logger.Error("Audit query failed", zap.Error(err))
		return nil, 0, shared.NewDomainError("INTERNAL_ERROR", "Failed to query audit log")
	}
	return entries, total, nil
}
