package audit

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/faithconnect/backend/internal/domain/audit"
)

type fakeAuditRepo struct {
	entries   []*audit.Entry
	createErr error
	queryErr  error
}

func (f *fakeAuditRepo) Create(_ context.Context, entry *audit.Entry) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeAuditRepo) Query(_ context.Context, filter audit.Filter) ([]*audit.Entry, int64, error) {
	if f.queryErr != nil {
		return nil, 0, f.queryErr
	}
	matched := make([]*audit.Entry, 0)
	for _, e := range f.entries {
		if filter.Action != nil && e.Action != *filter.Action {
			continue
		}
		if filter.ActorID != nil && e.ActorID != *filter.ActorID {
			continue
		}
		matched = append(matched, e)
	}
	return matched, int64(len(matched)), nil
}

func TestRecorder_Record(t *testing.T) {
	repo := &fakeAuditRepo{}
	recorder := NewRecorder(repo, zap.NewNop())
	actorID := uuid.New()

	recorder.Record(context.Background(), actorID, audit.ActionCreatedBranch, map[string]interface{}{
		"branch_name": "North Campus",
	})

	require.Len(t, repo.entries, 1)
	assert.Equal(t, actorID, repo.entries[0].ActorID)
	assert.Equal(t, audit.ActionCreatedBranch, repo.entries[0].Action)
	assert.Equal(t, "North Campus", repo.entries[0].Details["branch_name"])
}

func TestRecorder_SwallowsRepositoryError(t *testing.T) {
	repo := &fakeAuditRepo{createErr: errors.New("connection refused")}
	recorder := NewRecorder(repo, zap.NewNop())

	// Must not panic or propagate the failure
	recorder.Record(context.Background(), uuid.New(), audit.ActionImportMembers, map[string]interface{}{
		"count": 42,
	})

	assert.Empty(t, repo.entries)
}

func TestRecorder_RejectsUnknownAction(t *testing.T) {
	repo := &fakeAuditRepo{}
	recorder := NewRecorder(repo, zap.NewNop())

	recorder.Record(context.Background(), uuid.New(), audit.Action("deleted_everything"), nil)

	assert.Empty(t, repo.entries)
}

func TestQueryService_FiltersByAction(t *testing.T) {
	repo := &fakeAuditRepo{}
	recorder := NewRecorder(repo, zap.NewNop())
	actor := uuid.New()

	recorder.Record(context.Background(), actor, audit.ActionTransferApproved, nil)
	recorder.Record(context.Background(), actor, audit.ActionTransferRejected, nil)

	svc := NewQueryService(repo, zap.NewNop())
	entries, total, err := svc.Query(context.Background(), QueryInput{Action: "transfer_approved"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, entries, 1)
	assert.Equal(t, audit.ActionTransferApproved, entries[0].Action)
}

func TestQueryService_RejectsUnknownAction(t *testing.T) {
	svc := NewQueryService(&fakeAuditRepo{}, zap.NewNop())

	_, _, err := svc.Query(context.Background(), QueryInput{Action: "made_coffee"})
	assert.Error(t, err)
}

func TestQueryService_RejectsBadActorID(t *testing.T) {
	svc := NewQueryService(&fakeAuditRepo{}, zap.NewNop())

	_, _, err := svc.Query(context.Background(), QueryInput{ActorID: "nope"})
	assert.Error(t, err)
}
