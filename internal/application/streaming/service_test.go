package streaming

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appaudit "github.com/faithconnect/backend/internal/application/audit"
	"github.com/faithconnect/backend/internal/domain/audit"
	"github.com/faithconnect/backend/internal/domain/identity"
	"github.com/faithconnect/backend/internal/domain/shared"
	"github.com/faithconnect/backend/internal/domain/streaming"
	"github.com/faithconnect/backend/internal/infrastructure/cache"
	"github.com/faithconnect/backend/internal/infrastructure/storage"
)

type memStreamRepo struct {
	streams map[uuid.UUID]*streaming.Stream
}

func newMemStreamRepo() *memStreamRepo {
	return &memStreamRepo{streams: make(map[uuid.UUID]*streaming.Stream)}
}

func (r *memStreamRepo) Create(_ context.Context, s *streaming.Stream) error {
	r.streams[s.ID] = s
	return nil
}

func (r *memStreamRepo) Update(_ context.Context, s *streaming.Stream) error {
	r.streams[s.ID] = s
	return nil
}

func (r *memStreamRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.streams, id)
	return nil
}

func (r *memStreamRepo) FindByID(_ context.Context, id uuid.UUID) (*streaming.Stream, error) {
	s, ok := r.streams[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return s, nil
}

func (r *memStreamRepo) FindByBranch(_ context.Context, branchID uuid.UUID, status *streaming.Status) ([]*streaming.Stream, error) {
	matched := make([]*streaming.Stream, 0)
	for _, s := range r.streams {
		if s.BranchID != branchID {
			continue
		}
		if status != nil && s.Status != *status {
			continue
		}
		matched = append(matched, s)
	}
	return matched, nil
}

func (r *memStreamRepo) FindLive(_ context.Context) ([]*streaming.Stream, error) {
	matched := make([]*streaming.Stream, 0)
	for _, s := range r.streams {
		if s.Status == streaming.StatusLive {
			matched = append(matched, s)
		}
	}
	return matched, nil
}

type auditSink struct {
	entries []*audit.Entry
}

func (s *auditSink) Create(_ context.Context, entry *audit.Entry) error {
	s.entries = append(s.entries, entry)
	return nil
}

func (s *auditSink) Query(_ context.Context, _ audit.Filter) ([]*audit.Entry, int64, error) {
	return s.entries, int64(len(s.entries)), nil
}

type streamFixture struct {
	svc      *Service
	streams  *memStreamRepo
	storage  *storage.StubPlaybackStorage
	audits   *auditSink
	branchID uuid.UUID
}

func newStreamFixture() *streamFixture {
	streams := newMemStreamRepo()
	stub := storage.NewStubPlaybackStorage()
	audits := &auditSink{}
	svc := NewService(streams, cache.NewInMemoryViewerCounter(), stub,
		appaudit.NewRecorder(audits, zap.NewNop()), zap.NewNop())
	return &streamFixture{
		svc:      svc,
		streams:  streams,
		storage:  stub,
		audits:   audits,
		branchID: uuid.New(),
	}
}

func (f *streamFixture) admin() *identity.Session {
	return &identity.Session{
		UserID:    uuid.New(),
		Email:     "admin@example.com",
		Role:      identity.RoleAdmin,
		BranchID:  &f.branchID,
		ExpiresAt: time.Now().Add(time.Hour),
	}
}

func (f *streamFixture) member() *identity.Session {
	return &identity.Session{
		UserID:    uuid.New(),
		Email:     "member@example.com",
		Role:      identity.RoleMember,
		BranchID:  &f.branchID,
		ExpiresAt: time.Now().Add(time.Hour),
	}
}

func (f *streamFixture) schedule(t *testing.T, privacy string) *StreamView {
	t.Helper()
	view, err := f.svc.Schedule(context.Background(), f.admin(), ScheduleInput{
		Title:          "Sunday Service",
		Privacy:        privacy,
		ScheduledStart: time.Now().Add(time.Hour),
	})
	require.NoError(t, err)
	return view
}

func TestSchedule(t *testing.T) {
	f := newStreamFixture()

	view := f.schedule(t, "")
	assert.Equal(t, "scheduled", view.Status)
	assert.Equal(t, "members_only", view.Privacy)
	assert.Equal(t, f.branchID, view.BranchID)
	assert.NotEmpty(t, view.StreamKey)
}

func TestSchedule_BadPrivacy(t *testing.T) {
	f := newStreamFixture()

	_, err := f.svc.Schedule(context.Background(), f.admin(), ScheduleInput{
		Title:          "Sunday Service",
		Privacy:        "secret",
		ScheduledStart: time.Now().Add(time.Hour),
	})
	assert.Error(t, err)
}

func TestStartAndEnd(t *testing.T) {
	f := newStreamFixture()
	scheduled := f.schedule(t, "")
	admin := f.admin()

	live, err := f.svc.Start(context.Background(), admin, scheduled.ID)
	require.NoError(t, err)
	assert.Equal(t, "live", live.Status)
	require.NotNil(t, live.StartedAt)

	require.Len(t, f.audits.entries, 1)
	assert.Equal(t, audit.ActionStartStream, f.audits.entries[0].Action)

	// Viewers accumulate while live, then clear at end
	_, err = f.svc.JoinViewer(context.Background(), scheduled.ID)
	require.NoError(t, err)
	count, err := f.svc.JoinViewer(context.Background(), scheduled.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count.Viewers)

	ended, err := f.svc.End(context.Background(), admin, scheduled.ID)
	require.NoError(t, err)
	assert.Equal(t, "ended", ended.Status)

	count, err = f.svc.ViewerCount(context.Background(), scheduled.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count.Viewers)
}

func TestStart_WrongBranchAdminDenied(t *testing.T) {
	f := newStreamFixture()
	scheduled := f.schedule(t, "")

	other := f.admin()
	otherBranch := uuid.New()
	other.BranchID = &otherBranch

	_, err := f.svc.Start(context.Background(), other, scheduled.ID)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "FORBIDDEN", domainErr.Code)
}

func TestStart_AlreadyLive(t *testing.T) {
	f := newStreamFixture()
	scheduled := f.schedule(t, "")
	admin := f.admin()

	_, err := f.svc.Start(context.Background(), admin, scheduled.ID)
	require.NoError(t, err)
	_, err = f.svc.Start(context.Background(), admin, scheduled.ID)
	assert.ErrorIs(t, err, shared.ErrInvalidState)
}

func TestArchive(t *testing.T) {
	f := newStreamFixture()
	scheduled := f.schedule(t, "")
	admin := f.admin()

	_, err := f.svc.Start(context.Background(), admin, scheduled.ID)
	require.NoError(t, err)
	_, err = f.svc.End(context.Background(), admin, scheduled.ID)
	require.NoError(t, err)

	f.storage.AddObject("recordings/sunday.mp4")
	archived, err := f.svc.Archive(context.Background(), admin, ArchiveInput{
		StreamID:     scheduled.ID,
		PlaybackPath: "recordings/sunday.mp4",
	})
	require.NoError(t, err)
	assert.Equal(t, "archived", archived.Status)
	assert.Equal(t, audit.ActionArchiveStream, f.audits.entries[len(f.audits.entries)-1].Action)
}

func TestArchive_LiveStreamRefused(t *testing.T) {
	f := newStreamFixture()
	scheduled := f.schedule(t, "")
	admin := f.admin()

	_, err := f.svc.Start(context.Background(), admin, scheduled.ID)
	require.NoError(t, err)

	f.storage.AddObject("recordings/sunday.mp4")
	_, err = f.svc.Archive(context.Background(), admin, ArchiveInput{
		StreamID:     scheduled.ID,
		PlaybackPath: "recordings/sunday.mp4",
	})
	assert.ErrorIs(t, err, shared.ErrInvalidState)
}

func TestArchive_MissingRecording(t *testing.T) {
	f := newStreamFixture()
	scheduled := f.schedule(t, "")
	admin := f.admin()

	_, err := f.svc.Start(context.Background(), admin, scheduled.ID)
	require.NoError(t, err)
	_, err = f.svc.End(context.Background(), admin, scheduled.ID)
	require.NoError(t, err)

	_, err = f.svc.Archive(context.Background(), admin, ArchiveInput{
		StreamID:     scheduled.ID,
		PlaybackPath: "recordings/missing.mp4",
	})
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "RECORDING_NOT_FOUND", domainErr.Code)
}

func TestPlayback(t *testing.T) {
	f := newStreamFixture()
	scheduled := f.schedule(t, "")
	admin := f.admin()

	_, err := f.svc.Start(context.Background(), admin, scheduled.ID)
	require.NoError(t, err)
	_, err = f.svc.End(context.Background(), admin, scheduled.ID)
	require.NoError(t, err)
	f.storage.AddObject("recordings/sunday.mp4")
	_, err = f.svc.Archive(context.Background(), admin, ArchiveInput{
		StreamID:     scheduled.ID,
		PlaybackPath: "recordings/sunday.mp4",
	})
	require.NoError(t, err)

	playback, err := f.svc.Playback(context.Background(), f.member(), scheduled.ID)
	require.NoError(t, err)
	assert.Contains(t, playback.URL, "recordings/sunday.mp4")
	assert.True(t, playback.ExpiresAt.After(time.Now()))
}

func TestPlayback_NotArchived(t *testing.T) {
	f := newStreamFixture()
	scheduled := f.schedule(t, "")

	_, err := f.svc.Playback(context.Background(), f.member(), scheduled.ID)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_ARCHIVED", domainErr.Code)
}

func TestPlayback_PrivateDeniedToMembers(t *testing.T) {
	f := newStreamFixture()
	scheduled := f.schedule(t, "private")
	admin := f.admin()

	_, err := f.svc.Start(context.Background(), admin, scheduled.ID)
	require.NoError(t, err)
	_, err = f.svc.End(context.Background(), admin, scheduled.ID)
	require.NoError(t, err)
	f.storage.AddObject("recordings/board.mp4")
	_, err = f.svc.Archive(context.Background(), admin, ArchiveInput{
		StreamID:     scheduled.ID,
		PlaybackPath: "recordings/board.mp4",
	})
	require.NoError(t, err)

	_, err = f.svc.Playback(context.Background(), f.member(), scheduled.ID)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "FORBIDDEN", domainErr.Code)

	// The branch admin can still watch it
	_, err = f.svc.Playback(context.Background(), admin, scheduled.ID)
	assert.NoError(t, err)
}

func TestListForBranch_HidesPrivateAndStreamKey(t *testing.T) {
	f := newStreamFixture()
	f.schedule(t, "")
	f.schedule(t, "private")

	listed, err := f.svc.ListForBranch(context.Background(), f.member(), ListInput{})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Empty(t, listed[0].StreamKey)

	listed, err = f.svc.ListForBranch(context.Background(), f.admin(), ListInput{})
	require.NoError(t, err)
	assert.Len(t, listed, 2)
	assert.NotEmpty(t, listed[0].StreamKey)
}

func TestListLive(t *testing.T) {
	f := newStreamFixture()
	scheduled := f.schedule(t, "")
	f.schedule(t, "")

	_, err := f.svc.Start(context.Background(), f.admin(), scheduled.ID)
	require.NoError(t, err)

	live, err := f.svc.ListLive(context.Background())
	require.NoError(t, err)
	require.Len(t, live, 1)
	assert.Equal(t, scheduled.ID, live[0].ID)
}

func TestJoinViewer_NotLive(t *testing.T) {
	f := newStreamFixture()
	scheduled := f.schedule(t, "")

	_, err := f.svc.JoinViewer(context.Background(), scheduled.ID)
	assert.ErrorIs(t, err, shared.ErrInvalidState)
}
