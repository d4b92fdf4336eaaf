package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/faithconnect/backend/internal/domain/organization"
	"github.com/faithconnect/backend/internal/domain/shared"
	"github.com/faithconnect/backend/internal/domain/transfer"
	"github.com/faithconnect/backend/internal/infrastructure/persistence/models"
)

func setupTransferTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.MemberTransferModel{},
		&models.MemberModel{},
		&models.ProfileModel{},
		&models.DepartmentModel{},
		&models.DepartmentMemberModel{},
		&models.GroupModel{},
		&models.GroupMemberModel{},
	)
	require.NoError(t, err)

	return db
}

func newPendingTransfer(t *testing.T, memberID, fromBranch, toBranch uuid.UUID) *transfer.MemberTransfer {
	req, err := transfer.NewMemberTransfer(memberID, fromBranch, toBranch, uuid.New(), "relocating")
	require.NoError(t, err)
	return req
}

func TestGormTransferRepository_CreateAndFindByID(t *testing.T) {
	db := setupTransferTestDB(t)
	repo := NewGormTransferRepository(db)
	ctx := context.Background()

	req := newPendingTransfer(t, uuid.New(), uuid.New(), uuid.New())
	require.NoError(t, repo.Create(ctx, req))

	found, err := repo.FindByID(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, req.MemberID, found.MemberID)
	assert.Equal(t, transfer.StatusPending, found.Status)
	assert.Equal(t, "relocating", found.Notes)
}

func TestGormTransferRepository_FindByID_NotFound(t *testing.T) {
	db := setupTransferTestDB(t)
	repo := NewGormTransferRepository(db)

	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormTransferRepository_FindByBranch(t *testing.T) {
	db := setupTransferTestDB(t)
	repo := NewGormTransferRepository(db)
	ctx := context.Background()

	destination := uuid.New()

	older := newPendingTransfer(t, uuid.New(), uuid.New(), destination)
	older.CreatedAt = time.Now().Add(-2 * time.Hour)
	require.NoError(t, repo.Create(ctx, older))

	newer := newPendingTransfer(t, uuid.New(), uuid.New(), destination)
	require.NoError(t, repo.Create(ctx, newer))

	elsewhere := newPendingTransfer(t, uuid.New(), uuid.New(), uuid.New())
	require.NoError(t, repo.Create(ctx, elsewhere))

	found, err := repo.FindByBranch(ctx, destination, nil)
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, newer.ID, found[0].ID)
	assert.Equal(t, older.ID, found[1].ID)
}

func TestGormTransferRepository_FindByBranch_StatusFilter(t *testing.T) {
	db := setupTransferTestDB(t)
	repo := NewGormTransferRepository(db)
	ctx := context.Background()

	destination := uuid.New()

	pendingReq := newPendingTransfer(t, uuid.New(), uuid.New(), destination)
	require.NoError(t, repo.Create(ctx, pendingReq))

	decided := newPendingTransfer(t, uuid.New(), uuid.New(), destination)
	require.NoError(t, repo.Create(ctx, decided))
	require.NoError(t, decided.Approve(uuid.New()))
	require.NoError(t, repo.CompleteTransition(ctx, decided))

	pending := transfer.StatusPending
	found, err := repo.FindByBranch(ctx, destination, &pending)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, pendingReq.ID, found[0].ID)
}

func TestGormTransferRepository_FindByMember_Order(t *testing.T) {
	db := setupTransferTestDB(t)
	repo := NewGormTransferRepository(db)
	ctx := context.Background()

	memberID := uuid.New()

	first := newPendingTransfer(t, memberID, uuid.New(), uuid.New())
	first.CreatedAt = time.Now().Add(-time.Hour)
	require.NoError(t, repo.Create(ctx, first))

	second := newPendingTransfer(t, memberID, uuid.New(), uuid.New())
	require.NoError(t, repo.Create(ctx, second))

	oldest, err := repo.FindByMember(ctx, memberID, nil, transfer.SortOldestFirst)
	require.NoError(t, err)
	require.Len(t, oldest, 2)
	assert.Equal(t, first.ID, oldest[0].ID)

	newest, err := repo.FindByMember(ctx, memberID, nil, transfer.SortNewestFirst)
	require.NoError(t, err)
	require.Len(t, newest, 2)
	assert.Equal(t, second.ID, newest[0].ID)
}

func TestGormTransferRepository_CountPendingByBranch(t *testing.T) {
	db := setupTransferTestDB(t)
	repo := NewGormTransferRepository(db)
	ctx := context.Background()

	destination := uuid.New()
	require.NoError(t, repo.Create(ctx, newPendingTransfer(t, uuid.New(), uuid.New(), destination)))
	require.NoError(t, repo.Create(ctx, newPendingTransfer(t, uuid.New(), uuid.New(), destination)))

	count, err := repo.CountPendingByBranch(ctx, destination)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestGormTransferRepository_CompleteTransition(t *testing.T) {
	db := setupTransferTestDB(t)
	repo := NewGormTransferRepository(db)
	ctx := context.Background()

	t.Run("persists an approval", func(t *testing.T) {
		req := newPendingTransfer(t, uuid.New(), uuid.New(), uuid.New())
		require.NoError(t, repo.Create(ctx, req))

		processor := uuid.New()
		require.NoError(t, req.Approve(processor))
		require.NoError(t, repo.CompleteTransition(ctx, req))

		stored, err := repo.FindByID(ctx, req.ID)
		require.NoError(t, err)
		assert.Equal(t, transfer.StatusApproved, stored.Status)
		require.NotNil(t, stored.ProcessedBy)
		assert.Equal(t, processor, *stored.ProcessedBy)
		assert.NotNil(t, stored.ProcessedAt)
	})

	t.Run("loser of a decision race gets ErrInvalidState", func(t *testing.T) {
		req := newPendingTransfer(t, uuid.New(), uuid.New(), uuid.New())
		require.NoError(t, repo.Create(ctx, req))

		// Two admins loaded the same pending request
		winner, err := repo.FindByID(ctx, req.ID)
		require.NoError(t, err)
		loser, err := repo.FindByID(ctx, req.ID)
		require.NoError(t, err)

		require.NoError(t, winner.Approve(uuid.New()))
		require.NoError(t, repo.CompleteTransition(ctx, winner))

		require.NoError(t, loser.Reject(uuid.New(), "duplicate request"))
		err = repo.CompleteTransition(ctx, loser)
		assert.ErrorIs(t, err, shared.ErrInvalidState)

		// The winning decision is untouched
		stored, err := repo.FindByID(ctx, req.ID)
		require.NoError(t, err)
		assert.Equal(t, transfer.StatusApproved, stored.Status)
		assert.Empty(t, stored.RejectionNotes)
	})
}

func TestGormTransferRepository_MigrateApproved(t *testing.T) {
	db := setupTransferTestDB(t)
	repo := NewGormTransferRepository(db)
	memberRepo := NewGormMemberRepository(db)
	ctx := context.Background()

	fromBranch := uuid.New()
	toBranch := uuid.New()

	member, err := organization.NewMember(fromBranch, "Grace", "Okafor")
	require.NoError(t, err)
	profileID := uuid.New()
	member.ProfileID = &profileID
	require.NoError(t, memberRepo.Create(ctx, member))

	profileModel := models.ProfileModel{
		Email:        "grace@example.com",
		PasswordHash: "x",
		Role:         "member",
		Status:       "active",
		BranchID:     &fromBranch,
	}
	profileModel.ID = profileID
	profileModel.Version = 1
	require.NoError(t, db.Create(&profileModel).Error)

	department, err := organization.NewDepartment(fromBranch, "Choir")
	require.NoError(t, err)
	require.NoError(t, NewGormDepartmentRepository(db).Create(ctx, department))
	require.NoError(t, NewGormDepartmentRepository(db).AddMember(ctx, department.ID, profileID))

	req := newPendingTransfer(t, member.ID, fromBranch, toBranch)
	require.NoError(t, repo.Create(ctx, req))
	require.NoError(t, req.Approve(uuid.New()))

	require.NoError(t, repo.MigrateApproved(ctx, req))

	movedMember, err := memberRepo.FindByID(ctx, member.ID)
	require.NoError(t, err)
	assert.Equal(t, toBranch, movedMember.BranchID)
	assert.Equal(t, organization.MemberStatusActive, movedMember.Status)

	var movedProfile models.ProfileModel
	require.NoError(t, db.First(&movedProfile, "id = ?", profileID).Error)
	require.NotNil(t, movedProfile.BranchID)
	assert.Equal(t, toBranch, *movedProfile.BranchID)

	memberships, err := NewGormDepartmentRepository(db).FindMembershipsByProfile(ctx, profileID)
	require.NoError(t, err)
	assert.Empty(t, memberships)
}

func TestGormTransferRepository_MigrateApproved_RaceRollsBack(t *testing.T) {
	db := setupTransferTestDB(t)
	repo := NewGormTransferRepository(db)
	memberRepo := NewGormMemberRepository(db)
	ctx := context.Background()

	fromBranch := uuid.New()
	toBranch := uuid.New()

	member, err := organization.NewMember(fromBranch, "Sam", "Adeyemi")
	require.NoError(t, err)
	require.NoError(t, memberRepo.Create(ctx, member))

	req := newPendingTransfer(t, member.ID, fromBranch, toBranch)
	require.NoError(t, repo.Create(ctx, req))

	winner, err := repo.FindByID(ctx, req.ID)
	require.NoError(t, err)
	require.NoError(t, winner.Reject(uuid.New(), "stay put"))
	require.NoError(t, repo.CompleteTransition(ctx, winner))

	loser, err := repo.FindByID(ctx, req.ID)
	require.NoError(t, err)
	loser.Status = transfer.StatusPending
	require.NoError(t, loser.Approve(uuid.New()))

	err = repo.MigrateApproved(ctx, loser)
	assert.ErrorIs(t, err, shared.ErrInvalidState)

	// The member never moved
	stored, err := memberRepo.FindByID(ctx, member.ID)
	require.NoError(t, err)
	assert.Equal(t, fromBranch, stored.BranchID)
}

func TestGormTransferRepository_MigrateApproved_RequiresApprovedStatus(t *testing.T) {
	db := setupTransferTestDB(t)
	repo := NewGormTransferRepository(db)

	req := newPendingTransfer(t, uuid.New(), uuid.New(), uuid.New())
	err := repo.MigrateApproved(context.Background(), req)
	assert.ErrorIs(t, err, shared.ErrInvalidState)
}
