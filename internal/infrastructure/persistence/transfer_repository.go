package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/faithconnect/backend/internal/domain/shared"
	"github.com/faithconnect/backend/internal/domain/transfer"
	"github.com/faithconnect/backend/internal/infrastructure/persistence/models"
)

// GormTransferRepository implements transfer.Repository using GORM
type GormTransferRepository struct {
	db *gorm.DB
}

// NewGormTransferRepository creates a new GormTransferRepository
func NewGormTransferRepository(db *gorm.DB) *GormTransferRepository {
	return &GormTransferRepository{db: db}
}

// Create creates a new transfer request
func (r *GormTransferRepository) Create(ctx context.Context, t *transfer.MemberTransfer) error {
	model := models.MemberTransferModelFromDomain(t)
	return r.db.WithContext(ctx).Create(model).Error
}

// FindByID finds a transfer by ID
func (r *GormTransferRepository) FindByID(ctx context.Context, id uuid.UUID) (*transfer.MemberTransfer, error) {
	var model models.MemberTransferModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByBranch lists requests whose destination is the branch, newest first
func (r *GormTransferRepository) FindByBranch(ctx context.Context, branchID uuid.UUID, status *transfer.Status) ([]*transfer.MemberTransfer, error) {
	query := r.db.WithContext(ctx).Where("to_branch_id = ?", branchID)
	if status != nil {
		query = query.Where("status = ?", string(*status))
	}

	var transferModels []models.MemberTransferModel
	if err := query.Order("created_at DESC").Find(&transferModels).Error; err != nil {
		return nil, err
	}
	return toDomainTransfers(transferModels), nil
}

// FindByMember lists a member's requests in the given order
func (r *GormTransferRepository) FindByMember(ctx context.Context, memberID uuid.UUID, status *transfer.Status, order transfer.SortOrder) ([]*transfer.MemberTransfer, error) {
	query := r.db.WithContext(ctx).Where("member_id = ?", memberID)
	if status != nil {
		query = query.Where("status = ?", string(*status))
	}

	direction := "DESC"
	if order == transfer.SortOldestFirst {
		direction = "ASC"
	}

	var transferModels []models.MemberTransferModel
	if err := query.Order("created_at " + direction).Find(&transferModels).Error; err != nil {
		return nil, err
	}
	return toDomainTransfers(transferModels), nil
}

// CountPendingByBranch counts pending requests destined for a branch
func (r *GormTransferRepository) CountPendingByBranch(ctx context.Context, branchID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.MemberTransferModel{}).
		Where("to_branch_id = ? AND status = ?", branchID, string(transfer.StatusPending)).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CompleteTransition persists a terminal transition guarded on the row still
// being pending. When another processor already decided the request, the row
// is left untouched and shared.ErrInvalidState is returned.
func (r *GormTransferRepository) CompleteTransition(ctx context.Context, t *transfer.MemberTransfer) error {
	return completeTransition(r.db.WithContext(ctx), t)
}

func completeTransition(db *gorm.DB, t *transfer.MemberTransfer) error {
	result := db.
		Model(&models.MemberTransferModel{}).
		Where("id = ? AND status = ?", t.ID, string(transfer.StatusPending)).
		Updates(map[string]interface{}{
			"status":          string(t.Status),
			"rejection_notes": t.RejectionNotes,
			"processed_by":    t.ProcessedBy,
			"processed_at":    t.ProcessedAt,
			"updated_at":      t.UpdatedAt,
			"version":         t.Version,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrInvalidState
	}
	return nil
}

// MigrateApproved finalizes an approved transfer in one transaction: the
// request row flips from pending, the member record moves to the destination
// branch, the linked portal account follows, and source-branch department and
// group memberships are dropped. The whole unit rolls back when the request
// was decided concurrently.
func (r *GormTransferRepository) MigrateApproved(ctx context.Context, t *transfer.MemberTransfer) error {
	if t.Status != transfer.StatusApproved {
		return shared.ErrInvalidState
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := completeTransition(tx, t); err != nil {
			return err
		}

		var member models.MemberModel
		if err := tx.First(&member, "id = ?", t.MemberID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return shared.ErrNotFound
			}
			return err
		}

		if err := tx.Model(&models.MemberModel{}).
			Where("id = ?", t.MemberID).
			Updates(map[string]interface{}{
				"branch_id": t.ToBranchID,
				"status":    "active",
				"updated_at": t.UpdatedAt,
			}).Error; err != nil {
			return err
		}

		if member.ProfileID == nil {
			return nil
		}

		if err := tx.Model(&models.ProfileModel{}).
			Where("id = ?", *member.ProfileID).
			Update("branch_id", t.ToBranchID).Error; err != nil {
			return err
		}

		if err := tx.
			Where("profile_id = ? AND department_id IN (?)",
				*member.ProfileID,
				tx.Session(&gorm.Session{NewDB: true}).
					Model(&models.DepartmentModel{}).
					Select("id").
					Where("branch_id = ?", t.FromBranchID),
			).
			Delete(&models.DepartmentMemberModel{}).Error; err != nil {
			return err
		}

		if err := tx.
			Where("profile_id = ? AND group_id IN (?)",
				*member.ProfileID,
				tx.Session(&gorm.Session{NewDB: true}).
					Model(&models.GroupModel{}).
					Select("id").
					Where("branch_id = ?", t.FromBranchID),
			).
			Delete(&models.GroupMemberModel{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func toDomainTransfers(transferModels []models.MemberTransferModel) []*transfer.MemberTransfer {
	transfers := make([]*transfer.MemberTransfer, len(transferModels))
	for i := range transferModels {
		transfers[i] = transferModels[i].ToDomain()
	}
	return transfers
}

// Ensure GormTransferRepository implements Repository
var _ transfer.Repository = (*GormTransferRepository)(nil)
