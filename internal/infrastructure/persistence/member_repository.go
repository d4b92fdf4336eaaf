package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/faithconnect/backend/internal/domain/organization"
	"github.com/faithconnect/backend/internal/domain/shared"
	"github.com/faithconnect/backend/internal/infrastructure/persistence/models"
)

// GormMemberRepository implements organization.MemberRepository using GORM
type GormMemberRepository struct {
	db *gorm.DB
}

// NewGormMemberRepository creates a new GormMemberRepository
func NewGormMemberRepository(db *gorm.DB) *GormMemberRepository {
	return &GormMemberRepository{db: db}
}

// Create creates a new member
func (r *GormMemberRepository) Create(ctx context.Context, member *organization.Member) error {
	model := models.MemberModelFromDomain(member)
	return r.db.WithContext(ctx).Create(model).Error
}

// CreateBatch inserts many members in one round trip. Used by bulk import.
func (r *GormMemberRepository) CreateBatch(ctx context.Context, members []*organization.Member) error {
	if len(members) == 0 {
		return nil
	}
	memberModels := make([]*models.MemberModel, len(members))
	for i, member := range members {
		memberModels[i] = models.MemberModelFromDomain(member)
	}
	return r.db.WithContext(ctx).CreateInBatches(memberModels, 200).Error
}

// Update updates an existing member with optimistic locking
func (r *GormMemberRepository) Update(ctx context.Context, member *organization.Member) error {
	model := models.MemberModelFromDomain(member)
	result := r.db.WithContext(ctx).
		Model(&models.MemberModel{}).
		Where("id = ? AND version = ?", member.ID, member.Version-1).
		Select("*").
		Omit("id", "created_at").
		Updates(model)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// Delete deletes a member by ID
func (r *GormMemberRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.MemberModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a member by ID
func (r *GormMemberRepository) FindByID(ctx context.Context, id uuid.UUID) (*organization.Member, error) {
	var model models.MemberModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByProfileID finds the member record linked to a portal account
func (r *GormMemberRepository) FindByProfileID(ctx context.Context, profileID uuid.UUID) (*organization.Member, error) {
	var model models.MemberModel
	if err := r.db.WithContext(ctx).
		Where("profile_id = ?", profileID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByBranch returns the branch roll matching the filter with pagination
func (r *GormMemberRepository) FindByBranch(ctx context.Context, branchID uuid.UUID, filter organization.MemberFilter) ([]*organization.Member, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&models.MemberModel{}).
		Where("branch_id = ?", branchID)

	if filter.Keyword != "" {
		pattern := "%" + filter.Keyword + "%"
		query = query.Where("first_name ILIKE ? OR last_name ILIKE ? OR email ILIKE ? OR phone ILIKE ?",
			pattern, pattern, pattern, pattern)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var memberModels []models.MemberModel
	if err := query.
		Order("last_name ASC, first_name ASC").
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&memberModels).Error; err != nil {
		return nil, 0, err
	}

	members := make([]*organization.Member, len(memberModels))
	for i := range memberModels {
		members[i] = memberModels[i].ToDomain()
	}
	return members, total, nil
}

// CountByBranch counts members on a branch roll
func (r *GormMemberRepository) CountByBranch(ctx context.Context, branchID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.MemberModel{}).
		Where("branch_id = ?", branchID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Count returns the total number of members across all branches
func (r *GormMemberRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.MemberModel{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormMemberRepository implements MemberRepository
var _ organization.MemberRepository = (*GormMemberRepository)(nil)
