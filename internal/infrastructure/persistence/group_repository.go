package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/faithconnect/backend/internal/domain/organization"
	"github.com/faithconnect/backend/internal/domain/shared"
	"github.com/faithconnect/backend/internal/infrastructure/persistence/models"
)

// GormGroupRepository implements organization.GroupRepository using GORM
type GormGroupRepository struct {
	db *gorm.DB
}

// NewGormGroupRepository creates a new GormGroupRepository
func NewGormGroupRepository(db *gorm.DB) *GormGroupRepository {
	return &GormGroupRepository{db: db}
}

// Create creates a new group
func (r *GormGroupRepository) Create(ctx context.Context, group *organization.Group) error {
	model := models.GroupModelFromDomain(group)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update updates an existing group with optimistic locking
func (r *GormGroupRepository) Update(ctx context.Context, group *organization.Group) error {
	model := models.GroupModelFromDomain(group)
	result := r.db.WithContext(ctx).
		Model(&models.GroupModel{}).
		Where("id = ? AND version = ?", group.ID, group.Version-1).
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

// Delete deletes a group and its memberships
func (r *GormGroupRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.GroupMemberModel{}, "group_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.GroupModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// FindByID finds a group by ID
func (r *GormGroupRepository) FindByID(ctx context.Context, id uuid.UUID) (*organization.Group, error) {
	var model models.GroupModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByBranch returns all groups of a branch ordered by name
func (r *GormGroupRepository) FindByBranch(ctx context.Context, branchID uuid.UUID) ([]*organization.Group, error) {
	var groupModels []models.GroupModel
	if err := r.db.WithContext(ctx).
		Where("branch_id = ?", branchID).
		Order("name ASC").
		Find(&groupModels).Error; err != nil {
		return nil, err
	}

	groups := make([]*organization.Group, len(groupModels))
	for i := range groupModels {
		groups[i] = groupModels[i].ToDomain()
	}
	return groups, nil
}

// AddMember adds a profile to a group. Adding twice is a no-op.
func (r *GormGroupRepository) AddMember(ctx context.Context, groupID, profileID uuid.UUID) error {
	membership := models.GroupMemberModel{
		GroupID:   groupID,
		ProfileID: profileID,
		JoinedAt:  time.Now(),
	}
	err := r.db.WithContext(ctx).Create(&membership).Error
	if err != nil && isUniqueViolation(err) {
		return nil
	}
	return err
}

// RemoveMember removes a profile from a group
func (r *GormGroupRepository) RemoveMember(ctx context.Context, groupID, profileID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Delete(&models.GroupMemberModel{}, "group_id = ? AND profile_id = ?", groupID, profileID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindMembers returns the memberships of a group
func (r *GormGroupRepository) FindMembers(ctx context.Context, groupID uuid.UUID) ([]organization.GroupMember, error) {
	var membershipModels []models.GroupMemberModel
	if err := r.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Order("joined_at ASC").
		Find(&membershipModels).Error; err != nil {
		return nil, err
	}

	memberships := make([]organization.GroupMember, len(membershipModels))
	for i := range membershipModels {
		memberships[i] = membershipModels[i].ToDomain()
	}
	return memberships, nil
}

// FindMembershipsByProfile returns all group memberships of a profile
func (r *GormGroupRepository) FindMembershipsByProfile(ctx context.Context, profileID uuid.UUID) ([]organization.GroupMember, error) {
	var membershipModels []models.GroupMemberModel
	if err := r.db.WithContext(ctx).
		Where("profile_id = ?", profileID).
		Find(&membershipModels).Error; err != nil {
		return nil, err
	}

	memberships := make([]organization.GroupMember, len(membershipModels))
	for i := range membershipModels {
		memberships[i] = membershipModels[i].ToDomain()
	}
	return memberships, nil
}

// Ensure GormGroupRepository implements GroupRepository
var _ organization.GroupRepository = (*GormGroupRepository)(nil)
