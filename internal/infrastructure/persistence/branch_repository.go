package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/faithconnect/backend/internal/domain/organization"
	"github.com/faithconnect/backend/internal/domain/shared"
	"github.com/faithconnect/backend/internal/infrastructure/persistence/models"
)

// GormBranchRepository implements organization.BranchRepository using GORM
type GormBranchRepository struct {
	db *gorm.DB
}

// NewGormBranchRepository creates a new GormBranchRepository
func NewGormBranchRepository(db *gorm.DB) *GormBranchRepository {
	return &GormBranchRepository{db: db}
}

// Create creates a new branch
func (r *GormBranchRepository) Create(ctx context.Context, branch *organization.Branch) error {
	model := models.BranchModelFromDomain(branch)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if isUniqueViolation(err) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Update updates an existing branch with optimistic locking
func (r *GormBranchRepository) Update(ctx context.Context, branch *organization.Branch) error {
	model := models.BranchModelFromDomain(branch)
	result := r.db.WithContext(ctx).
		Model(&models.BranchModel{}).
		Where("id = ? AND version = ?", branch.ID, branch.Version-1).
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

// Delete deletes a branch by ID
func (r *GormBranchRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.BranchModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a branch by ID
func (r *GormBranchRepository) FindByID(ctx context.Context, id uuid.UUID) (*organization.Branch, error) {
	var model models.BranchModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns all branches ordered by name
func (r *GormBranchRepository) FindAll(ctx context.Context) ([]*organization.Branch, error) {
	var branchModels []models.BranchModel
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&branchModels).Error; err != nil {
		return nil, err
	}

	branches := make([]*organization.Branch, len(branchModels))
	for i := range branchModels {
		branches[i] = branchModels[i].ToDomain()
	}
	return branches, nil
}

// ExistsByName checks if a branch with the given name exists
func (r *GormBranchRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.BranchModel{}).
		Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name))).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Count returns the total number of branches
func (r *GormBranchRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.BranchModel{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormBranchRepository implements BranchRepository
var _ organization.BranchRepository = (*GormBranchRepository)(nil)
