package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/faithconnect/backend/internal/domain/identity"
	"github.com/faithconnect/backend/internal/domain/shared"
	"github.com/faithconnect/backend/internal/infrastructure/persistence/models"
)

// GormProfileRepository implements identity.ProfileRepository using GORM
type GormProfileRepository struct {
	db *gorm.DB
}

// NewGormProfileRepository creates a new GormProfileRepository
func NewGormProfileRepository(db *gorm.DB) *GormProfileRepository {
	return &GormProfileRepository{db: db}
}

// Create creates a new profile
func (r *GormProfileRepository) Create(ctx context.Context, profile *identity.Profile) error {
	model := models.ProfileModelFromDomain(profile)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if isUniqueViolation(err) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Update updates an existing profile with optimistic locking
func (r *GormProfileRepository) Update(ctx context.Context, profile *identity.Profile) error {
	model := models.ProfileModelFromDomain(profile)
	result := r.db.WithContext(ctx).
		Model(&models.ProfileModel{}).
		Where("id = ? AND version = ?", profile.ID, profile.Version-1).
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

// Delete deletes a profile by ID
func (r *GormProfileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ProfileModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a profile by ID
func (r *GormProfileRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Profile, error) {
	var model models.ProfileModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByEmail finds a profile by email
func (r *GormProfileRepository) FindByEmail(ctx context.Context, email string) (*identity.Profile, error) {
	var model models.ProfileModel
	if err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns profiles matching the filter with pagination
func (r *GormProfileRepository) FindAll(ctx context.Context, filter identity.ProfileFilter) ([]*identity.Profile, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ProfileModel{})
	query = r.applyFilter(query, filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order(orderClause(filter.SortBy, filter.SortOrder)).
		Offset(filter.Offset()).
		Limit(filter.Limit())

	var profileModels []models.ProfileModel
	if err := query.Find(&profileModels).Error; err != nil {
		return nil, 0, err
	}

	profiles := make([]*identity.Profile, len(profileModels))
	for i := range profileModels {
		profiles[i] = profileModels[i].ToDomain()
	}
	return profiles, total, nil
}

// FindByBranch returns all profiles attached to a branch
func (r *GormProfileRepository) FindByBranch(ctx context.Context, branchID uuid.UUID) ([]*identity.Profile, error) {
	var profileModels []models.ProfileModel
	if err := r.db.WithContext(ctx).
		Where("branch_id = ?", branchID).
		Order("full_name ASC, email ASC").
		Find(&profileModels).Error; err != nil {
		return nil, err
	}

	profiles := make([]*identity.Profile, len(profileModels))
	for i := range profileModels {
		profiles[i] = profileModels[i].ToDomain()
	}
	return profiles, nil
}

// ExistsByEmail checks if an email already exists
func (r *GormProfileRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ProfileModel{}).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Count returns the total number of profiles
func (r *GormProfileRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.ProfileModel{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormProfileRepository) applyFilter(query *gorm.DB, filter identity.ProfileFilter) *gorm.DB {
	if filter.Keyword != "" {
		pattern := "%" + filter.Keyword + "%"
		query = query.Where("email ILIKE ? OR full_name ILIKE ?", pattern, pattern)
	}
	if filter.Role != nil {
		query = query.Where("role = ?", string(*filter.Role))
	}
	if filter.BranchID != nil {
		query = query.Where("branch_id = ?", *filter.BranchID)
	}
	return query
}

// orderClause builds a safe ORDER BY clause from whitelisted columns
func orderClause(sortBy, sortOrder string) string {
	column := "created_at"
	switch sortBy {
	case "email", "full_name", "role", "created_at", "updated_at", "last_login_at":
		column = sortBy
	}
	dir := "DESC"
	if strings.EqualFold(sortOrder, "asc") {
		dir = "ASC"
	}
	return column + " " + dir
}

// Ensure GormProfileRepository implements ProfileRepository
var _ identity.ProfileRepository = (*GormProfileRepository)(nil)
