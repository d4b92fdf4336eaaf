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

// GormDepartmentRepository implements organization.DepartmentRepository using GORM
type GormDepartmentRepository struct {
	db *gorm.DB
}

// NewGormDepartmentRepository creates a new GormDepartmentRepository
func NewGormDepartmentRepository(db *gorm.DB) *GormDepartmentRepository {
	return &GormDepartmentRepository{db: db}
}

// Create creates a new department
func (r *GormDepartmentRepository) Create(ctx context.Context, department *organization.Department) error {
	model := models.DepartmentModelFromDomain(department)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update updates an existing department with optimistic locking
func (r *GormDepartmentRepository) Update(ctx context.Context, department *organization.Department) error {
	model := models.DepartmentModelFromDomain(department)
	result := r.db.WithContext(ctx).
		Model(&models.DepartmentModel{}).
		Where("id = ? AND version = ?", department.ID, department.Version-1).
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

// Delete deletes a department and its memberships
func (r *GormDepartmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.DepartmentMemberModel{}, "department_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.DepartmentModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// FindByID finds a department by ID
func (r *GormDepartmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*organization.Department, error) {
	var model models.DepartmentModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByBranch returns all departments of a branch ordered by name
func (r *GormDepartmentRepository) FindByBranch(ctx context.Context, branchID uuid.UUID) ([]*organization.Department, error) {
	var departmentModels []models.DepartmentModel
	if err := r.db.WithContext(ctx).
		Where("branch_id = ?", branchID).
		Order("name ASC").
		Find(&departmentModels).Error; err != nil {
		return nil, err
	}

	departments := make([]*organization.Department, len(departmentModels))
	for i := range departmentModels {
		departments[i] = departmentModels[i].ToDomain()
	}
	return departments, nil
}

// AddMember adds a profile to a department. Adding twice is a no-op.
func (r *GormDepartmentRepository) AddMember(ctx context.Context, departmentID, profileID uuid.UUID) error {
	membership := models.DepartmentMemberModel{
		DepartmentID: departmentID,
		ProfileID:    profileID,
		JoinedAt:     time.Now(),
	}
	err := r.db.WithContext(ctx).Create(&membership).Error
	if err != nil && isUniqueViolation(err) {
		return nil
	}
	return err
}

// RemoveMember removes a profile from a department
func (r *GormDepartmentRepository) RemoveMember(ctx context.Context, departmentID, profileID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Delete(&models.DepartmentMemberModel{}, "department_id = ? AND profile_id = ?", departmentID, profileID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindMembers returns the memberships of a department
func (r *GormDepartmentRepository) FindMembers(ctx context.Context, departmentID uuid.UUID) ([]organization.DepartmentMember, error) {
	var membershipModels []models.DepartmentMemberModel
	if err := r.db.WithContext(ctx).
		Where("department_id = ?", departmentID).
		Order("joined_at ASC").
		Find(&membershipModels).Error; err != nil {
		return nil, err
	}

	memberships := make([]organization.DepartmentMember, len(membershipModels))
	for i := range membershipModels {
		memberships[i] = membershipModels[i].ToDomain()
	}
	return memberships, nil
}

// FindMembershipsByProfile returns all department memberships of a profile
func (r *GormDepartmentRepository) FindMembershipsByProfile(ctx context.Context, profileID uuid.UUID) ([]organization.DepartmentMember, error) {
	var membershipModels []models.DepartmentMemberModel
	if err := r.db.WithContext(ctx).
		Where("profile_id = ?", profileID).
		Find(&membershipModels).Error; err != nil {
		return nil, err
	}

	memberships := make([]organization.DepartmentMember, len(membershipModels))
	for i := range membershipModels {
		memberships[i] = membershipModels[i].ToDomain()
	}
	return memberships, nil
}

// Ensure GormDepartmentRepository implements DepartmentRepository
var _ organization.DepartmentRepository = (*GormDepartmentRepository)(nil)
