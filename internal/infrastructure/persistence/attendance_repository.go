package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/faithconnect/backend/internal/domain/engagement"
	"github.com/faithconnect/backend/internal/domain/shared"
	"github.com/faithconnect/backend/internal/infrastructure/persistence/models"
)

// GormAttendanceRepository implements engagement.AttendanceRepository using GORM
type GormAttendanceRepository struct {
	db *gorm.DB
}

// NewGormAttendanceRepository creates a new GormAttendanceRepository
func NewGormAttendanceRepository(db *gorm.DB) *GormAttendanceRepository {
	return &GormAttendanceRepository{db: db}
}

// Create creates a new attendance record
func (r *GormAttendanceRepository) Create(ctx context.Context, record *engagement.AttendanceRecord) error {
	model := models.AttendanceRecordModelFromDomain(record)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update updates an existing attendance record
func (r *GormAttendanceRepository) Update(ctx context.Context, record *engagement.AttendanceRecord) error {
	model := models.AttendanceRecordModelFromDomain(record)
	result := r.db.WithContext(ctx).
		Model(&models.AttendanceRecordModel{}).
		Where("id = ?", record.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(model)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds an attendance record by ID
func (r *GormAttendanceRepository) FindByID(ctx context.Context, id uuid.UUID) (*engagement.AttendanceRecord, error) {
	var model models.AttendanceRecordModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByBranch returns a branch's records within a date range, oldest first
func (r *GormAttendanceRepository) FindByBranch(ctx context.Context, branchID uuid.UUID, from, to time.Time) ([]*engagement.AttendanceRecord, error) {
	query := r.db.WithContext(ctx).Where("branch_id = ?", branchID)
	if !from.IsZero() {
		query = query.Where("service_date >= ?", from)
	}
	if !to.IsZero() {
		query = query.Where("service_date <= ?", to)
	}

	var recordModels []models.AttendanceRecordModel
	if err := query.Order("service_date ASC").Find(&recordModels).Error; err != nil {
		return nil, err
	}

	records := make([]*engagement.AttendanceRecord, len(recordModels))
	for i := range recordModels {
		records[i] = recordModels[i].ToDomain()
	}
	return records, nil
}

// Ensure GormAttendanceRepository implements AttendanceRepository
var _ engagement.AttendanceRepository = (*GormAttendanceRepository)(nil)
