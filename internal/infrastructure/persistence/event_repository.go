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

// GormEventRepository implements engagement.EventRepository using GORM
type GormEventRepository struct {
	db *gorm.DB
}

// NewGormEventRepository creates a new GormEventRepository
func NewGormEventRepository(db *gorm.DB) *GormEventRepository {
	return &GormEventRepository{db: db}
}

// Create creates a new event
func (r *GormEventRepository) Create(ctx context.Context, event *engagement.Event) error {
	model := models.EventModelFromDomain(event)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update updates an existing event with optimistic locking
func (r *GormEventRepository) Update(ctx context.Context, event *engagement.Event) error {
	model := models.EventModelFromDomain(event)
	result := r.db.WithContext(ctx).
		Model(&models.EventModel{}).
		Where("id = ? AND version = ?", event.ID, event.Version-1).
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

// Delete deletes an event and its registrations
func (r *GormEventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.EventRegistrationModel{}, "event_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.EventModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// FindByID finds an event by ID
func (r *GormEventRepository) FindByID(ctx context.Context, id uuid.UUID) (*engagement.Event, error) {
	var model models.EventModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByBranch lists branch events; upcoming only when from is set
func (r *GormEventRepository) FindByBranch(ctx context.Context, branchID uuid.UUID, from *time.Time) ([]*engagement.Event, error) {
	query := r.db.WithContext(ctx).Where("branch_id = ?", branchID)
	if from != nil {
		query = query.Where("starts_at >= ?", *from)
	}

	var eventModels []models.EventModel
	if err := query.Order("starts_at ASC").Find(&eventModels).Error; err != nil {
		return nil, err
	}

	events := make([]*engagement.Event, len(eventModels))
	for i := range eventModels {
		events[i] = eventModels[i].ToDomain()
	}
	return events, nil
}

// Register signs a profile up for an event. Registering twice is a no-op.
func (r *GormEventRepository) Register(ctx context.Context, eventID, profileID uuid.UUID) error {
	registration := models.EventRegistrationModel{
		EventID:      eventID,
		ProfileID:    profileID,
		RegisteredAt: time.Now(),
	}
	err := r.db.WithContext(ctx).Create(&registration).Error
	if err != nil && isUniqueViolation(err) {
		return nil
	}
	return err
}

// Unregister removes a profile's registration
func (r *GormEventRepository) Unregister(ctx context.Context, eventID, profileID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Delete(&models.EventRegistrationModel{}, "event_id = ? AND profile_id = ?", eventID, profileID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountRegistrations counts registrations for an event
func (r *GormEventRepository) CountRegistrations(ctx context.Context, eventID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.EventRegistrationModel{}).
		Where("event_id = ?", eventID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindRegistrations returns the registrations for an event
func (r *GormEventRepository) FindRegistrations(ctx context.Context, eventID uuid.UUID) ([]engagement.Registration, error) {
	var registrationModels []models.EventRegistrationModel
	if err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("registered_at ASC").
		Find(&registrationModels).Error; err != nil {
		return nil, err
	}

	registrations := make([]engagement.Registration, len(registrationModels))
	for i := range registrationModels {
		registrations[i] = registrationModels[i].ToDomain()
	}
	return registrations, nil
}

// Ensure GormEventRepository implements EventRepository
var _ engagement.EventRepository = (*GormEventRepository)(nil)
