package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/faithconnect/backend/internal/domain/shared"
	"github.com/faithconnect/backend/internal/domain/streaming"
	"github.com/faithconnect/backend/internal/infrastructure/persistence/models"
)

// GormStreamRepository implements streaming.Repository using GORM
type GormStreamRepository struct {
	db *gorm.DB
}

// NewGormStreamRepository creates a new GormStreamRepository
func NewGormStreamRepository(db *gorm.DB) *GormStreamRepository {
	return &GormStreamRepository{db: db}
}

// Create creates a new stream
func (r *GormStreamRepository) Create(ctx context.Context, stream *streaming.Stream) error {
	model := models.StreamModelFromDomain(stream)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update updates an existing stream with optimistic locking
func (r *GormStreamRepository) Update(ctx context.Context, stream *streaming.Stream) error {
	model := models.StreamModelFromDomain(stream)
	result := r.db.WithContext(ctx).
		Model(&models.StreamModel{}).
		Where("id = ? AND version = ?", stream.ID, stream.Version-1).
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

// Delete deletes a stream by ID
func (r *GormStreamRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.StreamModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a stream by ID
func (r *GormStreamRepository) FindByID(ctx context.Context, id uuid.UUID) (*streaming.Stream, error) {
	var model models.StreamModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByBranch returns a branch's streams, most recently scheduled first
func (r *GormStreamRepository) FindByBranch(ctx context.Context, branchID uuid.UUID, status *streaming.Status) ([]*streaming.Stream, error) {
	query := r.db.WithContext(ctx).Where("branch_id = ?", branchID)
	if status != nil {
		query = query.Where("status = ?", string(*status))
	}

	var streamModels []models.StreamModel
	if err := query.Order("scheduled_start DESC").Find(&streamModels).Error; err != nil {
		return nil, err
	}
	return toDomainStreams(streamModels), nil
}

// FindLive returns all currently live streams across branches
func (r *GormStreamRepository) FindLive(ctx context.Context) ([]*streaming.Stream, error) {
	var streamModels []models.StreamModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", string(streaming.StatusLive)).
		Order("started_at DESC").
		Find(&streamModels).Error; err != nil {
		return nil, err
	}
	return toDomainStreams(streamModels), nil
}

func toDomainStreams(streamModels []models.StreamModel) []*streaming.Stream {
	streams := make([]*streaming.Stream, len(streamModels))
	for i := range streamModels {
		streams[i] = streamModels[i].ToDomain()
	}
	return streams
}

// Ensure GormStreamRepository implements Repository
var _ streaming.Repository = (*GormStreamRepository)(nil)
