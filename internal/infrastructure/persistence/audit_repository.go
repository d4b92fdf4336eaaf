package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/faithconnect/backend/internal/domain/audit"
	"github.com/faithconnect/backend/internal/infrastructure/persistence/models"
)

// GormAuditRepository implements audit.Repository using GORM.
// The log is append-only: there is deliberately no update or delete path.
type GormAuditRepository struct {
	db *gorm.DB
}

// NewGormAuditRepository creates a new GormAuditRepository
func NewGormAuditRepository(db *gorm.DB) *GormAuditRepository {
	return &GormAuditRepository{db: db}
}

// Create appends an entry to the log
func (r *GormAuditRepository) Create(ctx context.Context, entry *audit.Entry) error {
	model, err := models.AuditEntryModelFromDomain(entry)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(model).Error
}

// Query returns entries matching the filter, newest first
func (r *GormAuditRepository) Query(ctx context.Context, filter audit.Filter) ([]*audit.Entry, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.AuditEntryModel{})

	if filter.ActorID != nil {
		query = query.Where("actor_id = ?", *filter.ActorID)
	}
	if filter.Action != nil {
		query = query.Where("action = ?", string(*filter.Action))
	}
	if filter.Search != "" {
		query = query.Where("details::text ILIKE ?", "%"+filter.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entryModels []models.AuditEntryModel
	if err := query.
		Order("created_at DESC").
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&entryModels).Error; err != nil {
		return nil, 0, err
	}

	entries := make([]*audit.Entry, 0, len(entryModels))
	for i := range entryModels {
		entry, err := entryModels[i].ToDomain()
		if err != nil {
			return nil, 0, err
		}
		entries = append(entries, entry)
	}
	return entries, total, nil
}

// Ensure GormAuditRepository implements Repository
var _ audit.Repository = (*GormAuditRepository)(nil)
