package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/faithconnect/backend/internal/domain/shared"
)

// BaseModel provides common persistence fields for all models.
// It maps to the domain's BaseEntity.
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// ToDomain converts BaseModel to domain BaseEntity
func (m *BaseModel) ToDomain() shared.BaseEntity {
	return shared.BaseEntity{
		ID:        m.ID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromDomainBaseEntity populates BaseModel from domain BaseEntity
func (m *BaseModel) FromDomainBaseEntity(e shared.BaseEntity) {
	m.ID = e.ID
	m.CreatedAt = e.CreatedAt
	m.UpdatedAt = e.UpdatedAt
}

// AggregateModel provides common persistence fields for aggregate roots.
// It extends BaseModel with version for optimistic locking.
type AggregateModel struct {
	BaseModel
	Version int `gorm:"not null;default:1"`
}

// FromDomainAggregateRoot populates AggregateModel from domain BaseAggregateRoot
func (m *AggregateModel) FromDomainAggregateRoot(a shared.BaseAggregateRoot) {
	m.FromDomainBaseEntity(a.BaseEntity)
	m.Version = a.Version
}

// PopulateAggregateRoot populates a domain BaseAggregateRoot from persistence model
func (m *AggregateModel) PopulateAggregateRoot(a *shared.BaseAggregateRoot) {
	a.BaseEntity.ID = m.ID
	a.BaseEntity.CreatedAt = m.CreatedAt
	a.BaseEntity.UpdatedAt = m.UpdatedAt
	a.Version = m.Version
}

// BranchAggregateModel provides common persistence fields for branch-scoped
// aggregate roots.
type BranchAggregateModel struct {
	AggregateModel
	BranchID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	CreatedBy *uuid.UUID `gorm:"type:uuid;index"`
}

// FromDomainBranchAggregateRoot populates BranchAggregateModel from domain BranchAggregateRoot
func (m *BranchAggregateModel) FromDomainBranchAggregateRoot(b shared.BranchAggregateRoot) {
	m.FromDomainAggregateRoot(b.BaseAggregateRoot)
	m.BranchID = b.BranchID
	m.CreatedBy = b.CreatedBy
}

// PopulateBranchAggregateRoot populates a domain BranchAggregateRoot from persistence model
func (m *BranchAggregateModel) PopulateBranchAggregateRoot(b *shared.BranchAggregateRoot) {
	m.PopulateAggregateRoot(&b.BaseAggregateRoot)
	b.BranchID = m.BranchID
	b.CreatedBy = m.CreatedBy
}
