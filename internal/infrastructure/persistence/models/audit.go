package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/faithconnect/backend/internal/domain/audit"
)

// AuditEntryModel is the persistence model for audit.Entry.
// Rows are append-only; nothing updates or deletes them.
type AuditEntryModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	ActorID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Action    string    `gorm:"type:varchar(50);not null;index"`
	Details   []byte    `gorm:"type:jsonb"`
	CreatedAt time.Time `gorm:"not null;index"`
}

// TableName returns the table name for AuditEntryModel
func (AuditEntryModel) TableName() string {
	return "audit_log"
}

// ToDomain converts AuditEntryModel to domain Entry
func (m *AuditEntryModel) ToDomain() (*audit.Entry, error) {
	details := map[string]interface{}{}
	if len(m.Details) > 0 {
		if err := json.Unmarshal(m.Details, &details); err != nil {
			return nil, err
		}
	}
	return &audit.Entry{
		ID:        m.ID,
		ActorID:   m.ActorID,
		Action:    audit.Action(m.Action),
		Details:   details,
		CreatedAt: m.CreatedAt,
	}, nil
}

// AuditEntryModelFromDomain converts domain Entry to AuditEntryModel
func AuditEntryModelFromDomain(e *audit.Entry) (*AuditEntryModel, error) {
	details, err := json.Marshal(e.Details)
	if err != nil {
		return nil, err
	}
	return &AuditEntryModel{
		ID:        e.ID,
		ActorID:   e.ActorID,
		Action:    string(e.Action),
		Details:   details,
		CreatedAt: e.CreatedAt,
	}, nil
}
