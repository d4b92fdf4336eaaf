package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/faithconnect/backend/internal/domain/engagement"
)

// EventModel is the persistence model for engagement.Event
type EventModel struct {
	BranchAggregateModel
	Title       string    `gorm:"type:varchar(300);not null"`
	Description string    `gorm:"type:varchar(2000)"`
	Location    string    `gorm:"type:varchar(300)"`
	StartsAt    time.Time `gorm:"not null;index"`
	EndsAt      *time.Time
	Capacity    int `gorm:"not null;default:0"`
}

// TableName returns the table name for EventModel
func (EventModel) TableName() string {
	return "events"
}

// ToDomain converts EventModel to domain Event
func (m *EventModel) ToDomain() *engagement.Event {
	e := &engagement.Event{
		Title:       m.Title,
		Description: m.Description,
		Location:    m.Location,
		StartsAt:    m.StartsAt,
		EndsAt:      m.EndsAt,
		Capacity:    m.Capacity,
	}
	m.PopulateBranchAggregateRoot(&e.BranchAggregateRoot)
	return e
}

// EventModelFromDomain converts domain Event to EventModel
func EventModelFromDomain(e *engagement.Event) *EventModel {
	m := &EventModel{
		Title:       e.Title,
		Description: e.Description,
		Location:    e.Location,
		StartsAt:    e.StartsAt,
		EndsAt:      e.EndsAt,
		Capacity:    e.Capacity,
	}
	m.FromDomainBranchAggregateRoot(e.BranchAggregateRoot)
	return m
}

// EventRegistrationModel is the join table between events and profiles
type EventRegistrationModel struct {
	EventID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProfileID    uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	RegisteredAt time.Time `gorm:"not null"`
}

// TableName returns the table name for EventRegistrationModel
func (EventRegistrationModel) TableName() string {
	return "event_registrations"
}

// ToDomain converts EventRegistrationModel to domain Registration
func (m *EventRegistrationModel) ToDomain() engagement.Registration {
	return engagement.Registration{
		EventID:      m.EventID,
		ProfileID:    m.ProfileID,
		RegisteredAt: m.RegisteredAt,
	}
}

// AttendanceRecordModel is the persistence model for engagement.AttendanceRecord
type AttendanceRecordModel struct {
	BaseModel
	BranchID    uuid.UUID `gorm:"type:uuid;not null;index"`
	ServiceDate time.Time `gorm:"not null;index"`
	ServiceName string    `gorm:"type:varchar(200)"`
	Adults      int       `gorm:"not null;default:0"`
	Children    int       `gorm:"not null;default:0"`
	Visitors    int       `gorm:"not null;default:0"`
	RecordedBy  uuid.UUID `gorm:"type:uuid;not null"`
}

// TableName returns the table name for AttendanceRecordModel
func (AttendanceRecordModel) TableName() string {
	return "attendance_records"
}

// ToDomain converts AttendanceRecordModel to domain AttendanceRecord
func (m *AttendanceRecordModel) ToDomain() *engagement.AttendanceRecord {
	return &engagement.AttendanceRecord{
		BaseEntity:  m.BaseModel.ToDomain(),
		BranchID:    m.BranchID,
		ServiceDate: m.ServiceDate,
		ServiceName: m.ServiceName,
		Adults:      m.Adults,
		Children:    m.Children,
		Visitors:    m.Visitors,
		RecordedBy:  m.RecordedBy,
	}
}

// AttendanceRecordModelFromDomain converts domain AttendanceRecord to AttendanceRecordModel
func AttendanceRecordModelFromDomain(r *engagement.AttendanceRecord) *AttendanceRecordModel {
	m := &AttendanceRecordModel{
		BranchID:    r.BranchID,
		ServiceDate: r.ServiceDate,
		ServiceName: r.ServiceName,
		Adults:      r.Adults,
		Children:    r.Children,
		Visitors:    r.Visitors,
		RecordedBy:  r.RecordedBy,
	}
	m.FromDomainBaseEntity(r.BaseEntity)
	return m
}
