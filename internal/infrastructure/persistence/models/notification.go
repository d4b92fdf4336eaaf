package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/faithconnect/backend/internal/domain/notification"
)

// NotificationModel is the persistence model for notification.Notification
type NotificationModel struct {
	BaseModel
	UserID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Title   string    `gorm:"type:varchar(300);not null"`
	Message string    `gorm:"type:varchar(2000)"`
	Link    string    `gorm:"type:varchar(500)"`
	Read    bool      `gorm:"not null;default:false;index"`
	ReadAt  *time.Time
}

// TableName returns the table name for NotificationModel
func (NotificationModel) TableName() string {
	return "notifications"
}

// ToDomain converts NotificationModel to domain Notification
func (m *NotificationModel) ToDomain() *notification.Notification {
	return &notification.Notification{
		BaseEntity: m.BaseModel.ToDomain(),
		UserID:     m.UserID,
		Title:      m.Title,
		Message:    m.Message,
		Link:       m.Link,
		Read:       m.Read,
		ReadAt:     m.ReadAt,
	}
}

// NotificationModelFromDomain converts domain Notification to NotificationModel
func NotificationModelFromDomain(n *notification.Notification) *NotificationModel {
	m := &NotificationModel{
		UserID:  n.UserID,
		Title:   n.Title,
		Message: n.Message,
		Link:    n.Link,
		Read:    n.Read,
		ReadAt:  n.ReadAt,
	}
	m.FromDomainBaseEntity(n.BaseEntity)
	return m
}
