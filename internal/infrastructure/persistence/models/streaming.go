package models

import (
	"time"

	"github.com/faithconnect/backend/internal/domain/streaming"
)

// StreamModel is the persistence model for streaming.Stream
type StreamModel struct {
	BranchAggregateModel
	Title          string    `gorm:"type:varchar(300);not null"`
	Description    string    `gorm:"type:varchar(2000)"`
	Platform       string    `gorm:"type:varchar(50)"`
	Privacy        string    `gorm:"type:varchar(20);not null;default:'public'"`
	Status         string    `gorm:"type:varchar(20);not null;default:'scheduled';index"`
	ScheduledStart time.Time `gorm:"not null"`
	StartedAt      *time.Time
	EndedAt        *time.Time
	StreamKey      string `gorm:"type:varchar(100);not null;uniqueIndex"`
	PlaybackPath   string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for StreamModel
func (StreamModel) TableName() string {
	return "streams"
}

// ToDomain converts StreamModel to domain Stream
func (m *StreamModel) ToDomain() *streaming.Stream {
	s := &streaming.Stream{
		Title:          m.Title,
		Description:    m.Description,
		Platform:       m.Platform,
		Privacy:        streaming.Privacy(m.Privacy),
		Status:         streaming.Status(m.Status),
		ScheduledStart: m.ScheduledStart,
		StartedAt:      m.StartedAt,
		EndedAt:        m.EndedAt,
		StreamKey:      m.StreamKey,
		PlaybackPath:   m.PlaybackPath,
	}
	m.PopulateBranchAggregateRoot(&s.BranchAggregateRoot)
	return s
}

// StreamModelFromDomain converts domain Stream to StreamModel
func StreamModelFromDomain(s *streaming.Stream) *StreamModel {
	m := &StreamModel{
		Title:          s.Title,
		Description:    s.Description,
		Platform:       s.Platform,
		Privacy:        string(s.Privacy),
		Status:         string(s.Status),
		ScheduledStart: s.ScheduledStart,
		StartedAt:      s.StartedAt,
		EndedAt:        s.EndedAt,
		StreamKey:      s.StreamKey,
		PlaybackPath:   s.PlaybackPath,
	}
	m.FromDomainBranchAggregateRoot(s.BranchAggregateRoot)
	return m
}
