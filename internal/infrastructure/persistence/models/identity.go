package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/faithconnect/backend/internal/domain/identity"
)

// ProfileModel is the persistence model for identity.Profile
type ProfileModel struct {
	AggregateModel
	Email              string     `gorm:"type:varchar(200);not null;uniqueIndex"`
	FullName           string     `gorm:"type:varchar(200)"`
	Phone              string     `gorm:"type:varchar(50)"`
	AvatarURL          string     `gorm:"type:varchar(500)"`
	PasswordHash       string     `gorm:"type:varchar(255);not null"`
	Role               string     `gorm:"type:varchar(30);not null;default:'member';index"`
	BranchID           *uuid.UUID `gorm:"type:uuid;index"`
	Status             string     `gorm:"type:varchar(20);not null;default:'active'"`
	LastLoginAt        *time.Time
	LastLoginIP        string `gorm:"type:varchar(45)"`
	FailedAttempts     int    `gorm:"not null;default:0"`
	LockedUntil        *time.Time
	PasswordChangedAt  *time.Time
	MustChangePassword bool `gorm:"not null;default:false"`
}

// TableName returns the table name for ProfileModel
func (ProfileModel) TableName() string {
	return "profiles"
}

// ToDomain converts ProfileModel to domain Profile
func (m *ProfileModel) ToDomain() *identity.Profile {
	p := &identity.Profile{
		Email:              m.Email,
		FullName:           m.FullName,
		Phone:              m.Phone,
		AvatarURL:          m.AvatarURL,
		PasswordHash:       m.PasswordHash,
		Role:               identity.Role(m.Role),
		BranchID:           m.BranchID,
		Status:             identity.ProfileStatus(m.Status),
		LastLoginAt:        m.LastLoginAt,
		LastLoginIP:        m.LastLoginIP,
		FailedAttempts:     m.FailedAttempts,
		LockedUntil:        m.LockedUntil,
		PasswordChangedAt:  m.PasswordChangedAt,
		MustChangePassword: m.MustChangePassword,
	}
	m.PopulateAggregateRoot(&p.BaseAggregateRoot)
	return p
}

// ProfileModelFromDomain converts domain Profile to ProfileModel
func ProfileModelFromDomain(p *identity.Profile) *ProfileModel {
	m := &ProfileModel{
		Email:              p.Email,
		FullName:           p.FullName,
		Phone:              p.Phone,
		AvatarURL:          p.AvatarURL,
		PasswordHash:       p.PasswordHash,
		Role:               string(p.Role),
		BranchID:           p.BranchID,
		Status:             string(p.Status),
		LastLoginAt:        p.LastLoginAt,
		LastLoginIP:        p.LastLoginIP,
		FailedAttempts:     p.FailedAttempts,
		LockedUntil:        p.LockedUntil,
		PasswordChangedAt:  p.PasswordChangedAt,
		MustChangePassword: p.MustChangePassword,
	}
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	return m
}
