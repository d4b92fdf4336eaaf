package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/faithconnect/backend/internal/domain/transfer"
)

// MemberTransferModel is the persistence model for transfer.MemberTransfer
type MemberTransferModel struct {
	AggregateModel
	MemberID       uuid.UUID  `gorm:"type:uuid;not null;index"`
	FromBranchID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	ToBranchID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	RequestedBy    uuid.UUID  `gorm:"type:uuid;not null"`
	Status         string     `gorm:"type:varchar(20);not null;default:'pending';index"`
	Notes          string     `gorm:"type:varchar(1000)"`
	RejectionNotes string     `gorm:"type:varchar(1000)"`
	ProcessedBy    *uuid.UUID `gorm:"type:uuid"`
	ProcessedAt    *time.Time
}

// TableName returns the table name for MemberTransferModel
func (MemberTransferModel) TableName() string {
	return "member_transfers"
}

// ToDomain converts MemberTransferModel to domain MemberTransfer
func (m *MemberTransferModel) ToDomain() *transfer.MemberTransfer {
	t := &transfer.MemberTransfer{
		MemberID:       m.MemberID,
		FromBranchID:   m.FromBranchID,
		ToBranchID:     m.ToBranchID,
		RequestedBy:    m.RequestedBy,
		Status:         transfer.Status(m.Status),
		Notes:          m.Notes,
		RejectionNotes: m.RejectionNotes,
		ProcessedBy:    m.ProcessedBy,
		ProcessedAt:    m.ProcessedAt,
	}
	m.PopulateAggregateRoot(&t.BaseAggregateRoot)
	return t
}

// MemberTransferModelFromDomain converts domain MemberTransfer to MemberTransferModel
func MemberTransferModelFromDomain(t *transfer.MemberTransfer) *MemberTransferModel {
	m := &MemberTransferModel{
		MemberID:       t.MemberID,
		FromBranchID:   t.FromBranchID,
		ToBranchID:     t.ToBranchID,
		RequestedBy:    t.RequestedBy,
		Status:         string(t.Status),
		Notes:          t.Notes,
		RejectionNotes: t.RejectionNotes,
		ProcessedBy:    t.ProcessedBy,
		ProcessedAt:    t.ProcessedAt,
	}
	m.FromDomainAggregateRoot(t.BaseAggregateRoot)
	return m
}
