package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/faithconnect/backend/internal/domain/organization"
)

// BranchModel is the persistence model for organization.Branch
type BranchModel struct {
	AggregateModel
	Name       string     `gorm:"type:varchar(200);not null;uniqueIndex"`
	Address    string     `gorm:"type:varchar(500)"`
	DistrictID *uuid.UUID `gorm:"type:uuid;index"`
	PastorName string     `gorm:"type:varchar(200)"`
	Phone      string     `gorm:"type:varchar(50)"`
	Email      string     `gorm:"type:varchar(200)"`
}

// TableName returns the table name for BranchModel
func (BranchModel) TableName() string {
	return "branches"
}

// ToDomain converts BranchModel to domain Branch
func (m *BranchModel) ToDomain() *organization.Branch {
	b := &organization.Branch{
		Name:       m.Name,
		Address:    m.Address,
		DistrictID: m.DistrictID,
		PastorName: m.PastorName,
		Phone:      m.Phone,
		Email:      m.Email,
	}
	m.PopulateAggregateRoot(&b.BaseAggregateRoot)
	return b
}

// BranchModelFromDomain converts domain Branch to BranchModel
func BranchModelFromDomain(b *organization.Branch) *BranchModel {
	m := &BranchModel{
		Name:       b.Name,
		Address:    b.Address,
		DistrictID: b.DistrictID,
		PastorName: b.PastorName,
		Phone:      b.Phone,
		Email:      b.Email,
	}
	m.FromDomainAggregateRoot(b.BaseAggregateRoot)
	return m
}

// MemberModel is the persistence model for organization.Member
type MemberModel struct {
	BranchAggregateModel
	ProfileID   *uuid.UUID `gorm:"type:uuid;index"`
	FirstName   string     `gorm:"type:varchar(100)"`
	LastName    string     `gorm:"type:varchar(100)"`
	Email       string     `gorm:"type:varchar(200);index"`
	Phone       string     `gorm:"type:varchar(50)"`
	Status      string     `gorm:"type:varchar(20);not null;default:'active';index"`
	DateJoined  *time.Time
	DateOfBirth *time.Time
}

// TableName returns the table name for MemberModel
func (MemberModel) TableName() string {
	return "members"
}

// ToDomain converts MemberModel to domain Member
func (m *MemberModel) ToDomain() *organization.Member {
	member := &organization.Member{
		ProfileID:   m.ProfileID,
		FirstName:   m.FirstName,
		LastName:    m.LastName,
		Email:       m.Email,
		Phone:       m.Phone,
		Status:      organization.MemberStatus(m.Status),
		DateJoined:  m.DateJoined,
		DateOfBirth: m.DateOfBirth,
	}
	m.PopulateBranchAggregateRoot(&member.BranchAggregateRoot)
	return member
}

// MemberModelFromDomain converts domain Member to MemberModel
func MemberModelFromDomain(member *organization.Member) *MemberModel {
	m := &MemberModel{
		ProfileID:   member.ProfileID,
		FirstName:   member.FirstName,
		LastName:    member.LastName,
		Email:       member.Email,
		Phone:       member.Phone,
		Status:      string(member.Status),
		DateJoined:  member.DateJoined,
		DateOfBirth: member.DateOfBirth,
	}
	m.FromDomainBranchAggregateRoot(member.BranchAggregateRoot)
	return m
}

// DepartmentModel is the persistence model for organization.Department
type DepartmentModel struct {
	BranchAggregateModel
	Name        string     `gorm:"type:varchar(200);not null"`
	Description string     `gorm:"type:varchar(1000)"`
	LeaderID    *uuid.UUID `gorm:"type:uuid;index"`
}

// TableName returns the table name for DepartmentModel
func (DepartmentModel) TableName() string {
	return "departments"
}

// ToDomain converts DepartmentModel to domain Department
func (m *DepartmentModel) ToDomain() *organization.Department {
	d := &organization.Department{
		Name:        m.Name,
		Description: m.Description,
		LeaderID:    m.LeaderID,
	}
	m.PopulateBranchAggregateRoot(&d.BranchAggregateRoot)
	return d
}

// DepartmentModelFromDomain converts domain Department to DepartmentModel
func DepartmentModelFromDomain(d *organization.Department) *DepartmentModel {
	m := &DepartmentModel{
		Name:        d.Name,
		Description: d.Description,
		LeaderID:    d.LeaderID,
	}
	m.FromDomainBranchAggregateRoot(d.BranchAggregateRoot)
	return m
}

// DepartmentMemberModel is the join table between departments and profiles
type DepartmentMemberModel struct {
	DepartmentID uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProfileID    uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	JoinedAt     time.Time `gorm:"not null"`
}

// TableName returns the table name for DepartmentMemberModel
func (DepartmentMemberModel) TableName() string {
	return "department_members"
}

// ToDomain converts DepartmentMemberModel to domain DepartmentMember
func (m *DepartmentMemberModel) ToDomain() organization.DepartmentMember {
	return organization.DepartmentMember{
		DepartmentID: m.DepartmentID,
		ProfileID:    m.ProfileID,
		JoinedAt:     m.JoinedAt,
	}
}

// GroupModel is the persistence model for organization.Group
type GroupModel struct {
	BranchAggregateModel
	Name        string     `gorm:"type:varchar(200);not null"`
	Description string     `gorm:"type:varchar(1000)"`
	LeaderID    *uuid.UUID `gorm:"type:uuid;index"`
	MeetingDay  string     `gorm:"type:varchar(20)"`
}

// TableName returns the table name for GroupModel
func (GroupModel) TableName() string {
	return "groups"
}

// ToDomain converts GroupModel to domain Group
func (m *GroupModel) ToDomain() *organization.Group {
	g := &organization.Group{
		Name:        m.Name,
		Description: m.Description,
		LeaderID:    m.LeaderID,
		MeetingDay:  m.MeetingDay,
	}
	m.PopulateBranchAggregateRoot(&g.BranchAggregateRoot)
	return g
}

// GroupModelFromDomain converts domain Group to GroupModel
func GroupModelFromDomain(g *organization.Group) *GroupModel {
	m := &GroupModel{
		Name:        g.Name,
		Description: g.Description,
		LeaderID:    g.LeaderID,
		MeetingDay:  g.MeetingDay,
	}
	m.FromDomainBranchAggregateRoot(g.BranchAggregateRoot)
	return m
}

// GroupMemberModel is the join table between groups and profiles
type GroupMemberModel struct {
	GroupID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProfileID uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	JoinedAt  time.Time `gorm:"not null"`
}

// TableName returns the table name for GroupMemberModel
func (GroupMemberModel) TableName() string {
	return "group_members"
}

// ToDomain converts GroupMemberModel to domain GroupMember
func (m *GroupMemberModel) ToDomain() organization.GroupMember {
	return organization.GroupMember{
		GroupID:   m.GroupID,
		ProfileID: m.ProfileID,
		JoinedAt:  m.JoinedAt,
	}
}
