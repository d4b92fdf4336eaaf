package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/faithconnect/backend/internal/domain/shared"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// ProfileStatus represents the status of a profile
type ProfileStatus string

const (
	ProfileStatusActive   ProfileStatus = "active"
	ProfileStatusDisabled ProfileStatus = "disabled" // Manually disabled by an administrator
)

// Password cost for bcrypt
const bcryptCost = 12

// Profile represents a portal account and its role assignment.
// It is the aggregate root for identity operations.
type Profile struct {
	shared.BaseAggregateRoot
	Email              string
	FullName           string
	Phone              string
	AvatarURL          string
	PasswordHash       string
	Role               Role
	BranchID           *uuid.UUID // Home branch; nil for platform-level accounts
	Status             ProfileStatus
	LastLoginAt        *time.Time
	LastLoginIP        string
	FailedAttempts     int
	LockedUntil        *time.Time
	PasswordChangedAt  *time.Time
	MustChangePassword bool
}

// NewProfile creates a new profile with the default member role
func NewProfile(email, password string) (*Profile, error) {
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	now := time.Now()
	profile := &Profile{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Email:             strings.ToLower(strings.TrimSpace(email)),
		PasswordHash:      passwordHash,
		Role:              RoleMember,
		Status:            ProfileStatusActive,
		PasswordChangedAt: &now,
	}

	profile.AddDomainEvent(NewProfileCreatedEvent(profile))

	return profile, nil
}

// NewManagedProfile creates a profile on behalf of an administrator with an
// explicit role and branch assignment. The account must change its password
// on first login.
func NewManagedProfile(email, tempPassword, fullName string, role Role, branchID *uuid.UUID) (*Profile, error) {
	profile, err := NewProfile(email, tempPassword)
	if err != nil {
		return nil, err
	}
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Unknown role: "+role.String())
	}

	profile.FullName = strings.TrimSpace(fullName)
	profile.Role = role
	profile.BranchID = branchID
	profile.MustChangePassword = true

	return profile, nil
}

// SetFullName sets the profile's display name
func (p *Profile) SetFullName(fullName string) error {
	if fullName != "" && len(fullName) > 200 {
		return shared.NewDomainError("INVALID_FULL_NAME", "Full name cannot exceed 200 characters")
	}

	p.FullName = strings.TrimSpace(fullName)
	p.Touch()
	p.IncrementVersion()

	return nil
}

// SetPhone sets the profile's phone number
func (p *Profile) SetPhone(phone string) error {
	if phone != "" && len(phone) > 50 {
		return shared.NewDomainError("INVALID_PHONE", "Phone cannot exceed 50 characters")
	}

	p.Phone = strings.TrimSpace(phone)
	p.Touch()
	p.IncrementVersion()

	return nil
}

// SetAvatarURL sets the profile's avatar URL
func (p *Profile) SetAvatarURL(avatarURL string) error {
	if avatarURL != "" && len(avatarURL) > 500 {
		return shared.NewDomainError("INVALID_AVATAR", "Avatar URL cannot exceed 500 characters")
	}

	p.AvatarURL = avatarURL
	p.Touch()
	p.IncrementVersion()

	return nil
}

// ChangeRole reassigns the profile's role. Only administrators call this,
// enforced at the application layer.
func (p *Profile) ChangeRole(role Role) error {
	if !role.IsValid() {
		return shared.NewDomainError("INVALID_ROLE", "Unknown role: "+role.String())
	}
	if p.Role == role {
		return shared.NewDomainError("ROLE_UNCHANGED", "Profile already has this role")
	}

	oldRole := p.Role
	p.Role = role
	p.Touch()
	p.IncrementVersion()

	p.AddDomainEvent(NewProfileRoleChangedEvent(p, oldRole, role))

	return nil
}

// AssignBranch moves the profile to a branch
func (p *Profile) AssignBranch(branchID uuid.UUID) error {
	if branchID == uuid.Nil {
		return shared.NewDomainError("INVALID_BRANCH_ID", "Branch ID cannot be empty")
	}

	p.BranchID = &branchID
	p.Touch()
	p.IncrementVersion()

	return nil
}

// ClearBranch detaches the profile from any branch
func (p *Profile) ClearBranch() {
	p.BranchID = nil
	p.Touch()
	p.IncrementVersion()
}

// ChangePassword changes the password after verifying the current one
func (p *Profile) ChangePassword(oldPassword, newPassword string) error {
	if !p.VerifyPassword(oldPassword) {
		return shared.NewDomainError("INVALID_PASSWORD", "Current password is incorrect")
	}

	return p.SetPassword(newPassword)
}

// SetPassword sets a new password (admin reset, no old password check)
func (p *Profile) SetPassword(newPassword string) error {
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	passwordHash, err := hashPassword(newPassword)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	p.PasswordHash = passwordHash
	now := time.Now()
	p.PasswordChangedAt = &now
	p.MustChangePassword = false
	p.Touch()
	p.IncrementVersion()

	p.AddDomainEvent(NewProfilePasswordChangedEvent(p))

	return nil
}

// ForcePasswordChange marks that the account must change password on next login
func (p *Profile) ForcePasswordChange() {
	p.MustChangePassword = true
	p.Touch()
	p.IncrementVersion()
}

// VerifyPassword verifies if the provided password matches
func (p *Profile) VerifyPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(password))
	return err == nil
}

// Disable disables the account
func (p *Profile) Disable() error {
	if p.Status == ProfileStatusDisabled {
		return shared.NewDomainError("ALREADY_DISABLED", "Profile is already disabled")
	}

	p.Status = ProfileStatusDisabled
	p.Touch()
	p.IncrementVersion()

	return nil
}

// Enable re-enables a disabled account
func (p *Profile) Enable() error {
	if p.Status == ProfileStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Profile is already active")
	}

	p.Status = ProfileStatusActive
	p.FailedAttempts = 0
	p.LockedUntil = nil
	p.Touch()
	p.IncrementVersion()

	return nil
}

// RecordLoginSuccess records a successful login
func (p *Profile) RecordLoginSuccess(ip string) {
	now := time.Now()
	p.LastLoginAt = &now
	p.LastLoginIP = ip
	p.FailedAttempts = 0
	p.LockedUntil = nil
	p.Touch()
	p.IncrementVersion()
}

// RecordLoginFailure records a failed login attempt.
// Returns true if the account got locked as a result.
func (p *Profile) RecordLoginFailure(maxAttempts int, lockDuration time.Duration) bool {
	p.FailedAttempts++
	p.Touch()
	p.IncrementVersion()

	if p.FailedAttempts >= maxAttempts {
		lockedUntil := time.Now().Add(lockDuration)
		p.LockedUntil = &lockedUntil
		return true
	}

	return false
}

// IsLocked returns true while a login lock is in effect
func (p *Profile) IsLocked() bool {
	return p.LockedUntil != nil && time.Now().Before(*p.LockedUntil)
}

// CanLogin returns true if the account may authenticate
func (p *Profile) CanLogin() bool {
	if p.Status == ProfileStatusDisabled {
		return false
	}
	return !p.IsLocked()
}

// DisplayName returns the full name if set, otherwise the email
func (p *Profile) DisplayName() string {
	if p.FullName != "" {
		return p.FullName
	}
	return p.Email
}

// Validation functions

func validatePassword(password string) error {
	if password == "" {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot be empty")
	}
	if len(password) < 8 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}
	if len(password) > 128 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot exceed 128 characters")
	}

	hasLetter := regexp.MustCompile(`[a-zA-Z]`).MatchString(password)
	hasNumber := regexp.MustCompile(`[0-9]`).MatchString(password)
	if !hasLetter || !hasNumber {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must contain at least one letter and one number")
	}

	return nil
}

func validateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	if len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}

	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	if !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}

	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
