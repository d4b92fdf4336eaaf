package identity

import (
	"strings"
	"time"

	"github.com/faithconnect/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Session is the authenticated state resolved from a validated access token.
// It is passed explicitly to services rather than read from any ambient
// global, so every authorization decision names its inputs.
type Session struct {
	UserID    uuid.UUID
	Email     string
	Role      Role
	BranchID  *uuid.UUID
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// IsExpired returns true once the session has passed its expiry
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// FallbackProfile synthesizes a minimal profile from session claims.
// Used when the stored profile cannot be loaded: the account stays usable
// with the default member role instead of being locked out by a read
// failure.
func FallbackProfile(session *Session) *Profile {
	role := session.Role
	if !role.IsValid() {
		role = RoleMember
	}

	fullName := ""
	if at := strings.Index(session.Email, "@"); at > 0 {
		fullName = session.Email[:at]
	}

	now := time.Now()
	root := shared.BaseAggregateRoot{
		BaseEntity: shared.BaseEntity{ID: session.UserID, CreatedAt: now, UpdatedAt: now},
		Version:    1,
	}
	return &Profile{
		BaseAggregateRoot: root,
		Email:             session.Email,
		FullName:          fullName,
		Role:              role,
		BranchID:          session.BranchID,
		Status:            ProfileStatusActive,
	}
}
