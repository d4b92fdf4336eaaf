package identity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProfile(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		wantErr  bool
	}{
		{name: "valid", email: "grace@example.org", password: "Passw0rd1"},
		{name: "email normalized", email: "  Grace@Example.ORG ", password: "Passw0rd1"},
		{name: "empty email", email: "", password: "Passw0rd1", wantErr: true},
		{name: "bad email", email: "not-an-email", password: "Passw0rd1", wantErr: true},
		{name: "short password", email: "grace@example.org", password: "p1", wantErr: true},
		{name: "password without digit", email: "grace@example.org", password: "passwordonly", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile, err := NewProfile(tt.email, tt.password)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "grace@example.org", profile.Email)
			assert.Equal(t, RoleMember, profile.Role)
			assert.Equal(t, ProfileStatusActive, profile.Status)
			assert.Nil(t, profile.BranchID)
			assert.True(t, profile.VerifyPassword(tt.password))
			assert.False(t, profile.VerifyPassword("wrong-pass1"))
			assert.Len(t, profile.GetDomainEvents(), 1)
		})
	}
}

func TestNewManagedProfile(t *testing.T) {
	branchID := uuid.New()

	profile, err := NewManagedProfile("pastor@example.org", "Temp1234", "John Mensah", RolePastor, &branchID)
	require.NoError(t, err)

	assert.Equal(t, RolePastor, profile.Role)
	assert.Equal(t, "John Mensah", profile.FullName)
	require.NotNil(t, profile.BranchID)
	assert.Equal(t, branchID, *profile.BranchID)
	assert.True(t, profile.MustChangePassword)

	_, err = NewManagedProfile("x@example.org", "Temp1234", "X", Role("owner"), nil)
	require.Error(t, err)
}

func TestProfileChangeRole(t *testing.T) {
	profile, err := NewProfile("grace@example.org", "Passw0rd1")
	require.NoError(t, err)
	profile.ClearDomainEvents()

	require.NoError(t, profile.ChangeRole(RoleAdmin))
	assert.Equal(t, RoleAdmin, profile.Role)
	require.Len(t, profile.GetDomainEvents(), 1)

	event, ok := profile.GetDomainEvents()[0].(*ProfileRoleChangedEvent)
	require.True(t, ok)
	assert.Equal(t, RoleMember, event.OldRole)
	assert.Equal(t, RoleAdmin, event.NewRole)

	// Same role again is rejected
	err = profile.ChangeRole(RoleAdmin)
	require.Error(t, err)

	err = profile.ChangeRole(Role("owner"))
	require.Error(t, err)
}

func TestProfilePasswordLifecycle(t *testing.T) {
	profile, err := NewProfile("grace@example.org", "Passw0rd1")
	require.NoError(t, err)

	err = profile.ChangePassword("wrong", "NewPass99")
	require.Error(t, err)

	require.NoError(t, profile.ChangePassword("Passw0rd1", "NewPass99"))
	assert.True(t, profile.VerifyPassword("NewPass99"))
	assert.False(t, profile.VerifyPassword("Passw0rd1"))
	assert.False(t, profile.MustChangePassword)
}

func TestProfileLoginLockout(t *testing.T) {
	profile, err := NewProfile("grace@example.org", "Passw0rd1")
	require.NoError(t, err)

	locked := false
	for i := 0; i < 5; i++ {
		locked = profile.RecordLoginFailure(5, 15*time.Minute)
	}
	assert.True(t, locked)
	assert.True(t, profile.IsLocked())
	assert.False(t, profile.CanLogin())

	profile.RecordLoginSuccess("203.0.113.9")
	assert.False(t, profile.IsLocked())
	assert.True(t, profile.CanLogin())
	assert.Equal(t, "203.0.113.9", profile.LastLoginIP)
	assert.Zero(t, profile.FailedAttempts)
}

func TestProfileBranchAssignment(t *testing.T) {
	profile, err := NewProfile("grace@example.org", "Passw0rd1")
	require.NoError(t, err)

	err = profile.AssignBranch(uuid.Nil)
	require.Error(t, err)

	branchID := uuid.New()
	require.NoError(t, profile.AssignBranch(branchID))
	require.NotNil(t, profile.BranchID)
	assert.Equal(t, branchID, *profile.BranchID)

	profile.ClearBranch()
	assert.Nil(t, profile.BranchID)
}

func TestFallbackProfile(t *testing.T) {
	branchID := uuid.New()
	session := &Session{
		UserID:    uuid.New(),
		Email:     "worker@example.org",
		Role:      RoleWorker,
		BranchID:  &branchID,
		IssuedAt:  time.Now(),
		ExpiresAt: time.Now().Add(time.Hour),
	}

	profile := FallbackProfile(session)
	assert.Equal(t, session.UserID, profile.ID)
	assert.Equal(t, "worker@example.org", profile.Email)
	assert.Equal(t, "worker", profile.FullName)
	assert.Equal(t, RoleWorker, profile.Role)
	assert.Equal(t, &branchID, profile.BranchID)

	// Invalid role in the claims falls back to member
	session.Role = Role("bogus")
	profile = FallbackProfile(session)
	assert.Equal(t, RoleMember, profile.Role)
}
