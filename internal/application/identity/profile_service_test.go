package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/faithconnect/backend/internal/domain/identity"
)

func sessionFor(profile *identity.Profile) *identity.Session {
	return &identity.Session{
		UserID:    profile.ID,
		Email:     profile.Email,
		Role:      profile.Role,
		BranchID:  profile.BranchID,
		IssuedAt:  time.Now(),
		ExpiresAt: time.Now().Add(time.Hour),
	}
}

func TestResolveProfile_StoredProfile(t *testing.T) {
	repo := newFakeProfileRepo()
	profile := mustProfile(t, "pastor@example.com", "password-123")
	require.NoError(t, profile.ChangeRole(identity.RolePastor))
	require.NoError(t, profile.SetFullName("Grace Okafor"))
	repo.profiles[profile.ID] = profile

	svc := NewProfileService(repo, 10*time.Second, zap.NewNop())
	resolved := svc.ResolveProfile(context.Background(), sessionFor(profile))

	require.NotNil(t, resolved)
	assert.Equal(t, "Grace Okafor", resolved.FullName)
	assert.Equal(t, identity.RolePastor, resolved.Role)
}

func TestResolveProfile_MissingRowFallsBack(t *testing.T) {
	repo := newFakeProfileRepo()
	svc := NewProfileService(repo, 10*time.Second, zap.NewNop())

	session := &identity.Session{
		UserID:    uuid.New(),
		Email:     "ghost@example.com",
		Role:      identity.Role("bogus"),
		ExpiresAt: time.Now().Add(time.Hour),
	}

	resolved := svc.ResolveProfile(context.Background(), session)

	require.NotNil(t, resolved)
	assert.Equal(t, session.UserID, resolved.ID)
	assert.Equal(t, "ghost@example.com", resolved.Email)
	// An unusable role claim degrades to the default
	assert.Equal(t, identity.RoleMember, resolved.Role)
}

func TestResolveProfile_InfraErrorFallsBack(t *testing.T) {
	repo := newFakeProfileRepo()
	repo.findErr = errors.New("timeout")
	svc := NewProfileService(repo, 10*time.Second, zap.NewNop())

	session := &identity.Session{
		UserID:    uuid.New(),
		Email:     "member@example.com",
		Role:      identity.RoleWorker,
		ExpiresAt: time.Now().Add(time.Hour),
	}

	resolved := svc.ResolveProfile(context.Background(), session)

	require.NotNil(t, resolved)
	assert.Equal(t, identity.RoleWorker, resolved.Role)
	assert.Equal(t, "member@example.com", resolved.Email)
}

func TestResolveProfile_NilSession(t *testing.T) {
	svc := NewProfileService(newFakeProfileRepo(), 10*time.Second, zap.NewNop())
	assert.Nil(t, svc.ResolveProfile(context.Background(), nil))
}

func TestUpdateContact(t *testing.T) {
	repo := newFakeProfileRepo()
	profile := mustProfile(t, "member@example.com", "password-123")
	repo.profiles[profile.ID] = profile
	svc := NewProfileService(repo, 0, zap.NewNop())

	name := "Daniel Mwangi"
	phone := "+254700000000"
	updated, err := svc.UpdateContact(context.Background(), UpdateContactInput{
		UserID:   profile.ID,
		FullName: &name,
		Phone:    &phone,
	})

	require.NoError(t, err)
	assert.Equal(t, "Daniel Mwangi", updated.FullName)
	assert.Equal(t, "+254700000000", updated.Phone)
}

func TestUpdateContact_UnknownUser(t *testing.T) {
	svc := NewProfileService(newFakeProfileRepo(), 0, zap.NewNop())

	name := "Nobody"
	_, err := svc.UpdateContact(context.Background(), UpdateContactInput{
		UserID:   uuid.New(),
		FullName: &name,
	})
	assert.Error(t, err)
}
