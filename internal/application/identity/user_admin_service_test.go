package identity

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appaudit "github.com/faithconnect/backend/internal/application/audit"
	"github.com/faithconnect/backend/internal/domain/audit"
	"github.com/faithconnect/backend/internal/domain/identity"
	"github.com/faithconnect/backend/internal/domain/shared"
)

type capturingAuditRepo struct {
	entries []*audit.Entry
}

func (c *capturingAuditRepo) Create(_ context.Context, entry *audit.Entry) error {
	c.entries = append(c.entries, entry)
	return nil
}

func (c *capturingAuditRepo) Query(_ context.Context, _ audit.Filter) ([]*audit.Entry, int64, error) {
	return c.entries, int64(len(c.entries)), nil
}

func superAdminSession() *identity.Session {
	return &identity.Session{
		UserID:    uuid.New(),
		Email:     "root@example.com",
		Role:      identity.RoleSuperAdmin,
		IssuedAt:  time.Now(),
		ExpiresAt: time.Now().Add(time.Hour),
	}
}

func newTestUserAdminService(repo *fakeProfileRepo) (*UserAdminService, *capturingAuditRepo) {
	auditRepo := &capturingAuditRepo{}
	svc := NewUserAdminService(repo, appaudit.NewRecorder(auditRepo, zap.NewNop()), zap.NewNop())
	return svc, auditRepo
}

func TestCreateManagedUser(t *testing.T) {
	repo := newFakeProfileRepo()
	svc, auditRepo := newTestUserAdminService(repo)
	session := superAdminSession()
	branchID := uuid.New()

	info, err := svc.CreateManagedUser(context.Background(), session, CreateManagedUserInput{
		Email:        "newleader@example.com",
		TempPassword: "temp-pass-123",
		FullName:     "Ada Nwosu",
		Role:         "leader",
		BranchID:     &branchID,
	})

	require.NoError(t, err)
	assert.Equal(t, "newleader@example.com", info.Email)
	assert.Equal(t, "leader", info.Role)
	assert.True(t, info.MustChangePassword)

	require.Len(t, auditRepo.entries, 1)
	assert.Equal(t, audit.ActionCreatedUser, auditRepo.entries[0].Action)
	assert.Equal(t, session.UserID, auditRepo.entries[0].ActorID)
	assert.Equal(t, "leader", auditRepo.entries[0].Details["role"])
}

func TestCreateManagedUser_DuplicateEmail(t *testing.T) {
	repo := newFakeProfileRepo()
	existing := mustProfile(t, "taken@example.com", "password-123")
	repo.profiles[existing.ID] = existing
	svc, auditRepo := newTestUserAdminService(repo)

	_, err := svc.CreateManagedUser(context.Background(), superAdminSession(), CreateManagedUserInput{
		Email:        "taken@example.com",
		TempPassword: "temp-pass-123",
		Role:         "worker",
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "EMAIL_TAKEN", domainErr.Code)
	assert.Empty(t, auditRepo.entries)
}

func TestCreateManagedUser_UnknownRole(t *testing.T) {
	svc, _ := newTestUserAdminService(newFakeProfileRepo())

	_, err := svc.CreateManagedUser(context.Background(), superAdminSession(), CreateManagedUserInput{
		Email:        "x@example.com",
		TempPassword: "temp-pass-123",
		Role:         "archbishop",
	})
	assert.Error(t, err)
}

func TestUpdateUserRole(t *testing.T) {
	repo := newFakeProfileRepo()
	profile := mustProfile(t, "promote@example.com", "password-123")
	repo.profiles[profile.ID] = profile
	svc, auditRepo := newTestUserAdminService(repo)
	session := superAdminSession()
	branchID := uuid.New()

	info, err := svc.UpdateUserRole(context.Background(), session, UpdateUserRoleInput{
		UserID:   profile.ID,
		Role:     "admin",
		BranchID: &branchID,
	})

	require.NoError(t, err)
	assert.Equal(t, "admin", info.Role)
	require.NotNil(t, info.BranchID)
	assert.Equal(t, branchID, *info.BranchID)

	require.Len(t, auditRepo.entries, 1)
	assert.Equal(t, audit.ActionUpdatedUserRole, auditRepo.entries[0].Action)
	assert.Equal(t, "member", auditRepo.entries[0].Details["previous_role"])
	assert.Equal(t, "admin", auditRepo.entries[0].Details["new_role"])
}

func TestUpdateUserRole_UnknownUser(t *testing.T) {
	svc, _ := newTestUserAdminService(newFakeProfileRepo())

	_, err := svc.UpdateUserRole(context.Background(), superAdminSession(), UpdateUserRoleInput{
		UserID: uuid.New(),
		Role:   "admin",
	})
	assert.Error(t, err)
}

func TestListUsers(t *testing.T) {
	repo := newFakeProfileRepo()
	for _, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		p := mustProfile(t, email, "password-123")
		repo.profiles[p.ID] = p
	}
	admin := mustProfile(t, "admin@example.com", "password-123")
	require.NoError(t, admin.ChangeRole(identity.RoleAdmin))
	repo.profiles[admin.ID] = admin

	svc, _ := newTestUserAdminService(repo)

	result, err := svc.ListUsers(context.Background(), ListUsersInput{Role: "admin"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Total)
	require.Len(t, result.Users, 1)
	assert.Equal(t, "admin@example.com", result.Users[0].Email)

	all, err := svc.ListUsers(context.Background(), ListUsersInput{})
	require.NoError(t, err)
	assert.Equal(t, int64(4), all.Total)
}

func TestListUsers_UnknownRoleFilter(t *testing.T) {
	svc, _ := newTestUserAdminService(newFakeProfileRepo())

	_, err := svc.ListUsers(context.Background(), ListUsersInput{Role: "wizard"})
	assert.Error(t, err)
}
