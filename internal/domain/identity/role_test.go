package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Role
		wantErr bool
	}{
		{name: "super admin", input: "super_admin", want: RoleSuperAdmin},
		{name: "admin", input: "admin", want: RoleAdmin},
		{name: "district admin", input: "district_admin", want: RoleDistrictAdmin},
		{name: "pastor", input: "pastor", want: RolePastor},
		{name: "leader", input: "leader", want: RoleLeader},
		{name: "worker", input: "worker", want: RoleWorker},
		{name: "member", input: "member", want: RoleMember},
		{name: "uppercase normalized", input: "ADMIN", want: RoleAdmin},
		{name: "whitespace trimmed", input: "  member  ", want: RoleMember},
		{name: "unknown role", input: "moderator", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRole(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRoleIsAdmin(t *testing.T) {
	tests := []struct {
		role Role
		want bool
	}{
		{RoleSuperAdmin, true},
		{RoleAdmin, true},
		{RoleDistrictAdmin, false},
		{RolePastor, false},
		{RoleLeader, false},
		{RoleWorker, false},
		{RoleMember, false},
	}

	for _, tt := range tests {
		t.Run(tt.role.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.role.IsAdmin())
		})
	}
}

func TestRoleIsSuperAdmin(t *testing.T) {
	for _, role := range AllRoles {
		assert.Equal(t, role == RoleSuperAdmin, role.IsSuperAdmin(), "role %s", role)
	}
}

func TestRoleIsValid(t *testing.T) {
	for _, role := range AllRoles {
		assert.True(t, role.IsValid(), "role %s", role)
	}
	assert.False(t, Role("owner").IsValid())
	assert.False(t, Role("").IsValid())
}
