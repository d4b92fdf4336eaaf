package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appaudit "github.com/faithconnect/backend/internal/application/audit"
	apporg "github.com/faithconnect/backend/internal/application/organization"
	"github.com/faithconnect/backend/internal/domain/audit"
	"github.com/faithconnect/backend/internal/domain/identity"
	"github.com/faithconnect/backend/internal/domain/organization"
	"github.com/faithconnect/backend/internal/domain/shared"
	"github.com/faithconnect/backend/internal/interfaces/http/middleware"
)

type importMemberRepo struct {
	organization.MemberRepository
	batches [][]*organization.Member
}

func (r *importMemberRepo) CreateBatch(_ context.Context, members []*organization.Member) error {
	r.batches = append(r.batches, members)
	return nil
}

type importBranchRepo struct {
	organization.BranchRepository
	branch *organization.Branch
}

func (r *importBranchRepo) FindByID(_ context.Context, id uuid.UUID) (*organization.Branch, error) {
	if r.branch != nil && r.branch.ID == id {
		return r.branch, nil
	}
	return nil, shared.ErrNotFound
}

type noopAuditRepo struct{}

func (noopAuditRepo) Create(context.Context, *audit.Entry) error { return nil }
func (noopAuditRepo) Query(context.Context, audit.Filter) ([]*audit.Entry, int64, error) {
	return nil, 0, nil
}

func newImportFixture(t *testing.T) (*gin.Engine, *importMemberRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	branch, err := organization.NewBranch("Hillside Chapel", "12 Hillside Rd")
	require.NoError(t, err)
	branchID := branch.ID

	members := &importMemberRepo{}
	branches := &importBranchRepo{branch: branch}
	recorder := appaudit.NewRecorder(noopAuditRepo{}, zap.NewNop())
	service := apporg.NewMemberService(members, branches, recorder, zap.NewNop())
	h := NewMemberHandler(service)

	session := &identity.Session{
		UserID:    uuid.New(),
		Email:     "admin@faithconnect.org",
		Role:      identity.RoleAdmin,
		BranchID:  &branchID,
		ExpiresAt: time.Now().Add(time.Hour),
	}

	engine := gin.New()
	engine.Use(func(c *gin.Context) {
		c.Set(middleware.ContextKeySession, session)
		c.Next()
	})
	h.RegisterAdminRoutes(engine.Group("/admin"))
	return engine, members
}

func TestMemberImport_CSV(t *testing.T) {
	engine, members := newImportFixture(t)

	body := "first_name,last_name,email\n" +
		"Leah,Okonkwo,leah@faithconnect.org\n" +
		",MissingFirst,\n" +
		"David,Mensah,\n"
	req := httptest.NewRequest(http.MethodPost, "/admin/members/import", strings.NewReader(body))
	req.Header.Set("Content-Type", "text/csv")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data apporg.ImportMembersResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Data.Imported)
	assert.Equal(t, 1, resp.Data.Skipped)
	require.Len(t, resp.Data.Errors, 1)
	assert.Contains(t, resp.Data.Errors[0], "row 3")

	require.Len(t, members.batches, 1)
	assert.Len(t, members.batches[0], 2)
}

func TestMemberImport_CSVWithoutUsableRows(t *testing.T) {
	engine, _ := newImportFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/admin/members/import", strings.NewReader("email,phone\na@b.c,555\n"))
	req.Header.Set("Content-Type", "text/csv")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_ROLL_FILE")
}

func TestMemberImport_JSON(t *testing.T) {
	engine, members := newImportFixture(t)

	body := `{"rows":[{"first_name":"Grace","last_name":"Adeyemi","email":"grace@faithconnect.org"}]}`
	req := httptest.NewRequest(http.MethodPost, "/admin/members/import", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.Len(t, members.batches, 1)
	require.Len(t, members.batches[0], 1)
	assert.Equal(t, "Grace", members.batches[0][0].FirstName)
}
