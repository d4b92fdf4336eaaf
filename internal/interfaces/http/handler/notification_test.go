package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appnotification "github.com/faithconnect/backend/internal/application/notification"
	"github.com/faithconnect/backend/internal/domain/identity"
	"github.com/faithconnect/backend/internal/domain/notification"
	"github.com/faithconnect/backend/internal/domain/shared"
	"github.com/faithconnect/backend/internal/interfaces/http/middleware"
)

type memNotificationStore struct {
	items map[uuid.UUID]*notification.Notification
}

func newMemNotificationStore() *memNotificationStore {
	return &memNotificationStore{items: map[uuid.UUID]*notification.Notification{}}
}

func (r *memNotificationStore) Create(_ context.Context, n *notification.Notification) error {
	r.items[n.ID] = n
	return nil
}

func (r *memNotificationStore) FindByID(_ context.Context, id uuid.UUID) (*notification.Notification, error) {
	if n, ok := r.items[id]; ok {
		return n, nil
	}
	return nil, shared.ErrNotFound
}

func (r *memNotificationStore) FindByUser(_ context.Context, userID uuid.UUID, unreadOnly bool, limit int) ([]*notification.Notification, error) {
	var out []*notification.Notification
	for _, n := range r.items {
		if n.UserID != userID {
			continue
		}
		if unreadOnly && n.Read {
			continue
		}
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memNotificationStore) CountUnread(_ context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	for _, n := range r.items {
		if n.UserID == userID && !n.Read {
			count++
		}
	}
	return count, nil
}

func (r *memNotificationStore) MarkRead(_ context.Context, id uuid.UUID) error {
	n, ok := r.items[id]
	if !ok {
		return shared.ErrNotFound
	}
	n.MarkRead()
	return nil
}

func (r *memNotificationStore) MarkAllRead(_ context.Context, userID uuid.UUID) error {
	for _, n := range r.items {
		if n.UserID == userID {
			n.MarkRead()
		}
	}
	return nil
}

func notificationTestRouter(store *memNotificationStore, session *identity.Session) *gin.Engine {
	service := appnotification.NewService(store, nil, nil)
	h := NewNotificationHandler(service)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(middleware.ContextKeySession, session)
		c.Next()
	})
	h.RegisterPortalRoutes(router.Group("/api/v1/portal"))
	return router
}

func portalMemberSession() *identity.Session {
	return &identity.Session{
		UserID:    uuid.New(),
		Email:     "naomi@faithconnect.org",
		Role:      identity.RoleMember,
		IssuedAt:  time.Now(),
		ExpiresAt: time.Now().Add(time.Hour),
	}
}

func TestNotificationHandler_ListAndMarkRead(t *testing.T) {
	store := newMemNotificationStore()
	session := portalMemberSession()
	router := notificationTestRouter(store, session)

	first, err := notification.New(session.UserID, "Transfer approved", "Welcome to Hillside", "/portal/transfers")
	require.NoError(t, err)
	require.NoError(t, store.Create(context.Background(), first))

	other, err := notification.New(uuid.New(), "Not yours", "", "")
	require.NoError(t, err)
	require.NoError(t, store.Create(context.Background(), other))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/portal/notifications", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var list struct {
		Data []appnotification.View `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Data, 1)
	assert.Equal(t, "Transfer approved", list.Data[0].Title)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/portal/notifications/unread-count", nil))
	assert.Contains(t, w.Body.String(), `"unread":1`)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("POST", "/api/v1/portal/notifications/"+first.ID.String()+"/read", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/portal/notifications/unread-count", nil))
	assert.Contains(t, w.Body.String(), `"unread":0`)
}

func TestNotificationHandler_MarkReadForeignNotification(t *testing.T) {
	store := newMemNotificationStore()
	session := portalMemberSession()
	router := notificationTestRouter(store, session)

	foreign, err := notification.New(uuid.New(), "Not yours", "", "")
	require.NoError(t, err)
	require.NoError(t, store.Create(context.Background(), foreign))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("POST", "/api/v1/portal/notifications/"+foreign.ID.String()+"/read", nil))

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestNotificationHandler_MarkAllRead(t *testing.T) {
	store := newMemNotificationStore()
	session := portalMemberSession()
	router := notificationTestRouter(store, session)

	for i := 0; i < 3; i++ {
		n, err := notification.New(session.UserID, "Announcement", "", "")
		require.NoError(t, err)
		require.NoError(t, store.Create(context.Background(), n))
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("POST", "/api/v1/portal/notifications/read-all", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)

	count, err := store.CountUnread(context.Background(), session.UserID)
	require.NoError(t, err)
	assert.Zero(t, count)
}
