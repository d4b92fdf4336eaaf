package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{ErrCodeInternal, http.StatusInternalServerError},
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeForbidden, http.StatusForbidden},
		{"INVALID_CREDENTIALS", http.StatusUnauthorized},
		{"ACCOUNT_LOCKED", http.StatusUnauthorized},
		{"EMAIL_TAKEN", http.StatusConflict},
		{"SAME_BRANCH", http.StatusUnprocessableEntity},
		{"INVALID_STATE", http.StatusConflict},
		{"BRANCH_NOT_EMPTY", http.StatusUnprocessableEntity},
		{"EVENT_FULL", http.StatusUnprocessableEntity},
		// Validation codes share the INVALID_ prefix
		{"INVALID_BRANCH_NAME", http.StatusBadRequest},
		{"INVALID_MEMBER_NAME", http.StatusBadRequest},
		// Unknown codes are business rule violations, never 5xx
		{"SOME_FUTURE_RULE", http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, GetHTTPStatus(tt.code))
		})
	}
}

func TestNewErrorResponseWithRequestID(t *testing.T) {
	resp := NewErrorResponseWithRequestID(ErrCodeNotFound, "Branch not found", "req-123")

	assert.False(t, resp.Success)
	assert.Equal(t, ErrCodeNotFound, resp.Error.Code)
	assert.Equal(t, "Branch not found", resp.Error.Message)
	assert.Equal(t, "req-123", resp.Error.RequestID)
}

func TestNewDenialResponse(t *testing.T) {
	resp := NewDenialResponse("/portal")

	assert.False(t, resp.Success)
	assert.Equal(t, ErrCodeForbidden, resp.Error.Code)
	assert.Equal(t, "/portal", resp.Error.Redirect)
}

func TestListRequestNormalize(t *testing.T) {
	r := ListRequest{}
	r.Normalize()
	assert.Equal(t, 1, r.Page)
	assert.Equal(t, 20, r.PageSize)

	r = ListRequest{Page: 3, PageSize: 500}
	r.Normalize()
	assert.Equal(t, 3, r.Page)
	assert.Equal(t, 100, r.PageSize)
}

func TestNewSuccessResponseWithMeta(t *testing.T) {
	resp := NewSuccessResponseWithMeta([]string{"a"}, 41, 2, 20)

	assert.True(t, resp.Success)
	assert.Equal(t, int64(41), resp.Meta.Total)
	assert.Equal(t, 3, resp.Meta.TotalPages)
}
