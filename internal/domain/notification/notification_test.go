package notification

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	userID := uuid.New()

	n, err := New(userID, "Transfer approved", "Your transfer to Grace Chapel North was approved.", "/portal/transfers")
	require.NoError(t, err)
	assert.Equal(t, userID, n.UserID)
	assert.False(t, n.Read)
	assert.Nil(t, n.ReadAt)

	_, err = New(uuid.Nil, "Title", "", "")
	require.Error(t, err)

	_, err = New(userID, "   ", "", "")
	require.Error(t, err)
}

func TestMarkReadIdempotent(t *testing.T) {
	n, err := New(uuid.New(), "Hello", "", "")
	require.NoError(t, err)

	n.MarkRead()
	require.NotNil(t, n.ReadAt)
	first := *n.ReadAt

	n.MarkRead()
	assert.Equal(t, first, *n.ReadAt)
}
