package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStubPlaybackStorage_GeneratePlaybackURL(t *testing.T) {
	stub := NewStubPlaybackStorage()

	url, expiresAt, err := stub.GeneratePlaybackURL(context.Background(), "recordings/2025/svc.mp4", 30*time.Minute)
	require.NoError(t, err)
	assert.Contains(t, url, "recordings/2025/svc.mp4")
	assert.True(t, expiresAt.After(time.Now()))
}

func TestStubPlaybackStorage_GeneratePlaybackURL_EmptyPath(t *testing.T) {
	stub := NewStubPlaybackStorage()

	_, _, err := stub.GeneratePlaybackURL(context.Background(), "", time.Hour)
	assert.Error(t, err)
}

func TestStubPlaybackStorage_GeneratePlaybackURL_DefaultExpiry(t *testing.T) {
	stub := NewStubPlaybackStorage()

	_, expiresAt, err := stub.GeneratePlaybackURL(context.Background(), "recordings/a.mp4", 0)
	require.NoError(t, err)
	assert.True(t, expiresAt.After(time.Now().Add(55*time.Minute)))
}

func TestStubPlaybackStorage_ObjectExists(t *testing.T) {
	stub := NewStubPlaybackStorage()

	exists, err := stub.ObjectExists(context.Background(), "recordings/a.mp4")
	require.NoError(t, err)
	assert.False(t, exists)

	stub.AddObject("recordings/a.mp4")

	exists, err = stub.ObjectExists(context.Background(), "recordings/a.mp4")
	require.NoError(t, err)
	assert.True(t, exists)
}
