package engagement

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvent(t *testing.T) {
	event, err := NewEvent(uuid.New(), "Harvest Convention", time.Now().Add(48*time.Hour))
	require.NoError(t, err)
	assert.False(t, event.IsPast())
	assert.Zero(t, event.Capacity)

	_, err = NewEvent(uuid.Nil, "Harvest", time.Now())
	require.Error(t, err)

	_, err = NewEvent(uuid.New(), "  ", time.Now())
	require.Error(t, err)

	_, err = NewEvent(uuid.New(), "Harvest", time.Time{})
	require.Error(t, err)
}

func TestEventCapacity(t *testing.T) {
	event, err := NewEvent(uuid.New(), "Harvest Convention", time.Now().Add(time.Hour))
	require.NoError(t, err)

	// Unlimited by default
	assert.True(t, event.HasCapacityFor(10000))

	require.NoError(t, event.SetCapacity(2))
	assert.True(t, event.HasCapacityFor(0))
	assert.True(t, event.HasCapacityFor(1))
	assert.False(t, event.HasCapacityFor(2))

	require.Error(t, event.SetCapacity(-1))
}

func TestAttendanceRecord(t *testing.T) {
	record, err := NewAttendanceRecord(uuid.New(), time.Now(), "First Service", uuid.New())
	require.NoError(t, err)

	require.NoError(t, record.SetCounts(120, 45, 8))
	assert.Equal(t, 173, record.Total())

	require.Error(t, record.SetCounts(-1, 0, 0))

	_, err = NewAttendanceRecord(uuid.Nil, time.Now(), "", uuid.New())
	require.Error(t, err)

	_, err = NewAttendanceRecord(uuid.New(), time.Time{}, "", uuid.New())
	require.Error(t, err)

	_, err = NewAttendanceRecord(uuid.New(), time.Now(), "", uuid.Nil)
	require.Error(t, err)
}
