package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCalendarEvent(t *testing.T) {
	start := time.Now().UTC()
	end := start.Add(time.Hour)
	reminder := 15

	event, err := NewCalendarEvent(uuid.New(), "standup", start, end, &reminder)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, event.ID)
	assert.Equal(t, start, event.StartAt)
	assert.Equal(t, end, event.EndAt)
	require.NotNil(t, event.ReminderMinutes)
	assert.Equal(t, 15, *event.ReminderMinutes)
}

func TestNewCalendarEventEndBeforeStart(t *testing.T) {
	start := time.Now().UTC()
	end := start.Add(-time.Minute)

	_, err := NewCalendarEvent(uuid.New(), "standup", start, end, nil)
	assert.ErrorIs(t, err, ErrEventEndBeforeStart)
}

func TestNewCalendarEventZeroDuration(t *testing.T) {
	// end == start is allowed; only end < start is rejected.
	start := time.Now().UTC()

	_, err := NewCalendarEvent(uuid.New(), "reminder", start, start, nil)
	assert.NoError(t, err)
}

func TestNewCalendarEventMissingTask(t *testing.T) {
	start := time.Now().UTC()

	_, err := NewCalendarEvent(uuid.Nil, "standup", start, start.Add(time.Hour), nil)
	assert.ErrorIs(t, err, ErrEmptyEventTaskID)
}

func TestNewCalendarEventNegativeReminder(t *testing.T) {
	start := time.Now().UTC()
	reminder := -5

	_, err := NewCalendarEvent(uuid.New(), "standup", start, start.Add(time.Hour), &reminder)
	assert.ErrorIs(t, err, ErrNegativeReminder)
}
