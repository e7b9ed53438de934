package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// CalendarEvent validation errors.
var (
	ErrEmptyEventID        = errors.New("event ID cannot be empty")
	ErrEmptyEventTaskID    = errors.New("event task ID cannot be empty")
	ErrEmptyEventTitle     = errors.New("event title cannot be empty")
	ErrZeroEventTime       = errors.New("event start and end times are required")
	ErrEventEndBeforeStart = errors.New("event end time cannot be before start time")
	ErrNegativeReminder    = errors.New("reminder lead time cannot be negative")
)

// CalendarEvent is a scheduled occurrence tied to a Task. ReminderMinutes
// is stored but no delivery mechanism acts on it.
type CalendarEvent struct {
	ID              uuid.UUID `json:"id"`
	TaskID          uuid.UUID `json:"task_id"`
	Title           string    `json:"title"`
	StartAt         time.Time `json:"start_at"`
	EndAt           time.Time `json:"end_at"`
	ReminderMinutes *int      `json:"reminder_minutes,omitempty"`
}

// NewCalendarEvent creates a CalendarEvent for the given task with a
// generated ID. The referenced task must exist; that check belongs to the
// handler, which consults the task store before creating the event.
func NewCalendarEvent(taskID uuid.UUID, title string, startAt, endAt time.Time, reminderMinutes *int) (*CalendarEvent, error) {
	event := &CalendarEvent{
		ID:              uuid.New(),
		TaskID:          taskID,
		Title:           title,
		StartAt:         startAt,
		EndAt:           endAt,
		ReminderMinutes: reminderMinutes,
	}

	if err := event.Validate(); err != nil {
		return nil, err
	}

	return event, nil
}

// Validate checks if the CalendarEvent has valid data.
// End must not precede start.
func (e *CalendarEvent) Validate() error {
	if e.ID == uuid.Nil {
		return ErrEmptyEventID
	}
	if e.TaskID == uuid.Nil {
		return ErrEmptyEventTaskID
	}
	if e.Title == "" {
		return ErrEmptyEventTitle
	}
	if e.StartAt.IsZero() || e.EndAt.IsZero() {
		return ErrZeroEventTime
	}
	if e.EndAt.Before(e.StartAt) {
		return ErrEventEndBeforeStart
	}
	if e.ReminderMinutes != nil && *e.ReminderMinutes < 0 {
		return ErrNegativeReminder
	}
	return nil
}
