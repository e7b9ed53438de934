package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Task validation errors.
var (
	ErrEmptyTaskID         = errors.New("task ID cannot be empty")
	ErrEmptyTaskTitle      = errors.New("task title cannot be empty")
	ErrInvalidTaskStatus   = errors.New("invalid task status")
	ErrInvalidTaskPriority = errors.New("invalid task priority")
)

// TaskStatus is the closed set of workflow states a task can be in.
// Unrecognized values are rejected at the boundary rather than stored.
type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusDone       TaskStatus = "done"
	TaskStatusBlocked    TaskStatus = "blocked"
)

// Validate checks that the status is one of the known values.
func (s TaskStatus) Validate() error {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusDone, TaskStatusBlocked:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidTaskStatus, string(s))
}

// TaskPriority is the closed set of priority levels.
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
	TaskPriorityUrgent TaskPriority = "urgent"
)

// Validate checks that the priority is one of the known values.
func (p TaskPriority) Validate() error {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh, TaskPriorityUrgent:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidTaskPriority, string(p))
}

// Task represents a unit of work. CreatedAt is set once at creation and
// never modified. AssigneeID is a weak reference to a User; the task does
// not own its assignee.
type Task struct {
	ID          uuid.UUID    `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Status      TaskStatus   `json:"status"`
	Priority    TaskPriority `json:"priority"`
	CreatedAt   time.Time    `json:"created_at"`
	DueDate     *time.Time   `json:"due_date,omitempty"`
	AssigneeID  *uuid.UUID   `json:"assignee_id,omitempty"`
}

// NewTask creates a Task with a generated ID and creation timestamp.
// Status defaults to todo and priority to medium when empty.
func NewTask(title, description string, priority TaskPriority, dueDate *time.Time, assigneeID *uuid.UUID) (*Task, error) {
	if priority == "" {
		priority = TaskPriorityMedium
	}

	task := &Task{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		Status:      TaskStatusTodo,
		Priority:    priority,
		CreatedAt:   time.Now().UTC(),
		DueDate:     dueDate,
		AssigneeID:  assigneeID,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrEmptyTaskID
	}
	if t.Title == "" {
		return ErrEmptyTaskTitle
	}
	if err := t.Status.Validate(); err != nil {
		return err
	}
	if err := t.Priority.Validate(); err != nil {
		return err
	}
	return nil
}
