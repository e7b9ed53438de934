package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/taskflow/taskflow-api/internal/domain"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"     validate:"required,email"`
	Password string `json:"password"  validate:"required,min=1,max=72"`
	FullName string `json:"full_name" validate:"omitempty,max=255"`
}

// RegisterResponse defines the successful response for registration.
type RegisterResponse struct {
	Msg string    `json:"msg"`
	ID  uuid.UUID `json:"id"`
}

// LoginRequest defines the payload for the token endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// TokenResponse defines the successful response for the token endpoint.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// CreateTaskRequest defines the payload for task creation. Status is not
// accepted: new tasks always start as todo.
type CreateTaskRequest struct {
	Title       string     `json:"title"       validate:"required,max=500"`
	Description string     `json:"description" validate:"omitempty"`
	Priority    string     `json:"priority"    validate:"omitempty,oneof=low medium high urgent"`
	DueDate     *time.Time `json:"due_date"`
	AssigneeID  *uuid.UUID `json:"assignee_id"`
}

// CreateEventRequest defines the payload for calendar event creation.
// The wire field names (start, end) match the original API surface.
type CreateEventRequest struct {
	Title           string    `json:"title"            validate:"required,max=500"`
	StartAt         time.Time `json:"start"            validate:"required"`
	EndAt           time.Time `json:"end"              validate:"required"`
	ReminderMinutes *int      `json:"reminder_minutes" validate:"omitempty,gte=0"`
}

// CreateEventResponse defines the successful response for event creation.
type CreateEventResponse struct {
	ID uuid.UUID `json:"id"`
}

// TaskResponse is the serialized form of a task. It mirrors domain.Task;
// the indirection keeps internal-only fields from ever reaching the wire
// should the domain type grow them.
type TaskResponse struct {
	ID          uuid.UUID           `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description,omitempty"`
	Status      domain.TaskStatus   `json:"status"`
	Priority    domain.TaskPriority `json:"priority"`
	CreatedAt   time.Time           `json:"created_at"`
	DueDate     *time.Time          `json:"due_date,omitempty"`
	AssigneeID  *uuid.UUID          `json:"assignee_id,omitempty"`
}

// NewTaskResponse converts a domain task to its wire representation.
func NewTaskResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		Priority:    task.Priority,
		CreatedAt:   task.CreatedAt,
		DueDate:     task.DueDate,
		AssigneeID:  task.AssigneeID,
	}
}

// NewTaskListResponse converts a slice of domain tasks, preserving order.
func NewTaskListResponse(tasks []*domain.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, NewTaskResponse(task))
	}
	return out
}
