package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/taskflow/taskflow-api/internal/domain"
)

// DefaultListLimit is applied when a list request does not specify a limit.
const DefaultListLimit = 100

// ListTasksParams narrows and pages a task listing. A nil Status means no
// status filter. Results are returned in stable creation order.
type ListTasksParams struct {
	Status *domain.TaskStatus
	Skip   int
	Limit  int
}

// TaskUpdate is a partial update of a task. Only non-nil fields are
// applied; absent fields are left untouched. NullDescription, NullDueDate,
// and NullAssignee clear the corresponding nullable column when the client
// sends an explicit null.
type TaskUpdate struct {
	Title       *string
	Description *string
	Status      *domain.TaskStatus
	Priority    *domain.TaskPriority
	DueDate     *time.Time
	AssigneeID  *uuid.UUID

	NullDescription bool
	NullDueDate     bool
	NullAssignee    bool
}

// IsEmpty reports whether the update would change nothing.
func (u TaskUpdate) IsEmpty() bool {
	return u.Title == nil && u.Description == nil && u.Status == nil &&
		u.Priority == nil && u.DueDate == nil && u.AssigneeID == nil &&
		!u.NullDescription && !u.NullDueDate && !u.NullAssignee
}

// TaskStore defines the interface for task data persistence.
type TaskStore interface {
	// Create saves a new task to the store.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by its unique ID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// List retrieves tasks matching the given parameters in stable order
	// (created_at, then id). Returns an empty slice when nothing matches.
	List(ctx context.Context, params ListTasksParams) ([]*domain.Task, error)

	// Update applies a partial update to an existing task and returns the
	// persisted result. CreatedAt is never modified.
	// Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, id uuid.UUID, update TaskUpdate) (*domain.Task, error)
}
