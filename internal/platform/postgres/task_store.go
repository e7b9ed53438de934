package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/taskflow/taskflow-api/internal/domain"
	"github.com/taskflow/taskflow-api/internal/platform/logger"
	"github.com/taskflow/taskflow-api/internal/store"
)

// TaskStore implements the store.TaskStore interface using a PostgreSQL
// database as the storage backend.
type TaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewTaskStore creates a new PostgreSQL implementation of the TaskStore
// interface. It accepts a database connection that should be initialized
// and managed by the caller.
func NewTaskStore(db store.DBTX, logger *slog.Logger) *TaskStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &TaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure TaskStore implements store.TaskStore interface
var _ store.TaskStore = (*TaskStore)(nil)

const taskColumns = "id, title, description, status, priority, created_at, due_date, assignee_id"

// Create implements store.TaskStore.Create.
func (s *TaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during create",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return err
	}

	query := `
		INSERT INTO tasks (` + taskColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		task.ID,
		task.Title,
		nullString(task.Description),
		task.Status,
		task.Priority,
		task.CreatedAt,
		task.DueDate,
		task.AssigneeID,
	)

	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("unknown assignee during task creation",
				slog.String("task_id", task.ID.String()))
			return fmt.Errorf("%w: assignee does not exist", store.ErrInvalidEntity)
		}
		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return MapError(err)
	}

	log.Info("task created successfully",
		slog.String("task_id", task.ID.String()),
		slog.String("status", string(task.Status)))
	return nil
}

// GetByID implements store.TaskStore.GetByID.
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *TaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`

	task, err := scanTask(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task not found", slog.String("task_id", id.String()))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to get task by ID",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return nil, MapError(err)
	}

	return task, nil
}

// List implements store.TaskStore.List. Results come back in stable
// creation order (created_at, id) so pagination windows never overlap.
func (s *TaskStore) List(ctx context.Context, params store.ListTasksParams) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if params.Limit <= 0 {
		params.Limit = store.DefaultListLimit
	}
	if params.Skip < 0 {
		params.Skip = 0
	}

	query := `SELECT ` + taskColumns + ` FROM tasks`
	args := []any{}
	if params.Status != nil {
		query += ` WHERE status = $1`
		args = append(args, *params.Status)
	}
	query += fmt.Sprintf(` ORDER BY created_at ASC, id ASC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, params.Limit, params.Skip)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query tasks",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	tasks := []*domain.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			log.Error("failed to scan task row",
				slog.String("error", err.Error()))
			return nil, err
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning task rows",
			slog.String("error", err.Error()))
		return nil, err
	}

	log.Debug("listed tasks", slog.Int("count", len(tasks)))
	return tasks, nil
}

// Update implements store.TaskStore.Update. It builds a SET clause from
// only the fields present in the update so untouched columns keep their
// values; created_at is never part of the clause.
func (s *TaskStore) Update(ctx context.Context, id uuid.UUID, update store.TaskUpdate) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if update.IsEmpty() {
		return s.GetByID(ctx, id)
	}

	setClauses := []string{}
	args := []any{}
	addSet := func(column string, value any) {
		args = append(args, value)
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if update.Title != nil {
		addSet("title", *update.Title)
	}
	switch {
	case update.NullDescription:
		setClauses = append(setClauses, "description = NULL")
	case update.Description != nil:
		addSet("description", *update.Description)
	}
	if update.Status != nil {
		addSet("status", *update.Status)
	}
	if update.Priority != nil {
		addSet("priority", *update.Priority)
	}
	switch {
	case update.NullDueDate:
		setClauses = append(setClauses, "due_date = NULL")
	case update.DueDate != nil:
		addSet("due_date", *update.DueDate)
	}
	switch {
	case update.NullAssignee:
		setClauses = append(setClauses, "assignee_id = NULL")
	case update.AssigneeID != nil:
		addSet("assignee_id", *update.AssigneeID)
	}

	args = append(args, id)
	query := fmt.Sprintf(
		`UPDATE tasks SET %s WHERE id = $%d RETURNING `+taskColumns,
		strings.Join(setClauses, ", "),
		len(args),
	)

	task, err := scanTask(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task not found for update",
				slog.String("task_id", id.String()))
			return nil, store.ErrTaskNotFound
		}
		if IsForeignKeyViolation(err) {
			log.Warn("unknown assignee during task update",
				slog.String("task_id", id.String()))
			return nil, fmt.Errorf("%w: assignee does not exist", store.ErrInvalidEntity)
		}
		log.Error("failed to update task",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return nil, MapError(err)
	}

	log.Info("task updated successfully",
		slog.String("task_id", id.String()))
	return task, nil
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var task domain.Task
	var description sql.NullString
	var status, priority string
	var dueDate sql.NullTime
	var assigneeID uuid.NullUUID

	err := row.Scan(
		&task.ID,
		&task.Title,
		&description,
		&status,
		&priority,
		&task.CreatedAt,
		&dueDate,
		&assigneeID,
	)
	if err != nil {
		return nil, err
	}

	task.Description = description.String
	task.Status = domain.TaskStatus(status)
	task.Priority = domain.TaskPriority(priority)
	if dueDate.Valid {
		task.DueDate = &dueDate.Time
	}
	if assigneeID.Valid {
		id := assigneeID.UUID
		task.AssigneeID = &id
	}

	return &task, nil
}

// nullString maps an empty string to SQL NULL.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
