package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/taskflow/taskflow-api/internal/api/shared"
	"github.com/taskflow/taskflow-api/internal/domain"
	"github.com/taskflow/taskflow-api/internal/store"
)

// TaskHandler handles task CRUD API requests.
type TaskHandler struct {
	taskStore store.TaskStore
	validator *validator.Validate
	logger    *slog.Logger
}

// NewTaskHandler creates a new TaskHandler with the given dependencies.
func NewTaskHandler(taskStore store.TaskStore, logger *slog.Logger) *TaskHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskHandler{
		taskStore: taskStore,
		validator: validator.New(),
		logger:    logger.With(slog.String("component", "task_handler")),
	}
}

// Create handles POST /tasks.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateTaskRequest

	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusUnprocessableEntity, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusUnprocessableEntity, SanitizeValidationError(err))
		return
	}

	task, err := domain.NewTask(req.Title, req.Description, domain.TaskPriority(req.Priority), req.DueDate, req.AssigneeID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.taskStore.Create(r.Context(), task); err != nil {
		HandleAPIError(w, r, err, "Failed to create task")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, NewTaskResponse(task))
}

// List handles GET /tasks. Supported query parameters: status, skip, limit.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	params, err := parseListTasksParams(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusUnprocessableEntity, err.Error())
		return
	}

	tasks, err := h.taskStore.List(r.Context(), params)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list tasks")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewTaskListResponse(tasks))
}

// Get handles GET /tasks/{id}.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseTaskID(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusUnprocessableEntity, "Invalid task ID")
		return
	}

	task, err := h.taskStore.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			shared.RespondWithError(w, r, http.StatusNotFound, "Task not found")
			return
		}
		HandleAPIError(w, r, err, "Failed to retrieve task")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewTaskResponse(task))
}

// Update handles PATCH /tasks/{id}. Fields absent from the body are left
// untouched; nullable fields sent as explicit JSON null are cleared.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseTaskID(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusUnprocessableEntity, "Invalid task ID")
		return
	}

	update, err := parseTaskUpdate(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusUnprocessableEntity, err.Error())
		return
	}

	task, err := h.taskStore.Update(r.Context(), id, update)
	if err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			shared.RespondWithError(w, r, http.StatusNotFound, "Task not found")
			return
		}
		HandleAPIError(w, r, err, "Failed to update task")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewTaskResponse(task))
}

func parseTaskID(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, "id"))
}

func parseListTasksParams(r *http.Request) (store.ListTasksParams, error) {
	params := store.ListTasksParams{Limit: store.DefaultListLimit}
	query := r.URL.Query()

	if raw := query.Get("status"); raw != "" {
		status := domain.TaskStatus(raw)
		if err := status.Validate(); err != nil {
			return params, fmt.Errorf("invalid status filter %q", raw)
		}
		params.Status = &status
	}

	if raw := query.Get("skip"); raw != "" {
		skip, err := strconv.Atoi(raw)
		if err != nil || skip < 0 {
			return params, fmt.Errorf("skip must be a non-negative integer")
		}
		params.Skip = skip
	}

	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			return params, fmt.Errorf("limit must be a positive integer")
		}
		params.Limit = limit
	}

	return params, nil
}

// parseTaskUpdate decodes a PATCH body into a store.TaskUpdate. Raw
// messages are kept per field so that an absent key, an explicit null, and
// a value are three distinguishable cases.
func parseTaskUpdate(r *http.Request) (store.TaskUpdate, error) {
	var update store.TaskUpdate

	var fields map[string]json.RawMessage
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(&fields); err != nil {
		return update, fmt.Errorf("invalid request format")
	}
	if len(fields) == 0 {
		return update, fmt.Errorf("update body must contain at least one field")
	}

	for name, raw := range fields {
		switch name {
		case "title":
			var title string
			if err := json.Unmarshal(raw, &title); err != nil || title == "" {
				return update, fmt.Errorf("title must be a non-empty string")
			}
			update.Title = &title

		case "description":
			if isJSONNull(raw) {
				update.NullDescription = true
				continue
			}
			var description string
			if err := json.Unmarshal(raw, &description); err != nil {
				return update, fmt.Errorf("description must be a string")
			}
			update.Description = &description

		case "status":
			var status domain.TaskStatus
			if err := json.Unmarshal(raw, &status); err != nil {
				return update, fmt.Errorf("status must be a string")
			}
			if err := status.Validate(); err != nil {
				return update, fmt.Errorf("invalid status %q", status)
			}
			update.Status = &status

		case "priority":
			var priority domain.TaskPriority
			if err := json.Unmarshal(raw, &priority); err != nil {
				return update, fmt.Errorf("priority must be a string")
			}
			if err := priority.Validate(); err != nil {
				return update, fmt.Errorf("invalid priority %q", priority)
			}
			update.Priority = &priority

		case "due_date":
			if isJSONNull(raw) {
				update.NullDueDate = true
				continue
			}
			var dueDate time.Time
			if err := json.Unmarshal(raw, &dueDate); err != nil {
				return update, fmt.Errorf("due_date must be an RFC 3339 timestamp")
			}
			update.DueDate = &dueDate

		case "assignee_id":
			if isJSONNull(raw) {
				update.NullAssignee = true
				continue
			}
			var assigneeID uuid.UUID
			if err := json.Unmarshal(raw, &assigneeID); err != nil {
				return update, fmt.Errorf("assignee_id must be a UUID")
			}
			update.AssigneeID = &assigneeID

		default:
			return update, fmt.Errorf("unknown field %q", name)
		}
	}

	if update.IsEmpty() {
		return update, fmt.Errorf("update body must contain at least one field")
	}
	return update, nil
}

func isJSONNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
