package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/taskflow/taskflow-api/internal/api/shared"
	"github.com/taskflow/taskflow-api/internal/domain"
	"github.com/taskflow/taskflow-api/internal/store"
)

// EventHandler handles calendar event API requests.
type EventHandler struct {
	eventStore store.CalendarEventStore
	taskStore  store.TaskStore
	validator  *validator.Validate
	logger     *slog.Logger
}

// NewEventHandler creates a new EventHandler with the given dependencies.
func NewEventHandler(eventStore store.CalendarEventStore, taskStore store.TaskStore, logger *slog.Logger) *EventHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &EventHandler{
		eventStore: eventStore,
		taskStore:  taskStore,
		validator:  validator.New(),
		logger:     logger.With(slog.String("component", "event_handler")),
	}
}

// Create handles POST /tasks/{id}/events.
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	taskID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusUnprocessableEntity, "Invalid task ID")
		return
	}

	var req CreateEventRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusUnprocessableEntity, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusUnprocessableEntity, SanitizeValidationError(err))
		return
	}

	// Look the task up first so a missing task reads as 404 rather than
	// surfacing as a foreign key violation from the store.
	if _, err := h.taskStore.GetByID(r.Context(), taskID); err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			shared.RespondWithError(w, r, http.StatusNotFound, "Task not found")
			return
		}
		HandleAPIError(w, r, err, "Failed to retrieve task")
		return
	}

	event, err := domain.NewCalendarEvent(taskID, req.Title, req.StartAt, req.EndAt, req.ReminderMinutes)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.eventStore.Create(r.Context(), event); err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			// The task was deleted between the existence check and the
			// insert. Report it the same way as the pre-check.
			shared.RespondWithError(w, r, http.StatusNotFound, "Task not found")
			return
		}
		HandleAPIError(w, r, err, "Failed to create calendar event")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, CreateEventResponse{ID: event.ID})
}
