package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taskflow/taskflow-api/internal/domain"
	"github.com/taskflow/taskflow-api/internal/platform/logger"
	"github.com/taskflow/taskflow-api/internal/store"
)

// CalendarEventStore implements the store.CalendarEventStore interface
// using a PostgreSQL database as the storage backend.
type CalendarEventStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewCalendarEventStore creates a new PostgreSQL implementation of the
// CalendarEventStore interface.
func NewCalendarEventStore(db store.DBTX, logger *slog.Logger) *CalendarEventStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &CalendarEventStore{
		db:     db,
		logger: logger.With(slog.String("component", "event_store")),
	}
}

// Ensure CalendarEventStore implements store.CalendarEventStore interface
var _ store.CalendarEventStore = (*CalendarEventStore)(nil)

// Create implements store.CalendarEventStore.Create.
// The handler checks task existence before calling this; the foreign key
// is the backstop against a task disappearing in between, and maps to
// store.ErrTaskNotFound so the caller sees one consistent error.
func (s *CalendarEventStore) Create(ctx context.Context, event *domain.CalendarEvent) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := event.Validate(); err != nil {
		log.Warn("event validation failed during create",
			slog.String("error", err.Error()),
			slog.String("event_id", event.ID.String()))
		return err
	}

	query := `
		INSERT INTO calendar_events (id, task_id, title, start_at, end_at, reminder_minutes)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		event.ID,
		event.TaskID,
		event.Title,
		event.StartAt,
		event.EndAt,
		event.ReminderMinutes,
	)

	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Debug("task missing during event creation",
				slog.String("task_id", event.TaskID.String()))
			return fmt.Errorf("%w: %v", store.ErrTaskNotFound, err)
		}
		log.Error("failed to create calendar event",
			slog.String("error", err.Error()),
			slog.String("event_id", event.ID.String()),
			slog.String("task_id", event.TaskID.String()))
		return MapError(err)
	}

	log.Info("calendar event created successfully",
		slog.String("event_id", event.ID.String()),
		slog.String("task_id", event.TaskID.String()))
	return nil
}
