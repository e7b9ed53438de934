package store

import (
	"context"

	"github.com/taskflow/taskflow-api/internal/domain"
)

// CalendarEventStore defines the interface for calendar event persistence.
// Events are create-only in the current scope.
type CalendarEventStore interface {
	// Create saves a new calendar event to the store.
	// Returns ErrTaskNotFound if the referenced task does not exist.
	Create(ctx context.Context, event *domain.CalendarEvent) error
}
