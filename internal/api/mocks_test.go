package api

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/taskflow/taskflow-api/internal/domain"
	"github.com/taskflow/taskflow-api/internal/service/auth"
	"github.com/taskflow/taskflow-api/internal/store"
)

// mockUserStore is an in-memory UserStore for handler tests.
type mockUserStore struct {
	users    map[string]*domain.User
	createFn func(ctx context.Context, user *domain.User) error
}

func newMockUserStore() *mockUserStore {
	return &mockUserStore{users: make(map[string]*domain.User)}
}

func (m *mockUserStore) Create(ctx context.Context, user *domain.User) error {
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	if _, exists := m.users[user.Email]; exists {
		return store.ErrEmailExists
	}
	m.users[user.Email] = user
	return nil
}

func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, exists := m.users[email]
	if !exists {
		return nil, store.ErrUserNotFound
	}
	return user, nil
}

// mockTaskStore is an in-memory TaskStore for handler tests.
type mockTaskStore struct {
	tasks      map[uuid.UUID]*domain.Task
	order      []uuid.UUID
	createErr  error
	lastParams store.ListTasksParams
	lastUpdate store.TaskUpdate
}

func newMockTaskStore() *mockTaskStore {
	return &mockTaskStore{tasks: make(map[uuid.UUID]*domain.Task)}
}

func (m *mockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.tasks[task.ID] = task
	m.order = append(m.order, task.ID)
	return nil
}

func (m *mockTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	task, exists := m.tasks[id]
	if !exists {
		return nil, store.ErrTaskNotFound
	}
	return task, nil
}

func (m *mockTaskStore) List(ctx context.Context, params store.ListTasksParams) ([]*domain.Task, error) {
	m.lastParams = params

	matched := make([]*domain.Task, 0)
	for _, id := range m.order {
		task := m.tasks[id]
		if params.Status != nil && task.Status != *params.Status {
			continue
		}
		matched = append(matched, task)
	}

	if params.Skip >= len(matched) {
		return []*domain.Task{}, nil
	}
	matched = matched[params.Skip:]
	if params.Limit > 0 && params.Limit < len(matched) {
		matched = matched[:params.Limit]
	}
	return matched, nil
}

func (m *mockTaskStore) Update(ctx context.Context, id uuid.UUID, update store.TaskUpdate) (*domain.Task, error) {
	m.lastUpdate = update

	task, exists := m.tasks[id]
	if !exists {
		return nil, store.ErrTaskNotFound
	}

	if update.Title != nil {
		task.Title = *update.Title
	}
	if update.Status != nil {
		task.Status = *update.Status
	}
	if update.Priority != nil {
		task.Priority = *update.Priority
	}
	switch {
	case update.NullDescription:
		task.Description = ""
	case update.Description != nil:
		task.Description = *update.Description
	}
	switch {
	case update.NullDueDate:
		task.DueDate = nil
	case update.DueDate != nil:
		task.DueDate = update.DueDate
	}
	switch {
	case update.NullAssignee:
		task.AssigneeID = nil
	case update.AssigneeID != nil:
		task.AssigneeID = update.AssigneeID
	}
	return task, nil
}

// mockEventStore records created calendar events.
type mockEventStore struct {
	events    []*domain.CalendarEvent
	createErr error
}

func (m *mockEventStore) Create(ctx context.Context, event *domain.CalendarEvent) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.events = append(m.events, event)
	return nil
}

// mockJWTService issues a fixed token and returns configured claims.
type mockJWTService struct {
	token       string
	generateErr error
	claims      *auth.Claims
	validateErr error
}

func (m *mockJWTService) GenerateToken(ctx context.Context, email string) (string, error) {
	if m.generateErr != nil {
		return "", m.generateErr
	}
	if m.token != "" {
		return m.token, nil
	}
	return "mock-token", nil
}

func (m *mockJWTService) ValidateToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if m.validateErr != nil {
		return nil, m.validateErr
	}
	return m.claims, nil
}

// mockHasher produces a predictable digest without bcrypt's cost.
type mockHasher struct {
	hashErr error
}

func (m *mockHasher) Hash(ctx context.Context, password string) (string, error) {
	if m.hashErr != nil {
		return "", m.hashErr
	}
	return "hashed:" + password, nil
}

// mockVerifier accepts passwords matching the mockHasher digest scheme.
type mockVerifier struct{}

func (m *mockVerifier) Compare(hashedPassword, password string) error {
	if hashedPassword == "hashed:"+password {
		return nil
	}
	return errors.New("password mismatch")
}
