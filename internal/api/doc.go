// Package api implements the HTTP handlers for the TaskFlow API: user
// registration, token-based login, task CRUD, and calendar event
// creation. Handlers validate input shape, delegate to the store
// interfaces, and translate store errors to HTTP statuses.
package api
