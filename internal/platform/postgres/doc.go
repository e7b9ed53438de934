// Package postgres implements the store interfaces on top of PostgreSQL,
// and owns the database-facing parts of process startup: the readiness
// gate and idempotent schema migrations.
package postgres
