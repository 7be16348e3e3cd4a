// Package store defines the storage-agnostic repository contracts for
// logs, reminders, and assets, along with the shared error taxonomy and
// database abstractions used by the SQL-backed implementation.
//
// The service layer depends only on these interfaces, never on a concrete
// backend. Implementations live under internal/platform.
package store
