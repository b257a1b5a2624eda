package internal

import "fmt"

// ValidationError is returned for bad or missing user input, before any
// network or storage call is made.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// StorageError is returned when the remote backend rejects a write or an
// object upload. The backend's own message is preserved for the user.
type StorageError struct {
	Op         string
	Message    string
	StatusCode int
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s failed: %s", e.Op, e.Message)
}

// QueryError is returned by store reads. Callers of the merge view swallow
// it and fail open to baseline prices; it is never shown as a hard error.
type QueryError struct {
	Op  string
	Err error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// LocalPersistenceError is returned when the fallback store cannot be
// written to, e.g. the database file is read-only or the disk is full.
type LocalPersistenceError struct {
	Err error
}

func (e *LocalPersistenceError) Error() string {
	return fmt.Sprintf("failed to save report locally: %v", e.Err)
}

func (e *LocalPersistenceError) Unwrap() error {
	return e.Err
}
