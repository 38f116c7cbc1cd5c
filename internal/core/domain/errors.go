package domain

import "errors"

// Domain errors represent storage and business logic failures.
// Every error crossing a command surface renders as its message only,
// so the messages below are part of the user-visible contract.
var (
	// ErrIO indicates the data directory or database file could not be accessed.
	ErrIO = errors.New("storage i/o failure")

	// ErrSchema indicates a schema migration failed to apply.
	ErrSchema = errors.New("schema migration failed")

	// ErrNotFound indicates a referenced item or collection does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConstraint indicates a uniqueness, foreign key or check constraint was violated.
	ErrConstraint = errors.New("constraint violation")

	// ErrQuery indicates malformed aggregation parameters.
	ErrQuery = errors.New("invalid query parameters")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoPendingUpdate indicates there is no staged application update to take.
	ErrNoPendingUpdate = errors.New("There is no pending update") //nolint:stylecheck
)
