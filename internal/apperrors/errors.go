package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrSnapshotNotFound indicates that a rollup snapshot with the given ID does not exist.
	ErrSnapshotNotFound = errors.New("snapshot not found")
)

// Validation errors represent request parameters that cannot be accepted.
// They are surfaced as client errors and never reach the aggregation pipeline.
var (
	// ErrMissingClientID indicates that the required client_id parameter is absent.
	ErrMissingClientID = errors.New("client_id is required")

	// ErrInvalidClientID indicates that client_id is not a positive integer.
	ErrInvalidClientID = errors.New("client_id must be a positive integer")

	// ErrInvalidPeriod indicates that year, month, from or to could not be parsed.
	ErrInvalidPeriod = errors.New("invalid period")

	// ErrInvalidDateRange indicates that from is after to.
	ErrInvalidDateRange = errors.New("invalid date range")

	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")
)

// ErrFailedToLoad is the single upstream failure reported to API consumers.
var ErrFailedToLoad = errors.New("failed to load")
