package domain

import (
	"errors"
)

// Job event types published after successful mutations
const (
	EventJobCreated  = "job.created"
	EventJobUpdated  = "job.updated"
	EventJobUpserted = "job.upserted"
	EventJobDeleted  = "job.deleted"
)

var (
	// ErrJobNotFound is returned when no document matches the identifier
	ErrJobNotFound = errors.New("job not found")

	// ErrInvalidJobID is returned when an identifier is not a valid ObjectID
	ErrInvalidJobID = errors.New("invalid job id")

	// ErrInsertFailed is returned when the store reports no inserted identifier
	ErrInsertFailed = errors.New("job insert returned no id")
)
