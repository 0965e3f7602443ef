// Package usecase implements the business logic for the tasks feature.
package usecase

import "errors"

var (
	// ErrProfileNotFound is returned when the owning profile does not exist.
	ErrProfileNotFound = errors.New("profile not found")

	// ErrTaskNotFound is returned when no task matches the given id under
	// the owning profile.
	ErrTaskNotFound = errors.New("task not found")
)
