// Package usecase implements the business logic for the accounts feature.
package usecase

import "errors"

var (
	// ErrProfileNotFound is returned when no profile matches the given username.
	ErrProfileNotFound = errors.New("profile not found")

	// ErrUsernameTaken is returned when registering a username that already exists.
	ErrUsernameTaken = errors.New("username already taken")

	// ErrPasswordMismatch is returned when password and its confirmation differ.
	ErrPasswordMismatch = errors.New("passwords don't match")

	// ErrInvalidCredentials is returned when login fails, without revealing
	// whether the username or the password was wrong.
	ErrInvalidCredentials = errors.New("incorrect username/password combination")
)
