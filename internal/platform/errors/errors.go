package apperrors

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")

	// ErrValidation marks a quiz or form field outside its closed set.
	ErrValidation = errors.New("validation failed")

	ErrAuth               = errors.New("authentication failed")
	ErrInvalidCredentials = errors.New("invalid login credentials")
	ErrEmailNotConfirmed  = errors.New("email not confirmed")
	ErrNotAuthenticated   = errors.New("not signed in")

	// ErrNetwork wraps transport failures and 5xx answers from the backend.
	ErrNetwork = errors.New("backend unreachable")

	ErrNothingToSave = errors.New("nothing to save: pause a running timer first")
)
