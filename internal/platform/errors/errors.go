package apperrors

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("not found")
	ErrNoProgress            = errors.New("no progress recorded yet")
	ErrAlreadyOnboarded      = errors.New("progress already initialized")
	ErrPersistence           = errors.New("progress could not be saved")
	ErrGenerationUnavailable = errors.New("content generation unavailable")
)
