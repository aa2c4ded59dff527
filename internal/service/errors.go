package service

import (
	"errors"
	"fmt"

	"github.com/studybuddy/studybuddy/internal/calendar"
	"github.com/studybuddy/studybuddy/internal/repository"
	"github.com/studybuddy/studybuddy/internal/validation"
)

var (
	ErrForgivenessUsed = repository.ErrForgivenessUsed

	ErrSessionActive      = errors.New("a focus session is already running")
	ErrSessionNotFound    = errors.New("focus session not found")
	ErrSessionFinished    = errors.New("focus session already finished")
	ErrInvalidSessionKind = errors.New("invalid session kind: must be work, short_break or long_break")
	ErrInvalidDuration    = errors.New("invalid duration: must be between 1 and 180 minutes")
)

// StorageError wraps any failure reading or writing persisted state.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: failed to %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func storageError(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}

// dateError maps a date parse failure onto the given input field.
func dateError(field string, err error) error {
	if errors.Is(err, calendar.ErrInvalidDate) {
		return validation.NewError(field, "must be a date (YYYY-MM-DD) or RFC 3339 timestamp")
	}
	return err
}
