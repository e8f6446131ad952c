package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrIncompleteInput indicates one or more intake fields were left blank.
	ErrIncompleteInput = errors.New("incomplete input: all fields are required")

	// ErrMissingQuestion indicates a question role was requested without a question.
	ErrMissingQuestion = fmt.Errorf("%w: question is empty", ErrIncompleteInput)

	// ErrInvalidDate indicates a date field is not a YYYY-MM-DD calendar date.
	ErrInvalidDate = errors.New("invalid date")

	// ErrInvalidAge indicates an age outside 0..150.
	ErrInvalidAge = errors.New("age must be a whole number between 0 and 150")

	// ErrInvalidGender indicates a gender outside the closed set.
	ErrInvalidGender = errors.New("invalid gender")

	// ErrInvalidRole indicates an advice role outside the six supported roles.
	ErrInvalidRole = errors.New("invalid advice role")

	// ErrAdviceUnavailable indicates the completion provider failed.
	ErrAdviceUnavailable = errors.New("advice unavailable")

	// ErrMissingFilename indicates a save was attempted without a name.
	ErrMissingFilename = errors.New("missing filename")

	// ErrInvalidFilename indicates a name that would escape the storage directory.
	ErrInvalidFilename = errors.New("invalid filename")

	// ErrFileNotFound indicates no saved record exists under the given name.
	ErrFileNotFound = errors.New("file not found")
)

// InvalidDateError reports which field failed to parse and why.
type InvalidDateError struct {
	Field string
	Value string
	Err   error
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid date for %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *InvalidDateError) Unwrap() error { return e.Err }

func (e *InvalidDateError) Is(target error) bool { return target == ErrInvalidDate }

// AdviceUnavailableError carries the provider error text verbatim.
type AdviceUnavailableError struct {
	Role Role
	Err  error
}

func (e *AdviceUnavailableError) Error() string {
	return fmt.Sprintf("%s: %v", ErrAdviceUnavailable, e.Err)
}

func (e *AdviceUnavailableError) Unwrap() error { return e.Err }

func (e *AdviceUnavailableError) Is(target error) bool { return target == ErrAdviceUnavailable }

// Raw returns the provider's error text without any prefix.
func (e *AdviceUnavailableError) Raw() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}
