package shared

import "errors"

var (
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("not found")
	// ErrInvalidDate indicates a calendar date string that is not YYYY-MM-DD.
	ErrInvalidDate = errors.New("invalid calendar date")
	// ErrInvalidMonth indicates a month string that is not YYYY-MM.
	ErrInvalidMonth = errors.New("invalid calendar month")
)
