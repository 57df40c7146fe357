package apperrors

import "errors"

var (
	ErrNotLoggedIn      = errors.New("not logged in")
	ErrInvalidPassword  = errors.New("incorrect password")
	ErrEmptyQuestion    = errors.New("question is empty")
	ErrEmptySQL         = errors.New("no SQL statement to execute")
	ErrHistoryNotFound  = errors.New("history entry not found")
	ErrDatabaseOffline  = errors.New("database connection is not available")
	ErrNoResponseChoice = errors.New("no choices in LLM response")
)
