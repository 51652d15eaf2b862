package repository

import "errors"

// Sentinel kinds for registry errors. Messages double as client-facing
// details, so keep their wording stable.
var (
	ErrNotFound        = errors.New("activity not found")
	ErrAlreadySignedUp = errors.New("student is already signed up for this activity")
	ErrNotSignedUp     = errors.New("student is not signed up for this activity")
	ErrInvalidSeed     = errors.New("invalid seed")
	ErrClosed          = errors.New("store closed")
)
