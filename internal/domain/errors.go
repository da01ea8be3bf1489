package domain

import "errors"

// Sentinel errors shared across repositories and services.
var (
	// ErrNotFound is returned when a single-row fetch yields no match.
	ErrNotFound = errors.New("not found")

	// ErrStorageNotProvisioned is returned by writes when the backing table
	// does not exist yet. Reads degrade to empty results instead.
	ErrStorageNotProvisioned = errors.New("database tables not set up yet; run the schema script")

	// ErrAlreadyRegistered is returned when an RSVP already exists for the
	// same event and attendee email.
	ErrAlreadyRegistered = errors.New("you have already RSVP'd for this event")

	// ErrEventFull is returned when a confirmed RSVP would exceed the
	// event's maximum attendee count.
	ErrEventFull = errors.New("this event is at full capacity")

	ErrForbidden      = errors.New("forbidden")
	ErrInvalidInput   = errors.New("invalid input")
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already in use")

	// ErrInvalidCredentials is returned on failed login. It is deliberately
	// the same for unknown email and wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
