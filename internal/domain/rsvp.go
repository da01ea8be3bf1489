package domain

import (
	"context"
	"time"
)

// RSVPStatus is the status of an attendee's registration.
type RSVPStatus string

const (
	RSVPStatusPending   RSVPStatus = "pending"
	RSVPStatusConfirmed RSVPStatus = "confirmed"
	RSVPStatusDeclined  RSVPStatus = "declined"
)

// ValidRSVPStatus reports whether s is one of the known RSVP statuses.
func ValidRSVPStatus(s RSVPStatus) bool {
	switch s {
	case RSVPStatusPending, RSVPStatusConfirmed, RSVPStatusDeclined:
		return true
	}
	return false
}

// RSVP represents an attendee's registration record against one event.
// swagger:model RSVP
type RSVP struct {
	ID            string     `json:"id"`
	EventID       string     `json:"event_id"`
	AttendeeName  string     `json:"attendee_name"`
	AttendeeEmail string     `json:"attendee_email"`
	Status        RSVPStatus `json:"status"`
	Notes         *string    `json:"notes"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// CreateRSVPInput holds the attendee-supplied fields of a public submission.
type CreateRSVPInput struct {
	AttendeeName  string
	AttendeeEmail string
	Notes         string
}

// EventStats holds RSVP counts for one event.
// Total = Confirmed + Pending + Declined for a consistent snapshot.
// swagger:model EventStats
type EventStats struct {
	Total     int `json:"total"`
	Confirmed int `json:"confirmed"`
	Pending   int `json:"pending"`
	Declined  int `json:"declined"`
}

// RSVPRepository defines the interface for RSVP storage.
//
// Uniqueness of (event_id, attendee_email) and the capacity limit are
// enforced at the storage level: Create maps a unique-violation to
// ErrAlreadyRegistered, and CreateWithinCapacity inserts conditionally on the
// current confirmed count, returning ErrEventFull when the event is full.
type RSVPRepository interface {
	Create(ctx context.Context, rsvp *RSVP) error
	CreateWithinCapacity(ctx context.Context, rsvp *RSVP, maxAttendees int) error
	GetByID(ctx context.Context, id string) (*RSVP, error)
	// FindByEmail returns the RSVP for the given event and attendee email,
	// or ErrNotFound.
	FindByEmail(ctx context.Context, eventID, email string) (*RSVP, error)
	// ListForEvent returns the event's RSVPs newest-created first.
	ListForEvent(ctx context.Context, eventID string) ([]*RSVP, error)
	UpdateStatus(ctx context.Context, id string, status RSVPStatus) (*RSVP, error)
	Delete(ctx context.Context, id string) error
	// Stats returns RSVP counts for the event, zeroed when storage is absent.
	Stats(ctx context.Context, eventID string) (*EventStats, error)
}

// RSVPService defines the business logic for RSVP collection and management.
type RSVPService interface {
	// SubmitPublicRSVP handles a public submission against a public published
	// event: validation, duplicate detection, capacity check, then insert
	// with status fixed to confirmed.
	SubmitPublicRSVP(ctx context.Context, eventID string, in CreateRSVPInput) (*RSVP, error)
	// LookupByEmail returns an existing RSVP for the public page's
	// "already registered" check, or ErrNotFound.
	LookupByEmail(ctx context.Context, eventID, email string) (*RSVP, error)
	ListForEvent(ctx context.Context, eventID, callerID string, callerRole Role) ([]*RSVP, error)
	UpdateStatus(ctx context.Context, rsvpID string, status RSVPStatus, callerID string, callerRole Role) (*RSVP, error)
	Delete(ctx context.Context, rsvpID, callerID string, callerRole Role) error
	Stats(ctx context.Context, eventID string) (*EventStats, error)
}
