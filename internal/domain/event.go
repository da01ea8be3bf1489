package domain

import (
	"context"
	"time"
)

// EventStatus is the lifecycle status of an event.
type EventStatus string

const (
	EventStatusDraft     EventStatus = "draft"
	EventStatusPublished EventStatus = "published"
	EventStatusCancelled EventStatus = "cancelled"
	EventStatusCompleted EventStatus = "completed"
)

// ValidEventStatus reports whether s is one of the known event statuses.
func ValidEventStatus(s EventStatus) bool {
	switch s {
	case EventStatusDraft, EventStatusPublished, EventStatusCancelled, EventStatusCompleted:
		return true
	}
	return false
}

// Event represents an organizer-created happening with schedule, location,
// and visibility/status attributes.
// swagger:model Event
type Event struct {
	ID           string      `json:"id"`
	Title        string      `json:"title"`
	Description  *string     `json:"description"`
	EventDate    time.Time   `json:"event_date"`
	EndDate      *time.Time  `json:"end_date"`
	Location     *string     `json:"location"`
	MaxAttendees *int        `json:"max_attendees"`
	IsPublic     bool        `json:"is_public"`
	Status       EventStatus `json:"status"`
	CreatedBy    string      `json:"created_by"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// CreateEventInput holds the caller-supplied fields for creating an event.
// Status is always forced to draft by the service regardless of input.
type CreateEventInput struct {
	Title        string
	Description  string
	EventDate    time.Time
	EndDate      *time.Time
	Location     string
	MaxAttendees *int
	IsPublic     bool
}

// UpdateEventInput holds partial fields for updating an event.
// Nil fields are left unchanged.
type UpdateEventInput struct {
	Title        *string
	Description  *string
	EventDate    *time.Time
	EndDate      *time.Time
	Location     *string
	MaxAttendees *int
	IsPublic     *bool
}

// EventRepository defines the interface for event storage.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	// List returns events newest-created first. An empty ownerID returns all
	// events; otherwise only events created by that user.
	List(ctx context.Context, ownerID string) ([]*Event, error)
	// ListPublic returns public published events ordered by start time ascending.
	ListPublic(ctx context.Context) ([]*Event, error)
	Update(ctx context.Context, id string, in UpdateEventInput) (*Event, error)
	UpdateStatus(ctx context.Context, id string, status EventStatus) (*Event, error)
	Delete(ctx context.Context, id string) error
}

// EventService defines the business logic for event management.
type EventService interface {
	CreateEvent(ctx context.Context, in CreateEventInput, callerID string) (*Event, error)
	GetEvent(ctx context.Context, eventID string) (*Event, error)
	// ListEvents returns all events for admin/staff callers and only the
	// caller's own events for event owners.
	ListEvents(ctx context.Context, callerID string, callerRole Role) ([]*Event, error)
	ListPublicEvents(ctx context.Context) ([]*Event, error)
	// GetPublicEvent returns the event only when it is public and published.
	GetPublicEvent(ctx context.Context, eventID string) (*Event, error)
	UpdateEvent(ctx context.Context, eventID string, in UpdateEventInput, callerID string, callerRole Role) (*Event, error)
	UpdateEventStatus(ctx context.Context, eventID string, status EventStatus, callerID string, callerRole Role) (*Event, error)
	DeleteEvent(ctx context.Context, eventID, callerID string, callerRole Role) error
}
