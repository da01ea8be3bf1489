package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"eventease/internal/domain"
)

type eventService struct {
	eventRepo      domain.EventRepository
	contextTimeout time.Duration
}

func NewEventService(eventRepo domain.EventRepository, timeout time.Duration) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		contextTimeout: timeout,
	}
}

// canManageEvent reports whether the caller may mutate the event:
// its creator, or any admin/staff user.
func canManageEvent(event *domain.Event, callerID string, callerRole domain.Role) bool {
	if event.CreatedBy == callerID {
		return true
	}
	return callerRole == domain.RoleAdmin || callerRole == domain.RoleStaff
}

func (s *eventService) CreateEvent(ctx context.Context, in domain.CreateEventInput, callerID string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if callerID == "" {
		return nil, fmt.Errorf("%w: event creator is required", domain.ErrInvalidInput)
	}
	in.Title = strings.TrimSpace(in.Title)
	in.Location = strings.TrimSpace(in.Location)
	if in.Title == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if in.EventDate.IsZero() {
		return nil, fmt.Errorf("%w: event date is required", domain.ErrInvalidInput)
	}
	if in.Location == "" {
		return nil, fmt.Errorf("%w: location is required", domain.ErrInvalidInput)
	}
	if in.EndDate != nil && !in.EndDate.After(in.EventDate) {
		return nil, fmt.Errorf("%w: end date must be after event date", domain.ErrInvalidInput)
	}

	now := time.Now()
	event := &domain.Event{
		Title:        in.Title,
		EventDate:    in.EventDate,
		EndDate:      in.EndDate,
		MaxAttendees: in.MaxAttendees,
		IsPublic:     in.IsPublic,
		// New events always start as drafts, whatever the caller sent.
		Status:    domain.EventStatusDraft,
		CreatedBy: callerID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if desc := strings.TrimSpace(in.Description); desc != "" {
		event.Description = &desc
	}
	event.Location = &in.Location

	if err := s.eventRepo.Create(ctx, event); err != nil {
		if errors.Is(err, domain.ErrStorageNotProvisioned) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	return event, nil
}

func (s *eventService) GetEvent(ctx context.Context, eventID string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (s *eventService) ListEvents(ctx context.Context, callerID string, callerRole domain.Role) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	// Event owners see only their own events; admin and staff see all.
	ownerFilter := ""
	if callerRole == domain.RoleEventOwner {
		ownerFilter = callerID
	}
	events, err := s.eventRepo.List(ctx, ownerFilter)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

func (s *eventService) ListPublicEvents(ctx context.Context) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.ListPublic(ctx)
	if err != nil {
		return nil, fmt.Errorf("list public events: %w", err)
	}
	return events, nil
}

func (s *eventService) GetPublicEvent(ctx context.Context, eventID string) (*domain.Event, error) {
	event, err := s.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	// Private or unpublished events read as not found so their existence
	// is not leaked to the public page.
	if !event.IsPublic || event.Status != domain.EventStatusPublished {
		return nil, domain.ErrNotFound
	}
	return event, nil
}

func (s *eventService) UpdateEvent(ctx context.Context, eventID string, in domain.UpdateEventInput, callerID string, callerRole domain.Role) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if !canManageEvent(event, callerID, callerRole) {
		return nil, domain.ErrForbidden
	}

	if in.Title != nil && strings.TrimSpace(*in.Title) == "" {
		return nil, fmt.Errorf("%w: title cannot be empty", domain.ErrInvalidInput)
	}
	// Validate date ordering against the values the row will end up with.
	start := event.EventDate
	if in.EventDate != nil {
		start = *in.EventDate
	}
	end := event.EndDate
	if in.EndDate != nil {
		end = in.EndDate
	}
	if end != nil && !end.After(start) {
		return nil, fmt.Errorf("%w: end date must be after event date", domain.ErrInvalidInput)
	}

	updated, err := s.eventRepo.Update(ctx, eventID, in)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrStorageNotProvisioned) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update event: %w", err)
	}
	return updated, nil
}

func (s *eventService) UpdateEventStatus(ctx context.Context, eventID string, status domain.EventStatus, callerID string, callerRole domain.Role) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if !domain.ValidEventStatus(status) {
		return nil, fmt.Errorf("%w: invalid status %q", domain.ErrInvalidInput, status)
	}
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if !canManageEvent(event, callerID, callerRole) {
		return nil, domain.ErrForbidden
	}

	// No transition table: any valid status may overwrite any other.
	updated, err := s.eventRepo.UpdateStatus(ctx, eventID, status)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrStorageNotProvisioned) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update event status: %w", err)
	}
	return updated, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, eventID, callerID string, callerRole domain.Role) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get event: %w", err)
	}
	if !canManageEvent(event, callerID, callerRole) {
		return domain.ErrForbidden
	}
	if err := s.eventRepo.Delete(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrStorageNotProvisioned) {
			return err
		}
		return fmt.Errorf("failed to delete event: %w", err)
	}
	return nil
}
