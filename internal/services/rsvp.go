package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"eventease/internal/domain"
)

type rsvpService struct {
	rsvpRepo       domain.RSVPRepository
	eventRepo      domain.EventRepository
	emailService   domain.EmailService
	logger         *slog.Logger
	contextTimeout time.Duration
}

func NewRSVPService(
	rsvpRepo domain.RSVPRepository,
	eventRepo domain.EventRepository,
	emailService domain.EmailService,
	logger *slog.Logger,
	timeout time.Duration,
) domain.RSVPService {
	return &rsvpService{
		rsvpRepo:       rsvpRepo,
		eventRepo:      eventRepo,
		emailService:   emailService,
		logger:         logger,
		contextTimeout: timeout,
	}
}

func (s *rsvpService) SubmitPublicRSVP(ctx context.Context, eventID string, in domain.CreateRSVPInput) (*domain.RSVP, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	in.AttendeeName = strings.TrimSpace(in.AttendeeName)
	in.AttendeeEmail = strings.TrimSpace(strings.ToLower(in.AttendeeEmail))
	if in.AttendeeName == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	if !emailRegexp.MatchString(in.AttendeeEmail) {
		return nil, fmt.Errorf("%w: invalid email format", domain.ErrInvalidInput)
	}

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if !event.IsPublic || event.Status != domain.EventStatusPublished {
		return nil, domain.ErrNotFound
	}

	// Pre-checks for friendly errors before any write. The storage
	// constraints below make them race-safe.
	if _, err := s.rsvpRepo.FindByEmail(ctx, eventID, in.AttendeeEmail); err == nil {
		return nil, domain.ErrAlreadyRegistered
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("find rsvp by email: %w", err)
	}
	if event.MaxAttendees != nil {
		stats, err := s.rsvpRepo.Stats(ctx, eventID)
		if err != nil {
			return nil, fmt.Errorf("get event stats: %w", err)
		}
		if stats.Confirmed >= *event.MaxAttendees {
			return nil, domain.ErrEventFull
		}
	}

	now := time.Now()
	rsvp := &domain.RSVP{
		EventID:       eventID,
		AttendeeName:  in.AttendeeName,
		AttendeeEmail: in.AttendeeEmail,
		// Public submissions are confirmed immediately; there is no
		// pending approval step.
		Status:    domain.RSVPStatusConfirmed,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if notes := strings.TrimSpace(in.Notes); notes != "" {
		rsvp.Notes = &notes
	}

	if event.MaxAttendees != nil {
		err = s.rsvpRepo.CreateWithinCapacity(ctx, rsvp, *event.MaxAttendees)
	} else {
		err = s.rsvpRepo.Create(ctx, rsvp)
	}
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyRegistered) ||
			errors.Is(err, domain.ErrEventFull) ||
			errors.Is(err, domain.ErrStorageNotProvisioned) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create rsvp: %w", err)
	}

	if s.emailService != nil {
		data := &domain.RSVPConfirmationEmailData{
			Email:        rsvp.AttendeeEmail,
			AttendeeName: rsvp.AttendeeName,
			EventTitle:   event.Title,
			EventDate:    event.EventDate.Format("Monday, January 2, 2006 at 3:04 PM"),
		}
		if event.Location != nil {
			data.Location = *event.Location
		}
		// Confirmation email is best-effort; the RSVP already exists.
		if err := s.emailService.SendRSVPConfirmation(ctx, data); err != nil {
			s.logger.WarnContext(ctx, "rsvp confirmation email failed",
				"event_id", eventID, "err", err)
		}
	}

	return rsvp, nil
}

func (s *rsvpService) LookupByEmail(ctx context.Context, eventID, email string) (*domain.RSVP, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", domain.ErrInvalidInput)
	}
	rsvp, err := s.rsvpRepo.FindByEmail(ctx, eventID, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find rsvp by email: %w", err)
	}
	return rsvp, nil
}

func (s *rsvpService) ListForEvent(ctx context.Context, eventID, callerID string, callerRole domain.Role) ([]*domain.RSVP, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.requireEventManager(ctx, eventID, callerID, callerRole); err != nil {
		return nil, err
	}
	rsvps, err := s.rsvpRepo.ListForEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list rsvps: %w", err)
	}
	return rsvps, nil
}

func (s *rsvpService) UpdateStatus(ctx context.Context, rsvpID string, status domain.RSVPStatus, callerID string, callerRole domain.Role) (*domain.RSVP, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if !domain.ValidRSVPStatus(status) {
		return nil, fmt.Errorf("%w: invalid status %q", domain.ErrInvalidInput, status)
	}
	rsvp, err := s.rsvpRepo.GetByID(ctx, rsvpID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get rsvp: %w", err)
	}
	if err := s.requireEventManager(ctx, rsvp.EventID, callerID, callerRole); err != nil {
		return nil, err
	}
	updated, err := s.rsvpRepo.UpdateStatus(ctx, rsvpID, status)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrStorageNotProvisioned) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update rsvp status: %w", err)
	}
	return updated, nil
}

func (s *rsvpService) Delete(ctx context.Context, rsvpID, callerID string, callerRole domain.Role) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	rsvp, err := s.rsvpRepo.GetByID(ctx, rsvpID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get rsvp: %w", err)
	}
	if err := s.requireEventManager(ctx, rsvp.EventID, callerID, callerRole); err != nil {
		return err
	}
	if err := s.rsvpRepo.Delete(ctx, rsvpID); err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrStorageNotProvisioned) {
			return err
		}
		return fmt.Errorf("failed to delete rsvp: %w", err)
	}
	return nil
}

func (s *rsvpService) Stats(ctx context.Context, eventID string) (*domain.EventStats, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	stats, err := s.rsvpRepo.Stats(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("get event stats: %w", err)
	}
	return stats, nil
}

// requireEventManager resolves the RSVP's event and checks the caller may
// manage its attendees.
func (s *rsvpService) requireEventManager(ctx context.Context, eventID, callerID string, callerRole domain.Role) error {
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
	return nil
}
