package controllers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"eventease/internal/delivery/http/helpers"
	"eventease/internal/delivery/http/middleware"
	"eventease/internal/domain"
)

// CreateEventRequest is the request body for POST /events.
// Dates are RFC 3339 timestamps. Any submitted status is ignored; new events
// always start as drafts.
type CreateEventRequest struct {
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	EventDate    time.Time  `json:"event_date"`
	EndDate      *time.Time `json:"end_date"`
	Location     string     `json:"location"`
	MaxAttendees *int       `json:"max_attendees"`
	IsPublic     bool       `json:"is_public"`
}

// Validate implements Validator.
func (e CreateEventRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(e.Title) == "" {
		errs = append(errs, "title is required")
	}
	if e.EventDate.IsZero() {
		errs = append(errs, "event_date is required")
	}
	if strings.TrimSpace(e.Location) == "" {
		errs = append(errs, "location is required")
	}
	if e.EndDate != nil && !e.EventDate.IsZero() && !e.EndDate.After(e.EventDate) {
		errs = append(errs, "end_date must be after event_date")
	}
	if e.MaxAttendees != nil && *e.MaxAttendees < 1 {
		errs = append(errs, "max_attendees must be at least 1")
	}
	return errs
}

// UpdateEventRequest is the request body for PATCH /events/{eventID}.
// Only the provided fields are changed.
type UpdateEventRequest struct {
	Title        *string    `json:"title"`
	Description  *string    `json:"description"`
	EventDate    *time.Time `json:"event_date"`
	EndDate      *time.Time `json:"end_date"`
	Location     *string    `json:"location"`
	MaxAttendees *int       `json:"max_attendees"`
	IsPublic     *bool      `json:"is_public"`
}

// Validate implements Validator.
func (e UpdateEventRequest) Validate() []string {
	var errs []string
	if e.Title != nil && strings.TrimSpace(*e.Title) == "" {
		errs = append(errs, "title cannot be empty")
	}
	if e.Location != nil && strings.TrimSpace(*e.Location) == "" {
		errs = append(errs, "location cannot be empty")
	}
	if e.MaxAttendees != nil && *e.MaxAttendees < 1 {
		errs = append(errs, "max_attendees must be at least 1")
	}
	return errs
}

// UpdateEventStatusRequest is the request body for PATCH /events/{eventID}/status.
type UpdateEventStatusRequest struct {
	Status string `json:"status"`
}

// Validate implements Validator.
func (e UpdateEventStatusRequest) Validate() []string {
	if !domain.ValidEventStatus(domain.EventStatus(e.Status)) {
		return []string{"status must be \"draft\", \"published\", \"cancelled\", or \"completed\""}
	}
	return nil
}

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// Create godoc
// @Summary Create an event
// @Description Creates a new event owned by the caller. The event always starts in draft status.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateEventRequest true "Event data"
// @Success 201 {object} helpers.APIResponse "data contains the created event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 503 {object} helpers.APIResponse "error.code: storage_not_provisioned"
// @Router /events [post]
func (c *EventController) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	event, err := c.Service.CreateEvent(r.Context(), domain.CreateEventInput{
		Title:        req.Title,
		Description:  req.Description,
		EventDate:    req.EventDate,
		EndDate:      req.EndDate,
		Location:     req.Location,
		MaxAttendees: req.MaxAttendees,
		IsPublic:     req.IsPublic,
	}, identity.UserID)
	if err != nil {
		writeDomainError(w, r.Context(), c.Logger, err, "failed to create event")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, event)
}

// List godoc
// @Summary List events
// @Description Returns all events for admin and staff callers, and only the caller's own events for event owners. Newest first.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains an array of events"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /events [get]
func (c *EventController) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	events, err := c.Service.ListEvents(r.Context(), identity.UserID, identity.Role)
	if err != nil {
		writeDomainError(w, r.Context(), c.Logger, err, "failed to list events")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}

// Get godoc
// @Summary Get an event
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} helpers.APIResponse "data contains the event"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID} [get]
func (c *EventController) Get(w http.ResponseWriter, r *http.Request) {
	event, err := c.Service.GetEvent(r.Context(), r.PathValue("eventID"))
	if err != nil {
		writeDomainError(w, r.Context(), c.Logger, err, "failed to get event")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// Update godoc
// @Summary Update an event
// @Description Partially updates an event. Only the creator, admins, or staff may update.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param body body UpdateEventRequest true "Fields to change"
// @Success 200 {object} helpers.APIResponse "data contains the updated event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID} [patch]
func (c *EventController) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req UpdateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	event, err := c.Service.UpdateEvent(r.Context(), r.PathValue("eventID"), domain.UpdateEventInput{
		Title:        req.Title,
		Description:  req.Description,
		EventDate:    req.EventDate,
		EndDate:      req.EndDate,
		Location:     req.Location,
		MaxAttendees: req.MaxAttendees,
		IsPublic:     req.IsPublic,
	}, identity.UserID, identity.Role)
	if err != nil {
		writeDomainError(w, r.Context(), c.Logger, err, "failed to update event")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// UpdateStatus godoc
// @Summary Change an event's status
// @Description Moves the event to draft, published, cancelled, or completed. Only the creator, admins, or staff may change status.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param body body UpdateEventStatusRequest true "New status"
// @Success 200 {object} helpers.APIResponse "data contains the updated event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/status [patch]
func (c *EventController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req UpdateEventStatusRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	event, err := c.Service.UpdateEventStatus(r.Context(), r.PathValue("eventID"), domain.EventStatus(req.Status), identity.UserID, identity.Role)
	if err != nil {
		writeDomainError(w, r.Context(), c.Logger, err, "failed to update event status")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// Delete godoc
// @Summary Delete an event
// @Description Deletes the event and its RSVPs. Only the creator, admins, or staff may delete.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} helpers.APIResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID} [delete]
func (c *EventController) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := c.Service.DeleteEvent(r.Context(), r.PathValue("eventID"), identity.UserID, identity.Role); err != nil {
		writeDomainError(w, r.Context(), c.Logger, err, "failed to delete event")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"message": "event deleted"})
}

// ListPublic godoc
// @Summary List public events
// @Description Returns public, published events ordered by start time. No authentication required.
// @Tags public
// @Produce json
// @Success 200 {object} helpers.APIResponse "data contains an array of events"
// @Router /public/events [get]
func (c *EventController) ListPublic(w http.ResponseWriter, r *http.Request) {
	events, err := c.Service.ListPublicEvents(r.Context())
	if err != nil {
		writeDomainError(w, r.Context(), c.Logger, err, "failed to list public events")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}

// GetPublic godoc
// @Summary Get a public event
// @Description Returns the event only when it is public and published; anything else is reported as not found. No authentication required.
// @Tags public
// @Produce json
// @Param eventID path string true "Event ID"
// @Success 200 {object} helpers.APIResponse "data contains the event"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /public/events/{eventID} [get]
func (c *EventController) GetPublic(w http.ResponseWriter, r *http.Request) {
	event, err := c.Service.GetPublicEvent(r.Context(), r.PathValue("eventID"))
	if err != nil {
		writeDomainError(w, r.Context(), c.Logger, err, "failed to get event")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}
