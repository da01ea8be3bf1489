package controllers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"eventease/internal/delivery/http/helpers"
	"eventease/internal/delivery/http/middleware"
	"eventease/internal/domain"
	"eventease/internal/services"
)

// CreateRSVPRequest is the request body for a public RSVP submission.
// Status cannot be supplied; accepted submissions are stored as confirmed.
type CreateRSVPRequest struct {
	AttendeeName  string `json:"attendee_name"`
	AttendeeEmail string `json:"attendee_email"`
	Notes         string `json:"notes"`
}

// Validate implements Validator.
func (c CreateRSVPRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.AttendeeName) == "" {
		errs = append(errs, "attendee_name is required")
	}
	email := strings.TrimSpace(strings.ToLower(c.AttendeeEmail))
	if email == "" {
		errs = append(errs, "attendee_email is required")
	} else if !emailRegexp.MatchString(email) {
		errs = append(errs, "invalid email format")
	}
	return errs
}

// UpdateRSVPStatusRequest is the request body for PATCH /rsvps/{rsvpID}/status.
type UpdateRSVPStatusRequest struct {
	Status string `json:"status"`
}

// Validate implements Validator.
func (u UpdateRSVPStatusRequest) Validate() []string {
	if !domain.ValidRSVPStatus(domain.RSVPStatus(u.Status)) {
		return []string{"status must be \"pending\", \"confirmed\", or \"declined\""}
	}
	return nil
}

type RSVPController struct {
	Logger       *slog.Logger
	Service      domain.RSVPService
	EventService domain.EventService
}

func NewRSVPController(logger *slog.Logger, svc domain.RSVPService, eventSvc domain.EventService) *RSVPController {
	return &RSVPController{
		Logger:       logger,
		Service:      svc,
		EventService: eventSvc,
	}
}

// SubmitPublic godoc
// @Summary Submit a public RSVP
// @Description Registers an attendee for a public published event. Duplicate emails and full events are rejected. No authentication required.
// @Tags public
// @Accept json
// @Produce json
// @Param eventID path string true "Event ID"
// @Param body body CreateRSVPRequest true "Attendee data"
// @Success 201 {object} helpers.APIResponse "data contains the created RSVP"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (already registered or event full)"
// @Router /public/events/{eventID}/rsvps [post]
func (c *RSVPController) SubmitPublic(w http.ResponseWriter, r *http.Request) {
	var req CreateRSVPRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	rsvp, err := c.Service.SubmitPublicRSVP(r.Context(), r.PathValue("eventID"), domain.CreateRSVPInput{
		AttendeeName:  req.AttendeeName,
		AttendeeEmail: req.AttendeeEmail,
		Notes:         req.Notes,
	})
	if err != nil {
		writeDomainError(w, r.Context(), c.Logger, err, "failed to submit RSVP")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, rsvp)
}

// LookupPublic godoc
// @Summary Look up an RSVP by email
// @Description Lets the public event page tell a visitor whether they have already registered. No authentication required.
// @Tags public
// @Produce json
// @Param eventID path string true "Event ID"
// @Param email query string true "Attendee email"
// @Success 200 {object} helpers.APIResponse "data contains the RSVP"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /public/events/{eventID}/rsvps/lookup [get]
func (c *RSVPController) LookupPublic(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.URL.Query().Get("email"))
	if email == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "email query parameter is required")
		return
	}
	rsvp, err := c.Service.LookupByEmail(r.Context(), r.PathValue("eventID"), email)
	if err != nil {
		writeDomainError(w, r.Context(), c.Logger, err, "failed to look up RSVP")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, rsvp)
}

// ListForEvent godoc
// @Summary List an event's RSVPs
// @Description Returns the event's RSVPs newest first. Only the event's creator, admins, or staff may list.
// @Tags rsvps
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} helpers.APIResponse "data contains an array of RSVPs"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/rsvps [get]
func (c *RSVPController) ListForEvent(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	rsvps, err := c.Service.ListForEvent(r.Context(), r.PathValue("eventID"), identity.UserID, identity.Role)
	if err != nil {
		writeDomainError(w, r.Context(), c.Logger, err, "failed to list RSVPs")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, rsvps)
}

// Stats godoc
// @Summary Get an event's RSVP counts
// @Description Returns total, confirmed, pending, and declined counts. Counts are zero when storage is not provisioned yet.
// @Tags rsvps
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} helpers.APIResponse "data contains the stats"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /events/{eventID}/rsvps/stats [get]
func (c *RSVPController) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := c.Service.Stats(r.Context(), r.PathValue("eventID"))
	if err != nil {
		writeDomainError(w, r.Context(), c.Logger, err, "failed to get RSVP stats")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, stats)
}

// Report godoc
// @Summary Get an event's attendee report
// @Description Returns RSVP counts, the confirmation rate, capacity usage, and the five most recent RSVPs. Only the event's creator, admins, or staff may view it.
// @Tags rsvps
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} helpers.APIResponse "data contains the report"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/report [get]
func (c *RSVPController) Report(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	eventID := r.PathValue("eventID")
	rsvps, err := c.Service.ListForEvent(r.Context(), eventID, identity.UserID, identity.Role)
	if err != nil {
		writeDomainError(w, r.Context(), c.Logger, err, "failed to generate report")
		return
	}
	event, err := c.EventService.GetEvent(r.Context(), eventID)
	if err != nil {
		writeDomainError(w, r.Context(), c.Logger, err, "failed to generate report")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, services.GenerateAttendeeReport(rsvps, event))
}

// Export godoc
// @Summary Export an event's attendees as CSV
// @Description Streams the event's RSVPs as a CSV attachment. Only the event's creator, admins, or staff may export.
// @Tags rsvps
// @Produce text/csv
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {string} string "CSV body"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/rsvps/export [get]
func (c *RSVPController) Export(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	eventID := r.PathValue("eventID")
	rsvps, err := c.Service.ListForEvent(r.Context(), eventID, identity.UserID, identity.Role)
	if err != nil {
		writeDomainError(w, r.Context(), c.Logger, err, "failed to export attendees")
		return
	}
	event, err := c.EventService.GetEvent(r.Context(), eventID)
	if err != nil {
		writeDomainError(w, r.Context(), c.Logger, err, "failed to export attendees")
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", services.AttendeeCSVFilename(event)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(services.GenerateAttendeeCSV(rsvps)))
}

// UpdateStatus godoc
// @Summary Change an RSVP's status
// @Description Moves an RSVP to pending, confirmed, or declined. Only the event's creator, admins, or staff may change it.
// @Tags rsvps
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param rsvpID path string true "RSVP ID"
// @Param body body UpdateRSVPStatusRequest true "New status"
// @Success 200 {object} helpers.APIResponse "data contains the updated RSVP"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /rsvps/{rsvpID}/status [patch]
func (c *RSVPController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req UpdateRSVPStatusRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	rsvp, err := c.Service.UpdateStatus(r.Context(), r.PathValue("rsvpID"), domain.RSVPStatus(req.Status), identity.UserID, identity.Role)
	if err != nil {
		writeDomainError(w, r.Context(), c.Logger, err, "failed to update RSVP status")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, rsvp)
}

// Delete godoc
// @Summary Delete an RSVP
// @Description Removes an attendee's RSVP. Only the event's creator, admins, or staff may delete it.
// @Tags rsvps
// @Produce json
// @Security BearerAuth
// @Param rsvpID path string true "RSVP ID"
// @Success 200 {object} helpers.APIResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /rsvps/{rsvpID} [delete]
func (c *RSVPController) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := c.Service.Delete(r.Context(), r.PathValue("rsvpID"), identity.UserID, identity.Role); err != nil {
		writeDomainError(w, r.Context(), c.Logger, err, "failed to delete RSVP")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"message": "rsvp deleted"})
}
