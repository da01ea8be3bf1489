package domain

// AttendeeReport is the derived attendance summary for one event.
// ConfirmationRate and CapacityUsed are whole percentages; CapacityUsed may
// exceed 100 when an event is over capacity.
// swagger:model AttendeeReport
type AttendeeReport struct {
	Stats            EventStats `json:"stats"`
	ConfirmationRate int        `json:"confirmation_rate"`
	CapacityUsed     int        `json:"capacity_used"`
	RecentRSVPs      []*RSVP    `json:"recent_rsvps"`
}
