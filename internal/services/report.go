package services

import (
	"math"
	"sort"

	"eventease/internal/domain"
)

// recentRSVPLimit is how many of the latest RSVPs a report includes.
const recentRSVPLimit = 5

// ComputeStats counts RSVPs by status. Total always equals
// confirmed + pending + declined for the given snapshot.
func ComputeStats(rsvps []*domain.RSVP) domain.EventStats {
	stats := domain.EventStats{Total: len(rsvps)}
	for _, rsvp := range rsvps {
		switch rsvp.Status {
		case domain.RSVPStatusConfirmed:
			stats.Confirmed++
		case domain.RSVPStatusPending:
			stats.Pending++
		case domain.RSVPStatusDeclined:
			stats.Declined++
		}
	}
	return stats
}

// GenerateAttendeeReport derives the attendance summary for an event from
// its RSVP set. It has no side effects and never mutates its inputs.
//
// ConfirmationRate is 0 for an empty RSVP set. CapacityUsed is 0 when the
// event has no attendee limit and may exceed 100 when over capacity.
func GenerateAttendeeReport(rsvps []*domain.RSVP, event *domain.Event) *domain.AttendeeReport {
	stats := ComputeStats(rsvps)

	confirmationRate := 0
	if stats.Total > 0 {
		confirmationRate = int(math.Round(float64(stats.Confirmed) / float64(stats.Total) * 100))
	}
	capacityUsed := 0
	if event != nil && event.MaxAttendees != nil && *event.MaxAttendees > 0 {
		capacityUsed = int(math.Round(float64(stats.Confirmed) / float64(*event.MaxAttendees) * 100))
	}

	recent := make([]*domain.RSVP, len(rsvps))
	copy(recent, rsvps)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].CreatedAt.After(recent[j].CreatedAt)
	})
	if len(recent) > recentRSVPLimit {
		recent = recent[:recentRSVPLimit]
	}

	return &domain.AttendeeReport{
		Stats:            stats,
		ConfirmationRate: confirmationRate,
		CapacityUsed:     capacityUsed,
		RecentRSVPs:      recent,
	}
}
