package services

import (
	"regexp"
	"strings"

	"eventease/internal/domain"
)

var csvHeader = []string{"Name", "Email", "Status", "Notes", "RSVP Date"}

var filenameSafe = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// GenerateAttendeeCSV renders an event's RSVPs as CSV: a fixed header row,
// every field double-quote wrapped, status with a capitalized first letter,
// and the RSVP date in short M/D/YYYY form. Rows are joined with "\n" and no
// trailing newline, matching the original export byte for byte.
func GenerateAttendeeCSV(rsvps []*domain.RSVP) string {
	rows := make([][]string, 0, len(rsvps)+1)
	rows = append(rows, csvHeader)
	for _, rsvp := range rsvps {
		notes := ""
		if rsvp.Notes != nil {
			notes = *rsvp.Notes
		}
		rows = append(rows, []string{
			rsvp.AttendeeName,
			rsvp.AttendeeEmail,
			capitalize(string(rsvp.Status)),
			notes,
			rsvp.CreatedAt.Format("1/2/2006"),
		})
	}

	var b strings.Builder
	for i, row := range rows {
		if i > 0 {
			b.WriteString("\n")
		}
		for j, field := range row {
			if j > 0 {
				b.WriteString(",")
			}
			b.WriteString(`"`)
			b.WriteString(strings.ReplaceAll(field, `"`, `""`))
			b.WriteString(`"`)
		}
	}
	return b.String()
}

// AttendeeCSVFilename slugs the event title into the download filename,
// e.g. "Launch Party!" -> "launch_party_attendees.csv".
func AttendeeCSVFilename(event *domain.Event) string {
	slug := strings.ToLower(filenameSafe.ReplaceAllString(event.Title, "_"))
	slug = strings.Trim(slug, "_")
	if slug == "" {
		slug = "event"
	}
	return slug + "_attendees.csv"
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
