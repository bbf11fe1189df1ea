// Package search projects the event list for the event and attendee search boxes.
package search

import (
	"strings"

	"github.com/innerventory/server/internal/models"
)

// Query is a search term plus the fields it applies to. Both flags may be set.
type Query struct {
	Term       string
	ByEvent    bool
	ByAttendee bool
}

// ParseQuery builds a Query from the "q" and "by" parameters. by is a comma-separated
// list of "event" and "attendee"; unknown entries are ignored.
func ParseQuery(term, by string) Query {
	q := Query{Term: term}
	for _, field := range strings.Split(by, ",") {
		switch strings.ToLower(strings.TrimSpace(field)) {
		case "event":
			q.ByEvent = true
		case "attendee":
			q.ByAttendee = true
		}
	}
	return q
}

// Filter returns the events visible for q. Input events are not modified.
//
// An event is visible when event search is on and its name contains the term, or
// when attendee search is on and at least one attendee name contains it. With
// attendee search on, visible events only carry their matching attendees. With
// neither flag set only an empty term matches, and it matches everything.
// Matching is case-insensitive; the term is used as given, spaces included.
func Filter(events []models.Event, q Query) []models.Event {
	out := make([]models.Event, 0, len(events))
	if !q.ByEvent && !q.ByAttendee {
		if q.Term == "" {
			out = append(out, events...)
		}
		return out
	}

	term := strings.ToLower(q.Term)
	for _, event := range events {
		nameMatches := q.ByEvent && strings.Contains(strings.ToLower(event.Name), term)

		var matched []models.Attendee
		if q.ByAttendee {
			matched = make([]models.Attendee, 0)
			for _, attendee := range event.Attendees {
				if strings.Contains(strings.ToLower(attendee.Name), term) {
					matched = append(matched, attendee)
				}
			}
		}

		if !nameMatches && len(matched) == 0 {
			continue
		}
		if q.ByAttendee {
			event.Attendees = matched
		}
		out = append(out, event)
	}
	return out
}
