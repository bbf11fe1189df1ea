package search

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/innerventory/server/internal/models"
)

func fixture() []models.Event {
	return []models.Event{
		{ID: "1", Name: "Spring Gala", Attendees: []models.Attendee{{Name: "Jane Doe"}, {Name: "Ann"}}},
		{ID: "2", Name: "Fitting Day", Attendees: []models.Attendee{{Name: "Bea"}, {Name: "Gala Jones"}}},
		{ID: "3", Name: "Winter gala"},
	}
}

func ids(events []models.Event) []string {
	out := make([]string, 0, len(events))
	for _, e := range events {
		out = append(out, e.ID)
	}
	return out
}

func TestFilterByEvent(t *testing.T) {
	got := Filter(fixture(), Query{Term: "GALA", ByEvent: true})
	require.Equal(t, []string{"1", "3"}, ids(got))
	require.Len(t, got[0].Attendees, 2)
}

func TestFilterByAttendee(t *testing.T) {
	events := fixture()
	got := Filter(events, Query{Term: "jane", ByAttendee: true})
	require.Equal(t, []string{"1"}, ids(got))
	require.Equal(t, []models.Attendee{{Name: "Jane Doe"}}, got[0].Attendees)
	require.Len(t, events[0].Attendees, 2)
}

func TestFilterByAttendeeEmptyTermDropsEmptyEvents(t *testing.T) {
	got := Filter(fixture(), Query{ByAttendee: true})
	require.Equal(t, []string{"1", "2"}, ids(got))
}

func TestFilterByEventAndAttendee(t *testing.T) {
	got := Filter(fixture(), Query{Term: "gala", ByEvent: true, ByAttendee: true})
	require.Equal(t, []string{"1", "2", "3"}, ids(got))
	require.Empty(t, got[0].Attendees)
	require.Equal(t, []models.Attendee{{Name: "Gala Jones"}}, got[1].Attendees)
	require.Empty(t, got[2].Attendees)
}

func TestFilterWithoutFields(t *testing.T) {
	require.Len(t, Filter(fixture(), Query{}), 3)
	require.Empty(t, Filter(fixture(), Query{Term: "gala"}))
	require.Empty(t, Filter(fixture(), Query{Term: "  "}))
}

func TestParseQuery(t *testing.T) {
	require.Equal(t, Query{Term: " x ", ByEvent: true}, ParseQuery(" x ", " Event "))
	require.Equal(t, Query{Term: "x", ByEvent: true, ByAttendee: true}, ParseQuery("x", "attendee,event"))
	require.Equal(t, Query{Term: "x"}, ParseQuery("x", "bras"))
}
