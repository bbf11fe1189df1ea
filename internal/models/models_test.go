package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRemoveAttendeeAtKeepsOrder(t *testing.T) {
	attendees := []Attendee{{ID: "a", Name: "Ann"}, {ID: "b", Name: "Bea"}, {ID: "c", Name: "Cat"}, {ID: "d", Name: "Dee"}}

	out, removed, err := RemoveAttendeeAt(attendees, 1)
	require.NoError(t, err)
	require.Equal(t, "b", removed.ID)
	require.Len(t, out, 3)
	require.Equal(t, []string{"a", "c", "d"}, ids(out))
	// the input slice is left untouched
	require.Equal(t, []string{"a", "b", "c", "d"}, ids(attendees))
}

func TestRemoveAttendeeAtBounds(t *testing.T) {
	attendees := []Attendee{{ID: "a"}}
	_, _, err := RemoveAttendeeAt(attendees, 1)
	require.Error(t, err)
	_, _, err = RemoveAttendeeAt(attendees, -1)
	require.Error(t, err)

	out, removed, err := RemoveAttendeeAt(attendees, 0)
	require.NoError(t, err)
	require.Empty(t, out)
	require.Equal(t, "a", removed.ID)
}

func TestAttendeeSameDetails(t *testing.T) {
	a := Attendee{ID: "1", Name: "Jane ", BraSize1: " Sports 34B", Email: "jane@example.com"}
	b := Attendee{ID: "2", Name: "Jane", BraSize1: "Sports 34B", Email: " jane@example.com "}
	require.True(t, a.SameDetails(b))

	b.SizeAfter = "36C"
	require.False(t, a.SameDetails(b))
}

func TestBraLabelAndDisplay(t *testing.T) {
	bra := Bra{Type: "Sports", Size: "34B "}
	require.Equal(t, "Sports 34B", bra.Label())

	event := Event{Date: time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC)}
	require.Equal(t, "3/7/2024", event.DisplayDate())
	require.Equal(t, "2024-03-07", event.Day())

	require.Equal(t, "Unnamed", Attendee{Name: "  "}.DisplayName())
}

func TestNormalizeRole(t *testing.T) {
	require.Equal(t, RoleAdmin, NormalizeRole(" admin"))
	require.Equal(t, RoleAdmin, NormalizeRole("Admin"))
	require.Equal(t, RoleStaff, NormalizeRole("volunteer"))
	require.True(t, HasRole("ADMIN", RoleAdmin))
	require.False(t, HasRole("Staff", RoleAdmin))
	require.False(t, HasRole("Admin"))
}

func ids(attendees []Attendee) []string {
	out := make([]string, 0, len(attendees))
	for _, a := range attendees {
		out = append(out, a.ID)
	}
	return out
}
