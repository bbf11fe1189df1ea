package models

import (
	"fmt"
	"time"
)

// DateLayout is the calendar-day format events are submitted with.
const DateLayout = "2006-01-02"

// Event is a scheduled fitting session and its ordered attendee list.
type Event struct {
	ID        string     `json:"_id"`
	Name      string     `json:"name"`
	Date      time.Time  `json:"date"`
	Attendees []Attendee `json:"attendees"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Day returns the event date truncated to a UTC calendar day.
func (e Event) Day() string {
	return e.Date.UTC().Format(DateLayout)
}

// DisplayDate renders the date the way the action log has always shown it (M/D/YYYY).
func (e Event) DisplayDate() string {
	return e.Date.UTC().Format("1/2/2006")
}

// Attendee is a person fitted at an event.
type Attendee struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	SizeBefore  string `json:"sizeBefore"`
	SizeAfter   string `json:"sizeAfter"`
	BraSize1    string `json:"braSize1"`
	BraSize2    string `json:"braSize2"`
	FitterName  string `json:"fitterName"`
	PhoneNumber string `json:"phoneNumber"`
	Email       string `json:"email"`
}

// Normalized returns a copy with every text field trimmed. The ID is kept as is.
func (a Attendee) Normalized() Attendee {
	return Attendee{
		ID:          a.ID,
		Name:        NormalizeField(a.Name),
		SizeBefore:  NormalizeField(a.SizeBefore),
		SizeAfter:   NormalizeField(a.SizeAfter),
		BraSize1:    NormalizeField(a.BraSize1),
		BraSize2:    NormalizeField(a.BraSize2),
		FitterName:  NormalizeField(a.FitterName),
		PhoneNumber: NormalizeField(a.PhoneNumber),
		Email:       NormalizeField(a.Email),
	}
}

// SameDetails reports whether two attendees are identical once normalized, ignoring IDs.
func (a Attendee) SameDetails(other Attendee) bool {
	left, right := a.Normalized(), other.Normalized()
	left.ID, right.ID = "", ""
	return left == right
}

// Selections returns the two bra slots in order.
func (a Attendee) Selections() [2]string {
	return [2]string{a.BraSize1, a.BraSize2}
}

// DisplayName falls back to "Unnamed" for blank names.
func (a Attendee) DisplayName() string {
	if name := NormalizeField(a.Name); name != "" {
		return name
	}
	return "Unnamed"
}

// RemoveAttendeeAt returns a new slice without the entry at index, keeping the order of the rest.
func RemoveAttendeeAt(attendees []Attendee, index int) ([]Attendee, Attendee, error) {
	if index < 0 || index >= len(attendees) {
		return attendees, Attendee{}, fmt.Errorf("attendee index %d out of range [0,%d)", index, len(attendees))
	}
	removed := attendees[index]
	out := make([]Attendee, 0, len(attendees)-1)
	out = append(out, attendees[:index]...)
	out = append(out, attendees[index+1:]...)
	return out, removed, nil
}

// IndexOfAttendee returns the position of the attendee with id, or -1.
func IndexOfAttendee(attendees []Attendee, id string) int {
	for i, attendee := range attendees {
		if attendee.ID == id {
			return i
		}
	}
	return -1
}
