package audit

import (
	"fmt"

	"github.com/innerventory/server/internal/models"
)

func EventCreated(e models.Event) string {
	return fmt.Sprintf("Created a new event: %s taking place on %s", e.Name, e.DisplayDate())
}

func EventUpdated(before, after models.Event) string {
	return fmt.Sprintf("Updated event: %s taking place on %s to %s taking place on %s",
		before.Name, before.DisplayDate(), after.Name, after.DisplayDate())
}

func EventDeleted(e models.Event) string {
	return fmt.Sprintf("Deleted event: %s taking place on %s", e.Name, e.DisplayDate())
}

func AttendeeAdded(e models.Event) string {
	return fmt.Sprintf("Added an attendee to event: %s on %s", e.Name, e.DisplayDate())
}

func AttendeeUpdated(e models.Event, before, after models.Attendee) string {
	return fmt.Sprintf("Updated attendee: %s (Size Before: %s, Size After: %s, Bra 1: %s, Bra 2: %s) "+
		"to New details - (Name: %s, Size Before: %s, Size After: %s, Bra 1: %s, Bra 2: %s) in Event: %s on %s",
		before.DisplayName(), orNA(before.SizeBefore), orNA(before.SizeAfter), orNA(before.BraSize1), orNA(before.BraSize2),
		orNA(after.Name), orNA(after.SizeBefore), orNA(after.SizeAfter), orNA(after.BraSize1), orNA(after.BraSize2),
		e.Name, e.DisplayDate())
}

func AttendeeDeleted(e models.Event, a models.Attendee) string {
	return fmt.Sprintf("Deleted Attendee: %s from event: %s on %s", a.DisplayName(), e.Name, e.DisplayDate())
}

func BraCreated(b models.Bra) string {
	return fmt.Sprintf("Added bra: %s (Qty: %d)", b.Label(), b.Quantity)
}

func BraUpdated(before, after models.Bra) string {
	return fmt.Sprintf("Updated bra: %s (Qty: %d) to %s (Qty: %d)", before.Label(), before.Quantity, after.Label(), after.Quantity)
}

func BraDeleted(b models.Bra) string {
	return fmt.Sprintf("Deleted bra: %s", b.Label())
}

func orNA(value string) string {
	if v := models.NormalizeField(value); v != "" {
		return v
	}
	return "N/A"
}
