package audit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/innerventory/server/internal/models"
)

func TestMessages(t *testing.T) {
	gala := models.Event{Name: "Gala", Date: time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)}
	jane := models.Attendee{Name: "Jane", BraSize1: "Sports 32A"}

	require.Equal(t, "Added an attendee to event: Gala on 3/9/2024", AttendeeAdded(gala))
	require.Equal(t, "Deleted Attendee: Unnamed from event: Gala on 3/9/2024", AttendeeDeleted(gala, models.Attendee{}))
	require.Equal(t,
		"Updated attendee: Jane (Size Before: N/A, Size After: N/A, Bra 1: Sports 32A, Bra 2: N/A) "+
			"to New details - (Name: Jane, Size Before: N/A, Size After: N/A, Bra 1: Lace 36C, Bra 2: N/A) in Event: Gala on 3/9/2024",
		AttendeeUpdated(gala, jane, models.Attendee{Name: "Jane", BraSize1: "Lace 36C"}))
}
