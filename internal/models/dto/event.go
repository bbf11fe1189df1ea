package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/innerventory/server/internal/models"
)

type EventRequest struct {
	Name      string             `json:"name" validate:"required"`
	Date      string             `json:"date" validate:"required"`
	Attendees *[]AttendeeRequest `json:"attendees,omitempty"`
}

type AttendeeRequest struct {
	ID          string `json:"_id,omitempty"`
	Name        string `json:"name"`
	SizeBefore  string `json:"sizeBefore"`
	SizeAfter   string `json:"sizeAfter"`
	BraSize1    string `json:"braSize1"`
	BraSize2    string `json:"braSize2"`
	FitterName  string `json:"fitterName"`
	PhoneNumber string `json:"phoneNumber"`
	Email       string `json:"email" validate:"omitempty,email"`
}

// Model converts the request into a domain attendee.
func (r AttendeeRequest) Model() models.Attendee {
	return models.Attendee{
		ID:          strings.TrimSpace(r.ID),
		Name:        r.Name,
		SizeBefore:  r.SizeBefore,
		SizeAfter:   r.SizeAfter,
		BraSize1:    r.BraSize1,
		BraSize2:    r.BraSize2,
		FitterName:  r.FitterName,
		PhoneNumber: r.PhoneNumber,
		Email:       r.Email,
	}
}

// ParseEventDate accepts either a calendar day (2006-01-02) or an RFC3339 timestamp.
func ParseEventDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if day, err := time.Parse(models.DateLayout, value); err == nil {
		return day, nil
	}
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q must be YYYY-MM-DD or RFC3339", value)
	}
	return ts.UTC(), nil
}
