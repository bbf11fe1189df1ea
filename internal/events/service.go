// Package events implements event and attendee management on top of storage.Repository.
package events

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/innerventory/server/internal/audit"
	"github.com/innerventory/server/internal/inventory"
	"github.com/innerventory/server/internal/models"
	"github.com/innerventory/server/internal/search"
	"github.com/innerventory/server/internal/storage"
)

// ErrInvalidEvent is returned when an event is missing its name or date.
var ErrInvalidEvent = errors.New("event name and date are required")

// Update is a full-document edit. A nil Attendees leaves the attendee list alone.
type Update struct {
	Name      string
	Date      time.Time
	Attendees *[]models.Attendee
}

// AttendeeResult is the outcome of an attendee edit.
type AttendeeResult struct {
	Attendee    models.Attendee        `json:"attendee"`
	Changed     bool                   `json:"changed"`
	Adjustments []inventory.Adjustment `json:"adjustments"`
}

// Service manages events and their attendees. Every mutation is audited in its own transaction.
type Service struct {
	repo       storage.Repository
	audit      *audit.Logger
	reconciler *inventory.Reconciler
	logger     zerolog.Logger
}

// NewService builds an event service; reconciler moves stock when attendee selections change.
func NewService(repo storage.Repository, auditLog *audit.Logger, reconciler *inventory.Reconciler, logger zerolog.Logger) *Service {
	return &Service{
		repo:       repo,
		audit:      auditLog,
		reconciler: reconciler,
		logger:     logger.With().Str("component", "events").Logger(),
	}
}

// List returns the events visible for q.
func (s *Service) List(ctx context.Context, q search.Query) ([]models.Event, error) {
	all, err := s.repo.Events().List(ctx)
	if err != nil {
		return nil, err
	}
	return search.Filter(all, q), nil
}

// Get returns one event with its attendees in stored order.
func (s *Service) Get(ctx context.Context, id string) (models.Event, error) {
	return s.repo.Events().Get(ctx, id)
}

// Create stores a new event. Incoming attendee IDs are discarded.
func (s *Service) Create(ctx context.Context, userID string, event models.Event) (models.Event, error) {
	event.ID = ""
	event.Name = strings.TrimSpace(event.Name)
	if event.Name == "" || event.Date.IsZero() {
		return models.Event{}, ErrInvalidEvent
	}
	event.Attendees = freshAttendees(nil, event.Attendees)

	var created models.Event
	err := s.repo.WithTx(ctx, func(ctx context.Context, repo storage.Repository) error {
		var err error
		if created, err = repo.Events().Create(ctx, event); err != nil {
			return err
		}
		_, err = s.audit.Record(ctx, repo.Audit(), userID, audit.EventCreated(created))
		return err
	})
	return created, err
}

// Update replaces the event. Nothing is written when the name, day and attendee list
// (when supplied) all match what is stored. Attendees kept by ID whose bra selections
// change move stock exactly as an attendee edit does, inside the same transaction.
func (s *Service) Update(ctx context.Context, userID, id string, update Update) (models.Event, error) {
	update.Name = strings.TrimSpace(update.Name)
	if update.Name == "" || update.Date.IsZero() {
		return models.Event{}, ErrInvalidEvent
	}

	var result models.Event
	err := s.repo.WithTx(ctx, func(ctx context.Context, repo storage.Repository) error {
		current, err := repo.Events().GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		next := models.Event{ID: current.ID, Name: update.Name, Date: update.Date, Attendees: current.Attendees}
		if update.Attendees != nil {
			next.Attendees = freshAttendees(current.Attendees, *update.Attendees)
		}
		if next.Name == current.Name && next.Day() == current.Day() && sameAttendees(current.Attendees, next.Attendees) {
			s.logger.Debug().Str("event_id", id).Msg("event unchanged, skipping write")
			result = current
			return nil
		}

		if result, err = repo.Events().Replace(ctx, next); err != nil {
			return err
		}
		for _, after := range next.Attendees {
			idx := models.IndexOfAttendee(current.Attendees, after.ID)
			if after.ID == "" || idx < 0 {
				continue
			}
			before := current.Attendees[idx]
			if before.Normalized().Selections() == after.Selections() {
				continue
			}
			if _, err := s.reconciler.Reconcile(ctx, repo.Bras(), before, after); err != nil {
				return err
			}
		}
		_, err = s.audit.Record(ctx, repo.Audit(), userID, audit.EventUpdated(current, result))
		return err
	})
	return result, err
}

// Delete removes the event and its attendees. Stock is not moved.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	return s.repo.WithTx(ctx, func(ctx context.Context, repo storage.Repository) error {
		current, err := repo.Events().GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := repo.Events().Delete(ctx, id); err != nil {
			return err
		}
		_, err = s.audit.Record(ctx, repo.Audit(), userID, audit.EventDeleted(current))
		return err
	})
}

// AddAttendee appends attendee to the event. Stock is not moved.
func (s *Service) AddAttendee(ctx context.Context, userID, eventID string, attendee models.Attendee) (models.Attendee, error) {
	attendee = attendee.Normalized()
	attendee.ID = ""

	var added models.Attendee
	err := s.repo.WithTx(ctx, func(ctx context.Context, repo storage.Repository) error {
		event, err := repo.Events().GetForUpdate(ctx, eventID)
		if err != nil {
			return err
		}
		if added, err = repo.Events().AddAttendee(ctx, eventID, attendee); err != nil {
			return err
		}
		_, err = s.audit.Record(ctx, repo.Audit(), userID, audit.AttendeeAdded(event))
		return err
	})
	return added, err
}

// UpdateAttendee replaces an attendee's details and moves bra stock to match the
// new selections, all in one transaction. Unchanged details write nothing.
func (s *Service) UpdateAttendee(ctx context.Context, userID, eventID, attendeeID string, details models.Attendee) (AttendeeResult, error) {
	next := details.Normalized()
	next.ID = attendeeID

	var result AttendeeResult
	err := s.repo.WithTx(ctx, func(ctx context.Context, repo storage.Repository) error {
		event, err := repo.Events().GetForUpdate(ctx, eventID)
		if err != nil {
			return err
		}
		idx := models.IndexOfAttendee(event.Attendees, attendeeID)
		if idx < 0 {
			return fmt.Errorf("attendee %s: %w", attendeeID, storage.ErrNotFound)
		}
		current := event.Attendees[idx]
		if current.SameDetails(next) {
			result = AttendeeResult{Attendee: current}
			return nil
		}

		if err := repo.Events().UpdateAttendee(ctx, eventID, next); err != nil {
			return err
		}
		plan, err := s.reconciler.Reconcile(ctx, repo.Bras(), current, next)
		if err != nil {
			return err
		}
		if _, err := s.audit.Record(ctx, repo.Audit(), userID, audit.AttendeeUpdated(event, current, next)); err != nil {
			return err
		}
		result = AttendeeResult{Attendee: next, Changed: true, Adjustments: plan}
		return nil
	})
	if err != nil {
		return AttendeeResult{}, err
	}
	if result.Adjustments == nil {
		result.Adjustments = []inventory.Adjustment{}
	}
	return result, nil
}

// DeleteAttendee removes the attendee with attendeeID. Stock is not moved.
func (s *Service) DeleteAttendee(ctx context.Context, userID, eventID, attendeeID string) error {
	return s.deleteAttendee(ctx, userID, eventID, func(attendees []models.Attendee) (models.Attendee, error) {
		idx := models.IndexOfAttendee(attendees, attendeeID)
		if idx < 0 {
			return models.Attendee{}, fmt.Errorf("attendee %s: %w", attendeeID, storage.ErrNotFound)
		}
		return attendees[idx], nil
	})
}

// DeleteAttendeeAt removes the attendee at position index of the stored list.
func (s *Service) DeleteAttendeeAt(ctx context.Context, userID, eventID string, index int) error {
	return s.deleteAttendee(ctx, userID, eventID, func(attendees []models.Attendee) (models.Attendee, error) {
		_, removed, err := models.RemoveAttendeeAt(attendees, index)
		if err != nil {
			return models.Attendee{}, fmt.Errorf("%v: %w", err, storage.ErrNotFound)
		}
		return removed, nil
	})
}

func (s *Service) deleteAttendee(ctx context.Context, userID, eventID string, pick func([]models.Attendee) (models.Attendee, error)) error {
	return s.repo.WithTx(ctx, func(ctx context.Context, repo storage.Repository) error {
		event, err := repo.Events().GetForUpdate(ctx, eventID)
		if err != nil {
			return err
		}
		target, err := pick(event.Attendees)
		if err != nil {
			return err
		}
		if err := repo.Events().DeleteAttendee(ctx, eventID, target.ID); err != nil {
			return err
		}
		_, err = s.audit.Record(ctx, repo.Audit(), userID, audit.AttendeeDeleted(event, target))
		return err
	})
}

// sameAttendees reports whether both lists hold the same attendees, by ID and details, in the same order.
func sameAttendees(a, b []models.Attendee) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ID != b[i].ID || !a[i].SameDetails(b[i]) {
			return false
		}
	}
	return true
}

// freshAttendees normalizes incoming attendees. IDs already present in current
// are kept once; anything else is cleared so the store assigns a new one.
func freshAttendees(current, incoming []models.Attendee) []models.Attendee {
	known := make(map[string]bool, len(current))
	for _, attendee := range current {
		known[attendee.ID] = true
	}
	out := make([]models.Attendee, 0, len(incoming))
	for _, attendee := range incoming {
		attendee = attendee.Normalized()
		if !known[attendee.ID] {
			attendee.ID = ""
		}
		delete(known, attendee.ID)
		out = append(out, attendee)
	}
	return out
}
