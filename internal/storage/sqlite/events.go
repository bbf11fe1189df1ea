package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/innerventory/server/internal/models"
)

type eventStore struct {
	db querier
}

const (
	eventColumns    = `id, name, event_date, created_at, updated_at`
	attendeeColumns = `id, name, size_before, size_after, bra_size_1, bra_size_2, fitter_name, phone_number, email`
)

func (s *eventStore) List(ctx context.Context) ([]models.Event, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+eventColumns+` FROM events ORDER BY event_date, created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	events := make([]models.Event, 0)
	index := make(map[string]int)
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		index[event.ID] = len(events)
		events = append(events, event)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	attendeeRows, err := s.db.QueryContext(ctx, `SELECT event_id, `+attendeeColumns+` FROM attendees ORDER BY event_id, position`)
	if err != nil {
		return nil, fmt.Errorf("list attendees: %w", err)
	}
	defer attendeeRows.Close()
	for attendeeRows.Next() {
		var eventID string
		var attendee models.Attendee
		if err := attendeeRows.Scan(append([]any{&eventID}, attendeeFields(&attendee)...)...); err != nil {
			return nil, err
		}
		if i, ok := index[eventID]; ok {
			events[i].Attendees = append(events[i].Attendees, attendee)
		}
	}
	return events, attendeeRows.Err()
}

func (s *eventStore) Get(ctx context.Context, id string) (models.Event, error) {
	event, err := scanEvent(s.db.QueryRowContext(ctx, `SELECT `+eventColumns+` FROM events WHERE id = ?`, id))
	if err != nil {
		return models.Event{}, err
	}
	event.Attendees, err = s.attendees(ctx, id)
	if err != nil {
		return models.Event{}, err
	}
	return event, nil
}

// GetForUpdate is a plain Get: the single shared connection already makes transactions exclusive.
func (s *eventStore) GetForUpdate(ctx context.Context, id string) (models.Event, error) {
	return s.Get(ctx, id)
}

func (s *eventStore) attendees(ctx context.Context, eventID string) ([]models.Attendee, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+attendeeColumns+` FROM attendees WHERE event_id = ? ORDER BY position`, eventID)
	if err != nil {
		return nil, fmt.Errorf("list attendees: %w", err)
	}
	defer rows.Close()

	attendees := make([]models.Attendee, 0)
	for rows.Next() {
		var attendee models.Attendee
		if err := rows.Scan(attendeeFields(&attendee)...); err != nil {
			return nil, err
		}
		attendees = append(attendees, attendee)
	}
	return attendees, rows.Err()
}

func (s *eventStore) Create(ctx context.Context, event models.Event) (models.Event, error) {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	stamp := now()
	const query = `INSERT INTO events (id, name, event_date, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`
	if _, err := s.db.ExecContext(ctx, query, event.ID, event.Name, formatTime(event.Date), stamp, stamp); err != nil {
		return models.Event{}, translateError(err)
	}
	if _, err := s.insertAttendees(ctx, event.ID, event.Attendees); err != nil {
		return models.Event{}, err
	}
	return s.Get(ctx, event.ID)
}

func (s *eventStore) Replace(ctx context.Context, event models.Event) (models.Event, error) {
	const query = `UPDATE events SET name = ?, event_date = ?, updated_at = ? WHERE id = ?`
	result, err := s.db.ExecContext(ctx, query, event.Name, formatTime(event.Date), now(), event.ID)
	if err != nil {
		return models.Event{}, translateError(err)
	}
	if err := requireAffected(result); err != nil {
		return models.Event{}, err
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM attendees WHERE event_id = ?`, event.ID); err != nil {
		return models.Event{}, fmt.Errorf("clear attendees: %w", err)
	}
	if _, err := s.insertAttendees(ctx, event.ID, event.Attendees); err != nil {
		return models.Event{}, err
	}
	return s.Get(ctx, event.ID)
}

func (s *eventStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	return requireAffected(result)
}

func (s *eventStore) AddAttendee(ctx context.Context, eventID string, attendee models.Attendee) (models.Attendee, error) {
	if err := s.touch(ctx, eventID); err != nil {
		return models.Attendee{}, err
	}
	var next int
	if err := s.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(position) + 1, 0) FROM attendees WHERE event_id = ?`, eventID).Scan(&next); err != nil {
		return models.Attendee{}, fmt.Errorf("next attendee position: %w", err)
	}
	return s.insertAttendee(ctx, eventID, next, attendee)
}

func (s *eventStore) UpdateAttendee(ctx context.Context, eventID string, attendee models.Attendee) error {
	const query = `
		UPDATE attendees SET name = ?, size_before = ?, size_after = ?, bra_size_1 = ?,
			bra_size_2 = ?, fitter_name = ?, phone_number = ?, email = ?
		WHERE event_id = ? AND id = ?`
	result, err := s.db.ExecContext(ctx, query, attendee.Name, attendee.SizeBefore, attendee.SizeAfter, attendee.BraSize1,
		attendee.BraSize2, attendee.FitterName, attendee.PhoneNumber, attendee.Email, eventID, attendee.ID)
	if err != nil {
		return fmt.Errorf("update attendee: %w", translateError(err))
	}
	if err := requireAffected(result); err != nil {
		return err
	}
	return s.touch(ctx, eventID)
}

func (s *eventStore) DeleteAttendee(ctx context.Context, eventID, attendeeID string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM attendees WHERE event_id = ? AND id = ?`, eventID, attendeeID)
	if err != nil {
		return fmt.Errorf("delete attendee: %w", err)
	}
	if err := requireAffected(result); err != nil {
		return err
	}
	return s.touch(ctx, eventID)
}

func (s *eventStore) touch(ctx context.Context, eventID string) error {
	result, err := s.db.ExecContext(ctx, `UPDATE events SET updated_at = ? WHERE id = ?`, now(), eventID)
	if err != nil {
		return fmt.Errorf("touch event: %w", err)
	}
	return requireAffected(result)
}

func (s *eventStore) insertAttendees(ctx context.Context, eventID string, attendees []models.Attendee) ([]models.Attendee, error) {
	out := make([]models.Attendee, 0, len(attendees))
	for position, attendee := range attendees {
		inserted, err := s.insertAttendee(ctx, eventID, position, attendee)
		if err != nil {
			return nil, err
		}
		out = append(out, inserted)
	}
	return out, nil
}

func (s *eventStore) insertAttendee(ctx context.Context, eventID string, position int, attendee models.Attendee) (models.Attendee, error) {
	if attendee.ID == "" {
		attendee.ID = uuid.NewString()
	}
	const query = `
		INSERT INTO attendees (id, event_id, position, name, size_before, size_after, bra_size_1,
			bra_size_2, fitter_name, phone_number, email)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, query, attendee.ID, eventID, position, attendee.Name, attendee.SizeBefore,
		attendee.SizeAfter, attendee.BraSize1, attendee.BraSize2, attendee.FitterName, attendee.PhoneNumber, attendee.Email)
	if err != nil {
		return models.Attendee{}, fmt.Errorf("insert attendee: %w", translateError(err))
	}
	return attendee, nil
}

func scanEvent(row scanner) (models.Event, error) {
	var event models.Event
	var date, createdAt, updatedAt string
	if err := row.Scan(&event.ID, &event.Name, &date, &createdAt, &updatedAt); err != nil {
		return models.Event{}, translateError(err)
	}
	var err error
	for _, field := range []struct {
		raw string
		dst *time.Time
	}{{date, &event.Date}, {createdAt, &event.CreatedAt}, {updatedAt, &event.UpdatedAt}} {
		if *field.dst, err = parseTime(field.raw); err != nil {
			return models.Event{}, err
		}
	}
	event.Attendees = []models.Attendee{}
	return event, nil
}

func attendeeFields(a *models.Attendee) []any {
	return []any{&a.ID, &a.Name, &a.SizeBefore, &a.SizeAfter, &a.BraSize1, &a.BraSize2, &a.FitterName, &a.PhoneNumber, &a.Email}
}
