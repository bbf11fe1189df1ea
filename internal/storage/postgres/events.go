package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/innerventory/server/internal/models"
	"github.com/innerventory/server/internal/storage"
)

type eventStore struct {
	db querier
}

const (
	eventColumns    = `id, name, event_date, created_at, updated_at`
	attendeeColumns = `id, name, size_before, size_after, bra_size_1, bra_size_2, fitter_name, phone_number, email`
)

func (s *eventStore) List(ctx context.Context) ([]models.Event, error) {
	rows, err := s.db.Query(ctx, `SELECT `+eventColumns+` FROM events ORDER BY event_date, created_at, id`)
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

	attendeeRows, err := s.db.Query(ctx, `SELECT event_id, `+attendeeColumns+` FROM attendees ORDER BY event_id, position`)
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
	return s.get(ctx, id, false)
}

func (s *eventStore) GetForUpdate(ctx context.Context, id string) (models.Event, error) {
	return s.get(ctx, id, true)
}

func (s *eventStore) get(ctx context.Context, id string, lock bool) (models.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	if lock {
		query += ` FOR UPDATE`
	}
	event, err := scanEvent(s.db.QueryRow(ctx, query, id))
	if err != nil {
		return models.Event{}, err
	}
	event.Attendees, err = s.attendees(ctx, id)
	if err != nil {
		return models.Event{}, err
	}
	return event, nil
}

func (s *eventStore) attendees(ctx context.Context, eventID string) ([]models.Attendee, error) {
	rows, err := s.db.Query(ctx, `SELECT `+attendeeColumns+` FROM attendees WHERE event_id = $1 ORDER BY position`, eventID)
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
	const query = `
		INSERT INTO events (id, name, event_date)
		VALUES ($1, $2, $3)
		RETURNING ` + eventColumns
	created, err := scanEvent(s.db.QueryRow(ctx, query, event.ID, event.Name, event.Date))
	if err != nil {
		return models.Event{}, err
	}
	created.Attendees, err = s.insertAttendees(ctx, created.ID, event.Attendees)
	if err != nil {
		return models.Event{}, err
	}
	return created, nil
}

func (s *eventStore) Replace(ctx context.Context, event models.Event) (models.Event, error) {
	const query = `
		UPDATE events SET name = $2, event_date = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + eventColumns
	updated, err := scanEvent(s.db.QueryRow(ctx, query, event.ID, event.Name, event.Date))
	if err != nil {
		return models.Event{}, err
	}
	if _, err := s.db.Exec(ctx, `DELETE FROM attendees WHERE event_id = $1`, event.ID); err != nil {
		return models.Event{}, fmt.Errorf("clear attendees: %w", err)
	}
	updated.Attendees, err = s.insertAttendees(ctx, event.ID, event.Attendees)
	if err != nil {
		return models.Event{}, err
	}
	return updated, nil
}

func (s *eventStore) Delete(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	return requireAffected(tag)
}

func (s *eventStore) AddAttendee(ctx context.Context, eventID string, attendee models.Attendee) (models.Attendee, error) {
	if err := s.touch(ctx, eventID); err != nil {
		return models.Attendee{}, err
	}
	var next int
	if err := s.db.QueryRow(ctx, `SELECT COALESCE(MAX(position) + 1, 0) FROM attendees WHERE event_id = $1`, eventID).Scan(&next); err != nil {
		return models.Attendee{}, fmt.Errorf("next attendee position: %w", err)
	}
	return s.insertAttendee(ctx, eventID, next, attendee)
}

func (s *eventStore) UpdateAttendee(ctx context.Context, eventID string, attendee models.Attendee) error {
	const query = `
		UPDATE attendees SET name = $3, size_before = $4, size_after = $5, bra_size_1 = $6,
			bra_size_2 = $7, fitter_name = $8, phone_number = $9, email = $10
		WHERE event_id = $1 AND id = $2`
	tag, err := s.db.Exec(ctx, query, eventID, attendee.ID, attendee.Name, attendee.SizeBefore, attendee.SizeAfter,
		attendee.BraSize1, attendee.BraSize2, attendee.FitterName, attendee.PhoneNumber, attendee.Email)
	if err != nil {
		return fmt.Errorf("update attendee: %w", translateError(err))
	}
	if err := requireAffected(tag); err != nil {
		return err
	}
	return s.touch(ctx, eventID)
}

func (s *eventStore) DeleteAttendee(ctx context.Context, eventID, attendeeID string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM attendees WHERE event_id = $1 AND id = $2`, eventID, attendeeID)
	if err != nil {
		return fmt.Errorf("delete attendee: %w", err)
	}
	if err := requireAffected(tag); err != nil {
		return err
	}
	return s.touch(ctx, eventID)
}

func (s *eventStore) touch(ctx context.Context, eventID string) error {
	tag, err := s.db.Exec(ctx, `UPDATE events SET updated_at = NOW() WHERE id = $1`, eventID)
	if err != nil {
		return fmt.Errorf("touch event: %w", err)
	}
	return requireAffected(tag)
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
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := s.db.Exec(ctx, query, attendee.ID, eventID, position, attendee.Name, attendee.SizeBefore,
		attendee.SizeAfter, attendee.BraSize1, attendee.BraSize2, attendee.FitterName, attendee.PhoneNumber, attendee.Email)
	if err != nil {
		return models.Attendee{}, fmt.Errorf("insert attendee: %w", translateError(err))
	}
	return attendee, nil
}

func scanEvent(row pgx.Row) (models.Event, error) {
	var event models.Event
	if err := row.Scan(&event.ID, &event.Name, &event.Date, &event.CreatedAt, &event.UpdatedAt); err != nil {
		return models.Event{}, translateError(err)
	}
	event.Date = event.Date.UTC()
	event.Attendees = []models.Attendee{}
	return event, nil
}

func attendeeFields(a *models.Attendee) []any {
	return []any{&a.ID, &a.Name, &a.SizeBefore, &a.SizeAfter, &a.BraSize1, &a.BraSize2, &a.FitterName, &a.PhoneNumber, &a.Email}
}

var _ storage.EventStore = (*eventStore)(nil)
