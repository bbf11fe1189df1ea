package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/innerventory/server/internal/models"
	"github.com/innerventory/server/internal/storage"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(store.Close)
	return store
}

func TestUsersCreateAndFind(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	created, err := store.Users().CreateUser(ctx, models.User{Email: "fitter@example.com", PasswordHash: "hash", Role: "admin"})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.Equal(t, models.RoleAdmin, created.Role)

	found, err := store.Users().FindByEmail(ctx, "Fitter@Example.com")
	require.NoError(t, err)
	require.Equal(t, created.ID, found.ID)
	require.Equal(t, "hash", found.PasswordHash)

	byID, err := store.Users().FindByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "fitter@example.com", byID.Email)

	_, err = store.Users().CreateUser(ctx, models.User{Email: "FITTER@example.com", PasswordHash: "x"})
	require.ErrorIs(t, err, storage.ErrAlreadyExists)

	_, err = store.Users().FindByEmail(ctx, "nobody@example.com")
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestBrasAdjustQuantity(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	bra, err := store.Bras().Create(ctx, models.Bra{Type: "Sports", Size: "34B", Quantity: 3})
	require.NoError(t, err)

	adjusted, err := store.Bras().AdjustQuantity(ctx, bra.ID, -5)
	require.NoError(t, err)
	require.Equal(t, -2, adjusted.Quantity)

	bra.Quantity = 10
	bra.Size = "36B"
	updated, err := store.Bras().Update(ctx, bra)
	require.NoError(t, err)
	require.Equal(t, 10, updated.Quantity)
	require.Equal(t, "36B", updated.Size)

	_, err = store.Bras().AdjustQuantity(ctx, "missing", 1)
	require.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, store.Bras().Delete(ctx, bra.ID))
	require.ErrorIs(t, store.Bras().Delete(ctx, bra.ID), storage.ErrNotFound)

	bras, err := store.Bras().List(ctx)
	require.NoError(t, err)
	require.Empty(t, bras)
}

func TestEventsAttendeeOrdering(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	date := time.Date(2024, 5, 4, 0, 0, 0, 0, time.UTC)
	event, err := store.Events().Create(ctx, models.Event{Name: "Spring Gala", Date: date})
	require.NoError(t, err)
	require.Empty(t, event.Attendees)
	require.True(t, event.Date.Equal(date))

	var ids []string
	for _, name := range []string{"Ann", "Bea", "Cat"} {
		attendee, err := store.Events().AddAttendee(ctx, event.ID, models.Attendee{Name: name})
		require.NoError(t, err)
		ids = append(ids, attendee.ID)
	}

	require.NoError(t, store.Events().DeleteAttendee(ctx, event.ID, ids[1]))
	require.ErrorIs(t, store.Events().DeleteAttendee(ctx, event.ID, ids[1]), storage.ErrNotFound)

	_, err = store.Events().AddAttendee(ctx, event.ID, models.Attendee{Name: "Dee"})
	require.NoError(t, err)

	got, err := store.Events().Get(ctx, event.ID)
	require.NoError(t, err)
	require.Equal(t, []string{"Ann", "Cat", "Dee"}, names(got.Attendees))

	got.Attendees[0].SizeAfter = "36C"
	require.NoError(t, store.Events().UpdateAttendee(ctx, event.ID, got.Attendees[0]))

	listed, err := store.Events().List(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	require.Equal(t, "36C", listed[0].Attendees[0].SizeAfter)
	require.Equal(t, []string{"Ann", "Cat", "Dee"}, names(listed[0].Attendees))
}

func TestEventsReplaceAndCascade(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	event, err := store.Events().Create(ctx, models.Event{
		Name:      "Clinic",
		Date:      time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		Attendees: []models.Attendee{{Name: "Ann"}, {Name: "Bea"}},
	})
	require.NoError(t, err)
	require.Len(t, event.Attendees, 2)

	event.Name = "Winter Clinic"
	event.Attendees = []models.Attendee{event.Attendees[1], {Name: "Cat"}}
	replaced, err := store.Events().Replace(ctx, event)
	require.NoError(t, err)
	require.Equal(t, "Winter Clinic", replaced.Name)
	require.Equal(t, []string{"Bea", "Cat"}, names(replaced.Attendees))

	require.NoError(t, store.Events().Delete(ctx, event.ID))
	_, err = store.Events().Get(ctx, event.ID)
	require.ErrorIs(t, err, storage.ErrNotFound)

	var orphans int
	require.NoError(t, store.conn.QueryRow(`SELECT COUNT(*) FROM attendees`).Scan(&orphans))
	require.Zero(t, orphans)
}

func TestWithTxRollsBack(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	bra, err := store.Bras().Create(ctx, models.Bra{Type: "Sports", Size: "34B", Quantity: 3})
	require.NoError(t, err)

	boom := errors.New("boom")
	err = store.WithTx(ctx, func(ctx context.Context, repo storage.Repository) error {
		if _, err := repo.Bras().AdjustQuantity(ctx, bra.ID, -1); err != nil {
			return err
		}
		if _, err := repo.Audit().Append(ctx, models.AuditEntry{Message: "never"}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := store.Bras().Get(ctx, bra.ID)
	require.NoError(t, err)
	require.Equal(t, 3, got.Quantity)

	entries, err := store.Audit().Recent(ctx, 10)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestAuditRecentNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	for _, msg := range []string{"first", "second", "third"} {
		_, err := store.Audit().Append(ctx, models.AuditEntry{UserID: "u1", Message: msg})
		require.NoError(t, err)
	}

	entries, err := store.Audit().Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "third", entries[0].Message)
	require.Equal(t, "second", entries[1].Message)
}

func names(attendees []models.Attendee) []string {
	out := make([]string, 0, len(attendees))
	for _, a := range attendees {
		out = append(out, a.Name)
	}
	return out
}

func TestPingDoesNotWaitForOpenTransaction(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	err := store.WithTx(ctx, func(ctx context.Context, repo storage.Repository) error {
		_, err := repo.Bras().Create(ctx, models.Bra{Type: "Sports", Size: "32A"})
		require.NoError(t, err)

		pingCtx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
		defer cancel()
		return store.Ping(pingCtx)
	})
	require.NoError(t, err)

	store.Close()
	require.Error(t, store.Ping(ctx))
}
