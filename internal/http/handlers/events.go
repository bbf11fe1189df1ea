package handlers

import (
	"net/http"
	"strconv"

	"github.com/innerventory/server/internal/events"
	"github.com/innerventory/server/internal/http/respond"
	"github.com/innerventory/server/internal/models"
	"github.com/innerventory/server/internal/models/dto"
	"github.com/innerventory/server/internal/search"
)

// EventHandler serves events and their attendees.
type EventHandler struct {
	svc *events.Service
}

// NewEventHandler constructs the handler.
func NewEventHandler(svc *events.Service) *EventHandler {
	return &EventHandler{svc: svc}
}

// Register attaches the routes to mux behind guards.
func (h *EventHandler) Register(mux *http.ServeMux, guards Guards) {
	mux.Handle("GET /api/events", guards.authed(h.list))
	mux.Handle("POST /api/events", guards.authed(h.create))
	mux.Handle("GET /api/events/{id}", guards.authed(h.get))
	mux.Handle("PUT /api/events/{id}", guards.authed(h.update))
	mux.Handle("DELETE /api/events/{id}", guards.adminOnly(h.delete))

	mux.Handle("POST /api/events/{id}/attendees", guards.authed(h.addAttendee))
	mux.Handle("PUT /api/events/{id}/attendees/{attendeeId}", guards.authed(h.updateAttendee))
	mux.Handle("DELETE /api/events/{id}/attendees/{attendeeId}", guards.adminOnly(h.deleteAttendee))
	mux.Handle("DELETE /api/events/{id}/attendees/at/{index}", guards.adminOnly(h.deleteAttendeeAt))
}

func (h *EventHandler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	list, err := h.svc.List(r.Context(), search.ParseQuery(q.Get("q"), q.Get("by")))
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, "", list)
}

func (h *EventHandler) get(w http.ResponseWriter, r *http.Request) {
	event, err := h.svc.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, "", event)
}

func (h *EventHandler) create(w http.ResponseWriter, r *http.Request) {
	event, attendees, err := decodeEvent(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if attendees != nil {
		event.Attendees = *attendees
	}
	created, err := h.svc.Create(r.Context(), userID(r), event)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusCreated, "Event created", created)
}

func (h *EventHandler) update(w http.ResponseWriter, r *http.Request) {
	event, attendees, err := decodeEvent(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	updated, err := h.svc.Update(r.Context(), userID(r), r.PathValue("id"), events.Update{
		Name:      event.Name,
		Date:      event.Date,
		Attendees: attendees,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, "Event updated", updated)
}

func (h *EventHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), userID(r), r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, "Event deleted", nil)
}

func (h *EventHandler) addAttendee(w http.ResponseWriter, r *http.Request) {
	var req dto.AttendeeRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	added, err := h.svc.AddAttendee(r.Context(), userID(r), r.PathValue("id"), req.Model())
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusCreated, "Attendee added", added)
}

func (h *EventHandler) updateAttendee(w http.ResponseWriter, r *http.Request) {
	var req dto.AttendeeRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	result, err := h.svc.UpdateAttendee(r.Context(), userID(r), r.PathValue("id"), r.PathValue("attendeeId"), req.Model())
	if err != nil {
		writeError(w, r, err)
		return
	}
	message := "Attendee updated"
	if !result.Changed {
		message = "No changes detected"
	}
	respond.JSON(w, http.StatusOK, message, result)
}

func (h *EventHandler) deleteAttendee(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteAttendee(r.Context(), userID(r), r.PathValue("id"), r.PathValue("attendeeId")); err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, "Attendee deleted", nil)
}

func (h *EventHandler) deleteAttendeeAt(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		writeError(w, r, errBadRequest("index must be an integer"))
		return
	}
	if err := h.svc.DeleteAttendeeAt(r.Context(), userID(r), r.PathValue("id"), index); err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, "Attendee deleted", nil)
}

// decodeEvent validates an event body. The attendee pointer is nil when the body had no list.
func decodeEvent(w http.ResponseWriter, r *http.Request) (models.Event, *[]models.Attendee, error) {
	var req dto.EventRequest
	if err := decode(w, r, &req); err != nil {
		return models.Event{}, nil, err
	}
	date, err := dto.ParseEventDate(req.Date)
	if err != nil {
		return models.Event{}, nil, errBadRequest(err.Error())
	}
	event := models.Event{Name: req.Name, Date: date}
	if req.Attendees == nil {
		return event, nil, nil
	}
	attendees := make([]models.Attendee, 0, len(*req.Attendees))
	for _, a := range *req.Attendees {
		if err := validateStruct(a); err != nil {
			return models.Event{}, nil, err
		}
		attendees = append(attendees, a.Model())
	}
	return event, &attendees, nil
}
