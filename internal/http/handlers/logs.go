package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/innerventory/server/internal/audit"
	"github.com/innerventory/server/internal/http/respond"
	"github.com/innerventory/server/internal/models/dto"
	"github.com/innerventory/server/internal/storage"
)

// LogHandler exposes the action log.
type LogHandler struct {
	store storage.AuditStore
	audit *audit.Logger
}

// NewLogHandler constructs the handler.
func NewLogHandler(store storage.AuditStore, auditLog *audit.Logger) *LogHandler {
	return &LogHandler{store: store, audit: auditLog}
}

// Register attaches the routes to mux behind guards.
func (h *LogHandler) Register(mux *http.ServeMux, guards Guards) {
	mux.Handle("POST /api/logs", guards.authed(h.create))
	mux.Handle("GET /api/logs", guards.adminOnly(h.list))
}

func (h *LogHandler) create(w http.ResponseWriter, r *http.Request) {
	var req dto.LogActionRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	// Entries are always attributed to the caller; a body userId may only restate it.
	actor := userID(r)
	if req.UserID != "" && strings.TrimSpace(req.UserID) != actor {
		respond.Error(w, http.StatusForbidden, "userId does not match the authenticated user")
		return
	}
	entry, err := h.audit.Record(r.Context(), h.store, actor, req.Message)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusCreated, "Action logged", entry)
}

func (h *LogHandler) list(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, r, errBadRequest("limit must be an integer"))
			return
		}
		limit = parsed
	}
	entries, err := h.audit.Recent(r.Context(), h.store, limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, "", entries)
}
