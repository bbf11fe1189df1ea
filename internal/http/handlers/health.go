package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/innerventory/server/internal/http/respond"
)

// Pinger reports whether a dependency is reachable.
type Pinger func(ctx context.Context) error

// HealthHandler returns uptime and basic status.
type HealthHandler struct {
	startedAt time.Time
	ping      Pinger
}

// NewHealthHandler creates a health endpoint handler. ping may be nil.
func NewHealthHandler(startedAt time.Time, ping Pinger) *HealthHandler {
	return &HealthHandler{startedAt: startedAt, ping: ping}
}

// Register wires the handler into a ServeMux.
func (h *HealthHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", h.handle)
}

func (h *HealthHandler) handle(w http.ResponseWriter, r *http.Request) {
	status, code := "ok", http.StatusOK
	if h.ping != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.ping(ctx); err != nil {
			status, code = "degraded", http.StatusServiceUnavailable
		}
	}
	respond.Raw(w, code, map[string]string{
		"status": status,
		"uptime": time.Since(h.startedAt).Truncate(time.Second).String(),
	})
}
