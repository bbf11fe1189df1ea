package handlers

import (
	"net/http"

	"github.com/innerventory/server/internal/http/respond"
	"github.com/innerventory/server/internal/inventory"
	"github.com/innerventory/server/internal/models"
	"github.com/innerventory/server/internal/models/dto"
)

// BraHandler serves the inventory catalogue.
type BraHandler struct {
	svc *inventory.Service
}

// NewBraHandler constructs the handler.
func NewBraHandler(svc *inventory.Service) *BraHandler {
	return &BraHandler{svc: svc}
}

// Register attaches the routes to mux behind guards.
func (h *BraHandler) Register(mux *http.ServeMux, guards Guards) {
	mux.Handle("GET /api/bras", guards.authed(h.list))
	mux.Handle("POST /api/bras", guards.authed(h.create))
	mux.Handle("GET /api/bras/{id}", guards.authed(h.get))
	mux.Handle("PUT /api/bras/{id}", guards.authed(h.update))
	mux.Handle("DELETE /api/bras/{id}", guards.adminOnly(h.delete))
}

func (h *BraHandler) list(w http.ResponseWriter, r *http.Request) {
	bras, err := h.svc.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, "", bras)
}

func (h *BraHandler) get(w http.ResponseWriter, r *http.Request) {
	bra, err := h.svc.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, "", bra)
}

func (h *BraHandler) create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateBraRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	created, err := h.svc.Create(r.Context(), userID(r), models.Bra{Type: req.Type, Size: req.Size, Quantity: req.Quantity})
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusCreated, "Bra added", created)
}

func (h *BraHandler) update(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateBraRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	updated, err := h.svc.Update(r.Context(), userID(r), r.PathValue("id"), inventory.BraPatch{
		Type:     req.Type,
		Size:     req.Size,
		Quantity: req.Quantity,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, "Bra updated", updated)
}

func (h *BraHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), userID(r), r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, "Bra deleted", nil)
}
