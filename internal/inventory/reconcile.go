package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/innerventory/server/internal/metrics"
	"github.com/innerventory/server/internal/models"
	"github.com/innerventory/server/internal/storage"
)

// ErrInsufficientStock is returned in strict mode when an edit would leave a bra quantity below zero.
var ErrInsufficientStock = errors.New("insufficient stock")

// Direction says whether an adjustment puts stock back or takes it out.
type Direction string

const (
	Return  Direction = "return"
	Consume Direction = "consume"
)

// Adjustment is one planned quantity change for one bra slot.
type Adjustment struct {
	Slot      int       `json:"slot"`
	BraID     string    `json:"braId"`
	Label     string    `json:"label"`
	Direction Direction `json:"direction"`
	Delta     int       `json:"delta"`
}

// Resolve finds the first catalog entry whose label equals the trimmed selection.
// Blank selections never resolve.
func Resolve(catalog []models.Bra, selection string) (models.Bra, bool) {
	selection = models.NormalizeField(selection)
	if selection == "" {
		return models.Bra{}, false
	}
	for _, bra := range catalog {
		if bra.Label() == selection {
			return bra, true
		}
	}
	return models.Bra{}, false
}

// Plan lists the adjustments needed to move an attendee from before's selections to after's.
// Old stock is returned for both slots before new stock is consumed; unresolved selections are skipped.
func Plan(catalog []models.Bra, before, after models.Attendee) []Adjustment {
	var plan []Adjustment
	for slot, selection := range before.Selections() {
		if bra, ok := Resolve(catalog, selection); ok {
			plan = append(plan, Adjustment{Slot: slot + 1, BraID: bra.ID, Label: bra.Label(), Direction: Return, Delta: 1})
		}
	}
	for slot, selection := range after.Selections() {
		if bra, ok := Resolve(catalog, selection); ok {
			plan = append(plan, Adjustment{Slot: slot + 1, BraID: bra.ID, Label: bra.Label(), Direction: Consume, Delta: -1})
		}
	}
	return plan
}

// Reconciler applies attendee bra changes to inventory.
type Reconciler struct {
	strict bool
	logger zerolog.Logger
}

// NewReconciler builds a reconciler; strict rejects edits that drive stock negative.
func NewReconciler(strict bool, logger zerolog.Logger) *Reconciler {
	return &Reconciler{strict: strict, logger: logger.With().Str("component", "reconcile").Logger()}
}

// Reconcile plans and applies the adjustments through bras. It must run inside the
// transaction that also writes the attendee so a failure leaves nothing half-applied.
func (r *Reconciler) Reconcile(ctx context.Context, bras storage.BraStore, before, after models.Attendee) ([]Adjustment, error) {
	catalog, err := bras.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load inventory: %w", err)
	}

	old, selected := before.Selections(), after.Selections()
	for _, selection := range []string{old[0], old[1], selected[0], selected[1]} {
		if models.NormalizeField(selection) == "" {
			continue
		}
		if _, ok := Resolve(catalog, selection); !ok {
			metrics.UnresolvedSelections.Inc()
			r.logger.Debug().Str("selection", selection).Msg("bra selection matches no inventory item")
		}
	}

	plan := Plan(catalog, before, after)
	net := make(map[string]int)
	final := make(map[string]models.Bra)
	for _, adj := range plan {
		updated, err := bras.AdjustQuantity(ctx, adj.BraID, adj.Delta)
		if err != nil {
			return nil, fmt.Errorf("adjust %s (slot %d): %w", adj.Label, adj.Slot, err)
		}
		net[adj.BraID] += adj.Delta
		final[adj.BraID] = updated
	}

	for id, delta := range net {
		bra := final[id]
		if delta >= 0 || bra.Quantity >= 0 {
			continue
		}
		if r.strict {
			metrics.StockShortfalls.WithLabelValues("rejected").Inc()
			return nil, fmt.Errorf("%w: %s would drop to %d", ErrInsufficientStock, bra.Label(), bra.Quantity)
		}
		metrics.StockShortfalls.WithLabelValues("allowed").Inc()
		r.logger.Warn().Str("bra_id", id).Str("label", bra.Label()).Int("quantity", bra.Quantity).Msg("bra quantity below zero")
	}

	for _, adj := range plan {
		metrics.StockAdjustments.WithLabelValues(string(adj.Direction)).Inc()
	}
	return plan, nil
}
