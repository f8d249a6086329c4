package inventory

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockledger/backend/internal/domain/shared"
)

// CostLayer is a quantity bucket of stock grouped by the unit cost at which
// it was received. Layers are keyed by (item, unit cost), never deleted, and
// zero-quantity layers persist for audit.
type CostLayer struct {
	shared.BaseEntity
	TenantID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	ItemID           uuid.UUID       `gorm:"type:uuid;not null;index:idx_cost_layers_item"`
	UnitCost         decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	QtyOnHand        decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"` // Never below zero
	QtyReceivedTotal decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"` // Monotonic non-decreasing
	Synthetic        bool            `gorm:"not null;default:false"`                // Backfilled for legacy stock
}

// TableName returns the table name for GORM
func (CostLayer) TableName() string {
	return "cost_layers"
}

// NewCostLayer creates a new cost layer holding the given quantity
func NewCostLayer(tenantID, itemID uuid.UUID, unitCost, qty decimal.Decimal) *CostLayer {
	return &CostLayer{
		BaseEntity:       shared.NewBaseEntity(),
		TenantID:         tenantID,
		ItemID:           itemID,
		UnitCost:         unitCost,
		QtyOnHand:        qty,
		QtyReceivedTotal: qty,
	}
}

// HasStock returns true if the layer has quantity on hand
func (l *CostLayer) HasStock() bool {
	return l.QtyOnHand.GreaterThan(decimal.Zero)
}

// TotalValue returns the carried value of this layer
func (l *CostLayer) TotalValue() decimal.Decimal {
	return l.QtyOnHand.Mul(l.UnitCost)
}

// apply adjusts the on-hand quantity by a signed delta. Receipts also grow
// the monotonic received total.
func (l *CostLayer) apply(qtyDelta decimal.Decimal) error {
	result := l.QtyOnHand.Add(qtyDelta)
	if result.IsNegative() {
		return shared.ErrNegativeLayerQuantity
	}
	l.QtyOnHand = result
	if qtyDelta.IsPositive() {
		l.QtyReceivedTotal = l.QtyReceivedTotal.Add(qtyDelta)
	}
	l.UpdatedAt = time.Now()
	return nil
}

// LayerDraw records a quantity drawn from one layer during FIFO consumption
type LayerDraw struct {
	Layer *CostLayer
	Qty   decimal.Decimal
}

// Cost returns the cost of this draw (qty at the layer's unit cost)
func (d LayerDraw) Cost() decimal.Decimal {
	return d.Qty.Mul(d.Layer.UnitCost)
}

// LayerBook holds all cost layers for one item, ordered oldest first, and
// applies layer mutations in memory during the compute phase. The caller
// stages the changed and created layers for the write phase.
type LayerBook struct {
	tenantID uuid.UUID
	itemID   uuid.UUID
	layers   []*CostLayer
	created  []*CostLayer
}

// NewLayerBook builds a layer book from the item's persisted layers
func NewLayerBook(tenantID, itemID uuid.UUID, layers []*CostLayer) *LayerBook {
	sorted := make([]*CostLayer, len(layers))
	copy(sorted, layers)
	sort.SliceStable(sorted, func(a, b int) bool {
		return sorted[a].CreatedAt.Before(sorted[b].CreatedAt)
	})
	return &LayerBook{
		tenantID: tenantID,
		itemID:   itemID,
		layers:   sorted,
	}
}

// Layers returns all layers in FIFO order (oldest first)
func (b *LayerBook) Layers() []*CostLayer {
	return b.layers
}

// Created returns the layers created during this compute phase
func (b *LayerBook) Created() []*CostLayer {
	return b.created
}

// TotalOnHand returns the sum of on-hand quantity across all layers
func (b *LayerBook) TotalOnHand() decimal.Decimal {
	total := decimal.Zero
	for _, l := range b.layers {
		total = total.Add(l.QtyOnHand)
	}
	return total
}

// AddOrMerge increases (or decreases) the layer at exactly unitCost by
// qtyDelta. A missing layer is created for positive deltas; negative deltas
// against a missing layer fail with LAYER_NOT_FOUND, and deltas that would
// take a layer below zero fail with NEGATIVE_LAYER_QUANTITY.
func (b *LayerBook) AddOrMerge(unitCost, qtyDelta decimal.Decimal) (*CostLayer, error) {
	for _, l := range b.layers {
		if l.UnitCost.Equal(unitCost) {
			if err := l.apply(qtyDelta); err != nil {
				return nil, err
			}
			return l, nil
		}
	}
	if qtyDelta.IsNegative() {
		return nil, shared.ErrLayerNotFound
	}
	layer := NewCostLayer(b.tenantID, b.itemID, unitCost, qtyDelta)
	b.layers = append(b.layers, layer)
	b.created = append(b.created, layer)
	return layer, nil
}

// ConsumeFIFO draws qty from the oldest layers first, skipping exhausted
// layers. If the book cannot satisfy the full quantity it fails with
// INSUFFICIENT_LAYER_STOCK and mutates nothing.
func (b *LayerBook) ConsumeFIFO(qty decimal.Decimal) ([]LayerDraw, error) {
	if qty.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Consumption quantity must be positive")
	}
	if b.TotalOnHand().LessThan(qty) {
		return nil, shared.ErrInsufficientLayers
	}

	remaining := qty
	draws := make([]LayerDraw, 0, 2)
	for _, l := range b.layers {
		if remaining.IsZero() {
			break
		}
		if !l.HasStock() {
			continue
		}
		draw := decimal.Min(l.QtyOnHand, remaining)
		if err := l.apply(draw.Neg()); err != nil {
			return nil, err
		}
		draws = append(draws, LayerDraw{Layer: l, Qty: draw})
		remaining = remaining.Sub(draw)
	}
	return draws, nil
}

// Backfill reconciles legacy drift between the item's quantity and the
// layers. When the layers under-report relative to itemQty, a synthetic
// layer at the item's current WAC absorbs the shortfall so FIFO consumption
// never fails solely due to historical data. Returns the synthetic layer,
// or nil when the book already covers the item quantity.
func (b *LayerBook) Backfill(itemQty, currentWAC decimal.Decimal) *CostLayer {
	shortfall := itemQty.Sub(b.TotalOnHand())
	if shortfall.LessThanOrEqual(decimal.Zero) {
		return nil
	}
	layer := NewCostLayer(b.tenantID, b.itemID, currentWAC, shortfall)
	layer.Synthetic = true
	b.layers = append(b.layers, layer)
	b.created = append(b.created, layer)
	return layer
}
