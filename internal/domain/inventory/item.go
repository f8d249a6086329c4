package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockledger/backend/internal/domain/shared"
	"github.com/stockledger/backend/internal/domain/shared/valueobject"
)

// Item is the aggregate root for per-product inventory valuation state.
// CurrentQty, CurrentWAC and TotalValue are maintained incrementally by
// receipt/issue events; TotalValue is never recomputed from scratch.
type Item struct {
	shared.TenantAggregateRoot
	SKU           string          `gorm:"type:varchar(64);not null;uniqueIndex:idx_items_tenant_sku,priority:2"`
	Name          string          `gorm:"type:varchar(255);not null"`
	CurrentQty    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	CurrentWAC    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"` // Moving weighted average cost
	TotalValue    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"` // Maintained as qty * wac, incrementally
	MinStockLevel decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`

	// Linked ledger accounts used by posting
	InventoryAccountID uuid.UUID `gorm:"type:uuid;not null"`
	COGSAccountID      uuid.UUID `gorm:"type:uuid;not null"`
	RevenueAccountID   uuid.UUID `gorm:"type:uuid;not null"`
}

// TableName returns the table name for GORM
func (Item) TableName() string {
	return "items"
}

// NewItem creates a new inventory item
func NewItem(tenantID uuid.UUID, sku, name string, inventoryAccountID, cogsAccountID, revenueAccountID uuid.UUID) (*Item, error) {
	if sku == "" {
		return nil, shared.NewDomainError("INVALID_SKU", "SKU cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	if inventoryAccountID == uuid.Nil || cogsAccountID == uuid.Nil || revenueAccountID == uuid.Nil {
		return nil, shared.ErrLinkedAccountMissing
	}

	return &Item{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		SKU:                 sku,
		Name:                name,
		CurrentQty:          decimal.Zero,
		CurrentWAC:          decimal.Zero,
		TotalValue:          decimal.Zero,
		MinStockLevel:       decimal.Zero,
		InventoryAccountID:  inventoryAccountID,
		COGSAccountID:       cogsAccountID,
		RevenueAccountID:    revenueAccountID,
	}, nil
}

// ApplyReceipt records incoming stock and shifts the weighted average cost.
// TotalValue grows by exactly qty*unitCost so that sequential postings
// round-trip without drift.
func (i *Item) ApplyReceipt(qty, unitCost decimal.Decimal) error {
	if qty.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Receipt quantity must be positive")
	}
	if unitCost.IsNegative() {
		return shared.NewDomainError("INVALID_COST", "Unit cost cannot be negative")
	}

	newQty, newWAC := Receive(i.CurrentQty, i.CurrentWAC, qty, unitCost)
	i.CurrentQty = newQty
	i.CurrentWAC = newWAC
	i.TotalValue = i.TotalValue.Add(qty.Mul(unitCost))
	i.UpdatedAt = time.Now()
	i.IncrementVersion()
	return nil
}

// ApplyIssue records outgoing stock at the current WAC and returns the cost
// of the issue. The WAC itself is unchanged by outgoing movements.
func (i *Item) ApplyIssue(qty decimal.Decimal) (decimal.Decimal, error) {
	if qty.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, shared.NewDomainError("INVALID_QUANTITY", "Issue quantity must be positive")
	}
	if i.CurrentQty.LessThan(qty) {
		return decimal.Zero, shared.ErrInsufficientStock
	}

	newQty, costOfIssue := Issue(i.CurrentQty, i.CurrentWAC, qty)
	i.CurrentQty = newQty
	i.TotalValue = i.TotalValue.Sub(costOfIssue)
	i.UpdatedAt = time.Now()
	i.IncrementVersion()
	return costOfIssue, nil
}

// ApplyAdjustment records a signed quantity delta at the current WAC.
// Positive deltas behave like a receipt at WAC, negative like an issue.
func (i *Item) ApplyAdjustment(delta decimal.Decimal) error {
	if delta.IsZero() {
		return shared.NewDomainError("INVALID_QUANTITY", "Adjustment delta cannot be zero")
	}
	if delta.IsPositive() {
		return i.ApplyReceipt(delta, i.CurrentWAC)
	}
	_, err := i.ApplyIssue(delta.Neg())
	return err
}

// SetMinStockLevel sets the minimum stock threshold for alerts
func (i *Item) SetMinStockLevel(qty decimal.Decimal) error {
	if qty.IsNegative() {
		return shared.NewDomainError("INVALID_QUANTITY", "Minimum stock level cannot be negative")
	}
	i.MinStockLevel = qty
	i.UpdatedAt = time.Now()
	i.IncrementVersion()
	return nil
}

// IsBelowMinimum returns true if current quantity is below the minimum threshold
func (i *Item) IsBelowMinimum() bool {
	return i.MinStockLevel.GreaterThan(decimal.Zero) && i.CurrentQty.LessThan(i.MinStockLevel)
}

// CanFulfill returns true if current quantity can satisfy the requested quantity
func (i *Item) CanFulfill(qty decimal.Decimal) bool {
	return i.CurrentQty.GreaterThanOrEqual(qty)
}

// GetWACMoney returns the current WAC as a Money value object
func (i *Item) GetWACMoney() valueobject.Money {
	return valueobject.NewMoneyIQD(i.CurrentWAC)
}

// GetTotalValueMoney returns the carried inventory value as Money
func (i *Item) GetTotalValueMoney() valueobject.Money {
	return valueobject.NewMoneyIQD(i.TotalValue)
}
