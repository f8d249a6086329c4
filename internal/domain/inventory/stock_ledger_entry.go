package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockledger/backend/internal/domain/shared"
)

// SourceDocType identifies the business document that caused a stock movement
type SourceDocType string

const (
	// SourceDocTypeGRN is a goods receipt note (purchase receiving)
	SourceDocTypeGRN SourceDocType = "GRN"
	// SourceDocTypeDO is a delivery note (sale shipment)
	SourceDocTypeDO SourceDocType = "DO"
	// SourceDocTypeTRF is a warehouse-to-warehouse transfer
	SourceDocTypeTRF SourceDocType = "TRF"
	// SourceDocTypeADJ is a manual reconciliation adjustment
	SourceDocTypeADJ SourceDocType = "ADJ"
)

// String returns the string representation of SourceDocType
func (t SourceDocType) String() string {
	return string(t)
}

// IsValid returns true if the source document type is valid
func (t SourceDocType) IsValid() bool {
	switch t {
	case SourceDocTypeGRN, SourceDocTypeDO, SourceDocTypeTRF, SourceDocTypeADJ:
		return true
	}
	return false
}

// StockLedgerEntry is an immutable, append-only record of one physical stock
// movement. The ledger is the source of truth for what happened; Item and
// CostLayer state are materialized projections of it. Entries are never
// modified once written - corrections require new entries.
type StockLedgerEntry struct {
	shared.BaseEntity
	TenantID      uuid.UUID       `gorm:"type:uuid;not null;index:idx_stock_ledger_tenant_time,priority:1"`
	ItemID        uuid.UUID       `gorm:"type:uuid;not null;index:idx_stock_ledger_item"`
	WarehouseID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity      decimal.Decimal `gorm:"type:decimal(18,4);not null"` // Signed: positive in, negative out
	UnitCost      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	ValuationRate decimal.Decimal `gorm:"type:decimal(18,4);not null"` // Item WAC at time of movement
	SourceDocType SourceDocType   `gorm:"type:varchar(10);not null;index:idx_stock_ledger_source"`
	SourceDocID   string          `gorm:"type:varchar(64);not null;index:idx_stock_ledger_source"`
	Description   string          `gorm:"type:varchar(255)"`
	MovedAt       time.Time       `gorm:"type:timestamptz;not null;index:idx_stock_ledger_tenant_time,priority:2"`
}

// TableName returns the table name for GORM
func (StockLedgerEntry) TableName() string {
	return "stock_ledger_entries"
}

// NewStockLedgerEntry creates a new stock ledger entry
func NewStockLedgerEntry(
	tenantID, itemID, warehouseID uuid.UUID,
	quantity, unitCost, valuationRate decimal.Decimal,
	sourceDocType SourceDocType,
	sourceDocID string,
) (*StockLedgerEntry, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT", "Tenant ID cannot be empty")
	}
	if itemID == uuid.Nil {
		return nil, shared.ErrItemNotFound
	}
	if warehouseID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_WAREHOUSE", "Warehouse ID cannot be empty")
	}
	if quantity.IsZero() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Movement quantity cannot be zero")
	}
	if unitCost.IsNegative() {
		return nil, shared.NewDomainError("INVALID_COST", "Unit cost cannot be negative")
	}
	if !sourceDocType.IsValid() {
		return nil, shared.NewDomainError("INVALID_SOURCE_TYPE", "Invalid source document type")
	}
	if sourceDocID == "" {
		return nil, shared.NewDomainError("INVALID_SOURCE_ID", "Source document ID cannot be empty")
	}

	return &StockLedgerEntry{
		BaseEntity:    shared.NewBaseEntity(),
		TenantID:      tenantID,
		ItemID:        itemID,
		WarehouseID:   warehouseID,
		Quantity:      quantity,
		UnitCost:      unitCost,
		ValuationRate: valuationRate,
		SourceDocType: sourceDocType,
		SourceDocID:   sourceDocID,
		MovedAt:       time.Now(),
	}, nil
}

// WithDescription sets a human-readable description for the movement
func (e *StockLedgerEntry) WithDescription(desc string) *StockLedgerEntry {
	e.Description = desc
	return e
}

// IsInbound returns true if the movement increases stock
func (e *StockLedgerEntry) IsInbound() bool {
	return e.Quantity.IsPositive()
}

// MovementValue returns the signed value of the movement at its valuation rate
func (e *StockLedgerEntry) MovementValue() decimal.Decimal {
	return e.Quantity.Mul(e.ValuationRate)
}
