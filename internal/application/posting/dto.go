package posting

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// GoodsReceiptLine is one received item at an agreed purchase cost
type GoodsReceiptLine struct {
	ItemID   uuid.UUID       `json:"item_id" validate:"required"`
	Quantity decimal.Decimal `json:"quantity" validate:"required"`
	UnitCost decimal.Decimal `json:"unit_cost" validate:"required"`
}

// GoodsReceiptCommand posts a goods receipt note: stock in, inventory
// value up, supplier bill created.
type GoodsReceiptCommand struct {
	TenantID    uuid.UUID          `json:"-"`
	SupplierID  uuid.UUID          `json:"supplier_id" validate:"required"`
	WarehouseID uuid.UUID          `json:"warehouse_id" validate:"required"`
	Date        time.Time          `json:"date"`
	Reference   string             `json:"reference"`
	Lines       []GoodsReceiptLine `json:"lines" validate:"required,min=1,dive"`
}

// DeliveryNoteLine is one delivered item. UnitPrice is the agreed sale
// price and must be supplied by the caller; it is never derived from cost.
type DeliveryNoteLine struct {
	ItemID    uuid.UUID       `json:"item_id" validate:"required"`
	Quantity  decimal.Decimal `json:"quantity" validate:"required"`
	UnitPrice decimal.Decimal `json:"unit_price" validate:"required"`
}

// DeliveryNoteCommand posts a delivery note: stock out at valuation cost,
// revenue and receivable recognized, customer invoice created.
type DeliveryNoteCommand struct {
	TenantID    uuid.UUID          `json:"-"`
	CustomerID  uuid.UUID          `json:"customer_id" validate:"required"`
	WarehouseID uuid.UUID          `json:"warehouse_id" validate:"required"`
	Date        time.Time          `json:"date"`
	Reference   string             `json:"reference"`
	Lines       []DeliveryNoteLine `json:"lines" validate:"required,min=1,dive"`
}

// TransferLine is one item quantity moved between warehouses
type TransferLine struct {
	ItemID   uuid.UUID       `json:"item_id" validate:"required"`
	Quantity decimal.Decimal `json:"quantity" validate:"required"`
}

// TransferCommand posts a stock transfer between two warehouses. Transfers
// move quantity at the current valuation rate and have no accounting
// effect, so no journal entry is created.
type TransferCommand struct {
	TenantID        uuid.UUID      `json:"-"`
	FromWarehouseID uuid.UUID      `json:"from_warehouse_id" validate:"required"`
	ToWarehouseID   uuid.UUID      `json:"to_warehouse_id" validate:"required"`
	Date            time.Time      `json:"date"`
	Reference       string         `json:"reference"`
	Lines           []TransferLine `json:"lines" validate:"required,min=1,dive"`
}

// AdjustmentCommand posts a signed stock adjustment valued at the current
// WAC. When VarianceAccountID is set the value difference is also booked
// to the variance account through a journal entry.
type AdjustmentCommand struct {
	TenantID          uuid.UUID       `json:"-"`
	ItemID            uuid.UUID       `json:"item_id" validate:"required"`
	WarehouseID       uuid.UUID       `json:"warehouse_id" validate:"required"`
	QuantityDelta     decimal.Decimal `json:"quantity_delta" validate:"required"`
	Reason            string          `json:"reason" validate:"required"`
	Date              time.Time       `json:"date"`
	VarianceAccountID uuid.UUID       `json:"variance_account_id"`
}

// ItemPostingResult reports an item's valuation state after a posting
type ItemPostingResult struct {
	ItemID    uuid.UUID       `json:"item_id"`
	SKU       string          `json:"sku"`
	Quantity  decimal.Decimal `json:"quantity"`
	NewQty    decimal.Decimal `json:"new_qty"`
	NewWAC    decimal.Decimal `json:"new_wac"`
	LineValue decimal.Decimal `json:"line_value"`
}

// GoodsReceiptResult is returned after a goods receipt commits
type GoodsReceiptResult struct {
	JournalEntryID uuid.UUID           `json:"journal_entry_id"`
	JournalNumber  string              `json:"journal_number"`
	BillID         uuid.UUID           `json:"bill_id"`
	BillNumber     string              `json:"bill_number"`
	Total          decimal.Decimal     `json:"total"`
	Lines          []ItemPostingResult `json:"lines"`
}

// DeliveryNoteResult is returned after a delivery note commits
type DeliveryNoteResult struct {
	JournalEntryID uuid.UUID           `json:"journal_entry_id"`
	JournalNumber  string              `json:"journal_number"`
	InvoiceID      uuid.UUID           `json:"invoice_id"`
	InvoiceNumber  string              `json:"invoice_number"`
	TotalRevenue   decimal.Decimal     `json:"total_revenue"`
	TotalCOGS      decimal.Decimal     `json:"total_cogs"`
	Lines          []ItemPostingResult `json:"lines"`
}

// TransferResult is returned after a transfer commits
type TransferResult struct {
	LedgerEntryIDs []uuid.UUID `json:"ledger_entry_ids"`
}

// AdjustmentResult is returned after an adjustment commits
type AdjustmentResult struct {
	LedgerEntryID   uuid.UUID       `json:"ledger_entry_id"`
	JournalEntryID  uuid.UUID       `json:"journal_entry_id,omitempty"`
	JournalNumber   string          `json:"journal_number,omitempty"`
	NewQty          decimal.Decimal `json:"new_qty"`
	NewWAC          decimal.Decimal `json:"new_wac"`
	AdjustmentValue decimal.Decimal `json:"adjustment_value"`
}
