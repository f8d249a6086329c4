package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockledger/backend/internal/domain/shared"
)

// ItemRepository defines the persistence interface for inventory items
type ItemRepository interface {
	// FindByID finds an item by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Item, error)

	// FindByIDForTenant finds an item by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Item, error)

	// FindAllForTenant finds all items for a tenant
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Item, error)

	// Save creates or updates an item
	Save(ctx context.Context, item *Item) error

	// SaveWithLock saves only if the stored version still equals
	// expectedVersion, the version captured when the item was read.
	// Returns shared.ErrConcurrencyConflict otherwise.
	SaveWithLock(ctx context.Context, item *Item, expectedVersion int) error

	// CountForTenant counts items for a tenant
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)

	// SumTotalValueForTenant sums carried inventory value across a tenant's items
	SumTotalValueForTenant(ctx context.Context, tenantID uuid.UUID) (decimal.Decimal, error)
}

// CostLayerRepository defines the persistence interface for cost layers
type CostLayerRepository interface {
	// FindByItem returns all layers for an item, oldest first
	FindByItem(ctx context.Context, tenantID, itemID uuid.UUID) ([]CostLayer, error)

	// Save creates or updates a cost layer
	Save(ctx context.Context, layer *CostLayer) error
}

// StockLedgerRepository defines the persistence interface for the movement ledger.
// The ledger is append-only: there is deliberately no update or delete.
type StockLedgerRepository interface {
	// Append writes a new ledger entry
	Append(ctx context.Context, entry *StockLedgerEntry) error

	// FindByItem returns ledger entries for an item, newest first
	FindByItem(ctx context.Context, tenantID, itemID uuid.UUID, filter shared.Filter) ([]StockLedgerEntry, error)

	// FindBySourceDoc returns all entries written for one source document
	FindBySourceDoc(ctx context.Context, tenantID uuid.UUID, docType SourceDocType, docID string) ([]StockLedgerEntry, error)
}
