package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stockledger/backend/internal/domain/inventory"
	"github.com/stockledger/backend/internal/domain/shared"
)

// GormStockLedgerRepository implements inventory.StockLedgerRepository
// using GORM. The ledger is append-only at the SQL level too: this
// repository issues inserts and selects, never updates or deletes.
type GormStockLedgerRepository struct {
	db *gorm.DB
}

// NewGormStockLedgerRepository creates a new stock ledger repository
func NewGormStockLedgerRepository(db *gorm.DB) *GormStockLedgerRepository {
	return &GormStockLedgerRepository{db: db}
}

// Append inserts a new ledger entry
func (r *GormStockLedgerRepository) Append(ctx context.Context, entry *inventory.StockLedgerEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// FindByItem returns movements for an item, newest first by default
func (r *GormStockLedgerRepository) FindByItem(ctx context.Context, tenantID, itemID uuid.UUID, filter shared.Filter) ([]inventory.StockLedgerEntry, error) {
	var entries []inventory.StockLedgerEntry
	query := r.db.WithContext(ctx).Where("tenant_id = ? AND item_id = ?", tenantID, itemID)
	query = applyFilter(query, filter, "moved_at")
	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// FindBySourceDoc returns all movements created by one source document
func (r *GormStockLedgerRepository) FindBySourceDoc(ctx context.Context, tenantID uuid.UUID, docType inventory.SourceDocType, docID string) ([]inventory.StockLedgerEntry, error) {
	var entries []inventory.StockLedgerEntry
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND source_doc_type = ? AND source_doc_id = ?", tenantID, docType, docID).
		Order("moved_at ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
