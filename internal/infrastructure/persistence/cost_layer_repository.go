package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stockledger/backend/internal/domain/inventory"
)

// GormCostLayerRepository implements inventory.CostLayerRepository using GORM
type GormCostLayerRepository struct {
	db *gorm.DB
}

// NewGormCostLayerRepository creates a new cost layer repository
func NewGormCostLayerRepository(db *gorm.DB) *GormCostLayerRepository {
	return &GormCostLayerRepository{db: db}
}

// FindByItem returns all layers for an item, oldest first
func (r *GormCostLayerRepository) FindByItem(ctx context.Context, tenantID, itemID uuid.UUID) ([]inventory.CostLayer, error) {
	var layers []inventory.CostLayer
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND item_id = ?", tenantID, itemID).
		Order("created_at ASC").
		Find(&layers).Error
	if err != nil {
		return nil, err
	}
	return layers, nil
}

// Save upserts a layer. Layers carry no version column; they are only
// written inside a posting transaction that holds the item's optimistic
// lock, which serializes all layer writes for the item.
func (r *GormCostLayerRepository) Save(ctx context.Context, layer *inventory.CostLayer) error {
	return r.db.WithContext(ctx).Save(layer).Error
}
