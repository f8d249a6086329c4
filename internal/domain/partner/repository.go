package partner

import (
	"context"

	"github.com/google/uuid"
)

// CustomerRepository persists customers
type CustomerRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Customer, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]*Customer, error)
	Save(ctx context.Context, customer *Customer) error
}

// SupplierRepository persists suppliers
type SupplierRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Supplier, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]*Supplier, error)
	Save(ctx context.Context, supplier *Supplier) error
}
