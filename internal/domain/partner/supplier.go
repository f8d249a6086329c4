package partner

import (
	"github.com/google/uuid"
	"github.com/stockledger/backend/internal/domain/shared"
)

// Supplier is a purchasing counterparty. APAccountID links the supplier to
// its payables control account; receipt postings fail without it.
type Supplier struct {
	shared.TenantAggregateRoot
	Name        string    `gorm:"type:varchar(255);not null"`
	Phone       string    `gorm:"type:varchar(32)"`
	Address     string    `gorm:"type:varchar(500)"`
	APAccountID uuid.UUID `gorm:"type:uuid;not null"`
}

// TableName returns the table name for GORM
func (Supplier) TableName() string {
	return "suppliers"
}

// NewSupplier creates a supplier linked to a payables account
func NewSupplier(tenantID uuid.UUID, name string, apAccountID uuid.UUID) (*Supplier, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Supplier name cannot be empty")
	}
	if apAccountID == uuid.Nil {
		return nil, shared.ErrLinkedAccountMissing
	}

	return &Supplier{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		APAccountID:         apAccountID,
	}, nil
}
