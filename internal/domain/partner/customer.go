package partner

import (
	"github.com/google/uuid"
	"github.com/stockledger/backend/internal/domain/shared"
)

// Customer is a sales counterparty. ARAccountID links the customer to its
// receivables control account; delivery postings fail without it.
type Customer struct {
	shared.TenantAggregateRoot
	Name        string    `gorm:"type:varchar(255);not null"`
	Phone       string    `gorm:"type:varchar(32)"`
	Address     string    `gorm:"type:varchar(500)"`
	ARAccountID uuid.UUID `gorm:"type:uuid;not null"`
}

// TableName returns the table name for GORM
func (Customer) TableName() string {
	return "customers"
}

// NewCustomer creates a customer linked to a receivables account
func NewCustomer(tenantID uuid.UUID, name string, arAccountID uuid.UUID) (*Customer, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Customer name cannot be empty")
	}
	if arAccountID == uuid.Nil {
		return nil, shared.ErrLinkedAccountMissing
	}

	return &Customer{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		ARAccountID:         arAccountID,
	}, nil
}
