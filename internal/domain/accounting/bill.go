package accounting

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockledger/backend/internal/domain/shared"
)

// BillStatus represents the lifecycle state of a supplier bill
type BillStatus string

const (
	BillStatusPosted BillStatus = "POSTED"
	BillStatusPaid   BillStatus = "PAID"
)

// Bill is the payables subledger record created when a goods receipt is
// posted. It is born POSTED with the full amount outstanding.
type Bill struct {
	shared.TenantAggregateRoot
	BillNumber      string          `gorm:"type:varchar(64);not null;uniqueIndex:idx_bills_tenant_number,priority:2"`
	SupplierID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	JournalEntryID  uuid.UUID       `gorm:"type:uuid;not null"`
	SourceDocID     uuid.UUID       `gorm:"type:uuid;index"`
	Total           decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	PaidAmount      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	RemainingAmount decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Status          BillStatus      `gorm:"type:varchar(16);not null;default:'POSTED'"`
	BillDate        time.Time       `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (Bill) TableName() string {
	return "bills"
}

// NewBill creates a posted bill with nothing paid against it yet
func NewBill(tenantID uuid.UUID, billNumber string, supplierID, journalEntryID uuid.UUID, total decimal.Decimal, billDate time.Time) (*Bill, error) {
	if billNumber == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Bill number cannot be empty")
	}
	if supplierID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SUPPLIER", "Bill requires a supplier")
	}
	if !total.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Bill total must be positive")
	}
	if billDate.IsZero() {
		billDate = time.Now()
	}

	return &Bill{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		BillNumber:          billNumber,
		SupplierID:          supplierID,
		JournalEntryID:      journalEntryID,
		Total:               total,
		PaidAmount:          decimal.Zero,
		RemainingAmount:     total,
		Status:              BillStatusPosted,
		BillDate:            billDate,
	}, nil
}

// RecordPayment reduces the outstanding balance. Overpayment is rejected.
func (b *Bill) RecordPayment(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if amount.GreaterThan(b.RemainingAmount) {
		return shared.NewDomainError("OVERPAYMENT", "Payment exceeds the remaining amount")
	}
	b.PaidAmount = b.PaidAmount.Add(amount)
	b.RemainingAmount = b.RemainingAmount.Sub(amount)
	if b.RemainingAmount.IsZero() {
		b.Status = BillStatusPaid
	}
	b.UpdatedAt = time.Now()
	b.IncrementVersion()
	return nil
}
