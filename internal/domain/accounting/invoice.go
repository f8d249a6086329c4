package accounting

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockledger/backend/internal/domain/shared"
)

// InvoiceStatus represents the lifecycle state of a customer invoice
type InvoiceStatus string

const (
	InvoiceStatusPosted InvoiceStatus = "POSTED"
	InvoiceStatusPaid   InvoiceStatus = "PAID"
)

// Invoice is the receivables subledger record created when a delivery note
// is posted. Like bills, invoices are born POSTED with the full amount open.
type Invoice struct {
	shared.TenantAggregateRoot
	InvoiceNumber   string          `gorm:"type:varchar(64);not null;uniqueIndex:idx_invoices_tenant_number,priority:2"`
	CustomerID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	JournalEntryID  uuid.UUID       `gorm:"type:uuid;not null"`
	SourceDocID     uuid.UUID       `gorm:"type:uuid;index"`
	Total           decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	PaidAmount      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	RemainingAmount decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Status          InvoiceStatus   `gorm:"type:varchar(16);not null;default:'POSTED'"`
	InvoiceDate     time.Time       `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (Invoice) TableName() string {
	return "invoices"
}

// NewInvoice creates a posted invoice with nothing collected against it yet
func NewInvoice(tenantID uuid.UUID, invoiceNumber string, customerID, journalEntryID uuid.UUID, total decimal.Decimal, invoiceDate time.Time) (*Invoice, error) {
	if invoiceNumber == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Invoice number cannot be empty")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Invoice requires a customer")
	}
	if !total.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Invoice total must be positive")
	}
	if invoiceDate.IsZero() {
		invoiceDate = time.Now()
	}

	return &Invoice{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		InvoiceNumber:       invoiceNumber,
		CustomerID:          customerID,
		JournalEntryID:      journalEntryID,
		Total:               total,
		PaidAmount:          decimal.Zero,
		RemainingAmount:     total,
		Status:              InvoiceStatusPosted,
		InvoiceDate:         invoiceDate,
	}, nil
}

// RecordReceipt reduces the outstanding balance. Overcollection is rejected.
func (i *Invoice) RecordReceipt(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Receipt amount must be positive")
	}
	if amount.GreaterThan(i.RemainingAmount) {
		return shared.NewDomainError("OVERPAYMENT", "Receipt exceeds the remaining amount")
	}
	i.PaidAmount = i.PaidAmount.Add(amount)
	i.RemainingAmount = i.RemainingAmount.Sub(amount)
	if i.RemainingAmount.IsZero() {
		i.Status = InvoiceStatusPaid
	}
	i.UpdatedAt = time.Now()
	i.IncrementVersion()
	return nil
}
