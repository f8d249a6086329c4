package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stockledger/backend/internal/domain/accounting"
	"github.com/stockledger/backend/internal/domain/shared"
)

// GormBillRepository implements accounting.BillRepository using GORM
type GormBillRepository struct {
	db *gorm.DB
}

// NewGormBillRepository creates a new bill repository
func NewGormBillRepository(db *gorm.DB) *GormBillRepository {
	return &GormBillRepository{db: db}
}

// FindByIDForTenant finds a bill by ID scoped to a tenant
func (r *GormBillRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*accounting.Bill, error) {
	var bill accounting.Bill
	err := r.db.WithContext(ctx).Where("id = ? AND tenant_id = ?", id, tenantID).First(&bill).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &bill, nil
}

// FindBySupplier lists a supplier's bills, newest first
func (r *GormBillRepository) FindBySupplier(ctx context.Context, tenantID, supplierID uuid.UUID) ([]*accounting.Bill, error) {
	var bills []*accounting.Bill
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND supplier_id = ?", tenantID, supplierID).
		Order("bill_date DESC").
		Find(&bills).Error
	if err != nil {
		return nil, err
	}
	return bills, nil
}

// Save persists a bill
func (r *GormBillRepository) Save(ctx context.Context, bill *accounting.Bill) error {
	return r.db.WithContext(ctx).Save(bill).Error
}

// GormInvoiceRepository implements accounting.InvoiceRepository using GORM
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewGormInvoiceRepository creates a new invoice repository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// FindByIDForTenant finds an invoice by ID scoped to a tenant
func (r *GormInvoiceRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*accounting.Invoice, error) {
	var invoice accounting.Invoice
	err := r.db.WithContext(ctx).Where("id = ? AND tenant_id = ?", id, tenantID).First(&invoice).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &invoice, nil
}

// FindByCustomer lists a customer's invoices, newest first
func (r *GormInvoiceRepository) FindByCustomer(ctx context.Context, tenantID, customerID uuid.UUID) ([]*accounting.Invoice, error) {
	var invoices []*accounting.Invoice
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND customer_id = ?", tenantID, customerID).
		Order("invoice_date DESC").
		Find(&invoices).Error
	if err != nil {
		return nil, err
	}
	return invoices, nil
}

// Save persists an invoice
func (r *GormInvoiceRepository) Save(ctx context.Context, invoice *accounting.Invoice) error {
	return r.db.WithContext(ctx).Save(invoice).Error
}
