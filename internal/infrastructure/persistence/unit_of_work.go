package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/stockledger/backend/internal/application/posting"
	"github.com/stockledger/backend/internal/domain/accounting"
	"github.com/stockledger/backend/internal/domain/inventory"
	"github.com/stockledger/backend/internal/domain/partner"
)

// GormUnitOfWork implements posting.UnitOfWork on a single database
// transaction. Every repository handed to the callback shares the same
// *gorm.DB transaction handle, so an error anywhere rolls everything back.
type GormUnitOfWork struct {
	db *gorm.DB
}

// NewGormUnitOfWork creates a new unit of work
func NewGormUnitOfWork(db *gorm.DB) *GormUnitOfWork {
	return &GormUnitOfWork{db: db}
}

// Execute runs fn inside one transaction
func (u *GormUnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context, repos posting.Repositories) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &txRepositories{tx: tx})
	})
}

// txRepositories binds every repository to one open transaction
type txRepositories struct {
	tx *gorm.DB
}

func (r *txRepositories) Items() inventory.ItemRepository         { return NewGormItemRepository(r.tx) }
func (r *txRepositories) Layers() inventory.CostLayerRepository   { return NewGormCostLayerRepository(r.tx) }
func (r *txRepositories) Ledger() inventory.StockLedgerRepository { return NewGormStockLedgerRepository(r.tx) }
func (r *txRepositories) Accounts() accounting.AccountRepository  { return NewGormAccountRepository(r.tx) }
func (r *txRepositories) Journals() accounting.JournalRepository  { return NewGormJournalRepository(r.tx) }
func (r *txRepositories) Bills() accounting.BillRepository        { return NewGormBillRepository(r.tx) }
func (r *txRepositories) Invoices() accounting.InvoiceRepository  { return NewGormInvoiceRepository(r.tx) }
func (r *txRepositories) Customers() partner.CustomerRepository   { return NewGormCustomerRepository(r.tx) }
func (r *txRepositories) Suppliers() partner.SupplierRepository   { return NewGormSupplierRepository(r.tx) }
