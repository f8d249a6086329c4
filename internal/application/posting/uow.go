package posting

import (
	"context"

	"github.com/stockledger/backend/internal/domain/accounting"
	"github.com/stockledger/backend/internal/domain/inventory"
	"github.com/stockledger/backend/internal/domain/partner"
)

// Repositories exposes every repository participating in a posting
// transaction. All of them observe and mutate the same transactional
// scope, so a failure anywhere rolls back everything.
type Repositories interface {
	Items() inventory.ItemRepository
	Layers() inventory.CostLayerRepository
	Ledger() inventory.StockLedgerRepository
	Accounts() accounting.AccountRepository
	Journals() accounting.JournalRepository
	Bills() accounting.BillRepository
	Invoices() accounting.InvoiceRepository
	Customers() partner.CustomerRepository
	Suppliers() partner.SupplierRepository
}

// UnitOfWork runs a function inside a single atomic transaction. The
// write phase of a posting happens entirely inside Execute; returning an
// error rolls the transaction back.
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}
