package accounting

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PostedLine is a flattened read model of one posted journal line together
// with its header fields, used by ledger and statement reports.
type PostedLine struct {
	JournalEntryID uuid.UUID
	Number         string
	Description    string
	Date           time.Time
	AccountID      uuid.UUID
	Debit          decimal.Decimal
	Credit         decimal.Decimal
	Memo           string
}

// AccountRepository persists ledger accounts
type AccountRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Account, error)
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Account, error)
	FindByCodeForTenant(ctx context.Context, tenantID uuid.UUID, code string) (*Account, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]*Account, error)
	Save(ctx context.Context, account *Account) error
	// SaveWithLock persists the account only if the stored version still
	// matches, and returns shared.ErrConcurrencyConflict otherwise.
	SaveWithLock(ctx context.Context, account *Account, expectedVersion int) error
}

// JournalRepository persists journal entries with their lines. Posted
// entries are never updated.
type JournalRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*JournalEntry, error)
	FindBySourceDoc(ctx context.Context, tenantID uuid.UUID, docType string, docID uuid.UUID) ([]*JournalEntry, error)
	// FindPostedLinesByAccount returns all posted lines touching the
	// account in chronological order (date, then creation time).
	FindPostedLinesByAccount(ctx context.Context, tenantID, accountID uuid.UUID) ([]PostedLine, error)
	// NextNumber reserves the next sequence value for the given numbering
	// series, e.g. "JE-GRN" or "BILL".
	NextNumber(ctx context.Context, tenantID uuid.UUID, series string) (int64, error)
	Save(ctx context.Context, entry *JournalEntry) error
}

// BillRepository persists supplier bills
type BillRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Bill, error)
	FindBySupplier(ctx context.Context, tenantID, supplierID uuid.UUID) ([]*Bill, error)
	Save(ctx context.Context, bill *Bill) error
}

// InvoiceRepository persists customer invoices
type InvoiceRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Invoice, error)
	FindByCustomer(ctx context.Context, tenantID, customerID uuid.UUID) ([]*Invoice, error)
	Save(ctx context.Context, invoice *Invoice) error
}
