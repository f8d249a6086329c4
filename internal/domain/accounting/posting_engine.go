package accounting

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockledger/backend/internal/domain/shared"
	"github.com/stockledger/backend/internal/domain/shared/valueobject"
)

// ReceiptPosting is the accounting effect of one goods receipt line:
// inventory value added to the item's inventory account.
type ReceiptPosting struct {
	InventoryAccountID uuid.UUID
	Amount             decimal.Decimal
	Memo               string
}

// DeliveryPosting is the accounting effect of one delivery line: cost of
// goods sold recognized against inventory at the item's valuation rate,
// and revenue recognized at the agreed sale price.
type DeliveryPosting struct {
	COGSAccountID      uuid.UUID
	InventoryAccountID uuid.UUID
	RevenueAccountID   uuid.UUID
	COGSAmount         decimal.Decimal
	Revenue            decimal.Decimal
	Memo               string
}

// PostingEngine builds balanced journal entries from business events and
// applies posted entries to account balances. It is a pure domain service
// with no storage of its own.
type PostingEngine struct{}

// NewPostingEngine creates a posting engine
func NewPostingEngine() *PostingEngine {
	return &PostingEngine{}
}

// BuildGoodsReceiptJournal debits each line's inventory account and credits
// accounts payable for the grand total.
func (pe *PostingEngine) BuildGoodsReceiptJournal(tenantID uuid.UUID, number, description string, date time.Time, postings []ReceiptPosting, payableAccountID uuid.UUID) (*JournalEntry, error) {
	if len(postings) == 0 {
		return nil, shared.NewDomainError("EMPTY_JOURNAL", "Goods receipt has no lines to post")
	}
	if payableAccountID == uuid.Nil {
		return nil, shared.ErrLinkedAccountMissing
	}

	entry, err := NewJournalEntry(tenantID, number, description, date)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, p := range postings {
		if p.InventoryAccountID == uuid.Nil {
			return nil, shared.ErrLinkedAccountMissing
		}
		amount := p.Amount.Round(valueobject.ValuationScale)
		if !amount.IsPositive() {
			return nil, shared.NewDomainError("INVALID_AMOUNT", "Receipt line value must be positive")
		}
		if err := entry.AddLine(p.InventoryAccountID, amount, decimal.Zero, p.Memo); err != nil {
			return nil, err
		}
		total = total.Add(amount)
	}
	if err := entry.AddLine(payableAccountID, decimal.Zero, total, "Accounts payable"); err != nil {
		return nil, err
	}
	return entry, nil
}

// BuildDeliveryJournal recognizes revenue and cost for a delivery note:
// per line, debit COGS and credit inventory at valuation cost and credit
// the item's revenue account at the sale price, then debit accounts
// receivable for the sale total.
func (pe *PostingEngine) BuildDeliveryJournal(tenantID uuid.UUID, number, description string, date time.Time, postings []DeliveryPosting, receivableAccountID uuid.UUID) (*JournalEntry, error) {
	if len(postings) == 0 {
		return nil, shared.NewDomainError("EMPTY_JOURNAL", "Delivery note has no lines to post")
	}
	if receivableAccountID == uuid.Nil {
		return nil, shared.ErrLinkedAccountMissing
	}

	entry, err := NewJournalEntry(tenantID, number, description, date)
	if err != nil {
		return nil, err
	}

	saleTotal := decimal.Zero
	for _, p := range postings {
		if p.COGSAccountID == uuid.Nil || p.InventoryAccountID == uuid.Nil || p.RevenueAccountID == uuid.Nil {
			return nil, shared.ErrLinkedAccountMissing
		}
		cogs := p.COGSAmount.Round(valueobject.ValuationScale)
		if cogs.IsNegative() {
			return nil, shared.NewDomainError("INVALID_AMOUNT", "Cost of goods sold cannot be negative")
		}
		revenue := p.Revenue.Round(valueobject.ValuationScale)
		if !revenue.IsPositive() {
			return nil, shared.NewDomainError("INVALID_AMOUNT", "Delivery line revenue must be positive")
		}
		// Zero-cost issue (e.g. freshly backfilled stock at zero WAC)
		// has no cost side to record.
		if cogs.IsPositive() {
			if err := entry.AddLine(p.COGSAccountID, cogs, decimal.Zero, p.Memo); err != nil {
				return nil, err
			}
			if err := entry.AddLine(p.InventoryAccountID, decimal.Zero, cogs, p.Memo); err != nil {
				return nil, err
			}
		}
		if err := entry.AddLine(p.RevenueAccountID, decimal.Zero, revenue, p.Memo); err != nil {
			return nil, err
		}
		saleTotal = saleTotal.Add(revenue)
	}

	if err := entry.AddLine(receivableAccountID, saleTotal, decimal.Zero, "Accounts receivable"); err != nil {
		return nil, err
	}
	return entry, nil
}

// BuildAdjustmentJournal books a stock adjustment against a variance
// account. Positive value debits inventory, negative value credits it.
func (pe *PostingEngine) BuildAdjustmentJournal(tenantID uuid.UUID, number, description string, date time.Time, inventoryAccountID, varianceAccountID uuid.UUID, value decimal.Decimal) (*JournalEntry, error) {
	if inventoryAccountID == uuid.Nil || varianceAccountID == uuid.Nil {
		return nil, shared.ErrLinkedAccountMissing
	}
	amount := value.Round(valueobject.ValuationScale)
	if amount.IsZero() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Adjustment value cannot be zero")
	}

	entry, err := NewJournalEntry(tenantID, number, description, date)
	if err != nil {
		return nil, err
	}

	if amount.IsPositive() {
		if err := entry.AddLine(inventoryAccountID, amount, decimal.Zero, description); err != nil {
			return nil, err
		}
		if err := entry.AddLine(varianceAccountID, decimal.Zero, amount, description); err != nil {
			return nil, err
		}
	} else {
		abs := amount.Abs()
		if err := entry.AddLine(varianceAccountID, abs, decimal.Zero, description); err != nil {
			return nil, err
		}
		if err := entry.AddLine(inventoryAccountID, decimal.Zero, abs, description); err != nil {
			return nil, err
		}
	}
	return entry, nil
}

// ApplyJournal posts the entry and walks its lines into the given account
// set, mutating each balance by debit minus credit. Every line's account
// must be present; a missing account fails the whole posting.
func (pe *PostingEngine) ApplyJournal(entry *JournalEntry, accounts map[uuid.UUID]*Account) error {
	if err := entry.Post(); err != nil {
		return err
	}
	for _, line := range entry.Lines {
		account, ok := accounts[line.AccountID]
		if !ok || account == nil {
			return fmt.Errorf("journal %s line %d: %w", entry.Number, line.LineNo, shared.ErrAccountNotFound)
		}
		if err := account.Apply(line.Debit, line.Credit); err != nil {
			return err
		}
	}
	return nil
}
