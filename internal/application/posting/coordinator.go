package posting

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/stockledger/backend/internal/domain/accounting"
	"github.com/stockledger/backend/internal/domain/inventory"
	"github.com/stockledger/backend/internal/domain/shared"
	"github.com/stockledger/backend/internal/domain/shared/valueobject"
)

const defaultMaxRetries = 3

// Coordinator drives stock postings through three phases inside one
// transaction: read a snapshot of every touched aggregate, compute all new
// state in memory, then write the full set back with optimistic locks.
// A version conflict rolls the transaction back and the whole posting is
// retried from a fresh snapshot.
type Coordinator struct {
	uow        UnitOfWork
	engine     *accounting.PostingEngine
	log        *zap.Logger
	maxRetries int
}

// NewCoordinator creates a transaction coordinator
func NewCoordinator(uow UnitOfWork, engine *accounting.PostingEngine, log *zap.Logger, maxRetries int) *Coordinator {
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}
	return &Coordinator{
		uow:        uow,
		engine:     engine,
		log:        log,
		maxRetries: maxRetries,
	}
}

func (c *Coordinator) withRetry(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	var err error
	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		err = fn(ctx)
		if err == nil || !errors.Is(err, shared.ErrConcurrencyConflict) {
			return err
		}
		c.log.Warn("posting hit a version conflict, retrying",
			zap.String("operation", op),
			zap.Int("attempt", attempt),
			zap.Int("max_retries", c.maxRetries))
	}
	return err
}

// accountSet collects the accounts a posting touches together with the
// versions they were read at, loading each account at most once.
type accountSet struct {
	accounts map[uuid.UUID]*accounting.Account
	versions map[uuid.UUID]int
}

func newAccountSet() *accountSet {
	return &accountSet{
		accounts: make(map[uuid.UUID]*accounting.Account),
		versions: make(map[uuid.UUID]int),
	}
}

func (s *accountSet) load(ctx context.Context, repo accounting.AccountRepository, tenantID, id uuid.UUID) error {
	if _, ok := s.accounts[id]; ok {
		return nil
	}
	account, err := repo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return err
	}
	s.accounts[id] = account
	s.versions[id] = account.GetVersion()
	return nil
}

func (s *accountSet) saveAll(ctx context.Context, repo accounting.AccountRepository) error {
	for _, id := range writeOrder(s.accounts) {
		if err := repo.SaveWithLock(ctx, s.accounts[id], s.versions[id]); err != nil {
			return err
		}
	}
	return nil
}

// writeOrder returns the map's keys sorted by their byte value so every
// posting takes row locks in the same sequence.
func writeOrder[V any](m map[uuid.UUID]V) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return bytes.Compare(ids[i][:], ids[j][:]) < 0
	})
	return ids
}

func loadLayerBook(ctx context.Context, repo inventory.CostLayerRepository, tenantID, itemID uuid.UUID) (*inventory.LayerBook, error) {
	rows, err := repo.FindByItem(ctx, tenantID, itemID)
	if err != nil {
		return nil, err
	}
	layers := make([]*inventory.CostLayer, 0, len(rows))
	for i := range rows {
		layers = append(layers, &rows[i])
	}
	return inventory.NewLayerBook(tenantID, itemID, layers), nil
}

func saveLayerBook(ctx context.Context, repo inventory.CostLayerRepository, book *inventory.LayerBook) error {
	for _, layer := range book.Layers() {
		if err := repo.Save(ctx, layer); err != nil {
			return err
		}
	}
	return nil
}

// PostGoodsReceipt books a goods receipt note: each line raises the item's
// quantity and WAC, adds or merges a cost layer, and appends a ledger
// entry. One balanced journal debits inventory and credits the supplier's
// payables account, and a POSTED bill is opened for the full total.
func (c *Coordinator) PostGoodsReceipt(ctx context.Context, cmd GoodsReceiptCommand) (*GoodsReceiptResult, error) {
	var result *GoodsReceiptResult
	err := c.withRetry(ctx, "goods_receipt", func(ctx context.Context) error {
		return c.uow.Execute(ctx, func(ctx context.Context, repos Repositories) error {
			out, err := c.postGoodsReceipt(ctx, repos, cmd)
			if err != nil {
				return err
			}
			result = out
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	c.log.Info("goods receipt posted",
		zap.String("tenant_id", cmd.TenantID.String()),
		zap.String("journal_number", result.JournalNumber),
		zap.String("bill_number", result.BillNumber),
		zap.String("total", result.Total.String()))
	return result, nil
}

func (c *Coordinator) postGoodsReceipt(ctx context.Context, repos Repositories, cmd GoodsReceiptCommand) (*GoodsReceiptResult, error) {
	date := cmd.Date
	if date.IsZero() {
		date = time.Now()
	}

	// Read phase: snapshot the supplier, every touched item with its cost
	// layers, and every touched account.
	supplier, err := repos.Suppliers().FindByIDForTenant(ctx, cmd.TenantID, cmd.SupplierID)
	if err != nil {
		return nil, err
	}

	items := make(map[uuid.UUID]*inventory.Item)
	itemVersions := make(map[uuid.UUID]int)
	books := make(map[uuid.UUID]*inventory.LayerBook)
	accounts := newAccountSet()

	for _, line := range cmd.Lines {
		if !line.Quantity.IsPositive() {
			return nil, shared.NewDomainError("INVALID_QUANTITY", "Receipt quantity must be positive")
		}
		if !line.UnitCost.IsPositive() {
			return nil, shared.NewDomainError("INVALID_COST", "Receipt unit cost must be positive")
		}
		if _, ok := items[line.ItemID]; ok {
			continue
		}
		item, err := repos.Items().FindByIDForTenant(ctx, cmd.TenantID, line.ItemID)
		if err != nil {
			return nil, err
		}
		book, err := loadLayerBook(ctx, repos.Layers(), cmd.TenantID, line.ItemID)
		if err != nil {
			return nil, err
		}
		items[line.ItemID] = item
		itemVersions[line.ItemID] = item.GetVersion()
		books[line.ItemID] = book
		if err := accounts.load(ctx, repos.Accounts(), cmd.TenantID, item.InventoryAccountID); err != nil {
			return nil, err
		}
	}
	if err := accounts.load(ctx, repos.Accounts(), cmd.TenantID, supplier.APAccountID); err != nil {
		return nil, err
	}

	// Compute phase: apply every line to the in-memory snapshot.
	docID := uuid.New()
	total := decimal.Zero
	postings := make([]accounting.ReceiptPosting, 0, len(cmd.Lines))
	ledgerEntries := make([]*inventory.StockLedgerEntry, 0, len(cmd.Lines))
	lineResults := make([]ItemPostingResult, 0, len(cmd.Lines))

	for _, line := range cmd.Lines {
		item := items[line.ItemID]
		if err := item.ApplyReceipt(line.Quantity, line.UnitCost); err != nil {
			return nil, err
		}
		if _, err := books[line.ItemID].AddOrMerge(line.UnitCost, line.Quantity); err != nil {
			return nil, err
		}

		value := line.Quantity.Mul(line.UnitCost).Round(valueobject.ValuationScale)
		total = total.Add(value)
		postings = append(postings, accounting.ReceiptPosting{
			InventoryAccountID: item.InventoryAccountID,
			Amount:             value,
			Memo:               fmt.Sprintf("Receipt of %s x %s", line.Quantity.String(), item.SKU),
		})

		entry, err := inventory.NewStockLedgerEntry(
			cmd.TenantID, line.ItemID, cmd.WarehouseID,
			line.Quantity, line.UnitCost, item.CurrentWAC,
			inventory.SourceDocTypeGRN, docID.String(),
		)
		if err != nil {
			return nil, err
		}
		ledgerEntries = append(ledgerEntries, entry.WithDescription(cmd.Reference))

		lineResults = append(lineResults, ItemPostingResult{
			ItemID:    item.ID,
			SKU:       item.SKU,
			Quantity:  line.Quantity,
			NewQty:    item.CurrentQty,
			NewWAC:    item.CurrentWAC,
			LineValue: value,
		})
	}

	seq, err := repos.Journals().NextNumber(ctx, cmd.TenantID, "JE-GRN")
	if err != nil {
		return nil, err
	}
	journalNumber := fmt.Sprintf("JE-GRN-%d", seq)
	billSeq, err := repos.Journals().NextNumber(ctx, cmd.TenantID, "BILL")
	if err != nil {
		return nil, err
	}
	billNumber := fmt.Sprintf("BILL-%d", billSeq)

	description := fmt.Sprintf("Goods receipt from %s", supplier.Name)
	journal, err := c.engine.BuildGoodsReceiptJournal(cmd.TenantID, journalNumber, description, date, postings, supplier.APAccountID)
	if err != nil {
		return nil, err
	}
	journal.LinkSource(inventory.SourceDocTypeGRN.String(), docID)
	if err := c.engine.ApplyJournal(journal, accounts.accounts); err != nil {
		return nil, err
	}

	bill, err := accounting.NewBill(cmd.TenantID, billNumber, cmd.SupplierID, journal.ID, total, date)
	if err != nil {
		return nil, err
	}
	bill.SourceDocID = docID

	// Write phase: persist the whole write set under optimistic locks.
	for _, id := range writeOrder(items) {
		if err := repos.Items().SaveWithLock(ctx, items[id], itemVersions[id]); err != nil {
			return nil, err
		}
	}
	for _, id := range writeOrder(books) {
		if err := saveLayerBook(ctx, repos.Layers(), books[id]); err != nil {
			return nil, err
		}
	}
	for _, entry := range ledgerEntries {
		if err := repos.Ledger().Append(ctx, entry); err != nil {
			return nil, err
		}
	}
	if err := repos.Journals().Save(ctx, journal); err != nil {
		return nil, err
	}
	if err := repos.Bills().Save(ctx, bill); err != nil {
		return nil, err
	}
	if err := accounts.saveAll(ctx, repos.Accounts()); err != nil {
		return nil, err
	}

	return &GoodsReceiptResult{
		JournalEntryID: journal.ID,
		JournalNumber:  journalNumber,
		BillID:         bill.ID,
		BillNumber:     billNumber,
		Total:          total,
		Lines:          lineResults,
	}, nil
}

// PostDeliveryNote books a delivery note: each line lowers the item's
// quantity at the current WAC, consumes FIFO cost layers, and appends a
// negative ledger entry. One journal recognizes COGS against inventory and
// revenue against the customer's receivables account, and a POSTED invoice
// is opened for the sale total. The sale price is taken from the command
// and never derived from cost.
func (c *Coordinator) PostDeliveryNote(ctx context.Context, cmd DeliveryNoteCommand) (*DeliveryNoteResult, error) {
	var result *DeliveryNoteResult
	err := c.withRetry(ctx, "delivery_note", func(ctx context.Context) error {
		return c.uow.Execute(ctx, func(ctx context.Context, repos Repositories) error {
			out, err := c.postDeliveryNote(ctx, repos, cmd)
			if err != nil {
				return err
			}
			result = out
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	c.log.Info("delivery note posted",
		zap.String("tenant_id", cmd.TenantID.String()),
		zap.String("journal_number", result.JournalNumber),
		zap.String("invoice_number", result.InvoiceNumber),
		zap.String("total_revenue", result.TotalRevenue.String()),
		zap.String("total_cogs", result.TotalCOGS.String()))
	return result, nil
}

func (c *Coordinator) postDeliveryNote(ctx context.Context, repos Repositories, cmd DeliveryNoteCommand) (*DeliveryNoteResult, error) {
	date := cmd.Date
	if date.IsZero() {
		date = time.Now()
	}

	customer, err := repos.Customers().FindByIDForTenant(ctx, cmd.TenantID, cmd.CustomerID)
	if err != nil {
		return nil, err
	}

	items := make(map[uuid.UUID]*inventory.Item)
	itemVersions := make(map[uuid.UUID]int)
	books := make(map[uuid.UUID]*inventory.LayerBook)
	accounts := newAccountSet()

	for _, line := range cmd.Lines {
		if !line.Quantity.IsPositive() {
			return nil, shared.NewDomainError("INVALID_QUANTITY", "Delivery quantity must be positive")
		}
		if !line.UnitPrice.IsPositive() {
			return nil, shared.NewDomainError("INVALID_PRICE", "Delivery unit price must be positive")
		}
		if _, ok := items[line.ItemID]; ok {
			continue
		}
		item, err := repos.Items().FindByIDForTenant(ctx, cmd.TenantID, line.ItemID)
		if err != nil {
			return nil, err
		}
		book, err := loadLayerBook(ctx, repos.Layers(), cmd.TenantID, line.ItemID)
		if err != nil {
			return nil, err
		}
		items[line.ItemID] = item
		itemVersions[line.ItemID] = item.GetVersion()
		books[line.ItemID] = book
		if err := accounts.load(ctx, repos.Accounts(), cmd.TenantID, item.InventoryAccountID); err != nil {
			return nil, err
		}
		if err := accounts.load(ctx, repos.Accounts(), cmd.TenantID, item.COGSAccountID); err != nil {
			return nil, err
		}
		if err := accounts.load(ctx, repos.Accounts(), cmd.TenantID, item.RevenueAccountID); err != nil {
			return nil, err
		}
	}
	if err := accounts.load(ctx, repos.Accounts(), cmd.TenantID, customer.ARAccountID); err != nil {
		return nil, err
	}

	docID := uuid.New()
	totalRevenue := decimal.Zero
	totalCOGS := decimal.Zero
	postings := make([]accounting.DeliveryPosting, 0, len(cmd.Lines))
	ledgerEntries := make([]*inventory.StockLedgerEntry, 0, len(cmd.Lines))
	lineResults := make([]ItemPostingResult, 0, len(cmd.Lines))

	for _, line := range cmd.Lines {
		item := items[line.ItemID]
		book := books[line.ItemID]

		// Reconcile the layer book with the item-level quantity before
		// drawing from it. Legacy stock without layers gets a synthetic
		// layer at the current WAC.
		book.Backfill(item.CurrentQty, item.CurrentWAC)

		wacAtIssue := item.CurrentWAC
		cogs, err := item.ApplyIssue(line.Quantity)
		if err != nil {
			return nil, err
		}
		if _, err := book.ConsumeFIFO(line.Quantity); err != nil {
			return nil, err
		}

		revenue := line.Quantity.Mul(line.UnitPrice).Round(valueobject.ValuationScale)
		totalRevenue = totalRevenue.Add(revenue)
		totalCOGS = totalCOGS.Add(cogs)
		postings = append(postings, accounting.DeliveryPosting{
			COGSAccountID:      item.COGSAccountID,
			InventoryAccountID: item.InventoryAccountID,
			RevenueAccountID:   item.RevenueAccountID,
			COGSAmount:         cogs,
			Revenue:            revenue,
			Memo:               fmt.Sprintf("Delivery of %s x %s", line.Quantity.String(), item.SKU),
		})

		entry, err := inventory.NewStockLedgerEntry(
			cmd.TenantID, line.ItemID, cmd.WarehouseID,
			line.Quantity.Neg(), wacAtIssue, item.CurrentWAC,
			inventory.SourceDocTypeDO, docID.String(),
		)
		if err != nil {
			return nil, err
		}
		ledgerEntries = append(ledgerEntries, entry.WithDescription(cmd.Reference))

		lineResults = append(lineResults, ItemPostingResult{
			ItemID:    item.ID,
			SKU:       item.SKU,
			Quantity:  line.Quantity,
			NewQty:    item.CurrentQty,
			NewWAC:    item.CurrentWAC,
			LineValue: cogs,
		})
	}

	seq, err := repos.Journals().NextNumber(ctx, cmd.TenantID, "JE-DO")
	if err != nil {
		return nil, err
	}
	journalNumber := fmt.Sprintf("JE-DO-%d", seq)
	invoiceSeq, err := repos.Journals().NextNumber(ctx, cmd.TenantID, "INV")
	if err != nil {
		return nil, err
	}
	invoiceNumber := fmt.Sprintf("INV-%d", invoiceSeq)

	description := fmt.Sprintf("Delivery to %s", customer.Name)
	journal, err := c.engine.BuildDeliveryJournal(cmd.TenantID, journalNumber, description, date, postings, customer.ARAccountID)
	if err != nil {
		return nil, err
	}
	journal.LinkSource(inventory.SourceDocTypeDO.String(), docID)
	if err := c.engine.ApplyJournal(journal, accounts.accounts); err != nil {
		return nil, err
	}

	invoice, err := accounting.NewInvoice(cmd.TenantID, invoiceNumber, cmd.CustomerID, journal.ID, totalRevenue, date)
	if err != nil {
		return nil, err
	}
	invoice.SourceDocID = docID

	for _, id := range writeOrder(items) {
		if err := repos.Items().SaveWithLock(ctx, items[id], itemVersions[id]); err != nil {
			return nil, err
		}
	}
	for _, id := range writeOrder(books) {
		if err := saveLayerBook(ctx, repos.Layers(), books[id]); err != nil {
			return nil, err
		}
	}
	for _, entry := range ledgerEntries {
		if err := repos.Ledger().Append(ctx, entry); err != nil {
			return nil, err
		}
	}
	if err := repos.Journals().Save(ctx, journal); err != nil {
		return nil, err
	}
	if err := repos.Invoices().Save(ctx, invoice); err != nil {
		return nil, err
	}
	if err := accounts.saveAll(ctx, repos.Accounts()); err != nil {
		return nil, err
	}

	return &DeliveryNoteResult{
		JournalEntryID: journal.ID,
		JournalNumber:  journalNumber,
		InvoiceID:      invoice.ID,
		InvoiceNumber:  invoiceNumber,
		TotalRevenue:   totalRevenue,
		TotalCOGS:      totalCOGS,
		Lines:          lineResults,
	}, nil
}

// PostTransfer books a stock transfer between warehouses. Each line yields
// a pair of ledger entries at the current valuation rate, stock out of the
// source and stock into the destination. Item quantity, WAC, and account
// balances are unchanged, so no journal entry is created.
func (c *Coordinator) PostTransfer(ctx context.Context, cmd TransferCommand) (*TransferResult, error) {
	if cmd.FromWarehouseID == cmd.ToWarehouseID {
		return nil, shared.NewDomainError("INVALID_TRANSFER", "Source and destination warehouses must differ")
	}

	var result *TransferResult
	err := c.withRetry(ctx, "transfer", func(ctx context.Context) error {
		return c.uow.Execute(ctx, func(ctx context.Context, repos Repositories) error {
			out, err := c.postTransfer(ctx, repos, cmd)
			if err != nil {
				return err
			}
			result = out
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	c.log.Info("stock transfer posted",
		zap.String("tenant_id", cmd.TenantID.String()),
		zap.Int("lines", len(cmd.Lines)))
	return result, nil
}

func (c *Coordinator) postTransfer(ctx context.Context, repos Repositories, cmd TransferCommand) (*TransferResult, error) {
	// Read phase: snapshot every touched item and the total quantity the
	// transfer draws from it.
	items := make(map[uuid.UUID]*inventory.Item)
	itemVersions := make(map[uuid.UUID]int)
	moved := make(map[uuid.UUID]decimal.Decimal)

	for _, line := range cmd.Lines {
		if !line.Quantity.IsPositive() {
			return nil, shared.NewDomainError("INVALID_QUANTITY", "Transfer quantity must be positive")
		}
		if _, ok := items[line.ItemID]; !ok {
			item, err := repos.Items().FindByIDForTenant(ctx, cmd.TenantID, line.ItemID)
			if err != nil {
				return nil, err
			}
			items[line.ItemID] = item
			itemVersions[line.ItemID] = item.GetVersion()
			moved[line.ItemID] = decimal.Zero
		}
		moved[line.ItemID] = moved[line.ItemID].Add(line.Quantity)
	}
	for id, qty := range moved {
		if !items[id].CanFulfill(qty) {
			return nil, shared.ErrInsufficientStock
		}
	}

	// Compute phase: a pair of opposite entries per line at the current
	// valuation rate.
	docID := uuid.New()
	ledgerEntries := make([]*inventory.StockLedgerEntry, 0, len(cmd.Lines)*2)

	for _, line := range cmd.Lines {
		item := items[line.ItemID]
		out, err := inventory.NewStockLedgerEntry(
			cmd.TenantID, line.ItemID, cmd.FromWarehouseID,
			line.Quantity.Neg(), item.CurrentWAC, item.CurrentWAC,
			inventory.SourceDocTypeTRF, docID.String(),
		)
		if err != nil {
			return nil, err
		}
		in, err := inventory.NewStockLedgerEntry(
			cmd.TenantID, line.ItemID, cmd.ToWarehouseID,
			line.Quantity, item.CurrentWAC, item.CurrentWAC,
			inventory.SourceDocTypeTRF, docID.String(),
		)
		if err != nil {
			return nil, err
		}
		desc := cmd.Reference
		if desc == "" {
			desc = fmt.Sprintf("Transfer of %s x %s", line.Quantity.String(), item.SKU)
		}
		ledgerEntries = append(ledgerEntries, out.WithDescription(desc), in.WithDescription(desc))
	}

	// Write phase: claim each item's version even though its quantity and
	// WAC are unchanged. A concurrent delivery that shipped the stock out
	// after our snapshot bumps the version, fails the claim, and reruns
	// the availability check on a fresh read.
	for _, id := range writeOrder(items) {
		item := items[id]
		item.IncrementVersion()
		if err := repos.Items().SaveWithLock(ctx, item, itemVersions[id]); err != nil {
			return nil, err
		}
	}
	entryIDs := make([]uuid.UUID, 0, len(ledgerEntries))
	for _, entry := range ledgerEntries {
		if err := repos.Ledger().Append(ctx, entry); err != nil {
			return nil, err
		}
		entryIDs = append(entryIDs, entry.ID)
	}

	return &TransferResult{LedgerEntryIDs: entryIDs}, nil
}

// PostAdjustment books a signed stock count correction valued at the
// current WAC. Positive deltas add a cost layer at the current WAC;
// negative deltas consume FIFO layers. When a variance account is given,
// the value change is also booked through a journal entry.
func (c *Coordinator) PostAdjustment(ctx context.Context, cmd AdjustmentCommand) (*AdjustmentResult, error) {
	if cmd.QuantityDelta.IsZero() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Adjustment delta cannot be zero")
	}

	var result *AdjustmentResult
	err := c.withRetry(ctx, "adjustment", func(ctx context.Context) error {
		return c.uow.Execute(ctx, func(ctx context.Context, repos Repositories) error {
			out, err := c.postAdjustment(ctx, repos, cmd)
			if err != nil {
				return err
			}
			result = out
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	c.log.Info("stock adjustment posted",
		zap.String("tenant_id", cmd.TenantID.String()),
		zap.String("item_id", cmd.ItemID.String()),
		zap.String("quantity_delta", cmd.QuantityDelta.String()),
		zap.String("value", result.AdjustmentValue.String()))
	return result, nil
}

func (c *Coordinator) postAdjustment(ctx context.Context, repos Repositories, cmd AdjustmentCommand) (*AdjustmentResult, error) {
	date := cmd.Date
	if date.IsZero() {
		date = time.Now()
	}

	item, err := repos.Items().FindByIDForTenant(ctx, cmd.TenantID, cmd.ItemID)
	if err != nil {
		return nil, err
	}
	itemVersion := item.GetVersion()
	book, err := loadLayerBook(ctx, repos.Layers(), cmd.TenantID, cmd.ItemID)
	if err != nil {
		return nil, err
	}

	accounts := newAccountSet()
	withJournal := cmd.VarianceAccountID != uuid.Nil
	if withJournal {
		if err := accounts.load(ctx, repos.Accounts(), cmd.TenantID, item.InventoryAccountID); err != nil {
			return nil, err
		}
		if err := accounts.load(ctx, repos.Accounts(), cmd.TenantID, cmd.VarianceAccountID); err != nil {
			return nil, err
		}
	}

	book.Backfill(item.CurrentQty, item.CurrentWAC)
	wacBefore := item.CurrentWAC
	if err := item.ApplyAdjustment(cmd.QuantityDelta); err != nil {
		return nil, err
	}
	if cmd.QuantityDelta.IsPositive() {
		if _, err := book.AddOrMerge(wacBefore, cmd.QuantityDelta); err != nil {
			return nil, err
		}
	} else {
		if _, err := book.ConsumeFIFO(cmd.QuantityDelta.Abs()); err != nil {
			return nil, err
		}
	}
	value := cmd.QuantityDelta.Mul(wacBefore).Round(valueobject.ValuationScale)

	docID := uuid.New()
	entry, err := inventory.NewStockLedgerEntry(
		cmd.TenantID, cmd.ItemID, cmd.WarehouseID,
		cmd.QuantityDelta, wacBefore, item.CurrentWAC,
		inventory.SourceDocTypeADJ, docID.String(),
	)
	if err != nil {
		return nil, err
	}
	entry.WithDescription(cmd.Reason)

	// A zero-WAC item yields a zero-value adjustment, nothing to book.
	var journal *accounting.JournalEntry
	var journalNumber string
	if withJournal && !value.IsZero() {
		seq, err := repos.Journals().NextNumber(ctx, cmd.TenantID, "JE-ADJ")
		if err != nil {
			return nil, err
		}
		journalNumber = fmt.Sprintf("JE-ADJ-%d", seq)
		journal, err = c.engine.BuildAdjustmentJournal(cmd.TenantID, journalNumber, cmd.Reason, date, item.InventoryAccountID, cmd.VarianceAccountID, value)
		if err != nil {
			return nil, err
		}
		journal.LinkSource(inventory.SourceDocTypeADJ.String(), docID)
		if err := c.engine.ApplyJournal(journal, accounts.accounts); err != nil {
			return nil, err
		}
	}

	if err := repos.Items().SaveWithLock(ctx, item, itemVersion); err != nil {
		return nil, err
	}
	if err := saveLayerBook(ctx, repos.Layers(), book); err != nil {
		return nil, err
	}
	if err := repos.Ledger().Append(ctx, entry); err != nil {
		return nil, err
	}
	if journal != nil {
		if err := repos.Journals().Save(ctx, journal); err != nil {
			return nil, err
		}
		if err := accounts.saveAll(ctx, repos.Accounts()); err != nil {
			return nil, err
		}
	}

	result := &AdjustmentResult{
		LedgerEntryID:   entry.ID,
		NewQty:          item.CurrentQty,
		NewWAC:          item.CurrentWAC,
		AdjustmentValue: value,
	}
	if journal != nil {
		result.JournalEntryID = journal.ID
		result.JournalNumber = journalNumber
	}
	return result, nil
}
