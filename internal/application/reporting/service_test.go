package reporting

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/stockledger/backend/internal/domain/accounting"
	"github.com/stockledger/backend/internal/domain/inventory"
	"github.com/stockledger/backend/internal/domain/partner"
	"github.com/stockledger/backend/internal/domain/shared"
	"github.com/stockledger/backend/internal/domain/shared/valueobject"
)

type stubAccountRepo struct {
	accounts map[uuid.UUID]*accounting.Account
}

func (r *stubAccountRepo) FindByID(ctx context.Context, id uuid.UUID) (*accounting.Account, error) {
	account, ok := r.accounts[id]
	if !ok {
		return nil, shared.ErrAccountNotFound
	}
	return account, nil
}

func (r *stubAccountRepo) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*accounting.Account, error) {
	return r.FindByID(ctx, id)
}

func (r *stubAccountRepo) FindByCodeForTenant(ctx context.Context, tenantID uuid.UUID, code string) (*accounting.Account, error) {
	for _, account := range r.accounts {
		if account.Code == code {
			return account, nil
		}
	}
	return nil, shared.ErrAccountNotFound
}

func (r *stubAccountRepo) FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]*accounting.Account, error) {
	out := make([]*accounting.Account, 0, len(r.accounts))
	for _, account := range r.accounts {
		out = append(out, account)
	}
	return out, nil
}

func (r *stubAccountRepo) Save(ctx context.Context, account *accounting.Account) error { return nil }

func (r *stubAccountRepo) SaveWithLock(ctx context.Context, account *accounting.Account, expectedVersion int) error {
	return nil
}

type stubJournalRepo struct {
	lines map[uuid.UUID][]accounting.PostedLine
}

func (r *stubJournalRepo) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*accounting.JournalEntry, error) {
	return nil, shared.ErrNotFound
}

func (r *stubJournalRepo) FindBySourceDoc(ctx context.Context, tenantID uuid.UUID, docType string, docID uuid.UUID) ([]*accounting.JournalEntry, error) {
	return nil, nil
}

func (r *stubJournalRepo) FindPostedLinesByAccount(ctx context.Context, tenantID, accountID uuid.UUID) ([]accounting.PostedLine, error) {
	return r.lines[accountID], nil
}

func (r *stubJournalRepo) NextNumber(ctx context.Context, tenantID uuid.UUID, series string) (int64, error) {
	return 0, nil
}

func (r *stubJournalRepo) Save(ctx context.Context, entry *accounting.JournalEntry) error { return nil }

type stubItemRepo struct {
	items      []inventory.Item
	lastFilter shared.Filter
}

func (r *stubItemRepo) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Item, error) {
	return nil, shared.ErrItemNotFound
}

func (r *stubItemRepo) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*inventory.Item, error) {
	return nil, shared.ErrItemNotFound
}

func (r *stubItemRepo) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]inventory.Item, error) {
	r.lastFilter = filter
	if filter.PageSize > 0 && len(r.items) > filter.PageSize {
		return r.items[:filter.PageSize], nil
	}
	return r.items, nil
}

func (r *stubItemRepo) Save(ctx context.Context, item *inventory.Item) error { return nil }

func (r *stubItemRepo) SaveWithLock(ctx context.Context, item *inventory.Item, expectedVersion int) error {
	return nil
}

func (r *stubItemRepo) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	return int64(len(r.items)), nil
}

func (r *stubItemRepo) SumTotalValueForTenant(ctx context.Context, tenantID uuid.UUID) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, item := range r.items {
		total = total.Add(item.TotalValue)
	}
	return total, nil
}

type stubCustomerRepo struct {
	customers map[uuid.UUID]*partner.Customer
}

func (r *stubCustomerRepo) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*partner.Customer, error) {
	customer, ok := r.customers[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return customer, nil
}

func (r *stubCustomerRepo) FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]*partner.Customer, error) {
	return nil, nil
}

func (r *stubCustomerRepo) Save(ctx context.Context, customer *partner.Customer) error { return nil }

func mustAccount(t *testing.T, tenantID uuid.UUID, code, name string, typ accounting.AccountType, balance string) *accounting.Account {
	t.Helper()
	account, err := accounting.NewAccount(tenantID, code, name, typ)
	require.NoError(t, err)
	account.Balance = decimal.RequireFromString(balance)
	return account
}

func postedLine(accountID uuid.UUID, date time.Time, number, debit, credit string) accounting.PostedLine {
	return accounting.PostedLine{
		JournalEntryID: uuid.New(),
		Number:         number,
		Date:           date,
		AccountID:      accountID,
		Debit:          decimal.RequireFromString(debit),
		Credit:         decimal.RequireFromString(credit),
	}
}

func newService(accounts *stubAccountRepo, journals *stubJournalRepo, items *stubItemRepo, customers *stubCustomerRepo) *Service {
	if accounts == nil {
		accounts = &stubAccountRepo{accounts: map[uuid.UUID]*accounting.Account{}}
	}
	if journals == nil {
		journals = &stubJournalRepo{lines: map[uuid.UUID][]accounting.PostedLine{}}
	}
	if items == nil {
		items = &stubItemRepo{}
	}
	if customers == nil {
		customers = &stubCustomerRepo{customers: map[uuid.UUID]*partner.Customer{}}
	}
	return NewService(accounts, journals, items, customers, zap.NewNop())
}

func TestTrialBalance(t *testing.T) {
	tenantID := uuid.New()

	t.Run("splits balances into debit and credit columns", func(t *testing.T) {
		inventoryAcct := mustAccount(t, tenantID, "1400", "Inventory", accounting.AccountTypeAsset, "270")
		arAcct := mustAccount(t, tenantID, "1200", "Receivable", accounting.AccountTypeAsset, "600")
		apAcct := mustAccount(t, tenantID, "2100", "Payable", accounting.AccountTypeLiability, "-270")
		revenueAcct := mustAccount(t, tenantID, "4100", "Revenue", accounting.AccountTypeRevenue, "-600")
		emptyAcct := mustAccount(t, tenantID, "6100", "Rent", accounting.AccountTypeExpense, "0")

		svc := newService(&stubAccountRepo{accounts: map[uuid.UUID]*accounting.Account{
			inventoryAcct.ID: inventoryAcct,
			arAcct.ID:        arAcct,
			apAcct.ID:        apAcct,
			revenueAcct.ID:   revenueAcct,
			emptyAcct.ID:     emptyAcct,
		}}, nil, nil, nil)

		report, err := svc.TrialBalance(context.Background(), tenantID)
		require.NoError(t, err)

		assert.Len(t, report.Rows, 4, "zero balances are omitted")
		assert.True(t, report.TotalDebit.Equal(decimal.RequireFromString("870")))
		assert.True(t, report.TotalCredit.Equal(decimal.RequireFromString("870")))
		assert.True(t, report.Balanced)

		for _, row := range report.Rows {
			switch row.Code {
			case "1400", "1200":
				assert.True(t, row.Credit.IsZero())
			case "2100", "4100":
				assert.True(t, row.Debit.IsZero())
			}
		}
	})

	t.Run("flags an unbalanced ledger", func(t *testing.T) {
		oddAcct := mustAccount(t, tenantID, "1400", "Inventory", accounting.AccountTypeAsset, "100")
		svc := newService(&stubAccountRepo{accounts: map[uuid.UUID]*accounting.Account{oddAcct.ID: oddAcct}}, nil, nil, nil)

		report, err := svc.TrialBalance(context.Background(), tenantID)
		require.NoError(t, err)
		assert.False(t, report.Balanced)
	})
}

func TestGeneralLedger(t *testing.T) {
	tenantID := uuid.New()
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 31, 23, 59, 59, 0, time.UTC)

	t.Run("reconstructs the opening balance from the current one", func(t *testing.T) {
		account := mustAccount(t, tenantID, "1200", "Receivable", accounting.AccountTypeAsset, "100")
		journals := &stubJournalRepo{lines: map[uuid.UUID][]accounting.PostedLine{
			account.ID: {
				postedLine(account.ID, from.AddDate(0, -1, 0), "JE-DO-1", "40", "0"),
				postedLine(account.ID, from.AddDate(0, 0, 5), "JE-DO-2", "50", "0"),
				postedLine(account.ID, from.AddDate(0, 0, 10), "JE-DO-3", "0", "20"),
				postedLine(account.ID, to.AddDate(0, 1, 0), "JE-DO-4", "30", "0"),
			},
		}}
		svc := newService(&stubAccountRepo{accounts: map[uuid.UUID]*accounting.Account{account.ID: account}}, journals, nil, nil)

		report, err := svc.GeneralLedger(context.Background(), tenantID, account.ID, from, to)
		require.NoError(t, err)

		// current 100 = opening 40 + period (50-20) + future 30
		assert.True(t, report.OpeningBalance.Equal(decimal.RequireFromString("40")), "got %s", report.OpeningBalance)
		assert.True(t, report.ClosingBalance.Equal(decimal.RequireFromString("70")))
		assert.True(t, report.PeriodDebit.Equal(decimal.RequireFromString("50")))
		assert.True(t, report.PeriodCredit.Equal(decimal.RequireFromString("20")))

		require.Len(t, report.Lines, 2)
		assert.True(t, report.Lines[0].RunningBalance.Equal(decimal.RequireFromString("90")))
		assert.True(t, report.Lines[1].RunningBalance.Equal(decimal.RequireFromString("70")))
		assert.Equal(t, "JE-DO-2", report.Lines[0].JournalNumber)
	})

	t.Run("unknown account fails", func(t *testing.T) {
		svc := newService(nil, nil, nil, nil)
		_, err := svc.GeneralLedger(context.Background(), tenantID, uuid.New(), from, to)
		assert.ErrorIs(t, err, shared.ErrAccountNotFound)
	})
}

func TestCustomerStatement(t *testing.T) {
	tenantID := uuid.New()
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 31, 23, 59, 59, 0, time.UTC)

	t.Run("reports activity on the AR control account", func(t *testing.T) {
		arAcct := mustAccount(t, tenantID, "1200", "Receivable", accounting.AccountTypeAsset, "130")
		customer, err := partner.NewCustomer(tenantID, "Globex", arAcct.ID)
		require.NoError(t, err)

		journals := &stubJournalRepo{lines: map[uuid.UUID][]accounting.PostedLine{
			arAcct.ID: {
				postedLine(arAcct.ID, from.AddDate(0, -2, 0), "JE-DO-1", "100", "0"),
				postedLine(arAcct.ID, from.AddDate(0, 0, 3), "JE-DO-2", "30", "0"),
			},
		}}
		svc := newService(
			&stubAccountRepo{accounts: map[uuid.UUID]*accounting.Account{arAcct.ID: arAcct}},
			journals, nil,
			&stubCustomerRepo{customers: map[uuid.UUID]*partner.Customer{customer.ID: customer}},
		)

		report, err := svc.CustomerStatement(context.Background(), tenantID, customer.ID, from, to)
		require.NoError(t, err)
		assert.Equal(t, "Globex", report.CustomerName)
		assert.True(t, report.OpeningBalance.Equal(decimal.RequireFromString("100")))
		assert.True(t, report.ClosingBalance.Equal(decimal.RequireFromString("130")))
		require.Len(t, report.Lines, 1)
	})

	t.Run("customer without a linked account fails closed", func(t *testing.T) {
		customer := &partner.Customer{
			TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
			Name:                "Orphan",
		}
		svc := newService(nil, nil, nil,
			&stubCustomerRepo{customers: map[uuid.UUID]*partner.Customer{customer.ID: customer}})

		_, err := svc.CustomerStatement(context.Background(), tenantID, customer.ID, from, to)
		assert.ErrorIs(t, err, shared.ErrLinkedAccountMissing)
	})
}

func TestIncomeStatement(t *testing.T) {
	tenantID := uuid.New()
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 31, 23, 59, 59, 0, time.UTC)

	t.Run("splits COGS from other expenses by code", func(t *testing.T) {
		revenueAcct := mustAccount(t, tenantID, "4100", "Revenue", accounting.AccountTypeRevenue, "-600")
		cogsAcct := mustAccount(t, tenantID, "5100", "COGS", accounting.AccountTypeExpense, "280")
		rentAcct := mustAccount(t, tenantID, "6100", "Rent", accounting.AccountTypeExpense, "50")
		assetAcct := mustAccount(t, tenantID, "1400", "Inventory", accounting.AccountTypeAsset, "70")

		journals := &stubJournalRepo{lines: map[uuid.UUID][]accounting.PostedLine{
			revenueAcct.ID: {
				postedLine(revenueAcct.ID, from.AddDate(0, 0, 2), "JE-DO-1", "0", "600"),
				postedLine(revenueAcct.ID, from.AddDate(0, -3, 0), "JE-DO-0", "0", "999"),
			},
			cogsAcct.ID: {
				postedLine(cogsAcct.ID, from.AddDate(0, 0, 2), "JE-DO-1", "280", "0"),
			},
			rentAcct.ID: {
				postedLine(rentAcct.ID, from.AddDate(0, 0, 15), "JE-ADJ-1", "50", "0"),
			},
		}}
		svc := newService(&stubAccountRepo{accounts: map[uuid.UUID]*accounting.Account{
			revenueAcct.ID: revenueAcct,
			cogsAcct.ID:    cogsAcct,
			rentAcct.ID:    rentAcct,
			assetAcct.ID:   assetAcct,
		}}, journals, nil, nil)

		report, err := svc.IncomeStatement(context.Background(), tenantID, from, to)
		require.NoError(t, err)

		assert.True(t, report.TotalRevenue.Equal(decimal.RequireFromString("600")), "out-of-period revenue is excluded, got %s", report.TotalRevenue)
		assert.True(t, report.TotalCOGS.Equal(decimal.RequireFromString("280")))
		assert.True(t, report.GrossProfit.Equal(decimal.RequireFromString("320")))
		assert.True(t, report.TotalExpenses.Equal(decimal.RequireFromString("50")))
		assert.True(t, report.NetIncome.Equal(decimal.RequireFromString("270")))
		require.Len(t, report.COGS, 1)
		require.Len(t, report.Expenses, 1)
		assert.Equal(t, "5100", report.COGS[0].Code)
	})

	t.Run("quiet period yields an empty statement", func(t *testing.T) {
		revenueAcct := mustAccount(t, tenantID, "4100", "Revenue", accounting.AccountTypeRevenue, "-600")
		svc := newService(&stubAccountRepo{accounts: map[uuid.UUID]*accounting.Account{revenueAcct.ID: revenueAcct}}, nil, nil, nil)

		report, err := svc.IncomeStatement(context.Background(), tenantID, from, to)
		require.NoError(t, err)
		assert.Empty(t, report.Revenue)
		assert.True(t, report.NetIncome.IsZero())
	})
}

func TestValuationSummary(t *testing.T) {
	tenantID := uuid.New()

	mkItem := func(t *testing.T, sku, name, qty, cost string) *inventory.Item {
		t.Helper()
		item, err := inventory.NewItem(tenantID, sku, name, uuid.New(), uuid.New(), uuid.New())
		require.NoError(t, err)
		require.NoError(t, item.ApplyReceipt(decimal.RequireFromString(qty), decimal.RequireFromString(cost)))
		return item
	}

	t.Run("reports stock value with currency-tagged amounts", func(t *testing.T) {
		item1 := mkItem(t, "W-1", "Widget", "100", "2")
		require.NoError(t, item1.SetMinStockLevel(decimal.RequireFromString("200")))
		item2 := mkItem(t, "W-2", "Gadget", "10", "5")

		svc := newService(nil, nil, &stubItemRepo{items: []inventory.Item{*item1, *item2}}, nil)

		report, err := svc.ValuationSummary(context.Background(), tenantID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), report.ItemCount)
		assert.True(t, report.TotalValue.Equals(valueobject.NewMoneyIQD(decimal.RequireFromString("250"))))
		assert.Equal(t, 1, report.LowStock)
		require.Len(t, report.Items, 2)
		assert.True(t, report.Items[0].BelowMinimum)
		assert.False(t, report.Items[1].BelowMinimum)
		assert.True(t, report.Items[0].CurrentWAC.Amount().Equal(decimal.RequireFromString("2")))
		assert.True(t, report.Items[1].TotalValue.Amount().Equal(decimal.RequireFromString("50")))
	})

	t.Run("never paginates the dashboard read", func(t *testing.T) {
		items := make([]inventory.Item, 0, 25)
		total := decimal.Zero
		for i := 0; i < 25; i++ {
			item := mkItem(t, fmt.Sprintf("SKU-%02d", i), "Bulk item", "1", "3")
			items = append(items, *item)
			total = total.Add(item.TotalValue)
		}
		repo := &stubItemRepo{items: items}
		svc := newService(nil, nil, repo, nil)

		report, err := svc.ValuationSummary(context.Background(), tenantID)
		require.NoError(t, err)

		assert.Zero(t, repo.lastFilter.PageSize, "row read must not carry a page size")
		assert.Equal(t, int64(25), report.ItemCount)
		assert.Len(t, report.Items, 25)
		assert.True(t, report.TotalValue.Amount().Equal(total), "got %s", report.TotalValue.Amount())
	})
}
