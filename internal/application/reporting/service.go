package reporting

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/stockledger/backend/internal/domain/accounting"
	"github.com/stockledger/backend/internal/domain/inventory"
	"github.com/stockledger/backend/internal/domain/partner"
	"github.com/stockledger/backend/internal/domain/shared"
	"github.com/stockledger/backend/internal/domain/shared/valueobject"
)

// Service builds financial and inventory reports. Reports are read-only
// reconstructions: current balances come straight from the accounts, and
// historical positions are derived by walking posted journal lines
// backwards from the current balance.
type Service struct {
	accounts  accounting.AccountRepository
	journals  accounting.JournalRepository
	items     inventory.ItemRepository
	customers partner.CustomerRepository
	log       *zap.Logger
}

// NewService creates a reporting service
func NewService(
	accounts accounting.AccountRepository,
	journals accounting.JournalRepository,
	items inventory.ItemRepository,
	customers partner.CustomerRepository,
	log *zap.Logger,
) *Service {
	return &Service{
		accounts:  accounts,
		journals:  journals,
		items:     items,
		customers: customers,
		log:       log,
	}
}

// TrialBalance lists every account with a non-zero balance, placing
// positive balances in the debit column and negative ones in credit.
func (s *Service) TrialBalance(ctx context.Context, tenantID uuid.UUID) (*TrialBalanceReport, error) {
	accounts, err := s.accounts.FindAllForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	report := &TrialBalanceReport{
		AsOf:        time.Now(),
		Rows:        []TrialBalanceRow{},
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
	}
	for _, account := range accounts {
		if account.Balance.IsZero() {
			continue
		}
		row := TrialBalanceRow{
			AccountID: account.ID,
			Code:      account.Code,
			Name:      account.Name,
			Type:      account.Type.String(),
			Debit:     decimal.Zero,
			Credit:    decimal.Zero,
		}
		if account.Balance.IsPositive() {
			row.Debit = account.Balance
			report.TotalDebit = report.TotalDebit.Add(account.Balance)
		} else {
			row.Credit = account.Balance.Neg()
			report.TotalCredit = report.TotalCredit.Add(account.Balance.Neg())
		}
		report.Rows = append(report.Rows, row)
	}
	report.Balanced = report.TotalDebit.Equal(report.TotalCredit)
	if !report.Balanced {
		s.log.Error("trial balance does not balance",
			zap.String("tenant_id", tenantID.String()),
			zap.String("total_debit", report.TotalDebit.String()),
			zap.String("total_credit", report.TotalCredit.String()))
	}
	return report, nil
}

// accountStatement reconstructs one account's period activity. The opening
// balance is back-calculated as
//
//	opening = current - periodNet - futureNet
//
// so the statement stays consistent with the live balance even though
// period boundaries are arbitrary.
func (s *Service) accountStatement(ctx context.Context, tenantID uuid.UUID, account *accounting.Account, from, to time.Time) (opening, closing decimal.Decimal, lines []StatementLine, periodDebit, periodCredit decimal.Decimal, err error) {
	posted, err := s.journals.FindPostedLinesByAccount(ctx, tenantID, account.ID)
	if err != nil {
		return decimal.Zero, decimal.Zero, nil, decimal.Zero, decimal.Zero, err
	}

	periodNet := decimal.Zero
	futureNet := decimal.Zero
	periodDebit = decimal.Zero
	periodCredit = decimal.Zero
	var inPeriod []accounting.PostedLine
	for _, line := range posted {
		net := line.Debit.Sub(line.Credit)
		switch {
		case line.Date.After(to):
			futureNet = futureNet.Add(net)
		case !line.Date.Before(from):
			periodNet = periodNet.Add(net)
			periodDebit = periodDebit.Add(line.Debit)
			periodCredit = periodCredit.Add(line.Credit)
			inPeriod = append(inPeriod, line)
		}
	}

	opening = account.Balance.Sub(periodNet).Sub(futureNet)
	closing = opening.Add(periodNet)

	running := opening
	lines = make([]StatementLine, 0, len(inPeriod))
	for _, line := range inPeriod {
		running = running.Add(line.Debit).Sub(line.Credit)
		lines = append(lines, StatementLine{
			Date:           line.Date,
			JournalNumber:  line.Number,
			Description:    line.Description,
			Memo:           line.Memo,
			Debit:          line.Debit,
			Credit:         line.Credit,
			RunningBalance: running,
		})
	}
	return opening, closing, lines, periodDebit, periodCredit, nil
}

// GeneralLedger reports one account's posted activity over a period with
// running balances
func (s *Service) GeneralLedger(ctx context.Context, tenantID, accountID uuid.UUID, from, to time.Time) (*GeneralLedgerReport, error) {
	account, err := s.accounts.FindByIDForTenant(ctx, tenantID, accountID)
	if err != nil {
		return nil, err
	}

	opening, closing, lines, periodDebit, periodCredit, err := s.accountStatement(ctx, tenantID, account, from, to)
	if err != nil {
		return nil, err
	}

	return &GeneralLedgerReport{
		AccountID:      account.ID,
		Code:           account.Code,
		Name:           account.Name,
		From:           from,
		To:             to,
		OpeningBalance: opening,
		ClosingBalance: closing,
		PeriodDebit:    periodDebit,
		PeriodCredit:   periodCredit,
		Lines:          lines,
	}, nil
}

// CustomerStatement reports a customer's receivables activity derived from
// the customer's AR control account. A customer without a linked account
// cannot be reported on.
func (s *Service) CustomerStatement(ctx context.Context, tenantID, customerID uuid.UUID, from, to time.Time) (*CustomerStatementReport, error) {
	customer, err := s.customers.FindByIDForTenant(ctx, tenantID, customerID)
	if err != nil {
		return nil, err
	}
	if customer.ARAccountID == uuid.Nil {
		return nil, shared.ErrLinkedAccountMissing
	}
	account, err := s.accounts.FindByIDForTenant(ctx, tenantID, customer.ARAccountID)
	if err != nil {
		return nil, err
	}

	opening, closing, lines, _, _, err := s.accountStatement(ctx, tenantID, account, from, to)
	if err != nil {
		return nil, err
	}

	return &CustomerStatementReport{
		CustomerID:     customer.ID,
		CustomerName:   customer.Name,
		From:           from,
		To:             to,
		OpeningBalance: opening,
		ClosingBalance: closing,
		Lines:          lines,
	}, nil
}

// IncomeStatement reconstructs the period result from posted journal
// history. Revenue accounts are credit-normal, so their contribution is
// credit minus debit; expenses contribute debit minus credit. Expense
// accounts are split into cost of goods sold and other expenses by code
// convention.
func (s *Service) IncomeStatement(ctx context.Context, tenantID uuid.UUID, from, to time.Time) (*IncomeStatementReport, error) {
	accounts, err := s.accounts.FindAllForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	report := &IncomeStatementReport{
		From:          from,
		To:            to,
		Revenue:       []IncomeStatementRow{},
		COGS:          []IncomeStatementRow{},
		Expenses:      []IncomeStatementRow{},
		TotalRevenue:  decimal.Zero,
		TotalCOGS:     decimal.Zero,
		TotalExpenses: decimal.Zero,
	}

	for _, account := range accounts {
		if account.Type != accounting.AccountTypeRevenue && account.Type != accounting.AccountTypeExpense {
			continue
		}
		posted, err := s.journals.FindPostedLinesByAccount(ctx, tenantID, account.ID)
		if err != nil {
			return nil, err
		}
		net := decimal.Zero
		for _, line := range posted {
			if line.Date.Before(from) || line.Date.After(to) {
				continue
			}
			net = net.Add(line.Debit).Sub(line.Credit)
		}
		if net.IsZero() {
			continue
		}

		if account.Type == accounting.AccountTypeRevenue {
			amount := net.Neg()
			report.Revenue = append(report.Revenue, IncomeStatementRow{
				AccountID: account.ID, Code: account.Code, Name: account.Name, Amount: amount,
			})
			report.TotalRevenue = report.TotalRevenue.Add(amount)
			continue
		}

		row := IncomeStatementRow{AccountID: account.ID, Code: account.Code, Name: account.Name, Amount: net}
		if account.IsCOGS() {
			report.COGS = append(report.COGS, row)
			report.TotalCOGS = report.TotalCOGS.Add(net)
		} else {
			report.Expenses = append(report.Expenses, row)
			report.TotalExpenses = report.TotalExpenses.Add(net)
		}
	}

	report.GrossProfit = report.TotalRevenue.Sub(report.TotalCOGS)
	report.NetIncome = report.GrossProfit.Sub(report.TotalExpenses)
	return report, nil
}

// ValuationSummary reports the current stock position across all items.
// Count and total come from aggregate queries; the per-item rows use an
// unpaginated read so the dashboard never truncates.
func (s *Service) ValuationSummary(ctx context.Context, tenantID uuid.UUID) (*ValuationSummaryReport, error) {
	count, err := s.items.CountForTenant(ctx, tenantID, shared.Filter{})
	if err != nil {
		return nil, err
	}
	totalValue, err := s.items.SumTotalValueForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	items, err := s.items.FindAllForTenant(ctx, tenantID, shared.Filter{OrderBy: "sku", OrderDir: "asc"})
	if err != nil {
		return nil, err
	}

	report := &ValuationSummaryReport{
		ItemCount:  count,
		TotalValue: valueobject.NewMoneyIQD(totalValue),
		Items:      make([]ItemValuationRow, 0, len(items)),
	}
	for i := range items {
		item := &items[i]
		below := item.IsBelowMinimum()
		if below {
			report.LowStock++
		}
		report.Items = append(report.Items, ItemValuationRow{
			ItemID:       item.ID,
			SKU:          item.SKU,
			Name:         item.Name,
			CurrentQty:   item.CurrentQty,
			CurrentWAC:   item.GetWACMoney(),
			TotalValue:   item.GetTotalValueMoney(),
			BelowMinimum: below,
		})
	}
	return report, nil
}
