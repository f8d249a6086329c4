package reporting

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockledger/backend/internal/domain/shared/valueobject"
)

// TrialBalanceRow is one account's column placement in the trial balance.
// A positive balance lands in the debit column, a negative one in credit.
type TrialBalanceRow struct {
	AccountID uuid.UUID       `json:"account_id"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Type      string          `json:"type"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
}

// TrialBalanceReport lists every account with a non-zero balance. A sound
// ledger always has TotalDebit equal to TotalCredit.
type TrialBalanceReport struct {
	AsOf        time.Time         `json:"as_of"`
	Rows        []TrialBalanceRow `json:"rows"`
	TotalDebit  decimal.Decimal   `json:"total_debit"`
	TotalCredit decimal.Decimal   `json:"total_credit"`
	Balanced    bool              `json:"balanced"`
}

// StatementLine is one posted journal line on an account statement with
// the running balance after it
type StatementLine struct {
	Date           time.Time       `json:"date"`
	JournalNumber  string          `json:"journal_number"`
	Description    string          `json:"description"`
	Memo           string          `json:"memo,omitempty"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	RunningBalance decimal.Decimal `json:"running_balance"`
}

// GeneralLedgerReport is the posted activity of one account over a period.
// The opening balance is reconstructed from the account's current balance
// by removing everything posted during and after the period.
type GeneralLedgerReport struct {
	AccountID      uuid.UUID       `json:"account_id"`
	Code           string          `json:"code"`
	Name           string          `json:"name"`
	From           time.Time       `json:"from"`
	To             time.Time       `json:"to"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	ClosingBalance decimal.Decimal `json:"closing_balance"`
	PeriodDebit    decimal.Decimal `json:"period_debit"`
	PeriodCredit   decimal.Decimal `json:"period_credit"`
	Lines          []StatementLine `json:"lines"`
}

// CustomerStatementReport is the customer's receivables activity over a
// period, derived from the customer's AR control account
type CustomerStatementReport struct {
	CustomerID     uuid.UUID       `json:"customer_id"`
	CustomerName   string          `json:"customer_name"`
	From           time.Time       `json:"from"`
	To             time.Time       `json:"to"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	ClosingBalance decimal.Decimal `json:"closing_balance"`
	Lines          []StatementLine `json:"lines"`
}

// IncomeStatementRow is one account's contribution to the income statement
type IncomeStatementRow struct {
	AccountID uuid.UUID       `json:"account_id"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
}

// IncomeStatementReport is the period result reconstructed from posted
// journal history. Cost of goods sold is split from other expenses by
// account code convention.
type IncomeStatementReport struct {
	From          time.Time            `json:"from"`
	To            time.Time            `json:"to"`
	Revenue       []IncomeStatementRow `json:"revenue"`
	TotalRevenue  decimal.Decimal      `json:"total_revenue"`
	COGS          []IncomeStatementRow `json:"cogs"`
	TotalCOGS     decimal.Decimal      `json:"total_cogs"`
	GrossProfit   decimal.Decimal      `json:"gross_profit"`
	Expenses      []IncomeStatementRow `json:"expenses"`
	TotalExpenses decimal.Decimal      `json:"total_expenses"`
	NetIncome     decimal.Decimal      `json:"net_income"`
}

// ItemValuationRow is one item's stock position in the valuation summary.
// Monetary figures are currency-tagged Money values.
type ItemValuationRow struct {
	ItemID       uuid.UUID         `json:"item_id"`
	SKU          string            `json:"sku"`
	Name         string            `json:"name"`
	CurrentQty   decimal.Decimal   `json:"current_qty"`
	CurrentWAC   valueobject.Money `json:"current_wac"`
	TotalValue   valueobject.Money `json:"total_value"`
	BelowMinimum bool              `json:"below_minimum"`
}

// ValuationSummaryReport is the dashboard view of total stock value
type ValuationSummaryReport struct {
	ItemCount  int64              `json:"item_count"`
	TotalValue valueobject.Money  `json:"total_value"`
	LowStock   int                `json:"low_stock"`
	Items      []ItemValuationRow `json:"items"`
}
