package accounting

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockledger/backend/internal/domain/shared"
)

// AccountType classifies a ledger account
type AccountType string

const (
	AccountTypeAsset     AccountType = "ASSET"
	AccountTypeLiability AccountType = "LIABILITY"
	AccountTypeEquity    AccountType = "EQUITY"
	AccountTypeRevenue   AccountType = "REVENUE"
	AccountTypeExpense   AccountType = "EXPENSE"
)

// String returns the string representation of AccountType
func (t AccountType) String() string {
	return string(t)
}

// IsValid returns true if the account type is valid
func (t AccountType) IsValid() bool {
	switch t {
	case AccountTypeAsset, AccountTypeLiability, AccountTypeEquity, AccountTypeRevenue, AccountTypeExpense:
		return true
	}
	return false
}

// IsDebitNormal returns true for types that normally carry a debit balance.
// Under the debit-minus-credit convention these accounts expect positive
// balances; credit-normal accounts expect negative ones.
func (t AccountType) IsDebitNormal() bool {
	return t == AccountTypeAsset || t == AccountTypeExpense
}

// COGSCodePrefix is the account-code convention marking cost-of-goods-sold
// expense accounts, used by the income statement split.
const COGSCodePrefix = "51"

// Account is a ledger account. Balance is the cumulative debit minus credit
// across all posted journals referencing it and is only mutated through
// journal posting.
type Account struct {
	shared.TenantAggregateRoot
	Code    string          `gorm:"type:varchar(32);not null;uniqueIndex:idx_accounts_tenant_code,priority:2"`
	Name    string          `gorm:"type:varchar(255);not null"`
	Type    AccountType     `gorm:"type:varchar(16);not null;index"`
	Balance decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (Account) TableName() string {
	return "accounts"
}

// NewAccount creates a new ledger account with a zero balance
func NewAccount(tenantID uuid.UUID, code, name string, accountType AccountType) (*Account, error) {
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Account code cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Account name cannot be empty")
	}
	if !accountType.IsValid() {
		return nil, shared.NewDomainError("INVALID_ACCOUNT_TYPE", "Invalid account type")
	}

	return &Account{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Code:                code,
		Name:                name,
		Type:                accountType,
		Balance:             decimal.Zero,
	}, nil
}

// Apply moves the balance by debit minus credit. Both sides must be
// non-negative; a single journal line carries one side only.
func (a *Account) Apply(debit, credit decimal.Decimal) error {
	if debit.IsNegative() || credit.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Debit and credit amounts cannot be negative")
	}
	a.Balance = a.Balance.Add(debit).Sub(credit)
	a.UpdatedAt = time.Now()
	a.IncrementVersion()
	return nil
}

// IsCOGS returns true if this is an expense account designated as
// cost of goods sold by code convention
func (a *Account) IsCOGS() bool {
	return a.Type == AccountTypeExpense && len(a.Code) >= len(COGSCodePrefix) && a.Code[:len(COGSCodePrefix)] == COGSCodePrefix
}
