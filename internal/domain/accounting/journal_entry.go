package accounting

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockledger/backend/internal/domain/shared"
)

// JournalStatus represents the lifecycle state of a journal entry
type JournalStatus string

const (
	JournalStatusDraft  JournalStatus = "DRAFT"
	JournalStatusPosted JournalStatus = "POSTED"
)

// JournalLine is a single debit or credit against one account. A line
// carries exactly one side; the other is zero.
type JournalLine struct {
	shared.BaseEntity
	JournalEntryID uuid.UUID       `gorm:"type:uuid;not null;index"`
	LineNo         int             `gorm:"not null"`
	AccountID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Debit          decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Credit         decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Memo           string          `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (JournalLine) TableName() string {
	return "journal_lines"
}

// JournalEntry is a double-entry journal. Entries are created in DRAFT,
// accumulate lines, and become immutable once POSTED. Posting requires the
// debit and credit totals to match exactly.
type JournalEntry struct {
	shared.TenantAggregateRoot
	Number        string        `gorm:"type:varchar(64);not null;uniqueIndex:idx_journals_tenant_number,priority:2"`
	Date          time.Time     `gorm:"not null;index"`
	Description   string        `gorm:"type:varchar(500)"`
	Status        JournalStatus `gorm:"type:varchar(16);not null;default:'DRAFT'"`
	SourceDocType string        `gorm:"type:varchar(16);index:idx_journals_source"`
	SourceDocID   uuid.UUID     `gorm:"type:uuid;index:idx_journals_source"`
	Lines         []JournalLine `gorm:"foreignKey:JournalEntryID;references:ID"`
}

// TableName returns the table name for GORM
func (JournalEntry) TableName() string {
	return "journal_entries"
}

// NewJournalEntry creates a draft journal entry with no lines
func NewJournalEntry(tenantID uuid.UUID, number, description string, date time.Time) (*JournalEntry, error) {
	if number == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Journal number cannot be empty")
	}
	if date.IsZero() {
		date = time.Now()
	}

	return &JournalEntry{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Number:              number,
		Date:                date,
		Description:         description,
		Status:              JournalStatusDraft,
		Lines:               []JournalLine{},
	}, nil
}

// LinkSource records the originating document for audit trails
func (e *JournalEntry) LinkSource(docType string, docID uuid.UUID) {
	e.SourceDocType = docType
	e.SourceDocID = docID
}

// AddLine appends a debit or credit line to a draft entry. Exactly one of
// debit or credit must be positive.
func (e *JournalEntry) AddLine(accountID uuid.UUID, debit, credit decimal.Decimal, memo string) error {
	if e.Status == JournalStatusPosted {
		return shared.NewDomainError("JOURNAL_POSTED", "Cannot modify a posted journal entry")
	}
	if accountID == uuid.Nil {
		return shared.ErrAccountNotFound
	}
	if debit.IsNegative() || credit.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Debit and credit amounts cannot be negative")
	}
	if debit.IsPositive() == credit.IsPositive() {
		return shared.NewDomainError("INVALID_LINE", "A journal line must carry exactly one of debit or credit")
	}

	line := JournalLine{
		BaseEntity:     shared.NewBaseEntity(),
		JournalEntryID: e.ID,
		LineNo:         len(e.Lines) + 1,
		AccountID:      accountID,
		Debit:          debit,
		Credit:         credit,
		Memo:           memo,
	}
	e.Lines = append(e.Lines, line)
	e.UpdatedAt = time.Now()
	return nil
}

// TotalDebit sums the debit side across all lines
func (e *JournalEntry) TotalDebit() decimal.Decimal {
	total := decimal.Zero
	for _, line := range e.Lines {
		total = total.Add(line.Debit)
	}
	return total
}

// TotalCredit sums the credit side across all lines
func (e *JournalEntry) TotalCredit() decimal.Decimal {
	total := decimal.Zero
	for _, line := range e.Lines {
		total = total.Add(line.Credit)
	}
	return total
}

// IsBalanced returns true when debits equal credits exactly
func (e *JournalEntry) IsBalanced() bool {
	return e.TotalDebit().Equal(e.TotalCredit())
}

// Post transitions the entry to POSTED. Fails on an empty or unbalanced
// entry; a posted entry never returns to draft.
func (e *JournalEntry) Post() error {
	if e.Status == JournalStatusPosted {
		return shared.NewDomainError("JOURNAL_POSTED", "Journal entry is already posted")
	}
	if len(e.Lines) == 0 {
		return shared.NewDomainError("EMPTY_JOURNAL", "Cannot post a journal entry with no lines")
	}
	if !e.IsBalanced() {
		return shared.ErrUnbalancedJournal
	}
	e.Status = JournalStatusPosted
	e.UpdatedAt = time.Now()
	e.IncrementVersion()
	return nil
}
