package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stockledger/backend/internal/domain/accounting"
	"github.com/stockledger/backend/internal/domain/shared"
)

// GormJournalRepository implements accounting.JournalRepository using GORM
type GormJournalRepository struct {
	db *gorm.DB
}

// NewGormJournalRepository creates a new journal repository
func NewGormJournalRepository(db *gorm.DB) *GormJournalRepository {
	return &GormJournalRepository{db: db}
}

// FindByIDForTenant finds a journal entry with its lines
func (r *GormJournalRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*accounting.JournalEntry, error) {
	var entry accounting.JournalEntry
	err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("line_no ASC") }).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// FindBySourceDoc returns the journal entries created by one source document
func (r *GormJournalRepository) FindBySourceDoc(ctx context.Context, tenantID uuid.UUID, docType string, docID uuid.UUID) ([]*accounting.JournalEntry, error) {
	var entries []*accounting.JournalEntry
	err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("line_no ASC") }).
		Where("tenant_id = ? AND source_doc_type = ? AND source_doc_id = ?", tenantID, docType, docID).
		Order("date ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// FindPostedLinesByAccount returns all posted lines touching the account
// in chronological order
func (r *GormJournalRepository) FindPostedLinesByAccount(ctx context.Context, tenantID, accountID uuid.UUID) ([]accounting.PostedLine, error) {
	var lines []accounting.PostedLine
	err := r.db.WithContext(ctx).
		Table("journal_lines").
		Select(`journal_entries.id AS journal_entry_id,
			journal_entries.number,
			journal_entries.description,
			journal_entries.date,
			journal_lines.account_id,
			journal_lines.debit,
			journal_lines.credit,
			journal_lines.memo`).
		Joins("JOIN journal_entries ON journal_entries.id = journal_lines.journal_entry_id").
		Where("journal_entries.tenant_id = ? AND journal_entries.status = ? AND journal_lines.account_id = ?",
			tenantID, accounting.JournalStatusPosted, accountID).
		Order("journal_entries.date ASC, journal_lines.created_at ASC").
		Scan(&lines).Error
	if err != nil {
		return nil, err
	}
	return lines, nil
}

// NextNumber reserves the next value of a numbering series atomically.
// The upsert holds a row lock until the surrounding transaction commits.
func (r *GormJournalRepository) NextNumber(ctx context.Context, tenantID uuid.UUID, series string) (int64, error) {
	var value int64
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO number_sequences (id, tenant_id, series, value, created_at, updated_at)
		VALUES (?, ?, ?, 1, NOW(), NOW())
		ON CONFLICT (tenant_id, series)
		DO UPDATE SET value = number_sequences.value + 1, updated_at = NOW()
		RETURNING value`,
		uuid.New(), tenantID, series).Scan(&value).Error
	if err != nil {
		return 0, err
	}
	return value, nil
}

// Save inserts a journal entry together with its lines. Posted entries are
// immutable, so there is no update path.
func (r *GormJournalRepository) Save(ctx context.Context, entry *accounting.JournalEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}
