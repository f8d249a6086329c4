package accounting

import (
	"github.com/google/uuid"
	"github.com/stockledger/backend/internal/domain/shared"
)

// NumberSequence backs the per-tenant document numbering series such as
// JE-GRN, JE-DO, BILL and INV. The next value is reserved inside the
// posting transaction, so committed documents never share a number.
// Rolled-back postings may leave gaps, which is acceptable.
type NumberSequence struct {
	shared.BaseEntity
	TenantID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_sequences_tenant_series,priority:1"`
	Series   string    `gorm:"type:varchar(32);not null;uniqueIndex:idx_sequences_tenant_series,priority:2"`
	Value    int64     `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (NumberSequence) TableName() string {
	return "number_sequences"
}
